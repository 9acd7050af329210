// Package models contains domain models for the Widget Service.
package models

import "time"

// MessageRole represents the role of a message sender.
type MessageRole string

const (
	// RoleUser represents a message from the widget visitor.
	RoleUser MessageRole = "user"
	// RoleAssistant represents a message from the agent.
	RoleAssistant MessageRole = "assistant"
)

// ReplySource records where an assistant reply came from.
type ReplySource string

const (
	// SourcePromptRule means the reply was a configured canned response.
	SourcePromptRule ReplySource = "prompt_rule"
	// SourceCompletion means the reply came from the AI completion backend.
	SourceCompletion ReplySource = "completion"
)

// Message represents a chat turn in a widget session. User and assistant
// messages share one collection, differentiated by Role.
type Message struct {
	ID        string      `json:"id" bson:"_id"`
	TenantID  string      `json:"tenantId" bson:"tenantId"`
	AgentID   string      `json:"agentId" bson:"agentId"`
	SessionID string      `json:"sessionId" bson:"sessionId"`
	Role      MessageRole `json:"role" bson:"role"`
	Content   string      `json:"content" bson:"content"`

	// Source is set on assistant messages only.
	Source ReplySource `json:"source,omitempty" bson:"source,omitempty"`

	// ThreadID is the completion backend's thread identifier, set on
	// assistant messages produced by the completion path.
	ThreadID string `json:"threadId,omitempty" bson:"threadId,omitempty"`

	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// NewUserMessage creates a user message.
func NewUserMessage(tenantID, agentID, sessionID, content string) *Message {
	now := time.Now().UTC()
	return &Message{
		TenantID:  tenantID,
		AgentID:   agentID,
		SessionID: sessionID,
		Role:      RoleUser,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// NewAssistantMessage creates an assistant message.
func NewAssistantMessage(tenantID, agentID, sessionID, content string, source ReplySource) *Message {
	now := time.Now().UTC()
	return &Message{
		TenantID:  tenantID,
		AgentID:   agentID,
		SessionID: sessionID,
		Role:      RoleAssistant,
		Content:   content,
		Source:    source,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
