// Package models contains domain models for the Widget Service.
package models

import "time"

// ConversationCounters is the ephemeral per-session conversation state
// consumed by the engagement evaluator. It is owned exclusively by one
// widget session and starts from zero whenever a new session identifier
// is issued.
type ConversationCounters struct {
	SessionID string `json:"sessionId"`
	TenantID  string `json:"tenantId"`
	AgentID   string `json:"agentId"`

	// UserMessageCount is the running count of user messages this session.
	UserMessageCount int `json:"userMessageCount"`

	// LeadFormShown records that the lead form fired; it fires at most
	// once per session.
	LeadFormShown bool `json:"leadFormShown"`

	// LeadFormSubmitted records that the visitor submitted the lead form.
	LeadFormSubmitted bool `json:"leadFormSubmitted"`

	// LinkedInPromptShown records that the personalization prompt fired.
	LinkedInPromptShown bool `json:"linkedinPromptShown"`

	// ThreadID continues the completion backend's thread across turns.
	ThreadID string `json:"threadId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewConversationCounters creates zeroed counters for a session.
func NewConversationCounters(tenantID, agentID, sessionID string) *ConversationCounters {
	now := time.Now().UTC()
	return &ConversationCounters{
		SessionID: sessionID,
		TenantID:  tenantID,
		AgentID:   agentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
