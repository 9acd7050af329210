// Package models contains domain models for the Widget Service.
package models

import "time"

// PromptRule is a canned prompt/response configured for an agent.
// Static rules (IsDynamic false) match the whole message exactly,
// case-insensitively. Dynamic rules match when any keyword is a substring
// of the message. A dynamic rule with no keywords never matches.
type PromptRule struct {
	ID        string    `json:"id" bson:"_id"`
	TenantID  string    `json:"tenantId" bson:"tenantId"`
	AgentID   string    `json:"agentId" bson:"agentId"`
	Prompt    string    `json:"prompt" bson:"prompt"`
	Response  string    `json:"response" bson:"response"`
	IsDynamic bool      `json:"isDynamic" bson:"isDynamic"`
	Keywords  []string  `json:"keywords,omitempty" bson:"keywords,omitempty"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// NewPromptRule creates a prompt rule with timestamps set.
func NewPromptRule(tenantID, agentID, prompt, response string, isDynamic bool, keywords []string) *PromptRule {
	now := time.Now().UTC()
	return &PromptRule{
		TenantID:  tenantID,
		AgentID:   agentID,
		Prompt:    prompt,
		Response:  response,
		IsDynamic: isDynamic,
		Keywords:  keywords,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
