// Package models contains domain models for the Widget Service.
package models

import "time"

// EngagementTrigger is a keyword-based trigger that surfaces the lead
// form when any of its keywords appears in the user's last message.
type EngagementTrigger struct {
	ID        string    `json:"id" bson:"_id"`
	TenantID  string    `json:"tenantId" bson:"tenantId"`
	AgentID   string    `json:"agentId" bson:"agentId"`
	Keywords  []string  `json:"keywords" bson:"keywords"`
	Enabled   bool      `json:"enabled" bson:"enabled"`
	CreatedAt time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" bson:"updatedAt"`
}

// NewEngagementTrigger creates an engagement trigger with timestamps set.
func NewEngagementTrigger(tenantID, agentID string, keywords []string, enabled bool) *EngagementTrigger {
	now := time.Now().UTC()
	return &EngagementTrigger{
		TenantID:  tenantID,
		AgentID:   agentID,
		Keywords:  keywords,
		Enabled:   enabled,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// BackupTrigger is the per-agent message-count fallback that shows the
// lead form when the running user-message count reaches MessageCount,
// regardless of keyword content. MessageCount must be non-negative;
// 0 (or Enabled false) disables it.
type BackupTrigger struct {
	TenantID     string    `json:"tenantId" bson:"tenantId"`
	AgentID      string    `json:"agentId" bson:"agentId"`
	Enabled      bool      `json:"enabled" bson:"enabled"`
	MessageCount int       `json:"messageCount" bson:"messageCount"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updatedAt"`
}
