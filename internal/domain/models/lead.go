// Package models contains domain models for the Widget Service.
package models

import "time"

// Lead is a submitted lead-capture form, correlated to the anonymous
// widget session that produced it.
type Lead struct {
	ID        string                 `json:"id" bson:"_id"`
	TenantID  string                 `json:"tenantId" bson:"tenantId"`
	AgentID   string                 `json:"agentId" bson:"agentId"`
	SessionID string                 `json:"sessionId" bson:"sessionId"`
	FormData  map[string]interface{} `json:"formData" bson:"formData"`
	CreatedAt time.Time              `json:"createdAt" bson:"createdAt"`
}

// NewLead creates a lead with the created timestamp set.
func NewLead(tenantID, agentID, sessionID string, formData map[string]interface{}) *Lead {
	return &Lead{
		TenantID:  tenantID,
		AgentID:   agentID,
		SessionID: sessionID,
		FormData:  formData,
		CreatedAt: time.Now().UTC(),
	}
}
