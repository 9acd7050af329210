// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import "time"

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

// SendMessageResponse represents the response for a widget chat turn.
type SendMessageResponse struct {
	Reply      string `json:"reply"`
	Source     string `json:"source"`
	Engagement string `json:"engagement"`
	SessionID  string `json:"sessionId"`
	ThreadID   string `json:"threadId,omitempty"`
}

// MessageResponse represents a stored message in API responses.
type MessageResponse struct {
	ID        string    `json:"id"`
	SessionID string    `json:"sessionId"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// GetMessagesResponse represents the response for getting session history.
type GetMessagesResponse struct {
	Messages []*MessageResponse `json:"messages"`
	Total    int64              `json:"total"`
	Limit    int64              `json:"limit"`
	Offset   int64              `json:"offset"`
}

// SessionResponse represents the widget session state.
type SessionResponse struct {
	SessionID string `json:"sessionId"`
	Issued    bool   `json:"issued"`
}

// LeadResponse represents a lead in API responses.
type LeadResponse struct {
	ID        string                 `json:"id"`
	SessionID string                 `json:"sessionId"`
	FormData  map[string]interface{} `json:"formData"`
	CreatedAt time.Time              `json:"createdAt"`
}

// GetLeadsResponse represents the response for listing leads.
type GetLeadsResponse struct {
	Leads  []*LeadResponse `json:"leads"`
	Total  int64           `json:"total"`
	Limit  int64           `json:"limit"`
	Offset int64           `json:"offset"`
}

// PromptRuleResponse represents a prompt rule in API responses.
type PromptRuleResponse struct {
	ID        string    `json:"id"`
	Prompt    string    `json:"prompt,omitempty"`
	Response  string    `json:"response"`
	IsDynamic bool      `json:"isDynamic"`
	Keywords  []string  `json:"keywords,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GetPromptRulesResponse represents the response for listing prompt rules.
type GetPromptRulesResponse struct {
	Rules []*PromptRuleResponse `json:"rules"`
	Total int                   `json:"total"`
}

// TriggerResponse represents an engagement trigger in API responses.
type TriggerResponse struct {
	ID        string    `json:"id"`
	Keywords  []string  `json:"keywords"`
	Enabled   bool      `json:"enabled"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// GetTriggersResponse represents the response for listing triggers.
type GetTriggersResponse struct {
	Triggers []*TriggerResponse `json:"triggers"`
	Total    int                `json:"total"`
}

// BackupTriggerResponse represents the backup trigger in API responses.
type BackupTriggerResponse struct {
	Enabled      bool      `json:"enabled"`
	MessageCount int       `json:"messageCount"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
