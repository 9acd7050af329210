// Package dto provides Data Transfer Objects for API requests and responses.
package dto

// SendMessageRequest represents the request body for a widget chat turn.
type SendMessageRequest struct {
	Message string `json:"message" binding:"required,min=1,max=32000"`
	Stream  bool   `json:"stream"`
}

// SubmitLeadRequest represents a lead form submission.
type SubmitLeadRequest struct {
	FormData map[string]interface{} `json:"formData" binding:"required"`
}

// PromptRuleRequest represents the request body for creating or updating
// a prompt rule.
type PromptRuleRequest struct {
	Prompt    string   `json:"prompt"`
	Response  string   `json:"response" binding:"required"`
	IsDynamic bool     `json:"isDynamic"`
	Keywords  []string `json:"keywords"`
}

// TriggerRequest represents the request body for creating or updating an
// engagement trigger.
type TriggerRequest struct {
	Keywords []string `json:"keywords" binding:"required"`
	Enabled  bool     `json:"enabled"`
}

// BackupTriggerRequest represents the request body for setting the
// backup trigger.
type BackupTriggerRequest struct {
	Enabled      bool `json:"enabled"`
	MessageCount int  `json:"messageCount" binding:"min=0"`
}
