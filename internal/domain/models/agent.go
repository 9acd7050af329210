// Package models contains domain models for the Widget Service.
package models

import "time"

// Agent represents a configured chatbot instance owned by a tenant.
type Agent struct {
	ID        string        `json:"id" bson:"_id"`
	TenantID  string        `json:"tenantId" bson:"tenantId"`
	Name      string        `json:"name" bson:"name"`
	Settings  AgentSettings `json:"settings" bson:"settings"`
	CreatedAt time.Time     `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time     `json:"updatedAt" bson:"updatedAt"`
}

// AgentSettings contains the per-agent widget behavior configuration.
type AgentSettings struct {
	// Prompt is the system prompt forwarded to the completion backend.
	Prompt string `json:"prompt" bson:"prompt"`

	// Persona describes the agent persona. May be plain text or a
	// structured object; see PersonaSummary.
	Persona *PersonaSummary `json:"persona,omitempty" bson:"persona,omitempty"`

	// LinkedInPromptMessageCount is the user-message count at which the
	// personalization prompt is surfaced. 0 disables it.
	LinkedInPromptMessageCount int `json:"linkedinPromptMessageCount" bson:"linkedinPromptMessageCount"`
}

// PersonaKind discriminates the two persona representations.
type PersonaKind string

const (
	// PersonaText is a free-text persona summary.
	PersonaText PersonaKind = "text"
	// PersonaStructured is a structured persona with a description field.
	PersonaStructured PersonaKind = "structured"
)

// PersonaSummary is a tagged variant for the persona context consumed by
// the completion boundary. The upstream persona pipeline emits either a
// bare string or an object with a description; both collapse to a single
// string via Resolve, exactly once, at the boundary.
type PersonaSummary struct {
	Kind        PersonaKind `json:"kind" bson:"kind"`
	Text        string      `json:"text,omitempty" bson:"text,omitempty"`
	Description string      `json:"description,omitempty" bson:"description,omitempty"`
}

// NewTextPersona creates a free-text persona summary.
func NewTextPersona(text string) *PersonaSummary {
	return &PersonaSummary{Kind: PersonaText, Text: text}
}

// NewStructuredPersona creates a structured persona summary.
func NewStructuredPersona(description string) *PersonaSummary {
	return &PersonaSummary{Kind: PersonaStructured, Description: description}
}

// Resolve collapses the variant to the string the completion backend sees.
func (p *PersonaSummary) Resolve() string {
	if p == nil {
		return ""
	}
	switch p.Kind {
	case PersonaStructured:
		return p.Description
	default:
		return p.Text
	}
}
