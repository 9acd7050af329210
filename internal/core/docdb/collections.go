// Package docdb defines the typed collection interfaces.
package docdb

import (
	"context"

	"github.com/vcro/widget-service/internal/domain/models"
)

// SortOrder represents the sort direction.
type SortOrder string

const (
	// SortOrderAsc represents ascending order.
	SortOrderAsc SortOrder = "asc"
	// SortOrderDesc represents descending order.
	SortOrderDesc SortOrder = "desc"
)

// ListMessagesOptions contains options for listing messages.
type ListMessagesOptions struct {
	TenantID  string
	AgentID   string
	SessionID string
	Limit     int64
	Skip      int64
	OrderBy   SortOrder // Order by createdAt
}

// ListLeadsOptions contains options for listing leads.
type ListLeadsOptions struct {
	TenantID string
	AgentID  string
	Limit    int64
	Skip     int64
}

// AgentsCollection defines agent configuration operations.
type AgentsCollection interface {
	// Get retrieves an agent by ID, scoped to the tenant.
	// Returns nil (not an error) when the agent does not exist.
	Get(ctx context.Context, tenantID, agentID string) (*models.Agent, error)

	// Upsert creates or replaces an agent record.
	Upsert(ctx context.Context, agent *models.Agent) error

	// EnsureIndexes creates necessary indexes for the collection.
	EnsureIndexes(ctx context.Context) error
}

// PromptRulesCollection defines prompt rule operations. Rules are read at
// matching time in their stored order; authors rely on that order to
// prioritize overlapping keyword sets.
type PromptRulesCollection interface {
	// Add inserts a new prompt rule.
	Add(ctx context.Context, rule *models.PromptRule) error

	// Get retrieves a rule by ID, scoped to the tenant.
	Get(ctx context.Context, tenantID, ruleID string) (*models.PromptRule, error)

	// ListByAgent lists an agent's rules in insertion order.
	ListByAgent(ctx context.Context, tenantID, agentID string) ([]models.PromptRule, error)

	// Update replaces an existing rule.
	Update(ctx context.Context, rule *models.PromptRule) error

	// Delete removes a rule. Returns the number of deleted documents.
	Delete(ctx context.Context, tenantID, ruleID string) (int64, error)

	// EnsureIndexes creates necessary indexes for the collection.
	EnsureIndexes(ctx context.Context) error
}

// TriggersCollection defines engagement trigger operations, including the
// per-agent backup trigger singleton.
type TriggersCollection interface {
	// Add inserts a new engagement trigger.
	Add(ctx context.Context, trigger *models.EngagementTrigger) error

	// Get retrieves a trigger by ID, scoped to the tenant.
	Get(ctx context.Context, tenantID, triggerID string) (*models.EngagementTrigger, error)

	// ListByAgent lists an agent's triggers in insertion order.
	ListByAgent(ctx context.Context, tenantID, agentID string) ([]models.EngagementTrigger, error)

	// Update replaces an existing trigger.
	Update(ctx context.Context, trigger *models.EngagementTrigger) error

	// Delete removes a trigger. Returns the number of deleted documents.
	Delete(ctx context.Context, tenantID, triggerID string) (int64, error)

	// GetBackup retrieves the agent's backup trigger. Returns a disabled
	// zero-value trigger when none is configured.
	GetBackup(ctx context.Context, tenantID, agentID string) (*models.BackupTrigger, error)

	// SetBackup creates or replaces the agent's backup trigger.
	SetBackup(ctx context.Context, backup *models.BackupTrigger) error

	// EnsureIndexes creates necessary indexes for the collection.
	EnsureIndexes(ctx context.Context) error
}

// LeadsCollection defines lead submission operations.
type LeadsCollection interface {
	// Add inserts a submitted lead.
	Add(ctx context.Context, lead *models.Lead) error

	// List lists leads for an agent with pagination, newest first.
	List(ctx context.Context, opts *ListLeadsOptions) ([]models.Lead, error)

	// Count returns the number of leads for an agent.
	Count(ctx context.Context, tenantID, agentID string) (int64, error)

	// EnsureIndexes creates necessary indexes for the collection.
	EnsureIndexes(ctx context.Context) error
}

// MessagesCollection defines chat message operations.
type MessagesCollection interface {
	// Add inserts a message.
	Add(ctx context.Context, message *models.Message) error

	// ListBySession lists a session's messages with pagination and sorting.
	ListBySession(ctx context.Context, opts *ListMessagesOptions) ([]models.Message, error)

	// CountBySession returns the message count for a session.
	CountBySession(ctx context.Context, tenantID, agentID, sessionID string) (int64, error)

	// EnsureIndexes creates necessary indexes for the collection.
	EnsureIndexes(ctx context.Context) error
}
