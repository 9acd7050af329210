// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vcro/widget-service/internal/core/docdb"
	"github.com/vcro/widget-service/internal/domain/models"
)

// MockAgentsCollection is a mock implementation of docdb.AgentsCollection.
type MockAgentsCollection struct {
	mock.Mock
}

// Get retrieves an agent by ID.
func (m *MockAgentsCollection) Get(ctx context.Context, tenantID, agentID string) (*models.Agent, error) {
	args := m.Called(ctx, tenantID, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Agent), args.Error(1)
}

// Upsert creates or replaces an agent record.
func (m *MockAgentsCollection) Upsert(ctx context.Context, agent *models.Agent) error {
	args := m.Called(ctx, agent)
	return args.Error(0)
}

// EnsureIndexes creates indexes for the collection.
func (m *MockAgentsCollection) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockPromptRulesCollection is a mock implementation of docdb.PromptRulesCollection.
type MockPromptRulesCollection struct {
	mock.Mock
}

// Add inserts a new prompt rule.
func (m *MockPromptRulesCollection) Add(ctx context.Context, rule *models.PromptRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

// Get retrieves a rule by ID.
func (m *MockPromptRulesCollection) Get(ctx context.Context, tenantID, ruleID string) (*models.PromptRule, error) {
	args := m.Called(ctx, tenantID, ruleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PromptRule), args.Error(1)
}

// ListByAgent lists an agent's rules in insertion order.
func (m *MockPromptRulesCollection) ListByAgent(ctx context.Context, tenantID, agentID string) ([]models.PromptRule, error) {
	args := m.Called(ctx, tenantID, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PromptRule), args.Error(1)
}

// Update replaces an existing rule.
func (m *MockPromptRulesCollection) Update(ctx context.Context, rule *models.PromptRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

// Delete removes a rule.
func (m *MockPromptRulesCollection) Delete(ctx context.Context, tenantID, ruleID string) (int64, error) {
	args := m.Called(ctx, tenantID, ruleID)
	return args.Get(0).(int64), args.Error(1)
}

// EnsureIndexes creates indexes for the collection.
func (m *MockPromptRulesCollection) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockTriggersCollection is a mock implementation of docdb.TriggersCollection.
type MockTriggersCollection struct {
	mock.Mock
}

// Add inserts a new engagement trigger.
func (m *MockTriggersCollection) Add(ctx context.Context, trigger *models.EngagementTrigger) error {
	args := m.Called(ctx, trigger)
	return args.Error(0)
}

// Get retrieves a trigger by ID.
func (m *MockTriggersCollection) Get(ctx context.Context, tenantID, triggerID string) (*models.EngagementTrigger, error) {
	args := m.Called(ctx, tenantID, triggerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.EngagementTrigger), args.Error(1)
}

// ListByAgent lists an agent's triggers in insertion order.
func (m *MockTriggersCollection) ListByAgent(ctx context.Context, tenantID, agentID string) ([]models.EngagementTrigger, error) {
	args := m.Called(ctx, tenantID, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.EngagementTrigger), args.Error(1)
}

// Update replaces an existing trigger.
func (m *MockTriggersCollection) Update(ctx context.Context, trigger *models.EngagementTrigger) error {
	args := m.Called(ctx, trigger)
	return args.Error(0)
}

// Delete removes a trigger.
func (m *MockTriggersCollection) Delete(ctx context.Context, tenantID, triggerID string) (int64, error) {
	args := m.Called(ctx, tenantID, triggerID)
	return args.Get(0).(int64), args.Error(1)
}

// GetBackup retrieves the agent's backup trigger.
func (m *MockTriggersCollection) GetBackup(ctx context.Context, tenantID, agentID string) (*models.BackupTrigger, error) {
	args := m.Called(ctx, tenantID, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BackupTrigger), args.Error(1)
}

// SetBackup creates or replaces the agent's backup trigger.
func (m *MockTriggersCollection) SetBackup(ctx context.Context, backup *models.BackupTrigger) error {
	args := m.Called(ctx, backup)
	return args.Error(0)
}

// EnsureIndexes creates indexes for the collection.
func (m *MockTriggersCollection) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockLeadsCollection is a mock implementation of docdb.LeadsCollection.
type MockLeadsCollection struct {
	mock.Mock
}

// Add inserts a submitted lead.
func (m *MockLeadsCollection) Add(ctx context.Context, lead *models.Lead) error {
	args := m.Called(ctx, lead)
	return args.Error(0)
}

// List lists leads for an agent.
func (m *MockLeadsCollection) List(ctx context.Context, opts *docdb.ListLeadsOptions) ([]models.Lead, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Lead), args.Error(1)
}

// Count returns the number of leads for an agent.
func (m *MockLeadsCollection) Count(ctx context.Context, tenantID, agentID string) (int64, error) {
	args := m.Called(ctx, tenantID, agentID)
	return args.Get(0).(int64), args.Error(1)
}

// EnsureIndexes creates indexes for the collection.
func (m *MockLeadsCollection) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockMessagesCollection is a mock implementation of docdb.MessagesCollection.
type MockMessagesCollection struct {
	mock.Mock
}

// Add inserts a message.
func (m *MockMessagesCollection) Add(ctx context.Context, message *models.Message) error {
	args := m.Called(ctx, message)
	return args.Error(0)
}

// ListBySession lists a session's messages.
func (m *MockMessagesCollection) ListBySession(ctx context.Context, opts *docdb.ListMessagesOptions) ([]models.Message, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

// CountBySession returns the message count for a session.
func (m *MockMessagesCollection) CountBySession(ctx context.Context, tenantID, agentID, sessionID string) (int64, error) {
	args := m.Called(ctx, tenantID, agentID, sessionID)
	return args.Get(0).(int64), args.Error(1)
}

// EnsureIndexes creates indexes for the collection.
func (m *MockMessagesCollection) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockDocDBClient is a mock implementation of docdb.Client wired to the
// typed collection mocks above.
type MockDocDBClient struct {
	mock.Mock

	AgentsCol      *MockAgentsCollection
	PromptRulesCol *MockPromptRulesCollection
	TriggersCol    *MockTriggersCollection
	LeadsCol       *MockLeadsCollection
	MessagesCol    *MockMessagesCollection
}

// NewMockDocDBClient creates a new MockDocDBClient with all collections
// initialized.
func NewMockDocDBClient() *MockDocDBClient {
	return &MockDocDBClient{
		AgentsCol:      &MockAgentsCollection{},
		PromptRulesCol: &MockPromptRulesCollection{},
		TriggersCol:    &MockTriggersCollection{},
		LeadsCol:       &MockLeadsCollection{},
		MessagesCol:    &MockMessagesCollection{},
	}
}

// Agents returns the typed agents collection.
func (m *MockDocDBClient) Agents() docdb.AgentsCollection {
	return m.AgentsCol
}

// PromptRules returns the typed prompt rules collection.
func (m *MockDocDBClient) PromptRules() docdb.PromptRulesCollection {
	return m.PromptRulesCol
}

// Triggers returns the typed engagement triggers collection.
func (m *MockDocDBClient) Triggers() docdb.TriggersCollection {
	return m.TriggersCol
}

// Leads returns the typed leads collection.
func (m *MockDocDBClient) Leads() docdb.LeadsCollection {
	return m.LeadsCol
}

// Messages returns the typed messages collection.
func (m *MockDocDBClient) Messages() docdb.MessagesCollection {
	return m.MessagesCol
}

// EnsureIndexes creates indexes for all collections.
func (m *MockDocDBClient) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Ping verifies the database connection.
func (m *MockDocDBClient) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close closes the database connection.
func (m *MockDocDBClient) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
