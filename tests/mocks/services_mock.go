package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/vcro/widget-service/internal/domain/models"
	"github.com/vcro/widget-service/internal/services/completion"
	"github.com/vcro/widget-service/internal/services/conversation"
)

// MockCountersStore is a mock implementation of session.CountersStore.
type MockCountersStore struct {
	mock.Mock
}

// Get retrieves the counters for a session.
func (m *MockCountersStore) Get(ctx context.Context, tenantID, agentID, sessionID string) (*models.ConversationCounters, error) {
	args := m.Called(ctx, tenantID, agentID, sessionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ConversationCounters), args.Error(1)
}

// Save stores the counters.
func (m *MockCountersStore) Save(ctx context.Context, counters *models.ConversationCounters) error {
	args := m.Called(ctx, counters)
	return args.Error(0)
}

// Delete removes the counters for a session.
func (m *MockCountersStore) Delete(ctx context.Context, tenantID, agentID, sessionID string) error {
	args := m.Called(ctx, tenantID, agentID, sessionID)
	return args.Error(0)
}

// BuildCacheKey generates the cache key for a session's counters.
func (m *MockCountersStore) BuildCacheKey(tenantID, agentID, sessionID string) string {
	args := m.Called(tenantID, agentID, sessionID)
	return args.String(0)
}

// MockPromptsService is a mock implementation of prompts.Service.
type MockPromptsService struct {
	mock.Mock
}

// ListRules returns the agent's rules in insertion order.
func (m *MockPromptsService) ListRules(ctx context.Context, tenantID, agentID string) ([]models.PromptRule, error) {
	args := m.Called(ctx, tenantID, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PromptRule), args.Error(1)
}

// GetRule retrieves a single rule.
func (m *MockPromptsService) GetRule(ctx context.Context, tenantID, ruleID string) (*models.PromptRule, error) {
	args := m.Called(ctx, tenantID, ruleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PromptRule), args.Error(1)
}

// CreateRule validates and stores a new rule.
func (m *MockPromptsService) CreateRule(ctx context.Context, rule *models.PromptRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

// UpdateRule validates and replaces an existing rule.
func (m *MockPromptsService) UpdateRule(ctx context.Context, rule *models.PromptRule) error {
	args := m.Called(ctx, rule)
	return args.Error(0)
}

// DeleteRule removes a rule.
func (m *MockPromptsService) DeleteRule(ctx context.Context, tenantID, agentID, ruleID string) error {
	args := m.Called(ctx, tenantID, agentID, ruleID)
	return args.Error(0)
}

// Match finds the canned response for a message, if any.
func (m *MockPromptsService) Match(ctx context.Context, tenantID, agentID, message string) (string, bool, error) {
	args := m.Called(ctx, tenantID, agentID, message)
	return args.String(0), args.Bool(1), args.Error(2)
}

// MockEngagementService is a mock implementation of engagement.Service.
type MockEngagementService struct {
	mock.Mock
}

// ListTriggers returns the agent's keyword triggers.
func (m *MockEngagementService) ListTriggers(ctx context.Context, tenantID, agentID string) ([]models.EngagementTrigger, error) {
	args := m.Called(ctx, tenantID, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.EngagementTrigger), args.Error(1)
}

// CreateTrigger validates and stores a new keyword trigger.
func (m *MockEngagementService) CreateTrigger(ctx context.Context, trigger *models.EngagementTrigger) error {
	args := m.Called(ctx, trigger)
	return args.Error(0)
}

// UpdateTrigger validates and replaces an existing trigger.
func (m *MockEngagementService) UpdateTrigger(ctx context.Context, trigger *models.EngagementTrigger) error {
	args := m.Called(ctx, trigger)
	return args.Error(0)
}

// DeleteTrigger removes a trigger.
func (m *MockEngagementService) DeleteTrigger(ctx context.Context, tenantID, triggerID string) error {
	args := m.Called(ctx, tenantID, triggerID)
	return args.Error(0)
}

// GetBackupTrigger retrieves the agent's backup trigger.
func (m *MockEngagementService) GetBackupTrigger(ctx context.Context, tenantID, agentID string) (*models.BackupTrigger, error) {
	args := m.Called(ctx, tenantID, agentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.BackupTrigger), args.Error(1)
}

// SetBackupTrigger validates and upserts the agent's backup trigger.
func (m *MockEngagementService) SetBackupTrigger(ctx context.Context, backup *models.BackupTrigger) error {
	args := m.Called(ctx, backup)
	return args.Error(0)
}

// MockCompletionClient is a mock implementation of completion.Client.
type MockCompletionClient struct {
	mock.Mock
}

// Complete sends a message and returns the full response.
func (m *MockCompletionClient) Complete(ctx context.Context, req *completion.CompleteRequest) (*completion.CompleteResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*completion.CompleteResponse), args.Error(1)
}

// CompleteStream sends a message and returns a reader for the streamed
// response.
func (m *MockCompletionClient) CompleteStream(ctx context.Context, req *completion.CompleteRequest) (completion.StreamReader, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(completion.StreamReader), args.Error(1)
}

// Close releases any resources held by the client.
func (m *MockCompletionClient) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockStreamReader is a mock implementation of completion.StreamReader.
type MockStreamReader struct {
	mock.Mock
}

// Read returns the next chunk from the stream.
func (m *MockStreamReader) Read() (*completion.StreamChunk, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*completion.StreamChunk), args.Error(1)
}

// Close releases resources associated with the reader.
func (m *MockStreamReader) Close() error {
	args := m.Called()
	return args.Error(0)
}

// MockConversationService is a mock implementation of conversation.Service.
type MockConversationService struct {
	mock.Mock
}

// HandleTurn processes one user message and returns the full reply.
func (m *MockConversationService) HandleTurn(ctx context.Context, req *conversation.TurnRequest) (*conversation.TurnResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*conversation.TurnResult), args.Error(1)
}

// HandleTurnStream processes one user message and streams the reply.
func (m *MockConversationService) HandleTurnStream(ctx context.Context, req *conversation.TurnRequest) (conversation.TurnStream, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(conversation.TurnStream), args.Error(1)
}

// History returns the session's messages.
func (m *MockConversationService) History(ctx context.Context, tenantID, agentID, sessionID string, limit, skip int64) ([]models.Message, error) {
	args := m.Called(ctx, tenantID, agentID, sessionID, limit, skip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

// Reset deletes the session's counters.
func (m *MockConversationService) Reset(ctx context.Context, tenantID, agentID, sessionID string) error {
	args := m.Called(ctx, tenantID, agentID, sessionID)
	return args.Error(0)
}

// MockLeadsService is a mock implementation of leads.Service.
type MockLeadsService struct {
	mock.Mock
}

// Submit stores a lead form submission.
func (m *MockLeadsService) Submit(ctx context.Context, tenantID, agentID, sessionID string, formData map[string]interface{}) (*models.Lead, error) {
	args := m.Called(ctx, tenantID, agentID, sessionID, formData)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Lead), args.Error(1)
}

// List returns leads for an agent.
func (m *MockLeadsService) List(ctx context.Context, tenantID, agentID string, limit, skip int64) ([]models.Lead, error) {
	args := m.Called(ctx, tenantID, agentID, limit, skip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Lead), args.Error(1)
}

// Count returns the number of leads for an agent.
func (m *MockLeadsService) Count(ctx context.Context, tenantID, agentID string) (int64, error) {
	args := m.Called(ctx, tenantID, agentID)
	return args.Get(0).(int64), args.Error(1)
}
