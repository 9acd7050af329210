package prompts_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/vcro/widget-service/internal/domain/errors"
	"github.com/vcro/widget-service/internal/domain/models"
	"github.com/vcro/widget-service/internal/services/prompts"
	"github.com/vcro/widget-service/tests/mocks"
	"github.com/vcro/widget-service/tests/testutils"
)

func newPromptsService(t *testing.T, docDB *mocks.MockDocDBClient, cacheClient *mocks.MockCacheClient) prompts.Service {
	t.Helper()
	svc, err := prompts.NewService(&prompts.Config{
		DocDBClient: docDB,
		CacheClient: cacheClient,
	})
	require.NoError(t, err)
	return svc
}

func rulesKey() string {
	return "rules:" + testutils.TestTenantID + ":" + testutils.TestAgentID
}

func TestListRules_CacheMiss_ReadsStoreAndCaches(t *testing.T) {
	// Arrange
	docDB := mocks.NewMockDocDBClient()
	cacheClient := mocks.NewMockCacheClient()
	svc := newPromptsService(t, docDB, cacheClient)

	stored := []models.PromptRule{*testutils.NewTestPromptRule()}
	cacheClient.On("Get", mock.Anything, rulesKey()).Return(nil, nil)
	docDB.PromptRulesCol.On("ListByAgent", mock.Anything, testutils.TestTenantID, testutils.TestAgentID).Return(stored, nil)
	cacheClient.On("Set", mock.Anything, rulesKey(), mock.Anything, mock.Anything).Return(nil)

	// Act
	rules, err := svc.ListRules(context.Background(), testutils.TestTenantID, testutils.TestAgentID)

	// Assert
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, testutils.TestRuleID, rules[0].ID)
	cacheClient.AssertExpectations(t)
	docDB.PromptRulesCol.AssertExpectations(t)
}

func TestListRules_CacheHit_SkipsStore(t *testing.T) {
	// Arrange
	docDB := mocks.NewMockDocDBClient()
	cacheClient := mocks.NewMockCacheClient()
	svc := newPromptsService(t, docDB, cacheClient)

	cached, err := json.Marshal([]models.PromptRule{*testutils.NewTestPromptRule()})
	require.NoError(t, err)
	cacheClient.On("Get", mock.Anything, rulesKey()).Return(cached, nil)

	// Act
	rules, err := svc.ListRules(context.Background(), testutils.TestTenantID, testutils.TestAgentID)

	// Assert
	require.NoError(t, err)
	require.Len(t, rules, 1)
	docDB.PromptRulesCol.AssertNotCalled(t, "ListByAgent", mock.Anything, mock.Anything, mock.Anything)
}

func TestListRules_CacheFailure_DegradesToStore(t *testing.T) {
	// Arrange
	docDB := mocks.NewMockDocDBClient()
	cacheClient := mocks.NewMockCacheClient()
	svc := newPromptsService(t, docDB, cacheClient)

	cacheClient.On("Get", mock.Anything, rulesKey()).Return(nil, assert.AnError)
	docDB.PromptRulesCol.On("ListByAgent", mock.Anything, testutils.TestTenantID, testutils.TestAgentID).Return([]models.PromptRule{}, nil)
	cacheClient.On("Set", mock.Anything, rulesKey(), mock.Anything, mock.Anything).Return(assert.AnError)

	// Act
	rules, err := svc.ListRules(context.Background(), testutils.TestTenantID, testutils.TestAgentID)

	// Assert: cache problems never fail the read path
	require.NoError(t, err)
	assert.Empty(t, rules)
}

func TestCreateRule_AssignsIDAndInvalidatesCache(t *testing.T) {
	// Arrange
	docDB := mocks.NewMockDocDBClient()
	cacheClient := mocks.NewMockCacheClient()
	svc := newPromptsService(t, docDB, cacheClient)

	rule := models.NewPromptRule(testutils.TestTenantID, testutils.TestAgentID, "what are your hours", "We are open 9-5.", false, nil)
	docDB.PromptRulesCol.On("Add", mock.Anything, rule).Return(nil)
	cacheClient.On("Delete", mock.Anything, rulesKey()).Return(true, nil)

	// Act
	err := svc.CreateRule(context.Background(), rule)

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, rule.ID)
	cacheClient.AssertCalled(t, "Delete", mock.Anything, rulesKey())
}

func TestCreateRule_DynamicWithoutKeywords(t *testing.T) {
	// Arrange
	svc := newPromptsService(t, mocks.NewMockDocDBClient(), mocks.NewMockCacheClient())

	rule := models.NewPromptRule(testutils.TestTenantID, testutils.TestAgentID, "", "answer", true, []string{""})

	// Act
	err := svc.CreateRule(context.Background(), rule)

	// Assert
	require.Error(t, err)
	domainErr, ok := domainerrors.GetDomainError(err)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
}

func TestCreateRule_StaticWithoutPrompt(t *testing.T) {
	// Arrange
	svc := newPromptsService(t, mocks.NewMockDocDBClient(), mocks.NewMockCacheClient())

	rule := models.NewPromptRule(testutils.TestTenantID, testutils.TestAgentID, "", "answer", false, nil)

	// Act
	err := svc.CreateRule(context.Background(), rule)

	// Assert
	assert.Error(t, err)
}

func TestDeleteRule_NotFound(t *testing.T) {
	// Arrange
	docDB := mocks.NewMockDocDBClient()
	cacheClient := mocks.NewMockCacheClient()
	svc := newPromptsService(t, docDB, cacheClient)

	docDB.PromptRulesCol.On("Delete", mock.Anything, testutils.TestTenantID, "missing").Return(int64(0), nil)

	// Act
	err := svc.DeleteRule(context.Background(), testutils.TestTenantID, testutils.TestAgentID, "missing")

	// Assert
	require.Error(t, err)
	assert.True(t, domainerrors.IsNotFound(err))
}

func TestMatch_EmptyMessageRejected(t *testing.T) {
	// Arrange
	svc := newPromptsService(t, mocks.NewMockDocDBClient(), mocks.NewMockCacheClient())

	// Act
	_, _, err := svc.Match(context.Background(), testutils.TestTenantID, testutils.TestAgentID, "")

	// Assert
	require.Error(t, err)
	assert.True(t, domainerrors.IsInvalidArgument(err))
}

func TestMatch_FindsRule(t *testing.T) {
	// Arrange
	docDB := mocks.NewMockDocDBClient()
	cacheClient := mocks.NewMockCacheClient()
	svc := newPromptsService(t, docDB, cacheClient)

	rules := []models.PromptRule{*testutils.NewTestDynamicRule("pricing")}
	cached, err := json.Marshal(rules)
	require.NoError(t, err)
	cacheClient.On("Get", mock.Anything, rulesKey()).Return(cached, nil)

	// Act
	response, ok, err := svc.Match(context.Background(), testutils.TestTenantID, testutils.TestAgentID, "what is your PRICING?")

	// Assert
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Here is our pricing page.", response)
}
