package leads_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vcro/widget-service/internal/core/docdb"
	domainerrors "github.com/vcro/widget-service/internal/domain/errors"
	"github.com/vcro/widget-service/internal/domain/models"
	"github.com/vcro/widget-service/internal/services/leads"
	"github.com/vcro/widget-service/tests/mocks"
	"github.com/vcro/widget-service/tests/testutils"
)

func newLeadsService(t *testing.T) (leads.Service, *mocks.MockLeadsCollection, *mocks.MockCountersStore) {
	t.Helper()

	leadsCol := &mocks.MockLeadsCollection{}
	counters := &mocks.MockCountersStore{}
	svc, err := leads.NewService(&leads.ServiceConfig{
		Leads:    leadsCol,
		Counters: counters,
		Logger:   zerolog.Nop(),
	})
	require.NoError(t, err)
	return svc, leadsCol, counters
}

func formData() map[string]interface{} {
	return map[string]interface{}{
		"name":  "Jamie Doe",
		"email": "jamie@example.com",
	}
}

func TestSubmit_StoresLeadAndMarksSession(t *testing.T) {
	// Arrange
	svc, leadsCol, counters := newLeadsService(t)
	leadsCol.On("Add", mock.Anything, mock.AnythingOfType("*models.Lead")).Return(nil)
	counters.On("Get", mock.Anything, testutils.TestTenantID, testutils.TestAgentID, testutils.TestSessionID).
		Return(testutils.NewTestCounters(), nil)

	var saved *models.ConversationCounters
	counters.On("Save", mock.Anything, mock.AnythingOfType("*models.ConversationCounters")).
		Run(func(args mock.Arguments) {
			saved = args.Get(1).(*models.ConversationCounters)
		}).
		Return(nil)

	// Act
	lead, err := svc.Submit(context.Background(), testutils.TestTenantID, testutils.TestAgentID, testutils.TestSessionID, formData())

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, lead.ID)
	assert.Equal(t, testutils.TestSessionID, lead.SessionID)
	require.NotNil(t, saved)
	assert.True(t, saved.LeadFormSubmitted)
}

func TestSubmit_EmptyFormData(t *testing.T) {
	// Arrange
	svc, leadsCol, _ := newLeadsService(t)

	// Act
	lead, err := svc.Submit(context.Background(), testutils.TestTenantID, testutils.TestAgentID, testutils.TestSessionID, nil)

	// Assert
	assert.Nil(t, lead)
	domainErr, ok := domainerrors.GetDomainError(err)
	require.True(t, ok)
	assert.Equal(t, domainerrors.ErrCodeValidation, domainErr.Code)
	leadsCol.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestSubmit_MissingSessionID(t *testing.T) {
	// Arrange
	svc, _, _ := newLeadsService(t)

	// Act
	lead, err := svc.Submit(context.Background(), testutils.TestTenantID, testutils.TestAgentID, "", formData())

	// Assert
	assert.Nil(t, lead)
	assert.Error(t, err)
}

func TestSubmit_StoreFailure(t *testing.T) {
	// Arrange
	svc, leadsCol, counters := newLeadsService(t)
	leadsCol.On("Add", mock.Anything, mock.Anything).Return(errors.New("write concern error"))

	// Act
	lead, err := svc.Submit(context.Background(), testutils.TestTenantID, testutils.TestAgentID, testutils.TestSessionID, formData())

	// Assert
	assert.Nil(t, lead)
	assert.Error(t, err)
	counters.AssertNotCalled(t, "Get", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmit_CountersFailureIsBestEffort(t *testing.T) {
	// Arrange
	svc, leadsCol, counters := newLeadsService(t)
	leadsCol.On("Add", mock.Anything, mock.Anything).Return(nil)
	counters.On("Get", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(nil, errors.New("redis down"))

	// Act
	lead, err := svc.Submit(context.Background(), testutils.TestTenantID, testutils.TestAgentID, testutils.TestSessionID, formData())

	// Assert
	require.NoError(t, err)
	assert.NotNil(t, lead)
}

func TestList_PassesPagination(t *testing.T) {
	// Arrange
	svc, leadsCol, _ := newLeadsService(t)
	stored := []models.Lead{*testutils.NewTestLead()}

	var opts *docdb.ListLeadsOptions
	leadsCol.On("List", mock.Anything, mock.AnythingOfType("*docdb.ListLeadsOptions")).
		Run(func(args mock.Arguments) {
			opts = args.Get(1).(*docdb.ListLeadsOptions)
		}).
		Return(stored, nil)

	// Act
	result, err := svc.List(context.Background(), testutils.TestTenantID, testutils.TestAgentID, 25, 50)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, stored, result)
	require.NotNil(t, opts)
	assert.Equal(t, int64(25), opts.Limit)
	assert.Equal(t, int64(50), opts.Skip)
}

func TestCount_ReturnsTotal(t *testing.T) {
	// Arrange
	svc, leadsCol, _ := newLeadsService(t)
	leadsCol.On("Count", mock.Anything, testutils.TestTenantID, testutils.TestAgentID).
		Return(int64(7), nil)

	// Act
	total, err := svc.Count(context.Background(), testutils.TestTenantID, testutils.TestAgentID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(7), total)
}
