package engagement_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/vcro/widget-service/internal/domain/errors"
	"github.com/vcro/widget-service/internal/domain/models"
	"github.com/vcro/widget-service/internal/services/engagement"
	"github.com/vcro/widget-service/tests/mocks"
	"github.com/vcro/widget-service/tests/testutils"
)

func newEngagementService(t *testing.T) (engagement.Service, *mocks.MockDocDBClient) {
	t.Helper()

	docDB := mocks.NewMockDocDBClient()
	svc, err := engagement.NewService(docDB)
	require.NoError(t, err)
	return svc, docDB
}

func TestNewService_NilDocDBClient(t *testing.T) {
	// Act
	svc, err := engagement.NewService(nil)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, svc)
}

func TestListTriggers_Success(t *testing.T) {
	// Arrange
	svc, docDB := newEngagementService(t)
	stored := []models.EngagementTrigger{*testutils.NewTestTrigger("contact")}
	docDB.TriggersCol.On("ListByAgent", mock.Anything, testutils.TestTenantID, testutils.TestAgentID).
		Return(stored, nil)

	// Act
	triggers, err := svc.ListTriggers(context.Background(), testutils.TestTenantID, testutils.TestAgentID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, stored, triggers)
}

func TestListTriggers_StoreFailure(t *testing.T) {
	// Arrange
	svc, docDB := newEngagementService(t)
	docDB.TriggersCol.On("ListByAgent", mock.Anything, testutils.TestTenantID, testutils.TestAgentID).
		Return(nil, errors.New("connection reset"))

	// Act
	triggers, err := svc.ListTriggers(context.Background(), testutils.TestTenantID, testutils.TestAgentID)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, triggers)
}

func TestCreateTrigger_AssignsID(t *testing.T) {
	// Arrange
	svc, docDB := newEngagementService(t)
	trigger := testutils.NewTestTrigger("pricing")
	trigger.ID = ""
	docDB.TriggersCol.On("Add", mock.Anything, trigger).Return(nil)

	// Act
	err := svc.CreateTrigger(context.Background(), trigger)

	// Assert
	require.NoError(t, err)
	assert.NotEmpty(t, trigger.ID)
	docDB.TriggersCol.AssertExpectations(t)
}

func TestCreateTrigger_RequiresKeywords(t *testing.T) {
	// Arrange
	svc, docDB := newEngagementService(t)
	trigger := testutils.NewTestTrigger()

	// Act
	err := svc.CreateTrigger(context.Background(), trigger)

	// Assert
	require.Error(t, err)
	domainErr, ok := domainerrors.GetDomainError(err)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
	docDB.TriggersCol.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestCreateTrigger_NilTrigger(t *testing.T) {
	// Arrange
	svc, _ := newEngagementService(t)

	// Act
	err := svc.CreateTrigger(context.Background(), nil)

	// Assert
	assert.True(t, domainerrors.IsInvalidArgument(err))
}

func TestUpdateTrigger_NotFound(t *testing.T) {
	// Arrange
	svc, docDB := newEngagementService(t)
	trigger := testutils.NewTestTrigger("contact")
	docDB.TriggersCol.On("Update", mock.Anything, trigger).Return(errors.New("no documents matched"))

	// Act
	err := svc.UpdateTrigger(context.Background(), trigger)

	// Assert
	assert.True(t, domainerrors.IsNotFound(err))
}

func TestDeleteTrigger_Success(t *testing.T) {
	// Arrange
	svc, docDB := newEngagementService(t)
	docDB.TriggersCol.On("Delete", mock.Anything, testutils.TestTenantID, testutils.TestTriggerID).
		Return(int64(1), nil)

	// Act
	err := svc.DeleteTrigger(context.Background(), testutils.TestTenantID, testutils.TestTriggerID)

	// Assert
	assert.NoError(t, err)
}

func TestDeleteTrigger_NotFound(t *testing.T) {
	// Arrange
	svc, docDB := newEngagementService(t)
	docDB.TriggersCol.On("Delete", mock.Anything, testutils.TestTenantID, testutils.TestTriggerID).
		Return(int64(0), nil)

	// Act
	err := svc.DeleteTrigger(context.Background(), testutils.TestTenantID, testutils.TestTriggerID)

	// Assert
	assert.True(t, domainerrors.IsNotFound(err))
}

func TestGetBackupTrigger_Success(t *testing.T) {
	// Arrange
	svc, docDB := newEngagementService(t)
	stored := testutils.NewTestBackupTrigger(5)
	docDB.TriggersCol.On("GetBackup", mock.Anything, testutils.TestTenantID, testutils.TestAgentID).
		Return(stored, nil)

	// Act
	backup, err := svc.GetBackupTrigger(context.Background(), testutils.TestTenantID, testutils.TestAgentID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, stored, backup)
}

func TestSetBackupTrigger_Success(t *testing.T) {
	// Arrange
	svc, docDB := newEngagementService(t)
	backup := testutils.NewTestBackupTrigger(5)
	docDB.TriggersCol.On("SetBackup", mock.Anything, backup).Return(nil)

	// Act
	err := svc.SetBackupTrigger(context.Background(), backup)

	// Assert
	assert.NoError(t, err)
	docDB.TriggersCol.AssertExpectations(t)
}

func TestSetBackupTrigger_NegativeCount(t *testing.T) {
	// Arrange
	svc, docDB := newEngagementService(t)
	backup := testutils.NewTestBackupTrigger(-1)

	// Act
	err := svc.SetBackupTrigger(context.Background(), backup)

	// Assert
	require.Error(t, err)
	domainErr, ok := domainerrors.GetDomainError(err)
	require.True(t, ok)
	assert.Equal(t, "VALIDATION_ERROR", domainErr.Code)
	docDB.TriggersCol.AssertNotCalled(t, "SetBackup", mock.Anything, mock.Anything)
}

func TestSetBackupTrigger_ZeroDisables(t *testing.T) {
	// Arrange
	svc, docDB := newEngagementService(t)
	backup := testutils.NewTestBackupTrigger(0)
	backup.Enabled = false
	docDB.TriggersCol.On("SetBackup", mock.Anything, backup).Return(nil)

	// Act
	err := svc.SetBackupTrigger(context.Background(), backup)

	// Assert
	assert.NoError(t, err)
}
