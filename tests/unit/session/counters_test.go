package session_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/vcro/widget-service/internal/services/session"
	"github.com/vcro/widget-service/tests/mocks"
	"github.com/vcro/widget-service/tests/testutils"
)

func newCountersStore(t *testing.T, cacheClient *mocks.MockCacheClient, encryptor *mocks.MockEncryptor) session.CountersStore {
	t.Helper()
	store, err := session.NewCountersStore(&session.CountersConfig{
		CacheClient: cacheClient,
		Encryptor:   encryptor,
		TTL:         time.Hour,
	})
	require.NoError(t, err)
	return store
}

func TestNewCountersStore_NilConfig(t *testing.T) {
	// Act
	store, err := session.NewCountersStore(nil)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, store)
}

func TestNewCountersStore_NilCacheClient(t *testing.T) {
	// Act
	store, err := session.NewCountersStore(&session.CountersConfig{
		Encryptor: &mocks.MockEncryptor{},
	})

	// Assert
	assert.Error(t, err)
	assert.Nil(t, store)
	assert.Contains(t, err.Error(), "cache client is required")
}

func TestCountersStore_Get_Miss_ReturnsFreshCounters(t *testing.T) {
	// Arrange
	mockCache := mocks.NewMockCacheClient()
	mockEncryptor := &mocks.MockEncryptor{}
	store := newCountersStore(t, mockCache, mockEncryptor)

	key := store.BuildCacheKey(testutils.TestTenantID, testutils.TestAgentID, testutils.TestSessionID)
	mockCache.On("Get", mock.Anything, key).Return(nil, nil)

	// Act
	counters, err := store.Get(context.Background(), testutils.TestTenantID, testutils.TestAgentID, testutils.TestSessionID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 0, counters.UserMessageCount)
	assert.False(t, counters.LeadFormShown)
	assert.False(t, counters.LinkedInPromptShown)
	assert.Equal(t, testutils.TestSessionID, counters.SessionID)
}

func TestCountersStore_Get_Hit(t *testing.T) {
	// Arrange
	mockCache := mocks.NewMockCacheClient()
	mockEncryptor := &mocks.MockEncryptor{}
	store := newCountersStore(t, mockCache, mockEncryptor)

	stored := testutils.NewTestCounters()
	stored.UserMessageCount = 4
	stored.LeadFormShown = true
	plaintext, err := json.Marshal(stored)
	require.NoError(t, err)

	key := store.BuildCacheKey(testutils.TestTenantID, testutils.TestAgentID, testutils.TestSessionID)
	mockCache.On("Get", mock.Anything, key).Return([]byte("ciphertext"), nil)
	mockEncryptor.On("Decrypt", "ciphertext").Return(plaintext, nil)

	// Act
	counters, err := store.Get(context.Background(), testutils.TestTenantID, testutils.TestAgentID, testutils.TestSessionID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 4, counters.UserMessageCount)
	assert.True(t, counters.LeadFormShown)
}

func TestCountersStore_Get_DecryptFailure_ResetsEntry(t *testing.T) {
	// Arrange
	mockCache := mocks.NewMockCacheClient()
	mockEncryptor := &mocks.MockEncryptor{}
	store := newCountersStore(t, mockCache, mockEncryptor)

	key := store.BuildCacheKey(testutils.TestTenantID, testutils.TestAgentID, testutils.TestSessionID)
	mockCache.On("Get", mock.Anything, key).Return([]byte("stale"), nil)
	mockEncryptor.On("Decrypt", "stale").Return(nil, assert.AnError)
	mockCache.On("Delete", mock.Anything, key).Return(true, nil)

	// Act
	counters, err := store.Get(context.Background(), testutils.TestTenantID, testutils.TestAgentID, testutils.TestSessionID)

	// Assert: stale ciphertext resets instead of erroring
	require.NoError(t, err)
	assert.Equal(t, 0, counters.UserMessageCount)
	mockCache.AssertCalled(t, "Delete", mock.Anything, key)
}

func TestCountersStore_Save(t *testing.T) {
	// Arrange
	mockCache := mocks.NewMockCacheClient()
	mockEncryptor := &mocks.MockEncryptor{}
	store := newCountersStore(t, mockCache, mockEncryptor)

	counters := testutils.NewTestCounters()
	counters.UserMessageCount = 2

	mockEncryptor.On("Encrypt", mock.Anything).Return("ciphertext", nil)
	key := store.BuildCacheKey(testutils.TestTenantID, testutils.TestAgentID, testutils.TestSessionID)
	mockCache.On("Set", mock.Anything, key, []byte("ciphertext"), time.Hour).Return(nil)

	// Act
	err := store.Save(context.Background(), counters)

	// Assert
	require.NoError(t, err)
	mockCache.AssertExpectations(t)
	mockEncryptor.AssertExpectations(t)
}

func TestCountersStore_Save_NilCounters(t *testing.T) {
	// Arrange
	store := newCountersStore(t, mocks.NewMockCacheClient(), &mocks.MockEncryptor{})

	// Act
	err := store.Save(context.Background(), nil)

	// Assert
	assert.Error(t, err)
}

func TestCountersStore_Delete(t *testing.T) {
	// Arrange
	mockCache := mocks.NewMockCacheClient()
	store := newCountersStore(t, mockCache, &mocks.MockEncryptor{})

	key := store.BuildCacheKey(testutils.TestTenantID, testutils.TestAgentID, testutils.TestSessionID)
	mockCache.On("Delete", mock.Anything, key).Return(true, nil)

	// Act
	err := store.Delete(context.Background(), testutils.TestTenantID, testutils.TestAgentID, testutils.TestSessionID)

	// Assert
	require.NoError(t, err)
	mockCache.AssertExpectations(t)
}

func TestCountersStore_BuildCacheKey(t *testing.T) {
	// Arrange
	store := newCountersStore(t, mocks.NewMockCacheClient(), &mocks.MockEncryptor{})

	// Act
	key := store.BuildCacheKey("t1", "a1", "s1")

	// Assert
	assert.Equal(t, "counters:t1:a1:s1", key)
}
