package session

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/vcro/widget-service/internal/core/cache"
	"github.com/vcro/widget-service/internal/domain/models"
	"github.com/vcro/widget-service/internal/pkg/encryption"
)

// CountersStore persists per-session conversation counters. Counters live
// in the cache under the session TTL, so a new session identifier starts
// from zero implicitly.
type CountersStore interface {
	// Get retrieves the counters for a session. A missing or unreadable
	// entry yields fresh zeroed counters, never an error caused by stale
	// ciphertext.
	Get(ctx context.Context, tenantID, agentID, sessionID string) (*models.ConversationCounters, error)

	// Save stores the counters with the configured TTL.
	Save(ctx context.Context, counters *models.ConversationCounters) error

	// Delete removes the counters for a session.
	Delete(ctx context.Context, tenantID, agentID, sessionID string) error

	// BuildCacheKey generates the cache key for a session's counters.
	BuildCacheKey(tenantID, agentID, sessionID string) string
}

// countersStore implements CountersStore over the cache client.
type countersStore struct {
	cacheClient cache.Client
	encryptor   encryption.Encryptor
	ttl         time.Duration
}

// CountersConfig holds the configuration for the counters store.
type CountersConfig struct {
	CacheClient cache.Client
	Encryptor   encryption.Encryptor
	TTL         time.Duration
}

// NewCountersStore creates a counters store.
func NewCountersStore(cfg *CountersConfig) (CountersStore, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.CacheClient == nil {
		return nil, fmt.Errorf("cache client is required")
	}
	if cfg.Encryptor == nil {
		return nil, fmt.Errorf("encryptor is required")
	}

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = DefaultSessionTTL
	}

	return &countersStore{
		cacheClient: cfg.CacheClient,
		encryptor:   cfg.Encryptor,
		ttl:         ttl,
	}, nil
}

// Get retrieves the counters for a session.
// Returns zeroed counters (not an error) if decryption fails (e.g. key
// changed) - the stale entry is deleted and the session counts restart.
func (s *countersStore) Get(ctx context.Context, tenantID, agentID, sessionID string) (*models.ConversationCounters, error) {
	key := s.BuildCacheKey(tenantID, agentID, sessionID)

	encrypted, err := s.cacheClient.Get(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("failed to get counters from cache: %w", err)
	}

	if encrypted == nil {
		return models.NewConversationCounters(tenantID, agentID, sessionID), nil
	}

	decrypted, err := s.encryptor.Decrypt(string(encrypted))
	if err != nil {
		_, _ = s.cacheClient.Delete(ctx, key)
		return models.NewConversationCounters(tenantID, agentID, sessionID), nil
	}

	var counters models.ConversationCounters
	if err := json.Unmarshal(decrypted, &counters); err != nil {
		_, _ = s.cacheClient.Delete(ctx, key)
		return models.NewConversationCounters(tenantID, agentID, sessionID), nil
	}

	return &counters, nil
}

// Save stores the counters in the cache.
func (s *countersStore) Save(ctx context.Context, counters *models.ConversationCounters) error {
	if counters == nil {
		return fmt.Errorf("counters are required")
	}

	counters.UpdatedAt = time.Now().UTC()
	if counters.CreatedAt.IsZero() {
		counters.CreatedAt = counters.UpdatedAt
	}

	data, err := json.Marshal(counters)
	if err != nil {
		return fmt.Errorf("failed to marshal counters: %w", err)
	}

	encrypted, err := s.encryptor.Encrypt(data)
	if err != nil {
		return fmt.Errorf("failed to encrypt counters: %w", err)
	}

	key := s.BuildCacheKey(counters.TenantID, counters.AgentID, counters.SessionID)
	if err := s.cacheClient.Set(ctx, key, []byte(encrypted), s.ttl); err != nil {
		return fmt.Errorf("failed to store counters in cache: %w", err)
	}

	return nil
}

// Delete removes the counters for a session.
func (s *countersStore) Delete(ctx context.Context, tenantID, agentID, sessionID string) error {
	key := s.BuildCacheKey(tenantID, agentID, sessionID)
	_, err := s.cacheClient.Delete(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to delete counters: %w", err)
	}
	return nil
}

// BuildCacheKey generates the cache key for a session's counters.
func (s *countersStore) BuildCacheKey(tenantID, agentID, sessionID string) string {
	return fmt.Sprintf("counters:%s:%s:%s", tenantID, agentID, sessionID)
}
