package prompts

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/vcro/widget-service/internal/core/cache"
	"github.com/vcro/widget-service/internal/core/docdb"
	domainerrors "github.com/vcro/widget-service/internal/domain/errors"
	"github.com/vcro/widget-service/internal/domain/models"
)

// DefaultRulesCacheTTL is the default TTL for cached rule lists.
const DefaultRulesCacheTTL = 5 * time.Minute

// Service manages prompt rules: admin CRUD against the document store
// and cached reads for the widget's matching path.
type Service interface {
	// ListRules returns the agent's rules in insertion order.
	ListRules(ctx context.Context, tenantID, agentID string) ([]models.PromptRule, error)

	// GetRule retrieves a single rule.
	GetRule(ctx context.Context, tenantID, ruleID string) (*models.PromptRule, error)

	// CreateRule validates and stores a new rule.
	CreateRule(ctx context.Context, rule *models.PromptRule) error

	// UpdateRule validates and replaces an existing rule.
	UpdateRule(ctx context.Context, rule *models.PromptRule) error

	// DeleteRule removes a rule.
	DeleteRule(ctx context.Context, tenantID, agentID, ruleID string) error

	// Match finds the canned response for a message, if any.
	Match(ctx context.Context, tenantID, agentID, message string) (string, bool, error)
}

type service struct {
	docDBClient docdb.Client
	cacheClient cache.Client
	cacheTTL    time.Duration
}

// Config holds the configuration for the prompts service.
type Config struct {
	DocDBClient docdb.Client
	CacheClient cache.Client
	CacheTTL    time.Duration
}

// NewService creates a new prompts service.
func NewService(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.DocDBClient == nil {
		return nil, fmt.Errorf("docdb client is required")
	}
	if cfg.CacheClient == nil {
		return nil, fmt.Errorf("cache client is required")
	}

	ttl := cfg.CacheTTL
	if ttl == 0 {
		ttl = DefaultRulesCacheTTL
	}

	return &service{
		docDBClient: cfg.DocDBClient,
		cacheClient: cfg.CacheClient,
		cacheTTL:    ttl,
	}, nil
}

// ListRules returns the agent's rules, serving from cache when possible.
// Cache failures degrade to a direct store read.
func (s *service) ListRules(ctx context.Context, tenantID, agentID string) ([]models.PromptRule, error) {
	key := rulesCacheKey(tenantID, agentID)

	if data, err := s.cacheClient.Get(ctx, key); err == nil && data != nil {
		var rules []models.PromptRule
		if err := json.Unmarshal(data, &rules); err == nil {
			return rules, nil
		}
		_, _ = s.cacheClient.Delete(ctx, key)
	}

	rules, err := s.docDBClient.PromptRules().ListByAgent(ctx, tenantID, agentID)
	if err != nil {
		return nil, domainerrors.NewInternalError("failed to list prompt rules", err)
	}

	if data, err := json.Marshal(rules); err == nil {
		if err := s.cacheClient.Set(ctx, key, data, s.cacheTTL); err != nil {
			log.Warn().Err(err).Str("agent_id", agentID).Msg("failed to cache prompt rules")
		}
	}

	return rules, nil
}

// GetRule retrieves a single rule.
func (s *service) GetRule(ctx context.Context, tenantID, ruleID string) (*models.PromptRule, error) {
	rule, err := s.docDBClient.PromptRules().Get(ctx, tenantID, ruleID)
	if err != nil {
		return nil, domainerrors.NewInternalError("failed to get prompt rule", err)
	}
	if rule == nil {
		return nil, domainerrors.NewNotFoundError("prompt rule", ruleID)
	}
	return rule, nil
}

// CreateRule validates and stores a new rule.
func (s *service) CreateRule(ctx context.Context, rule *models.PromptRule) error {
	if err := validateRule(rule); err != nil {
		return err
	}

	if rule.ID == "" {
		rule.ID = uuid.NewString()
	}

	if err := s.docDBClient.PromptRules().Add(ctx, rule); err != nil {
		return domainerrors.NewInternalError("failed to create prompt rule", err)
	}

	s.invalidateRules(ctx, rule.TenantID, rule.AgentID)
	return nil
}

// UpdateRule validates and replaces an existing rule.
func (s *service) UpdateRule(ctx context.Context, rule *models.PromptRule) error {
	if err := validateRule(rule); err != nil {
		return err
	}

	if err := s.docDBClient.PromptRules().Update(ctx, rule); err != nil {
		return domainerrors.NewNotFoundError("prompt rule", rule.ID)
	}

	s.invalidateRules(ctx, rule.TenantID, rule.AgentID)
	return nil
}

// DeleteRule removes a rule.
func (s *service) DeleteRule(ctx context.Context, tenantID, agentID, ruleID string) error {
	deleted, err := s.docDBClient.PromptRules().Delete(ctx, tenantID, ruleID)
	if err != nil {
		return domainerrors.NewInternalError("failed to delete prompt rule", err)
	}
	if deleted == 0 {
		return domainerrors.NewNotFoundError("prompt rule", ruleID)
	}

	s.invalidateRules(ctx, tenantID, agentID)
	return nil
}

// Match finds the canned response for a message, if any. A blank message
// is malformed input to the matcher and is rejected rather than silently
// treated as a non-match.
func (s *service) Match(ctx context.Context, tenantID, agentID, message string) (string, bool, error) {
	if message == "" {
		return "", false, domainerrors.NewInvalidArgumentError("message must not be empty", "")
	}

	rules, err := s.ListRules(ctx, tenantID, agentID)
	if err != nil {
		return "", false, err
	}

	response, ok := FindMatchingResponse(rules, message)
	return response, ok, nil
}

// validateRule enforces the rule invariants: both sides of the canned
// exchange present, and dynamic rules carrying at least one keyword so
// they can ever match.
func validateRule(rule *models.PromptRule) error {
	if rule == nil {
		return domainerrors.NewInvalidArgumentError("rule is required", "")
	}
	if rule.TenantID == "" || rule.AgentID == "" {
		return domainerrors.NewValidationError("tenant and agent IDs are required", "")
	}
	if rule.Response == "" {
		return domainerrors.NewValidationError("rule response is required", "")
	}
	if rule.IsDynamic {
		if len(nonEmptyKeywords(rule.Keywords)) == 0 {
			return domainerrors.NewValidationError("dynamic rules require at least one keyword", "")
		}
	} else if rule.Prompt == "" {
		return domainerrors.NewValidationError("static rules require a prompt", "")
	}
	return nil
}

func nonEmptyKeywords(keywords []string) []string {
	out := keywords[:0:0]
	for _, k := range keywords {
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}

func (s *service) invalidateRules(ctx context.Context, tenantID, agentID string) {
	if _, err := s.cacheClient.Delete(ctx, rulesCacheKey(tenantID, agentID)); err != nil {
		log.Warn().Err(err).Str("agent_id", agentID).Msg("failed to invalidate rules cache")
	}
}

func rulesCacheKey(tenantID, agentID string) string {
	return fmt.Sprintf("rules:%s:%s", tenantID, agentID)
}
