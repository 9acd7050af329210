// Package leads handles lead form submissions captured by the chat widget.
package leads

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/vcro/widget-service/internal/core/docdb"
	domainerrors "github.com/vcro/widget-service/internal/domain/errors"
	"github.com/vcro/widget-service/internal/domain/models"
	"github.com/vcro/widget-service/internal/services/session"
)

// Service defines the interface for lead operations.
type Service interface {
	// Submit stores a lead form submission and marks the session's
	// lead form as submitted.
	Submit(ctx context.Context, tenantID, agentID, sessionID string, formData map[string]interface{}) (*models.Lead, error)

	// List returns leads for an agent, newest first.
	List(ctx context.Context, tenantID, agentID string, limit, skip int64) ([]models.Lead, error)

	// Count returns the number of leads for an agent.
	Count(ctx context.Context, tenantID, agentID string) (int64, error)
}

// ServiceConfig holds the configuration for the leads service.
type ServiceConfig struct {
	Leads    docdb.LeadsCollection
	Counters session.CountersStore
	Logger   zerolog.Logger
}

type service struct {
	leads    docdb.LeadsCollection
	counters session.CountersStore
	logger   zerolog.Logger
}

// NewService creates a new leads service.
func NewService(cfg *ServiceConfig) (Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.Leads == nil {
		return nil, fmt.Errorf("leads collection is required")
	}
	if cfg.Counters == nil {
		return nil, fmt.Errorf("counters store is required")
	}

	return &service{
		leads:    cfg.Leads,
		counters: cfg.Counters,
		logger:   cfg.Logger,
	}, nil
}

// Submit stores a lead form submission and marks the session's lead form
// as submitted.
func (s *service) Submit(ctx context.Context, tenantID, agentID, sessionID string, formData map[string]interface{}) (*models.Lead, error) {
	if len(formData) == 0 {
		return nil, domainerrors.NewValidationError("form data is required", "")
	}
	if sessionID == "" {
		return nil, domainerrors.NewValidationError("session ID is required", "")
	}

	lead := models.NewLead(tenantID, agentID, sessionID, formData)
	lead.ID = uuid.NewString()

	if err := s.leads.Add(ctx, lead); err != nil {
		return nil, fmt.Errorf("failed to store lead: %w", err)
	}

	// The counters update is best effort. A lost flag only means the
	// form could be offered again in a later turn.
	counters, err := s.counters.Get(ctx, tenantID, agentID, sessionID)
	if err == nil {
		counters.LeadFormSubmitted = true
		if saveErr := s.counters.Save(ctx, counters); saveErr != nil {
			s.logger.Warn().Err(saveErr).
				Str("tenant_id", tenantID).
				Str("agent_id", agentID).
				Msg("Failed to mark lead form submitted")
		}
	} else {
		s.logger.Warn().Err(err).
			Str("tenant_id", tenantID).
			Str("agent_id", agentID).
			Msg("Failed to load conversation counters after lead submit")
	}

	s.logger.Info().
		Str("tenant_id", tenantID).
		Str("agent_id", agentID).
		Str("lead_id", lead.ID).
		Msg("Lead submitted")

	return lead, nil
}

// List returns leads for an agent, newest first.
func (s *service) List(ctx context.Context, tenantID, agentID string, limit, skip int64) ([]models.Lead, error) {
	return s.leads.List(ctx, &docdb.ListLeadsOptions{
		TenantID: tenantID,
		AgentID:  agentID,
		Limit:    limit,
		Skip:     skip,
	})
}

// Count returns the number of leads for an agent.
func (s *service) Count(ctx context.Context, tenantID, agentID string) (int64, error) {
	return s.leads.Count(ctx, tenantID, agentID)
}
