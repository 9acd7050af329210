package engagement

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/vcro/widget-service/internal/core/docdb"
	domainerrors "github.com/vcro/widget-service/internal/domain/errors"
	"github.com/vcro/widget-service/internal/domain/models"
)

// Service manages engagement triggers and the per-agent backup trigger.
type Service interface {
	// ListTriggers returns the agent's keyword triggers.
	ListTriggers(ctx context.Context, tenantID, agentID string) ([]models.EngagementTrigger, error)

	// CreateTrigger validates and stores a new keyword trigger.
	CreateTrigger(ctx context.Context, trigger *models.EngagementTrigger) error

	// UpdateTrigger validates and replaces an existing trigger.
	UpdateTrigger(ctx context.Context, trigger *models.EngagementTrigger) error

	// DeleteTrigger removes a trigger.
	DeleteTrigger(ctx context.Context, tenantID, triggerID string) error

	// GetBackupTrigger retrieves the agent's backup trigger.
	GetBackupTrigger(ctx context.Context, tenantID, agentID string) (*models.BackupTrigger, error)

	// SetBackupTrigger validates and upserts the agent's backup trigger.
	SetBackupTrigger(ctx context.Context, backup *models.BackupTrigger) error
}

type service struct {
	docDBClient docdb.Client
}

// NewService creates a new engagement service.
func NewService(docDBClient docdb.Client) (Service, error) {
	if docDBClient == nil {
		return nil, fmt.Errorf("docdb client is required")
	}
	return &service{docDBClient: docDBClient}, nil
}

// ListTriggers returns the agent's keyword triggers.
func (s *service) ListTriggers(ctx context.Context, tenantID, agentID string) ([]models.EngagementTrigger, error) {
	triggers, err := s.docDBClient.Triggers().ListByAgent(ctx, tenantID, agentID)
	if err != nil {
		return nil, domainerrors.NewInternalError("failed to list triggers", err)
	}
	return triggers, nil
}

// CreateTrigger validates and stores a new keyword trigger.
func (s *service) CreateTrigger(ctx context.Context, trigger *models.EngagementTrigger) error {
	if err := validateTrigger(trigger); err != nil {
		return err
	}

	if trigger.ID == "" {
		trigger.ID = uuid.NewString()
	}

	if err := s.docDBClient.Triggers().Add(ctx, trigger); err != nil {
		return domainerrors.NewInternalError("failed to create trigger", err)
	}
	return nil
}

// UpdateTrigger validates and replaces an existing trigger.
func (s *service) UpdateTrigger(ctx context.Context, trigger *models.EngagementTrigger) error {
	if err := validateTrigger(trigger); err != nil {
		return err
	}

	if err := s.docDBClient.Triggers().Update(ctx, trigger); err != nil {
		return domainerrors.NewNotFoundError("trigger", trigger.ID)
	}
	return nil
}

// DeleteTrigger removes a trigger.
func (s *service) DeleteTrigger(ctx context.Context, tenantID, triggerID string) error {
	deleted, err := s.docDBClient.Triggers().Delete(ctx, tenantID, triggerID)
	if err != nil {
		return domainerrors.NewInternalError("failed to delete trigger", err)
	}
	if deleted == 0 {
		return domainerrors.NewNotFoundError("trigger", triggerID)
	}
	return nil
}

// GetBackupTrigger retrieves the agent's backup trigger.
func (s *service) GetBackupTrigger(ctx context.Context, tenantID, agentID string) (*models.BackupTrigger, error) {
	backup, err := s.docDBClient.Triggers().GetBackup(ctx, tenantID, agentID)
	if err != nil {
		return nil, domainerrors.NewInternalError("failed to get backup trigger", err)
	}
	return backup, nil
}

// SetBackupTrigger validates and upserts the agent's backup trigger.
// The message count must be non-negative; 0 disables the trigger.
func (s *service) SetBackupTrigger(ctx context.Context, backup *models.BackupTrigger) error {
	if backup == nil {
		return domainerrors.NewInvalidArgumentError("backup trigger is required", "")
	}
	if backup.TenantID == "" || backup.AgentID == "" {
		return domainerrors.NewValidationError("tenant and agent IDs are required", "")
	}
	if backup.MessageCount < 0 {
		return domainerrors.NewValidationError("message count must be non-negative", "")
	}

	if err := s.docDBClient.Triggers().SetBackup(ctx, backup); err != nil {
		return domainerrors.NewInternalError("failed to set backup trigger", err)
	}
	return nil
}

func validateTrigger(trigger *models.EngagementTrigger) error {
	if trigger == nil {
		return domainerrors.NewInvalidArgumentError("trigger is required", "")
	}
	if trigger.TenantID == "" || trigger.AgentID == "" {
		return domainerrors.NewValidationError("tenant and agent IDs are required", "")
	}
	if len(trigger.Keywords) == 0 {
		return domainerrors.NewValidationError("trigger requires at least one keyword", "")
	}
	return nil
}
