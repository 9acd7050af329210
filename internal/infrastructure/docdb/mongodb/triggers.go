// Package mongodb provides the engagement triggers collection implementation.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vcro/widget-service/internal/domain/models"
)

const (
	// TriggersCollectionName is the name of the triggers collection.
	TriggersCollectionName = "engagement_triggers"
	// BackupTriggersCollectionName is the name of the backup triggers collection.
	BackupTriggersCollectionName = "backup_triggers"
)

// TriggersCollection implements docdb.TriggersCollection for MongoDB.
// Keyword triggers live in one collection; the per-agent backup trigger
// singleton lives in another, keyed by tenant+agent.
type TriggersCollection struct {
	triggers *mongo.Collection
	backups  *mongo.Collection
}

// NewTriggersCollection creates a new triggers collection wrapper.
func NewTriggersCollection(db *mongo.Database) *TriggersCollection {
	return &TriggersCollection{
		triggers: db.Collection(TriggersCollectionName),
		backups:  db.Collection(BackupTriggersCollectionName),
	}
}

// Add inserts a new engagement trigger.
func (c *TriggersCollection) Add(ctx context.Context, trigger *models.EngagementTrigger) error {
	if trigger.ID == "" {
		return fmt.Errorf("trigger ID is required")
	}

	trigger.CreatedAt = time.Now().UTC()
	trigger.UpdatedAt = trigger.CreatedAt

	if _, err := c.triggers.InsertOne(ctx, trigger); err != nil {
		return fmt.Errorf("failed to insert trigger: %w", err)
	}
	return nil
}

// Get retrieves a trigger by ID, scoped to the tenant.
func (c *TriggersCollection) Get(ctx context.Context, tenantID, triggerID string) (*models.EngagementTrigger, error) {
	var trigger models.EngagementTrigger
	err := c.triggers.FindOne(ctx, bson.M{"_id": triggerID, "tenantId": tenantID}).Decode(&trigger)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get trigger: %w", err)
	}
	return &trigger, nil
}

// ListByAgent lists an agent's triggers in insertion order.
func (c *TriggersCollection) ListByAgent(ctx context.Context, tenantID, agentID string) ([]models.EngagementTrigger, error) {
	filter := bson.M{"tenantId": tenantID, "agentId": agentID}
	findOpts := options.Find().SetSort(bson.M{"createdAt": 1})

	cursor, err := c.triggers.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to list triggers: %w", err)
	}
	defer cursor.Close(ctx)

	var triggers []models.EngagementTrigger
	if err := cursor.All(ctx, &triggers); err != nil {
		return nil, fmt.Errorf("failed to decode triggers: %w", err)
	}
	return triggers, nil
}

// Update replaces an existing trigger.
func (c *TriggersCollection) Update(ctx context.Context, trigger *models.EngagementTrigger) error {
	trigger.UpdatedAt = time.Now().UTC()

	filter := bson.M{"_id": trigger.ID, "tenantId": trigger.TenantID}
	result, err := c.triggers.ReplaceOne(ctx, filter, trigger)
	if err != nil {
		return fmt.Errorf("failed to update trigger: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("trigger not found: %s", trigger.ID)
	}
	return nil
}

// Delete removes a trigger.
func (c *TriggersCollection) Delete(ctx context.Context, tenantID, triggerID string) (int64, error) {
	result, err := c.triggers.DeleteOne(ctx, bson.M{"_id": triggerID, "tenantId": tenantID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete trigger: %w", err)
	}
	return result.DeletedCount, nil
}

// GetBackup retrieves the agent's backup trigger. A missing document
// yields a disabled zero-value trigger, not an error.
func (c *TriggersCollection) GetBackup(ctx context.Context, tenantID, agentID string) (*models.BackupTrigger, error) {
	var backup models.BackupTrigger
	err := c.backups.FindOne(ctx, bson.M{"tenantId": tenantID, "agentId": agentID}).Decode(&backup)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return &models.BackupTrigger{TenantID: tenantID, AgentID: agentID}, nil
		}
		return nil, fmt.Errorf("failed to get backup trigger: %w", err)
	}
	return &backup, nil
}

// SetBackup creates or replaces the agent's backup trigger.
func (c *TriggersCollection) SetBackup(ctx context.Context, backup *models.BackupTrigger) error {
	backup.UpdatedAt = time.Now().UTC()

	filter := bson.M{"tenantId": backup.TenantID, "agentId": backup.AgentID}
	opts := options.Replace().SetUpsert(true)
	if _, err := c.backups.ReplaceOne(ctx, filter, backup, opts); err != nil {
		return fmt.Errorf("failed to set backup trigger: %w", err)
	}
	return nil
}

// EnsureIndexes creates necessary indexes for both collections.
func (c *TriggersCollection) EnsureIndexes(ctx context.Context) error {
	triggerIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "tenantId", Value: 1},
				{Key: "agentId", Value: 1},
				{Key: "createdAt", Value: 1},
			},
		},
	}
	if _, err := c.triggers.Indexes().CreateMany(ctx, triggerIndexes); err != nil {
		return fmt.Errorf("failed to create trigger indexes: %w", err)
	}

	backupIndexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "tenantId", Value: 1},
				{Key: "agentId", Value: 1},
			},
			Options: options.Index().SetUnique(true),
		},
	}
	if _, err := c.backups.Indexes().CreateMany(ctx, backupIndexes); err != nil {
		return fmt.Errorf("failed to create backup trigger indexes: %w", err)
	}
	return nil
}
