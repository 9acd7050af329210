// Package mongodb provides the prompt rules collection implementation.
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

// PromptRulesCollectionName is the name of the prompt rules collection.
const PromptRulesCollectionName = "prompt_rules"

// PromptRulesCollection implements docdb.PromptRulesCollection for MongoDB.
type PromptRulesCollection struct {
	collection *mongo.Collection
}

// NewPromptRulesCollection creates a new prompt rules collection wrapper.
func NewPromptRulesCollection(db *mongo.Database) *PromptRulesCollection {
	return &PromptRulesCollection{
		collection: db.Collection(PromptRulesCollectionName),
	}
}

// Add inserts a new prompt rule.
func (c *PromptRulesCollection) Add(ctx context.Context, rule *models.PromptRule) error {
	if rule.ID == "" {
		return fmt.Errorf("rule ID is required")
	}

	rule.CreatedAt = time.Now().UTC()
	rule.UpdatedAt = rule.CreatedAt

	if _, err := c.collection.InsertOne(ctx, rule); err != nil {
		return fmt.Errorf("failed to insert prompt rule: %w", err)
	}
	return nil
}

// Get retrieves a rule by ID, scoped to the tenant.
func (c *PromptRulesCollection) Get(ctx context.Context, tenantID, ruleID string) (*models.PromptRule, error) {
	var rule models.PromptRule
	err := c.collection.FindOne(ctx, bson.M{"_id": ruleID, "tenantId": tenantID}).Decode(&rule)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get prompt rule: %w", err)
	}
	return &rule, nil
}

// ListByAgent lists an agent's rules in insertion order. The order is
// load-bearing: the matcher breaks ties by it.
func (c *PromptRulesCollection) ListByAgent(ctx context.Context, tenantID, agentID string) ([]models.PromptRule, error) {
	filter := bson.M{"tenantId": tenantID, "agentId": agentID}
	findOpts := options.Find().SetSort(bson.M{"createdAt": 1})

	cursor, err := c.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to list prompt rules: %w", err)
	}
	defer cursor.Close(ctx)

	var rules []models.PromptRule
	if err := cursor.All(ctx, &rules); err != nil {
		return nil, fmt.Errorf("failed to decode prompt rules: %w", err)
	}
	return rules, nil
}

// Update replaces an existing rule.
func (c *PromptRulesCollection) Update(ctx context.Context, rule *models.PromptRule) error {
	rule.UpdatedAt = time.Now().UTC()

	filter := bson.M{"_id": rule.ID, "tenantId": rule.TenantID}
	result, err := c.collection.ReplaceOne(ctx, filter, rule)
	if err != nil {
		return fmt.Errorf("failed to update prompt rule: %w", err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("prompt rule not found: %s", rule.ID)
	}
	return nil
}

// Delete removes a rule.
func (c *PromptRulesCollection) Delete(ctx context.Context, tenantID, ruleID string) (int64, error) {
	result, err := c.collection.DeleteOne(ctx, bson.M{"_id": ruleID, "tenantId": tenantID})
	if err != nil {
		return 0, fmt.Errorf("failed to delete prompt rule: %w", err)
	}
	return result.DeletedCount, nil
}

// EnsureIndexes creates necessary indexes for the collection.
func (c *PromptRulesCollection) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "tenantId", Value: 1},
				{Key: "agentId", Value: 1},
				{Key: "createdAt", Value: 1},
			},
		},
	}

	if _, err := c.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create prompt rules indexes: %w", err)
	}
	return nil
}
