// Package mongodb provides the leads collection implementation.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vcro/widget-service/internal/core/docdb"
	"github.com/vcro/widget-service/internal/domain/models"
)

// LeadsCollectionName is the name of the leads collection.
const LeadsCollectionName = "leads"

// LeadsCollection implements docdb.LeadsCollection for MongoDB.
type LeadsCollection struct {
	collection *mongo.Collection
}

// NewLeadsCollection creates a new leads collection wrapper.
func NewLeadsCollection(db *mongo.Database) *LeadsCollection {
	return &LeadsCollection{
		collection: db.Collection(LeadsCollectionName),
	}
}

// Add inserts a submitted lead.
func (c *LeadsCollection) Add(ctx context.Context, lead *models.Lead) error {
	if lead.ID == "" {
		return fmt.Errorf("lead ID is required")
	}

	if _, err := c.collection.InsertOne(ctx, lead); err != nil {
		return fmt.Errorf("failed to insert lead: %w", err)
	}
	return nil
}

// List lists leads for an agent with pagination, newest first.
func (c *LeadsCollection) List(ctx context.Context, opts *docdb.ListLeadsOptions) ([]models.Lead, error) {
	filter := bson.M{"tenantId": opts.TenantID, "agentId": opts.AgentID}

	findOpts := options.Find().SetSort(bson.M{"createdAt": -1})
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}
	if opts.Skip > 0 {
		findOpts.SetSkip(opts.Skip)
	}

	cursor, err := c.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	defer cursor.Close(ctx)

	var leads []models.Lead
	if err := cursor.All(ctx, &leads); err != nil {
		return nil, fmt.Errorf("failed to decode leads: %w", err)
	}
	return leads, nil
}

// Count returns the number of leads for an agent.
func (c *LeadsCollection) Count(ctx context.Context, tenantID, agentID string) (int64, error) {
	count, err := c.collection.CountDocuments(ctx, bson.M{"tenantId": tenantID, "agentId": agentID})
	if err != nil {
		return 0, fmt.Errorf("failed to count leads: %w", err)
	}
	return count, nil
}

// EnsureIndexes creates necessary indexes for the collection.
func (c *LeadsCollection) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "tenantId", Value: 1},
				{Key: "agentId", Value: 1},
				{Key: "createdAt", Value: -1},
			},
		},
		{
			Keys: bson.D{{Key: "sessionId", Value: 1}},
		},
	}

	if _, err := c.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create leads indexes: %w", err)
	}
	return nil
}
