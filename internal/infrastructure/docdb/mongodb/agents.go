// Package mongodb provides the agents collection implementation.
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

// AgentsCollectionName is the name of the agents collection.
const AgentsCollectionName = "agents"

// AgentsCollection implements docdb.AgentsCollection for MongoDB.
type AgentsCollection struct {
	collection *mongo.Collection
}

// NewAgentsCollection creates a new agents collection wrapper.
func NewAgentsCollection(db *mongo.Database) *AgentsCollection {
	return &AgentsCollection{
		collection: db.Collection(AgentsCollectionName),
	}
}

// Get retrieves an agent by ID, scoped to the tenant.
func (c *AgentsCollection) Get(ctx context.Context, tenantID, agentID string) (*models.Agent, error) {
	var agent models.Agent
	err := c.collection.FindOne(ctx, bson.M{"_id": agentID, "tenantId": tenantID}).Decode(&agent)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get agent: %w", err)
	}
	return &agent, nil
}

// Upsert creates or replaces an agent record.
func (c *AgentsCollection) Upsert(ctx context.Context, agent *models.Agent) error {
	if agent.ID == "" {
		return fmt.Errorf("agent ID is required")
	}

	agent.UpdatedAt = time.Now().UTC()
	if agent.CreatedAt.IsZero() {
		agent.CreatedAt = agent.UpdatedAt
	}

	filter := bson.M{"_id": agent.ID, "tenantId": agent.TenantID}
	opts := options.Replace().SetUpsert(true)
	if _, err := c.collection.ReplaceOne(ctx, filter, agent, opts); err != nil {
		return fmt.Errorf("failed to upsert agent: %w", err)
	}
	return nil
}

// EnsureIndexes creates necessary indexes for the collection.
func (c *AgentsCollection) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "tenantId", Value: 1}},
		},
	}

	if _, err := c.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create agents indexes: %w", err)
	}
	return nil
}
