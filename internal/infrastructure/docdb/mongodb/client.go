// Package mongodb provides MongoDB client implementation.
package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/vcro/widget-service/internal/core/docdb"
)

// Client implements the docdb.Client interface for MongoDB.
type Client struct {
	client      *mongo.Client
	agents      *AgentsCollection
	promptRules *PromptRulesCollection
	triggers    *TriggersCollection
	leads       *LeadsCollection
	messages    *MessagesCollection
}

// ClientConfig holds MongoDB connection configuration.
type ClientConfig struct {
	URI          string
	DatabaseName string
}

// NewClient creates a new MongoDB client.
func NewClient(ctx context.Context, config *ClientConfig) (*Client, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if config.URI == "" {
		return nil, fmt.Errorf("mongodb URI is required")
	}
	if config.DatabaseName == "" {
		return nil, fmt.Errorf("database name is required")
	}

	clientOpts := options.Client().ApplyURI(config.URI)
	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	// Verify connection
	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	db := client.Database(config.DatabaseName)

	return &Client{
		client:      client,
		agents:      NewAgentsCollection(db),
		promptRules: NewPromptRulesCollection(db),
		triggers:    NewTriggersCollection(db),
		leads:       NewLeadsCollection(db),
		messages:    NewMessagesCollection(db),
	}, nil
}

// Agents returns the typed agents collection.
func (c *Client) Agents() docdb.AgentsCollection {
	return c.agents
}

// PromptRules returns the typed prompt rules collection.
func (c *Client) PromptRules() docdb.PromptRulesCollection {
	return c.promptRules
}

// Triggers returns the typed engagement triggers collection.
func (c *Client) Triggers() docdb.TriggersCollection {
	return c.triggers
}

// Leads returns the typed leads collection.
func (c *Client) Leads() docdb.LeadsCollection {
	return c.leads
}

// Messages returns the typed messages collection.
func (c *Client) Messages() docdb.MessagesCollection {
	return c.messages
}

// EnsureIndexes creates all necessary indexes for all collections.
func (c *Client) EnsureIndexes(ctx context.Context) error {
	if err := c.agents.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("failed to ensure agents indexes: %w", err)
	}
	if err := c.promptRules.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("failed to ensure prompt rules indexes: %w", err)
	}
	if err := c.triggers.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("failed to ensure triggers indexes: %w", err)
	}
	if err := c.leads.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("failed to ensure leads indexes: %w", err)
	}
	if err := c.messages.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("failed to ensure messages indexes: %w", err)
	}
	return nil
}

// Ping verifies the connection to MongoDB.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.client.Ping(ctx, nil); err != nil {
		return fmt.Errorf("mongodb ping failed: %w", err)
	}
	return nil
}

// Close closes the MongoDB connection.
func (c *Client) Close(ctx context.Context) error {
	if err := c.client.Disconnect(ctx); err != nil {
		return fmt.Errorf("failed to disconnect from mongodb: %w", err)
	}
	return nil
}
