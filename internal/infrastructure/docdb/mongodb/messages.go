// Package mongodb provides the messages collection implementation.
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

// MessagesCollectionName is the name of the messages collection.
const MessagesCollectionName = "messages"

// MessagesCollection implements docdb.MessagesCollection for MongoDB.
// User and assistant messages share one collection, differentiated by
// the role field.
type MessagesCollection struct {
	collection *mongo.Collection
}

// NewMessagesCollection creates a new messages collection wrapper.
func NewMessagesCollection(db *mongo.Database) *MessagesCollection {
	return &MessagesCollection{
		collection: db.Collection(MessagesCollectionName),
	}
}

// Add inserts a message.
func (c *MessagesCollection) Add(ctx context.Context, message *models.Message) error {
	if message.ID == "" {
		return fmt.Errorf("message ID is required")
	}

	if _, err := c.collection.InsertOne(ctx, message); err != nil {
		return fmt.Errorf("failed to insert message: %w", err)
	}
	return nil
}

// ListBySession lists a session's messages with pagination and sorting.
func (c *MessagesCollection) ListBySession(ctx context.Context, opts *docdb.ListMessagesOptions) ([]models.Message, error) {
	filter := bson.M{
		"tenantId":  opts.TenantID,
		"agentId":   opts.AgentID,
		"sessionId": opts.SessionID,
	}

	sortDir := 1
	if opts.OrderBy == docdb.SortOrderDesc {
		sortDir = -1
	}

	findOpts := options.Find().SetSort(bson.M{"createdAt": sortDir})
	if opts.Limit > 0 {
		findOpts.SetLimit(opts.Limit)
	}
	if opts.Skip > 0 {
		findOpts.SetSkip(opts.Skip)
	}

	cursor, err := c.collection.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err := cursor.All(ctx, &messages); err != nil {
		return nil, fmt.Errorf("failed to decode messages: %w", err)
	}
	return messages, nil
}

// CountBySession returns the message count for a session.
func (c *MessagesCollection) CountBySession(ctx context.Context, tenantID, agentID, sessionID string) (int64, error) {
	filter := bson.M{
		"tenantId":  tenantID,
		"agentId":   agentID,
		"sessionId": sessionID,
	}
	count, err := c.collection.CountDocuments(ctx, filter)
	if err != nil {
		return 0, fmt.Errorf("failed to count messages: %w", err)
	}
	return count, nil
}

// EnsureIndexes creates necessary indexes for the collection.
func (c *MessagesCollection) EnsureIndexes(ctx context.Context) error {
	indexes := []mongo.IndexModel{
		{
			Keys: bson.D{
				{Key: "tenantId", Value: 1},
				{Key: "agentId", Value: 1},
				{Key: "sessionId", Value: 1},
				{Key: "createdAt", Value: 1},
			},
		},
	}

	if _, err := c.collection.Indexes().CreateMany(ctx, indexes); err != nil {
		return fmt.Errorf("failed to create messages indexes: %w", err)
	}
	return nil
}
