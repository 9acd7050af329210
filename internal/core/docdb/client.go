// Package docdb defines the document database client interface.
package docdb

import (
	"context"
)

// Client defines the interface for a document database client.
type Client interface {
	// Agents returns the typed agents collection.
	Agents() AgentsCollection

	// PromptRules returns the typed prompt rules collection.
	PromptRules() PromptRulesCollection

	// Triggers returns the typed engagement triggers collection.
	Triggers() TriggersCollection

	// Leads returns the typed leads collection.
	Leads() LeadsCollection

	// Messages returns the typed messages collection.
	Messages() MessagesCollection

	// EnsureIndexes creates indexes for all collections.
	EnsureIndexes(ctx context.Context) error

	// Ping verifies the database connection.
	Ping(ctx context.Context) error

	// Close closes the database connection.
	Close(ctx context.Context) error
}
