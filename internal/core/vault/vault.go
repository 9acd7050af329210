// Package vault defines the secrets interfaces and type constants. The
// service keeps the session encryption key and completion API keys
// behind this boundary.
package vault

import (
	"context"
)

// Vault defines the low-level secret operations.
type Vault interface {
	// StoreSecret stores a secret and returns its URI.
	StoreSecret(ctx context.Context, key string, value string, metadata map[string]string) (string, error)

	// GetSecret retrieves a secret by URI. Returns an error when the
	// secret does not exist.
	GetSecret(ctx context.Context, uri string) (string, error)

	// UpdateSecret updates an existing secret. Returns true on success.
	UpdateSecret(ctx context.Context, uri string, value string, metadata map[string]string) (bool, error)

	// DeleteSecret deletes a secret. Returns true when it existed.
	DeleteSecret(ctx context.Context, uri string) (bool, error)

	// Ping checks that the vault connection is alive.
	Ping(ctx context.Context) error

	// Close closes the vault connection.
	Close() error
}
