package vault

import (
	"context"
)

// Client is the vault handle the rest of the service depends on. It
// mirrors Vault and adds an optional read-through cache flag for
// backends that support it.
type Client interface {
	// GetVault returns the underlying Vault implementation.
	GetVault() Vault

	// StoreSecret stores a secret and returns its URI.
	StoreSecret(ctx context.Context, key string, value string, metadata map[string]string) (string, error)

	// GetSecret retrieves a secret by URI. When useCache is true and the
	// backend caches, the cached value may be returned.
	GetSecret(ctx context.Context, uri string, useCache bool) (string, error)

	// UpdateSecret updates an existing secret. Returns true on success.
	UpdateSecret(ctx context.Context, uri string, value string, metadata map[string]string) (bool, error)

	// DeleteSecret deletes a secret. Returns true when it existed.
	DeleteSecret(ctx context.Context, uri string) (bool, error)

	// Ping checks that the vault connection is alive.
	Ping(ctx context.Context) error

	// Close closes the vault client connection.
	Close() error
}
