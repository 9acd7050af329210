// Package dotenv provides an environment-variable vault for local
// development. Secrets like the session encryption key resolve from the
// process environment, with an in-memory overlay for secrets written at
// runtime.
package dotenv

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
)

const uriScheme = "dotenv://"

// Vault implements the vault.Vault interface over environment
// variables. Not for production use; nothing written here survives a
// restart.
type Vault struct {
	secrets map[string]string
	mu      sync.RWMutex
}

// NewVault creates a new dotenv vault instance.
func NewVault() *Vault {
	return &Vault{
		secrets: make(map[string]string),
	}
}

// StoreSecret stores a secret in the in-memory overlay and returns its
// "dotenv://{key}" URI.
func (v *Vault) StoreSecret(ctx context.Context, key string, value string, metadata map[string]string) (string, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.secrets[key] = value
	return uriScheme + key, nil
}

// GetSecret resolves a secret, environment first, overlay second. The
// environment wins so deployments can pin values the code would
// otherwise write at runtime.
func (v *Vault) GetSecret(ctx context.Context, uri string) (string, error) {
	key := strings.TrimPrefix(uri, uriScheme)

	if value := os.Getenv(key); value != "" {
		return value, nil
	}

	v.mu.RLock()
	defer v.mu.RUnlock()

	if value, ok := v.secrets[key]; ok {
		return value, nil
	}

	return "", fmt.Errorf("secret not found: %s", key)
}

// UpdateSecret writes a secret to the in-memory overlay.
func (v *Vault) UpdateSecret(ctx context.Context, uri string, value string, metadata map[string]string) (bool, error) {
	key := strings.TrimPrefix(uri, uriScheme)

	v.mu.Lock()
	defer v.mu.Unlock()

	v.secrets[key] = value
	return true, nil
}

// DeleteSecret removes a secret from the in-memory overlay. Environment
// variables are never touched.
func (v *Vault) DeleteSecret(ctx context.Context, uri string) (bool, error) {
	key := strings.TrimPrefix(uri, uriScheme)

	v.mu.Lock()
	defer v.mu.Unlock()

	if _, ok := v.secrets[key]; ok {
		delete(v.secrets, key)
		return true, nil
	}

	return false, nil
}

// Ping always succeeds; there is no connection to check.
func (v *Vault) Ping(ctx context.Context) error {
	return nil
}

// Close is a no-op.
func (v *Vault) Close() error {
	return nil
}
