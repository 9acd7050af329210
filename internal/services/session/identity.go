// Package session provides the widget session identity manager and the
// per-session conversation counters store.
package session

import (
	"time"

	"github.com/google/uuid"
)

const (
	// DefaultSessionTTL is the default session cookie lifetime.
	DefaultSessionTTL = 30 * 24 * time.Hour

	// DefaultCookieName is the default session cookie name.
	DefaultCookieName = "vcro_session_id"
)

// CookieStore abstracts the persistence boundary for the session
// identifier. The API layer implements it over the HTTP request/response
// cookie pair; a nil store models an environment with no persistence
// backend (e.g. server-side rendering).
type CookieStore interface {
	// Get returns the cookie value, or false if absent or unreadable.
	Get(name string) (string, bool)

	// Set persists the cookie with the given max age.
	Set(name, value string, maxAge time.Duration)

	// Clear removes the cookie by expiring it immediately.
	Clear(name string)
}

// IdentityManager issues, persists, and validates the durable anonymous
// session identifier for a widget instance. All operations are no-ops
// (returning the zero value) when the cookie store is unavailable; none
// of them perform network calls or panic.
type IdentityManager struct {
	cookieName string
	ttl        time.Duration
}

// NewIdentityManager creates an identity manager. Zero-value arguments
// fall back to the defaults.
func NewIdentityManager(cookieName string, ttl time.Duration) *IdentityManager {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &IdentityManager{cookieName: cookieName, ttl: ttl}
}

// SessionID reads the persisted session identifier. It returns false when
// the store is unavailable or holds no value.
func (m *IdentityManager) SessionID(store CookieStore) (string, bool) {
	if store == nil {
		return "", false
	}
	id, ok := store.Get(m.cookieName)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// SetSessionID persists the identifier with the configured expiry from
// the call time.
func (m *IdentityManager) SetSessionID(store CookieStore, id string) {
	if store == nil {
		return
	}
	store.Set(m.cookieName, id, m.ttl)
}

// ClearSession removes the persisted identifier immediately.
func (m *IdentityManager) ClearSession(store CookieStore) {
	if store == nil {
		return
	}
	store.Clear(m.cookieName)
}

// EnsureSessionID returns the current valid session identifier, issuing
// and persisting a fresh one when the stored value is absent or fails
// UUIDv4 validation. The boolean reports whether a new identifier was
// issued (and therefore whether conversation counters start from zero).
func (m *IdentityManager) EnsureSessionID(store CookieStore) (string, bool) {
	current, ok := m.SessionID(store)
	if ok && IsValidUUID(current) {
		return current, false
	}
	id := GenerateSessionID()
	m.SetSessionID(store, id)
	return id, true
}

// GenerateSessionID produces a cryptographically random UUIDv4.
func GenerateSessionID() string {
	return uuid.NewString()
}

// IsValidUUID reports whether s is a UUIDv4-shaped string: version nibble
// 4 and RFC 4122 variant, case-insensitive. Other UUID versions and
// arbitrary strings are rejected.
func IsValidUUID(s string) bool {
	u, err := uuid.Parse(s)
	if err != nil {
		return false
	}
	// uuid.Parse accepts urn: and braced forms; the cookie carries the
	// canonical 36-character shape only.
	if len(s) != 36 {
		return false
	}
	return u.Version() == 4 && u.Variant() == uuid.RFC4122
}

// ConvertLegacySessionID returns id unchanged when it already validates
// as UUIDv4, and a freshly generated identifier otherwise. Legacy values
// are discarded rather than deterministically remapped, so a returning
// legacy-session visitor gets a new, unlinked session.
func ConvertLegacySessionID(id string) string {
	if IsValidUUID(id) {
		return id
	}
	return GenerateSessionID()
}
