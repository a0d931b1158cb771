package memory

import (
	"context"
	"sync"
	"time"

	"nativebridge/internal/ports/output"
)

// Compile-time check to ensure MemoryUserStore implements UserResolver interface
var _ output.UserResolver = (*MemoryUserStore)(nil)

// MemoryUserStore struct - Output adapter holding the authenticated user of
// this bridge instance. A binding older than ttl is treated as logged out;
// a zero ttl never expires.
type MemoryUserStore struct {
	mu       sync.RWMutex
	userID   string
	boundAt  time.Time
	ttl      time.Duration
	fallback string
}

// NewMemoryUserStore creates a user store. fallback is returned when nothing
// is bound, which lets a configured user stand in for a login.
func NewMemoryUserStore(fallback string, ttl time.Duration) *MemoryUserStore {
	return &MemoryUserStore{
		fallback: fallback,
		ttl:      ttl,
	}
}

// CurrentUserID returns the bound user, the fallback, or false.
// Expired bindings are cleared (lazy cleanup).
func (m *MemoryUserStore) CurrentUserID(ctx context.Context) (string, bool) {
	m.mu.RLock()
	userID, boundAt := m.userID, m.boundAt
	m.mu.RUnlock()

	if userID != "" && m.ttl > 0 && time.Since(boundAt) > m.ttl {
		m.mu.Lock()
		if m.boundAt.Equal(boundAt) {
			m.userID = ""
		}
		m.mu.Unlock()
		userID = ""
	}

	if userID != "" {
		return userID, true
	}
	if m.fallback != "" {
		return m.fallback, true
	}
	return "", false
}

// SetCurrentUserID binds a user; an empty id clears the binding.
// This operation is idempotent.
func (m *MemoryUserStore) SetCurrentUserID(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.userID = userID
	m.boundAt = time.Now()
}
