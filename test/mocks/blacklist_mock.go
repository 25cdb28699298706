package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/sitegarden/account-service/internal/core/ports"
)

// MockTokenBlacklist implements ports.TokenBlacklist in memory, honoring the
// TTL the same way the Redis adapter does.
type MockTokenBlacklist struct {
	mu      sync.Mutex
	revoked map[string]time.Time

	RevokeError    error
	IsRevokedError error
}

var _ ports.TokenBlacklist = (*MockTokenBlacklist)(nil)

func NewMockTokenBlacklist() *MockTokenBlacklist {
	return &MockTokenBlacklist{revoked: make(map[string]time.Time)}
}

func (m *MockTokenBlacklist) Revoke(ctx context.Context, tokenHash string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.RevokeError != nil {
		return m.RevokeError
	}
	m.revoked[tokenHash] = time.Now().Add(ttl)
	return nil
}

// TTLFor reports the remaining lifetime of a revoked token hash.
func (m *MockTokenBlacklist) TTLFor(tokenHash string) (time.Duration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	expiry, ok := m.revoked[tokenHash]
	if !ok {
		return 0, false
	}
	return time.Until(expiry), true
}

func (m *MockTokenBlacklist) IsRevoked(ctx context.Context, tokenHash string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.IsRevokedError != nil {
		return false, m.IsRevokedError
	}
	expiry, ok := m.revoked[tokenHash]
	if !ok {
		return false, nil
	}
	if time.Now().After(expiry) {
		delete(m.revoked, tokenHash)
		return false, nil
	}
	return true, nil
}
