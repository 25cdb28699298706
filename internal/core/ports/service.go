package ports

import (
	"context"
	"time"

	"github.com/sitegarden/account-service/internal/core/domain"
)

// CredentialHasher derives and verifies password hashes salted with the
// account's server-assigned registration time, so two accounts with the same
// password never share a hash.
type CredentialHasher interface {
	Hash(password string, registeredAt time.Time) (string, error)
	// Verify reports a mismatch as false, never as an error.
	Verify(password, hashedPassword string, registeredAt time.Time) bool
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*domain.LoggedInUser, error)
	// Authenticate resolves a bearer token to a live account. Any structural,
	// signature, expiry, or revocation failure is domain.ErrUnauthorized.
	Authenticate(ctx context.Context, token string) (*domain.Account, error)
	Logout(ctx context.Context, token string) error
}

type RegistrationService interface {
	RegisterFullAccount(ctx context.Context, reg domain.FullRegistration) (int64, error)
	RegisterStudent(ctx context.Context, reg domain.Registration, administratorID int64) (int64, error)
}

type WebsiteService interface {
	CreateWebsite(ctx context.Context, ownerID int64, title string) (int64, error)
	GetWebsite(ctx context.Context, websiteID int64) (*domain.Website, error)
}

// TokenBlacklist records revoked access tokens until they would have expired
// anyway. Keys are token hashes, never raw tokens.
type TokenBlacklist interface {
	Revoke(ctx context.Context, tokenHash string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenHash string) (bool, error)
}
