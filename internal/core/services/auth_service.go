package services

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sitegarden/account-service/internal/core/domain"
	"github.com/sitegarden/account-service/internal/core/ports"
)

const DefaultAccessTokenTTL = 30 * time.Minute

type AuthService struct {
	accounts  ports.AccountRepository
	hasher    ports.CredentialHasher
	blacklist ports.TokenBlacklist
	secret    []byte
	tokenTTL  time.Duration
}

var _ ports.AuthService = (*AuthService)(nil)

func NewAuthService(
	accounts ports.AccountRepository,
	hasher ports.CredentialHasher,
	blacklist ports.TokenBlacklist,
	secret []byte,
	tokenTTL time.Duration,
) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = DefaultAccessTokenTTL
	}
	return &AuthService{
		accounts:  accounts,
		hasher:    hasher,
		blacklist: blacklist,
		secret:    secret,
		tokenTTL:  tokenTTL,
	}
}

// Login verifies the credentials and issues an access token. Unknown
// username and wrong password produce the same error so usernames cannot be
// enumerated.
func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.LoggedInUser, error) {
	account, err := s.accounts.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !s.hasher.Verify(password, account.HashedPassword, account.RegistrationTime) {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := s.issueToken(account.Username)
	if err != nil {
		return nil, err
	}

	return &domain.LoggedInUser{
		AccountID:   account.ID,
		AccessToken: token,
		Username:    account.Username,
		GivenName:   account.GivenName,
		FamilyName:  account.FamilyName,
		Email:       account.Email,
		PhoneNumber: account.PhoneNumber,
	}, nil
}

// Authenticate resolves a bearer token to a live account. The username is
// re-resolved on every call, so tokens for a removed account stop working
// even before they expire.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*domain.Account, error) {
	claims, err := s.parseToken(token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}

	revoked, err := s.blacklist.IsRevoked(ctx, HashToken(token))
	if err != nil {
		return nil, err
	}
	if revoked {
		return nil, domain.ErrUnauthorized
	}

	account, err := s.accounts.FindByUsername(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}
	if account == nil {
		return nil, domain.ErrUnauthorized
	}
	return account, nil
}

// Logout revokes the token for the remainder of its lifetime.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	claims, err := s.parseToken(token)
	if err != nil {
		return domain.ErrUnauthorized
	}

	ttl := s.tokenTTL
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	if ttl <= 0 {
		return nil
	}
	return s.blacklist.Revoke(ctx, HashToken(token), ttl)
}

func (s *AuthService) issueToken(username string) (string, error) {
	now := time.Now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

func (s *AuthService) parseToken(tokenString string) (*jwt.RegisteredClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, jwt.ErrTokenInvalidClaims
	}
	return claims, nil
}

// HashToken produces the blacklist key for a token. Raw tokens are never
// stored.
func HashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
