package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/sitegarden/account-service/internal/core/domain"
	"github.com/sitegarden/account-service/internal/core/ports"
)

type AuthMiddleware struct {
	authService ports.AuthService
}

func NewAuthMiddleware(auth ports.AuthService) *AuthMiddleware {
	return &AuthMiddleware{authService: auth}
}

type contextKey string

const accountKey contextKey = "account"

// AccountFrom returns the authenticated account placed in the context by
// RequireAccount.
func AccountFrom(ctx context.Context) (*domain.Account, bool) {
	account, ok := ctx.Value(accountKey).(*domain.Account)
	return account, ok
}

// BearerToken extracts the token from the Authorization header.
func BearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}

// RequireAccount rejects requests without a valid bearer token and resolves
// the token's subject to a live account before calling next.
func (m *AuthMiddleware) RequireAccount(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token, ok := BearerToken(r)
		if !ok {
			unauthorized(w, "missing or malformed authorization header")
			return
		}

		account, err := m.authService.Authenticate(r.Context(), token)
		if err != nil {
			log.Printf("auth middleware: rejected token: %v", err)
			unauthorized(w, "invalid authentication credentials")
			return
		}

		ctx := context.WithValue(r.Context(), accountKey, account)
		next(w, r.WithContext(ctx))
	}
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	http.Error(w, msg, http.StatusUnauthorized)
}
