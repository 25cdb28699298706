package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"github.com/sitegarden/account-service/internal/adapters/middleware"
	"github.com/sitegarden/account-service/internal/core/domain"
	"github.com/sitegarden/account-service/internal/core/ports"
)

const msgIncorrectCredentials = "Incorrect username or password"

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(auth ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: auth}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /login. Unknown username and wrong password produce the
// identical response.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, msgInvalidPayload)
		return
	}

	user, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			w.Header().Set("WWW-Authenticate", "Bearer")
			respondError(w, http.StatusBadRequest, msgIncorrectCredentials)
			return
		}
		log.Printf("login: unexpected error: %v", err)
		respondError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	respondJSON(w, http.StatusOK, user)
}

// Logout handles POST /logout for authenticated callers, revoking the
// presented token for the rest of its lifetime.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	token, ok := middleware.BearerToken(r)
	if !ok {
		respondError(w, http.StatusUnauthorized, "Invalid authentication credentials")
		return
	}

	if err := h.authService.Logout(r.Context(), token); err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			respondError(w, http.StatusUnauthorized, "Invalid authentication credentials")
			return
		}
		log.Printf("logout: unexpected error: %v", err)
		respondError(w, http.StatusInternalServerError, "Logout failed")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "Logged out successfully"})
}
