package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/sitegarden/account-service/internal/adapters/middleware"
	"github.com/sitegarden/account-service/internal/core/domain"
	"github.com/sitegarden/account-service/internal/core/ports"
)

type WebsiteHandler struct {
	websiteService ports.WebsiteService
}

func NewWebsiteHandler(website ports.WebsiteService) *WebsiteHandler {
	return &WebsiteHandler{websiteService: website}
}

type createWebsiteRequest struct {
	Title string `json:"title"`
}

// Create handles POST /website for authenticated callers. The website is
// owned by the caller's resolved account.
func (h *WebsiteHandler) Create(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	account, ok := middleware.AccountFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Invalid authentication credentials")
		return
	}

	var req createWebsiteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Title == "" {
		respondError(w, http.StatusBadRequest, msgInvalidPayload)
		return
	}

	websiteID, err := h.websiteService.CreateWebsite(r.Context(), account.ID, req.Title)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrWebsiteExists):
			respondError(w, http.StatusBadRequest, "Website already exists")
		case errors.Is(err, domain.ErrInvalidOwner):
			respondError(w, http.StatusBadRequest, "The user does not exist or they cannot own a website.")
		default:
			log.Printf("create website: unexpected error: %v", err)
			respondError(w, http.StatusInternalServerError, "Website creation failed")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]int64{"website_id": websiteID})
}

// Get handles GET /website/{id}.
func (h *WebsiteHandler) Get(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	idPart := strings.TrimPrefix(r.URL.Path, "/website/")
	websiteID, err := strconv.ParseInt(idPart, 10, 64)
	if err != nil {
		respondError(w, http.StatusBadRequest, msgInvalidPayload)
		return
	}

	website, err := h.websiteService.GetWebsite(r.Context(), websiteID)
	if err != nil {
		log.Printf("get website: unexpected error: %v", err)
		respondError(w, http.StatusInternalServerError, "Website lookup failed")
		return
	}
	if website == nil {
		respondError(w, http.StatusNotFound, "Website not found")
		return
	}

	respondJSON(w, http.StatusOK, website)
}
