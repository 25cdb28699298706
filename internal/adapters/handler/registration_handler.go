package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/sitegarden/account-service/internal/core/domain"
	"github.com/sitegarden/account-service/internal/core/ports"
)

// Client-facing messages. Tests and frontends match on these exactly.
const (
	msgUserAlreadyExists    = "User already exists."
	msgUsernameTooLong      = "Username is too long."
	msgStudentWrongEndpoint = "Students cannot register via /register. Use /register/student."
	msgOnlyStudentsHere     = "Only students may register via /register/student. Use /register."
	msgInvalidPayload       = "Invalid request payload"
	msgRegistrationFailed   = "Registration failed"
)

type RegistrationHandler struct {
	registrationService ports.RegistrationService
}

func NewRegistrationHandler(registration ports.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrationService: registration}
}

// registeringUser mirrors the request schema of the original clients. The
// hashed_password field carries the plaintext password; the name is legacy.
type registeringUser struct {
	GivenName      string `json:"given_name"`
	FamilyName     string `json:"family_name"`
	Username       string `json:"username"`
	HashedPassword string `json:"hashed_password"`
	AccountType    string `json:"account_type"`
}

func (u registeringUser) valid() bool {
	return u.GivenName != "" && u.FamilyName != "" && u.Username != "" &&
		u.HashedPassword != "" && domain.AccountType(u.AccountType).Valid()
}

func (u registeringUser) registration() domain.Registration {
	return domain.Registration{
		GivenName:  u.GivenName,
		FamilyName: u.FamilyName,
		Username:   u.Username,
		Password:   u.HashedPassword,
		Type:       domain.AccountType(u.AccountType),
	}
}

type registerFullAccountRequest struct {
	registeringUser
	Email       string  `json:"email"`
	PhoneNumber *string `json:"phone_number"`
}

type registerStudentRequest struct {
	User            registeringUser `json:"user"`
	AdministratorID int64           `json:"administrator_id"`
}

// RegisterFullAccount handles POST /register, the endpoint for non-student
// (full) accounts.
func (h *RegistrationHandler) RegisterFullAccount(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req registerFullAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, msgInvalidPayload)
		return
	}
	if req.AccountType == string(domain.AccountTypeStudent) {
		respondError(w, http.StatusBadRequest, msgStudentWrongEndpoint)
		return
	}
	if !req.valid() || req.Email == "" {
		respondError(w, http.StatusBadRequest, msgInvalidPayload)
		return
	}

	accountID, err := h.registrationService.RegisterFullAccount(r.Context(), domain.FullRegistration{
		Registration: req.registration(),
		Email:        req.Email,
		PhoneNumber:  req.PhoneNumber,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrWrongAccountType):
			respondError(w, http.StatusBadRequest, msgStudentWrongEndpoint)
		case errors.Is(err, domain.ErrUserAlreadyExists):
			respondError(w, http.StatusBadRequest, msgUserAlreadyExists)
		case errors.Is(err, domain.ErrUsernameTooLong):
			respondError(w, http.StatusBadRequest, msgUsernameTooLong)
		default:
			log.Printf("register: unexpected error: %v", err)
			respondError(w, http.StatusInternalServerError, msgRegistrationFailed)
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]int64{"account_id": accountID})
}

// RegisterStudent handles POST /register/student. Students are sponsored by
// an existing administrator.
func (h *RegistrationHandler) RegisterStudent(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	var req registerStudentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, msgInvalidPayload)
		return
	}
	if req.User.AccountType != string(domain.AccountTypeStudent) {
		respondError(w, http.StatusBadRequest, msgOnlyStudentsHere)
		return
	}
	if !req.User.valid() {
		respondError(w, http.StatusBadRequest, msgInvalidPayload)
		return
	}

	studentID, err := h.registrationService.RegisterStudent(r.Context(), req.User.registration(), req.AdministratorID)
	if err != nil {
		var notFound *domain.AdministratorNotFoundError
		switch {
		case errors.As(err, &notFound):
			respondError(w, http.StatusBadRequest, fmt.Sprintf("Administrator %d does not exist.", notFound.ID))
		case errors.Is(err, domain.ErrWrongAccountType):
			respondError(w, http.StatusBadRequest, msgOnlyStudentsHere)
		case errors.Is(err, domain.ErrUserAlreadyExists):
			respondError(w, http.StatusBadRequest, msgUserAlreadyExists)
		case errors.Is(err, domain.ErrUsernameTooLong):
			respondError(w, http.StatusBadRequest, msgUsernameTooLong)
		default:
			log.Printf("register student: unexpected error: %v", err)
			respondError(w, http.StatusInternalServerError, msgRegistrationFailed)
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]int64{"student_id": studentID})
}
