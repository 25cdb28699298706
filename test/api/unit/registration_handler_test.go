package unit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sitegarden/account-service/internal/adapters/handler"
	"github.com/sitegarden/account-service/internal/core/services"
	"github.com/sitegarden/account-service/test/mocks"
)

// decodeDetail pulls the "detail" field out of an error response body.
func decodeDetail(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Detail string `json:"detail"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding error body failed: %v (body %q)", err, rec.Body.String())
	}
	return body.Detail
}

func decodeID(t *testing.T, rec *httptest.ResponseRecorder, field string) int64 {
	t.Helper()
	var body map[string]int64
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decoding response body failed: %v (body %q)", err, rec.Body.String())
	}
	id, ok := body[field]
	if !ok {
		t.Fatalf("expected field %q in response, got %v", field, body)
	}
	return id
}

func newRegistrationHandlerFixture() (*handler.RegistrationHandler, *mocks.MockAccountRepository) {
	repo := mocks.NewMockAccountRepository()
	svc := services.NewRegistrationService(repo, services.NewBcryptHasher())
	return handler.NewRegistrationHandler(svc), repo
}

const fullAccountBody = `{
	"given_name": "Lachlan Charles",
	"family_name": "Shoesmith",
	"username": "lachlantula",
	"hashed_password": "abjjsfdjsd",
	"account_type": "administrator",
	"email": "lachie@example.com",
	"phone_number": "123-456-7890"
}`

func studentBody(administratorID string) string {
	return `{
		"user": {
			"given_name": "Neffie Etta",
			"family_name": "Denile",
			"username": "neffieta",
			"hashed_password": "password123",
			"account_type": "student"
		},
		"administrator_id": ` + administratorID + `
	}`
}

func TestRegistrationHandler_RegisterFullAccount(t *testing.T) {
	t.Run("successful_registration_returns_account_id", func(t *testing.T) {
		h, repo := newRegistrationHandlerFixture()

		rec := httptest.NewRecorder()
		h.RegisterFullAccount(rec, httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(fullAccountBody)))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (body %q)", rec.Code, rec.Body.String())
		}
		if id := decodeID(t, rec, "account_id"); id <= 0 {
			t.Errorf("expected positive account_id, got %d", id)
		}
		if repo.AccountCount() != 1 {
			t.Errorf("expected one stored account, got %d", repo.AccountCount())
		}
	})

	t.Run("student_payload_is_redirected_to_student_endpoint", func(t *testing.T) {
		h, _ := newRegistrationHandlerFixture()

		body := strings.Replace(fullAccountBody, "administrator", "student", 1)
		rec := httptest.NewRecorder()
		h.RegisterFullAccount(rec, httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body)))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if detail := decodeDetail(t, rec); detail != "Students cannot register via /register. Use /register/student." {
			t.Errorf("unexpected detail %q", detail)
		}
	})

	t.Run("duplicate_registration_returns_user_already_exists", func(t *testing.T) {
		h, _ := newRegistrationHandlerFixture()

		rec := httptest.NewRecorder()
		h.RegisterFullAccount(rec, httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(fullAccountBody)))
		if rec.Code != http.StatusOK {
			t.Fatalf("first registration failed: %d", rec.Code)
		}

		rec = httptest.NewRecorder()
		h.RegisterFullAccount(rec, httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(fullAccountBody)))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if detail := decodeDetail(t, rec); detail != "User already exists." {
			t.Errorf("unexpected detail %q", detail)
		}
	})

	t.Run("overlong_username_returns_username_too_long", func(t *testing.T) {
		h, _ := newRegistrationHandlerFixture()

		body := strings.Replace(fullAccountBody, "lachlantula", strings.Repeat("a", mocks.DefaultMaxUsernameLen+1), 1)
		rec := httptest.NewRecorder()
		h.RegisterFullAccount(rec, httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body)))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if detail := decodeDetail(t, rec); detail != "Username is too long." {
			t.Errorf("unexpected detail %q", detail)
		}
	})

	t.Run("malformed_json_returns_invalid_payload", func(t *testing.T) {
		h, _ := newRegistrationHandlerFixture()

		rec := httptest.NewRecorder()
		h.RegisterFullAccount(rec, httptest.NewRequest(http.MethodPost, "/register", strings.NewReader("{not json")))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if detail := decodeDetail(t, rec); detail != "Invalid request payload" {
			t.Errorf("unexpected detail %q", detail)
		}
	})

	t.Run("missing_email_returns_invalid_payload", func(t *testing.T) {
		h, _ := newRegistrationHandlerFixture()

		body := strings.Replace(fullAccountBody, "lachie@example.com", "", 1)
		rec := httptest.NewRecorder()
		h.RegisterFullAccount(rec, httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(body)))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("get_is_method_not_allowed", func(t *testing.T) {
		h, _ := newRegistrationHandlerFixture()

		rec := httptest.NewRecorder()
		h.RegisterFullAccount(rec, httptest.NewRequest(http.MethodGet, "/register", nil))

		if rec.Code != http.StatusMethodNotAllowed {
			t.Fatalf("expected 405, got %d", rec.Code)
		}
	})

	t.Run("store_failure_returns_500", func(t *testing.T) {
		h, repo := newRegistrationHandlerFixture()
		repo.RegisterError = errTestStore

		rec := httptest.NewRecorder()
		h.RegisterFullAccount(rec, httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(fullAccountBody)))

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
	})
}

func TestRegistrationHandler_RegisterStudent(t *testing.T) {
	seedAdministrator := func(t *testing.T, h *handler.RegistrationHandler) int64 {
		t.Helper()
		rec := httptest.NewRecorder()
		h.RegisterFullAccount(rec, httptest.NewRequest(http.MethodPost, "/register", strings.NewReader(fullAccountBody)))
		if rec.Code != http.StatusOK {
			t.Fatalf("seeding administrator failed: %d (body %q)", rec.Code, rec.Body.String())
		}
		return decodeID(t, rec, "account_id")
	}

	t.Run("successful_registration_returns_student_id", func(t *testing.T) {
		h, repo := newRegistrationHandlerFixture()
		adminID := seedAdministrator(t, h)

		rec := httptest.NewRecorder()
		h.RegisterStudent(rec, httptest.NewRequest(http.MethodPost, "/register/student",
			strings.NewReader(studentBody(jsonNumber(adminID)))))

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d (body %q)", rec.Code, rec.Body.String())
		}
		if id := decodeID(t, rec, "student_id"); id <= 0 {
			t.Errorf("expected positive student_id, got %d", id)
		}
		if repo.TeachesCount() != 1 {
			t.Errorf("expected the sponsorship to be recorded, got %d links", repo.TeachesCount())
		}
	})

	t.Run("unknown_administrator_is_named_in_the_error", func(t *testing.T) {
		h, _ := newRegistrationHandlerFixture()

		rec := httptest.NewRecorder()
		h.RegisterStudent(rec, httptest.NewRequest(http.MethodPost, "/register/student",
			strings.NewReader(studentBody("99"))))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if detail := decodeDetail(t, rec); detail != "Administrator 99 does not exist." {
			t.Errorf("unexpected detail %q", detail)
		}
	})

	t.Run("non_student_payload_is_redirected", func(t *testing.T) {
		h, _ := newRegistrationHandlerFixture()
		adminID := seedAdministrator(t, h)

		body := strings.Replace(studentBody(jsonNumber(adminID)), `"student"`, `"administrator"`, 1)
		rec := httptest.NewRecorder()
		h.RegisterStudent(rec, httptest.NewRequest(http.MethodPost, "/register/student", strings.NewReader(body)))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if detail := decodeDetail(t, rec); detail != "Only students may register via /register/student. Use /register." {
			t.Errorf("unexpected detail %q", detail)
		}
	})

	t.Run("duplicate_username_returns_user_already_exists", func(t *testing.T) {
		h, _ := newRegistrationHandlerFixture()
		adminID := seedAdministrator(t, h)

		rec := httptest.NewRecorder()
		h.RegisterStudent(rec, httptest.NewRequest(http.MethodPost, "/register/student",
			strings.NewReader(studentBody(jsonNumber(adminID)))))
		if rec.Code != http.StatusOK {
			t.Fatalf("first registration failed: %d", rec.Code)
		}

		rec = httptest.NewRecorder()
		h.RegisterStudent(rec, httptest.NewRequest(http.MethodPost, "/register/student",
			strings.NewReader(studentBody(jsonNumber(adminID)))))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		if detail := decodeDetail(t, rec); detail != "User already exists." {
			t.Errorf("unexpected detail %q", detail)
		}
	})

	t.Run("malformed_json_returns_invalid_payload", func(t *testing.T) {
		h, _ := newRegistrationHandlerFixture()

		rec := httptest.NewRecorder()
		h.RegisterStudent(rec, httptest.NewRequest(http.MethodPost, "/register/student", strings.NewReader("[]")))

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}
