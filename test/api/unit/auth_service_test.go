package unit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sitegarden/account-service/internal/core/domain"
	"github.com/sitegarden/account-service/internal/core/services"
	"github.com/sitegarden/account-service/test/mocks"
)

const testSecret = "unit-test-signing-secret"

type authFixture struct {
	auth         *services.AuthService
	registration *services.RegistrationService
	repo         *mocks.MockAccountRepository
	blacklist    *mocks.MockTokenBlacklist
}

func newAuthFixture() *authFixture {
	repo := mocks.NewMockAccountRepository()
	blacklist := mocks.NewMockTokenBlacklist()
	hasher := services.NewBcryptHasher()
	return &authFixture{
		auth:         services.NewAuthService(repo, hasher, blacklist, []byte(testSecret), 30*time.Minute),
		registration: services.NewRegistrationService(repo, hasher),
		repo:         repo,
		blacklist:    blacklist,
	}
}

// seed registers the administrator from the canonical scenario and a student
// sponsored by them.
func (f *authFixture) seed(t *testing.T) (adminID, studentID int64) {
	t.Helper()
	ctx := context.Background()

	adminID, err := f.registration.RegisterFullAccount(ctx, mocks.AdministratorRegistration("lachlantula", "lachie@example.com"))
	if err != nil {
		t.Fatalf("seeding administrator failed: %v", err)
	}
	studentID, err = f.registration.RegisterStudent(ctx, mocks.StudentRegistration("neffieta"), adminID)
	if err != nil {
		t.Fatalf("seeding student failed: %v", err)
	}
	return adminID, studentID
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("administrator_login_returns_token_and_contact_details", func(t *testing.T) {
		f := newAuthFixture()
		adminID, _ := f.seed(t)

		user, err := f.auth.Login(ctx, "lachlantula", "abjjsfdjsd")
		if err != nil {
			t.Fatalf("Login returned error: %v", err)
		}
		if user.AccountID != adminID {
			t.Errorf("expected account id %d, got %d", adminID, user.AccountID)
		}
		if user.AccessToken == "" {
			t.Error("expected an access token")
		}
		if user.Username != "lachlantula" || user.GivenName != "Lachlan Charles" || user.FamilyName != "Shoesmith" {
			t.Errorf("unexpected profile: %+v", user)
		}
		if user.Email == nil || *user.Email != "lachie@example.com" {
			t.Errorf("expected email for full account, got %v", user.Email)
		}
		if user.PhoneNumber == nil || *user.PhoneNumber != "123-456-7890" {
			t.Errorf("expected phone number for full account, got %v", user.PhoneNumber)
		}
	})

	t.Run("student_login_has_null_contact_details", func(t *testing.T) {
		f := newAuthFixture()
		_, studentID := f.seed(t)

		user, err := f.auth.Login(ctx, "neffieta", "password123")
		if err != nil {
			t.Fatalf("Login returned error: %v", err)
		}
		if user.AccountID != studentID {
			t.Errorf("expected account id %d, got %d", studentID, user.AccountID)
		}
		if user.Email != nil || user.PhoneNumber != nil {
			t.Errorf("expected null contact details for student, got %v / %v", user.Email, user.PhoneNumber)
		}
	})

	t.Run("wrong_password_and_unknown_username_are_indistinguishable", func(t *testing.T) {
		f := newAuthFixture()
		f.seed(t)

		_, wrongPassword := f.auth.Login(ctx, "lachlantula", "not-the-password")
		_, unknownUser := f.auth.Login(ctx, "nobody", "abjjsfdjsd")

		if !errors.Is(wrongPassword, domain.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongPassword)
		}
		if !errors.Is(unknownUser, domain.ErrInvalidCredentials) {
			t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", unknownUser)
		}
		if wrongPassword.Error() != unknownUser.Error() {
			t.Error("expected identical errors for both failure modes")
		}
	})

	t.Run("token_carries_username_subject_and_expiry", func(t *testing.T) {
		f := newAuthFixture()
		f.seed(t)

		user, err := f.auth.Login(ctx, "neffieta", "password123")
		if err != nil {
			t.Fatalf("Login returned error: %v", err)
		}

		claims := &jwt.RegisteredClaims{}
		_, err = jwt.ParseWithClaims(user.AccessToken, claims, func(t *jwt.Token) (any, error) {
			return []byte(testSecret), nil
		})
		if err != nil {
			t.Fatalf("issued token failed to parse: %v", err)
		}
		if claims.Subject != "neffieta" {
			t.Errorf("expected subject neffieta, got %q", claims.Subject)
		}
		if claims.ExpiresAt == nil {
			t.Fatal("expected an expiry claim")
		}
		remaining := time.Until(claims.ExpiresAt.Time)
		if remaining <= 29*time.Minute || remaining > 30*time.Minute {
			t.Errorf("expected ~30 minute expiry, got %v", remaining)
		}
	})
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("valid_token_resolves_live_account", func(t *testing.T) {
		f := newAuthFixture()
		f.seed(t)

		user, err := f.auth.Login(ctx, "lachlantula", "abjjsfdjsd")
		if err != nil {
			t.Fatalf("Login returned error: %v", err)
		}

		account, err := f.auth.Authenticate(ctx, user.AccessToken)
		if err != nil {
			t.Fatalf("Authenticate returned error: %v", err)
		}
		if account.Username != "lachlantula" {
			t.Errorf("expected lachlantula, got %q", account.Username)
		}
	})

	t.Run("garbage_token_is_unauthorized", func(t *testing.T) {
		f := newAuthFixture()
		f.seed(t)

		if _, err := f.auth.Authenticate(ctx, "not.a.token"); !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("token_signed_with_other_secret_is_unauthorized", func(t *testing.T) {
		f := newAuthFixture()
		f.seed(t)

		forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "lachlantula",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}).SignedString([]byte("some-other-secret"))
		if err != nil {
			t.Fatalf("signing forged token failed: %v", err)
		}

		if _, err := f.auth.Authenticate(ctx, forged); !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("expired_token_is_unauthorized", func(t *testing.T) {
		f := newAuthFixture()
		f.seed(t)

		expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "lachlantula",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		}).SignedString([]byte(testSecret))
		if err != nil {
			t.Fatalf("signing expired token failed: %v", err)
		}

		if _, err := f.auth.Authenticate(ctx, expired); !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})

	t.Run("token_for_removed_username_is_unauthorized", func(t *testing.T) {
		// A well-signed token whose subject no longer resolves must be
		// rejected: authentication re-resolves the username on every call.
		f := newAuthFixture()
		f.seed(t)

		ghost, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
			Subject:   "ghost",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		}).SignedString([]byte(testSecret))
		if err != nil {
			t.Fatalf("signing token failed: %v", err)
		}

		if _, err := f.auth.Authenticate(ctx, ghost); !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("expected ErrUnauthorized, got %v", err)
		}
	})
}

func TestAuthService_Logout(t *testing.T) {
	ctx := context.Background()

	f := newAuthFixture()
	f.seed(t)

	user, err := f.auth.Login(ctx, "neffieta", "password123")
	if err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	if _, err := f.auth.Authenticate(ctx, user.AccessToken); err != nil {
		t.Fatalf("expected token to authenticate before logout: %v", err)
	}

	if err := f.auth.Logout(ctx, user.AccessToken); err != nil {
		t.Fatalf("Logout returned error: %v", err)
	}

	if _, err := f.auth.Authenticate(ctx, user.AccessToken); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected revoked token to be unauthorized, got %v", err)
	}
}
