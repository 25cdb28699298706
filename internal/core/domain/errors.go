package domain

import (
	"errors"
	"fmt"
)

// Store-level error kinds. The repository translates driver-specific
// constraint violations into these before they reach the services.
var (
	ErrDuplicateUsername    = errors.New("duplicate username")
	ErrDuplicateEmail       = errors.New("duplicate email")
	ErrDuplicatePhoneNumber = errors.New("duplicate phone number")
	ErrDuplicateRecord      = errors.New("duplicate record")
	ErrUsernameTooLong      = errors.New("username is too long")
	ErrForeignKeyViolation  = errors.New("foreign key violation")
)

// Service-level error kinds, surfaced to the HTTP layer.
var (
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrWrongAccountType   = errors.New("wrong endpoint for account type")
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrWebsiteExists      = errors.New("website already exists")
	ErrInvalidOwner       = errors.New("invalid website owner")
)

// AdministratorNotFoundError reports a student registration whose sponsor id
// does not reference an administrator. The id is kept so the handler can
// include it in the client-facing message.
type AdministratorNotFoundError struct {
	ID int64
}

func (e *AdministratorNotFoundError) Error() string {
	return fmt.Sprintf("administrator %d does not exist", e.ID)
}
