package repository

import (
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/sitegarden/account-service/internal/core/domain"
)

// Postgres error classes, see https://www.postgresql.org/docs/current/errcodes-appendix.html
const (
	pqStringTruncation    = "22001"
	pqForeignKeyViolation = "23503"
	pqUniqueViolation     = "23505"
)

// translatePQError maps driver-level constraint failures onto the domain
// error kinds. Unique violations are distinguished by constraint name;
// anything unrecognized passes through for the services to treat as unknown.
func translatePQError(err error) error {
	if err == nil {
		return nil
	}

	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return err
	}

	switch pqErr.Code {
	case pqUniqueViolation:
		switch pqErr.Constraint {
		case "account_username_key":
			return domain.ErrDuplicateUsername
		case "full_account_email_key":
			return domain.ErrDuplicateEmail
		case "full_account_phone_number_key":
			return domain.ErrDuplicatePhoneNumber
		default:
			return fmt.Errorf("%w: %s", domain.ErrDuplicateRecord, pqErr.Constraint)
		}
	case pqForeignKeyViolation:
		return fmt.Errorf("%w: %s", domain.ErrForeignKeyViolation, pqErr.Constraint)
	case pqStringTruncation:
		// username is the only length-limited column in the schema
		return domain.ErrUsernameTooLong
	}
	return err
}
