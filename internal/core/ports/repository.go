package ports

import (
	"context"
	"time"

	"github.com/sitegarden/account-service/internal/core/domain"
)

// AccountTx is the transaction-scoped surface of the account store. The
// repository runs every callback passed to AccountRepository.Register inside
// a single database transaction, so the whole multi-statement "create
// account" sequence commits or rolls back as one unit.
type AccountTx interface {
	// CreateAccount inserts the base account row with a placeholder password
	// and returns the new id together with the server-assigned registration
	// time, which the caller needs as salt material for the password hash.
	CreateAccount(ctx context.Context, givenName, familyName, username string, accountType domain.AccountType) (int64, time.Time, error)
	SetPasswordHash(ctx context.Context, accountID int64, hashedPassword string) error
	// CreateTypeExtension inserts the student or administrator extension row
	// matching accountType.
	CreateTypeExtension(ctx context.Context, accountID int64, accountType domain.AccountType) error
	CreateFullAccountExtension(ctx context.Context, accountID int64, email string, phoneNumber *string) error
	// LinkStudentToAdministrator inserts the Teaches relation. A sponsor id
	// that does not reference an administrator surfaces as
	// domain.ErrForeignKeyViolation; an existing pairing as
	// domain.ErrDuplicateRecord.
	LinkStudentToAdministrator(ctx context.Context, administratorID, studentID int64) error
	// QueueEvent appends an outbox row that the relay publishes after commit.
	QueueEvent(ctx context.Context, eventType string, payload []byte) error
}

type AccountRepository interface {
	// FindByUsername and FindByEmail return (nil, nil) when no account matches.
	FindByUsername(ctx context.Context, username string) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	// GetAccountType returns "" when the account does not exist.
	GetAccountType(ctx context.Context, accountID int64) (domain.AccountType, error)
	// AdministratorExists checks the administrator extension table, not the
	// base account table.
	AdministratorExists(ctx context.Context, administratorID int64) (bool, error)
	// Register runs fn inside one transaction, committing only if fn returns nil.
	Register(ctx context.Context, fn func(tx AccountTx) error) error
}

type WebsiteRepository interface {
	// CreateWebsite inserts the website row and its ownership link in the
	// extension table matching ownerType, atomically.
	CreateWebsite(ctx context.Context, title string, ownerID int64, ownerType domain.AccountType) (int64, error)
	// GetWebsite returns (nil, nil) when no website matches.
	GetWebsite(ctx context.Context, websiteID int64) (*domain.Website, error)
}
