package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/sitegarden/account-service/internal/core/domain"
	"github.com/sitegarden/account-service/internal/core/ports"
)

// passwordPlaceholder fills hashed_password between the base insert and
// SetPasswordHash. The hash needs the row's registration time, so it cannot
// be computed before the insert; both statements run in one transaction.
const passwordPlaceholder = "pending"

type SQLAccountRepository struct {
	db *sql.DB
}

var _ ports.AccountRepository = (*SQLAccountRepository)(nil)

func NewSQLAccountRepository(db *sql.DB) *SQLAccountRepository {
	return &SQLAccountRepository{db: db}
}

const accountColumns = `
	a.id, a.given_name, a.family_name, a.username, a.hashed_password,
	a.registration_time, a.account_type, f.email, f.phone_number`

func (r *SQLAccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+accountColumns+`
		FROM account a
		LEFT JOIN full_account f ON f.id = a.id
		WHERE a.username = $1`,
		username,
	)
	return scanAccount(row)
}

func (r *SQLAccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+accountColumns+`
		FROM account a
		JOIN full_account f ON f.id = a.id
		WHERE f.email = $1`,
		email,
	)
	return scanAccount(row)
}

func scanAccount(row *sql.Row) (*domain.Account, error) {
	var account domain.Account
	err := row.Scan(
		&account.ID,
		&account.GivenName,
		&account.FamilyName,
		&account.Username,
		&account.HashedPassword,
		&account.RegistrationTime,
		&account.Type,
		&account.Email,
		&account.PhoneNumber,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *SQLAccountRepository) GetAccountType(ctx context.Context, accountID int64) (domain.AccountType, error) {
	var accountType domain.AccountType
	err := r.db.QueryRowContext(ctx,
		"SELECT account_type FROM account WHERE id = $1",
		accountID,
	).Scan(&accountType)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return accountType, nil
}

// AdministratorExists checks the administrator extension table. A student id
// passed as a sponsor must come back false even though the base account row
// exists.
func (r *SQLAccountRepository) AdministratorExists(ctx context.Context, administratorID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx,
		"SELECT EXISTS (SELECT 1 FROM administrator WHERE id = $1)",
		administratorID,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

// Register runs fn inside a single transaction. fn receives the
// transaction-scoped store surface; any error rolls the whole sequence back.
func (r *SQLAccountRepository) Register(ctx context.Context, fn func(tx ports.AccountTx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(&accountTx{tx: tx}); err != nil {
		return err
	}
	return tx.Commit()
}

type accountTx struct {
	tx *sql.Tx
}

var _ ports.AccountTx = (*accountTx)(nil)

// CreateAccount assigns the registration time application-side, truncated to
// microseconds so the value read back from timestamptz matches what was used
// as salt material.
func (t *accountTx) CreateAccount(
	ctx context.Context,
	givenName, familyName, username string,
	accountType domain.AccountType,
) (int64, time.Time, error) {
	registrationTime := time.Now().UTC().Truncate(time.Microsecond)

	var id int64
	err := t.tx.QueryRowContext(ctx, `
		INSERT INTO account (given_name, family_name, username, hashed_password, registration_time, account_type)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		givenName,
		familyName,
		username,
		passwordPlaceholder,
		registrationTime,
		accountType,
	).Scan(&id)
	if err != nil {
		return 0, time.Time{}, translatePQError(err)
	}
	return id, registrationTime, nil
}

func (t *accountTx) SetPasswordHash(ctx context.Context, accountID int64, hashedPassword string) error {
	_, err := t.tx.ExecContext(ctx,
		"UPDATE account SET hashed_password = $2 WHERE id = $1",
		accountID,
		hashedPassword,
	)
	return translatePQError(err)
}

func (t *accountTx) CreateTypeExtension(ctx context.Context, accountID int64, accountType domain.AccountType) error {
	var stmt string
	switch accountType {
	case domain.AccountTypeStudent:
		stmt = "INSERT INTO student (id) VALUES ($1)"
	case domain.AccountTypeAdministrator:
		stmt = "INSERT INTO administrator (id) VALUES ($1)"
	default:
		return domain.ErrForeignKeyViolation
	}
	_, err := t.tx.ExecContext(ctx, stmt, accountID)
	return translatePQError(err)
}

func (t *accountTx) CreateFullAccountExtension(ctx context.Context, accountID int64, email string, phoneNumber *string) error {
	_, err := t.tx.ExecContext(ctx,
		"INSERT INTO full_account (id, email, phone_number) VALUES ($1, $2, $3)",
		accountID,
		email,
		phoneNumber,
	)
	return translatePQError(err)
}

func (t *accountTx) LinkStudentToAdministrator(ctx context.Context, administratorID, studentID int64) error {
	_, err := t.tx.ExecContext(ctx,
		"INSERT INTO teaches (administrator_id, student_id) VALUES ($1, $2)",
		administratorID,
		studentID,
	)
	return translatePQError(err)
}

func (t *accountTx) QueueEvent(ctx context.Context, eventType string, payload []byte) error {
	_, err := t.tx.ExecContext(ctx,
		"INSERT INTO outbox_events (id, event_type, payload) VALUES ($1, $2, $3)",
		uuid.NewString(),
		eventType,
		payload,
	)
	return translatePQError(err)
}
