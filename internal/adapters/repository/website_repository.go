package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/sitegarden/account-service/internal/core/domain"
	"github.com/sitegarden/account-service/internal/core/ports"
)

type SQLWebsiteRepository struct {
	db *sql.DB
}

var _ ports.WebsiteRepository = (*SQLWebsiteRepository)(nil)

func NewSQLWebsiteRepository(db *sql.DB) *SQLWebsiteRepository {
	return &SQLWebsiteRepository{db: db}
}

// CreateWebsite inserts the website row and the ownership link matching the
// owner's account type in one transaction.
func (r *SQLWebsiteRepository) CreateWebsite(
	ctx context.Context,
	title string,
	ownerID int64,
	ownerType domain.AccountType,
) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var websiteID int64
	err = tx.QueryRowContext(ctx,
		"INSERT INTO website (title) VALUES ($1) RETURNING id",
		title,
	).Scan(&websiteID)
	if err != nil {
		return 0, translatePQError(err)
	}

	var stmt string
	switch ownerType {
	case domain.AccountTypeStudent:
		stmt = "INSERT INTO student_owns_website (student_id, website_id) VALUES ($1, $2)"
	case domain.AccountTypeAdministrator:
		stmt = "INSERT INTO administrator_owns_website (administrator_id, website_id) VALUES ($1, $2)"
	default:
		return 0, domain.ErrInvalidOwner
	}
	if _, err := tx.ExecContext(ctx, stmt, ownerID, websiteID); err != nil {
		return 0, translatePQError(err)
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return websiteID, nil
}

func (r *SQLWebsiteRepository) GetWebsite(ctx context.Context, websiteID int64) (*domain.Website, error) {
	var website domain.Website
	err := r.db.QueryRowContext(ctx,
		"SELECT id, title FROM website WHERE id = $1",
		websiteID,
	).Scan(&website.ID, &website.Title)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &website, nil
}
