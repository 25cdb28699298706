package services

import (
	"context"
	"errors"

	"github.com/sitegarden/account-service/internal/core/domain"
	"github.com/sitegarden/account-service/internal/core/ports"
)

type WebsiteService struct {
	websites ports.WebsiteRepository
	accounts ports.AccountRepository
}

var _ ports.WebsiteService = (*WebsiteService)(nil)

func NewWebsiteService(
	websites ports.WebsiteRepository,
	accounts ports.AccountRepository,
) *WebsiteService {
	return &WebsiteService{
		websites: websites,
		accounts: accounts,
	}
}

// CreateWebsite creates a website owned by the given account. The owner's
// account type is looked up from the store rather than trusted from the
// request, since it decides which ownership table receives the link.
func (s *WebsiteService) CreateWebsite(ctx context.Context, ownerID int64, title string) (int64, error) {
	ownerType, err := s.accounts.GetAccountType(ctx, ownerID)
	if err != nil {
		return 0, err
	}
	if !ownerType.Valid() {
		return 0, domain.ErrInvalidOwner
	}

	id, err := s.websites.CreateWebsite(ctx, title, ownerID, ownerType)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateRecord):
			return 0, domain.ErrWebsiteExists
		case errors.Is(err, domain.ErrForeignKeyViolation):
			return 0, domain.ErrInvalidOwner
		}
		return 0, err
	}
	return id, nil
}

func (s *WebsiteService) GetWebsite(ctx context.Context, websiteID int64) (*domain.Website, error) {
	return s.websites.GetWebsite(ctx, websiteID)
}
