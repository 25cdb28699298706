package mocks

import (
	"context"
	"sync"

	"github.com/sitegarden/account-service/internal/core/domain"
	"github.com/sitegarden/account-service/internal/core/ports"
)

// MockWebsiteRepository implements ports.WebsiteRepository in memory with
// the schema's unique-title constraint.
type MockWebsiteRepository struct {
	mu sync.Mutex

	nextID   int64
	websites map[int64]domain.Website
	owners   map[int64]int64 // website id -> owner account id

	CreateWebsiteError error
}

var _ ports.WebsiteRepository = (*MockWebsiteRepository)(nil)

func NewMockWebsiteRepository() *MockWebsiteRepository {
	return &MockWebsiteRepository{
		websites: make(map[int64]domain.Website),
		owners:   make(map[int64]int64),
	}
}

func (m *MockWebsiteRepository) CreateWebsite(
	ctx context.Context,
	title string,
	ownerID int64,
	ownerType domain.AccountType,
) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.CreateWebsiteError != nil {
		return 0, m.CreateWebsiteError
	}
	for _, website := range m.websites {
		if website.Title == title {
			return 0, domain.ErrDuplicateRecord
		}
	}

	m.nextID++
	m.websites[m.nextID] = domain.Website{ID: m.nextID, Title: title}
	m.owners[m.nextID] = ownerID
	return m.nextID, nil
}

func (m *MockWebsiteRepository) GetWebsite(ctx context.Context, websiteID int64) (*domain.Website, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	website, ok := m.websites[websiteID]
	if !ok {
		return nil, nil
	}
	return &website, nil
}

// Owner returns the recorded owner of a website, for test assertions.
func (m *MockWebsiteRepository) Owner(websiteID int64) (int64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ownerID, ok := m.owners[websiteID]
	return ownerID, ok
}
