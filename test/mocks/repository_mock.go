// Package mocks provides in-memory implementations of the port interfaces.
// Services depend on the ports, so tests can swap the real Postgres-backed
// adapters for these without touching the core.
package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/sitegarden/account-service/internal/core/domain"
	"github.com/sitegarden/account-service/internal/core/ports"
)

// DefaultMaxUsernameLen mirrors the varchar limit on account.username.
const DefaultMaxUsernameLen = 32

type fullDetails struct {
	email       string
	phoneNumber *string
}

type QueuedEvent struct {
	EventType string
	Payload   []byte
}

// MockAccountRepository implements ports.AccountRepository with the same
// constraint behavior as the schema: unique usernames, unique emails and
// phone numbers, a username length limit, and foreign-key checked Teaches
// links. Register applies the staged writes only when the callback succeeds,
// so rollback semantics can be asserted.
type MockAccountRepository struct {
	mu sync.Mutex

	nextID         int64
	accounts       map[int64]domain.Account
	students       map[int64]bool
	administrators map[int64]bool
	details        map[int64]fullDetails
	teaches        map[[2]int64]bool
	Events         []QueuedEvent

	MaxUsernameLen int

	// Error injection
	FindByUsernameError      error
	FindByEmailError         error
	AdministratorExistsError error
	RegisterError            error
	CreateAccountError       error
	LinkError                error

	// Call tracking
	FindByUsernameCalls []string
	RegisterCalls       int
}

var _ ports.AccountRepository = (*MockAccountRepository)(nil)

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts:       make(map[int64]domain.Account),
		students:       make(map[int64]bool),
		administrators: make(map[int64]bool),
		details:        make(map[int64]fullDetails),
		teaches:        make(map[[2]int64]bool),
		MaxUsernameLen: DefaultMaxUsernameLen,
	}
}

func (m *MockAccountRepository) FindByUsername(ctx context.Context, username string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.FindByUsernameCalls = append(m.FindByUsernameCalls, username)
	if m.FindByUsernameError != nil {
		return nil, m.FindByUsernameError
	}

	for id, account := range m.accounts {
		if account.Username == username {
			return m.materialize(id), nil
		}
	}
	return nil, nil
}

func (m *MockAccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FindByEmailError != nil {
		return nil, m.FindByEmailError
	}

	for id, d := range m.details {
		if d.email == email {
			return m.materialize(id), nil
		}
	}
	return nil, nil
}

func (m *MockAccountRepository) GetAccountType(ctx context.Context, accountID int64) (domain.AccountType, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	account, ok := m.accounts[accountID]
	if !ok {
		return "", nil
	}
	return account.Type, nil
}

func (m *MockAccountRepository) AdministratorExists(ctx context.Context, administratorID int64) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.AdministratorExistsError != nil {
		return false, m.AdministratorExistsError
	}
	return m.administrators[administratorID], nil
}

func (m *MockAccountRepository) Register(ctx context.Context, fn func(tx ports.AccountTx) error) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.RegisterCalls++
	if m.RegisterError != nil {
		return m.RegisterError
	}

	tx := &mockAccountTx{repo: m}
	if err := fn(tx); err != nil {
		// Nothing staged is applied: the transaction rolled back.
		return err
	}
	tx.commit()
	return nil
}

// materialize copies an account and fills in the full-account fields.
// Callers must hold the mutex.
func (m *MockAccountRepository) materialize(id int64) *domain.Account {
	account := m.accounts[id]
	if d, ok := m.details[id]; ok {
		email := d.email
		account.Email = &email
		account.PhoneNumber = d.phoneNumber
	}
	return &account
}

// AccountCount reports committed base rows, for asserting that failed
// registrations left nothing behind.
func (m *MockAccountRepository) AccountCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.accounts)
}

// TeachesCount reports committed Teaches links.
func (m *MockAccountRepository) TeachesCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.teaches)
}

// mockAccountTx stages writes until commit.
type mockAccountTx struct {
	repo *MockAccountRepository

	accounts       map[int64]domain.Account
	students       []int64
	administrators []int64
	details        map[int64]fullDetails
	teaches        [][2]int64
	events         []QueuedEvent
}

var _ ports.AccountTx = (*mockAccountTx)(nil)

func (t *mockAccountTx) CreateAccount(
	ctx context.Context,
	givenName, familyName, username string,
	accountType domain.AccountType,
) (int64, time.Time, error) {
	if t.repo.CreateAccountError != nil {
		return 0, time.Time{}, t.repo.CreateAccountError
	}
	if len(username) > t.repo.MaxUsernameLen {
		return 0, time.Time{}, domain.ErrUsernameTooLong
	}
	if t.usernameTaken(username) {
		return 0, time.Time{}, domain.ErrDuplicateUsername
	}

	t.repo.nextID++
	id := t.repo.nextID
	registrationTime := time.Now().UTC().Truncate(time.Microsecond)

	if t.accounts == nil {
		t.accounts = make(map[int64]domain.Account)
	}
	t.accounts[id] = domain.Account{
		ID:               id,
		GivenName:        givenName,
		FamilyName:       familyName,
		Username:         username,
		RegistrationTime: registrationTime,
		Type:             accountType,
	}
	return id, registrationTime, nil
}

func (t *mockAccountTx) SetPasswordHash(ctx context.Context, accountID int64, hashedPassword string) error {
	account, ok := t.accounts[accountID]
	if !ok {
		return domain.ErrForeignKeyViolation
	}
	account.HashedPassword = hashedPassword
	t.accounts[accountID] = account
	return nil
}

func (t *mockAccountTx) CreateTypeExtension(ctx context.Context, accountID int64, accountType domain.AccountType) error {
	switch accountType {
	case domain.AccountTypeStudent:
		t.students = append(t.students, accountID)
	case domain.AccountTypeAdministrator:
		t.administrators = append(t.administrators, accountID)
	default:
		return domain.ErrForeignKeyViolation
	}
	return nil
}

func (t *mockAccountTx) CreateFullAccountExtension(ctx context.Context, accountID int64, email string, phoneNumber *string) error {
	for _, d := range t.repo.details {
		if d.email == email {
			return domain.ErrDuplicateEmail
		}
		if phoneNumber != nil && d.phoneNumber != nil && *d.phoneNumber == *phoneNumber {
			return domain.ErrDuplicatePhoneNumber
		}
	}
	if t.details == nil {
		t.details = make(map[int64]fullDetails)
	}
	t.details[accountID] = fullDetails{email: email, phoneNumber: phoneNumber}
	return nil
}

func (t *mockAccountTx) LinkStudentToAdministrator(ctx context.Context, administratorID, studentID int64) error {
	if t.repo.LinkError != nil {
		return t.repo.LinkError
	}
	if !t.administratorKnown(administratorID) {
		return domain.ErrForeignKeyViolation
	}
	pair := [2]int64{administratorID, studentID}
	if t.repo.teaches[pair] {
		return domain.ErrDuplicateRecord
	}
	t.teaches = append(t.teaches, pair)
	return nil
}

func (t *mockAccountTx) QueueEvent(ctx context.Context, eventType string, payload []byte) error {
	t.events = append(t.events, QueuedEvent{EventType: eventType, Payload: payload})
	return nil
}

func (t *mockAccountTx) usernameTaken(username string) bool {
	for _, account := range t.repo.accounts {
		if account.Username == username {
			return true
		}
	}
	for _, account := range t.accounts {
		if account.Username == username {
			return true
		}
	}
	return false
}

func (t *mockAccountTx) administratorKnown(id int64) bool {
	if t.repo.administrators[id] {
		return true
	}
	for _, staged := range t.administrators {
		if staged == id {
			return true
		}
	}
	return false
}

func (t *mockAccountTx) commit() {
	for id, account := range t.accounts {
		t.repo.accounts[id] = account
	}
	for _, id := range t.students {
		t.repo.students[id] = true
	}
	for _, id := range t.administrators {
		t.repo.administrators[id] = true
	}
	for id, d := range t.details {
		t.repo.details[id] = d
	}
	for _, pair := range t.teaches {
		t.repo.teaches[pair] = true
	}
	t.repo.Events = append(t.repo.Events, t.events...)
}
