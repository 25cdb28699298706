package mocks

import (
	"context"
	"sync"

	"github.com/sitegarden/account-service/internal/core/ports"
)

// MockAccountEventPublisher records published events instead of talking to
// RabbitMQ.
type MockAccountEventPublisher struct {
	mu        sync.Mutex
	Published []ports.AccountRegisteredEvent

	PublishError error
}

var _ ports.AccountEventPublisher = (*MockAccountEventPublisher)(nil)

func NewMockAccountEventPublisher() *MockAccountEventPublisher {
	return &MockAccountEventPublisher{}
}

func (m *MockAccountEventPublisher) PublishAccountRegistered(ctx context.Context, evt ports.AccountRegisteredEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.PublishError != nil {
		return m.PublishError
	}
	m.Published = append(m.Published, evt)
	return nil
}

// PublishedCount returns the number of recorded events.
func (m *MockAccountEventPublisher) PublishedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Published)
}
