package ports

import (
	"context"
)

// EventTypeAccountRegistered is the outbox event type written for every
// successful registration.
const EventTypeAccountRegistered = "account.registered"

// AccountRegisteredEvent is queued in the outbox within the registration
// transaction and published by the relay after commit.
type AccountRegisteredEvent struct {
	AccountID   int64  `json:"account_id"`
	Username    string `json:"username"`
	AccountType string `json:"account_type"`
}

type AccountEventPublisher interface {
	PublishAccountRegistered(ctx context.Context, evt AccountRegisteredEvent) error
}
