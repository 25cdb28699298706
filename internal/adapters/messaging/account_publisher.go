package messaging

import (
	"context"
	"encoding/json"

	"github.com/rabbitmq/amqp091-go"

	"github.com/sitegarden/account-service/internal/core/ports"
)

var _ ports.AccountEventPublisher = (*RabbitMQBroker)(nil)

// PublishAccountRegistered publishes a registration event to the account
// queue. The circuit breaker keeps a broken broker from stalling the relay.
func (rmq *RabbitMQBroker) PublishAccountRegistered(ctx context.Context, evt ports.AccountRegisteredEvent) error {
	body, err := json.Marshal(evt)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	_, err = rmq.cb.Execute(func() (interface{}, error) {
		err := rmq.ch.PublishWithContext(
			ctx,
			"",            // default exchange
			rmq.queueName, // routing key == queue name
			false,         // mandatory
			false,         // immediate
			amqp091.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp091.Persistent,
				Body:         body,
			},
		)
		return nil, err
	})
	return err
}
