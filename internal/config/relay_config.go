package config

import "os"

// RelayConfig holds only what the outbox relay needs.
type RelayConfig struct {
	DatabaseURL      string
	RabbitMQURL      string
	AccountQueueName string
}

func LoadRelayConfig() *RelayConfig {
	rabbitURL := os.Getenv("RABBITMQ_URL")
	if rabbitURL == "" {
		panic("RABBITMQ_URL environment variable is required")
	}

	queueName := os.Getenv("ACCOUNT_QUEUE_NAME")
	if queueName == "" {
		queueName = "account-events"
	}

	return &RelayConfig{
		DatabaseURL:      databaseURLFromEnv(),
		RabbitMQURL:      rabbitURL,
		AccountQueueName: queueName,
	}
}
