package outbox

import (
	"time"
)

// Message is a notification event that could not be published to RabbitMQ
// directly and is parked in the outbox table for the worker to retry.
type Message struct {
	ID           int64
	QueueName    string
	ExchangeName string
	RoutingKey   string
	Payload      []byte
	ContentType  string
	RetryCount   int
	MaxRetries   int
	LastError    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	NextRetryAt  time.Time
}
