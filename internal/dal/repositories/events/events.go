package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/crackersmart/storefront/internal/dal/interfaces/ioutboxrepo"
	"github.com/crackersmart/storefront/internal/dal/rabbitmq"
	"github.com/crackersmart/storefront/internal/service/models/audit"
	"github.com/crackersmart/storefront/internal/service/models/order"
	"github.com/crackersmart/storefront/internal/service/models/outbox"
	"github.com/spf13/viper"
	"github.com/streadway/amqp"
)

const (
	TypeOrderPlaced = "order.placed"
	TypeOrderEdited = "order.edited"
)

// orderEvent is the envelope published for downstream consumers (admin
// realtime notifications, reporting).
type orderEvent struct {
	Type       string         `json:"type"`
	OccurredAt time.Time      `json:"occurredAt"`
	Order      order.Order    `json:"order"`
	Changes    *audit.Changes `json:"changes,omitempty"`
}

// RabbitMQPublisher publishes order events to RabbitMQ. A failed publish is
// parked in the outbox table so the worker can retry it later instead of the
// event being lost.
type RabbitMQPublisher struct {
	client     *rabbitmq.Client
	outboxRepo ioutboxrepo.IOutboxRepository
	queue      amqp.Queue
}

// MustNewRabbitMQPublisher creates the publisher and declares its queue.
func MustNewRabbitMQPublisher(client *rabbitmq.Client, outboxRepo ioutboxrepo.IOutboxRepository) *RabbitMQPublisher {
	queueName := viper.GetString("rabbitmq.order_events_queue")
	if queueName == "" {
		queueName = "storefront.order.events"
	}

	queue, err := client.DeclareQueue(rabbitmq.DeclareQueueConfig{
		Name:    queueName,
		Durable: true,
	})
	if err != nil {
		panic(err)
	}

	return &RabbitMQPublisher{
		client:     client,
		outboxRepo: outboxRepo,
		queue:      queue,
	}
}

// OrderPlaced publishes an order.placed event.
func (p *RabbitMQPublisher) OrderPlaced(ctx context.Context, o order.Order) error {
	return p.publish(ctx, orderEvent{
		Type:       TypeOrderPlaced,
		OccurredAt: time.Now(),
		Order:      o,
	})
}

// OrderEdited publishes an order.edited event carrying the audit diff.
func (p *RabbitMQPublisher) OrderEdited(ctx context.Context, o order.Order, changes audit.Changes) error {
	return p.publish(ctx, orderEvent{
		Type:       TypeOrderEdited,
		OccurredAt: time.Now(),
		Order:      o,
		Changes:    &changes,
	})
}

func (p *RabbitMQPublisher) publish(ctx context.Context, event orderEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal order event: %w", err)
	}

	err = p.client.Channel().Publish(
		"",
		p.queue.Name,
		false,
		false,
		amqp.Publishing{
			ContentType: "application/json",
			Body:        payload,
		},
	)
	if err == nil {
		return nil
	}

	slog.Warn("Failed to publish order event, parking in outbox", "type", event.Type, "error", err)

	outboxErr := p.outboxRepo.Insert(ctx, outbox.Message{
		QueueName:   p.queue.Name,
		RoutingKey:  p.queue.Name,
		Payload:     payload,
		ContentType: "application/json",
		MaxRetries:  viper.GetInt("rabbitmq.outbox.max_retries"),
		NextRetryAt: time.Now(),
	})
	if outboxErr != nil {
		return fmt.Errorf("failed to publish order event and to park it in outbox: %w", outboxErr)
	}

	return nil
}
