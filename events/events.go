package events

import (
	"context"
	"time"

	"storefront/models"
)

// Event types published on the order exchange.
const (
	OrderCreated   = "order.created"
	OrderPaid      = "order.paid"
	OrderDelivered = "order.delivered"
)

// OrderEvent is the JSON envelope sent to the broker.
type OrderEvent struct {
	EventID    string        `json:"event_id"`
	Type       string        `json:"type"`
	OccurredAt time.Time     `json:"occurred_at"`
	Order      *models.Order `json:"order"`
}

// Publisher emits order lifecycle events.
type Publisher interface {
	PublishOrderEvent(ctx context.Context, eventType string, order *models.Order) error
	Close() error
}

// NopPublisher discards events. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) PublishOrderEvent(ctx context.Context, eventType string, order *models.Order) error {
	return nil
}

func (NopPublisher) Close() error { return nil }
