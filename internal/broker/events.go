package broker

import (
	"context"
	"fmt"

	"order-service/internal/models"

	"github.com/google/uuid"
)

// EventPublisher publishes order lifecycle events. Events are keyed by
// order id so the channel preserves per-order ordering.
type EventPublisher struct {
	producer *Producer
}

// NewEventPublisher creates a new event publisher
func NewEventPublisher(producer *Producer) *EventPublisher {
	return &EventPublisher{producer: producer}
}

// PublishOrderCreated publishes an order creation event.
func (ep *EventPublisher) PublishOrderCreated(ctx context.Context, event *models.OrderEvent) error {
	if event.EventID == "" {
		event.EventID = uuid.New().String()
	}
	key := fmt.Sprintf("order-%d", event.OrderID)
	return ep.producer.PublishEvent(ctx, key, event)
}
