package models

import "time"

// Event source tags identify the producing service on the shared channel.
const (
	SourceOrderService   = "order-service"
	SourcePaymentService = "payment-service"
)

// OrderEvent is published when an order is created. Wire-only, never
// persisted.
type OrderEvent struct {
	EventID      string      `json:"event_id"`
	OrderID      int64       `json:"order_id"`
	UserID       int64       `json:"user_id"`
	Status       OrderStatus `json:"status"`
	CreationDate time.Time   `json:"creation_date"`
	Source       string      `json:"source"`
}

// PaymentEvent is consumed from the payment service and drives order
// status reconciliation. Wire-only, never persisted.
type PaymentEvent struct {
	ID           int64         `json:"id"`
	OrderID      int64         `json:"order_id"`
	UserID       int64         `json:"user_id"`
	Status       PaymentStatus `json:"status"`
	CreationDate time.Time     `json:"creation_date"`
	Source       string        `json:"source"`
}
