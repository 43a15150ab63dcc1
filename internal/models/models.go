package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the canonical order lifecycle status. The same set of
// values is used by the store, the REST DTOs and the event payloads.
type OrderStatus string

const (
	OrderStatusPendingPayment OrderStatus = "PENDING_PAYMENT"
	OrderStatusOnHold         OrderStatus = "ON_HOLD"
	OrderStatusProcessing     OrderStatus = "PROCESSING"
	OrderStatusConfirmed      OrderStatus = "CONFIRMED"
	OrderStatusShipped        OrderStatus = "SHIPPED"
	OrderStatusDelivered      OrderStatus = "DELIVERED"
	OrderStatusCompleted      OrderStatus = "COMPLETED"
	OrderStatusCanceled       OrderStatus = "CANCELED"
	OrderStatusRefunded       OrderStatus = "REFUNDED"
)

var orderStatuses = map[OrderStatus]bool{
	OrderStatusPendingPayment: true,
	OrderStatusOnHold:         true,
	OrderStatusProcessing:     true,
	OrderStatusConfirmed:      true,
	OrderStatusShipped:        true,
	OrderStatusDelivered:      true,
	OrderStatusCompleted:      true,
	OrderStatusCanceled:       true,
	OrderStatusRefunded:       true,
}

// Valid reports whether s is one of the defined order statuses.
func (s OrderStatus) Valid() bool {
	return orderStatuses[s]
}

// PaymentStatus is the status carried by events from the payment service.
// It is a distinct enum from OrderStatus.
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "PENDING"
	PaymentStatusProcessing PaymentStatus = "PROCESSING"
	PaymentStatusCompleted  PaymentStatus = "COMPLETED"
	PaymentStatusFailed     PaymentStatus = "FAILED"
	PaymentStatusCancelled  PaymentStatus = "CANCELLED"
	PaymentStatusRefunded   PaymentStatus = "REFUNDED"
)

// Order is a purchase record owned by a user.
type Order struct {
	ID           int64       `db:"id" json:"id"`
	UserID       int64       `db:"user_id" json:"user_id"`
	Status       OrderStatus `db:"status" json:"status"`
	CreationDate time.Time   `db:"creation_date" json:"creation_date"`
}

// Item is a purchasable catalog entry. Price always carries scale 2.
type Item struct {
	ID    int64           `db:"id" json:"id"`
	Name  string          `db:"name" json:"name"`
	Price decimal.Decimal `db:"price" json:"price"`
}

// OrderItem links an Order to an Item with a quantity.
type OrderItem struct {
	ID       int64 `db:"id" json:"id"`
	OrderID  int64 `db:"order_id" json:"order_id"`
	ItemID   int64 `db:"item_id" json:"item_id"`
	Quantity int   `db:"quantity" json:"quantity"`
}

// User is the read-only projection of a user held by the remote directory.
// It is never persisted locally.
type User struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Surname   string    `json:"surname"`
	BirthDate time.Time `json:"birth_date"`
	Email     string    `json:"email"`
}

// OrderResponse is an order enriched with its resolved user projection.
// User is never nil on a returned response.
type OrderResponse struct {
	ID           int64       `json:"id"`
	UserID       int64       `json:"user_id"`
	Status       OrderStatus `json:"status"`
	CreationDate time.Time   `json:"creation_date"`
	User         *User       `json:"user"`
}
