package service

import (
	"context"
	"errors"
	"fmt"

	"order-service/internal/models"
	"order-service/internal/store"
	"order-service/internal/util"

	"go.uber.org/zap"
)

// OrderItemStore is the persistence surface the order-item service depends
// on.
type OrderItemStore interface {
	CreateOrderItem(ctx context.Context, item *models.OrderItem) error
	GetOrderItemByID(ctx context.Context, id int64) (*models.OrderItem, error)
	GetOrderItemsByIDs(ctx context.Context, ids []int64) ([]models.OrderItem, error)
	GetOrderItemsByOrderID(ctx context.Context, orderID int64) ([]models.OrderItem, error)
	GetOrderItemsByItemID(ctx context.Context, itemID int64) ([]models.OrderItem, error)
	UpdateOrderItem(ctx context.Context, id, orderID, itemID int64, quantity int) (int64, error)
	DeleteOrderItem(ctx context.Context, id int64) (int64, error)
}

// OrderItemService provides CRUD over order-item association rows.
// Referential integrity of the order and item foreign keys is the store's
// responsibility.
type OrderItemService struct {
	store  OrderItemStore
	logger *zap.Logger
}

// NewOrderItemService creates a new order-item service
func NewOrderItemService(orderItemStore OrderItemStore) *OrderItemService {
	return &OrderItemService{
		store:  orderItemStore,
		logger: util.GetLogger(),
	}
}

// OrderItemRequest carries the full field set of an order item for create
// and update.
type OrderItemRequest struct {
	OrderID  int64 `json:"order_id" binding:"required"`
	ItemID   int64 `json:"item_id" binding:"required"`
	Quantity int   `json:"quantity" binding:"required"`
}

func (r *OrderItemRequest) validate() error {
	if r.OrderID == 0 {
		return &ValidationError{Field: "order_id", Reason: "required"}
	}
	if r.ItemID == 0 {
		return &ValidationError{Field: "item_id", Reason: "required"}
	}
	if r.Quantity <= 0 {
		return &ValidationError{Field: "quantity", Reason: "must be positive"}
	}
	return nil
}

// CreateOrderItem persists a new association row.
func (s *OrderItemService) CreateOrderItem(ctx context.Context, req *OrderItemRequest) (*models.OrderItem, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	item := &models.OrderItem{
		OrderID:  req.OrderID,
		ItemID:   req.ItemID,
		Quantity: req.Quantity,
	}

	if err := s.store.CreateOrderItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create order item: %w", err)
	}

	s.logger.Info("Order item created",
		zap.Int64("order_item_id", item.ID),
		zap.Int64("order_id", item.OrderID))
	return item, nil
}

// GetOrderItemByID retrieves an order item by id.
func (s *OrderItemService) GetOrderItemByID(ctx context.Context, id int64) (*models.OrderItem, error) {
	item, err := s.store.GetOrderItemByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &EntityNotFoundError{Entity: "order item", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// GetOrderItemsByIDs retrieves the subset of order items whose ids exist.
func (s *OrderItemService) GetOrderItemsByIDs(ctx context.Context, ids []int64) ([]models.OrderItem, error) {
	items, err := s.store.GetOrderItemsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, &EmptyResultSetError{Entity: "order items", IDs: ids}
	}
	return items, nil
}

// GetOrderItemsByOrderID retrieves all items belonging to an order.
func (s *OrderItemService) GetOrderItemsByOrderID(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	items, err := s.store.GetOrderItemsByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, &EntityNotFoundError{Entity: "order items for order", ID: orderID}
	}
	return items, nil
}

// GetOrderItemsByItemID retrieves all association rows referencing an item.
func (s *OrderItemService) GetOrderItemsByItemID(ctx context.Context, itemID int64) ([]models.OrderItem, error) {
	items, err := s.store.GetOrderItemsByItemID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, &EntityNotFoundError{Entity: "order items for item", ID: itemID}
	}
	return items, nil
}

// UpdateOrderItemByID replaces all fields of an order item. Zero affected
// rows means the row does not exist.
func (s *OrderItemService) UpdateOrderItemByID(ctx context.Context, id int64, req *OrderItemRequest) (*models.OrderItem, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	affected, err := s.store.UpdateOrderItem(ctx, id, req.OrderID, req.ItemID, req.Quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to update order item: %w", err)
	}
	if affected == 0 {
		return nil, &EntityNotFoundError{Entity: "order item", ID: id}
	}

	return s.GetOrderItemByID(ctx, id)
}

// DeleteOrderItemByID deletes an order item. A zero-row delete is
// normalized to EntityNotFoundError.
func (s *OrderItemService) DeleteOrderItemByID(ctx context.Context, id int64) error {
	affected, err := s.store.DeleteOrderItem(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete order item: %w", err)
	}
	if affected == 0 {
		return &EntityNotFoundError{Entity: "order item", ID: id}
	}

	s.logger.Info("Order item deleted", zap.Int64("order_item_id", id))
	return nil
}
