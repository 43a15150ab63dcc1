package store

import (
	"context"
	"database/sql"
	"errors"

	"order-service/internal/models"

	"github.com/jmoiron/sqlx"
)

// CreateOrderItem persists a new order item and fills in its assigned id.
func (s *Store) CreateOrderItem(ctx context.Context, item *models.OrderItem) error {
	query := `
		INSERT INTO order_items (order_id, item_id, quantity)
		VALUES ($1, $2, $3)
		RETURNING id`

	return s.db.GetContext(ctx, &item.ID, query,
		item.OrderID, item.ItemID, item.Quantity)
}

// GetOrderItemByID retrieves an order item by ID
func (s *Store) GetOrderItemByID(ctx context.Context, id int64) (*models.OrderItem, error) {
	var item models.OrderItem
	err := s.db.GetContext(ctx, &item, "SELECT * FROM order_items WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetOrderItemsByIDs retrieves the subset of order items whose ids exist.
func (s *Store) GetOrderItemsByIDs(ctx context.Context, ids []int64) ([]models.OrderItem, error) {
	if len(ids) == 0 {
		return []models.OrderItem{}, nil
	}

	query, args, err := sqlx.In("SELECT * FROM order_items WHERE id IN (?) ORDER BY id", ids)
	if err != nil {
		return nil, err
	}
	query = s.db.Rebind(query)

	var items []models.OrderItem
	err = s.db.SelectContext(ctx, &items, query, args...)
	return items, err
}

// GetOrderItemsByOrderID retrieves all items belonging to an order
func (s *Store) GetOrderItemsByOrderID(ctx context.Context, orderID int64) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := s.db.SelectContext(ctx, &items,
		"SELECT * FROM order_items WHERE order_id = $1 ORDER BY id", orderID)
	return items, err
}

// GetOrderItemsByItemID retrieves all association rows referencing an item
func (s *Store) GetOrderItemsByItemID(ctx context.Context, itemID int64) ([]models.OrderItem, error) {
	var items []models.OrderItem
	err := s.db.SelectContext(ctx, &items,
		"SELECT * FROM order_items WHERE item_id = $1 ORDER BY id", itemID)
	return items, err
}

// UpdateOrderItem replaces all mutable fields of an order item. Returns the
// number of rows affected.
func (s *Store) UpdateOrderItem(ctx context.Context, id, orderID, itemID int64, quantity int) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE order_items SET order_id = $1, item_id = $2, quantity = $3 WHERE id = $4",
		orderID, itemID, quantity, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteOrderItem deletes an order item. Returns the number of rows affected.
func (s *Store) DeleteOrderItem(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM order_items WHERE id = $1", id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
