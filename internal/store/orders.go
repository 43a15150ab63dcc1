package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"order-service/internal/models"

	"github.com/jmoiron/sqlx"
)

// CreateOrder persists a new order and fills in its assigned id.
func (s *Store) CreateOrder(ctx context.Context, order *models.Order) error {
	query := `
		INSERT INTO orders (user_id, status, creation_date)
		VALUES ($1, $2, $3)
		RETURNING id`

	return s.db.GetContext(ctx, &order.ID, query,
		order.UserID, order.Status, order.CreationDate)
}

// GetOrderByID retrieves an order by ID
func (s *Store) GetOrderByID(ctx context.Context, id int64) (*models.Order, error) {
	var order models.Order
	err := s.db.GetContext(ctx, &order, "SELECT * FROM orders WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// GetOrdersByIDs retrieves the subset of orders whose ids exist.
func (s *Store) GetOrdersByIDs(ctx context.Context, ids []int64) ([]models.Order, error) {
	if len(ids) == 0 {
		return []models.Order{}, nil
	}

	query, args, err := sqlx.In("SELECT * FROM orders WHERE id IN (?) ORDER BY id", ids)
	if err != nil {
		return nil, err
	}
	query = s.db.Rebind(query)

	var orders []models.Order
	err = s.db.SelectContext(ctx, &orders, query, args...)
	return orders, err
}

// GetOrdersByStatus retrieves orders with the given status
func (s *Store) GetOrdersByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.SelectContext(ctx, &orders,
		"SELECT * FROM orders WHERE status = $1 ORDER BY creation_date DESC", status)
	return orders, err
}

// GetOrdersByUserID retrieves orders for a user
func (s *Store) GetOrdersByUserID(ctx context.Context, userID int64) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.SelectContext(ctx, &orders,
		"SELECT * FROM orders WHERE user_id = $1 ORDER BY creation_date DESC", userID)
	return orders, err
}

// UpdateOrder replaces all mutable fields of an order in a single
// conditional update. Returns the number of rows affected.
func (s *Store) UpdateOrder(ctx context.Context, id, userID int64, status models.OrderStatus, creationDate time.Time) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE orders SET user_id = $1, status = $2, creation_date = $3 WHERE id = $4",
		userID, status, creationDate, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// UpdateOrderStatus updates only the status field. Used by the event-driven
// reconciliation path.
func (s *Store) UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE orders SET status = $1 WHERE id = $2", status, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteOrder deletes an order. Associated order items cascade at the
// database level. Returns the number of rows affected.
func (s *Store) DeleteOrder(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM orders WHERE id = $1", id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
