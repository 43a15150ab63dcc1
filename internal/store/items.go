package store

import (
	"context"
	"database/sql"
	"errors"

	"order-service/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// CreateItem persists a new catalog item and fills in its assigned id.
func (s *Store) CreateItem(ctx context.Context, item *models.Item) error {
	query := `
		INSERT INTO items (name, price)
		VALUES ($1, $2)
		RETURNING id`

	return s.db.GetContext(ctx, &item.ID, query, item.Name, item.Price)
}

// GetItemByID retrieves an item by ID
func (s *Store) GetItemByID(ctx context.Context, id int64) (*models.Item, error) {
	var item models.Item
	err := s.db.GetContext(ctx, &item, "SELECT * FROM items WHERE id = $1", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// GetItemsByIDs retrieves the subset of items whose ids exist.
func (s *Store) GetItemsByIDs(ctx context.Context, ids []int64) ([]models.Item, error) {
	if len(ids) == 0 {
		return []models.Item{}, nil
	}

	query, args, err := sqlx.In("SELECT * FROM items WHERE id IN (?) ORDER BY id", ids)
	if err != nil {
		return nil, err
	}
	query = s.db.Rebind(query)

	var items []models.Item
	err = s.db.SelectContext(ctx, &items, query, args...)
	return items, err
}

// UpdateItem replaces all mutable fields of an item. Returns the number of
// rows affected.
func (s *Store) UpdateItem(ctx context.Context, id int64, name string, price decimal.Decimal) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		"UPDATE items SET name = $1, price = $2 WHERE id = $3", name, price, id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

// DeleteItem deletes an item. Returns the number of rows affected.
func (s *Store) DeleteItem(ctx context.Context, id int64) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM items WHERE id = $1", id)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
