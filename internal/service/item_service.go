package service

import (
	"context"
	"errors"
	"fmt"

	"order-service/internal/models"
	"order-service/internal/store"
	"order-service/internal/util"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ItemStore is the persistence surface the item service depends on.
type ItemStore interface {
	CreateItem(ctx context.Context, item *models.Item) error
	GetItemByID(ctx context.Context, id int64) (*models.Item, error)
	GetItemsByIDs(ctx context.Context, ids []int64) ([]models.Item, error)
	UpdateItem(ctx context.Context, id int64, name string, price decimal.Decimal) (int64, error)
	DeleteItem(ctx context.Context, id int64) (int64, error)
}

// ItemService provides CRUD over catalog items.
type ItemService struct {
	store  ItemStore
	logger *zap.Logger
}

// NewItemService creates a new item service
func NewItemService(itemStore ItemStore) *ItemService {
	return &ItemService{
		store:  itemStore,
		logger: util.GetLogger(),
	}
}

// ItemRequest carries the full field set of an item for create and update.
type ItemRequest struct {
	Name  string          `json:"name" binding:"required"`
	Price decimal.Decimal `json:"price" binding:"required"`
}

func (r *ItemRequest) validate() error {
	if r.Name == "" {
		return &ValidationError{Field: "name", Reason: "required"}
	}
	if r.Price.IsNegative() {
		return &ValidationError{Field: "price", Reason: "must not be negative"}
	}
	if r.Price.Exponent() < -2 {
		return &ValidationError{Field: "price", Reason: "at most 2 decimal places"}
	}
	return nil
}

// CreateItem persists a new catalog item. Prices are normalized to scale 2.
func (s *ItemService) CreateItem(ctx context.Context, req *ItemRequest) (*models.Item, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	item := &models.Item{
		Name:  req.Name,
		Price: req.Price.Round(2),
	}

	if err := s.store.CreateItem(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	s.logger.Info("Item created", zap.Int64("item_id", item.ID))
	return item, nil
}

// GetItemByID retrieves an item by id.
func (s *ItemService) GetItemByID(ctx context.Context, id int64) (*models.Item, error) {
	item, err := s.store.GetItemByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &EntityNotFoundError{Entity: "item", ID: id}
	}
	if err != nil {
		return nil, err
	}
	return item, nil
}

// GetItemsByIDs retrieves the subset of items whose ids exist. It fails
// only when none of the requested ids resolve.
func (s *ItemService) GetItemsByIDs(ctx context.Context, ids []int64) ([]models.Item, error) {
	items, err := s.store.GetItemsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, &EmptyResultSetError{Entity: "items", IDs: ids}
	}
	return items, nil
}

// UpdateItemByID replaces all fields of an item. Zero affected rows means
// the item does not exist.
func (s *ItemService) UpdateItemByID(ctx context.Context, id int64, req *ItemRequest) (*models.Item, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}

	affected, err := s.store.UpdateItem(ctx, id, req.Name, req.Price.Round(2))
	if err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}
	if affected == 0 {
		return nil, &EntityNotFoundError{Entity: "item", ID: id}
	}

	return s.GetItemByID(ctx, id)
}

// DeleteItemByID deletes an item. A zero-row delete is normalized to
// EntityNotFoundError.
func (s *ItemService) DeleteItemByID(ctx context.Context, id int64) error {
	affected, err := s.store.DeleteItem(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete item: %w", err)
	}
	if affected == 0 {
		return &EntityNotFoundError{Entity: "item", ID: id}
	}

	s.logger.Info("Item deleted", zap.Int64("item_id", id))
	return nil
}
