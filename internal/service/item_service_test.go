package service

import (
	"context"
	"testing"

	"order-service/internal/models"
	"order-service/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeItemStore struct {
	items  map[int64]*models.Item
	nextID int64
}

func newFakeItemStore() *fakeItemStore {
	return &fakeItemStore{items: make(map[int64]*models.Item), nextID: 1}
}

func (f *fakeItemStore) CreateItem(_ context.Context, item *models.Item) error {
	item.ID = f.nextID
	f.nextID++
	stored := *item
	f.items[item.ID] = &stored
	return nil
}

func (f *fakeItemStore) GetItemByID(_ context.Context, id int64) (*models.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *item
	return &copied, nil
}

func (f *fakeItemStore) GetItemsByIDs(_ context.Context, ids []int64) ([]models.Item, error) {
	var result []models.Item
	for _, id := range ids {
		if item, ok := f.items[id]; ok {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (f *fakeItemStore) UpdateItem(_ context.Context, id int64, name string, price decimal.Decimal) (int64, error) {
	item, ok := f.items[id]
	if !ok {
		return 0, nil
	}
	item.Name = name
	item.Price = price
	return 1, nil
}

func (f *fakeItemStore) DeleteItem(_ context.Context, id int64) (int64, error) {
	if _, ok := f.items[id]; !ok {
		return 0, nil
	}
	delete(f.items, id)
	return 1, nil
}

func TestCreateItem(t *testing.T) {
	svc := NewItemService(newFakeItemStore())

	item, err := svc.CreateItem(context.Background(), &ItemRequest{
		Name:  "widget",
		Price: decimal.RequireFromString("19.90"),
	})
	require.NoError(t, err)
	assert.NotZero(t, item.ID)
	assert.True(t, item.Price.Equal(decimal.RequireFromString("19.90")))
}

func TestCreateItemValidation(t *testing.T) {
	svc := NewItemService(newFakeItemStore())

	tests := []struct {
		name string
		req  ItemRequest
	}{
		{"empty name", ItemRequest{Name: "", Price: decimal.NewFromInt(5)}},
		{"negative price", ItemRequest{Name: "widget", Price: decimal.RequireFromString("-1.00")}},
		{"too many decimals", ItemRequest{Name: "widget", Price: decimal.RequireFromString("1.999")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateItem(context.Background(), &tt.req)
			var vErr *ValidationError
			assert.ErrorAs(t, err, &vErr)
		})
	}
}

func TestGetItemsByIDsSubset(t *testing.T) {
	items := newFakeItemStore()
	svc := NewItemService(items)

	created, err := svc.CreateItem(context.Background(), &ItemRequest{
		Name:  "widget",
		Price: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	got, err := svc.GetItemsByIDs(context.Background(), []int64{created.ID, 777})
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = svc.GetItemsByIDs(context.Background(), []int64{776, 777})
	var emptyErr *EmptyResultSetError
	assert.ErrorAs(t, err, &emptyErr)
}

func TestUpdateItemByIDNotFound(t *testing.T) {
	svc := NewItemService(newFakeItemStore())

	_, err := svc.UpdateItemByID(context.Background(), 5, &ItemRequest{
		Name:  "widget",
		Price: decimal.NewFromInt(10),
	})
	var nfErr *EntityNotFoundError
	require.ErrorAs(t, err, &nfErr)
	assert.Equal(t, "item", nfErr.Entity)
}

func TestDeleteItemByIDTwice(t *testing.T) {
	items := newFakeItemStore()
	svc := NewItemService(items)

	created, err := svc.CreateItem(context.Background(), &ItemRequest{
		Name:  "widget",
		Price: decimal.NewFromInt(10),
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteItemByID(context.Background(), created.ID))

	err = svc.DeleteItemByID(context.Background(), created.ID)
	var nfErr *EntityNotFoundError
	assert.ErrorAs(t, err, &nfErr)
}
