package service

import (
	"context"
	"testing"

	"order-service/internal/models"
	"order-service/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeOrderItemStore struct {
	items  map[int64]*models.OrderItem
	nextID int64
}

func newFakeOrderItemStore() *fakeOrderItemStore {
	return &fakeOrderItemStore{items: make(map[int64]*models.OrderItem), nextID: 1}
}

func (f *fakeOrderItemStore) CreateOrderItem(_ context.Context, item *models.OrderItem) error {
	item.ID = f.nextID
	f.nextID++
	stored := *item
	f.items[item.ID] = &stored
	return nil
}

func (f *fakeOrderItemStore) GetOrderItemByID(_ context.Context, id int64) (*models.OrderItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	copied := *item
	return &copied, nil
}

func (f *fakeOrderItemStore) GetOrderItemsByIDs(_ context.Context, ids []int64) ([]models.OrderItem, error) {
	var result []models.OrderItem
	for _, id := range ids {
		if item, ok := f.items[id]; ok {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (f *fakeOrderItemStore) GetOrderItemsByOrderID(_ context.Context, orderID int64) ([]models.OrderItem, error) {
	var result []models.OrderItem
	for _, item := range f.items {
		if item.OrderID == orderID {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (f *fakeOrderItemStore) GetOrderItemsByItemID(_ context.Context, itemID int64) ([]models.OrderItem, error) {
	var result []models.OrderItem
	for _, item := range f.items {
		if item.ItemID == itemID {
			result = append(result, *item)
		}
	}
	return result, nil
}

func (f *fakeOrderItemStore) UpdateOrderItem(_ context.Context, id, orderID, itemID int64, quantity int) (int64, error) {
	item, ok := f.items[id]
	if !ok {
		return 0, nil
	}
	item.OrderID = orderID
	item.ItemID = itemID
	item.Quantity = quantity
	return 1, nil
}

func (f *fakeOrderItemStore) DeleteOrderItem(_ context.Context, id int64) (int64, error) {
	if _, ok := f.items[id]; !ok {
		return 0, nil
	}
	delete(f.items, id)
	return 1, nil
}

func TestCreateOrderItem(t *testing.T) {
	svc := NewOrderItemService(newFakeOrderItemStore())

	item, err := svc.CreateOrderItem(context.Background(), &OrderItemRequest{
		OrderID:  1,
		ItemID:   2,
		Quantity: 3,
	})
	require.NoError(t, err)
	assert.NotZero(t, item.ID)
	assert.Equal(t, 3, item.Quantity)
}

func TestCreateOrderItemValidation(t *testing.T) {
	svc := NewOrderItemService(newFakeOrderItemStore())

	tests := []struct {
		name string
		req  OrderItemRequest
	}{
		{"missing order id", OrderItemRequest{ItemID: 2, Quantity: 1}},
		{"missing item id", OrderItemRequest{OrderID: 1, Quantity: 1}},
		{"zero quantity", OrderItemRequest{OrderID: 1, ItemID: 2, Quantity: 0}},
		{"negative quantity", OrderItemRequest{OrderID: 1, ItemID: 2, Quantity: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateOrderItem(context.Background(), &tt.req)
			var vErr *ValidationError
			assert.ErrorAs(t, err, &vErr)
		})
	}
}

func TestGetOrderItemsByOrderID(t *testing.T) {
	items := newFakeOrderItemStore()
	svc := NewOrderItemService(items)

	_, err := svc.CreateOrderItem(context.Background(), &OrderItemRequest{OrderID: 1, ItemID: 2, Quantity: 1})
	require.NoError(t, err)
	_, err = svc.CreateOrderItem(context.Background(), &OrderItemRequest{OrderID: 1, ItemID: 3, Quantity: 2})
	require.NoError(t, err)

	got, err := svc.GetOrderItemsByOrderID(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, got, 2)

	_, err = svc.GetOrderItemsByOrderID(context.Background(), 99)
	var nfErr *EntityNotFoundError
	assert.ErrorAs(t, err, &nfErr)
}

func TestDeleteOrderItemByIDTwice(t *testing.T) {
	svc := NewOrderItemService(newFakeOrderItemStore())

	created, err := svc.CreateOrderItem(context.Background(), &OrderItemRequest{OrderID: 1, ItemID: 2, Quantity: 1})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteOrderItemByID(context.Background(), created.ID))

	err = svc.DeleteOrderItemByID(context.Background(), created.ID)
	var nfErr *EntityNotFoundError
	assert.ErrorAs(t, err, &nfErr)
}
