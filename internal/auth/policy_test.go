package auth

import (
	"context"
	"errors"
	"testing"

	"order-service/internal/models"

	"github.com/stretchr/testify/assert"
)

type fakeOrderReader struct {
	orders map[int64]*models.Order
	items  map[int64]*models.OrderItem
}

func (f *fakeOrderReader) GetOrderByID(_ context.Context, id int64) (*models.Order, error) {
	order, ok := f.orders[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return order, nil
}

func (f *fakeOrderReader) GetOrderItemByID(_ context.Context, id int64) (*models.OrderItem, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return item, nil
}

type fakeDirectory struct {
	users map[int64]*models.User
	err   error
}

func (f *fakeDirectory) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	user, ok := f.users[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return user, nil
}

func (f *fakeDirectory) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, errors.New("not found")
}

func (f *fakeDirectory) ResolveUsers(ctx context.Context, ids []int64) map[int64]*models.User {
	result := make(map[int64]*models.User, len(ids))
	for _, id := range ids {
		if user, err := f.GetUserByID(ctx, id); err == nil {
			result[id] = user
		}
	}
	return result
}

func testPolicy(directoryErr error) Policy {
	orders := &fakeOrderReader{
		orders: map[int64]*models.Order{
			10: {ID: 10, UserID: 1, Status: models.OrderStatusPendingPayment},
		},
		items: map[int64]*models.OrderItem{
			20: {ID: 20, OrderID: 10, ItemID: 5, Quantity: 1},
		},
	}
	directory := &fakeDirectory{
		users: map[int64]*models.User{
			1: {ID: 1, Email: "alice@example.com"},
			2: {ID: 2, Email: "bob@example.com"},
		},
		err: directoryErr,
	}
	return NewPolicy(orders, directory)
}

var (
	alice = &Identity{Email: "alice@example.com", Roles: []string{RoleUser}}
	bob   = &Identity{Email: "bob@example.com", Roles: []string{RoleUser}}
	admin = &Identity{Email: "root@example.com", Roles: []string{RoleAdmin}}
)

func TestIsOrderOwnerOrAdmin(t *testing.T) {
	p := testPolicy(nil)

	assert.True(t, p.IsOrderOwnerOrAdmin(context.Background(), alice, 10))
	assert.True(t, p.IsOrderOwnerOrAdmin(context.Background(), admin, 10))
	assert.False(t, p.IsOrderOwnerOrAdmin(context.Background(), bob, 10))
	assert.False(t, p.IsOrderOwnerOrAdmin(context.Background(), nil, 10))
	assert.False(t, p.IsOrderOwnerOrAdmin(context.Background(), alice, 404))
}

func TestIsOrderOwnerOrAdminCaseInsensitive(t *testing.T) {
	p := testPolicy(nil)

	caller := &Identity{Email: "ALICE@Example.COM", Roles: []string{RoleUser}}
	assert.True(t, p.IsOrderOwnerOrAdmin(context.Background(), caller, 10))
}

func TestIsOrderOwnerOrAdminDirectoryOutageDenies(t *testing.T) {
	p := testPolicy(errors.New("connection refused"))

	assert.False(t, p.IsOrderOwnerOrAdmin(context.Background(), alice, 10))
	assert.True(t, p.IsOrderOwnerOrAdmin(context.Background(), admin, 10), "admin does not need the directory")
}

func TestIsOrderItemOwnerOrAdmin(t *testing.T) {
	p := testPolicy(nil)

	assert.True(t, p.IsOrderItemOwnerOrAdmin(context.Background(), alice, 20))
	assert.True(t, p.IsOrderItemOwnerOrAdmin(context.Background(), admin, 20))
	assert.False(t, p.IsOrderItemOwnerOrAdmin(context.Background(), bob, 20))
	assert.False(t, p.IsOrderItemOwnerOrAdmin(context.Background(), alice, 404))
}

func TestIsOwnerOrAdminByEmail(t *testing.T) {
	p := testPolicy(nil)

	assert.True(t, p.IsOwnerOrAdminByEmail(alice, "alice@example.com"))
	assert.True(t, p.IsOwnerOrAdminByEmail(alice, "Alice@Example.Com"))
	assert.True(t, p.IsOwnerOrAdminByEmail(admin, "whoever@example.com"))
	assert.False(t, p.IsOwnerOrAdminByEmail(bob, "alice@example.com"))
	assert.False(t, p.IsOwnerOrAdminByEmail(nil, "alice@example.com"))
}

func TestIsOwnerOrAdminByUserID(t *testing.T) {
	p := testPolicy(nil)

	assert.True(t, p.IsOwnerOrAdminByUserID(context.Background(), alice, 1))
	assert.True(t, p.IsOwnerOrAdminByUserID(context.Background(), admin, 2))
	assert.False(t, p.IsOwnerOrAdminByUserID(context.Background(), alice, 2))
	assert.False(t, p.IsOwnerOrAdminByUserID(context.Background(), alice, 404))
}

func TestSameEmail(t *testing.T) {
	assert.True(t, sameEmail("a@b.c", "A@B.C"))
	assert.False(t, sameEmail("", ""))
	assert.False(t, sameEmail("a@b.c", "x@b.c"))
}
