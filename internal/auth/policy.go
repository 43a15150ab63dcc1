package auth

import (
	"context"

	"order-service/internal/models"
	"order-service/internal/userdir"
	"order-service/internal/util"

	"go.uber.org/zap"
)

// OrderReader resolves orders and order items for ownership checks.
type OrderReader interface {
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	GetOrderItemByID(ctx context.Context, id int64) (*models.OrderItem, error)
}

// Policy answers resource-ownership questions for the API boundary. Every
// predicate returns false, never an error, for a missing resource or an
// unauthenticated caller. A directory outage yields a fallback projection
// whose email matches no caller, so ownership checks fail closed.
type Policy interface {
	IsOrderOwnerOrAdmin(ctx context.Context, id *Identity, orderID int64) bool
	IsOrderItemOwnerOrAdmin(ctx context.Context, id *Identity, orderItemID int64) bool
	IsOwnerOrAdminByEmail(id *Identity, email string) bool
	IsOwnerOrAdminByUserID(ctx context.Context, id *Identity, userID int64) bool
}

type policy struct {
	orders    OrderReader
	directory userdir.Directory
	logger    *zap.Logger
}

// NewPolicy creates the ownership policy.
func NewPolicy(orders OrderReader, directory userdir.Directory) Policy {
	return &policy{
		orders:    orders,
		directory: directory,
		logger:    util.GetLogger(),
	}
}

func (p *policy) IsOrderOwnerOrAdmin(ctx context.Context, id *Identity, orderID int64) bool {
	if id.Anonymous() {
		return p.deny()
	}
	if id.IsAdmin() {
		return p.allow()
	}

	order, err := p.orders.GetOrderByID(ctx, orderID)
	if err != nil {
		return p.deny()
	}
	return p.decide(p.ownsUser(ctx, id, order.UserID))
}

func (p *policy) IsOrderItemOwnerOrAdmin(ctx context.Context, id *Identity, orderItemID int64) bool {
	if id.Anonymous() {
		return p.deny()
	}
	if id.IsAdmin() {
		return p.allow()
	}

	item, err := p.orders.GetOrderItemByID(ctx, orderItemID)
	if err != nil {
		return p.deny()
	}

	order, err := p.orders.GetOrderByID(ctx, item.OrderID)
	if err != nil {
		return p.deny()
	}
	return p.decide(p.ownsUser(ctx, id, order.UserID))
}

func (p *policy) IsOwnerOrAdminByEmail(id *Identity, email string) bool {
	if id.Anonymous() {
		return p.deny()
	}
	if id.IsAdmin() {
		return p.allow()
	}
	return p.decide(sameEmail(id.Email, email))
}

func (p *policy) IsOwnerOrAdminByUserID(ctx context.Context, id *Identity, userID int64) bool {
	if id.Anonymous() {
		return p.deny()
	}
	if id.IsAdmin() {
		return p.allow()
	}
	return p.decide(p.ownsUser(ctx, id, userID))
}

// ownsUser resolves the user's email through the directory and compares it
// to the caller. One remote call per check in the non-admin case.
func (p *policy) ownsUser(ctx context.Context, id *Identity, userID int64) bool {
	user, err := p.directory.GetUserByID(ctx, userID)
	if err != nil {
		p.logger.Warn("Ownership check could not resolve user, denying",
			zap.Int64("user_id", userID),
			zap.Error(err))
		return false
	}
	return sameEmail(id.Email, user.Email)
}

func (p *policy) allow() bool {
	util.AuthDecisionsTotal.WithLabelValues("allow").Inc()
	return true
}

func (p *policy) deny() bool {
	util.AuthDecisionsTotal.WithLabelValues("deny").Inc()
	return false
}

func (p *policy) decide(allowed bool) bool {
	if allowed {
		return p.allow()
	}
	return p.deny()
}
