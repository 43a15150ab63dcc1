package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"order-service/internal/models"
	"order-service/internal/store"
	"order-service/internal/userdir"
	"order-service/internal/util"

	"go.uber.org/zap"
)

// OrderStore is the persistence surface the order service depends on.
type OrderStore interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	GetOrdersByIDs(ctx context.Context, ids []int64) ([]models.Order, error)
	GetOrdersByStatus(ctx context.Context, status models.OrderStatus) ([]models.Order, error)
	GetOrdersByUserID(ctx context.Context, userID int64) ([]models.Order, error)
	UpdateOrder(ctx context.Context, id, userID int64, status models.OrderStatus, creationDate time.Time) (int64, error)
	UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) (int64, error)
	DeleteOrder(ctx context.Context, id int64) (int64, error)
}

// EventPublisher publishes order lifecycle events to the event channel.
type EventPublisher interface {
	PublishOrderCreated(ctx context.Context, event *models.OrderEvent) error
}

// OrderService orchestrates the order lifecycle: creation with a remote
// user-existence check, read-path enrichment with user projections, and
// status reconciliation driven by payment events.
type OrderService struct {
	store     OrderStore
	directory userdir.Directory
	publisher EventPublisher
	logger    *zap.Logger
}

// NewOrderService creates a new order service
func NewOrderService(orderStore OrderStore, directory userdir.Directory, publisher EventPublisher) *OrderService {
	return &OrderService{
		store:     orderStore,
		directory: directory,
		publisher: publisher,
		logger:    util.GetLogger(),
	}
}

// OrderRequest carries the full field set of an order for create and update.
type OrderRequest struct {
	UserID       int64              `json:"user_id" binding:"required"`
	Status       models.OrderStatus `json:"status" binding:"required"`
	CreationDate time.Time          `json:"creation_date" binding:"required"`
}

func (r *OrderRequest) validate() error {
	if r.UserID == 0 {
		return &ValidationError{Field: "user_id", Reason: "required"}
	}
	if !r.Status.Valid() {
		return &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", r.Status)}
	}
	if r.CreationDate.IsZero() {
		return &ValidationError{Field: "creation_date", Reason: "required"}
	}
	return nil
}

// CreateOrder validates the referenced user against the remote directory,
// persists the order, and publishes an order-created event. Publication is
// best effort: a publish failure is logged and counted but does not fail
// the creation.
func (s *OrderService) CreateOrder(ctx context.Context, req *OrderRequest) (*models.OrderResponse, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.CreateOrder")
	defer span.End()

	if err := req.validate(); err != nil {
		util.OrdersFailedTotal.WithLabelValues("validation").Inc()
		return nil, err
	}

	user, err := s.directory.GetUserByID(ctx, req.UserID)
	switch {
	case errors.Is(err, userdir.ErrUserNotFound):
		// An affirmative 404 must not create an orphaned order.
		util.OrdersFailedTotal.WithLabelValues("user_not_found").Inc()
		return nil, &ReferencedEntityNotFoundError{Entity: "user", ID: req.UserID}
	case errors.Is(err, userdir.ErrUserUnauthorized):
		util.OrdersFailedTotal.WithLabelValues("unauthorized").Inc()
		return nil, ErrAccessDenied
	case err != nil:
		// Directory outage: availability over consistency, the order is
		// still created and the response carries a fallback projection.
		s.logger.Warn("User lookup failed during order creation, using fallback",
			zap.Int64("user_id", req.UserID),
			zap.Error(err))
		util.UserLookupFallbacksTotal.Inc()
		user = userdir.FallbackByID(req.UserID)
	}

	order := &models.Order{
		UserID:       req.UserID,
		Status:       req.Status,
		CreationDate: req.CreationDate,
	}

	if err := s.store.CreateOrder(ctx, order); err != nil {
		util.OrdersFailedTotal.WithLabelValues("db_error").Inc()
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	util.OrdersCreatedTotal.Inc()
	s.logger.Info("Order created",
		zap.Int64("order_id", order.ID),
		zap.Int64("user_id", order.UserID),
		zap.String("status", string(order.Status)))

	s.publishOrderCreated(ctx, order)

	return enrichWithUser(order, user), nil
}

// publishOrderCreated emits the creation event. There is no atomicity
// between the order row and the event: a publish failure leaves an order
// the payment service never hears about. Logged, not retried.
func (s *OrderService) publishOrderCreated(ctx context.Context, order *models.Order) {
	event := &models.OrderEvent{
		OrderID:      order.ID,
		UserID:       order.UserID,
		Status:       order.Status,
		CreationDate: order.CreationDate,
		Source:       models.SourceOrderService,
	}

	if err := s.publisher.PublishOrderCreated(ctx, event); err != nil {
		s.logger.Error("Failed to publish order created event",
			zap.Int64("order_id", order.ID),
			zap.Error(err))
		util.OrderEventPublishFailures.Inc()
		return
	}
	util.OrderEventsPublishedTotal.Inc()
}

// GetOrderByID retrieves one order enriched with its user projection.
func (s *OrderService) GetOrderByID(ctx context.Context, id int64) (*models.OrderResponse, error) {
	order, err := s.store.GetOrderByID(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return nil, &EntityNotFoundError{Entity: "order", ID: id}
	}
	if err != nil {
		return nil, err
	}

	users := s.directory.ResolveUsers(ctx, []int64{order.UserID})
	return enrichWithUser(order, users[order.UserID]), nil
}

// GetOrdersByIDs retrieves the subset of orders whose ids exist. It fails
// only when none of the requested ids resolve.
func (s *OrderService) GetOrdersByIDs(ctx context.Context, ids []int64) ([]*models.OrderResponse, error) {
	orders, err := s.store.GetOrdersByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, &EmptyResultSetError{Entity: "orders", IDs: ids}
	}
	return s.enrichAll(ctx, orders), nil
}

// GetOrdersByStatus retrieves all orders with the given status.
func (s *OrderService) GetOrdersByStatus(ctx context.Context, status models.OrderStatus) ([]*models.OrderResponse, error) {
	if !status.Valid() {
		return nil, &ValidationError{Field: "status", Reason: fmt.Sprintf("unknown status %q", status)}
	}

	orders, err := s.store.GetOrdersByStatus(ctx, status)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, &NoOrdersWithStatusError{Status: status}
	}
	return s.enrichAll(ctx, orders), nil
}

// GetOrdersByUserID retrieves all orders owned by a user.
func (s *OrderService) GetOrdersByUserID(ctx context.Context, userID int64) ([]*models.OrderResponse, error) {
	orders, err := s.store.GetOrdersByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, &NoOrdersForUserError{UserID: userID}
	}
	return s.enrichAll(ctx, orders), nil
}

// GetOrdersByEmail resolves the user by email first, then queries orders by
// the resolved user id. An unresolvable email degrades to a fallback
// projection, which typically yields an empty order set rather than an
// error.
func (s *OrderService) GetOrdersByEmail(ctx context.Context, email string) ([]*models.OrderResponse, error) {
	user := s.resolveByEmail(ctx, email)

	orders, err := s.store.GetOrdersByUserID(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, enrichWithUser(&orders[i], user))
	}
	return responses, nil
}

// GetUserByEmail resolves a user projection by email, falling back to a
// placeholder when the directory cannot answer.
func (s *OrderService) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.resolveByEmail(ctx, email), nil
}

// UpdateOrderByID replaces all fields of an order via a single conditional
// update, then re-reads and re-enriches. Zero affected rows means the order
// does not exist.
func (s *OrderService) UpdateOrderByID(ctx context.Context, id int64, req *OrderRequest) (*models.OrderResponse, error) {
	ctx, span := util.StartSpan(ctx, "OrderService.UpdateOrderByID")
	defer span.End()

	if err := req.validate(); err != nil {
		return nil, err
	}

	affected, err := s.store.UpdateOrder(ctx, id, req.UserID, req.Status, req.CreationDate)
	if err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}
	if affected == 0 {
		return nil, &EntityNotFoundError{Entity: "order", ID: id}
	}

	return s.GetOrderByID(ctx, id)
}

// DeleteOrderByID deletes an order. A zero-row delete is normalized to
// EntityNotFoundError rather than surfacing a store error.
func (s *OrderService) DeleteOrderByID(ctx context.Context, id int64) error {
	affected, err := s.store.DeleteOrder(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete order: %w", err)
	}
	if affected == 0 {
		return &EntityNotFoundError{Entity: "order", ID: id}
	}

	s.logger.Info("Order deleted", zap.Int64("order_id", id))
	return nil
}

// OrderOwnerEmail resolves the email of the user owning an order. Used by
// the authorization policy.
func (s *OrderService) OrderOwnerEmail(ctx context.Context, orderID int64) (string, error) {
	order, err := s.store.GetOrderByID(ctx, orderID)
	if errors.Is(err, store.ErrNotFound) {
		return "", &EntityNotFoundError{Entity: "order", ID: orderID}
	}
	if err != nil {
		return "", err
	}

	user, err := s.directory.GetUserByID(ctx, order.UserID)
	if err != nil {
		// Fallback email matches no caller: ownership checks fail closed.
		return userdir.SentinelEmail, nil
	}
	return user.Email, nil
}

func (s *OrderService) resolveByEmail(ctx context.Context, email string) *models.User {
	user, err := s.directory.GetUserByEmail(ctx, email)
	if err != nil {
		s.logger.Warn("Email lookup failed, using fallback projection",
			zap.String("email", email),
			zap.Error(err))
		util.UserLookupFallbacksTotal.Inc()
		return userdir.FallbackByEmail(email)
	}
	return user
}

func (s *OrderService) enrichAll(ctx context.Context, orders []models.Order) []*models.OrderResponse {
	ids := make([]int64, 0, len(orders))
	for i := range orders {
		ids = append(ids, orders[i].UserID)
	}
	users := s.directory.ResolveUsers(ctx, ids)

	responses := make([]*models.OrderResponse, 0, len(orders))
	for i := range orders {
		responses = append(responses, enrichWithUser(&orders[i], users[orders[i].UserID]))
	}
	return responses
}

// enrichWithUser attaches a resolved user projection to an order response.
// Pure composition, no stored state is touched. Every read path goes
// through here so a returned order never lacks a user.
func enrichWithUser(order *models.Order, user *models.User) *models.OrderResponse {
	if user == nil {
		user = userdir.FallbackByID(order.UserID)
	}
	return &models.OrderResponse{
		ID:           order.ID,
		UserID:       order.UserID,
		Status:       order.Status,
		CreationDate: order.CreationDate,
		User:         user,
	}
}
