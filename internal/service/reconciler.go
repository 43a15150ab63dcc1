package service

import (
	"context"
	"errors"
	"fmt"

	"order-service/internal/models"
	"order-service/internal/util"

	"go.uber.org/zap"
)

// Reconciler advances order status from payment-outcome events. Delivery is
// at-least-once; the transition is idempotent by construction (same event
// always maps to the same final status), so redelivery needs no
// deduplication.
type Reconciler struct {
	store  OrderStore
	logger *zap.Logger
}

// NewReconciler creates a payment-event reconciler.
func NewReconciler(orderStore OrderStore) *Reconciler {
	return &Reconciler{
		store:  orderStore,
		logger: util.GetLogger(),
	}
}

// mapPaymentStatus collapses the payment outcome into the binary order-side
// view: COMPLETED confirms, everything else cancels.
func mapPaymentStatus(status models.PaymentStatus) models.OrderStatus {
	if status == models.PaymentStatusCompleted {
		return models.OrderStatusConfirmed
	}
	return models.OrderStatusCanceled
}

// HandlePaymentEvent applies one payment-outcome event. Events from sources
// other than the payment service are discarded without error. The target
// order is resolved by the event's order id; the user id is carried for
// diagnostics only.
func (r *Reconciler) HandlePaymentEvent(ctx context.Context, event *models.PaymentEvent) error {
	ctx, span := util.StartSpan(ctx, "Reconciler.HandlePaymentEvent")
	defer span.End()

	if event.Source != models.SourcePaymentService {
		r.logger.Debug("Ignoring event from non-payment source",
			zap.String("source", event.Source),
			zap.Int64("order_id", event.OrderID))
		util.PaymentEventsTotal.WithLabelValues("ignored").Inc()
		return nil
	}

	newStatus := mapPaymentStatus(event.Status)

	affected, err := r.store.UpdateOrderStatus(ctx, event.OrderID, newStatus)
	if err != nil {
		util.PaymentEventsTotal.WithLabelValues("error").Inc()
		return fmt.Errorf("failed to update order %d status: %w", event.OrderID, err)
	}
	if affected == 0 {
		util.PaymentEventsTotal.WithLabelValues("order_missing").Inc()
		return &EntityNotFoundError{Entity: "order", ID: event.OrderID}
	}

	util.PaymentEventsTotal.WithLabelValues("applied").Inc()
	r.logger.Info("Order status reconciled from payment event",
		zap.Int64("order_id", event.OrderID),
		zap.Int64("user_id", event.UserID),
		zap.String("payment_status", string(event.Status)),
		zap.String("order_status", string(newStatus)))
	return nil
}

// IsOrderMissing reports whether a reconciliation error means the target
// order does not exist, as opposed to a store failure.
func IsOrderMissing(err error) bool {
	var nf *EntityNotFoundError
	return errors.As(err, &nf)
}
