package worker

import (
	"context"
	"encoding/json"

	"order-service/internal/broker"
	"order-service/internal/models"
	"order-service/internal/service"
	"order-service/internal/util"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// PaymentWorker consumes payment-outcome events and feeds them to the
// reconciler. All processing failures are caught here and logged; the
// message is committed regardless, so a poison event is dropped rather
// than redelivered forever.
type PaymentWorker struct {
	consumer   *broker.Consumer
	reconciler *service.Reconciler
	logger     *zap.Logger
}

// NewPaymentWorker creates a new payment worker
func NewPaymentWorker(consumer *broker.Consumer, reconciler *service.Reconciler) *PaymentWorker {
	return &PaymentWorker{
		consumer:   consumer,
		reconciler: reconciler,
		logger:     util.GetLogger(),
	}
}

// Start starts the worker. Blocks until the context is cancelled.
func (w *PaymentWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting payment worker")
	return w.consumer.StartConsuming(ctx, w.handleMessage)
}

// Stop stops the worker
func (w *PaymentWorker) Stop() error {
	w.logger.Info("Stopping payment worker")
	return w.consumer.Close()
}

func (w *PaymentWorker) handleMessage(ctx context.Context, msg kafka.Message) error {
	var event models.PaymentEvent
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		w.logger.Error("Failed to unmarshal payment event",
			zap.String("key", string(msg.Key)),
			zap.Error(err))
		return nil
	}

	if err := w.reconciler.HandlePaymentEvent(ctx, &event); err != nil {
		if service.IsOrderMissing(err) {
			w.logger.Warn("Payment event references unknown order",
				zap.Int64("order_id", event.OrderID),
				zap.Int64("user_id", event.UserID))
		} else {
			w.logger.Error("Failed to process payment event",
				zap.Int64("order_id", event.OrderID),
				zap.Error(err))
		}
	}

	return nil
}
