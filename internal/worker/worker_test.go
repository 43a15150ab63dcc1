package worker

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"order-service/internal/models"
	"order-service/internal/service"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingStore struct {
	statuses map[int64]models.OrderStatus
}

func (r *recordingStore) CreateOrder(context.Context, *models.Order) error { return nil }
func (r *recordingStore) GetOrderByID(context.Context, int64) (*models.Order, error) {
	return nil, nil
}
func (r *recordingStore) GetOrdersByIDs(context.Context, []int64) ([]models.Order, error) {
	return nil, nil
}
func (r *recordingStore) GetOrdersByStatus(context.Context, models.OrderStatus) ([]models.Order, error) {
	return nil, nil
}
func (r *recordingStore) GetOrdersByUserID(context.Context, int64) ([]models.Order, error) {
	return nil, nil
}
func (r *recordingStore) UpdateOrder(context.Context, int64, int64, models.OrderStatus, time.Time) (int64, error) {
	return 0, nil
}
func (r *recordingStore) UpdateOrderStatus(_ context.Context, id int64, status models.OrderStatus) (int64, error) {
	if _, ok := r.statuses[id]; !ok {
		return 0, nil
	}
	r.statuses[id] = status
	return 1, nil
}
func (r *recordingStore) DeleteOrder(context.Context, int64) (int64, error) { return 0, nil }

func paymentMessage(t *testing.T, event *models.PaymentEvent) kafka.Message {
	t.Helper()
	value, err := json.Marshal(event)
	require.NoError(t, err)
	return kafka.Message{Key: []byte("order-1"), Value: value}
}

func TestHandleMessageAppliesPaymentOutcome(t *testing.T) {
	store := &recordingStore{statuses: map[int64]models.OrderStatus{1: models.OrderStatusPendingPayment}}
	w := NewPaymentWorker(nil, service.NewReconciler(store))

	msg := paymentMessage(t, &models.PaymentEvent{
		ID:      1,
		OrderID: 1,
		UserID:  1,
		Status:  models.PaymentStatusCompleted,
		Source:  models.SourcePaymentService,
	})

	require.NoError(t, w.handleMessage(context.Background(), msg))
	assert.Equal(t, models.OrderStatusConfirmed, store.statuses[1])
}

func TestHandleMessagePoisonPayloadDropped(t *testing.T) {
	store := &recordingStore{statuses: map[int64]models.OrderStatus{1: models.OrderStatusPendingPayment}}
	w := NewPaymentWorker(nil, service.NewReconciler(store))

	msg := kafka.Message{Key: []byte("order-1"), Value: []byte("{not json")}

	assert.NoError(t, w.handleMessage(context.Background(), msg))
	assert.Equal(t, models.OrderStatusPendingPayment, store.statuses[1])
}

func TestHandleMessageUnknownOrderDoesNotFail(t *testing.T) {
	store := &recordingStore{statuses: map[int64]models.OrderStatus{}}
	w := NewPaymentWorker(nil, service.NewReconciler(store))

	msg := paymentMessage(t, &models.PaymentEvent{
		ID:      2,
		OrderID: 404,
		UserID:  1,
		Status:  models.PaymentStatusCompleted,
		Source:  models.SourcePaymentService,
	})

	assert.NoError(t, w.handleMessage(context.Background(), msg))
}
