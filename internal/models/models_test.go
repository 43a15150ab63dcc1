package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusValid(t *testing.T) {
	valid := []OrderStatus{
		OrderStatusPendingPayment,
		OrderStatusOnHold,
		OrderStatusProcessing,
		OrderStatusConfirmed,
		OrderStatusShipped,
		OrderStatusDelivered,
		OrderStatusCompleted,
		OrderStatusCanceled,
		OrderStatusRefunded,
	}
	for _, s := range valid {
		assert.True(t, s.Valid(), string(s))
	}

	assert.False(t, OrderStatus("").Valid())
	assert.False(t, OrderStatus("NEW").Valid())
	assert.False(t, OrderStatus("pending_payment").Valid(), "statuses are case sensitive")
}
