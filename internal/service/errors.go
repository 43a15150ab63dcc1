package service

import (
	"errors"
	"fmt"

	"order-service/internal/models"
)

// EntityNotFoundError reports a single-id lookup, update or delete that
// resolved no row.
type EntityNotFoundError struct {
	Entity string
	ID     int64
}

func (e *EntityNotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %d", e.Entity, e.ID)
}

// EmptyResultSetError reports a bulk-by-ids lookup where none of the
// requested ids resolved.
type EmptyResultSetError struct {
	Entity string
	IDs    []int64
}

func (e *EmptyResultSetError) Error() string {
	return fmt.Sprintf("no %s found for ids %v", e.Entity, e.IDs)
}

// NoOrdersWithStatusError reports a by-status query that matched nothing.
type NoOrdersWithStatusError struct {
	Status models.OrderStatus
}

func (e *NoOrdersWithStatusError) Error() string {
	return fmt.Sprintf("no orders with status %s", e.Status)
}

// NoOrdersForUserError reports a by-user query that matched nothing.
type NoOrdersForUserError struct {
	UserID int64
}

func (e *NoOrdersForUserError) Error() string {
	return fmt.Sprintf("no orders for user %d", e.UserID)
}

// ReferencedEntityNotFoundError reports an invalid foreign reference at
// creation time, e.g. an order naming a user the directory does not know.
type ReferencedEntityNotFoundError struct {
	Entity string
	ID     int64
}

func (e *ReferencedEntityNotFoundError) Error() string {
	return fmt.Sprintf("referenced %s not found: %d", e.Entity, e.ID)
}

// ErrAccessDenied is returned when the remote directory rejects the
// service's credentials during an existence check.
var ErrAccessDenied = errors.New("access denied")

// ValidationError reports a request missing or violating a required field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
