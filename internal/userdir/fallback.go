package userdir

import (
	"time"

	"order-service/internal/models"
)

// SentinelEmail is the email on a fallback projection resolved by id. It
// matches no real caller, so ownership checks against it fail closed.
const SentinelEmail = "unknown@user.service"

var epoch = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)

// FallbackByID synthesizes a placeholder projection for an id lookup that
// could not be completed.
func FallbackByID(id int64) *models.User {
	return &models.User{
		ID:        id,
		Name:      "Unknown",
		Surname:   "User",
		BirthDate: epoch,
		Email:     SentinelEmail,
	}
}

// FallbackByEmail synthesizes a placeholder projection for an email lookup
// that could not be completed. The requested email is echoed back.
func FallbackByEmail(email string) *models.User {
	return &models.User{
		ID:        0,
		Name:      "Unknown",
		Surname:   "User",
		BirthDate: epoch,
		Email:     email,
	}
}
