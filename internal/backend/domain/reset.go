package domain

import "time"

// ResetToken tracks an issued password reset credential by its jti. The row
// is deleted when the reset is performed.
type ResetToken struct {
	ID        string
	Login     string
	ExpiresAt time.Time
	CreatedAt time.Time
}
