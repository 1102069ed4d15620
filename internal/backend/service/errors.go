package service

import (
	"errors"
	"time"
)

var (
	ErrInvalidInput       = errors.New("invalid_input")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrLoginTaken         = errors.New("login_taken")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidResetToken  = errors.New("invalid_reset_token")
	ErrInvalidRefresh     = errors.New("invalid_refresh_token")
	ErrTwoFactorDisabled  = errors.New("two_factor_disabled")
)

// Clock returns the current time. Services fall back to time.Now.
type Clock func() time.Time

func (c Clock) now() time.Time {
	if c == nil {
		return time.Now().UTC()
	}
	return c().UTC()
}
