package domain

import "time"

type User struct {
	ID           int64 // monotonic, never reused after deletion
	Login        string
	PasswordHash string // argon2id PHC string
	TwoFAEnabled bool
	TwoFASecret  string // base32 TOTP secret, empty while 2FA is off
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
