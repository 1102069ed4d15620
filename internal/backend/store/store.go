package store

import (
	"context"
	"errors"
	"time"

	"github.com/smetchik/backend/internal/backend/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Repos groups the sub-repositories shared by Store and Tx.
type Repos interface {
	Users() Users
	Sessions() Sessions
	ResetTokens() ResetTokens
	Tickets() Tickets
	Scans() Scans
}

// Store is the root data access interface implemented by the memory and
// sqlite drivers. Nothing a driver holds survives the process.
type Store interface {
	Repos

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx. While
	// a transaction is open, other callers block, so fn must only use the
	// repos of the Tx it was given.
	Tx(ctx context.Context) (Tx, error)

	// WithTx runs fn in a transaction, committing when fn returns nil and
	// rolling back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	Close() error
	Ping(ctx context.Context) error
}

// Tx is a transactional store. Nested transactions are not supported.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// CreateUser assigns the next user id and returns the stored record.
	// Returns ErrAlreadyExists when the login is taken.
	CreateUser(ctx context.Context, u domain.User) (domain.User, error)

	GetUserByID(ctx context.Context, id int64) (domain.User, error)
	GetUserByLogin(ctx context.Context, login string) (domain.User, error)

	// FirstUser returns the user with the lowest id still present.
	FirstUser(ctx context.Context) (domain.User, error)

	UpdatePasswordHash(ctx context.Context, id int64, hash string, now time.Time) error

	// UpdateTwoFA sets the 2FA flag and secret together.
	UpdateTwoFA(ctx context.Context, id int64, enabled bool, secret string, now time.Time) error

	DeleteUser(ctx context.Context, id int64) error
}

type Sessions interface {
	CreateSession(ctx context.Context, s domain.Session) error
	GetSessionByHash(ctx context.Context, hash string) (domain.Session, error)
	DeleteSession(ctx context.Context, hash string) error
	DeleteUserSessions(ctx context.Context, userID int64) error

	// DeleteExpiredSessions removes sessions expiring at or before now and
	// reports how many were removed.
	DeleteExpiredSessions(ctx context.Context, now time.Time) (int64, error)
}

type ResetTokens interface {
	CreateResetToken(ctx context.Context, t domain.ResetToken) error
	GetResetToken(ctx context.Context, id string) (domain.ResetToken, error)

	// DeleteResetToken returns ErrNotFound if the token was already consumed.
	DeleteResetToken(ctx context.Context, id string) error

	DeleteResetTokensByLogin(ctx context.Context, login string) error
	DeleteExpiredResetTokens(ctx context.Context, now time.Time) (int64, error)
}

type Tickets interface {
	// CreateTicket assigns the next ticket id and returns the stored record.
	CreateTicket(ctx context.Context, t domain.Ticket) (domain.Ticket, error)

	// ListTickets returns every ticket in id order.
	ListTickets(ctx context.Context) ([]domain.Ticket, error)
}

type Scans interface {
	// RecordFrames adds frames to a scan, creating it on first use.
	RecordFrames(ctx context.Context, scanID string, frames int, now time.Time) (domain.Scan, error)

	// FinishScan marks a scan finished, creating it on first use.
	FinishScan(ctx context.Context, scanID string, now time.Time) (domain.Scan, error)

	GetScan(ctx context.Context, scanID string) (domain.Scan, error)

	// DeleteScansBefore removes scans last updated before cutoff.
	DeleteScansBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
