// Package memory is the default store driver: plain maps behind one mutex.
package memory

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"

	"github.com/smetchik/backend/internal/backend/domain"
	"github.com/smetchik/backend/internal/backend/store"
)

var (
	errTxDone   = errors.New("memory: transaction already committed or rolled back")
	errNestedTx = errors.New("memory: nested transactions are not supported")
)

type state struct {
	nextUserID   int64
	nextTicketID int64

	users       map[int64]domain.User
	logins      map[string]int64
	sessions    map[string]domain.Session // by token hash
	resetTokens map[string]domain.ResetToken
	tickets     []domain.Ticket
	scans       map[string]domain.Scan
}

func newState() *state {
	return &state{
		users:       make(map[int64]domain.User),
		logins:      make(map[string]int64),
		sessions:    make(map[string]domain.Session),
		resetTokens: make(map[string]domain.ResetToken),
		scans:       make(map[string]domain.Scan),
	}
}

func (s *state) clone() *state {
	return &state{
		nextUserID:   s.nextUserID,
		nextTicketID: s.nextTicketID,
		users:        maps.Clone(s.users),
		logins:       maps.Clone(s.logins),
		sessions:     maps.Clone(s.sessions),
		resetTokens:  maps.Clone(s.resetTokens),
		tickets:      slices.Clone(s.tickets),
		scans:        maps.Clone(s.scans),
	}
}

// guard locks the store for a single repo call. Inside a transaction the
// lock is already held, so the guard is a no-op.
type guard struct {
	mu *sync.Mutex
}

func (g guard) lock() func() {
	if g.mu == nil {
		return func() {}
	}
	g.mu.Lock()
	return g.mu.Unlock
}

type Store struct {
	mu sync.Mutex
	st *state
}

func NewStore() *Store {
	return &Store{st: newState()}
}

func (s *Store) ApplyMigrations() error         { return nil }
func (s *Store) Close() error                   { return nil }
func (s *Store) Ping(ctx context.Context) error { return ctx.Err() }

// Tx takes the store lock until Commit or Rollback. Rollback restores the
// snapshot taken here.
//
// The snapshot copies every map, so a transaction costs O(total state) under
// the lock. Housekeeping keeps the session map bounded by purging expired
// rows; deployments that outgrow this should use the sqlite driver.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	return &txStore{parent: s, snapshot: s.st.clone()}, nil
}

func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) g() guard { return guard{mu: &s.mu} }

func (s *Store) Users() store.Users             { return &usersRepo{st: s.st, g: s.g()} }
func (s *Store) Sessions() store.Sessions       { return &sessionsRepo{st: s.st, g: s.g()} }
func (s *Store) ResetTokens() store.ResetTokens { return &resetTokensRepo{st: s.st, g: s.g()} }
func (s *Store) Tickets() store.Tickets         { return &ticketsRepo{st: s.st, g: s.g()} }
func (s *Store) Scans() store.Scans             { return &scansRepo{st: s.st, g: s.g()} }

type txStore struct {
	parent   *Store
	snapshot *state
	done     bool
}

func (t *txStore) Commit() error {
	if t.done {
		return errTxDone
	}
	t.done = true
	t.parent.mu.Unlock()
	return nil
}

func (t *txStore) Rollback() error {
	if t.done {
		return errTxDone
	}
	t.done = true
	*t.parent.st = *t.snapshot
	t.parent.mu.Unlock()
	return nil
}

func (t *txStore) ApplyMigrations() error         { return nil }
func (t *txStore) Close() error                   { return nil }
func (t *txStore) Ping(ctx context.Context) error { return nil }

func (t *txStore) Tx(ctx context.Context) (store.Tx, error) {
	return nil, errNestedTx
}

func (t *txStore) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	return errNestedTx
}

func (t *txStore) Users() store.Users             { return &usersRepo{st: t.parent.st} }
func (t *txStore) Sessions() store.Sessions       { return &sessionsRepo{st: t.parent.st} }
func (t *txStore) ResetTokens() store.ResetTokens { return &resetTokensRepo{st: t.parent.st} }
func (t *txStore) Tickets() store.Tickets         { return &ticketsRepo{st: t.parent.st} }
func (t *txStore) Scans() store.Scans             { return &scansRepo{st: t.parent.st} }
