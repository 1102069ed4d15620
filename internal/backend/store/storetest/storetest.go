// Package storetest is a conformance suite every store driver must pass.
package storetest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/smetchik/backend/internal/backend/domain"
	"github.com/smetchik/backend/internal/backend/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns a fresh, migrated store. Cleanup is the factory's job.
type Factory func(t *testing.T) store.Store

// Run executes the suite against stores produced by open.
func Run(t *testing.T, open Factory) {
	t.Run("Users", func(t *testing.T) { testUsers(t, open(t)) })
	t.Run("UserIDsNeverReused", func(t *testing.T) { testUserIDsNeverReused(t, open(t)) })
	t.Run("Sessions", func(t *testing.T) { testSessions(t, open(t)) })
	t.Run("ResetTokens", func(t *testing.T) { testResetTokens(t, open(t)) })
	t.Run("Tickets", func(t *testing.T) { testTickets(t, open(t)) })
	t.Run("Scans", func(t *testing.T) { testScans(t, open(t)) })
	t.Run("WithTxRollback", func(t *testing.T) { testWithTxRollback(t, open(t)) })
	t.Run("WithTxCommit", func(t *testing.T) { testWithTxCommit(t, open(t)) })
	t.Run("ConcurrentTickets", func(t *testing.T) { testConcurrentTickets(t, open(t)) })
}

// now is truncated to milliseconds, the precision drivers must keep.
func now() time.Time {
	return time.UnixMilli(time.Now().UnixMilli()).UTC()
}

func newUser(login string) domain.User {
	ts := now()
	return domain.User{Login: login, PasswordHash: "hash-" + login, CreatedAt: ts, UpdatedAt: ts}
}

func testUsers(t *testing.T, s store.Store) {
	ctx := context.Background()

	_, err := s.Users().FirstUser(ctx)
	require.ErrorIs(t, err, store.ErrNotFound)

	ivan, err := s.Users().CreateUser(ctx, newUser("ivan"))
	require.NoError(t, err)
	require.Equal(t, int64(1), ivan.ID)
	require.False(t, ivan.TwoFAEnabled)

	_, err = s.Users().CreateUser(ctx, newUser("ivan"))
	require.ErrorIs(t, err, store.ErrAlreadyExists)

	olga, err := s.Users().CreateUser(ctx, newUser("olga"))
	require.NoError(t, err)
	require.Greater(t, olga.ID, ivan.ID)

	got, err := s.Users().GetUserByLogin(ctx, "ivan")
	require.NoError(t, err)
	require.Equal(t, ivan.ID, got.ID)
	require.Equal(t, "hash-ivan", got.PasswordHash, "duplicate insert must not touch the original")

	_, err = s.Users().GetUserByLogin(ctx, "nobody")
	require.ErrorIs(t, err, store.ErrNotFound)

	first, err := s.Users().FirstUser(ctx)
	require.NoError(t, err)
	require.Equal(t, ivan.ID, first.ID)

	later := now().Add(time.Second)
	require.NoError(t, s.Users().UpdatePasswordHash(ctx, ivan.ID, "hash-2", later))
	require.NoError(t, s.Users().UpdateTwoFA(ctx, ivan.ID, true, "SECRET", later))

	got, err = s.Users().GetUserByID(ctx, ivan.ID)
	require.NoError(t, err)
	assert.Equal(t, "hash-2", got.PasswordHash)
	assert.True(t, got.TwoFAEnabled)
	assert.Equal(t, "SECRET", got.TwoFASecret)
	assert.Equal(t, later.UnixMilli(), got.UpdatedAt.UnixMilli())

	require.ErrorIs(t, s.Users().UpdatePasswordHash(ctx, 999, "x", later), store.ErrNotFound)
	require.ErrorIs(t, s.Users().UpdateTwoFA(ctx, 999, false, "", later), store.ErrNotFound)

	require.NoError(t, s.Users().DeleteUser(ctx, ivan.ID))
	require.ErrorIs(t, s.Users().DeleteUser(ctx, ivan.ID), store.ErrNotFound)

	_, err = s.Users().GetUserByID(ctx, ivan.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	first, err = s.Users().FirstUser(ctx)
	require.NoError(t, err)
	require.Equal(t, olga.ID, first.ID)
}

func testUserIDsNeverReused(t *testing.T, s store.Store) {
	ctx := context.Background()

	a, err := s.Users().CreateUser(ctx, newUser("a"))
	require.NoError(t, err)
	b, err := s.Users().CreateUser(ctx, newUser("b"))
	require.NoError(t, err)
	require.NoError(t, s.Users().DeleteUser(ctx, b.ID))

	// The freed login can be taken again, but never the freed id.
	again, err := s.Users().CreateUser(ctx, newUser("b"))
	require.NoError(t, err)
	require.Greater(t, again.ID, b.ID)
	require.Greater(t, b.ID, a.ID)
}

func testSessions(t *testing.T, s store.Store) {
	ctx := context.Background()
	ts := now()

	live := domain.Session{ID: "s1", UserID: 1, Kind: domain.SessionAccess, TokenHash: "h1", ExpiresAt: ts.Add(time.Hour), CreatedAt: ts}
	dead := domain.Session{ID: "s2", UserID: 1, Kind: domain.SessionRefresh, TokenHash: "h2", ExpiresAt: ts.Add(-time.Minute), CreatedAt: ts}
	other := domain.Session{ID: "s3", UserID: 2, Kind: domain.SessionAccess, TokenHash: "h3", ExpiresAt: ts.Add(time.Hour), CreatedAt: ts}

	for _, sess := range []domain.Session{live, dead, other} {
		require.NoError(t, s.Sessions().CreateSession(ctx, sess))
	}
	require.ErrorIs(t, s.Sessions().CreateSession(ctx, live), store.ErrAlreadyExists)

	got, err := s.Sessions().GetSessionByHash(ctx, "h1")
	require.NoError(t, err)
	assert.Equal(t, live.ID, got.ID)
	assert.Equal(t, domain.SessionAccess, got.Kind)
	assert.Equal(t, live.ExpiresAt.UnixMilli(), got.ExpiresAt.UnixMilli())

	n, err := s.Sessions().DeleteExpiredSessions(ctx, ts)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	_, err = s.Sessions().GetSessionByHash(ctx, "h2")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Sessions().DeleteUserSessions(ctx, 1))
	_, err = s.Sessions().GetSessionByHash(ctx, "h1")
	require.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Sessions().DeleteSession(ctx, "h3"))
	require.ErrorIs(t, s.Sessions().DeleteSession(ctx, "h3"), store.ErrNotFound)
}

func testResetTokens(t *testing.T, s store.Store) {
	ctx := context.Background()
	ts := now()

	require.NoError(t, s.ResetTokens().CreateResetToken(ctx, domain.ResetToken{ID: "r1", Login: "ivan", ExpiresAt: ts.Add(time.Hour), CreatedAt: ts}))
	require.NoError(t, s.ResetTokens().CreateResetToken(ctx, domain.ResetToken{ID: "r2", Login: "ivan", ExpiresAt: ts.Add(-time.Second), CreatedAt: ts}))
	require.NoError(t, s.ResetTokens().CreateResetToken(ctx, domain.ResetToken{ID: "r3", Login: "olga", ExpiresAt: ts.Add(time.Hour), CreatedAt: ts}))

	got, err := s.ResetTokens().GetResetToken(ctx, "r1")
	require.NoError(t, err)
	require.Equal(t, "ivan", got.Login)

	n, err := s.ResetTokens().DeleteExpiredResetTokens(ctx, ts)
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	require.NoError(t, s.ResetTokens().DeleteResetToken(ctx, "r1"))
	require.ErrorIs(t, s.ResetTokens().DeleteResetToken(ctx, "r1"), store.ErrNotFound, "consuming twice must fail")

	require.NoError(t, s.ResetTokens().DeleteResetTokensByLogin(ctx, "olga"))
	_, err = s.ResetTokens().GetResetToken(ctx, "r3")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func testTickets(t *testing.T, s store.Store) {
	ctx := context.Background()

	empty, err := s.Tickets().ListTickets(ctx)
	require.NoError(t, err)
	require.NotNil(t, empty)
	require.Empty(t, empty)

	for i := range 5 {
		tk, err := s.Tickets().CreateTicket(ctx, domain.Ticket{
			Phone:       fmt.Sprintf("+%d", i),
			Description: "broken",
			Status:      domain.TicketStatusReceived,
			CreatedAt:   now(),
		})
		require.NoError(t, err)
		require.Equal(t, int64(i+1), tk.ID)
	}

	all, err := s.Tickets().ListTickets(ctx)
	require.NoError(t, err)
	require.Len(t, all, 5)
	for i, tk := range all {
		assert.Equal(t, int64(i+1), tk.ID)
		assert.Equal(t, fmt.Sprintf("+%d", i), tk.Phone)
		assert.Equal(t, domain.TicketStatusReceived, tk.Status)
	}
}

func testScans(t *testing.T, s store.Store) {
	ctx := context.Background()
	ts := now()

	_, err := s.Scans().GetScan(ctx, "room")
	require.ErrorIs(t, err, store.ErrNotFound)

	sc, err := s.Scans().RecordFrames(ctx, "room", 3, ts)
	require.NoError(t, err)
	assert.Equal(t, 3, sc.FramesReceived)
	assert.False(t, sc.Finished)

	sc, err = s.Scans().RecordFrames(ctx, "room", 2, ts.Add(time.Second))
	require.NoError(t, err)
	assert.Equal(t, 5, sc.FramesReceived)
	assert.Equal(t, ts.UnixMilli(), sc.CreatedAt.UnixMilli())

	sc, err = s.Scans().FinishScan(ctx, "room", ts.Add(2*time.Second))
	require.NoError(t, err)
	assert.True(t, sc.Finished)
	assert.Equal(t, 5, sc.FramesReceived)

	sc, err = s.Scans().FinishScan(ctx, "never-uploaded", ts)
	require.NoError(t, err)
	assert.True(t, sc.Finished)
	assert.Zero(t, sc.FramesReceived)

	n, err := s.Scans().DeleteScansBefore(ctx, ts.Add(time.Second))
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	_, err = s.Scans().GetScan(ctx, "never-uploaded")
	require.ErrorIs(t, err, store.ErrNotFound)
	_, err = s.Scans().GetScan(ctx, "room")
	require.NoError(t, err)
}

func testWithTxRollback(t *testing.T, s store.Store) {
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.WithTx(ctx, func(tx store.Tx) error {
		if _, err := tx.Users().CreateUser(ctx, newUser("ghost")); err != nil {
			return err
		}
		if _, err := tx.Tickets().CreateTicket(ctx, domain.Ticket{Status: domain.TicketStatusReceived, CreatedAt: now()}); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = s.Users().GetUserByLogin(ctx, "ghost")
	require.ErrorIs(t, err, store.ErrNotFound)

	tickets, err := s.Tickets().ListTickets(ctx)
	require.NoError(t, err)
	require.Empty(t, tickets)
}

func testWithTxCommit(t *testing.T, s store.Store) {
	ctx := context.Background()

	err := s.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().CreateUser(ctx, newUser("kept"))
		if err != nil {
			return err
		}
		return tx.Users().UpdateTwoFA(ctx, u.ID, true, "S", now())
	})
	require.NoError(t, err)

	u, err := s.Users().GetUserByLogin(ctx, "kept")
	require.NoError(t, err)
	require.True(t, u.TwoFAEnabled)
}

func testConcurrentTickets(t *testing.T, s store.Store) {
	ctx := context.Background()
	const n = 20

	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Tickets().CreateTicket(ctx, domain.Ticket{Status: domain.TicketStatusReceived, CreatedAt: now()})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	all, err := s.Tickets().ListTickets(ctx)
	require.NoError(t, err)
	require.Len(t, all, n)
	for i, tk := range all {
		require.Equal(t, int64(i+1), tk.ID)
	}
}
