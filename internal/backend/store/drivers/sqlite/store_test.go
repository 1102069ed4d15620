package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/smetchik/backend/internal/backend/domain"
	"github.com/smetchik/backend/internal/backend/store"
	"github.com/smetchik/backend/internal/backend/store/drivers/sqlite"
	"github.com/smetchik/backend/internal/backend/store/storetest"
	"github.com/stretchr/testify/require"
)

func openStore(t *testing.T) store.Store {
	t.Helper()

	s, err := sqlite.NewStore(sqlite.MemoryDSN)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func TestConformance(t *testing.T) {
	storetest.Run(t, openStore)
}

func TestApplyMigrationsIdempotent(t *testing.T) {
	s := openStore(t)
	require.NoError(t, s.ApplyMigrations())
	require.NoError(t, s.Ping(context.Background()))
}

func TestStoresAreIsolated(t *testing.T) {
	ctx := context.Background()
	a := openStore(t)
	b := openStore(t)

	_, err := a.Users().CreateUser(ctx, domain.User{Login: "ivan", PasswordHash: "h", CreatedAt: time.Now(), UpdatedAt: time.Now()})
	require.NoError(t, err)

	_, err = b.Users().GetUserByLogin(ctx, "ivan")
	require.ErrorIs(t, err, store.ErrNotFound)
}
