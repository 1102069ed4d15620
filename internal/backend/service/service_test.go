package service

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/pquerna/otp/totp"
	"github.com/smetchik/backend/internal/backend/domain"
	"github.com/smetchik/backend/internal/backend/store"
	"github.com/smetchik/backend/internal/backend/store/drivers/memory"
	"github.com/smetchik/backend/internal/backend/store/drivers/sqlite"
	"github.com/smetchik/backend/pkg/cryptox"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	cryptox.SetPepper("service-test-pepper")
	os.Exit(m.Run())
}

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

type fixture struct {
	store   store.Store
	clock   *fakeClock
	tokens  *TokenService
	users   *UserService
	mfa     *MFAService
	reset   *ResetService
	support *SupportService
	scans   *ScanService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	return newFixtureOn(t, memory.NewStore())
}

func newSQLiteFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(sqlite.MemoryDSN)
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })
	return newFixtureOn(t, st)
}

func newFixtureOn(t *testing.T, st store.Store) *fixture {
	t.Helper()

	clk := &fakeClock{t: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	tokens := &TokenService{Store: st, AccessTTL: time.Hour, RefreshTTL: 24 * time.Hour, Clock: clk.Now}

	return &fixture{
		store:   st,
		clock:   clk,
		tokens:  tokens,
		users:   &UserService{Store: st, Tokens: tokens, Clock: clk.Now},
		mfa:     &MFAService{Store: st, Issuer: "Test", Clock: clk.Now},
		reset:   &ResetService{Store: st, SigningKey: []byte("reset-key"), TTL: time.Hour, Clock: clk.Now},
		support: &SupportService{Store: st, Clock: clk.Now},
		scans:   &ScanService{Store: st, Clock: clk.Now},
	}
}

func TestRegisterAndLogin(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pair, err := f.users.Register(ctx, "  ivan ", "secret")
	require.NoError(t, err)
	require.Equal(t, int64(1), pair.UserID)
	require.True(t, strings.HasPrefix(pair.AccessToken, "tok-1-"), pair.AccessToken)
	require.True(t, strings.HasPrefix(pair.RefreshToken, "ref-1-"), pair.RefreshToken)

	u, err := f.store.Users().GetUserByLogin(ctx, "ivan")
	require.NoError(t, err, "login is stored trimmed")
	require.False(t, u.TwoFAEnabled)
	require.NotEqual(t, "secret", u.PasswordHash)

	again, err := f.users.Login(ctx, "ivan", "secret")
	require.NoError(t, err)
	require.NotEqual(t, pair.AccessToken, again.AccessToken)
	require.True(t, strings.HasPrefix(again.AccessToken, "tok-1-"))

	_, err = f.users.Login(ctx, "ivan", "wrong")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = f.users.Login(ctx, "nobody", "secret")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestFailedLoginWritesNothing(t *testing.T) {
	drivers := map[string]func(*testing.T) *fixture{
		"memory": newFixture,
		"sqlite": newSQLiteFixture,
	}

	for name, setup := range drivers {
		t.Run(name, func(t *testing.T) {
			f := setup(t)
			ctx := context.Background()

			pair, err := f.users.Register(ctx, "ivan", "secret")
			require.NoError(t, err)
			require.NoError(t, f.mfa.SetTwoFA(ctx, pair.UserID, true))
			before, err := f.store.Users().GetUserByID(ctx, pair.UserID)
			require.NoError(t, err)

			f.clock.Advance(time.Minute)
			for range 3 {
				_, err = f.users.Login(ctx, "ivan", "wrong")
				require.ErrorIs(t, err, ErrInvalidCredentials)
			}

			after, err := f.store.Users().GetUserByID(ctx, pair.UserID)
			require.NoError(t, err)
			assert.Equal(t, before.PasswordHash, after.PasswordHash)
			assert.Equal(t, before.TwoFASecret, after.TwoFASecret)
			assert.True(t, before.UpdatedAt.Equal(after.UpdatedAt), "updatedAt %v -> %v", before.UpdatedAt, after.UpdatedAt)

			id, err := f.tokens.ResolveBearer(ctx, pair.AccessToken)
			require.NoError(t, err, "existing session survives")
			assert.Equal(t, pair.UserID, id)

			// Register issued one access and one refresh session; nothing else.
			purged, err := f.store.Sessions().DeleteExpiredSessions(ctx, f.clock.Now().Add(1000*time.Hour))
			require.NoError(t, err)
			assert.Equal(t, int64(2), purged)
		})
	}
}

func TestRegisterValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cases := []struct{ login, password string }{
		{"", "secret"},
		{"   ", "secret"},
		{"ivan", ""},
		{"ivan", "  \t"},
	}
	for _, tc := range cases {
		_, err := f.users.Register(ctx, tc.login, tc.password)
		require.ErrorIs(t, err, ErrInvalidInput, "%q/%q", tc.login, tc.password)

		_, err = f.users.Login(ctx, tc.login, tc.password)
		require.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestRegisterDuplicateKeepsOriginal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.users.Register(ctx, "ivan", "first")
	require.NoError(t, err)

	_, err = f.users.Register(ctx, "ivan", "second")
	require.ErrorIs(t, err, ErrLoginTaken)

	_, err = f.users.Login(ctx, "ivan", "first")
	require.NoError(t, err)
	_, err = f.users.Login(ctx, "ivan", "second")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUserIDsIncrease(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var last int64
	for _, login := range []string{"a", "b", "c"} {
		pair, err := f.users.Register(ctx, login, "pw")
		require.NoError(t, err)
		require.Greater(t, pair.UserID, last)
		last = pair.UserID
	}

	require.NoError(t, f.users.Delete(ctx, last))
	pair, err := f.users.Register(ctx, "d", "pw")
	require.NoError(t, err)
	require.Greater(t, pair.UserID, last, "ids are not reused after delete")
}

func TestResolveBearer(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pair, err := f.users.Register(ctx, "ivan", "secret")
	require.NoError(t, err)

	id, err := f.tokens.ResolveBearer(ctx, pair.AccessToken)
	require.NoError(t, err)
	require.Equal(t, pair.UserID, id)

	_, err = f.tokens.ResolveBearer(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, ErrUnauthorized, "refresh tokens are not bearer credentials")

	_, err = f.tokens.ResolveBearer(ctx, "tok-1-0")
	require.ErrorIs(t, err, ErrUnauthorized, "a well-formed prefix is not enough")

	_, err = f.tokens.ResolveBearer(ctx, "")
	require.ErrorIs(t, err, ErrUnauthorized)

	f.clock.Advance(2 * time.Hour)
	_, err = f.tokens.ResolveBearer(ctx, pair.AccessToken)
	require.ErrorIs(t, err, ErrUnauthorized, "expired")
}

func TestResolveBearerFallbackFirstUser(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.tokens.FallbackFirstUser = true

	_, err := f.tokens.ResolveBearer(ctx, "")
	require.ErrorIs(t, err, ErrUnauthorized, "no users yet")

	first, err := f.users.Register(ctx, "first", "pw")
	require.NoError(t, err)
	_, err = f.users.Register(ctx, "second", "pw")
	require.NoError(t, err)

	id, err := f.tokens.ResolveBearer(ctx, "garbage")
	require.NoError(t, err)
	require.Equal(t, first.UserID, id)
}

func TestRefreshRotates(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pair, err := f.users.Register(ctx, "ivan", "secret")
	require.NoError(t, err)

	_, err = f.tokens.Refresh(ctx, "")
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.tokens.Refresh(ctx, pair.AccessToken)
	require.ErrorIs(t, err, ErrInvalidRefresh, "access tokens cannot refresh")

	next, err := f.tokens.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)
	require.Equal(t, pair.UserID, next.UserID)
	require.NotEqual(t, pair.RefreshToken, next.RefreshToken)

	_, err = f.tokens.Refresh(ctx, pair.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidRefresh, "refresh tokens are single-use")

	f.clock.Advance(48 * time.Hour)
	_, err = f.tokens.Refresh(ctx, next.RefreshToken)
	require.ErrorIs(t, err, ErrInvalidRefresh, "expired")
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pair, err := f.users.Register(ctx, "ivan", "old")
	require.NoError(t, err)

	require.ErrorIs(t, f.users.ChangePassword(ctx, pair.UserID, "", "new"), ErrInvalidInput)
	require.ErrorIs(t, f.users.ChangePassword(ctx, pair.UserID, "old", " "), ErrInvalidInput)
	require.ErrorIs(t, f.users.ChangePassword(ctx, pair.UserID, "nope", "new"), ErrInvalidCredentials)
	require.ErrorIs(t, f.users.ChangePassword(ctx, 99, "old", "new"), ErrUnauthorized)

	require.NoError(t, f.users.ChangePassword(ctx, pair.UserID, "old", "new"))

	_, err = f.users.Login(ctx, "ivan", "old")
	require.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.users.Login(ctx, "ivan", "new")
	require.NoError(t, err)

	_, err = f.tokens.ResolveBearer(ctx, pair.AccessToken)
	require.ErrorIs(t, err, ErrUnauthorized, "old sessions are revoked")
}

func TestDeleteIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pair, err := f.users.Register(ctx, "ivan", "secret")
	require.NoError(t, err)
	_, _, err = f.reset.RequestReset(ctx, "ivan")
	require.NoError(t, err)

	require.NoError(t, f.users.Delete(ctx, pair.UserID))
	require.NoError(t, f.users.Delete(ctx, pair.UserID))

	_, err = f.tokens.ResolveBearer(ctx, pair.AccessToken)
	require.ErrorIs(t, err, ErrUnauthorized)

	n, err := f.store.ResetTokens().DeleteExpiredResetTokens(ctx, f.clock.Now().Add(365*24*time.Hour))
	require.NoError(t, err)
	require.Zero(t, n, "reset tokens of the deleted user are gone")
}

func TestTwoFA(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pair, err := f.users.Register(ctx, "ivan", "secret")
	require.NoError(t, err)

	status, err := f.mfa.Status(ctx, pair.UserID)
	require.NoError(t, err)
	require.False(t, status.Enabled)
	require.Empty(t, status.Secret)

	_, err = f.mfa.Verify(ctx, pair.UserID, "123456")
	require.ErrorIs(t, err, ErrTwoFactorDisabled)

	require.NoError(t, f.mfa.SetTwoFA(ctx, pair.UserID, true))
	status, err = f.mfa.Status(ctx, pair.UserID)
	require.NoError(t, err)
	require.True(t, status.Enabled)
	require.NotEmpty(t, status.Secret)
	require.Contains(t, status.URL, "otpauth://totp/")
	require.Contains(t, status.URL, "secret="+status.Secret)

	stored, err := f.store.Users().GetUserByID(ctx, pair.UserID)
	require.NoError(t, err)
	require.NotEqual(t, status.Secret, stored.TwoFASecret)

	// Enabling again keeps the enrolled secret.
	require.NoError(t, f.mfa.SetTwoFA(ctx, pair.UserID, true))
	again, err := f.mfa.Status(ctx, pair.UserID)
	require.NoError(t, err)
	require.Equal(t, status.Secret, again.Secret)

	code, err := totp.GenerateCode(status.Secret, f.clock.Now())
	require.NoError(t, err)
	valid, err := f.mfa.Verify(ctx, pair.UserID, code)
	require.NoError(t, err)
	require.True(t, valid)

	valid, err = f.mfa.Verify(ctx, pair.UserID, "abc")
	require.NoError(t, err)
	require.False(t, valid)

	require.NoError(t, f.mfa.SetTwoFA(ctx, pair.UserID, false))
	u, err := f.store.Users().GetUserByID(ctx, pair.UserID)
	require.NoError(t, err)
	require.False(t, u.TwoFAEnabled)
	require.Empty(t, u.TwoFASecret)

	require.ErrorIs(t, f.mfa.SetTwoFA(ctx, 42, true), ErrUnauthorized)
}

func TestPasswordReset(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pair, err := f.users.Register(ctx, "ivan", "old")
	require.NoError(t, err)

	_, _, err = f.reset.RequestReset(ctx, " ")
	require.ErrorIs(t, err, ErrInvalidInput)

	token, found, err := f.reset.RequestReset(ctx, "ghost")
	require.NoError(t, err)
	require.False(t, found)
	require.Empty(t, token)

	token, found, err = f.reset.RequestReset(ctx, "ivan")
	require.NoError(t, err)
	require.True(t, found)
	require.NotEmpty(t, token)

	require.ErrorIs(t, f.reset.ResetPassword(ctx, "", "new"), ErrInvalidInput)
	require.ErrorIs(t, f.reset.ResetPassword(ctx, token, ""), ErrInvalidInput)
	require.ErrorIs(t, f.reset.ResetPassword(ctx, "not-a-token", "new"), ErrInvalidResetToken)

	require.NoError(t, f.reset.ResetPassword(ctx, token, "new"))
	require.ErrorIs(t, f.reset.ResetPassword(ctx, token, "newer"), ErrInvalidResetToken, "single use")

	_, err = f.users.Login(ctx, "ivan", "new")
	require.NoError(t, err)

	_, err = f.tokens.ResolveBearer(ctx, pair.AccessToken)
	require.ErrorIs(t, err, ErrUnauthorized, "reset revokes sessions")
}

func TestPasswordResetExpires(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.users.Register(ctx, "ivan", "old")
	require.NoError(t, err)

	token, _, err := f.reset.RequestReset(ctx, "ivan")
	require.NoError(t, err)

	f.clock.Advance(time.Hour + time.Second)
	require.ErrorIs(t, f.reset.ResetPassword(ctx, token, "new"), ErrInvalidResetToken)
}

func TestPasswordResetRejectsForeignSignature(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.users.Register(ctx, "ivan", "old")
	require.NoError(t, err)

	other := &ResetService{Store: f.store, SigningKey: []byte("someone-else"), Clock: f.clock.Now}
	token, _, err := other.RequestReset(ctx, "ivan")
	require.NoError(t, err)

	require.ErrorIs(t, f.reset.ResetPassword(ctx, token, "new"), ErrInvalidResetToken)
}

func TestSupportTickets(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tickets, err := f.support.List(ctx)
	require.NoError(t, err)
	require.Empty(t, tickets)

	for i := range 3 {
		tk, err := f.support.Submit(ctx, "+1", "a@b.c", "broken")
		require.NoError(t, err)
		require.Equal(t, int64(i+1), tk.ID)
		require.Equal(t, domain.TicketStatusReceived, tk.Status)
	}

	tickets, err = f.support.List(ctx)
	require.NoError(t, err)
	require.Len(t, tickets, 3)
}

func TestScanStub(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	dims, err := f.scans.Process(ctx, "", 4)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultScanID, dims.ScanID)
	assert.Equal(t, 2.7, dims.WallHeightM)
	assert.Equal(t, 18.4, dims.PerimeterM)
	assert.Equal(t, 21.16, dims.FloorAreaM2)
	assert.Equal(t, 92.5, dims.CoveragePercent)
	assert.Equal(t, 0.87, dims.QualityScore)

	_, err = f.scans.Process(ctx, "room-7", 2)
	require.NoError(t, err)
	_, err = f.scans.Process(ctx, "room-7", 3)
	require.NoError(t, err)

	dims, err = f.scans.Finish(ctx, "room-7")
	require.NoError(t, err)
	assert.Equal(t, "room-7", dims.ScanID)

	sc, err := f.store.Scans().GetScan(ctx, "room-7")
	require.NoError(t, err)
	assert.Equal(t, 5, sc.FramesReceived)
	assert.True(t, sc.Finished)
}

type fixedEstimator struct{ height float64 }

func (e fixedEstimator) Estimate(_ context.Context, sc domain.Scan) (domain.Dimensions, error) {
	return domain.Dimensions{ScanID: sc.ID, WallHeightM: e.height}, nil
}

func TestScanCustomEstimator(t *testing.T) {
	f := newFixture(t)
	f.scans.Estimator = fixedEstimator{height: 3.1}

	dims, err := f.scans.Finish(context.Background(), "x")
	require.NoError(t, err)
	require.Equal(t, 3.1, dims.WallHeightM)
}

func TestHousekeepingCleanup(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	pair, err := f.users.Register(ctx, "ivan", "secret")
	require.NoError(t, err)
	_, _, err = f.reset.RequestReset(ctx, "ivan")
	require.NoError(t, err)
	_, err = f.scans.Process(ctx, "old-scan", 1)
	require.NoError(t, err)

	hk := NewHousekeepingService(f.store, slog.New(slog.NewTextHandler(io.Discard, nil)), time.Minute, 12*time.Hour)
	hk.Clock = f.clock.Now

	f.clock.Advance(13 * time.Hour)
	hk.cleanup(ctx)

	_, err = f.store.Sessions().GetSessionByHash(ctx, cryptox.FingerprintToken(pair.AccessToken))
	require.ErrorIs(t, err, store.ErrNotFound, "access session expired after an hour")
	_, err = f.store.Sessions().GetSessionByHash(ctx, cryptox.FingerprintToken(pair.RefreshToken))
	require.NoError(t, err, "refresh session still valid for a day")

	_, err = f.store.Scans().GetScan(ctx, "old-scan")
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestHousekeepingStartStop(t *testing.T) {
	f := newFixture(t)
	hk := NewHousekeepingService(f.store, slog.New(slog.NewTextHandler(io.Discard, nil)), time.Hour, 0)
	require.Equal(t, 24*time.Hour, hk.Retention)

	hk.Start()
	hk.Stop()
}
