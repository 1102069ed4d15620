package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/smetchik/backend/internal/backend/domain"
	"github.com/smetchik/backend/internal/backend/store"
	"github.com/smetchik/backend/pkg/cryptox"
	"github.com/smetchik/backend/pkg/idx"
	"github.com/smetchik/backend/pkg/slogx"
)

const (
	accessTokenPrefix  = "tok-"
	refreshTokenPrefix = "ref-"

	DefaultAccessTokenTTL  = 24 * time.Hour
	DefaultRefreshTokenTTL = 30 * 24 * time.Hour
)

// TokenService issues and resolves opaque session tokens. Clients see
// tok-<userId>-<issuedAtMillis>-<random>; only its fingerprint is stored.
type TokenService struct {
	Store      store.Store
	AccessTTL  time.Duration
	RefreshTTL time.Duration

	// FallbackFirstUser resolves unauthenticated callers to the first
	// registered user. Development only.
	FallbackFirstUser bool

	Clock Clock
}

func (s *TokenService) accessTTL() time.Duration {
	if s.AccessTTL > 0 {
		return s.AccessTTL
	}
	return DefaultAccessTokenTTL
}

func (s *TokenService) refreshTTL() time.Duration {
	if s.RefreshTTL > 0 {
		return s.RefreshTTL
	}
	return DefaultRefreshTokenTTL
}

// Issue mints a fresh access/refresh pair for userID.
func (s *TokenService) Issue(ctx context.Context, userID int64) (domain.TokenPair, error) {
	return s.issue(ctx, s.Store, userID)
}

func (s *TokenService) issue(ctx context.Context, repos store.Repos, userID int64) (domain.TokenPair, error) {
	now := s.Clock.now()

	access, err := s.mint(ctx, repos, accessTokenPrefix, domain.SessionAccess, userID, now, s.accessTTL())
	if err != nil {
		return domain.TokenPair{}, err
	}
	refresh, err := s.mint(ctx, repos, refreshTokenPrefix, domain.SessionRefresh, userID, now, s.refreshTTL())
	if err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{UserID: userID, AccessToken: access, RefreshToken: refresh}, nil
}

func (s *TokenService) mint(
	ctx context.Context,
	repos store.Repos,
	prefix string,
	kind domain.SessionKind,
	userID int64,
	now time.Time,
	ttl time.Duration,
) (string, error) {
	random, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return "", err
	}
	token := prefix + strconv.FormatInt(userID, 10) + "-" + strconv.FormatInt(now.UnixMilli(), 10) + "-" + random

	err = repos.Sessions().CreateSession(ctx, domain.Session{
		ID:        idx.NewAt(now).String(),
		UserID:    userID,
		Kind:      kind,
		TokenHash: cryptox.FingerprintToken(token),
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
	})
	if err != nil {
		return "", fmt.Errorf("failed to store %s session: %w", kind, err)
	}
	return token, nil
}

// ResolveBearer maps an access token to its user. An empty, unknown or
// expired token is ErrUnauthorized unless FallbackFirstUser is set.
func (s *TokenService) ResolveBearer(ctx context.Context, token string) (int64, error) {
	if token != "" {
		userID, err := s.lookup(ctx, token)
		if err == nil {
			return userID, nil
		}
		if !errors.Is(err, ErrUnauthorized) {
			return 0, err
		}
	}

	if !s.FallbackFirstUser {
		return 0, ErrUnauthorized
	}

	first, err := s.Store.Users().FirstUser(ctx)
	if errors.Is(err, store.ErrNotFound) {
		return 0, ErrUnauthorized
	}
	if err != nil {
		return 0, err
	}
	slogx.FromContext(ctx).Warn("bearer resolved by first-user fallback", "user_id", first.ID)
	return first.ID, nil
}

func (s *TokenService) lookup(ctx context.Context, token string) (int64, error) {
	sess, err := s.Store.Sessions().GetSessionByHash(ctx, cryptox.FingerprintToken(token))
	if errors.Is(err, store.ErrNotFound) {
		return 0, ErrUnauthorized
	}
	if err != nil {
		return 0, err
	}
	if sess.Kind != domain.SessionAccess || sess.Expired(s.Clock.now()) {
		return 0, ErrUnauthorized
	}
	return sess.UserID, nil
}

// Refresh rotates a refresh token: the presented one is consumed and a new
// pair is issued.
func (s *TokenService) Refresh(ctx context.Context, refreshToken string) (domain.TokenPair, error) {
	if refreshToken == "" {
		return domain.TokenPair{}, ErrInvalidInput
	}

	var pair domain.TokenPair
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		hash := cryptox.FingerprintToken(refreshToken)

		sess, err := tx.Sessions().GetSessionByHash(ctx, hash)
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidRefresh
		}
		if err != nil {
			return err
		}
		if sess.Kind != domain.SessionRefresh || sess.Expired(s.Clock.now()) {
			return ErrInvalidRefresh
		}

		if _, err := tx.Users().GetUserByID(ctx, sess.UserID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidRefresh
			}
			return err
		}

		if err := tx.Sessions().DeleteSession(ctx, hash); err != nil {
			return err
		}

		pair, err = s.issue(ctx, tx, sess.UserID)
		return err
	})
	if err != nil {
		return domain.TokenPair{}, err
	}
	return pair, nil
}
