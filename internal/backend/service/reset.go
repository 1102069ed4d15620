package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/smetchik/backend/internal/backend/domain"
	"github.com/smetchik/backend/internal/backend/store"
	"github.com/smetchik/backend/pkg/cryptox"
	"github.com/smetchik/backend/pkg/idx"
)

const DefaultResetTokenTTL = time.Hour

// ResetService issues single-use password reset tokens. The token is an
// HS256 JWT whose jti must still be present in the store when redeemed.
type ResetService struct {
	Store      store.Store
	SigningKey []byte
	TTL        time.Duration
	Clock      Clock
}

func (s *ResetService) ttl() time.Duration {
	if s.TTL > 0 {
		return s.TTL
	}
	return DefaultResetTokenTTL
}

// RequestReset issues a token for login. found is false, with no token and
// no error, when the account does not exist.
func (s *ResetService) RequestReset(ctx context.Context, login string) (token string, found bool, err error) {
	login = strings.TrimSpace(login)
	if login == "" {
		return "", false, ErrInvalidInput
	}

	if _, err := s.Store.Users().GetUserByLogin(ctx, login); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", false, nil
		}
		return "", false, err
	}

	now := s.Clock.now()
	jti := idx.NewAt(now).String()
	expiresAt := now.Add(s.ttl())

	token, err = jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        jti,
		Subject:   login,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}).SignedString(s.SigningKey)
	if err != nil {
		return "", false, fmt.Errorf("failed to sign reset token: %w", err)
	}

	err = s.Store.ResetTokens().CreateResetToken(ctx, domain.ResetToken{
		ID:        jti,
		Login:     login,
		ExpiresAt: expiresAt,
		CreatedAt: now,
	})
	if err != nil {
		return "", false, fmt.Errorf("failed to store reset token: %w", err)
	}

	return token, true, nil
}

// ResetPassword consumes token and sets the new password. Every session of
// the user is revoked.
func (s *ResetService) ResetPassword(ctx context.Context, token, newPassword string) error {
	token = strings.TrimSpace(token)
	if token == "" || strings.TrimSpace(newPassword) == "" {
		return ErrInvalidInput
	}

	claims, err := s.parse(token)
	if err != nil {
		return err
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		now := s.Clock.now()

		rt, err := tx.ResetTokens().GetResetToken(ctx, claims.ID)
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidResetToken
		}
		if err != nil {
			return err
		}
		if !now.Before(rt.ExpiresAt) || rt.Login != claims.Subject {
			return ErrInvalidResetToken
		}

		if err := tx.ResetTokens().DeleteResetToken(ctx, rt.ID); err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrInvalidResetToken
			}
			return err
		}

		u, err := tx.Users().GetUserByLogin(ctx, rt.Login)
		if errors.Is(err, store.ErrNotFound) {
			return ErrInvalidResetToken
		}
		if err != nil {
			return err
		}

		if err := tx.Users().UpdatePasswordHash(ctx, u.ID, hash, now); err != nil {
			return err
		}
		return tx.Sessions().DeleteUserSessions(ctx, u.ID)
	})
}

func (s *ResetService) parse(token string) (*jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	_, err := jwt.ParseWithClaims(token, claims,
		func(t *jwt.Token) (any, error) { return s.SigningKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.Clock.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || claims.ID == "" || claims.Subject == "" {
		return nil, ErrInvalidResetToken
	}
	return claims, nil
}
