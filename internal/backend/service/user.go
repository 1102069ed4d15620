package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/smetchik/backend/internal/backend/domain"
	"github.com/smetchik/backend/internal/backend/store"
	"github.com/smetchik/backend/pkg/cryptox"
)

type UserService struct {
	Store  store.Store
	Tokens *TokenService
	Clock  Clock
}

// credentials trims the login and rejects a blank login or password. The
// password itself is kept as typed.
func credentials(login, password string) (string, error) {
	login = strings.TrimSpace(login)
	if login == "" || strings.TrimSpace(password) == "" {
		return "", ErrInvalidInput
	}
	return login, nil
}

// Register creates a user and signs it in.
func (s *UserService) Register(ctx context.Context, login, password string) (domain.TokenPair, error) {
	login, err := credentials(login, password)
	if err != nil {
		return domain.TokenPair{}, err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return domain.TokenPair{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := s.Clock.now()
	var pair domain.TokenPair
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().CreateUser(ctx, domain.User{
			Login:        login,
			PasswordHash: hash,
			CreatedAt:    now,
			UpdatedAt:    now,
		})
		if errors.Is(err, store.ErrAlreadyExists) {
			return ErrLoginTaken
		}
		if err != nil {
			return fmt.Errorf("failed to create user: %w", err)
		}

		pair, err = s.Tokens.issue(ctx, tx, u.ID)
		return err
	})
	if err != nil {
		return domain.TokenPair{}, err
	}
	return pair, nil
}

// Login checks the password and issues a new token pair. Nothing is
// written on failure.
func (s *UserService) Login(ctx context.Context, login, password string) (domain.TokenPair, error) {
	login, err := credentials(login, password)
	if err != nil {
		return domain.TokenPair{}, err
	}

	u, err := s.Store.Users().GetUserByLogin(ctx, login)
	if errors.Is(err, store.ErrNotFound) {
		return domain.TokenPair{}, ErrInvalidCredentials
	}
	if err != nil {
		return domain.TokenPair{}, err
	}

	if err := cryptox.VerifyPassword(password, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return domain.TokenPair{}, ErrInvalidCredentials
		}
		return domain.TokenPair{}, fmt.Errorf("failed to verify password: %w", err)
	}

	return s.Tokens.Issue(ctx, u.ID)
}

// ChangePassword replaces the password after checking the old one and
// signs the user out everywhere.
func (s *UserService) ChangePassword(ctx context.Context, userID int64, oldPassword, newPassword string) error {
	if strings.TrimSpace(oldPassword) == "" || strings.TrimSpace(newPassword) == "" {
		return ErrInvalidInput
	}

	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUnauthorized
	}
	if err != nil {
		return err
	}

	if err := cryptox.VerifyPassword(oldPassword, u.PasswordHash); err != nil {
		if errors.Is(err, cryptox.ErrPasswordMismatch) {
			return ErrInvalidCredentials
		}
		return fmt.Errorf("failed to verify password: %w", err)
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().UpdatePasswordHash(ctx, userID, hash, s.Clock.now()); err != nil {
			return err
		}
		return tx.Sessions().DeleteUserSessions(ctx, userID)
	})
}

// Delete removes the user with its sessions and reset tokens. Deleting a
// user that does not exist is not an error.
func (s *UserService) Delete(ctx context.Context, userID int64) error {
	return s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByID(ctx, userID)
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		if err != nil {
			return err
		}

		if err := tx.Sessions().DeleteUserSessions(ctx, u.ID); err != nil {
			return err
		}
		if err := tx.ResetTokens().DeleteResetTokensByLogin(ctx, u.Login); err != nil {
			return err
		}
		return tx.Users().DeleteUser(ctx, u.ID)
	})
}
