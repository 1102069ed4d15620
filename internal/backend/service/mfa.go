package service

import (
	"context"
	"encoding/base32"
	"errors"
	"fmt"

	"github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
	"github.com/smetchik/backend/internal/backend/store"
	"github.com/smetchik/backend/pkg/cryptox"
)

const DefaultTOTPIssuer = "Smetchik"

// TwoFAStatus describes a user's second factor. Secret and URL are empty
// while 2FA is off.
type TwoFAStatus struct {
	Enabled bool
	Secret  string
	URL     string // otpauth:// URL for QR codes
}

type MFAService struct {
	Store  store.Store
	Issuer string
	Clock  Clock
}

func (s *MFAService) issuer() string {
	if s.Issuer != "" {
		return s.Issuer
	}
	return DefaultTOTPIssuer
}

// key builds the TOTP key for a login. With a nil secret a new one is
// generated; otherwise the stored secret is reused.
func (s *MFAService) key(login string, secret []byte) (*otp.Key, error) {
	return totp.Generate(totp.GenerateOpts{
		Issuer:      s.issuer(),
		AccountName: login,
		Period:      30,
		Digits:      otp.DigitsSix,
		Algorithm:   otp.AlgorithmSHA1,
		Secret:      secret,
	})
}

// SetTwoFA turns the second factor on or off. Enabling keeps an existing
// secret; disabling clears it. Secrets are stored sealed with
// cryptox.Seal.
func (s *MFAService) SetTwoFA(ctx context.Context, userID int64, enabled bool) error {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return ErrUnauthorized
	}
	if err != nil {
		return err
	}

	secret := ""
	if enabled {
		secret = u.TwoFASecret
		if secret == "" {
			key, err := s.key(u.Login, nil)
			if err != nil {
				return fmt.Errorf("failed to generate TOTP key: %w", err)
			}
			if secret, err = cryptox.Seal(key.Secret()); err != nil {
				return fmt.Errorf("failed to seal TOTP secret: %w", err)
			}
		}
	}

	return s.Store.Users().UpdateTwoFA(ctx, userID, enabled, secret, s.Clock.now())
}

// Status reports whether 2FA is on and, if so, the provisioning details.
func (s *MFAService) Status(ctx context.Context, userID int64) (TwoFAStatus, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return TwoFAStatus{}, ErrUnauthorized
	}
	if err != nil {
		return TwoFAStatus{}, err
	}
	if !u.TwoFAEnabled || u.TwoFASecret == "" {
		return TwoFAStatus{}, nil
	}

	secret, err := cryptox.Open(u.TwoFASecret)
	if err != nil {
		return TwoFAStatus{}, fmt.Errorf("failed to open TOTP secret: %w", err)
	}
	raw, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(secret)
	if err != nil {
		return TwoFAStatus{}, fmt.Errorf("stored TOTP secret is malformed: %w", err)
	}
	key, err := s.key(u.Login, raw)
	if err != nil {
		return TwoFAStatus{}, fmt.Errorf("failed to rebuild TOTP key: %w", err)
	}

	return TwoFAStatus{Enabled: true, Secret: secret, URL: key.URL()}, nil
}

// Verify checks a TOTP code against the user's secret.
func (s *MFAService) Verify(ctx context.Context, userID int64, code string) (bool, error) {
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return false, ErrUnauthorized
	}
	if err != nil {
		return false, err
	}
	if !u.TwoFAEnabled || u.TwoFASecret == "" {
		return false, ErrTwoFactorDisabled
	}

	secret, err := cryptox.Open(u.TwoFASecret)
	if err != nil {
		return false, fmt.Errorf("failed to open TOTP secret: %w", err)
	}

	valid, err := totp.ValidateCustom(code, secret, s.Clock.now(), totp.ValidateOpts{
		Period:    30,
		Skew:      1,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	if err != nil {
		// Wrong length or non-numeric input is just a bad code.
		return false, nil
	}
	return valid, nil
}
