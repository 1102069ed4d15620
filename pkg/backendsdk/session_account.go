package backendsdk

import (
	"context"
	"net/http"
)

// ChangePassword replaces the password. The server revokes every session of
// the user afterwards, this one included.
func (s *Session) ChangePassword(ctx context.Context, oldPassword, newPassword string) error {
	return s.doAuthJSON(ctx, http.MethodPost, "/account/change-password",
		ChangePasswordRequest{OldPassword: oldPassword, NewPassword: newPassword}, nil)
}

func (s *Session) SetTwoFA(ctx context.Context, enabled bool) error {
	return s.doAuthJSON(ctx, http.MethodPost, "/account/2fa", TwoFARequest{Enabled: enabled}, nil)
}

func (s *Session) TwoFAStatus(ctx context.Context) (*TwoFAStatusResponse, error) {
	var resp TwoFAStatusResponse
	if err := s.doAuthJSON(ctx, http.MethodGet, "/account/2fa", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (s *Session) VerifyTwoFA(ctx context.Context, code string) (bool, error) {
	var resp TwoFAVerifyResponse
	if err := s.doAuthJSON(ctx, http.MethodPost, "/account/2fa/verify", TwoFAVerifyRequest{Code: code}, &resp); err != nil {
		return false, err
	}
	return resp.Valid, nil
}

// DeleteAccount removes the account. The session is useless afterwards.
func (s *Session) DeleteAccount(ctx context.Context) error {
	return s.doAuthJSON(ctx, http.MethodPost, "/account/delete", nil, nil)
}
