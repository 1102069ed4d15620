package backendsdk

import (
	"context"
	"net/http"
)

// Register creates an account and returns a session for it.
func (c *Client) Register(ctx context.Context, login, password string) (*Session, error) {
	var resp AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", "", CredentialsRequest{Login: login, Password: password}, &resp); err != nil {
		return nil, err
	}
	return newSession(c, resp), nil
}

// Login signs in with a login and password.
func (c *Client) Login(ctx context.Context, login, password string) (*Session, error) {
	var resp AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", "", CredentialsRequest{Login: login, Password: password}, &resp); err != nil {
		return nil, err
	}
	return newSession(c, resp), nil
}

// Refresh exchanges a refresh token for a new pair. The old refresh token
// stops working.
func (c *Client) Refresh(ctx context.Context, refreshToken string) (*AuthResponse, error) {
	var resp AuthResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/refresh", "", RefreshRequest{RefreshToken: refreshToken}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RequestReset asks for a password reset. ResetToken is empty when the
// account does not exist.
func (c *Client) RequestReset(ctx context.Context, login string) (*RequestResetResponse, error) {
	var resp RequestResetResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/request-reset", "", RequestResetRequest{Login: login}, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ResetPassword redeems a reset token.
func (c *Client) ResetPassword(ctx context.Context, token, newPassword string) error {
	return c.doJSON(ctx, http.MethodPost, "/auth/reset-password", "",
		ResetPasswordRequest{Token: token, NewPassword: newPassword}, nil)
}

// NewSessionFromTokens resumes a session from stored tokens.
func (c *Client) NewSessionFromTokens(userID, accessToken, refreshToken string) *Session {
	return newSession(c, AuthResponse{UserID: userID, AccessToken: accessToken, RefreshToken: refreshToken})
}
