package backendsdk

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
)

// Session holds a token pair. It is safe for concurrent use.
type Session struct {
	client *Client
	userID string

	mu           sync.Mutex
	accessToken  string
	refreshToken string
}

func newSession(c *Client, resp AuthResponse) *Session {
	return &Session{
		client:       c,
		userID:       resp.UserID,
		accessToken:  resp.AccessToken,
		refreshToken: resp.RefreshToken,
	}
}

func (s *Session) UserID() string { return s.userID }

// Tokens returns the current access and refresh tokens.
func (s *Session) Tokens() (access, refresh string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.accessToken, s.refreshToken
}

// Refresh rotates the token pair.
func (s *Session) Refresh(ctx context.Context) error {
	s.mu.Lock()
	refresh := s.refreshToken
	s.mu.Unlock()

	if refresh == "" {
		return &APIError{StatusCode: http.StatusUnauthorized, Message: "no refresh token"}
	}

	resp, err := s.client.Refresh(ctx, refresh)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.accessToken = resp.AccessToken
	s.refreshToken = resp.RefreshToken
	s.mu.Unlock()
	return nil
}

// doAuthJSON sends an authenticated JSON request, refreshing once on 401.
func (s *Session) doAuthJSON(ctx context.Context, method, path string, in, out any) error {
	var body []byte
	if in != nil {
		var err error
		if body, err = json.Marshal(in); err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
	} else if method == http.MethodPost {
		body = []byte("{}")
	}

	send := func() error {
		access, _ := s.Tokens()
		resp, err := s.client.doRequest(ctx, method, path, body, "application/json", access)
		if err != nil {
			return err
		}
		return decodeJSON(resp, out, http.StatusOK)
	}

	err := send()
	if !IsStatus(err, http.StatusUnauthorized) {
		return err
	}
	if refreshErr := s.Refresh(ctx); refreshErr != nil {
		return err
	}
	return send()
}
