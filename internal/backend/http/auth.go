package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/smetchik/backend/internal/backend/domain"
	"github.com/smetchik/backend/internal/backend/service"
	"github.com/smetchik/backend/pkg/backendsdk"
	"github.com/smetchik/backend/pkg/httpx"
	"github.com/smetchik/backend/pkg/slogx"
)

type AuthHandler struct {
	UserService  *service.UserService
	TokenService *service.TokenService
	MaxBodyBytes int64
}

func authResponse(p domain.TokenPair) backendsdk.AuthResponse {
	return backendsdk.AuthResponse{
		UserID:       strconv.FormatInt(p.UserID, 10),
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
	}
}

// HandleLogin signs a user in.
//
//	@Summary		Log in
//	@Description	Checks login and password and issues a fresh access/refresh token pair.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		backendsdk.CredentialsRequest	true	"Credentials"
//	@Success		200		{object}	backendsdk.AuthResponse
//	@Failure		400		{object}	backendsdk.ErrorResponse	"Blank login or password"
//	@Failure		401		{object}	backendsdk.ErrorResponse	"Invalid credentials"
//	@Failure		429		{object}	backendsdk.ErrorResponse	"Rate limited"
//	@Router			/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req backendsdk.CredentialsRequest
	if err := httpx.ReadJSON(w, r, h.MaxBodyBytes, &req); err != nil {
		httpx.WriteBodyError(w, err)
		return
	}

	pair, err := h.UserService.Login(ctx, req.Login, req.Password)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, authResponse(pair))
	case errors.Is(err, service.ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, "Login and password are required")
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
	default:
		slogx.FromContext(ctx).Error("login failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// HandleRegister creates an account and signs it in.
//
//	@Summary		Register
//	@Description	Creates a user with the next user id and returns the same shape as login.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		backendsdk.CredentialsRequest	true	"Credentials"
//	@Success		200		{object}	backendsdk.AuthResponse
//	@Failure		400		{object}	backendsdk.ErrorResponse	"Blank login or password"
//	@Failure		409		{object}	backendsdk.ErrorResponse	"Login already registered"
//	@Router			/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req backendsdk.CredentialsRequest
	if err := httpx.ReadJSON(w, r, h.MaxBodyBytes, &req); err != nil {
		httpx.WriteBodyError(w, err)
		return
	}

	pair, err := h.UserService.Register(ctx, req.Login, req.Password)
	switch {
	case err == nil:
		slogx.FromContext(ctx).Info("user registered", "user_id", pair.UserID)
		httpx.WriteJSON(w, http.StatusOK, authResponse(pair))
	case errors.Is(err, service.ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, "Login and password are required")
	case errors.Is(err, service.ErrLoginTaken):
		httpx.WriteError(w, http.StatusConflict, "User already exists")
	default:
		slogx.FromContext(ctx).Error("registration failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// HandleRefresh rotates a refresh token.
//
//	@Summary		Refresh tokens
//	@Description	Consumes the refresh token and issues a new pair. Each refresh token works once.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		backendsdk.RefreshRequest	true	"Refresh token"
//	@Success		200		{object}	backendsdk.AuthResponse
//	@Failure		400		{object}	backendsdk.ErrorResponse	"Missing refresh token"
//	@Failure		401		{object}	backendsdk.ErrorResponse	"Unknown or expired refresh token"
//	@Router			/auth/refresh [post].
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req backendsdk.RefreshRequest
	if err := httpx.ReadJSON(w, r, h.MaxBodyBytes, &req); err != nil {
		httpx.WriteBodyError(w, err)
		return
	}

	pair, err := h.TokenService.Refresh(ctx, req.RefreshToken)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, authResponse(pair))
	case errors.Is(err, service.ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, "Refresh token is required")
	case errors.Is(err, service.ErrInvalidRefresh):
		httpx.WriteError(w, http.StatusUnauthorized, "Invalid refresh token")
	default:
		slogx.FromContext(ctx).Error("refresh failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}
