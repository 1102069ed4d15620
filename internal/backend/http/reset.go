package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/smetchik/backend/internal/backend/service"
	"github.com/smetchik/backend/pkg/backendsdk"
	"github.com/smetchik/backend/pkg/httpx"
	"github.com/smetchik/backend/pkg/slogx"
)

const (
	resetUnknownMessage = "If the account exists, reset instructions have been sent"
	resetIssuedMessage  = "Reset token generated"
)

type ResetHandler struct {
	ResetService *service.ResetService
	MaxBodyBytes int64
}

// HandleRequestReset issues a password reset token.
//
//	@Summary		Request a password reset
//	@Description	Issues a one-hour, single-use reset token. The answer for an unknown account is a generic message so accounts cannot be enumerated.
//	@Description	The token is returned in the body; a production deployment would send it out of band.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		backendsdk.RequestResetRequest	true	"Login or email"
//	@Success		200		{object}	backendsdk.RequestResetResponse
//	@Failure		400		{object}	backendsdk.ErrorResponse	"Neither login nor email given"
//	@Router			/auth/request-reset [post].
func (h *ResetHandler) HandleRequestReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req backendsdk.RequestResetRequest
	if err := httpx.ReadJSON(w, r, h.MaxBodyBytes, &req); err != nil {
		httpx.WriteBodyError(w, err)
		return
	}

	login := req.Login
	if strings.TrimSpace(login) == "" {
		login = req.Email
	}

	token, found, err := h.ResetService.RequestReset(ctx, login)
	switch {
	case err == nil && !found:
		httpx.WriteJSON(w, http.StatusOK, backendsdk.RequestResetResponse{Message: resetUnknownMessage})
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, backendsdk.RequestResetResponse{Message: resetIssuedMessage, ResetToken: token})
	case errors.Is(err, service.ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, "Login or email is required")
	default:
		slogx.FromContext(ctx).Error("reset request failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// HandleResetPassword redeems a reset token.
//
//	@Summary		Reset password
//	@Description	Consumes the reset token and sets the new password. All sessions of the user are revoked.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		backendsdk.ResetPasswordRequest	true	"Token and new password"
//	@Success		200		{object}	backendsdk.EmptyResponse
//	@Failure		400		{object}	backendsdk.ErrorResponse	"Blank fields, or unknown, expired or used token"
//	@Router			/auth/reset-password [post].
func (h *ResetHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req backendsdk.ResetPasswordRequest
	if err := httpx.ReadJSON(w, r, h.MaxBodyBytes, &req); err != nil {
		httpx.WriteBodyError(w, err)
		return
	}

	err := h.ResetService.ResetPassword(ctx, req.Token, req.NewPassword)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, httpx.Empty{})
	case errors.Is(err, service.ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, "Token and new password are required")
	case errors.Is(err, service.ErrInvalidResetToken):
		httpx.WriteError(w, http.StatusBadRequest, "Invalid or expired token")
	default:
		slogx.FromContext(ctx).Error("password reset failed", "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}
