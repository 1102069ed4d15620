package http

import (
	"errors"
	"net/http"

	"github.com/smetchik/backend/internal/backend/service"
	"github.com/smetchik/backend/pkg/backendsdk"
	"github.com/smetchik/backend/pkg/httpx"
	"github.com/smetchik/backend/pkg/slogx"
)

type AccountHandler struct {
	UserService  *service.UserService
	MFAService   *service.MFAService
	MaxBodyBytes int64
}

func writeUnauthorized(w http.ResponseWriter) {
	httpx.WriteError(w, http.StatusUnauthorized, "Unauthorized")
}

// HandleChangePassword godoc
//
//	@Summary		Change password
//	@Description	Replaces the password after checking the old one. Every session of the user, this one included, is revoked.
//	@Tags			Account
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		backendsdk.ChangePasswordRequest	true	"Old and new password"
//	@Success		200		{object}	backendsdk.EmptyResponse
//	@Failure		400		{object}	backendsdk.ErrorResponse	"Blank password"
//	@Failure		401		{object}	backendsdk.ErrorResponse	"Not signed in, or wrong old password"
//	@Router			/account/change-password [post].
func (h *AccountHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		writeUnauthorized(w)
		return
	}

	var req backendsdk.ChangePasswordRequest
	if err := httpx.ReadJSON(w, r, h.MaxBodyBytes, &req); err != nil {
		httpx.WriteBodyError(w, err)
		return
	}

	err := h.UserService.ChangePassword(ctx, userID, req.OldPassword, req.NewPassword)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, httpx.Empty{})
	case errors.Is(err, service.ErrInvalidInput):
		httpx.WriteError(w, http.StatusBadRequest, "Old and new password are required")
	case errors.Is(err, service.ErrInvalidCredentials):
		httpx.WriteError(w, http.StatusUnauthorized, "Invalid credentials")
	case errors.Is(err, service.ErrUnauthorized):
		writeUnauthorized(w)
	default:
		slogx.FromContext(ctx).Error("change password failed", "user_id", userID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// HandleSetTwoFA godoc
//
//	@Summary		Toggle two-factor authentication
//	@Description	Enabling generates a TOTP secret unless one is already enrolled; disabling clears it.
//	@Tags			Account
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		backendsdk.TwoFARequest	true	"Desired state"
//	@Success		200		{object}	backendsdk.EmptyResponse
//	@Failure		401		{object}	backendsdk.ErrorResponse	"Not signed in"
//	@Router			/account/2fa [post].
func (h *AccountHandler) HandleSetTwoFA(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		writeUnauthorized(w)
		return
	}

	var req backendsdk.TwoFARequest
	if err := httpx.ReadJSON(w, r, h.MaxBodyBytes, &req); err != nil {
		httpx.WriteBodyError(w, err)
		return
	}

	err := h.MFAService.SetTwoFA(ctx, userID, req.Enabled)
	switch {
	case err == nil:
		slogx.FromContext(ctx).Info("two-factor toggled", "user_id", userID, "enabled", req.Enabled)
		httpx.WriteJSON(w, http.StatusOK, httpx.Empty{})
	case errors.Is(err, service.ErrUnauthorized):
		writeUnauthorized(w)
	default:
		slogx.FromContext(ctx).Error("toggle two-factor failed", "user_id", userID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// HandleTwoFAStatus godoc
//
//	@Summary		Two-factor status
//	@Description	Reports whether 2FA is on and, when it is, the TOTP secret and otpauth URL for authenticator apps.
//	@Tags			Account
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	backendsdk.TwoFAStatusResponse
//	@Failure		401	{object}	backendsdk.ErrorResponse	"Not signed in"
//	@Router			/account/2fa [get].
func (h *AccountHandler) HandleTwoFAStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		writeUnauthorized(w)
		return
	}

	status, err := h.MFAService.Status(ctx, userID)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, backendsdk.TwoFAStatusResponse{
			Enabled:    status.Enabled,
			Secret:     status.Secret,
			OtpauthURL: status.URL,
		})
	case errors.Is(err, service.ErrUnauthorized):
		writeUnauthorized(w)
	default:
		slogx.FromContext(ctx).Error("two-factor status failed", "user_id", userID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// HandleVerifyTwoFA godoc
//
//	@Summary		Verify a TOTP code
//	@Description	Checks a six-digit code against the enrolled secret.
//	@Tags			Account
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		backendsdk.TwoFAVerifyRequest	true	"TOTP code"
//	@Success		200		{object}	backendsdk.TwoFAVerifyResponse
//	@Failure		400		{object}	backendsdk.ErrorResponse	"2FA is not enabled"
//	@Failure		401		{object}	backendsdk.ErrorResponse	"Not signed in"
//	@Router			/account/2fa/verify [post].
func (h *AccountHandler) HandleVerifyTwoFA(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		writeUnauthorized(w)
		return
	}

	var req backendsdk.TwoFAVerifyRequest
	if err := httpx.ReadJSON(w, r, h.MaxBodyBytes, &req); err != nil {
		httpx.WriteBodyError(w, err)
		return
	}

	valid, err := h.MFAService.Verify(ctx, userID, req.Code)
	switch {
	case err == nil:
		httpx.WriteJSON(w, http.StatusOK, backendsdk.TwoFAVerifyResponse{Valid: valid})
	case errors.Is(err, service.ErrTwoFactorDisabled):
		httpx.WriteError(w, http.StatusBadRequest, "Two-factor authentication is not enabled")
	case errors.Is(err, service.ErrUnauthorized):
		writeUnauthorized(w)
	default:
		slogx.FromContext(ctx).Error("verify two-factor failed", "user_id", userID, "err", err)
		httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// HandleDelete godoc
//
//	@Summary		Delete account
//	@Description	Removes the signed-in user with its sessions and reset tokens. Answers 200 even when nobody is signed in.
//	@Tags			Account
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	backendsdk.EmptyResponse
//	@Router			/account/delete [post].
func (h *AccountHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if userID, ok := httpx.UserIDFromContext(ctx); ok {
		if err := h.UserService.Delete(ctx, userID); err != nil {
			slogx.FromContext(ctx).Error("delete account failed", "user_id", userID, "err", err)
			httpx.WriteError(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		slogx.FromContext(ctx).Info("account deleted", "user_id", userID)
	}

	httpx.WriteJSON(w, http.StatusOK, httpx.Empty{})
}
