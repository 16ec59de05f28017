package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/todo/internal/todo/service"
	"github.com/aussiebroadwan/todo/pkg/httpx"
	"github.com/aussiebroadwan/todo/pkg/slogx"
	"github.com/aussiebroadwan/todo/pkg/todosdk"
)

type UsersHandler struct {
	UserService *service.UserService
}

// HandleMe godoc
//
//	@Summary		Current User
//	@Description	Returns the authenticated user.
//	@Tags			Users
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	todosdk.UserResponse
//	@Failure		401	{object}	todosdk.ErrorResponse
//	@Failure		404	{object}	todosdk.ErrorResponse
//	@Router			/v1/users/me [get].
func (h *UsersHandler) HandleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		todosdk.ErrInvalidToken.WriteError(w)
		return
	}

	user, err := h.UserService.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			todosdk.ErrNotFound.With("user not found").WriteError(w)
			return
		}
		slogx.FromContext(ctx).Error("failed to load user", slog.Any("error", err))
		todosdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toUserResponse(user))
}

// HandleChangePassword godoc
//
//	@Summary		Change Password
//	@Description	Replaces the caller's password after checking the current one.
//	@Tags			Users
//	@Security		BearerAuth
//	@Accept			json
//	@Param			request	body	todosdk.ChangePasswordRequest	true	"Current and new password"
//	@Success		204
//	@Failure		401	{object}	todosdk.ErrorResponse	"Incorrect password"
//	@Failure		404	{object}	todosdk.ErrorResponse
//	@Failure		422	{object}	todosdk.ValidationErrorResponse
//	@Router			/v1/users/me/password [patch].
func (h *UsersHandler) HandleChangePassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		todosdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req todosdk.ChangePasswordRequest
	if err := httpx.DecodeJSON(w, r, &req, maxBodyBytes); err != nil {
		todosdk.ErrInvalidRequest.With("invalid JSON body").WriteError(w)
		return
	}
	if details := req.Validate(); details != nil {
		todosdk.WriteValidationError(w, details)
		return
	}

	if err := h.UserService.ChangePassword(ctx, userID, req.Password, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, service.ErrIncorrectPassword):
			todosdk.ErrIncorrectPassword.WriteError(w)
		case errors.Is(err, service.ErrUserNotFound):
			todosdk.ErrNotFound.With("user not found").WriteError(w)
		default:
			log.Error("change password failed", slog.Any("error", err))
			todosdk.ErrServerError.WriteError(w)
		}
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
