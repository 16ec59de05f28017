package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/todo/internal/todo/service"
	"github.com/aussiebroadwan/todo/pkg/httpx"
	"github.com/aussiebroadwan/todo/pkg/slogx"
	"github.com/aussiebroadwan/todo/pkg/todosdk"
)

// AuthHandler serves registration and the password token endpoints.
type AuthHandler struct {
	Credentials  *service.CredentialVerifier
	TokenService *service.TokenService
	UserService  *service.UserService
	Cookies      CookieConfig
}

// HandleRegister godoc
//
//	@Summary		Register
//	@Description	Creates a password account. The role is stored as given.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		todosdk.RegisterRequest				true	"New account"
//	@Success		201		{object}	todosdk.UserResponse
//	@Failure		400		{object}	todosdk.ErrorResponse
//	@Failure		409		{object}	todosdk.ErrorResponse				"username or email taken"
//	@Failure		422		{object}	todosdk.ValidationErrorResponse
//	@Router			/v1/auth/register [post].
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	var req todosdk.RegisterRequest
	if err := httpx.DecodeJSON(w, r, &req, maxBodyBytes); err != nil {
		todosdk.ErrInvalidRequest.With("invalid JSON body").WriteError(w)
		return
	}
	if details := req.Validate(); details != nil {
		todosdk.WriteValidationError(w, details)
		return
	}

	user, err := h.UserService.Register(ctx, req)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			todosdk.ErrConflict.With("username or email already registered").WriteError(w)
			return
		}
		log.Error("register failed", slog.Any("error", err))
		todosdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toUserResponse(user))
}

// HandleToken godoc
//
//	@Summary		Password Login
//	@Description	Exchanges a username and password for an access and refresh token pair.
//	@Tags			Auth
//	@Accept			application/x-www-form-urlencoded
//	@Produce		json
//	@Param			username	formData	string					true	"Username"
//	@Param			password	formData	string					true	"Password"
//	@Success		200			{object}	todosdk.TokenResponse
//	@Failure		400			{object}	todosdk.ErrorResponse
//	@Failure		401			{object}	todosdk.ErrorResponse	"Could not validate credentials."
//	@Header			200			{string}	Cache-Control			"no-store"
//	@Router			/v1/auth/token [post].
func (h *AuthHandler) HandleToken(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if ct := r.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/x-www-form-urlencoded") {
		todosdk.ErrInvalidRequest.With("content type must be application/x-www-form-urlencoded").WriteError(w)
		return
	}
	if err := r.ParseForm(); err != nil {
		todosdk.ErrInvalidRequest.With("invalid form body").WriteError(w)
		return
	}

	username := strings.TrimSpace(r.PostForm.Get("username"))
	password := r.PostForm.Get("password")
	if username == "" || password == "" {
		todosdk.ErrInvalidRequest.With("username and password are required").WriteError(w)
		return
	}

	user, err := h.Credentials.Verify(ctx, username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			todosdk.ErrInvalidCredentials.WriteError(w)
			return
		}
		log.Error("password login failed", slog.Any("error", err))
		todosdk.ErrServerError.WriteError(w)
		return
	}

	pair, err := h.TokenService.IssuePair(ctx, user)
	if err != nil {
		todosdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTokenResponse(pair))
}

// HandleRefresh godoc
//
//	@Summary		Refresh Tokens
//	@Description	Rotates a refresh token into a new pair. The token may be sent as a JSON body, a form field or the refresh_token cookie.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		todosdk.RefreshRequest	false	"Refresh token"
//	@Success		200		{object}	todosdk.TokenResponse
//	@Failure		400		{object}	todosdk.ErrorResponse
//	@Failure		401		{object}	todosdk.ErrorResponse
//	@Router			/v1/auth/refresh [post].
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	token, err := refreshTokenFrom(w, r)
	if err != nil {
		todosdk.ErrInvalidRequest.With(err.Error()).WriteError(w)
		return
	}
	if token == "" {
		todosdk.ErrInvalidRequest.With("refresh_token is required").WriteError(w)
		return
	}

	pair, err := h.TokenService.Refresh(ctx, token)
	if err != nil {
		if errors.Is(err, service.ErrInvalidRefresh) {
			todosdk.ErrInvalidRefresh.WriteError(w)
			return
		}
		log.Error("refresh failed", slog.Any("error", err))
		todosdk.ErrServerError.WriteError(w)
		return
	}

	// Browser sessions keep their tokens in cookies.
	if _, err := r.Cookie(refreshTokenCookie); err == nil {
		h.Cookies.setTokens(w, pair)
	}

	httpx.WriteJSON(w, http.StatusOK, toTokenResponse(pair))
}

// HandleLogout godoc
//
//	@Summary		Logout
//	@Description	Revokes the refresh token, if one is sent, and clears the session cookies. Always 204.
//	@Tags			Auth
//	@Accept			json
//	@Param			request	body	todosdk.RefreshRequest	false	"Refresh token"
//	@Success		204
//	@Failure		400	{object}	todosdk.ErrorResponse
//	@Router			/v1/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	token, err := refreshTokenFrom(w, r)
	if err != nil {
		todosdk.ErrInvalidRequest.With(err.Error()).WriteError(w)
		return
	}

	if token != "" {
		if err := h.TokenService.Revoke(ctx, token); err != nil {
			// An unusable token has nothing left to revoke.
			log.Info("logout with unusable refresh token", slog.Any("error", err))
		}
	}

	h.Cookies.clear(w, httpx.AccessTokenCookie)
	h.Cookies.clear(w, refreshTokenCookie)
	w.WriteHeader(http.StatusNoContent)
}

var errInvalidBody = errors.New("invalid request body")

// refreshTokenFrom reads the refresh token from a JSON body, a form body or
// the refresh_token cookie, in that order.
func refreshTokenFrom(w http.ResponseWriter, r *http.Request) (string, error) {
	ct := r.Header.Get("Content-Type")

	switch {
	case strings.HasPrefix(ct, "application/json"):
		var req todosdk.RefreshRequest
		if err := httpx.DecodeJSON(w, r, &req, maxBodyBytes); err != nil && !errors.Is(err, io.EOF) {
			return "", errInvalidBody
		}
		if req.RefreshToken != "" {
			return req.RefreshToken, nil
		}
	case strings.HasPrefix(ct, "application/x-www-form-urlencoded"):
		if err := r.ParseForm(); err != nil {
			return "", errInvalidBody
		}
		if v := r.PostForm.Get("refresh_token"); v != "" {
			return v, nil
		}
	}

	if c, err := r.Cookie(refreshTokenCookie); err == nil {
		return c.Value, nil
	}
	return "", nil
}
