package http

import (
	"crypto/subtle"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/todo/internal/todo/service"
	"github.com/aussiebroadwan/todo/pkg/cryptox"
	"github.com/aussiebroadwan/todo/pkg/slogx"
	"github.com/aussiebroadwan/todo/pkg/todosdk"
)

// GoogleHandler serves the browser side of the Google sign in flow. Unlike
// the password flow the tokens end up in cookies.
type GoogleHandler struct {
	OAuth   *service.GoogleOAuthService
	Cookies CookieConfig
}

// HandleLogin godoc
//
//	@Summary		Google Login
//	@Description	Redirects the browser to the Google consent screen.
//	@Tags			Auth
//	@Success		302
//	@Failure		404	{object}	todosdk.ErrorResponse	"Google sign in is not configured"
//	@Router			/v1/auth/google/login [get].
func (h *GoogleHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if !h.OAuth.Enabled() {
		todosdk.ErrNotFound.With("google sign in is not configured").WriteError(w)
		return
	}

	state, err := cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		slogx.FromContext(r.Context()).Error("failed to generate oauth state", slog.Any("error", err))
		todosdk.ErrServerError.WriteError(w)
		return
	}

	http.SetCookie(w, h.Cookies.cookie(oauthStateCookie, state, oauthStateMaxAge))
	http.Redirect(w, r, h.OAuth.AuthCodeURL(state), http.StatusFound)
}

// HandleCallback godoc
//
//	@Summary		Google Callback
//	@Description	Exchanges the authorization code, creates the local account on first sign in, sets the access_token and refresh_token cookies and redirects to the client.
//	@Tags			Auth
//	@Param			code	query	string	true	"Authorization code"
//	@Param			state	query	string	true	"State echoed back by Google"
//	@Success		302
//	@Failure		400	{object}	todosdk.ErrorResponse
//	@Failure		401	{object}	todosdk.ErrorResponse
//	@Router			/v1/auth/google/callback [get].
func (h *GoogleHandler) HandleCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := slogx.FromContext(ctx)

	if !h.OAuth.Enabled() {
		todosdk.ErrNotFound.With("google sign in is not configured").WriteError(w)
		return
	}

	q := r.URL.Query()
	if e := q.Get("error"); e != "" {
		log.Info("google sign in declined", slog.String("error", e))
		todosdk.ErrUpstreamAuth.With("google sign in was cancelled").WriteError(w)
		return
	}

	if err := checkState(r, q.Get("state")); err != nil {
		log.Warn("google callback state mismatch")
		todosdk.ErrInvalidRequest.With("invalid oauth state").WriteError(w)
		return
	}
	h.Cookies.clear(w, oauthStateCookie)

	code := strings.TrimSpace(q.Get("code"))
	if code == "" {
		todosdk.ErrInvalidRequest.With("code is required").WriteError(w)
		return
	}

	pair, user, err := h.OAuth.Login(ctx, code)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUpstreamAuth):
			todosdk.ErrUpstreamAuth.WriteError(w)
		case errors.Is(err, service.ErrInvalidCredentials):
			todosdk.ErrInvalidCredentials.WriteError(w)
		default:
			log.Error("google login failed", slog.Any("error", err))
			todosdk.ErrServerError.WriteError(w)
		}
		return
	}

	log.Info("google login", slog.String("user_id", user.ID))
	h.Cookies.setTokens(w, pair)
	http.Redirect(w, r, h.Cookies.ClientURL, http.StatusFound)
}

func checkState(r *http.Request, got string) error {
	c, err := r.Cookie(oauthStateCookie)
	if err != nil || c.Value == "" || got == "" {
		return service.ErrOAuthState
	}
	if subtle.ConstantTimeCompare([]byte(c.Value), []byte(got)) != 1 {
		return service.ErrOAuthState
	}
	return nil
}
