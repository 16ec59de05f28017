package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/aussiebroadwan/todo/internal/todo/service"
	"github.com/aussiebroadwan/todo/pkg/httpx"
	"github.com/aussiebroadwan/todo/pkg/todosdk"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

// newFakeGoogle serves a token endpoint accepting "good-code" and a userinfo
// endpoint for carol.
func newFakeGoogle(t *testing.T) *service.GoogleOAuthService {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("POST /token", func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil || r.PostForm.Get("code") != "good-code" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"access_token": "provider-access",
			"token_type":   "Bearer",
			"expires_in":   3600,
		})
	})
	mux.HandleFunc("GET /userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer provider-access" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(service.GoogleUserInfo{
			ID:            "g-123",
			Email:         "carol@example.com",
			VerifiedEmail: true,
			GivenName:     "Carol",
			FamilyName:    "Example",
		})
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	return &service.GoogleOAuthService{
		Config: &oauth2.Config{
			ClientID:     "client-id",
			ClientSecret: "client-secret",
			RedirectURL:  "http://localhost:8080/v1/auth/google/callback",
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint: oauth2.Endpoint{
				AuthURL:   srv.URL + "/auth",
				TokenURL:  srv.URL + "/token",
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		UserInfoURL: srv.URL + "/userinfo",
		HTTPClient:  srv.Client(),
		RetryWait:   time.Millisecond,
	}
}

func TestGoogleDisabled(t *testing.T) {
	env := newTestEnv(t, nil)

	rec := env.do(t, request{method: http.MethodGet, path: "/v1/auth/google/login"})
	require.Equal(t, http.StatusNotFound, rec.Code)

	rec = env.do(t, request{method: http.MethodGet, path: "/v1/auth/google/callback?code=x&state=y"})
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGoogleLoginFlow(t *testing.T) {
	env := newTestEnv(t, newFakeGoogle(t))

	rec := env.do(t, request{method: http.MethodGet, path: "/v1/auth/google/login"})
	require.Equal(t, http.StatusFound, rec.Code)

	state := cookieNamed(rec, oauthStateCookie)
	require.NotNil(t, state)
	require.True(t, state.HttpOnly)
	require.Equal(t, 600, state.MaxAge)

	loc, err := url.Parse(rec.Header().Get("Location"))
	require.NoError(t, err)
	require.Equal(t, state.Value, loc.Query().Get("state"))
	require.Equal(t, "offline", loc.Query().Get("access_type"))
	require.Equal(t, "consent", loc.Query().Get("prompt"))

	t.Run("state mismatch", func(t *testing.T) {
		rec := env.do(t, request{
			method:  http.MethodGet,
			path:    "/v1/auth/google/callback?code=good-code&state=forged",
			cookies: []*http.Cookie{{Name: oauthStateCookie, Value: state.Value}},
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("rejected code", func(t *testing.T) {
		rec := env.do(t, request{
			method:  http.MethodGet,
			path:    "/v1/auth/google/callback?code=bad-code&state=" + url.QueryEscape(state.Value),
			cookies: []*http.Cookie{{Name: oauthStateCookie, Value: state.Value}},
		})
		require.Equal(t, http.StatusBadRequest, rec.Code)
		require.Equal(t, todosdk.ErrorCodeUpstreamAuthFailed, decode[todosdk.ErrorResponse](t, rec).Error)
	})

	t.Run("success sets cookies and redirects", func(t *testing.T) {
		rec := env.do(t, request{
			method:  http.MethodGet,
			path:    "/v1/auth/google/callback?code=good-code&state=" + url.QueryEscape(state.Value),
			cookies: []*http.Cookie{{Name: oauthStateCookie, Value: state.Value}},
		})
		require.Equal(t, http.StatusFound, rec.Code, rec.Body.String())
		require.Equal(t, "http://localhost:3000/", rec.Header().Get("Location"))

		access := cookieNamed(rec, httpx.AccessTokenCookie)
		require.NotNil(t, access)
		require.Equal(t, 1800, access.MaxAge)
		require.Equal(t, http.SameSiteLaxMode, access.SameSite)

		refresh := cookieNamed(rec, refreshTokenCookie)
		require.NotNil(t, refresh)
		require.Equal(t, 604800, refresh.MaxAge)

		// The access cookie authenticates API calls.
		rec = env.do(t, request{method: http.MethodGet, path: "/v1/users/me", cookies: []*http.Cookie{access}})
		require.Equal(t, http.StatusOK, rec.Code)

		me := decode[todosdk.UserResponse](t, rec)
		require.Equal(t, "carol@example.com", me.Email)
		require.Equal(t, "Carol", me.FirstName)
		require.Equal(t, "user", me.Role)
	})
}
