package http

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/aussiebroadwan/todo/internal/todo/graph"
	"github.com/aussiebroadwan/todo/internal/todo/service"
	"github.com/aussiebroadwan/todo/internal/todo/store/drivers/sqlite"
	"github.com/aussiebroadwan/todo/pkg/jwtx"
	"github.com/aussiebroadwan/todo/pkg/todosdk"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("http-test-secret-that-is-long-enough-123")

type testEnv struct {
	router *Router
	store  *sqlite.Store
}

func newTestEnv(t *testing.T, google *service.GoogleOAuthService) *testEnv {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256(testSecret, "todo-api")
	require.NoError(t, err)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := NewRouter(signer, verifier, "test", st, logger)

	r.TokenService = &service.TokenService{
		Signer:           signer,
		Verifier:         verifier,
		Store:            st,
		Issuer:           "todo-api",
		SingleUseRefresh: true,
	}
	r.Credentials = &service.CredentialVerifier{Store: st}
	r.UserService = &service.UserService{Store: st}
	r.TodoService = &service.TodoService{Store: st}
	r.TagService = &service.TagService{Store: st}
	r.Cookies = CookieConfig{ClientURL: "http://localhost:3000/"}

	if google == nil {
		google = service.NewGoogleOAuthService(st, r.TokenService, "", "", "", 0)
	} else {
		google.Store = st
		google.Tokens = r.TokenService
	}
	r.GoogleOAuth = google

	r.Schema, err = graph.NewSchema(&graph.Resolver{
		Todos: r.TodoService,
		Users: r.UserService,
		Tags:  r.TagService,
	})
	require.NoError(t, err)

	r.ApplyRoutes()
	return &testEnv{router: r, store: st}
}

type request struct {
	method  string
	path    string
	body    io.Reader
	ctype   string
	token   string
	cookies []*http.Cookie
}

func (e *testEnv) do(t *testing.T, req request) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest(req.method, req.path, req.body)
	if req.ctype != "" {
		r.Header.Set("Content-Type", req.ctype)
	}
	if req.token != "" {
		r.Header.Set("Authorization", "Bearer "+req.token)
	}
	for _, c := range req.cookies {
		r.AddCookie(c)
	}

	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, r)
	return rec
}

func (e *testEnv) json(t *testing.T, method, path, token string, v any) *httptest.ResponseRecorder {
	t.Helper()

	var body io.Reader
	if v != nil {
		b, err := json.Marshal(v)
		require.NoError(t, err)
		body = bytes.NewReader(b)
	}
	return e.do(t, request{method: method, path: path, body: body, ctype: "application/json", token: token})
}

func (e *testEnv) form(t *testing.T, path string, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	return e.do(t, request{
		method: http.MethodPost,
		path:   path,
		body:   strings.NewReader(values.Encode()),
		ctype:  "application/x-www-form-urlencoded",
	})
}

func (e *testEnv) register(t *testing.T, username, role string) todosdk.UserResponse {
	t.Helper()

	rec := e.json(t, http.MethodPost, "/v1/auth/register", "", todosdk.RegisterRequest{
		Username:  username,
		Email:     username + "@example.com",
		FirstName: "Test",
		LastName:  "User",
		Password:  username + "-password",
		Role:      role,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	return decode[todosdk.UserResponse](t, rec)
}

func (e *testEnv) login(t *testing.T, username string) todosdk.TokenResponse {
	t.Helper()

	rec := e.form(t, "/v1/auth/token", url.Values{
		"username": {username},
		"password": {username + "-password"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	return decode[todosdk.TokenResponse](t, rec)
}

// session registers and logs in a user, returning its access token.
func (e *testEnv) session(t *testing.T, username, role string) (todosdk.UserResponse, string) {
	t.Helper()

	u := e.register(t, username, role)
	return u, e.login(t, username).AccessToken
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func cookieNamed(rec *httptest.ResponseRecorder, name string) *http.Cookie {
	for _, c := range rec.Result().Cookies() {
		if c.Name == name {
			return c
		}
	}
	return nil
}
