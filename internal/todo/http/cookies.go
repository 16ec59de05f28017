package http

import (
	"net/http"
	"time"

	"github.com/aussiebroadwan/todo/internal/todo/domain"
	"github.com/aussiebroadwan/todo/pkg/httpx"
)

const (
	refreshTokenCookie = "refresh_token"
	oauthStateCookie   = "oauth_state"

	oauthStateMaxAge = 10 * time.Minute
)

func (c CookieConfig) cookie(name, value string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (c CookieConfig) setTokens(w http.ResponseWriter, pair *domain.TokenPair) {
	http.SetCookie(w, c.cookie(httpx.AccessTokenCookie, pair.AccessToken, pair.ExpiresIn))
	http.SetCookie(w, c.cookie(refreshTokenCookie, pair.RefreshToken, pair.RefreshExpiresIn))
}

// clear expires a cookie immediately (MaxAge < 0 sends Max-Age=0).
func (c CookieConfig) clear(w http.ResponseWriter, name string) {
	ck := c.cookie(name, "", 0)
	ck.MaxAge = -1
	http.SetCookie(w, ck)
}
