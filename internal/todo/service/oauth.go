package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aussiebroadwan/todo/internal/todo/domain"
	"github.com/aussiebroadwan/todo/internal/todo/store"
	"github.com/aussiebroadwan/todo/pkg/cryptox"
	"github.com/aussiebroadwan/todo/pkg/idx"
	"github.com/aussiebroadwan/todo/pkg/slogx"
	"github.com/cenkalti/backoff/v4"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	// GoogleUserInfoURL returns the profile of the token's owner.
	GoogleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

	DefaultOAuthTimeout = 10 * time.Second

	usernameSuffixLen     = 6
	usernameSuffixCharset = "abcdefghijklmnopqrstuvwxyz0123456789"
	maxUsernameAttempts   = 5
	maxUsernameBaseLen    = 40
)

// GoogleUserInfo is the subset of the userinfo response we use.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
}

// GoogleOAuthService runs the authorization code flow against Google and
// turns the resulting identity into a local token pair.
type GoogleOAuthService struct {
	Store  store.Store
	Tokens *TokenService
	Config *oauth2.Config

	// UserInfoURL defaults to GoogleUserInfoURL.
	UserInfoURL string

	// HTTPClient is used for both provider calls. Its Timeout bounds each
	// attempt.
	HTTPClient *http.Client

	// RetryWait is the pause before the single retry of a failed call.
	RetryWait time.Duration
}

// NewGoogleOAuthService wires the Google endpoints. timeout bounds every
// call to the provider.
func NewGoogleOAuthService(
	st store.Store,
	tokens *TokenService,
	clientID, clientSecret, redirectURI string,
	timeout time.Duration,
) *GoogleOAuthService {
	if timeout <= 0 {
		timeout = DefaultOAuthTimeout
	}

	return &GoogleOAuthService{
		Store:  st,
		Tokens: tokens,
		Config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			Endpoint:     google.Endpoint,
			RedirectURL:  redirectURI,
			Scopes:       []string{"openid", "email", "profile"},
		},
		UserInfoURL: GoogleUserInfoURL,
		HTTPClient:  &http.Client{Timeout: timeout},
		RetryWait:   500 * time.Millisecond,
	}
}

// Enabled reports whether a client id is configured.
func (s *GoogleOAuthService) Enabled() bool {
	return s != nil && s.Config != nil && s.Config.ClientID != ""
}

// AuthCodeURL builds the consent screen URL. Offline access and a forced
// consent prompt make Google hand out a refresh-capable grant.
func (s *GoogleOAuthService) AuthCodeURL(state string) string {
	return s.Config.AuthCodeURL(state, oauth2.AccessTypeOffline, oauth2.ApprovalForce)
}

// Exchange trades the authorization code for a provider token and fetches
// the user's profile with it. Any non-2xx answer yields ErrUpstreamAuth.
func (s *GoogleOAuthService) Exchange(ctx context.Context, code string) (GoogleUserInfo, error) {
	if strings.TrimSpace(code) == "" {
		return GoogleUserInfo{}, ErrUpstreamAuth
	}

	ctx = context.WithValue(ctx, oauth2.HTTPClient, s.httpClient())

	token, err := retryOnce(ctx, s.RetryWait, func() (*oauth2.Token, error) {
		tok, err := s.Config.Exchange(ctx, code)
		if err != nil {
			var rerr *oauth2.RetrieveError
			if errors.As(err, &rerr) {
				return nil, backoff.Permanent(fmt.Errorf("%w: token endpoint: %w", ErrUpstreamAuth, err))
			}
			return nil, err
		}
		return tok, nil
	})
	if err != nil {
		return GoogleUserInfo{}, upstream(err)
	}

	info, err := retryOnce(ctx, s.RetryWait, func() (GoogleUserInfo, error) {
		return s.fetchUserInfo(ctx, token.AccessToken)
	})
	if err != nil {
		return GoogleUserInfo{}, upstream(err)
	}

	if info.Email == "" {
		return GoogleUserInfo{}, fmt.Errorf("%w: userinfo has no email", ErrUpstreamAuth)
	}
	return info, nil
}

func (s *GoogleOAuthService) fetchUserInfo(ctx context.Context, accessToken string) (GoogleUserInfo, error) {
	url := s.UserInfoURL
	if url == "" {
		url = GoogleUserInfoURL
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return GoogleUserInfo{}, backoff.Permanent(err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient().Do(req)
	if err != nil {
		return GoogleUserInfo{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return GoogleUserInfo{}, backoff.Permanent(
			fmt.Errorf("%w: userinfo returned %d", ErrUpstreamAuth, resp.StatusCode),
		)
	}

	var info GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return GoogleUserInfo{}, backoff.Permanent(fmt.Errorf("%w: decode userinfo: %w", ErrUpstreamAuth, err))
	}
	return info, nil
}

func (s *GoogleOAuthService) httpClient() *http.Client {
	if s.HTTPClient != nil {
		return s.HTTPClient
	}
	return &http.Client{Timeout: DefaultOAuthTimeout}
}

// Login completes the callback: it exchanges the code, finds or creates the
// local user by email, and issues the usual token pair.
func (s *GoogleOAuthService) Login(ctx context.Context, code string) (*domain.TokenPair, domain.User, error) {
	log := slogx.FromContext(ctx)

	info, err := s.Exchange(ctx, code)
	if err != nil {
		log.Warn("google exchange failed", slog.Any("error", err))
		return nil, domain.User{}, err
	}

	u, err := s.findOrCreate(ctx, info)
	if err != nil {
		return nil, domain.User{}, err
	}
	if !u.IsActive {
		log.Info("google login for inactive user", slog.String("user_id", u.ID))
		return nil, domain.User{}, ErrInvalidCredentials
	}

	pair, err := s.Tokens.IssuePair(ctx, u)
	if err != nil {
		return nil, domain.User{}, err
	}
	return pair, u, nil
}

func (s *GoogleOAuthService) findOrCreate(ctx context.Context, info GoogleUserInfo) (domain.User, error) {
	log := slogx.FromContext(ctx)

	u, err := s.Store.Users().GetUserByEmail(ctx, info.Email)
	if err == nil {
		return u, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, err
	}

	base := usernameBase(info.Email)
	for range maxUsernameAttempts {
		suffix, err := cryptox.RandomString(usernameSuffixLen, usernameSuffixCharset)
		if err != nil {
			return domain.User{}, err
		}

		now := time.Now()
		u = domain.User{
			ID:        idx.New().String(),
			Username:  base + "_" + suffix,
			Email:     info.Email,
			FirstName: info.GivenName,
			LastName:  info.FamilyName,
			Role:      domain.RoleUser,
			IsActive:  true,
			CreatedAt: now,
			UpdatedAt: now,
		}

		err = s.Store.Users().CreateUser(ctx, u)
		if err == nil {
			log.Info("user created from google login",
				slog.String("user_id", u.ID),
				slog.String("username", u.Username),
			)
			return u, nil
		}
		if !errors.Is(err, store.ErrAlreadyExists) {
			return domain.User{}, err
		}

		// Either the username collided or a concurrent login created the
		// account for this email first.
		if existing, err := s.Store.Users().GetUserByEmail(ctx, info.Email); err == nil {
			return existing, nil
		}
	}

	return domain.User{}, fmt.Errorf("could not allocate a username for %q", base)
}

// usernameBase is the email local part, trimmed to leave room for the suffix.
func usernameBase(email string) string {
	local, _, _ := strings.Cut(email, "@")
	local = strings.ToLower(strings.TrimSpace(local))
	if local == "" {
		local = "user"
	}
	if len(local) > maxUsernameBaseLen {
		local = local[:maxUsernameBaseLen]
	}
	return local
}

// retryOnce runs op and, if it fails with a non-permanent error, runs it one
// more time after wait.
func retryOnce[T any](ctx context.Context, wait time.Duration, op func() (T, error)) (T, error) {
	b := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(wait), 1), ctx)
	return backoff.RetryWithData(op, b)
}

// upstream makes sure every provider failure matches ErrUpstreamAuth.
func upstream(err error) error {
	if errors.Is(err, ErrUpstreamAuth) || errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrUpstreamAuth, err)
}
