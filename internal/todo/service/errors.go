package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrInvalidRefresh     = errors.New("invalid_refresh_token")
	ErrIncorrectPassword  = errors.New("incorrect_password")
	ErrUserNotFound       = errors.New("user_not_found")
	ErrUserExists         = errors.New("user_already_exists")

	ErrTodoNotFound = errors.New("todo_not_found")
	ErrTitleTaken   = errors.New("todo_title_taken")
	ErrUnknownTag   = errors.New("unknown_tag")
	ErrTagExists    = errors.New("tag_already_exists")

	// ErrUpstreamAuth covers every non-success answer from the OAuth provider.
	ErrUpstreamAuth = errors.New("upstream_auth_failed")
	ErrOAuthState   = errors.New("invalid_oauth_state")
)
