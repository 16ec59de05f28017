package todosdk

import (
	"context"
	"net/http"
)

// Me returns the authenticated user.
func (s *Session) Me(ctx context.Context) (*UserResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/users/me", nil, nil)
	if err != nil {
		return nil, err
	}

	var user UserResponse
	if err := decodeJSON(resp, &user, http.StatusOK); err != nil {
		return nil, err
	}
	return &user, nil
}

// ChangePassword replaces the caller's password after checking the current
// one.
func (s *Session) ChangePassword(ctx context.Context, current, next string) error {
	body, headers, err := jsonBody(ChangePasswordRequest{Password: current, NewPassword: next})
	if err != nil {
		return err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPatch, "/v1/users/me/password", body, headers)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}
