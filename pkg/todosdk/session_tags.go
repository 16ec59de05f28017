package todosdk

import (
	"context"
	"net/http"
)

func (s *Session) ListTags(ctx context.Context) ([]TagResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/tags", nil, nil)
	if err != nil {
		return nil, err
	}

	var tags []TagResponse
	if err := decodeJSON(resp, &tags, http.StatusOK); err != nil {
		return nil, err
	}
	return tags, nil
}

func (s *Session) CreateTag(ctx context.Context, name string) (*TagResponse, error) {
	body, headers, err := jsonBody(TagRequest{Name: name})
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/tags", body, headers)
	if err != nil {
		return nil, err
	}

	var tag TagResponse
	if err := decodeJSON(resp, &tag, http.StatusCreated); err != nil {
		return nil, err
	}
	return &tag, nil
}
