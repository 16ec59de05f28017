package todosdk

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
)

func (f TodoFilter) query() string {
	q := url.Values{}
	if f.Complete != nil {
		q.Set("complete", strconv.FormatBool(*f.Complete))
	}
	if f.Priority != 0 {
		q.Set("priority", strconv.Itoa(f.Priority))
	}
	if f.Search != "" {
		q.Set("search", f.Search)
	}
	if f.Limit != 0 {
		q.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset != 0 {
		q.Set("offset", strconv.Itoa(f.Offset))
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// ListTodos lists the caller's todos.
func (s *Session) ListTodos(ctx context.Context, filter TodoFilter) ([]TodoResponse, error) {
	return s.listTodos(ctx, "/v1/todos"+filter.query())
}

// AdminListTodos lists every user's todos. Requires the admin role.
func (s *Session) AdminListTodos(ctx context.Context) ([]TodoResponse, error) {
	return s.listTodos(ctx, "/v1/admin/todos")
}

func (s *Session) listTodos(ctx context.Context, path string) ([]TodoResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, path, nil, nil)
	if err != nil {
		return nil, err
	}

	var todos []TodoResponse
	if err := decodeJSON(resp, &todos, http.StatusOK); err != nil {
		return nil, err
	}
	return todos, nil
}

func (s *Session) GetTodo(ctx context.Context, id string) (*TodoResponse, error) {
	resp, err := s.doAuthRequest(ctx, http.MethodGet, "/v1/todos/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return nil, err
	}

	var todo TodoResponse
	if err := decodeJSON(resp, &todo, http.StatusOK); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (s *Session) CreateTodo(ctx context.Context, req TodoRequest) (*TodoResponse, error) {
	return s.sendTodo(ctx, http.MethodPost, "/v1/todos", req, http.StatusCreated)
}

// UpdateTodo replaces every field of the todo, including its tag set.
func (s *Session) UpdateTodo(ctx context.Context, id string, req TodoRequest) (*TodoResponse, error) {
	return s.sendTodo(ctx, http.MethodPut, "/v1/todos/"+url.PathEscape(id), req, http.StatusOK)
}

func (s *Session) sendTodo(ctx context.Context, method, path string, req TodoRequest, want int) (*TodoResponse, error) {
	body, headers, err := jsonBody(req)
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, method, path, body, headers)
	if err != nil {
		return nil, err
	}

	var todo TodoResponse
	if err := decodeJSON(resp, &todo, want); err != nil {
		return nil, err
	}
	return &todo, nil
}

func (s *Session) DeleteTodo(ctx context.Context, id string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/v1/todos/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// AdminDeleteTodo deletes any user's todo. Requires the admin role.
func (s *Session) AdminDeleteTodo(ctx context.Context, id string) error {
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/v1/admin/todos/"+url.PathEscape(id), nil, nil)
	if err != nil {
		return err
	}
	return checkStatusNoContent(resp)
}

// BulkCreateTodos creates all todos or none.
func (s *Session) BulkCreateTodos(ctx context.Context, reqs []TodoRequest) ([]TodoResponse, error) {
	body, headers, err := jsonBody(reqs)
	if err != nil {
		return nil, err
	}

	resp, err := s.doAuthRequest(ctx, http.MethodPost, "/v1/todos/bulk", body, headers)
	if err != nil {
		return nil, err
	}

	var todos []TodoResponse
	if err := decodeJSON(resp, &todos, http.StatusCreated); err != nil {
		return nil, err
	}
	return todos, nil
}

// BulkDeleteTodos deletes the caller's todos among ids. Unknown ids and
// other users' todos are skipped.
func (s *Session) BulkDeleteTodos(ctx context.Context, ids ...string) (*BulkDeleteResponse, error) {
	q := url.Values{"ids": ids}
	resp, err := s.doAuthRequest(ctx, http.MethodDelete, "/v1/todos/bulk?"+q.Encode(), nil, nil)
	if err != nil {
		return nil, err
	}

	var out BulkDeleteResponse
	if err := decodeJSON(resp, &out, http.StatusOK); err != nil {
		return nil, err
	}
	return &out, nil
}
