package http

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/aussiebroadwan/todo/internal/todo/domain"
	"github.com/aussiebroadwan/todo/internal/todo/service"
	"github.com/aussiebroadwan/todo/pkg/httpx"
	"github.com/aussiebroadwan/todo/pkg/idx"
	"github.com/aussiebroadwan/todo/pkg/slogx"
	"github.com/aussiebroadwan/todo/pkg/todosdk"
)

// Listing limits for GET /v1/todos.
const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// TodosHandler serves the caller's own todos. Every lookup is scoped to the
// authenticated user, so someone else's todo answers 404.
type TodosHandler struct {
	TodoService *service.TodoService
}

// HandleList godoc
//
//	@Summary		List Todos
//	@Description	Lists the caller's todos, newest first.
//	@Tags			Todos
//	@Security		BearerAuth
//	@Produce		json
//	@Param			complete	query		bool	false	"Filter by completion"
//	@Param			priority	query		int		false	"Filter by priority (1-5)"
//	@Param			search		query		string	false	"Case-insensitive match on title or description"
//	@Param			limit		query		int		false	"Page size (1-100, default 10)"
//	@Param			offset		query		int		false	"Rows to skip"
//	@Success		200			{array}		todosdk.TodoResponse
//	@Failure		401			{object}	todosdk.ErrorResponse
//	@Failure		422			{object}	todosdk.ValidationErrorResponse
//	@Router			/v1/todos [get].
func (h *TodosHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		todosdk.ErrInvalidToken.WriteError(w)
		return
	}

	filter, details := parseTodoFilter(r.URL.Query())
	if details != nil {
		todosdk.WriteValidationError(w, details)
		return
	}
	filter.OwnerID = userID

	todos, err := h.TodoService.List(ctx, filter)
	if err != nil {
		slogx.FromContext(ctx).Error("list todos failed", slog.Any("error", err))
		todosdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTodoResponses(todos))
}

// HandleGet godoc
//
//	@Summary	Get Todo
//	@Tags		Todos
//	@Security	BearerAuth
//	@Produce	json
//	@Param		id	path		string	true	"Todo ID"
//	@Success	200	{object}	todosdk.TodoResponse
//	@Failure	404	{object}	todosdk.ErrorResponse
//	@Router		/v1/todos/{id} [get].
func (h *TodosHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		todosdk.ErrInvalidToken.WriteError(w)
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	todo, err := h.TodoService.Get(ctx, id, userID)
	if err != nil {
		writeTodoError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTodoResponse(todo))
}

// HandleCreate godoc
//
//	@Summary	Create Todo
//	@Tags		Todos
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		todosdk.TodoRequest	true	"Todo"
//	@Success	201		{object}	todosdk.TodoResponse
//	@Failure	400		{object}	todosdk.ErrorResponse	"unknown tag"
//	@Failure	409		{object}	todosdk.ErrorResponse	"title already used"
//	@Failure	422		{object}	todosdk.ValidationErrorResponse
//	@Router		/v1/todos [post].
func (h *TodosHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		todosdk.ErrInvalidToken.WriteError(w)
		return
	}

	var req todosdk.TodoRequest
	if err := httpx.DecodeJSON(w, r, &req, maxBodyBytes); err != nil {
		todosdk.ErrInvalidRequest.With("invalid JSON body").WriteError(w)
		return
	}
	if details := req.Validate(); details != nil {
		todosdk.WriteValidationError(w, details)
		return
	}

	todo, err := h.TodoService.Create(ctx, userID, req)
	if err != nil {
		writeTodoError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toTodoResponse(todo))
}

// HandleUpdate godoc
//
//	@Summary		Replace Todo
//	@Description	Replaces every field of the todo. The tag set is replaced too; omitting tags clears them.
//	@Tags			Todos
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string				true	"Todo ID"
//	@Param			request	body		todosdk.TodoRequest	true	"Todo"
//	@Success		200		{object}	todosdk.TodoResponse
//	@Failure		400		{object}	todosdk.ErrorResponse
//	@Failure		404		{object}	todosdk.ErrorResponse
//	@Failure		409		{object}	todosdk.ErrorResponse
//	@Failure		422		{object}	todosdk.ValidationErrorResponse
//	@Router			/v1/todos/{id} [put].
func (h *TodosHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		todosdk.ErrInvalidToken.WriteError(w)
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req todosdk.TodoRequest
	if err := httpx.DecodeJSON(w, r, &req, maxBodyBytes); err != nil {
		todosdk.ErrInvalidRequest.With("invalid JSON body").WriteError(w)
		return
	}
	if details := req.Validate(); details != nil {
		todosdk.WriteValidationError(w, details)
		return
	}

	todo, err := h.TodoService.Update(ctx, id, userID, req)
	if err != nil {
		writeTodoError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTodoResponse(todo))
}

// HandleDelete godoc
//
//	@Summary	Delete Todo
//	@Tags		Todos
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Todo ID"
//	@Success	204
//	@Failure	404	{object}	todosdk.ErrorResponse
//	@Router		/v1/todos/{id} [delete].
func (h *TodosHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		todosdk.ErrInvalidToken.WriteError(w)
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.TodoService.Delete(ctx, id, userID); err != nil {
		writeTodoError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// HandleBulkCreate godoc
//
//	@Summary		Bulk Create Todos
//	@Description	Creates every todo in the array or none of them.
//	@Tags			Todos
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		[]todosdk.TodoRequest	true	"Todos"
//	@Success		201		{array}		todosdk.TodoResponse
//	@Failure		400		{object}	todosdk.ErrorResponse
//	@Failure		409		{object}	todosdk.ErrorResponse
//	@Failure		422		{object}	todosdk.ValidationErrorResponse
//	@Router			/v1/todos/bulk [post].
func (h *TodosHandler) HandleBulkCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		todosdk.ErrInvalidToken.WriteError(w)
		return
	}

	var reqs []todosdk.TodoRequest
	if err := httpx.DecodeJSON(w, r, &reqs, maxBodyBytes); err != nil {
		todosdk.ErrInvalidRequest.With("invalid JSON body").WriteError(w)
		return
	}
	if len(reqs) == 0 {
		todosdk.ErrInvalidRequest.With("at least one todo is required").WriteError(w)
		return
	}

	// Field errors are keyed by array index, e.g. "1.title".
	details := make(map[string]string)
	for i, req := range reqs {
		for field, msg := range req.Validate() {
			details[fmt.Sprintf("%d.%s", i, field)] = msg
		}
	}
	if len(details) > 0 {
		todosdk.WriteValidationError(w, details)
		return
	}

	todos, err := h.TodoService.BulkCreate(ctx, userID, reqs)
	if err != nil {
		writeTodoError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toTodoResponses(todos))
}

// HandleBulkDelete godoc
//
//	@Summary		Bulk Delete Todos
//	@Description	Deletes the caller's todos among ids. Unknown ids and other users' todos are skipped.
//	@Tags			Todos
//	@Security		BearerAuth
//	@Produce		json
//	@Param			ids	query		[]string	true	"Todo IDs, repeated or comma separated"	collectionFormat(multi)
//	@Success		200	{object}	todosdk.BulkDeleteResponse
//	@Failure		400	{object}	todosdk.ErrorResponse
//	@Failure		404	{object}	todosdk.ErrorResponse	"nothing was deleted"
//	@Router			/v1/todos/bulk [delete].
func (h *TodosHandler) HandleBulkDelete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		todosdk.ErrInvalidToken.WriteError(w)
		return
	}

	ids := parseIDs(r.URL.Query()["ids"])
	if len(ids) == 0 {
		todosdk.ErrInvalidRequest.With("ids is required").WriteError(w)
		return
	}

	n, err := h.TodoService.BulkDelete(ctx, userID, ids)
	if err != nil {
		writeTodoError(w, r, err)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, todosdk.BulkDeleteResponse{
		Deleted: n,
		Message: fmt.Sprintf("Deleted %d todos", n),
	})
}

// writeTodoError maps todo and tag service errors onto API errors.
func writeTodoError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrTodoNotFound):
		todosdk.ErrNotFound.With("todo not found").WriteError(w)
	case errors.Is(err, service.ErrTitleTaken):
		todosdk.ErrConflict.With("a todo with this title already exists").WriteError(w)
	case errors.Is(err, service.ErrUnknownTag):
		todosdk.ErrInvalidRequest.With("unknown tag id").WriteError(w)
	default:
		slogx.FromContext(r.Context()).Error("todo request failed", slog.Any("error", err))
		todosdk.ErrServerError.WriteError(w)
	}
}

// pathID reads the {id} path value. Malformed ids cannot exist, so they
// answer 404 like any unknown todo.
func pathID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id := r.PathValue("id")
	if !idx.Valid(id) {
		todosdk.ErrNotFound.With("todo not found").WriteError(w)
		return "", false
	}
	return id, true
}

// parseIDs flattens repeated and comma separated values, dropping blanks.
func parseIDs(values []string) []string {
	var ids []string
	for _, v := range values {
		for part := range strings.SplitSeq(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				ids = append(ids, part)
			}
		}
	}
	return ids
}

func parseTodoFilter(q url.Values) (domain.TodoFilter, map[string]string) {
	f := domain.TodoFilter{Limit: defaultListLimit}
	errs := make(map[string]string)

	if v := q.Get("complete"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			errs["complete"] = "must be true or false"
		} else {
			f.Complete = &b
		}
	}

	if v := q.Get("priority"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil || p < domain.MinPriority || p > domain.MaxPriority {
			errs["priority"] = fmt.Sprintf("must be between %d and %d", domain.MinPriority, domain.MaxPriority)
		} else {
			f.Priority = &p
		}
	}

	f.Search = strings.TrimSpace(q.Get("search"))

	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > maxListLimit {
			errs["limit"] = fmt.Sprintf("must be between 1 and %d", maxListLimit)
		} else {
			f.Limit = n
		}
	}

	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			errs["offset"] = "must be zero or greater"
		} else {
			f.Offset = n
		}
	}

	if len(errs) > 0 {
		return f, errs
	}
	return f, nil
}
