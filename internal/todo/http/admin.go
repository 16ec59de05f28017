package http

import (
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/todo/internal/todo/domain"
	"github.com/aussiebroadwan/todo/internal/todo/service"
	"github.com/aussiebroadwan/todo/pkg/httpx"
	"github.com/aussiebroadwan/todo/pkg/slogx"
	"github.com/aussiebroadwan/todo/pkg/todosdk"
)

// AdminHandler exposes every user's todos. The router gates it behind the
// admin role.
type AdminHandler struct {
	TodoService *service.TodoService
}

// HandleListTodos godoc
//
//	@Summary	List All Todos
//	@Tags		Admin
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}		todosdk.TodoResponse
//	@Failure	401	{object}	todosdk.ErrorResponse
//	@Failure	403	{object}	todosdk.ErrorResponse
//	@Router		/v1/admin/todos [get].
func (h *AdminHandler) HandleListTodos(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	todos, err := h.TodoService.List(ctx, domain.TodoFilter{})
	if err != nil {
		slogx.FromContext(ctx).Error("admin list todos failed", slog.Any("error", err))
		todosdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, toTodoResponses(todos))
}

// HandleDeleteTodo godoc
//
//	@Summary	Delete Any Todo
//	@Tags		Admin
//	@Security	BearerAuth
//	@Param		id	path	string	true	"Todo ID"
//	@Success	204
//	@Failure	403	{object}	todosdk.ErrorResponse
//	@Failure	404	{object}	todosdk.ErrorResponse
//	@Router		/v1/admin/todos/{id} [delete].
func (h *AdminHandler) HandleDeleteTodo(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.TodoService.Delete(r.Context(), id, ""); err != nil {
		writeTodoError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
