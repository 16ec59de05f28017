package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aussiebroadwan/todo/internal/todo/service"
	"github.com/aussiebroadwan/todo/pkg/httpx"
	"github.com/aussiebroadwan/todo/pkg/slogx"
	"github.com/aussiebroadwan/todo/pkg/todosdk"
)

type TagsHandler struct {
	TagService *service.TagService
}

// HandleList godoc
//
//	@Summary	List Tags
//	@Tags		Tags
//	@Security	BearerAuth
//	@Produce	json
//	@Success	200	{array}		todosdk.TagResponse
//	@Failure	401	{object}	todosdk.ErrorResponse
//	@Router		/v1/tags [get].
func (h *TagsHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	tags, err := h.TagService.List(r.Context())
	if err != nil {
		slogx.FromContext(r.Context()).Error("list tags failed", slog.Any("error", err))
		todosdk.ErrServerError.WriteError(w)
		return
	}

	out := make([]todosdk.TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, toTagResponse(t))
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// HandleCreate godoc
//
//	@Summary	Create Tag
//	@Tags		Tags
//	@Security	BearerAuth
//	@Accept		json
//	@Produce	json
//	@Param		request	body		todosdk.TagRequest	true	"Tag"
//	@Success	201		{object}	todosdk.TagResponse
//	@Failure	409		{object}	todosdk.ErrorResponse
//	@Failure	422		{object}	todosdk.ValidationErrorResponse
//	@Router		/v1/tags [post].
func (h *TagsHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req todosdk.TagRequest
	if err := httpx.DecodeJSON(w, r, &req, maxBodyBytes); err != nil {
		todosdk.ErrInvalidRequest.With("invalid JSON body").WriteError(w)
		return
	}
	if details := req.Validate(); details != nil {
		todosdk.WriteValidationError(w, details)
		return
	}

	tag, err := h.TagService.Create(ctx, req.Name)
	if err != nil {
		if errors.Is(err, service.ErrTagExists) {
			todosdk.ErrConflict.With("tag already exists").WriteError(w)
			return
		}
		slogx.FromContext(ctx).Error("create tag failed", slog.Any("error", err))
		todosdk.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusCreated, toTagResponse(tag))
}
