package http

import (
	"net/http"

	"github.com/aussiebroadwan/todo/internal/todo/graph"
	"github.com/aussiebroadwan/todo/pkg/httpx"
	"github.com/aussiebroadwan/todo/pkg/todosdk"
	"github.com/graphql-go/graphql"
)

// GraphQLHandler serves POST /graphql. Resolver errors travel in the
// response envelope with a 200 status.
type GraphQLHandler struct {
	Schema graphql.Schema
}

// ServeHTTP godoc
//
//	@Summary		GraphQL
//	@Description	Runs a GraphQL query or mutation over todos, users and tags.
//	@Tags			GraphQL
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		todosdk.GraphQLRequest	true	"Query"
//	@Success		200		{object}	map[string]any			"data and errors"
//	@Failure		400		{object}	todosdk.ErrorResponse
//	@Router			/graphql [post].
func (h *GraphQLHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req todosdk.GraphQLRequest
	if err := httpx.DecodeJSON(w, r, &req, maxBodyBytes); err != nil {
		todosdk.ErrInvalidRequest.With("invalid JSON body").WriteError(w)
		return
	}
	if req.Query == "" {
		todosdk.ErrInvalidRequest.With("query is required").WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, graph.Execute(r.Context(), h.Schema, req))
}
