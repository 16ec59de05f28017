// Package graph exposes todos, users and tags over GraphQL.
package graph

import (
	"context"
	"errors"
	"time"

	"github.com/aussiebroadwan/todo/internal/todo/domain"
	"github.com/aussiebroadwan/todo/internal/todo/service"
	"github.com/aussiebroadwan/todo/pkg/httpx"
	"github.com/aussiebroadwan/todo/pkg/todosdk"
	"github.com/graphql-go/graphql"
)

var (
	ErrUnauthenticated = errors.New("not authenticated")
	ErrForbidden       = errors.New("not enough permissions")
)

// Resolver carries the services the schema reads from.
type Resolver struct {
	Todos *service.TodoService
	Users *service.UserService
	Tags  *service.TagService
}

// caller is the authenticated identity stored on the request context.
type caller struct {
	userID string
	role   string
}

func (c caller) isAdmin() bool { return c.role == domain.RoleAdmin }

func callerFrom(ctx context.Context) (caller, error) {
	id, ok := httpx.UserIDFromContext(ctx)
	if !ok {
		return caller{}, ErrUnauthenticated
	}
	return caller{userID: id, role: httpx.RoleFromContext(ctx)}, nil
}

// NewSchema builds the executable schema.
func NewSchema(r *Resolver) (graphql.Schema, error) {
	tagType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Tag",
		Fields: graphql.Fields{
			"id":   &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"name": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
		},
	})

	userType := graphql.NewObject(graphql.ObjectConfig{
		Name: "User",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"username":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"email":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"firstName":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"lastName":    &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"role":        &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"isActive":    &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"phoneNumber": &graphql.Field{Type: graphql.String},
		},
	})

	todoType := graphql.NewObject(graphql.ObjectConfig{
		Name: "Todo",
		Fields: graphql.Fields{
			"id":          &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"title":       &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"description": &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"priority":    &graphql.Field{Type: graphql.NewNonNull(graphql.Int)},
			"complete":    &graphql.Field{Type: graphql.NewNonNull(graphql.Boolean)},
			"ownerId":     &graphql.Field{Type: graphql.NewNonNull(graphql.ID)},
			"createdAt":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"updatedAt":   &graphql.Field{Type: graphql.NewNonNull(graphql.String)},
			"tags":        &graphql.Field{Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(tagType)))},
			"owner": &graphql.Field{
				Type:    userType,
				Resolve: r.resolveOwner,
			},
		},
	})

	query := graphql.NewObject(graphql.ObjectConfig{
		Name: "Query",
		Fields: graphql.Fields{
			"todos": &graphql.Field{
				Type: graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(todoType))),
				Args: graphql.FieldConfigArgument{
					"complete": &graphql.ArgumentConfig{Type: graphql.Boolean},
					"ownerId":  &graphql.ArgumentConfig{Type: graphql.ID},
				},
				Resolve: r.resolveTodos,
			},
			"todo": &graphql.Field{
				Type: todoType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.resolveTodo,
			},
			"users": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(userType))),
				Resolve: r.resolveUsers,
			},
			"user": &graphql.Field{
				Type: userType,
				Args: graphql.FieldConfigArgument{
					"id": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.ID)},
				},
				Resolve: r.resolveUser,
			},
			"tags": &graphql.Field{
				Type:    graphql.NewNonNull(graphql.NewList(graphql.NewNonNull(tagType))),
				Resolve: r.resolveTags,
			},
		},
	})

	mutation := graphql.NewObject(graphql.ObjectConfig{
		Name: "Mutation",
		Fields: graphql.Fields{
			"createTodo": &graphql.Field{
				Type: graphql.NewNonNull(todoType),
				Args: graphql.FieldConfigArgument{
					"title":       &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"description": &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.String)},
					"priority":    &graphql.ArgumentConfig{Type: graphql.NewNonNull(graphql.Int)},
					"tagIds":      &graphql.ArgumentConfig{Type: graphql.NewList(graphql.NewNonNull(graphql.ID))},
				},
				Resolve: r.resolveCreateTodo,
			},
		},
	})

	return graphql.NewSchema(graphql.SchemaConfig{
		Query:    query,
		Mutation: mutation,
	})
}

// Execute runs a request against schema. The caller is taken from ctx.
func Execute(ctx context.Context, schema graphql.Schema, req todosdk.GraphQLRequest) *graphql.Result {
	return graphql.Do(graphql.Params{
		Schema:         schema,
		RequestString:  req.Query,
		VariableValues: req.Variables,
		OperationName:  req.OperationName,
		Context:        ctx,
	})
}

func todoMap(t domain.Todo) map[string]any {
	tags := make([]any, 0, len(t.Tags))
	for _, tag := range t.Tags {
		tags = append(tags, tagMap(tag))
	}
	return map[string]any{
		"id":          t.ID,
		"title":       t.Title,
		"description": t.Description,
		"priority":    t.Priority,
		"complete":    t.Complete,
		"ownerId":     t.OwnerID,
		"createdAt":   t.CreatedAt.UTC().Format(time.RFC3339),
		"updatedAt":   t.UpdatedAt.UTC().Format(time.RFC3339),
		"tags":        tags,
	}
}

func userMap(u domain.User) map[string]any {
	m := map[string]any{
		"id":        u.ID,
		"username":  u.Username,
		"email":     u.Email,
		"firstName": u.FirstName,
		"lastName":  u.LastName,
		"role":      u.Role,
		"isActive":  u.IsActive,
	}
	if u.PhoneNumber != nil {
		m["phoneNumber"] = *u.PhoneNumber
	}
	return m
}

func tagMap(t domain.Tag) map[string]any {
	return map[string]any{"id": t.ID, "name": t.Name}
}
