package graph

import (
	"errors"
	"maps"
	"slices"
	"strings"

	"github.com/aussiebroadwan/todo/internal/todo/domain"
	"github.com/aussiebroadwan/todo/internal/todo/service"
	"github.com/aussiebroadwan/todo/pkg/todosdk"
	"github.com/graphql-go/graphql"
)

func (r *Resolver) resolveTodos(p graphql.ResolveParams) (any, error) {
	c, err := callerFrom(p.Context)
	if err != nil {
		return nil, err
	}

	f := domain.TodoFilter{OwnerID: c.userID}
	if owner, ok := p.Args["ownerId"].(string); ok && owner != c.userID {
		if !c.isAdmin() {
			return nil, ErrForbidden
		}
		f.OwnerID = owner
	}
	if complete, ok := p.Args["complete"].(bool); ok {
		f.Complete = &complete
	}

	todos, err := r.Todos.List(p.Context, f)
	if err != nil {
		return nil, err
	}

	out := make([]any, 0, len(todos))
	for _, t := range todos {
		out = append(out, todoMap(t))
	}
	return out, nil
}

// resolveTodo returns null for todos the caller cannot see.
func (r *Resolver) resolveTodo(p graphql.ResolveParams) (any, error) {
	c, err := callerFrom(p.Context)
	if err != nil {
		return nil, err
	}

	owner := c.userID
	if c.isAdmin() {
		owner = ""
	}

	id, _ := p.Args["id"].(string)
	t, err := r.Todos.Get(p.Context, id, owner)
	if errors.Is(err, service.ErrTodoNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return todoMap(t), nil
}

func (r *Resolver) resolveUsers(p graphql.ResolveParams) (any, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}

	users, err := r.Users.ListUsers(p.Context)
	if err != nil {
		return nil, err
	}

	out := make([]any, 0, len(users))
	for _, u := range users {
		out = append(out, userMap(u))
	}
	return out, nil
}

func (r *Resolver) resolveUser(p graphql.ResolveParams) (any, error) {
	if err := requireAdmin(p); err != nil {
		return nil, err
	}

	id, _ := p.Args["id"].(string)
	u, err := r.Users.GetUserByID(p.Context, id)
	if errors.Is(err, service.ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return userMap(u), nil
}

// resolveOwner loads the owner of a todo. Plain users only ever see their own
// todos, so this never leaks another account.
func (r *Resolver) resolveOwner(p graphql.ResolveParams) (any, error) {
	src, ok := p.Source.(map[string]any)
	if !ok {
		return nil, nil
	}
	ownerID, _ := src["ownerId"].(string)
	if ownerID == "" {
		return nil, nil
	}

	u, err := r.Users.GetUserByID(p.Context, ownerID)
	if errors.Is(err, service.ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return userMap(u), nil
}

func (r *Resolver) resolveTags(p graphql.ResolveParams) (any, error) {
	if _, err := callerFrom(p.Context); err != nil {
		return nil, err
	}

	tags, err := r.Tags.List(p.Context)
	if err != nil {
		return nil, err
	}

	out := make([]any, 0, len(tags))
	for _, t := range tags {
		out = append(out, tagMap(t))
	}
	return out, nil
}

// resolveCreateTodo always creates the todo for the caller.
func (r *Resolver) resolveCreateTodo(p graphql.ResolveParams) (any, error) {
	c, err := callerFrom(p.Context)
	if err != nil {
		return nil, err
	}

	req := todosdk.TodoRequest{}
	req.Title, _ = p.Args["title"].(string)
	req.Description, _ = p.Args["description"].(string)
	req.Priority, _ = p.Args["priority"].(int)
	if ids, ok := p.Args["tagIds"].([]any); ok {
		for _, id := range ids {
			if s, ok := id.(string); ok {
				req.Tags = append(req.Tags, s)
			}
		}
	}

	if details := req.Validate(); details != nil {
		return nil, validationError(details)
	}

	t, err := r.Todos.Create(p.Context, c.userID, req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTitleTaken):
			return nil, errors.New("a todo with this title already exists")
		case errors.Is(err, service.ErrUnknownTag):
			return nil, errors.New("unknown tag id")
		}
		return nil, err
	}
	return todoMap(t), nil
}

func requireAdmin(p graphql.ResolveParams) error {
	c, err := callerFrom(p.Context)
	if err != nil {
		return err
	}
	if !c.isAdmin() {
		return ErrForbidden
	}
	return nil
}

func validationError(details map[string]string) error {
	parts := make([]string, 0, len(details))
	for _, field := range slices.Sorted(maps.Keys(details)) {
		parts = append(parts, field+": "+details[field])
	}
	return errors.New("validation failed: " + strings.Join(parts, ", "))
}
