package graph

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/aussiebroadwan/todo/internal/todo/domain"
	"github.com/aussiebroadwan/todo/internal/todo/service"
	"github.com/aussiebroadwan/todo/internal/todo/store/drivers/sqlite"
	"github.com/aussiebroadwan/todo/pkg/httpx"
	"github.com/aussiebroadwan/todo/pkg/idx"
	"github.com/aussiebroadwan/todo/pkg/jwtx"
	"github.com/aussiebroadwan/todo/pkg/todosdk"
	"github.com/graphql-go/graphql"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	schema graphql.Schema
	store  *sqlite.Store
	todos  *service.TodoService
	alice  domain.User
	bob    domain.User
	admin  domain.User
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })
	require.NoError(t, st.ApplyMigrations())

	r := &Resolver{
		Todos: &service.TodoService{Store: st},
		Users: &service.UserService{Store: st},
		Tags:  &service.TagService{Store: st},
	}
	schema, err := NewSchema(r)
	require.NoError(t, err)

	f := &fixture{schema: schema, store: st, todos: r.Todos}
	f.alice = f.user(t, "alice", domain.RoleUser)
	f.bob = f.user(t, "bob", domain.RoleUser)
	f.admin = f.user(t, "root", domain.RoleAdmin)
	return f
}

func (f *fixture) user(t *testing.T, name, role string) domain.User {
	t.Helper()

	now := time.Now()
	u := domain.User{
		ID:        idx.New().String(),
		Username:  name,
		Email:     name + "@example.com",
		FirstName: name,
		LastName:  "Example",
		Role:      role,
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, f.store.Users().CreateUser(context.Background(), u))
	return u
}

func (f *fixture) run(t *testing.T, as domain.User, query string, vars map[string]any, out any) []string {
	t.Helper()

	ctx := httpx.ContextWithClaims(context.Background(), jwtx.NewAccessClaims(as.Username, as.ID, as.Role, time.Minute, "", time.Now()))
	res := Execute(ctx, f.schema, todosdk.GraphQLRequest{Query: query, Variables: vars})

	var msgs []string
	for _, e := range res.Errors {
		msgs = append(msgs, e.Message)
	}
	if out != nil && res.Data != nil {
		raw, err := json.Marshal(res.Data)
		require.NoError(t, err)
		require.NoError(t, json.Unmarshal(raw, out))
	}
	return msgs
}

type todoData struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Priority int    `json:"priority"`
	Complete bool   `json:"complete"`
	OwnerID  string `json:"ownerId"`
	Owner    *struct {
		Username string `json:"username"`
	} `json:"owner"`
	Tags []struct {
		Name string `json:"name"`
	} `json:"tags"`
}

func TestCreateTodoMutation(t *testing.T) {
	f := newFixture(t)
	tag, err := (&service.TagService{Store: f.store}).Create(context.Background(), "errands")
	require.NoError(t, err)

	const mutation = `mutation($tags: [ID!]) {
		createTodo(title: "Buy milk", description: "Two litres", priority: 2, tagIds: $tags) {
			id title priority complete ownerId owner { username } tags { name }
		}
	}`

	var out struct {
		CreateTodo todoData `json:"createTodo"`
	}
	errs := f.run(t, f.alice, mutation, map[string]any{"tags": []any{tag.ID}}, &out)
	require.Empty(t, errs)
	require.Equal(t, "Buy milk", out.CreateTodo.Title)
	require.Equal(t, f.alice.ID, out.CreateTodo.OwnerID)
	require.Equal(t, "alice", out.CreateTodo.Owner.Username)
	require.Len(t, out.CreateTodo.Tags, 1)
	require.Equal(t, "errands", out.CreateTodo.Tags[0].Name)

	t.Run("validation", func(t *testing.T) {
		errs := f.run(t, f.alice, `mutation { createTodo(title: "x", description: "Two litres", priority: 9) { id } }`, nil, nil)
		require.NotEmpty(t, errs)
		require.Contains(t, errs[0], "priority")
		require.Contains(t, errs[0], "title")
	})
}

func TestTodosQuery(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.todos.Create(ctx, f.alice.ID, todosdk.TodoRequest{Title: "Alice open", Description: "desc", Priority: 1})
	require.NoError(t, err)
	_, err = f.todos.Create(ctx, f.alice.ID, todosdk.TodoRequest{Title: "Alice done", Description: "desc", Priority: 1, Complete: true})
	require.NoError(t, err)
	bobs, err := f.todos.Create(ctx, f.bob.ID, todosdk.TodoRequest{Title: "Bob open", Description: "desc", Priority: 1})
	require.NoError(t, err)

	var out struct {
		Todos []todoData `json:"todos"`
	}

	t.Run("own todos only", func(t *testing.T) {
		require.Empty(t, f.run(t, f.alice, `{ todos { id title } }`, nil, &out))
		require.Len(t, out.Todos, 2)
	})

	t.Run("complete filter", func(t *testing.T) {
		require.Empty(t, f.run(t, f.alice, `{ todos(complete: true) { title } }`, nil, &out))
		require.Len(t, out.Todos, 1)
		require.Equal(t, "Alice done", out.Todos[0].Title)
	})

	t.Run("other owners need admin", func(t *testing.T) {
		errs := f.run(t, f.alice, `query($o: ID) { todos(ownerId: $o) { id } }`, map[string]any{"o": f.bob.ID}, nil)
		require.Equal(t, []string{ErrForbidden.Error()}, errs)

		require.Empty(t, f.run(t, f.admin, `query($o: ID) { todos(ownerId: $o) { title } }`, map[string]any{"o": f.bob.ID}, &out))
		require.Len(t, out.Todos, 1)
		require.Equal(t, "Bob open", out.Todos[0].Title)
	})

	t.Run("single todo visibility", func(t *testing.T) {
		var one struct {
			Todo *todoData `json:"todo"`
		}
		require.Empty(t, f.run(t, f.alice, `query($id: ID!) { todo(id: $id) { title } }`, map[string]any{"id": bobs.ID}, &one))
		require.Nil(t, one.Todo)

		require.Empty(t, f.run(t, f.admin, `query($id: ID!) { todo(id: $id) { title } }`, map[string]any{"id": bobs.ID}, &one))
		require.NotNil(t, one.Todo)
		require.Equal(t, "Bob open", one.Todo.Title)
	})
}

func TestUsersQueryRequiresAdmin(t *testing.T) {
	f := newFixture(t)

	errs := f.run(t, f.alice, `{ users { username } }`, nil, nil)
	require.Equal(t, []string{ErrForbidden.Error()}, errs)

	var out struct {
		Users []struct {
			Username string `json:"username"`
			IsActive bool   `json:"isActive"`
		} `json:"users"`
	}
	require.Empty(t, f.run(t, f.admin, `{ users { username isActive } }`, nil, &out))
	require.Len(t, out.Users, 3)

	var one struct {
		User *struct {
			Email string `json:"email"`
		} `json:"user"`
	}
	require.Empty(t, f.run(t, f.admin, `query($id: ID!) { user(id: $id) { email } }`, map[string]any{"id": f.bob.ID}, &one))
	require.NotNil(t, one.User)
	require.Equal(t, "bob@example.com", one.User.Email)
}

func TestUnauthenticated(t *testing.T) {
	f := newFixture(t)

	res := Execute(context.Background(), f.schema, todosdk.GraphQLRequest{Query: `{ tags { name } }`})
	require.Len(t, res.Errors, 1)
	require.Equal(t, ErrUnauthenticated.Error(), res.Errors[0].Message)
}
