package todo_test

import (
	"net/http"
	"testing"

	"github.com/aussiebroadwan/todo/pkg/todosdk"
	"github.com/stretchr/testify/require"
)

func TestTodoLifecycle(t *testing.T) {
	baseURL, cleanup := setupTodoContainer(t)
	defer cleanup()

	client := todosdk.NewSDKClient(baseURL)
	_, alice := registerAndLogin(t, client, "alice", "user")
	_, bob := registerAndLogin(t, client, "bob", "user")

	tag, err := alice.CreateTag(t.Context(), "errands")
	require.NoError(t, err)

	todo, err := alice.CreateTodo(t.Context(), todosdk.TodoRequest{
		Title:       "Buy groceries",
		Description: "Milk, Bread, Eggs",
		Priority:    2,
		Tags:        []string{tag.ID},
	})
	require.NoError(t, err)
	require.Len(t, todo.Tags, 1)

	t.Run("owner scoping", func(t *testing.T) {
		_, err := bob.GetTodo(t.Context(), todo.ID)
		requireAPIStatus(t, err, http.StatusNotFound)

		mine, err := bob.ListTodos(t.Context(), todosdk.TodoFilter{})
		require.NoError(t, err)
		require.Empty(t, mine)
	})

	t.Run("replace", func(t *testing.T) {
		updated, err := alice.UpdateTodo(t.Context(), todo.ID, todosdk.TodoRequest{
			Title:       "Buy groceries",
			Description: "Only milk",
			Priority:    4,
			Complete:    true,
		})
		require.NoError(t, err)
		require.True(t, updated.Complete)
		require.Empty(t, updated.Tags)

		done := true
		list, err := alice.ListTodos(t.Context(), todosdk.TodoFilter{Complete: &done, Priority: 4})
		require.NoError(t, err)
		require.Len(t, list, 1)
	})

	t.Run("bulk", func(t *testing.T) {
		created, err := alice.BulkCreateTodos(t.Context(), []todosdk.TodoRequest{
			{Title: "Bulk one", Description: "first", Priority: 1},
			{Title: "Bulk two", Description: "second", Priority: 1},
		})
		require.NoError(t, err)
		require.Len(t, created, 2)

		res, err := alice.BulkDeleteTodos(t.Context(), created[0].ID, created[1].ID)
		require.NoError(t, err)
		require.Equal(t, 2, res.Deleted)

		_, err = alice.BulkDeleteTodos(t.Context(), created[0].ID)
		requireAPIStatus(t, err, http.StatusNotFound)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, alice.DeleteTodo(t.Context(), todo.ID))

		_, err := alice.GetTodo(t.Context(), todo.ID)
		requireAPIStatus(t, err, http.StatusNotFound)
	})
}

func TestAdminAndGraphQL(t *testing.T) {
	baseURL, cleanup := setupTodoContainer(t)
	defer cleanup()

	client := todosdk.NewSDKClient(baseURL)
	_, alice := registerAndLogin(t, client, "alice", "user")
	_, admin := registerAndLogin(t, client, "root", "admin")

	var created struct {
		CreateTodo struct {
			ID    string `json:"id"`
			Title string `json:"title"`
		} `json:"createTodo"`
	}
	err := alice.GraphQL(t.Context(),
		`mutation($t: String!, $d: String!) { createTodo(title: $t, description: $d, priority: 3) { id title } }`,
		map[string]any{"t": "Via GraphQL", "d": "created remotely"},
		&created,
	)
	require.NoError(t, err)
	require.Equal(t, "Via GraphQL", created.CreateTodo.Title)

	t.Run("users query needs admin", func(t *testing.T) {
		err := alice.GraphQL(t.Context(), `{ users { id } }`, nil, nil)
		require.Error(t, err)

		var out struct {
			Users []struct {
				Username string `json:"username"`
			} `json:"users"`
		}
		require.NoError(t, admin.GraphQL(t.Context(), `{ users { username } }`, nil, &out))
		require.Len(t, out.Users, 2)
	})

	t.Run("admin routes", func(t *testing.T) {
		_, err := alice.AdminListTodos(t.Context())
		requireAPIStatus(t, err, http.StatusForbidden)

		all, err := admin.AdminListTodos(t.Context())
		require.NoError(t, err)
		require.Len(t, all, 1)

		require.NoError(t, admin.AdminDeleteTodo(t.Context(), created.CreateTodo.ID))
	})
}
