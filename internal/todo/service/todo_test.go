package service

import (
	"context"
	"testing"

	"github.com/aussiebroadwan/todo/internal/todo/domain"
	"github.com/aussiebroadwan/todo/pkg/todosdk"
	"github.com/stretchr/testify/require"
)

func TestTodoService(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	todos := &TodoService{Store: st}
	tags := &TagService{Store: st}

	alice := createUser(t, st, "alice", "Secret123!", domain.RoleUser)
	bob := createUser(t, st, "bob", "Secret123!", domain.RoleUser)

	home, err := tags.Create(ctx, "home")
	require.NoError(t, err)
	work, err := tags.Create(ctx, "work")
	require.NoError(t, err)

	_, err = tags.Create(ctx, "home")
	require.ErrorIs(t, err, ErrTagExists)

	milk, err := todos.Create(ctx, alice.ID, todosdk.TodoRequest{
		Title:       "Buy milk",
		Description: "Two litres",
		Priority:    2,
		Tags:        []string{home.ID, home.ID},
	})
	require.NoError(t, err)
	require.Equal(t, alice.ID, milk.OwnerID)
	require.Len(t, milk.Tags, 1)

	t.Run("unknown tag", func(t *testing.T) {
		_, err := todos.Create(ctx, alice.ID, todosdk.TodoRequest{
			Title:       "Tagged wrong",
			Description: "nope",
			Priority:    1,
			Tags:        []string{"01HZZZZZZZZZZZZZZZZZZZZZZZ"},
		})
		require.ErrorIs(t, err, ErrUnknownTag)
	})

	t.Run("duplicate title", func(t *testing.T) {
		_, err := todos.Create(ctx, bob.ID, todosdk.TodoRequest{Title: "Buy milk", Description: "again", Priority: 1})
		require.ErrorIs(t, err, ErrTitleTaken)
	})

	t.Run("owner scoping", func(t *testing.T) {
		_, err := todos.Get(ctx, milk.ID, bob.ID)
		require.ErrorIs(t, err, ErrTodoNotFound)

		_, err = todos.Update(ctx, milk.ID, bob.ID, todosdk.TodoRequest{Title: "Hijack", Description: "mine", Priority: 1})
		require.ErrorIs(t, err, ErrTodoNotFound)

		require.ErrorIs(t, todos.Delete(ctx, milk.ID, bob.ID), ErrTodoNotFound)

		got, err := todos.Get(ctx, milk.ID, "")
		require.NoError(t, err)
		require.Equal(t, "Buy milk", got.Title)
	})

	t.Run("update replaces the tag set", func(t *testing.T) {
		updated, err := todos.Update(ctx, milk.ID, alice.ID, todosdk.TodoRequest{
			Title:       "Buy oat milk",
			Description: "Two litres",
			Priority:    3,
			Complete:    true,
			Tags:        []string{work.ID},
		})
		require.NoError(t, err)
		require.True(t, updated.Complete)
		require.Len(t, updated.Tags, 1)
		require.Equal(t, "work", updated.Tags[0].Name)

		cleared, err := todos.Update(ctx, milk.ID, alice.ID, todosdk.TodoRequest{
			Title:       "Buy oat milk",
			Description: "Two litres",
			Priority:    3,
		})
		require.NoError(t, err)
		require.Empty(t, cleared.Tags)
	})

	t.Run("bulk create is atomic", func(t *testing.T) {
		_, err := todos.BulkCreate(ctx, bob.ID, []todosdk.TodoRequest{
			{Title: "Walk dog", Description: "Around the block", Priority: 1},
			{Title: "Buy oat milk", Description: "collides", Priority: 1},
		})
		require.ErrorIs(t, err, ErrTitleTaken)

		list, err := todos.List(ctx, domain.TodoFilter{OwnerID: bob.ID})
		require.NoError(t, err)
		require.Empty(t, list)

		created, err := todos.BulkCreate(ctx, bob.ID, []todosdk.TodoRequest{
			{Title: "Walk dog", Description: "Around the block", Priority: 1},
			{Title: "Feed cat", Description: "Twice a day", Priority: 2, Tags: []string{home.ID}},
		})
		require.NoError(t, err)
		require.Len(t, created, 2)
	})

	t.Run("bulk delete", func(t *testing.T) {
		bobs, err := todos.List(ctx, domain.TodoFilter{OwnerID: bob.ID})
		require.NoError(t, err)
		require.Len(t, bobs, 2)

		_, err = todos.BulkDelete(ctx, alice.ID, []string{bobs[0].ID, bobs[1].ID})
		require.ErrorIs(t, err, ErrTodoNotFound)

		n, err := todos.BulkDelete(ctx, bob.ID, []string{bobs[0].ID, bobs[1].ID, milk.ID})
		require.NoError(t, err)
		require.Equal(t, 2, n)

		_, err = todos.Get(ctx, milk.ID, alice.ID)
		require.NoError(t, err)
	})

	t.Run("admin delete ignores owner", func(t *testing.T) {
		require.NoError(t, todos.Delete(ctx, milk.ID, ""))
		require.ErrorIs(t, todos.Delete(ctx, milk.ID, ""), ErrTodoNotFound)
	})
}
