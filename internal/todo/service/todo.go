package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/aussiebroadwan/todo/internal/todo/domain"
	"github.com/aussiebroadwan/todo/internal/todo/store"
	"github.com/aussiebroadwan/todo/pkg/idx"
	"github.com/aussiebroadwan/todo/pkg/slogx"
	"github.com/aussiebroadwan/todo/pkg/todosdk"
)

// TodoService owns todo CRUD. Every method taking an ownerID scopes the
// operation to that owner; an empty ownerID is only passed by admin paths.
type TodoService struct {
	Store store.Store
}

func (s *TodoService) List(ctx context.Context, f domain.TodoFilter) ([]domain.Todo, error) {
	return s.Store.Todos().ListTodos(ctx, f)
}

func (s *TodoService) Get(ctx context.Context, id, ownerID string) (domain.Todo, error) {
	t, err := s.Store.Todos().GetTodo(ctx, id, ownerID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.Todo{}, ErrTodoNotFound
	}
	return t, err
}

// Create inserts one todo together with its tag links.
func (s *TodoService) Create(ctx context.Context, ownerID string, req todosdk.TodoRequest) (domain.Todo, error) {
	var created domain.Todo
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		t, err := createTodo(ctx, tx, ownerID, req)
		created = t
		return err
	})
	if err != nil {
		return domain.Todo{}, err
	}

	slogx.FromContext(ctx).Info("todo created", slog.String("todo_id", created.ID))
	return created, nil
}

// BulkCreate inserts all todos or none of them.
func (s *TodoService) BulkCreate(ctx context.Context, ownerID string, reqs []todosdk.TodoRequest) ([]domain.Todo, error) {
	created := make([]domain.Todo, 0, len(reqs))
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		for _, req := range reqs {
			t, err := createTodo(ctx, tx, ownerID, req)
			if err != nil {
				return err
			}
			created = append(created, t)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slogx.FromContext(ctx).Info("todos created", slog.Int("count", len(created)))
	return created, nil
}

func createTodo(ctx context.Context, tx store.Tx, ownerID string, req todosdk.TodoRequest) (domain.Todo, error) {
	tags, err := resolveTags(ctx, tx.Tags(), req.Tags)
	if err != nil {
		return domain.Todo{}, err
	}

	now := time.Now()
	t := domain.Todo{
		ID:          idx.New().String(),
		Title:       strings.TrimSpace(req.Title),
		Description: strings.TrimSpace(req.Description),
		Priority:    req.Priority,
		Complete:    req.Complete,
		OwnerID:     ownerID,
		Tags:        tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if t.Tags == nil {
		t.Tags = []domain.Tag{}
	}

	if err := tx.Todos().CreateTodo(ctx, t); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Todo{}, ErrTitleTaken
		}
		return domain.Todo{}, err
	}
	return t, nil
}

// Update replaces every mutable field of the todo, including its tag set.
func (s *TodoService) Update(ctx context.Context, id, ownerID string, req todosdk.TodoRequest) (domain.Todo, error) {
	var updated domain.Todo
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		current, err := tx.Todos().GetTodo(ctx, id, ownerID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return ErrTodoNotFound
			}
			return err
		}

		tags, err := resolveTags(ctx, tx.Tags(), req.Tags)
		if err != nil {
			return err
		}

		current.Title = strings.TrimSpace(req.Title)
		current.Description = strings.TrimSpace(req.Description)
		current.Priority = req.Priority
		current.Complete = req.Complete
		current.Tags = tags
		current.UpdatedAt = time.Now()

		if err := tx.Todos().UpdateTodo(ctx, current); err != nil {
			switch {
			case errors.Is(err, store.ErrAlreadyExists):
				return ErrTitleTaken
			case errors.Is(err, store.ErrNotFound):
				return ErrTodoNotFound
			}
			return err
		}

		if current.Tags == nil {
			current.Tags = []domain.Tag{}
		}
		updated = current
		return nil
	})
	if err != nil {
		return domain.Todo{}, err
	}

	slogx.FromContext(ctx).Info("todo updated", slog.String("todo_id", id))
	return updated, nil
}

func (s *TodoService) Delete(ctx context.Context, id, ownerID string) error {
	if err := s.Store.Todos().DeleteTodo(ctx, id, ownerID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrTodoNotFound
		}
		return err
	}

	slogx.FromContext(ctx).Info("todo deleted", slog.String("todo_id", id), slog.Bool("admin", ownerID == ""))
	return nil
}

// BulkDelete removes the caller's todos among ids. Ids that do not exist or
// belong to someone else are skipped; if nothing was removed the call fails
// with ErrTodoNotFound.
func (s *TodoService) BulkDelete(ctx context.Context, ownerID string, ids []string) (int, error) {
	var deleted int
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		n, err := tx.Todos().DeleteTodos(ctx, ids, ownerID)
		deleted = n
		return err
	})
	if err != nil {
		return 0, err
	}
	if deleted == 0 {
		return 0, ErrTodoNotFound
	}

	slogx.FromContext(ctx).Info("todos deleted", slog.Int("count", deleted))
	return deleted, nil
}
