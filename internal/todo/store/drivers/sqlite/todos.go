package sqlite

import (
	"context"
	"database/sql"
	"time"

	"github.com/aussiebroadwan/todo/internal/todo/domain"
	"github.com/aussiebroadwan/todo/internal/todo/store"
	"github.com/aussiebroadwan/todo/internal/todo/store/drivers/sqlite/gen"
)

type todosRepo struct {
	q *gen.Queries
}

func (r *todosRepo) GetTodo(ctx context.Context, id, ownerID string) (domain.Todo, error) {
	row, err := r.q.GetTodo(ctx, id)
	if err != nil {
		return domain.Todo{}, mapNotFound(err)
	}
	if ownerID != "" && row.OwnerID != ownerID {
		return domain.Todo{}, store.ErrNotFound
	}
	return r.withTags(ctx, row)
}

func (r *todosRepo) withTags(ctx context.Context, row gen.Todo) (domain.Todo, error) {
	tags, err := r.q.ListTagsForTodo(ctx, row.ID)
	if err != nil {
		return domain.Todo{}, err
	}
	return mapTodo(row, tags), nil
}

func (r *todosRepo) ListTodos(ctx context.Context, f domain.TodoFilter) ([]domain.Todo, error) {
	params := gen.ListTodosParams{
		OwnerID: f.OwnerID,
		Search:  f.Search,
		Limit:   int64(f.Limit),
		Offset:  int64(f.Offset),
	}
	if f.Complete != nil {
		params.Complete = sql.NullBool{Bool: *f.Complete, Valid: true}
	}
	if f.Priority != nil {
		params.Priority = sql.NullInt64{Int64: int64(*f.Priority), Valid: true}
	}
	// A negative LIMIT means no limit in sqlite.
	if params.Limit <= 0 {
		params.Limit = -1
	}

	rows, err := r.q.ListTodos(ctx, params)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Todo, 0, len(rows))
	for _, row := range rows {
		t, err := r.withTags(ctx, row)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}

func (r *todosRepo) CreateTodo(ctx context.Context, t domain.Todo) error {
	err := r.q.CreateTodo(ctx, gen.CreateTodoParams{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Priority:    int64(t.Priority),
		Complete:    t.Complete,
		OwnerID:     t.OwnerID,
		CreatedAt:   dbTime(t.CreatedAt),
		UpdatedAt:   dbTime(t.UpdatedAt),
	})
	if err != nil {
		return mapConstraint(err)
	}
	return r.linkTags(ctx, t.ID, t.Tags)
}

func (r *todosRepo) UpdateTodo(ctx context.Context, t domain.Todo) error {
	updatedAt := t.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}

	n, err := r.q.UpdateTodo(ctx, gen.UpdateTodoParams{
		Title:       t.Title,
		Description: t.Description,
		Priority:    int64(t.Priority),
		Complete:    t.Complete,
		UpdatedAt:   dbTime(updatedAt),
		ID:          t.ID,
	})
	if err != nil {
		return mapConstraint(err)
	}
	if n == 0 {
		return store.ErrNotFound
	}

	if err := r.q.ClearTodoTags(ctx, t.ID); err != nil {
		return err
	}
	return r.linkTags(ctx, t.ID, t.Tags)
}

func (r *todosRepo) linkTags(ctx context.Context, todoID string, tags []domain.Tag) error {
	for _, tag := range tags {
		err := r.q.AddTodoTag(ctx, gen.AddTodoTagParams{TodoID: todoID, TagID: tag.ID})
		if err != nil {
			return mapConstraint(err)
		}
	}
	return nil
}

func (r *todosRepo) DeleteTodo(ctx context.Context, id, ownerID string) error {
	var (
		n   int64
		err error
	)
	if ownerID == "" {
		n, err = r.q.DeleteTodo(ctx, id)
	} else {
		n, err = r.q.DeleteTodoForOwner(ctx, gen.DeleteTodoForOwnerParams{ID: id, OwnerID: ownerID})
	}
	if err != nil {
		return err
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *todosRepo) DeleteTodos(ctx context.Context, ids []string, ownerID string) (int, error) {
	seen := make(map[string]struct{}, len(ids))
	deleted := 0
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}

		n, err := r.q.DeleteTodoForOwner(ctx, gen.DeleteTodoForOwnerParams{ID: id, OwnerID: ownerID})
		if err != nil {
			return deleted, err
		}
		deleted += int(n)
	}
	return deleted, nil
}
