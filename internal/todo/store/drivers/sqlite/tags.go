package sqlite

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/todo/internal/todo/domain"
	"github.com/aussiebroadwan/todo/internal/todo/store"
	"github.com/aussiebroadwan/todo/internal/todo/store/drivers/sqlite/gen"
)

type tagsRepo struct {
	q *gen.Queries
}

func (r *tagsRepo) CreateTag(ctx context.Context, t domain.Tag) error {
	err := r.q.CreateTag(ctx, gen.CreateTagParams{
		ID:        t.ID,
		Name:      t.Name,
		CreatedAt: dbTime(t.CreatedAt),
	})
	return mapConstraint(err)
}

func (r *tagsRepo) ListTags(ctx context.Context) ([]domain.Tag, error) {
	rows, err := r.q.ListTags(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Tag, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapTag(row))
	}
	return out, nil
}

func (r *tagsRepo) GetTagsByIDs(ctx context.Context, ids []string) ([]domain.Tag, error) {
	out := make([]domain.Tag, 0, len(ids))
	for _, id := range ids {
		row, err := r.q.GetTag(ctx, id)
		if err != nil {
			if errors.Is(mapNotFound(err), store.ErrNotFound) {
				continue
			}
			return nil, err
		}
		out = append(out, mapTag(row))
	}
	return out, nil
}
