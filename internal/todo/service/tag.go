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
)

type TagService struct {
	Store store.Store
}

func (s *TagService) Create(ctx context.Context, name string) (domain.Tag, error) {
	tag := domain.Tag{
		ID:        idx.New().String(),
		Name:      strings.TrimSpace(name),
		CreatedAt: time.Now(),
	}

	if err := s.Store.Tags().CreateTag(ctx, tag); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Tag{}, ErrTagExists
		}
		return domain.Tag{}, err
	}

	slogx.FromContext(ctx).Info("tag created", slog.String("tag_id", tag.ID), slog.String("name", tag.Name))
	return tag, nil
}

func (s *TagService) List(ctx context.Context) ([]domain.Tag, error) {
	return s.Store.Tags().ListTags(ctx)
}

// resolveTags loads the tags named by ids. Any id that does not exist fails
// the whole lookup with ErrUnknownTag.
func resolveTags(ctx context.Context, tags store.Tags, ids []string) ([]domain.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	unique := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	found, err := tags.GetTagsByIDs(ctx, unique)
	if err != nil {
		return nil, err
	}
	if len(found) != len(unique) {
		return nil, ErrUnknownTag
	}
	return found, nil
}
