package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/yatube-project/yatube/internal/models"
	"github.com/yatube-project/yatube/internal/repositories"
	"gorm.io/gorm"
)

// CreateGroup stores a new group. The slug must be unused.
func (s *Blog) CreateGroup(ctx context.Context, form models.GroupForm) (*models.Group, error) {
	_, err := s.groups.GetGroupBySlug(ctx, form.Slug)
	if err == nil {
		return nil, ErrSlugTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	group := &models.Group{
		Title:       form.Title,
		Slug:        form.Slug,
		Description: form.Description,
	}
	if err := s.groups.CreateGroup(ctx, group); err != nil {
		return nil, fmt.Errorf("create group %q: %w", form.Slug, err)
	}
	return group, nil
}

// DeleteGroup removes a group. Its posts stay and lose their group.
func (s *Blog) DeleteGroup(ctx context.Context, slug string) error {
	group, err := s.groups.GetGroupBySlug(ctx, slug)
	if err != nil {
		return notFound(err)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repositories.NewPostgresPostRepository(tx).ClearGroup(ctx, group.ID); err != nil {
			return fmt.Errorf("detach posts from group %q: %w", slug, err)
		}
		if err := repositories.NewPostgresGroupRepository(tx).DeleteGroup(ctx, group.ID); err != nil {
			return fmt.Errorf("delete group %q: %w", slug, err)
		}
		return nil
	})
}
