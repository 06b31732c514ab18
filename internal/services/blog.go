// Package services holds the application rules on top of the repositories:
// feed assembly, ownership checks, follow bookkeeping and delete cascades.
// Every write takes the acting identity as an explicit parameter.
package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yatube-project/yatube/internal/models"
	"github.com/yatube-project/yatube/internal/paginator"
	"github.com/yatube-project/yatube/internal/repositories"
	"gorm.io/gorm"
)

// Feed is one page of posts, newest first.
type Feed = paginator.Page[models.Post]

// Profile is an author's feed as seen by a particular viewer.
type Profile struct {
	Author    *models.User
	Page      *Feed
	Following bool
}

// Blog implements posts, comments, groups and follows.
type Blog struct {
	db        *gorm.DB
	users     repositories.UserRepository
	groups    repositories.GroupRepository
	posts     repositories.PostRepository
	comments  repositories.CommentRepository
	follows   repositories.FollowRepository
	paginator paginator.Paginator
}

// NewBlog creates a Blog over db listing perPage posts per page.
func NewBlog(db *gorm.DB, perPage int) *Blog {
	return &Blog{
		db:        db,
		users:     repositories.NewPostgresUserRepository(db),
		groups:    repositories.NewPostgresGroupRepository(db),
		posts:     repositories.NewPostgresPostRepository(db),
		comments:  repositories.NewPostgresCommentRepository(db),
		follows:   repositories.NewPostgresFollowRepository(db),
		paginator: paginator.New(perPage),
	}
}

func (s *Blog) feed(ctx context.Context, filter repositories.PostFilter, rawPage string) (*Feed, error) {
	count, err := s.posts.CountPosts(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count posts: %w", err)
	}
	page := paginator.Resolve[models.Post](s.paginator, count, rawPage)
	if count == 0 {
		return page, nil
	}
	page.Items, err = s.posts.ListPosts(ctx, filter, page.Offset(), page.PerPage)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return page, nil
}

// IndexFeed lists every post.
func (s *Blog) IndexFeed(ctx context.Context, rawPage string) (*Feed, error) {
	return s.feed(ctx, repositories.PostFilter{}, rawPage)
}

// GroupFeed lists the posts of the group with the given slug.
func (s *Blog) GroupFeed(ctx context.Context, slug, rawPage string) (*models.Group, *Feed, error) {
	group, err := s.groups.GetGroupBySlug(ctx, slug)
	if err != nil {
		return nil, nil, notFound(err)
	}
	page, err := s.feed(ctx, repositories.PostFilter{GroupID: group.ID}, rawPage)
	if err != nil {
		return nil, nil, err
	}
	return group, page, nil
}

// ProfileFeed lists the posts of username and whether viewer follows them.
// viewer may be nil.
func (s *Blog) ProfileFeed(ctx context.Context, viewer *models.User, username, rawPage string) (*Profile, error) {
	author, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, notFound(err)
	}
	following := false
	if viewer != nil {
		following, err = s.follows.IsFollowing(ctx, viewer.ID, author.ID)
		if err != nil {
			return nil, err
		}
	}
	return s.profile(ctx, author, following, rawPage)
}

func (s *Blog) profile(ctx context.Context, author *models.User, following bool, rawPage string) (*Profile, error) {
	page, err := s.feed(ctx, repositories.PostFilter{AuthorID: author.ID}, rawPage)
	if err != nil {
		return nil, err
	}
	return &Profile{Author: author, Page: page, Following: following}, nil
}

// FollowFeed lists posts by the authors viewer follows.
func (s *Blog) FollowFeed(ctx context.Context, viewer *models.User, rawPage string) (*Feed, error) {
	if viewer == nil {
		return nil, ErrUnauthenticated
	}
	return s.feed(ctx, repositories.PostFilter{FollowerID: viewer.ID}, rawPage)
}

// GetPost returns a post with its author and group.
func (s *Blog) GetPost(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.posts.GetPostByID(ctx, id)
	if err != nil {
		return nil, notFound(err)
	}
	return post, nil
}

// PostDetail returns a post and its comments, newest first.
func (s *Blog) PostDetail(ctx context.Context, id uint) (*models.Post, []models.Comment, error) {
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	comments, err := s.comments.GetCommentsByPostID(ctx, post.ID)
	if err != nil {
		return nil, nil, fmt.Errorf("list comments: %w", err)
	}
	return post, comments, nil
}

// ResolveGroup turns a submitted group choice into a group ID.
// An empty choice means no group.
func (s *Blog) ResolveGroup(ctx context.Context, raw string) (*uint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, ErrInvalidGroup
	}
	group, err := s.groups.GetGroupByID(ctx, uint(id))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidGroup
		}
		return nil, err
	}
	return &group.ID, nil
}

// ListGroups returns every group ordered by title.
func (s *Blog) ListGroups(ctx context.Context) ([]models.Group, error) {
	return s.groups.ListGroups(ctx)
}
