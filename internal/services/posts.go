package services

import (
	"context"
	"fmt"

	"github.com/yatube-project/yatube/internal/models"
	"github.com/yatube-project/yatube/internal/repositories"
	"gorm.io/gorm"
)

// CreatePost stores a new post written by author. The author always comes
// from the identity, never from the submission.
func (s *Blog) CreatePost(ctx context.Context, author *models.User, in models.PostInput) (*models.Post, error) {
	if author == nil {
		return nil, ErrUnauthenticated
	}
	post := &models.Post{
		Text:     in.Text,
		AuthorID: author.ID,
		GroupID:  in.GroupID,
		Image:    in.Image,
	}
	if err := s.posts.CreatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	post.Author = *author
	return post, nil
}

// EditPost rewrites the text, group and image of a post owned by viewer.
// ErrNotOwner is returned, without writing, for anyone else.
func (s *Blog) EditPost(ctx context.Context, viewer *models.User, id uint, in models.PostInput) (*models.Post, error) {
	if viewer == nil {
		return nil, ErrUnauthenticated
	}
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return nil, err
	}
	if post.AuthorID != viewer.ID {
		return post, ErrNotOwner
	}
	post.Text = in.Text
	post.GroupID = in.GroupID
	if in.Image != "" {
		post.Image = in.Image
	}
	if err := s.posts.UpdatePost(ctx, post); err != nil {
		return nil, fmt.Errorf("update post %d: %w", id, err)
	}
	return s.GetPost(ctx, id)
}

// DeletePost removes a post owned by viewer together with its comments.
func (s *Blog) DeletePost(ctx context.Context, viewer *models.User, id uint) error {
	if viewer == nil {
		return ErrUnauthenticated
	}
	post, err := s.GetPost(ctx, id)
	if err != nil {
		return err
	}
	if post.AuthorID != viewer.ID {
		return ErrNotOwner
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		comments := repositories.NewPostgresCommentRepository(tx)
		posts := repositories.NewPostgresPostRepository(tx)
		if err := comments.DeleteCommentsByPostIDs(ctx, []uint{post.ID}); err != nil {
			return fmt.Errorf("delete comments of post %d: %w", post.ID, err)
		}
		if err := posts.DeletePost(ctx, post.ID); err != nil {
			return fmt.Errorf("delete post %d: %w", post.ID, err)
		}
		return nil
	})
}

// AddComment attaches a comment by viewer to the post with the given id.
func (s *Blog) AddComment(ctx context.Context, viewer *models.User, postID uint, text string) (*models.Comment, error) {
	if viewer == nil {
		return nil, ErrUnauthenticated
	}
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	comment := &models.Comment{
		Text:     text,
		AuthorID: viewer.ID,
		PostID:   post.ID,
	}
	if err := s.comments.CreateComment(ctx, comment); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	comment.Author = *viewer
	return comment, nil
}
