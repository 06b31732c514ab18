package repositories

import (
	"context"

	"github.com/yatube-project/yatube/internal/models"
	"gorm.io/gorm"
)

// CommentRepository defines the interface for comment data operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentsByPostID(ctx context.Context, postID uint) ([]models.Comment, error)
	DeleteCommentsByPostIDs(ctx context.Context, postIDs []uint) error
	DeleteCommentsByAuthor(ctx context.Context, authorID uint) error
}

// PostgresCommentRepository implements CommentRepository for PostgreSQL
type PostgresCommentRepository struct {
	db *gorm.DB
}

// NewPostgresCommentRepository creates a new PostgresCommentRepository
func NewPostgresCommentRepository(db *gorm.DB) *PostgresCommentRepository {
	return &PostgresCommentRepository{db: db}
}

// CreateComment creates a new comment
func (r *PostgresCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Omit("Author", "Post").Create(comment).Error
}

// GetCommentsByPostID retrieves the comments of a post, newest first
func (r *PostgresCommentRepository) GetCommentsByPostID(ctx context.Context, postID uint) ([]models.Comment, error) {
	var comments []models.Comment
	err := r.db.WithContext(ctx).
		Preload("Author").
		Where("post_id = ?", postID).
		Order("created DESC").Order("id DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}
	return comments, nil
}

func (r *PostgresCommentRepository) DeleteCommentsByPostIDs(ctx context.Context, postIDs []uint) error {
	if len(postIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Where("post_id IN ?", postIDs).Delete(&models.Comment{}).Error
}

func (r *PostgresCommentRepository) DeleteCommentsByAuthor(ctx context.Context, authorID uint) error {
	return r.db.WithContext(ctx).Where("author_id = ?", authorID).Delete(&models.Comment{}).Error
}
