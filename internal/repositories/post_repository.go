package repositories

import (
	"context"

	"github.com/yatube-project/yatube/internal/models"
	"gorm.io/gorm"
)

// PostFilter narrows a post listing. Zero fields do not filter.
type PostFilter struct {
	AuthorID   uint
	GroupID    uint
	FollowerID uint // posts by authors this user follows
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id uint) (*models.Post, error)
	UpdatePost(ctx context.Context, post *models.Post) error
	DeletePost(ctx context.Context, id uint) error
	CountPosts(ctx context.Context, filter PostFilter) (int64, error)
	ListPosts(ctx context.Context, filter PostFilter, offset, limit int) ([]models.Post, error)
	ClearGroup(ctx context.Context, groupID uint) error
	GetPostIDsByAuthor(ctx context.Context, authorID uint) ([]uint, error)
	DeletePostsByAuthor(ctx context.Context, authorID uint) error
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// CreatePost inserts a post. PubDate is assigned by the database layer.
func (r *PostgresPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Omit("Author", "Group").Create(post).Error
}

// GetPostByID retrieves a post with its author and group
func (r *PostgresPostRepository) GetPostByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).Preload("Author").Preload("Group").First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// UpdatePost writes the mutable fields of a post. PubDate and AuthorID never change.
func (r *PostgresPostRepository) UpdatePost(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Model(&models.Post{ID: post.ID}).
		Select("text", "group_id", "image").
		Updates(map[string]any{
			"text":     post.Text,
			"group_id": post.GroupID,
			"image":    post.Image,
		}).Error
}

func (r *PostgresPostRepository) DeletePost(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Post{}, id).Error
}

func (r *PostgresPostRepository) CountPosts(ctx context.Context, filter PostFilter) (int64, error) {
	var count int64
	err := r.filtered(ctx, filter).Count(&count).Error
	return count, err
}

// ListPosts returns one window of the filtered posts, newest first
func (r *PostgresPostRepository) ListPosts(ctx context.Context, filter PostFilter, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.filtered(ctx, filter).
		Preload("Author").Preload("Group").
		Order("pub_date DESC").Order("id DESC").
		Offset(offset).Limit(limit).
		Find(&posts).Error
	return posts, err
}

func (r *PostgresPostRepository) filtered(ctx context.Context, filter PostFilter) *gorm.DB {
	q := r.db.WithContext(ctx).Model(&models.Post{})
	if filter.AuthorID != 0 {
		q = q.Where("author_id = ?", filter.AuthorID)
	}
	if filter.GroupID != 0 {
		q = q.Where("group_id = ?", filter.GroupID)
	}
	if filter.FollowerID != 0 {
		q = q.Where("author_id IN (?)",
			r.db.Model(&models.Follow{}).Select("following_id").Where("follower_id = ?", filter.FollowerID),
		)
	}
	return q
}

// ClearGroup detaches every post from a group
func (r *PostgresPostRepository) ClearGroup(ctx context.Context, groupID uint) error {
	return r.db.WithContext(ctx).Model(&models.Post{}).
		Where("group_id = ?", groupID).
		Update("group_id", nil).Error
}

func (r *PostgresPostRepository) GetPostIDsByAuthor(ctx context.Context, authorID uint) ([]uint, error) {
	var ids []uint
	err := r.db.WithContext(ctx).Model(&models.Post{}).Where("author_id = ?", authorID).Pluck("id", &ids).Error
	return ids, err
}

func (r *PostgresPostRepository) DeletePostsByAuthor(ctx context.Context, authorID uint) error {
	return r.db.WithContext(ctx).Where("author_id = ?", authorID).Delete(&models.Post{}).Error
}
