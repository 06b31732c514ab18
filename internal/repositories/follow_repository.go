package repositories

import (
	"context"

	"github.com/yatube-project/yatube/internal/models"
	"gorm.io/gorm"
)

// FollowRepository defines the interface for follow data operations
type FollowRepository interface {
	CreateFollow(ctx context.Context, follow *models.Follow) error
	DeleteFollow(ctx context.Context, followerID, followingID uint) error
	IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error)
	GetFollows(ctx context.Context, followerID uint) ([]models.Follow, error)
	DeleteFollowsByUser(ctx context.Context, userID uint) error
}

// PostgresFollowRepository implements FollowRepository for PostgreSQL
type PostgresFollowRepository struct {
	db *gorm.DB
}

// NewPostgresFollowRepository creates a new PostgresFollowRepository
func NewPostgresFollowRepository(db *gorm.DB) *PostgresFollowRepository {
	return &PostgresFollowRepository{db: db}
}

func (r *PostgresFollowRepository) CreateFollow(ctx context.Context, follow *models.Follow) error {
	return r.db.WithContext(ctx).Omit("Follower", "Following").Create(follow).Error
}

// DeleteFollow removes the edge if present. A missing edge is not an error.
func (r *PostgresFollowRepository) DeleteFollow(ctx context.Context, followerID, followingID uint) error {
	return r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&models.Follow{}).Error
}

func (r *PostgresFollowRepository) IsFollowing(ctx context.Context, followerID, followingID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.Follow{}).Where("follower_id = ? AND following_id = ?", followerID, followingID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GetFollows lists the edges where userID is the follower, oldest first,
// with the followed user preloaded
func (r *PostgresFollowRepository) GetFollows(ctx context.Context, followerID uint) ([]models.Follow, error) {
	var follows []models.Follow
	err := r.db.WithContext(ctx).Preload("Following").Where("follower_id = ?", followerID).Order("id ASC").Find(&follows).Error
	return follows, err
}

// DeleteFollowsByUser removes every edge the user takes part in, on either side
func (r *PostgresFollowRepository) DeleteFollowsByUser(ctx context.Context, userID uint) error {
	return r.db.WithContext(ctx).
		Where("follower_id = ? OR following_id = ?", userID, userID).
		Delete(&models.Follow{}).Error
}
