// Package testutil provides database fixtures and HTTP helpers shared by tests.
package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/yatube-project/yatube/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultPassword is the password of every user created by CreateUser.
const DefaultPassword = "correct-horse"

// NewDB opens a migrated SQLite database in a temporary directory.
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// SQLite only supports one writer at a time
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, models.AutoMigrate(db))
	return db
}

// CreateUser inserts a user whose password is DefaultPassword.
func CreateUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(DefaultPassword), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{Username: username, Password: string(hash)}
	require.NoError(t, db.WithContext(context.Background()).Create(user).Error)
	return user
}

// CreateGroup inserts a group.
func CreateGroup(t *testing.T, db *gorm.DB, title, slug string) *models.Group {
	t.Helper()
	group := &models.Group{Title: title, Slug: slug, Description: "Description of " + title}
	require.NoError(t, db.Create(group).Error)
	return group
}

// CreatePost inserts a post by author, optionally in group.
func CreatePost(t *testing.T, db *gorm.DB, author *models.User, text string, group *models.Group) *models.Post {
	t.Helper()
	post := &models.Post{Text: text, AuthorID: author.ID}
	if group != nil {
		post.GroupID = &group.ID
	}
	require.NoError(t, db.Omit("Author", "Group").Create(post).Error)
	return post
}

// CreateComment inserts a comment by author on post.
func CreateComment(t *testing.T, db *gorm.DB, author *models.User, post *models.Post, text string) *models.Comment {
	t.Helper()
	comment := &models.Comment{Text: text, AuthorID: author.ID, PostID: post.ID}
	require.NoError(t, db.Omit("Author", "Post").Create(comment).Error)
	return comment
}

// CreateFollow inserts a follow edge.
func CreateFollow(t *testing.T, db *gorm.DB, follower, following *models.User) {
	t.Helper()
	require.NoError(t, db.Omit("Follower", "Following").Create(&models.Follow{
		FollowerID:  follower.ID,
		FollowingID: following.ID,
	}).Error)
}

// CountRows counts the rows of model matching the optional condition.
func CountRows(t *testing.T, db *gorm.DB, model any, query ...any) int64 {
	t.Helper()
	var count int64
	q := db.Model(model)
	if len(query) > 0 {
		q = q.Where(query[0], query[1:]...)
	}
	require.NoError(t, q.Count(&count).Error)
	return count
}
