package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yatube-project/yatube/internal/models"
	"github.com/yatube-project/yatube/internal/repositories"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Accounts registers and authenticates users and removes them with
// everything they own.
type Accounts struct {
	db    *gorm.DB
	users repositories.UserRepository
}

// NewAccounts creates an Accounts service over db.
func NewAccounts(db *gorm.DB) *Accounts {
	return &Accounts{
		db:    db,
		users: repositories.NewPostgresUserRepository(db),
	}
}

// Register creates a user with a bcrypt-hashed password.
func (s *Accounts) Register(ctx context.Context, form models.SignupForm) (*models.User, error) {
	_, err := s.users.GetUserByUsername(ctx, form.Username)
	if err == nil {
		return nil, ErrUsernameTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(form.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user := &models.User{
		Username:  form.Username,
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Password:  string(hashedPassword),
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create user %q: %w", form.Username, err)
	}
	return user, nil
}

// Authenticate checks a username/password pair.
func (s *Accounts) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if user.Password == "" {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// LinkFirebaseUser returns the user bound to a Firebase UID, creating one
// on first login. The username is derived from the email's local part and
// suffixed with a number when taken.
func (s *Accounts) LinkFirebaseUser(ctx context.Context, firebaseUID, email, name string) (*models.User, error) {
	user, err := s.users.GetUserByFirebaseUID(ctx, firebaseUID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	base := usernameFromEmail(email)
	username := base
	for i := 2; ; i++ {
		_, err := s.users.GetUserByUsername(ctx, username)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			break
		}
		if err != nil {
			return nil, err
		}
		username = base + strconv.Itoa(i)
	}

	uid := firebaseUID
	user = &models.User{
		Username:    username,
		FirstName:   name,
		Email:       email,
		FirebaseUID: &uid,
	}
	if err := s.users.CreateUser(ctx, user); err != nil {
		return nil, fmt.Errorf("create firebase user: %w", err)
	}
	return user, nil
}

func usernameFromEmail(email string) string {
	local, _, _ := strings.Cut(email, "@")
	var b strings.Builder
	for _, r := range local {
		if r == '.' || r == '@' || r == '+' || r == '-' || r == '_' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "user"
	}
	name := b.String()
	if len(name) > 140 {
		name = name[:140]
	}
	return name
}

// DeleteUser removes a user, their posts, every comment written by them or
// left on their posts, and every follow edge they take part in.
func (s *Accounts) DeleteUser(ctx context.Context, username string) error {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return notFound(err)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		posts := repositories.NewPostgresPostRepository(tx)
		comments := repositories.NewPostgresCommentRepository(tx)

		postIDs, err := posts.GetPostIDsByAuthor(ctx, user.ID)
		if err != nil {
			return err
		}
		if err := comments.DeleteCommentsByPostIDs(ctx, postIDs); err != nil {
			return fmt.Errorf("delete comments on posts of %q: %w", username, err)
		}
		if err := comments.DeleteCommentsByAuthor(ctx, user.ID); err != nil {
			return fmt.Errorf("delete comments of %q: %w", username, err)
		}
		if err := posts.DeletePostsByAuthor(ctx, user.ID); err != nil {
			return fmt.Errorf("delete posts of %q: %w", username, err)
		}
		if err := repositories.NewPostgresFollowRepository(tx).DeleteFollowsByUser(ctx, user.ID); err != nil {
			return fmt.Errorf("delete follows of %q: %w", username, err)
		}
		if err := repositories.NewPostgresUserRepository(tx).DeleteUser(ctx, user.ID); err != nil {
			return fmt.Errorf("delete user %q: %w", username, err)
		}
		return nil
	})
}
