package handlers

import (
	"github.com/yatube-project/yatube/internal/models"
	"github.com/yatube-project/yatube/internal/services"
)

// IndexView is rendered by posts/index.html.
type IndexView struct {
	Page *services.Feed
}

// GroupView is rendered by posts/group_list.html.
type GroupView struct {
	Group *models.Group
	Page  *services.Feed
}

// ProfileView is rendered by posts/profile.html.
type ProfileView struct {
	Author    *models.User
	Page      *services.Feed
	Following bool
}

// PostDetailView is rendered by posts/post_detail.html.
type PostDetailView struct {
	Post     *models.Post
	Comments []models.Comment
	Form     models.CommentForm
	CanEdit  bool
}

// PostFormView is rendered by posts/create_post.html for both creating
// and editing.
type PostFormView struct {
	Form   models.PostForm
	Errors map[string]string
	Groups []models.Group
	IsEdit bool
	PostID uint
}

// FollowView is rendered by posts/follow.html.
type FollowView struct {
	Page    *services.Feed
	Authors []models.User
}

// SignupView is rendered by users/signup.html.
type SignupView struct {
	Form   models.SignupForm
	Errors map[string]string
}

// LoginView is rendered by users/login.html.
type LoginView struct {
	Form            models.LoginForm
	Errors          map[string]string
	FirebaseEnabled bool
}

// PasswordResetView is rendered by users/password_reset_form.html.
type PasswordResetView struct {
	Form   models.PasswordResetForm
	Errors map[string]string
}

// NotFoundView is rendered by core/404.html.
type NotFoundView struct {
	Path string
}

func profileView(p *services.Profile) ProfileView {
	return ProfileView{Author: p.Author, Page: p.Page, Following: p.Following}
}
