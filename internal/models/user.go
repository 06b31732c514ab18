package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// User is an account that can author posts and comments and follow other users.
type User struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Username    string    `json:"username" gorm:"size:150;uniqueIndex;not null"`
	Password    string    `json:"-"` // bcrypt hash
	FirstName   string    `json:"first_name" gorm:"size:150"`
	LastName    string    `json:"last_name" gorm:"size:150"`
	Email       string    `json:"email" gorm:"size:254"`
	FirebaseUID *string   `json:"-" gorm:"size:128;uniqueIndex"`
	CreatedAt   time.Time `json:"created_at"`
}

// FullName returns "First Last", falling back to the username.
func (u User) FullName() string {
	switch {
	case u.FirstName != "" && u.LastName != "":
		return u.FirstName + " " + u.LastName
	case u.FirstName != "":
		return u.FirstName
	case u.LastName != "":
		return u.LastName
	}
	return u.Username
}

func (u User) String() string {
	return u.Username
}

// SignupForm is bound from the registration page.
type SignupForm struct {
	Username        string `form:"username" validate:"required,max=150,username"`
	FirstName       string `form:"first_name" validate:"max=150"`
	LastName        string `form:"last_name" validate:"max=150"`
	Email           string `form:"email" validate:"omitempty,email"`
	Password        string `form:"password" validate:"required,min=8"`
	PasswordConfirm string `form:"password_confirm" validate:"required,eqfield=Password"`
}

// LoginForm is bound from the login page.
type LoginForm struct {
	Username string `form:"username" validate:"required"`
	Password string `form:"password" validate:"required"`
	Next     string `form:"next"`
}

// PasswordResetForm is bound from the password reset page.
type PasswordResetForm struct {
	Email string `form:"email" validate:"required,email"`
}

// FirebaseLoginForm carries a Firebase ID token to exchange for a session.
type FirebaseLoginForm struct {
	IDToken string `form:"id_token" json:"idToken" validate:"required"`
}

// SessionClaims are the claims stored in the session cookie.
type SessionClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}
