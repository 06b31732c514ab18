// Package middleware resolves the session cookie into the current user and
// gates routes that need one.
package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/yatube-project/yatube/internal/models"
)

// SessionCookieName is the name of the cookie carrying the session token.
const SessionCookieName = "session"

// Sessions issues and parses HS256 session tokens kept in a cookie.
type Sessions struct {
	secret []byte
	ttl    time.Duration
	// Secure marks the cookie HTTPS-only.
	Secure bool
}

// NewSessions creates a Sessions signing with secret. Tokens expire after ttl.
func NewSessions(secret string, ttl time.Duration) *Sessions {
	return &Sessions{secret: []byte(secret), ttl: ttl}
}

// Token signs a session token for user.
func (s *Sessions) Token(user *models.User) (string, error) {
	now := time.Now()
	claims := &models.SessionClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Parse validates a session token and returns its claims.
func (s *Sessions) Parse(tokenString string) (*models.SessionClaims, error) {
	claims := &models.SessionClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}

// Issue logs user in by setting the session cookie.
func (s *Sessions) Issue(c echo.Context, user *models.User) error {
	token, err := s.Token(user)
	if err != nil {
		return fmt.Errorf("sign session: %w", err)
	}
	c.SetCookie(s.cookie(token, time.Now().Add(s.ttl), int(s.ttl.Seconds())))
	return nil
}

// Clear logs the client out by expiring the session cookie.
func (s *Sessions) Clear(c echo.Context) {
	c.SetCookie(s.cookie("", time.Unix(0, 0), -1))
}

func (s *Sessions) cookie(value string, expires time.Time, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		Expires:  expires,
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
