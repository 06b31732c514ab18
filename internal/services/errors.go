package services

import (
	"errors"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a slug, username or id does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrNotOwner is returned when the viewer is not the author of the resource.
	ErrNotOwner = errors.New("not the owner")
	// ErrUnauthenticated is returned for write operations without an identity.
	ErrUnauthenticated = errors.New("authentication required")
	// ErrInvalidGroup is returned when a submitted group does not exist.
	ErrInvalidGroup = errors.New("select a valid group")
	// ErrUsernameTaken is returned when registering an existing username.
	ErrUsernameTaken = errors.New("a user with that username already exists")
	// ErrSlugTaken is returned when creating a group with an existing slug.
	ErrSlugTaken = errors.New("a group with that slug already exists")
	// ErrInvalidCredentials is returned when a username/password pair does not match.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
