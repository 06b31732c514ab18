package services

import (
	"context"
	"fmt"

	"github.com/yatube-project/yatube/internal/models"
)

// Follow makes viewer follow username and returns the author's profile.
// Following oneself or an author already followed writes nothing.
//
// The existence check and the insert are not atomic; two concurrent requests
// from the same follower can both insert.
func (s *Blog) Follow(ctx context.Context, viewer *models.User, username, rawPage string) (*Profile, error) {
	if viewer == nil {
		return nil, ErrUnauthenticated
	}
	author, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, notFound(err)
	}
	if author.ID == viewer.ID {
		return s.profile(ctx, author, false, rawPage)
	}
	exists, err := s.follows.IsFollowing(ctx, viewer.ID, author.ID)
	if err != nil {
		return nil, err
	}
	if !exists {
		follow := &models.Follow{FollowerID: viewer.ID, FollowingID: author.ID}
		if err := s.follows.CreateFollow(ctx, follow); err != nil {
			return nil, fmt.Errorf("follow %s: %w", username, err)
		}
	}
	return s.profile(ctx, author, true, rawPage)
}

// Unfollow removes the edge from viewer to username if there is one.
func (s *Blog) Unfollow(ctx context.Context, viewer *models.User, username, rawPage string) (*Profile, error) {
	if viewer == nil {
		return nil, ErrUnauthenticated
	}
	author, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, notFound(err)
	}
	if err := s.follows.DeleteFollow(ctx, viewer.ID, author.ID); err != nil {
		return nil, fmt.Errorf("unfollow %s: %w", username, err)
	}
	return s.profile(ctx, author, false, rawPage)
}

// Following lists the authors viewer follows, in the order they were followed.
func (s *Blog) Following(ctx context.Context, viewer *models.User) ([]models.User, error) {
	if viewer == nil {
		return nil, ErrUnauthenticated
	}
	follows, err := s.follows.GetFollows(ctx, viewer.ID)
	if err != nil {
		return nil, fmt.Errorf("list follows of %q: %w", viewer.Username, err)
	}
	authors := make([]models.User, 0, len(follows))
	for _, f := range follows {
		authors = append(authors, f.Following)
	}
	return authors, nil
}
