package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yatube-project/yatube/internal/models"
	"github.com/yatube-project/yatube/internal/testutil"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	s := NewAccounts(testutil.NewDB(t))
	form := models.SignupForm{Username: "leo", Password: "s3cret-pass", PasswordConfirm: "s3cret-pass"}

	user, err := s.Register(context.Background(), form)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", user.Password)

	_, err = s.Register(context.Background(), form)
	assert.ErrorIs(t, err, ErrUsernameTaken)

	got, err := s.Authenticate(context.Background(), "leo", "s3cret-pass")
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)

	_, err = s.Authenticate(context.Background(), "leo", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = s.Authenticate(context.Background(), "nobody", "s3cret-pass")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLinkFirebaseUser(t *testing.T) {
	db := testutil.NewDB(t)
	s := NewAccounts(db)
	testutil.CreateUser(t, db, "ann")

	user, err := s.LinkFirebaseUser(context.Background(), "uid-1", "ann@example.com", "Ann")
	require.NoError(t, err)
	assert.Equal(t, "ann2", user.Username)
	assert.Empty(t, user.Password)

	again, err := s.LinkFirebaseUser(context.Background(), "uid-1", "ann@example.com", "Ann")
	require.NoError(t, err)
	assert.Equal(t, user.ID, again.ID)

	_, err = s.Authenticate(context.Background(), "ann2", "")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestDeleteUser_Cascades(t *testing.T) {
	db := testutil.NewDB(t)
	s := NewAccounts(db)
	gone := testutil.CreateUser(t, db, "gone")
	stays := testutil.CreateUser(t, db, "stays")
	gonePost := testutil.CreatePost(t, db, gone, "by gone", nil)
	staysPost := testutil.CreatePost(t, db, stays, "by stays", nil)
	testutil.CreateComment(t, db, stays, gonePost, "on gone's post")
	testutil.CreateComment(t, db, gone, staysPost, "gone's comment")
	testutil.CreateComment(t, db, stays, staysPost, "kept")
	testutil.CreateFollow(t, db, gone, stays)
	testutil.CreateFollow(t, db, stays, gone)

	require.NoError(t, s.DeleteUser(context.Background(), "gone"))

	assert.Equal(t, int64(1), testutil.CountRows(t, db, &models.User{}))
	assert.Equal(t, int64(1), testutil.CountRows(t, db, &models.Post{}))
	assert.Equal(t, int64(1), testutil.CountRows(t, db, &models.Comment{}))
	assert.Equal(t, int64(0), testutil.CountRows(t, db, &models.Follow{}))

	assert.ErrorIs(t, s.DeleteUser(context.Background(), "gone"), ErrNotFound)
}

func TestUsernameFromEmail(t *testing.T) {
	assert.Equal(t, "jane.doe", usernameFromEmail("jane.doe@example.com"))
	assert.Equal(t, "user", usernameFromEmail("@example.com"))
	assert.Equal(t, "ab", usernameFromEmail("a!b@example.com"))
}
