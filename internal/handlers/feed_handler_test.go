package handlers_test

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yatube-project/yatube/internal/handlers"
	"github.com/yatube-project/yatube/internal/testutil"
)

func TestIndex_ListsPostsNewestFirst(t *testing.T) {
	s := newServer(t)
	author := testutil.CreateUser(t, s.db, "author")
	for i := 0; i < 12; i++ {
		testutil.CreatePost(t, s.db, author, fmt.Sprintf("post %d", i), nil)
	}

	rec := s.get("/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	last := s.renderer.Last()
	assert.Equal(t, "posts/index.html", last.Name)
	view := last.View.(handlers.IndexView)
	require.Len(t, view.Page.Items, 10)
	assert.Equal(t, "post 11", view.Page.Items[0].Text)

	rec = s.get("/?page=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	view = s.renderer.Last().View.(handlers.IndexView)
	assert.Len(t, view.Page.Items, 2)
}

func TestIndex_CachedUntilCleared(t *testing.T) {
	s := newServer(t)
	author := testutil.CreateUser(t, s.db, "author")
	testutil.CreatePost(t, s.db, author, "first post", nil)

	first := s.get("/", nil)
	require.Equal(t, http.StatusOK, first.Code)
	assert.Contains(t, first.Body.String(), "first post")

	testutil.CreatePost(t, s.db, author, "second post", nil)
	second := s.get("/", nil)
	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))

	profile := s.get("/profile/author/", nil)
	assert.Contains(t, profile.Body.String(), "second post", "other feeds are not cached")

	require.NoError(t, s.store.Clear(context.Background()))
	third := s.get("/", nil)
	assert.Contains(t, third.Body.String(), "second post")
}

func TestIndex_CacheIsPerViewer(t *testing.T) {
	s := newServer(t)
	author := testutil.CreateUser(t, s.db, "author")
	testutil.CreatePost(t, s.db, author, "first post", nil)

	anon := s.get("/", nil)
	require.Equal(t, http.StatusOK, anon.Code)
	assert.NotContains(t, anon.Body.String(), `href="/auth/logout/"`)

	own := s.get("/", author)
	require.Equal(t, http.StatusOK, own.Code)
	assert.Empty(t, own.Header().Get("X-Cache"))
	assert.Contains(t, own.Body.String(), `href="/auth/logout/"`)

	again := s.get("/", nil)
	assert.Equal(t, "HIT", again.Header().Get("X-Cache"))
	assert.NotContains(t, again.Body.String(), `href="/auth/logout/"`)

	ownAgain := s.get("/", author)
	assert.Equal(t, "HIT", ownAgain.Header().Get("X-Cache"))
	assert.Equal(t, own.Body.String(), ownAgain.Body.String())
}

func TestGroupPosts(t *testing.T) {
	s := newServer(t)
	author := testutil.CreateUser(t, s.db, "author")
	group := testutil.CreateGroup(t, s.db, "Group", "slug")
	post := testutil.CreatePost(t, s.db, author, "Post", group)
	testutil.CreatePost(t, s.db, author, "Elsewhere", nil)

	rec := s.get("/group/slug/", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	last := s.renderer.Last()
	assert.Equal(t, "posts/group_list.html", last.Name)
	view := last.View.(handlers.GroupView)
	assert.Equal(t, "Group", view.Group.Title)
	require.Len(t, view.Page.Items, 1)
	assert.Equal(t, post.ID, view.Page.Items[0].ID)
	assert.Equal(t, "Post", view.Page.Items[0].Text)
	assert.Equal(t, author.ID, view.Page.Items[0].AuthorID)

	rec = s.get("/group/unknown-slug/", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "core/404.html", s.renderer.Last().Name)
}

func TestGroupPosts_RedirectsToTrailingSlash(t *testing.T) {
	s := newServer(t)
	testutil.CreateGroup(t, s.db, "Group", "slug")

	rec := s.get("/group/slug", nil)
	assert.Equal(t, http.StatusMovedPermanently, rec.Code)
	assert.Equal(t, "/group/slug/", rec.Header().Get(echo.HeaderLocation))
}

func TestFollowIndex(t *testing.T) {
	s := newServer(t)
	reader := testutil.CreateUser(t, s.db, "reader")
	followed := testutil.CreateUser(t, s.db, "followed")
	stranger := testutil.CreateUser(t, s.db, "stranger")
	testutil.CreatePost(t, s.db, followed, "followed post", nil)
	testutil.CreatePost(t, s.db, stranger, "stranger post", nil)
	testutil.CreateFollow(t, s.db, reader, followed)

	rec := s.get("/follow/", reader)
	require.Equal(t, http.StatusOK, rec.Code)
	last := s.renderer.Last()
	assert.Equal(t, "posts/follow.html", last.Name)
	view := last.View.(handlers.FollowView)
	require.Len(t, view.Page.Items, 1)
	assert.Equal(t, "followed post", view.Page.Items[0].Text)
	require.Len(t, view.Authors, 1)
	assert.Equal(t, "followed", view.Authors[0].Username)
	assert.Contains(t, rec.Body.String(), `href="/profile/followed/"`)

	rec = s.get("/follow/", stranger)
	require.Equal(t, http.StatusOK, rec.Code)
	view = s.renderer.Last().View.(handlers.FollowView)
	assert.Empty(t, view.Page.Items)
	assert.Empty(t, view.Authors)
	assert.Contains(t, rec.Body.String(), "You do not follow anyone yet.")

	silent := testutil.CreateUser(t, s.db, "silent")
	testutil.CreateFollow(t, s.db, stranger, silent)
	rec = s.get("/follow/", stranger)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Your authors have not posted anything yet.")
}

func TestNotFoundPage(t *testing.T) {
	s := newServer(t)

	rec := s.get("/unknown/page/", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "core/404.html", s.renderer.Last().Name)
	assert.Contains(t, rec.Body.String(), "/unknown/page/")
}

func TestStaticPages(t *testing.T) {
	s := newServer(t)

	for path, template := range map[string]string{
		"/about/author/": "about/author.html",
		"/about/tech/":   "about/tech.html",
	} {
		rec := s.get(path, nil)
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Equal(t, template, s.renderer.Last().Name)
	}

	rec := s.get("/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "healthy")
}
