package handlers

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/yatube-project/yatube/internal/models"
	"github.com/yatube-project/yatube/internal/services"
	"github.com/yatube-project/yatube/internal/uploads"
	"github.com/yatube-project/yatube/internal/validators"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	blog    *services.Blog
	uploads *uploads.Storage
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(blog *services.Blog, storage *uploads.Storage) *PostHandler {
	return &PostHandler{
		blog:    blog,
		uploads: storage,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group, loginRequired echo.MiddlewareFunc) {
	g.GET("/posts/:id/", WithIdentity(h.GetPost))
	g.GET("/create/", WithIdentity(h.CreatePostForm), loginRequired)
	g.POST("/create/", WithIdentity(h.CreatePost), loginRequired)
	g.GET("/posts/:id/edit/", WithIdentity(h.EditPostForm), loginRequired)
	g.POST("/posts/:id/edit/", WithIdentity(h.UpdatePost), loginRequired)
	g.POST("/posts/:id/delete/", WithIdentity(h.DeletePost), loginRequired)
}

// GetPost shows a post with its comments, newest first.
func (h *PostHandler) GetPost(c echo.Context, viewer *models.User) error {
	id, err := postID(c)
	if err != nil {
		return err
	}
	post, comments, err := h.blog.PostDetail(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.Render(http.StatusOK, "posts/post_detail.html", PostDetailView{
		Post:     post,
		Comments: comments,
		CanEdit:  viewer != nil && viewer.ID == post.AuthorID,
	})
}

// CreatePostForm shows an empty post form.
func (h *PostHandler) CreatePostForm(c echo.Context, _ *models.User) error {
	return h.renderForm(c, http.StatusOK, PostFormView{})
}

// CreatePost stores a post written by the viewer and redirects to their
// profile. Any author in the submission is ignored.
func (h *PostHandler) CreatePost(c echo.Context, viewer *models.User) error {
	form, input, errs, err := h.bindPost(c)
	if err != nil {
		return err
	}
	if len(errs) > 0 {
		return h.renderForm(c, http.StatusOK, PostFormView{Form: form, Errors: errs})
	}
	if _, err := h.blog.CreatePost(c.Request().Context(), viewer, input); err != nil {
		h.discardImage(input.Image)
		return httpError(err)
	}
	return c.Redirect(http.StatusFound, profileURL(viewer.Username))
}

// EditPostForm shows the form filled with the post. Anyone but the author
// is sent back to the post.
func (h *PostHandler) EditPostForm(c echo.Context, viewer *models.User) error {
	post, err := h.ownedPost(c, viewer)
	if err != nil || post == nil {
		return err
	}
	form := models.PostForm{Text: post.Text}
	if post.GroupID != nil {
		form.Group = fmt.Sprint(*post.GroupID)
	}
	return h.renderForm(c, http.StatusOK, PostFormView{Form: form, IsEdit: true, PostID: post.ID})
}

// UpdatePost saves an edited post and redirects to it. Anyone but the
// author is sent back to the post without any change.
func (h *PostHandler) UpdatePost(c echo.Context, viewer *models.User) error {
	post, err := h.ownedPost(c, viewer)
	if err != nil || post == nil {
		return err
	}
	form, input, errs, err := h.bindPost(c)
	if err != nil {
		return err
	}
	if len(errs) > 0 {
		return h.renderForm(c, http.StatusOK, PostFormView{Form: form, Errors: errs, IsEdit: true, PostID: post.ID})
	}
	if _, err := h.blog.EditPost(c.Request().Context(), viewer, post.ID, input); err != nil {
		h.discardImage(input.Image)
		if errors.Is(err, services.ErrNotOwner) {
			return c.Redirect(http.StatusFound, postURL(post.ID))
		}
		return httpError(err)
	}
	return c.Redirect(http.StatusFound, postURL(post.ID))
}

// DeletePost removes a post with its comments and redirects to the
// author's profile. Anyone but the author is sent back to the post.
func (h *PostHandler) DeletePost(c echo.Context, viewer *models.User) error {
	id, err := postID(c)
	if err != nil {
		return err
	}
	if err := h.blog.DeletePost(c.Request().Context(), viewer, id); err != nil {
		if errors.Is(err, services.ErrNotOwner) {
			return c.Redirect(http.StatusFound, postURL(id))
		}
		return httpError(err)
	}
	return c.Redirect(http.StatusFound, profileURL(viewer.Username))
}

// ownedPost loads the post in the path. When the viewer is not its author
// it writes a redirect to the post and returns a nil post.
func (h *PostHandler) ownedPost(c echo.Context, viewer *models.User) (*models.Post, error) {
	id, err := postID(c)
	if err != nil {
		return nil, err
	}
	post, err := h.blog.GetPost(c.Request().Context(), id)
	if err != nil {
		return nil, httpError(err)
	}
	if viewer == nil || post.AuthorID != viewer.ID {
		return nil, c.Redirect(http.StatusFound, postURL(post.ID))
	}
	return post, nil
}

// bindPost binds and validates a submitted post. The image is only stored
// once the rest of the form is valid.
func (h *PostHandler) bindPost(c echo.Context) (models.PostForm, models.PostInput, map[string]string, error) {
	var form models.PostForm
	if err := c.Bind(&form); err != nil {
		return form, models.PostInput{}, nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	form.Text = strings.TrimSpace(form.Text)

	errs := validators.FieldErrors(c.Validate(&form))
	if errs == nil {
		errs = map[string]string{}
	}
	groupID, err := h.blog.ResolveGroup(c.Request().Context(), form.Group)
	if err != nil {
		if !errors.Is(err, services.ErrInvalidGroup) {
			return form, models.PostInput{}, nil, err
		}
		errs["group"] = "Select a valid choice. That choice is not one of the available choices."
	}
	if len(errs) > 0 {
		return form, models.PostInput{}, errs, nil
	}

	input := models.PostInput{Text: form.Text, GroupID: groupID}
	fh, err := c.FormFile("image")
	switch {
	case errors.Is(err, http.ErrMissingFile), errors.Is(err, http.ErrNotMultipart):
	case err != nil:
		return form, input, nil, echo.NewHTTPError(http.StatusBadRequest, "Invalid image upload")
	default:
		image, err := h.uploads.SaveImage(fh)
		switch {
		case errors.Is(err, uploads.ErrNotImage), errors.Is(err, uploads.ErrTooLarge):
			errs["image"] = err.Error()
			return form, input, errs, nil
		case err != nil:
			return form, input, nil, err
		}
		input.Image = image
	}
	return form, input, errs, nil
}

// discardImage removes an image saved for a post that was not stored.
func (h *PostHandler) discardImage(image string) {
	if err := h.uploads.Remove(image); err != nil {
		log.Printf("discard upload %s: %v", image, err)
	}
}

func (h *PostHandler) renderForm(c echo.Context, status int, view PostFormView) error {
	groups, err := h.groups(c.Request().Context())
	if err != nil {
		return err
	}
	view.Groups = groups
	return c.Render(status, "posts/create_post.html", view)
}

func (h *PostHandler) groups(ctx context.Context) ([]models.Group, error) {
	groups, err := h.blog.ListGroups(ctx)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}
