package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/yatube-project/yatube/internal/middleware"
	"github.com/yatube-project/yatube/internal/models"
	"github.com/yatube-project/yatube/internal/services"
	"github.com/yatube-project/yatube/internal/validators"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	accounts *services.Accounts
	sessions *middleware.Sessions
	firebase middleware.TokenVerifier
}

// NewAuthHandler creates a new AuthHandler. firebase may be nil, in which
// case Firebase login is not offered.
func NewAuthHandler(accounts *services.Accounts, sessions *middleware.Sessions, firebase middleware.TokenVerifier) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		sessions: sessions,
		firebase: firebase,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.GET("/signup/", h.SignupForm)
	g.POST("/signup/", h.Signup)
	g.GET("/login/", h.LoginForm)
	g.POST("/login/", h.Login)
	g.GET("/logout/", h.Logout)
	g.POST("/logout/", h.Logout)
	g.GET("/password_reset/", h.PasswordResetForm)
	g.POST("/password_reset/", h.PasswordReset)
	if h.firebase != nil {
		g.POST("/firebase/", h.FirebaseLogin, middleware.FirebaseToken(h.firebase))
	}
}

// SignupForm shows the registration page.
func (h *AuthHandler) SignupForm(c echo.Context) error {
	return c.Render(http.StatusOK, "users/signup.html", SignupView{})
}

// Signup registers a user, logs them in and redirects to the index.
func (h *AuthHandler) Signup(c echo.Context) error {
	var form models.SignupForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusOK, "users/signup.html", SignupView{Form: form, Errors: validators.FieldErrors(err)})
	}

	user, err := h.accounts.Register(c.Request().Context(), form)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			return c.Render(http.StatusOK, "users/signup.html", SignupView{
				Form:   form,
				Errors: map[string]string{"username": err.Error()},
			})
		}
		return err
	}
	if err := h.sessions.Issue(c, user); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/")
}

// LoginForm shows the login page, keeping the next parameter.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return c.Render(http.StatusOK, "users/login.html", LoginView{
		Form:            models.LoginForm{Next: c.QueryParam("next")},
		FirebaseEnabled: h.firebase != nil,
	})
}

// Login starts a session and redirects to next when it is a local path,
// or to the index otherwise.
func (h *AuthHandler) Login(c echo.Context) error {
	var form models.LoginForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	view := LoginView{Form: form, FirebaseEnabled: h.firebase != nil}
	view.Form.Password = ""
	if err := c.Validate(&form); err != nil {
		view.Errors = validators.FieldErrors(err)
		return c.Render(http.StatusOK, "users/login.html", view)
	}

	user, err := h.accounts.Authenticate(c.Request().Context(), form.Username, form.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			view.Errors = map[string]string{"__all__": "Please enter a correct username and password. Note that both fields may be case-sensitive."}
			return c.Render(http.StatusOK, "users/login.html", view)
		}
		return err
	}
	if err := h.sessions.Issue(c, user); err != nil {
		return err
	}
	next := "/"
	if middleware.SafeNext(form.Next) {
		next = form.Next
	}
	return c.Redirect(http.StatusFound, next)
}

// Logout ends the session.
func (h *AuthHandler) Logout(c echo.Context) error {
	h.sessions.Clear(c)
	middleware.SetCurrentUser(c, nil)
	return c.Render(http.StatusOK, "users/logged_out.html", nil)
}

// PasswordResetForm shows the password reset page.
func (h *AuthHandler) PasswordResetForm(c echo.Context) error {
	return c.Render(http.StatusOK, "users/password_reset_form.html", PasswordResetView{})
}

// PasswordReset accepts a reset request. The same confirmation is shown
// whether or not the address belongs to an account.
func (h *AuthHandler) PasswordReset(c echo.Context) error {
	var form models.PasswordResetForm
	if err := c.Bind(&form); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&form); err != nil {
		return c.Render(http.StatusOK, "users/password_reset_form.html", PasswordResetView{
			Form:   form,
			Errors: validators.FieldErrors(err),
		})
	}
	return c.Render(http.StatusOK, "users/password_reset_done.html", nil)
}

// FirebaseLogin exchanges a verified Firebase ID token for a session,
// creating the local user on first login.
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	token := middleware.FirebaseTokenFrom(c)
	if token == nil {
		return echo.ErrUnauthorized
	}
	email, _ := token.Claims["email"].(string)
	name, _ := token.Claims["name"].(string)

	user, err := h.accounts.LinkFirebaseUser(c.Request().Context(), token.UID, email, name)
	if err != nil {
		return err
	}
	if err := h.sessions.Issue(c, user); err != nil {
		return err
	}
	return c.Redirect(http.StatusFound, "/")
}
