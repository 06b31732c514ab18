package middleware

import (
	"context"
	"net/http"
	"strings"

	"firebase.google.com/go/v4/auth"
	"github.com/labstack/echo/v4"
)

const firebaseTokenKey = "firebaseToken"

// TokenVerifier verifies Firebase ID tokens. *auth.Client implements it.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseToken verifies the Firebase ID token sent either as the id_token
// form field or as a Bearer Authorization header, and stores the decoded
// token for FirebaseTokenFrom.
func FirebaseToken(verifier TokenVerifier) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			idToken := c.FormValue("id_token")
			if idToken == "" {
				authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
				tokenParts := strings.Split(authHeader, " ")
				if len(tokenParts) == 2 && strings.ToLower(tokenParts[0]) == "bearer" {
					idToken = tokenParts[1]
				}
			}
			if idToken == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Firebase ID token is missing")
			}

			token, err := verifier.VerifyIDToken(c.Request().Context(), idToken)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired Firebase ID token")
			}
			c.Set(firebaseTokenKey, token)
			return next(c)
		}
	}
}

// FirebaseTokenFrom returns the token verified by FirebaseToken.
func FirebaseTokenFrom(c echo.Context) *auth.Token {
	token, _ := c.Get(firebaseTokenKey).(*auth.Token)
	return token
}
