package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RegisterAboutRoutes registers the static about pages.
func RegisterAboutRoutes(g *echo.Group) {
	g.GET("/about/author/", staticPage("about/author.html"))
	g.GET("/about/tech/", staticPage("about/tech.html"))
}

func staticPage(name string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return c.Render(http.StatusOK, name, nil)
	}
}
