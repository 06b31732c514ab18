// Package render turns named HTML templates into echo responses.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"path"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/yatube-project/yatube/internal/middleware"
	"github.com/yatube-project/yatube/internal/models"
)

//go:embed templates
var templateFS embed.FS

// Data is what every page template receives.
type Data struct {
	Viewer *models.User
	View   any
}

// Renderer implements echo.Renderer. Each page is parsed together with
// base.html and the shared includes.
type Renderer struct {
	templates map[string]*template.Template
	mediaURL  string
}

// New parses every page under templates/. mediaURL prefixes image paths.
func New(mediaURL string) (*Renderer, error) {
	r := &Renderer{templates: make(map[string]*template.Template), mediaURL: mediaURL}

	shared, err := template.New("base.html").Funcs(r.funcs()).ParseFS(templateFS, "templates/base.html", "templates/includes/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse base templates: %w", err)
	}

	err = fs.WalkDir(templateFS, "templates", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		name := strings.TrimPrefix(p, "templates/")
		if name == "base.html" || strings.HasPrefix(name, "includes/") {
			return nil
		}
		page, err := shared.Clone()
		if err != nil {
			return err
		}
		if _, err := page.ParseFS(templateFS, p); err != nil {
			return fmt.Errorf("parse %s: %w", name, err)
		}
		r.templates[name] = page
		return nil
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// Has reports whether a page named name exists.
func (r *Renderer) Has(name string) bool {
	_, ok := r.templates[name]
	return ok
}

// Render executes the page name with the current user attached.
func (r *Renderer) Render(w io.Writer, name string, view interface{}, c echo.Context) error {
	t, ok := r.templates[name]
	if !ok {
		return fmt.Errorf("template %s not found", name)
	}
	data := Data{View: view}
	if c != nil {
		data.Viewer = middleware.CurrentUser(c)
	}
	return t.ExecuteTemplate(w, "base.html", data)
}

func (r *Renderer) funcs() template.FuncMap {
	return template.FuncMap{
		"media": func(p string) string {
			return path.Join(r.mediaURL, p)
		},
		"date": func(t time.Time) string {
			return t.Format("2 January 2006")
		},
		"linebreaksbr": func(s string) template.HTML {
			return template.HTML(strings.ReplaceAll(template.HTMLEscapeString(s), "\n", "<br>"))
		},
		"truncate": func(n int, s string) string {
			runes := []rune(s)
			if len(runes) <= n {
				return s
			}
			return string(runes[:n]) + "…"
		},
	}
}
