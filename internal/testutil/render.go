package testutil

import (
	"io"
	"sync"

	"github.com/labstack/echo/v4"
)

// Rendered is one call made to a RecordingRenderer.
type Rendered struct {
	Name string
	View any
}

// RecordingRenderer wraps a renderer and remembers what it was asked to
// render so tests can inspect template names and view data.
type RecordingRenderer struct {
	echo.Renderer

	mu    sync.Mutex
	calls []Rendered
}

// NewRecordingRenderer wraps next.
func NewRecordingRenderer(next echo.Renderer) *RecordingRenderer {
	return &RecordingRenderer{Renderer: next}
}

func (r *RecordingRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	r.mu.Lock()
	r.calls = append(r.calls, Rendered{Name: name, View: data})
	r.mu.Unlock()
	return r.Renderer.Render(w, name, data, c)
}

// Last returns the most recent call, or a zero Rendered when there was none.
func (r *RecordingRenderer) Last() Rendered {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return Rendered{}
	}
	return r.calls[len(r.calls)-1]
}

// Reset forgets every recorded call.
func (r *RecordingRenderer) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = nil
}
