// Package render defines the view-rendering boundary. Handlers depend on the
// Renderer interface only; the HTML implementation and its templates are an
// external collaborator that can be swapped without touching handlers.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

// Renderer renders a named view with the given data.
type Renderer interface {
	Render(w http.ResponseWriter, status int, name string, data any) error
}

// HTML renders views from the embedded template set.
type HTML struct {
	templates *template.Template
}

// NewHTML parses the embedded templates once so each request only executes
// fast template execution.
func NewHTML() (*HTML, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return &HTML{templates: tmpl}, nil
}

// Render executes the named template into a buffer first, so a template
// error never produces a half-written response body.
func (h *HTML) Render(w http.ResponseWriter, status int, name string, data any) error {
	var buf bytes.Buffer
	if err := h.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
