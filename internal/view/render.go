package view

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"bella-vista/internal/logger"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer renders the embedded HTML templates.
type Renderer struct {
	templates *template.Template
	logger    *logger.Logger
}

// New parses the embedded templates.
func New(log *logger.Logger) (*Renderer, error) {
	tmpl, err := template.ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{templates: tmpl, logger: log}, nil
}

// Render writes the named template with data.
func (r *Renderer) Render(w http.ResponseWriter, name string, data interface{}) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		r.logger.Error("render_failed", "", fmt.Sprintf("Failed to render %s", name), err, nil)
	}
}

// RenderError writes the error page with the given status code.
func (r *Renderer) RenderError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := r.templates.ExecuteTemplate(w, "error.html", map[string]interface{}{
		"Status":  status,
		"Message": message,
	}); err != nil {
		r.logger.Error("render_failed", "", "Failed to render error page", err, nil)
	}
}
