// Package ui renders the Nexus landing page: header, hero, features,
// roadmap generator, results view and the sign-in modal. Components are
// plain values whose methods compute labels, links and CSS classes; the
// markup lives in embedded html/template files.
package ui

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"strconv"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

type Renderer struct {
	tmpl *template.Template
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	tmpl, err := template.New("layout.html").Funcs(template.FuncMap{
		"inc": func(i int) int { return i + 1 },
	}).ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("in internal/ui/renderer.go/New(): error while `ParseFS()` calling: %w", err)
	}

	return &Renderer{tmpl: tmpl}, nil
}

// Render writes page with the given status. Nothing is written if the
// template fails.
func (r *Renderer) Render(w http.ResponseWriter, status int, page *Page) error {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, "layout.html", page); err != nil {
		return fmt.Errorf("in internal/ui/renderer.go/Render(): error while `ExecuteTemplate()` calling: %w", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)

	return err
}

// StaticHandler serves the embedded assets. Mount it under /static/.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}

	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
