// Package views holds the HTML pages of both applications, embedded in the binary.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"
	"time"
)

//go:embed templates
var files embed.FS

// App names a template directory under templates/.
type App string

const (
	Blog      App = "blog"
	BookNotes App = "booknotes"
)

var funcs = template.FuncMap{
	"formatTime": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("Jan 2, 2006 15:04")
	},
}

// Renderer executes one page template wrapped in the shared layout.
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page of app. Each page gets its own template set so that
// all pages can define the same "content" block.
func New(app App) (*Renderer, error) {
	pattern := path.Join("templates", string(app), "*.html")
	matches, err := fs.Glob(files, pattern)
	if err != nil {
		return nil, fmt.Errorf("glob %s: %w", pattern, err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no templates for app %q", app)
	}

	r := &Renderer{pages: make(map[string]*template.Template, len(matches))}
	for _, page := range matches {
		name := strings.TrimSuffix(path.Base(page), ".html")
		tpl, err := template.New(name).Funcs(funcs).ParseFS(files, "templates/layout.html", page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		r.pages[name] = tpl
	}
	return r, nil
}

// MustNew is New for program start-up and tests.
func MustNew(app App) *Renderer {
	r, err := New(app)
	if err != nil {
		panic(err)
	}
	return r
}

// Render executes page into a buffer so a template error never leaves a half written response.
func (r *Renderer) Render(page string, data any) ([]byte, error) {
	tpl, ok := r.pages[page]
	if !ok {
		return nil, fmt.Errorf("unknown page %q", page)
	}

	var buf bytes.Buffer
	if err := tpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		return nil, fmt.Errorf("render %s: %w", page, err)
	}
	return buf.Bytes(), nil
}
