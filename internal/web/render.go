package web

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"time"
)

var pageTemplates = []string{"home.html", "blog.html", "portfolio.html", "prompts.html"}

// renderer holds the shared partials and one parsed template per page.
type renderer struct {
	base  *template.Template
	pages map[string]*template.Template
}

// PageData contains common data for all pages.
type PageData struct {
	Title    string
	SiteName string
	Page     string
	Year     int
	Data     any
}

// newRenderer parses the base layout and partials, then clones them once
// per page so each page's "content" block stays separate.
func newRenderer(fsys fs.FS) (*renderer, error) {
	base, err := template.New("base").ParseFS(fsys, "templates/base.html", "templates/partials.html")
	if err != nil {
		return nil, fmt.Errorf("parse base templates: %w", err)
	}

	r := &renderer{base: base, pages: make(map[string]*template.Template, len(pageTemplates))}
	for _, name := range pageTemplates {
		tmpl, err := base.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone template: %w", err)
		}
		if _, err := tmpl.ParseFS(fsys, "templates/"+name); err != nil {
			return nil, fmt.Errorf("parse page template %s: %w", name, err)
		}
		r.pages[name] = tmpl
	}
	return r, nil
}

// page renders a full page into a buffer so failures can still produce a
// clean error response.
func (r *renderer) page(name string, data PageData) (*bytes.Buffer, error) {
	tmpl, ok := r.pages[name]
	if !ok {
		return nil, fmt.Errorf("unknown page template %s", name)
	}
	if data.Year == 0 {
		data.Year = time.Now().Year()
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	return &buf, nil
}

// fragment renders a named partial with no layout.
func (r *renderer) fragment(name string, data any) (*bytes.Buffer, error) {
	var buf bytes.Buffer
	if err := r.base.ExecuteTemplate(&buf, name, data); err != nil {
		return nil, fmt.Errorf("render fragment %s: %w", name, err)
	}
	return &buf, nil
}

func writeHTML(w http.ResponseWriter, status int, buf *bytes.Buffer) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
