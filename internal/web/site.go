// Package web serves the site pages, the fragments behind in-place filter
// and modal updates, and the embedded CSS and script.
package web

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/vidsponential/website/internal/view"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// StaticFS returns the embedded static assets rooted at the static
// directory.
func StaticFS() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

// Invalidator drops cached data API collections.
type Invalidator interface {
	Invalidate()
	Len() int
}

// invalidationNotifier is implemented by caches that report invalidation.
type invalidationNotifier interface {
	OnInvalidate(fn func())
}

// Options configures a Site.
type Options struct {
	SiteName string
	Logger   *log.Logger
	// Cache, when set, is exposed through POST /api/cache/invalidate.
	// Connected portfolio pages are told to refresh after every
	// invalidation when the cache reports them.
	Cache Invalidator
}

// Site renders pages from a view controller.
type Site struct {
	ctrl    *view.Controller
	name    string
	logger  *log.Logger
	cache   Invalidator
	render  *renderer
	updates *updateHub
}

// New parses the embedded templates and creates a Site.
func New(ctrl *view.Controller, opts Options) (*Site, error) {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.SiteName == "" {
		opts.SiteName = "Vidsponential"
	}
	r, err := newRenderer(templatesFS)
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}
	s := &Site{
		ctrl:    ctrl,
		name:    opts.SiteName,
		logger:  opts.Logger,
		cache:   opts.Cache,
		render:  r,
		updates: newUpdateHub(opts.Logger),
	}
	if n, ok := opts.Cache.(invalidationNotifier); ok {
		n.OnInvalidate(func() { s.NotifyContentUpdated() })
	}
	return s, nil
}

// NotifyContentUpdated tells every connected page that cached content was
// dropped. It returns the number of pages notified.
func (s *Site) NotifyContentUpdated() int {
	return s.updates.broadcast(updateMessage{Type: "content-updated"})
}

// Close disconnects every live-update connection.
func (s *Site) Close() {
	s.updates.closeAll()
}

// RegisterRoutes mounts the pages, fragments and static assets.
func (s *Site) RegisterRoutes(r chi.Router) {
	r.Get("/", s.handleHome)

	r.Get("/blog", redirectTo("/blog/"))
	r.Get("/blog/", s.handleBlog)
	r.Get("/blog/articles/{id}", s.handleArticle)

	r.Get("/portfolio", redirectTo("/portfolio/"))
	r.Get("/portfolio/", s.handlePortfolio)
	r.Get("/portfolio/scripts", s.handleFilter)
	r.Get("/portfolio/scripts/{id}/pdf", s.handlePDF)
	r.Get("/portfolio/{slug}/", s.handlePortfolio)

	r.Get("/prompts", redirectTo("/prompts/"))
	r.Get("/prompts/", s.handlePrompts)
	r.Post("/prompts/{id}/save", s.handleSavePrompt)

	if s.cache != nil {
		r.Post("/api/cache/invalidate", s.handleInvalidate)
	}
	r.Get("/ws/updates", s.updates.handle)

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(StaticFS()))))
}

// Handler returns a router serving only the site routes.
func (s *Site) Handler() http.Handler {
	r := chi.NewRouter()
	s.RegisterRoutes(r)
	return r
}

// ExportPaths lists every page a static export renders: the four pages and
// one pre-filtered portfolio page per niche.
func (s *Site) ExportPaths(ctx context.Context) []string {
	paths := []string{"/", "/blog/", "/portfolio/", "/prompts/"}
	slugs, err := s.ctrl.NicheSlugs(ctx)
	if err != nil {
		s.logger.Printf("Error loading niches for export: %v", err)
		return paths
	}
	for _, slug := range slugs {
		paths = append(paths, portfolioPath(slug))
	}
	return paths
}

func redirectTo(target string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dest := target
		if r.URL.RawQuery != "" {
			dest += "?" + r.URL.RawQuery
		}
		http.Redirect(w, r, dest, http.StatusMovedPermanently)
	}
}
