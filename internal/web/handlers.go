package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/vidsponential/website/internal/dataapi"
)

func (s *Site) handleHome(w http.ResponseWriter, r *http.Request) {
	page := s.ctrl.Home(r.Context())
	s.writePage(w, http.StatusOK, "home.html", PageData{Page: "home", Data: page})
}

func (s *Site) handleBlog(w http.ResponseWriter, r *http.Request) {
	page := s.ctrl.Blog(r.Context(), queryID(r, "article"))
	s.writePage(w, http.StatusOK, "blog.html", PageData{Title: "Blog", Page: "blog", Data: page})
}

func (s *Site) handleArticle(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	detail, err := s.ctrl.Article(r.Context(), id)
	if err != nil {
		s.lookupError(w, r, err)
		return
	}
	s.writeFragment(w, http.StatusOK, "article-modal-body", detail)
}

func (s *Site) handlePortfolio(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get("niche")
	if slug == "" {
		slug = chi.URLParam(r, "slug")
	}
	page := s.ctrl.Portfolio(r.Context(), slug, queryID(r, "pdf"))
	s.writePage(w, http.StatusOK, "portfolio.html", PageData{Title: "Portfolio", Page: "portfolio", Data: page})
}

// handleFilter serves the filter bar and script grid for an in-place
// filter switch, with the new address-bar URL in X-Push-Url. It answers
// 204 when the switch is a no-op because niches are unavailable.
func (s *Site) handleFilter(w http.ResponseWriter, r *http.Request) {
	page, ok := s.ctrl.FilterScripts(r.Context(), r.URL.Query().Get("niche"))
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	current := currentPortfolioURL(r.Header.Get("X-Current-Url"))
	w.Header().Set("X-Push-Url", FilterURL(current, page.Filter.Current()))
	w.Header().Set("Vary", "X-Current-Url")
	s.writeFragment(w, http.StatusOK, "portfolio-results", page)
}

func (s *Site) handlePDF(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	modal, err := s.ctrl.PDF(r.Context(), id)
	if err != nil {
		s.lookupError(w, r, err)
		return
	}
	s.writeFragment(w, http.StatusOK, "pdf-modal-body", modal)
}

func (s *Site) handlePrompts(w http.ResponseWriter, r *http.Request) {
	page := s.ctrl.Prompts(r.Context(), queryID(r, "prompt"))
	s.writePage(w, http.StatusOK, "prompts.html", PageData{Title: "Prompt Editor", Page: "prompts", Data: page})
}

// handleSavePrompt acknowledges a save and schedules the move to the next
// template with a Refresh header. In demo mode there is nothing to advance
// to and the page is rendered without one.
func (s *Site) handleSavePrompt(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		http.NotFound(w, r)
		return
	}
	page, err := s.ctrl.SavePrompt(r.Context(), id)
	if errors.Is(err, dataapi.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	if page.Selected != nil {
		delay := int(math.Ceil(s.ctrl.Options().SaveDelay.Seconds()))
		w.Header().Set("Refresh", fmt.Sprintf("%d; url=/prompts/?prompt=%d", delay, page.NextID))
	}
	s.writePage(w, http.StatusOK, "prompts.html", PageData{Title: "Prompt Editor", Page: "prompts", Data: page})
}

func (s *Site) handleInvalidate(w http.ResponseWriter, r *http.Request) {
	n := s.cache.Len()
	s.cache.Invalidate()
	s.logger.Printf("cache: invalidated %d cached collections on request", n)
	writeJSON(w, http.StatusOK, map[string]any{"status": "ok", "dropped": n})
}

func (s *Site) writePage(w http.ResponseWriter, status int, name string, data PageData) {
	data.SiteName = s.name
	buf, err := s.render.page(name, data)
	if err != nil {
		s.logger.Printf("Error rendering %s: %v", name, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, status, buf)
}

func (s *Site) writeFragment(w http.ResponseWriter, status int, name string, data any) {
	buf, err := s.render.fragment(name, data)
	if err != nil {
		s.logger.Printf("Error rendering %s: %v", name, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeHTML(w, status, buf)
}

// lookupError maps a fragment lookup failure to a status: unknown ids are
// 404, data API failures 502.
func (s *Site) lookupError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, dataapi.ErrNotFound) {
		http.NotFound(w, r)
		return
	}
	s.logger.Printf("Error serving %s: %v", r.URL.Path, err)
	http.Error(w, "Bad Gateway", http.StatusBadGateway)
}

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// queryID returns the positive integer query parameter name, or 0.
func queryID(r *http.Request, name string) int64 {
	id, err := strconv.ParseInt(r.URL.Query().Get(name), 10, 64)
	if err != nil || id < 0 {
		return 0
	}
	return id
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
