package web

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/vidsponential/website/internal/dataapi"
	"github.com/vidsponential/website/internal/textfmt"
	"github.com/vidsponential/website/internal/view"
)

const testAPIKey = "sb-secret-test-key"

// fakeAPI is a minimal PostgREST stand-in serving fixed tables.
type fakeAPI struct {
	mu sync.Mutex

	niches   []dataapi.Niche
	articles []dataapi.Article
	scripts  []dataapi.Script
	prompts  []dataapi.Prompt
	sections map[int64][]dataapi.PromptSection

	failing       map[string]bool
	scriptFilters []string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	table := strings.TrimPrefix(r.URL.Path, "/rest/v1/")
	if f.failing[table] {
		http.Error(w, `{"message":"upstream unavailable"}`, http.StatusServiceUnavailable)
		return
	}
	q := r.URL.Query()

	var out any
	switch table {
	case "website_niches":
		out = f.niches
	case "website_articles":
		out = f.articles
	case "website_scripts":
		filter := q.Get("website_script_niche_id")
		f.scriptFilters = append(f.scriptFilters, filter)
		if filter == "" {
			out = f.scripts
			break
		}
		id, _ := strconv.ParseInt(strings.TrimPrefix(filter, "eq."), 10, 64)
		matched := []dataapi.Script{}
		for _, s := range f.scripts {
			if s.NicheID != nil && *s.NicheID == id {
				matched = append(matched, s)
			}
		}
		out = matched
	case "prompts":
		out = f.prompts
	case "prompt_sections":
		id, _ := strconv.ParseInt(strings.TrimPrefix(q.Get("prompt_id"), "eq."), 10, 64)
		out = f.sections[id]
	default:
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(out)
}

func (f *fakeAPI) fail(table string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failing == nil {
		f.failing = make(map[string]bool)
	}
	f.failing[table] = true
}

func (f *fakeAPI) filters() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.scriptFilters...)
}

func int64p(v int64) *int64 { return &v }

func newFixtureAPI() *fakeAPI {
	created := dataapi.Timestamp{Time: time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)}
	return &fakeAPI{
		niches: []dataapi.Niche{
			{ID: 1, Slug: "tech", Name: "Tech"},
			{ID: 2, Slug: "travel", Name: "Travel", Description: "Trips and places"},
		},
		articles: []dataapi.Article{
			{ID: 7, Title: "Hooks That Work", Content: "Open with **tension**.", CreatedAt: created,
				Category: &dataapi.ArticleCategory{Name: "Craft"}},
			{ID: 8, Title: "Pacing", Excerpt: "Keep it moving", CreatedAt: created},
		},
		scripts: []dataapi.Script{
			{ID: 10, Title: "Gadget Review", Description: "Unboxing and verdict", NicheID: int64p(1), Niche: &dataapi.NicheRef{Name: "Tech"}, PDFURL: "https://cdn.example/a.pdf"},
			{ID: 11, Title: "City Guide", NicheID: int64p(2), Niche: &dataapi.NicheRef{Name: "Travel"}},
			{ID: 12, Title: "Phone Teardown", NicheID: int64p(1), Niche: &dataapi.NicheRef{Name: "Tech"}, PDFURL: "https://cdn.example/b.pdf"},
		},
		prompts: []dataapi.Prompt{
			{ID: 4, Title: "Explainer", ActiveStatusID: 1},
			{ID: 5, ActiveStatusID: 1},
		},
		sections: map[int64][]dataapi.PromptSection{
			4: {{ID: 1, PromptID: 4, OrderNumber: 1, Title: "Hook", Content: "Open strong"}},
		},
	}
}

type testSite struct {
	api     *fakeAPI
	site    *Site
	handler http.Handler
	logs    *bytes.Buffer
	cache   *dataapi.CachedSource
}

func newTestSite(t *testing.T, api *fakeAPI) *testSite {
	t.Helper()
	srv := httptest.NewServer(api)
	t.Cleanup(srv.Close)

	var logs bytes.Buffer
	logger := log.New(&logs, "", 0)

	client := dataapi.NewClient(srv.URL, testAPIKey)
	cache := dataapi.NewCachedSource(client, 0)
	ctrl := view.NewController(cache, textfmt.NewRenderer(), logger, view.DefaultOptions())

	site, err := New(ctrl, Options{SiteName: "Vidsponential", Logger: logger, Cache: cache})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return &testSite{api: api, site: site, handler: site.Handler(), logs: &logs, cache: cache}
}

func (ts *testSite) do(t *testing.T, method, target string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, req)
	return w
}

func (ts *testSite) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	return ts.do(t, http.MethodGet, target, nil)
}
