package view

import (
	"bytes"
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"github.com/vidsponential/website/internal/dataapi"
	"github.com/vidsponential/website/internal/textfmt"
)

var errBoom = errors.New("connection refused")

// fakeSource is an in-memory dataapi.Source that records script queries.
type fakeSource struct {
	mu sync.Mutex

	niches   []dataapi.Niche
	articles []dataapi.Article
	scripts  []dataapi.Script
	prompts  []dataapi.Prompt
	sections map[int64][]dataapi.PromptSection

	nichesErr, articlesErr, scriptsErr, promptsErr, sectionsErr error

	scriptQueries []*int64
	articleLimits []int
}

func (f *fakeSource) ListNiches(ctx context.Context) ([]dataapi.Niche, error) {
	if f.nichesErr != nil {
		return nil, f.nichesErr
	}
	return f.niches, nil
}

func (f *fakeSource) ListArticles(ctx context.Context, limit int) ([]dataapi.Article, error) {
	f.mu.Lock()
	f.articleLimits = append(f.articleLimits, limit)
	f.mu.Unlock()
	if f.articlesErr != nil {
		return nil, f.articlesErr
	}
	if limit > 0 && limit < len(f.articles) {
		return f.articles[:limit], nil
	}
	return f.articles, nil
}

func (f *fakeSource) ListScripts(ctx context.Context, nicheID *int64) ([]dataapi.Script, error) {
	f.mu.Lock()
	f.scriptQueries = append(f.scriptQueries, nicheID)
	f.mu.Unlock()
	if f.scriptsErr != nil {
		return nil, f.scriptsErr
	}
	if nicheID == nil {
		return f.scripts, nil
	}
	var out []dataapi.Script
	for _, s := range f.scripts {
		if s.NicheID != nil && *s.NicheID == *nicheID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSource) ListPrompts(ctx context.Context, activeStatus int) ([]dataapi.Prompt, error) {
	if f.promptsErr != nil {
		return nil, f.promptsErr
	}
	var out []dataapi.Prompt
	for _, p := range f.prompts {
		if p.ActiveStatusID == activeStatus {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeSource) ListPromptSections(ctx context.Context, promptID int64) ([]dataapi.PromptSection, error) {
	if f.sectionsErr != nil {
		return nil, f.sectionsErr
	}
	return f.sections[promptID], nil
}

func int64p(v int64) *int64 { return &v }

func ts(s string) dataapi.Timestamp {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return dataapi.Timestamp{Time: t}
}

// newTestController returns a controller over src whose log output is
// captured in the returned buffer.
func newTestController(src dataapi.Source) (*Controller, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := log.New(&buf, "", 0)
	return NewController(src, textfmt.NewRenderer(), logger, DefaultOptions()), &buf
}

func techFixture() *fakeSource {
	return &fakeSource{
		niches: []dataapi.Niche{
			{ID: 1, Slug: "tech", Name: "Tech"},
			{ID: 2, Slug: "travel", Name: "Travel", Description: "Trips and places"},
		},
		scripts: []dataapi.Script{
			{ID: 10, Title: "Gadget Review", NicheID: int64p(1), Niche: &dataapi.NicheRef{Name: "Tech"}, PDFURL: "https://cdn.example/a.pdf"},
			{ID: 11, Title: "City Guide", NicheID: int64p(2), Niche: &dataapi.NicheRef{Name: "Travel"}},
			{ID: 12, Title: "Phone Teardown", NicheID: int64p(1), Niche: &dataapi.NicheRef{Name: "Tech"}, PDFURL: "https://cdn.example/b.pdf"},
		},
	}
}
