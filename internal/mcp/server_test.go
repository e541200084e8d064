package mcp

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/vidsponential/website/internal/dataapi"
)

// mockSource implements dataapi.Source for testing.
type mockSource struct {
	niches   []dataapi.Niche
	articles []dataapi.Article
	scripts  []dataapi.Script
	prompts  []dataapi.Prompt
	sections map[int64][]dataapi.PromptSection
	err      error

	lastNicheID  *int64
	lastLimit    int
	lastStatus   int
	scriptsCalls int
}

func (m *mockSource) ListNiches(_ context.Context) ([]dataapi.Niche, error) {
	return m.niches, m.err
}

func (m *mockSource) ListArticles(_ context.Context, limit int) ([]dataapi.Article, error) {
	m.lastLimit = limit
	if limit > 0 && limit < len(m.articles) {
		return m.articles[:limit], m.err
	}
	return m.articles, m.err
}

func (m *mockSource) ListScripts(_ context.Context, nicheID *int64) ([]dataapi.Script, error) {
	m.scriptsCalls++
	m.lastNicheID = nicheID
	if nicheID == nil {
		return m.scripts, m.err
	}
	var out []dataapi.Script
	for _, s := range m.scripts {
		if s.NicheID != nil && *s.NicheID == *nicheID {
			out = append(out, s)
		}
	}
	return out, m.err
}

func (m *mockSource) ListPrompts(_ context.Context, activeStatus int) ([]dataapi.Prompt, error) {
	m.lastStatus = activeStatus
	return m.prompts, m.err
}

func (m *mockSource) ListPromptSections(_ context.Context, promptID int64) ([]dataapi.PromptSection, error) {
	return m.sections[promptID], m.err
}

func int64p(v int64) *int64 { return &v }

func fixtureSource() *mockSource {
	return &mockSource{
		niches: []dataapi.Niche{
			{ID: 1, Name: "Tech", Slug: "tech", Description: "Gadgets and software"},
			{ID: 2, Name: "Finance", Slug: "finance"},
		},
		articles: []dataapi.Article{
			{
				ID:        10,
				Title:     "Hooks that work",
				Excerpt:   "Open strong.",
				Content:   "## Hooks\n\nOpen strong and keep going.",
				CreatedAt: dataapi.Timestamp{Time: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC)},
				Category:  &dataapi.ArticleCategory{ID: 1, Name: "Writing"},
			},
			{ID: 11, Title: "Untitled draft"},
		},
		scripts: []dataapi.Script{
			{ID: 1, Title: "Phone review", NicheID: int64p(1), PDFURL: "https://cdn.example/1.pdf", Niche: &dataapi.NicheRef{Name: "Tech"}},
			{ID: 2, Title: "Index funds", NicheID: int64p(2)},
		},
		prompts: []dataapi.Prompt{
			{ID: 7, Title: "Long-form", ActiveStatusID: 1},
			{ID: 8, ActiveStatusID: 1},
		},
		sections: map[int64][]dataapi.PromptSection{
			7: {
				{ID: 1, PromptID: 7, OrderNumber: 1, Title: "Hook", Content: "Write a hook."},
				{ID: 2, PromptID: 7, OrderNumber: 2, Content: "Write the body."},
			},
		},
	}
}

// extractText gets the text content from a CallToolResult.
func extractText(result *mcp.CallToolResult) string {
	if result == nil || len(result.Content) == 0 {
		return ""
	}
	for _, c := range result.Content {
		if tc, ok := c.(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) *mcp.CallToolResult {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args
	result, err := handler(t.Context(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return result
}

func TestToolDefinitions(t *testing.T) {
	tests := []struct {
		name     string
		tool     mcp.Tool
		wantName string
	}{
		{"list_niches", listNichesTool, "list_niches"},
		{"list_articles", listArticlesTool, "list_articles"},
		{"get_article", getArticleTool, "get_article"},
		{"list_scripts", listScriptsTool, "list_scripts"},
		{"get_prompt", getPromptTool, "get_prompt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.tool.Name != tt.wantName {
				t.Errorf("tool name = %q, want %q", tt.tool.Name, tt.wantName)
			}
			if tt.tool.Description == "" {
				t.Error("tool description should not be empty")
			}
		})
	}
}

func TestNewServerDefaults(t *testing.T) {
	srv := NewServer(&mockSource{}, Options{})
	if srv.mcp == nil {
		t.Fatal("MCP server not initialized")
	}
	if srv.opts.ExcerptLen != 150 || srv.opts.ActiveStatus != 1 {
		t.Errorf("defaults not applied: %+v", srv.opts)
	}
}

func TestHandleListNiches(t *testing.T) {
	srv := NewServer(fixtureSource(), Options{})

	text := extractText(callTool(t, srv.handleListNiches, nil))
	if !strings.Contains(text, "Found 2 niche(s)") {
		t.Errorf("missing count: %q", text)
	}
	if !strings.Contains(text, "Tech (slug: tech): Gadgets and software") {
		t.Errorf("missing tech niche: %q", text)
	}

	t.Run("empty", func(t *testing.T) {
		empty := NewServer(&mockSource{}, Options{})
		text := extractText(callTool(t, empty.handleListNiches, nil))
		if !strings.Contains(text, "No niches") {
			t.Errorf("got %q", text)
		}
	})

	t.Run("error", func(t *testing.T) {
		failing := NewServer(&mockSource{err: errors.New("boom")}, Options{})
		result := callTool(t, failing.handleListNiches, nil)
		if !result.IsError {
			t.Error("expected tool error")
		}
	})
}

func TestHandleListArticles(t *testing.T) {
	src := fixtureSource()
	srv := NewServer(src, Options{ExcerptLen: 5})

	text := extractText(callTool(t, srv.handleListArticles, map[string]any{"limit": 1}))
	if src.lastLimit != 1 {
		t.Errorf("limit = %d, want 1", src.lastLimit)
	}
	if !strings.Contains(text, "Found 1 article(s)") {
		t.Errorf("missing count: %q", text)
	}
	if !strings.Contains(text, "Category: Writing") || !strings.Contains(text, "January 5, 2025") {
		t.Errorf("missing metadata: %q", text)
	}
	if !strings.Contains(text, "Open …") {
		t.Errorf("excerpt not truncated: %q", text)
	}
}

func TestHandleGetArticle(t *testing.T) {
	srv := NewServer(fixtureSource(), Options{})

	t.Run("found", func(t *testing.T) {
		result := callTool(t, srv.handleGetArticle, map[string]any{"id": 10})
		if result.IsError {
			t.Fatalf("unexpected tool error: %v", result.Content)
		}
		text := extractText(result)
		if !strings.HasPrefix(text, "# Hooks that work") {
			t.Errorf("missing title: %q", text)
		}
		if !strings.Contains(text, "Open strong and keep going.") {
			t.Errorf("missing content: %q", text)
		}
	})

	t.Run("no content", func(t *testing.T) {
		text := extractText(callTool(t, srv.handleGetArticle, map[string]any{"id": 11}))
		if !strings.Contains(text, "Content not available.") {
			t.Errorf("got %q", text)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		if !callTool(t, srv.handleGetArticle, map[string]any{"id": 99}).IsError {
			t.Error("expected tool error")
		}
	})

	t.Run("missing id", func(t *testing.T) {
		if !callTool(t, srv.handleGetArticle, map[string]any{}).IsError {
			t.Error("expected tool error")
		}
	})
}

func TestHandleListScripts(t *testing.T) {
	tests := []struct {
		name      string
		args      map[string]any
		wantNiche *int64
		wantCount string
	}{
		{"all by default", nil, nil, "Found 2 script(s)"},
		{"explicit all", map[string]any{"niche": "all"}, nil, "Found 2 script(s)"},
		{"one niche", map[string]any{"niche": "tech"}, int64p(1), "Found 1 script(s)"},
		{"unknown slug lists all", map[string]any{"niche": "cooking"}, nil, "Found 2 script(s)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := fixtureSource()
			srv := NewServer(src, Options{})
			text := extractText(callTool(t, srv.handleListScripts, tt.args))

			switch {
			case tt.wantNiche == nil && src.lastNicheID != nil:
				t.Errorf("niche id = %d, want nil", *src.lastNicheID)
			case tt.wantNiche != nil && (src.lastNicheID == nil || *src.lastNicheID != *tt.wantNiche):
				t.Errorf("niche id = %v, want %d", src.lastNicheID, *tt.wantNiche)
			}
			if !strings.Contains(text, tt.wantCount) {
				t.Errorf("got %q, want %q", text, tt.wantCount)
			}
		})
	}

	t.Run("pdf link", func(t *testing.T) {
		srv := NewServer(fixtureSource(), Options{})
		text := extractText(callTool(t, srv.handleListScripts, map[string]any{"niche": "tech"}))
		if !strings.Contains(text, "PDF: https://cdn.example/1.pdf") || !strings.Contains(text, "Niche: Tech") {
			t.Errorf("got %q", text)
		}
	})
}

func TestHandleGetPrompt(t *testing.T) {
	src := fixtureSource()
	srv := NewServer(src, Options{ActiveStatus: 3})

	t.Run("list", func(t *testing.T) {
		text := extractText(callTool(t, srv.handleGetPrompt, nil))
		if src.lastStatus != 3 {
			t.Errorf("active status = %d, want 3", src.lastStatus)
		}
		if !strings.Contains(text, "7: Long-form") || !strings.Contains(text, "8: Template 8") {
			t.Errorf("got %q", text)
		}
	})

	t.Run("sections", func(t *testing.T) {
		text := extractText(callTool(t, srv.handleGetPrompt, map[string]any{"id": 7}))
		hook := strings.Index(text, "## Hook")
		body := strings.Index(text, "## Section 2")
		if hook < 0 || body < 0 || hook > body {
			t.Errorf("sections out of order or missing: %q", text)
		}
	})

	t.Run("no sections", func(t *testing.T) {
		text := extractText(callTool(t, srv.handleGetPrompt, map[string]any{"id": 8}))
		if !strings.Contains(text, "No sections found") {
			t.Errorf("got %q", text)
		}
	})

	t.Run("inactive id", func(t *testing.T) {
		if !callTool(t, srv.handleGetPrompt, map[string]any{"id": 42}).IsError {
			t.Error("expected tool error")
		}
	})
}
