package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/vidsponential/website/internal/dataapi"
	"github.com/vidsponential/website/internal/textfmt"
)

// handleListNiches returns every niche, one per line.
func (s *Server) handleListNiches(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	niches, err := s.src.ListNiches(ctx)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading niches failed: %v", err)), nil
	}
	if len(niches) == 0 {
		return mcp.NewToolResultText("No niches are published."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d niche(s):\n", len(niches))
	for _, n := range niches {
		fmt.Fprintf(&sb, "\n- %s (slug: %s)", n.Name, n.Slug)
		if n.Description != "" {
			fmt.Fprintf(&sb, ": %s", n.Description)
		}
	}
	sb.WriteString("\n")
	return mcp.NewToolResultText(sb.String()), nil
}

// handleListArticles returns article summaries newest first.
func (s *Server) handleListArticles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := request.GetInt("limit", 0)
	articles, err := s.src.ListArticles(ctx, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading articles failed: %v", err)), nil
	}
	if len(articles) == 0 {
		return mcp.NewToolResultText("No articles are published."), nil
	}
	return mcp.NewToolResultText(s.formatArticles(articles)), nil
}

// handleGetArticle returns one article's full content.
func (s *Server) handleGetArticle(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := int64(request.GetInt("id", 0))
	if id <= 0 {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}

	articles, err := s.src.ListArticles(ctx, 0)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading articles failed: %v", err)), nil
	}
	for _, a := range articles {
		if a.ID != id {
			continue
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "# %s\n\n", a.Title)
		if cat := a.CategoryName(); cat != "" {
			fmt.Fprintf(&sb, "Category: %s\n", cat)
		}
		fmt.Fprintf(&sb, "Published: %s\n\n", textfmt.LongDate(a.CreatedAt.Time))
		switch {
		case a.Content != "":
			sb.WriteString(a.Content)
		case a.Excerpt != "":
			sb.WriteString(a.Excerpt)
		default:
			sb.WriteString("Content not available.")
		}
		sb.WriteString("\n")
		return mcp.NewToolResultText(sb.String()), nil
	}
	return mcp.NewToolResultError(fmt.Sprintf("No article with id %d.", id)), nil
}

// handleListScripts returns scripts, optionally for one niche. An unknown
// slug lists every script, as the portfolio filter does.
func (s *Server) handleListScripts(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	slug := request.GetString("niche", "all")

	var nicheID *int64
	if slug != "" && slug != "all" {
		niches, err := s.src.ListNiches(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("loading niches failed: %v", err)), nil
		}
		for _, n := range niches {
			if n.Slug == slug {
				nicheID = &n.ID
				break
			}
		}
	}

	scripts, err := s.src.ListScripts(ctx, nicheID)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading scripts failed: %v", err)), nil
	}
	if len(scripts) == 0 {
		return mcp.NewToolResultText("No scripts found for this niche."), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d script(s):\n", len(scripts))
	for i, sc := range scripts {
		fmt.Fprintf(&sb, "\n--- Script %d ---\n", i+1)
		fmt.Fprintf(&sb, "ID: %d\nTitle: %s\n", sc.ID, sc.Title)
		if sc.Subtitle != "" {
			fmt.Fprintf(&sb, "Subtitle: %s\n", sc.Subtitle)
		}
		if name := sc.NicheName(); name != "" {
			fmt.Fprintf(&sb, "Niche: %s\n", name)
		}
		if sc.PDFURL != "" {
			fmt.Fprintf(&sb, "PDF: %s\n", sc.PDFURL)
		}
		if sc.Description != "" {
			fmt.Fprintf(&sb, "\n%s\n", sc.Description)
		}
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleGetPrompt lists active prompts, or returns one prompt with its
// sections in order.
func (s *Server) handleGetPrompt(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	prompts, err := s.src.ListPrompts(ctx, s.opts.ActiveStatus)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading prompts failed: %v", err)), nil
	}

	id := int64(request.GetInt("id", 0))
	if id <= 0 {
		if len(prompts) == 0 {
			return mcp.NewToolResultText("No active prompt templates."), nil
		}
		var sb strings.Builder
		fmt.Fprintf(&sb, "Found %d active template(s):\n", len(prompts))
		for _, p := range prompts {
			fmt.Fprintf(&sb, "\n- %d: %s", p.ID, p.DisplayTitle())
		}
		sb.WriteString("\n")
		return mcp.NewToolResultText(sb.String()), nil
	}

	var prompt *dataapi.Prompt
	for i := range prompts {
		if prompts[i].ID == id {
			prompt = &prompts[i]
			break
		}
	}
	if prompt == nil {
		return mcp.NewToolResultError(fmt.Sprintf("No active prompt with id %d.", id)), nil
	}

	sections, err := s.src.ListPromptSections(ctx, id)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("loading prompt sections failed: %v", err)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n", prompt.DisplayTitle())
	if len(sections) == 0 {
		sb.WriteString("\nNo sections found for this template.\n")
	}
	for i, sec := range sections {
		order := sec.OrderNumber
		if order == 0 {
			order = i + 1
		}
		title := sec.Title
		if title == "" {
			title = fmt.Sprintf("Section %d", order)
		}
		fmt.Fprintf(&sb, "\n## %s\n\n%s\n", title, sec.Content)
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// formatArticles renders article summaries for agent consumption.
func (s *Server) formatArticles(articles []dataapi.Article) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d article(s):\n", len(articles))

	for i, a := range articles {
		fmt.Fprintf(&sb, "\n--- Article %d ---\n", i+1)
		fmt.Fprintf(&sb, "ID: %d\nTitle: %s\n", a.ID, a.Title)
		if cat := a.CategoryName(); cat != "" {
			fmt.Fprintf(&sb, "Category: %s\n", cat)
		}
		fmt.Fprintf(&sb, "Published: %s\n", textfmt.LongDate(a.CreatedAt.Time))
		fmt.Fprintf(&sb, "\n%s\n", textfmt.ArticleExcerpt(a.Excerpt, a.Content, s.opts.ExcerptLen))
	}
	return sb.String()
}
