package dataapi

import (
	"context"
	"fmt"
	"strconv"
	"time"
)

// Source is the read-only data access layer the page controllers consume.
// Every list call returns records in data-source order, or an error on
// transport or query failure. An empty result is not an error.
type Source interface {
	ListNiches(ctx context.Context) ([]Niche, error)
	// ListArticles returns articles newest first. limit <= 0 returns all.
	ListArticles(ctx context.Context, limit int) ([]Article, error)
	// ListScripts returns scripts for one niche, or all scripts when
	// nicheID is nil.
	ListScripts(ctx context.Context, nicheID *int64) ([]Script, error)
	ListPrompts(ctx context.Context, activeStatus int) ([]Prompt, error)
	// ListPromptSections returns the sections of one prompt ordered by
	// their order number.
	ListPromptSections(ctx context.Context, promptID int64) ([]PromptSection, error)
}

// Niche partitions scripts and drives the portfolio filters.
type Niche struct {
	ID          int64  `json:"website_niche_id"`
	Name        string `json:"website_niche_name"`
	Slug        string `json:"website_niche_slug"`
	Description string `json:"website_niche_description"`
}

// ArticleCategory is the category embedded in an article row.
type ArticleCategory struct {
	ID   int64  `json:"website_article_category_id"`
	Name string `json:"website_article_category_name"`
}

// Article is a blog post.
type Article struct {
	ID               int64            `json:"website_article_id"`
	Title            string           `json:"website_article_title"`
	FeaturedImageURL string           `json:"website_article_featured_image_url"`
	Excerpt          string           `json:"website_article_excerpt"`
	Content          string           `json:"website_article_content"`
	CreatedAt        Timestamp        `json:"website_article_created_at"`
	Category         *ArticleCategory `json:"website_article_categories"`
}

// CategoryName returns the embedded category name, or "" when the article
// has no category.
func (a Article) CategoryName() string {
	if a.Category == nil {
		return ""
	}
	return a.Category.Name
}

// NicheRef is the niche embedded in a script row.
type NicheRef struct {
	Name string `json:"website_niche_name"`
}

// Script is a portfolio item.
type Script struct {
	ID           int64     `json:"website_script_id"`
	Title        string    `json:"website_script_title"`
	Subtitle     string    `json:"website_script_subtitle"`
	Description  string    `json:"website_script_description"`
	ThumbnailURL string    `json:"website_script_thumbnail_url"`
	PDFURL       string    `json:"website_script_pdf_url"`
	NicheID      *int64    `json:"website_script_niche_id"`
	Niche        *NicheRef `json:"website_niches"`
}

// NicheName returns the embedded niche name, or "" when absent.
func (s Script) NicheName() string {
	if s.Niche == nil {
		return ""
	}
	return s.Niche.Name
}

// Prompt is an AI-generation template.
type Prompt struct {
	ID             int64  `json:"prompt_id"`
	Title          string `json:"prompt_title"`
	ActiveStatusID int    `json:"active_status_id"`
}

// DisplayTitle falls back to "Template <id>" for untitled prompts.
func (p Prompt) DisplayTitle() string {
	if p.Title != "" {
		return p.Title
	}
	return "Template " + strconv.FormatInt(p.ID, 10)
}

// PromptSection is one ordered part of a prompt.
type PromptSection struct {
	ID          int64  `json:"prompt_section_id"`
	PromptID    int64  `json:"prompt_id"`
	OrderNumber int    `json:"prompt_section_order_number"`
	Title       string `json:"prompt_section_title"`
	Content     string `json:"prompt_section"`
}

// Timestamp accepts the timestamp shapes the data API emits, with or
// without a zone offset. JSON null leaves the zero time.
type Timestamp struct {
	time.Time
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999Z07",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02",
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *Timestamp) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		t.Time = time.Time{}
		return nil
	}
	s, err := strconv.Unquote(string(b))
	if err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if s == "" {
		t.Time = time.Time{}
		return nil
	}
	for _, layout := range timestampLayouts {
		if parsed, err := time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("unrecognised timestamp %q", s)
}
