// Package textfmt shapes record text for display: truncation budgets, tag
// stripping, long dates and rich article content.
package textfmt

import (
	"html"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// Ellipsis is appended to text cut at its budget.
const Ellipsis = "…"

// NoExcerpt is shown when an article has neither excerpt nor content.
const NoExcerpt = "No excerpt available."

// LongDateLayout renders dates as "January 5, 2025".
const LongDateLayout = "January 2, 2006"

var strict = bluemonday.StrictPolicy()

// Truncate returns text unchanged when it has at most budget runes.
// Longer text is cut to budget runes and suffixed with Ellipsis.
func Truncate(text string, budget int) string {
	if budget < 0 {
		budget = 0
	}
	if utf8.RuneCountInString(text) <= budget {
		return text
	}
	runes := []rune(text)
	return string(runes[:budget]) + Ellipsis
}

// StripTags removes all markup from s and returns its text with runs of
// whitespace collapsed to single spaces.
func StripTags(s string) string {
	text := html.UnescapeString(strict.Sanitize(s))
	return strings.Join(strings.Fields(text), " ")
}

// ArticleExcerpt picks the card text for an article: the excerpt when
// present, otherwise the tag-stripped content, cut to budget.
func ArticleExcerpt(excerpt, content string, budget int) string {
	if strings.TrimSpace(excerpt) != "" {
		return Truncate(excerpt, budget)
	}
	if text := StripTags(content); text != "" {
		return Truncate(text, budget)
	}
	return NoExcerpt
}

// LongDate formats t as "January 5, 2025". The zero time renders as "".
func LongDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(LongDateLayout)
}
