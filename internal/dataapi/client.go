package dataapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	restPath = "/rest/v1/"

	tableNiches         = "website_niches"
	tableArticles       = "website_articles"
	tableScripts        = "website_scripts"
	tablePrompts        = "prompts"
	tablePromptSections = "prompt_sections"

	articleSelect = "*,website_article_categories(website_article_category_name)"
	scriptSelect  = "*,website_niches(website_niche_name)"

	maxErrorBody = 512
)

// Client reads collections from a PostgREST-compatible data API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = d
	}
}

// NewClient creates a client for the data API at baseURL. apiKey is sent
// as both the apikey header and a bearer token; it may be empty for an
// unauthenticated local API.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListNiches returns every niche ordered by name.
func (c *Client) ListNiches(ctx context.Context) ([]Niche, error) {
	q := url.Values{}
	q.Set("select", "*")
	q.Set("order", "website_niche_name.asc")
	return getList[Niche](ctx, c, "list niches", tableNiches, q)
}

// ListArticles returns articles newest first, with their category name.
func (c *Client) ListArticles(ctx context.Context, limit int) ([]Article, error) {
	q := url.Values{}
	q.Set("select", articleSelect)
	q.Set("order", "website_article_created_at.desc")
	op := "list articles"
	if limit > 0 {
		q.Set("limit", strconv.Itoa(limit))
		op = "list recent articles"
	}
	return getList[Article](ctx, c, op, tableArticles, q)
}

// ListScripts returns scripts with their niche name, optionally restricted
// to one niche.
func (c *Client) ListScripts(ctx context.Context, nicheID *int64) ([]Script, error) {
	q := url.Values{}
	q.Set("select", scriptSelect)
	q.Set("order", "website_script_id.asc")
	if nicheID != nil {
		q.Set("website_script_niche_id", "eq."+strconv.FormatInt(*nicheID, 10))
	}
	return getList[Script](ctx, c, "list scripts", tableScripts, q)
}

// ListPrompts returns prompts whose active status matches activeStatus.
func (c *Client) ListPrompts(ctx context.Context, activeStatus int) ([]Prompt, error) {
	q := url.Values{}
	q.Set("active_status_id", "eq."+strconv.Itoa(activeStatus))
	q.Set("select", "*")
	q.Set("order", "prompt_id.asc")
	return getList[Prompt](ctx, c, "list prompts", tablePrompts, q)
}

// ListPromptSections returns a prompt's sections in ascending order number.
func (c *Client) ListPromptSections(ctx context.Context, promptID int64) ([]PromptSection, error) {
	q := url.Values{}
	q.Set("prompt_id", "eq."+strconv.FormatInt(promptID, 10))
	q.Set("order", "prompt_section_order_number.asc")
	q.Set("select", "*")
	return getList[PromptSection](ctx, c, "list prompt sections", tablePromptSections, q)
}

func getList[T any](ctx context.Context, c *Client, op, table string, q url.Values) ([]T, error) {
	reqID := uuid.New().String()
	endpoint := c.baseURL + restPath + table + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, &Error{Op: op, RequestID: reqID, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", reqID)
	if c.apiKey != "" {
		req.Header.Set("apikey", c.apiKey)
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &Error{Op: op, RequestID: reqID, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return nil, &Error{
			Op:         op,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(body)),
			RequestID:  reqID,
		}
	}

	var out []T
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, &Error{
			Op:         op,
			StatusCode: resp.StatusCode,
			RequestID:  reqID,
			Err:        fmt.Errorf("decode response: %w", err),
		}
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}
