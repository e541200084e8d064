package dataapi

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// CachedSource memoises successful list results from another Source, per
// query, for a fixed TTL. Failed calls are never cached. The lock is not
// held while the underlying source is queried.
type CachedSource struct {
	src Source
	ttl time.Duration
	now func() time.Time

	mu      sync.Mutex
	entries map[string]cacheEntry
	gen     uint64
	hooks   []func()
}

type cacheEntry struct {
	value    any
	loadedAt time.Time
}

// NewCachedSource wraps src. A ttl <= 0 disables caching entirely.
func NewCachedSource(src Source, ttl time.Duration) *CachedSource {
	return &CachedSource{
		src:     src,
		ttl:     ttl,
		now:     time.Now,
		entries: make(map[string]cacheEntry),
	}
}

// Invalidate drops every cached collection. Loads already in flight when
// Invalidate is called do not repopulate the cache.
func (c *CachedSource) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[string]cacheEntry)
	c.gen++
	hooks := c.hooks
	c.mu.Unlock()

	for _, fn := range hooks {
		fn()
	}
}

// OnInvalidate registers fn to run after every Invalidate, outside the
// cache lock.
func (c *CachedSource) OnInvalidate(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hooks = append(c.hooks, fn)
}

// Len returns the number of cached collections.
func (c *CachedSource) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func (c *CachedSource) ListNiches(ctx context.Context) ([]Niche, error) {
	return cached(ctx, c, "niches", c.src.ListNiches)
}

func (c *CachedSource) ListArticles(ctx context.Context, limit int) ([]Article, error) {
	if limit < 0 {
		limit = 0
	}
	return cached(ctx, c, fmt.Sprintf("articles:%d", limit), func(ctx context.Context) ([]Article, error) {
		return c.src.ListArticles(ctx, limit)
	})
}

func (c *CachedSource) ListScripts(ctx context.Context, nicheID *int64) ([]Script, error) {
	key := "scripts:all"
	if nicheID != nil {
		key = fmt.Sprintf("scripts:%d", *nicheID)
	}
	return cached(ctx, c, key, func(ctx context.Context) ([]Script, error) {
		return c.src.ListScripts(ctx, nicheID)
	})
}

func (c *CachedSource) ListPrompts(ctx context.Context, activeStatus int) ([]Prompt, error) {
	return cached(ctx, c, fmt.Sprintf("prompts:%d", activeStatus), func(ctx context.Context) ([]Prompt, error) {
		return c.src.ListPrompts(ctx, activeStatus)
	})
}

func (c *CachedSource) ListPromptSections(ctx context.Context, promptID int64) ([]PromptSection, error) {
	return cached(ctx, c, fmt.Sprintf("sections:%d", promptID), func(ctx context.Context) ([]PromptSection, error) {
		return c.src.ListPromptSections(ctx, promptID)
	})
}

func cached[T any](ctx context.Context, c *CachedSource, key string, load func(context.Context) ([]T, error)) ([]T, error) {
	if c.ttl <= 0 {
		return load(ctx)
	}

	c.mu.Lock()
	if e, ok := c.entries[key]; ok && c.now().Sub(e.loadedAt) < c.ttl {
		c.mu.Unlock()
		return e.value.([]T), nil
	}
	gen := c.gen
	c.mu.Unlock()

	value, err := load(ctx)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	if c.gen == gen {
		c.entries[key] = cacheEntry{value: value, loadedAt: c.now()}
	}
	c.mu.Unlock()
	return value, nil
}
