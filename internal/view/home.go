package view

import (
	"context"

	"github.com/vidsponential/website/internal/dataapi"
)

// HomePage is the homepage state.
type HomePage struct {
	Niches Grid[NicheCard]
	Recent Grid[ArticleCard]
}

// Home loads niches and the most recent articles. A failure in one grid
// leaves the other intact.
func (c *Controller) Home(ctx context.Context) HomePage {
	var page HomePage
	_, page.Niches = loadGrid(ctx, c.logger, "niches", nichePlaceholders,
		c.src.ListNiches, nicheCard)

	_, page.Recent = loadGrid(ctx, c.logger, "recent articles", recentPlaceholders,
		func(ctx context.Context) ([]dataapi.Article, error) {
			return c.src.ListArticles(ctx, c.opts.RecentArticles)
		},
		func(a dataapi.Article) ArticleCard { return c.articleCard(a, "blog/") })
	return page
}
