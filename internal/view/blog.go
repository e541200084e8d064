package view

import (
	"context"
	"fmt"

	"github.com/vidsponential/website/internal/dataapi"
)

// BlogPage is the blog listing. Details holds the modal content of every
// listed article so the viewer opens without another request.
type BlogPage struct {
	Articles Grid[ArticleCard]
	Details  []ArticleDetail
	Modal    *Modal
}

// Blog loads every article. When openID names a loaded article the page
// is rendered with its modal open.
func (c *Controller) Blog(ctx context.Context, openID int64) BlogPage {
	page := BlogPage{Modal: NewModal(ArticleModal)}

	var records []dataapi.Article
	records, page.Articles = loadGrid(ctx, c.logger, "articles", articlePlaceholders,
		func(ctx context.Context) ([]dataapi.Article, error) {
			return c.src.ListArticles(ctx, 0)
		},
		func(a dataapi.Article) ArticleCard { return c.articleCard(a, "") })

	page.Details = make([]ArticleDetail, 0, len(records))
	for _, a := range records {
		d := c.articleDetail(a)
		page.Details = append(page.Details, d)
		if openID != 0 && a.ID == openID {
			page.Modal.ShowArticle(d)
		}
	}
	return page
}

// Article returns the modal content for one article. It returns
// dataapi.ErrNotFound when the id is not in the article collection.
func (c *Controller) Article(ctx context.Context, id int64) (ArticleDetail, error) {
	articles, err := c.src.ListArticles(ctx, 0)
	if err != nil {
		return ArticleDetail{}, fmt.Errorf("loading articles: %w", err)
	}
	for _, a := range articles {
		if a.ID == id {
			return c.articleDetail(a), nil
		}
	}
	return ArticleDetail{}, fmt.Errorf("article %d: %w", id, dataapi.ErrNotFound)
}
