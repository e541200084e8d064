package view

import (
	"html/template"
	"net/url"
	"strconv"

	"github.com/vidsponential/website/internal/dataapi"
	"github.com/vidsponential/website/internal/textfmt"
)

// NicheCard is a homepage niche tile.
type NicheCard struct {
	ID          int64
	Name        string
	Slug        string
	Description string
	URL         string
}

// ArticleCard is a blog or homepage article tile. ImageFallback stands in
// for a missing image.
type ArticleCard struct {
	ID            int64
	Title         string
	ImageURL      string
	ImageFallback string
	Category      string
	Date          string
	Excerpt       string
	URL           string
}

// ScriptCard is a portfolio tile. Only cards with HasPDF open the viewer.
type ScriptCard struct {
	ID                int64
	Title             string
	Subtitle          string
	Description       string
	ThumbnailURL      string
	ThumbnailFallback string
	Niche             string
	PDFURL            string
	HasPDF            bool
	ButtonLabel       string
	URL               string
}

// ArticleDetail is the content of the article modal.
type ArticleDetail struct {
	ID       int64
	Title    string
	Category string
	Date     string
	ImageURL string
	Body     template.HTML
}

func nicheCard(n dataapi.Niche) NicheCard {
	desc := n.Description
	if desc == "" {
		desc = NicheFallback
	}
	return NicheCard{
		ID:          n.ID,
		Name:        n.Name,
		Slug:        n.Slug,
		Description: desc,
		URL:         "portfolio/?niche=" + url.QueryEscape(n.Slug),
	}
}

func categoryName(a dataapi.Article) string {
	if name := a.CategoryName(); name != "" {
		return name
	}
	return Uncategorized
}

func (c *Controller) articleCard(a dataapi.Article, link string) ArticleCard {
	return ArticleCard{
		ID:            a.ID,
		Title:         a.Title,
		ImageURL:      a.FeaturedImageURL,
		ImageFallback: NoImage,
		Category:      categoryName(a),
		Date:          textfmt.LongDate(a.CreatedAt.Time),
		Excerpt:       textfmt.ArticleExcerpt(a.Excerpt, a.Content, c.opts.ExcerptLen),
		URL:           link + "?article=" + strconv.FormatInt(a.ID, 10),
	}
}

func (c *Controller) scriptCard(s dataapi.Script, f *Filter) ScriptCard {
	card := ScriptCard{
		ID:                s.ID,
		Title:             s.Title,
		Subtitle:          s.Subtitle,
		Description:       textfmt.Truncate(s.Description, c.opts.DescriptionLen),
		ThumbnailURL:      s.ThumbnailURL,
		ThumbnailFallback: NoThumbnail,
		Niche:             s.NicheName(),
		PDFURL:            s.PDFURL,
		HasPDF:            s.PDFURL != "",
		ButtonLabel:       PDFNotAvailable,
	}
	if card.Niche == "" {
		card.Niche = Uncategorized
	}
	if card.HasPDF {
		card.ButtonLabel = ViewScript
		q := url.Values{}
		if f != nil && f.Current() != AllNiches {
			q.Set("niche", f.Current())
		}
		q.Set("pdf", strconv.FormatInt(s.ID, 10))
		card.URL = "/portfolio/?" + q.Encode()
	}
	return card
}

func (c *Controller) articleDetail(a dataapi.Article) ArticleDetail {
	d := ArticleDetail{
		ID:       a.ID,
		Title:    a.Title,
		Category: categoryName(a),
		Date:     textfmt.LongDate(a.CreatedAt.Time),
		ImageURL: a.FeaturedImageURL,
	}

	if a.Content != "" {
		body, err := c.content.Render(a.Content)
		if err != nil {
			c.logger.Printf("Error rendering article %d: %v", a.ID, err)
		} else if body != "" {
			d.Body = body
			return d
		}
	}
	if a.Excerpt != "" {
		d.Body = template.HTML("<p>" + template.HTMLEscapeString(a.Excerpt) + "</p>")
		return d
	}
	d.Body = template.HTML("<p>" + NoContent + "</p>")
	return d
}
