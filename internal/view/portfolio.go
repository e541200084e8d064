package view

import (
	"context"
	"fmt"

	"github.com/vidsponential/website/internal/dataapi"
)

// PortfolioPage is the portfolio state: filter bar, script grid and the
// PDF viewer.
type PortfolioPage struct {
	Filter   *Filter
	Controls []FilterControl
	Scripts  Grid[ScriptCard]
	Modal    *Modal
}

// Portfolio loads niches, then the scripts of the niche named by slug.
// When pdfID names a listed script with a PDF the viewer starts open.
func (c *Controller) Portfolio(ctx context.Context, slug string, pdfID int64) *PortfolioPage {
	page := c.portfolioShell(ctx, slug)
	records := c.loadScripts(ctx, page)

	if pdfID != 0 {
		for _, s := range records {
			if s.ID == pdfID {
				page.Modal.ShowPDF(s.Title, s.PDFURL)
				break
			}
		}
	}
	return page
}

// FilterScripts builds the portfolio state for a filter switch. ok is
// false when the niche list is unavailable and the switch is a no-op.
func (c *Controller) FilterScripts(ctx context.Context, slug string) (page *PortfolioPage, ok bool) {
	page = c.portfolioShell(ctx, AllNiches)
	return page, c.SelectFilter(ctx, page, slug)
}

// SelectFilter switches the page to slug and reloads its scripts scoped
// to the niche. It does nothing and returns false before niches load.
func (c *Controller) SelectFilter(ctx context.Context, page *PortfolioPage, slug string) bool {
	if _, ok := page.Filter.Select(slug); !ok {
		return false
	}
	c.loadScripts(ctx, page)
	return true
}

// PDF returns the viewer for one script. It returns dataapi.ErrNotFound
// for unknown ids and for scripts without a PDF.
func (c *Controller) PDF(ctx context.Context, scriptID int64) (*Modal, error) {
	scripts, err := c.src.ListScripts(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("loading scripts: %w", err)
	}
	m := NewModal(PDFModal)
	for _, s := range scripts {
		if s.ID != scriptID {
			continue
		}
		if !m.ShowPDF(s.Title, s.PDFURL) {
			break
		}
		return m, nil
	}
	return nil, fmt.Errorf("script %d: %w", scriptID, dataapi.ErrNotFound)
}

func (c *Controller) portfolioShell(ctx context.Context, slug string) *PortfolioPage {
	page := &PortfolioPage{
		Filter: NewFilter(slug),
		Modal:  NewModal(PDFModal),
		// Niches load before scripts.
		Scripts: Loading[ScriptCard](),
	}
	niches, err := c.src.ListNiches(ctx)
	if err != nil {
		c.logger.Printf("Error loading niches: %v", err)
	} else {
		page.Filter.SetNiches(niches)
	}
	page.Controls = page.Filter.Controls()
	return page
}

func (c *Controller) loadScripts(ctx context.Context, page *PortfolioPage) []dataapi.Script {
	nicheID := page.Filter.NicheID()
	records, grid := loadGrid(ctx, c.logger, "scripts", scriptPlaceholders,
		func(ctx context.Context) ([]dataapi.Script, error) {
			return c.src.ListScripts(ctx, nicheID)
		},
		func(s dataapi.Script) ScriptCard { return c.scriptCard(s, page.Filter) })
	page.Scripts = grid
	page.Controls = page.Filter.Controls()
	return records
}

// NicheSlugs returns the slug of every niche, in data-source order.
func (c *Controller) NicheSlugs(ctx context.Context) ([]string, error) {
	niches, err := c.src.ListNiches(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading niches: %w", err)
	}
	slugs := make([]string, 0, len(niches))
	for _, n := range niches {
		if n.Slug != "" {
			slugs = append(slugs, n.Slug)
		}
	}
	return slugs, nil
}
