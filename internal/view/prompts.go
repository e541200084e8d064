package view

import (
	"context"
	"fmt"
	"strconv"

	"github.com/vidsponential/website/internal/dataapi"
)

// Status message kinds, used as CSS modifiers.
const (
	KindInfo    = "info"
	KindSuccess = "success"
	KindError   = "error"
)

// PromptOption is one entry of the template dropdown.
type PromptOption struct {
	ID       int64
	Title    string
	Selected bool
}

// SectionView is one read-only prompt section field.
type SectionView struct {
	ID      int64
	Heading string
	Title   string
	Content string
}

// PromptsPage is the prompt-editor state. Sections and navigation are
// only populated when a template is selected. Empty replaces the controls
// when no template is active and SelectLabel is the dropdown's blank entry.
type PromptsPage struct {
	Options     []PromptOption
	HasPrompts  bool
	Empty       string
	SelectLabel string
	Selected    *PromptOption
	Sections    Grid[SectionView]
	PrevID      int64
	NextID      int64
	Status      string
	StatusKind  string
}

// Prompts loads the active templates and, when selectedID names one of
// them, its sections.
func (c *Controller) Prompts(ctx context.Context, selectedID int64) PromptsPage {
	page := PromptsPage{
		Empty:       NoPrompts,
		SelectLabel: SelectTemplate,
		Sections:    Loading[SectionView](),
	}

	prompts, err := c.src.ListPrompts(ctx, c.opts.ActivePromptStatus)
	if err != nil {
		c.logger.Printf("Error loading prompts: %v", err)
	}
	if len(prompts) == 0 {
		page.Status, page.StatusKind = StatusDemoMode, KindInfo
		return page
	}

	page.HasPrompts = true
	page.Status, page.StatusKind = StatusPromptsLoaded, KindSuccess

	index := -1
	page.Options = make([]PromptOption, len(prompts))
	for i, p := range prompts {
		page.Options[i] = PromptOption{ID: p.ID, Title: p.DisplayTitle()}
		if selectedID != 0 && p.ID == selectedID {
			page.Options[i].Selected = true
			index = i
		}
	}
	if index < 0 {
		return page
	}

	page.Selected = &page.Options[index]
	page.PrevID = prompts[Navigate(len(prompts), index, -1)].ID
	page.NextID = prompts[Navigate(len(prompts), index, 1)].ID

	_, page.Sections = loadGrid(ctx, c.logger, "prompt sections", sectionPlaceholders,
		func(ctx context.Context) ([]dataapi.PromptSection, error) {
			return c.src.ListPromptSections(ctx, selectedID)
		},
		sectionViewer())
	if page.Sections.Status == StatusError {
		page.Status, page.StatusKind = StatusSectionsFailed, KindError
	} else {
		page.Status, page.StatusKind = StatusTemplateReady, KindSuccess
	}
	return page
}

// SavePrompt acknowledges a save of template id without writing anything.
// The returned page carries the saved status and the template to advance
// to. With no templates loaded it returns the demo-mode page unchanged;
// otherwise ids that are not active templates yield dataapi.ErrNotFound.
func (c *Controller) SavePrompt(ctx context.Context, id int64) (PromptsPage, error) {
	page := c.Prompts(ctx, id)
	if !page.HasPrompts {
		return page, nil
	}
	if page.Selected == nil {
		return page, fmt.Errorf("prompt %d: %w", id, dataapi.ErrNotFound)
	}
	page.Status, page.StatusKind = StatusSaved, KindSuccess
	return page, nil
}

// Navigate moves index by dir within n items, wrapping at both ends. From
// no selection (index < 0) forward goes to the first item and backward to
// the last.
func Navigate(n, index, dir int) int {
	if n <= 0 {
		return -1
	}
	if index < 0 {
		if dir < 0 {
			return n - 1
		}
		return 0
	}
	return ((index+dir)%n + n) % n
}

func sectionViewer() func(dataapi.PromptSection) SectionView {
	i := 0
	return func(s dataapi.PromptSection) SectionView {
		i++
		order := s.OrderNumber
		if order == 0 {
			order = i
		}
		v := SectionView{
			ID:      s.ID,
			Heading: "Section " + strconv.Itoa(order),
			Title:   s.Title,
			Content: s.Content,
		}
		if v.Title == "" {
			v.Title = SectionTitleFallback
		}
		if v.Content == "" {
			v.Content = SectionContentFallback
		}
		return v
	}
}
