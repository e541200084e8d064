package view

import (
	"html/template"
	"log"
	"time"

	"github.com/vidsponential/website/internal/dataapi"
)

// ContentRenderer converts stored article content to safe HTML.
type ContentRenderer interface {
	Render(content string) (template.HTML, error)
}

// Options are the page-shaping settings.
type Options struct {
	RecentArticles     int
	ExcerptLen         int
	DescriptionLen     int
	ActivePromptStatus int
	SaveDelay          time.Duration
}

// DefaultOptions returns the settings the site ships with.
func DefaultOptions() Options {
	return Options{
		RecentArticles:     3,
		ExcerptLen:         150,
		DescriptionLen:     120,
		ActivePromptStatus: 1,
		SaveDelay:          time.Second,
	}
}

// Controller builds page state from a data source. Every page method
// returns a fresh value, so a Controller is safe for concurrent use.
type Controller struct {
	src     dataapi.Source
	content ContentRenderer
	logger  *log.Logger
	opts    Options
}

// NewController creates a controller. A nil logger logs to the standard
// logger.
func NewController(src dataapi.Source, content ContentRenderer, logger *log.Logger, opts Options) *Controller {
	if logger == nil {
		logger = log.Default()
	}
	return &Controller{src: src, content: content, logger: logger, opts: opts}
}

// Options returns the controller's settings.
func (c *Controller) Options() Options { return c.opts }
