package cmd

import (
	"fmt"
	"log"
	"os"

	"github.com/vidsponential/website/internal/config"
	"github.com/vidsponential/website/internal/dataapi"
	"github.com/vidsponential/website/internal/textfmt"
	"github.com/vidsponential/website/internal/view"
	"github.com/vidsponential/website/internal/web"
)

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `vidsite init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w\nRun `vidsite init` to rewrite the config file", err)
	}
	return cfg, nil
}

func newLogger() *log.Logger {
	flags := log.LstdFlags
	if verbose {
		flags |= log.Lmicroseconds | log.Lshortfile
	}
	return log.New(os.Stderr, "", flags)
}

// newSite wires the data API client, its cache, the view controller and the
// page renderer from cfg.
func newSite(cfg *config.Config, logger *log.Logger) (*web.Site, *dataapi.CachedSource, error) {
	client := dataapi.NewClient(cfg.DataAPIURL, cfg.DataAPIKey,
		dataapi.WithTimeout(cfg.RequestTimeout),
	)
	cache := dataapi.NewCachedSource(client, cfg.Cache.TTL)

	ctrl := view.NewController(cache, textfmt.NewRenderer(), logger, view.Options{
		RecentArticles:     cfg.Content.RecentArticles,
		ExcerptLen:         cfg.Content.ArticleExcerptLen,
		DescriptionLen:     cfg.Content.ScriptDescriptionLen,
		ActivePromptStatus: cfg.Prompts.ActiveStatus,
		SaveDelay:          cfg.Prompts.SaveDelay,
	})

	site, err := web.New(ctrl, web.Options{
		SiteName: cfg.SiteName,
		Logger:   logger,
		Cache:    cache,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("creating site: %w", err)
	}
	return site, cache, nil
}
