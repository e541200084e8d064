package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// EnvPrefix is the prefix of environment overrides. Nested keys use a
// double underscore: VIDSITE_CACHE__TTL -> cache.ttl.
const EnvPrefix = "VIDSITE_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (VIDSITE_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	cfg := DefaultConfig()

	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	// VIDSITE_DATA_API_URL -> data_api_url, VIDSITE_CACHE__TTL -> cache.ttl.
	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path. The data API
// key is never written.
func (c *Config) Save(path string) error {
	out := *c
	out.DataAPIKey = ""
	data, err := yamlv3.Marshal(&out)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.DataAPIURL == "" {
		return fmt.Errorf("data_api_url is required")
	}
	u, err := url.Parse(c.DataAPIURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid data_api_url %q: must be an absolute http(s) URL", c.DataAPIURL)
	}

	if c.RequestTimeout < 0 {
		return fmt.Errorf("request_timeout must be non-negative")
	}

	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}

	if c.OutputDir == "" {
		return fmt.Errorf("output_dir is required")
	}

	if c.Content.RecentArticles <= 0 {
		return fmt.Errorf("content.recent_articles must be positive")
	}
	if c.Content.ArticleExcerptLen <= 0 {
		return fmt.Errorf("content.article_excerpt_len must be positive")
	}
	if c.Content.ScriptDescriptionLen <= 0 {
		return fmt.Errorf("content.script_description_len must be positive")
	}

	if c.Prompts.SaveDelay < 0 {
		return fmt.Errorf("prompts.save_delay must be non-negative")
	}

	if c.Cache.TTL < 0 {
		return fmt.Errorf("cache.ttl must be non-negative")
	}

	return nil
}
