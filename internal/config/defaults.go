package config

import "time"

// DefaultConfigPath is where init writes and the CLI reads by default.
const DefaultConfigPath = ".vidsite.yml"

// DefaultAssetInclude copies every file under the assets directory.
var DefaultAssetInclude = []string{"**"}

// DefaultConfig returns a Config with sensible defaults. The data API URL
// points at a local development stack.
func DefaultConfig() *Config {
	return &Config{
		SiteName:       "Vidsponential",
		DataAPIURL:     "http://localhost:54321",
		RequestTimeout: 15 * time.Second,
		Port:           8080,
		OutputDir:      "dist",
		AssetsDir:      "shared",
		AssetInclude:   append([]string(nil), DefaultAssetInclude...),
		DBPath:         ".vidsite/vidsite.db",
		Content: ContentConfig{
			RecentArticles:       3,
			ArticleExcerptLen:    150,
			ScriptDescriptionLen: 120,
		},
		Prompts: PromptConfig{
			ActiveStatus: 1,
			SaveDelay:    time.Second,
		},
		Cache: CacheConfig{
			TTL:     time.Minute,
			Refresh: "@every 15m",
		},
	}
}
