package config

import "time"

// Config is the top-level vidsite configuration, corresponding to .vidsite.yml.
type Config struct {
	SiteName string `yaml:"site_name" koanf:"site_name"`

	// DataAPIURL is the base URL of the hosted data API (the project URL,
	// without the /rest/v1 suffix).
	DataAPIURL string `yaml:"data_api_url" koanf:"data_api_url"`
	// DataAPIKey is normally supplied through VIDSITE_DATA_API_KEY and is
	// only ever sent server-side.
	DataAPIKey     string        `yaml:"data_api_key,omitempty" koanf:"data_api_key"`
	RequestTimeout time.Duration `yaml:"request_timeout" koanf:"request_timeout"`

	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`

	OutputDir    string   `yaml:"output_dir" koanf:"output_dir"`
	AssetsDir    string   `yaml:"assets_dir" koanf:"assets_dir"`
	AssetInclude []string `yaml:"asset_include" koanf:"asset_include"`
	DBPath       string   `yaml:"db_path" koanf:"db_path"`

	Content ContentConfig `yaml:"content" koanf:"content"`
	Prompts PromptConfig  `yaml:"prompts" koanf:"prompts"`
	Cache   CacheConfig   `yaml:"cache" koanf:"cache"`
}

// ContentConfig holds the text-shaping budgets applied to rendered cards.
type ContentConfig struct {
	RecentArticles       int `yaml:"recent_articles" koanf:"recent_articles"`
	ArticleExcerptLen    int `yaml:"article_excerpt_len" koanf:"article_excerpt_len"`
	ScriptDescriptionLen int `yaml:"script_description_len" koanf:"script_description_len"`
}

// PromptConfig controls the prompt-editor demo page.
type PromptConfig struct {
	ActiveStatus int           `yaml:"active_status" koanf:"active_status"`
	SaveDelay    time.Duration `yaml:"save_delay" koanf:"save_delay"`
}

// CacheConfig controls the in-memory collection cache.
type CacheConfig struct {
	TTL time.Duration `yaml:"ttl" koanf:"ttl"`
	// Refresh is a cron spec; every tick drops all cached collections.
	// Empty disables the schedule.
	Refresh string `yaml:"refresh" koanf:"refresh"`
}
