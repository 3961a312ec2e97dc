package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/foomo/notion-mcp/notion"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const (
	DefaultEnvPrefix = "NOTION_MCP"

	DefaultHTTPTimeout    = 30 * time.Second
	DefaultRetryAttempts  = 3
	DefaultPageSize       = 100
	DefaultScrapeSelector = "body"
	DefaultPreviewLength  = 200
	DefaultCacheBackend   = "memory"
	DefaultCacheTTL       = 5 * time.Minute
	DefaultCacheSize      = 128
	DefaultLogLevel       = "info"
)

type Config struct {
	APIKey        string        `json:"api_key,omitempty"        mapstructure:"api_key"`
	APIBaseURL    string        `json:"api_base_url,omitempty"   mapstructure:"api_base_url"`
	NotionVersion string        `json:"notion_version,omitempty" mapstructure:"notion_version"`
	HTTPTimeout   time.Duration `json:"http_timeout,omitempty"   mapstructure:"http_timeout"`
	RetryAttempts uint          `json:"retry_attempts,omitempty" mapstructure:"retry_attempts"`
	PageSize      int           `json:"page_size,omitempty"      mapstructure:"page_size"`

	ScrapeSelector string `json:"scrape_selector,omitempty" mapstructure:"scrape_selector"`
	PreviewLength  int    `json:"preview_length,omitempty"  mapstructure:"preview_length"`

	CacheBackend string        `json:"cache_backend,omitempty" mapstructure:"cache_backend"`
	CacheTTL     time.Duration `json:"cache_ttl,omitempty"     mapstructure:"cache_ttl"`
	CacheSize    int           `json:"cache_size,omitempty"    mapstructure:"cache_size"`
	RedisURL     string        `json:"redis_url,omitempty"     mapstructure:"redis_url"`

	LogLevel string `json:"log_level,omitempty" mapstructure:"log_level"`
}

// Load reads configuration from NOTION_MCP_* environment variables,
// falling back to the defaults above.
func Load() (*Config, error) {
	v := viper.NewWithOptions(
		viper.KeyDelimiter("."),
		viper.EnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_")),
	)

	v.SetEnvPrefix(DefaultEnvPrefix)
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()

	_ = v.BindEnv("api_key")
	v.SetDefault("api_key", "")

	_ = v.BindEnv("api_base_url")
	v.SetDefault("api_base_url", notion.DefaultBaseURL)

	_ = v.BindEnv("notion_version")
	v.SetDefault("notion_version", notion.DefaultVersion)

	_ = v.BindEnv("http_timeout")
	v.SetDefault("http_timeout", DefaultHTTPTimeout)

	_ = v.BindEnv("retry_attempts")
	v.SetDefault("retry_attempts", DefaultRetryAttempts)

	_ = v.BindEnv("page_size")
	v.SetDefault("page_size", DefaultPageSize)

	_ = v.BindEnv("scrape_selector")
	v.SetDefault("scrape_selector", DefaultScrapeSelector)

	_ = v.BindEnv("preview_length")
	v.SetDefault("preview_length", DefaultPreviewLength)

	// Page cache configuration
	_ = v.BindEnv("cache_backend")
	v.SetDefault("cache_backend", DefaultCacheBackend)

	_ = v.BindEnv("cache_ttl")
	v.SetDefault("cache_ttl", DefaultCacheTTL)

	_ = v.BindEnv("cache_size")
	v.SetDefault("cache_size", DefaultCacheSize)

	_ = v.BindEnv("redis_url")
	v.SetDefault("redis_url", "")

	_ = v.BindEnv("log_level")
	v.SetDefault("log_level", DefaultLogLevel)

	decodeHooks := mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)

	config := &Config{}
	if err := v.Unmarshal(config, viper.DecodeHook(decodeHooks)); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	return config, nil
}
