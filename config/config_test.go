package config

import (
	"testing"
	"time"

	"github.com/foomo/notion-mcp/notion"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	require.Empty(t, cfg.APIKey)
	require.Equal(t, notion.DefaultBaseURL, cfg.APIBaseURL)
	require.Equal(t, notion.DefaultVersion, cfg.NotionVersion)
	require.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	require.Equal(t, uint(3), cfg.RetryAttempts)
	require.Equal(t, 100, cfg.PageSize)
	require.Equal(t, "body", cfg.ScrapeSelector)
	require.Equal(t, 200, cfg.PreviewLength)
	require.Equal(t, "memory", cfg.CacheBackend)
	require.Equal(t, 5*time.Minute, cfg.CacheTTL)
	require.Equal(t, 128, cfg.CacheSize)
	require.Equal(t, "info", cfg.LogLevel)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("NOTION_MCP_API_KEY", "secret_test_key_1234")
	t.Setenv("NOTION_MCP_API_BASE_URL", "https://notion.example.com/v1")
	t.Setenv("NOTION_MCP_HTTP_TIMEOUT", "5s")
	t.Setenv("NOTION_MCP_RETRY_ATTEMPTS", "5")
	t.Setenv("NOTION_MCP_CACHE_BACKEND", "redis")
	t.Setenv("NOTION_MCP_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("NOTION_MCP_PREVIEW_LENGTH", "64")
	t.Setenv("NOTION_MCP_LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	require.Equal(t, "secret_test_key_1234", cfg.APIKey)
	require.Equal(t, "https://notion.example.com/v1", cfg.APIBaseURL)
	require.Equal(t, 5*time.Second, cfg.HTTPTimeout)
	require.Equal(t, uint(5), cfg.RetryAttempts)
	require.Equal(t, "redis", cfg.CacheBackend)
	require.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	require.Equal(t, 64, cfg.PreviewLength)
	require.Equal(t, "debug", cfg.LogLevel)
}
