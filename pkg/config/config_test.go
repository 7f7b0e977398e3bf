package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/matchnews/pkg/collector"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "test-config.yml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o600))
	return configPath
}

func TestLoad(t *testing.T) {
	t.Run("valid config", func(t *testing.T) {
		t.Setenv("TEST_GUARDIAN_KEY", "secret-key")
		configContent := `
server:
  listen: ":9090"
  timeout: 45s

aggregation:
  collector_timeout: 20s
  title_threshold: 0.9

retention:
  articles: 240h

sources:
  rss:
    feeds:
      - name: bbc_sport
        url: https://example.com/bbc.xml
      - name: official_club
        url: https://example.com/arsenal.xml
        teams: [Arsenal]
    rate_limit:
      concurrent: 4
      per_minute: 20
  reddit:
    disabled: true
  apis:
    endpoints:
      - name: guardian
        url: https://example.com/guardian
        key: ${TEST_GUARDIAN_KEY}
        daily_limit: 100

llm:
  enabled: true
  endpoint: http://localhost:11434/v1
  model: llama3
`
		cfg, err := Load(writeConfig(t, configContent))
		require.NoError(t, err)
		require.NotNil(t, cfg)

		assert.Equal(t, ":9090", cfg.Server.Listen)
		assert.Equal(t, 45*time.Second, cfg.Server.Timeout)
		assert.Equal(t, 20*time.Second, cfg.Aggregation.CollectorTimeout)
		assert.InDelta(t, 0.9, cfg.Aggregation.TitleThreshold, 0.0001)
		assert.InDelta(t, 0.75, cfg.Aggregation.ContentThreshold, 0.0001)
		assert.Equal(t, 240*time.Hour, cfg.Retention.Articles)
		assert.Equal(t, 7*24*time.Hour, cfg.Retention.Contexts)

		require.Len(t, cfg.Sources.RSS.Feeds, 2)
		assert.Equal(t, collector.Feed{Name: "official_club", URL: "https://example.com/arsenal.xml", Teams: []string{"Arsenal"}},
			cfg.Sources.RSS.Feeds[1])
		assert.Equal(t, RateLimit{Concurrent: 4, PerMinute: 20}, cfg.Sources.RSS.RateLimit)
		assert.True(t, cfg.Sources.Reddit.Disabled)

		require.Len(t, cfg.Sources.APIs.Endpoints, 1)
		assert.Equal(t, "secret-key", cfg.Sources.APIs.Endpoints[0].Key)
		assert.Equal(t, map[string]int{"guardian": 100}, cfg.APILimits())

		assert.True(t, cfg.LLM.Enabled)
		assert.Equal(t, "llama3", cfg.LLM.Model)
		assert.InDelta(t, 0.3, cfg.LLM.Temperature, 0.0001)
	})

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "server:\n  listen: \":8081\"\n"))
		require.NoError(t, err)

		// check server defaults
		assert.Equal(t, ":8081", cfg.Server.Listen)
		assert.Equal(t, 30*time.Second, cfg.Server.Timeout)
		assert.Equal(t, 50, cfg.Server.DefaultLimit)
		assert.Equal(t, 200, cfg.Server.MaxLimit)

		// check database and aggregation defaults
		assert.Equal(t, "file:matchnews.db?cache=shared&mode=rwc&_txlock=immediate", cfg.Database.DSN)
		assert.Equal(t, 60*time.Second, cfg.Aggregation.CollectorTimeout)
		assert.InDelta(t, 0.85, cfg.Aggregation.TitleThreshold, 0.0001)
		assert.InDelta(t, 0.90, cfg.Aggregation.URLThreshold, 0.0001)
		assert.Equal(t, 10000, cfg.Aggregation.CacheLimit)
		assert.Equal(t, time.Duration(0), cfg.Aggregation.RefreshInterval, "refresh disabled by default")
		assert.Equal(t, 48*time.Hour, cfg.Aggregation.RefreshAhead)

		// check retention defaults
		assert.Equal(t, 30*24*time.Hour, cfg.Retention.Articles)
		assert.Equal(t, 90*24*time.Hour, cfg.Retention.SourceStats)

		// check source defaults
		assert.NotEmpty(t, cfg.Sources.RSS.Feeds)
		assert.Equal(t, "Gunners", cfg.Sources.Reddit.TeamSubreddits["Arsenal"])
		assert.Equal(t, 25, cfg.Sources.Reddit.Limit)
		assert.Len(t, cfg.Sources.APIs.Endpoints, 3)
		assert.NotEmpty(t, cfg.Sources.Scraping.Sites)
		assert.Equal(t, "LFC", cfg.Sources.Nitter.ClubAccounts["Liverpool"])
		assert.Equal(t, RateLimit{Concurrent: 10, PerMinute: 60}, cfg.Sources.RSS.RateLimit)
		assert.Equal(t, RateLimit{Concurrent: 5, PerMinute: 60}, cfg.Sources.Reddit.RateLimit)
		assert.Equal(t, RateLimit{Concurrent: 3, PerMinute: 30}, cfg.Sources.Scraping.RateLimit)
		assert.Equal(t, RateLimit{Concurrent: 2, PerMinute: 10}, cfg.Sources.APIs.RateLimit)

		assert.False(t, cfg.LLM.Enabled)
	})

	t.Run("file not found", func(t *testing.T) {
		cfg, err := Load("/non/existent/file.yml")
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "read config file")
	})

	t.Run("invalid yaml", func(t *testing.T) {
		configContent := `
invalid yaml content
  with bad indentation
    and no structure
`
		cfg, err := Load(writeConfig(t, configContent))
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.Contains(t, err.Error(), "parse config")
	})

	t.Run("invalid values", func(t *testing.T) {
		tbl := []struct {
			name, content, errMsg string
		}{
			{"threshold", "aggregation:\n  content_threshold: 1.5\n", "content_threshold must be between 0 and 1"},
			{"server timeout", "server:\n  timeout: 100ms\n", "server timeout must be at least 1 second"},
			{"unknown api", "sources:\n  apis:\n    endpoints:\n      - name: bing\n        url: https://example.com\n",
				`unknown api "bing"`},
			{"feed without url", "sources:\n  rss:\n    feeds:\n      - name: bbc_sport\n", "rss feed requires name and url"},
			{"llm without model", "llm:\n  enabled: true\n  endpoint: http://localhost\n", "llm.model is required"},
			{"limits", "server:\n  default_limit: 300\n", "default_limit must be positive"},
			{"refresh", "aggregation:\n  refresh_interval: -1m\n", "refresh_interval must be non-negative"},
		}
		for _, tt := range tbl {
			t.Run(tt.name, func(t *testing.T) {
				cfg, err := Load(writeConfig(t, tt.content))
				require.Error(t, err)
				assert.Nil(t, cfg)
				assert.Contains(t, err.Error(), tt.errMsg)
			})
		}
	})
}

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, validate(cfg))
	require.NoError(t, VerifyAgainstEmbeddedSchema(cfg))
	assert.Equal(t, ":8080", cfg.Server.Listen)
	assert.Equal(t, map[string]int{"guardian": 5000, "newsdata": 200, "currents": 600}, cfg.APILimits())
}

func TestConfig_GetServerConfig(t *testing.T) {
	cfg := &Config{Server: ServerConfig{Listen: ":9090", Timeout: 45 * time.Second}}

	listen, timeout := cfg.GetServerConfig()
	assert.Equal(t, ":9090", listen)
	assert.Equal(t, 45*time.Second, timeout)

	cfg.Server.DefaultLimit, cfg.Server.MaxLimit = 20, 100
	def, maxLimit := cfg.GetPageLimits()
	assert.Equal(t, 20, def)
	assert.Equal(t, 100, maxLimit)
}

func TestConfig_GetLLMConfig(t *testing.T) {
	cfg := &Config{LLM: LLMConfig{Endpoint: "http://localhost", Model: "gpt-4o-mini", Enabled: true}}
	assert.Equal(t, cfg.LLM, cfg.GetLLMConfig())
}
