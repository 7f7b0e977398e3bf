package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/matchnews/pkg/collector"
)

func TestVerifyAgainstEmbeddedSchema(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(c *Config)
		wantErr bool
		errMsg  string
	}{
		{name: "valid config", modify: func(*Config) {}},
		{
			name:    "missing server listen",
			modify:  func(c *Config) { c.Server.Listen = "" },
			wantErr: true,
			errMsg:  "server.listen is required",
		},
		{
			name:    "llm enabled without endpoint",
			modify:  func(c *Config) { c.LLM.Enabled = true; c.LLM.Model = "llama3" },
			wantErr: true,
			errMsg:  "llm.endpoint is required when llm is enabled",
		},
		{
			name:    "threshold above maximum",
			modify:  func(c *Config) { c.Aggregation.URLThreshold = 1.2 },
			wantErr: true,
			errMsg:  "aggregation.url_threshold must be at most 1, got 1.2",
		},
		{
			name:    "zero rate limit",
			modify:  func(c *Config) { c.Sources.Scraping.RateLimit.Concurrent = 0 },
			wantErr: true,
			errMsg:  "sources.scraping.rate_limit.concurrent must be at least 1, got 0",
		},
		{
			name: "unknown api in list",
			modify: func(c *Config) {
				c.Sources.APIs.Endpoints = append(c.Sources.APIs.Endpoints, collector.APIEndpoint{Name: "bing", URL: "https://example.com"})
			},
			wantErr: true,
			errMsg:  `sources.apis.endpoints[3].name must be one of [guardian newsdata currents], got "bing"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			err := VerifyAgainstEmbeddedSchema(cfg)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestValidateRequiredFields(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid minimal config",
			config: &Config{
				Server:   ServerConfig{Listen: ":8080", Timeout: 1},
				Database: DatabaseConfig{DSN: "file:test.db"},
			},
		},
		{
			name:    "missing timeout",
			config:  &Config{Server: ServerConfig{Listen: ":8080"}},
			wantErr: true,
			errMsg:  "server.timeout is required",
		},
		{
			name:    "missing dsn",
			config:  &Config{Server: ServerConfig{Listen: ":8080", Timeout: 1}},
			wantErr: true,
			errMsg:  "database.dsn is required",
		},
		{
			name: "llm enabled without model",
			config: &Config{
				Server:   ServerConfig{Listen: ":8080", Timeout: 1},
				Database: DatabaseConfig{DSN: "file:test.db"},
				LLM:      LLMConfig{Enabled: true, Endpoint: "http://localhost"},
			},
			wantErr: true,
			errMsg:  "llm.model is required when llm is enabled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRequiredFields(tt.config)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestEmbeddedSchemaMatchesConfig(t *testing.T) {
	// every field of the config must be described by the embedded schema
	var schema map[string]any
	require.NoError(t, json.Unmarshal([]byte(embeddedSchema), &schema))
	defs, ok := schema["$defs"].(map[string]any)
	require.True(t, ok)

	data, err := json.Marshal(Default())
	require.NoError(t, err)
	var cfg map[string]any
	require.NoError(t, json.Unmarshal(data, &cfg))

	var walk func(node map[string]any, value map[string]any, path string)
	walk = func(node map[string]any, value map[string]any, path string) {
		node = resolveRef(node, defs)
		require.NotNil(t, node, path)
		props, _ := node["properties"].(map[string]any)
		for k, v := range value {
			sub, ok := props[k].(map[string]any)
			if !ok && node["additionalProperties"] != false {
				continue // map values
			}
			require.True(t, ok, "schema has no %s.%s", path, k)
			switch vv := v.(type) {
			case map[string]any:
				walk(sub, vv, joinPath(path, k))
			case []any:
				items, _ := sub["items"].(map[string]any)
				for _, item := range vv {
					if m, ok := item.(map[string]any); ok {
						walk(items, m, joinPath(path, k))
					}
				}
			}
		}
	}
	walk(schema, cfg, "")
}

func TestGenerateSchema(t *testing.T) {
	schema, err := GenerateSchema()
	require.NoError(t, err)
	require.NotNil(t, schema)

	data, err := json.Marshal(schema)
	require.NoError(t, err)
	assert.Contains(t, string(data), "collector_timeout")
	assert.Contains(t, string(data), "team_subreddits")
}
