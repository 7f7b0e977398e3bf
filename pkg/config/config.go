// Package config loads the YAML configuration of matchnews and applies defaults
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/go-pkgz/lgr"
	"gopkg.in/yaml.v3"

	"github.com/umputun/matchnews/pkg/collector"
)

//go:generate go run ../../cmd/schema --out schema.json

// Config holds the application configuration
type Config struct {
	Server      ServerConfig      `yaml:"server" json:"server" jsonschema:"description=Server configuration"`
	Database    DatabaseConfig    `yaml:"database" json:"database" jsonschema:"description=Database configuration"`
	Aggregation AggregationConfig `yaml:"aggregation" json:"aggregation" jsonschema:"description=Aggregation pipeline settings"`
	Retention   RetentionConfig   `yaml:"retention" json:"retention" jsonschema:"description=Data retention"`
	Sources     SourcesConfig     `yaml:"sources" json:"sources" jsonschema:"description=News sources (empty lists use built-in defaults)"`
	LLM         LLMConfig         `yaml:"llm" json:"llm" jsonschema:"description=Optional LLM coverage summary"`
}

// ServerConfig holds HTTP API settings
type ServerConfig struct {
	Listen       string        `yaml:"listen" json:"listen" jsonschema:"default=:8080,description=HTTP server listen address"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=HTTP server timeout"`
	DefaultLimit int           `yaml:"default_limit" json:"default_limit" jsonschema:"default=50,minimum=1,description=Articles per response by default"`
	MaxLimit     int           `yaml:"max_limit" json:"max_limit" jsonschema:"default=200,minimum=1,description=Maximum articles per response"`
}

// DatabaseConfig holds SQLite settings
type DatabaseConfig struct {
	DSN             string `yaml:"dsn" json:"dsn" jsonschema:"default=file:matchnews.db?cache=shared&mode=rwc,description=Database connection string"`
	MaxOpenConns    int    `yaml:"max_open_conns" json:"max_open_conns" jsonschema:"default=10,description=Maximum number of open connections"`
	MaxIdleConns    int    `yaml:"max_idle_conns" json:"max_idle_conns" jsonschema:"default=5,description=Maximum number of idle connections"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" json:"conn_max_lifetime" jsonschema:"default=3600,description=Connection maximum lifetime in seconds"`
}

// AggregationConfig holds pipeline settings
type AggregationConfig struct {
	CollectorTimeout    time.Duration `yaml:"collector_timeout" json:"collector_timeout" jsonschema:"default=60s,description=Time limit of a single collector run"`
	RequestTimeout      time.Duration `yaml:"request_timeout" json:"request_timeout" jsonschema:"default=30s,description=HTTP request timeout of collectors"`
	UserAgent           string        `yaml:"user_agent" json:"user_agent" jsonschema:"description=User agent for collector requests"`
	TitleThreshold      float64       `yaml:"title_threshold" json:"title_threshold" jsonschema:"default=0.85,minimum=0,maximum=1,description=Title similarity of duplicates"`
	ContentThreshold    float64       `yaml:"content_threshold" json:"content_threshold" jsonschema:"default=0.75,minimum=0,maximum=1,description=Content similarity of duplicates"`
	URLThreshold        float64       `yaml:"url_threshold" json:"url_threshold" jsonschema:"default=0.9,minimum=0,maximum=1,description=URL similarity of duplicates"`
	CacheLimit          int           `yaml:"cache_limit" json:"cache_limit" jsonschema:"default=10000,minimum=1,description=Reported capacity of dedup hash cache"`
	LowQualityThreshold float64       `yaml:"low_quality_threshold" json:"low_quality_threshold" jsonschema:"default=0.3,minimum=0,maximum=1,description=Articles below are flagged as low quality"`
	RefreshInterval     time.Duration `yaml:"refresh_interval" json:"refresh_interval" jsonschema:"description=How often to re-aggregate upcoming matches (0 disables)"`
	RefreshAhead        time.Duration `yaml:"refresh_ahead" json:"refresh_ahead" jsonschema:"default=48h,description=Upcoming matches within this period are refreshed"`
}

// RetentionConfig defines how long stored records are kept
type RetentionConfig struct {
	Articles        time.Duration `yaml:"articles" json:"articles" jsonschema:"default=720h,description=Article retention"`
	Contexts        time.Duration `yaml:"contexts" json:"contexts" jsonschema:"default=168h,description=Match context retention"`
	SourceStats     time.Duration `yaml:"source_stats" json:"source_stats" jsonschema:"default=2160h,description=Source stats retention"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" json:"cleanup_interval" jsonschema:"default=24h,description=How often to run cleanup"`
}

// RateLimit caps requests of a source category
type RateLimit struct {
	Concurrent int `yaml:"concurrent" json:"concurrent" jsonschema:"minimum=1,description=Maximum concurrent requests"`
	PerMinute  int `yaml:"per_minute" json:"per_minute" jsonschema:"minimum=1,description=Maximum requests per minute"`
}

// SourcesConfig lists collectors and what they read
type SourcesConfig struct {
	RSS      RSSConfig      `yaml:"rss" json:"rss"`
	Reddit   RedditConfig   `yaml:"reddit" json:"reddit"`
	APIs     APIsConfig     `yaml:"apis" json:"apis"`
	Scraping ScrapingConfig `yaml:"scraping" json:"scraping"`
	Nitter   NitterConfig   `yaml:"nitter" json:"nitter"`
}

// RSSConfig holds RSS collector settings
type RSSConfig struct {
	Disabled  bool             `yaml:"disabled" json:"disabled"`
	Feeds     []collector.Feed `yaml:"feeds" json:"feeds"`
	RateLimit RateLimit        `yaml:"rate_limit" json:"rate_limit"`
}

// RedditConfig holds reddit collector settings
type RedditConfig struct {
	Disabled       bool              `yaml:"disabled" json:"disabled"`
	BaseURL        string            `yaml:"base_url" json:"base_url" jsonschema:"default=https://www.reddit.com"`
	Subreddits     []string          `yaml:"subreddits" json:"subreddits" jsonschema:"description=General subreddits searched for every match"`
	TeamSubreddits map[string]string `yaml:"team_subreddits" json:"team_subreddits" jsonschema:"description=Team name to its subreddit"`
	Limit          int               `yaml:"limit" json:"limit" jsonschema:"default=25,minimum=1,maximum=100"`
	RateLimit      RateLimit         `yaml:"rate_limit" json:"rate_limit"`
}

// APIsConfig holds news API collector settings
type APIsConfig struct {
	Disabled  bool                    `yaml:"disabled" json:"disabled"`
	Endpoints []collector.APIEndpoint `yaml:"endpoints" json:"endpoints"`
	RateLimit RateLimit               `yaml:"rate_limit" json:"rate_limit"`
}

// ScrapingConfig holds scraper collector settings
type ScrapingConfig struct {
	Disabled  bool             `yaml:"disabled" json:"disabled"`
	FullText  bool             `yaml:"full_text" json:"full_text" jsonschema:"description=Fetch full text of scraped articles"`
	Sites     []collector.Site `yaml:"sites" json:"sites"`
	RateLimit RateLimit        `yaml:"rate_limit" json:"rate_limit"`
}

// NitterConfig holds twitter-via-nitter collector settings
type NitterConfig struct {
	Disabled       bool              `yaml:"disabled" json:"disabled"`
	Instances      []string          `yaml:"instances" json:"instances"`
	Journalists    []string          `yaml:"journalists" json:"journalists"`
	ClubAccounts   map[string]string `yaml:"club_accounts" json:"club_accounts" jsonschema:"description=Team name to its account"`
	LeagueAccounts []string          `yaml:"league_accounts" json:"league_accounts"`
	RateLimit      RateLimit         `yaml:"rate_limit" json:"rate_limit"`
}

// LLMConfig holds settings of the optional coverage summariser
type LLMConfig struct {
	Enabled      bool          `yaml:"enabled" json:"enabled" jsonschema:"default=false,description=Add LLM summary to match insights"`
	Endpoint     string        `yaml:"endpoint" json:"endpoint" jsonschema:"description=OpenAI-compatible API endpoint"`
	APIKey       string        `yaml:"api_key" json:"api_key" jsonschema:"description=API key (can use environment variable)"`
	Model        string        `yaml:"model" json:"model" jsonschema:"description=Model name (e.g. gpt-4o-mini or llama3)"`
	Temperature  float64       `yaml:"temperature" json:"temperature" jsonschema:"default=0.3,minimum=0,maximum=2,description=Temperature for response generation"`
	MaxTokens    int           `yaml:"max_tokens" json:"max_tokens" jsonschema:"default=300,description=Maximum tokens in response"`
	Timeout      time.Duration `yaml:"timeout" json:"timeout" jsonschema:"default=30s,description=Request timeout"`
	SystemPrompt string        `yaml:"system_prompt" json:"system_prompt" jsonschema:"description=System prompt for the LLM (optional)"`
}

// Load reads configuration from a YAML file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	// expand environment variables
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.SetDefaults()

	// validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	// verify against embedded schema
	if err := VerifyAgainstEmbeddedSchema(&cfg); err != nil {
		// log warning but don't fail - schema validation is supplementary
		lgr.Printf("[WARN] schema validation failed: %v", err)
	}

	return &cfg, nil
}

// Default returns configuration with all defaults applied
func Default() *Config {
	cfg := &Config{}
	cfg.SetDefaults()
	return cfg
}

// SetDefaults fills unset values
func (c *Config) SetDefaults() {
	// set defaults for server
	if c.Server.Listen == "" {
		c.Server.Listen = ":8080"
	}
	if c.Server.Timeout == 0 {
		c.Server.Timeout = 30 * time.Second
	}
	if c.Server.DefaultLimit == 0 {
		c.Server.DefaultLimit = 50
	}
	if c.Server.MaxLimit == 0 {
		c.Server.MaxLimit = 200
	}

	// set defaults for database
	if c.Database.DSN == "" {
		c.Database.DSN = "file:matchnews.db?cache=shared&mode=rwc&_txlock=immediate"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 10
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 3600
	}

	// set defaults for aggregation
	if c.Aggregation.CollectorTimeout == 0 {
		c.Aggregation.CollectorTimeout = 60 * time.Second
	}
	if c.Aggregation.RequestTimeout == 0 {
		c.Aggregation.RequestTimeout = 30 * time.Second
	}
	if c.Aggregation.TitleThreshold == 0 {
		c.Aggregation.TitleThreshold = 0.85
	}
	if c.Aggregation.ContentThreshold == 0 {
		c.Aggregation.ContentThreshold = 0.75
	}
	if c.Aggregation.URLThreshold == 0 {
		c.Aggregation.URLThreshold = 0.90
	}
	if c.Aggregation.CacheLimit == 0 {
		c.Aggregation.CacheLimit = 10000
	}
	if c.Aggregation.LowQualityThreshold == 0 {
		c.Aggregation.LowQualityThreshold = 0.3
	}
	if c.Aggregation.RefreshAhead == 0 {
		c.Aggregation.RefreshAhead = 48 * time.Hour
	}

	// set defaults for retention
	if c.Retention.Articles == 0 {
		c.Retention.Articles = 30 * 24 * time.Hour
	}
	if c.Retention.Contexts == 0 {
		c.Retention.Contexts = 7 * 24 * time.Hour
	}
	if c.Retention.SourceStats == 0 {
		c.Retention.SourceStats = 90 * 24 * time.Hour
	}
	if c.Retention.CleanupInterval == 0 {
		c.Retention.CleanupInterval = 24 * time.Hour
	}

	c.setSourceDefaults()

	// set defaults for LLM
	if c.LLM.Temperature == 0 {
		c.LLM.Temperature = 0.3
	}
	if c.LLM.MaxTokens == 0 {
		c.LLM.MaxTokens = 300
	}
	if c.LLM.Timeout == 0 {
		c.LLM.Timeout = 30 * time.Second
	}
}

func (c *Config) setSourceDefaults() {
	s := &c.Sources
	if len(s.RSS.Feeds) == 0 {
		s.RSS.Feeds = defaultFeeds()
	}
	setRateDefaults(&s.RSS.RateLimit, 10, 60)

	if s.Reddit.BaseURL == "" {
		s.Reddit.BaseURL = "https://www.reddit.com"
	}
	if len(s.Reddit.Subreddits) == 0 {
		s.Reddit.Subreddits = []string{"soccer", "PremierLeague", "LaLiga", "Bundesliga", "SerieA", "football"}
	}
	if len(s.Reddit.TeamSubreddits) == 0 {
		s.Reddit.TeamSubreddits = defaultTeamSubreddits()
	}
	if s.Reddit.Limit == 0 {
		s.Reddit.Limit = 25
	}
	setRateDefaults(&s.Reddit.RateLimit, 5, 60)

	if len(s.APIs.Endpoints) == 0 {
		s.APIs.Endpoints = defaultAPIEndpoints()
	}
	setRateDefaults(&s.APIs.RateLimit, 2, 10)

	if len(s.Scraping.Sites) == 0 {
		s.Scraping.Sites = defaultSites()
	}
	setRateDefaults(&s.Scraping.RateLimit, 3, 30)

	if len(s.Nitter.Instances) == 0 {
		s.Nitter.Instances = []string{"https://nitter.net", "https://nitter.unixfox.eu", "https://nitter.fdn.fr"}
	}
	if len(s.Nitter.Journalists) == 0 {
		s.Nitter.Journalists = []string{"FabrizioRomano", "David_Ornstein", "JamesPearceLFC", "MiguelDelaney", "honigstein"}
	}
	if len(s.Nitter.ClubAccounts) == 0 {
		s.Nitter.ClubAccounts = defaultClubAccounts()
	}
	if len(s.Nitter.LeagueAccounts) == 0 {
		s.Nitter.LeagueAccounts = []string{"premierleague", "LaLiga", "Bundesliga_EN", "SerieA", "ChampionsLeague"}
	}
	setRateDefaults(&s.Nitter.RateLimit, 5, 30)
}

func setRateDefaults(r *RateLimit, concurrent, perMinute int) {
	if r.Concurrent == 0 {
		r.Concurrent = concurrent
	}
	if r.PerMinute == 0 {
		r.PerMinute = perMinute
	}
}

// validate checks configuration for correctness
func validate(cfg *Config) error {
	// validate server config
	if cfg.Server.Timeout < time.Second {
		return errors.New("server timeout must be at least 1 second")
	}
	if cfg.Server.DefaultLimit < 1 || cfg.Server.MaxLimit < cfg.Server.DefaultLimit {
		return errors.New("server default_limit must be positive and not above max_limit")
	}

	// validate aggregation config
	if cfg.Aggregation.CollectorTimeout < time.Second {
		return errors.New("aggregation.collector_timeout must be at least 1 second")
	}
	for name, v := range map[string]float64{
		"title_threshold":       cfg.Aggregation.TitleThreshold,
		"content_threshold":     cfg.Aggregation.ContentThreshold,
		"url_threshold":         cfg.Aggregation.URLThreshold,
		"low_quality_threshold": cfg.Aggregation.LowQualityThreshold,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("aggregation.%s must be between 0 and 1", name)
		}
	}

	if cfg.Aggregation.RefreshInterval < 0 {
		return errors.New("aggregation.refresh_interval must be non-negative")
	}

	// validate retention config
	if cfg.Retention.Articles < 0 || cfg.Retention.Contexts < 0 || cfg.Retention.SourceStats < 0 {
		return errors.New("retention periods must be non-negative")
	}

	// validate sources
	for _, f := range cfg.Sources.RSS.Feeds {
		if f.URL == "" || f.Name == "" {
			return fmt.Errorf("rss feed requires name and url, got name=%q url=%q", f.Name, f.URL)
		}
	}
	for _, e := range cfg.Sources.APIs.Endpoints {
		switch e.Name {
		case collector.APIGuardian, collector.APINewsData, collector.APICurrents:
		default:
			return fmt.Errorf("unknown api %q", e.Name)
		}
		if e.DailyLimit < 0 {
			return fmt.Errorf("api %s daily_limit must be non-negative", e.Name)
		}
	}
	for _, s := range cfg.Sources.Scraping.Sites {
		if s.URL == "" || s.Name == "" {
			return fmt.Errorf("scraping site requires name and url, got name=%q url=%q", s.Name, s.URL)
		}
	}
	for name, r := range map[string]RateLimit{
		"rss": cfg.Sources.RSS.RateLimit, "reddit": cfg.Sources.Reddit.RateLimit, "apis": cfg.Sources.APIs.RateLimit,
		"scraping": cfg.Sources.Scraping.RateLimit, "nitter": cfg.Sources.Nitter.RateLimit,
	} {
		if r.Concurrent < 1 || r.PerMinute < 1 {
			return fmt.Errorf("sources.%s.rate_limit must be positive", name)
		}
	}

	// validate LLM config
	if cfg.LLM.Enabled {
		if cfg.LLM.Endpoint == "" {
			return errors.New("llm.endpoint is required")
		}
		if cfg.LLM.Model == "" {
			return errors.New("llm.model is required")
		}
	}
	if cfg.LLM.Temperature < 0 || cfg.LLM.Temperature > 2 {
		return errors.New("llm.temperature must be between 0 and 2")
	}

	return nil
}

// APILimits returns daily request quotas per API name
func (c *Config) APILimits() map[string]int {
	res := make(map[string]int, len(c.Sources.APIs.Endpoints))
	for _, e := range c.Sources.APIs.Endpoints {
		res[e.Name] = e.DailyLimit
	}
	return res
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// GetPageLimits returns default and maximum number of articles per response
func (c *Config) GetPageLimits() (defaultLimit, maxLimit int) {
	return c.Server.DefaultLimit, c.Server.MaxLimit
}

// GetLLMConfig returns LLM configuration
func (c *Config) GetLLMConfig() LLMConfig {
	return c.LLM
}
