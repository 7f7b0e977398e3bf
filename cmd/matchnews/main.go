package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"regexp"
	"runtime"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/matchnews/pkg/aggregator"
	"github.com/umputun/matchnews/pkg/collector"
	"github.com/umputun/matchnews/pkg/config"
	"github.com/umputun/matchnews/pkg/content"
	"github.com/umputun/matchnews/pkg/dedup"
	"github.com/umputun/matchnews/pkg/domain"
	"github.com/umputun/matchnews/pkg/llm"
	"github.com/umputun/matchnews/pkg/repository"
	"github.com/umputun/matchnews/pkg/scheduler"
	"github.com/umputun/matchnews/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" default:"matchnews.yml" description:"configuration file"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`

	Once  bool      `long:"once" description:"aggregate a single match, print the result and exit"`
	Match MatchOpts `group:"match" namespace:"match" env-namespace:"MATCH"`

	// Common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

// MatchOpts define the match aggregated with --once
type MatchOpts struct {
	ID       string `long:"id" env:"ID" description:"match id, made from teams and date if empty"`
	Home     string `long:"home" env:"HOME_TEAM" description:"home team"`
	Away     string `long:"away" env:"AWAY_TEAM" description:"away team"`
	Date     string `long:"date" env:"DATE" description:"match date, YYYY-MM-DD or RFC3339, today if empty"`
	Priority string `long:"priority" env:"PRIORITY" default:"normal" choice:"low" choice:"normal" choice:"high" description:"aggregation priority"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	if opts.NoColor {
		color.NoColor = true
	}
	setupLog(opts.Debug, secrets()...)

	log.Printf("[INFO] starting matchnews version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()

	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}

	log.Print("[INFO] shutdown complete")
}

// run wires all components and either serves the API until ctx is canceled or, with --once,
// aggregates a single match
func run(ctx context.Context, opts Opts) error {
	cfg, err := config.Load(opts.Config)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}

	repos, err := repository.NewRepositories(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer func() {
		if err := repos.Close(); err != nil {
			log.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	usage := collector.NewUsageLimiter(cfg.APILimits())
	store := server.NewRepositoryAdapter(repos)

	var summarizer aggregator.Summarizer
	if cfg.LLM.Enabled {
		summarizer = llm.NewSummarizer(cfg.LLM)
		log.Printf("[INFO] llm summaries enabled, model %s", cfg.LLM.Model)
	}

	agg := aggregator.New(aggregator.Params{
		Collectors:       makeCollectors(cfg, usage),
		Store:            store,
		Summarizer:       summarizer,
		CollectorTimeout: cfg.Aggregation.CollectorTimeout,
		Thresholds: dedup.Thresholds{
			Title:   cfg.Aggregation.TitleThreshold,
			Content: cfg.Aggregation.ContentThreshold,
			URL:     cfg.Aggregation.URLThreshold,
		},
		CacheLimit:          cfg.Aggregation.CacheLimit,
		LowQualityThreshold: cfg.Aggregation.LowQualityThreshold,
	})

	if opts.Once {
		return aggregateOnce(ctx, agg, opts.Match, os.Stdout)
	}

	sched := scheduler.NewScheduler(scheduler.Params{
		Cleaner: repos,
		Retention: repository.Retention{
			Articles:    cfg.Retention.Articles,
			Contexts:    cfg.Retention.Contexts,
			SourceStats: cfg.Retention.SourceStats,
		},
		CleanupInterval: cfg.Retention.CleanupInterval,
		Usage:           usage,
		Matches:         repos.Match,
		Aggregator:      agg,
		RefreshInterval: cfg.Aggregation.RefreshInterval,
		RefreshAhead:    cfg.Aggregation.RefreshAhead,
	})
	sched.Start(ctx)
	defer sched.Stop()

	srv := server.New(cfg, store, agg, revision, opts.Debug)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// makeCollectors creates enabled collectors, each category gated by its own rate limit
func makeCollectors(cfg *config.Config, usage *collector.UsageLimiter) []collector.Collector {
	httpOpts := func(name string, rl config.RateLimit) collector.HTTPOptions {
		return collector.HTTPOptions{
			Timeout:   cfg.Aggregation.RequestTimeout,
			UserAgent: cfg.Aggregation.UserAgent,
			Gate:      collector.NewGate(name, rl.Concurrent, rl.PerMinute),
		}
	}

	src := cfg.Sources
	var res []collector.Collector
	if !src.RSS.Disabled {
		res = append(res, collector.NewRSS(src.RSS.Feeds, httpOpts("rss", src.RSS.RateLimit)))
	}
	if !src.Reddit.Disabled {
		res = append(res, collector.NewReddit(collector.RedditOptions{
			BaseURL:        src.Reddit.BaseURL,
			Subreddits:     src.Reddit.Subreddits,
			TeamSubreddits: src.Reddit.TeamSubreddits,
			Limit:          src.Reddit.Limit,
		}, httpOpts("reddit", src.Reddit.RateLimit)))
	}
	if !src.APIs.Disabled {
		res = append(res, collector.NewNewsAPI(src.APIs.Endpoints, usage, httpOpts("api", src.APIs.RateLimit)))
	}
	if !src.Scraping.Disabled {
		extractor := content.NewHTTPExtractor(cfg.Aggregation.RequestTimeout).WithUserAgent(cfg.Aggregation.UserAgent)
		gate := collector.NewGate("scraping", src.Scraping.RateLimit.Concurrent, src.Scraping.RateLimit.PerMinute)
		res = append(res, collector.NewScraper(src.Scraping.Sites, extractor, gate, src.Scraping.FullText))
	}
	if !src.Nitter.Disabled {
		res = append(res, collector.NewNitter(collector.NitterOptions{
			Instances:      src.Nitter.Instances,
			Journalists:    src.Nitter.Journalists,
			ClubAccounts:   src.Nitter.ClubAccounts,
			LeagueAccounts: src.Nitter.LeagueAccounts,
		}, httpOpts("nitter", src.Nitter.RateLimit)))
	}

	names := make([]string, 0, len(res))
	for _, c := range res {
		names = append(names, c.Name())
	}
	log.Printf("[INFO] collectors enabled: %s", strings.Join(names, ", "))
	return res
}

// matchAggregator is the part of aggregator used by --once
type matchAggregator interface {
	Aggregate(ctx context.Context, m domain.Match) (*domain.AggregationResult, error)
}

// aggregateOnce aggregates the match from CLI options and writes the result as JSON
func aggregateOnce(ctx context.Context, agg matchAggregator, mo MatchOpts, w io.Writer) error {
	m, err := mo.match(time.Now())
	if err != nil {
		return fmt.Errorf("invalid match: %w", err)
	}

	res, err := agg.Aggregate(ctx, m)
	if err != nil {
		return fmt.Errorf("aggregation failed: %w", err)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("failed to write result: %w", err)
	}
	return nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// match makes domain match from options, id is derived from teams and date if not set
func (mo MatchOpts) match(now time.Time) (domain.Match, error) {
	home, away := strings.TrimSpace(mo.Home), strings.TrimSpace(mo.Away)
	if home == "" || away == "" {
		return domain.Match{}, errors.New("home and away teams are required")
	}

	date := now.UTC()
	if mo.Date != "" {
		var err error
		if date, err = parseDate(mo.Date); err != nil {
			return domain.Match{}, err
		}
	}

	id := strings.TrimSpace(mo.ID)
	if id == "" {
		slug := func(s string) string { return strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(s), "-"), "-") }
		id = fmt.Sprintf("%s-%s-%s", slug(home), slug(away), date.Format("20060102"))
	}

	priority := mo.Priority
	if priority == "" {
		priority = "normal"
	}
	return domain.Match{ID: id, HomeTeam: home, AwayTeam: away, Date: date, Priority: priority}, nil
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// secrets returns values which should never appear in logs
func secrets() []string {
	var res []string
	for _, env := range []string{"GUARDIAN_API_KEY", "NEWSDATA_API_KEY", "CURRENTS_API_KEY", "LLM_API_KEY"} {
		if v := os.Getenv(env); v != "" {
			res = append(res, v)
		}
	}
	return res
}

func setupLog(dbg bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	colorizer := lgr.Mapper{
		ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
		WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
		InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
		DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
		CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
		TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
	}
	logOpts = append(logOpts, lgr.Map(colorizer))
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}
