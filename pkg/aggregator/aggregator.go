// Package aggregator runs match news aggregation. All collectors are queried concurrently, the
// collected articles are enriched, scored and deduplicated, the canonical set is stored and
// a match context is built for display.
package aggregator

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/matchnews/pkg/collector"
	"github.com/umputun/matchnews/pkg/content"
	"github.com/umputun/matchnews/pkg/dedup"
	"github.com/umputun/matchnews/pkg/domain"
	"github.com/umputun/matchnews/pkg/llm"
	"github.com/umputun/matchnews/pkg/quality"
	"github.com/umputun/matchnews/pkg/repository"
)

//go:generate moq -out mocks/store.go -pkg mocks -skip-ensure -fmt goimports . Store
//go:generate moq -out mocks/summarizer.go -pkg mocks -skip-ensure -fmt goimports . Summarizer

// Store persists aggregation results
type Store interface {
	StoreMatch(ctx context.Context, m domain.MatchInfo) error
	StoreArticles(ctx context.Context, articles []*domain.Article) (repository.StoreResult, error)
	StoreContext(ctx context.Context, mc *domain.MatchContext) error
	UpdateSourceStats(ctx context.Context, stats []domain.SourceStats) error
	Ping(ctx context.Context) error
}

// Summarizer makes a short summary of match coverage
type Summarizer interface {
	Summarize(ctx context.Context, m domain.Match, articles []*domain.Article) (llm.Summary, error)
}

// Processor enriches collected articles in place
type Processor interface {
	ProcessBatch(articles []*domain.Article)
}

// healthReporter is implemented by collectors able to tell health of their endpoints
type healthReporter interface {
	Health() map[string]bool
}

// Params for the aggregator, zero values get defaults
type Params struct {
	Collectors          []collector.Collector
	Store               Store
	Processor           Processor       // content.NewProcessor() if nil
	Scorer              *quality.Scorer // quality.NewScorer() if nil
	Summarizer          Summarizer      // optional, no summary insight if nil
	CollectorTimeout    time.Duration
	Thresholds          dedup.Thresholds
	CacheLimit          int
	LowQualityThreshold float64
	Now                 func() time.Time
}

// Aggregator orchestrates collection, processing and storage of match news
type Aggregator struct {
	collectors       []collector.Collector
	store            Store
	processor        Processor
	scorer           *quality.Scorer
	summarizer       Summarizer
	collectorTimeout time.Duration
	dedupConfig      dedup.Config
	lowQuality       float64
	now              func() time.Time

	active atomic.Int32

	mu    sync.Mutex
	stats domain.AggregatorStats
}

// collected is the outcome of a single collector run
type collected struct {
	name     string
	articles []domain.Article
	err      error
}

// New makes an aggregator
func New(p Params) *Aggregator {
	if p.Processor == nil {
		p.Processor = content.NewProcessor()
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	if p.Scorer == nil {
		p.Scorer = quality.NewScorer(quality.WithNow(p.Now))
	}
	if p.CollectorTimeout <= 0 {
		p.CollectorTimeout = 60 * time.Second
	}
	if p.LowQualityThreshold <= 0 {
		p.LowQualityThreshold = 0.3
	}

	return &Aggregator{
		collectors:       p.Collectors,
		store:            p.Store,
		processor:        p.Processor,
		scorer:           p.Scorer,
		summarizer:       p.Summarizer,
		collectorTimeout: p.CollectorTimeout,
		dedupConfig:      dedup.Config{Thresholds: p.Thresholds, CacheLimit: p.CacheLimit, Now: p.Now},
		lowQuality:       p.LowQualityThreshold,
		now:              p.Now,
	}
}

// Aggregate collects, processes and stores news of the match. Failed collectors don't fail the
// aggregation, their errors are reported in the result. Storage failures do, and the match is
// marked failed.
func (a *Aggregator) Aggregate(ctx context.Context, m domain.Match) (*domain.AggregationResult, error) {
	if m.ID == "" || m.HomeTeam == "" || m.AwayTeam == "" {
		return nil, errors.New("match id, home and away teams are required")
	}
	a.active.Add(1)
	defer a.active.Add(-1)

	start := a.now()
	lgr.Printf("[INFO] starting aggregation for match %s: %s vs %s", m.ID, m.HomeTeam, m.AwayTeam)

	info := domain.MatchInfo{Match: m, Status: domain.MatchAggregating, AggregationStarted: start, Errors: []string{}}
	if err := a.store.StoreMatch(ctx, info); err != nil {
		a.updateStats(0, 0, false)
		return nil, fmt.Errorf("store match info: %w", err)
	}

	res, err := a.run(ctx, &info)
	if err != nil {
		lgr.Printf("[ERROR] aggregation failed for match %s: %v", m.ID, err)
		ended := a.now()
		info.Status = domain.MatchFailed
		info.AggregationEnded = &ended
		info.Errors = append(info.Errors, err.Error())
		if serr := a.store.StoreMatch(context.WithoutCancel(ctx), info); serr != nil {
			lgr.Printf("[WARN] failed to store status of match %s: %v", m.ID, serr)
		}
		a.updateStats(0, 0, false)
		return nil, err
	}

	a.updateStats(res.ProcessingTime, res.ArticlesCollected, len(res.Errors) == 0)
	lgr.Printf("[INFO] aggregation completed for match %s in %v, %d articles, %d duplicates removed",
		m.ID, res.ProcessingTime, res.ArticlesCollected, res.DuplicatesRemoved)
	return res, nil
}

// run does the aggregation pipeline and stores the completed match info
func (a *Aggregator) run(ctx context.Context, info *domain.MatchInfo) (*domain.AggregationResult, error) {
	m := info.Match
	results := a.collect(ctx, m)

	articles := []*domain.Article{}
	errs := []string{}
	for _, r := range results {
		if r.err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", r.name, r.err))
			continue
		}
		for i := range r.articles {
			articles = append(articles, &r.articles[i])
		}
	}
	lgr.Printf("[INFO] collected %d articles from %d sources for match %s", len(articles), len(results), m.ID)

	articles = a.prepare(m, articles)
	deduper := dedup.New(a.dedupConfig)
	unique := deduper.Deduplicate(articles)
	cache := deduper.CacheStats()
	lgr.Printf("[DEBUG] match %s hash cache: %d title, %d content, %d url hashes", m.ID, cache.Title, cache.Content, cache.URL)
	if flagged := a.scorer.FlagLowQuality(unique, a.lowQuality); len(flagged) > 0 {
		lgr.Printf("[DEBUG] %d low quality articles for match %s", len(flagged), m.ID)
	}

	stored, err := a.store.StoreArticles(ctx, unique)
	if err != nil {
		return nil, fmt.Errorf("store articles: %w", err)
	}

	mctx := a.BuildContext(m, unique)
	if err := a.store.StoreContext(ctx, mctx); err != nil {
		return nil, fmt.Errorf("store match context: %w", err)
	}

	ended := a.now()
	info.Status = domain.MatchCompleted
	info.AggregationEnded = &ended
	info.ArticlesCollected = len(unique)
	info.SourcesProcessed = len(results)
	info.Errors = errs
	if err := a.store.StoreMatch(ctx, *info); err != nil {
		return nil, fmt.Errorf("store match info: %w", err)
	}

	if err := a.store.UpdateSourceStats(ctx, sourceStats(unique, results, ended)); err != nil {
		lgr.Printf("[WARN] failed to update source stats: %v", err)
	}

	return &domain.AggregationResult{
		MatchID:           m.ID,
		Status:            domain.MatchCompleted,
		ArticlesCollected: len(unique),
		ArticlesStored:    stored.Inserted + stored.Updated,
		DuplicatesRemoved: len(articles) - len(unique),
		SourcesProcessed:  len(results),
		ProcessingTime:    ended.Sub(info.AggregationStarted),
		Errors:            errs,
		Context:           mctx,
	}, nil
}

// collect runs all collectors concurrently, each with its own timeout. A failed, timed out or
// panicked collector gives no articles and an error, others are not affected.
func (a *Aggregator) collect(ctx context.Context, m domain.Match) []collected {
	res := make([]collected, len(a.collectors))
	var g errgroup.Group
	for i, c := range a.collectors {
		g.Go(func() error {
			res[i] = a.collectOne(ctx, c, m)
			return nil
		})
	}
	_ = g.Wait()
	return res
}

func (a *Aggregator) collectOne(ctx context.Context, c collector.Collector, m domain.Match) (res collected) {
	res.name = c.Name()
	defer func() {
		if r := recover(); r != nil {
			res = collected{name: res.name, err: fmt.Errorf("collector panic: %v", r)}
		}
		if res.err != nil {
			lgr.Printf("[WARN] %s collection failed: %v", res.name, res.err)
		}
	}()

	cctx, cancel := context.WithTimeout(ctx, a.collectorTimeout)
	defer cancel()

	st := time.Now()
	articles, err := c.Collect(cctx, m)
	if err == nil && cctx.Err() != nil {
		err = cctx.Err()
	}
	if err != nil {
		return collected{name: res.name, err: err}
	}
	lgr.Printf("[INFO] %s collection: %d articles in %v", res.name, len(articles), time.Since(st).Round(time.Millisecond))
	return collected{name: res.name, articles: articles}
}

// prepare tags, normalizes, enriches and scores collected articles. Articles without title and
// link are dropped, they have no identity to deduplicate on.
func (a *Aggregator) prepare(m domain.Match, articles []*domain.Article) []*domain.Article {
	now := a.now()
	res := make([]*domain.Article, 0, len(articles))
	for _, art := range articles {
		art.MatchID = m.ID
		art.Normalize(now)
		if !art.Valid() {
			lgr.Printf("[DEBUG] skip article without title and link from %s", art.Source)
			continue
		}
		res = append(res, art)
	}
	a.processor.ProcessBatch(res)
	a.scorer.ScoreBatch(res)
	return res
}

// sourceStats makes per-source stats of the run. Sources are named by article source, failed
// collectors are reported under the collector name with the error.
func sourceStats(articles []*domain.Article, results []collected, now time.Time) []domain.SourceStats {
	type acc struct {
		stats domain.SourceStats
		sum   float64
	}
	bySource := map[string]*acc{}
	for _, art := range articles {
		src := art.Source
		if src == "" {
			src = "unknown"
		}
		s, ok := bySource[src]
		if !ok {
			s = &acc{stats: domain.SourceStats{Source: src, SourceType: string(art.SourceType), LastCollected: now}}
			bySource[src] = s
		}
		s.stats.Articles++
		s.sum += art.Quality()
	}
	for _, r := range results {
		if r.err == nil {
			continue
		}
		if _, ok := bySource[r.name]; !ok {
			bySource[r.name] = &acc{stats: domain.SourceStats{Source: r.name, SourceType: r.name, LastCollected: now}}
		}
		bySource[r.name].stats.LastError = r.err.Error()
	}

	res := make([]domain.SourceStats, 0, len(bySource))
	for _, s := range bySource {
		if s.stats.Articles > 0 {
			s.stats.AvgQuality = s.sum / float64(s.stats.Articles)
		}
		res = append(res, s.stats)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Source < res[j].Source })
	return res
}

// updateStats adds an aggregation run to the running stats
func (a *Aggregator) updateStats(took time.Duration, articles int, success bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.stats.Aggregations++
	a.stats.ArticlesCollected += articles
	a.stats.LastAggregation = a.now()
	if success {
		a.stats.Successful++
	} else {
		a.stats.Failed++
	}
	n := time.Duration(a.stats.Aggregations)
	a.stats.AvgAggregationTime = (a.stats.AvgAggregationTime*(n-1) + took) / n
}

// Stats returns running stats of the aggregator
func (a *Aggregator) Stats() domain.AggregatorStats {
	a.mu.Lock()
	res := a.stats
	a.mu.Unlock()
	res.SuccessRate = float64(res.Successful) / float64(max(res.Aggregations, 1))
	res.ActiveTasks = int(a.active.Load())
	return res
}

// Health checks the store and reports configured collectors with health of their endpoints
func (a *Aggregator) Health(ctx context.Context) domain.HealthStatus {
	res := domain.HealthStatus{
		Status:        domain.HealthOK,
		Database:      domain.HealthOK,
		Collectors:    map[string]bool{},
		SourcesHealth: map[string]map[string]bool{},
		Stats:         a.Stats(),
		LastCheck:     a.now(),
	}
	for _, c := range a.collectors {
		res.Collectors[c.Name()] = true
		if hr, ok := c.(healthReporter); ok {
			res.SourcesHealth[c.Name()] = hr.Health()
		}
	}

	if err := a.store.Ping(ctx); err != nil {
		res.Status = domain.HealthUnhealthy
		res.Database = domain.HealthUnhealthy
		res.Error = err.Error()
		return res
	}
	if len(a.collectors) == 0 {
		res.Status = domain.HealthDegraded
	}
	return res
}
