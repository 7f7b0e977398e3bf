package aggregator

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/matchnews/pkg/aggregator/mocks"
	"github.com/umputun/matchnews/pkg/collector"
	cmocks "github.com/umputun/matchnews/pkg/collector/mocks"
	"github.com/umputun/matchnews/pkg/content"
	"github.com/umputun/matchnews/pkg/domain"
	"github.com/umputun/matchnews/pkg/repository"
)

var (
	testNow   = time.Date(2024, 5, 12, 12, 0, 0, 0, time.UTC)
	testMatch = domain.Match{ID: "ars-che", HomeTeam: "Arsenal", AwayTeam: "Chelsea",
		Date: time.Date(2024, 5, 12, 15, 0, 0, 0, time.UTC)}
)

// processorFunc adapts a function to Processor
type processorFunc func(articles []*domain.Article)

func (f processorFunc) ProcessBatch(articles []*domain.Article) { f(articles) }

// testProcessor marks signing news positive and everything else neutral
var testProcessor = processorFunc(func(articles []*domain.Article) {
	for _, a := range articles {
		a.Language = "en"
		a.Sentiment = content.SentimentNeutral
		if strings.Contains(strings.ToLower(a.Title), "sign") {
			a.Sentiment = content.SentimentPositive
			a.Tags = append(a.Tags, "transfer")
		}
	}
})

func staticCollector(name string, articles []domain.Article, err error) *cmocks.CollectorMock {
	return &cmocks.CollectorMock{
		NameFunc: func() string { return name },
		CollectFunc: func(context.Context, domain.Match) ([]domain.Article, error) {
			return articles, err
		},
	}
}

// recordingStore accepts everything and keeps what was stored
func recordingStore() (*mocks.StoreMock, *storeRecord) {
	rec := &storeRecord{}
	return &mocks.StoreMock{
		StoreMatchFunc: func(_ context.Context, m domain.MatchInfo) error {
			rec.mu.Lock()
			defer rec.mu.Unlock()
			rec.matches = append(rec.matches, m)
			return nil
		},
		StoreArticlesFunc: func(_ context.Context, articles []*domain.Article) (repository.StoreResult, error) {
			rec.mu.Lock()
			defer rec.mu.Unlock()
			rec.articles = articles
			return repository.StoreResult{Inserted: len(articles)}, nil
		},
		StoreContextFunc: func(_ context.Context, mc *domain.MatchContext) error {
			rec.mu.Lock()
			defer rec.mu.Unlock()
			rec.context = mc
			return nil
		},
		UpdateSourceStatsFunc: func(_ context.Context, stats []domain.SourceStats) error {
			rec.mu.Lock()
			defer rec.mu.Unlock()
			rec.sources = stats
			return nil
		},
		PingFunc: func(context.Context) error { return nil },
	}, rec
}

type storeRecord struct {
	mu       sync.Mutex
	matches  []domain.MatchInfo
	articles []*domain.Article
	context  *domain.MatchContext
	sources  []domain.SourceStats
}

func TestAggregator_Aggregate(t *testing.T) {
	rss := staticCollector("rss", []domain.Article{
		{Title: "Arsenal sign new striker", Link: "https://www.bbc.co.uk/sport/football/1", Source: "bbc_sport",
			SourceType: domain.SourceRSS, Summary: "Arsenal completed the signing of a striker",
			PublishedAt: testNow.Add(-2 * time.Hour)},
		{Title: "Chelsea announce manager change", Link: "https://example.com/chelsea", Source: "bbc_sport",
			SourceType: domain.SourceRSS, PublishedAt: testNow.Add(-3 * time.Hour)},
		{Summary: "no title and no link"},
	}, nil)
	reddit := staticCollector("reddit", []domain.Article{
		{Title: "Arsenal sign new striker - Sky News", Link: "https://bbc.co.uk/sport/football/1?utm_source=x",
			Source: "sky_sports", SourceType: domain.SourceReddit},
	}, nil)
	api := staticCollector("api", nil, errors.New("all 3 endpoints failed"))
	nitter := &cmocks.CollectorMock{
		NameFunc:    func() string { return "nitter" },
		CollectFunc: func(context.Context, domain.Match) ([]domain.Article, error) { panic("boom") },
	}

	store, rec := recordingStore()
	agg := New(Params{
		Collectors: []collector.Collector{rss, reddit, api, nitter},
		Store:      store,
		Processor:  testProcessor,
		Now:        func() time.Time { return testNow },
	})

	res, err := agg.Aggregate(context.Background(), testMatch)
	require.NoError(t, err)

	assert.Equal(t, "ars-che", res.MatchID)
	assert.Equal(t, domain.MatchCompleted, res.Status)
	assert.Equal(t, 2, res.ArticlesCollected)
	assert.Equal(t, 2, res.ArticlesStored)
	assert.Equal(t, 1, res.DuplicatesRemoved)
	assert.Equal(t, 4, res.SourcesProcessed)
	require.Len(t, res.Errors, 2)
	assert.Equal(t, "api: all 3 endpoints failed", res.Errors[0])
	assert.Equal(t, "nitter: collector panic: boom", res.Errors[1])

	// stored canonical articles are tagged, scored and carry dedup records
	require.Len(t, rec.articles, 2)
	var merged, single *domain.Article
	for _, a := range rec.articles {
		assert.Equal(t, "ars-che", a.MatchID)
		require.NotNil(t, a.QualityScore)
		assert.NotNil(t, a.QualityBreakdown)
		require.NotNil(t, a.Dedup)
		if strings.HasPrefix(a.Title, "Arsenal") {
			merged = a
		} else {
			single = a
		}
	}
	require.NotNil(t, merged)
	require.NotNil(t, single)
	assert.Equal(t, 1, merged.Dedup.MergedCount)
	assert.Equal(t, 0, single.Dedup.MergedCount)
	assert.Equal(t, testNow, single.CollectedAt, "unset dates get defaults")

	// match info stored twice, aggregating and completed
	require.Len(t, store.StoreMatchCalls(), 2)
	assert.Equal(t, domain.MatchAggregating, rec.matches[0].Status)
	assert.Equal(t, domain.MatchCompleted, rec.matches[1].Status)
	assert.Equal(t, 2, rec.matches[1].ArticlesCollected)
	assert.Equal(t, 4, rec.matches[1].SourcesProcessed)
	assert.Equal(t, res.Errors, rec.matches[1].Errors)
	require.NotNil(t, rec.matches[1].AggregationEnded)

	// context
	require.NotNil(t, rec.context)
	assert.Same(t, rec.context, res.Context)
	assert.Equal(t, 2, rec.context.TotalArticles)
	assert.Equal(t, 1, rec.context.TeamInsights["Arsenal"].Mentions)
	assert.Equal(t, 1, rec.context.TeamInsights["Chelsea"].Mentions)
	assert.Empty(t, rec.context.Error)

	// source stats include failed collectors
	bySource := map[string]domain.SourceStats{}
	for _, s := range rec.sources {
		bySource[s.Source] = s
	}
	assert.Equal(t, "all 3 endpoints failed", bySource["api"].LastError)
	assert.Equal(t, "collector panic: boom", bySource["nitter"].LastError)
	assert.Equal(t, testNow, bySource["nitter"].LastCollected)

	stats := agg.Stats()
	assert.Equal(t, 1, stats.Aggregations)
	assert.Equal(t, 2, stats.ArticlesCollected)
	assert.Equal(t, 1, stats.Failed, "collection errors make the run unsuccessful")
	assert.Equal(t, 0, stats.ActiveTasks)
}

func TestAggregator_AggregateCollectorTimeout(t *testing.T) {
	slow := &cmocks.CollectorMock{
		NameFunc: func() string { return "slow" },
		CollectFunc: func(ctx context.Context, _ domain.Match) ([]domain.Article, error) {
			<-ctx.Done()
			return []domain.Article{{Title: "late article", Link: "https://example.com/late"}}, nil
		},
	}
	fast := staticCollector("rss", []domain.Article{
		{Title: "Arsenal team news", Link: "https://example.com/news", Source: "bbc_sport", SourceType: domain.SourceRSS},
	}, nil)

	store, rec := recordingStore()
	agg := New(Params{
		Collectors:       []collector.Collector{slow, fast},
		Store:            store,
		Processor:        testProcessor,
		CollectorTimeout: 50 * time.Millisecond,
	})

	res, err := agg.Aggregate(context.Background(), testMatch)
	require.NoError(t, err)
	assert.Equal(t, 1, res.ArticlesCollected)
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "slow: context deadline exceeded", res.Errors[0])
	require.Len(t, rec.articles, 1)
	assert.Equal(t, "Arsenal team news", rec.articles[0].Title)

	stats := agg.Stats()
	assert.Equal(t, 1, stats.Failed)
	assert.InDelta(t, 0.0, stats.SuccessRate, 0.0001)
}

func TestAggregator_AggregateNoCollectors(t *testing.T) {
	store, rec := recordingStore()
	agg := New(Params{Store: store, Processor: testProcessor, Now: func() time.Time { return testNow }})

	res, err := agg.Aggregate(context.Background(), testMatch)
	require.NoError(t, err)
	assert.Equal(t, 0, res.ArticlesCollected)
	assert.Equal(t, 0, res.DuplicatesRemoved)
	assert.Empty(t, res.Errors)
	assert.Empty(t, rec.articles)
	require.NotNil(t, res.Context)
	assert.Equal(t, 0, res.Context.TotalArticles)
	assert.Equal(t, content.SentimentNeutral, res.Context.Sentiment.Overall)

	stats := agg.Stats()
	assert.Equal(t, 1, stats.Successful)
	assert.InDelta(t, 1.0, stats.SuccessRate, 0.0001)
	assert.Equal(t, testNow, stats.LastAggregation)
}

func TestAggregator_AggregateStoreFailure(t *testing.T) {
	store, rec := recordingStore()
	store.StoreArticlesFunc = func(context.Context, []*domain.Article) (repository.StoreResult, error) {
		return repository.StoreResult{}, errors.New("database is locked")
	}
	agg := New(Params{
		Collectors: []collector.Collector{staticCollector("rss", []domain.Article{
			{Title: "Arsenal team news", Link: "https://example.com/news"},
		}, nil)},
		Store:     store,
		Processor: testProcessor,
	})

	_, err := agg.Aggregate(context.Background(), testMatch)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store articles: database is locked")

	require.Len(t, rec.matches, 2)
	last := rec.matches[1]
	assert.Equal(t, domain.MatchFailed, last.Status)
	assert.Equal(t, []string{"store articles: database is locked"}, last.Errors)
	assert.NotNil(t, last.AggregationEnded)
	assert.Empty(t, store.StoreContextCalls())
	assert.Equal(t, 1, agg.Stats().Failed)
}

func TestAggregator_AggregateInvalid(t *testing.T) {
	store, _ := recordingStore()
	agg := New(Params{Store: store, Processor: testProcessor})

	_, err := agg.Aggregate(context.Background(), domain.Match{ID: "x", HomeTeam: "Arsenal"})
	require.Error(t, err)
	assert.Empty(t, store.StoreMatchCalls())

	store.StoreMatchFunc = func(context.Context, domain.MatchInfo) error { return errors.New("read only") }
	_, err = agg.Aggregate(context.Background(), testMatch)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store match info")
	assert.Empty(t, store.StoreArticlesCalls())
}

func TestAggregator_Health(t *testing.T) {
	store, _ := recordingStore()
	api := collector.NewNewsAPI([]collector.APIEndpoint{{Name: collector.APIGuardian, URL: "http://localhost", Key: "k"}},
		collector.NewUsageLimiter(map[string]int{collector.APIGuardian: 10}), collector.HTTPOptions{})
	agg := New(Params{
		Collectors: []collector.Collector{staticCollector("rss", nil, nil), api},
		Store:      store,
		Processor:  testProcessor,
		Now:        func() time.Time { return testNow },
	})

	h := agg.Health(context.Background())
	assert.Equal(t, domain.HealthOK, h.Status)
	assert.Equal(t, domain.HealthOK, h.Database)
	assert.Equal(t, map[string]bool{"rss": true, "api": true}, h.Collectors)
	assert.Equal(t, map[string]map[string]bool{"api": {collector.APIGuardian: true}}, h.SourcesHealth)
	assert.Equal(t, testNow, h.LastCheck)

	store.PingFunc = func(context.Context) error { return errors.New("disk I/O error") }
	h = agg.Health(context.Background())
	assert.Equal(t, domain.HealthUnhealthy, h.Status)
	assert.Equal(t, "disk I/O error", h.Error)

	store.PingFunc = func(context.Context) error { return nil }
	h = New(Params{Store: store, Processor: testProcessor}).Health(context.Background())
	assert.Equal(t, domain.HealthDegraded, h.Status)
}
