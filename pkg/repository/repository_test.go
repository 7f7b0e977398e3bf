package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/matchnews/pkg/domain"
)

func setupTestRepos(t *testing.T) *Repositories {
	t.Helper()
	cfg := Config{
		DSN:             ":memory:",
		MaxOpenConns:    1,
		MaxIdleConns:    1,
		ConnMaxLifetime: 30 * time.Second,
	}
	repos, err := NewRepositories(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, repos.Close()) })
	return repos
}

var testMatchDate = time.Date(2024, 5, 12, 15, 0, 0, 0, time.UTC)

func testArticle(title, link, source string, srcType domain.SourceType, quality float64) *domain.Article {
	a := &domain.Article{
		MatchID:     "ars-che",
		Title:       title,
		Summary:     "summary of " + title,
		Content:     "content of " + title,
		Link:        link,
		Author:      "reporter",
		PublishedAt: testMatchDate.Add(-2 * time.Hour),
		Source:      source,
		SourceType:  srcType,
		Tags:        []string{"arsenal", "chelsea"},
		CollectedAt: testMatchDate.Add(-time.Hour),
	}
	a.SetQuality(quality)
	return a
}

func TestRepositories_Integration(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()

	require.NoError(t, repos.Ping(ctx))

	started := testMatchDate.Add(-3 * time.Hour)
	info := domain.MatchInfo{
		Match:              domain.Match{ID: "ars-che", HomeTeam: "Arsenal", AwayTeam: "Chelsea", Date: testMatchDate, Priority: "high"},
		Status:             domain.MatchAggregating,
		AggregationStarted: started,
	}
	require.NoError(t, repos.Match.StoreMatch(ctx, info))

	_, err := repos.Article.StoreArticles(ctx, []*domain.Article{
		testArticle("Arsenal beat Chelsea", "https://example.com/1", "bbc_sport", domain.SourceRSS, 0.9),
	})
	require.NoError(t, err)
	require.NoError(t, repos.Match.StoreContext(ctx, &domain.MatchContext{MatchID: "ars-che", TotalArticles: 1}))
	require.NoError(t, repos.Source.UpdateSourceStats(ctx, []domain.SourceStats{
		{Source: "bbc_sport", SourceType: "rss", Articles: 1, AvgQuality: 0.9, LastCollected: testMatchDate},
	}))

	stats, err := repos.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, Stats{Matches: 1, Articles: 1, Contexts: 1, Sources: 1}, stats)
}

func TestMatchRepository(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()

	t.Run("store and get", func(t *testing.T) {
		started := testMatchDate.Add(-3 * time.Hour)
		info := domain.MatchInfo{
			Match:              domain.Match{ID: "ars-che", HomeTeam: "Arsenal", AwayTeam: "Chelsea", Date: testMatchDate},
			Status:             domain.MatchAggregating,
			AggregationStarted: started,
		}
		require.NoError(t, repos.Match.StoreMatch(ctx, info))

		got, err := repos.Match.GetMatch(ctx, "ars-che")
		require.NoError(t, err)
		assert.Equal(t, "Arsenal", got.HomeTeam)
		assert.Equal(t, "Chelsea", got.AwayTeam)
		assert.True(t, testMatchDate.Equal(got.Date))
		assert.Equal(t, domain.MatchAggregating, got.Status)
		assert.Nil(t, got.AggregationEnded)
		assert.Empty(t, got.Errors)

		// complete aggregation, same id updates the record
		ended := started.Add(time.Minute)
		info.Status = domain.MatchCompleted
		info.AggregationEnded = &ended
		info.ArticlesCollected = 12
		info.SourcesProcessed = 4
		info.Errors = []string{"reddit: timeout"}
		require.NoError(t, repos.Match.StoreMatch(ctx, info))

		got, err = repos.Match.GetMatch(ctx, "ars-che")
		require.NoError(t, err)
		assert.Equal(t, domain.MatchCompleted, got.Status)
		require.NotNil(t, got.AggregationEnded)
		assert.True(t, ended.Equal(*got.AggregationEnded))
		assert.Equal(t, 12, got.ArticlesCollected)
		assert.Equal(t, 4, got.SourcesProcessed)
		assert.Equal(t, []string{"reddit: timeout"}, got.Errors)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repos.Match.GetMatch(ctx, "unknown")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("recent matches", func(t *testing.T) {
		later := domain.MatchInfo{
			Match:              domain.Match{ID: "liv-eve", HomeTeam: "Liverpool", AwayTeam: "Everton", Date: testMatchDate},
			Status:             domain.MatchAggregating,
			AggregationStarted: testMatchDate,
		}
		require.NoError(t, repos.Match.StoreMatch(ctx, later))

		matches, err := repos.Match.RecentMatches(ctx, 10)
		require.NoError(t, err)
		require.Len(t, matches, 2)
		assert.Equal(t, "liv-eve", matches[0].ID)
		assert.Equal(t, "ars-che", matches[1].ID)

		matches, err = repos.Match.RecentMatches(ctx, 1)
		require.NoError(t, err)
		assert.Len(t, matches, 1)
	})

	t.Run("context", func(t *testing.T) {
		_, err := repos.Match.GetContext(ctx, "ars-che")
		assert.True(t, errors.Is(err, ErrNotFound))

		mc := &domain.MatchContext{
			MatchID:         "ars-che",
			Teams:           []string{"Arsenal", "Chelsea"},
			TotalArticles:   3,
			SourceBreakdown: map[string]int{"rss": 2, "reddit": 1},
			KeyNarratives:   []string{"derby"},
			LastUpdated:     testMatchDate,
		}
		require.NoError(t, repos.Match.StoreContext(ctx, mc))

		mc.TotalArticles = 5
		require.NoError(t, repos.Match.StoreContext(ctx, mc))

		got, err := repos.Match.GetContext(ctx, "ars-che")
		require.NoError(t, err)
		assert.Equal(t, 5, got.TotalArticles)
		assert.Equal(t, map[string]int{"rss": 2, "reddit": 1}, got.SourceBreakdown)
		assert.Equal(t, []string{"derby"}, got.KeyNarratives)
		assert.True(t, testMatchDate.Equal(got.LastUpdated))

		assert.Error(t, repos.Match.StoreContext(ctx, &domain.MatchContext{}))
	})
}

func TestArticleRepository_StoreArticles(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()

	first := testArticle("Arsenal beat Chelsea", "https://example.com/1", "bbc_sport", domain.SourceRSS, 0.9)
	first.Reddit = &domain.RedditData{Score: 10, NumComments: 3, Subreddit: "Gunners"}
	first.Dedup = &domain.DedupRecord{IsOriginal: true, MergedCount: 1}
	second := testArticle("Chelsea team news", "https://example.com/2", "reddit_discussion", domain.SourceReddit, 0.6)

	res, err := repos.Article.StoreArticles(ctx, []*domain.Article{first, nil, second})
	require.NoError(t, err)
	assert.Equal(t, StoreResult{Inserted: 2}, res)

	// same identity stored again updates the record
	first.Summary = "updated summary"
	first.SetQuality(0.95)
	res, err = repos.Article.StoreArticles(ctx, []*domain.Article{first})
	require.NoError(t, err)
	assert.Equal(t, StoreResult{Updated: 1}, res)

	articles, err := repos.Article.GetArticles(ctx, ArticleFilter{MatchID: "ars-che"})
	require.NoError(t, err)
	require.Len(t, articles, 2)
	got := articles[0]
	assert.Equal(t, "Arsenal beat Chelsea", got.Title)
	assert.Equal(t, "updated summary", got.Summary)
	assert.InDelta(t, 0.95, got.Quality(), 0.0001)
	assert.Equal(t, []string{"arsenal", "chelsea"}, got.Tags)
	assert.Equal(t, domain.SourceRSS, got.SourceType)
	assert.True(t, first.PublishedAt.Equal(got.PublishedAt))
	require.NotNil(t, got.Reddit)
	assert.Equal(t, "Gunners", got.Reddit.Subreddit)
	require.NotNil(t, got.Dedup)
	assert.True(t, got.Dedup.IsOriginal)
	assert.Nil(t, got.Twitter)

	t.Run("match id required", func(t *testing.T) {
		_, err := repos.Article.StoreArticles(ctx, []*domain.Article{{Title: "orphan"}})
		assert.Error(t, err)
	})

	t.Run("empty batch", func(t *testing.T) {
		res, err := repos.Article.StoreArticles(ctx, nil)
		require.NoError(t, err)
		assert.Equal(t, StoreResult{}, res)
	})
}

func TestArticleRepository_GetArticles(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()

	other := testArticle("Liverpool draw", "https://example.com/4", "bbc_sport", domain.SourceRSS, 0.8)
	other.MatchID = "liv-eve"
	old := testArticle("Old preview", "https://example.com/3", "scraped_news", domain.SourceScrape, 0.3)
	old.PublishedAt = testMatchDate.Add(-72 * time.Hour)
	_, err := repos.Article.StoreArticles(ctx, []*domain.Article{
		testArticle("Arsenal beat Chelsea", "https://example.com/1", "bbc_sport", domain.SourceRSS, 0.9),
		testArticle("Chelsea team news", "https://example.com/2", "reddit_discussion", domain.SourceReddit, 0.6),
		old, other,
	})
	require.NoError(t, err)

	titles := func(articles []*domain.Article) []string {
		res := make([]string, 0, len(articles))
		for _, a := range articles {
			res = append(res, a.Title)
		}
		return res
	}

	tbl := []struct {
		name   string
		filter ArticleFilter
		want   []string
	}{
		{"all", ArticleFilter{}, []string{"Arsenal beat Chelsea", "Liverpool draw", "Chelsea team news", "Old preview"}},
		{"match", ArticleFilter{MatchID: "ars-che"}, []string{"Arsenal beat Chelsea", "Chelsea team news", "Old preview"}},
		{"min quality", ArticleFilter{MatchID: "ars-che", MinQuality: 0.5}, []string{"Arsenal beat Chelsea", "Chelsea team news"}},
		{"source type", ArticleFilter{SourceType: domain.SourceReddit}, []string{"Chelsea team news"}},
		{"since", ArticleFilter{MatchID: "ars-che", Since: testMatchDate.Add(-24 * time.Hour)},
			[]string{"Arsenal beat Chelsea", "Chelsea team news"}},
		{"limit", ArticleFilter{MatchID: "ars-che", Limit: 1}, []string{"Arsenal beat Chelsea"}},
		{"limit and offset", ArticleFilter{MatchID: "ars-che", Limit: 1, Offset: 1}, []string{"Chelsea team news"}},
		{"nothing", ArticleFilter{MatchID: "unknown"}, []string{}},
	}
	for _, tt := range tbl {
		t.Run(tt.name, func(t *testing.T) {
			articles, err := repos.Article.GetArticles(ctx, tt.filter)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titles(articles))
		})
	}
}

func TestArticleRepository_Search(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()

	_, err := repos.Article.StoreArticles(ctx, []*domain.Article{
		testArticle("Arsenal beat Chelsea", "https://example.com/1", "bbc_sport", domain.SourceRSS, 0.9),
		testArticle("Chelsea team news", "https://example.com/2", "reddit_discussion", domain.SourceReddit, 0.6),
	})
	require.NoError(t, err)

	res, err := repos.Article.SearchArticles(ctx, "chelsea", "", 10)
	require.NoError(t, err)
	assert.Len(t, res, 2)

	res, err = repos.Article.SearchArticles(ctx, "team chelsea", "ars-che", 10)
	require.NoError(t, err)
	require.Len(t, res, 1)
	assert.Equal(t, "Chelsea team news", res[0].Title)

	res, err = repos.Article.SearchArticles(ctx, "tottenham", "", 10)
	require.NoError(t, err)
	assert.Empty(t, res)

	res, err = repos.Article.SearchArticles(ctx, "chelsea", "other-match", 10)
	require.NoError(t, err)
	assert.Empty(t, res)

	_, err = repos.Article.SearchArticles(ctx, "  ", "", 10)
	assert.Error(t, err)
}

func TestArticleRepository_TrendingAndSources(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()

	a1 := testArticle("Arsenal beat Chelsea", "https://example.com/1", "bbc_sport", domain.SourceRSS, 0.9)
	a1.Tags = []string{"arsenal", "chelsea", "goal"}
	a2 := testArticle("Chelsea team news", "https://example.com/2", "bbc_sport", domain.SourceRSS, 0.7)
	a2.Tags = []string{"chelsea", "goal"}
	a3 := testArticle("Match thread", "https://example.com/3", "reddit_match_thread", domain.SourceReddit, 0.5)
	a3.Tags = []string{"chelsea"}
	old := testArticle("Old news", "https://example.com/4", "reddit_match_thread", domain.SourceReddit, 0.5)
	old.Tags = []string{"transfer"}
	old.PublishedAt = testMatchDate.Add(-10 * 24 * time.Hour)
	_, err := repos.Article.StoreArticles(ctx, []*domain.Article{a1, a2, a3, old})
	require.NoError(t, err)

	topics, err := repos.Article.TrendingTopics(ctx, testMatchDate.Add(-24*time.Hour), 10)
	require.NoError(t, err)
	assert.Equal(t, []TopicCount{{"chelsea", 3}, {"goal", 2}, {"arsenal", 1}}, topics)

	topics, err = repos.Article.TrendingTopics(ctx, testMatchDate.Add(-24*time.Hour), 1)
	require.NoError(t, err)
	assert.Equal(t, []TopicCount{{"chelsea", 3}}, topics)

	sources, err := repos.Article.MatchSources(ctx, "ars-che")
	require.NoError(t, err)
	require.Len(t, sources, 2)
	assert.Equal(t, "bbc_sport", sources[0].Source)
	assert.Equal(t, "rss", sources[0].SourceType)
	assert.Equal(t, 2, sources[0].Articles)
	assert.InDelta(t, 0.8, sources[0].AvgQuality, 0.0001)
	assert.Equal(t, "reddit_match_thread", sources[1].Source)
	assert.Equal(t, 2, sources[1].Articles)
}

func TestSourceRepository(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()

	stats, err := repos.Source.GetSourceStats(ctx)
	require.NoError(t, err)
	assert.Empty(t, stats)

	require.NoError(t, repos.Source.UpdateSourceStats(ctx, []domain.SourceStats{
		{Source: "rss", SourceType: "rss", Articles: 4, AvgQuality: 0.5, LastCollected: testMatchDate},
		{Source: "reddit", SourceType: "reddit", Articles: 0, LastError: "timeout", LastCollected: testMatchDate},
	}))
	require.NoError(t, repos.Source.UpdateSourceStats(ctx, []domain.SourceStats{
		{Source: "rss", SourceType: "rss", Articles: 6, AvgQuality: 0.75, LastCollected: testMatchDate.Add(time.Hour)},
	}))
	require.NoError(t, repos.Source.UpdateSourceStats(ctx, nil))

	stats, err = repos.Source.GetSourceStats(ctx)
	require.NoError(t, err)
	require.Len(t, stats, 2)
	assert.Equal(t, "rss", stats[0].Source)
	assert.Equal(t, 10, stats[0].Articles)
	assert.InDelta(t, 0.65, stats[0].AvgQuality, 0.0001) // (4*0.5 + 6*0.75) / 10
	assert.True(t, testMatchDate.Add(time.Hour).Equal(stats[0].LastCollected))
	assert.Equal(t, "reddit", stats[1].Source)
	assert.Equal(t, "timeout", stats[1].LastError)
	assert.InDelta(t, 0.0, stats[1].AvgQuality, 0.0001)
}

func TestRepositories_Cleanup(t *testing.T) {
	repos := setupTestRepos(t)
	ctx := context.Background()

	recent := testArticle("Recent", "https://example.com/1", "bbc_sport", domain.SourceRSS, 0.9)
	recent.CollectedAt = time.Now().Add(-time.Hour)
	stale := testArticle("Stale", "https://example.com/2", "bbc_sport", domain.SourceRSS, 0.9)
	stale.CollectedAt = time.Now().Add(-40 * 24 * time.Hour)
	_, err := repos.Article.StoreArticles(ctx, []*domain.Article{recent, stale})
	require.NoError(t, err)
	require.NoError(t, repos.Match.StoreContext(ctx, &domain.MatchContext{MatchID: "ars-che"}))

	// contexts are kept forever with zero retention
	res, err := repos.Cleanup(ctx, Retention{Articles: 30 * 24 * time.Hour}, time.Now())
	require.NoError(t, err)
	assert.Equal(t, CleanupResult{Articles: 1}, res)

	articles, err := repos.Article.GetArticles(ctx, ArticleFilter{})
	require.NoError(t, err)
	require.Len(t, articles, 1)
	assert.Equal(t, "Recent", articles[0].Title)

	// a week later the context expires too
	res, err = repos.Cleanup(ctx, Retention{Articles: 30 * 24 * time.Hour, Contexts: 7 * 24 * time.Hour},
		time.Now().Add(8*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, CleanupResult{Contexts: 1}, res)
}

func TestWithRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("lock error retried", func(t *testing.T) {
		calls := 0
		err := withRetry(ctx, "op", func() error {
			calls++
			if calls < 3 {
				return errors.New("database is locked (5) (SQLITE_BUSY)")
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("other error not retried", func(t *testing.T) {
		calls := 0
		bad := errors.New("constraint failed")
		err := withRetry(ctx, "op", func() error {
			calls++
			return bad
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
		assert.True(t, errors.Is(err, bad))
		assert.Equal(t, "op: constraint failed", err.Error())
	})
}

func TestIsLockError(t *testing.T) {
	assert.False(t, isLockError(nil))
	assert.False(t, isLockError(errors.New("no such table")))
	assert.True(t, isLockError(errors.New("SQLITE_BUSY")))
	assert.True(t, isLockError(errors.New("database table is locked")))
}

func TestJSONSQL_Scan(t *testing.T) {
	var tags jsonSQL[[]string]
	require.NoError(t, tags.Scan(nil))
	assert.Nil(t, tags.Val)
	require.NoError(t, tags.Scan(""))
	assert.Nil(t, tags.Val)
	require.NoError(t, tags.Scan([]byte(`["a","b"]`)))
	assert.Equal(t, []string{"a", "b"}, tags.Val)
	assert.Error(t, tags.Scan(42))

	v, err := jsonSQL[[]string]{Val: []string{"x"}}.Value()
	require.NoError(t, err)
	assert.Equal(t, `["x"]`, v)
}
