package aggregator

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/matchnews/pkg/aggregator/mocks"
	"github.com/umputun/matchnews/pkg/content"
	"github.com/umputun/matchnews/pkg/domain"
	"github.com/umputun/matchnews/pkg/llm"
)

func contextArticles() []*domain.Article {
	mk := func(title string, st domain.SourceType, q float64, sentiment, lang string, published time.Time, tags ...string) *domain.Article {
		a := &domain.Article{Title: title, SourceType: st, Sentiment: sentiment, Language: lang, PublishedAt: published,
			Tags: tags, Source: string(st) + "_source"}
		a.SetQuality(q)
		return a
	}
	return []*domain.Article{
		mk("Arsenal injury update ahead", domain.SourceRSS, 0.9, content.SentimentNegative, "en",
			testNow.Add(-5*time.Hour), "arsenal", "injury"),
		mk("Arsenal injury blow for Saka", domain.SourceRSS, 0.85, content.SentimentNegative, "en",
			testNow.Add(-1*time.Hour), "arsenal", "injury"),
		mk("Arsenal injury news confirmed", domain.SourceReddit, 0.4, content.SentimentNeutral, "",
			testNow.Add(-3*time.Hour), "arsenal"),
		mk("Chelsea press conference", domain.SourceAPI, 0.6, content.SentimentPositive, "en",
			testNow.Add(-2*time.Hour), "chelsea"),
	}
}

func TestAggregator_BuildContext(t *testing.T) {
	agg := New(Params{Processor: testProcessor, Now: func() time.Time { return testNow }})
	articles := contextArticles()
	articles[3].ContentType = "press_conference"

	mc := agg.BuildContext(testMatch, articles)
	require.NotNil(t, mc)
	assert.Empty(t, mc.Error)
	assert.Equal(t, "ars-che", mc.MatchID)
	assert.Equal(t, []string{"Arsenal", "Chelsea"}, mc.Teams)
	assert.Equal(t, 4, mc.TotalArticles)
	assert.Equal(t, map[string]int{"rss": 2, "reddit": 1, "api": 1}, mc.SourceBreakdown)

	assert.InDelta(t, 0.6875, mc.QualityStats.Average, 0.0001)
	assert.Equal(t, 2, mc.QualityStats.HighQualityCount)
	assert.Equal(t, 1, mc.QualityStats.LowQualityCount)

	assert.Equal(t, content.SentimentNegative, mc.Sentiment.Overall)
	assert.InDelta(t, 0.5, mc.Sentiment.Negative, 0.0001)
	assert.InDelta(t, 0.25, mc.Sentiment.Positive, 0.0001)

	assert.Equal(t, []string{"Arsenal mentioned in 3 articles", "Injury mentioned in 3 articles"}, mc.KeyNarratives)
	assert.Equal(t, []string{"arsenal", "injury"}, mc.TrendingTopics)

	assert.Equal(t, domain.TeamInsight{Mentions: 3, Sentiment: content.SentimentNegative, KeyTopics: []string{"arsenal", "injury"}},
		mc.TeamInsights["Arsenal"])
	assert.Equal(t, domain.TeamInsight{Mentions: 1, Sentiment: content.SentimentPositive, KeyTopics: []string{"chelsea"}},
		mc.TeamInsights["Chelsea"])

	require.NotNil(t, mc.CollectionStats)
	assert.Equal(t, testNow.Add(-time.Hour), mc.CollectionStats.LatestArticle)
	assert.Equal(t, testNow.Add(-5*time.Hour), mc.CollectionStats.OldestArticle)
	assert.Equal(t, []string{"en", "unknown"}, mc.CollectionStats.Languages)
	assert.Equal(t, map[string]int{"general": 3, "press_conference": 1}, mc.CollectionStats.ContentTypes)
	assert.Equal(t, testNow, mc.LastUpdated)
}

func TestAggregator_BuildContextEmpty(t *testing.T) {
	agg := New(Params{Processor: testProcessor, Now: func() time.Time { return testNow }})
	mc := agg.BuildContext(testMatch, nil)
	assert.Equal(t, 0, mc.TotalArticles)
	assert.Empty(t, mc.SourceBreakdown)
	assert.Empty(t, mc.KeyNarratives)
	assert.Empty(t, mc.TrendingTopics)
	assert.Nil(t, mc.CollectionStats)
	assert.Empty(t, mc.Error)
}

func TestAggregator_BuildContextFailure(t *testing.T) {
	agg := New(Params{Processor: testProcessor, Now: func() time.Time { return testNow }})
	articles := append(contextArticles(), nil)

	mc := agg.BuildContext(testMatch, articles)
	require.NotNil(t, mc)
	assert.Contains(t, mc.Error, "context generation failed")
	assert.Equal(t, 5, mc.TotalArticles)
	assert.Equal(t, []string{"Arsenal", "Chelsea"}, mc.Teams)
	assert.Equal(t, testNow, mc.LastUpdated)
}

func TestAggregator_Insights(t *testing.T) {
	summarizer := &mocks.SummarizerMock{
		SummarizeFunc: func(context.Context, domain.Match, []*domain.Article) (llm.Summary, error) {
			return llm.Summary{Text: "Saka is a doubt.", KeyPoints: []string{"Saka injured"}, Confidence: 0.7}, nil
		},
	}
	agg := New(Params{Processor: testProcessor, Summarizer: summarizer, Now: func() time.Time { return testNow }})
	articles := contextArticles()
	mc := agg.BuildContext(testMatch, articles)

	insights := agg.Insights(context.Background(), testMatch, articles, mc)
	require.Len(t, insights, 4)

	assert.Equal(t, "coverage", insights[0].Type)
	assert.Equal(t, "Found 4 articles from 3 different source types", insights[0].Description)
	assert.Len(t, insights[0].Supporting, 3)

	assert.Equal(t, "sentiment", insights[1].Type)
	assert.Equal(t, "Overall Sentiment: Negative", insights[1].Title)
	assert.Equal(t, "The overall sentiment in match coverage is negative (50.0% of articles)", insights[1].Description)
	assert.Equal(t, []string{"Arsenal injury update ahead", "Arsenal injury blow for Saka"}, insights[1].Supporting)

	assert.Equal(t, "trending", insights[2].Type)
	assert.Equal(t, "Most discussed topics: arsenal, injury", insights[2].Description)

	assert.Equal(t, "summary", insights[3].Type)
	assert.Equal(t, "Saka is a doubt.", insights[3].Description)
	assert.Equal(t, []string{"Saka injured"}, insights[3].Supporting)
	require.Len(t, summarizer.SummarizeCalls(), 1)
	assert.Equal(t, testMatch, summarizer.SummarizeCalls()[0].M)
	assert.Equal(t, testNow, insights[3].Timestamp)
}

func TestAggregator_InsightsQualityAndSummaryFailure(t *testing.T) {
	summarizer := &mocks.SummarizerMock{
		SummarizeFunc: func(context.Context, domain.Match, []*domain.Article) (llm.Summary, error) {
			return llm.Summary{}, errors.New("llm request failed")
		},
	}
	agg := New(Params{Processor: testProcessor, Summarizer: summarizer})

	articles := []*domain.Article{}
	for i := 0; i < 6; i++ {
		a := &domain.Article{Title: fmt.Sprintf("Match report %d", i), SourceType: domain.SourceRSS,
			Sentiment: content.SentimentNeutral}
		a.SetQuality(0.9)
		articles = append(articles, a)
	}
	mc := agg.BuildContext(testMatch, articles)

	insights := agg.Insights(context.Background(), testMatch, articles, mc)
	require.Len(t, insights, 2, "coverage and quality, no sentiment, topics or summary")
	assert.Equal(t, "coverage", insights[0].Type)
	assert.Equal(t, "quality", insights[1].Type)
	assert.Equal(t, "Found 6 high-quality articles from reliable sources", insights[1].Description)
	assert.Equal(t, []string{"Match report 0", "Match report 1", "Match report 2"}, insights[1].Supporting)
	assert.Len(t, summarizer.SummarizeCalls(), 1)

	assert.Empty(t, agg.Insights(context.Background(), testMatch, nil, nil))
}

func TestAggregator_SentimentAnalysis(t *testing.T) {
	agg := New(Params{Processor: testProcessor, Now: func() time.Time { return testNow }})

	_, err := agg.SentimentAnalysis(nil)
	require.Error(t, err)

	articles := []*domain.Article{}
	for i := 0; i < 12; i++ {
		sentiment := content.SentimentPositive
		st := domain.SourceRSS
		if i%3 == 0 {
			sentiment = content.SentimentNegative
			st = domain.SourceReddit
		}
		// newest first, analysis sorts by publication
		articles = append(articles, &domain.Article{Title: fmt.Sprintf("article %d", i), SourceType: st,
			Sentiment: sentiment, PublishedAt: testNow.Add(-time.Duration(i) * time.Hour)})
	}

	rep, err := agg.SentimentAnalysis(articles)
	require.NoError(t, err)
	assert.Equal(t, 12, rep.Analyzed)
	assert.Equal(t, testNow, rep.AnalyzedAt)
	assert.Equal(t, content.SentimentPositive, rep.Overall.Overall)
	assert.InDelta(t, 8.0/12, rep.Overall.Positive, 0.0001)

	assert.Equal(t, domain.SentimentOverview{Positive: 1, Overall: content.SentimentPositive}, rep.BySourceType["rss"])
	assert.Equal(t, domain.SentimentOverview{Negative: 1, Overall: content.SentimentNegative}, rep.BySourceType["reddit"])

	require.Len(t, rep.Timeline, 6)
	assert.Equal(t, testNow.Add(-11*time.Hour), rep.Timeline[0].Period)
	assert.Equal(t, testNow.Add(-1*time.Hour), rep.Timeline[5].Period)
	for _, p := range rep.Timeline {
		assert.Equal(t, 2, p.Articles)
	}
}

func TestTimeline(t *testing.T) {
	base := time.Date(2024, 5, 12, 10, 0, 0, 0, time.UTC)
	mk := func(title string, published time.Time, q float64) *domain.Article {
		a := &domain.Article{Title: title, Source: "bbc_sport", PublishedAt: published}
		a.SetQuality(q)
		return a
	}
	articles := []*domain.Article{
		mk("late", base.Add(2*time.Hour+5*time.Minute), 0.5),
		mk("first", base.Add(15*time.Minute), 0.8),
		mk("second", base.Add(45*time.Minute), 0.6),
	}
	articles[2].ContentType = "injury_news"

	res := Timeline(articles)
	require.Len(t, res, 2)
	assert.Equal(t, base, res[0].Timestamp)
	assert.Equal(t, 2, res[0].Count)
	assert.InDelta(t, 0.7, res[0].AvgQuality, 0.0001)
	assert.Equal(t, []domain.TimelineEntry{
		{Title: "first", Source: "bbc_sport", QualityScore: 0.8, ContentType: "general"},
		{Title: "second", Source: "bbc_sport", QualityScore: 0.6, ContentType: "injury_news"},
	}, res[0].Articles)
	assert.Equal(t, base.Add(2*time.Hour), res[1].Timestamp)
	assert.Equal(t, 1, res[1].Count)

	assert.Empty(t, Timeline(nil))
}

func TestMostCommon(t *testing.T) {
	res := mostCommon([]string{"b", "a", "b", "c", "a", "d"}, 3)
	assert.Equal(t, []valueCount{{"b", 2}, {"a", 2}, {"c", 1}}, res)
	assert.Empty(t, mostCommon(nil, 3))
}

func TestAggregator_QualityReport(t *testing.T) {
	agg := New(Params{Processor: testProcessor, LowQualityThreshold: 0.5, Now: func() time.Time { return testNow }})
	articles := contextArticles()
	dup := *articles[0]
	dup.Source = "reddit_soccer"
	dup.SetQuality(0.3)
	articles = append(articles, &dup)

	report := agg.QualityReport(articles, 2)
	assert.Equal(t, 5, report.Distribution.Total)
	assert.InDelta(t, 0.85, report.RecommendedThreshold, 0.0001)
	assert.Equal(t, 2, report.LowQuality)
	assert.InDelta(t, 0.5, report.LowQualityThreshold, 0.0001)

	assert.Equal(t, 5, report.Duplicates.TotalArticles)
	assert.Equal(t, 4, report.Duplicates.UniqueArticles)
	assert.Equal(t, 1, report.Duplicates.DuplicatesRemoved)
	assert.InDelta(t, 0.3, report.Duplicates.MinQuality, 0.0001)
	assert.Nil(t, articles[0].Dedup, "articles are not modified")

	empty := agg.QualityReport(nil, 10)
	assert.Zero(t, empty.Distribution.Total)
	assert.InDelta(t, domain.DefaultQuality, empty.RecommendedThreshold, 0.0001)
	assert.Zero(t, empty.Duplicates.TotalArticles)
}
