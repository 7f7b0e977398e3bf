package quality

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/matchnews/pkg/domain"
)

func scored(q float64, st domain.SourceType) *domain.Article {
	a := &domain.Article{SourceType: st}
	a.SetQuality(q)
	return a
}

func TestDistributionOf(t *testing.T) {
	articles := []*domain.Article{
		scored(0.9, domain.SourceRSS), scored(0.85, domain.SourceRSS), scored(0.7, domain.SourceAPI),
		scored(0.5, domain.SourceReddit), scored(0.3, domain.SourceReddit), nil,
	}
	d := DistributionOf(articles)
	assert.Equal(t, 5, d.Total)
	assert.InDelta(t, 0.65, d.Average, 0.0001)
	assert.InDelta(t, 0.7, d.Median, 0.0001)
	assert.InDelta(t, 0.9, d.TopThreshold, 0.0001)
	assert.Equal(t, Buckets{Excellent: 2, Good: 1, Fair: 1, Poor: 1}, d.Buckets)
	assert.InDelta(t, 0.875, d.SourceQuality["rss"], 0.0001)
	assert.InDelta(t, 0.4, d.SourceQuality["reddit"], 0.0001)

	empty := DistributionOf(nil)
	assert.Equal(t, 0, empty.Total)
	assert.NotNil(t, empty.SourceQuality)
}

func TestSourceQuality(t *testing.T) {
	res := SourceQuality([]*domain.Article{scored(0.8, domain.SourceRSS), scored(0.6, domain.SourceRSS),
		scored(0.4, ""), {SourceType: domain.SourceAPI}})
	assert.Equal(t, 3, len(res))
	assert.InDelta(t, 0.7, res["rss"], 0.0001)
	assert.InDelta(t, 0.4, res["unknown"], 0.0001)
	assert.InDelta(t, 0.5, res["api"], 0.0001, "unscored article counts as default")
}

func TestRecommendThreshold(t *testing.T) {
	articles := []*domain.Article{scored(0.5, ""), scored(0.9, ""), scored(0.7, ""), scored(0.6, ""), scored(0.8, "")}
	assert.InDelta(t, 0.8, RecommendThreshold(articles, 2), 0.0001)
	assert.InDelta(t, 0.5, RecommendThreshold(articles, 5), 0.0001)
	assert.InDelta(t, 0.0, RecommendThreshold(articles, 10), 0.0001)
	assert.InDelta(t, 0.5, RecommendThreshold(articles, 0), 0.0001)
	assert.InDelta(t, 0.5, RecommendThreshold(nil, 3), 0.0001)
}

func TestScorer_FlagLowQuality(t *testing.T) {
	s := newTestScorer()

	weak := scored(0.2, domain.SourceScrape)
	weak.QualityBreakdown = &domain.QualityBreakdown{Source: 0.3, Content: 0.5, Authority: 0.2, Freshness: 0.2}
	noBreakdown := scored(0.1, domain.SourceRSS)
	good := scored(0.8, domain.SourceRSS)

	res := s.FlagLowQuality([]*domain.Article{weak, good, noBreakdown}, 0.3)
	require.Len(t, res, 2)

	require.NotNil(t, weak.QualityFlags)
	assert.True(t, weak.QualityFlags.Flagged)
	assert.Equal(t, []string{IssueUnreliableSource, IssueNoAuthority, IssueOutdated}, weak.QualityFlags.Issues)
	assert.InDelta(t, 0.3, weak.QualityFlags.Threshold, 0.0001)
	assert.InDelta(t, 0.2, weak.QualityFlags.QualityScore, 0.0001)
	assert.Equal(t, testNow, weak.QualityFlags.FlaggedAt)

	assert.Empty(t, noBreakdown.QualityFlags.Issues)
	assert.Nil(t, good.QualityFlags)
}
