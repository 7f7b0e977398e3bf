package dedup

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/matchnews/pkg/domain"
)

func TestMerge(t *testing.T) {
	canon := &domain.Article{Title: "Salah signs new deal", Source: "bbc_sport", Content: "short", QualityScore: qp(0.6)}
	dup := domain.Article{Title: "Salah signs new deal", Source: "the_athletic", SourceType: domain.SourceAPI,
		Link: "https://athletic.com/1", Content: "much longer content body", QualityScore: qp(0.8)}

	Merge(canon, dup, testNow)
	require.NotNil(t, canon.Dedup)
	assert.True(t, canon.Dedup.IsOriginal)
	assert.Equal(t, 1, canon.Dedup.MergedCount)
	assert.Equal(t, domain.MergedSource{Source: "the_athletic", SourceType: domain.SourceAPI, URL: "https://athletic.com/1",
		QualityScore: 0.8, MergedAt: testNow}, canon.Dedup.MergedSources[0])
	assert.InDelta(t, 0.8, canon.Quality(), 0.0001)
	assert.Equal(t, "much longer content body", canon.Content)
	assert.NotEmpty(t, canon.Dedup.Hashes.Title)

	Merge(canon, domain.Article{Source: "espn"}, testNow.Add(time.Minute))
	assert.Equal(t, 2, canon.Dedup.MergedCount)
	assert.Equal(t, testNow.Add(time.Minute), canon.Dedup.LastSeen)
	assert.InDelta(t, 0.8, canon.Quality(), 0.0001, "default quality of dup doesn't lower the score")
}

func TestMergeAuthors(t *testing.T) {
	tests := []struct{ a, b, want string }{
		{"", "", ""},
		{"John", "", "John"},
		{"", "Jane", "Jane"},
		{"John", "Jane", "John, Jane"},
		{"John, Jane", "Jane", "John, Jane"},
		{"John", " John ", "John"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, mergeAuthors(tt.a, tt.b), "%q + %q", tt.a, tt.b)
	}
}

func TestSmartMerger_MergeCluster(t *testing.T) {
	m := NewSmartMerger(func() time.Time { return testNow })

	assert.Nil(t, m.MergeCluster(nil))

	single := &domain.Article{Title: "one"}
	assert.Same(t, single, m.MergeCluster([]*domain.Article{single}))

	early := testNow.Add(-2 * time.Hour)
	low := &domain.Article{Title: "Derby report", Source: "reddit", Author: "u/fan", Content: "longest content of them all",
		Tags: []string{"derby", "fans"}, PublishedAt: early, QualityScore: qp(0.3)}
	high := &domain.Article{Title: "Derby report", Source: "bbc_sport", Author: "Phil McNulty", Content: "short",
		Tags: []string{"derby"}, PublishedAt: testNow, QualityScore: qp(0.9)}

	res := m.MergeCluster([]*domain.Article{low, high})
	require.NotNil(t, res)
	assert.Equal(t, "bbc_sport", res.Source)
	assert.Equal(t, "longest content of them all", res.Content)
	assert.Equal(t, "Phil McNulty, u/fan", res.Author)
	assert.Equal(t, []string{"derby", "fans"}, res.Tags)
	assert.Equal(t, early, res.PublishedAt)
	assert.InDelta(t, 0.9, res.Quality(), 0.0001)

	require.NotNil(t, res.MergeInfo)
	assert.Equal(t, 2, res.MergeInfo.MergedFrom)
	assert.Equal(t, "bbc_sport", res.MergeInfo.PrimarySource)
	assert.Len(t, res.MergeInfo.SourceArticles, 2)
	assert.Equal(t, testNow, res.MergeInfo.MergedAt)

	// inputs untouched
	assert.Equal(t, "short", high.Content)
	assert.Equal(t, []string{"derby"}, high.Tags)
	assert.Nil(t, high.MergeInfo)
}
