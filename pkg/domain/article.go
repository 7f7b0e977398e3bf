package domain

import (
	"strings"
	"time"
)

// SourceType identifies the kind of collector an article came from
type SourceType string

// supported source types
const (
	SourceRSS     SourceType = "rss"
	SourceReddit  SourceType = "reddit"
	SourceAPI     SourceType = "api"
	SourceScrape  SourceType = "scrape"
	SourceTwitter SourceType = "twitter"
)

// DefaultQuality is used for articles without a quality score
const DefaultQuality = 0.5

// Article is a single news record produced by a collector. There is no stable upstream ID,
// identity is derived from the content by the deduplicator.
type Article struct {
	MatchID        string     `json:"match_id,omitempty"`
	Title          string     `json:"title"`
	Summary        string     `json:"summary"`
	Content        string     `json:"content"`
	Link           string     `json:"link"`
	Author         string     `json:"author"`
	PublishedAt    time.Time  `json:"published_at"`
	Source         string     `json:"source"`
	SourceType     SourceType `json:"source_type"`
	RelevanceScore float64    `json:"relevance_score"`
	QualityScore   *float64   `json:"quality_score,omitempty"`
	Tags           []string   `json:"tags"`
	CollectedAt    time.Time  `json:"collected_at"`

	// filled by content processing
	Language    string `json:"language,omitempty"`
	ContentType string `json:"content_type,omitempty"`
	Sentiment   string `json:"sentiment,omitempty"`

	// source-specific side channels
	Reddit    *RedditData  `json:"reddit_data,omitempty"`
	Twitter   *TwitterData `json:"twitter_data,omitempty"`
	ViewCount int64        `json:"view_count,omitempty"`

	QualityBreakdown *QualityBreakdown `json:"quality_breakdown,omitempty"`
	QualityFlags     *QualityFlags     `json:"quality_flags,omitempty"`
	Dedup            *DedupRecord      `json:"deduplication_info,omitempty"`
	MergeInfo        *MergeInfo        `json:"merge_info,omitempty"`
}

// RedditData holds engagement counters of a reddit submission
type RedditData struct {
	Score       int    `json:"score"`
	NumComments int    `json:"num_comments"`
	Subreddit   string `json:"subreddit"`
	Category    string `json:"category"`
}

// TwitterData holds tweet metadata collected via nitter
type TwitterData struct {
	Account   string `json:"account"`
	TweetType string `json:"tweet_type"`
}

// Quality returns quality score or DefaultQuality if the article was never scored
func (a *Article) Quality() float64 {
	if a.QualityScore == nil {
		return DefaultQuality
	}
	return *a.QualityScore
}

// SetQuality sets quality score
func (a *Article) SetQuality(q float64) {
	a.QualityScore = &q
}

// URL returns article link
func (a *Article) URL() string {
	return a.Link
}

// Body returns content, falling back to summary
func (a *Article) Body() string {
	if a.Content != "" {
		return a.Content
	}
	return a.Summary
}

// HasTag checks if article carries the tag
func (a *Article) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Normalize applies defaults for optional fields: trims text, sets unset dates to now.
// Quality stays unset, Quality() reports the default.
func (a *Article) Normalize(now time.Time) {
	a.Title = strings.TrimSpace(a.Title)
	a.Link = strings.TrimSpace(a.Link)
	if a.PublishedAt.IsZero() {
		a.PublishedAt = now
	}
	if a.CollectedAt.IsZero() {
		a.CollectedAt = now
	}
	if a.Tags == nil {
		a.Tags = []string{}
	}
}

// Valid reports whether the article has enough identity to be processed
func (a *Article) Valid() bool {
	return a.Title != "" || a.Link != ""
}

// QualityBreakdown is the detailed result of quality scoring
type QualityBreakdown struct {
	Source            float64   `json:"source_score"`
	Content           float64   `json:"content_score"`
	Authority         float64   `json:"authority_score"`
	Freshness         float64   `json:"freshness_score"`
	Engagement        float64   `json:"engagement_score"`
	Consistency       float64   `json:"consistency_score"`
	ContentMultiplier float64   `json:"content_multiplier"`
	Final             float64   `json:"final_score"`
	CalculatedAt      time.Time `json:"calculated_at"`
}

// QualityFlags marks an article as low quality with the sub-scores responsible
type QualityFlags struct {
	Flagged      bool      `json:"flagged"`
	Issues       []string  `json:"issues"`
	QualityScore float64   `json:"quality_score"`
	Threshold    float64   `json:"threshold"`
	FlaggedAt    time.Time `json:"flagged_at"`
}

// ArticleHashSet keeps hash keys derived from an article
type ArticleHashSet struct {
	Title    string `json:"title,omitempty"`
	Content  string `json:"content,omitempty"`
	URL      string `json:"url,omitempty"`
	Combined string `json:"combined"`
	Exact    string `json:"exact"`
}

// Matchable returns keys used for duplicate detection, empty keys are skipped.
// Combined hash is recorded but never matched on.
func (h ArticleHashSet) Matchable() []string {
	res := make([]string, 0, 4)
	for _, k := range []string{h.Exact, h.Title, h.Content, h.URL} {
		if k != "" {
			res = append(res, k)
		}
	}
	return res
}

// All returns every non-empty key including combined
func (h ArticleHashSet) All() []string {
	res := h.Matchable()
	if h.Combined != "" {
		res = append(res, h.Combined)
	}
	return res
}

// Contains checks if the key is one of the set's keys
func (h ArticleHashSet) Contains(key string) bool {
	if key == "" {
		return false
	}
	for _, k := range h.All() {
		if k == key {
			return true
		}
	}
	return false
}

// DedupRecord is attached to every canonical article and records what was merged into it
type DedupRecord struct {
	IsOriginal    bool           `json:"is_original"`
	MergedCount   int            `json:"merged_count"`
	MergedSources []MergedSource `json:"merged_sources"`
	FirstSeen     time.Time      `json:"first_seen"`
	LastSeen      time.Time      `json:"last_seen"`
	Hashes        ArticleHashSet `json:"hashes"`
}

// MergedSource is a provenance entry of a duplicate folded into a canonical article
type MergedSource struct {
	Source       string     `json:"source"`
	SourceType   SourceType `json:"source_type"`
	URL          string     `json:"url"`
	QualityScore float64    `json:"quality_score"`
	PublishedAt  time.Time  `json:"published_at"`
	MergedAt     time.Time  `json:"merged_at"`
}

// MergeInfo describes an explicit cluster merge
type MergeInfo struct {
	MergedFrom     int            `json:"merged_from"`
	SourceArticles []MergedSource `json:"source_articles"`
	MergedAt       time.Time      `json:"merged_at"`
	PrimarySource  string         `json:"primary_source"`
}
