package domain

import "time"

// MatchStatus is the aggregation state of a match
type MatchStatus string

// match statuses
const (
	MatchAggregating MatchStatus = "aggregating"
	MatchCompleted   MatchStatus = "completed"
	MatchFailed      MatchStatus = "failed"
)

// Match identifies a football match news is collected for
type Match struct {
	ID       string    `json:"match_id"`
	HomeTeam string    `json:"home_team"`
	AwayTeam string    `json:"away_team"`
	Date     time.Time `json:"match_date"`
	Priority string    `json:"priority,omitempty"`
}

// Teams returns both team names, home first
func (m Match) Teams() []string {
	return []string{m.HomeTeam, m.AwayTeam}
}

// MatchInfo is the stored aggregation state of a match
type MatchInfo struct {
	Match
	Status             MatchStatus `json:"status"`
	AggregationStarted time.Time   `json:"aggregation_started"`
	AggregationEnded   *time.Time  `json:"aggregation_completed,omitempty"`
	ArticlesCollected  int         `json:"articles_collected"`
	SourcesProcessed   int         `json:"sources_processed"`
	Errors             []string    `json:"errors"`
}

// MatchContext is the aggregate view of match coverage
type MatchContext struct {
	MatchID         string                 `json:"match_id"`
	Teams           []string               `json:"teams"`
	TotalArticles   int                    `json:"total_articles"`
	SourceBreakdown map[string]int         `json:"source_breakdown"`
	QualityStats    QualityStats           `json:"quality_stats"`
	Sentiment       SentimentOverview      `json:"sentiment_overview"`
	KeyNarratives   []string               `json:"key_narratives"`
	TrendingTopics  []string               `json:"trending_topics"`
	TeamInsights    map[string]TeamInsight `json:"team_insights,omitempty"`
	CollectionStats *CollectionStats       `json:"collection_stats,omitempty"`
	Error           string                 `json:"error,omitempty"`
	LastUpdated     time.Time              `json:"last_updated"`
}

// QualityStats summarizes quality of match coverage
type QualityStats struct {
	Average          float64 `json:"average_quality"`
	HighQualityCount int     `json:"high_quality_count"`
	LowQualityCount  int     `json:"low_quality_count"`
}

// SentimentOverview is a rollup of article sentiments
type SentimentOverview struct {
	Positive float64 `json:"positive"`
	Negative float64 `json:"negative"`
	Neutral  float64 `json:"neutral"`
	Overall  string  `json:"overall"`
}

// TeamInsight counts team coverage
type TeamInsight struct {
	Mentions  int      `json:"mentions"`
	Sentiment string   `json:"sentiment"`
	KeyTopics []string `json:"key_topics"`
}

// CollectionStats describes the collected article set
type CollectionStats struct {
	LatestArticle time.Time      `json:"latest_article"`
	OldestArticle time.Time      `json:"oldest_article"`
	Languages     []string       `json:"languages"`
	ContentTypes  map[string]int `json:"content_types"`
}

// Insight is a short human-readable finding about match coverage
type Insight struct {
	Type        string    `json:"insight_type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Confidence  float64   `json:"confidence"`
	Supporting  []string  `json:"supporting_articles"`
	Timestamp   time.Time `json:"timestamp"`
}

// AggregationResult is returned to the caller after a match aggregation
type AggregationResult struct {
	MatchID           string        `json:"match_id"`
	Status            MatchStatus   `json:"status"`
	ArticlesCollected int           `json:"articles_collected"`
	ArticlesStored    int           `json:"articles_stored"`
	DuplicatesRemoved int           `json:"duplicates_removed"`
	SourcesProcessed  int           `json:"sources_processed"`
	ProcessingTime    time.Duration `json:"processing_time"`
	Errors            []string      `json:"errors"`
	Context           *MatchContext `json:"context,omitempty"`
}

// SourceStats tracks per-source collection health
type SourceStats struct {
	Source        string    `json:"source"`
	SourceType    string    `json:"source_type"`
	Articles      int       `json:"articles"`
	AvgQuality    float64   `json:"avg_quality"`
	LastError     string    `json:"last_error,omitempty"`
	LastCollected time.Time `json:"last_collected"`
}

// SentimentReport is a detailed sentiment analysis of match coverage
type SentimentReport struct {
	Overall      SentimentOverview            `json:"overall_sentiment"`
	BySourceType map[string]SentimentOverview `json:"source_sentiment"`
	Timeline     []SentimentPeriod            `json:"time_sentiment"`
	Analyzed     int                          `json:"analyzed_articles"`
	AnalyzedAt   time.Time                    `json:"analysis_timestamp"`
}

// SentimentPeriod is the sentiment of articles published in one period, starting at Period
type SentimentPeriod struct {
	Period    time.Time         `json:"period"`
	Sentiment SentimentOverview `json:"sentiment"`
	Articles  int               `json:"article_count"`
}

// AggregatorStats are running counters of the aggregator since start
type AggregatorStats struct {
	Aggregations       int           `json:"aggregations_completed"`
	ArticlesCollected  int           `json:"total_articles_collected"`
	Successful         int           `json:"successful_collections"`
	Failed             int           `json:"failed_collections"`
	SuccessRate        float64       `json:"success_rate"`
	AvgAggregationTime time.Duration `json:"avg_aggregation_time"`
	LastAggregation    time.Time     `json:"last_aggregation"`
	ActiveTasks        int           `json:"active_tasks"`
}

// health statuses
const (
	HealthOK        = "healthy"
	HealthDegraded  = "degraded"
	HealthUnhealthy = "unhealthy"
)

// HealthStatus reports aggregator readiness
type HealthStatus struct {
	Status        string                     `json:"status"`
	Database      string                     `json:"database"`
	Collectors    map[string]bool            `json:"collectors"`
	SourcesHealth map[string]map[string]bool `json:"sources_health,omitempty"`
	Stats         AggregatorStats            `json:"stats"`
	Error         string                     `json:"error,omitempty"`
	LastCheck     time.Time                  `json:"last_check"`
}

// TimelinePeriod groups articles published within the same hour
type TimelinePeriod struct {
	Timestamp  time.Time       `json:"timestamp"`
	Count      int             `json:"article_count"`
	AvgQuality float64         `json:"avg_quality"`
	Articles   []TimelineEntry `json:"articles"`
}

// TimelineEntry is a short view of an article on the timeline
type TimelineEntry struct {
	Title        string  `json:"title"`
	Source       string  `json:"source"`
	QualityScore float64 `json:"quality_score"`
	ContentType  string  `json:"content_type"`
}
