package aggregator

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
	"unicode"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/matchnews/pkg/content"
	"github.com/umputun/matchnews/pkg/dedup"
	"github.com/umputun/matchnews/pkg/domain"
	"github.com/umputun/matchnews/pkg/quality"
)

var narrativeStopWords = map[string]bool{"the": true, "a": true, "an": true, "and": true, "or": true, "but": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true, "with": true, "by": true, "vs": true, "v": true}

// BuildContext makes the match context from canonical articles. Never fails, on internal error
// a minimal context with the error message is returned.
func (a *Aggregator) BuildContext(m domain.Match, articles []*domain.Article) (res *domain.MatchContext) {
	now := a.now()
	defer func() {
		if r := recover(); r != nil {
			lgr.Printf("[ERROR] context generation failed for match %s: %v", m.ID, r)
			res = &domain.MatchContext{
				MatchID:       m.ID,
				Teams:         m.Teams(),
				TotalArticles: len(articles),
				Error:         fmt.Sprintf("context generation failed: %v", r),
				LastUpdated:   now,
			}
		}
	}()

	res = &domain.MatchContext{
		MatchID:         m.ID,
		Teams:           m.Teams(),
		TotalArticles:   len(articles),
		SourceBreakdown: map[string]int{},
		Sentiment:       sentimentOverview(articles),
		KeyNarratives:   keyNarratives(articles),
		TrendingTopics:  trendingTags(articles),
		LastUpdated:     now,
	}
	if len(articles) == 0 {
		return res
	}

	var sum float64
	for _, art := range articles {
		res.SourceBreakdown[orUnknown(string(art.SourceType))]++
		q := art.Quality()
		sum += q
		if q > 0.8 {
			res.QualityStats.HighQualityCount++
		}
		if q < 0.5 {
			res.QualityStats.LowQualityCount++
		}
	}
	res.QualityStats.Average = sum / float64(len(articles))
	res.TeamInsights = teamInsights(m, articles)
	res.CollectionStats = collectionStats(articles)
	return res
}

// Insights makes human-readable findings about match coverage: coverage overview, high quality
// coverage, prevailing sentiment, trending topics and, with a summarizer, a coverage summary.
// Articles are expected in the order to cite them, best first.
func (a *Aggregator) Insights(ctx context.Context, m domain.Match, articles []*domain.Article, mc *domain.MatchContext) []domain.Insight {
	now := a.now()
	res := []domain.Insight{}
	if mc == nil {
		return res
	}

	if mc.TotalArticles > 0 {
		res = append(res, domain.Insight{
			Type:  "coverage",
			Title: "Match Coverage Overview",
			Description: fmt.Sprintf("Found %d articles from %d different source types",
				mc.TotalArticles, len(mc.SourceBreakdown)),
			Confidence: 0.9,
			Supporting: titles(articles, func(*domain.Article) bool { return true }),
			Timestamp:  now,
		})
	}

	if mc.QualityStats.HighQualityCount > 5 {
		res = append(res, domain.Insight{
			Type:  "quality",
			Title: "High-Quality Coverage Available",
			Description: fmt.Sprintf("Found %d high-quality articles from reliable sources",
				mc.QualityStats.HighQualityCount),
			Confidence: 0.8,
			Supporting: titles(articles, func(art *domain.Article) bool { return art.Quality() > 0.8 }),
			Timestamp:  now,
		})
	}

	if overall := mc.Sentiment.Overall; overall != "" && overall != content.SentimentNeutral {
		share := mc.Sentiment.Positive
		if overall == content.SentimentNegative {
			share = mc.Sentiment.Negative
		}
		res = append(res, domain.Insight{
			Type:  "sentiment",
			Title: "Overall Sentiment: " + capitalize(overall),
			Description: fmt.Sprintf("The overall sentiment in match coverage is %s (%.1f%% of articles)",
				overall, share*100),
			Confidence: 0.7,
			Supporting: titles(articles, func(art *domain.Article) bool { return art.Sentiment == overall }),
			Timestamp:  now,
		})
	}

	if len(mc.TrendingTopics) > 0 {
		top := mc.TrendingTopics[:min(3, len(mc.TrendingTopics))]
		res = append(res, domain.Insight{
			Type:        "trending",
			Title:       "Key Topics in Discussion",
			Description: "Most discussed topics: " + strings.Join(top, ", "),
			Confidence:  0.6,
			Supporting: titles(articles, func(art *domain.Article) bool {
				for _, t := range top {
					if art.HasTag(t) {
						return true
					}
				}
				return false
			}),
			Timestamp: now,
		})
	}

	if a.summarizer != nil && len(articles) > 0 {
		summary, err := a.summarizer.Summarize(ctx, m, articles)
		if err != nil {
			lgr.Printf("[WARN] failed to summarize coverage of match %s: %v", m.ID, err)
			return res
		}
		res = append(res, domain.Insight{
			Type:        "summary",
			Title:       "Coverage Summary",
			Description: summary.Text,
			Confidence:  summary.Confidence,
			Supporting:  summary.KeyPoints,
			Timestamp:   now,
		})
	}
	return res
}

// SentimentAnalysis breaks down sentiment of the articles overall, per source type and over time.
// Time periods split the articles sorted by publication into about six equal chunks.
func (a *Aggregator) SentimentAnalysis(articles []*domain.Article) (domain.SentimentReport, error) {
	if len(articles) == 0 {
		return domain.SentimentReport{}, errors.New("no articles available for sentiment analysis")
	}

	res := domain.SentimentReport{
		Overall:      sentimentOverview(articles),
		BySourceType: map[string]domain.SentimentOverview{},
		Timeline:     []domain.SentimentPeriod{},
		Analyzed:     len(articles),
		AnalyzedAt:   a.now(),
	}

	bySource := map[string][]*domain.Article{}
	for _, art := range articles {
		st := orUnknown(string(art.SourceType))
		bySource[st] = append(bySource[st], art)
	}
	for st, list := range bySource {
		res.BySourceType[st] = sentimentOverview(list)
	}

	sorted := make([]*domain.Article, len(articles))
	copy(sorted, articles)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].PublishedAt.Before(sorted[j].PublishedAt) })
	chunk := max(1, len(sorted)/6)
	for i := 0; i < len(sorted); i += chunk {
		part := sorted[i:min(i+chunk, len(sorted))]
		res.Timeline = append(res.Timeline, domain.SentimentPeriod{
			Period:    part[0].PublishedAt,
			Sentiment: sentimentOverview(part),
			Articles:  len(part),
		})
	}
	return res, nil
}

// Timeline groups articles by the hour of publication, earliest first
func Timeline(articles []*domain.Article) []domain.TimelinePeriod {
	byHour := map[int64]*domain.TimelinePeriod{}
	for _, art := range articles {
		hour := art.PublishedAt.UTC().Truncate(time.Hour)
		p, ok := byHour[hour.Unix()]
		if !ok {
			p = &domain.TimelinePeriod{Timestamp: hour, Articles: []domain.TimelineEntry{}}
			byHour[hour.Unix()] = p
		}
		p.Count++
		p.Articles = append(p.Articles, domain.TimelineEntry{
			Title:        art.Title,
			Source:       art.Source,
			QualityScore: art.Quality(),
			ContentType:  orDefault(art.ContentType, "general"),
		})
	}

	res := make([]domain.TimelinePeriod, 0, len(byHour))
	for _, p := range byHour {
		var sum float64
		for _, e := range p.Articles {
			sum += e.QualityScore
		}
		p.AvgQuality = sum / float64(p.Count)
		res = append(res, *p)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].Timestamp.Before(res[j].Timestamp) })
	return res
}

// sentimentOverview gives shares of positive, negative and neutral articles. Overall is the
// most common label, ties resolved in positive, negative, neutral order.
func sentimentOverview(articles []*domain.Article) domain.SentimentOverview {
	if len(articles) == 0 {
		return domain.SentimentOverview{Overall: content.SentimentNeutral}
	}
	var pos, neg, neu int
	for _, art := range articles {
		switch art.Sentiment {
		case content.SentimentPositive:
			pos++
		case content.SentimentNegative:
			neg++
		default:
			neu++
		}
	}

	overall := content.SentimentPositive
	if neg > pos {
		overall = content.SentimentNegative
	}
	if neu > max(pos, neg) {
		overall = content.SentimentNeutral
	}
	total := float64(len(articles))
	return domain.SentimentOverview{
		Positive: float64(pos) / total,
		Negative: float64(neg) / total,
		Neutral:  float64(neu) / total,
		Overall:  overall,
	}
}

// keyNarratives finds recurring words among the ten most common title words. A word counts if it
// is longer than three letters, is not a stop word and appears more than twice.
func keyNarratives(articles []*domain.Article) []string {
	words := []string{}
	for _, art := range articles {
		words = append(words, strings.Fields(strings.ToLower(art.Title))...)
	}

	res := []string{}
	for _, wc := range mostCommon(words, 10) {
		if narrativeStopWords[wc.value] || len([]rune(wc.value)) <= 3 || wc.count <= 2 {
			continue
		}
		res = append(res, fmt.Sprintf("%s mentioned in %d articles", capitalize(wc.value), wc.count))
		if len(res) == 5 {
			break
		}
	}
	return res
}

// trendingTags returns up to ten most common tags seen more than once
func trendingTags(articles []*domain.Article) []string {
	tags := []string{}
	for _, art := range articles {
		tags = append(tags, art.Tags...)
	}
	res := []string{}
	for _, tc := range mostCommon(tags, 10) {
		if tc.count > 1 {
			res = append(res, tc.value)
		}
	}
	return res
}

// teamInsights counts articles mentioning each team, with their prevailing sentiment and top tags
func teamInsights(m domain.Match, articles []*domain.Article) map[string]domain.TeamInsight {
	res := map[string]domain.TeamInsight{}
	for _, team := range m.Teams() {
		name := strings.ToLower(team)
		mentioning := []*domain.Article{}
		tags := []string{}
		for _, art := range articles {
			if strings.Contains(strings.ToLower(art.Title+" "+art.Content), name) {
				mentioning = append(mentioning, art)
				tags = append(tags, art.Tags...)
			}
		}
		ti := domain.TeamInsight{Mentions: len(mentioning), Sentiment: content.SentimentNeutral, KeyTopics: []string{}}
		if len(mentioning) > 0 {
			ti.Sentiment = sentimentOverview(mentioning).Overall
		}
		for _, tc := range mostCommon(tags, 3) {
			ti.KeyTopics = append(ti.KeyTopics, tc.value)
		}
		res[team] = ti
	}
	return res
}

func collectionStats(articles []*domain.Article) *domain.CollectionStats {
	res := &domain.CollectionStats{Languages: []string{}, ContentTypes: map[string]int{}}
	langs := map[string]bool{}
	for i, art := range articles {
		if i == 0 || art.PublishedAt.After(res.LatestArticle) {
			res.LatestArticle = art.PublishedAt
		}
		if i == 0 || art.PublishedAt.Before(res.OldestArticle) {
			res.OldestArticle = art.PublishedAt
		}
		lang := orUnknown(art.Language)
		if !langs[lang] {
			langs[lang] = true
			res.Languages = append(res.Languages, lang)
		}
		res.ContentTypes[orDefault(art.ContentType, "general")]++
	}
	sort.Strings(res.Languages)
	return res
}

type valueCount struct {
	value string
	count int
}

// mostCommon returns up to n most frequent values, ties keep the order of first appearance
func mostCommon(values []string, n int) []valueCount {
	idx := map[string]int{}
	counts := []valueCount{}
	for _, v := range values {
		if i, ok := idx[v]; ok {
			counts[i].count++
			continue
		}
		idx[v] = len(counts)
		counts = append(counts, valueCount{value: v, count: 1})
	}
	sort.SliceStable(counts, func(i, j int) bool { return counts[i].count > counts[j].count })
	return counts[:min(n, len(counts))]
}

// titles returns titles of up to three articles passing the filter
func titles(articles []*domain.Article, filter func(*domain.Article) bool) []string {
	res := []string{}
	for _, art := range articles {
		if len(res) == 3 {
			break
		}
		if filter(art) {
			res = append(res, art.Title)
		}
	}
	return res
}

func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func orUnknown(s string) string {
	return orDefault(s, "unknown")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// QualityReport summarizes quality and duplication of match articles
type QualityReport struct {
	Distribution         quality.Distribution `json:"distribution"`
	RecommendedThreshold float64              `json:"recommended_threshold"`
	LowQuality           int                  `json:"low_quality_articles"`
	LowQualityThreshold  float64              `json:"low_quality_threshold"`
	Duplicates           dedup.Stats          `json:"duplicates"`
}

// QualityReport reports quality distribution, the score cutoff keeping about target articles
// and duplicates left among the articles. Articles are not modified.
func (a *Aggregator) QualityReport(articles []*domain.Article, target int) QualityReport {
	res := QualityReport{
		Distribution:         quality.DistributionOf(articles),
		RecommendedThreshold: quality.RecommendThreshold(articles, target),
		LowQualityThreshold:  a.lowQuality,
		Duplicates:           dedup.New(a.dedupConfig).Stats(articles),
	}
	for _, art := range articles {
		if art.Quality() < a.lowQuality {
			res.LowQuality++
		}
	}
	return res
}
