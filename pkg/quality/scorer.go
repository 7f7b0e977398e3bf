// Package quality scores articles for credibility. The score combines six independent sub-scores
// (source reputation, content heuristics, authority signals, freshness, engagement and internal
// consistency), scales the sum by a content-type multiplier and clamps it to [0,1].
package quality

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/matchnews/pkg/domain"
)

var (
	namedPersonRe = regexp.MustCompile(`\b[A-Z][a-z]+ [A-Z][a-z]+\b`)
	statisticRe   = regexp.MustCompile(`\d+%|\d+\.\d+|statistics|data|analysis`)
	sentenceRe    = regexp.MustCompile(`[.!?]+`)
	punctRe       = regexp.MustCompile(`[.!?]`)
	capitalRe     = regexp.MustCompile(`\b[A-Z][a-z]+\b`)
)

// Scorer computes quality scores. Stateless except for the clock, safe for concurrent use.
type Scorer struct {
	now func() time.Time
}

// Option customizes Scorer
type Option func(s *Scorer)

// WithNow sets the clock used for freshness
func WithNow(now func() time.Time) Option {
	return func(s *Scorer) { s.now = now }
}

// Result of a single evaluation. On failure Score is the default and Err tells why.
type Result struct {
	Score     float64
	Breakdown *domain.QualityBreakdown
	Err       error
}

// NewScorer makes a quality scorer
func NewScorer(opts ...Option) *Scorer {
	s := &Scorer{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Score calculates the quality score and attaches the breakdown to the article.
// Failures are logged and give domain.DefaultQuality.
func (s *Scorer) Score(a *domain.Article) float64 {
	res := s.Evaluate(a)
	if res.Err != nil {
		lgr.Printf("[WARN] quality scoring failed, default used: %v", res.Err)
		return res.Score
	}
	a.QualityBreakdown = res.Breakdown
	return res.Score
}

// ScoreBatch scores all articles and sets their QualityScore. Articles failed to score get the
// default score, the batch is never interrupted.
func (s *Scorer) ScoreBatch(articles []*domain.Article) []Result {
	res := make([]Result, 0, len(articles))
	for _, a := range articles {
		r := s.Evaluate(a)
		if a != nil {
			a.SetQuality(r.Score)
			if r.Breakdown != nil {
				a.QualityBreakdown = r.Breakdown
			}
		}
		if r.Err != nil {
			lgr.Printf("[WARN] failed to score article: %v", r.Err)
		}
		res = append(res, r)
	}
	return res
}

// Evaluate computes the score without touching the article
func (s *Scorer) Evaluate(a *domain.Article) (res Result) {
	if a == nil {
		return Result{Score: domain.DefaultQuality, Err: errors.New("nil article")}
	}
	defer func() {
		if r := recover(); r != nil {
			res = Result{Score: domain.DefaultQuality, Err: fmt.Errorf("score %q: %v", a.Title, r)}
		}
	}()

	body := a.Body()
	bd := domain.QualityBreakdown{
		Source:       sourceScore(a.Source, string(a.SourceType)),
		Content:      contentScore(a.Title, body),
		Authority:    authorityScore(a.Title, body),
		Freshness:    s.freshnessScore(a.PublishedAt),
		Engagement:   engagementScore(a),
		Consistency:  consistencyScore(a),
		CalculatedAt: s.now(),
	}

	total := bd.Source*weightSource + bd.Content*weightContent + bd.Authority*weightAuthority +
		bd.Freshness*weightFreshness + bd.Engagement*weightEngagement + bd.Consistency*weightConsistency

	bd.ContentMultiplier = 1.0
	if m, ok := contentMultipliers[a.ContentType]; ok {
		bd.ContentMultiplier = m
	}
	total *= bd.ContentMultiplier
	if math.IsNaN(total) || math.IsInf(total, 0) {
		return Result{Score: domain.DefaultQuality, Err: fmt.Errorf("score %q: non-finite result", a.Title)}
	}
	bd.Final = clamp(total)
	return Result{Score: bd.Final, Breakdown: &bd}
}

// sourceScore looks up the reputation by source name, then by source type, and applies tier,
// official and aggregator adjustments
func sourceScore(source, sourceType string) float64 {
	name := strings.ToLower(source)
	base, ok := sourceWeights[name]
	if !ok {
		base, ok = sourceWeights[sourceType]
	}
	if !ok {
		base = domain.DefaultQuality
	}

	for _, t := range tiers {
		if containsAny(name, t.sources) {
			base *= t.multiplier
			break
		}
	}
	if containsAny(name, officialMarkers) {
		base *= 1.1
	}
	if containsAny(name, aggregatorMarkers) {
		base *= 0.8
	}
	return math.Min(base, 1.0)
}

func contentScore(title, body string) float64 {
	text := strings.ToLower(title + " " + body)
	score := 0.5

	net := countIndicators(text, positiveIndicators) - countIndicators(text, negativeIndicators)
	score += float64(net) * 0.05

	words := len(strings.Fields(body))
	if body == "" {
		words = len(strings.Fields(title))
	}
	switch {
	case words >= 200 && words <= 800:
		score += 0.1
	case words < 50:
		score -= 0.2
	case words > 1500:
		score -= 0.1
	}

	score += structureScore(body) * 0.2
	return clamp(score)
}

// structureScore rates sentence length, paragraphs, punctuation and proper noun density, in [-0.1,1]
func structureScore(body string) float64 {
	words := len(strings.Fields(body))
	if words == 0 {
		return 0
	}

	var score float64
	sentences := 0
	sentenceWords := 0
	for _, s := range sentenceRe.Split(body, -1) {
		if n := len(strings.Fields(s)); n > 0 {
			sentences++
			sentenceWords += n
		}
	}
	if sentences > 0 {
		avg := float64(sentenceWords) / float64(sentences)
		switch {
		case avg >= 15 && avg <= 25:
			score += 0.3
		case avg >= 10 && avg <= 30:
			score += 0.2
		case avg < 5 || avg > 40:
			score -= 0.1
		}
	}

	paragraphs := 0
	for _, p := range strings.Split(body, "\n\n") {
		if strings.TrimSpace(p) != "" {
			paragraphs++
		}
	}
	if paragraphs > 1 {
		score += 0.2
	}

	if r := float64(len(punctRe.FindAllString(body, -1))) / float64(words); r >= 0.05 && r <= 0.15 {
		score += 0.2
	}
	if r := float64(len(capitalRe.FindAllString(body, -1))) / float64(words); r >= 0.1 && r <= 0.3 {
		score += 0.3
	}
	return math.Min(score, 1.0)
}

func authorityScore(title, body string) float64 {
	text := strings.ToLower(title + " " + body)
	score := 0.5

	hits := 0
	for _, term := range authorityTerms {
		if strings.Contains(text, term) {
			hits++
		}
	}
	score += math.Min(float64(hits)*0.1, 0.3)

	named := body
	if named == "" {
		named = title
	}
	if namedPersonRe.MatchString(named) {
		score += 0.1
	}
	if strings.ContainsAny(text, `"'“”`) {
		score += 0.1
	}
	if statisticRe.MatchString(text) {
		score += 0.1
	}
	return math.Min(score, 1.0)
}

// freshnessScore is a step function of article age, unset date gives the neutral 0.5
func (s *Scorer) freshnessScore(published time.Time) float64 {
	if published.IsZero() {
		return 0.5
	}
	age := s.now().Sub(published)
	switch {
	case age <= time.Hour:
		return 1.0
	case age <= 6*time.Hour:
		return 0.9
	case age <= 24*time.Hour:
		return 0.8
	case age <= 72*time.Hour:
		return 0.6
	case age <= 168*time.Hour:
		return 0.4
	default:
		return 0.2
	}
}

func engagementScore(a *domain.Article) float64 {
	score := 0.5
	if a.Reddit != nil {
		score += math.Min(float64(a.Reddit.Score)*redditUpvoteWeight, 0.3)
		score += math.Min(float64(a.Reddit.NumComments)*redditCommentWeight, 0.3)
	}
	if a.Twitter != nil && journalists[a.Twitter.Account] {
		score += 0.2
	}
	if a.ViewCount > 0 {
		score += math.Min(math.Log10(float64(a.ViewCount))*0.05, 0.2)
	}
	return clamp(score)
}

func consistencyScore(a *domain.Article) float64 {
	score := 0.5
	if a.Summary != "" && a.Content != "" {
		title, summary, content := wordSet(a.Title), wordSet(a.Summary), wordSet(a.Content)
		if len(title) > 0 && len(summary) > 0 {
			score += jaccard(title, summary) * 0.2
		}
		if len(summary) > 0 && len(content) > 0 {
			score += jaccard(summary, content) * 0.2
		}
	}
	if !a.PublishedAt.IsZero() && !a.CollectedAt.IsZero() && !a.PublishedAt.After(a.CollectedAt) {
		score += 0.1
	}
	return math.Min(score, 1.0)
}

func countIndicators(text string, groups [][]string) int {
	res := 0
	for _, g := range groups {
		for _, ind := range g {
			if strings.Contains(text, ind) {
				res++
			}
		}
	}
	return res
}

// wordSet returns lowercased words without stop words
func wordSet(s string) map[string]bool {
	res := map[string]bool{}
	for _, w := range strings.Fields(strings.ToLower(s)) {
		if !stopWords[w] {
			res[w] = true
		}
	}
	return res
}

func jaccard(a, b map[string]bool) float64 {
	inter := 0
	for w := range a {
		if b[w] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
