package quality

import (
	"sort"

	"github.com/umputun/matchnews/pkg/domain"
)

// Distribution summarizes quality scores of an article set
type Distribution struct {
	Total         int                `json:"total_articles"`
	Average       float64            `json:"average_quality"`
	Median        float64            `json:"median_quality"`
	Buckets       Buckets            `json:"quality_distribution"`
	TopThreshold  float64            `json:"top_quality_threshold"` // score of the top 10% boundary
	SourceQuality map[string]float64 `json:"source_quality"`
}

// Buckets counts articles per quality band
type Buckets struct {
	Excellent int `json:"excellent"` // >= 0.8
	Good      int `json:"good"`      // [0.6, 0.8)
	Fair      int `json:"fair"`      // [0.4, 0.6)
	Poor      int `json:"poor"`      // < 0.4
}

// low-quality flag issues
const (
	IssueUnreliableSource = "unreliable_source"
	IssuePoorContent      = "poor_content_quality"
	IssueNoAuthority      = "lack_of_authority"
	IssueOutdated         = "outdated_content"
)

// DistributionOf returns quality distribution of the articles, zero value for an empty set
func DistributionOf(articles []*domain.Article) Distribution {
	scores := scoresOf(articles)
	if len(scores) == 0 {
		return Distribution{SourceQuality: map[string]float64{}}
	}

	res := Distribution{Total: len(scores), SourceQuality: SourceQuality(articles)}
	var sum float64
	for _, s := range scores {
		sum += s
		switch {
		case s >= 0.8:
			res.Buckets.Excellent++
		case s >= 0.6:
			res.Buckets.Good++
		case s >= 0.4:
			res.Buckets.Fair++
		default:
			res.Buckets.Poor++
		}
	}
	res.Average = sum / float64(len(scores))

	sort.Float64s(scores)
	res.Median = scores[len(scores)/2]
	top := len(scores) / 10
	res.TopThreshold = scores[len(scores)-1-top]
	return res
}

// SourceQuality returns average quality per source type
func SourceQuality(articles []*domain.Article) map[string]float64 {
	sums := map[string]float64{}
	counts := map[string]int{}
	for _, a := range articles {
		if a == nil {
			continue
		}
		st := string(a.SourceType)
		if st == "" {
			st = "unknown"
		}
		sums[st] += a.Quality()
		counts[st]++
	}
	res := make(map[string]float64, len(sums))
	for st, sum := range sums {
		res[st] = sum / float64(counts[st])
	}
	return res
}

// RecommendThreshold returns the score cutoff keeping about target articles. Zero means keep all,
// an empty set or non-positive target gives the default quality.
func RecommendThreshold(articles []*domain.Article, target int) float64 {
	scores := scoresOf(articles)
	if len(scores) == 0 || target <= 0 {
		return domain.DefaultQuality
	}
	if len(scores) <= target {
		return 0
	}
	sort.Sort(sort.Reverse(sort.Float64Slice(scores)))
	return scores[target-1]
}

// FlagLowQuality returns articles scored below threshold, each annotated with flags naming the
// weak sub-scores. Articles without a breakdown are flagged with no issues.
func (s *Scorer) FlagLowQuality(articles []*domain.Article, threshold float64) []*domain.Article {
	res := []*domain.Article{}
	for _, a := range articles {
		if a == nil || a.Quality() >= threshold {
			continue
		}
		issues := []string{}
		if bd := a.QualityBreakdown; bd != nil {
			if bd.Source < 0.4 {
				issues = append(issues, IssueUnreliableSource)
			}
			if bd.Content < 0.4 {
				issues = append(issues, IssuePoorContent)
			}
			if bd.Authority < 0.3 {
				issues = append(issues, IssueNoAuthority)
			}
			if bd.Freshness < 0.3 {
				issues = append(issues, IssueOutdated)
			}
		}
		a.QualityFlags = &domain.QualityFlags{
			Flagged:      true,
			Issues:       issues,
			QualityScore: a.Quality(),
			Threshold:    threshold,
			FlaggedAt:    s.now(),
		}
		res = append(res, a)
	}
	return res
}

func scoresOf(articles []*domain.Article) []float64 {
	res := make([]float64, 0, len(articles))
	for _, a := range articles {
		if a != nil {
			res = append(res, a.Quality())
		}
	}
	return res
}
