package dedup

import (
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/umputun/matchnews/pkg/domain"
)

// Merge folds a duplicate into the canonical article. The canonical side is mutated and owns
// the provenance list, the duplicate is consumed. Rules are applied in order:
//  1. provenance entry appended, merged count incremented
//  2. quality score can only go up
//  3. longer content and longer summary win, independently
//  4. tags are unioned
//  5. authors are combined as "A, B" when they differ
//  6. the earlier publication time wins
func Merge(canonical *domain.Article, dup domain.Article, now time.Time) {
	if canonical.Dedup == nil {
		canonical.Dedup = &domain.DedupRecord{IsOriginal: true, FirstSeen: now, Hashes: Hashes(canonical)}
	}
	rec := canonical.Dedup
	rec.MergedSources = append(rec.MergedSources, provenance(&dup, now))
	rec.MergedCount++

	fold(canonical, &dup)
	rec.LastSeen = now
}

// fold applies merge rules 2-6
func fold(dst, src *domain.Article) {
	if src.Quality() > dst.Quality() {
		dst.SetQuality(src.Quality())
	}

	if utf8.RuneCountInString(src.Content) > utf8.RuneCountInString(dst.Content) {
		dst.Content = src.Content
	}
	if utf8.RuneCountInString(src.Summary) > utf8.RuneCountInString(dst.Summary) {
		dst.Summary = src.Summary
	}

	dst.Tags = unionTags(dst.Tags, src.Tags)
	dst.Author = mergeAuthors(dst.Author, src.Author)

	if !src.PublishedAt.IsZero() && (dst.PublishedAt.IsZero() || src.PublishedAt.Before(dst.PublishedAt)) {
		dst.PublishedAt = src.PublishedAt
	}
}

func provenance(a *domain.Article, now time.Time) domain.MergedSource {
	return domain.MergedSource{
		Source:       a.Source,
		SourceType:   a.SourceType,
		URL:          a.URL(),
		QualityScore: a.Quality(),
		PublishedAt:  a.PublishedAt,
		MergedAt:     now,
	}
}

// unionTags keeps order of the first list and appends unseen tags from the second
func unionTags(a, b []string) []string {
	seen := make(map[string]bool, len(a)+len(b))
	res := make([]string, 0, len(a)+len(b))
	for _, list := range [][]string{a, b} {
		for _, t := range list {
			if t == "" || seen[t] {
				continue
			}
			seen[t] = true
			res = append(res, t)
		}
	}
	return res
}

// mergeAuthors keeps both bylines, an author already present in the list is not repeated
func mergeAuthors(primary, secondary string) string {
	primary, secondary = strings.TrimSpace(primary), strings.TrimSpace(secondary)
	switch {
	case secondary == "":
		return primary
	case primary == "":
		return secondary
	}
	for _, name := range strings.Split(primary, ",") {
		if strings.TrimSpace(name) == secondary {
			return primary
		}
	}
	return primary + ", " + secondary
}

// SmartMerger combines an explicit cluster of duplicate articles into one composite record
type SmartMerger struct {
	now func() time.Time
}

// NewSmartMerger makes a merger, nil clock means time.Now
func NewSmartMerger(now func() time.Time) *SmartMerger {
	if now == nil {
		now = time.Now
	}
	return &SmartMerger{now: now}
}

// MergeCluster merges articles of one cluster. The highest quality article is the base, the
// input articles are not modified. Returns nil for an empty cluster and the article itself for
// a single-element cluster.
func (m *SmartMerger) MergeCluster(articles []*domain.Article) *domain.Article {
	switch len(articles) {
	case 0:
		return nil
	case 1:
		return articles[0]
	}

	sorted := make([]*domain.Article, len(articles))
	copy(sorted, articles)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Quality() > sorted[j].Quality() })

	base := clone(sorted[0])
	for _, a := range sorted[1:] {
		fold(base, a)
	}

	now := m.now()
	info := &domain.MergeInfo{
		MergedFrom:     len(articles),
		SourceArticles: make([]domain.MergedSource, 0, len(articles)),
		MergedAt:       now,
		PrimarySource:  base.Source,
	}
	for _, a := range articles {
		info.SourceArticles = append(info.SourceArticles, provenance(a, now))
	}
	base.MergeInfo = info
	return base
}

// clone makes a copy of the article with its own tags and dedup record
func clone(a *domain.Article) *domain.Article {
	res := *a
	res.Tags = append([]string(nil), a.Tags...)
	if a.QualityScore != nil {
		res.SetQuality(*a.QualityScore)
	}
	if a.Dedup != nil {
		rec := *a.Dedup
		rec.MergedSources = append([]domain.MergedSource(nil), a.Dedup.MergedSources...)
		res.Dedup = &rec
	}
	return &res
}
