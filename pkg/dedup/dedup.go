// Package dedup collapses near-duplicate articles into canonical records.
//
// Detection is layered. Exact, title, content (first paragraph) and url hashes catch
// syndicated copies in O(1); when no hash matches, the article is compared against every
// canonical survivor with sequence-similarity ratios on normalized title, content and url.
// Articles are processed in descending quality order, so the best article of a cluster
// becomes canonical and the rest are merged into it.
package dedup

import (
	"math"
	"sort"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/matchnews/pkg/domain"
)

// Config for Deduplicator
type Config struct {
	Thresholds Thresholds
	CacheLimit int              // reported in cache stats, informational
	Now        func() time.Time // clock, time.Now if nil
}

// Deduplicator removes duplicates from article batches. The hash cache accumulates across
// Deduplicate calls until ClearCache is called. Not safe for concurrent use.
type Deduplicator struct {
	thresholds Thresholds
	cacheLimit int
	now        func() time.Time

	seen          map[string]struct{}
	titleHashes   map[string]struct{}
	contentHashes map[string]struct{}
	urlHashes     map[string]struct{}
}

// Stats describes duplicates in an article set
type Stats struct {
	TotalArticles       int            `json:"total_articles"`
	UniqueArticles      int            `json:"unique_articles"`
	DuplicatesRemoved   int            `json:"duplicates_removed"`
	DuplicatePercentage float64        `json:"duplicate_percentage"`
	SourceDistribution  map[string]int `json:"source_distribution"`
	AverageQuality      float64        `json:"average_quality_score"`
	MinQuality          float64        `json:"min_quality_score"`
	MaxQuality          float64        `json:"max_quality_score"`
}

// CacheStats reports hash cache size
type CacheStats struct {
	Total   int `json:"total_hashes"`
	Title   int `json:"title_hashes"`
	Content int `json:"content_hashes"`
	URL     int `json:"url_hashes"`
	Limit   int `json:"cache_size_limit"`
}

// canonical is a survivor of the current pass with its precomputed fingerprint
type canonical struct {
	article *domain.Article
	fp      fingerprint
}

// New makes a Deduplicator, zero config fields get defaults
func New(cfg Config) *Deduplicator {
	if cfg.Thresholds.Title == 0 {
		cfg.Thresholds.Title = DefaultThresholds.Title
	}
	if cfg.Thresholds.Content == 0 {
		cfg.Thresholds.Content = DefaultThresholds.Content
	}
	if cfg.Thresholds.URL == 0 {
		cfg.Thresholds.URL = DefaultThresholds.URL
	}
	if cfg.CacheLimit == 0 {
		cfg.CacheLimit = 10000
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	d := &Deduplicator{thresholds: cfg.Thresholds, cacheLimit: cfg.CacheLimit, now: cfg.Now}
	d.ClearCache()
	return d
}

// Deduplicate returns canonical articles of the batch, each with a dedup record. Duplicates are
// merged into their canonical article and dropped. Input is stably sorted by quality, so ties
// keep input order. Articles hash-matching a story from a previous batch (still in the cache)
// but not any survivor of this batch are dropped.
func (d *Deduplicator) Deduplicate(articles []*domain.Article) []*domain.Article {
	if len(articles) == 0 {
		return []*domain.Article{}
	}

	sorted := make([]*domain.Article, 0, len(articles))
	for _, a := range articles {
		if a != nil {
			sorted = append(sorted, a)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Quality() > sorted[j].Quality() })

	survivors := make([]canonical, 0, len(sorted))
	for _, a := range sorted {
		fp := newFingerprint(a)

		if d.seenAny(fp.hashes) {
			if owner := d.findOwner(fp, survivors); owner != nil {
				Merge(owner, *a, d.now())
				continue
			}
			lgr.Printf("[DEBUG] drop %q, already seen in a previous batch", a.Title)
			continue
		}

		if owner := d.findSimilar(fp, survivors); owner != nil {
			Merge(owner, *a, d.now())
			continue
		}

		d.promote(a, fp)
		survivors = append(survivors, canonical{article: a, fp: fp})
	}

	res := make([]*domain.Article, len(survivors))
	for i, c := range survivors {
		res[i] = c.article
	}
	lgr.Printf("[DEBUG] deduplicated %d articles to %d unique", len(articles), len(res))
	return res
}

// promote makes the article canonical and remembers its hashes. An article which already
// carries a dedup record from an earlier pass keeps its provenance.
func (d *Deduplicator) promote(a *domain.Article, fp fingerprint) {
	now := d.now()
	if a.Dedup == nil {
		a.Dedup = &domain.DedupRecord{MergedSources: []domain.MergedSource{}, FirstSeen: now, LastSeen: now}
	}
	a.Dedup.IsOriginal = true
	a.Dedup.Hashes = fp.hashes

	for _, h := range fp.hashes.All() {
		d.seen[h] = struct{}{}
	}
	addKey(d.titleHashes, fp.hashes.Title)
	addKey(d.contentHashes, fp.hashes.Content)
	addKey(d.urlHashes, fp.hashes.URL)
}

func (d *Deduplicator) seenAny(h domain.ArticleHashSet) bool {
	for _, k := range h.Matchable() {
		if _, ok := d.seen[k]; ok {
			return true
		}
	}
	return false
}

// findOwner looks for the survivor sharing a hash with the fingerprint, falling back to
// similarity. Survivors are checked in acceptance order.
func (d *Deduplicator) findOwner(fp fingerprint, survivors []canonical) *domain.Article {
	for _, s := range survivors {
		for _, k := range fp.hashes.All() {
			if s.fp.hashes.Contains(k) {
				return s.article
			}
		}
		if d.thresholds.similar(fp, s.fp) {
			return s.article
		}
	}
	return nil
}

func (d *Deduplicator) findSimilar(fp fingerprint, survivors []canonical) *domain.Article {
	for _, s := range survivors {
		if d.thresholds.similar(fp, s.fp) {
			return s.article
		}
	}
	return nil
}

// ClearCache drops all remembered hashes
func (d *Deduplicator) ClearCache() {
	d.seen = map[string]struct{}{}
	d.titleHashes = map[string]struct{}{}
	d.contentHashes = map[string]struct{}{}
	d.urlHashes = map[string]struct{}{}
}

// CacheStats returns sizes of the hash cache
func (d *Deduplicator) CacheStats() CacheStats {
	return CacheStats{
		Total:   len(d.seen),
		Title:   len(d.titleHashes),
		Content: len(d.contentHashes),
		URL:     len(d.urlHashes),
		Limit:   d.cacheLimit,
	}
}

// Stats reports duplicates in the article set. Runs on copies with a scratch deduplicator,
// so neither the articles nor the cache are touched.
func (d *Deduplicator) Stats(articles []*domain.Article) Stats {
	if len(articles) == 0 {
		return Stats{SourceDistribution: map[string]int{}}
	}

	copies := make([]*domain.Article, 0, len(articles))
	for _, a := range articles {
		if a != nil {
			copies = append(copies, clone(a))
		}
	}
	res := Stats{SourceDistribution: map[string]int{}}
	if len(copies) == 0 {
		return res
	}

	res.TotalArticles = len(copies)
	res.MinQuality, res.MaxQuality = math.Inf(1), math.Inf(-1)
	var sum float64
	for _, a := range copies {
		src := a.Source
		if src == "" {
			src = "unknown"
		}
		res.SourceDistribution[src]++
		q := a.Quality()
		sum += q
		res.MinQuality = math.Min(res.MinQuality, q)
		res.MaxQuality = math.Max(res.MaxQuality, q)
	}
	res.AverageQuality = sum / float64(len(copies))

	scratch := New(Config{Thresholds: d.thresholds, CacheLimit: d.cacheLimit, Now: d.now})
	res.UniqueArticles = len(scratch.Deduplicate(copies))
	res.DuplicatesRemoved = res.TotalArticles - res.UniqueArticles
	res.DuplicatePercentage = float64(res.DuplicatesRemoved) / float64(res.TotalArticles) * 100
	return res
}

func addKey(m map[string]struct{}, k string) {
	if k != "" {
		m[k] = struct{}{}
	}
}
