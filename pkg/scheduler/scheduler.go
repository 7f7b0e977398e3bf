// Package scheduler runs background maintenance of the aggregator: retention cleanup,
// daily reset of news API quotas and periodic refresh of upcoming matches.
package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/matchnews/pkg/domain"
	"github.com/umputun/matchnews/pkg/repository"
)

//go:generate moq -out mocks/cleaner.go -pkg mocks -skip-ensure -fmt goimports . Cleaner
//go:generate moq -out mocks/match_lister.go -pkg mocks -skip-ensure -fmt goimports . MatchLister
//go:generate moq -out mocks/aggregator.go -pkg mocks -skip-ensure -fmt goimports . Aggregator
//go:generate moq -out mocks/usage_resetter.go -pkg mocks -skip-ensure -fmt goimports . UsageResetter

// recentMatches is the number of latest matches checked by refresh
const recentMatches = 50

// Cleaner deletes expired records
type Cleaner interface {
	Cleanup(ctx context.Context, ret repository.Retention, now time.Time) (repository.CleanupResult, error)
}

// MatchLister returns matches known to the storage
type MatchLister interface {
	RecentMatches(ctx context.Context, limit int) ([]domain.MatchInfo, error)
}

// Aggregator aggregates news of a match
type Aggregator interface {
	Aggregate(ctx context.Context, m domain.Match) (*domain.AggregationResult, error)
}

// UsageResetter resets daily API quotas
type UsageResetter interface {
	Reset()
}

// Params for scheduler creation
type Params struct {
	Cleaner         Cleaner
	Retention       repository.Retention
	CleanupInterval time.Duration // default 24h

	Usage UsageResetter // optional, quotas are not reset if nil

	Matches         MatchLister   // optional, used by refresh
	Aggregator      Aggregator    // optional, used by refresh
	RefreshInterval time.Duration // 0 disables refresh
	RefreshAhead    time.Duration // matches starting within this period are refreshed, default 48h

	Now func() time.Time
}

// Scheduler manages periodic maintenance jobs
type Scheduler struct {
	Params
	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// NewScheduler creates a new scheduler instance
func NewScheduler(p Params) *Scheduler {
	if p.CleanupInterval <= 0 {
		p.CleanupInterval = 24 * time.Hour
	}
	if p.RefreshAhead <= 0 {
		p.RefreshAhead = 48 * time.Hour
	}
	if p.Now == nil {
		p.Now = time.Now
	}
	return &Scheduler{Params: p}
}

// Start begins the scheduler
func (s *Scheduler) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	if s.Cleaner != nil {
		s.wg.Add(1)
		go s.cleanupWorker(ctx)
	}

	if s.Usage != nil {
		s.wg.Add(1)
		go s.usageResetWorker(ctx)
	}

	if s.RefreshInterval > 0 && s.Matches != nil && s.Aggregator != nil {
		s.wg.Add(1)
		go s.refreshWorker(ctx)
	}

	lgr.Printf("[INFO] scheduler started with cleanup interval %v, refresh interval %v", s.CleanupInterval, s.RefreshInterval)
}

// Stop gracefully stops the scheduler
func (s *Scheduler) Stop() {
	lgr.Printf("[INFO] stopping scheduler...")
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
	lgr.Printf("[INFO] scheduler stopped")
}

// cleanupWorker periodically deletes expired records
func (s *Scheduler) cleanupWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.CleanupInterval)
	defer ticker.Stop()

	// run immediately on start
	s.cleanup(ctx)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.cleanup(ctx)
		}
	}
}

func (s *Scheduler) cleanup(ctx context.Context) {
	res, err := s.Cleaner.Cleanup(ctx, s.Retention, s.Now())
	if err != nil {
		lgr.Printf("[WARN] cleanup failed: %v", err)
		return
	}
	if res.Articles+res.Contexts+res.SourceStats > 0 {
		lgr.Printf("[INFO] cleanup removed %d articles, %d contexts, %d source stats",
			res.Articles, res.Contexts, res.SourceStats)
	}
}

// usageResetWorker resets API quotas at every UTC midnight
func (s *Scheduler) usageResetWorker(ctx context.Context) {
	defer s.wg.Done()

	timer := time.NewTimer(untilNextReset(s.Now()))
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
			s.Usage.Reset()
			lgr.Printf("[INFO] daily api quotas reset")
			timer.Reset(untilNextReset(s.Now()))
		}
	}
}

// untilNextReset returns duration to the next UTC midnight
func untilNextReset(now time.Time) time.Duration {
	now = now.UTC()
	next := time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, time.UTC)
	return next.Sub(now)
}

// refreshWorker periodically re-aggregates upcoming matches
func (s *Scheduler) refreshWorker(ctx context.Context) {
	defer s.wg.Done()

	ticker := time.NewTicker(s.RefreshInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.refresh(ctx)
		}
	}
}

// refresh re-aggregates matches starting within RefreshAhead, one by one.
// Matches already being aggregated are skipped.
func (s *Scheduler) refresh(ctx context.Context) {
	matches, err := s.Matches.RecentMatches(ctx, recentMatches)
	if err != nil {
		lgr.Printf("[WARN] failed to get recent matches: %v", err)
		return
	}

	now := s.Now()
	count := 0
	for _, m := range matches {
		if ctx.Err() != nil {
			return
		}
		if m.Status == domain.MatchAggregating || m.Date.Before(now) || m.Date.After(now.Add(s.RefreshAhead)) {
			continue
		}
		res, err := s.Aggregator.Aggregate(ctx, m.Match)
		if err != nil {
			lgr.Printf("[WARN] refresh of match %s failed: %v", m.ID, err)
			continue
		}
		count++
		lgr.Printf("[DEBUG] match %s refreshed, %d articles stored", m.ID, res.ArticlesStored)
	}
	if count > 0 {
		lgr.Printf("[INFO] refreshed %d upcoming matches", count)
	}
}
