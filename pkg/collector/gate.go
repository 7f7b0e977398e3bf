package collector

import (
	"context"
	"fmt"
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"
)

// Gate limits concurrency and request rate of one source category
type Gate struct {
	name    string
	sem     *semaphore.Weighted
	limiter *rate.Limiter
}

// NewGate makes a gate allowing up to concurrent requests in flight and perMinute requests per minute.
// Non-positive values disable the corresponding limit.
func NewGate(name string, concurrent, perMinute int) *Gate {
	g := &Gate{name: name}
	if concurrent > 0 {
		g.sem = semaphore.NewWeighted(int64(concurrent))
	}
	if perMinute > 0 {
		burst := concurrent
		if burst <= 0 {
			burst = 1
		}
		g.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(perMinute)), burst)
	}
	return g
}

// Name returns gate's category name
func (g *Gate) Name() string {
	return g.name
}

// Do waits for a free slot and a rate token, then runs fn. Nil gate runs fn immediately.
func (g *Gate) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if g == nil {
		return fn(ctx)
	}
	if g.sem != nil {
		if err := g.sem.Acquire(ctx, 1); err != nil {
			return fmt.Errorf("%s gate: %w", g.name, err)
		}
		defer g.sem.Release(1)
	}
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("%s rate limit: %w", g.name, err)
		}
	}
	return fn(ctx)
}

// UsageLimiter counts daily calls per API against fixed quotas.
// Counters are reset explicitly by the owner, usually once a day.
type UsageLimiter struct {
	mu     sync.Mutex
	limits map[string]int
	used   map[string]int
}

// NewUsageLimiter makes a limiter with daily limits per API name
func NewUsageLimiter(limits map[string]int) *UsageLimiter {
	res := &UsageLimiter{limits: make(map[string]int, len(limits)), used: map[string]int{}}
	for k, v := range limits {
		res.limits[k] = v
	}
	return res
}

// Allow reserves one call for the API, returns false if the quota is exhausted or the API unknown
func (u *UsageLimiter) Allow(api string) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	limit, ok := u.limits[api]
	if !ok || u.used[api] >= limit {
		return false
	}
	u.used[api]++
	return true
}

// Usage returns a copy of current counters
func (u *UsageLimiter) Usage() map[string]int {
	u.mu.Lock()
	defer u.mu.Unlock()
	res := make(map[string]int, len(u.used))
	for k, v := range u.used {
		res[k] = v
	}
	return res
}

// Remaining returns number of calls left today for the API, zero for unknown APIs
func (u *UsageLimiter) Remaining(api string) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return max(u.limits[api]-u.used[api], 0)
}

// Reset zeroes all counters
func (u *UsageLimiter) Reset() {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.used = map[string]int{}
}
