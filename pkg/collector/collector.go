// Package collector implements match news sources: RSS feeds, reddit search, news APIs,
// web scraping and twitter accounts via nitter RSS. Collectors never fail the whole run on a
// single broken endpoint, they log it and return what the other endpoints gave.
package collector

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"golang.org/x/sync/errgroup"

	"github.com/umputun/matchnews/pkg/content"
	"github.com/umputun/matchnews/pkg/domain"
)

//go:generate moq -out mocks/collector.go -pkg mocks -skip-ensure -fmt goimports . Collector

// Collector gathers articles about a match from one kind of source
type Collector interface {
	Name() string
	Collect(ctx context.Context, m domain.Match) ([]domain.Article, error)
}

// maxResponseSize limits any single response body
const maxResponseSize = 5 * 1024 * 1024

// HTTPOptions configure network access of a collector
type HTTPOptions struct {
	Timeout   time.Duration
	UserAgent string
	Gate      *Gate // optional, nil means no concurrency or rate limit
}

// httpClient does gated GET requests with browser-like headers
type httpClient struct {
	client    *http.Client
	userAgent string
	gate      *Gate
}

func newHTTPClient(opts HTTPOptions) *httpClient {
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}
	if opts.UserAgent == "" {
		opts.UserAgent = "Mozilla/5.0 (compatible; matchnews/1.0)"
	}
	return &httpClient{
		client: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		userAgent: opts.UserAgent,
		gate:      opts.Gate,
	}
}

// get retrieves the body of url. The gate slot is held for the whole request including body read.
func (c *httpClient) get(ctx context.Context, url string) ([]byte, error) {
	var body []byte
	err := c.gate.Do(ctx, func(ctx context.Context) error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
		if err != nil {
			return fmt.Errorf("create request: %w", err)
		}
		content.SetBrowserHeaders(req)
		req.Header.Set("User-Agent", c.userAgent)

		resp, err := c.client.Do(req)
		if err != nil {
			return fmt.Errorf("fetch URL: %w", err)
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
		}
		if body, err = io.ReadAll(io.LimitReader(resp.Body, maxResponseSize)); err != nil {
			return fmt.Errorf("read body: %w", err)
		}
		return nil
	})
	return body, err
}

// getJSON retrieves url and decodes json response into v
func (c *httpClient) getJSON(ctx context.Context, url string, v any) error {
	body, err := c.get(ctx, url)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode json: %w", err)
	}
	return nil
}

// fanOut runs fetch for every endpoint concurrently and joins the results. Failed endpoints are
// logged and skipped, an error is returned only if every endpoint failed.
func fanOut[T any](ctx context.Context, name string, endpoints []T, fetch func(ctx context.Context, ep T) ([]domain.Article, error)) ([]domain.Article, error) {
	if len(endpoints) == 0 {
		return []domain.Article{}, nil
	}

	var mu sync.Mutex
	var errs []error
	res := []domain.Article{}
	g, gctx := errgroup.WithContext(ctx)
	for _, ep := range endpoints {
		g.Go(func() error {
			articles, err := fetch(gctx, ep)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				lgr.Printf("[WARN] %s: %v", name, err)
				errs = append(errs, err)
				return nil
			}
			res = append(res, articles...)
			return nil
		})
	}
	_ = g.Wait()

	if len(errs) == len(endpoints) {
		return res, fmt.Errorf("%s: all %d endpoints failed: %w", name, len(endpoints), errors.Join(errs...))
	}
	return res, nil
}

// cleanText collapses whitespace
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
