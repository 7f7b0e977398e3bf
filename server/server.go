package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/rest"
	"github.com/go-pkgz/rest/logger"
	"github.com/go-pkgz/routegroup"

	"github.com/umputun/matchnews/pkg/aggregator"
	"github.com/umputun/matchnews/pkg/domain"
	"github.com/umputun/matchnews/pkg/repository"
)

//go:generate moq -out mocks/config.go -pkg mocks -skip-ensure -fmt goimports . ConfigProvider
//go:generate moq -out mocks/database.go -pkg mocks -skip-ensure -fmt goimports . Database
//go:generate moq -out mocks/aggregator.go -pkg mocks -skip-ensure -fmt goimports . Aggregator

// Server represents HTTP server instance
type Server struct {
	config     ConfigProvider
	db         Database
	aggregator Aggregator
	version    string
	debug      bool
	now        func() time.Time

	lock       sync.Mutex
	httpServer *http.Server
	router     *routegroup.Bundle
	baseCtx    context.Context     // parent of background aggregations, replaced by Run
	inflight   map[string]struct{} // match ids being aggregated
	background sync.WaitGroup
}

// Database interface for server operations
type Database interface {
	GetMatch(ctx context.Context, id string) (*domain.MatchInfo, error)
	GetContext(ctx context.Context, matchID string) (*domain.MatchContext, error)
	GetArticles(ctx context.Context, f repository.ArticleFilter) ([]*domain.Article, error)
	SearchArticles(ctx context.Context, query, matchID string, limit int) ([]*domain.Article, error)
	TrendingTopics(ctx context.Context, since time.Time, limit int) ([]repository.TopicCount, error)
	MatchSources(ctx context.Context, matchID string) ([]domain.SourceStats, error)
	GetSourceStats(ctx context.Context) ([]domain.SourceStats, error)
	Stats(ctx context.Context) (repository.Stats, error)
}

// Aggregator interface for match aggregation and analysis
type Aggregator interface {
	Aggregate(ctx context.Context, m domain.Match) (*domain.AggregationResult, error)
	Insights(ctx context.Context, m domain.Match, articles []*domain.Article, mc *domain.MatchContext) []domain.Insight
	SentimentAnalysis(articles []*domain.Article) (domain.SentimentReport, error)
	QualityReport(articles []*domain.Article, target int) aggregator.QualityReport
	Stats() domain.AggregatorStats
	Health(ctx context.Context) domain.HealthStatus
}

// ConfigProvider provides server configuration
type ConfigProvider interface {
	GetServerConfig() (listen string, timeout time.Duration)
	GetPageLimits() (defaultLimit, maxLimit int)
}

// New initializes a new server instance
func New(cfg ConfigProvider, db Database, agg Aggregator, version string, debug bool) *Server {
	s := &Server{
		config:     cfg,
		db:         db,
		aggregator: agg,
		version:    version,
		debug:      debug,
		now:        time.Now,
		router:     routegroup.New(http.NewServeMux()),
		baseCtx:    context.Background(),
		inflight:   map[string]struct{}{},
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// Run starts the HTTP server and handles graceful shutdown.
// Background aggregations are canceled with ctx and waited for before Run returns.
func (s *Server) Run(ctx context.Context) error {
	listen, timeout := s.config.GetServerConfig()
	log.Printf("[INFO] starting server on %s", listen)

	s.lock.Lock()
	s.baseCtx = ctx
	s.httpServer = &http.Server{
		Addr:              listen,
		Handler:           s.router,
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}
	s.lock.Unlock()

	go func() {
		<-ctx.Done()
		log.Printf("[INFO] shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
			log.Printf("[WARN] server shutdown error: %v", err)
		}
	}()

	err := s.httpServer.ListenAndServe()
	s.background.Wait()
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server error: %w", err)
	}

	return nil
}

// setupMiddleware configures standard middleware for the server
func (s *Server) setupMiddleware() {
	s.router.Use(rest.AppInfo("matchnews", "umputun", s.version))
	s.router.Use(rest.Ping)

	if s.debug {
		s.router.Use(logger.New(logger.Log(lgr.Default()), logger.Prefix("[DEBUG]")).Handler)
	}

	s.router.Use(rest.Recoverer(lgr.Default()))
	s.router.Use(rest.Throttle(100))
	s.router.Use(rest.SizeLimit(64 * 1024))
}

// setupRoutes configures application routes
func (s *Server) setupRoutes() {
	s.router.Mount("/api/v1").Route(func(r *routegroup.Bundle) {
		r.HandleFunc("GET /status", s.statusHandler)
		r.HandleFunc("GET /health", s.healthHandler)
		r.HandleFunc("GET /stats", s.statsHandler)
		r.HandleFunc("GET /trending", s.trendingHandler)
		r.HandleFunc("GET /search", s.searchHandler)

		r.HandleFunc("POST /matches/{id}/aggregate", s.aggregateHandler)
		r.HandleFunc("GET /matches/{id}/news", s.newsHandler)
		r.HandleFunc("GET /matches/{id}/insights", s.insightsHandler)
		r.HandleFunc("GET /matches/{id}/sources", s.sourcesHandler)
		r.HandleFunc("GET /matches/{id}/timeline", s.timelineHandler)
		r.HandleFunc("GET /matches/{id}/sentiment", s.sentimentHandler)
		r.HandleFunc("GET /matches/{id}/quality", s.qualityHandler)
		r.HandleFunc("GET /matches/{id}/rss", s.rssHandler)
	})
}

// claim marks the match as being aggregated, returns false if it is already in progress
func (s *Server) claim(matchID string) bool {
	s.lock.Lock()
	defer s.lock.Unlock()
	if _, ok := s.inflight[matchID]; ok {
		return false
	}
	s.inflight[matchID] = struct{}{}
	return true
}

func (s *Server) release(matchID string) {
	s.lock.Lock()
	delete(s.inflight, matchID)
	s.lock.Unlock()
}

// goBackground runs fn in a goroutine with the server's base context, Run waits for it on shutdown
func (s *Server) goBackground(fn func(ctx context.Context)) {
	s.lock.Lock()
	ctx := s.baseCtx
	s.background.Add(1)
	s.lock.Unlock()

	go func() {
		defer s.background.Done()
		fn(ctx)
	}()
}

// RenderJSON sends JSON response
func RenderJSON(w http.ResponseWriter, _ *http.Request, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			log.Printf("[ERROR] can't encode response to JSON: %v", err)
		}
	}
}

// RenderError sends error response as JSON
func RenderError(w http.ResponseWriter, r *http.Request, err error, code int) {
	errMsg := "unknown error"
	if err != nil {
		errMsg = err.Error()
	}
	RenderJSON(w, r, code, map[string]string{"error": errMsg})
}
