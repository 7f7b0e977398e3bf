package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/umputun/matchnews/pkg/aggregator"
	"github.com/umputun/matchnews/pkg/domain"
	"github.com/umputun/matchnews/pkg/repository"
)

const (
	insightArticles      = 100  // articles used to build insights
	timelineArticles     = 500  // articles used for the timeline
	sentimentArticles    = 200  // articles used for sentiment analysis
	qualityArticles      = 1000 // articles used for quality report
	defaultQualityTarget = 20
	trendingTopics       = 20
	maxTrendingDays      = 7
	defaultSearch        = 50
	maxSearch            = 100
)

// aggregateRequest is the body of aggregation trigger
type aggregateRequest struct {
	HomeTeam  string `json:"home_team"`
	AwayTeam  string `json:"away_team"`
	MatchDate string `json:"match_date"`
	Priority  string `json:"priority"`
}

// pagination describes a page of articles
type pagination struct {
	Offset  int  `json:"offset"`
	Limit   int  `json:"limit"`
	Total   int  `json:"total"`
	HasMore bool `json:"has_more"`
}

// newsResponse is a page of match articles with the aggregated context
type newsResponse struct {
	MatchID       string               `json:"match_id"`
	ArticleCount  int                  `json:"article_count"`
	TotalArticles int                  `json:"total_articles"`
	Articles      []*domain.Article    `json:"articles"`
	Context       *domain.MatchContext `json:"context,omitempty"`
	Pagination    pagination           `json:"pagination"`
	GeneratedAt   time.Time            `json:"generated_at"`
}

// statusHandler returns server status
func (s *Server) statusHandler(w http.ResponseWriter, r *http.Request) {
	status := map[string]interface{}{
		"status":  "ok",
		"service": "matchnews",
		"version": s.version,
		"time":    s.now().UTC(),
	}
	RenderJSON(w, r, http.StatusOK, status)
}

// aggregateHandler triggers news aggregation for a match. By default aggregation runs in background
// and the handler responds with 202, wait=true runs it in the request and returns the result.
func (s *Server) aggregateHandler(w http.ResponseWriter, r *http.Request) {
	m, err := s.parseMatch(r)
	if err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}

	if !s.claim(m.ID) {
		RenderError(w, r, fmt.Errorf("aggregation of match %s is already running", m.ID), http.StatusConflict)
		return
	}

	if wait, _ := strconv.ParseBool(r.URL.Query().Get("wait")); wait {
		defer s.release(m.ID)
		res, err := s.aggregator.Aggregate(r.Context(), m)
		if err != nil {
			log.Printf("[WARN] aggregation of match %s failed: %v", m.ID, err)
			RenderError(w, r, fmt.Errorf("aggregation failed: %w", err), http.StatusInternalServerError)
			return
		}
		RenderJSON(w, r, http.StatusOK, res)
		return
	}

	s.goBackground(func(ctx context.Context) {
		defer s.release(m.ID)
		res, err := s.aggregator.Aggregate(ctx, m)
		if err != nil {
			log.Printf("[WARN] background aggregation of match %s failed: %v", m.ID, err)
			return
		}
		log.Printf("[INFO] match %s aggregated, %d articles stored, %d duplicates removed in %v",
			m.ID, res.ArticlesStored, res.DuplicatesRemoved, res.ProcessingTime)
	})

	RenderJSON(w, r, http.StatusAccepted, map[string]interface{}{
		"status":               "aggregation_started",
		"match_id":             m.ID,
		"teams":                m.HomeTeam + " vs " + m.AwayTeam,
		"priority":             m.Priority,
		"estimated_completion": "2-5 minutes",
	})
}

// parseMatch builds a match from path id and the request body
func (s *Server) parseMatch(r *http.Request) (domain.Match, error) {
	var req aggregateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		return domain.Match{}, fmt.Errorf("invalid request body: %w", err)
	}

	m := domain.Match{
		ID:       strings.TrimSpace(r.PathValue("id")),
		HomeTeam: strings.TrimSpace(req.HomeTeam),
		AwayTeam: strings.TrimSpace(req.AwayTeam),
		Priority: strings.ToLower(strings.TrimSpace(req.Priority)),
		Date:     s.now().UTC(),
	}
	if m.ID == "" {
		return domain.Match{}, errors.New("match id is required")
	}
	if m.HomeTeam == "" || m.AwayTeam == "" {
		return domain.Match{}, errors.New("home_team and away_team are required")
	}

	switch m.Priority {
	case "":
		m.Priority = "normal"
	case "low", "normal", "high":
	default:
		return domain.Match{}, fmt.Errorf("invalid priority %q", req.Priority)
	}

	if req.MatchDate != "" {
		date, err := parseDate(req.MatchDate)
		if err != nil {
			return domain.Match{}, err
		}
		m.Date = date
	}
	return m, nil
}

// newsHandler returns a page of match articles with the aggregated context
func (s *Server) newsHandler(w http.ResponseWriter, r *http.Request) {
	matchID := r.PathValue("id")
	defLimit, maxLimit := s.config.GetPageLimits()

	limit, err := intParam(r, "limit", defLimit, 1, maxLimit)
	if err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}
	offset, err := intParam(r, "offset", 0, 0, math.MaxInt32)
	if err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}
	minQuality, err := floatParam(r, "min_quality", 0, 0, 1)
	if err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}
	sourceType := domain.SourceType(r.URL.Query().Get("source_type"))
	if sourceType != "" && !validSourceType(sourceType) {
		RenderError(w, r, fmt.Errorf("invalid source_type %q", sourceType), http.StatusBadRequest)
		return
	}

	articles, err := s.db.GetArticles(r.Context(), repository.ArticleFilter{MatchID: matchID, MinQuality: minQuality,
		SourceType: sourceType})
	if err != nil {
		log.Printf("[ERROR] failed to get articles of match %s: %v", matchID, err)
		RenderError(w, r, errors.New("failed to get articles"), http.StatusInternalServerError)
		return
	}

	if lang := r.URL.Query().Get("language"); lang != "" {
		filtered := articles[:0]
		for _, a := range articles {
			if strings.EqualFold(a.Language, lang) {
				filtered = append(filtered, a)
			}
		}
		articles = filtered
	}

	mc, err := s.db.GetContext(r.Context(), matchID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		log.Printf("[ERROR] failed to get context of match %s: %v", matchID, err)
		RenderError(w, r, errors.New("failed to get match context"), http.StatusInternalServerError)
		return
	}

	total := len(articles)
	page := articles[min(offset, total):min(offset+limit, total)]
	if page == nil {
		page = []*domain.Article{}
	}
	RenderJSON(w, r, http.StatusOK, newsResponse{
		MatchID:       matchID,
		ArticleCount:  len(page),
		TotalArticles: total,
		Articles:      page,
		Context:       mc,
		Pagination:    pagination{Offset: offset, Limit: limit, Total: total, HasMore: offset+limit < total},
		GeneratedAt:   s.now().UTC(),
	})
}

// insightsHandler returns insights derived from the aggregated match coverage
func (s *Server) insightsHandler(w http.ResponseWriter, r *http.Request) {
	matchID := r.PathValue("id")
	mc, err := s.db.GetContext(r.Context(), matchID)
	if errors.Is(err, repository.ErrNotFound) {
		RenderError(w, r, errors.New("no data available for this match"), http.StatusNotFound)
		return
	}
	if err != nil {
		log.Printf("[ERROR] failed to get context of match %s: %v", matchID, err)
		RenderError(w, r, errors.New("failed to get match context"), http.StatusInternalServerError)
		return
	}

	m := domain.Match{ID: matchID}
	if len(mc.Teams) == 2 {
		m.HomeTeam, m.AwayTeam = mc.Teams[0], mc.Teams[1]
	}
	info, err := s.db.GetMatch(r.Context(), matchID)
	switch {
	case err == nil:
		m = info.Match
	case !errors.Is(err, repository.ErrNotFound):
		log.Printf("[WARN] failed to get match %s: %v", matchID, err)
	}

	articles, err := s.db.GetArticles(r.Context(), repository.ArticleFilter{MatchID: matchID, Limit: insightArticles})
	if err != nil {
		log.Printf("[ERROR] failed to get articles of match %s: %v", matchID, err)
		RenderError(w, r, errors.New("failed to get articles"), http.StatusInternalServerError)
		return
	}

	insights := s.aggregator.Insights(r.Context(), m, articles, mc)
	RenderJSON(w, r, http.StatusOK, map[string]interface{}{
		"match_id":     matchID,
		"insights":     insights,
		"data_sources": len(mc.SourceBreakdown),
		"last_updated": mc.LastUpdated,
	})
}

// sourcesHandler returns per-source breakdown of match articles
func (s *Server) sourcesHandler(w http.ResponseWriter, r *http.Request) {
	matchID := r.PathValue("id")
	sources, err := s.db.MatchSources(r.Context(), matchID)
	if err != nil {
		log.Printf("[ERROR] failed to get sources of match %s: %v", matchID, err)
		RenderError(w, r, errors.New("failed to get match sources"), http.StatusInternalServerError)
		return
	}
	if len(sources) == 0 {
		RenderError(w, r, errors.New("no sources found for this match"), http.StatusNotFound)
		return
	}

	total := 0
	for _, src := range sources {
		total += src.Articles
	}
	RenderJSON(w, r, http.StatusOK, map[string]interface{}{
		"match_id":         matchID,
		"source_breakdown": sources,
		"total_sources":    len(sources),
		"total_articles":   total,
	})
}

// timelineHandler returns match articles grouped by publication hour
func (s *Server) timelineHandler(w http.ResponseWriter, r *http.Request) {
	matchID := r.PathValue("id")
	articles, ok := s.matchArticles(w, r, matchID, timelineArticles)
	if !ok {
		return
	}

	timeline := aggregator.Timeline(articles)
	RenderJSON(w, r, http.StatusOK, map[string]interface{}{
		"match_id":       matchID,
		"timeline":       timeline,
		"total_periods":  len(timeline),
		"total_articles": len(articles),
	})
}

// sentimentHandler returns detailed sentiment analysis of match coverage
func (s *Server) sentimentHandler(w http.ResponseWriter, r *http.Request) {
	matchID := r.PathValue("id")
	articles, ok := s.matchArticles(w, r, matchID, sentimentArticles)
	if !ok {
		return
	}

	report, err := s.aggregator.SentimentAnalysis(articles)
	if err != nil {
		RenderError(w, r, err, http.StatusInternalServerError)
		return
	}
	RenderJSON(w, r, http.StatusOK, map[string]interface{}{
		"match_id":           matchID,
		"sentiment_analysis": report,
		"analyzed_articles":  len(articles),
	})
}

// qualityHandler returns quality distribution and duplicate stats of match articles.
// Query param target sets the number of articles the recommended threshold keeps.
func (s *Server) qualityHandler(w http.ResponseWriter, r *http.Request) {
	matchID := r.PathValue("id")
	target, err := intParam(r, "target", defaultQualityTarget, 1, qualityArticles)
	if err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}
	articles, ok := s.matchArticles(w, r, matchID, qualityArticles)
	if !ok {
		return
	}

	RenderJSON(w, r, http.StatusOK, map[string]interface{}{
		"match_id":       matchID,
		"quality_report": s.aggregator.QualityReport(articles, target),
		"target":         target,
	})
}

// matchArticles loads up to limit articles of the match, renders 404 if there are none
func (s *Server) matchArticles(w http.ResponseWriter, r *http.Request, matchID string, limit int) ([]*domain.Article, bool) {
	articles, err := s.db.GetArticles(r.Context(), repository.ArticleFilter{MatchID: matchID, Limit: limit})
	if err != nil {
		log.Printf("[ERROR] failed to get articles of match %s: %v", matchID, err)
		RenderError(w, r, errors.New("failed to get articles"), http.StatusInternalServerError)
		return nil, false
	}
	if len(articles) == 0 {
		RenderError(w, r, errors.New("no articles found for this match"), http.StatusNotFound)
		return nil, false
	}
	return articles, true
}

// trendingHandler returns the most mentioned topics over the last days
func (s *Server) trendingHandler(w http.ResponseWriter, r *http.Request) {
	days, err := intParam(r, "days", 1, 1, maxTrendingDays)
	if err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}

	now := s.now().UTC()
	topics, err := s.db.TrendingTopics(r.Context(), now.Add(-time.Duration(days)*24*time.Hour), trendingTopics)
	if err != nil {
		log.Printf("[ERROR] failed to get trending topics: %v", err)
		RenderError(w, r, errors.New("failed to get trending topics"), http.StatusInternalServerError)
		return
	}
	RenderJSON(w, r, http.StatusOK, map[string]interface{}{
		"trending_topics": topics,
		"period_days":     days,
		"generated_at":    now,
	})
}

// searchHandler performs full text search over stored articles
func (s *Server) searchHandler(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		RenderError(w, r, errors.New("query parameter q is required"), http.StatusBadRequest)
		return
	}
	limit, err := intParam(r, "limit", defaultSearch, 1, maxSearch)
	if err != nil {
		RenderError(w, r, err, http.StatusBadRequest)
		return
	}
	matchID := r.URL.Query().Get("match_id")

	results, err := s.db.SearchArticles(r.Context(), query, matchID, limit)
	if err != nil {
		log.Printf("[ERROR] failed to search articles for %q: %v", query, err)
		RenderError(w, r, errors.New("search failed"), http.StatusInternalServerError)
		return
	}
	if results == nil {
		results = []*domain.Article{}
	}
	RenderJSON(w, r, http.StatusOK, map[string]interface{}{
		"query":        query,
		"match_id":     matchID,
		"results":      results,
		"result_count": len(results),
	})
}

// healthHandler reports health of the aggregator and storage, responds with 503 if unhealthy
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	health := s.aggregator.Health(r.Context())
	resp := map[string]interface{}{
		"status":     health.Status,
		"timestamp":  s.now().UTC(),
		"aggregator": health,
	}
	if storage, err := s.db.Stats(r.Context()); err == nil {
		resp["storage"] = storage
	} else {
		log.Printf("[WARN] failed to get storage stats: %v", err)
	}

	code := http.StatusOK
	if health.Status == domain.HealthUnhealthy {
		code = http.StatusServiceUnavailable
	}
	RenderJSON(w, r, code, resp)
}

// statsHandler returns aggregation and storage statistics
func (s *Server) statsHandler(w http.ResponseWriter, r *http.Request) {
	storage, err := s.db.Stats(r.Context())
	if err != nil {
		log.Printf("[ERROR] failed to get storage stats: %v", err)
		RenderError(w, r, errors.New("failed to get stats"), http.StatusInternalServerError)
		return
	}
	sources, err := s.db.GetSourceStats(r.Context())
	if err != nil {
		log.Printf("[ERROR] failed to get source stats: %v", err)
		RenderError(w, r, errors.New("failed to get stats"), http.StatusInternalServerError)
		return
	}
	if sources == nil {
		sources = []domain.SourceStats{}
	}

	RenderJSON(w, r, http.StatusOK, map[string]interface{}{
		"aggregator":   s.aggregator.Stats(),
		"storage":      storage,
		"sources":      sources,
		"generated_at": s.now().UTC(),
	})
}

// intParam parses optional integer query parameter and checks its range
func intParam(r *http.Request, name string, def, minVal, maxVal int) (int, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	res, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, v)
	}
	if res < minVal || res > maxVal {
		return 0, fmt.Errorf("%s must be between %d and %d", name, minVal, maxVal)
	}
	return res, nil
}

// floatParam parses optional float query parameter and checks its range
func floatParam(r *http.Request, name string, def, minVal, maxVal float64) (float64, error) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, nil
	}
	res, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(res) {
		return 0, fmt.Errorf("invalid %s %q", name, v)
	}
	if res < minVal || res > maxVal {
		return 0, fmt.Errorf("%s must be between %g and %g", name, minVal, maxVal)
	}
	return res, nil
}

// parseDate accepts RFC3339 timestamps, zone-less timestamps (as UTC) and plain dates
func parseDate(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02 15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid match_date %q", s)
}

func validSourceType(st domain.SourceType) bool {
	switch st {
	case domain.SourceRSS, domain.SourceReddit, domain.SourceAPI, domain.SourceScrape, domain.SourceTwitter:
		return true
	}
	return false
}
