package server

import (
	"errors"
	"log"
	"net/http"

	"github.com/umputun/matchnews/pkg/domain"
	"github.com/umputun/matchnews/pkg/feed"
	"github.com/umputun/matchnews/pkg/repository"
)

// defaultRSSLimit is the number of articles in match RSS feed
const defaultRSSLimit = 100

// rssHandler serves RSS feed of match articles, best first.
// Supports min_quality query param.
func (s *Server) rssHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	matchID := r.PathValue("id")

	minQuality, err := floatParam(r, "min_quality", 0, 0, 1)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	m := domain.Match{ID: matchID}
	info, err := s.db.GetMatch(ctx, matchID)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		http.Error(w, "Match not found", http.StatusNotFound)
		return
	case err != nil:
		log.Printf("[ERROR] failed to get match %s for RSS: %v", matchID, err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	case info != nil:
		m = info.Match
	}

	articles, err := s.db.GetArticles(ctx, repository.ArticleFilter{MatchID: matchID, MinQuality: minQuality, Limit: defaultRSSLimit})
	if err != nil {
		log.Printf("[ERROR] failed to get articles for RSS: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	generator := feed.NewGenerator(baseURL(r))
	rss, err := generator.GenerateRSS(m, articles, minQuality, s.now().UTC())
	if err != nil {
		log.Printf("[ERROR] failed to generate RSS feed: %v", err)
		http.Error(w, "Failed to generate RSS feed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/rss+xml; charset=utf-8")
	if _, err := w.Write([]byte(rss)); err != nil {
		log.Printf("[ERROR] failed to write RSS response: %v", err)
	}
}

// baseURL returns scheme and host the request was sent to
func baseURL(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || r.Header.Get("X-Forwarded-Proto") == "https" {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}
