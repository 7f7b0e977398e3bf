package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/matchnews/pkg/domain"
)

// MatchRepository handles matches and their aggregated contexts
type MatchRepository struct {
	db *sqlx.DB
}

// matchSQL represents a match for SQL operations
type matchSQL struct {
	ID                 string            `db:"id"`
	HomeTeam           string            `db:"home_team"`
	AwayTeam           string            `db:"away_team"`
	MatchDate          time.Time         `db:"match_date"`
	Priority           string            `db:"priority"`
	Status             string            `db:"status"`
	AggregationStarted time.Time         `db:"aggregation_started"`
	AggregationEnded   *time.Time        `db:"aggregation_completed"`
	ArticlesCollected  int               `db:"articles_collected"`
	SourcesProcessed   int               `db:"sources_processed"`
	Errors             jsonSQL[[]string] `db:"errors"`
	CreatedAt          time.Time         `db:"created_at"`
	UpdatedAt          time.Time         `db:"updated_at"`
}

// NewMatchRepository creates a new match repository
func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

// StoreMatch inserts or updates aggregation state of the match
func (r *MatchRepository) StoreMatch(ctx context.Context, m domain.MatchInfo) error {
	var ended *time.Time
	if m.AggregationEnded != nil {
		t := m.AggregationEnded.UTC()
		ended = &t
	}
	row := matchSQL{
		ID:                 m.ID,
		HomeTeam:           m.HomeTeam,
		AwayTeam:           m.AwayTeam,
		MatchDate:          m.Date.UTC(),
		Priority:           m.Priority,
		Status:             string(m.Status),
		AggregationStarted: m.AggregationStarted.UTC(),
		AggregationEnded:   ended,
		ArticlesCollected:  m.ArticlesCollected,
		SourcesProcessed:   m.SourcesProcessed,
		Errors:             jsonSQL[[]string]{Val: nonNil(m.Errors)},
	}

	query := `
		INSERT INTO matches (
			id, home_team, away_team, match_date, priority, status, aggregation_started,
			aggregation_completed, articles_collected, sources_processed, errors
		) VALUES (
			:id, :home_team, :away_team, :match_date, :priority, :status, :aggregation_started,
			:aggregation_completed, :articles_collected, :sources_processed, :errors
		)
		ON CONFLICT(id) DO UPDATE SET
			home_team = excluded.home_team,
			away_team = excluded.away_team,
			match_date = excluded.match_date,
			priority = excluded.priority,
			status = excluded.status,
			aggregation_started = excluded.aggregation_started,
			aggregation_completed = excluded.aggregation_completed,
			articles_collected = excluded.articles_collected,
			sources_processed = excluded.sources_processed,
			errors = excluded.errors,
			updated_at = CURRENT_TIMESTAMP
	`
	return withRetry(ctx, "store match", func() error {
		_, err := r.db.NamedExecContext(ctx, query, row)
		return err
	})
}

// GetMatch retrieves a match by ID, returns ErrNotFound for unknown matches
func (r *MatchRepository) GetMatch(ctx context.Context, id string) (*domain.MatchInfo, error) {
	var row matchSQL
	err := r.db.GetContext(ctx, &row, "SELECT * FROM matches WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get match %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get match %s: %w", id, err)
	}
	return row.toDomain(), nil
}

// RecentMatches returns matches ordered by aggregation start, newest first
func (r *MatchRepository) RecentMatches(ctx context.Context, limit int) ([]domain.MatchInfo, error) {
	var rows []matchSQL
	err := r.db.SelectContext(ctx, &rows, "SELECT * FROM matches ORDER BY aggregation_started DESC LIMIT ?", limit)
	if err != nil {
		return nil, fmt.Errorf("get recent matches: %w", err)
	}
	res := make([]domain.MatchInfo, 0, len(rows))
	for _, row := range rows {
		res = append(res, *row.toDomain())
	}
	return res, nil
}

// StoreContext replaces the aggregated context of the match
func (r *MatchRepository) StoreContext(ctx context.Context, mc *domain.MatchContext) error {
	if mc == nil || mc.MatchID == "" {
		return errors.New("store context: match id is required")
	}
	data := jsonSQL[*domain.MatchContext]{Val: mc}
	return withRetry(ctx, "store context", func() error {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO match_contexts (match_id, context, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
			ON CONFLICT(match_id) DO UPDATE SET context = excluded.context, updated_at = CURRENT_TIMESTAMP`,
			mc.MatchID, data)
		return err
	})
}

// GetContext retrieves the aggregated context of the match, returns ErrNotFound if not aggregated yet
func (r *MatchRepository) GetContext(ctx context.Context, matchID string) (*domain.MatchContext, error) {
	var data jsonSQL[*domain.MatchContext]
	err := r.db.GetContext(ctx, &data, "SELECT context FROM match_contexts WHERE match_id = ?", matchID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get context %s: %w", matchID, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("get context %s: %w", matchID, err)
	}
	if data.Val == nil {
		return nil, fmt.Errorf("get context %s: %w", matchID, ErrNotFound)
	}
	return data.Val, nil
}

func (m *matchSQL) toDomain() *domain.MatchInfo {
	res := &domain.MatchInfo{
		Match: domain.Match{
			ID:       m.ID,
			HomeTeam: m.HomeTeam,
			AwayTeam: m.AwayTeam,
			Date:     m.MatchDate.UTC(),
			Priority: m.Priority,
		},
		Status:             domain.MatchStatus(m.Status),
		AggregationStarted: m.AggregationStarted.UTC(),
		ArticlesCollected:  m.ArticlesCollected,
		SourcesProcessed:   m.SourcesProcessed,
		Errors:             nonNil(m.Errors.Val),
	}
	if m.AggregationEnded != nil {
		t := m.AggregationEnded.UTC()
		res.AggregationEnded = &t
	}
	return res
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
