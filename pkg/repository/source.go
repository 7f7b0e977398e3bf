package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/umputun/matchnews/pkg/domain"
)

// SourceRepository keeps running collection stats per source
type SourceRepository struct {
	db *sqlx.DB
}

// sourceStatsSQL represents source stats for SQL operations
type sourceStatsSQL struct {
	Source        string    `db:"source"`
	SourceType    string    `db:"source_type"`
	Articles      int       `db:"articles"`
	AvgQuality    float64   `db:"avg_quality"`
	LastError     string    `db:"last_error"`
	LastCollected time.Time `db:"last_collected"`
	UpdatedAt     time.Time `db:"updated_at"`
}

// NewSourceRepository creates a new source repository
func NewSourceRepository(db *sqlx.DB) *SourceRepository {
	return &SourceRepository{db: db}
}

// UpdateSourceStats adds a collection run to the stats of each source. Article counts accumulate
// and average quality is weighted by the number of articles.
func (r *SourceRepository) UpdateSourceStats(ctx context.Context, stats []domain.SourceStats) error {
	if len(stats) == 0 {
		return nil
	}

	query := `
		INSERT INTO source_stats (source, source_type, articles, avg_quality, last_error, last_collected, updated_at)
		VALUES (:source, :source_type, :articles, :avg_quality, :last_error, :last_collected, CURRENT_TIMESTAMP)
		ON CONFLICT(source) DO UPDATE SET
			source_type = excluded.source_type,
			avg_quality = CASE
				WHEN source_stats.articles + excluded.articles > 0 THEN
					(source_stats.avg_quality * source_stats.articles + excluded.avg_quality * excluded.articles) /
					(source_stats.articles + excluded.articles)
				ELSE source_stats.avg_quality
			END,
			articles = source_stats.articles + excluded.articles,
			last_error = excluded.last_error,
			last_collected = excluded.last_collected,
			updated_at = CURRENT_TIMESTAMP
	`
	return withRetry(ctx, "update source stats", func() error {
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer tx.Rollback()

		for _, s := range stats {
			row := sourceStatsSQL{
				Source:        s.Source,
				SourceType:    s.SourceType,
				Articles:      s.Articles,
				AvgQuality:    s.AvgQuality,
				LastError:     s.LastError,
				LastCollected: s.LastCollected.UTC(),
			}
			if _, err := tx.NamedExecContext(ctx, query, row); err != nil {
				return fmt.Errorf("upsert %s: %w", s.Source, err)
			}
		}
		return tx.Commit()
	})
}

// GetSourceStats returns stats of all known sources, most productive first
func (r *SourceRepository) GetSourceStats(ctx context.Context) ([]domain.SourceStats, error) {
	var rows []sourceStatsSQL
	err := r.db.SelectContext(ctx, &rows, "SELECT * FROM source_stats ORDER BY articles DESC, source")
	if err != nil {
		return nil, fmt.Errorf("get source stats: %w", err)
	}
	res := make([]domain.SourceStats, 0, len(rows))
	for _, row := range rows {
		res = append(res, domain.SourceStats{
			Source:        row.Source,
			SourceType:    row.SourceType,
			Articles:      row.Articles,
			AvgQuality:    row.AvgQuality,
			LastError:     row.LastError,
			LastCollected: row.LastCollected.UTC(),
		})
	}
	return res, nil
}
