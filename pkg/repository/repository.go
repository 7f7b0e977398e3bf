// Package repository keeps matches, deduplicated articles, match contexts and source stats in SQLite
package repository

import (
	"context"
	"database/sql/driver"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/go-pkgz/repeater/v2"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // pure Go SQLite driver
)

//go:embed schema.sql
var schemaFS embed.FS

// ErrNotFound is returned when a requested record doesn't exist
var ErrNotFound = errors.New("not found")

// Config represents database configuration
type Config struct {
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Repositories contains all repository instances
type Repositories struct {
	Match   *MatchRepository
	Article *ArticleRepository
	Source  *SourceRepository
	DB      *sqlx.DB
}

// NewRepositories creates all repositories with a shared database connection
func NewRepositories(ctx context.Context, cfg Config) (*Repositories, error) {
	if cfg.DSN == "" {
		cfg.DSN = "file:matchnews.db?cache=shared&mode=rwc&_txlock=immediate"
	}

	db, err := sqlx.Open("sqlite", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// configure connection pool
	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA cache_size = -64000", // 64MB cache
		"PRAGMA temp_store = MEMORY",
		"PRAGMA busy_timeout = 5000", // 5 second timeout for locks
	}
	for _, pragma := range pragmas {
		if _, err := db.ExecContext(ctx, pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("execute %s: %w", pragma, err)
		}
	}

	if err := initSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Repositories{
		Match:   NewMatchRepository(db),
		Article: NewArticleRepository(db),
		Source:  NewSourceRepository(db),
		DB:      db,
	}, nil
}

// Close closes the database connection
func (r *Repositories) Close() error {
	return r.DB.Close()
}

// Ping verifies the database connection
func (r *Repositories) Ping(ctx context.Context) error {
	return r.DB.PingContext(ctx)
}

// Retention defines how long records are kept, zero keeps records forever
type Retention struct {
	Articles    time.Duration
	Contexts    time.Duration
	SourceStats time.Duration
}

// CleanupResult reports the number of deleted records per table
type CleanupResult struct {
	Articles    int64 `json:"articles"`
	Contexts    int64 `json:"contexts"`
	SourceStats int64 `json:"source_stats"`
}

// Cleanup deletes records older than retention
func (r *Repositories) Cleanup(ctx context.Context, ret Retention, now time.Time) (CleanupResult, error) {
	res := CleanupResult{}
	targets := []struct {
		table  string
		column string
		keep   time.Duration
		count  *int64
	}{
		{"articles", "collected_at", ret.Articles, &res.Articles},
		{"match_contexts", "updated_at", ret.Contexts, &res.Contexts},
		{"source_stats", "updated_at", ret.SourceStats, &res.SourceStats},
	}

	for _, t := range targets {
		if t.keep <= 0 {
			continue
		}
		query, args, err := sq.Delete(t.table).Where(sq.Lt{t.column: now.Add(-t.keep).UTC()}).ToSql()
		if err != nil {
			return res, fmt.Errorf("build cleanup query for %s: %w", t.table, err)
		}
		err = withRetry(ctx, "cleanup "+t.table, func() error {
			result, err := r.DB.ExecContext(ctx, query, args...)
			if err != nil {
				return err
			}
			*t.count, err = result.RowsAffected()
			return err
		})
		if err != nil {
			return res, err
		}
	}
	return res, nil
}

// Stats is a summary of stored records
type Stats struct {
	Matches  int `db:"matches" json:"matches"`
	Articles int `db:"articles" json:"articles"`
	Contexts int `db:"contexts" json:"contexts"`
	Sources  int `db:"sources" json:"sources"`
}

// Stats returns number of stored records per table
func (r *Repositories) Stats(ctx context.Context) (Stats, error) {
	var res Stats
	err := r.DB.GetContext(ctx, &res, `
		SELECT
			(SELECT COUNT(*) FROM matches) AS matches,
			(SELECT COUNT(*) FROM articles) AS articles,
			(SELECT COUNT(*) FROM match_contexts) AS contexts,
			(SELECT COUNT(*) FROM source_stats) AS sources
	`)
	if err != nil {
		return Stats{}, fmt.Errorf("get stats: %w", err)
	}
	return res, nil
}

// initSchema creates tables if they don't exist
func initSchema(ctx context.Context, db *sqlx.DB) error {
	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("read schema: %w", err)
	}

	if _, err := db.ExecContext(ctx, string(schema)); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}

	return nil
}

// withRetry runs fn, retrying SQLite lock errors with backoff. Other errors stop retries.
func withRetry(ctx context.Context, op string, fn func() error) error {
	retrier := repeater.NewBackoff(5, 50*time.Millisecond, repeater.WithMaxDelay(2*time.Second))
	var critical *criticalError
	err := retrier.Do(ctx, func() error {
		err := fn()
		if err != nil && !isLockError(err) {
			critical = &criticalError{err: err}
			return nil
		}
		return err
	})
	if critical != nil {
		return fmt.Errorf("%s: %w", op, critical)
	}
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// criticalError wraps an error which must not be retried
type criticalError struct {
	err error
}

func (e *criticalError) Error() string {
	return e.err.Error()
}

func (e *criticalError) Unwrap() error {
	return e.err
}

// isLockError checks if an error is a SQLite lock/busy error
func isLockError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "SQLITE_BUSY") ||
		strings.Contains(errStr, "database is locked") ||
		strings.Contains(errStr, "database table is locked")
}

// jsonSQL stores a value as JSON text
type jsonSQL[T any] struct {
	Val T
}

// Value implements driver.Valuer for database storage
func (j jsonSQL[T]) Value() (driver.Value, error) {
	data, err := json.Marshal(j.Val)
	if err != nil {
		return nil, fmt.Errorf("marshal json column: %w", err)
	}
	return string(data), nil
}

// Scan implements sql.Scanner for database retrieval, NULL and empty text keep the zero value
func (j *jsonSQL[T]) Scan(value any) error {
	var data []byte
	switch v := value.(type) {
	case nil:
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported json column type %T", value)
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, &j.Val)
}
