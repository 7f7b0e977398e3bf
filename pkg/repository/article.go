package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/umputun/matchnews/pkg/dedup"
	"github.com/umputun/matchnews/pkg/domain"
)

// ArticleRepository handles canonical articles of matches
type ArticleRepository struct {
	db *sqlx.DB
}

// articleSQL represents an article for SQL operations
type articleSQL struct {
	ID             int64                   `db:"id"`
	MatchID        string                  `db:"match_id"`
	Hash           string                  `db:"hash"`
	Title          string                  `db:"title"`
	Summary        string                  `db:"summary"`
	Content        string                  `db:"content"`
	Link           string                  `db:"link"`
	Author         string                  `db:"author"`
	PublishedAt    time.Time               `db:"published_at"`
	Source         string                  `db:"source"`
	SourceType     string                  `db:"source_type"`
	RelevanceScore float64                 `db:"relevance_score"`
	QualityScore   float64                 `db:"quality_score"`
	Tags           jsonSQL[[]string]       `db:"tags"`
	Language       string                  `db:"language"`
	ContentType    string                  `db:"content_type"`
	Sentiment      string                  `db:"sentiment"`
	Details        jsonSQL[articleDetails] `db:"details"`
	CollectedAt    time.Time               `db:"collected_at"`
	CreatedAt      time.Time               `db:"created_at"`
	UpdatedAt      time.Time               `db:"updated_at"`
}

// articleDetails keeps source side channels and scoring/dedup annotations in a single json column
type articleDetails struct {
	Reddit           *domain.RedditData       `json:"reddit_data,omitempty"`
	Twitter          *domain.TwitterData      `json:"twitter_data,omitempty"`
	ViewCount        int64                    `json:"view_count,omitempty"`
	QualityBreakdown *domain.QualityBreakdown `json:"quality_breakdown,omitempty"`
	QualityFlags     *domain.QualityFlags     `json:"quality_flags,omitempty"`
	Dedup            *domain.DedupRecord      `json:"deduplication_info,omitempty"`
	MergeInfo        *domain.MergeInfo        `json:"merge_info,omitempty"`
}

// StoreResult reports how a batch was persisted
type StoreResult struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
}

// ArticleFilter selects articles, zero fields are ignored
type ArticleFilter struct {
	MatchID    string
	MinQuality float64
	SourceType domain.SourceType
	Since      time.Time
	Limit      int
	Offset     int // applied only with Limit
}

// TopicCount is a tag with the number of articles carrying it
type TopicCount struct {
	Topic    string `db:"topic" json:"topic"`
	Mentions int    `db:"mentions" json:"mentions"`
}

// NewArticleRepository creates a new article repository
func NewArticleRepository(db *sqlx.DB) *ArticleRepository {
	return &ArticleRepository{db: db}
}

// StoreArticles saves a deduplicated batch in a single transaction. An article already stored for
// the same match under the same identity hash is updated in place.
func (r *ArticleRepository) StoreArticles(ctx context.Context, articles []*domain.Article) (StoreResult, error) {
	rows := make([]articleSQL, 0, len(articles))
	for _, a := range articles {
		if a == nil {
			continue
		}
		if a.MatchID == "" {
			return StoreResult{}, fmt.Errorf("store articles: match id is required for %q", a.Title)
		}
		rows = append(rows, toArticleSQL(a))
	}
	if len(rows) == 0 {
		return StoreResult{}, nil
	}

	insert := `
		INSERT INTO articles (
			match_id, hash, title, summary, content, link, author, published_at, source, source_type,
			relevance_score, quality_score, tags, language, content_type, sentiment, details, collected_at
		) VALUES (
			:match_id, :hash, :title, :summary, :content, :link, :author, :published_at, :source, :source_type,
			:relevance_score, :quality_score, :tags, :language, :content_type, :sentiment, :details, :collected_at
		)
		ON CONFLICT(match_id, hash) DO NOTHING
	`
	update := `
		UPDATE articles SET
			title = :title, summary = :summary, content = :content, link = :link, author = :author,
			published_at = :published_at, source = :source, source_type = :source_type,
			relevance_score = :relevance_score, quality_score = :quality_score, tags = :tags,
			language = :language, content_type = :content_type, sentiment = :sentiment, details = :details,
			updated_at = CURRENT_TIMESTAMP
		WHERE match_id = :match_id AND hash = :hash
	`

	var res StoreResult
	err := withRetry(ctx, "store articles", func() error {
		res = StoreResult{}
		tx, err := r.db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer tx.Rollback()

		for _, row := range rows {
			result, err := tx.NamedExecContext(ctx, insert, row)
			if err != nil {
				return fmt.Errorf("insert article %q: %w", row.Title, err)
			}
			if n, _ := result.RowsAffected(); n > 0 {
				res.Inserted++
				continue
			}
			if _, err := tx.NamedExecContext(ctx, update, row); err != nil {
				return fmt.Errorf("update article %q: %w", row.Title, err)
			}
			res.Updated++
		}
		return tx.Commit()
	})
	if err != nil {
		return StoreResult{}, err
	}
	return res, nil
}

// GetArticles returns articles matching the filter, best quality first
func (r *ArticleRepository) GetArticles(ctx context.Context, f ArticleFilter) ([]*domain.Article, error) {
	q := sq.Select("*").From("articles").OrderBy("quality_score DESC", "published_at DESC")
	if f.MatchID != "" {
		q = q.Where(sq.Eq{"match_id": f.MatchID})
	}
	if f.MinQuality > 0 {
		q = q.Where(sq.GtOrEq{"quality_score": f.MinQuality})
	}
	if f.SourceType != "" {
		q = q.Where(sq.Eq{"source_type": string(f.SourceType)})
	}
	if !f.Since.IsZero() {
		q = q.Where(sq.GtOrEq{"published_at": f.Since.UTC()})
	}
	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
		if f.Offset > 0 {
			q = q.Offset(uint64(f.Offset))
		}
	}
	return r.selectArticles(ctx, "get articles", q)
}

// SearchArticles finds articles containing every word of the query in title, summary or content.
// Empty matchID searches all matches.
func (r *ArticleRepository) SearchArticles(ctx context.Context, query, matchID string, limit int) ([]*domain.Article, error) {
	words := strings.Fields(query)
	if len(words) == 0 {
		return nil, errors.New("search articles: empty query")
	}
	q := sq.Select("*").From("articles").OrderBy("published_at DESC", "quality_score DESC")
	if matchID != "" {
		q = q.Where(sq.Eq{"match_id": matchID})
	}
	for _, w := range words {
		pattern := "%" + w + "%"
		q = q.Where(sq.Or{
			sq.Like{"title": pattern},
			sq.Like{"summary": pattern},
			sq.Like{"content": pattern},
		})
	}
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	return r.selectArticles(ctx, "search articles", q)
}

// TrendingTopics counts tags of articles published since the given time, most mentioned first
func (r *ArticleRepository) TrendingTopics(ctx context.Context, since time.Time, limit int) ([]TopicCount, error) {
	q := sq.Select("j.value AS topic", "COUNT(*) AS mentions").
		From("articles, json_each(articles.tags) AS j").
		Where(sq.GtOrEq{"articles.published_at": since.UTC()}).
		GroupBy("j.value").
		OrderBy("mentions DESC", "topic")
	if limit > 0 {
		q = q.Limit(uint64(limit))
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build trending query: %w", err)
	}

	res := []TopicCount{}
	if err := r.db.SelectContext(ctx, &res, query, args...); err != nil {
		return nil, fmt.Errorf("get trending topics: %w", err)
	}
	return res, nil
}

// MatchSources returns per-source article counts and average quality of the match
func (r *ArticleRepository) MatchSources(ctx context.Context, matchID string) ([]domain.SourceStats, error) {
	query, args, err := sq.Select("source", "source_type", "COUNT(*) AS articles", "AVG(quality_score) AS avg_quality").
		From("articles").
		Where(sq.Eq{"match_id": matchID}).
		GroupBy("source", "source_type").
		OrderBy("articles DESC", "source").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build match sources query: %w", err)
	}

	var rows []struct {
		Source     string  `db:"source"`
		SourceType string  `db:"source_type"`
		Articles   int     `db:"articles"`
		AvgQuality float64 `db:"avg_quality"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("get match sources %s: %w", matchID, err)
	}

	res := make([]domain.SourceStats, 0, len(rows))
	for _, row := range rows {
		res = append(res, domain.SourceStats{
			Source:     row.Source,
			SourceType: row.SourceType,
			Articles:   row.Articles,
			AvgQuality: row.AvgQuality,
		})
	}
	return res, nil
}

func (r *ArticleRepository) selectArticles(ctx context.Context, op string, q sq.SelectBuilder) ([]*domain.Article, error) {
	query, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}
	var rows []articleSQL
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	res := make([]*domain.Article, 0, len(rows))
	for i := range rows {
		res = append(res, rows[i].toDomain())
	}
	return res, nil
}

// articleKey picks the storage identity of the article: url hash, title hash, then exact hash
func articleKey(a *domain.Article) string {
	h := dedup.Hashes(a)
	if a.Dedup != nil && a.Dedup.Hashes.Exact != "" {
		h = a.Dedup.Hashes
	}
	for _, k := range []string{h.URL, h.Title} {
		if k != "" {
			return k
		}
	}
	return h.Exact
}

func toArticleSQL(a *domain.Article) articleSQL {
	tags := a.Tags
	if tags == nil {
		tags = []string{}
	}
	return articleSQL{
		MatchID:        a.MatchID,
		Hash:           articleKey(a),
		Title:          a.Title,
		Summary:        a.Summary,
		Content:        a.Content,
		Link:           a.Link,
		Author:         a.Author,
		PublishedAt:    a.PublishedAt.UTC(),
		Source:         a.Source,
		SourceType:     string(a.SourceType),
		RelevanceScore: a.RelevanceScore,
		QualityScore:   a.Quality(),
		Tags:           jsonSQL[[]string]{Val: tags},
		Language:       a.Language,
		ContentType:    a.ContentType,
		Sentiment:      a.Sentiment,
		Details: jsonSQL[articleDetails]{Val: articleDetails{
			Reddit:           a.Reddit,
			Twitter:          a.Twitter,
			ViewCount:        a.ViewCount,
			QualityBreakdown: a.QualityBreakdown,
			QualityFlags:     a.QualityFlags,
			Dedup:            a.Dedup,
			MergeInfo:        a.MergeInfo,
		}},
		CollectedAt: a.CollectedAt.UTC(),
	}
}

func (a *articleSQL) toDomain() *domain.Article {
	res := &domain.Article{
		MatchID:          a.MatchID,
		Title:            a.Title,
		Summary:          a.Summary,
		Content:          a.Content,
		Link:             a.Link,
		Author:           a.Author,
		PublishedAt:      a.PublishedAt.UTC(),
		Source:           a.Source,
		SourceType:       domain.SourceType(a.SourceType),
		RelevanceScore:   a.RelevanceScore,
		Tags:             nonNil(a.Tags.Val),
		CollectedAt:      a.CollectedAt.UTC(),
		Language:         a.Language,
		ContentType:      a.ContentType,
		Sentiment:        a.Sentiment,
		Reddit:           a.Details.Val.Reddit,
		Twitter:          a.Details.Val.Twitter,
		ViewCount:        a.Details.Val.ViewCount,
		QualityBreakdown: a.Details.Val.QualityBreakdown,
		QualityFlags:     a.Details.Val.QualityFlags,
		Dedup:            a.Details.Val.Dedup,
		MergeInfo:        a.Details.Val.MergeInfo,
	}
	res.SetQuality(a.QualityScore)
	return res
}
