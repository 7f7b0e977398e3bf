package server

import (
	"context"
	"time"

	"github.com/umputun/matchnews/pkg/domain"
	"github.com/umputun/matchnews/pkg/repository"
)

//go:generate moq -out mocks/match_repo.go -pkg mocks -skip-ensure -fmt goimports . MatchRepo
//go:generate moq -out mocks/article_repo.go -pkg mocks -skip-ensure -fmt goimports . ArticleRepo
//go:generate moq -out mocks/source_repo.go -pkg mocks -skip-ensure -fmt goimports . SourceRepo
//go:generate moq -out mocks/db_repo.go -pkg mocks -skip-ensure -fmt goimports . DBRepo

// RepositoryAdapter adapts repositories to server.Database and aggregator.Store interfaces
type RepositoryAdapter struct {
	matchRepo   MatchRepo
	articleRepo ArticleRepo
	sourceRepo  SourceRepo
	dbRepo      DBRepo
}

// MatchRepo is the subset of match repository used by the adapter
type MatchRepo interface {
	StoreMatch(ctx context.Context, m domain.MatchInfo) error
	GetMatch(ctx context.Context, id string) (*domain.MatchInfo, error)
	StoreContext(ctx context.Context, mc *domain.MatchContext) error
	GetContext(ctx context.Context, matchID string) (*domain.MatchContext, error)
}

// ArticleRepo is the subset of article repository used by the adapter
type ArticleRepo interface {
	StoreArticles(ctx context.Context, articles []*domain.Article) (repository.StoreResult, error)
	GetArticles(ctx context.Context, f repository.ArticleFilter) ([]*domain.Article, error)
	SearchArticles(ctx context.Context, query, matchID string, limit int) ([]*domain.Article, error)
	TrendingTopics(ctx context.Context, since time.Time, limit int) ([]repository.TopicCount, error)
	MatchSources(ctx context.Context, matchID string) ([]domain.SourceStats, error)
}

// SourceRepo is the subset of source repository used by the adapter
type SourceRepo interface {
	UpdateSourceStats(ctx context.Context, stats []domain.SourceStats) error
	GetSourceStats(ctx context.Context) ([]domain.SourceStats, error)
}

// DBRepo covers database level operations
type DBRepo interface {
	Ping(ctx context.Context) error
	Stats(ctx context.Context) (repository.Stats, error)
}

// NewRepositoryAdapter creates a new repository adapter
func NewRepositoryAdapter(repos *repository.Repositories) *RepositoryAdapter {
	return &RepositoryAdapter{
		matchRepo:   repos.Match,
		articleRepo: repos.Article,
		sourceRepo:  repos.Source,
		dbRepo:      repos,
	}
}

// NewRepositoryAdapterWithInterfaces creates a new repository adapter from separate repositories
func NewRepositoryAdapterWithInterfaces(matchRepo MatchRepo, articleRepo ArticleRepo, sourceRepo SourceRepo, dbRepo DBRepo) *RepositoryAdapter {
	return &RepositoryAdapter{
		matchRepo:   matchRepo,
		articleRepo: articleRepo,
		sourceRepo:  sourceRepo,
		dbRepo:      dbRepo,
	}
}

// StoreMatch saves aggregation state of the match
func (r *RepositoryAdapter) StoreMatch(ctx context.Context, m domain.MatchInfo) error {
	return r.matchRepo.StoreMatch(ctx, m)
}

// GetMatch returns aggregation state of the match
func (r *RepositoryAdapter) GetMatch(ctx context.Context, id string) (*domain.MatchInfo, error) {
	return r.matchRepo.GetMatch(ctx, id)
}

// StoreContext saves aggregated match context
func (r *RepositoryAdapter) StoreContext(ctx context.Context, mc *domain.MatchContext) error {
	return r.matchRepo.StoreContext(ctx, mc)
}

// GetContext returns aggregated match context
func (r *RepositoryAdapter) GetContext(ctx context.Context, matchID string) (*domain.MatchContext, error) {
	return r.matchRepo.GetContext(ctx, matchID)
}

// StoreArticles upserts canonical articles
func (r *RepositoryAdapter) StoreArticles(ctx context.Context, articles []*domain.Article) (repository.StoreResult, error) {
	if len(articles) == 0 {
		return repository.StoreResult{}, nil
	}
	return r.articleRepo.StoreArticles(ctx, articles)
}

// GetArticles returns articles matching the filter
func (r *RepositoryAdapter) GetArticles(ctx context.Context, f repository.ArticleFilter) ([]*domain.Article, error) {
	return r.articleRepo.GetArticles(ctx, f)
}

// SearchArticles performs text search, limited to the match if matchID is set
func (r *RepositoryAdapter) SearchArticles(ctx context.Context, query, matchID string, limit int) ([]*domain.Article, error) {
	return r.articleRepo.SearchArticles(ctx, query, matchID, limit)
}

// TrendingTopics returns the most used tags of articles collected since the given time
func (r *RepositoryAdapter) TrendingTopics(ctx context.Context, since time.Time, limit int) ([]repository.TopicCount, error) {
	return r.articleRepo.TrendingTopics(ctx, since, limit)
}

// MatchSources returns per-source breakdown of match articles
func (r *RepositoryAdapter) MatchSources(ctx context.Context, matchID string) ([]domain.SourceStats, error) {
	return r.articleRepo.MatchSources(ctx, matchID)
}

// UpdateSourceStats records collection results per source
func (r *RepositoryAdapter) UpdateSourceStats(ctx context.Context, stats []domain.SourceStats) error {
	if len(stats) == 0 {
		return nil
	}
	return r.sourceRepo.UpdateSourceStats(ctx, stats)
}

// GetSourceStats returns collection stats of all sources
func (r *RepositoryAdapter) GetSourceStats(ctx context.Context) ([]domain.SourceStats, error) {
	return r.sourceRepo.GetSourceStats(ctx)
}

// Ping checks database connection
func (r *RepositoryAdapter) Ping(ctx context.Context) error {
	return r.dbRepo.Ping(ctx)
}

// Stats returns number of stored records
func (r *RepositoryAdapter) Stats(ctx context.Context) (repository.Stats, error) {
	return r.dbRepo.Stats(ctx)
}
