package service

import (
	"context"
	"time"

	"github.com/openmrkt/nftpulse/internal/domain/models"
	"github.com/openmrkt/nftpulse/internal/storage"
)

// freshnessWindow bounds the notable and featured queries: only stat rows
// refreshed by the aggregation job within the last minute count.
const freshnessWindow = 60 * time.Second

// StatService defines the read-side projections over the persisted
// aggregates. All heavy lifting happens in the repository; this layer maps
// period filters to time cutoffs.
type StatService interface {
	GetTopCollections(ctx context.Context, period *models.Period) ([]models.Stat, error)
	GetNotableCollections(ctx context.Context) ([]models.Stat, error)
	GetFeaturedProjects(ctx context.Context) ([]models.Stat, error)
	GetStatByCollectionID(ctx context.Context, collectionID string, period *models.Period) (*models.Stat, error)
	GetCollections(ctx context.Context, q storage.ListStatsQuery) ([]models.Stat, error)
}

type statService struct {
	repo storage.StatsRepository
	now  func() time.Time
}

func NewStatService(repo storage.StatsRepository) StatService {
	return &statService{repo: repo, now: time.Now}
}

// topWindow maps a period filter to the trailing updated_at window used by
// the top-collections query. Anything unbounded or unknown falls back to a
// week.
func topWindow(period *models.Period) time.Duration {
	if period == nil {
		return 7 * 24 * time.Hour
	}
	switch *period {
	case models.PeriodHour, models.PeriodSixHours, models.PeriodDay, models.PeriodWeek:
		return period.Window()
	default:
		return 7 * 24 * time.Hour
	}
}

// GetTopCollections returns at most 10 stats, one per collection, volume
// descending, among rows updated within the window derived from the filter.
func (s *statService) GetTopCollections(ctx context.Context, period *models.Period) ([]models.Stat, error) {
	cutoff := s.now().Add(-topWindow(period))
	return s.repo.TopStats(ctx, cutoff)
}

// GetNotableCollections returns the top 3 distinct collections by floor
// price among stats refreshed within the last minute.
func (s *statService) GetNotableCollections(ctx context.Context) ([]models.Stat, error) {
	return s.repo.NotableStats(ctx, s.now().Add(-freshnessWindow))
}

// GetFeaturedProjects returns the freshest stat of every feature-flagged
// collection, restricted to rows refreshed within the last minute.
func (s *statService) GetFeaturedProjects(ctx context.Context) ([]models.Stat, error) {
	return s.repo.FeaturedStats(ctx, s.now().Add(-freshnessWindow))
}

// GetStatByCollectionID returns one stat with collection detail, optionally
// narrowed to a period. Returns (nil, nil) when the collection has no stats.
func (s *statService) GetStatByCollectionID(ctx context.Context, collectionID string, period *models.Period) (*models.Stat, error) {
	return s.repo.StatByCollection(ctx, collectionID, period)
}

// GetCollections returns the filtered, sorted, paginated stats list.
func (s *statService) GetCollections(ctx context.Context, q storage.ListStatsQuery) ([]models.Stat, error) {
	return s.repo.ListStats(ctx, q)
}
