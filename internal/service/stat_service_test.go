package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/openmrkt/nftpulse/internal/domain/models"
	"github.com/openmrkt/nftpulse/internal/stats"
	"github.com/openmrkt/nftpulse/internal/storage"
)

var serviceNow = time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

// captureRepo records the cutoffs and queries the service passes down.
type captureRepo struct {
	topCutoff      time.Time
	notableCutoff  time.Time
	featuredCutoff time.Time
	listQuery      storage.ListStatsQuery
	statID         string
	statPeriod     *models.Period

	result []models.Stat
	err    error
}

func (c *captureRepo) ListCollections(_ context.Context) ([]models.Collection, error) {
	return nil, nil
}
func (c *captureRepo) ListActivitiesByCollection(_ context.Context, _ string) ([]models.Activity, error) {
	return nil, nil
}
func (c *captureRepo) FindStat(_ context.Context, _ string, _ models.Period) (*models.Stat, error) {
	return nil, nil
}
func (c *captureRepo) UpsertStat(_ context.Context, _ stats.StatWrite) error { return nil }

func (c *captureRepo) TopStats(_ context.Context, updatedAfter time.Time) ([]models.Stat, error) {
	c.topCutoff = updatedAfter
	return c.result, c.err
}
func (c *captureRepo) NotableStats(_ context.Context, updatedAfter time.Time) ([]models.Stat, error) {
	c.notableCutoff = updatedAfter
	return c.result, c.err
}
func (c *captureRepo) FeaturedStats(_ context.Context, updatedAfter time.Time) ([]models.Stat, error) {
	c.featuredCutoff = updatedAfter
	return c.result, c.err
}
func (c *captureRepo) StatByCollection(_ context.Context, collectionID string, period *models.Period) (*models.Stat, error) {
	c.statID = collectionID
	c.statPeriod = period
	if len(c.result) > 0 {
		return &c.result[0], c.err
	}
	return nil, c.err
}
func (c *captureRepo) ListStats(_ context.Context, q storage.ListStatsQuery) ([]models.Stat, error) {
	c.listQuery = q
	return c.result, c.err
}

var _ storage.StatsRepository = (*captureRepo)(nil)

func newTestService(repo *captureRepo) *statService {
	return &statService{repo: repo, now: func() time.Time { return serviceNow }}
}

func TestTopWindow(t *testing.T) {
	hour := models.PeriodHour
	six := models.PeriodSixHours
	day := models.PeriodDay
	week := models.PeriodWeek
	all := models.PeriodAll
	bogus := models.Period("YEAR")

	cases := []struct {
		name   string
		period *models.Period
		want   time.Duration
	}{
		{name: "nil defaults to a week", period: nil, want: 7 * 24 * time.Hour},
		{name: "hour", period: &hour, want: time.Hour},
		{name: "six hours", period: &six, want: 6 * time.Hour},
		{name: "day", period: &day, want: 24 * time.Hour},
		{name: "week", period: &week, want: 7 * 24 * time.Hour},
		{name: "all falls back to a week", period: &all, want: 7 * 24 * time.Hour},
		{name: "unknown falls back to a week", period: &bogus, want: 7 * 24 * time.Hour},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := topWindow(tc.period); got != tc.want {
				t.Fatalf("topWindow=%v, want %v", got, tc.want)
			}
		})
	}
}

func TestGetTopCollections_CutoffFromPeriod(t *testing.T) {
	repo := &captureRepo{result: []models.Stat{{ID: "stat-1"}}}
	svc := newTestService(repo)

	p := models.PeriodHour
	out, err := svc.GetTopCollections(context.Background(), &p)
	if err != nil {
		t.Fatalf("GetTopCollections: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("len=%d, want 1", len(out))
	}
	if want := serviceNow.Add(-time.Hour); !repo.topCutoff.Equal(want) {
		t.Fatalf("cutoff=%v, want %v", repo.topCutoff, want)
	}

	if _, err := svc.GetTopCollections(context.Background(), nil); err != nil {
		t.Fatalf("GetTopCollections: %v", err)
	}
	if want := serviceNow.Add(-7 * 24 * time.Hour); !repo.topCutoff.Equal(want) {
		t.Fatalf("default cutoff=%v, want %v", repo.topCutoff, want)
	}
}

func TestFreshnessCutoffs(t *testing.T) {
	repo := &captureRepo{}
	svc := newTestService(repo)
	want := serviceNow.Add(-60 * time.Second)

	if _, err := svc.GetNotableCollections(context.Background()); err != nil {
		t.Fatalf("GetNotableCollections: %v", err)
	}
	if !repo.notableCutoff.Equal(want) {
		t.Fatalf("notable cutoff=%v, want %v", repo.notableCutoff, want)
	}

	if _, err := svc.GetFeaturedProjects(context.Background()); err != nil {
		t.Fatalf("GetFeaturedProjects: %v", err)
	}
	if !repo.featuredCutoff.Equal(want) {
		t.Fatalf("featured cutoff=%v, want %v", repo.featuredCutoff, want)
	}
}

func TestGetStatByCollectionID_PassThrough(t *testing.T) {
	repo := &captureRepo{result: []models.Stat{{ID: "stat-1", CollectionID: "col-1"}}}
	svc := newTestService(repo)

	p := models.PeriodWeek
	got, err := svc.GetStatByCollectionID(context.Background(), "col-1", &p)
	if err != nil || got == nil || got.ID != "stat-1" {
		t.Fatalf("got %+v, %v", got, err)
	}
	if repo.statID != "col-1" || repo.statPeriod == nil || *repo.statPeriod != models.PeriodWeek {
		t.Fatalf("arguments not forwarded: id=%q period=%v", repo.statID, repo.statPeriod)
	}

	// missing collection surfaces as nil,nil
	empty := &captureRepo{}
	got, err = newTestService(empty).GetStatByCollectionID(context.Background(), "ghost", nil)
	if got != nil || err != nil {
		t.Fatalf("want nil,nil got %+v, %v", got, err)
	}
}

func TestGetCollections_ForwardsQueryAndErrors(t *testing.T) {
	repo := &captureRepo{err: errors.New("db down")}
	svc := newTestService(repo)

	q := storage.ListStatsQuery{SortBy: storage.SortByOwners, Contains: "cats", Limit: 5}
	if _, err := svc.GetCollections(context.Background(), q); err == nil {
		t.Fatalf("expected repository error to surface")
	}
	if repo.listQuery.SortBy != storage.SortByOwners || repo.listQuery.Contains != "cats" || repo.listQuery.Limit != 5 {
		t.Fatalf("query not forwarded: %+v", repo.listQuery)
	}
}
