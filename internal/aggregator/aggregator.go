// Package aggregator runs the scheduled statistics recomputation: it fans out
// over all collections, folds each collection's activities into per-period
// metrics, reconciles them with the stored aggregates, and persists the
// results.
package aggregator

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/openmrkt/nftpulse/internal/domain/models"
	"github.com/openmrkt/nftpulse/internal/logger"
	"github.com/openmrkt/nftpulse/internal/stats"
	"github.com/openmrkt/nftpulse/internal/storage"
)

// ErrRunInProgress is returned when a trigger fires while a previous run is
// still executing. The caller is expected to skip the tick, not queue it.
var ErrRunInProgress = errors.New("stats aggregation run already in progress")

const defaultMaxParallel = 8

// Aggregator orchestrates one full statistics pass over all collections.
//
// State machine: IDLE -> RUNNING -> IDLE. The RUNNING flag guards against
// re-entrant triggers so two runs never race on the same stat rows. A failure
// in one collection is logged and does not abort its siblings; the run always
// returns to IDLE.
type Aggregator struct {
	repo        storage.StatsRepository
	maxParallel int
	running     atomic.Bool

	// now is an indirection over time.Now so tests can pin the clock.
	now func() time.Time
}

// Option configures an Aggregator.
type Option func(*Aggregator)

// WithMaxParallel bounds how many collections are processed concurrently.
// Values below 1 keep the default.
func WithMaxParallel(n int) Option {
	return func(a *Aggregator) {
		if n > 0 {
			a.maxParallel = n
		}
	}
}

// WithClock overrides the time source (tests).
func WithClock(now func() time.Time) Option {
	return func(a *Aggregator) { a.now = now }
}

// New constructs an Aggregator. The default concurrency bound is
// min(8, NumCPU) so a large collection table cannot flood the database.
func New(repo storage.StatsRepository, opts ...Option) *Aggregator {
	a := &Aggregator{
		repo:        repo,
		maxParallel: defaultMaxParallel,
		now:         time.Now,
	}
	if c := runtime.NumCPU(); c < a.maxParallel {
		a.maxParallel = c
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// UpdateAllStats executes one aggregation run.
//
// Behavior:
//   - Refuses to start while a previous run is in flight (ErrRunInProgress).
//   - Captures "now" once; every period decision in the run uses that snapshot.
//   - Loads all collections and processes them concurrently, bounded by
//     maxParallel.
//   - Per collection: one activity fetch, then for each of the five periods
//     the accumulator and the reconciler run and the result is upserted.
//   - Per-collection errors are logged with the collection id and swallowed;
//     the run completes and logs a terminal message with the failure count.
//
// Returns an error only when the run could not start at all (guard tripped or
// the collection list could not be loaded).
func (a *Aggregator) UpdateAllStats(ctx context.Context) error {
	if !a.running.CompareAndSwap(false, true) {
		return ErrRunInProgress
	}
	defer a.running.Store(false)

	start := time.Now()
	now := a.now()

	collections, err := a.repo.ListCollections(ctx)
	if err != nil {
		return fmt.Errorf("load collections: %w", err)
	}

	logger.L().Info().Int("collections", len(collections)).Int("max_parallel", a.maxParallel).Msg("stats update start")

	var failed atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, a.maxParallel)

	for _, collection := range collections {
		c := collection
		sem <- struct{}{}

		g.Go(func() error {
			defer func() { <-sem }()
			if err := a.updateCollection(gctx, c, now); err != nil {
				// failure isolation: log and keep processing siblings
				failed.Add(1)
				logger.L().Error().Str("collection_id", c.ID).Err(err).Msg("collection stats update failed")
			}
			return nil
		})
	}

	_ = g.Wait()

	logger.L().Info().
		Int("collections", len(collections)).
		Int64("failed", failed.Load()).
		Dur("elapsed", time.Since(start)).
		Msg("stats update complete")
	return nil
}

// updateCollection recomputes and persists all five period aggregates for one
// collection from a single activity snapshot.
//
// The fold state is threaded through the periods from the narrowest window to
// ALL: the owner set and running volume accumulate across the nested windows,
// and the floor price carries forward when a wider window adds no listings.
// A stored floor price seeds the carry so the floor never regresses to zero
// when the whole run sees no new listings.
func (a *Aggregator) updateCollection(ctx context.Context, c models.Collection, now time.Time) error {
	activities, err := a.repo.ListActivitiesByCollection(ctx, c.ID)
	if err != nil {
		return fmt.Errorf("load activities: %w", err)
	}

	var priorFloor models.BigInt
	if existing, err := a.repo.FindStat(ctx, c.ID, models.PeriodAll); err != nil {
		return fmt.Errorf("load prior stat: %w", err)
	} else if existing != nil {
		priorFloor = existing.FloorPrice
	}

	state := stats.NewState(priorFloor)
	for _, period := range models.AggregationPeriods {
		var m stats.Metrics
		state, m = stats.Compute(activities, period, now, state)

		existing, err := a.repo.FindStat(ctx, c.ID, period)
		if err != nil {
			return fmt.Errorf("period %s: find stat: %w", period, err)
		}

		write := stats.Reconcile(c.ID, period, m, existing)
		if err := a.repo.UpsertStat(ctx, write); err != nil {
			return fmt.Errorf("period %s: upsert stat: %w", period, err)
		}

		logger.L().Debug().
			Str("collection_id", c.ID).
			Str("period", string(period)).
			Int64("sales", m.SalesItems).
			Int64("listed", m.ListedItems).
			Msg("stat updated")
	}
	return nil
}
