// Package stats holds the pure aggregation core: the per-period metric
// accumulator and the reconciler that merges fresh metrics with previously
// stored aggregates. Nothing in this package touches the database or the
// clock; callers supply activities, prior state, and a single "now" snapshot.
package stats

import (
	"time"

	"github.com/openmrkt/nftpulse/internal/domain/models"
)

// Metrics is the immutable tuple produced for one (collection, period) pair.
type Metrics struct {
	Owners      int64
	ListedItems int64
	SalesItems  int64
	FloorPrice  models.BigInt
	Volume      models.BigInt
}

// State is the fold state threaded through the five period computations of a
// single collection within one aggregation run. It carries the distinct-buyer
// set, the running volume, and the last known floor price so that a period
// with no new listings keeps the floor from an earlier (narrower) window.
//
// A fresh State must be used for every run; state never survives across runs,
// which keeps repeated runs over identical data idempotent.
type State struct {
	owners map[string]struct{}
	floor  models.BigInt
	volume models.BigInt
}

// NewState returns the empty fold state used at the start of a run.
// An optional prior floor price seeds the floor carry (used when the stored
// aggregate already has a floor and the current run sees no listings at all).
func NewState(priorFloor models.BigInt) State {
	return State{
		owners: map[string]struct{}{},
		floor:  priorFloor,
	}
}

// Owners returns the number of distinct buyers folded into the state so far.
func (s State) Owners() int64 { return int64(len(s.owners)) }

// Compute filters activities to the given period, folds SOLD and LISTED
// events into the prior state, and returns the successor state together with
// the metrics snapshot for this period.
//
// Semantics:
//   - owners: distinct buyer ids across SOLD events, cumulative over the
//     periods already folded this run.
//   - floorPrice: minimum LISTED price in the window; when the window has no
//     listings the previous floor is retained, never reset to a sentinel.
//   - volume: sum of SOLD prices added to the carried running total.
//   - listedItems / salesItems: plain counts for this period's window.
//
// The input state is not mutated; the returned State owns fresh copies.
// Action types other than LISTED and SOLD are ignored.
func Compute(activities []models.Activity, period models.Period, now time.Time, prior State) (State, Metrics) {
	next := State{
		owners: make(map[string]struct{}, len(prior.owners)),
		floor:  prior.floor,
		volume: prior.volume,
	}
	for id := range prior.owners {
		next.owners[id] = struct{}{}
	}

	var listed, sold int64
	var haveFloor bool
	var windowFloor models.BigInt

	for _, a := range activities {
		if !period.Contains(a.CreatedAt, now) {
			continue
		}
		switch a.ActionType {
		case models.ActivitySold:
			sold++
			next.owners[a.BuyerID] = struct{}{}
			next.volume = next.volume.Add(a.Price)
		case models.ActivityListed:
			listed++
			// guard the min explicitly; never take min of an empty set
			if !haveFloor || a.Price.Cmp(windowFloor) < 0 {
				windowFloor = a.Price
				haveFloor = true
			}
		}
	}

	if haveFloor {
		next.floor = windowFloor
	}

	return next, Metrics{
		Owners:      next.Owners(),
		ListedItems: listed,
		SalesItems:  sold,
		FloorPrice:  next.floor,
		Volume:      next.volume,
	}
}
