package models

import "time"

// Stat is the persisted aggregate for one (collection, period) pair.
// Exactly one row exists per pair after the first successful aggregation run;
// subsequent runs update the row in place. Rows are never deleted.
//
// Fields:
//   - Owners: distinct buyers among SOLD activities in the window.
//   - ListedItems / SalesItems: LISTED and SOLD activity counts.
//   - FloorPrice: minimum listed price; retains its previous value when no
//     listing occurred in the window.
//   - Volume: sum of sale prices.
//   - Increased: percent change of volume versus the previously stored
//     aggregate for the same key (floor division, see stats.Reconcile).
//   - UpdatedAt: refreshed on every write; the notable/featured queries key
//     off this timestamp.
type Stat struct {
	ID           string    `json:"id"`
	CollectionID string    `json:"collectionId"`
	Period       Period    `json:"period"`
	Owners       int64     `json:"owners"`
	ListedItems  int64     `json:"listedItems"`
	SalesItems   int64     `json:"salesItems"`
	FloorPrice   BigInt    `json:"floorPrice"`
	Volume       BigInt    `json:"volume"`
	Increased    int64     `json:"increased"`
	UpdatedAt    time.Time `json:"updatedAt"`

	// Collection is populated by read queries that join collection detail;
	// nil on the write path.
	Collection *Collection `json:"collection,omitempty"`
}
