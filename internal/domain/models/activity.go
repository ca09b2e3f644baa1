package models

import "time"

// ActivityType enumerates marketplace actions relevant to stats.
// Other action types may exist in the activities table; the aggregation
// engine ignores anything that is not LISTED or SOLD.
type ActivityType string

const (
	ActivityListed ActivityType = "LISTED"
	ActivitySold   ActivityType = "SOLD"
)

// Activity is an immutable marketplace event tied to a single token.
// Rows are append-only: the aggregation engine never mutates or deletes them.
//
// Fields:
//   - ID: event identifier.
//   - NFTID: token the event refers to.
//   - ActionType: LISTED, SOLD, or another marketplace action.
//   - Price: event price in the smallest currency unit.
//   - BuyerID: buyer wallet for SOLD events; empty otherwise.
//   - CreatedAt: event timestamp, used by the period classifier.
type Activity struct {
	ID         string       `json:"id"`
	NFTID      string       `json:"nftId"`
	ActionType ActivityType `json:"actionType"`
	Price      BigInt       `json:"price"`
	BuyerID    string       `json:"buyerId"`
	CreatedAt  time.Time    `json:"createdAt"`
}
