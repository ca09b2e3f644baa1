package stats

import (
	"math/big"

	"github.com/google/uuid"

	"github.com/openmrkt/nftpulse/internal/domain/models"
)

// StatWrite is the reconciled row destined for the stats table. Insert is
// advisory: the repository persists writes with an atomic upsert keyed on
// (collection_id, period), so a concurrent insert of the same key degrades
// into an update instead of a duplicate row.
type StatWrite struct {
	ID           string
	CollectionID string
	Period       models.Period
	Metrics      Metrics
	Increased    int64
	Insert       bool
}

// Reconcile merges freshly computed metrics with the previously stored
// aggregate for the same (collection, period) key.
//
// Rules:
//   - existing == nil: a new row with a generated UUID and Increased = 0
//     (there is no baseline to compare against).
//   - existing != nil: the existing row id is kept, all metric fields are
//     replaced, and Increased = floor(newVolume * 100 / oldVolume) when the
//     old volume is nonzero, else 0. The multiplication happens before the
//     floor division so precision is not thrown away (500 vs 400 yields 125,
//     not 100).
//
// Reconciling identical metrics against identical prior state twice yields
// identical row contents; only the repository's updated_at timestamp moves.
func Reconcile(collectionID string, period models.Period, m Metrics, existing *models.Stat) StatWrite {
	w := StatWrite{
		CollectionID: collectionID,
		Period:       period,
		Metrics:      m,
	}

	if existing == nil {
		w.ID = uuid.NewString()
		w.Insert = true
		return w
	}

	w.ID = existing.ID
	if existing.Volume.Sign() != 0 {
		pct := new(big.Int).Mul(m.Volume.Int(), big.NewInt(100))
		pct.Div(pct, existing.Volume.Int())
		w.Increased = pct.Int64()
	}
	return w
}
