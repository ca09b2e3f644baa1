package storage

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"

	retry "github.com/avast/retry-go/v4"
	pq "github.com/lib/pq"

	"github.com/openmrkt/nftpulse/internal/domain/models"
	"github.com/openmrkt/nftpulse/internal/stats"
)

// StatsSortBy enumerates the sortable columns of the collection stats list.
type StatsSortBy string

const (
	SortByVolume    StatsSortBy = "VOLUME"
	SortByLiquidity StatsSortBy = "LIQUIDITY"
	SortByFloor     StatsSortBy = "FLOOR"
	SortBySales     StatsSortBy = "SALES"
	SortByItems     StatsSortBy = "ITEMS"
	SortByListed    StatsSortBy = "LISTED"
	SortByOwners    StatsSortBy = "OWNERS"
)

// sortColumns whitelists the ORDER BY targets; anything else falls back to
// volume so user input never reaches the SQL string.
var sortColumns = map[StatsSortBy]string{
	SortByVolume:    "s.volume",
	SortByLiquidity: "s.increased",
	SortByFloor:     "s.floor_price",
	SortBySales:     "s.sales_items",
	SortByItems:     "c.supply",
	SortByListed:    "s.listed_items",
	SortByOwners:    "s.owners",
}

// ListStatsQuery carries the filter/sort/pagination parameters of the
// collection stats list endpoint.
//
// Pagination is page-offset style: the query skips Offset*StartID rows and
// returns at most Limit rows.
type ListStatsQuery struct {
	SortBy    StatsSortBy
	Ascending bool
	Contains  string
	Period    *models.Period
	Limit     int
	Offset    int
	StartID   int
}

// StatsRepository defines the contract for DB operations of the stats core:
// the read side used by the aggregation job (collections, activities, stored
// aggregates), the upsert write path, and the query-service projections.
type StatsRepository interface {
	ListCollections(ctx context.Context) ([]models.Collection, error)
	ListActivitiesByCollection(ctx context.Context, collectionID string) ([]models.Activity, error)
	FindStat(ctx context.Context, collectionID string, period models.Period) (*models.Stat, error)
	UpsertStat(ctx context.Context, w stats.StatWrite) error

	TopStats(ctx context.Context, updatedAfter time.Time) ([]models.Stat, error)
	NotableStats(ctx context.Context, updatedAfter time.Time) ([]models.Stat, error)
	FeaturedStats(ctx context.Context, updatedAfter time.Time) ([]models.Stat, error)
	StatByCollection(ctx context.Context, collectionID string, period *models.Period) (*models.Stat, error)
	ListStats(ctx context.Context, q ListStatsQuery) ([]models.Stat, error)
}

type statsRepository struct {
	db *sql.DB
}

func NewStatsRepository(db *sql.DB) StatsRepository {
	return &statsRepository{db: db}
}

// statColumns is the canonical select list for a stats row aliased "s".
const statColumns = `s.id, s.collection_id, s.period, s.owners, s.listed_items, s.sales_items, s.floor_price, s.volume, s.increased, s.updated_at`

// collectionColumns is the canonical select list for a collections row aliased "c".
const collectionColumns = `c.id, c.name, c.supply, c.feature, c.avatar_url, c.banner_url, c.created_at`

func scanStat(row interface{ Scan(...any) error }) (models.Stat, error) {
	var s models.Stat
	err := row.Scan(
		&s.ID, &s.CollectionID, &s.Period,
		&s.Owners, &s.ListedItems, &s.SalesItems,
		&s.FloorPrice, &s.Volume, &s.Increased, &s.UpdatedAt,
	)
	return s, err
}

func scanStatWithCollection(row interface{ Scan(...any) error }) (models.Stat, error) {
	var s models.Stat
	var c models.Collection
	err := row.Scan(
		&s.ID, &s.CollectionID, &s.Period,
		&s.Owners, &s.ListedItems, &s.SalesItems,
		&s.FloorPrice, &s.Volume, &s.Increased, &s.UpdatedAt,
		&c.ID, &c.Name, &c.Supply, &c.Feature, &c.AvatarURL, &c.BannerURL, &c.CreatedAt,
	)
	if err != nil {
		return s, err
	}
	s.Collection = &c
	return s, nil
}

// ListCollections returns every collection known to the marketplace.
func (r *statsRepository) ListCollections(ctx context.Context) ([]models.Collection, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, supply, feature, avatar_url, banner_url, created_at
		FROM collections
		ORDER BY created_at`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Collection
	for rows.Next() {
		var c models.Collection
		if err := rows.Scan(&c.ID, &c.Name, &c.Supply, &c.Feature, &c.AvatarURL, &c.BannerURL, &c.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// ListActivitiesByCollection returns all activity rows attached to the
// collection's tokens, oldest first. The aggregation job calls this exactly
// once per collection per run so all five periods see one consistent snapshot.
func (r *statsRepository) ListActivitiesByCollection(ctx context.Context, collectionID string) ([]models.Activity, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT a.id, a.nft_id, a.action_type, a.price, a.buyer_id, a.created_at
		FROM activities a
		JOIN nfts n ON n.id = a.nft_id
		WHERE n.collection_id = $1
		ORDER BY a.created_at`, collectionID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Activity
	for rows.Next() {
		var a models.Activity
		if err := rows.Scan(&a.ID, &a.NFTID, &a.ActionType, &a.Price, &a.BuyerID, &a.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

// FindStat loads the stored aggregate for a (collection, period) key.
// Returns (nil, nil) when no row exists yet.
func (r *statsRepository) FindStat(ctx context.Context, collectionID string, period models.Period) (*models.Stat, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+statColumns+`
		FROM stats s
		WHERE s.collection_id = $1 AND s.period = $2`, collectionID, period)
	s, err := scanStat(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// UpsertStat persists a reconciled stat write. The statement is a single
// atomic upsert on the (collection_id, period) unique key, so a concurrent
// run racing on the same key degrades into an update rather than a
// duplicate-key failure. Transient failures (dropped connections,
// serialization aborts) are retried a few times; anything else fails fast and
// leaves the prior row untouched.
func (r *statsRepository) UpsertStat(ctx context.Context, w stats.StatWrite) error {
	return retry.Do(
		func() error {
			_, err := r.db.ExecContext(ctx, `
				INSERT INTO stats (id, collection_id, period, owners, listed_items, sales_items, floor_price, volume, increased, updated_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
				ON CONFLICT (collection_id, period)
				DO UPDATE SET owners = EXCLUDED.owners,
							  listed_items = EXCLUDED.listed_items,
							  sales_items = EXCLUDED.sales_items,
							  floor_price = EXCLUDED.floor_price,
							  volume = EXCLUDED.volume,
							  increased = EXCLUDED.increased,
							  updated_at = NOW()`,
				w.ID, w.CollectionID, w.Period,
				w.Metrics.Owners, w.Metrics.ListedItems, w.Metrics.SalesItems,
				w.Metrics.FloorPrice, w.Metrics.Volume, w.Increased,
			)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(3),
		retry.Delay(100*time.Millisecond),
		retry.LastErrorOnly(true),
		retry.RetryIf(isTransient),
	)
}

// isTransient reports whether a DB error is worth retrying: connection-class
// and transaction-rollback-class Postgres errors, plus a driver-level bad
// connection. Constraint violations and query bugs are not retried.
func isTransient(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code.Class() {
		case "08", "40", "57":
			return true
		}
	}
	return false
}

// TopStats returns the highest-volume stat per collection among rows updated
// after the cutoff: at most 10 rows, one per collection, volume descending.
func (r *statsRepository) TopStats(ctx context.Context, updatedAfter time.Time) ([]models.Stat, error) {
	return r.queryStatsWithCollection(ctx, `
		SELECT `+statColumns+`, `+collectionColumns+`
		FROM (
			SELECT DISTINCT ON (collection_id) *
			FROM stats
			WHERE updated_at > $1
			ORDER BY collection_id, volume DESC
		) s
		JOIN collections c ON c.id = s.collection_id
		ORDER BY s.volume DESC
		LIMIT 10`, updatedAfter)
}

// NotableStats returns the freshest high-floor stats: rows updated after the
// cutoff, floor price descending, top 3 distinct collections.
func (r *statsRepository) NotableStats(ctx context.Context, updatedAfter time.Time) ([]models.Stat, error) {
	return r.queryStatsWithCollection(ctx, `
		SELECT `+statColumns+`, `+collectionColumns+`
		FROM (
			SELECT DISTINCT ON (collection_id) *
			FROM stats
			WHERE updated_at > $1
			ORDER BY collection_id, floor_price DESC
		) s
		JOIN collections c ON c.id = s.collection_id
		ORDER BY s.floor_price DESC
		LIMIT 3`, updatedAfter)
}

// FeaturedStats returns, for every feature-flagged collection, its most
// recently updated stat row newer than the cutoff (collections with no fresh
// row are simply absent).
func (r *statsRepository) FeaturedStats(ctx context.Context, updatedAfter time.Time) ([]models.Stat, error) {
	return r.queryStatsWithCollection(ctx, `
		SELECT DISTINCT ON (c.id) `+statColumns+`, `+collectionColumns+`
		FROM collections c
		JOIN stats s ON s.collection_id = c.id
		WHERE c.feature = TRUE AND s.updated_at > $1
		ORDER BY c.id, s.updated_at DESC`, updatedAfter)
}

// StatByCollection returns a single stat with collection detail, optionally
// filtered by period; the most recently updated row wins when no period is
// given. Returns (nil, nil) when nothing matches.
func (r *statsRepository) StatByCollection(ctx context.Context, collectionID string, period *models.Period) (*models.Stat, error) {
	conditions := "s.collection_id = $1"
	args := []any{collectionID}
	if period != nil {
		conditions += fmt.Sprintf(" AND s.period = $%d", len(args)+1)
		args = append(args, *period)
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+statColumns+`, `+collectionColumns+`
		FROM stats s
		JOIN collections c ON c.id = s.collection_id
		WHERE `+conditions+`
		ORDER BY s.updated_at DESC
		LIMIT 1`, args...)
	s, err := scanStatWithCollection(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListStats returns the filtered/sorted/paginated stats list joined with
// collection detail.
//
// Behavior:
//   - Contains filters by case-insensitive name substring (the full term).
//   - Period, when set, restricts to one window.
//   - SortBy is resolved through the sortColumns whitelist (volume descending
//     by default).
//   - Skip = Offset * StartID, Take = Limit (no limit when Limit <= 0).
func (r *statsRepository) ListStats(ctx context.Context, q ListStatsQuery) ([]models.Stat, error) {
	// Dynamic conditions with positional placeholders appended in order,
	// same approach as StatByCollection.
	var conditions []string
	var args []any
	if q.Period != nil {
		conditions = append(conditions, fmt.Sprintf("s.period = $%d", len(args)+1))
		args = append(args, *q.Period)
	}
	if q.Contains != "" {
		conditions = append(conditions, fmt.Sprintf("c.name ILIKE $%d", len(args)+1))
		args = append(args, "%"+q.Contains+"%")
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	column, ok := sortColumns[q.SortBy]
	if !ok {
		column = "s.volume"
	}
	direction := "DESC"
	if q.Ascending {
		direction = "ASC"
	}

	paging := ""
	if q.Limit > 0 {
		paging = fmt.Sprintf("LIMIT %d OFFSET %d", q.Limit, q.Offset*q.StartID)
	}

	query := fmt.Sprintf(`
		SELECT %s, %s
		FROM stats s
		JOIN collections c ON c.id = s.collection_id
		%s
		ORDER BY %s %s
		%s`, statColumns, collectionColumns, where, column, direction, paging)

	return r.queryStatsWithCollection(ctx, query, args...)
}

func (r *statsRepository) queryStatsWithCollection(ctx context.Context, query string, args ...any) ([]models.Stat, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []models.Stat
	for rows.Next() {
		s, err := scanStatWithCollection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
