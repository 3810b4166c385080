// ABOUTME: SQLite listing store holding canonical marketplace records
// ABOUTME: Filter queries are composed with squirrel from a ListingQuery

package listingstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/goccy/go-json"
	_ "github.com/mattn/go-sqlite3"

	"listings-aggregator-api/core/domain"
	"listings-aggregator-api/core/interfaces"
)

const table = "listings"

var columns = []string{
	"id", "source", "counterparty", "commodity", "quantity", "unit",
	"price_per_unit", "currency", "region", "quality_specs",
	"social_impact_score", "social_impact_category", "metadata", "listed_at",
}

// SQLiteStore implements interfaces.ListingStore on SQLite
type SQLiteStore struct {
	db *sql.DB
}

var _ interfaces.ListingStore = (*SQLiteStore)(nil)

// Open opens or creates the store at path
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open listing store: %w", err)
	}
	if path == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	store := &SQLiteStore{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate listing store: %w", err)
	}
	return store, nil
}

func (s *SQLiteStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS listings (
			id TEXT PRIMARY KEY,
			source TEXT NOT NULL DEFAULT '',
			counterparty TEXT NOT NULL DEFAULT '',
			commodity TEXT NOT NULL DEFAULT '',
			quantity REAL,
			unit TEXT NOT NULL DEFAULT '',
			price_per_unit REAL,
			currency TEXT NOT NULL DEFAULT '',
			region TEXT NOT NULL DEFAULT '',
			quality_specs TEXT NOT NULL DEFAULT '',
			social_impact_score REAL,
			social_impact_category TEXT NOT NULL DEFAULT '',
			metadata TEXT,
			listed_at TEXT
		);
		CREATE INDEX IF NOT EXISTS idx_listings_commodity ON listings(commodity);
	`)
	return err
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Find returns listings matching q ordered by ID. Commodity matching is
// case-insensitive; region matches as a case-insensitive substring.
func (s *SQLiteStore) Find(ctx context.Context, q interfaces.ListingQuery) ([]domain.NormalizedListing, error) {
	query := sq.Select(columns...).From(table).OrderBy("id")

	if len(q.Commodities) > 0 {
		lowered := make([]string, len(q.Commodities))
		for i, c := range q.Commodities {
			lowered[i] = strings.ToLower(strings.TrimSpace(c))
		}
		query = query.Where(sq.Eq{"LOWER(commodity)": lowered})
	}
	if region := strings.TrimSpace(q.Region); region != "" {
		query = query.Where(sq.Like{"region": "%" + region + "%"})
	}
	if q.PriceMin != nil {
		query = query.Where(sq.GtOrEq{"price_per_unit": *q.PriceMin})
	}
	if q.PriceMax != nil {
		query = query.Where(sq.LtOrEq{"price_per_unit": *q.PriceMax})
	}
	if q.MinQuantity != nil {
		query = query.Where(sq.GtOrEq{"quantity": *q.MinQuantity})
	}
	if q.MinSocialImpactScore != nil {
		query = query.Where(sq.GtOrEq{"social_impact_score": *q.MinSocialImpactScore})
	}
	if q.Limit > 0 {
		query = query.Limit(q.Limit)
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query listings: %w", err)
	}
	defer rows.Close()

	listings := []domain.NormalizedListing{}
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, err
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return listings, nil
}

// Upsert inserts or replaces listings by ID in one transaction
func (s *SQLiteStore) Upsert(ctx context.Context, listings []domain.NormalizedListing) error {
	if len(listings) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, l := range listings {
		if l.ID == "" {
			return fmt.Errorf("listing without id for commodity %q", l.Commodity)
		}

		var metadata interface{}
		if len(l.Metadata) > 0 {
			data, err := json.Marshal(l.Metadata)
			if err != nil {
				return fmt.Errorf("encode metadata for %s: %w", l.ID, err)
			}
			metadata = string(data)
		}

		var listedAt interface{}
		if l.ListedAt != nil {
			listedAt = l.ListedAt.UTC().Format(time.RFC3339Nano)
		}

		stmt, args, err := sq.Replace(table).
			Columns(columns...).
			Values(l.ID, l.Source, l.Counterparty, l.Commodity, l.Quantity, l.Unit,
				l.PricePerUnit, l.Currency, l.Region, l.QualitySpecs,
				l.SocialImpactScore, l.SocialImpactCategory, metadata, listedAt).
			ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, stmt, args...); err != nil {
			return fmt.Errorf("upsert listing %s: %w", l.ID, err)
		}
	}

	return tx.Commit()
}

func scanListing(rows *sql.Rows) (domain.NormalizedListing, error) {
	var (
		l                       domain.NormalizedListing
		quantity, price, social sql.NullFloat64
		metadata, listedAt      sql.NullString
	)

	err := rows.Scan(&l.ID, &l.Source, &l.Counterparty, &l.Commodity, &quantity, &l.Unit,
		&price, &l.Currency, &l.Region, &l.QualitySpecs,
		&social, &l.SocialImpactCategory, &metadata, &listedAt)
	if err != nil {
		return l, fmt.Errorf("scan listing: %w", err)
	}

	l.Quantity = nullFloat(quantity)
	l.PricePerUnit = nullFloat(price)
	l.SocialImpactScore = nullFloat(social)

	if metadata.Valid && metadata.String != "" {
		if err := json.Unmarshal([]byte(metadata.String), &l.Metadata); err != nil {
			return l, fmt.Errorf("decode metadata for %s: %w", l.ID, err)
		}
	}
	if listedAt.Valid && listedAt.String != "" {
		t, err := time.Parse(time.RFC3339Nano, listedAt.String)
		if err != nil {
			return l, fmt.Errorf("parse listed_at for %s: %w", l.ID, err)
		}
		l.ListedAt = &t
	}
	return l, nil
}

func nullFloat(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	return &v.Float64
}
