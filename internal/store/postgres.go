package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	domain "github.com/tabadul/exchange-engine/pkg/types"
)

const defaultPoolSize = 10

// PostgresStore implements ListingStore using pgxpool (connection-pooled
// PostgreSQL). The listings table is owned by the marketplace's listing
// service; this store only reads from it.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgresStore creates a new PostgresStore with connection pooling.
func NewPostgresStore(ctx context.Context, connString string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	cfg.MaxConns = defaultPoolSize

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

// Close gracefully shuts down the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Ping verifies the database connection is alive.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Migrate applies pending SQL schema migrations.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	return RunMigrations(ctx, s.pool)
}

// GetListingByID retrieves a listing by ID regardless of status; callers
// fetching an origin listing decide what to do with inactive ones.
func (s *PostgresStore) GetListingByID(ctx context.Context, id string) (*domain.Listing, error) {
	l := &domain.Listing{}
	row := s.pool.QueryRow(ctx, baseListingsSelect+" WHERE id = $1", id)
	if err := scanListing(row, l); err != nil {
		return nil, err
	}
	return l, nil
}

// QueryByCategory returns active listings in a category.
func (s *PostgresStore) QueryByCategory(
	ctx context.Context,
	q CategoryQuery,
) ([]domain.Listing, error) {
	sql, args := q.ToSQL()
	return s.queryListings(ctx, sql, args)
}

// QueryByTradeMode returns active listings with a given trade mode.
func (s *PostgresStore) QueryByTradeMode(
	ctx context.Context,
	q TradeModeQuery,
) ([]domain.Listing, error) {
	sql, args := q.ToSQL()
	return s.queryListings(ctx, sql, args)
}

// QueryByTextMatch returns active listings matching by substring containment
// against title or legacy exchange text.
func (s *PostgresStore) QueryByTextMatch(
	ctx context.Context,
	q TextMatchQuery,
) ([]domain.Listing, error) {
	sql, args := q.ToSQL()
	return s.queryListings(ctx, sql, args)
}

func (s *PostgresStore) queryListings(
	ctx context.Context,
	sql string,
	args []any,
) ([]domain.Listing, error) {
	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("querying listings: %w", err)
	}
	defer rows.Close()

	var listings []domain.Listing
	for rows.Next() {
		var l domain.Listing
		if err := scanListing(rows, &l); err != nil {
			return nil, fmt.Errorf("scanning listing: %w", err)
		}
		listings = append(listings, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating listings: %w", err)
	}

	return listings, nil
}

// scanListing decodes one row of the base listings select into a Listing.
// Images and attributes are stored as JSONB.
func scanListing(row pgx.Row, l *domain.Listing) error {
	var (
		imagesJSON []byte
		attrsJSON  []byte
	)

	err := row.Scan(
		&l.ID, &l.Title, &l.CategoryID, &l.SubcategoryID,
		&l.TradeMode, &l.Status, &l.Price, &imagesJSON, &attrsJSON,
		&l.LegacyText, &l.Governorate, &l.City,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(imagesJSON, &l.Images); err != nil {
		return fmt.Errorf("decoding images for %s: %w", l.ID, err)
	}
	if err := json.Unmarshal(attrsJSON, &l.Attributes); err != nil {
		return fmt.Errorf("decoding attributes for %s: %w", l.ID, err)
	}

	return nil
}
