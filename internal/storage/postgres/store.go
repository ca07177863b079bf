package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/0xDeFiDevin/GammaLPvsSpot/internal/model"
)

// Store provides Postgres persistence for return rows.
type Store struct {
	pool   *pgxpool.Pool
	poolID string
}

func NewStore(ctx context.Context, dsn string, poolID string) (*Store, error) {
	if dsn == "" {
		return nil, fmt.Errorf("pg dsn is required")
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	store := &Store{pool: pool, poolID: poolID}
	if err := store.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) ensureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS pool_returns (
			pool_id TEXT NOT NULL,
			utc_timestamp TEXT NOT NULL,
			block_number BIGINT NOT NULL,
			total_invariant DOUBLE PRECISION NOT NULL,
			total_supply DOUBLE PRECISION NOT NULL,
			last_price DOUBLE PRECISION NOT NULL,
			total_lp_return_percent DOUBLE PRECISION NOT NULL,
			spot_return_percent DOUBLE PRECISION NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}

// Append inserts one return row. Like the CSV sink it never deduplicates;
// re-running from the same start appends the same rows again.
func (s *Store) Append(ctx context.Context, row model.ReturnRow) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO pool_returns (
			pool_id, utc_timestamp, block_number, total_invariant,
			total_supply, last_price, total_lp_return_percent, spot_return_percent
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		s.poolID,
		row.UTCTimestamp,
		int64(row.BlockNumber),
		row.TotalInvariant,
		row.TotalSupply,
		row.LastPrice,
		row.TotalLPReturnPercent,
		row.SpotReturnPercent,
	)
	if err != nil {
		return fmt.Errorf("insert return row: %w", err)
	}
	return nil
}
