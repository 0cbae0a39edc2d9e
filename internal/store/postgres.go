package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// postgresStore implements Store on a Postgres key-value table. Used
// by kiosk deployments where the active cart must survive device
// swaps. Writes follow last-write-wins, matching the single active
// session assumption.
type postgresStore struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// Schema is the DDL for the backing table.
const Schema = `
CREATE TABLE IF NOT EXISTS local_store (
	key        TEXT PRIMARY KEY,
	value      BYTEA NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)
`

// NewPostgresStore creates a Postgres-backed store on the given pool.
func NewPostgresStore(pool *pgxpool.Pool, logger zerolog.Logger) Store {
	return &postgresStore{
		pool:   pool,
		logger: logger.With().Str("store", "postgres").Logger(),
	}
}

func (s *postgresStore) Load(ctx context.Context, key string) ([]byte, error) {
	query := `
		SELECT value
		FROM local_store
		WHERE key = $1
	`

	var value []byte
	err := s.pool.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		s.logger.Error().Err(err).Str("key", key).Msg("failed to load value")
		return nil, fmt.Errorf("failed to load %s: %w", key, err)
	}
	return value, nil
}

func (s *postgresStore) Save(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO local_store (key, value, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = now()
	`

	_, err := s.pool.Exec(ctx, query, key, value)
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to save value")
		return fmt.Errorf("failed to save %s: %w", key, err)
	}

	s.logger.Debug().Str("key", key).Int("bytes", len(value)).Msg("value saved")
	return nil
}

func (s *postgresStore) Delete(ctx context.Context, key string) error {
	query := `
		DELETE FROM local_store
		WHERE key = $1
	`

	_, err := s.pool.Exec(ctx, query, key)
	if err != nil {
		s.logger.Error().Err(err).Str("key", key).Msg("failed to delete value")
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}
