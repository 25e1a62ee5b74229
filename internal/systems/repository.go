// Package systems persists process-wide configuration as JSON rows in a
// generic key/value table, and exposes the storage-provider configuration
// store built on top of it.
package systems

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Keys of the storage-provider rows in the systems table.
const (
	KeyExperienceBlobsProvider = "experienceBlobsProvider"
	KeyExperienceZipsProvider  = "experienceZipsProvider"
)

// ErrNotFound is returned when a systems row does not exist.
var ErrNotFound = errors.New("systems row not found")

// Repository handles all systems table operations.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository with the given connection pool.
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// Get fetches the JSON value stored under key.
func (r *Repository) Get(ctx context.Context, key string) (json.RawMessage, error) {
	var value json.RawMessage
	err := r.db.QueryRow(ctx,
		`SELECT value FROM systems WHERE key = $1`,
		key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get systems row %q: %w", key, err)
	}
	return value, nil
}

// Upsert stores value (JSON-serialized) under key, replacing any previous row.
func (r *Repository) Upsert(ctx context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode systems row %q: %w", key, err)
	}
	_, err = r.db.Exec(ctx,
		`INSERT INTO systems (key, value)
		 VALUES ($1, $2::jsonb)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		key, data,
	)
	if err != nil {
		return fmt.Errorf("upsert systems row %q: %w", key, err)
	}
	return nil
}

// Delete removes the rows stored under keys. Missing rows are not an error.
func (r *Repository) Delete(ctx context.Context, keys ...string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM systems WHERE key = ANY($1)`, keys)
	if err != nil {
		return fmt.Errorf("delete systems rows %v: %w", keys, err)
	}
	return nil
}
