package snapshot

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// PostgresStore keeps the snapshot as one JSONB row keyed by name. The
// whole-document model stays intact; Postgres only adds transactional
// durability behind the same interface.
type PostgresStore struct {
	db  *sqlx.DB
	key string
}

// NewPostgresStore returns a store writing under the given snapshot key.
func NewPostgresStore(db *sqlx.DB, key string) *PostgresStore {
	if key == "" {
		key = "directory"
	}
	return &PostgresStore{db: db, key: key}
}

// EnsureSchema creates the snapshots table when missing.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	const ddl = `CREATE TABLE IF NOT EXISTS snapshots (
		key        TEXT PRIMARY KEY,
		payload    JSONB NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("snapshot: ensure schema: %w", err)
	}
	return nil
}

// Load fetches and decodes the stored document.
func (s *PostgresStore) Load(ctx context.Context, dest interface{}) error {
	const query = `SELECT payload FROM snapshots WHERE key = $1`
	var raw []byte
	if err := s.db.GetContext(ctx, &raw, query, s.key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrEmpty
		}
		return fmt.Errorf("snapshot: load %s: %w", s.key, err)
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		return fmt.Errorf("snapshot: decode %s: %w", s.key, err)
	}
	return nil
}

// Save upserts the encoded document under the snapshot key.
func (s *PostgresStore) Save(ctx context.Context, src interface{}) error {
	payload, err := json.Marshal(src)
	if err != nil {
		return fmt.Errorf("snapshot: encode: %w", err)
	}
	const query = `INSERT INTO snapshots (key, payload, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`
	if _, err := s.db.ExecContext(ctx, query, s.key, payload); err != nil {
		return fmt.Errorf("snapshot: save %s: %w", s.key, err)
	}
	return nil
}
