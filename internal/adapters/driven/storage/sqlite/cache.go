// Package sqlite provides a SQLite-backed envelope cache.
//
// The cache stores delivered envelopes keyed by URL+query with a TTL,
// so repeated retrievals of unchanged pages skip the network entirely.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/bricsin4u/AIO-research/internal/core/domain"
	"github.com/bricsin4u/AIO-research/internal/core/ports/driven"
)

// Ensure Cache implements the interface.
var _ driven.EnvelopeCache = (*Cache)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS envelopes (
	source_url    TEXT NOT NULL,
	query         TEXT NOT NULL DEFAULT '',
	envelope_json TEXT NOT NULL,
	created_at    INTEGER NOT NULL,
	expires_at    INTEGER NOT NULL,
	PRIMARY KEY (source_url, query)
);
CREATE INDEX IF NOT EXISTS idx_envelopes_expires ON envelopes(expires_at);
`

// Cache is a SQLite-backed envelope cache.
type Cache struct {
	db   *sql.DB
	path string
	ttl  time.Duration
}

// NewCache opens (or creates) the cache database. If dataDir is empty,
// defaults to ~/.aio/data/envelopes.db.
func NewCache(dataDir string, ttl time.Duration) (*Cache, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".aio", "data")
	}
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	if ttl <= 0 {
		ttl = domain.DefaultCacheTTL
	}

	dbPath := filepath.Join(dataDir, "envelopes.db")

	// WAL mode for concurrent readers during writes.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Cache{db: db, path: dbPath, ttl: ttl}, nil
}

// Path returns the database file path.
func (c *Cache) Path() string {
	return c.path
}

// Get returns a cached envelope, or domain.ErrNotFound when the entry
// is absent or expired.
func (c *Cache) Get(ctx context.Context, url, query string) (*domain.ContentEnvelope, error) {
	var raw string
	err := c.db.QueryRowContext(ctx,
		`SELECT envelope_json FROM envelopes
		 WHERE source_url = ? AND query = ? AND expires_at > ?`,
		url, query, time.Now().Unix(),
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying envelope: %w", err)
	}

	var env domain.ContentEnvelope
	if err := json.Unmarshal([]byte(raw), &env); err != nil {
		return nil, fmt.Errorf("decoding envelope: %w", err)
	}
	return &env, nil
}

// Put stores an envelope, replacing any previous entry for the same
// URL+query pair, and opportunistically prunes expired rows.
func (c *Cache) Put(ctx context.Context, url, query string, env *domain.ContentEnvelope) error {
	if env == nil {
		return domain.ErrInvalidInput
	}

	raw, err := json.Marshal(env)
	if err != nil {
		return fmt.Errorf("encoding envelope: %w", err)
	}

	now := time.Now()
	_, err = c.db.ExecContext(ctx,
		`INSERT INTO envelopes (source_url, query, envelope_json, created_at, expires_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(source_url, query) DO UPDATE SET
			envelope_json = excluded.envelope_json,
			created_at    = excluded.created_at,
			expires_at    = excluded.expires_at`,
		url, query, string(raw), now.Unix(), now.Add(c.ttl).Unix(),
	)
	if err != nil {
		return fmt.Errorf("storing envelope: %w", err)
	}

	// Best-effort cleanup; stale rows never serve anyway.
	c.db.ExecContext(ctx, `DELETE FROM envelopes WHERE expires_at <= ?`, now.Unix()) //nolint:errcheck

	return nil
}

// Close closes the database connection.
func (c *Cache) Close() error {
	return c.db.Close()
}
