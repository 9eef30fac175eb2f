// Package snapshotstore persists the engine's versioned JSON v1 contracts
// (spec §6, "Persisted state": the state snapshot and the crosshair-
// formatter diagnostics) to a single-file embeddable database, scoped by an
// arbitrary caller-chosen key (typically an engine/session instance id) and
// a contract kind ("snapshot" or "diagnostics").
//
// Grounded on the teacher's internal/chartlayout/store.go: the same
// upsert-then-read-by-scope shape, re-backed by modernc.org/sqlite in place
// of MySQL so an embeddable charting engine does not need a running
// database server (see DESIGN.md for the mysql-driver drop).
package snapshotstore

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/luhouxiang/chartcore/internal/logger"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS chart_snapshots (
	scope_key      TEXT NOT NULL,
	kind           TEXT NOT NULL,
	schema_version INTEGER NOT NULL,
	payload_json   TEXT NOT NULL,
	updated_at     TIMESTAMP NOT NULL,
	PRIMARY KEY (scope_key, kind)
);
`

// Record is one stored contract payload plus its bookkeeping fields.
type Record struct {
	ScopeKey      string
	Kind          string
	SchemaVersion int
	Payload       []byte
	UpdatedAt     time.Time
}

// Store is a scope-keyed CRUD surface over a *sql.DB holding chart_snapshots.
type Store struct {
	db *sql.DB
}

// Open opens (creating if absent) a sqlite database file at path and
// ensures the schema exists.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("snapshotstore: open %q failed: %w", path, err)
	}
	db.SetMaxOpenConns(1) // sqlite: avoid concurrent-writer lock contention
	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("snapshotstore: schema init failed: %w", err)
	}
	return &Store{db: db}, nil
}

// NewStore wraps an already-open *sql.DB (e.g. an in-memory instance shared
// with other stores), ensuring the schema exists.
func NewStore(db *sql.DB) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("snapshotstore: nil db")
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		return nil, fmt.Errorf("snapshotstore: schema init failed: %w", err)
	}
	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error { return s.db.Close() }

// Put upserts payload under (scopeKey, kind), stamping the current time.
func (s *Store) Put(scopeKey, kind string, schemaVersion int, payload []byte) error {
	if scopeKey == "" || kind == "" {
		return fmt.Errorf("snapshotstore: scope_key and kind required")
	}
	now := time.Now()
	_, err := s.db.Exec(`
INSERT INTO chart_snapshots(scope_key, kind, schema_version, payload_json, updated_at)
VALUES(?, ?, ?, ?, ?)
ON CONFLICT(scope_key, kind) DO UPDATE SET
	schema_version = excluded.schema_version,
	payload_json   = excluded.payload_json,
	updated_at     = excluded.updated_at`,
		scopeKey, kind, schemaVersion, string(payload), now,
	)
	if err != nil {
		return fmt.Errorf("snapshotstore: upsert %s/%s failed: %w", scopeKey, kind, err)
	}
	logger.Info("snapshot persisted", "scope_key", scopeKey, "kind", kind, "schema_version", schemaVersion, "bytes", len(payload))
	return nil
}

// Get fetches the record stored under (scopeKey, kind). found is false with
// a nil error when no row exists.
func (s *Store) Get(scopeKey, kind string) (rec Record, found bool, err error) {
	row := s.db.QueryRow(`
SELECT schema_version, payload_json, updated_at
FROM chart_snapshots
WHERE scope_key = ? AND kind = ?`, scopeKey, kind)

	var payload string
	var updatedAt time.Time
	var schemaVersion int
	if err := row.Scan(&schemaVersion, &payload, &updatedAt); err != nil {
		if err == sql.ErrNoRows {
			return Record{}, false, nil
		}
		return Record{}, false, fmt.Errorf("snapshotstore: get %s/%s failed: %w", scopeKey, kind, err)
	}
	return Record{
		ScopeKey:      scopeKey,
		Kind:          kind,
		SchemaVersion: schemaVersion,
		Payload:       []byte(payload),
		UpdatedAt:     updatedAt,
	}, true, nil
}

// Delete removes the record stored under (scopeKey, kind), reporting
// whether a row was actually removed.
func (s *Store) Delete(scopeKey, kind string) (bool, error) {
	res, err := s.db.Exec(`DELETE FROM chart_snapshots WHERE scope_key = ? AND kind = ?`, scopeKey, kind)
	if err != nil {
		return false, fmt.Errorf("snapshotstore: delete %s/%s failed: %w", scopeKey, kind, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// ListScopes returns every distinct scope_key holding a record of the
// given kind, ordered by most-recently-updated first.
func (s *Store) ListScopes(kind string) ([]string, error) {
	rows, err := s.db.Query(`
SELECT scope_key FROM chart_snapshots WHERE kind = ? ORDER BY updated_at DESC`, kind)
	if err != nil {
		return nil, fmt.Errorf("snapshotstore: list scopes failed: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, err
		}
		out = append(out, key)
	}
	return out, rows.Err()
}
