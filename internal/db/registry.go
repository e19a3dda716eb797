package db

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"eve-navigator/internal/logger"
	_ "modernc.org/sqlite"
)

// ErrNoVersions is returned by LastGood when the registry has never recorded
// a dataset.
var ErrNoVersions = errors.New("registry: no dataset versions recorded")

// Registry records dataset versions that passed integrity and schema checks,
// so a later startup with a corrupt artifact can fall back to the most recent
// known-good one.
type Registry struct {
	sql *sql.DB
}

// Version is one known-good dataset recorded in the registry.
type Version struct {
	ID            int64
	Path          string
	SHA256        string
	SchemaVersion int
	Systems       int
	Links         int
	Borders       int
	RecordedAt    time.Time
}

// Open opens (or creates) the registry database and runs migrations.
func Open(path string) (*Registry, error) {
	sqlDB, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open registry: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("ping registry: %w", err)
	}
	r := &Registry{sql: sqlDB}
	if err := r.migrate(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("migrate registry: %w", err)
	}
	logger.Success("DB", fmt.Sprintf("Opened registry %s", path))
	return r, nil
}

// Close closes the database connection.
func (r *Registry) Close() error {
	return r.sql.Close()
}

func (r *Registry) migrate() error {
	version := 0
	r.sql.QueryRow("SELECT version FROM schema_version ORDER BY version DESC LIMIT 1").Scan(&version)

	if version < 1 {
		_, err := r.sql.Exec(`
			CREATE TABLE IF NOT EXISTS schema_version (version INTEGER PRIMARY KEY);

			CREATE TABLE IF NOT EXISTS dataset_versions (
				id             INTEGER PRIMARY KEY AUTOINCREMENT,
				path           TEXT NOT NULL,
				sha256         TEXT NOT NULL,
				schema_version INTEGER NOT NULL,
				systems        INTEGER NOT NULL,
				links          INTEGER NOT NULL,
				borders        INTEGER NOT NULL,
				recorded_at    TEXT NOT NULL
			);
			CREATE INDEX IF NOT EXISTS idx_dataset_versions_at ON dataset_versions(recorded_at);
			CREATE UNIQUE INDEX IF NOT EXISTS idx_dataset_versions_sha ON dataset_versions(sha256);

			INSERT OR IGNORE INTO schema_version (version) VALUES (1);
		`)
		if err != nil {
			return fmt.Errorf("migration v1: %w", err)
		}
		logger.Info("DB", "Applied migration v1")
	}

	return nil
}

// RecordGood stores a dataset that passed all load-time checks. Re-recording
// the same checksum refreshes its timestamp instead of inserting a duplicate.
func (r *Registry) RecordGood(v Version) error {
	at := v.RecordedAt
	if at.IsZero() {
		at = time.Now().UTC()
	}
	_, err := r.sql.Exec(`
		INSERT INTO dataset_versions (path, sha256, schema_version, systems, links, borders, recorded_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(sha256) DO UPDATE SET
			path        = excluded.path,
			recorded_at = excluded.recorded_at
	`, v.Path, v.SHA256, v.SchemaVersion, v.Systems, v.Links, v.Borders, at.Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("record dataset version: %w", err)
	}
	return nil
}

// LastGood returns the most recently recorded known-good dataset version.
func (r *Registry) LastGood() (*Version, error) {
	row := r.sql.QueryRow(`
		SELECT id, path, sha256, schema_version, systems, links, borders, recorded_at
		FROM dataset_versions
		ORDER BY recorded_at DESC, id DESC
		LIMIT 1
	`)
	v, err := scanVersion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoVersions
	}
	return v, err
}

// History returns recorded versions, newest first, up to limit (0 for all).
func (r *Registry) History(limit int) ([]Version, error) {
	q := `
		SELECT id, path, sha256, schema_version, systems, links, borders, recorded_at
		FROM dataset_versions
		ORDER BY recorded_at DESC, id DESC
	`
	args := []any{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := r.sql.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("query dataset versions: %w", err)
	}
	defer rows.Close()

	var out []Version
	for rows.Next() {
		v, err := scanVersion(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanVersion(row rowScanner) (*Version, error) {
	var v Version
	var at string
	if err := row.Scan(&v.ID, &v.Path, &v.SHA256, &v.SchemaVersion, &v.Systems, &v.Links, &v.Borders, &at); err != nil {
		return nil, err
	}
	parsed, err := time.Parse(time.RFC3339, at)
	if err != nil {
		return nil, fmt.Errorf("parse recorded_at: %w", err)
	}
	v.RecordedAt = parsed
	return &v, nil
}
