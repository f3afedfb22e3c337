package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Migration represents a database schema migration
type Migration struct {
	Version     int
	Description string
	SQL         string
}

// migrations is the ordered list of all database migrations
var migrations = []Migration{
	{
		Version:     1,
		Description: "Run history table",
		SQL: `
CREATE TABLE IF NOT EXISTS runs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL UNIQUE,
    output_path TEXT NOT NULL,
    base_folder TEXT NOT NULL,
    started_at TIMESTAMP NOT NULL,
    finished_at TIMESTAMP NOT NULL,
    included INTEGER NOT NULL DEFAULT 0,
    excluded INTEGER NOT NULL DEFAULT 0,
    skipped INTEGER NOT NULL DEFAULT 0,
    total_bytes INTEGER NOT NULL DEFAULT 0,
    missing_directories TEXT,
    error_message TEXT
);

CREATE INDEX IF NOT EXISTS idx_runs_started_at ON runs(started_at DESC);
CREATE INDEX IF NOT EXISTS idx_runs_output_path ON runs(output_path);
`,
	},
	{
		Version:     2,
		Description: "Skipped files per run",
		SQL: `
CREATE TABLE IF NOT EXISTS skipped_files (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL REFERENCES runs(run_id) ON DELETE CASCADE,
    directory TEXT NOT NULL,
    path TEXT NOT NULL,
    reason TEXT NOT NULL,
    error_message TEXT
);

CREATE INDEX IF NOT EXISTS idx_skipped_files_run_id ON skipped_files(run_id);
`,
	},
}

// MigrationVersion records when a migration was applied
type MigrationVersion struct {
	Version   int
	AppliedAt time.Time
}

// ApplyMigrations applies all pending migrations in a single transaction
func (s *Store) ApplyMigrations(ctx context.Context) error {
	tx, err := s.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelSerializable})
	if err != nil {
		return fmt.Errorf("begin exclusive transaction: %w", err)
	}
	defer tx.Rollback() // no-op if committed

	if err := ensureSchemaVersionTableTx(ctx, tx); err != nil {
		return fmt.Errorf("ensure schema_version table: %w", err)
	}

	appliedVersions, err := getAppliedVersionsTx(ctx, tx)
	if err != nil {
		return fmt.Errorf("get applied versions: %w", err)
	}

	applied := make(map[int]bool)
	for _, v := range appliedVersions {
		applied[v.Version] = true
	}

	for _, migration := range migrations {
		if applied[migration.Version] {
			continue
		}

		if _, err := tx.ExecContext(ctx, migration.SQL); err != nil {
			return fmt.Errorf("apply migration %d (%s): %w", migration.Version, migration.Description, err)
		}

		if _, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO schema_version (version) VALUES (?)`, migration.Version); err != nil {
			return fmt.Errorf("record migration %d: %w", migration.Version, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit migrations: %w", err)
	}

	return nil
}

// GetLatestVersion returns the latest applied migration version
func (s *Store) GetLatestVersion() (int, error) {
	var version int
	query := `SELECT COALESCE(MAX(version), 0) FROM schema_version`
	if err := s.db.QueryRow(query).Scan(&version); err != nil {
		return 0, fmt.Errorf("query latest version: %w", err)
	}
	return version, nil
}

func ensureSchemaVersionTableTx(ctx context.Context, tx *sql.Tx) error {
	sqlStr := `
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY,
    applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`
	if _, err := tx.ExecContext(ctx, sqlStr); err != nil {
		return fmt.Errorf("create schema_version table: %w", err)
	}
	return nil
}

func getAppliedVersionsTx(ctx context.Context, tx *sql.Tx) ([]*MigrationVersion, error) {
	query := `SELECT version, applied_at FROM schema_version ORDER BY version ASC`
	rows, err := tx.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query schema versions: %w", err)
	}
	defer rows.Close()

	var versions []*MigrationVersion
	for rows.Next() {
		v := &MigrationVersion{}
		if err := rows.Scan(&v.Version, &v.AppliedAt); err != nil {
			return nil, fmt.Errorf("scan version: %w", err)
		}
		versions = append(versions, v)
	}
	return versions, rows.Err()
}
