package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harrison/combiner/internal/models"
	_ "github.com/mattn/go-sqlite3"
)

// Run is one recorded aggregation run
type Run struct {
	ID                 int64
	RunID              string
	OutputPath         string
	BaseFolder         string
	StartedAt          time.Time
	FinishedAt         time.Time
	Included           int
	Excluded           int
	Skipped            int
	TotalBytes         int64
	MissingDirectories []string
	ErrorMessage       string
}

// Succeeded reports whether the run finished without error
func (r *Run) Succeeded() bool {
	return r.ErrorMessage == ""
}

// Duration returns the wall time of the run
func (r *Run) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// Store keeps the run history in a SQLite database
type Store struct {
	db     *sql.DB
	dbPath string
}

// NewStore opens the history database at dbPath, creating it and its parent
// directory if needed, and applies pending migrations.
func NewStore(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared across queries
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout=5000", // Must be first
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	store := &Store{db: db, dbPath: dbPath}
	if err := store.ApplyMigrations(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return store, nil
}

// execWithRetry executes a statement with exponential backoff on lock errors
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}
		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}
		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// Path returns the database file path
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun stores a finished run report together with its skipped files
func (s *Store) RecordRun(ctx context.Context, report *models.Report) error {
	if report == nil {
		return fmt.Errorf("record run: nil report")
	}

	missingJSON := "[]"
	if len(report.MissingDirectories) > 0 {
		data, err := json.Marshal(report.MissingDirectories)
		if err != nil {
			return fmt.Errorf("marshal missing directories: %w", err)
		}
		missingJSON = string(data)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() // no-op if committed

	_, err = tx.ExecContext(ctx, `INSERT INTO runs
		(run_id, output_path, base_folder, started_at, finished_at, included, excluded, skipped, total_bytes, missing_directories, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		report.RunID,
		report.OutputPath,
		report.BaseFolder,
		report.StartedAt.UTC(),
		report.FinishedAt.UTC(),
		report.Included,
		report.Excluded,
		report.Skipped,
		report.TotalBytes,
		missingJSON,
		report.Error,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	for _, f := range report.SkippedFiles() {
		_, err := tx.ExecContext(ctx, `INSERT INTO skipped_files
			(run_id, directory, path, reason, error_message)
			VALUES (?, ?, ?, ?, ?)`,
			report.RunID, f.Directory, f.Path, f.Reason, f.Error)
		if err != nil {
			return fmt.Errorf("insert skipped file: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, most recent first. A limit of 0 or
// less returns every run.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]*Run, error) {
	query := `SELECT id, run_id, output_path, base_folder, started_at, finished_at, included, excluded, skipped, total_bytes, missing_directories, error_message
		FROM runs
		ORDER BY started_at DESC, id DESC`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run := &Run{}
		var missing, errMsg sql.NullString
		if err := rows.Scan(
			&run.ID,
			&run.RunID,
			&run.OutputPath,
			&run.BaseFolder,
			&run.StartedAt,
			&run.FinishedAt,
			&run.Included,
			&run.Excluded,
			&run.Skipped,
			&run.TotalBytes,
			&missing,
			&errMsg,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if missing.Valid && missing.String != "" {
			if err := json.Unmarshal([]byte(missing.String), &run.MissingDirectories); err != nil {
				return nil, fmt.Errorf("unmarshal missing directories: %w", err)
			}
		}
		run.ErrorMessage = errMsg.String
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

// SkippedFiles returns the files skipped during the given run in walk order
func (s *Store) SkippedFiles(ctx context.Context, runID string) ([]models.FileResult, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT directory, path, reason, error_message
		FROM skipped_files
		WHERE run_id = ?
		ORDER BY id ASC`, runID)
	if err != nil {
		return nil, fmt.Errorf("query skipped files: %w", err)
	}
	defer rows.Close()

	var files []models.FileResult
	for rows.Next() {
		var f models.FileResult
		var errMsg sql.NullString
		if err := rows.Scan(&f.Directory, &f.Path, &f.Reason, &errMsg); err != nil {
			return nil, fmt.Errorf("scan skipped file: %w", err)
		}
		f.Name = filepath.Base(f.Path)
		f.Status = models.StatusSkipped
		f.Error = errMsg.String
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate skipped files: %w", err)
	}

	return files, nil
}
