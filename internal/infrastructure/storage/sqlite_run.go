package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/yourusername/sku-target-cleaner/internal/domain/entity"
	"github.com/yourusername/sku-target-cleaner/internal/domain/repository"
)

type sqliteRunRepository struct {
	db *sql.DB
}

// NewSQLiteRunRepository run history stored in SQLite
func NewSQLiteRunRepository(dbPath string) (repository.RunRepository, error) {
	if dbPath == "" {
		return nil, errors.New("db path must not be empty")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	if err := createRunSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteRunRepository{db: db}, nil
}

func createRunSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	source TEXT NOT NULL,
	grade_source TEXT NOT NULL,
	month TEXT,
	brand TEXT,
	records INTEGER NOT NULL DEFAULT 0,
	skipped INTEGER NOT NULL DEFAULT 0,
	status TEXT NOT NULL,
	error TEXT,
	ts TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs (ts);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// SaveRun stores a run, replacing one with the same ID
func (s *sqliteRunRepository) SaveRun(ctx context.Context, run entity.Run) error {
	_, err := s.db.ExecContext(ctx, `
INSERT OR REPLACE INTO runs (id, source, grade_source, month, brand, records, skipped, status, error, ts)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Source, run.GradeSource, run.Month, run.Brand,
		run.Records, run.Skipped, string(run.Status), run.Error, run.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save run %s: %w", run.ID, err)
	}
	return nil
}

// ListRuns newest first
func (s *sqliteRunRepository) ListRuns(ctx context.Context, limit int) ([]entity.Run, error) {
	query := `SELECT id, source, grade_source, month, brand, records, skipped, status, error, ts FROM runs ORDER BY ts DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []entity.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// GetRun looks a run up by ID
func (s *sqliteRunRepository) GetRun(ctx context.Context, id string) (*entity.Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, source, grade_source, month, brand, records, skipped, status, error, ts FROM runs WHERE id = ?`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("run %s not found", id)
	}
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (s *sqliteRunRepository) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (entity.Run, error) {
	var (
		run    entity.Run
		status string
		month  sql.NullString
		brand  sql.NullString
		errMsg sql.NullString
		ts     time.Time
	)
	if err := row.Scan(&run.ID, &run.Source, &run.GradeSource, &month, &brand,
		&run.Records, &run.Skipped, &status, &errMsg, &ts); err != nil {
		return entity.Run{}, err
	}
	run.Month = month.String
	run.Brand = brand.String
	run.Status = entity.RunStatus(status)
	run.Error = errMsg.String
	run.CreatedAt = ts
	return run, nil
}
