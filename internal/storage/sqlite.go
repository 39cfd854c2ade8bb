// Package storage persists analysis runs in SQLite so past runs can be
// listed and reloaded without re-parsing the tree.
package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/codescope/codescope/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	root_path TEXT NOT NULL,
	created_at TIMESTAMP NOT NULL,
	function_count INTEGER NOT NULL,
	class_count INTEGER NOT NULL,
	failure_count INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS functions (
	run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	parameters TEXT NOT NULL,
	return_type TEXT NOT NULL,
	body TEXT NOT NULL,
	documentation TEXT NOT NULL,
	file TEXT NOT NULL,
	start_line INTEGER NOT NULL,
	end_line INTEGER NOT NULL,
	PRIMARY KEY (run_id, position)
);

CREATE TABLE IF NOT EXISTS classes (
	run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	name TEXT NOT NULL,
	methods TEXT NOT NULL,
	properties TEXT NOT NULL,
	documentation TEXT NOT NULL,
	file TEXT NOT NULL,
	start_line INTEGER NOT NULL,
	end_line INTEGER NOT NULL,
	PRIMARY KEY (run_id, position)
);

CREATE TABLE IF NOT EXISTS failures (
	run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
	position INTEGER NOT NULL,
	file TEXT NOT NULL,
	message TEXT NOT NULL,
	PRIMARY KEY (run_id, position)
);

CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// Run summarizes one persisted analysis run.
type Run struct {
	ID            string
	RootPath      string
	CreatedAt     time.Time
	FunctionCount int
	ClassCount    int
	FailureCount  int
}

// Store wraps the SQLite database holding analysis runs.
type Store struct {
	db *sql.DB
}

// Open opens (creating if needed) the run database at path. Use ":memory:"
// for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path+"?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun stores the aggregate and its recorded failures as a new run and
// returns the run ID. Entity order is preserved via the position column.
func (s *Store) SaveRun(ctx context.Context, rootPath string, result *model.AnalysisResult, failures []model.FileFailure) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	runID := uuid.NewString()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, root_path, created_at, function_count, class_count, failure_count)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		runID, rootPath, time.Now().UTC(), len(result.Functions), len(result.Classes), len(failures))
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	for i, fn := range result.Functions {
		parameters, err := json.Marshal(fn.Parameters)
		if err != nil {
			return "", fmt.Errorf("failed to encode parameters of %s: %w", fn.Name, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO functions (run_id, position, name, parameters, return_type, body, documentation, file, start_line, end_line)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, i, fn.Name, string(parameters), fn.ReturnType, fn.Body, fn.Documentation,
			fn.Location.File, fn.Location.StartLine, fn.Location.EndLine)
		if err != nil {
			return "", fmt.Errorf("failed to insert function %s: %w", fn.Name, err)
		}
	}

	for i, class := range result.Classes {
		methods, err := json.Marshal(class.Methods)
		if err != nil {
			return "", fmt.Errorf("failed to encode methods of %s: %w", class.Name, err)
		}
		properties, err := json.Marshal(class.Properties)
		if err != nil {
			return "", fmt.Errorf("failed to encode properties of %s: %w", class.Name, err)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO classes (run_id, position, name, methods, properties, documentation, file, start_line, end_line)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, i, class.Name, string(methods), string(properties), class.Documentation,
			class.Location.File, class.Location.StartLine, class.Location.EndLine)
		if err != nil {
			return "", fmt.Errorf("failed to insert class %s: %w", class.Name, err)
		}
	}

	for i, failure := range failures {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO failures (run_id, position, file, message) VALUES (?, ?, ?, ?)`,
			runID, i, failure.File, failure.Message)
		if err != nil {
			return "", fmt.Errorf("failed to insert failure for %s: %w", failure.File, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}
	return runID, nil
}

// ListRuns returns run summaries, most recent first.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, root_path, created_at, function_count, class_count, failure_count
		 FROM runs ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		if err := rows.Scan(&run.ID, &run.RootPath, &run.CreatedAt,
			&run.FunctionCount, &run.ClassCount, &run.FailureCount); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// LoadRun reloads a persisted run in its original order.
func (s *Store) LoadRun(ctx context.Context, runID string) (*model.AnalysisResult, []model.FileFailure, error) {
	var exists int
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM runs WHERE id = ?`, runID).Scan(&exists)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to look up run %s: %w", runID, err)
	}
	if exists == 0 {
		return nil, nil, fmt.Errorf("run not found: %s", runID)
	}

	result := &model.AnalysisResult{
		Functions: []model.Function{},
		Classes:   []model.Class{},
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT name, parameters, return_type, body, documentation, file, start_line, end_line
		 FROM functions WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query functions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var fn model.Function
		var parameters string
		if err := rows.Scan(&fn.Name, &parameters, &fn.ReturnType, &fn.Body, &fn.Documentation,
			&fn.Location.File, &fn.Location.StartLine, &fn.Location.EndLine); err != nil {
			return nil, nil, fmt.Errorf("failed to scan function: %w", err)
		}
		if err := json.Unmarshal([]byte(parameters), &fn.Parameters); err != nil {
			return nil, nil, fmt.Errorf("failed to decode parameters of %s: %w", fn.Name, err)
		}
		result.Functions = append(result.Functions, fn)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	classRows, err := s.db.QueryContext(ctx,
		`SELECT name, methods, properties, documentation, file, start_line, end_line
		 FROM classes WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query classes: %w", err)
	}
	defer classRows.Close()
	for classRows.Next() {
		var class model.Class
		var methods, properties string
		if err := classRows.Scan(&class.Name, &methods, &properties, &class.Documentation,
			&class.Location.File, &class.Location.StartLine, &class.Location.EndLine); err != nil {
			return nil, nil, fmt.Errorf("failed to scan class: %w", err)
		}
		if err := json.Unmarshal([]byte(methods), &class.Methods); err != nil {
			return nil, nil, fmt.Errorf("failed to decode methods of %s: %w", class.Name, err)
		}
		if err := json.Unmarshal([]byte(properties), &class.Properties); err != nil {
			return nil, nil, fmt.Errorf("failed to decode properties of %s: %w", class.Name, err)
		}
		result.Classes = append(result.Classes, class)
	}
	if err := classRows.Err(); err != nil {
		return nil, nil, err
	}

	failureRows, err := s.db.QueryContext(ctx,
		`SELECT file, message FROM failures WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query failures: %w", err)
	}
	defer failureRows.Close()
	failures := []model.FileFailure{}
	for failureRows.Next() {
		var failure model.FileFailure
		if err := failureRows.Scan(&failure.File, &failure.Message); err != nil {
			return nil, nil, fmt.Errorf("failed to scan failure: %w", err)
		}
		failures = append(failures, failure)
	}
	return result, failures, failureRows.Err()
}
