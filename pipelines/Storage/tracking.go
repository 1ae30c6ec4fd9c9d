package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	ml "github.com/CreditScope/CreditScope-Go/pipelines/ML"
)

// TrainingRun is one row of the experiment log: the hyperparameters, the
// held-out metrics and the path of the persisted model artifact.
type TrainingRun struct {
	ID           string         `json:"id"`
	Name         string         `json:"name"`
	Params       map[string]any `json:"params"`
	Metrics      ml.Metrics     `json:"metrics"`
	ArtifactPath string         `json:"artifact_path"`
	CreatedAt    time.Time      `json:"created_at"`
}

// RunTracker records training runs in a local SQLite database.
type RunTracker struct {
	db *sql.DB
}

// NewRunTracker opens (creating if needed) the tracking database at path.
func NewRunTracker(path string) (*RunTracker, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create tracking directory %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open tracking database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to tracking database: %w", err)
	}

	tracker := &RunTracker{db: db}
	if err := tracker.initSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return tracker, nil
}

func (rt *RunTracker) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS training_runs (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		params TEXT NOT NULL,
		metrics TEXT NOT NULL,
		artifact_path TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_training_runs_created_at ON training_runs(created_at);
	`
	if _, err := rt.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize tracking schema: %w", err)
	}
	return nil
}

// LogRun inserts the run. An empty ID gets a fresh uuid; an empty CreatedAt
// gets the current time.
func (rt *RunTracker) LogRun(run *TrainingRun) error {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	paramsJSON, err := json.Marshal(run.Params)
	if err != nil {
		return fmt.Errorf("failed to marshal run params: %w", err)
	}
	metricsJSON, err := json.Marshal(run.Metrics)
	if err != nil {
		return fmt.Errorf("failed to marshal run metrics: %w", err)
	}

	_, err = rt.db.Exec(
		`INSERT INTO training_runs (id, name, params, metrics, artifact_path, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Name, string(paramsJSON), string(metricsJSON), run.ArtifactPath,
		run.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert training run %s: %w", run.ID, err)
	}
	return nil
}

// GetRun fetches one run by id.
func (rt *RunTracker) GetRun(id string) (*TrainingRun, error) {
	row := rt.db.QueryRow(
		`SELECT id, name, params, metrics, artifact_path, created_at FROM training_runs WHERE id = ?`, id)
	return scanRun(row.Scan)
}

// ListRuns returns all runs, newest first.
func (rt *RunTracker) ListRuns() ([]*TrainingRun, error) {
	rows, err := rt.db.Query(
		`SELECT id, name, params, metrics, artifact_path, created_at FROM training_runs ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list training runs: %w", err)
	}
	defer rows.Close()

	var runs []*TrainingRun
	for rows.Next() {
		run, err := scanRun(rows.Scan)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func scanRun(scan func(...any) error) (*TrainingRun, error) {
	var run TrainingRun
	var paramsJSON, metricsJSON, createdAt string
	if err := scan(&run.ID, &run.Name, &paramsJSON, &metricsJSON, &run.ArtifactPath, &createdAt); err != nil {
		return nil, fmt.Errorf("failed to read training run: %w", err)
	}
	if err := json.Unmarshal([]byte(paramsJSON), &run.Params); err != nil {
		return nil, fmt.Errorf("failed to parse params for run %s: %w", run.ID, err)
	}
	if err := json.Unmarshal([]byte(metricsJSON), &run.Metrics); err != nil {
		return nil, fmt.Errorf("failed to parse metrics for run %s: %w", run.ID, err)
	}
	ts, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at for run %s: %w", run.ID, err)
	}
	run.CreatedAt = ts
	return &run, nil
}

// Close releases the database handle.
func (rt *RunTracker) Close() error {
	return rt.db.Close()
}
