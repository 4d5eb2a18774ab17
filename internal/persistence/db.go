// Package persistence provides a SQLite run ledger: every evolution run with
// its configuration, its area samples and the artifacts it wrote.
package persistence

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite connection for the run ledger.
type DB struct {
	conn *sqlx.DB
}

// Run is one ledger row of the runs table.
type Run struct {
	ID         string     `db:"id"`
	Algorithm  string     `db:"algorithm"`
	Config     string     `db:"config_json"`
	StartedAt  time.Time  `db:"started_at"`
	FinishedAt *time.Time `db:"finished_at"`
	State      string     `db:"state"`
	Iterations int        `db:"iterations"`
	Elapsed    float64    `db:"elapsed"`
}

// Sample is one area measurement.
type Sample struct {
	RunID     string  `db:"run_id"`
	Iteration int     `db:"iteration"`
	Time      float64 `db:"time"`
	Area      int     `db:"area"`
	Length    float64 `db:"length"`
}

// Artifact is one written snapshot.
type Artifact struct {
	RunID    string `db:"run_id"`
	Sequence int    `db:"sequence"`
	Path     string `db:"path"`
	Bytes    int64  `db:"bytes"`
}

// Open opens or creates a SQLite database at the given path.
func Open(path string) (*DB, error) {
	conn, err := sqlx.Open("sqlite", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		algorithm TEXT NOT NULL,
		config_json TEXT NOT NULL,
		started_at DATETIME NOT NULL,
		finished_at DATETIME,
		state TEXT NOT NULL,
		iterations INTEGER NOT NULL DEFAULT 0,
		elapsed REAL NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS samples (
		run_id TEXT NOT NULL REFERENCES runs(id),
		iteration INTEGER NOT NULL,
		time REAL NOT NULL,
		area INTEGER NOT NULL,
		length REAL NOT NULL,
		PRIMARY KEY (run_id, iteration)
	);

	CREATE TABLE IF NOT EXISTS artifacts (
		run_id TEXT NOT NULL REFERENCES runs(id),
		sequence INTEGER NOT NULL,
		path TEXT NOT NULL,
		bytes INTEGER NOT NULL,
		PRIMARY KEY (run_id, sequence)
	);

	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// BeginRun inserts a new run in state "stepping" and returns its id.
func (db *DB) BeginRun(algorithm, configJSON string) (string, error) {
	id := uuid.NewString()
	_, err := db.conn.Exec(
		"INSERT INTO runs (id, algorithm, config_json, started_at, state) VALUES (?, ?, ?, ?, ?)",
		id, algorithm, configJSON, time.Now().UTC(), "stepping",
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	if err := db.SaveMeta("last_run", id); err != nil {
		return "", fmt.Errorf("save meta: %w", err)
	}
	return id, nil
}

// FinishRun records the final state of a run.
func (db *DB) FinishRun(id, state string, iterations int, elapsed float64) error {
	res, err := db.conn.Exec(
		"UPDATE runs SET finished_at = ?, state = ?, iterations = ?, elapsed = ? WHERE id = ?",
		time.Now().UTC(), state, iterations, elapsed, id,
	)
	if err != nil {
		return fmt.Errorf("update run %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update run %s: no such run", id)
	}
	return nil
}

// SaveSamples appends samples in one transaction.
func (db *DB) SaveSamples(samples []Sample) error {
	if len(samples) == 0 {
		return nil
	}

	tx, err := db.conn.Beginx()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, s := range samples {
		_, err := tx.NamedExec(`INSERT OR REPLACE INTO samples
			(run_id, iteration, time, area, length)
			VALUES (:run_id, :iteration, :time, :area, :length)`, s)
		if err != nil {
			return fmt.Errorf("insert sample %d: %w", s.Iteration, err)
		}
	}

	return tx.Commit()
}

// SaveArtifact records one artifact.
func (db *DB) SaveArtifact(a Artifact) error {
	_, err := db.conn.NamedExec(`INSERT OR REPLACE INTO artifacts
		(run_id, sequence, path, bytes)
		VALUES (:run_id, :sequence, :path, :bytes)`, a)
	if err != nil {
		return fmt.Errorf("insert artifact %d: %w", a.Sequence, err)
	}
	return nil
}

// SaveMeta stores a key-value pair in ledger metadata.
func (db *DB) SaveMeta(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT OR REPLACE INTO meta (key, value) VALUES (?, ?)",
		key, value,
	)
	return err
}

// GetMeta retrieves a metadata value.
func (db *DB) GetMeta(key string) (string, error) {
	var value string
	err := db.conn.Get(&value, "SELECT value FROM meta WHERE key = ?", key)
	return value, err
}

// LatestRun returns the most recently started run.
func (db *DB) LatestRun() (Run, error) {
	var r Run
	err := db.conn.Get(&r, `SELECT id, algorithm, config_json, started_at, finished_at,
		state, iterations, elapsed FROM runs ORDER BY rowid DESC LIMIT 1`)
	if err != nil {
		return r, fmt.Errorf("latest run: %w", err)
	}
	return r, nil
}

// Samples returns the samples of a run in iteration order.
func (db *DB) Samples(runID string) ([]Sample, error) {
	var samples []Sample
	err := db.conn.Select(&samples,
		"SELECT run_id, iteration, time, area, length FROM samples WHERE run_id = ? ORDER BY iteration",
		runID,
	)
	return samples, err
}

// Artifacts returns the artifacts of a run in sequence order.
func (db *DB) Artifacts(runID string) ([]Artifact, error) {
	var artifacts []Artifact
	err := db.conn.Select(&artifacts,
		"SELECT run_id, sequence, path, bytes FROM artifacts WHERE run_id = ? ORDER BY sequence",
		runID,
	)
	return artifacts, err
}
