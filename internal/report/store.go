package report

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/minewatch/haulcycle/internal/cycle"
)

const storeSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	source TEXT NOT NULL,
	created_at DATETIME NOT NULL,
	speed_high REAL NOT NULL,
	speed_low REAL NOT NULL,
	min_idle_seconds REAL NOT NULL,
	min_cycle_seconds REAL NOT NULL,
	min_cycle_meters REAL NOT NULL,
	total_cycles INTEGER NOT NULL,
	total_distance_m REAL NOT NULL,
	mean_cycle_seconds REAL NOT NULL,
	median_cycle_seconds REAL NOT NULL
);

CREATE TABLE IF NOT EXISTS cycles (
	run_id TEXT NOT NULL,
	cycle_id INTEGER NOT NULL,
	start_time DATETIME NOT NULL,
	end_time DATETIME NOT NULL,
	duration_seconds REAL NOT NULL,
	distance_m REAL NOT NULL,
	avg_speed_ms REAL NOT NULL,
	pauses INTEGER NOT NULL,
	paused_seconds REAL NOT NULL,
	PRIMARY KEY (run_id, cycle_id),
	FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS points (
	run_id TEXT NOT NULL,
	seq INTEGER NOT NULL,
	timestamp DATETIME NOT NULL,
	latitude REAL NOT NULL,
	longitude REAL NOT NULL,
	speed_ms REAL NOT NULL,
	cycle_id INTEGER,
	PRIMARY KEY (run_id, seq),
	FOREIGN KEY (run_id) REFERENCES runs(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS cycles_run_idx ON cycles (run_id);
CREATE INDEX IF NOT EXISTS points_run_idx ON points (run_id, cycle_id);
`

// Store archives analysis runs in a SQLite database so repeated analyses of
// the same pit can be compared later.
type Store struct {
	db *sql.DB
}

// OpenStore opens (creating if needed) the run archive at path.
func OpenStore(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.Exec(storeSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRun persists one analysis run and returns its generated run ID.
func (s *Store) SaveRun(source string, cfg cycle.Config, result cycle.Result) (string, error) {
	runID := uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return "", fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	agg := result.Summary.Aggregates
	_, err = tx.Exec(`
		INSERT INTO runs (
			id, source, created_at, speed_high, speed_low,
			min_idle_seconds, min_cycle_seconds, min_cycle_meters,
			total_cycles, total_distance_m, mean_cycle_seconds, median_cycle_seconds
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, source, time.Now().UTC(),
		cfg.SpeedHigh, cfg.SpeedLow,
		cfg.MinIdleDuration.Seconds(), cfg.MinCycleDuration.Seconds(), cfg.MinCycleDistance,
		agg.TotalCycles, agg.TotalDistanceMeters, agg.MeanDurationSeconds, agg.MedianDurationSeconds,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert run: %w", err)
	}

	if err := insertCycles(tx, runID, result.Summary.Rows); err != nil {
		return "", err
	}
	if err := insertPoints(tx, runID, result.Points); err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit run: %w", err)
	}

	return runID, nil
}

func insertCycles(tx *sql.Tx, runID string, rows []cycle.SummaryRow) error {
	stmt, err := tx.Prepare(`
		INSERT INTO cycles (
			run_id, cycle_id, start_time, end_time,
			duration_seconds, distance_m, avg_speed_ms, pauses, paused_seconds
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare cycle insert: %w", err)
	}
	defer stmt.Close()

	for _, row := range rows {
		_, err := stmt.Exec(
			runID, row.CycleID, row.StartTime.UTC(), row.EndTime.UTC(),
			row.DurationSeconds, row.DistanceMeters, row.AvgSpeed,
			row.Pauses, row.PausedSeconds,
		)
		if err != nil {
			return fmt.Errorf("failed to insert cycle %d: %w", row.CycleID, err)
		}
	}

	return nil
}

func insertPoints(tx *sql.Tx, runID string, points []cycle.AnnotatedPoint) error {
	stmt, err := tx.Prepare(`
		INSERT INTO points (
			run_id, seq, timestamp, latitude, longitude, speed_ms, cycle_id
		) VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare point insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range points {
		var cycleID sql.NullInt64
		if p.CycleID > 0 {
			cycleID = sql.NullInt64{Int64: int64(p.CycleID), Valid: true}
		}
		_, err := stmt.Exec(runID, i, p.Time.UTC(), p.Lat, p.Lon, p.Speed, cycleID)
		if err != nil {
			return fmt.Errorf("failed to insert point %d: %w", i, err)
		}
	}

	return nil
}

// RunCount returns the number of archived runs.
func (s *Store) RunCount() (int, error) {
	var count int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM runs").Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count runs: %w", err)
	}
	return count, nil
}
