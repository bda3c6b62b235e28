// Package storage keeps a history of arena runs in SQLite through the
// pure-Go modernc.org/sqlite driver.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"
)

// Run sources.
const (
	SourcePlay = "play"
	SourceSim  = "sim"
	SourceSSH  = "ssh"
)

// Store manages the SQLite database connection for run persistence.
type Store struct {
	db *sql.DB
}

// RunRecord is one finished or interrupted arena run.
type RunRecord struct {
	ID         int64
	Scenario   string
	Source     string // play, sim or ssh
	Seed       int64
	Score      int
	Wave       int
	Kills      int
	Ticks      int
	LivesLeft  int
	GameOver   bool
	DurationMs int64
	Hash       uint64 // final snapshot hash, for replay checks
	CreatedAt  time.Time
}

// migrations are applied in order; PRAGMA user_version counts how many a
// database has already seen.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS runs (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		scenario    TEXT    NOT NULL,
		source      TEXT    NOT NULL DEFAULT 'play',
		seed        INTEGER NOT NULL DEFAULT 0,
		score       INTEGER NOT NULL,
		wave        INTEGER NOT NULL DEFAULT 1,
		kills       INTEGER NOT NULL DEFAULT 0,
		ticks       INTEGER NOT NULL DEFAULT 0,
		lives_left  INTEGER NOT NULL DEFAULT 0,
		game_over   INTEGER NOT NULL DEFAULT 0,
		duration_ms INTEGER NOT NULL DEFAULT 0,
		hash        TEXT    NOT NULL DEFAULT '',
		created_at  DATETIME DEFAULT CURRENT_TIMESTAMP
	)`,
	`CREATE INDEX IF NOT EXISTS idx_runs_scenario ON runs(scenario)`,
	`CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(scenario, score DESC)`,
}

// expandHome resolves a leading ~ against the user's home directory.
func expandHome(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("storage: home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}

// Open opens the runs database at path, creating it and its directories
// when missing, and brings the schema up to date. A leading ~ is expanded.
func Open(path string) (*Store, error) {
	path, err := expandHome(path)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("storage: create directory: %w", err)
	}

	// One connection keeps writers from tripping over SQLITE_BUSY
	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("storage: open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migrate %s: %w", path, err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	var version int
	if err := s.db.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return err
	}
	for i := version; i < len(migrations); i++ {
		if _, err := s.db.Exec(migrations[i]); err != nil {
			return fmt.Errorf("step %d: %w", i+1, err)
		}
		// PRAGMA takes no bind parameters
		if _, err := s.db.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, i+1)); err != nil {
			return err
		}
	}
	return nil
}

// Close releases the database. Closing a nil or closed store is a no-op.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// SaveRun records a run and returns the ID of the inserted record.
func (s *Store) SaveRun(r RunRecord) (int64, error) {
	if r.Source == "" {
		r.Source = SourcePlay
	}
	result, err := s.db.Exec(
		`INSERT INTO runs
		 (scenario, source, seed, score, wave, kills, ticks, lives_left, game_over, duration_ms, hash)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Scenario,
		r.Source,
		r.Seed,
		r.Score,
		r.Wave,
		r.Kills,
		r.Ticks,
		r.LivesLeft,
		r.GameOver,
		r.DurationMs,
		formatHash(r.Hash),
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save run: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

const runColumns = `id, scenario, source, seed, score, wave, kills, ticks,
		        lives_left, game_over, duration_ms, hash, created_at`

// RecentRuns retrieves the latest runs for a scenario, newest first.
func (s *Store) RecentRuns(scenario string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE scenario = ?
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		scenario, limit,
	)
}

// TopRuns retrieves the best runs for a scenario.
// Results are ordered by score descending; earlier runs win ties.
func (s *Store) TopRuns(scenario string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE scenario = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		scenario, limit,
	)
}

func (s *Store) queryRuns(query string, args ...any) ([]RunRecord, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var hash string
		var createdAt any
		if err := rows.Scan(
			&r.ID,
			&r.Scenario,
			&r.Source,
			&r.Seed,
			&r.Score,
			&r.Wave,
			&r.Kills,
			&r.Ticks,
			&r.LivesLeft,
			&r.GameOver,
			&r.DurationMs,
			&hash,
			&createdAt,
		); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Hash = parseHash(hash)
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// BestScore returns the highest score for the given scenario.
// Returns 0 if no runs exist.
func (s *Store) BestScore(scenario string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE scenario = ?",
		scenario,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearRuns deletes all runs for the given scenario.
func (s *Store) ClearRuns(scenario string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE scenario = ?", scenario)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// ScenarioStats contains aggregated statistics for a scenario.
type ScenarioStats struct {
	Scenario   string
	Runs       int
	BestScore  int
	AvgScore   float64
	BestWave   int
	TotalKills int64
	LastPlayed time.Time
}

// ScenarioStats retrieves aggregated statistics for a specific scenario.
func (s *Store) ScenarioStats(scenario string) (*ScenarioStats, error) {
	stats := &ScenarioStats{Scenario: scenario}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(MAX(wave), 0), COALESCE(SUM(kills), 0)
		 FROM runs WHERE scenario = ?`,
		scenario,
	).Scan(&stats.Runs, &stats.BestScore, &stats.AvgScore, &stats.BestWave, &stats.TotalKills)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get scenario stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM runs WHERE scenario = ? ORDER BY created_at DESC, id DESC LIMIT 1`,
		scenario,
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// AllScenarioStats retrieves statistics for every scenario with stored runs.
func (s *Store) AllScenarioStats() (map[string]*ScenarioStats, error) {
	rows, err := s.db.Query(
		`SELECT scenario, COUNT(*), MAX(score), AVG(score), MAX(wave), SUM(kills), MAX(created_at)
		 FROM runs
		 GROUP BY scenario`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all scenario stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ScenarioStats)
	for rows.Next() {
		var st ScenarioStats
		var lastPlayed any
		if err := rows.Scan(&st.Scenario, &st.Runs, &st.BestScore, &st.AvgScore,
			&st.BestWave, &st.TotalKills, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.Scenario] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

// parseTime handles both time.Time and the driver's string form.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// Hashes are stored as hex text: database/sql rejects uint64 values with
// the high bit set.
func formatHash(h uint64) string {
	return fmt.Sprintf("%016x", h)
}

func parseHash(s string) uint64 {
	h, err := strconv.ParseUint(s, 16, 64)
	if err != nil {
		return 0
	}
	return h
}
