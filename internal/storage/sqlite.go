// Package storage provides SQLite-based persistence for preview run history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// Only run outcomes are stored; the runtime specification itself never is.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is one finished preview run.
type Run struct {
	ID        string // UUID assigned when the run started
	Genre     string
	Width     int
	Height    int
	Systems   []string // canonical system types
	Ticks     uint64
	Score     int
	Resets    int
	StartedAt time.Time
	EndedAt   time.Time
}

// Duration returns how long the run was active.
func (r Run) Duration() time.Duration {
	return r.EndedAt.Sub(r.StartedAt)
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
// Timestamps are unix milliseconds so that ordering is numeric.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			genre TEXT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			systems TEXT NOT NULL DEFAULT '',
			ticks INTEGER NOT NULL DEFAULT 0,
			score INTEGER NOT NULL DEFAULT 0,
			resets INTEGER NOT NULL DEFAULT 0,
			started_at INTEGER NOT NULL,
			ended_at INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_runs_genre ON runs(genre);
		CREATE INDEX IF NOT EXISTS idx_runs_ended ON runs(ended_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveRun records a finished run. Saving the same ID twice replaces the
// earlier record.
func (s *Store) SaveRun(r Run) error {
	if r.ID == "" {
		return fmt.Errorf("storage: run has no ID")
	}
	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO runs
		 (id, genre, width, height, systems, ticks, score, resets, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Genre, r.Width, r.Height, strings.Join(r.Systems, ","),
		int64(r.Ticks), r.Score, r.Resets,
		r.StartedAt.UnixMilli(), r.EndedAt.UnixMilli(),
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save run: %w", err)
	}
	return nil
}

const runColumns = `id, genre, width, height, systems, ticks, score, resets, started_at, ended_at`

func scanRuns(rows *sql.Rows) ([]Run, error) {
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			r              Run
			systems        string
			ticks          int64
			started, ended int64
		)
		if err := rows.Scan(&r.ID, &r.Genre, &r.Width, &r.Height, &systems,
			&ticks, &r.Score, &r.Resets, &started, &ended); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if systems != "" {
			r.Systems = strings.Split(systems, ",")
		}
		r.Ticks = uint64(ticks)
		r.StartedAt = time.UnixMilli(started)
		r.EndedAt = time.UnixMilli(ended)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// RecentRuns retrieves the most recently finished runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 ORDER BY ended_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// RunsByGenre retrieves every run of one genre, best score first.
func (s *Store) RunsByGenre(genre string) ([]Run, error) {
	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE genre = ?
		 ORDER BY score DESC, ended_at DESC`,
		genre,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// BestScore returns the highest score recorded for the genre.
// Returns 0 if no runs exist.
func (s *Store) BestScore(genre string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE genre = ?",
		genre,
	).Scan(&score)

	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}

	return int(score.Int64), nil
}

// ClearRuns deletes the whole history.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// GenreStats contains aggregated statistics for one genre.
type GenreStats struct {
	Genre     string
	Runs      int
	BestScore int
	AvgScore  float64
	Ticks     int64
	LastRun   time.Time
}

// AllGenreStats retrieves statistics for every genre that has been previewed.
func (s *Store) AllGenreStats() (map[string]*GenreStats, error) {
	rows, err := s.db.Query(
		`SELECT genre, COUNT(*), MAX(score), AVG(score), SUM(ticks), MAX(ended_at)
		 FROM runs
		 GROUP BY genre`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get genre stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GenreStats)
	for rows.Next() {
		var st GenreStats
		var last int64
		if err := rows.Scan(&st.Genre, &st.Runs, &st.BestScore, &st.AvgScore, &st.Ticks, &last); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastRun = time.UnixMilli(last)
		stats[st.Genre] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}
