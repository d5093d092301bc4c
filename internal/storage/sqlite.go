// Package storage provides optional SQLite-based run history.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// Nothing here is read back into a live game: history is for display only.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/vovakirdan/tui-portfolio/internal/world"
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// Run is one finished play session.
type Run struct {
	ID        int64         `json:"id"`
	Session   string        `json:"session"` // SSH user, "local" or a web session id
	Source    string        `json:"source"`  // "tui", "ssh" or "web"
	Score     int           `json:"score"`
	Boxes     []world.BoxID `json:"boxes"` // in the order they were broken
	Jumps     int           `json:"jumps"`
	MaxX      float64       `json:"max_x"`
	Duration  time.Duration `json:"duration"`
	CreatedAt time.Time     `json:"created_at"`
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	if dbPath == "" {
		return nil, errors.New("storage: empty database path")
	}

	// Expand ~ to home directory
	if dbPath[0] == '~' {
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
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session TEXT NOT NULL,
			source TEXT NOT NULL,
			score INTEGER NOT NULL DEFAULT 0,
			boxes TEXT NOT NULL DEFAULT '',
			jumps INTEGER NOT NULL DEFAULT 0,
			max_x REAL NOT NULL DEFAULT 0,
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_score ON runs(score DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_session ON runs(session);
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

// SaveRun records a finished run and returns its ID.
func (s *Store) SaveRun(r Run) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO runs (session, source, score, boxes, jumps, max_x, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		r.Session, r.Source, r.Score, encodeBoxes(r.Boxes), r.Jumps, r.MaxX, r.Duration.Milliseconds(),
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

const runColumns = `id, session, source, score, boxes, jumps, max_x, duration_ms, created_at`

// RecentRuns returns the newest runs first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs ORDER BY created_at DESC, id DESC LIMIT ?`,
		limit,
	)
}

// TopRuns returns the highest-scoring runs; ties go to the faster run.
func (s *Store) TopRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs ORDER BY score DESC, duration_ms ASC LIMIT ?`,
		limit,
	)
}

// SessionRuns returns the runs of one session, newest first.
func (s *Store) SessionRuns(session string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs WHERE session = ? ORDER BY created_at DESC, id DESC LIMIT ?`,
		session, limit,
	)
}

func (s *Store) queryRuns(query string, args ...any) ([]Run, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var boxes string
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Session, &r.Source, &r.Score, &boxes, &r.Jumps, &r.MaxX, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Boxes = decodeBoxes(boxes)
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return runs, nil
}

// ClearRuns deletes the whole history.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// Stats contains aggregated statistics over all runs.
type Stats struct {
	Runs       int                 `json:"runs"`
	BestScore  int                 `json:"best_score"`
	AvgScore   float64             `json:"avg_score"`
	BoxCounts  map[world.BoxID]int `json:"box_counts"`
	LastPlayed time.Time           `json:"last_played"`
}

// Stats aggregates the history. BoxCounts counts how many runs broke
// each box at least once.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{BoxCounts: make(map[world.BoxID]int)}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), MAX(created_at)
		 FROM runs`,
	).Scan(&stats.Runs, &stats.BestScore, &stats.AvgScore, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	rows, err := s.db.Query(`SELECT boxes FROM runs WHERE boxes != ''`)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query boxes: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var boxes string
		if err := rows.Scan(&boxes); err != nil {
			return nil, fmt.Errorf("storage: cannot scan boxes: %w", err)
		}
		var seen world.BoxSet
		for _, id := range decodeBoxes(boxes) {
			seen = seen.Add(id)
		}
		for _, id := range seen.IDs() {
			stats.BoxCounts[id]++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}

func encodeBoxes(ids []world.BoxID) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if id.Valid() {
			names = append(names, id.String())
		}
	}
	return strings.Join(names, ",")
}

func decodeBoxes(s string) []world.BoxID {
	if s == "" {
		return nil
	}
	var ids []world.BoxID
	for _, name := range strings.Split(s, ",") {
		if id, ok := world.ParseBoxID(name); ok {
			ids = append(ids, id)
		}
	}
	return ids
}

// parseTime handles both time.Time and string datetime values.
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
