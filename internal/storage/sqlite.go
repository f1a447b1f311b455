// Package storage provides SQLite-based persistence for level progress and
// recorded solutions. Uses the pure-Go modernc.org/sqlite driver to avoid
// CGO dependencies.
package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection for progress persistence.
type Store struct {
	db *sql.DB
}

// LevelProgress tracks the best results for one level of a collection.
// Levels are addressed by (collection ID, zero-based index).
type LevelProgress struct {
	ID         int64
	Collection string
	Level      int
	Solved     bool
	BestMoves  int
	BestPushes int
	UpdatedAt  time.Time
}

// Solution is one recorded move sequence for a level, either entered by the
// player or produced by the solver.
type Solution struct {
	ID         int64
	Collection string
	Level      int
	Moves      string // LURD notation
	MoveCount  int
	PushCount  int
	Source     string // "player" or "solver"
	CreatedAt  time.Time
}

// Solution sources.
const (
	SourcePlayer = "player"
	SourceSolver = "solver"
)

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

	// Create parent directories
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
		CREATE TABLE IF NOT EXISTS level_progress (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			collection TEXT NOT NULL,
			level INTEGER NOT NULL,
			solved INTEGER NOT NULL DEFAULT 0,
			best_moves INTEGER NOT NULL DEFAULT 0,
			best_pushes INTEGER NOT NULL DEFAULT 0,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			UNIQUE(collection, level)
		);

		CREATE TABLE IF NOT EXISTS solutions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			collection TEXT NOT NULL,
			level INTEGER NOT NULL,
			moves TEXT NOT NULL,
			move_count INTEGER NOT NULL,
			push_count INTEGER NOT NULL,
			source TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_solutions_level ON solutions(collection, level);
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

// RecordSolve stores a solution and updates the level's progress. Best moves
// and best pushes are tracked independently, so a new solution can improve
// one without the other.
func (s *Store) RecordSolve(sol Solution) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO solutions (collection, level, moves, move_count, push_count, source)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		sol.Collection, sol.Level, sol.Moves, sol.MoveCount, sol.PushCount, sol.Source,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save solution: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO level_progress (collection, level, solved, best_moves, best_pushes)
		 VALUES (?, ?, 1, ?, ?)
		 ON CONFLICT(collection, level) DO UPDATE SET
			solved = 1,
			best_moves = MIN(best_moves, excluded.best_moves),
			best_pushes = MIN(best_pushes, excluded.best_pushes),
			updated_at = CURRENT_TIMESTAMP`,
		sol.Collection, sol.Level, sol.MoveCount, sol.PushCount,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot update progress: %w", err)
	}
	return id, nil
}

// Progress retrieves the progress rows for a collection, ordered by level.
func (s *Store) Progress(collection string) ([]LevelProgress, error) {
	rows, err := s.db.Query(
		`SELECT id, collection, level, solved, best_moves, best_pushes, updated_at
		 FROM level_progress
		 WHERE collection = ?
		 ORDER BY level`,
		collection,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query progress: %w", err)
	}
	defer rows.Close()

	var entries []LevelProgress
	for rows.Next() {
		var p LevelProgress
		var updatedAt any
		if err := rows.Scan(&p.ID, &p.Collection, &p.Level, &p.Solved, &p.BestMoves, &p.BestPushes, &updatedAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		p.UpdatedAt = parseTimestamp(updatedAt)
		entries = append(entries, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return entries, nil
}

// LevelStatus returns the progress for a single level, or nil when the level
// has never been solved.
func (s *Store) LevelStatus(collection string, level int) (*LevelProgress, error) {
	var p LevelProgress
	var updatedAt any
	err := s.db.QueryRow(
		`SELECT id, collection, level, solved, best_moves, best_pushes, updated_at
		 FROM level_progress
		 WHERE collection = ? AND level = ?`,
		collection, level,
	).Scan(&p.ID, &p.Collection, &p.Level, &p.Solved, &p.BestMoves, &p.BestPushes, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level status: %w", err)
	}
	p.UpdatedAt = parseTimestamp(updatedAt)
	return &p, nil
}

// BestSolution returns the stored solution with the fewest pushes for the
// level, ties broken by fewest moves. Returns nil when none is stored.
func (s *Store) BestSolution(collection string, level int) (*Solution, error) {
	var sol Solution
	var createdAt any
	err := s.db.QueryRow(
		`SELECT id, collection, level, moves, move_count, push_count, source, created_at
		 FROM solutions
		 WHERE collection = ? AND level = ?
		 ORDER BY push_count, move_count
		 LIMIT 1`,
		collection, level,
	).Scan(&sol.ID, &sol.Collection, &sol.Level, &sol.Moves, &sol.MoveCount, &sol.PushCount, &sol.Source, &createdAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query solution: %w", err)
	}
	sol.CreatedAt = parseTimestamp(createdAt)
	return &sol, nil
}

// Solutions retrieves every stored solution for a level, best first.
func (s *Store) Solutions(collection string, level int) ([]Solution, error) {
	rows, err := s.db.Query(
		`SELECT id, collection, level, moves, move_count, push_count, source, created_at
		 FROM solutions
		 WHERE collection = ? AND level = ?
		 ORDER BY push_count, move_count`,
		collection, level,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query solutions: %w", err)
	}
	defer rows.Close()

	var out []Solution
	for rows.Next() {
		var sol Solution
		var createdAt any
		if err := rows.Scan(&sol.ID, &sol.Collection, &sol.Level, &sol.Moves, &sol.MoveCount, &sol.PushCount, &sol.Source, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		sol.CreatedAt = parseTimestamp(createdAt)
		out = append(out, sol)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// SolvedCount returns how many levels of the collection have been solved.
func (s *Store) SolvedCount(collection string) (int, error) {
	var n int
	err := s.db.QueryRow(
		`SELECT COUNT(*) FROM level_progress WHERE collection = ? AND solved = 1`,
		collection,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot count solved levels: %w", err)
	}
	return n, nil
}

// ClearProgress deletes all progress and solutions for a collection.
func (s *Store) ClearProgress(collection string) error {
	if _, err := s.db.Exec("DELETE FROM level_progress WHERE collection = ?", collection); err != nil {
		return fmt.Errorf("storage: cannot clear progress: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM solutions WHERE collection = ?", collection); err != nil {
		return fmt.Errorf("storage: cannot clear solutions: %w", err)
	}
	return nil
}

// parseTimestamp handles the driver returning DATETIME columns as either
// time.Time or string.
func parseTimestamp(v any) time.Time {
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
