// Package storage keeps the Memory Garden hall of fame in SQLite.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// Only finished runs are written. Nothing here is ever loaded back into a
// game session; every session starts fresh.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// Run is one finished play session.
type Run struct {
	ID            string
	Player        string
	Stars         int
	LevelsCleared int
	Completed     bool
	CreatedAt     time.Time
}

// LevelRecord is one cleared level within a run.
type LevelRecord struct {
	RunID     string
	Level     int
	Stars     int
	Attempts  int
	HintsUsed int
}

// Stats are aggregates over all runs.
type Stats struct {
	Runs          int
	CompletedRuns int
	BestStars     int
	AvgStars      float64
	LastPlayed    time.Time
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

func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			player TEXT NOT NULL,
			stars INTEGER NOT NULL DEFAULT 0,
			levels_cleared INTEGER NOT NULL DEFAULT 0,
			completed INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(stars DESC, levels_cleared DESC);
		CREATE INDEX IF NOT EXISTS idx_runs_player ON runs(player);

		CREATE TABLE IF NOT EXISTS level_clears (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			run_id TEXT NOT NULL REFERENCES runs(id),
			level INTEGER NOT NULL,
			stars INTEGER NOT NULL,
			attempts INTEGER NOT NULL,
			hints_used INTEGER NOT NULL
		);
		CREATE INDEX IF NOT EXISTS idx_level_clears_run ON level_clears(run_id);
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

// SaveRun records a finished run and returns its generated ID.
// The run's ID and CreatedAt fields are ignored.
func (s *Store) SaveRun(run Run) (string, error) {
	id := uuid.NewString()
	player := run.Player
	if player == "" {
		player = "anonymous"
	}

	_, err := s.db.Exec(
		"INSERT INTO runs (id, player, stars, levels_cleared, completed) VALUES (?, ?, ?, ?, ?)",
		id, player, run.Stars, run.LevelsCleared, boolToInt(run.Completed),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return id, nil
}

// SaveLevelClear records one cleared level of a saved run.
func (s *Store) SaveLevelClear(rec LevelRecord) error {
	_, err := s.db.Exec(
		"INSERT INTO level_clears (run_id, level, stars, attempts, hints_used) VALUES (?, ?, ?, ?, ?)",
		rec.RunID, rec.Level, rec.Stars, rec.Attempts, rec.HintsUsed,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot save level clear: %w", err)
	}
	return nil
}

// TopRuns retrieves the best N runs, ordered by stars then levels cleared.
func (s *Store) TopRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT id, player, stars, levels_cleared, completed, created_at
		 FROM runs
		 ORDER BY stars DESC, levels_cleared DESC, created_at ASC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var completed int
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Player, &r.Stars, &r.LevelsCleared, &completed, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.Completed = completed != 0
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// RunLevels returns the level clears of a run in level order.
func (s *Store) RunLevels(runID string) ([]LevelRecord, error) {
	rows, err := s.db.Query(
		`SELECT run_id, level, stars, attempts, hints_used
		 FROM level_clears
		 WHERE run_id = ?
		 ORDER BY level ASC, id ASC`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query level clears: %w", err)
	}
	defer rows.Close()

	var recs []LevelRecord
	for rows.Next() {
		var rec LevelRecord
		if err := rows.Scan(&rec.RunID, &rec.Level, &rec.Stars, &rec.Attempts, &rec.HintsUsed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		recs = append(recs, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return recs, nil
}

// BestStars returns the highest star total a player has reached.
// An empty player means any player. Returns 0 if no runs exist.
func (s *Store) BestStars(player string) (int, error) {
	var stars sql.NullInt64
	var err error
	if player == "" {
		err = s.db.QueryRow("SELECT MAX(stars) FROM runs").Scan(&stars)
	} else {
		err = s.db.QueryRow("SELECT MAX(stars) FROM runs WHERE player = ?", player).Scan(&stars)
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query best stars: %w", err)
	}

	if !stars.Valid {
		return 0, nil
	}
	return int(stars.Int64), nil
}

// Stats retrieves aggregate statistics over all runs.
func (s *Store) Stats() (*Stats, error) {
	stats := &Stats{}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(completed), 0), COALESCE(MAX(stars), 0), COALESCE(AVG(stars), 0)
		 FROM runs`,
	).Scan(&stats.Runs, &stats.CompletedRuns, &stats.BestStars, &stats.AvgStars)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(`SELECT created_at FROM runs ORDER BY created_at DESC LIMIT 1`).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// parseTime handles the driver returning either time.Time or a string.
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

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
