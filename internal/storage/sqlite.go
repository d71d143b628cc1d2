// Package storage provides SQLite-based persistence for finished runs.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
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

	"github.com/vovakirdan/lane-runner/internal/runner"
)

// Run outcomes as stored.
const (
	OutcomeWin      = "win"
	OutcomeGameOver = "gameover"
)

// Store manages the SQLite database connection for run history.
type Store struct {
	db *sql.DB
}

// RunRecord is one finished run.
type RunRecord struct {
	ID         int64
	Character  string
	Player     string // "local" or the SSH user
	Outcome    string
	Score      int
	Distance   float64
	Benefits   int      // Pickup instances collected
	Categories []string // Distinct categories, in collection order
	Duration   time.Duration
	CreatedAt  time.Time
}

// Won reports whether the run reached the finish.
func (r RunRecord) Won() bool {
	return r.Outcome == OutcomeWin
}

// RecordFromSummary converts an end-of-run digest into a record.
func RecordFromSummary(sum runner.Summary, player string) RunRecord {
	outcome := OutcomeGameOver
	if sum.Outcome == runner.StateWin {
		outcome = OutcomeWin
	}
	cats := make([]string, 0, len(sum.Categories))
	for _, c := range sum.Categories {
		cats = append(cats, c.ID)
	}
	return RunRecord{
		Character:  sum.Theme,
		Player:     player,
		Outcome:    outcome,
		Score:      sum.Score,
		Distance:   sum.Distance,
		Benefits:   sum.BenefitsCollected,
		Categories: cats,
		Duration:   sum.Duration,
	}
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
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			character TEXT NOT NULL,
			player TEXT NOT NULL DEFAULT 'local',
			outcome TEXT NOT NULL,
			score INTEGER NOT NULL,
			distance REAL NOT NULL DEFAULT 0,
			benefits INTEGER NOT NULL DEFAULT 0,
			categories TEXT NOT NULL DEFAULT '',
			duration_ms INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_runs_character ON runs(character);
		CREATE INDEX IF NOT EXISTS idx_runs_top ON runs(character, score DESC);
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
func (s *Store) SaveRun(r RunRecord) (int64, error) {
	if r.Character == "" {
		return 0, errors.New("storage: run has no character")
	}
	if r.Player == "" {
		r.Player = "local"
	}
	result, err := s.db.Exec(
		`INSERT INTO runs (character, player, outcome, score, distance, benefits, categories, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.Character, r.Player, r.Outcome, r.Score, r.Distance, r.Benefits,
		strings.Join(r.Categories, ","), r.Duration.Milliseconds(),
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

const runColumns = `id, character, player, outcome, score, distance, benefits, categories, duration_ms, created_at`

// TopRuns retrieves the best runs for a character, or for all characters
// when character is empty. Results are ordered by score descending.
func (s *Store) TopRuns(character string, limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := s.db.Query(
		`SELECT `+runColumns+`
		 FROM runs
		 WHERE ? = '' OR character = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		character, character, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query runs: %w", err)
	}
	return scanRuns(rows)
}

// RecentRuns retrieves the most recently saved runs.
func (s *Store) RecentRuns(limit int) ([]RunRecord, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT `+runColumns+` FROM runs ORDER BY id DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query recent runs: %w", err)
	}
	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]RunRecord, error) {
	defer rows.Close()

	var runs []RunRecord
	for rows.Next() {
		var r RunRecord
		var cats string
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Character, &r.Player, &r.Outcome, &r.Score,
			&r.Distance, &r.Benefits, &cats, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		if cats != "" {
			r.Categories = strings.Split(cats, ",")
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.CreatedAt = parseTime(createdAt)
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return runs, nil
}

// parseTime handles both driver representations of DATETIME.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}

// HighScore returns the highest score for the character, or across all
// characters when character is empty. Returns 0 if no runs exist.
func (s *Store) HighScore(character string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM runs WHERE ? = '' OR character = ?",
		character, character,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}
	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearRuns deletes all runs for the character.
func (s *Store) ClearRuns(character string) error {
	_, err := s.db.Exec("DELETE FROM runs WHERE character = ?", character)
	if err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}

// RunStats contains aggregated statistics for a character.
type RunStats struct {
	Character    string
	Runs         int
	Wins         int
	HighScore    int
	AvgScore     float64
	BestDistance float64
	LastPlayed   time.Time
}

// Stats retrieves aggregated statistics for a specific character.
func (s *Store) Stats(character string) (*RunStats, error) {
	stats := &RunStats{Character: character}
	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COALESCE(SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END), 0),
		        COALESCE(MAX(score), 0),
		        COALESCE(AVG(score), 0),
		        COALESCE(MAX(distance), 0),
		        MAX(created_at)
		 FROM runs WHERE character = ?`,
		OutcomeWin, character,
	).Scan(&stats.Runs, &stats.Wins, &stats.HighScore, &stats.AvgScore, &stats.BestDistance, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get run stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)
	return stats, nil
}

// AllStats retrieves statistics for every character that has been played.
func (s *Store) AllStats() (map[string]*RunStats, error) {
	rows, err := s.db.Query(
		`SELECT character, COUNT(*),
		        SUM(CASE WHEN outcome = ? THEN 1 ELSE 0 END),
		        MAX(score), AVG(score), MAX(distance), MAX(created_at)
		 FROM runs
		 GROUP BY character`,
		OutcomeWin,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*RunStats)
	for rows.Next() {
		var st RunStats
		var lastPlayed any
		if err := rows.Scan(&st.Character, &st.Runs, &st.Wins, &st.HighScore, &st.AvgScore, &st.BestDistance, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.Character] = &st
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}
