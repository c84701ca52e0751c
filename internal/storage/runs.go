package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Run is one finished game.
type Run struct {
	ID        string // uuid, assigned by SaveRun when empty
	Score     int
	Side      int    // Board side when the run ended
	Length    int    // Snake length when the run ended
	Cause     string // Why the run ended
	Duration  time.Duration
	CreatedAt time.Time
}

// RunStats aggregates the run history.
type RunStats struct {
	Games        int
	HighScore    int
	AvgScore     float64
	TotalScore   int64
	SmallestSide int
	LongestSnake int
	TotalPlay    time.Duration
	LastPlayed   time.Time
}

const runColumns = `run_id, score, board_side, length, cause, duration_ms, created_at`

// SaveRun records a finished run and returns its id.
func (s *Store) SaveRun(run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	_, err := s.db.Exec(
		`INSERT INTO runs (run_id, score, board_side, length, cause, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Score, run.Side, run.Length, run.Cause, run.Duration.Milliseconds(),
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save run: %w", err)
	}
	return run.ID, nil
}

// TopRuns retrieves the best N runs, highest score first. Ties go to the
// earlier run.
func (s *Store) TopRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs ORDER BY score DESC, id ASC LIMIT ?`,
		limit,
	)
}

// RecentRuns retrieves the latest N runs, newest first.
func (s *Store) RecentRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.queryRuns(
		`SELECT `+runColumns+` FROM runs ORDER BY id DESC LIMIT ?`,
		limit,
	)
}

// AllRuns retrieves every run in the order they were played.
func (s *Store) AllRuns() ([]Run, error) {
	return s.queryRuns(`SELECT ` + runColumns + ` FROM runs ORDER BY id ASC`)
}

// RunByID retrieves one run. Returns nil when it does not exist.
func (s *Store) RunByID(id string) (*Run, error) {
	runs, err := s.queryRuns(`SELECT `+runColumns+` FROM runs WHERE run_id = ?`, id)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
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
		var durationMS int64
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Score, &r.Side, &r.Length, &r.Cause, &durationMS, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
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

// Stats retrieves aggregated statistics over every run.
func (s *Store) Stats() (*RunStats, error) {
	stats := &RunStats{}
	var totalMS int64

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0), COALESCE(SUM(score), 0),
		        COALESCE(MIN(board_side), 0), COALESCE(MAX(length), 0), COALESCE(SUM(duration_ms), 0)
		 FROM runs`,
	).Scan(&stats.Games, &stats.HighScore, &stats.AvgScore, &stats.TotalScore,
		&stats.SmallestSide, &stats.LongestSnake, &totalMS)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get stats: %w", err)
	}
	stats.TotalPlay = time.Duration(totalMS) * time.Millisecond

	var lastPlayed any
	err = s.db.QueryRow(`SELECT created_at FROM runs ORDER BY id DESC LIMIT 1`).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// ClearRuns deletes the run history. The best score is kept.
func (s *Store) ClearRuns() error {
	if _, err := s.db.Exec("DELETE FROM runs"); err != nil {
		return fmt.Errorf("storage: cannot clear runs: %w", err)
	}
	return nil
}
