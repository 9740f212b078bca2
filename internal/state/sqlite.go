package state

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS meeting_runs (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL,
			profile TEXT NOT NULL,
			team TEXT NOT NULL DEFAULT '',
			start_ts TEXT NOT NULL,
			stop_ts TEXT NOT NULL DEFAULT '',
			countdown_ms INTEGER NOT NULL,
			step_ms INTEGER NOT NULL,
			threshold_ms INTEGER NOT NULL,
			elapsed_ms INTEGER NOT NULL DEFAULT 0,
			completed INTEGER NOT NULL DEFAULT 0,
			final_level TEXT NOT NULL DEFAULT ''
		);`,
		`CREATE INDEX IF NOT EXISTS idx_meeting_runs_start ON meeting_runs(start_ts);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

func (s *SQLiteStore) StartMeetingRun(ctx context.Context, run MeetingRun) (int64, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO meeting_runs(session_id, profile, team, start_ts, countdown_ms, step_ms, threshold_ms)
		 VALUES(?,?,?,?,?,?,?)`,
		run.SessionID,
		run.Profile,
		run.Team,
		run.StartTS.UTC().Format(timeLayout),
		run.CountdownMS,
		run.StepMS,
		run.ThresholdMS,
	)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

func (s *SQLiteStore) FinishMeetingRun(ctx context.Context, runID int64, result RunResult) error {
	completed := 0
	if result.Completed {
		completed = 1
	}
	_, err := s.db.ExecContext(ctx,
		`UPDATE meeting_runs
		 SET stop_ts = ?, completed = ?, final_level = ?, elapsed_ms = ?
		 WHERE id = ?`,
		result.StopTS.UTC().Format(timeLayout),
		completed,
		result.FinalLevel,
		result.ElapsedMS,
		runID,
	)
	return err
}

func (s *SQLiteStore) GetSummary(ctx context.Context) (Summary, error) {
	var out Summary
	row := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*),
		        COALESCE(SUM(completed), 0),
		        COALESCE(SUM(CASE WHEN stop_ts != '' AND completed = 0 THEN 1 ELSE 0 END), 0),
		        COALESCE(SUM(elapsed_ms), 0)
		 FROM meeting_runs`)
	if err := row.Scan(&out.Runs, &out.Completed, &out.Stopped, &out.TotalMS); err != nil {
		return Summary{}, err
	}
	return out, nil
}

func (s *SQLiteStore) GetLastRun(ctx context.Context) (*LastRun, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT profile, team, start_ts, completed, final_level
		 FROM meeting_runs
		 ORDER BY id DESC
		 LIMIT 1`)
	var (
		out        LastRun
		startTSRaw string
		completed  int
	)
	if err := row.Scan(&out.Profile, &out.Team, &startTSRaw, &completed, &out.FinalLevel); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	startTS, err := time.Parse(timeLayout, startTSRaw)
	if err != nil {
		return nil, fmt.Errorf("parse start_ts: %w", err)
	}
	out.StartTS = startTS
	out.Completed = completed != 0
	return &out, nil
}

func (s *SQLiteStore) Close() error { return s.db.Close() }

const timeLayout = "2006-01-02T15:04:05Z07:00"

var _ Store = (*SQLiteStore)(nil)
