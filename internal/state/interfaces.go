package state

import (
	"context"
	"time"
)

type Store interface {
	EnsureSchema(ctx context.Context) error
	StartMeetingRun(ctx context.Context, run MeetingRun) (int64, error)
	FinishMeetingRun(ctx context.Context, runID int64, result RunResult) error
	GetSummary(ctx context.Context) (Summary, error)
	GetLastRun(ctx context.Context) (*LastRun, error)
	Close() error
}

// MeetingRun is recorded when a countdown starts.
type MeetingRun struct {
	SessionID   string
	Profile     string
	Team        string
	StartTS     time.Time
	CountdownMS int64
	StepMS      int64
	ThresholdMS int64
}

// RunResult is recorded when a countdown stops, either by reaching zero
// (Completed) or by an explicit stop.
type RunResult struct {
	StopTS     time.Time
	Completed  bool
	FinalLevel string
	ElapsedMS  int64
}

type Summary struct {
	Runs      int
	Completed int
	Stopped   int
	TotalMS   int64
}

type LastRun struct {
	Profile    string
	Team       string
	StartTS    time.Time
	Completed  bool
	FinalLevel string
}
