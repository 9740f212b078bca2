package ui

import (
	"time"

	"scrumclock/internal/display"
)

type Controller interface {
	OnStartTimer()
	OnStopTimer()
	OnQuit()
}

type View interface {
	Run() error
	Stop()
	SetController(Controller)
	Targets() display.Targets
	SetSession(SessionState)
	SetTimerRunning(running bool, startedAt time.Time)
	SetProgress(pct float64)
	SetAgenda(markdown string)
	SetHistoryLine(line string)
	FlashStatus(msg string)
	RequestDraw()
}

type LayoutMode int

const (
	LayoutWide LayoutMode = iota
	LayoutCompact
	LayoutTooSmall
)

// SessionState describes the configured meeting shown in the header and the
// initial clock face.
type SessionState struct {
	Profile   string
	Team      string
	Countdown time.Duration
	Step      time.Duration
	Threshold time.Duration
}
