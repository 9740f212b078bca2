package countdown

import (
	"strconv"
	"time"
)

// TimerState is the mutable record driven by the engine. A fresh TimerState is
// created on every Start; it is never shared between runs.
type TimerState struct {
	Remaining time.Duration
	Step      time.Duration
	Threshold time.Duration
	Minutes   float64
	Seconds   int
	Level     *Level
}

func NewTimerState(cfg Config) *TimerState {
	return &TimerState{
		Remaining: cfg.Countdown,
		Step:      cfg.Step,
		Threshold: cfg.Threshold,
		Minutes:   cfg.Minutes,
		Level:     Calm,
	}
}

// Transition is one observed level change. From and To are always two of the
// four canonical levels.
type Transition struct {
	From *Level
	To   *Level
}

// TickUpdate is the pure result of one tick: the display writes to perform and
// the transitions that fired, in the order they fired. Rendering it against a
// set of targets is a separate concern, so the transition logic stays testable
// without any host display.
type TickUpdate struct {
	MinutesText string
	MinutesSet  bool
	SecondsText string
	Transitions []Transition
	Remaining   time.Duration
	Done        bool
}

// Advance performs one unit of countdown work and mutates the state in place.
//
// The order of operations is part of the compatibility surface: the warning
// check sees the pre-decrement remaining duration, the minutes counter moves
// only on exact-minute boundaries (a step that does not divide one minute will
// drift past them, which is inherited behavior, not something to fix here),
// and completion is judged after the decrement.
func (s *TimerState) Advance() TickUpdate {
	up := TickUpdate{}
	modulo := s.Remaining % time.Minute

	if s.Remaining <= s.Threshold && s.Level == Calm {
		s.Level = Warn
		up.Transitions = append(up.Transitions, Transition{From: Calm, To: Warn})
	}

	if modulo == 0 {
		s.Minutes--
		if s.Minutes < 1 && s.Level == Warn {
			s.Level = Hurry
			up.Transitions = append(up.Transitions, Transition{From: Warn, To: Hurry})
		}
		up.MinutesText = padClock(int(s.Minutes))
		up.MinutesSet = true
	}

	if modulo == 0 {
		s.Seconds = 59
	} else {
		// Truncating division: 59999ms within the minute still reads 58.
		s.Seconds = int(modulo/time.Second) - 1
	}
	up.SecondsText = padClock(s.Seconds)

	s.Remaining -= s.Step
	up.Remaining = s.Remaining

	if s.Remaining <= 0 {
		from := s.Level
		s.Level = GameOver
		up.Transitions = append(up.Transitions, Transition{From: from, To: GameOver})
		up.Done = true
	}
	return up
}

// padClock renders a clock field with a left zero pad below ten.
func padClock(v int) string {
	if v >= 0 && v < 10 {
		return "0" + strconv.Itoa(v)
	}
	return strconv.Itoa(v)
}
