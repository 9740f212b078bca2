package countdown

import "time"

// StopWatch records the wall-clock start and stop of one run. Purely
// observational: level logic never reads it.
type StopWatch struct {
	StartedAt time.Time
	StoppedAt time.Time
}

func (w StopWatch) Running() bool { return !w.StartedAt.IsZero() && w.StoppedAt.IsZero() }

// Elapsed is the recorded run length, or the time since start while running.
func (w StopWatch) Elapsed() time.Duration {
	if w.StartedAt.IsZero() {
		return 0
	}
	if w.StoppedAt.IsZero() {
		return time.Since(w.StartedAt)
	}
	return w.StoppedAt.Sub(w.StartedAt)
}
