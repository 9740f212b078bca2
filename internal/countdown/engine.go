package countdown

import (
	"errors"
	"sync"
	"time"

	"scrumclock/internal/display"
)

// now is swapped out by tests that assert recorded timestamps.
var now = time.Now

// ErrAlreadyRunning is returned by Start when the engine already has an active
// schedule. Guarding here keeps a second repeating tick from racing the first
// over the same state.
var ErrAlreadyRunning = errors.New("countdown: engine already running")

// Engine owns the timer lifecycle: it creates a fresh TimerState on Start,
// advances it once per step via the scheduler, and pushes each TickUpdate to
// the display targets. The targets are non-owning references; absent sinks are
// skipped silently.
type Engine struct {
	cfg     Config
	targets display.Targets
	sched   Scheduler
	notify  func(TickUpdate)

	mu     sync.Mutex
	state  *TimerState
	cancel CancelFunc
	watch  StopWatch
}

type EngineOption func(*Engine)

// WithScheduler substitutes the scheduling primitive. Tests use this to crank
// ticks by hand.
func WithScheduler(s Scheduler) EngineOption { return func(e *Engine) { e.sched = s } }

// WithNotify registers an observer invoked after every tick has been rendered.
// The callback runs outside the engine lock but on the tick goroutine, so it
// must not block for long relative to the step.
func WithNotify(fn func(TickUpdate)) EngineOption { return func(e *Engine) { e.notify = fn } }

func NewEngine(cfg Config, targets display.Targets, opts ...EngineOption) *Engine {
	e := &Engine{
		cfg:     cfg,
		targets: targets,
		sched:   TickerScheduler{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start records the start timestamp, resets the state machine to Calm, and
// begins ticking every configured step. A later Start, after Stop or after
// completion, begins a fresh run.
func (e *Engine) Start() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancel != nil {
		return ErrAlreadyRunning
	}
	e.watch = StopWatch{StartedAt: now()}
	e.state = NewTimerState(e.cfg)
	e.cancel = e.sched.Every(e.cfg.Step, e.tick)
	return nil
}

// Stop records the stop timestamp and cancels the repeating tick. Calling it
// when not running is a no-op.
func (e *Engine) Stop() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopLocked()
}

// Watch returns the stopwatch of the current or most recent run.
func (e *Engine) Watch() StopWatch {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.watch
}

func (e *Engine) Running() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cancel != nil
}

// Level reports the current level, Calm before the first run.
func (e *Engine) Level() *Level {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.state == nil {
		return Calm
	}
	return e.state.Level
}

func (e *Engine) stopLocked() {
	if e.cancel == nil {
		return
	}
	e.cancel()
	e.cancel = nil
	e.watch.StoppedAt = now()
}

func (e *Engine) tick() {
	e.mu.Lock()
	if e.cancel == nil {
		// A tick already queued when Stop ran; drop it so no display
		// mutation happens after cancellation.
		e.mu.Unlock()
		return
	}
	up := e.state.Advance()
	render(e.targets, up)
	if up.Done {
		e.stopLocked()
	}
	notify := e.notify
	e.mu.Unlock()

	if notify != nil {
		notify(up)
	}
}

// render pushes one tick's worth of changes to the targets. Transition order
// is preserved: within a tick Warn may fire before Hurry, and GameOver always
// comes last.
func render(t display.Targets, up TickUpdate) {
	for _, tr := range up.Transitions {
		if tag := tr.From.StyleTag(); tag != "" {
			display.RemoveTag(t.Container, tag)
		}
		if tag := tr.To.StyleTag(); tag != "" {
			display.AddTag(t.Container, tag)
		}
		display.SetText(t.Text, tr.To.Message())
		if tr.To == GameOver {
			display.AddTag(t.Text, StressTag)
		}
	}
	if up.MinutesSet {
		display.SetText(t.Minutes, up.MinutesText)
	}
	display.SetText(t.Seconds, up.SecondsText)
}
