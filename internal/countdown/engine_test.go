package countdown

import (
	"testing"
	"time"

	"scrumclock/internal/display"
)

// manualScheduler hands tick control to the test.
type manualScheduler struct {
	interval time.Duration
	fn       func()
	canceled bool
}

func (m *manualScheduler) Every(d time.Duration, tick func()) CancelFunc {
	m.interval = d
	m.fn = tick
	return func() {
		m.canceled = true
		m.fn = nil
	}
}

// Tick cranks one scheduled callback, mirroring one ticker firing. After
// cancellation it does nothing, like a stopped ticker.
func (m *manualScheduler) Tick() {
	if m.fn != nil {
		m.fn()
	}
}

func newTestEngine(t *testing.T, cfg Config, opts ...EngineOption) (*Engine, *manualScheduler, *display.MemoryDocument) {
	t.Helper()
	doc := display.NewMemoryDocument()
	sched := &manualScheduler{}
	opts = append(opts, WithScheduler(sched))
	eng := NewEngine(cfg, display.Resolve(doc, display.Targets{}), opts...)
	return eng, sched, doc
}

func TestEngineStartSchedulesStep(t *testing.T) {
	eng, sched, _ := newTestEngine(t, NewConfig(WithStep(250*time.Millisecond)))
	if err := eng.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if sched.interval != 250*time.Millisecond {
		t.Fatalf("scheduled interval %v, want 250ms", sched.interval)
	}
	if !eng.Running() {
		t.Fatalf("engine should report running after start")
	}
}

func TestEngineDoubleStartRejected(t *testing.T) {
	eng, _, _ := newTestEngine(t, NewConfig())
	if err := eng.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	if err := eng.Start(); err != ErrAlreadyRunning {
		t.Fatalf("second start returned %v, want ErrAlreadyRunning", err)
	}
}

func TestEngineTickWritesSinks(t *testing.T) {
	eng, sched, doc := newTestEngine(t, NewConfig())
	if err := eng.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	sched.Tick()

	if got := doc.Sink(display.NameMinutes).Text(); got != "14" {
		t.Fatalf("minutes sink = %q, want 14", got)
	}
	if got := doc.Sink(display.NameSeconds).Text(); got != "59" {
		t.Fatalf("seconds sink = %q, want 59", got)
	}
	if got := doc.Sink(display.NameMilliseconds).Text(); got != "" {
		t.Fatalf("milliseconds sink written: %q", got)
	}
	if tags := doc.BodySink().Tags(); len(tags) != 0 {
		t.Fatalf("container tagged while calm: %v", tags)
	}
}

func TestEngineWarnTransitionStyling(t *testing.T) {
	eng, sched, doc := newTestEngine(t, NewConfig(
		WithCountdown(5*time.Second),
		WithThreshold(3*time.Second),
	))
	if err := eng.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	sched.Tick() // 5s remaining, calm
	sched.Tick() // 4s remaining, calm
	if doc.BodySink().HasTag("warn-ya") {
		t.Fatalf("warn tag applied before threshold")
	}
	sched.Tick() // 3s remaining, warn fires
	if !doc.BodySink().HasTag("warn-ya") {
		t.Fatalf("warn tag missing at threshold")
	}
	if got := doc.Sink(display.NameDescription).Text(); got != "is running out of time!" {
		t.Fatalf("text sink = %q", got)
	}
}

func TestEngineCompletion(t *testing.T) {
	eng, sched, doc := newTestEngine(t, NewConfig(WithCountdown(3*time.Second)))
	if err := eng.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	for i := 0; i < 3; i++ {
		sched.Tick()
	}

	if eng.Running() {
		t.Fatalf("engine still running after completion")
	}
	if !sched.canceled {
		t.Fatalf("schedule not cancelled on completion")
	}
	if eng.Level() != GameOver {
		t.Fatalf("final level %s, want game_over", eng.Level())
	}

	body := doc.BodySink()
	if tags := body.Tags(); len(tags) != 1 || tags[0] != "all-ends" {
		t.Fatalf("container tags = %v, want exactly [all-ends]", tags)
	}
	text := doc.Sink(display.NameDescription)
	if text.Text() != "G.A.M.E. O.V.E.R.!" {
		t.Fatalf("text sink = %q", text.Text())
	}
	if !text.HasTag("stress") {
		t.Fatalf("text sink missing stress tag")
	}

	// A stray tick queued behind the cancellation must not mutate anything.
	seconds := doc.Sink(display.NameSeconds).Text()
	sched.Tick()
	if doc.Sink(display.NameSeconds).Text() != seconds {
		t.Fatalf("display mutated after completion")
	}
	if w := eng.Watch(); w.StoppedAt.IsZero() {
		t.Fatalf("stopwatch not stopped on completion")
	}
}

func TestEngineStopBeforeCompletion(t *testing.T) {
	eng, sched, doc := newTestEngine(t, NewConfig())
	if err := eng.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	sched.Tick()
	eng.Stop()

	if !sched.canceled {
		t.Fatalf("stop did not cancel the schedule")
	}
	if w := eng.Watch(); w.StoppedAt.IsZero() {
		t.Fatalf("stop did not record a timestamp")
	}

	before := doc.Sink(display.NameSeconds).Text()
	sched.Tick()
	if doc.Sink(display.NameSeconds).Text() != before {
		t.Fatalf("display mutated after stop")
	}

	// Stopping again is a no-op.
	w := eng.Watch()
	eng.Stop()
	if eng.Watch() != w {
		t.Fatalf("second stop changed the stopwatch")
	}
}

func TestEngineStopWhenNeverStarted(t *testing.T) {
	eng, _, _ := newTestEngine(t, NewConfig())
	eng.Stop()
	if w := eng.Watch(); !w.StartedAt.IsZero() || !w.StoppedAt.IsZero() {
		t.Fatalf("stop on idle engine recorded timestamps: %+v", w)
	}
}

func TestEngineRestartAfterStop(t *testing.T) {
	eng, sched, doc := newTestEngine(t, NewConfig(WithCountdown(10*time.Second)))
	if err := eng.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	sched.Tick()
	sched.Tick()
	eng.Stop()

	if err := eng.Start(); err != nil {
		t.Fatalf("restart: %v", err)
	}
	sched.Tick()
	// Fresh TimerState: the first tick of the new run sees the full countdown.
	if got := doc.Sink(display.NameSeconds).Text(); got != "09" {
		t.Fatalf("seconds after restart = %q, want 09", got)
	}
}

func TestEngineNotifyObservesTransitions(t *testing.T) {
	var updates []TickUpdate
	eng, sched, _ := newTestEngine(t, NewConfig(WithCountdown(2*time.Second), WithThreshold(2*time.Second)))
	eng.notify = func(up TickUpdate) { updates = append(updates, up) }
	if err := eng.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	sched.Tick()
	sched.Tick()

	if len(updates) != 2 {
		t.Fatalf("expected 2 updates, got %d", len(updates))
	}
	if len(updates[0].Transitions) == 0 || updates[0].Transitions[0].To != Warn {
		t.Fatalf("first update should carry the warn transition: %+v", updates[0])
	}
	last := updates[len(updates)-1]
	if !last.Done || last.Remaining != 0 {
		t.Fatalf("final update not terminal: %+v", last)
	}
}

func TestEngineStopWatchUsesClock(t *testing.T) {
	base := time.Date(2026, time.March, 9, 10, 0, 0, 0, time.UTC)
	current := base
	orig := now
	now = func() time.Time { return current }
	defer func() { now = orig }()

	eng, sched, _ := newTestEngine(t, NewConfig())
	if err := eng.Start(); err != nil {
		t.Fatalf("start: %v", err)
	}
	current = base.Add(3 * time.Minute)
	sched.Tick()
	eng.Stop()

	w := eng.Watch()
	if !w.StartedAt.Equal(base) {
		t.Fatalf("start timestamp %v, want %v", w.StartedAt, base)
	}
	if w.Elapsed() != 3*time.Minute {
		t.Fatalf("elapsed %v, want 3m", w.Elapsed())
	}
}
