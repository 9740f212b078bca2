package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"scrumclock/internal/countdown"
	"scrumclock/internal/display"
	"scrumclock/internal/profiles"
	"scrumclock/internal/state"
	"scrumclock/internal/telemetry"
	"scrumclock/internal/ui"

	clog "github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// App wires the countdown engine, the meeting profile, the run store, and the
// terminal view into one session. It is the view's Controller: key presses
// arrive as OnStartTimer/OnStopTimer/OnQuit, and engine ticks flow back into
// the view as progress and status updates.
type App struct {
	cfg       Config
	sessionID string
	logger    *clog.Logger

	profile   profiles.Profile
	engineCfg countdown.Config

	events *telemetry.EventLog
	store  state.Store
	view   ui.View
	engine *countdown.Engine

	mu    sync.Mutex
	runID int64
}

type AppOption func(*App)

// WithView substitutes the terminal view. Tests use this to drive the app
// against a headless view.
func WithView(v ui.View) AppOption { return func(a *App) { a.view = v } }

// WithStore substitutes the run store.
func WithStore(s state.Store) AppOption { return func(a *App) { a.store = s } }

func New(cfg Config, opts ...AppOption) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}

	logger := clog.NewWithOptions(os.Stderr, clog.Options{Prefix: "scrumclock", Level: clog.WarnLevel})
	if cfg.Debug {
		logger.SetLevel(clog.DebugLevel)
	}

	a := &App{
		cfg:       cfg,
		sessionID: uuid.NewString(),
		logger:    logger,
	}
	for _, opt := range opts {
		opt(a)
	}

	events, err := telemetry.NewEventLog(cfg.EventLog)
	if err != nil {
		return nil, err
	}
	a.events = events

	if a.store == nil {
		store, err := state.NewSQLite(filepath.Join(cfg.DataDir, "state.db"))
		if err != nil {
			a.events.Close()
			return nil, err
		}
		a.store = store
	}
	ctx, cancel := dbCtx()
	err = a.store.EnsureSchema(ctx)
	cancel()
	if err != nil {
		a.closeQuietly()
		return nil, err
	}

	loaded, err := profiles.NewLoader().LoadDir(cfg.ProfileDir)
	if err != nil {
		a.closeQuietly()
		return nil, err
	}
	a.profile, err = profiles.NewLoader().Find(loaded, cfg.Profile)
	if err != nil {
		a.closeQuietly()
		return nil, err
	}

	engineOpts := a.profile.Options()
	if cfg.Countdown > 0 {
		engineOpts = append(engineOpts, countdown.WithCountdown(cfg.Countdown))
	}
	if cfg.Step > 0 {
		engineOpts = append(engineOpts, countdown.WithStep(cfg.Step))
	}
	if cfg.Threshold > 0 {
		engineOpts = append(engineOpts, countdown.WithThreshold(cfg.Threshold))
	}
	a.engineCfg = countdown.NewConfig(engineOpts...)

	if a.view == nil {
		a.view = ui.New(ui.Options{
			StyleVariant: cfg.UI.StyleVariant,
			MotionLevel:  cfg.UI.MotionLevel,
			Debug:        cfg.Debug,
		})
	}
	a.view.SetController(a)
	a.view.SetSession(ui.SessionState{
		Profile:   a.profile.Name,
		Team:      a.teamName(),
		Countdown: a.engineCfg.Countdown,
		Step:      a.engineCfg.Step,
		Threshold: a.engineCfg.Threshold,
	})
	a.view.SetAgenda(a.profile.AgendaMD)

	a.engine = countdown.NewEngine(a.engineCfg, a.view.Targets(), countdown.WithNotify(a.onTick))
	a.seedClock()
	a.refreshHistory()

	a.events.Event("session.start", map[string]any{
		"session_id":   a.sessionID,
		"profile":      a.profile.Name,
		"countdown_ms": a.engineCfg.Countdown.Milliseconds(),
		"step_ms":      a.engineCfg.Step.Milliseconds(),
		"threshold_ms": a.engineCfg.Threshold.Milliseconds(),
	})
	return a, nil
}

// Run blocks until the view exits.
func (a *App) Run() error {
	return a.view.Run()
}

func (a *App) Close() error {
	a.engine.Stop()
	a.finishRun(false)
	a.events.Event("session.end", map[string]any{"session_id": a.sessionID})
	return a.closeQuietly()
}

func (a *App) closeQuietly() error {
	var first error
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			first = err
		}
	}
	if a.events != nil {
		if err := a.events.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (a *App) OnStartTimer() {
	if err := a.engine.Start(); err != nil {
		a.view.FlashStatus("timer already running")
		return
	}
	a.resetSinks()
	watch := a.engine.Watch()

	ctx, cancel := dbCtx()
	runID, err := a.store.StartMeetingRun(ctx, state.MeetingRun{
		SessionID:   a.sessionID,
		Profile:     a.profile.Name,
		Team:        a.teamName(),
		StartTS:     watch.StartedAt,
		CountdownMS: a.engineCfg.Countdown.Milliseconds(),
		StepMS:      a.engineCfg.Step.Milliseconds(),
		ThresholdMS: a.engineCfg.Threshold.Milliseconds(),
	})
	cancel()
	if err != nil {
		a.logger.Warn("record run start", "err", err)
	}
	a.mu.Lock()
	a.runID = runID
	a.mu.Unlock()

	a.view.SetTimerRunning(true, watch.StartedAt)
	a.view.SetProgress(0)
	a.view.FlashStatus("timebox started")
	a.events.Event("run.start", map[string]any{
		"session_id": a.sessionID,
		"profile":    a.profile.Name,
	})
}

func (a *App) OnStopTimer() {
	if !a.engine.Running() {
		a.view.FlashStatus("timer is not running")
		return
	}
	a.engine.Stop()
	a.finishRun(false)
	a.view.SetTimerRunning(false, time.Time{})
	a.view.FlashStatus("timebox stopped")
	a.events.Event("run.stop", map[string]any{
		"session_id":  a.sessionID,
		"final_level": a.engine.Level().String(),
	})
	a.refreshHistory()
}

func (a *App) OnQuit() {
	a.engine.Stop()
	a.finishRun(false)
	a.view.Stop()
}

// onTick runs on the scheduler goroutine after each tick has been rendered.
func (a *App) onTick(up countdown.TickUpdate) {
	if total := a.engineCfg.Countdown; total > 0 {
		pct := 1 - float64(up.Remaining)/float64(total)
		a.view.SetProgress(pct)
	}
	for _, tr := range up.Transitions {
		a.events.Event("level.transition", map[string]any{
			"session_id": a.sessionID,
			"from":       tr.From.String(),
			"to":         tr.To.String(),
		})
	}
	if !up.Done {
		return
	}
	a.finishRun(true)
	a.view.SetTimerRunning(false, time.Time{})
	a.view.FlashStatus("time is up")
	a.events.Event("run.complete", map[string]any{
		"session_id": a.sessionID,
		"elapsed_ms": a.engine.Watch().Elapsed().Milliseconds(),
	})
	a.refreshHistory()
}

// finishRun records the outcome of the current run, if one is open. Completed
// and stopped runs both land here; whichever path gets there first wins.
func (a *App) finishRun(completed bool) {
	a.mu.Lock()
	runID := a.runID
	a.runID = 0
	a.mu.Unlock()
	if runID == 0 {
		return
	}

	watch := a.engine.Watch()
	ctx, cancel := dbCtx()
	defer cancel()
	err := a.store.FinishMeetingRun(ctx, runID, state.RunResult{
		StopTS:     watch.StoppedAt,
		Completed:  completed,
		FinalLevel: a.engine.Level().String(),
		ElapsedMS:  watch.Elapsed().Milliseconds(),
	})
	if err != nil {
		a.logger.Warn("record run finish", "err", err)
	}
}

// seedClock fills the clock face before the first tick so the view does not
// show placeholders while idle.
func (a *App) seedClock() {
	t := a.view.Targets()
	secs := int(a.engineCfg.Countdown % time.Minute / time.Second)
	display.SetText(t.Minutes, fmt.Sprintf("%02d", int(a.engineCfg.Minutes)))
	display.SetText(t.Seconds, fmt.Sprintf("%02d", secs))
}

// resetSinks clears the previous run's residue so a restart begins from a
// clean face.
func (a *App) resetSinks() {
	t := a.view.Targets()
	for _, lvl := range []*countdown.Level{countdown.Warn, countdown.Hurry, countdown.GameOver} {
		display.RemoveTag(t.Container, lvl.StyleTag())
	}
	display.RemoveTag(t.Text, countdown.StressTag)
	display.SetText(t.Text, "")
	a.seedClock()
}

func (a *App) refreshHistory() {
	ctx, cancel := dbCtx()
	defer cancel()
	sum, err := a.store.GetSummary(ctx)
	if err != nil {
		a.logger.Warn("load run summary", "err", err)
		return
	}
	if sum.Runs == 0 {
		a.view.SetHistoryLine("")
		return
	}
	line := fmt.Sprintf("runs %d · completed %d · stopped %d", sum.Runs, sum.Completed, sum.Stopped)
	if last, err := a.store.GetLastRun(ctx); err == nil && last != nil {
		line += fmt.Sprintf(" · last %s (%s)", last.Profile, last.FinalLevel)
	}
	a.view.SetHistoryLine(line)
}

func (a *App) teamName() string {
	if a.cfg.Team != "" {
		return a.cfg.Team
	}
	return a.profile.Team
}

func dbCtx() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), 5*time.Second)
}

var _ ui.Controller = (*App)(nil)
