package ui

import (
	"fmt"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"scrumclock/internal/display"

	"charm.land/bubbles/v2/help"
	"charm.land/bubbles/v2/key"
	"charm.land/bubbles/v2/progress"
	tea "charm.land/bubbletea/v2"
	lipgloss "charm.land/lipgloss/v2"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/harmonica"
	clog "github.com/charmbracelet/log"
)

type applyMsg struct {
	fn func(*Root)
}

type drawMsg struct{}
type clockMsg time.Time
type animateMsg time.Time

type timerKeyMap struct {
	Start  key.Binding
	Stop   key.Binding
	Agenda key.Binding
	Quit   key.Binding
}

func (k timerKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Start, k.Stop, k.Agenda, k.Quit}
}

func (k timerKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Start, k.Stop}, {k.Agenda, k.Quit}}
}

// Root is the terminal view. The countdown engine never talks to it directly:
// it mutates the memory sinks returned by Targets, and every sink mutation
// requests a coalesced redraw.
type Root struct {
	theme        Theme
	styleVariant string
	logger       *clog.Logger
	ctrl         Controller

	mu      sync.Mutex
	program *tea.Program
	running bool

	cols   int
	rows   int
	layout LayoutMode

	container *display.MemorySink
	minutes   *display.MemorySink
	seconds   *display.MemorySink
	millis    *display.MemorySink
	text      *display.MemorySink

	session      SessionState
	timerRunning bool
	startedAt    time.Time
	progressPct  float64
	statusFlash  string
	historyLine  string

	agendaOpen     bool
	agendaMD       string
	agendaRendered string
	markdown       *glamour.TermRenderer

	help   help.Model
	keymap timerKeyMap
	bar    progress.Model

	spring    harmonica.Spring
	bannerPos float64
	bannerVel float64

	drawPending atomic.Bool
}

type Options struct {
	StyleVariant string
	MotionLevel  string
	Debug        bool
}

func New(opts Options) *Root {
	logger := clog.NewWithOptions(os.Stderr, clog.Options{Prefix: "scrumclock-ui", Level: clog.WarnLevel})
	if opts.Debug {
		logger.SetLevel(clog.DebugLevel)
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithStandardStyle("dark"),
		glamour.WithWordWrap(64),
	)
	if err != nil {
		renderer = nil
	}

	h := help.New()
	h.Styles = help.DefaultDarkStyles()

	spring := harmonica.NewSpring(harmonica.FPS(60), 8.0, 0.7)
	if opts.MotionLevel == "off" {
		spring = harmonica.NewSpring(harmonica.FPS(60), 1000.0, 1.0)
	}

	bar := progress.New(
		progress.WithWidth(40),
		progress.WithColors(lipgloss.Color("#6FE8A9"), lipgloss.Color("#FFC857"), lipgloss.Color("#FF6F6F")),
		progress.WithScaled(true),
	)

	r := &Root{
		theme:        ThemeForVariant(opts.StyleVariant),
		styleVariant: opts.StyleVariant,
		logger:       logger,
		cols:         100,
		rows:         28,
		layout:       LayoutWide,
		container:    display.NewMemorySink(),
		minutes:      display.NewMemorySink(),
		seconds:      display.NewMemorySink(),
		millis:       display.NewMemorySink(),
		text:         display.NewMemorySink(),
		help:         h,
		bar:          bar,
		markdown:     renderer,
		spring:       spring,
	}
	for _, s := range []*display.MemorySink{r.container, r.minutes, r.seconds, r.millis, r.text} {
		s.OnChange(r.RequestDraw)
	}
	r.keymap = timerKeyMap{
		Start:  key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "Start")),
		Stop:   key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "Stop")),
		Agenda: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "Agenda")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "Quit")),
	}
	return r
}

// Targets exposes the view's sinks for the engine. The container carries the
// level style tags; minutes/seconds/text carry the clock and message.
func (r *Root) Targets() display.Targets {
	return display.Targets{
		Container:    r.container,
		Minutes:      r.minutes,
		Seconds:      r.seconds,
		Milliseconds: r.millis,
		Text:         r.text,
	}
}

func (r *Root) Init() tea.Cmd {
	return tea.Batch(clockTickCmd(), animateTickCmd())
}

func (r *Root) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.cols = msg.Width
		r.rows = msg.Height
		r.layout = DetermineLayoutMode(r.cols, r.rows)
		return r, nil
	case applyMsg:
		if msg.fn != nil {
			msg.fn(r)
		}
		return r, r.animateIfNeeded()
	case drawMsg:
		r.drawPending.Store(false)
		return r, nil
	case clockMsg:
		return r, clockTickCmd()
	case animateMsg:
		target := r.bannerTarget()
		r.bannerPos, r.bannerVel = r.spring.Update(r.bannerPos, r.bannerVel, target)
		if r.shouldAnimate(target) {
			return r, animateTickCmd()
		}
		r.bannerPos = target
		r.bannerVel = 0
		return r, nil
	case tea.KeyPressMsg:
		return r.handleKey(msg)
	}
	return r, nil
}

func (r *Root) handleKey(msg tea.KeyPressMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, r.keymap.Quit):
		if r.ctrl != nil {
			r.ctrl.OnQuit()
		}
		return r, nil
	case key.Matches(msg, r.keymap.Agenda):
		r.agendaOpen = !r.agendaOpen
		return r, nil
	case key.Matches(msg, r.keymap.Start):
		if r.agendaOpen {
			return r, nil
		}
		if r.ctrl != nil {
			r.ctrl.OnStartTimer()
		}
		return r, r.animateIfNeeded()
	case key.Matches(msg, r.keymap.Stop):
		if r.agendaOpen {
			return r, nil
		}
		if r.ctrl != nil {
			r.ctrl.OnStopTimer()
		}
		return r, nil
	case msg.Code == tea.KeyEsc:
		r.agendaOpen = false
		return r, nil
	}
	return r, nil
}

func (r *Root) View() tea.View {
	if r.cols < 1 {
		r.cols = 100
	}
	if r.rows < 1 {
		r.rows = 28
	}

	var base string
	if r.layout == LayoutTooSmall {
		base = r.renderTooSmall()
	} else {
		base = r.renderTimer()
	}

	if r.agendaOpen {
		base = composeOverlay(base, r.renderAgenda(), r.cols, r.rows)
	} else if r.bannerVisible() {
		row := bannerRow(r.bannerPos, r.rows)
		base = composeOverlayAt(base, r.renderBanner(), r.cols, r.rows, row)
	}

	v := tea.NewView(base)
	v.AltScreen = true
	return v
}

func (r *Root) renderTooSmall() string {
	msg := fmt.Sprintf("Terminal too small (%dx%d). Need at least 60x16.", r.cols, r.rows)
	return r.theme.Muted.Render(trimForWidth(msg, r.cols))
}

func (r *Root) renderTimer() string {
	header := r.renderHeader()
	clock := r.renderClock()
	message := r.renderMessage()
	bar := r.renderProgress()
	status := r.renderStatus()
	helpBar := r.help.View(r.keymap)

	body := lipgloss.JoinVertical(lipgloss.Center, clock, "", message, "", bar)
	bodyHeight := r.rows - 4
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	centered := lipgloss.Place(r.cols, bodyHeight, lipgloss.Center, lipgloss.Center, body)

	return strings.Join([]string{header, centered, status, helpBar}, "\n")
}

func (r *Root) renderHeader() string {
	title := "scrumclock"
	meta := r.session.Profile
	if r.session.Team != "" {
		meta = fmt.Sprintf("%s · %s", r.session.Profile, r.session.Team)
	}
	line := fmt.Sprintf("%s — %s", title, meta)
	return r.theme.Header.Width(r.cols).Render(trimForWidth(line, r.cols-2))
}

func (r *Root) renderClock() string {
	minText := r.minutes.Text()
	secText := r.seconds.Text()
	if minText == "" {
		minText = "--"
	}
	if secText == "" {
		secText = "--"
	}
	face := fmt.Sprintf("%s : %s", minText, secText)
	style := r.theme.clockStyleForTags(r.container.Tags())
	return r.theme.ClockFrame.Render(style.Render("  " + face + "  "))
}

func (r *Root) renderMessage() string {
	msg := r.text.Text()
	if msg == "" {
		return r.theme.Muted.Render("press s to start the timebox")
	}
	subject := r.session.Team
	if subject == "" {
		subject = "Scrum"
	}
	line := subject + " " + msg
	if r.text.HasTag("stress") {
		return r.theme.Stress.Render(" " + line + " ")
	}
	return r.theme.messageStyleForTags(r.container.Tags()).Render(line)
}

func (r *Root) renderProgress() string {
	width := r.cols / 2
	if width < 16 {
		width = 16
	}
	m := r.bar
	m.SetWidth(width)
	return m.ViewAs(r.progressPct)
}

func (r *Root) renderStatus() string {
	var parts []string
	if r.timerRunning {
		parts = append(parts, fmt.Sprintf("RUNNING %s", formatElapsed(time.Since(r.startedAt))))
	} else {
		parts = append(parts, "IDLE")
	}
	if r.statusFlash != "" {
		parts = append(parts, r.statusFlash)
	}
	if r.historyLine != "" {
		parts = append(parts, r.historyLine)
	}
	return r.theme.Status.Width(r.cols).Render(trimForWidth(strings.Join(parts, "  ·  "), r.cols-2))
}

func (r *Root) renderAgenda() string {
	body := r.agendaRendered
	if body == "" {
		body = r.agendaMD
	}
	if strings.TrimSpace(body) == "" {
		body = "No agenda configured."
	}
	title := r.theme.OverlayTitle.Render("Agenda")
	return r.theme.Overlay.Render(title + "\n\n" + strings.TrimRight(body, "\n"))
}

func (r *Root) renderBanner() string {
	title := r.theme.OverlayTitle.Render(r.text.Text())
	sub := r.theme.Muted.Render("timebox exhausted — press s for another round")
	return r.theme.Overlay.Render(title + "\n" + sub)
}

func (r *Root) bannerVisible() bool {
	return r.container.HasTag("all-ends")
}

func (r *Root) bannerTarget() float64 {
	if r.bannerVisible() && !r.agendaOpen {
		return 1.0
	}
	return 0.0
}

// bannerRow maps the spring position to a drop-in row: the banner slides from
// the top of the screen into the vertical center.
func bannerRow(pos float64, rows int) int {
	center := rows/2 - 3
	if center < 0 {
		center = 0
	}
	row := int(pos * float64(center))
	if row > center {
		row = center
	}
	if row < 0 {
		row = 0
	}
	return row
}

func (r *Root) animateIfNeeded() tea.Cmd {
	if r.shouldAnimate(r.bannerTarget()) {
		return animateTickCmd()
	}
	return nil
}

func (r *Root) shouldAnimate(target float64) bool {
	diff := r.bannerPos - target
	if diff < 0 {
		diff = -diff
	}
	return diff > 0.001 || r.bannerVel > 0.001 || r.bannerVel < -0.001
}

func (r *Root) Run() error {
	r.mu.Lock()
	if r.running {
		r.mu.Unlock()
		return nil
	}
	p := tea.NewProgram(r)
	r.program = p
	r.running = true
	r.mu.Unlock()

	_, err := p.Run()

	r.mu.Lock()
	r.program = nil
	r.running = false
	r.mu.Unlock()
	return err
}

func (r *Root) Stop() {
	r.mu.Lock()
	p := r.program
	r.mu.Unlock()
	if p != nil {
		p.Quit()
	}
}

func (r *Root) SetController(c Controller) {
	r.ctrl = c
}

func (r *Root) SetSession(s SessionState) {
	r.apply(func(m *Root) {
		m.session = s
	})
}

func (r *Root) SetTimerRunning(running bool, startedAt time.Time) {
	r.apply(func(m *Root) {
		m.timerRunning = running
		m.startedAt = startedAt
	})
}

func (r *Root) SetProgress(pct float64) {
	if pct < 0 {
		pct = 0
	}
	if pct > 1 {
		pct = 1
	}
	r.apply(func(m *Root) {
		m.progressPct = pct
	})
}

func (r *Root) SetAgenda(markdown string) {
	rendered := ""
	if r.markdown != nil && strings.TrimSpace(markdown) != "" {
		if out, err := r.markdown.Render(markdown); err == nil {
			rendered = out
		}
	}
	r.apply(func(m *Root) {
		m.agendaMD = markdown
		m.agendaRendered = rendered
	})
}

func (r *Root) SetHistoryLine(line string) {
	r.apply(func(m *Root) {
		m.historyLine = line
	})
}

func (r *Root) FlashStatus(msg string) {
	r.apply(func(m *Root) {
		m.statusFlash = msg
	})
}

// RequestDraw coalesces redraw requests from sink mutations into at most one
// frame per 16ms.
func (r *Root) RequestDraw() {
	r.mu.Lock()
	p := r.program
	running := r.running
	r.mu.Unlock()
	if !running || p == nil {
		return
	}
	if !r.drawPending.CompareAndSwap(false, true) {
		return
	}
	time.AfterFunc(16*time.Millisecond, func() {
		r.mu.Lock()
		p := r.program
		running := r.running
		r.mu.Unlock()
		if !running || p == nil {
			r.drawPending.Store(false)
			return
		}
		p.Send(drawMsg{})
	})
}

func (r *Root) apply(fn func(*Root)) {
	if fn == nil {
		return
	}
	r.mu.Lock()
	p := r.program
	running := r.running
	if !running || p == nil {
		fn(r)
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()
	p.Send(applyMsg{fn: fn})
}

func clockTickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg { return clockMsg(t) })
}

func animateTickCmd() tea.Cmd {
	return tea.Tick(time.Second/60, func(t time.Time) tea.Msg { return animateMsg(t) })
}

func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	d = d.Round(time.Second)
	m := int(d / time.Minute)
	s := int(d/time.Second) % 60
	return fmt.Sprintf("%02d:%02d", m, s)
}

var _ View = (*Root)(nil)
