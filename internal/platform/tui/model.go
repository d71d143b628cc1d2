package tui

import (
	"io"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/render"
	"github.com/vovakirdan/lane-runner/internal/runner"
	"github.com/vovakirdan/lane-runner/internal/storage"
)

// Options configure a Model.
type Options struct {
	Store     *storage.Store     // Optional; finished runs are saved here
	Runtime   core.RuntimeConfig // Screen size, frame rate and seed
	Player    string             // Recorded with each run; "local" when empty
	Character string             // Optional; skips the selection screen
	Logger    *log.Logger        // Optional; must not write to the terminal
}

// inbox collects notifications raised during one simulation step.
type inbox struct {
	pending []runner.Notification
}

func (b *inbox) Notify(n runner.Notification) {
	b.pending = append(b.pending, n)
}

type notice struct {
	n   runner.Notification
	seq uint64
}

type point struct{ x, y int }

// swipeThreshold is the drag distance, in cells, that counts as a swipe.
const swipeThreshold = 2

var helpStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

// Model is the Bubble Tea model for one lane runner session: character
// selection, the run itself and the result screens.
type Model struct {
	sim      *runner.Sim
	opts     Options
	screen   *core.Screen
	keys     KeyMap
	help     help.Model
	log      *log.Logger
	inbox    *inbox
	draw     render.Options
	themes   []config.Theme
	kinds    int
	cursor   int
	input    core.InputFrame
	drag     *point
	quitting bool

	// gen tags the frame and coarse tick chains. Bumping it orphans the
	// messages already in flight.
	gen       uint64
	tick      int
	paused    bool
	pausedAt  time.Time
	pausedFor time.Duration

	notice    *notice
	noticeSeq uint64
	summary   *runner.Summary
	saved     bool
}

// NewModel creates a model with a fresh simulation in the selection state.
func NewModel(cfg config.RunnerConfig, catalog config.Catalog, opts Options, simOpts ...runner.Option) Model {
	if opts.Runtime.TickRate <= 0 {
		opts.Runtime.TickRate = 60
	}
	if opts.Runtime.ScreenW <= 0 || opts.Runtime.ScreenH <= 0 {
		def := core.DefaultConfig()
		opts.Runtime.ScreenW, opts.Runtime.ScreenH = def.ScreenW, def.ScreenH
	}
	if opts.Player == "" {
		opts.Player = "local"
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}

	box := &inbox{}
	base := []runner.Option{runner.WithLogger(opts.Logger), runner.WithNotificationSink(box)}
	if opts.Runtime.Seed != 0 {
		base = append(base, runner.WithSeed(opts.Runtime.Seed))
	}
	sim := runner.New(cfg, catalog, append(base, simOpts...)...)

	h := help.New()
	h.Width = opts.Runtime.ScreenW

	m := Model{
		sim:    sim,
		opts:   opts,
		screen: core.NewScreen(opts.Runtime.ScreenW, opts.Runtime.ScreenH-1),
		keys:   DefaultKeyMap(),
		help:   h,
		log:    opts.Logger,
		inbox:  box,
		draw:   render.Options{LaneWidth: cfg.Lanes.Width, MaxDepth: cfg.Spawn.FinishDepth},
		themes: catalog.Themes,
		kinds:  len(catalog.Categories),
		input:  core.NewInputFrame(),
	}

	if opts.Character != "" {
		if err := sim.SelectCharacter(opts.Character, time.Now()); err != nil {
			m.log.Warn("cannot start with character", "character", opts.Character, "error", err)
		}
	}
	return m
}

// Init starts the loops when the run was started from the command line.
func (m Model) Init() tea.Cmd {
	if m.sim.State() == runner.StatePlaying {
		return m.loops()
	}
	return nil
}

// State returns the state of the underlying run.
func (m Model) State() runner.RunState {
	return m.sim.State()
}

// Paused reports whether the loops are frozen by the player.
func (m Model) Paused() bool {
	return m.paused
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		var cmd tea.Cmd
		if m.sim.State() == runner.StateSelect {
			cmd = m.handleMenuKey(msg)
		} else {
			cmd = m.handleGameKey(msg)
		}
		return m, cmd

	case tea.MouseMsg:
		m.handleMouse(msg)
		return m, nil

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, max(msg.Height-1, 1))
		m.help.Width = msg.Width
		return m, nil

	case FrameMsg:
		cmd := m.handleFrame(msg)
		return m, cmd

	case CoarseMsg:
		cmd := m.handleCoarse(msg)
		return m, cmd

	case noticeExpiredMsg:
		if m.notice != nil && m.notice.seq == msg.seq {
			m.notice = nil
		}
		return m, nil
	}
	return m, nil
}

// now maps a wall clock reading onto the run clock, which stands still
// while paused.
func (m Model) now(t time.Time) time.Time {
	return t.Add(-m.pausedFor)
}

func (m *Model) loops() tea.Cmd {
	return tea.Batch(
		frameCmd(m.gen, m.opts.Runtime.TickRate),
		coarseCmd(m.gen, m.sim.Config().Track.CoarseTick),
	)
}

// restartLoops starts a new generation of both tick chains.
func (m *Model) restartLoops() tea.Cmd {
	m.gen++
	return m.loops()
}

func (m *Model) handleMenuKey(msg tea.KeyMsg) tea.Cmd {
	n := len(m.themes)
	switch m.keys.MenuAction(msg) {
	case core.ActionQuit:
		m.quitting = true
		return tea.Quit
	case core.ActionUp:
		if n > 0 {
			m.cursor = (m.cursor - 1 + n) % n
		}
	case core.ActionDown:
		if n > 0 {
			m.cursor = (m.cursor + 1) % n
		}
	case core.ActionConfirm:
		if n == 0 {
			return nil
		}
		id := m.themes[m.cursor].ID
		if err := m.sim.SelectCharacter(id, m.now(time.Now())); err != nil {
			m.log.Warn("cannot select character", "character", id, "error", err)
			return nil
		}
		m.clearRun()
		return m.restartLoops()
	}
	return nil
}

func (m *Model) handleGameKey(msg tea.KeyMsg) tea.Cmd {
	now := m.now(time.Now())
	switch a := m.keys.GameAction(msg); a {
	case core.ActionNone:
	case core.ActionQuit:
		m.quitting = true
		return tea.Quit

	case core.ActionPause:
		return m.togglePause()

	case core.ActionRestart:
		if !m.sim.State().Ended() {
			return nil
		}
		if err := m.sim.Restart(now); err != nil {
			m.log.Warn("cannot restart", "error", err)
			return nil
		}
		m.clearRun()
		return m.restartLoops()

	case core.ActionBack:
		if m.sim.State() == runner.StatePlaying && !m.paused {
			return nil
		}
		m.sim.ReturnToMenu(now)
		m.clearRun()
		m.gen++

	default:
		if !m.paused && m.sim.State() == runner.StatePlaying {
			m.input.Set(a)
		}
	}
	return nil
}

// handleMouse turns a left-button drag into a swipe gesture.
func (m *Model) handleMouse(msg tea.MouseMsg) {
	if m.paused || m.sim.State() != runner.StatePlaying {
		m.drag = nil
		return
	}
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft {
			m.drag = &point{x: msg.X, y: msg.Y}
		}
	case tea.MouseActionRelease:
		if m.drag == nil {
			return
		}
		// Terminal cells are about twice as tall as they are wide.
		dx := float64(msg.X - m.drag.x)
		dy := float64(msg.Y-m.drag.y) * 2
		m.drag = nil
		m.input.Set(core.Swipe(dx, dy, swipeThreshold))
	}
}

func (m *Model) togglePause() tea.Cmd {
	if m.sim.State() != runner.StatePlaying {
		return nil
	}
	if !m.paused {
		m.paused = true
		m.pausedAt = time.Now()
		m.input.Clear()
		m.gen++
		return nil
	}
	m.resume()
	return m.restartLoops()
}

func (m *Model) resume() {
	if m.paused {
		m.pausedFor += time.Since(m.pausedAt)
		m.paused = false
	}
}

// clearRun drops presentation state left over from the previous run.
func (m *Model) clearRun() {
	m.resume()
	m.input.Clear()
	m.drag = nil
	m.notice = nil
	m.inbox.pending = m.inbox.pending[:0]
	m.summary = nil
	m.saved = false
	m.tick = 0
}

func (m *Model) handleFrame(msg FrameMsg) tea.Cmd {
	if msg.Gen != m.gen {
		return nil
	}
	if st := m.sim.State(); st != runner.StatePlaying && st != runner.StateExploding {
		return nil
	}

	now := m.now(msg.At)
	for _, a := range m.input.Actions() {
		m.sim.Apply(a, now)
	}
	m.input.Clear()
	m.sim.Frame(now)
	m.tick++
	cmd := m.takeNotice()

	if m.sim.State().Ended() {
		m.finishRun()
		return cmd
	}
	return tea.Batch(cmd, frameCmd(m.gen, m.opts.Runtime.TickRate))
}

func (m *Model) handleCoarse(msg CoarseMsg) tea.Cmd {
	if msg.Gen != m.gen || m.sim.State() != runner.StatePlaying {
		return nil
	}

	m.sim.Tick(m.now(msg.At))

	if m.sim.State().Ended() {
		m.finishRun()
		return nil
	}
	return coarseCmd(m.gen, m.sim.Config().Track.CoarseTick)
}

// takeNotice shows the latest pending notification and schedules its expiry.
func (m *Model) takeNotice() tea.Cmd {
	if len(m.inbox.pending) == 0 {
		return nil
	}
	n := m.inbox.pending[len(m.inbox.pending)-1]
	m.inbox.pending = m.inbox.pending[:0]

	m.noticeSeq++
	m.notice = &notice{n: n, seq: m.noticeSeq}
	return noticeCmd(m.noticeSeq, m.sim.Config().Timing.NotificationDuration)
}

// finishRun captures the summary and saves the run exactly once.
func (m *Model) finishRun() {
	if m.saved {
		return
	}
	m.saved = true
	m.notice = nil

	sum := m.sim.Summary()
	m.summary = &sum
	m.log.Info("run ended",
		"player", m.opts.Player,
		"character", sum.Theme,
		"outcome", sum.Outcome,
		"score", sum.Score,
		"distance", int(sum.Distance),
	)

	if m.opts.Store == nil {
		return
	}
	if _, err := m.opts.Store.SaveRun(storage.RecordFromSummary(sum, m.opts.Player)); err != nil {
		m.log.Error("could not save run", "error", err)
	}
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if err := render.Safe(m.paint); err != nil {
		m.log.Error("render failed", "state", m.sim.State(), "error", err)
		m.screen.Clear()
		render.Message(m.screen, "Render error", "M menu  Q quit")
	}
	return RenderScreen(m.screen) + "\n" + helpStyle.Render(m.help.View(m.keys))
}

func (m Model) paint() {
	st := m.sim.State()
	switch {
	case st == runner.StateSelect:
		render.Select(m.screen, m.themes, m.cursor)

	case st.Ended() && m.summary != nil:
		title := "GAME OVER"
		if st == runner.StateWin {
			title = "YOU MADE IT!"
		}
		render.Summary(m.screen, title, *m.summary, m.kinds)

	default:
		opts := m.draw
		opts.Tick = m.tick
		render.Frame(m.screen, m.sim.Snapshot(), opts)
		if m.notice != nil {
			render.Notification(m.screen, m.notice.n)
		}
		if m.paused {
			render.Paused(m.screen)
		}
	}
}

// Run starts the Bubble Tea program and blocks until the player quits.
func Run(cfg config.RunnerConfig, catalog config.Catalog, opts Options, simOpts ...runner.Option) error {
	p := tea.NewProgram(
		NewModel(cfg, catalog, opts, simOpts...),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := p.Run()
	return err
}
