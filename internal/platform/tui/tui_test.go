package tui

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/runner"
	"github.com/vovakirdan/lane-runner/internal/storage"
)

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func TestGameAction(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		key  string
		want core.Action
	}{
		{"left", core.ActionLeft},
		{"a", core.ActionLeft},
		{"right", core.ActionRight},
		{"d", core.ActionRight},
		{"up", core.ActionJump},
		{"w", core.ActionJump},
		{" ", core.ActionJump},
		{"down", core.ActionDuck},
		{"s", core.ActionDuck},
		{"p", core.ActionPause},
		{"esc", core.ActionPause},
		{"r", core.ActionRestart},
		{"m", core.ActionBack},
		{"q", core.ActionQuit},
		{"ctrl+c", core.ActionQuit},
		{"x", core.ActionNone},
	}
	for _, tt := range tests {
		if got := keys.GameAction(keyMsg(tt.key)); got != tt.want {
			t.Errorf("GameAction(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestMenuAction(t *testing.T) {
	keys := DefaultKeyMap()
	tests := []struct {
		key  string
		want core.Action
	}{
		{"up", core.ActionUp},
		{"k", core.ActionUp},
		{"left", core.ActionUp},
		{"down", core.ActionDown},
		{"j", core.ActionDown},
		{"enter", core.ActionConfirm},
		{" ", core.ActionConfirm},
		{"q", core.ActionQuit},
		{"r", core.ActionNone},
	}
	for _, tt := range tests {
		if got := keys.MenuAction(keyMsg(tt.key)); got != tt.want {
			t.Errorf("MenuAction(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

// quietCatalog has one character, no obstacles and no pickups, so a run
// can only end by reaching the finish.
func quietCatalog() config.Catalog {
	return config.Catalog{Themes: []config.Theme{
		{ID: "office", Name: "Office"},
		{ID: "factory", Name: "Factory"},
	}}
}

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	opts.Runtime = core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: 7}
	return NewModel(config.DefaultRunnerConfig(), quietCatalog(), opts)
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return model, cmd
}

func TestModelSelectStartsRun(t *testing.T) {
	m := newTestModel(t, Options{})
	if m.State() != runner.StateSelect {
		t.Fatalf("initial state = %v, want Select", m.State())
	}
	if m.Init() != nil {
		t.Error("Init should not start loops on the selection screen")
	}
	if !strings.Contains(m.View(), "LANE RUNNER") {
		t.Error("selection screen should show the title")
	}

	m, _ = send(t, m, keyMsg("down"))
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor)
	}
	m, _ = send(t, m, keyMsg("down"))
	if m.cursor != 0 {
		t.Errorf("cursor should wrap to 0, got %d", m.cursor)
	}

	m, cmd := send(t, m, keyMsg("enter"))
	if m.State() != runner.StatePlaying {
		t.Fatalf("state after confirm = %v, want Playing", m.State())
	}
	if cmd == nil {
		t.Error("starting a run should schedule the loops")
	}
	if m.sim.Snapshot().Theme != "office" {
		t.Errorf("theme = %q, want office", m.sim.Snapshot().Theme)
	}
}

func TestModelCharacterOption(t *testing.T) {
	m := newTestModel(t, Options{Character: "factory"})
	if m.State() != runner.StatePlaying {
		t.Fatalf("state = %v, want Playing", m.State())
	}
	if m.Init() == nil {
		t.Error("Init should start the loops for a preselected character")
	}

	bad := newTestModel(t, Options{Character: "nobody"})
	if bad.State() != runner.StateSelect {
		t.Errorf("unknown character should stay on Select, got %v", bad.State())
	}
}

func TestModelDropsStaleTicks(t *testing.T) {
	m, _ := send(t, newTestModel(t, Options{}), keyMsg("enter"))
	now := time.Now()

	if _, cmd := send(t, m, FrameMsg{Gen: m.gen - 1, At: now}); cmd != nil {
		t.Error("stale frame should end its chain")
	}
	if _, cmd := send(t, m, CoarseMsg{Gen: m.gen - 1, At: now}); cmd != nil {
		t.Error("stale coarse tick should end its chain")
	}
	if _, cmd := send(t, m, FrameMsg{Gen: m.gen, At: now.Add(16 * time.Millisecond)}); cmd == nil {
		t.Error("current frame should schedule the next one")
	}
	if _, cmd := send(t, m, CoarseMsg{Gen: m.gen, At: now.Add(100 * time.Millisecond)}); cmd == nil {
		t.Error("current coarse tick should schedule the next one")
	}
}

func TestModelPause(t *testing.T) {
	m, _ := send(t, newTestModel(t, Options{}), keyMsg("enter"))
	gen := m.gen
	at := time.Now()

	m, _ = send(t, m, keyMsg("left"))
	if lane := m.sim.Snapshot().Lane; lane != 1 {
		t.Fatalf("input should wait for the next frame, lane = %d", lane)
	}
	at = at.Add(16 * time.Millisecond)
	m, _ = send(t, m, FrameMsg{Gen: gen, At: at})
	if lane := m.sim.Snapshot().Lane; lane != 0 {
		t.Fatalf("lane = %d, want 0", lane)
	}

	m, cmd := send(t, m, keyMsg("p"))
	if !m.Paused() || cmd != nil {
		t.Fatal("pause should freeze the loops")
	}
	if _, cmd := send(t, m, FrameMsg{Gen: gen, At: at.Add(16 * time.Millisecond)}); cmd != nil {
		t.Error("frames from before the pause should be dropped")
	}

	m, _ = send(t, m, keyMsg("right"))
	if m.input.Len() != 0 {
		t.Error("input while paused should be ignored")
	}
	if m.State() != runner.StatePlaying {
		t.Errorf("pause changed run state to %v", m.State())
	}

	m, cmd = send(t, m, keyMsg("p"))
	if m.Paused() || cmd == nil {
		t.Error("resume should restart the loops")
	}
	if m.gen <= gen {
		t.Error("resume should start a new loop generation")
	}
	m, _ = send(t, m, FrameMsg{Gen: m.gen, At: time.Now()})
	if lane := m.sim.Snapshot().Lane; lane != 0 {
		t.Errorf("lane after resume = %d, want 0", lane)
	}
}

func TestModelSwipe(t *testing.T) {
	m, _ := send(t, newTestModel(t, Options{}), keyMsg("enter"))

	m, _ = send(t, m, tea.MouseMsg{X: 40, Y: 10, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	m, _ = send(t, m, tea.MouseMsg{X: 47, Y: 11, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	if got := m.input.Actions(); len(got) != 1 || got[0] != core.ActionRight {
		t.Fatalf("drag right queued %v, want [Right]", got)
	}

	m, _ = send(t, m, tea.MouseMsg{X: 40, Y: 10, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	m, _ = send(t, m, tea.MouseMsg{X: 40, Y: 10, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	if m.input.Len() != 1 {
		t.Error("a click without movement should not queue an action")
	}

	m, _ = send(t, m, tea.MouseMsg{X: 40, Y: 10, Button: tea.MouseButtonLeft, Action: tea.MouseActionPress})
	m, _ = send(t, m, tea.MouseMsg{X: 40, Y: 5, Button: tea.MouseButtonLeft, Action: tea.MouseActionRelease})
	if got := m.input.Actions(); len(got) != 2 || got[1] != core.ActionJump {
		t.Errorf("drag up queued %v, want a jump", got)
	}
}

func TestModelMenuOnlyWhenStopped(t *testing.T) {
	m, _ := send(t, newTestModel(t, Options{}), keyMsg("enter"))

	m, _ = send(t, m, keyMsg("m"))
	if m.State() != runner.StatePlaying {
		t.Fatal("menu key should be ignored mid-run")
	}

	m, _ = send(t, m, keyMsg("p"))
	m, _ = send(t, m, keyMsg("m"))
	if m.State() != runner.StateSelect {
		t.Errorf("menu from pause: state = %v, want Select", m.State())
	}
	if m.Paused() {
		t.Error("returning to the menu should clear the pause")
	}
}

func TestModelNotificationExpires(t *testing.T) {
	m, _ := send(t, newTestModel(t, Options{}), keyMsg("enter"))

	m.inbox.Notify(runner.Notification{Category: "legal", DisplayName: "Legal aid", Points: 50})
	m, cmd := send(t, m, FrameMsg{Gen: m.gen, At: time.Now().Add(16 * time.Millisecond)})
	if m.notice == nil || cmd == nil {
		t.Fatal("pending notification should be shown")
	}
	if !strings.Contains(m.View(), "Legal aid") {
		t.Error("banner should show the category name")
	}

	seq := m.notice.seq
	m, _ = send(t, m, noticeExpiredMsg{seq: seq - 1})
	if m.notice == nil {
		t.Error("an older expiry must not clear a newer banner")
	}
	m, _ = send(t, m, noticeExpiredMsg{seq: seq})
	if m.notice != nil {
		t.Error("banner should expire")
	}
}

func TestModelSavesFinishedRunOnce(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()

	m, _ := send(t, newTestModel(t, Options{Store: store, Player: "alice"}), keyMsg("enter"))

	// With no pickup categories the finish appears at the first spawn and
	// the run is won once it reaches the player.
	start := time.Now()
	for i := 1; i <= 1000 && m.State() == runner.StatePlaying; i++ {
		m, _ = send(t, m, CoarseMsg{Gen: m.gen, At: start.Add(time.Duration(i) * 100 * time.Millisecond)})
	}
	if m.State() != runner.StateWin {
		t.Fatalf("state = %v, want Win", m.State())
	}
	if !strings.Contains(m.View(), "YOU MADE IT!") {
		t.Error("win screen should show the result title")
	}

	m, _ = send(t, m, CoarseMsg{Gen: m.gen, At: start.Add(200 * time.Second)})
	m.finishRun()

	runs, err := store.TopRuns("", 10)
	if err != nil {
		t.Fatalf("TopRuns() failed: %v", err)
	}
	if len(runs) != 1 {
		t.Fatalf("saved %d runs, want exactly 1", len(runs))
	}
	if !runs[0].Won() || runs[0].Player != "alice" || runs[0].Character != "office" {
		t.Errorf("unexpected record: %+v", runs[0])
	}

	m, cmd := send(t, m, keyMsg("r"))
	if m.State() != runner.StatePlaying || cmd == nil {
		t.Fatalf("restart: state = %v", m.State())
	}
	if m.saved || m.summary != nil {
		t.Error("restart should clear the previous result")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(12, 2)
	s.DrawTextColor(0, 0, "score", core.ColorBrightYellow)
	s.DrawText(6, 0, "ok")
	out := RenderScreen(s)

	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if !strings.Contains(lines[0], "score") || !strings.Contains(lines[0], "ok") {
		t.Errorf("first line lost its text: %q", lines[0])
	}
}

func TestScoreboardTabs(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer store.Close()
	for _, r := range []storage.RunRecord{
		{Character: "office", Outcome: storage.OutcomeWin, Score: 300},
		{Character: "factory", Outcome: storage.OutcomeGameOver, Score: 90},
	} {
		if _, err := store.SaveRun(r); err != nil {
			t.Fatalf("SaveRun() failed: %v", err)
		}
	}

	m := NewScoreboardModel(store, quietCatalog().Themes, 100, 30)
	if len(m.tabs) != 3 || len(m.runs) != 2 {
		t.Fatalf("all tab: %d tabs, %d runs", len(m.tabs), len(m.runs))
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(ScoreboardModel)
	if len(m.runs) != 1 || m.runs[0].Character != "office" {
		t.Errorf("office tab runs = %+v", m.runs)
	}
	if m.stats == nil || m.stats.Wins != 1 {
		t.Errorf("office stats = %+v", m.stats)
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(ScoreboardModel)
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.cursor)
	}
	if !strings.Contains(m.View(), "HIGH SCORES") {
		t.Error("view should show the title")
	}
}
