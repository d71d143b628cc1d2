package render

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/runner"
)

// Frame draws a complete frame for snap.
func Frame(dst *core.Screen, snap runner.Snapshot, opts Options) {
	dst.Clear()
	switch snap.State {
	case runner.StatePlaying, runner.StateExploding:
		Track(dst, snap, opts)
		HUD(dst, snap)
	case runner.StateGameOver:
		Track(dst, snap, opts)
		HUD(dst, snap)
		Message(dst, "GAME OVER", fmt.Sprintf("Score: %d  |  R restart  M menu", snap.Score))
	case runner.StateWin:
		HUD(dst, snap)
		Message(dst, "YOU MADE IT!", fmt.Sprintf("Score: %d  |  R restart  M menu", snap.Score))
	}
}

// Message draws a box with a title and subtitle in the middle of the screen.
func Message(dst *core.Screen, title, subtitle string) {
	Box(dst, core.ColorWhite, title, "", subtitle)
}

// Box draws centered lines inside a bordered box. Empty lines are spacers.
func Box(dst *core.Screen, c core.Color, lines ...string) core.Rect {
	w := 0
	for _, l := range lines {
		w = max(w, utf8.RuneCountInString(l))
	}
	r := dst.Bounds().Centered(w+4, len(lines)+2)

	dst.DrawRect(r, ' ')
	dst.DrawBox(r, c)
	for i, l := range lines {
		x := r.X + (r.W-utf8.RuneCountInString(l))/2
		color := core.ColorBrightWhite
		if i > 0 {
			color = core.ColorDefault
		}
		dst.DrawTextColor(x, r.Y+1+i, l, color)
	}
	return r
}

// Paused draws the pause overlay.
func Paused(dst *core.Screen) {
	Message(dst, "PAUSED", "Press P to resume")
}

// Select draws the character selection screen.
func Select(dst *core.Screen, themes []config.Theme, cursor int) {
	dst.Clear()
	dst.DrawTextCentered(1, "LANE RUNNER", core.ColorBrightYellow)
	dst.DrawTextCentered(2, "Choose your character", core.ColorGray)

	if len(themes) == 0 {
		Message(dst, "No characters", "Check your catalog configuration")
		return
	}

	y := 4
	for i, t := range themes {
		marker, c := "  ", core.ColorDefault
		if i == cursor {
			marker, c = "> ", core.ColorBrightGreen
		}
		label := fmt.Sprintf("%s%s %s", marker, t.Icon, t.Name)
		dst.DrawTextCentered(y, label, c)
		if t.Description != "" {
			dst.DrawTextCentered(y+1, t.Description, core.ColorGray)
		}
		y += 3
	}
	dst.DrawTextCentered(dst.Height()-2, "←/→ lanes  ↑ jump  ↓ duck  Enter start  Q quit", core.ColorGray)
}

// Summary draws the end-of-run digest under a title.
func Summary(dst *core.Screen, title string, sum runner.Summary, total int) {
	lines := []string{
		title,
		"",
		fmt.Sprintf("Score      %d", sum.Score),
		fmt.Sprintf("Distance   %dm", int(sum.Distance)),
		fmt.Sprintf("Time       %s", sum.Duration.Round(time.Second)),
		fmt.Sprintf("Benefits   %d collected, %d/%d kinds", sum.BenefitsCollected, len(sum.Categories), total),
	}
	for _, cat := range sum.Categories {
		lines = append(lines, fmt.Sprintf("  %s %s (+%d)", cat.Icon, cat.Name, cat.Points))
	}
	lines = append(lines, "", "R restart  M menu  Q quit")

	c := core.ColorRed
	if sum.Outcome == runner.StateWin {
		c = core.ColorBrightGreen
	}
	dst.Clear()
	Box(dst, c, lines...)
}

// Notification draws the transient pickup banner under the HUD.
func Notification(dst *core.Screen, n runner.Notification) {
	title := fmt.Sprintf("%s %s  +%d", n.Icon, n.DisplayName, n.Points)
	w := max(utf8.RuneCountInString(title), utf8.RuneCountInString(n.ShortDesc)) + 4
	r := core.NewRect((dst.Width()-w)/2, 2, w, 4)
	if n.ShortDesc == "" {
		r.H = 3
	}
	c := pickupColor(n.Color)

	dst.DrawRect(r, ' ')
	dst.DrawBox(r, c)
	dst.DrawTextColor(r.X+2, r.Y+1, title, c)
	if n.ShortDesc != "" {
		dst.DrawTextColor(r.X+2, r.Y+2, n.ShortDesc, core.ColorDefault)
	}
}
