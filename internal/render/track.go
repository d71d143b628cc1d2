package render

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/runner"
)

// Track glyphs.
const (
	LaneChar      = '·'
	EdgeChar      = '│'
	PickupChar    = '◆'
	FinishChar    = '▚'
	PlayerChar    = '█'
	PlayerHead    = '●'
	DuckChar      = '▄'
	ShadowChar    = '_'
	ExplosionChar = '*'
	HeartChar     = '♥'
	EmptyHeart    = '♡'
)

var sizeGlyphs = map[config.SizeClass]string{
	config.SizeSmall:      "▪",
	config.SizeMedium:     "■",
	config.SizeLarge:      "██",
	config.SizeWide:       "▀▀▀",
	config.SizeUnjumpable: "▓▓▓",
}

// Options tune what Frame draws on top of the track.
type Options struct {
	LaneWidth float64 // Lateral units per lane, from the engine tuning
	MaxDepth  float64 // Furthest depth drawn, usually the spawn depth
	Tick      int     // Animation counter
}

// DefaultOptions matches the built-in engine tuning.
func DefaultOptions() Options {
	cfg := config.DefaultRunnerConfig()
	return Options{LaneWidth: cfg.Lanes.Width, MaxDepth: cfg.Spawn.FinishDepth}
}

// Track draws the lanes, items, finish marker and player.
func Track(dst *core.Screen, snap runner.Snapshot, opts Options) {
	v := NewViewport(dst.Width(), dst.Height(), opts.LaneWidth, opts.MaxDepth)

	drawLanes(dst, v)

	if snap.FinishActive {
		if y, ok := v.Row(snap.FinishDepth); ok {
			left := v.Column(-1.5*v.LaneWidth, snap.FinishDepth)
			right := v.Column(1.5*v.LaneWidth, snap.FinishDepth)
			dst.DrawHLine(left, y, right-left+1, FinishChar, core.ColorBrightWhite)
		}
	}

	// Far items first so near ones overdraw them.
	for i := len(snap.Items) - 1; i >= 0; i-- {
		drawItem(dst, v, snap.Items[i])
	}

	drawPlayer(dst, v, snap, opts.Tick)
}

func drawLanes(dst *core.Screen, v Viewport) {
	for y := v.Horizon; y <= v.Ground+1 && y < dst.Height(); y++ {
		depth := depthAtRow(v, y)
		for edge := 0; edge <= config.LaneCount; edge++ {
			lateral := (float64(edge) - 1.5) * v.LaneWidth
			ch := LaneChar
			if edge == 0 || edge == config.LaneCount {
				ch = EdgeChar
			}
			dst.SetColor(v.Column(lateral, depth), y, ch, core.ColorGray)
		}
	}
}

// depthAtRow inverts Viewport.Row for lane drawing.
func depthAtRow(v Viewport, y int) float64 {
	if v.Ground == v.Horizon {
		return 0
	}
	far := v.scale(v.MaxDepth)
	t := float64(y-v.Horizon) / float64(v.Ground-v.Horizon)
	s := far + t*(1-far)
	if s >= 1 {
		return (s - 1) * perspective
	}
	return perspective - perspective/s
}

func drawItem(dst *core.Screen, v Viewport, it runner.ItemView) {
	y, ok := v.Row(it.Depth)
	if !ok {
		return
	}
	x := v.LaneColumn(it.Lane, it.Depth)

	if it.Kind == runner.KindPickup {
		dst.SetColor(x, y, PickupChar, pickupColor(it.Color))
		return
	}

	glyph, ok := sizeGlyphs[it.Size]
	if !ok {
		glyph = sizeGlyphs[config.SizeMedium]
	}
	c := obstacleColor(it.Size)
	if it.Avoided {
		c = core.ColorGray
	}
	n := len([]rune(glyph))
	dst.DrawTextColor(x-n/2, y, glyph, c)
	if it.Size == config.SizeLarge || it.Size == config.SizeUnjumpable {
		dst.DrawTextColor(x-n/2, y-1, glyph, c)
	}
}

func obstacleColor(size config.SizeClass) core.Color {
	switch size {
	case config.SizeUnjumpable:
		return core.ColorBrightRed
	case config.SizeWide:
		return core.ColorMagenta
	case config.SizeLarge:
		return core.ColorOrange
	default:
		return core.ColorYellow
	}
}

func pickupColor(hex string) core.Color {
	if c := core.ParseHexColor(hex); c != core.ColorDefault {
		return c
	}
	return core.ColorBrightCyan
}

func drawPlayer(dst *core.Screen, v Viewport, snap runner.Snapshot, tick int) {
	x := v.Column(snap.LaneOffset, 0)
	y := v.Ground - int(snap.VerticalOffset+0.5)

	c := core.ColorBrightGreen
	if snap.Damaged && tick%4 < 2 {
		c = core.ColorBrightRed
	}

	if snap.State == runner.StateExploding {
		for i, off := range [][2]int{{0, 0}, {-1, -1}, {1, -1}, {-2, 0}, {2, 0}, {-1, 1}, {1, 1}} {
			ch := ExplosionChar
			if (i+tick)%3 == 0 {
				ch = '+'
			}
			dst.SetColor(x+off[0], v.Ground+off[1], ch, core.ColorOrange)
		}
		return
	}

	if snap.Airborne {
		dst.SetColor(x, v.Ground+1, ShadowChar, core.ColorGray)
	}
	if snap.Ducking {
		dst.SetColor(x-1, y, DuckChar, c)
		dst.SetColor(x, y, DuckChar, c)
		dst.SetColor(x+1, y, DuckChar, c)
		return
	}
	dst.SetColor(x, y, PlayerChar, c)
	dst.SetColor(x, y-1, PlayerHead, c)
}

// HUD draws the status line and the collection progress line.
func HUD(dst *core.Screen, snap runner.Snapshot) {
	var hearts strings.Builder
	for i := 0; i < snap.MaxLives; i++ {
		if i < snap.Lives {
			hearts.WriteRune(HeartChar)
		} else {
			hearts.WriteRune(EmptyHeart)
		}
	}
	dst.DrawTextColor(1, 0, hearts.String(), core.ColorBrightRed)

	score := fmt.Sprintf(" Score: %d ", snap.Score)
	dst.DrawTextCentered(0, score, core.ColorBrightWhite)

	stats := fmt.Sprintf(" %dm  Spd %.2f ", int(snap.Distance), snap.Speed)
	dst.DrawTextColor(dst.Width()-len(stats)-1, 0, stats, core.ColorCyan)

	progress := fmt.Sprintf(" Benefits %d/%d ", len(snap.Collected), snap.CategoryCount)
	c := core.ColorGray
	if snap.CategoryCount > 0 && len(snap.Collected) >= snap.CategoryCount {
		progress = " All benefits secured: reach the finish! "
		c = core.ColorBrightGreen
	}
	dst.DrawTextCentered(1, progress, c)
}
