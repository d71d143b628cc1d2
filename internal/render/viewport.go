// Package render draws runner snapshots into a core.Screen: the pseudo-3D
// track with its items and player, the HUD, the pickup notification and the
// select, pause, game over and win screens.
package render

import "math"

// perspective is the depth at which the track appears half as wide as at
// the player's row.
const perspective = 10.0

// Viewport maps track coordinates onto screen cells.
type Viewport struct {
	Horizon   int     // Row of the vanishing line
	Ground    int     // Row the player stands on
	CenterX   int     // Column of the middle lane at the player's row
	LaneWidth float64 // Lateral track units per lane
	LaneCols  float64 // Columns per lane at the player's row
	MaxDepth  float64 // Furthest depth drawn (negative)
}

// NewViewport fits the track into a w×h screen, leaving two HUD rows.
func NewViewport(w, h int, laneWidth, maxDepth float64) Viewport {
	return Viewport{
		Horizon:   2,
		Ground:    max(h-3, 3),
		CenterX:   w / 2,
		LaneWidth: laneWidth,
		LaneCols:  math.Max(3, float64(w)/4),
		MaxDepth:  maxDepth,
	}
}

// scale returns the perspective factor for depth: 1 at the player, toward 0
// at the horizon.
func (v Viewport) scale(depth float64) float64 {
	if depth >= 0 {
		return 1 + depth/perspective
	}
	return perspective / (perspective - depth)
}

// Row returns the screen row for depth. It reports false for depths
// beyond the drawing range or behind the bottom of the screen.
func (v Viewport) Row(depth float64) (int, bool) {
	if depth < v.MaxDepth {
		return 0, false
	}
	far := v.scale(v.MaxDepth)
	t := (v.scale(depth) - far) / (1 - far)
	row := v.Horizon + int(math.Round(t*float64(v.Ground-v.Horizon)))
	if row > v.Ground+1 {
		return 0, false
	}
	return row, true
}

// Column returns the screen column of a lateral offset at depth.
func (v Viewport) Column(lateral, depth float64) int {
	return v.CenterX + int(math.Round(lateral/v.LaneWidth*v.LaneCols*v.scale(depth)))
}

// LaneColumn returns the column of lane's center at depth.
func (v Viewport) LaneColumn(lane int, depth float64) int {
	return v.Column(float64(lane-1)*v.LaneWidth, depth)
}
