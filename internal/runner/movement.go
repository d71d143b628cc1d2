package runner

import (
	"time"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
)

// LaneSmoother eases the lateral offset toward the current lane's slot.
// Each step covers a fixed fraction of the remaining distance and snaps
// once the residual is below epsilon.
type LaneSmoother struct {
	width  float64
	factor float64
	eps    float64

	Offset float64
}

// NewLaneSmoother creates a smoother resting on lane.
func NewLaneSmoother(cfg config.LanesConfig, lane int) LaneSmoother {
	l := LaneSmoother{width: cfg.Width, factor: cfg.Smoothing, eps: cfg.SnapEpsilon}
	l.Reset(lane)
	return l
}

// Target returns the lateral slot of lane. The middle lane sits at zero.
func (l *LaneSmoother) Target(lane int) float64 {
	return float64(lane-1) * l.width
}

// Reset places the offset exactly on lane's slot.
func (l *LaneSmoother) Reset(lane int) {
	l.Offset = l.Target(lane)
}

// Step moves the offset one frame toward lane and returns it.
func (l *LaneSmoother) Step(lane int) float64 {
	target := l.Target(lane)
	if core.AbsF(target-l.Offset) < l.eps {
		l.Offset = target
		return l.Offset
	}
	l.Offset = core.Lerp(l.Offset, target, l.factor)
	return l.Offset
}

// Settled reports whether the offset rests on lane's slot.
func (l *LaneSmoother) Settled(lane int) bool {
	return l.Offset == l.Target(lane)
}

// Jumper integrates the vertical offset under constant gravity.
type Jumper struct {
	velocity  float64
	gravity   float64
	groundEps float64

	Height   float64
	Velocity float64
	Airborne bool
	pending  bool
}

// NewJumper creates a grounded jumper.
func NewJumper(cfg config.PhysicsConfig) Jumper {
	eps := cfg.GroundEpsilon
	if eps <= 0 {
		eps = 1e-3
	}
	return Jumper{velocity: cfg.JumpVelocity, gravity: cfg.Gravity, groundEps: eps}
}

// Grounded reports whether the jumper rests on the ground.
func (j *Jumper) Grounded() bool {
	return !j.Airborne
}

// Pending reports whether a jump is queued for the next step.
func (j *Jumper) Pending() bool {
	return j.pending
}

// Request queues a jump. It is refused while airborne or already queued.
func (j *Jumper) Request() bool {
	if j.Airborne || j.pending {
		return false
	}
	j.pending = true
	return true
}

// Reset grounds the jumper and drops any queued jump.
func (j *Jumper) Reset() {
	j.Height = 0
	j.Velocity = 0
	j.Airborne = false
	j.pending = false
}

// Step launches a queued jump and integrates one frame of dt.
// It reports whether the jumper landed during this step.
func (j *Jumper) Step(dt time.Duration) bool {
	if j.pending && !j.Airborne {
		j.Velocity = j.velocity
		j.Airborne = true
	}
	j.pending = false
	if !j.Airborne {
		return false
	}

	s := dt.Seconds()
	j.Height += j.Velocity * s
	j.Velocity -= j.gravity * s

	if j.Height <= j.groundEps && j.Velocity < 0 {
		j.Height = 0
		j.Velocity = 0
		j.Airborne = false
		return true
	}
	return false
}
