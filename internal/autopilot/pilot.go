// Package autopilot implements a CPU player for the lane runner. It reads
// snapshots and answers with actions like a human at the keyboard. It drives
// the headless simulate command and the balance tests.
package autopilot

import (
	"math"
	"math/rand"
	"time"

	"github.com/vovakirdan/lane-runner/internal/config"
	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/runner"
)

const (
	DefaultSkill = 0.9 // Chance to react in a given frame (0-1, 1 = perfect)

	jumpLead  = 350 * time.Millisecond // Time to contact at which to jump
	duckLead  = 200 * time.Millisecond // Time to contact at which to duck
	dangerFor = 900 * time.Millisecond // Obstacles closer than this block a lane
	lookahead = 3 * time.Second        // Pickups further than this are ignored
)

// Pilot decides actions from snapshots.
type Pilot struct {
	cfg   config.RunnerConfig
	skill float64
	rng   *rand.Rand
}

// Option configures a Pilot.
type Option func(*Pilot)

// WithSkill sets the reaction probability.
func WithSkill(skill float64) Option {
	return func(p *Pilot) {
		p.skill = core.ClampF(skill, 0, 1)
	}
}

// WithSeed seeds the pilot's private random source.
func WithSeed(seed int64) Option {
	return func(p *Pilot) {
		p.rng = rand.New(rand.NewSource(seed))
	}
}

// New creates a pilot for the given engine tuning.
func New(cfg config.RunnerConfig, opts ...Option) *Pilot {
	p := &Pilot{cfg: cfg, skill: DefaultSkill}
	for _, opt := range opts {
		opt(p)
	}
	if p.rng == nil {
		p.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return p
}

// Decide returns the actions to take this frame. It returns nil outside
// Playing and on frames where the pilot hesitates.
func (p *Pilot) Decide(snap runner.Snapshot) []core.Action {
	if snap.State != runner.StatePlaying {
		return nil
	}
	if p.skill < 1 && p.rng.Float64() > p.skill {
		return nil
	}

	approach := snap.Speed * p.cfg.Track.AdvanceFactor // depth units per second
	if approach <= 0 {
		return nil
	}
	eta := func(depth float64) time.Duration {
		return time.Duration(-depth / approach * float64(time.Second))
	}

	threat, ok := p.nearestThreat(snap, snap.Lane)
	if ok {
		t := eta(threat.Depth)
		if threat.Size == config.SizeUnjumpable || !p.canPose(snap, threat) {
			if t < dangerFor {
				if lane, ok := p.escape(snap, eta); ok {
					return []core.Action{step(snap.Lane, lane)}
				}
			}
		} else if a, ok := p.pose(snap, threat, t); ok {
			return []core.Action{a}
		} else if t < dangerFor {
			return nil
		}
	}

	if lane, ok := p.pickupLane(snap, eta); ok && lane != snap.Lane {
		next := snap.Lane + sign(lane-snap.Lane)
		if p.safe(snap, next, eta) {
			return []core.Action{step(snap.Lane, next)}
		}
	}
	return nil
}

// nearestThreat returns the closest unresolved obstacle ahead in lane.
func (p *Pilot) nearestThreat(snap runner.Snapshot, lane int) (runner.ItemView, bool) {
	var best runner.ItemView
	found := false
	for _, it := range snap.Items {
		if it.Kind != runner.KindObstacle || it.Resolved || it.Lane != lane {
			continue
		}
		if it.Depth > p.cfg.Collision.ObstacleWindow {
			continue
		}
		if !found || it.Depth > best.Depth {
			best, found = it, true
		}
	}
	return best, found
}

// canPose reports whether the pilot can still clear threat by jumping or
// ducking from its current pose.
func (p *Pilot) canPose(snap runner.Snapshot, threat runner.ItemView) bool {
	switch threat.Avoid {
	case config.AvoidDuck:
		return !snap.Airborne
	case config.AvoidAny:
		return true
	default:
		return !snap.Ducking
	}
}

// pose picks a jump or duck once the threat is close enough.
func (p *Pilot) pose(snap runner.Snapshot, threat runner.ItemView, t time.Duration) (core.Action, bool) {
	if snap.Airborne || snap.Ducking {
		return core.ActionNone, false
	}
	switch threat.Avoid {
	case config.AvoidDuck:
		if t <= duckLead {
			return core.ActionDuck, true
		}
	default:
		if t <= jumpLead {
			return core.ActionJump, true
		}
	}
	return core.ActionNone, false
}

// escape returns the adjacent lane with the most room, if any is safe.
func (p *Pilot) escape(snap runner.Snapshot, eta func(float64) time.Duration) (int, bool) {
	best, bestRoom := -1, time.Duration(-1)
	for _, lane := range []int{snap.Lane - 1, snap.Lane + 1} {
		if lane < 0 || lane >= config.LaneCount || !p.safe(snap, lane, eta) {
			continue
		}
		room := time.Duration(math.MaxInt64)
		if threat, ok := p.nearestThreat(snap, lane); ok {
			room = eta(threat.Depth)
		}
		if room > bestRoom {
			best, bestRoom = lane, room
		}
	}
	return best, best >= 0
}

// safe reports whether lane has no unavoidable obstacle about to arrive.
func (p *Pilot) safe(snap runner.Snapshot, lane int, eta func(float64) time.Duration) bool {
	threat, ok := p.nearestThreat(snap, lane)
	if !ok {
		return true
	}
	return eta(threat.Depth) >= dangerFor
}

// pickupLane returns the lane of the nearest pickup worth chasing.
func (p *Pilot) pickupLane(snap runner.Snapshot, eta func(float64) time.Duration) (int, bool) {
	lane, found := 0, false
	bestDepth := math.Inf(-1)
	for _, it := range snap.Items {
		if it.Kind != runner.KindPickup || it.Resolved || it.Depth > 0 {
			continue
		}
		if eta(it.Depth) > lookahead {
			continue
		}
		if it.Depth > bestDepth {
			lane, bestDepth, found = it.Lane, it.Depth, true
		}
	}
	return lane, found
}

func step(from, to int) core.Action {
	if to < from {
		return core.ActionLeft
	}
	return core.ActionRight
}

func sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}
