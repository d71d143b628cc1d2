// Package runner implements the lane runner simulation engine: the run state
// machine, the difficulty scheduler, the spawner, the lane/jump movement
// model, the entity registry and the collision resolver.
//
// The engine is single-threaded and clock-free: callers pass the current time
// to Tick (the coarse ~100ms tick) and Frame (the per-frame step). Timed
// effects are epoch-tagged events drained at the start of each frame, so a
// reset invalidates everything scheduled by the previous run.
package runner

import (
	"errors"

	"github.com/vovakirdan/lane-runner/internal/config"
)

var (
	// ErrUnknownCharacter is returned when selecting a theme the catalog lacks.
	ErrUnknownCharacter = errors.New("runner: unknown character")
	// ErrInvalidTransition is returned for a run state change the machine forbids.
	ErrInvalidTransition = errors.New("runner: invalid state transition")
	// ErrNoCharacter is returned by Restart when no character has been selected.
	ErrNoCharacter = errors.New("runner: no character selected")
)

// ItemKind distinguishes pickups from obstacles.
type ItemKind int

const (
	KindPickup ItemKind = iota
	KindObstacle
)

func (k ItemKind) String() string {
	if k == KindPickup {
		return "pickup"
	}
	return "obstacle"
}

// ItemID identifies a track item within one run.
type ItemID uint64

// TrackItem is one spawned pickup or obstacle.
type TrackItem struct {
	ID    ItemID
	Kind  ItemKind
	Lane  int
	Depth float64 // Negative = ahead of the player, increases as it approaches

	Category config.Category          // Set for pickups
	Obstacle config.ObstacleArchetype // Set for obstacles

	Resolved bool // One-way latch: scored, collided, avoided or ignored
	Avoided  bool // Obstacle passed without contact
}

// Archetype returns the category or obstacle archetype id.
func (it *TrackItem) Archetype() string {
	if it.Kind == KindPickup {
		return it.Category.ID
	}
	return it.Obstacle.ID
}

// latch marks the item resolved. It reports false if it already was.
func (it *TrackItem) latch() bool {
	if it.Resolved {
		return false
	}
	it.Resolved = true
	return true
}

// Cue is a discrete audio event.
type Cue int

const (
	CueDash Cue = iota
	CueJump
	CueHurt
	CueCollect
	CueExplode
	CueWin
)

func (c Cue) String() string {
	switch c {
	case CueDash:
		return "dash"
	case CueJump:
		return "jump"
	case CueHurt:
		return "hurt"
	case CueCollect:
		return "collect"
	case CueExplode:
		return "explode"
	case CueWin:
		return "win"
	default:
		return "unknown"
	}
}

// CueSink receives audio cues. Implementations must not block.
type CueSink interface {
	Cue(c Cue)
}

// CueFunc adapts a function to CueSink.
type CueFunc func(Cue)

// Cue calls f(c).
func (f CueFunc) Cue(c Cue) { f(c) }

// Notification is the transient payload emitted on every pickup collection.
// Consumers are expected to expire it on their own.
type Notification struct {
	Category    string
	Points      int
	DisplayName string
	Icon        string
	ShortDesc   string
	Color       string
}

// NotificationSink receives pickup notifications.
type NotificationSink interface {
	Notify(n Notification)
}

// NotificationFunc adapts a function to NotificationSink.
type NotificationFunc func(Notification)

// Notify calls f(n).
func (f NotificationFunc) Notify(n Notification) { f(n) }

type nopSink struct{}

func (nopSink) Cue(Cue)             {}
func (nopSink) Notify(Notification) {}

// Rand is the random source used by the spawner. *math/rand.Rand satisfies it.
type Rand interface {
	Intn(n int) int
	Float64() float64
	Perm(n int) []int
}
