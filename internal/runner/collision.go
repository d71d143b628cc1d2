package runner

import (
	"math"

	"github.com/vovakirdan/lane-runner/internal/config"
)

// Outcome is the resolver's verdict for one item in one frame.
type Outcome int

const (
	OutcomeNone    Outcome = iota // Not in contact, keep moving
	OutcomePass                   // Behind the player, remove
	OutcomeCollect                // Pickup scored
	OutcomeHit                    // Obstacle collided
	OutcomeAvoid                  // Obstacle cleared by pose
	OutcomeIgnore                 // Obstacle touched while invincible
)

func (o Outcome) String() string {
	switch o {
	case OutcomePass:
		return "pass"
	case OutcomeCollect:
		return "collect"
	case OutcomeHit:
		return "hit"
	case OutcomeAvoid:
		return "avoid"
	case OutcomeIgnore:
		return "ignore"
	default:
		return "none"
	}
}

// Contact is the player state the resolver tests against. It is captured
// once per frame before any outcome is applied.
type Contact struct {
	Lane       int
	Height     float64
	Ducking    bool
	Invincible bool
}

// Resolver classifies item/player contacts.
type Resolver struct {
	cfg       config.CollisionConfig
	passDepth float64
}

// NewResolver creates a resolver.
func NewResolver(cfg config.CollisionConfig, track config.TrackConfig) Resolver {
	return Resolver{cfg: cfg, passDepth: track.PassDepth}
}

// Resolve returns the outcome for item against p. Resolved items only
// ever pass; everything else resolves at most once.
func (r Resolver) Resolve(item *TrackItem, p Contact) Outcome {
	if item.Depth > r.passDepth {
		return OutcomePass
	}
	if item.Resolved || item.Lane != p.Lane {
		return OutcomeNone
	}

	d := math.Abs(item.Depth)
	if item.Kind == KindPickup {
		if d < r.cfg.PickupWindow {
			return OutcomeCollect
		}
		return OutcomeNone
	}

	if d >= r.cfg.ObstacleWindow {
		return OutcomeNone
	}
	if r.Avoids(item.Obstacle, p) {
		return OutcomeAvoid
	}
	if p.Invincible {
		return OutcomeIgnore
	}
	return OutcomeHit
}

// Avoids reports whether pose p clears obstacle o. Unjumpable obstacles
// are never cleared.
func (r Resolver) Avoids(o config.ObstacleArchetype, p Contact) bool {
	if !o.Jumpable() {
		return false
	}
	// Sitting exactly at the clearance still counts as a hit.
	high := p.Height > r.cfg.Clearance
	switch o.Avoid {
	case config.AvoidDuck:
		return p.Ducking
	case config.AvoidAny:
		return high || p.Ducking
	default:
		return high
	}
}
