package runner

import (
	"time"

	"github.com/vovakirdan/lane-runner/internal/config"
)

// ItemView is the read-only view of a track item.
type ItemView struct {
	ID        ItemID
	Kind      ItemKind
	Lane      int
	Depth     float64
	Archetype string
	Name      string
	Icon      string
	Color     string
	Size      config.SizeClass
	Avoid     config.AvoidRule
	Resolved  bool
	Avoided   bool
}

// Snapshot is a value copy of everything presentation needs for one frame.
type Snapshot struct {
	State RunState
	Epoch uint64

	Theme     string
	ThemeName string
	ThemeIcon string

	Lane           int
	LaneOffset     float64
	VerticalOffset float64
	Airborne       bool
	Ducking        bool
	Damaged        bool
	Invincible     bool

	Score    int
	Lives    int
	MaxLives int

	Distance      float64
	Speed         float64
	SpawnInterval time.Duration
	Elapsed       time.Duration

	BenefitsCollected int
	Collected         []string
	CategoryCount     int

	FinishActive bool
	FinishDepth  float64

	Items []ItemView
}

// Snapshot copies the current simulation state.
func (s *Sim) Snapshot() Snapshot {
	snap := Snapshot{
		State:          s.fsm.state,
		Epoch:          s.epoch,
		Theme:          s.theme.ID,
		ThemeName:      s.theme.Name,
		ThemeIcon:      s.theme.Icon,
		Lane:           s.p.lane,
		LaneOffset:     s.lanes.Offset,
		VerticalOffset: s.jump.Height,
		Airborne:       s.jump.Airborne,
		Ducking:        s.p.ducking,
		Damaged:        s.p.damaged,
		Invincible:     s.p.invincible,
		Score:          s.p.score,
		Lives:          s.p.lives,
		MaxLives:       s.cfg.Player.StartingLives,
		Distance:       s.diff.Distance(),
		Speed:          s.diff.Speed(),
		SpawnInterval:  s.diff.SpawnInterval(),
		Elapsed:        s.elapsed(),

		BenefitsCollected: s.benefits,
		Collected:         s.collected.IDs(),
		CategoryCount:     len(s.catalog.Categories),

		FinishActive: s.finish.active,
		FinishDepth:  s.finish.depth,
	}

	items := s.items.Items()
	snap.Items = make([]ItemView, 0, len(items))
	for _, it := range items {
		v := ItemView{
			ID:        it.ID,
			Kind:      it.Kind,
			Lane:      it.Lane,
			Depth:     it.Depth,
			Archetype: it.Archetype(),
			Resolved:  it.Resolved,
			Avoided:   it.Avoided,
		}
		if it.Kind == KindPickup {
			v.Name, v.Icon, v.Color = it.Category.Name, it.Category.Icon, it.Category.Color
		} else {
			v.Name, v.Icon, v.Size, v.Avoid = it.Obstacle.Name, it.Obstacle.Icon, it.Obstacle.Size, it.Obstacle.Avoid
		}
		snap.Items = append(snap.Items, v)
	}
	return snap
}

func (s *Sim) elapsed() time.Duration {
	if s.startedAt.IsZero() {
		return 0
	}
	end := s.lastSeen
	if !s.endedAt.IsZero() {
		end = s.endedAt
	}
	return end.Sub(s.startedAt)
}

// Summary is the end-of-run digest shown on the result screens and persisted.
type Summary struct {
	Theme             string
	Outcome           RunState
	Score             int
	Distance          float64
	BenefitsCollected int
	Categories        []config.Category // Distinct, in collection order
	Duration          time.Duration
	Stats             Stats
}

// Summary returns the digest of the current run.
func (s *Sim) Summary() Summary {
	sum := Summary{
		Theme:             s.theme.ID,
		Outcome:           s.fsm.state,
		Score:             s.p.score,
		Distance:          s.diff.Distance(),
		BenefitsCollected: s.benefits,
		Duration:          s.elapsed(),
		Stats:             s.stats,
	}
	for _, id := range s.collected.IDs() {
		if cat, ok := s.catalog.Category(id); ok {
			sum.Categories = append(sum.Categories, cat)
		}
	}
	return sum
}
