package runner

import (
	"time"

	"github.com/vovakirdan/lane-runner/internal/config"
)

// SpawnKind reports what a spawn decision produced.
type SpawnKind int

const (
	SpawnNone SpawnKind = iota
	SpawnFinish
	SpawnPickup
	SpawnObstacles
)

func (k SpawnKind) String() string {
	switch k {
	case SpawnFinish:
		return "finish"
	case SpawnPickup:
		return "pickup"
	case SpawnObstacles:
		return "obstacles"
	default:
		return "none"
	}
}

// Spawner decides what enters the track each spawn interval.
//
// Priority, highest first: the finish marker once every category has been
// collected; a pickup of a uniformly random category once enough distance has
// passed since the previous pickup; otherwise one obstacle, or two in
// distinct lanes with the configured probability.
type Spawner struct {
	cfg        config.SpawnConfig
	categories []config.Category
	obstacles  []config.ObstacleArchetype
	rng        Rand

	lastSpawn          time.Time
	lastPickupDistance float64
	finishPlaced       bool
}

// NewSpawner creates a spawner for one theme's obstacle pool.
func NewSpawner(cfg config.SpawnConfig, categories []config.Category, obstacles []config.ObstacleArchetype, rng Rand) *Spawner {
	return &Spawner{cfg: cfg, categories: categories, obstacles: obstacles, rng: rng}
}

// Reset clears spawn history and restarts the interval at now.
func (s *Spawner) Reset(now time.Time) {
	s.lastSpawn = now
	s.lastPickupDistance = 0
	s.finishPlaced = false
}

// Due reports whether more than interval has passed since the last spawn.
func (s *Spawner) Due(now time.Time, interval time.Duration) bool {
	return now.Sub(s.lastSpawn) > interval
}

// FinishPlaced reports whether the finish marker has been emitted.
func (s *Spawner) FinishPlaced() bool {
	return s.finishPlaced
}

// Spawn runs one spawn decision at now. Items are returned without ids;
// the caller registers them.
func (s *Spawner) Spawn(now time.Time, distance float64, collected *CollectedSet) (SpawnKind, []*TrackItem) {
	s.lastSpawn = now

	if collected.Complete(len(s.categories)) {
		if s.finishPlaced {
			return SpawnNone, nil
		}
		s.finishPlaced = true
		return SpawnFinish, nil
	}

	if distance-s.lastPickupDistance >= s.cfg.PickupDistanceInterval {
		if cat, ok := s.pickCategory(); ok {
			s.lastPickupDistance = distance
			return SpawnPickup, []*TrackItem{{
				Kind:     KindPickup,
				Lane:     s.rng.Intn(config.LaneCount),
				Depth:    s.cfg.SpawnDepth,
				Category: cat,
			}}
		}
	}

	if len(s.obstacles) == 0 {
		return SpawnNone, nil
	}

	if s.rng.Float64() < s.cfg.DoubleObstacleChance {
		lanes := s.rng.Perm(config.LaneCount)
		return SpawnObstacles, []*TrackItem{
			s.obstacle(lanes[0]),
			s.obstacle(lanes[1]),
		}
	}
	return SpawnObstacles, []*TrackItem{s.obstacle(s.rng.Intn(config.LaneCount))}
}

func (s *Spawner) obstacle(lane int) *TrackItem {
	return &TrackItem{
		Kind:     KindObstacle,
		Lane:     lane,
		Depth:    s.cfg.SpawnDepth,
		Obstacle: s.obstacles[s.rng.Intn(len(s.obstacles))],
	}
}

// pickCategory chooses uniformly among all categories. Collected ones
// keep spawning; they add points but not progress.
func (s *Spawner) pickCategory() (config.Category, bool) {
	if len(s.categories) == 0 {
		return config.Category{}, false
	}
	return s.categories[s.rng.Intn(len(s.categories))], true
}

// CollectedSet is the ordered set of distinct collected category ids.
type CollectedSet struct {
	order []string
	seen  map[string]struct{}
}

// NewCollectedSet creates an empty set.
func NewCollectedSet() *CollectedSet {
	return &CollectedSet{seen: make(map[string]struct{})}
}

// Add inserts id and reports whether it was new.
func (c *CollectedSet) Add(id string) bool {
	if _, ok := c.seen[id]; ok {
		return false
	}
	c.seen[id] = struct{}{}
	c.order = append(c.order, id)
	return true
}

// Has reports whether id was collected.
func (c *CollectedSet) Has(id string) bool {
	_, ok := c.seen[id]
	return ok
}

// Len returns the number of distinct ids.
func (c *CollectedSet) Len() int {
	return len(c.order)
}

// Complete reports whether total categories have all been collected.
// An empty table is trivially complete.
func (c *CollectedSet) Complete(total int) bool {
	return len(c.order) >= total
}

// IDs returns a copy of the ids in collection order.
func (c *CollectedSet) IDs() []string {
	return append([]string(nil), c.order...)
}

// Clear empties the set.
func (c *CollectedSet) Clear() {
	c.order = c.order[:0]
	clear(c.seen)
}
