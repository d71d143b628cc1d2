package runner

import (
	"time"

	"github.com/vovakirdan/lane-runner/internal/config"
)

// Scheduler tracks speed and distance for one run. Speed rises in fixed
// steps on a fixed wall-clock period and never leaves [base, max].
type Scheduler struct {
	diff  config.DifficultyConfig
	spawn config.SpawnConfig
	track config.TrackConfig

	speed        float64
	distance     float64
	lastIncrease time.Time
}

// NewScheduler creates a scheduler at base speed.
func NewScheduler(cfg config.RunnerConfig) *Scheduler {
	s := &Scheduler{
		diff:  cfg.Difficulty,
		spawn: cfg.Spawn,
		track: cfg.Track,
	}
	s.Reset(time.Time{})
	return s
}

// Reset returns to base speed and zero distance.
func (s *Scheduler) Reset(now time.Time) {
	s.speed = s.diff.BaseSpeed
	s.distance = 0
	s.lastIncrease = now
}

// Speed returns the current movement speed.
func (s *Scheduler) Speed() float64 {
	return s.speed
}

// Distance returns the accumulated distance.
func (s *Scheduler) Distance() float64 {
	return s.distance
}

// Advance accrues one coarse tick of distance and returns the increment.
func (s *Scheduler) Advance() float64 {
	d := s.speed * s.track.DistancePerTick
	s.distance += d
	return d
}

// SpawnInterval derives the spawn period from the current speed.
// Faster play spawns more often, never below the configured floor.
func (s *Scheduler) SpawnInterval() time.Duration {
	reduction := time.Duration(float64(s.spawn.IntervalSlope) * (s.speed - s.diff.BaseSpeed))
	return max(s.spawn.MinInterval, s.spawn.Interval-reduction)
}

// Escalate applies one speed step if the period has elapsed since the
// last step. It reports whether the speed changed.
func (s *Scheduler) Escalate(now time.Time) bool {
	if !s.diff.Escalation {
		return false
	}
	if now.Sub(s.lastIncrease) <= s.diff.SpeedIncreaseInterval {
		return false
	}
	s.lastIncrease = now

	next := min(s.diff.MaxSpeed, s.speed+s.diff.SpeedIncrement)
	if next == s.speed {
		return false
	}
	s.speed = next
	return true
}
