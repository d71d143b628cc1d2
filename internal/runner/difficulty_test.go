package runner

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/vovakirdan/lane-runner/internal/config"
)

func TestSchedulerEscalation(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	s := NewScheduler(cfg)
	s.Reset(t0)

	assert.Equal(t, 0.08, s.Speed())
	assert.False(t, s.Escalate(t0.Add(5*time.Second)), "escalates only after the full period")

	now := t0
	prev := s.Speed()
	steps := 0
	for i := 0; i < 40; i++ {
		now = now.Add(5*time.Second + time.Millisecond)
		if s.Escalate(now) {
			steps++
		}
		assert.GreaterOrEqual(t, s.Speed(), prev)
		assert.LessOrEqual(t, s.Speed(), cfg.Difficulty.MaxSpeed)
		prev = s.Speed()
	}
	assert.Equal(t, cfg.Difficulty.MaxSpeed, s.Speed())
	assert.Equal(t, 19, steps)
}

func TestSchedulerFixed(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	cfg.Difficulty.Escalation = false
	s := NewScheduler(cfg)
	s.Reset(t0)
	assert.False(t, s.Escalate(t0.Add(time.Minute)))
	assert.Equal(t, cfg.Difficulty.BaseSpeed, s.Speed())
}

func TestSpawnInterval(t *testing.T) {
	cfg := config.DefaultRunnerConfig()
	s := NewScheduler(cfg)
	assert.Equal(t, 1200*time.Millisecond, s.SpawnInterval())

	s.speed = cfg.Difficulty.MaxSpeed
	assert.InDelta(t, 650, float64(s.SpawnInterval().Milliseconds()), 1)

	cfg.Spawn.IntervalSlope = 10 * time.Second
	s = NewScheduler(cfg)
	s.speed = cfg.Difficulty.MaxSpeed
	assert.Equal(t, cfg.Spawn.MinInterval, s.SpawnInterval())
}

func TestSchedulerDistance(t *testing.T) {
	s := NewScheduler(config.DefaultRunnerConfig())
	s.Reset(t0)
	for i := 0; i < 10; i++ {
		s.Advance()
	}
	assert.InDelta(t, 8.0, s.Distance(), 1e-9)

	s.Reset(t0)
	assert.Equal(t, 0.0, s.Distance())
}
