// Package config provides YAML-based configuration for the runner: engine
// tuning (speeds, physics, spawn pacing, timers) and the content catalog
// (pickup categories and per-theme obstacle pools), plus difficulty presets.
package config

import "time"

// RunnerConfig contains all engine tuning for the lane runner.
type RunnerConfig struct {
	Lanes      LanesConfig      `yaml:"lanes"`
	Physics    PhysicsConfig    `yaml:"physics"`
	Difficulty DifficultyConfig `yaml:"difficulty"`
	Spawn      SpawnConfig      `yaml:"spawn"`
	Track      TrackConfig      `yaml:"track"`
	Collision  CollisionConfig  `yaml:"collision"`
	Player     PlayerConfig     `yaml:"player"`
	Timing     TimingConfig     `yaml:"timing"`
}

// LanesConfig defines lane geometry and the lateral smoothing model.
type LanesConfig struct {
	Width       float64 `yaml:"width"`        // Distance between lane centers
	Smoothing   float64 `yaml:"smoothing"`    // Fraction of the remaining distance covered per frame
	SnapEpsilon float64 `yaml:"snap_epsilon"` // Residual below which the offset snaps to target
}

// PhysicsConfig defines the vertical jump model.
type PhysicsConfig struct {
	JumpVelocity  float64       `yaml:"jump_velocity"`  // Launch velocity (units/s)
	Gravity       float64       `yaml:"gravity"`        // Downward acceleration (units/s²)
	MaxFrameStep  time.Duration `yaml:"max_frame_step"` // dt clamp per frame
	GroundEpsilon float64       `yaml:"ground_epsilon"` // Height treated as grounded
}

// DifficultyConfig defines the stepped speed escalation.
type DifficultyConfig struct {
	Escalation            bool          `yaml:"escalation"`
	BaseSpeed             float64       `yaml:"base_speed"`
	MaxSpeed              float64       `yaml:"max_speed"`
	SpeedIncrement        float64       `yaml:"speed_increment"`
	SpeedIncreaseInterval time.Duration `yaml:"speed_increase_interval"`
}

// SpawnConfig defines spawn pacing and placement.
type SpawnConfig struct {
	Interval               time.Duration `yaml:"interval"`                 // Interval at base speed
	MinInterval            time.Duration `yaml:"min_interval"`             // Floor for the dynamic interval
	IntervalSlope          time.Duration `yaml:"interval_slope"`           // Interval reduction per unit of speed above base
	PickupDistanceInterval float64       `yaml:"pickup_distance_interval"` // Minimum distance between pickups
	DoubleObstacleChance   float64       `yaml:"double_obstacle_chance"`
	SpawnDepth             float64       `yaml:"spawn_depth"`
	FinishDepth            float64       `yaml:"finish_depth"`
}

// TrackConfig defines how the track moves relative to the player.
type TrackConfig struct {
	CoarseTick      time.Duration `yaml:"coarse_tick"`       // Period of the distance/spawn/speed tick
	DistancePerTick float64       `yaml:"distance_per_tick"` // Distance gained per coarse tick per unit of speed
	AdvanceFactor   float64       `yaml:"advance_factor"`    // Depth gained per second per unit of speed
	PassDepth       float64       `yaml:"pass_depth"`        // Items deeper than this are removed
}

// CollisionConfig defines contact windows and scoring for collisions.
type CollisionConfig struct {
	PickupWindow   float64 `yaml:"pickup_window"`   // |depth| below which a pickup is in contact
	ObstacleWindow float64 `yaml:"obstacle_window"` // |depth| below which an obstacle is in contact
	Clearance      float64 `yaml:"clearance"`       // Height that clears a jumpable obstacle
	AvoidBonus     int     `yaml:"avoid_bonus"`     // Points for an avoided obstacle
}

// PlayerConfig defines the starting player state.
type PlayerConfig struct {
	StartingLives int `yaml:"starting_lives"`
	StartLane     int `yaml:"start_lane"`
}

// TimingConfig defines the durations of timed effects.
type TimingConfig struct {
	DuckDuration         time.Duration `yaml:"duck_duration"`
	InvincibilityWindow  time.Duration `yaml:"invincibility_window"`
	ExplosionDelay       time.Duration `yaml:"explosion_delay"`
	NotificationDuration time.Duration `yaml:"notification_duration"`
}

// LaneCount is the number of lanes on the track.
const LaneCount = 3

// Normalize repairs values that would break the simulation and returns a
// description of every field it changed.
func (c *RunnerConfig) Normalize() []string {
	var fixed []string
	fix := func(msg string) { fixed = append(fixed, msg) }

	if c.Lanes.Width <= 0 {
		c.Lanes.Width = 3
		fix("lanes.width must be positive")
	}
	if c.Lanes.Smoothing <= 0 || c.Lanes.Smoothing > 1 {
		c.Lanes.Smoothing = 0.15
		fix("lanes.smoothing must be in (0, 1]")
	}
	if c.Lanes.SnapEpsilon <= 0 {
		c.Lanes.SnapEpsilon = 0.01
		fix("lanes.snap_epsilon must be positive")
	}
	if c.Physics.Gravity <= 0 {
		c.Physics.Gravity = 22
		fix("physics.gravity must be positive")
	}
	if c.Physics.JumpVelocity <= 0 {
		c.Physics.JumpVelocity = 11
		fix("physics.jump_velocity must be positive")
	}
	if c.Physics.MaxFrameStep <= 0 {
		c.Physics.MaxFrameStep = 50 * time.Millisecond
		fix("physics.max_frame_step must be positive")
	}
	if c.Difficulty.BaseSpeed <= 0 {
		c.Difficulty.BaseSpeed = 0.08
		fix("difficulty.base_speed must be positive")
	}
	if c.Difficulty.MaxSpeed < c.Difficulty.BaseSpeed {
		c.Difficulty.MaxSpeed = c.Difficulty.BaseSpeed
		fix("difficulty.max_speed below base_speed")
	}
	if c.Difficulty.SpeedIncrement < 0 {
		c.Difficulty.SpeedIncrement = 0
		fix("difficulty.speed_increment must not be negative")
	}
	if c.Difficulty.SpeedIncreaseInterval <= 0 {
		c.Difficulty.SpeedIncreaseInterval = 5 * time.Second
		fix("difficulty.speed_increase_interval must be positive")
	}
	if c.Spawn.MinInterval <= 0 {
		c.Spawn.MinInterval = 600 * time.Millisecond
		fix("spawn.min_interval must be positive")
	}
	if c.Spawn.Interval < c.Spawn.MinInterval {
		c.Spawn.Interval = c.Spawn.MinInterval
		fix("spawn.interval below min_interval")
	}
	if c.Spawn.IntervalSlope < 0 {
		c.Spawn.IntervalSlope = 0
		fix("spawn.interval_slope must not be negative")
	}
	if c.Spawn.DoubleObstacleChance < 0 || c.Spawn.DoubleObstacleChance > 1 {
		c.Spawn.DoubleObstacleChance = 0.4
		fix("spawn.double_obstacle_chance must be in [0, 1]")
	}
	if c.Spawn.SpawnDepth >= 0 {
		c.Spawn.SpawnDepth = -80
		fix("spawn.spawn_depth must be negative")
	}
	if c.Spawn.FinishDepth >= 0 {
		c.Spawn.FinishDepth = -120
		fix("spawn.finish_depth must be negative")
	}
	if c.Track.CoarseTick <= 0 {
		c.Track.CoarseTick = 100 * time.Millisecond
		fix("track.coarse_tick must be positive")
	}
	if c.Track.AdvanceFactor <= 0 {
		c.Track.AdvanceFactor = 200
		fix("track.advance_factor must be positive")
	}
	if c.Track.PassDepth <= c.Collision.PickupWindow || c.Track.PassDepth <= c.Collision.ObstacleWindow {
		c.Track.PassDepth = 10
		fix("track.pass_depth must lie behind both contact windows")
	}
	if c.Player.StartingLives < 1 {
		c.Player.StartingLives = 1
		fix("player.starting_lives must be at least 1")
	}
	if c.Player.StartLane < 0 || c.Player.StartLane >= LaneCount {
		c.Player.StartLane = 1
		fix("player.start_lane out of range")
	}
	return fixed
}
