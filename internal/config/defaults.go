package config

import (
	_ "embed"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

//go:embed defaults/catalog.yaml
var defaultCatalogYAML []byte

// DefaultRunnerConfig returns the built-in engine tuning.
func DefaultRunnerConfig() RunnerConfig {
	return RunnerConfig{
		Lanes: LanesConfig{
			Width:       3,
			Smoothing:   0.15,
			SnapEpsilon: 0.01,
		},
		Physics: PhysicsConfig{
			JumpVelocity:  11,
			Gravity:       22,
			MaxFrameStep:  50 * time.Millisecond,
			GroundEpsilon: 0.01,
		},
		Difficulty: DifficultyConfig{
			Escalation:            true,
			BaseSpeed:             0.08,
			MaxSpeed:              0.30,
			SpeedIncrement:        0.012,
			SpeedIncreaseInterval: 5 * time.Second,
		},
		Spawn: SpawnConfig{
			Interval:               1200 * time.Millisecond,
			MinInterval:            600 * time.Millisecond,
			IntervalSlope:          2500 * time.Millisecond,
			PickupDistanceInterval: 100,
			DoubleObstacleChance:   0.4,
			SpawnDepth:             -80,
			FinishDepth:            -120,
		},
		Track: TrackConfig{
			CoarseTick:      100 * time.Millisecond,
			DistancePerTick: 10,
			AdvanceFactor:   200,
			PassDepth:       10,
		},
		Collision: CollisionConfig{
			PickupWindow:   1.2,
			ObstacleWindow: 1.1,
			Clearance:      0.3,
			AvoidBonus:     10,
		},
		Player: PlayerConfig{
			StartingLives: 3,
			StartLane:     1,
		},
		Timing: TimingConfig{
			DuckDuration:         500 * time.Millisecond,
			InvincibilityWindow:  time.Second,
			ExplosionDelay:       1200 * time.Millisecond,
			NotificationDuration: 3 * time.Second,
		},
	}
}

// DefaultCatalog returns the embedded content catalog.
func DefaultCatalog() Catalog {
	var cat Catalog
	if err := yaml.Unmarshal(defaultCatalogYAML, &cat); err != nil || len(cat.Themes) == 0 {
		return fallbackCatalog()
	}
	return cat
}

// fallbackCatalog is used only when the embedded catalog cannot be parsed.
func fallbackCatalog() Catalog {
	return Catalog{
		Categories: []Category{
			{ID: "legal", Name: "Legal Protection", Icon: "⚖", Color: "#3b82f6", Points: 50},
			{ID: "strike", Name: "Strike Assistance", Icon: "✊", Color: "#ef4444", Points: 75},
		},
		Themes: []Theme{
			{
				ID: "office", Name: "Office Worker",
				Obstacles: []ObstacleArchetype{
					{ID: "box", Name: "Box", Icon: "□", Damage: 1, Size: SizeSmall, Avoid: AvoidJump},
					{ID: "cabinet", Name: "Cabinet", Icon: "▥", Damage: 2, Size: SizeLarge, Avoid: AvoidJump},
				},
			},
			{
				ID: "factory", Name: "Factory Worker",
				Obstacles: []ObstacleArchetype{
					{ID: "crate", Name: "Crate", Icon: "▣", Damage: 1, Size: SizeSmall, Avoid: AvoidJump},
					{ID: "forklift", Name: "Forklift", Icon: "╤", Damage: 2, Size: SizeLarge, Avoid: AvoidJump},
				},
			},
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a document name
// ("runner" or "catalog"), used by the CLI to print a starting template.
func GetDefaultYAML(name string) []byte {
	switch name {
	case "runner":
		return defaultRunnerYAML
	case "catalog":
		return defaultCatalogYAML
	default:
		return nil
	}
}
