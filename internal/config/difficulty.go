package config

import "fmt"

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// ParsePreset converts a CLI string into a preset.
// The empty string means "use the config as loaded".
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return p, nil
	default:
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal, hard or fixed)", s)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
func ApplyPreset(cfg *RunnerConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Difficulty.Escalation = true
		cfg.Player.StartingLives = 5
		cfg.Difficulty.MaxSpeed = cfg.Difficulty.BaseSpeed + (cfg.Difficulty.MaxSpeed-cfg.Difficulty.BaseSpeed)*0.6
		cfg.Spawn.DoubleObstacleChance = 0.25
	case DifficultyNormal:
		cfg.Difficulty.Escalation = true
	case DifficultyHard:
		cfg.Difficulty.Escalation = true
		cfg.Player.StartingLives = 2
		cfg.Difficulty.BaseSpeed *= 1.5
		if cfg.Difficulty.MaxSpeed < cfg.Difficulty.BaseSpeed {
			cfg.Difficulty.MaxSpeed = cfg.Difficulty.BaseSpeed
		}
		cfg.Spawn.DoubleObstacleChance = 0.55
	case DifficultyFixed:
		cfg.Difficulty.Escalation = false
	}
}
