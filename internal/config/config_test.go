package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestEmbeddedRunnerMatchesDefaults(t *testing.T) {
	cfg, err := LoadRunner("")
	if err != nil {
		t.Fatalf("LoadRunner() failed: %v", err)
	}

	def := DefaultRunnerConfig()
	if cfg.Difficulty != def.Difficulty {
		t.Errorf("difficulty = %+v, expected %+v", cfg.Difficulty, def.Difficulty)
	}
	if cfg.Spawn != def.Spawn {
		t.Errorf("spawn = %+v, expected %+v", cfg.Spawn, def.Spawn)
	}
	if cfg.Timing.DuckDuration != 500*time.Millisecond {
		t.Errorf("duck_duration = %v, expected 500ms", cfg.Timing.DuckDuration)
	}
	if fixed := cfg.Normalize(); len(fixed) != 0 {
		t.Errorf("default config should not need repairs, got %v", fixed)
	}
}

func TestLoadRunnerPartialFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runner.yaml")
	data := []byte("difficulty:\n  max_speed: 0.5\nplayer:\n  starting_lives: 7\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadRunner(path)
	if err != nil {
		t.Fatalf("LoadRunner() failed: %v", err)
	}
	if cfg.Difficulty.MaxSpeed != 0.5 {
		t.Errorf("max_speed = %v, expected 0.5", cfg.Difficulty.MaxSpeed)
	}
	if cfg.Player.StartingLives != 7 {
		t.Errorf("starting_lives = %d, expected 7", cfg.Player.StartingLives)
	}
	// Untouched fields keep defaults
	if cfg.Difficulty.BaseSpeed != 0.08 {
		t.Errorf("base_speed = %v, expected default 0.08", cfg.Difficulty.BaseSpeed)
	}
}

func TestLoadRunnerErrors(t *testing.T) {
	if _, err := LoadRunner(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing custom file")
	}

	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("physics: [oops"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadRunner(path); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestNormalizeRepairs(t *testing.T) {
	cfg := DefaultRunnerConfig()
	cfg.Difficulty.MaxSpeed = 0.01
	cfg.Player.StartingLives = 0
	cfg.Player.StartLane = 9
	cfg.Spawn.SpawnDepth = 5

	fixed := cfg.Normalize()
	if len(fixed) != 4 {
		t.Errorf("Normalize() repaired %d fields, expected 4: %v", len(fixed), fixed)
	}
	if cfg.Difficulty.MaxSpeed != cfg.Difficulty.BaseSpeed {
		t.Errorf("max_speed = %v, expected clamp to base", cfg.Difficulty.MaxSpeed)
	}
	if cfg.Player.StartingLives != 1 || cfg.Player.StartLane != 1 || cfg.Spawn.SpawnDepth != -80 {
		t.Errorf("repairs not applied: %+v %+v", cfg.Player, cfg.Spawn)
	}
}

func TestDefaultCatalog(t *testing.T) {
	cat := DefaultCatalog()

	if len(cat.Categories) != 6 {
		t.Errorf("categories = %d, expected 6", len(cat.Categories))
	}
	for _, id := range []string{"office", "factory"} {
		theme, ok := cat.Theme(id)
		if !ok {
			t.Fatalf("theme %q missing", id)
		}
		unjumpable := 0
		for _, o := range theme.Obstacles {
			if !o.Jumpable() {
				unjumpable++
			}
		}
		if unjumpable != 1 {
			t.Errorf("theme %q has %d unjumpable obstacles, expected 1", id, unjumpable)
		}
	}

	clean, problems := cat.Sanitize()
	if len(problems) != 0 {
		t.Errorf("default catalog has problems: %v", problems)
	}
	if len(clean.Themes) != 2 {
		t.Errorf("Sanitize dropped themes: %d left", len(clean.Themes))
	}
}

func TestCatalogSanitize(t *testing.T) {
	cat := Catalog{
		Categories: []Category{
			{ID: "a", Points: 10},
			{ID: "a", Points: 20},
			{ID: "", Points: 5},
			{ID: "b", Points: -3},
		},
		Themes: []Theme{
			{ID: "empty"},
			{ID: "t", Obstacles: []ObstacleArchetype{
				{ID: "x", Damage: 0, Size: "huge", Avoid: "fly"},
				{ID: ""},
			}},
		},
	}

	clean, problems := cat.Sanitize()

	if len(clean.Categories) != 2 {
		t.Fatalf("categories = %d, expected 2", len(clean.Categories))
	}
	if clean.Categories[1].Points != 0 {
		t.Errorf("negative points should clamp to 0, got %d", clean.Categories[1].Points)
	}
	if clean.Categories[0].Name != "a" {
		t.Errorf("missing name should default to id, got %q", clean.Categories[0].Name)
	}

	empty, _ := clean.Theme("empty")
	if len(empty.Obstacles) != 0 {
		t.Error("empty theme should stay empty")
	}
	tt, _ := clean.Theme("t")
	if len(tt.Obstacles) != 1 {
		t.Fatalf("theme t obstacles = %d, expected 1", len(tt.Obstacles))
	}
	o := tt.Obstacles[0]
	if o.Damage != 1 || o.Size != SizeMedium || o.Avoid != AvoidJump {
		t.Errorf("obstacle not repaired: %+v", o)
	}

	var sawEmpty bool
	for _, p := range problems {
		if errors.Is(p, ErrEmptyTheme) {
			sawEmpty = true
		}
	}
	if !sawEmpty {
		t.Error("expected ErrEmptyTheme among problems")
	}
	// duplicate, missing id, negative points, empty theme, damage, size, avoid, missing obstacle id
	if len(problems) != 8 {
		t.Errorf("problems = %d, expected 8: %v", len(problems), problems)
	}
}

func TestCatalogClone(t *testing.T) {
	cat := DefaultCatalog()
	clone := cat.Clone()
	clone.Themes[0].Obstacles[0].Damage = 99
	clone.Categories[0].Points = 1

	if cat.Themes[0].Obstacles[0].Damage == 99 || cat.Categories[0].Points == 1 {
		t.Error("Clone should not share backing arrays")
	}
}

func TestApplyPreset(t *testing.T) {
	tests := []struct {
		preset     DifficultyPreset
		lives      int
		escalation bool
	}{
		{DifficultyEasy, 5, true},
		{DifficultyNormal, 3, true},
		{DifficultyHard, 2, true},
		{DifficultyFixed, 3, false},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultRunnerConfig()
			ApplyPreset(&cfg, tc.preset)

			if cfg.Player.StartingLives != tc.lives {
				t.Errorf("lives = %d, expected %d", cfg.Player.StartingLives, tc.lives)
			}
			if cfg.Difficulty.Escalation != tc.escalation {
				t.Errorf("escalation = %v, expected %v", cfg.Difficulty.Escalation, tc.escalation)
			}
			if cfg.Difficulty.MaxSpeed < cfg.Difficulty.BaseSpeed {
				t.Error("preset produced max_speed below base_speed")
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if p, err := ParsePreset("hard"); err != nil || p != DifficultyHard {
		t.Errorf("ParsePreset(hard) = %q, %v", p, err)
	}
	if p, err := ParsePreset(""); err != nil || p != "" {
		t.Errorf("ParsePreset(\"\") = %q, %v", p, err)
	}
	if _, err := ParsePreset("insane"); err == nil {
		t.Error("expected error for unknown preset")
	}
}
