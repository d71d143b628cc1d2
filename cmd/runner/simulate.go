package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-runner/internal/autopilot"
	"github.com/vovakirdan/lane-runner/internal/runner"
	"github.com/vovakirdan/lane-runner/internal/storage"
)

var (
	flagRuns      int
	flagSkill     float64
	flagCharacter string
	flagTimeLimit time.Duration
	flagSave      bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Run headless autopilot runs",
	Long: `Play runs with the autopilot on a virtual clock, as fast as the CPU
allows, and print a summary of each. Useful for balancing the engine tuning
and the catalog. With --seed the whole batch is reproducible.

Examples:
  runner simulate
  runner simulate --runs 50 --skill 0.7 --seed 42
  runner simulate --character factory --difficulty hard
  runner simulate --runs 5 --save`,
	Args: cobra.NoArgs,
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagRuns, "runs", 10, "Number of runs")
	simulateCmd.Flags().Float64Var(&flagSkill, "skill", autopilot.DefaultSkill, "Autopilot reaction probability per frame (0-1)")
	simulateCmd.Flags().StringVar(&flagCharacter, "character", "", "Character to play (default: cycle through all)")
	simulateCmd.Flags().DurationVar(&flagTimeLimit, "time-limit", 10*time.Minute, "Simulated time after which a run is abandoned")
	simulateCmd.Flags().BoolVar(&flagSave, "save", false, "Record finished runs as player \"autopilot\"")
}

func runSimulate(_ *cobra.Command, _ []string) error {
	logger := newLogger(os.Stderr, "simulate")

	cfg, catalog, err := loadSetup(logger)
	if err != nil {
		return err
	}
	if flagCharacter != "" {
		if _, ok := catalog.Theme(flagCharacter); !ok {
			return fmt.Errorf("unknown character %q", flagCharacter)
		}
	}

	var store *storage.Store
	if flagSave {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("opening run database: %w", err)
		}
		defer store.Close()
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	logger.Debug("simulating", "runs", flagRuns, "seed", seed, "skill", flagSkill)

	start := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	var wins, losses, abandoned, totalScore int
	var totalDistance float64

	fmt.Printf("  %-4s  %-10s  %-9s  %-6s  %-7s  %-7s  %-6s  %s\n",
		"Run", "Character", "Result", "Score", "Dist", "Kinds", "Hits", "Time")
	for i := 0; i < flagRuns; i++ {
		character := flagCharacter
		if character == "" {
			character = catalog.Themes[i%len(catalog.Themes)].ID
		}
		runSeed := seed + int64(i)

		sim := runner.New(cfg, catalog, runner.WithSeed(runSeed), runner.WithLogger(logger))
		if err := sim.SelectCharacter(character, start); err != nil {
			return err
		}
		pilot := autopilot.New(cfg, autopilot.WithSkill(flagSkill), autopilot.WithSeed(runSeed))
		runner.Replay(sim, start, flagTimeLimit, runner.LoopOptions{FPS: flagFPS, Controller: pilot})

		sum := sim.Summary()
		result := "abandoned"
		switch sum.Outcome {
		case runner.StateWin:
			result = "finished"
			wins++
		case runner.StateGameOver:
			result = "crashed"
			losses++
		default:
			abandoned++
		}
		totalScore += sum.Score
		totalDistance += sum.Distance

		fmt.Printf("  %-4d  %-10s  %-9s  %-6d  %-7s  %-7s  %-6d  %s\n",
			i+1, character, result, sum.Score, fmt.Sprintf("%dm", int(sum.Distance)),
			fmt.Sprintf("%d/%d", len(sum.Categories), len(catalog.Categories)),
			sum.Stats.Hits, sum.Duration.Round(time.Second))

		if store != nil && sum.Outcome.Ended() {
			if _, err := store.SaveRun(storage.RecordFromSummary(sum, "autopilot")); err != nil {
				logger.Error("could not save run", "run", i+1, "error", err)
			}
		}
	}

	if flagRuns > 0 {
		fmt.Println()
		fmt.Printf("Finished: %d  Crashed: %d  Abandoned: %d  Avg score: %.0f  Avg distance: %.0fm\n",
			wins, losses, abandoned,
			float64(totalScore)/float64(flagRuns), totalDistance/float64(flagRuns))
	}
	return nil
}
