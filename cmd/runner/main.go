// runner is a three-lane endless runner for the terminal.
//
// Usage:
//
//	runner play [character]      - Play locally
//	runner serve                 - Start SSH server for remote play
//	runner scores [character]    - Show run history and high scores
//	runner characters            - List characters and pickup categories
//	runner simulate              - Run headless autopilot runs for balancing
//
// Global flags:
//
//	--fps <rate>          - Frame rate of the per-frame loop (default: 60)
//	--seed <value>        - RNG seed for reproducible runs
//	--db <path>           - Run history database (default: ~/.runner/runs.db)
//	--config <path>       - Engine tuning YAML
//	--catalog <path>      - Character and pickup catalog YAML
//	--difficulty <preset> - easy, normal, hard or fixed
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/lane-runner/internal/config"
)

var (
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagCatalog    string
	flagDifficulty string
	flagVerbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "runner",
	Short: "Lane Runner - dodge, jump and collect in your terminal",
	Long: `Lane Runner is a three-lane endless runner. Switch lanes, jump and duck
past obstacles, collect every kind of benefit and reach the finish line.

Available commands:
  play        - Play locally
  serve       - Start SSH server for remote play
  scores      - View run history and high scores
  characters  - List characters and pickup categories
  simulate    - Headless autopilot runs

Examples:
  runner play
  runner play factory --difficulty hard
  runner serve --ssh :2222
  runner scores office
  runner simulate --runs 20 --skill 0.8`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Frame rate of the per-frame loop")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.runner/runs.db", "Path to run history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom engine tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagCatalog, "catalog", "", "Path to custom catalog YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug messages")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(charactersCmd)
	rootCmd.AddCommand(simulateCmd)
}

// newLogger builds the process logger writing to w.
func newLogger(w io.Writer, prefix string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// loadSetup loads engine tuning and the catalog, applies the difficulty
// preset and repairs whatever would break a run. Repairs are logged.
func loadSetup(logger *log.Logger) (config.RunnerConfig, config.Catalog, error) {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return config.RunnerConfig{}, config.Catalog{}, err
	}

	cfg, err := config.LoadRunner(flagConfig)
	if err != nil {
		return cfg, config.Catalog{}, err
	}
	config.ApplyPreset(&cfg, preset)
	for _, fix := range cfg.Normalize() {
		logger.Warn("config repaired", "problem", fix)
	}

	raw, err := config.LoadCatalog(flagCatalog)
	if err != nil {
		return cfg, config.Catalog{}, err
	}
	catalog, problems := raw.Sanitize()
	for _, p := range problems {
		logger.Warn("catalog entry skipped", "error", p)
	}
	if len(catalog.Themes) == 0 {
		return cfg, catalog, fmt.Errorf("catalog has no usable characters")
	}
	return cfg, catalog, nil
}
