package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/lane-runner/internal/audio"
	"github.com/vovakirdan/lane-runner/internal/core"
	"github.com/vovakirdan/lane-runner/internal/platform/tui"
	"github.com/vovakirdan/lane-runner/internal/runner"
	"github.com/vovakirdan/lane-runner/internal/storage"
)

var (
	flagMute    bool
	flagVolume  float64
	flagLogFile string
)

var playCmd = &cobra.Command{
	Use:   "play [character]",
	Short: "Play the runner",
	Long: `Start the runner in this terminal. Without a character the selection
screen is shown first.

Controls:
  Left/Right, A/D   - Change lane
  Up/W/Space        - Jump
  Down/S            - Duck
  P/Esc             - Pause
  R                 - Restart (after the run ended)
  M                 - Back to character selection (paused or after the run)
  Q/Ctrl+C          - Quit

Difficulty options:
  easy   - Extra lives, lower top speed, fewer double obstacles
  normal - Config as loaded, speed escalation on
  hard   - Fewer lives, faster start, more double obstacles
  fixed  - No speed escalation

Examples:
  runner play
  runner play office
  runner play factory --difficulty hard --mute
  runner play --log-file ~/.runner/runner.log`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagMute, "mute", false, "Disable sound effects")
	playCmd.Flags().Float64Var(&flagVolume, "volume", 0.6, "Sound effect volume (0-1)")
	playCmd.Flags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file (the terminal is owned by the game)")
}

func runPlay(_ *cobra.Command, args []string) error {
	logOut, closeLog, err := openLogFile(flagLogFile)
	if err != nil {
		return err
	}
	defer closeLog()
	logger := newLogger(logOut, "runner")

	cfg, catalog, err := loadSetup(logger)
	if err != nil {
		return err
	}

	character := ""
	if len(args) == 1 {
		character = args[0]
		if _, ok := catalog.Theme(character); !ok {
			return fmt.Errorf("unknown character %q (run 'runner characters' to list them)", character)
		}
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open run database", "error", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	var simOpts []runner.Option
	if !flagMute {
		spk, spkErr := audio.OpenSpeaker(audio.Options{Volume: flagVolume, Logger: logger})
		if spkErr != nil {
			logger.Warn("audio disabled", "error", spkErr)
		} else {
			defer spk.Close()
			simOpts = append(simOpts, runner.WithCueSink(spk))
		}
	}

	return tui.Run(cfg, catalog, tui.Options{
		Store: store,
		Runtime: core.RuntimeConfig{
			ScreenW:  width,
			ScreenH:  height,
			TickRate: flagFPS,
			Seed:     flagSeed,
		},
		Character: character,
		Logger:    logger,
	}, simOpts...)
}

// openLogFile opens path for appending; an empty path discards logs.
func openLogFile(path string) (io.Writer, func(), error) {
	if path == "" {
		return io.Discard, func() {}, nil
	}
	if path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, nil, fmt.Errorf("cannot expand home directory: %w", err)
		}
		path = filepath.Join(home, path[1:])
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, fmt.Errorf("cannot create log directory: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot open log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
