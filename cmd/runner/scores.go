package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/lane-runner/internal/platform/tui"
	"github.com/vovakirdan/lane-runner/internal/storage"
)

var (
	flagScoresLimit int
	flagRecent      bool
	flagClear       bool
	flagInteractive bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores [character]",
	Short: "Show run history and high scores",
	Long: `Display the best runs, for one character or for all of them.

Examples:
  runner scores
  runner scores office
  runner scores --recent
  runner scores -i                 # Browse in a table
  runner scores factory --clear    # Delete the factory history`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVarP(&flagScoresLimit, "limit", "n", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagRecent, "recent", false, "Show the most recent runs instead of the best")
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete the history of the given character")
	scoresCmd.Flags().BoolVarP(&flagInteractive, "interactive", "i", false, "Browse scores in an interactive table")
}

func runScores(_ *cobra.Command, args []string) error {
	character := ""
	if len(args) == 1 {
		character = args[0]
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening run database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if character == "" {
			return fmt.Errorf("--clear needs a character")
		}
		if err := store.ClearRuns(character); err != nil {
			return err
		}
		fmt.Printf("Cleared run history for %s\n", character)
		return nil
	}

	if flagInteractive {
		logger := newLogger(os.Stderr, "runner")
		_, catalog, err := loadSetup(logger)
		if err != nil {
			return err
		}
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunScoreboard(store, catalog.Themes, width, height)
	}

	var runs []storage.RunRecord
	title := "High Scores"
	if flagRecent {
		title = "Recent Runs"
		runs, err = store.RecentRuns(flagScoresLimit)
		if err == nil && character != "" {
			runs = filterRuns(runs, character)
		}
	} else {
		runs, err = store.TopRuns(character, flagScoresLimit)
	}
	if err != nil {
		return err
	}

	if character != "" {
		title += " - " + character
	}
	fmt.Println(title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'runner play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-7s  %-8s  %-7s  %-5s  %-10s  %-10s  %s\n",
		"Rank", "Score", "Result", "Dist", "Kinds", "Character", "Player", "Date")
	fmt.Printf("  %-4s  %-7s  %-8s  %-7s  %-5s  %-10s  %-10s  %s\n",
		"----", "-----", "------", "----", "-----", "---------", "------", "----")
	for i, r := range runs {
		result := "crashed"
		if r.Won() {
			result = "finished"
		}
		fmt.Printf("  %-4d  %-7d  %-8s  %-7s  %-5d  %-10s  %-10s  %s\n",
			i+1, r.Score, result, fmt.Sprintf("%dm", int(r.Distance)), len(r.Categories),
			r.Character, r.Player, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	if character == "" {
		if high, err := store.HighScore(""); err == nil {
			fmt.Printf("Best: %d\n", high)
		}
		return nil
	}
	st, err := store.Stats(character)
	if err != nil {
		return err
	}
	fmt.Printf("Best: %d  Runs: %d  Finished: %d  Average: %.0f  Furthest: %dm\n",
		st.HighScore, st.Runs, st.Wins, st.AvgScore, int(st.BestDistance))
	return nil
}

func filterRuns(runs []storage.RunRecord, character string) []storage.RunRecord {
	out := runs[:0]
	for _, r := range runs {
		if strings.EqualFold(r.Character, character) {
			out = append(out, r)
		}
	}
	return out
}
