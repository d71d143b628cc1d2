package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var charactersCmd = &cobra.Command{
	Use:   "characters",
	Short: "List characters and pickup categories",
	Long: `Shows the characters of the loaded catalog with their obstacle pools,
followed by the benefit categories that must all be collected to finish.`,
	Args: cobra.NoArgs,
	RunE: runCharacters,
}

func runCharacters(_ *cobra.Command, _ []string) error {
	_, catalog, err := loadSetup(newLogger(os.Stderr, "runner"))
	if err != nil {
		return err
	}

	maxIDLen := 2 // "ID" header
	for _, t := range catalog.Themes {
		maxIDLen = max(maxIDLen, len(t.ID))
	}

	fmt.Println("Characters:")
	fmt.Println()
	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Name")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "----")
	for _, t := range catalog.Themes {
		fmt.Printf("  %-*s  %s %s\n", maxIDLen, t.ID, t.Icon, t.Name)
		for _, o := range t.Obstacles {
			fmt.Printf("  %-*s    %-16s %-10s avoid: %-4s damage: %d\n",
				maxIDLen, "", o.Name, o.Size, o.Avoid, o.Damage)
		}
	}

	fmt.Println()
	fmt.Println("Benefits:")
	fmt.Println()
	for _, c := range catalog.Categories {
		fmt.Printf("  %s %-24s +%-4d %s\n", c.Icon, c.Name, c.Points, c.ShortDesc)
	}

	fmt.Println()
	fmt.Println("Run 'runner play <id>' to play a character.")
	return nil
}
