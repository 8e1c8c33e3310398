package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/icearena/internal/registry"
)

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List all available levels",
	Long: `Shows the shipped levels in play order, followed by the YAML levels
found in the configured levels_dir.`,
	Args: cobra.NoArgs,
	RunE: runLevels,
}

func runLevels(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Context(), os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	printLevels(cmd.OutOrStdout(), registry.List())
	return nil
}

func printLevels(w io.Writer, levels []registry.LevelInfo) {
	if len(levels) == 0 {
		fmt.Fprintln(w, "No levels available.")
		return
	}

	fmt.Fprintln(w, "Available levels:")
	fmt.Fprintln(w)

	maxIDLen := 2 // "ID" header
	for _, l := range levels {
		maxIDLen = max(maxIDLen, len(l.ID))
	}

	fmt.Fprintf(w, "  %-*s  %-20s  %5s  %5s  %7s  %s\n", maxIDLen, "ID", "Name", "Waves", "Fruit", "Enemies", "Source")
	fmt.Fprintf(w, "  %-*s  %-20s  %5s  %5s  %7s  %s\n", maxIDLen, "--", "----", "-----", "-----", "-------", "------")
	for _, l := range levels {
		source := l.Source
		if l.Builtin {
			source = "built-in"
		}
		fmt.Fprintf(w, "  %-*s  %-20s  %5d  %5d  %7d  %s\n", maxIDLen, l.ID, l.Name, l.Waves, l.Fruit, l.Enemies, source)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'icearena play --level <id>' to play a level.")
}
