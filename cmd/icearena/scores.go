package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/icearena/internal/errors"
	gamecore "github.com/vovakirdan/icearena/internal/games/icearena/core"
	"github.com/vovakirdan/icearena/internal/storage"
)

var flagScoresLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores [mode]",
	Short: "Show high scores",
	Long: `Display the top scores for a mode, or for every mode that records
scores when no mode is given. Bot-only games record no scores.

Examples:
  icearena scores
  icearena scores SINGLE
  icearena scores pvp --limit 20`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of scores per mode")
}

func runScores(cmd *cobra.Command, args []string) error {
	modes := []gamecore.Mode{gamecore.ModeSingle, gamecore.ModePVP, gamecore.ModePVM}
	if len(args) == 1 {
		mode, ok := gamecore.ParseMode(args[0])
		if !ok {
			return errors.InvalidArgumentf("unknown mode %q", args[0])
		}
		modes = []gamecore.Mode{mode}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return errors.WrapWithCode(err, errors.CodeUnavailable, "open scores database")
	}
	defer store.Close()

	out := cmd.OutOrStdout()
	for i, mode := range modes {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if err := printScores(out, store, string(mode), flagScoresLimit); err != nil {
			return err
		}
	}
	return nil
}

func printScores(w io.Writer, store *storage.Store, mode string, limit int) error {
	scores, err := store.TopScores(mode, limit)
	if err != nil {
		return errors.Wrapf(err, "read %s scores", mode)
	}

	fmt.Fprintf(w, "High Scores - %s\n", mode)
	fmt.Fprintln(w)

	if len(scores) == 0 {
		fmt.Fprintln(w, "No scores recorded yet.")
		return nil
	}

	fmt.Fprintf(w, "  %-4s  %-16s  %-10s  %-8s  %s\n", "Rank", "Player", "Level", "Score", "Date")
	fmt.Fprintf(w, "  %-4s  %-16s  %-10s  %-8s  %s\n", "----", "------", "-----", "-----", "----")
	for i, e := range scores {
		fmt.Fprintf(w, "  %-4d  %-16s  %-10s  %-8d  %s\n",
			i+1, e.Player, e.LevelID, e.Score, e.CreatedAt.Local().Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetModeStats(mode); err == nil && stats != nil {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Best: %d   Games: %d   Average: %.0f\n", stats.HighScore, stats.GamesCount, stats.AvgScore)
	}
	return nil
}
