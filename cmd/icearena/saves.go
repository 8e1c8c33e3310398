package main

import (
	"fmt"
	"io"
	"os"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/icearena/internal/errors"
	"github.com/vovakirdan/icearena/internal/saves"
)

var flagClipboard bool

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "Manage saved games",
	Long: `List, delete or export saved games. Games are saved with Ctrl+S while
playing and stored in the configured saves backend.

Examples:
  icearena saves
  icearena saves delete save_1f0c...
  icearena saves export latest --clipboard
  icearena saves --saves-backend redis`,
	Args: cobra.NoArgs,
	RunE: runSavesList,
}

var savesDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a saved game",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavesDelete,
}

var savesExportCmd = &cobra.Command{
	Use:   "export <id|latest>",
	Short: "Print a saved game as JSON",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavesExport,
}

func init() {
	savesExportCmd.Flags().BoolVar(&flagClipboard, "clipboard", false, "Copy the document to the clipboard instead of printing it")
	savesCmd.AddCommand(savesDeleteCmd)
	savesCmd.AddCommand(savesExportCmd)
}

// withSaves runs fn against the saves service, failing when no backend
// could be opened.
func withSaves(cmd *cobra.Command, fn func(a *app, svc *saves.Service) error) error {
	a, err := newApp(cmd.Context(), os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()
	if a.saves == nil {
		return errors.Unavailable("saves backend is not available")
	}
	return fn(a, a.saves)
}

func runSavesList(cmd *cobra.Command, _ []string) error {
	return withSaves(cmd, func(_ *app, svc *saves.Service) error {
		slots, err := svc.List(cmd.Context())
		if err != nil {
			return err
		}
		printSlots(cmd.OutOrStdout(), slots)
		return nil
	})
}

func printSlots(w io.Writer, slots []*saves.Slot) {
	if len(slots) == 0 {
		fmt.Fprintln(w, "No saved games.")
		return
	}
	fmt.Fprintf(w, "  %-42s  %-24s  %-6s  %-10s  %6s  %s\n", "ID", "Name", "Mode", "Level", "Score", "Saved")
	for _, s := range slots {
		fmt.Fprintf(w, "  %-42s  %-24s  %-6s  %-10s  %6d  %s\n",
			s.ID, s.Name, s.Mode, s.LevelID, s.Score, s.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
}

func runSavesDelete(cmd *cobra.Command, args []string) error {
	return withSaves(cmd, func(_ *app, svc *saves.Service) error {
		if err := svc.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	})
}

func runSavesExport(cmd *cobra.Command, args []string) error {
	return withSaves(cmd, func(a *app, svc *saves.Service) error {
		id := args[0]
		if id == "latest" {
			slot, err := svc.Latest(cmd.Context())
			if err != nil {
				return err
			}
			id = slot.ID
		}
		doc, err := svc.Export(cmd.Context(), id)
		if err != nil {
			return err
		}

		if !flagClipboard {
			fmt.Fprintln(cmd.OutOrStdout(), doc)
			return nil
		}
		if err := clipboard.WriteAll(doc); err != nil {
			return errors.WrapWithCode(err, errors.CodeUnavailable, "copy to clipboard")
		}
		a.logger.Info("copied save to clipboard", "slot", id)
		fmt.Fprintf(cmd.OutOrStdout(), "Copied %s to the clipboard\n", id)
		return nil
	})
}
