package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/icearena/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the interactive menu",
	Long: `Start Ice Arena in interactive menu mode.

Pick a mode, level, flavours and difficulty on the new game form, continue
a saved game or browse high scores. After a game you return to the menu.

Controls:
  Up/Down/j/k      - Navigate
  Left/Right/h/l   - Change a setting
  Enter/Space      - Select
  X                - Delete a saved game
  Esc              - Back
  Q                - Quit

Examples:
  icearena menu
  icearena menu --fps 30
  icearena menu --db ./scores.db`,
	RunE: runMenu,
}

func runMenu(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Context(), os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	cfg := a.runtimeConfig()
	message := ""

	for {
		res, err := tui.RunMenu(cfg, a.cfg, a.saves, message)
		if err != nil {
			return err
		}
		cfg = res.Config
		message = ""

		switch res.Action {
		case tui.MenuScores:
			goBack, sbErr := tui.RunScoreboard(a.store, cfg.ScreenW, cfg.ScreenH)
			if sbErr != nil {
				return sbErr
			}
			if !goBack {
				return nil
			}
			continue

		case tui.MenuPlay, tui.MenuResume:
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			game, gameErr := a.newGame(ctx, res)
			cancel()
			if gameErr != nil {
				a.logger.Warn("could not start game", "err", gameErr)
				message = fmt.Sprintf("Could not start game: %v", gameErr)
				continue
			}

			if flagSeed == 0 {
				cfg.Seed = time.Now().UnixNano()
			}
			quit, runErr := tui.Run(game, cfg, a.tuiOptions())
			if runErr != nil {
				return runErr
			}
			if quit {
				return nil
			}

		default:
			return nil
		}
	}
}
