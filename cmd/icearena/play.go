package main

import (
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/icearena/internal/config"
	"github.com/vovakirdan/icearena/internal/errors"
	gamecore "github.com/vovakirdan/icearena/internal/games/icearena/core"
	"github.com/vovakirdan/icearena/internal/platform/tui"
)

var (
	flagLevel      string
	flagMode       string
	flagDifficulty string
	flagResume     string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a level",
	Long: `Start playing straight away, skipping the menu.

Modes:
  SINGLE - one player clears every wave before time runs out
  PVP    - two players on one keyboard
  PVM    - player one against a bot
  MVM    - two bots

Controls:
  W/A/S/D, Space, E        - Player 1 move, create ice, break ice
  Arrows, Enter, /         - Player 2 move, create ice, break ice
  P                        - Pause
  R/Enter                  - Restart or next level (after the game ends)
  Ctrl+S                   - Save
  Esc/Q                    - Quit

Difficulty options:
  easy   - fearful bot, 4 minutes
  normal - hungry bot, 3 minutes
  hard   - expert bot, 3 minutes
  expert - expert bot, 2 minutes, ice thaws on every new wave

Examples:
  icearena play
  icearena play --mode SINGLE --level LEVEL_3
  icearena play --mode PVM --difficulty hard
  icearena play --resume latest`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLevel, "level", "", "Level id (see 'icearena levels')")
	playCmd.Flags().StringVar(&flagMode, "mode", "", "Game mode: SINGLE, PVP, PVM, MVM")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, expert")
	playCmd.Flags().StringVar(&flagResume, "resume", "", "Resume a saved game by id, or 'latest'")
}

func runPlay(cmd *cobra.Command, _ []string) error {
	a, err := newApp(cmd.Context(), os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	res := tui.MenuResult{Action: tui.MenuPlay, Choice: tui.ChoiceFromConfig(a.cfg)}
	if flagMode != "" {
		mode, ok := gamecore.ParseMode(flagMode)
		if !ok {
			return errors.InvalidArgumentf("unknown mode %q", flagMode)
		}
		res.Choice.Mode = mode
	}
	if flagLevel != "" {
		res.Choice.LevelID = flagLevel
	}
	if flagDifficulty != "" {
		preset, err := config.ParseDifficulty(flagDifficulty)
		if err != nil {
			return err
		}
		res.Choice.Difficulty = preset
	}
	if flagResume != "" {
		res.Action = tui.MenuResume
		res.SaveID = flagResume
	}

	ctx := cmd.Context()
	game, err := a.newGame(ctx, res)
	if err != nil {
		return err
	}

	cfg := a.runtimeConfig()
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	_, err = tui.Run(game, cfg, a.tuiOptions())
	return err
}
