// icearena is a terminal ice arena game: flavoured players collect fruit
// waves, build and break ice and dodge monsters, alone, against each other
// or against bots.
//
// Usage:
//
//	icearena menu             - Start the interactive menu
//	icearena play             - Play a level directly
//	icearena levels           - List available levels
//	icearena scores [mode]    - Show high scores
//	icearena saves            - List, delete or export saved games
//	icearena serve            - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: from config, 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.icearena/scores.db)
//	--config <path>       - Use a specific config file
//	--log-level <level>   - debug, info, warn or error
//	--saves-backend <b>   - sqlite, redis or postgres
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS          int
	flagSeed         int64
	flagDBPath       string
	flagConfig       string
	flagLogLevel     string
	flagSavesBackend string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "icearena",
	Short: "Ice Arena - collect fruit, build ice, outrun monsters",
	Long: `Ice Arena is a tile-based arena game for one or two players in the
terminal. Players freeze and thaw rows of ice, collect waves of fruit and
avoid monsters until the level is cleared or the clock runs out.

Available commands:
  menu     - Interactive menu (default)
  play     - Play a level directly
  levels   - Show all available levels
  scores   - View high scores
  saves    - Manage saved games
  serve    - Start SSH server for remote play

Examples:
  icearena
  icearena play --mode PVP --level LEVEL_2
  icearena play --resume latest
  icearena serve --ssh :2222
  icearena scores PVM`,
	SilenceUsage: true,
	RunE:         runMenu,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 0, "Tick rate (0 = use config)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.icearena/scores.db", "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to icearena YAML config")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagSavesBackend, "saves-backend", "", "Saves backend: sqlite, redis, postgres (default: config)")

	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(serveCmd)
}
