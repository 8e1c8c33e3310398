package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/icearena/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Ice Arena SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the full menu. Scores and
saved games are shared by everyone on the server.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.icearena/host_key

Examples:
  icearena serve                           # Listen on :23234 with auto-generated key
  icearena serve --ssh :2222               # Listen on port 2222
  icearena serve --host-key ./my_host_key  # Use specific host key
  icearena serve --saves-backend redis     # Keep saves in Redis

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) error {
	if flagLogLevel == "warn" && !cmd.Flags().Changed("log-level") {
		// Session start and end are logged at info.
		flagLogLevel = "info"
	}
	a, err := newApp(cmd.Context(), os.Stderr)
	if err != nil {
		return err
	}
	defer a.Close()

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
	}
	server, err := tui.NewSSHServer(cfg, tui.SessionDeps{
		Store:    a.store,
		Saves:    a.saves,
		Base:     a.cfg,
		NewGame:  a.newGame,
		Logger:   a.logger.WithPrefix("ssh"),
		TickRate: a.cfg.Session.TickRate,
	})
	if err != nil {
		return err
	}

	fmt.Printf("Starting Ice Arena SSH server on %s\n", cfg.Address)
	fmt.Println("Press Ctrl+C to stop")
	return server.ListenAndServe()
}
