package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridpreview/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve <file>",
	Short: "Start the preview SSH server",
	Long: `Start an SSH server that previews one specification.

Each SSH connection gets its own run. Finished runs are recorded in the
server's database.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.gridpreview/host_key

Examples:
  gridpreview serve ./snake.yaml              # Listen on :23234
  gridpreview serve --ssh :2222 ./blocks.json # Listen on port 2222
  gridpreview serve --db ./runs.db ./snake.yaml

Users can connect with:
  ssh localhost -p 23234`,
	Args: cobra.ExactArgs(1),
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(_ *cobra.Command, args []string) error {
	ops, err := loadOps(args[0])
	if err != nil {
		return err
	}
	previewCfg, err := loadConfig()
	if err != nil {
		return err
	}

	cfg := tui.SSHServerConfig{
		Address:     flagSSHAddr,
		HostKeyPath: flagHostKey,
		DBPath:      flagDBPath,
		IdleTimeout: time.Duration(flagIdleTimeout) * time.Minute,
		Preview:     previewCfg,
		Seed:        flagSeed,
	}

	server, err := tui.NewSSHServer(cfg, ops, logger)
	if err != nil {
		return err
	}

	fmt.Printf("Previewing %s over SSH on %s\n", args[0], cfg.Address)
	fmt.Println("Connect with: ssh localhost -p 23234")
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
