// gridpreview previews auto-generated grid games in the terminal.
//
// Usage:
//
//	gridpreview classify <file>          - Show the detected genre and summary
//	gridpreview play <file>              - Preview a specification
//	gridpreview serve --ssh :23234 <file> - Serve a preview over SSH
//	gridpreview runs                     - Show recorded runs
//
// Global flags:
//
//	--seed <value>   - Set RNG seed for reproducible runs
//	--config <path>  - Use a custom preview config YAML
//	--speed <preset> - slow, normal or fast
//	--db <path>      - Set database path (default: ~/.gridpreview/runs.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridpreview/internal/config"
	"github.com/vovakirdan/gridpreview/internal/diag"
	"github.com/vovakirdan/gridpreview/internal/runtimeops"

	// Import simulations to register them
	_ "github.com/vovakirdan/gridpreview/internal/games/idle"
	_ "github.com/vovakirdan/gridpreview/internal/games/pursuit"
	_ "github.com/vovakirdan/gridpreview/internal/games/puzzle"
)

var (
	// Global flags
	flagSeed   int64
	flagConfig string
	flagSpeed  string
	flagDBPath string
)

var logger = diag.NewLogger(os.Stderr, "gridpreview")

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gridpreview",
	Short: "Preview generated grid games in your terminal",
	Long: `gridpreview reads a runtime operations document (world, systems,
entities), detects which kind of game it describes and runs it.

Available commands:
  classify - Show the detected genre and summary
  play     - Preview a specification in the terminal
  serve    - Start SSH server for remote previews
  runs     - View recorded runs

Examples:
  gridpreview classify ./snake.yaml
  gridpreview play ./blocks.json --speed fast
  gridpreview serve --ssh :2222 ./snake.yaml
  gridpreview runs`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom preview config YAML")
	rootCmd.PersistentFlags().StringVar(&flagSpeed, "speed", "", "Speed preset: slow, normal, fast")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.gridpreview/runs.db", "Path to runs database")

	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runsCmd)
}

// loadConfig resolves the preview config from the global flags.
func loadConfig() (config.PreviewConfig, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}
	if flagSpeed != "" {
		preset := config.SpeedPreset(flagSpeed)
		if !config.IsKnownPreset(preset) {
			return cfg, fmt.Errorf("unknown speed preset %q (want slow, normal or fast)", flagSpeed)
		}
		config.ApplySpeedPreset(&cfg, preset)
	}
	return cfg, nil
}

// loadOps reads and validates a specification file.
func loadOps(path string) (runtimeops.Ops, error) {
	ops, err := runtimeops.Load(path)
	if err != nil {
		return ops, err
	}
	if err := runtimeops.Validate(ops); err != nil {
		return ops, fmt.Errorf("%s: %w", path, err)
	}
	return ops, nil
}
