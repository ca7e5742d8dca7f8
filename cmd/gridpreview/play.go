package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gridpreview/internal/platform/tui"
	"github.com/vovakirdan/gridpreview/internal/preview"
	"github.com/vovakirdan/gridpreview/internal/storage"
)

var flagNoHistory bool

var playCmd = &cobra.Command{
	Use:   "play <file>",
	Short: "Preview a specification",
	Long: `Detect the genre of a specification and run it in the terminal.

Controls:
  Arrows/WASD - Steer (pursuit) or move, rotate and soft drop (puzzle)
  Space       - Accelerate
  R           - Restart the run
  ?           - Toggle help
  Q/Esc       - Quit

Examples:
  gridpreview play ./snake.yaml
  gridpreview play ./blocks.json --seed 42
  gridpreview play ./snake.yaml --speed slow --config ./preview.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagNoHistory, "no-history", false, "Do not record the run")
}

func runPlay(cmd *cobra.Command, args []string) error {
	ops, err := loadOps(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	opts := preview.Options{
		Config: cfg,
		Seed:   flagSeed,
		Manual: true,
		Logger: logger,
	}

	// Open run history
	if !flagNoHistory {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			// Continue without history - the preview still works
			logger.Warn("could not open runs database", "path", flagDBPath, "err", err)
		} else {
			defer store.Close()
			opts.Recorder = store
		}
	}

	p := preview.New(opts)
	defer p.Close()

	info, err := p.Start(context.Background(), ops)
	if err != nil {
		return err
	}

	// Warn early when the grid cannot fit
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		if f, ok := p.Frame(); ok {
			fw, fh := tui.FrameSize(f)
			if fw > w || fh+3 > h {
				logger.Warn("terminal smaller than the grid", "need", fmt.Sprintf("%dx%d", fw, fh+3),
					"have", fmt.Sprintf("%dx%d", w, h))
			}
		}
	}

	if err := tui.Run(p, ops, info); err != nil {
		return fmt.Errorf("running preview: %w", err)
	}
	return nil
}
