package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridpreview/internal/diag"
	"github.com/vovakirdan/gridpreview/internal/genre"
)

var classifyCmd = &cobra.Command{
	Use:   "classify <file>",
	Short: "Show the detected genre and summary",
	Long: `Detect the genre of a specification without running it.

Attribute problems found while reading the pursuer entity are listed
below the summary; they never stop a preview.

Examples:
  gridpreview classify ./snake.yaml
  gridpreview classify ./blocks.json`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func runClassify(cmd *cobra.Command, args []string) error {
	ops, err := loadOps(args[0])
	if err != nil {
		return err
	}

	notes := diag.NewRecorder(diag.Discard)
	plan, err := genre.Detect(ops, notes)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Genre: %s\n", plan.Genre)
	fmt.Fprintln(out, plan.Summary())

	if plan.Pursuit != nil {
		seed := plan.Pursuit
		fmt.Fprintf(out, "Pursuer: start (%d,%d) length %d color %s\n",
			seed.Start.X, seed.Start.Y, seed.Length, seed.Color.Hex())
	}

	if entries := notes.Entries(); len(entries) > 0 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Notes:")
		for _, e := range entries {
			fmt.Fprintf(out, "  %s\n", e)
		}
	}
	return nil
}
