package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/gridpreview/internal/genre"
	"github.com/vovakirdan/gridpreview/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the genres that can be previewed",
	Long:  `Shows every genre with a registered simulation and its controls.`,
	Run:   runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) {
	genres := registry.List()
	out := cmd.OutOrStdout()

	if len(genres) == 0 {
		fmt.Fprintln(out, "No simulations registered.")
		return
	}

	fmt.Fprintln(out, "Available genres:")
	fmt.Fprintln(out)
	for _, g := range genres {
		fmt.Fprintf(out, "  %-8s  %s\n", g, genre.Plan{Genre: g}.ControlHint())
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'gridpreview classify <file>' to see which one a file uses.")
}
