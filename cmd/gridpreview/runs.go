package main

import (
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/gridpreview/internal/platform/tui"
	"github.com/vovakirdan/gridpreview/internal/storage"
)

var (
	flagRunsLimit       int
	flagRunsInteractive bool
	flagRunsClear       bool
	flagRunsStats       bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show recorded runs",
	Long: `Display the most recent preview runs.

Examples:
  gridpreview runs
  gridpreview runs --limit 50
  gridpreview runs --stats
  gridpreview runs -i
  gridpreview runs --clear`,
	Args: cobra.NoArgs,
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVarP(&flagRunsLimit, "limit", "n", 10, "Number of runs to show")
	runsCmd.Flags().BoolVarP(&flagRunsInteractive, "interactive", "i", false, "Browse runs in a table")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete all recorded runs")
	runsCmd.Flags().BoolVar(&flagRunsStats, "stats", false, "Show per-genre totals")
}

func runRuns(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	switch {
	case flagRunsClear:
		if err := store.ClearRuns(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Run history cleared.")
		return nil

	case flagRunsInteractive:
		width, height := 80, 24
		if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
			width, height = w, h
		}
		return tui.RunHistory(store, width, height)

	case flagRunsStats:
		return printGenreStats(cmd, store)
	}

	runs, err := store.RecentRuns(flagRunsLimit)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintln(out, "Run 'gridpreview play <file>' to record one.")
		return nil
	}

	fmt.Fprintln(out, "Recent runs:")
	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-14s  %-8s  %-7s  %8s  %6s  %10s\n", "When", "Genre", "Grid", "Score", "Resets", "Ticks")
	fmt.Fprintf(out, "  %-14s  %-8s  %-7s  %8s  %6s  %10s\n", "----", "-----", "----", "-----", "------", "-----")
	for _, row := range tui.HistoryRows(runs, time.Now()) {
		fmt.Fprintf(out, "  %-14s  %-8s  %-7s  %8s  %6s  %10s\n", row[0], row[1], row[2], row[3], row[4], row[5])
	}
	return nil
}

func printGenreStats(cmd *cobra.Command, store *storage.Store) error {
	stats, err := store.AllGenreStats()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(stats) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}

	genres := make([]string, 0, len(stats))
	for g := range stats {
		genres = append(genres, g)
	}
	sort.Strings(genres)

	fmt.Fprintf(out, "  %-8s  %6s  %6s  %8s  %12s  %s\n", "Genre", "Runs", "Best", "Avg", "Ticks", "Last")
	for _, g := range genres {
		st := stats[g]
		fmt.Fprintf(out, "  %-8s  %6d  %6s  %8.1f  %12s  %s\n",
			st.Genre, st.Runs, humanize.Comma(int64(st.BestScore)), st.AvgScore,
			humanize.Comma(st.Ticks), humanize.Time(st.LastRun))
	}
	return nil
}
