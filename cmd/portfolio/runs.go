package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-portfolio/internal/storage"
	"github.com/vovakirdan/tui-portfolio/internal/world"
)

var (
	flagRunsLimit int
	flagRunsTop   bool
	flagRunsStats bool
	flagRunsClear bool
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Show run history",
	Long: `Display recorded runs. History is only kept when a database is
configured with --db or storage.db_path.

Examples:
  portfolio runs --db ~/.portfolio/runs.db
  portfolio runs --db ~/.portfolio/runs.db --top
  portfolio runs --db ~/.portfolio/runs.db --stats`,
	Run: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsTop, "top", false, "Order by score instead of date")
	runsCmd.Flags().BoolVar(&flagRunsStats, "stats", false, "Show aggregate statistics")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete the whole history")
}

func runRuns(_ *cobra.Command, _ []string) {
	cfg := loadConfig()
	if cfg.Storage.DBPath == "" {
		fail("opening run history", errors.New("run history is disabled; pass --db"))
	}

	store, err := storage.Open(cfg.Storage.DBPath)
	if err != nil {
		fail("opening run history", err)
	}
	defer store.Close()

	switch {
	case flagRunsClear:
		if err := store.ClearRuns(); err != nil {
			log.Error("clear failed", "error", err)
			return
		}
		fmt.Println("Run history cleared.")
	case flagRunsStats:
		printStats(store)
	default:
		printRuns(store)
	}
}

func printRuns(store *storage.Store) {
	var runs []storage.Run
	var err error
	if flagRunsTop {
		runs, err = store.TopRuns(flagRunsLimit)
	} else {
		runs, err = store.RecentRuns(flagRunsLimit)
	}
	if err != nil {
		fail("retrieving runs", err)
	}

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Play 'portfolio play --db <path>' to record one.")
		return
	}

	fmt.Printf("  %-16s  %-6s  %-5s  %-8s  %-16s  %s\n", "Session", "Source", "Score", "Time", "Date", "Boxes")
	fmt.Printf("  %-16s  %-6s  %-5s  %-8s  %-16s  %s\n", "-------", "------", "-----", "----", "----", "-----")
	for _, r := range runs {
		fmt.Printf("  %-16s  %-6s  %-5d  %-8s  %-16s  %s\n",
			truncate(r.Session, 16), r.Source, r.Score,
			r.Duration.Round(time.Second), r.CreatedAt.Format("2006-01-02 15:04"), boxList(r.Boxes))
	}
}

func printStats(store *storage.Store) {
	stats, err := store.Stats()
	if err != nil {
		fail("retrieving stats", err)
	}
	fmt.Printf("Runs:       %d\n", stats.Runs)
	fmt.Printf("Best score: %d\n", stats.BestScore)
	fmt.Printf("Average:    %.1f\n", stats.AvgScore)
	if !stats.LastPlayed.IsZero() {
		fmt.Printf("Last run:   %s\n", stats.LastPlayed.Format("2006-01-02 15:04"))
	}
	fmt.Println()
	fmt.Println("Boxes opened:")
	for _, id := range world.Order {
		fmt.Printf("  %-10s  %d\n", id, stats.BoxCounts[id])
	}
}

func boxList(ids []world.BoxID) string {
	if len(ids) == 0 {
		return "-"
	}
	s := ""
	for i, id := range ids {
		if i > 0 {
			s += ","
		}
		s += id.String()
	}
	return s
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
