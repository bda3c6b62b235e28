package main

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/rocket-arcade/internal/platform/tui"
	"github.com/vovakirdan/rocket-arcade/internal/registry"
	"github.com/vovakirdan/rocket-arcade/internal/storage"
)

var (
	flagRunsLimit  int
	flagRunsRecent bool
	flagRunsTUI    bool
	flagRunsClear  bool
)

var runsCmd = &cobra.Command{
	Use:   "runs [scenario]",
	Short: "Show recorded runs",
	Long: `Display the best (or latest) runs for a scenario. Without a scenario,
shows totals for every scenario with recorded runs.

Examples:
  rocket runs
  rocket runs swarm
  rocket runs orbit --recent --limit 5
  rocket runs --tui
  rocket runs drift --clear`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().IntVar(&flagRunsLimit, "limit", 10, "Number of runs to show")
	runsCmd.Flags().BoolVar(&flagRunsRecent, "recent", false, "Show the latest runs instead of the best")
	runsCmd.Flags().BoolVar(&flagRunsTUI, "tui", false, "Browse runs interactively")
	runsCmd.Flags().BoolVar(&flagRunsClear, "clear", false, "Delete every run of the scenario")
}

func runRuns(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return err
	}
	defer store.Close()

	if flagRunsTUI {
		cfg := runtimeConfig()
		_, err := tui.RunRunBoard(store, cfg.ScreenW, cfg.ScreenH)
		return err
	}

	if len(args) == 0 {
		if flagRunsClear {
			return fmt.Errorf("--clear needs a scenario")
		}
		return printAllStats(store)
	}

	id := args[0]
	if err := requireScenario(id); err != nil {
		return err
	}

	if flagRunsClear {
		if err := store.ClearRuns(id); err != nil {
			return err
		}
		logger.Info("runs cleared", "scenario", id)
		return nil
	}

	return printRuns(store, id)
}

func printRuns(store *storage.Store, id string) error {
	var (
		runs []storage.RunRecord
		err  error
	)
	heading := "Top Runs"
	if flagRunsRecent {
		heading = "Recent Runs"
		runs, err = store.RecentRuns(id, flagRunsLimit)
	} else {
		runs, err = store.TopRuns(id, flagRunsLimit)
	}
	if err != nil {
		return err
	}

	title := id
	if g, err := registry.Create(id); err == nil {
		title = g.Title()
	}
	fmt.Printf("%s - %s\n", heading, title)
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'rocket play %s' or 'rocket sim %s' to record one!\n", id, id)
		return nil
	}

	fmt.Printf("  %-4s  %-8s  %-4s  %-5s  %-6s  %-4s  %-18s  %s\n",
		"Rank", "Score", "Wave", "Kills", "Time", "From", "Seed", "Date")
	fmt.Printf("  %-4s  %-8s  %-4s  %-5s  %-6s  %-4s  %-18s  %s\n",
		"----", "-----", "----", "-----", "----", "----", "----", "----")
	for i, r := range runs {
		secs := r.DurationMs / 1000
		fmt.Printf("  %-4d  %-8d  %-4d  %-5d  %-6s  %-4s  %-18d  %s\n",
			i+1, r.Score, r.Wave, r.Kills,
			fmt.Sprintf("%d:%02d", secs/60, secs%60),
			r.Source, r.Seed, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	stats, err := store.ScenarioStats(id)
	if err == nil && stats.Runs > 0 {
		fmt.Println()
		fmt.Printf("Best: %d  Average: %.0f  Runs: %d  Kills: %d\n",
			stats.BestScore, stats.AvgScore, stats.Runs, stats.TotalKills)
	}
	return nil
}

func printAllStats(store *storage.Store) error {
	all, err := store.AllScenarioStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	ids := make([]string, 0, len(all))
	for id := range all {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	fmt.Printf("  %-10s  %-5s  %-8s  %-8s  %-9s  %s\n", "Scenario", "Runs", "Best", "Average", "Best Wave", "Kills")
	fmt.Printf("  %-10s  %-5s  %-8s  %-8s  %-9s  %s\n", "--------", "----", "----", "-------", "---------", "-----")
	for _, id := range ids {
		s := all[id]
		fmt.Printf("  %-10s  %-5d  %-8d  %-8.0f  %-9d  %d\n",
			id, s.Runs, s.BestScore, s.AvgScore, s.BestWave, s.TotalKills)
	}
	return nil
}
