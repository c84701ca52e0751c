package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/shrinking-snake/internal/game"
	"github.com/vovakirdan/shrinking-snake/internal/storage"
)

var flagLimit int

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Show the best runs",
	Long: `Display the best recorded runs with their final board size and length.

Examples:
  snake scores
  snake scores --limit 25
  snake scores export runs.parquet`,
	Args: cobra.NoArgs,
	RunE: runScores,
}

var exportCmd = &cobra.Command{
	Use:   "export <file.parquet>",
	Short: "Export all runs to a parquet file",
	Long: `Write every recorded run to a zstd-compressed parquet file.

Examples:
  snake scores export runs.parquet
  snake scores export --db ./scores.db /tmp/runs.parquet`,
	Args: cobra.ExactArgs(1),
	RunE: runExport,
}

func init() {
	scoresCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to show")
	scoresCmd.AddCommand(exportCmd)
}

func runScores(_ *cobra.Command, _ []string) error {
	if flagLimit <= 0 {
		return fmt.Errorf("--limit must be positive, got %d", flagLimit)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	runs, err := store.TopRuns(flagLimit)
	if err != nil {
		return fmt.Errorf("error retrieving scores: %w", err)
	}

	fmt.Println("High Scores - Shrinking Snake")
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Println("Run 'snake play' to set the first high score!")
		return nil
	}

	fmt.Printf("  %-4s  %-6s  %-6s  %-6s  %-16s  %-8s  %s\n", "Rank", "Score", "Board", "Length", "Ended by", "Time", "Date")
	fmt.Printf("  %-4s  %-6s  %-6s  %-6s  %-16s  %-8s  %s\n", "----", "-----", "-----", "------", "--------", "----", "----")

	for i, r := range runs {
		fmt.Printf("  %-4d  %-6d  %-6d  %-6d  %-16s  %-8s  %s\n",
			i+1, r.Score, r.Side, r.Length, r.Cause,
			r.Duration.Round(time.Second),
			r.CreatedAt.Local().Format("2006-01-02 15:04"),
		)
	}

	fmt.Println()
	if best, err := game.LoadBest(store); err == nil {
		fmt.Printf("Best: %d\n", best)
	}
	if stats, err := store.Stats(); err == nil {
		fmt.Printf("Games: %d  Average: %.1f  Smallest board: %d\n", stats.Games, stats.AvgScore, stats.SmallestSide)
	}
	return nil
}

func runExport(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening scores database: %w", err)
	}
	defer store.Close()

	n, err := store.ExportParquet(args[0])
	if err != nil {
		return fmt.Errorf("error exporting runs: %w", err)
	}
	fmt.Printf("Exported %d runs to %s\n", n, args[0])
	return nil
}
