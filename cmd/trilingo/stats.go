package main

import (
	"context"
	"fmt"

	"github.com/amirulhm/trilingo/internal/archive"
	"github.com/amirulhm/trilingo/internal/config"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show archive statistics",
	Long:  `Display statistics about archived lessons.`,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.ValidateForArchive(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	store, err := archive.NewStore(ctx, cfg.DatabasePath)
	if err != nil {
		return fmt.Errorf("open archive: %w", err)
	}
	defer store.Close()

	// Ensure migrations are run
	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	stats, err := store.Stats(ctx)
	if err != nil {
		return fmt.Errorf("query stats: %w", err)
	}

	fmt.Println("=== Trilingo Archive ===")
	fmt.Println()
	fmt.Printf("Database: %s\n", cfg.DatabasePath)
	fmt.Println()
	fmt.Printf("Lessons: %d\n", stats.Total)
	if stats.Total > 0 {
		fmt.Printf("  First: %s\n", stats.FirstDate)
		fmt.Printf("  Last: %s\n", stats.LastDate)
		fmt.Println()
		fmt.Println("  By theme:")
		for theme, count := range stats.ThemeCount {
			fmt.Printf("    %s: %d\n", theme, count)
		}
	}

	return nil
}
