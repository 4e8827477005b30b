package main

import (
	"context"
	"fmt"
	"os"

	"github.com/amirulhm/trilingo/internal/archive"
	"github.com/amirulhm/trilingo/internal/config"
	"github.com/spf13/cobra"
)

var backfillCmd = &cobra.Command{
	Use:   "backfill [start-date] [end-date]",
	Short: "Fill missing dates with the most recent lesson",
	Long: `Copy the most recent archived lesson into every missing date between
start and end (inclusive), so historical date lookups never come back empty.

Dates are YYYY-MM-DD. They may also be supplied via the INPUT_START_DATE and
INPUT_END_DATE environment variables for workflow use.

Example:
  trilingo backfill 2026-01-12 2026-01-15`,
	Args: cobra.MaximumNArgs(2),
	RunE: runBackfill,
}

func init() {
	rootCmd.AddCommand(backfillCmd)
}

func runBackfill(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	startDate, endDate := os.Getenv("INPUT_START_DATE"), os.Getenv("INPUT_END_DATE")
	if len(args) == 2 {
		startDate, endDate = args[0], args[1]
	}
	if startDate == "" || endDate == "" {
		return fmt.Errorf("start and end dates are required (arguments or INPUT_START_DATE/INPUT_END_DATE)")
	}

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

	if err := store.Migrate(ctx); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}

	created, err := archive.Backfill(ctx, archive.NewDir(cfg.DataDir), store, startDate, endDate)
	if err != nil {
		return fmt.Errorf("backfill: %w", err)
	}

	if len(created) == 0 {
		fmt.Println("No lessons created (all dates already exist).")
		return nil
	}

	fmt.Printf("Backfilled %d dates:\n", len(created))
	for _, date := range created {
		fmt.Printf("  %s\n", date)
	}
	return nil
}
