package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/amirulhm/trilingo/internal/config"
	"github.com/amirulhm/trilingo/internal/publisher"
	"github.com/spf13/cobra"
)

var validateCheckNotion bool

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration",
	Long: `Check that the configuration required for a full daily run is present
and print the effective non-secret settings.`,
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().BoolVar(&validateCheckNotion, "check-notion", false, "also verify the Notion token against the API")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.ValidateForGenerate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	if err := cfg.ValidateForPublish(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	fmt.Println("Configuration validation passed")
	fmt.Println()
	fmt.Println("Current configuration:")
	fmt.Printf("  Gemini model: %s\n", cfg.GeminiModel)
	fmt.Printf("  Max vocabulary: %d\n", cfg.MaxVocabulary)
	fmt.Printf("  Theme rotation: %s\n", strings.Join(cfg.ThemeRotation, ", "))
	fmt.Printf("  Temperature: %.2f\n", cfg.Temperature)
	fmt.Printf("  Data dir: %s\n", cfg.DataDir)
	fmt.Printf("  Diagnostics dir: %s\n", cfg.DiagnosticsDir)
	fmt.Printf("  Database: %s\n", cfg.DatabasePath)
	fmt.Printf("  Notion database: %s...\n", prefixID(cfg.NotionDatabaseID))

	if validateCheckNotion {
		pub := publisher.NewNotionPublisher(publisher.NotionConfig{
			Token:      cfg.NotionToken,
			DatabaseID: cfg.NotionDatabaseID,
		})
		if err := pub.ValidateCredentials(context.Background()); err != nil {
			return fmt.Errorf("notion credentials: %w", err)
		}
		fmt.Println("  Notion credentials: OK")
	}

	return nil
}

// prefixID shows just enough of an identifier to confirm which one is set.
func prefixID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
