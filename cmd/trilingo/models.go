package main

import (
	"context"
	"fmt"

	"github.com/amirulhm/trilingo/internal/config"
	"github.com/amirulhm/trilingo/internal/gemini"
	"github.com/spf13/cobra"
)

var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "List models available to the API key",
	Long:  `List the Gemini models the configured API key can use.`,
	RunE:  runModels,
}

func init() {
	rootCmd.AddCommand(modelsCmd)
}

func runModels(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.ValidateForGenerate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}

	client, err := gemini.New(gemini.Config{
		APIKey: cfg.GeminiAPIKey,
		Model:  cfg.GeminiModel,
	})
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}

	models, err := client.ListModels(ctx)
	if err != nil {
		return fmt.Errorf("list models: %w", err)
	}

	fmt.Printf("Models available to this API key (%d):\n\n", len(models))
	for _, m := range models {
		fmt.Printf("- %s", m.Name)
		if m.DisplayName != "" {
			fmt.Printf("  (%s)", m.DisplayName)
		}
		fmt.Println()
	}

	return nil
}
