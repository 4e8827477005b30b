package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirulhm/trilingo/internal/app"
	"github.com/amirulhm/trilingo/internal/config"
	"github.com/spf13/cobra"
)

var (
	generateDryRun    bool
	generateNoPublish bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate and publish today's lesson",
	Long: `Generate today's trilingual vocabulary lesson, archive it, and
publish it to the configured Notion database.

Example:
  trilingo generate
  trilingo generate --dry-run`,
	RunE: runGenerate,
}

func init() {
	generateCmd.Flags().BoolVar(&generateDryRun, "dry-run", false, "print the lesson JSON without archiving or publishing")
	generateCmd.Flags().BoolVar(&generateNoPublish, "no-publish", false, "archive the lesson but skip Notion")
	rootCmd.AddCommand(generateCmd)
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	start := time.Now()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.ValidateForGenerate(); err != nil {
		return fmt.Errorf("validate config: %w", err)
	}
	if !generateDryRun && !generateNoPublish {
		if err := cfg.ValidateForPublish(); err != nil {
			return fmt.Errorf("validate config: %w", err)
		}
	}

	a, err := app.New(ctx, cfg)
	if err != nil {
		return fmt.Errorf("initialize app: %w", err)
	}
	defer a.Close()

	content, err := a.Generator.Daily(ctx)
	if err != nil {
		return fmt.Errorf("generate lesson: %w", err)
	}

	contentJSON, err := content.JSON()
	if err != nil {
		return fmt.Errorf("serialize lesson: %w", err)
	}

	if generateDryRun {
		fmt.Println(string(contentJSON))
		return nil
	}

	date := time.Now().Format("2006-01-02")
	if err := a.DataDir.WriteLesson(date, contentJSON); err != nil {
		return fmt.Errorf("archive lesson file: %w", err)
	}
	if err := a.Store.SaveLesson(ctx, date, content.Theme, len(content.VocabularyFocus), string(contentJSON)); err != nil {
		return fmt.Errorf("archive lesson: %w", err)
	}
	slog.Info("archived lesson", "date", date, "theme", content.Theme)

	if generateNoPublish {
		fmt.Printf("Lesson archived for %s: %s (%d vocabulary items)\n",
			date, content.Theme, len(content.VocabularyFocus))
		return nil
	}

	result, err := a.Publisher.Publish(ctx, content)
	if err != nil {
		return fmt.Errorf("publish lesson: %w", err)
	}

	fmt.Println("=== Lesson Published ===")
	fmt.Printf("Theme: %s\n", content.Theme)
	fmt.Printf("Vocabulary items: %d\n", len(content.VocabularyFocus))
	fmt.Printf("Quiz questions: %d\n", len(content.QuizToggle))
	fmt.Printf("Page: %s\n", result.PageURL)
	fmt.Printf("Completed in %s\n", time.Since(start).Round(time.Millisecond))

	return nil
}
