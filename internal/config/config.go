package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// defaultThemeRotation is used when THEME_ROTATION is unset or resolves to
// nothing (an empty secret in CI shows up as a set-but-empty variable).
var defaultThemeRotation = []string{"work", "life", "tech"}

// Config holds all application configuration.
type Config struct {
	// Gemini API
	GeminiAPIKey string
	GeminiModel  string

	// Notion
	NotionToken      string
	NotionDatabaseID string

	// Generation
	MaxVocabulary   int
	ThemeRotation   []string
	Temperature     float32
	MaxOutputTokens int

	// Paths
	DataDir        string
	DiagnosticsDir string
	DatabasePath   string

	// Logging
	LogLevel string
}

// Load reads configuration from environment variables.
// It automatically loads .env file if present.
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		GeminiAPIKey:     getEnv("GEMINI_API_KEY", ""),
		GeminiModel:      getEnv("GEMINI_MODEL", "models/gemini-1.5-flash"),
		NotionToken:      getEnv("NOTION_TOKEN", ""),
		NotionDatabaseID: getEnv("NOTION_DATABASE_ID", ""),
		MaxVocabulary:    parseMaxVocabulary(os.Getenv("MAX_VOCABULARY")),
		ThemeRotation:    parseThemeRotation(os.Getenv("THEME_ROTATION")),
		DataDir:          getEnv("DATA_DIR", "data"),
		DiagnosticsDir:   getEnv("DIAGNOSTICS_DIR", "diagnostics"),
		DatabasePath:     getEnv("DATABASE_PATH", "data/trilingo.db"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}

	temp, err := strconv.ParseFloat(getEnv("GEMINI_TEMPERATURE", "0.7"), 32)
	if err != nil {
		return nil, fmt.Errorf("invalid GEMINI_TEMPERATURE: %w", err)
	}
	cfg.Temperature = float32(temp)

	maxTokens, err := strconv.Atoi(getEnv("MAX_OUTPUT_TOKENS", "4000"))
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_OUTPUT_TOKENS: %w", err)
	}
	cfg.MaxOutputTokens = maxTokens

	return cfg, nil
}

// Validate checks that required configuration is present.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("DATA_DIR is required")
	}
	if len(c.ThemeRotation) == 0 {
		return fmt.Errorf("THEME_ROTATION cannot be empty")
	}
	return nil
}

// ValidateForGenerate checks configuration needed for lesson generation.
func (c *Config) ValidateForGenerate() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.GeminiAPIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required for generation")
	}
	return nil
}

// ValidateForPublish checks configuration needed for publishing to Notion.
func (c *Config) ValidateForPublish() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.NotionToken == "" {
		return fmt.Errorf("NOTION_TOKEN is required for publishing")
	}
	if c.NotionDatabaseID == "" {
		return fmt.Errorf("NOTION_DATABASE_ID is required for publishing")
	}
	return nil
}

// ValidateForArchive checks configuration needed for the lesson archive.
func (c *Config) ValidateForArchive() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.DatabasePath == "" {
		return fmt.Errorf("DATABASE_PATH is required")
	}
	return nil
}

// parseMaxVocabulary parses MAX_VOCABULARY, falling back to 6 on unset,
// empty, or garbage values (an empty CI secret must not break the daily run).
func parseMaxVocabulary(raw string) int {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 6
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		slog.Warn("invalid MAX_VOCABULARY, falling back to 6", "value", raw)
		return 6
	}
	return n
}

// parseThemeRotation splits THEME_ROTATION on commas, trimming entries and
// dropping empty ones; an empty result falls back to the default rotation.
func parseThemeRotation(raw string) []string {
	var themes []string
	for _, part := range strings.Split(raw, ",") {
		if t := strings.TrimSpace(part); t != "" {
			themes = append(themes, t)
		}
	}
	if len(themes) == 0 {
		return append([]string(nil), defaultThemeRotation...)
	}
	return themes
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
