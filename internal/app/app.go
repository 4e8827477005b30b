package app

import (
	"context"

	"github.com/amirulhm/trilingo/internal/archive"
	"github.com/amirulhm/trilingo/internal/config"
	"github.com/amirulhm/trilingo/internal/diag"
	"github.com/amirulhm/trilingo/internal/gemini"
	"github.com/amirulhm/trilingo/internal/generate"
	"github.com/amirulhm/trilingo/internal/publisher"
)

// App is the main application container holding all dependencies.
type App struct {
	Config    *config.Config
	Store     *archive.Store
	DataDir   *archive.Dir
	Generator *generate.Generator
	Publisher publisher.Publisher
}

// New creates a new application instance with all dependencies wired up.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	// Open archive database
	store, err := archive.NewStore(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, err
	}

	// Run migrations
	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, err
	}

	// Create model client
	model, err := gemini.New(gemini.Config{
		APIKey: cfg.GeminiAPIKey,
		Model:  cfg.GeminiModel,
	})
	if err != nil {
		store.Close()
		return nil, err
	}

	// Create generator
	gen := generate.New(generate.Config{
		Model:           model,
		Recorder:        diag.NewFileRecorder(cfg.DiagnosticsDir),
		ThemeRotation:   cfg.ThemeRotation,
		MaxVocabulary:   cfg.MaxVocabulary,
		Temperature:     cfg.Temperature,
		MaxOutputTokens: cfg.MaxOutputTokens,
	})

	// Create publisher
	pub := publisher.NewNotionPublisher(publisher.NotionConfig{
		Token:      cfg.NotionToken,
		DatabaseID: cfg.NotionDatabaseID,
	})

	return &App{
		Config:    cfg,
		Store:     store,
		DataDir:   archive.NewDir(cfg.DataDir),
		Generator: gen,
		Publisher: pub,
	}, nil
}

// Close closes all resources.
func (a *App) Close() error {
	if a.Store != nil {
		return a.Store.Close()
	}
	return nil
}
