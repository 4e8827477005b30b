// Package generate drives the daily lesson generation loop: theme selection,
// prompt construction, model invocation, and a bounded retry policy around
// extraction and validation.
package generate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/amirulhm/trilingo/internal/diag"
	"github.com/amirulhm/trilingo/internal/extract"
	"github.com/amirulhm/trilingo/internal/lesson"
)

const (
	defaultTemperature     = 0.7
	defaultMaxOutputTokens = 4000
	defaultAttempts        = 3
	defaultMaxVocabulary   = 6

	// logPrefixLen bounds raw response text in log output.
	logPrefixLen = 500
)

// ErrNoContent is returned when every attempt was exhausted without a valid
// lesson. Nothing else escapes the generator boundary.
var ErrNoContent = errors.New("no valid lesson content after all attempts")

// Model is the narrow surface the generator needs from an LLM client. An
// empty text with a nil error means the model returned no candidates, which
// is a handled outcome rather than an error.
type Model interface {
	Generate(ctx context.Context, prompt string, temperature float32, maxTokens int) (string, error)
}

// Config holds the explicit knobs for a Generator. Zero values fall back to
// the defaults above.
type Config struct {
	Model         Model
	Recorder      diag.Recorder
	ThemeRotation []string
	MaxVocabulary int

	// Temperature for the first attempt; retries always use zero.
	Temperature     float32
	MaxOutputTokens int
	Attempts        int

	// Now is overridable for deterministic theme selection in tests.
	Now func() time.Time
}

// Generator produces validated daily lessons.
type Generator struct {
	model         Model
	recorder      diag.Recorder
	rotation      []string
	maxVocabulary int
	temperature   float32
	maxTokens     int
	attempts      int
	now           func() time.Time
}

// New creates a Generator from cfg.
func New(cfg Config) *Generator {
	g := &Generator{
		model:         cfg.Model,
		recorder:      cfg.Recorder,
		rotation:      cfg.ThemeRotation,
		maxVocabulary: cfg.MaxVocabulary,
		temperature:   cfg.Temperature,
		maxTokens:     cfg.MaxOutputTokens,
		attempts:      cfg.Attempts,
		now:           cfg.Now,
	}
	if g.recorder == nil {
		g.recorder = diag.Nop{}
	}
	if g.maxVocabulary <= 0 {
		g.maxVocabulary = defaultMaxVocabulary
	}
	if g.temperature == 0 {
		g.temperature = defaultTemperature
	}
	if g.maxTokens <= 0 {
		g.maxTokens = defaultMaxOutputTokens
	}
	if g.attempts <= 0 {
		g.attempts = defaultAttempts
	}
	if g.now == nil {
		g.now = time.Now
	}
	return g
}

// Daily generates the lesson for today. It either returns a fully validated
// lesson or ErrNoContent; a partially valid object is never returned and no
// failure escapes as anything else.
func (g *Generator) Daily(ctx context.Context) (*lesson.Content, error) {
	theme := SelectTheme(g.now(), g.rotation)
	slog.Info("selected theme", "theme", theme)

	prompt := fmt.Sprintf(lessonPrompt, theme, g.maxVocabulary)
	reinforced := false
	lastRaw := ""

	for attempt := 1; attempt <= g.attempts; attempt++ {
		// Attempt 1 uses the nominal temperature; later attempts decode
		// deterministically to reduce formatting drift.
		temp := g.temperature
		if attempt > 1 {
			temp = 0
		}

		slog.Info("calling model", "attempt", attempt, "temperature", temp)

		raw, err := g.model.Generate(ctx, prompt, temp, g.maxTokens)
		if err != nil {
			slog.Error("model call failed", "attempt", attempt, "error", err)
			continue
		}
		if raw == "" {
			slog.Error("no candidates in model response", "attempt", attempt)
			continue
		}
		lastRaw = raw
		slog.Info("received response", "attempt", attempt, "chars", len(raw))

		value, err := extract.FromResponse(raw)
		if err != nil {
			slog.Error("extraction failed", "attempt", attempt, "error", err)
			g.recorder.RecordFailure(raw)
			if !reinforced {
				prompt += strictReminder
				reinforced = true
			}
			continue
		}

		content, err := lesson.FromValue(value)
		if err != nil {
			slog.Error("validation failed", "attempt", attempt, "error", err)
			g.recorder.RecordFailure(raw)
			if !reinforced {
				prompt += strictReminder
				reinforced = true
			}
			continue
		}

		slog.Info("generated lesson",
			"theme", content.Theme,
			"vocabulary", len(content.VocabularyFocus),
			"quiz", len(content.QuizToggle),
		)
		return content, nil
	}

	if lastRaw != "" {
		slog.Error("all attempts exhausted", "last_response", prefix(lastRaw, logPrefixLen))
	} else {
		slog.Error("all attempts exhausted without any model output")
	}
	return nil, ErrNoContent
}

func prefix(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
