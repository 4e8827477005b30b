// Package gemini adapts the Google Generative AI client to the narrow model
// interface the generator consumes.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// Client calls the Gemini API for text generation.
type Client struct {
	apiKey string
	model  string
}

// Config holds configuration for the Gemini client.
type Config struct {
	APIKey string
	Model  string
}

// New creates a Gemini client.
func New(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, errors.New("gemini API key is empty")
	}
	if strings.TrimSpace(cfg.Model) == "" {
		return nil, errors.New("gemini model name is empty")
	}
	return &Client{
		apiKey: strings.TrimSpace(cfg.APIKey),
		model:  strings.TrimSpace(cfg.Model),
	}, nil
}

// Generate sends a single prompt and returns the concatenated text parts of
// the first candidate. A response without candidates yields an empty string
// and no error; the caller treats that as a retriable "no output".
func (c *Client) Generate(ctx context.Context, prompt string, temperature float32, maxTokens int) (string, error) {
	cl, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return "", fmt.Errorf("create gemini client: %w", err)
	}
	defer cl.Close()

	m := cl.GenerativeModel(c.model)
	m.SetTemperature(temperature)
	m.SetMaxOutputTokens(int32(maxTokens))

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	return candidateText(resp), nil
}

// candidateText concatenates all text parts of the first candidate.
func candidateText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	cand := resp.Candidates[0]
	if cand.Content == nil {
		return ""
	}

	var sb strings.Builder
	for _, p := range cand.Content.Parts {
		if t, ok := p.(genai.Text); ok {
			sb.WriteString(string(t))
		}
	}
	return sb.String()
}

// ModelInfo describes one model available to the API key.
type ModelInfo struct {
	Name        string
	DisplayName string
	Description string
}

// ListModels returns the models available to the configured API key.
func (c *Client) ListModels(ctx context.Context) ([]ModelInfo, error) {
	cl, err := genai.NewClient(ctx, option.WithAPIKey(c.apiKey))
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	defer cl.Close()

	var models []ModelInfo
	it := cl.ListModels(ctx)
	for {
		m, err := it.Next()
		if errors.Is(err, iterator.Done) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list models: %w", err)
		}
		models = append(models, ModelInfo{
			Name:        m.Name,
			DisplayName: m.DisplayName,
			Description: m.Description,
		})
	}

	return models, nil
}
