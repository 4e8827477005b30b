package publisher

import (
	"context"

	"github.com/amirulhm/trilingo/internal/lesson"
)

// Result represents the outcome of publishing a lesson.
type Result struct {
	PageID  string
	PageURL string
}

// Publisher is the interface for publishing lessons to a workspace tool.
type Publisher interface {
	// Platform returns the name of the platform.
	Platform() string

	// Publish creates a lesson page from validated content.
	Publish(ctx context.Context, content *lesson.Content) (*Result, error)

	// ValidateCredentials checks if the credentials are valid.
	ValidateCredentials(ctx context.Context) error
}
