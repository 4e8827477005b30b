package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/amirulhm/trilingo/internal/lesson"
)

const (
	notionBaseURL    = "https://api.notion.com/v1"
	notionAPIVersion = "2022-06-28"
)

// NotionPublisher publishes lessons as pages in a Notion database.
type NotionPublisher struct {
	httpClient *http.Client
	token      string
	databaseID string
	baseURL    string
	now        func() time.Time
}

// NotionConfig holds configuration for the Notion publisher.
type NotionConfig struct {
	Token      string
	DatabaseID string

	// BaseURL overrides the Notion API endpoint, used in tests.
	BaseURL string
}

// NewNotionPublisher creates a new Notion publisher.
func NewNotionPublisher(cfg NotionConfig) *NotionPublisher {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = notionBaseURL
	}

	return &NotionPublisher{
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		token:      cfg.Token,
		databaseID: cfg.DatabaseID,
		baseURL:    baseURL,
		now:        time.Now,
	}
}

// Platform returns the platform name.
func (n *NotionPublisher) Platform() string {
	return "notion"
}

// createPageRequest is the request body for page creation.
type createPageRequest struct {
	Parent     map[string]any `json:"parent"`
	Properties map[string]any `json:"properties"`
	Children   []block        `json:"children"`
}

// createPageResponse is the subset of the page-creation response we use.
type createPageResponse struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}

// Publish creates a new lesson page with properties and content blocks.
func (n *NotionPublisher) Publish(ctx context.Context, content *lesson.Content) (*Result, error) {
	now := n.now()
	title := pageTitle(now, content)

	reqBody := createPageRequest{
		Parent:     map[string]any{"database_id": n.databaseID},
		Properties: pageProperties(now, content, title),
		Children:   pageBlocks(content),
	}

	var pageResp createPageResponse
	if err := n.post(ctx, "/pages", reqBody, &pageResp); err != nil {
		return nil, fmt.Errorf("create page: %w", err)
	}

	slog.Info("created lesson page",
		"page_id", pageResp.ID,
		"title", title,
	)

	return &Result{
		PageID:  pageResp.ID,
		PageURL: pageResp.URL,
	}, nil
}

// ValidateCredentials verifies the token by fetching the bot user.
func (n *NotionPublisher) ValidateCredentials(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, "GET", n.baseURL+"/users/me", nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	n.setHeaders(req)

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("credential check failed (status %d): %s", resp.StatusCode, string(body))
	}

	return nil
}

func (n *NotionPublisher) post(ctx context.Context, path string, reqBody, out any) error {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", n.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	n.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(respBody))
	}

	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("unmarshal response: %w", err)
	}

	return nil
}

func (n *NotionPublisher) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+n.token)
	req.Header.Set("Notion-Version", notionAPIVersion)
}
