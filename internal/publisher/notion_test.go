package publisher

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotionPublisher_Publish(t *testing.T) {
	var gotReq createPageRequest
	var gotHeaders http.Header

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "POST", r.Method)
		require.Equal(t, "/pages", r.URL.Path)
		gotHeaders = r.Header.Clone()

		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{
			"id":  "page-123",
			"url": "https://notion.so/page-123",
		})
	}))
	defer server.Close()

	pub := NewNotionPublisher(NotionConfig{
		Token:      "secret-token",
		DatabaseID: "db-456",
		BaseURL:    server.URL,
	})
	pub.now = func() time.Time {
		return time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	}

	result, err := pub.Publish(context.Background(), sampleContent())
	require.NoError(t, err)

	assert.Equal(t, "page-123", result.PageID)
	assert.Equal(t, "https://notion.so/page-123", result.PageURL)

	assert.Equal(t, "Bearer secret-token", gotHeaders.Get("Authorization"))
	assert.Equal(t, "2022-06-28", gotHeaders.Get("Notion-Version"))
	assert.Equal(t, "application/json", gotHeaders.Get("Content-Type"))

	assert.Equal(t, map[string]any{"database_id": "db-456"}, gotReq.Parent)
	assert.NotEmpty(t, gotReq.Children)

	title := gotReq.Properties["Title"].(map[string]any)["title"].([]any)
	text := title[0].(map[string]any)["text"].(map[string]any)["content"].(string)
	assert.Equal(t, "📅 2026-08-30 - Office Communication", text)
}

func TestNotionPublisher_PublishAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"object":"error","message":"validation_error"}`))
	}))
	defer server.Close()

	pub := NewNotionPublisher(NotionConfig{
		Token:      "t",
		DatabaseID: "db",
		BaseURL:    server.URL,
	})

	result, err := pub.Publish(context.Background(), sampleContent())
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "status 400")
}

func TestNotionPublisher_ValidateCredentials(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/users/me", r.URL.Path)
			assert.Equal(t, "Bearer t", r.Header.Get("Authorization"))
			w.Write([]byte(`{"object":"user"}`))
		}))
		defer server.Close()

		pub := NewNotionPublisher(NotionConfig{Token: "t", DatabaseID: "db", BaseURL: server.URL})
		assert.NoError(t, pub.ValidateCredentials(context.Background()))
	})

	t.Run("unauthorized", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		pub := NewNotionPublisher(NotionConfig{Token: "bad", DatabaseID: "db", BaseURL: server.URL})
		assert.Error(t, pub.ValidateCredentials(context.Background()))
	})
}

func TestNotionPublisher_Platform(t *testing.T) {
	pub := NewNotionPublisher(NotionConfig{})
	assert.Equal(t, "notion", pub.Platform())
}
