package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"socialsync-platform/internal/config"
)

func newTestService(apiKey, apiURL string) *Service {
	return &Service{
		apiKey:   apiKey,
		apiURL:   apiURL,
		cacheTTL: time.Minute,
		httpClient: &http.Client{
			Timeout: 2 * time.Second,
		},
	}
}

func TestTrendingWithoutKeyServesDemoTopics(t *testing.T) {
	service := newTestService("", "")

	topics := service.Trending(context.Background())
	if len(topics) != 3 {
		t.Fatalf("expected 3 demo topics, got %d", len(topics))
	}
	for _, topic := range topics {
		if topic.Source != "SocialSync Demo" {
			t.Fatalf("unexpected demo source %q", topic.Source)
		}
		if topic.Title == "" || topic.URL == "" {
			t.Fatalf("demo topic missing fields: %+v", topic)
		}
	}
}

func TestTrendingFetchesFromFeed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("apiKey") != "test-key" {
			t.Errorf("expected apiKey in query, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "ok",
			"totalResults": 2,
			"articles": [
				{"source": {"name": "Tech Daily"}, "title": "First", "url": "https://example.com/1", "description": "d1", "urlToImage": null},
				{"source": {"name": "Wire"}, "title": "Second", "url": "https://example.com/2", "description": "d2", "urlToImage": "https://example.com/2.png"}
			]
		}`))
	}))
	defer server.Close()

	service := newTestService("test-key", server.URL+"?category=technology")

	topics := service.Trending(context.Background())
	if len(topics) != 2 {
		t.Fatalf("expected 2 topics, got %d", len(topics))
	}
	if topics[0].Title != "First" || topics[0].Source != "Tech Daily" {
		t.Fatalf("unexpected first topic: %+v", topics[0])
	}
	if topics[0].Image != nil {
		t.Fatalf("expected nil image, got %v", *topics[0].Image)
	}
	if topics[1].Image == nil || *topics[1].Image != "https://example.com/2.png" {
		t.Fatal("expected second topic image to survive decoding")
	}
}

func TestTrendingCapsAtTenTopics(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		resp := map[string]interface{}{
			"status":       "ok",
			"totalResults": 25,
		}
		articles := make([]map[string]interface{}, 25)
		for i := range articles {
			articles[i] = map[string]interface{}{
				"source":      map[string]string{"name": "Bulk"},
				"title":       fmt.Sprintf("Article %d", i),
				"url":         fmt.Sprintf("https://example.com/%d", i),
				"description": "d",
			}
		}
		resp["articles"] = articles
		json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	service := newTestService("test-key", server.URL+"?category=technology")

	topics := service.Trending(context.Background())
	if len(topics) != 10 {
		t.Fatalf("expected topic list capped at 10, got %d", len(topics))
	}
}

func TestTrendingDegradesToEmptyOnFeedFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("upstream down"))
	}))
	defer server.Close()

	service := newTestService("test-key", server.URL+"?category=technology")

	topics := service.Trending(context.Background())
	if topics == nil {
		t.Fatal("expected empty slice, got nil")
	}
	if len(topics) != 0 {
		t.Fatalf("expected empty topics on failure, got %d", len(topics))
	}
}

func TestTrendingDegradesOnErrorStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "error", "code": "apiKeyInvalid"}`))
	}))
	defer server.Close()

	service := newTestService("test-key", server.URL+"?category=technology")

	if topics := service.Trending(context.Background()); len(topics) != 0 {
		t.Fatalf("expected empty topics on error status, got %d", len(topics))
	}
}

func TestRefreshWithoutKeyIsNoOp(t *testing.T) {
	service := newTestService("", "")
	if err := service.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh without key should be a no-op, got %v", err)
	}
}

func TestRefreshPropagatesFeedError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	service := newTestService("test-key", server.URL+"?category=technology")

	if err := service.Refresh(context.Background()); err == nil {
		t.Fatal("expected error from failing feed")
	}
}

func TestNewServiceReadsConfig(t *testing.T) {
	cfg := &config.Config{
		NewsAPIKey:     "k",
		NewsAPIURL:     "https://newsapi.org/v2/top-headlines?category=technology",
		TrendsCacheTTL: 5 * time.Minute,
	}

	service := NewService(cfg, nil)
	if service.apiKey != "k" || service.cacheTTL != 5*time.Minute {
		t.Fatalf("config not applied: %+v", service)
	}
}
