package trends

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"

	"socialsync-platform/internal/config"
	"socialsync-platform/internal/logger"
)

const cacheKey = "trends:topics"

// Topic is one trending headline surfaced to the dashboard.
type Topic struct {
	Title       string  `json:"title"`
	Source      string  `json:"source"`
	URL         string  `json:"url"`
	Description string  `json:"description"`
	Image       *string `json:"image"`
}

type newsResponse struct {
	Status       string `json:"status"`
	TotalResults int    `json:"totalResults"`
	Articles     []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string  `json:"title"`
		URL         string  `json:"url"`
		Description string  `json:"description"`
		URLToImage  *string `json:"urlToImage"`
	} `json:"articles"`
}

// Service fetches trending topics from the news feed, caching results in
// Redis. The feed is an opaque collaborator: failures degrade to an empty
// list, and a missing API key serves static demo topics.
type Service struct {
	apiKey     string
	apiURL     string
	cacheTTL   time.Duration
	httpClient *http.Client
	rdb        *redis.Client
}

func NewService(cfg *config.Config, rdb *redis.Client) *Service {
	return &Service{
		apiKey:   cfg.NewsAPIKey,
		apiURL:   cfg.NewsAPIURL,
		cacheTTL: cfg.TrendsCacheTTL,
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		rdb: rdb,
	}
}

// Trending returns the current topic list: demo topics without an API key,
// cached topics when fresh, otherwise a live fetch. Never returns an error;
// feed failures yield an empty list.
func (s *Service) Trending(ctx context.Context) []Topic {
	if s.apiKey == "" {
		return demoTopics()
	}

	if cached := s.fromCache(ctx); cached != nil {
		return cached
	}

	topics, err := s.fetch(ctx)
	if err != nil {
		logger.Warn("Trending topics fetch failed", "error", err)
		return []Topic{}
	}

	s.toCache(ctx, topics)
	return topics
}

// Refresh fetches and caches the topic list unconditionally. Used by the
// background worker; errors propagate so the task can be retried.
func (s *Service) Refresh(ctx context.Context) error {
	if s.apiKey == "" {
		return nil
	}

	topics, err := s.fetch(ctx)
	if err != nil {
		return err
	}

	s.toCache(ctx, topics)
	logger.Info("Trending topics refreshed", "count", len(topics))
	return nil
}

func (s *Service) fetch(ctx context.Context) ([]Topic, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", s.apiURL+"&apiKey="+s.apiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	var news newsResponse
	if err := json.Unmarshal(body, &news); err != nil {
		return nil, fmt.Errorf("failed to decode response: %v", err)
	}

	if news.Status != "ok" || len(news.Articles) == 0 {
		return nil, fmt.Errorf("news API returned status %q with %d articles", news.Status, len(news.Articles))
	}

	limit := 10
	if len(news.Articles) < limit {
		limit = len(news.Articles)
	}

	topics := make([]Topic, 0, limit)
	for _, article := range news.Articles[:limit] {
		topics = append(topics, Topic{
			Title:       article.Title,
			Source:      article.Source.Name,
			URL:         article.URL,
			Description: article.Description,
			Image:       article.URLToImage,
		})
	}
	return topics, nil
}

func (s *Service) fromCache(ctx context.Context) []Topic {
	if s.rdb == nil {
		return nil
	}

	data, err := s.rdb.Get(ctx, cacheKey).Bytes()
	if err != nil {
		return nil
	}

	var topics []Topic
	if err := json.Unmarshal(data, &topics); err != nil {
		return nil
	}
	return topics
}

func (s *Service) toCache(ctx context.Context, topics []Topic) {
	if s.rdb == nil {
		return
	}

	data, err := json.Marshal(topics)
	if err != nil {
		return
	}
	// Cache is best-effort; a write failure just means a refetch next time.
	if err := s.rdb.Set(ctx, cacheKey, data, s.cacheTTL).Err(); err != nil {
		logger.Debug("Trends cache write failed", "error", err)
	}
}

func demoTopics() []Topic {
	return []Topic{
		{
			Title:       "AI-generated content strategies that actually work",
			Source:      "SocialSync Demo",
			URL:         "https://example.com/ai-strategies",
			Description: "Learn how creators are using AI to brainstorm, draft, and schedule content.",
		},
		{
			Title:       "Best times to post on social media in 2025",
			Source:      "SocialSync Demo",
			URL:         "https://example.com/best-times",
			Description: "Fresh engagement data on when your audience is most active across platforms.",
		},
		{
			Title:       "How to repurpose one post into a full content calendar",
			Source:      "SocialSync Demo",
			URL:         "https://example.com/repurpose",
			Description: "Turn a single idea into a week of content with smart repurposing workflows.",
		},
	}
}
