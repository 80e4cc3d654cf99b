package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sony/gobreaker"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/time/rate"

	"socialsync-platform/internal/logger"
	"socialsync-platform/internal/telemetry"
	"socialsync-platform/models"
)

// ClassifierConfig carries the endpoints and credential for the sentiment
// service. Injected by the application; the classifier never reads process
// environment state.
type ClassifierConfig struct {
	PrimaryModelURL  string
	FallbackModelURL string
	APIToken         string
	Timeout          time.Duration
	RPM              int
}

// Classifier resolves text to a sentiment label with suggested hashtags.
// Classify never returns an error: the primary model is retried against a
// fallback model, and a total failure degrades to neutral/0.5 so callers
// never branch on classification outcome.
type Classifier struct {
	conf        ClassifierConfig
	httpClient  *http.Client
	breaker     *gobreaker.CircuitBreaker
	rateLimiter *rate.Limiter
	metrics     *telemetry.Metrics
}

type inferenceRequest struct {
	Inputs  string            `json:"inputs"`
	Options *inferenceOptions `json:"options,omitempty"`
}

type inferenceOptions struct {
	WaitForModel bool `json:"wait_for_model"`
}

func NewClassifier(conf ClassifierConfig, metrics *telemetry.Metrics) *Classifier {
	if conf.Timeout <= 0 {
		conf.Timeout = 15 * time.Second
	}
	if conf.RPM <= 0 {
		conf.RPM = 60
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "SentimentAPI",
		MaxRequests: 5,
		Interval:    10 * time.Second,
		Timeout:     60 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Warn("Circuit breaker state change", "breaker", name, "from", from.String(), "to", to.String())
		},
	})

	// RPM limit with some buffer
	rateLimiter := rate.NewLimiter(rate.Limit(float64(conf.RPM)*0.9/60.0), max(1, conf.RPM/10))

	return &Classifier{
		conf:        conf,
		httpClient:  &http.Client{Timeout: conf.Timeout},
		breaker:     breaker,
		rateLimiter: rateLimiter,
		metrics:     metrics,
	}
}

// Classify maps text to {sentiment, score, hashtags}. The hashtags are always
// generated from the final resolved sentiment, regardless of which tier
// produced it.
func (c *Classifier) Classify(ctx context.Context, text string) models.AIAnalysis {
	tracer := otel.Tracer("sentiment-classifier")
	ctx, span := tracer.Start(ctx, "classifier.classify")
	defer span.End()

	sentiment, score, err := c.classifyPrimary(ctx, text)
	if err != nil {
		logger.Warn("Primary sentiment model failed, using fallback", "error", err)
		span.SetAttributes(attribute.Bool("classifier.primary_failed", true))
		if c.metrics != nil {
			c.metrics.RecordClassifierFallback("secondary")
		}

		sentiment, score, err = c.classifyFallback(ctx, text)
		if err != nil {
			logger.Error("Fallback sentiment model failed, defaulting to neutral", "error", err)
			span.SetAttributes(attribute.Bool("classifier.fallback_failed", true))
			if c.metrics != nil {
				c.metrics.RecordClassifierFallback("terminal")
			}
			sentiment, score = models.SentimentNeutral, 0.5
		}
	}

	span.SetAttributes(
		attribute.String("classifier.sentiment", sentiment),
		attribute.Float64("classifier.score", score),
	)

	return models.AIAnalysis{
		Sentiment:         sentiment,
		SentimentScore:    score,
		SuggestedHashtags: GenerateHashtags(text, sentiment),
	}
}

// classifyPrimary queries the primary model through the circuit breaker and
// picks the single highest-confidence candidate.
func (c *Classifier) classifyPrimary(ctx context.Context, text string) (string, float64, error) {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return "", 0, err
	}

	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.query(ctx, c.conf.PrimaryModelURL, inferenceRequest{Inputs: text})
	})
	if err != nil {
		return "", 0, err
	}

	candidates := result.([]Candidate)
	best := bestCandidate(candidates)
	return mapLabel(best.Label), normalizeScore(best.Score), nil
}

// classifyFallback queries the secondary model directly. Unlike the primary
// path it scores the positive and negative polarities independently and picks
// whichever is stronger; positive wins ties. Neither polarity present means
// neutral at 0.5.
func (c *Classifier) classifyFallback(ctx context.Context, text string) (string, float64, error) {
	candidates, err := c.query(ctx, c.conf.FallbackModelURL, inferenceRequest{
		Inputs:  text,
		Options: &inferenceOptions{WaitForModel: true},
	})
	if err != nil {
		return "", 0, err
	}

	var posBest, negBest *Candidate
	for i := range candidates {
		cand := candidates[i]
		if isPositiveLabel(cand.Label) && (posBest == nil || cand.Score > posBest.Score) {
			posBest = &cand
		}
		if isNegativeLabel(cand.Label) && (negBest == nil || cand.Score > negBest.Score) {
			negBest = &cand
		}
	}

	switch {
	case posBest != nil && (negBest == nil || posBest.Score >= negBest.Score):
		return models.SentimentPositive, normalizeScore(posBest.Score), nil
	case negBest != nil:
		return models.SentimentNegative, normalizeScore(negBest.Score), nil
	}
	return models.SentimentNeutral, 0.5, nil
}

func (c *Classifier) query(ctx context.Context, url string, payload inferenceRequest) ([]Candidate, error) {
	ctx, cancel := context.WithTimeout(ctx, c.conf.Timeout)
	defer cancel()

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %v", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.conf.APIToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.conf.APIToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("inference API returned status %d: %s", resp.StatusCode, string(body))
	}

	return decodeCandidates(body)
}
