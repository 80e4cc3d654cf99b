package telemetry

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics holds all application metrics
type Metrics struct {
	RequestCounter      metric.Int64Counter
	RequestDuration     metric.Float64Histogram
	PostsCreated        metric.Int64Counter
	PostsPublished      metric.Int64Counter
	SchedulerSweeps     metric.Int64Counter
	ClassifierFallbacks metric.Int64Counter
}

// InitMetrics initializes all application metrics
func InitMetrics() (*Metrics, error) {
	meter := otel.Meter("socialsync-platform")

	requestCounter, err := meter.Int64Counter(
		"http.requests.total",
		metric.WithDescription("Total HTTP requests"),
	)
	if err != nil {
		return nil, err
	}

	requestDuration, err := meter.Float64Histogram(
		"http.request.duration",
		metric.WithDescription("HTTP request duration in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, err
	}

	postsCreated, err := meter.Int64Counter(
		"posts.created.total",
		metric.WithDescription("Total posts created"),
	)
	if err != nil {
		return nil, err
	}

	postsPublished, err := meter.Int64Counter(
		"posts.published.total",
		metric.WithDescription("Total posts transitioned to posted by the scheduler"),
	)
	if err != nil {
		return nil, err
	}

	schedulerSweeps, err := meter.Int64Counter(
		"scheduler.sweeps.total",
		metric.WithDescription("Total scheduler sweep invocations"),
	)
	if err != nil {
		return nil, err
	}

	classifierFallbacks, err := meter.Int64Counter(
		"classifier.fallbacks.total",
		metric.WithDescription("Classification requests resolved by a fallback tier"),
	)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		RequestCounter:      requestCounter,
		RequestDuration:     requestDuration,
		PostsCreated:        postsCreated,
		PostsPublished:      postsPublished,
		SchedulerSweeps:     schedulerSweeps,
		ClassifierFallbacks: classifierFallbacks,
	}, nil
}

// RecordRequest records HTTP request metrics
func (m *Metrics) RecordRequest(method, path, status string, duration float64) {
	attrs := []attribute.KeyValue{
		attribute.String("http.method", method),
		attribute.String("http.path", path),
		attribute.String("http.status", status),
	}

	m.RequestCounter.Add(context.Background(), 1, metric.WithAttributes(attrs...))
	m.RequestDuration.Record(context.Background(), duration, metric.WithAttributes(attrs...))
}

// RecordPostCreated records a post creation with its initial status
func (m *Metrics) RecordPostCreated(status string) {
	m.PostsCreated.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("post.status", status),
	))
}

// RecordSweep records one scheduler sweep and the number of posts it published
func (m *Metrics) RecordSweep(published int64, success bool) {
	m.SchedulerSweeps.Add(context.Background(), 1, metric.WithAttributes(
		attribute.Bool("sweep.success", success),
	))
	if published > 0 {
		m.PostsPublished.Add(context.Background(), published)
	}
}

// RecordClassifierFallback records a classification resolved by a fallback tier
func (m *Metrics) RecordClassifierFallback(tier string) {
	m.ClassifierFallbacks.Add(context.Background(), 1, metric.WithAttributes(
		attribute.String("classifier.tier", tier),
	))
}
