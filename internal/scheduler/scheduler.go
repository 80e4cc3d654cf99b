package scheduler

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"socialsync-platform/internal/logger"
	"socialsync-platform/internal/telemetry"
)

// PostPublisher is the slice of the post store the scheduler needs.
type PostPublisher interface {
	PublishDue(ctx context.Context, now int64) (int64, error)
}

// Scheduler owns the periodic sweep that flips due posts from scheduled to
// posted. The sweep logic is separate from the ticker so it can be invoked
// synchronously (tests, on-demand admin endpoint).
type Scheduler struct {
	store   PostPublisher
	metrics *telemetry.Metrics
	cron    *gocron.Scheduler
	now     func() time.Time
}

func New(store PostPublisher, metrics *telemetry.Metrics) *Scheduler {
	return &Scheduler{
		store:   store,
		metrics: metrics,
		now:     time.Now,
	}
}

// Sweep runs one publication pass: every post still scheduled with a
// scheduled time at or before now becomes posted, in a single atomic batch.
// Idempotent; a sweep that matches nothing is a no-op. Store failures are
// propagated so the ticker can log and retry on the next interval.
func (s *Scheduler) Sweep(ctx context.Context) (int64, error) {
	now := s.now().UnixMilli()

	count, err := s.store.PublishDue(ctx, now)
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordSweep(0, false)
		}
		return 0, err
	}

	if s.metrics != nil {
		s.metrics.RecordSweep(count, true)
	}
	if count > 0 {
		logger.Info("Published scheduled posts", "count", count)
	}
	return count, nil
}

// Start begins sweeping on the given interval. A failed sweep is logged and
// simply retried on the next tick; the interval never grows.
func (s *Scheduler) Start(interval time.Duration) error {
	s.cron = gocron.NewScheduler(time.UTC)
	s.cron.TagsUnique()

	_, err := s.cron.Every(interval).Tag("publish-due-posts").Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if _, err := s.Sweep(ctx); err != nil {
			logger.Error("Scheduler sweep failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.StartAsync()
	logger.Info("Post scheduler started", "interval", interval.String())
	return nil
}

// Stop halts the ticker. An in-flight sweep finishes its batch.
func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}
