package queue

import (
	"context"
	"time"

	"github.com/hibiken/asynq"

	"socialsync-platform/internal/trends"
)

const TaskRefreshTrends = "trends:refresh"

// NewRefreshTrendsTask builds the periodic trends-cache refresh task.
func NewRefreshTrendsTask() *asynq.Task {
	return asynq.NewTask(
		TaskRefreshTrends,
		nil,
		asynq.MaxRetry(3),
		asynq.Timeout(1*time.Minute),
		asynq.Queue("default"),
	)
}

// TaskProcessor handles background tasks on the worker.
type TaskProcessor struct {
	trends *trends.Service
}

func NewTaskProcessor(trendsService *trends.Service) *TaskProcessor {
	return &TaskProcessor{trends: trendsService}
}

func (p *TaskProcessor) HandleRefreshTrends(ctx context.Context, t *asynq.Task) error {
	return p.trends.Refresh(ctx)
}
