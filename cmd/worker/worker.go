package main

import (
	"log"

	"github.com/hibiken/asynq"

	"socialsync-platform/internal/config"
	"socialsync-platform/internal/logger"
	"socialsync-platform/internal/queue"
	"socialsync-platform/internal/trends"
)

// The worker refreshes the trends cache in the background so dashboard reads
// stay fast even when the news feed is slow.
func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.InitLogger(cfg)

	rdb, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Fatal("Failed to connect to Redis:", err)
	}

	trendsService := trends.NewService(cfg, rdb)
	processor := queue.NewTaskProcessor(trendsService)

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.RedisURL,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 5,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(queue.TaskRefreshTrends, processor.HandleRefreshTrends)

	// Periodic enqueue of the refresh task.
	periodic := asynq.NewScheduler(redisOpt, nil)
	if _, err := periodic.Register(cfg.TrendsRefreshCron, queue.NewRefreshTrendsTask()); err != nil {
		log.Fatal("Failed to register periodic task:", err)
	}

	go func() {
		if err := periodic.Run(); err != nil {
			log.Fatal("Periodic scheduler failed:", err)
		}
	}()

	log.Println("Worker starting...")
	if err := server.Run(mux); err != nil {
		log.Fatal("Worker failed:", err)
	}
}
