package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"socialsync-platform/internal/ai"
	"socialsync-platform/internal/config"
	"socialsync-platform/internal/logger"
	"socialsync-platform/internal/scheduler"
	"socialsync-platform/internal/store"
	"socialsync-platform/internal/telemetry"
	"socialsync-platform/internal/trends"
	"socialsync-platform/middleware"
	"socialsync-platform/routes"
)

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	logger.InitLogger(cfg)

	// Telemetry is best-effort: a missing collector must not block startup.
	shutdownTracer, err := telemetry.InitTracer("socialsync-platform")
	if err != nil {
		log.Printf("Tracing disabled: %v", err)
		shutdownTracer = func() {}
	}
	defer shutdownTracer()

	metrics, err := telemetry.InitMetrics()
	if err != nil {
		log.Fatal("Failed to init metrics:", err)
	}

	// Connect to MongoDB
	mongoClient, err := config.ConnectMongoDB(cfg)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB:", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		mongoClient.Disconnect(ctx)
	}()

	// Redis backs rate limiting and the trends cache; both fail open, so a
	// missing Redis only degrades those features.
	rdb, err := config.NewRedisClient(cfg)
	if err != nil {
		log.Printf("Redis unavailable, rate limiting and trends cache disabled: %v", err)
		rdb = nil
	}

	db := mongoClient.Database(cfg.DBName)
	postStore := store.NewMongoPostStore(db)

	classifier := ai.NewClassifier(ai.ClassifierConfig{
		PrimaryModelURL:  cfg.PrimaryModelURL,
		FallbackModelURL: cfg.FallbackModelURL,
		APIToken:         cfg.HFAPIToken,
		Timeout:          cfg.ClassifyTimeout,
		RPM:              cfg.ClassifyRPM,
	}, metrics)

	trendsService := trends.NewService(cfg, rdb)

	// Start the publication sweeper
	sched := scheduler.New(postStore, metrics)
	if err := sched.Start(cfg.SweepInterval); err != nil {
		log.Fatal("Failed to start scheduler:", err)
	}
	defer sched.Stop()

	// Initialize Gin router
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.CORSMiddleware(cfg.CORSOrigins))
	router.Use(middleware.TracingMiddleware())
	router.Use(middleware.MetricsMiddleware(metrics))
	router.Use(middleware.RateLimitMiddleware(rdb, cfg))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": time.Now()})
	})

	authMiddleware := middleware.NewAuthMiddleware(cfg)

	// Setup routes
	routes.SetupAuthRoutes(router, cfg, mongoClient)
	routes.SetupPostRoutes(router, cfg, postStore, classifier, sched, metrics, authMiddleware)
	routes.SetupTrendsRoutes(router, trendsService)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
