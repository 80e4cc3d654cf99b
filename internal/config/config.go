package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI     string
	DBName       string
	JWTSecret    string
	JWTExpiresIn string
	Port         string
	GinMode      string
	CORSOrigins  []string
	BcryptCost   int

	// Sentiment inference endpoints. The primary and fallback models are
	// injected here so the classifier never reads ambient process state.
	HFAPIToken       string
	PrimaryModelURL  string
	FallbackModelURL string
	ClassifyTimeout  time.Duration
	ClassifyRPM      int

	// Scheduler sweep interval for auto-publishing due posts.
	SweepInterval time.Duration

	// Analytics bucket boundaries are pinned to a single timezone so the
	// hour-of-day histogram is deterministic across deployments.
	AnalyticsTimezone *time.Location

	// Redis (rate limiting, trends cache, asynq broker)
	RedisURL      string
	RedisPassword string
	RedisDB       int

	RateLimitReqs   int
	RateLimitWindow int

	// Trends feed (NewsAPI). Empty key enables demo topics.
	NewsAPIKey        string
	NewsAPIURL        string
	TrendsCacheTTL    time.Duration
	TrendsRefreshCron string
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("error loading .env file: %v", err)
		}
	}

	tz, err := time.LoadLocation(getEnv("ANALYTICS_TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid ANALYTICS_TIMEZONE: %v", err)
	}

	cfg := &Config{
		MongoURI:     getEnv("MONGO_URI", "mongodb://localhost:27017/socialsync"),
		DBName:       getEnv("DB_NAME", "socialsync"),
		JWTSecret:    getEnv("JWT_SECRET", ""),
		JWTExpiresIn: getEnv("JWT_EXPIRES_IN", "24h"),
		Port:         getEnv("PORT", "8080"),
		GinMode:      getEnv("GIN_MODE", "debug"),
		CORSOrigins:  strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"), ","),
		BcryptCost:   getEnvInt("BCRYPT_COST", 12),

		HFAPIToken:       getEnv("HF_API_TOKEN", ""),
		PrimaryModelURL:  getEnv("PRIMARY_MODEL_URL", "https://api-inference.huggingface.co/models/cardiffnlp/twitter-roberta-base-sentiment-latest"),
		FallbackModelURL: getEnv("FALLBACK_MODEL_URL", "https://api-inference.huggingface.co/models/distilbert-base-uncased-finetuned-sst-2-english"),
		ClassifyTimeout:  time.Duration(getEnvInt("CLASSIFY_TIMEOUT_SECONDS", 15)) * time.Second,
		ClassifyRPM:      getEnvInt("CLASSIFY_RPM", 60),

		SweepInterval: time.Duration(getEnvInt("SWEEP_INTERVAL_SECONDS", 60)) * time.Second,

		AnalyticsTimezone: tz,

		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		RateLimitReqs:   getEnvInt("RATE_LIMIT_REQUESTS", 100),
		RateLimitWindow: getEnvInt("RATE_LIMIT_WINDOW", 60),

		NewsAPIKey:        getEnv("NEWS_API_KEY", ""),
		NewsAPIURL:        getEnv("NEWS_API_URL", "https://newsapi.org/v2/top-headlines?country=us&language=en&category=technology"),
		TrendsCacheTTL:    time.Duration(getEnvInt("TRENDS_CACHE_TTL_SECONDS", 900)) * time.Second,
		TrendsRefreshCron: getEnv("TRENDS_REFRESH_CRON", "*/15 * * * *"),
	}

	// Validate required fields
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required - set it in .env file")
	}

	if cfg.PrimaryModelURL == "" || cfg.FallbackModelURL == "" {
		return nil, fmt.Errorf("PRIMARY_MODEL_URL and FALLBACK_MODEL_URL are required")
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}
