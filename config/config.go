package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DriverSQLite   = "sqlite"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverJSONFile = "jsonfile"
)

type Config struct {
	Port      int
	LogLevel  string
	LogFormat string

	DataDir    string
	UploadsDir string
	TempDir    string
	OutputDir  string

	StoreDriver string
	DatabaseURL string
	RedisURL    string
	JobTTL      time.Duration

	PollInterval      time.Duration
	DequeueTimeout    time.Duration
	MaxConcurrentJobs int
	JobTimeout        time.Duration
	StallTimeout      time.Duration
	FrameRate         int
	FFmpegPath        string

	CacheSize int
	CacheTTL  time.Duration

	NotificationURL string
	CORSOrigins     []string
	ShutdownGrace   time.Duration
	// SubmitRateLimit is submissions per client per minute. Zero disables it.
	SubmitRateLimit int
}

// Load reads the environment, after merging .env.local and .env when they
// exist. Variables already set in the environment win, then .env.local,
// then .env. Each file loads on its own so a missing one does not skip
// the other.
func Load() (*Config, error) {
	for _, file := range []string{".env.local", ".env"} {
		_ = godotenv.Load(file)
	}

	port, err := strconv.Atoi(getEnv("PORT", "8082"))
	if err != nil {
		return nil, fmt.Errorf("invalid PORT: %w", err)
	}

	maxJobsRaw := os.Getenv("MAX_CONCURRENT_JOBS")
	if maxJobsRaw == "" {
		return nil, fmt.Errorf("MAX_CONCURRENT_JOBS is required")
	}
	maxJobs, err := strconv.Atoi(maxJobsRaw)
	if err != nil {
		return nil, fmt.Errorf("invalid MAX_CONCURRENT_JOBS: %w", err)
	}
	if maxJobs < 1 {
		return nil, fmt.Errorf("invalid MAX_CONCURRENT_JOBS: must be at least 1, got %d", maxJobs)
	}

	frameRate, err := strconv.Atoi(getEnv("FRAME_RATE", "1"))
	if err != nil {
		return nil, fmt.Errorf("invalid FRAME_RATE: %w", err)
	}
	if frameRate < 1 {
		return nil, fmt.Errorf("invalid FRAME_RATE: must be at least 1, got %d", frameRate)
	}

	cacheSize, err := strconv.Atoi(getEnv("CACHE_SIZE", "1024"))
	if err != nil {
		return nil, fmt.Errorf("invalid CACHE_SIZE: %w", err)
	}
	if cacheSize < 1 {
		return nil, fmt.Errorf("invalid CACHE_SIZE: must be at least 1, got %d", cacheSize)
	}

	submitLimit, err := strconv.Atoi(getEnv("SUBMIT_RATE_LIMIT", "60"))
	if err != nil {
		return nil, fmt.Errorf("invalid SUBMIT_RATE_LIMIT: %w", err)
	}
	if submitLimit < 0 {
		return nil, fmt.Errorf("invalid SUBMIT_RATE_LIMIT: must not be negative, got %d", submitLimit)
	}

	jobTTL, err := getDuration("JOB_TTL", "24h")
	if err != nil {
		return nil, err
	}
	pollInterval, err := getDuration("POLL_INTERVAL", "1s")
	if err != nil {
		return nil, err
	}
	if pollInterval == 0 {
		return nil, fmt.Errorf("invalid POLL_INTERVAL: must be positive")
	}
	dequeueTimeout, err := getDuration("DEQUEUE_TIMEOUT", "250ms")
	if err != nil {
		return nil, err
	}
	jobTimeout, err := getDuration("JOB_TIMEOUT", "30m")
	if err != nil {
		return nil, err
	}
	stallTimeout, err := getDuration("STALL_TIMEOUT", "1h")
	if err != nil {
		return nil, err
	}
	cacheTTL, err := getDuration("CACHE_TTL", "10m")
	if err != nil {
		return nil, err
	}
	shutdownGrace, err := getDuration("SHUTDOWN_GRACE", "30s")
	if err != nil {
		return nil, err
	}

	storeDriver := getEnv("STORE_DRIVER", DriverSQLite)
	databaseURL := os.Getenv("DATABASE_URL")
	switch storeDriver {
	case DriverSQLite, DriverRedis, DriverJSONFile:
	case DriverPostgres:
		if databaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
	default:
		return nil, fmt.Errorf("invalid STORE_DRIVER: %q", storeDriver)
	}

	dataDir := getEnv("DATA_DIR", "./data")

	return &Config{
		Port:              port,
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFormat:         getEnv("LOG_FORMAT", "json"),
		DataDir:           dataDir,
		UploadsDir:        getEnv("UPLOADS_DIR", filepath.Join(dataDir, "uploads")),
		TempDir:           getEnv("TEMP_DIR", filepath.Join(dataDir, "processing")),
		OutputDir:         getEnv("OUTPUT_DIR", filepath.Join(dataDir, "outputs")),
		StoreDriver:       storeDriver,
		DatabaseURL:       databaseURL,
		RedisURL:          getEnv("REDIS_URL", "redis://localhost:6379"),
		JobTTL:            jobTTL,
		PollInterval:      pollInterval,
		DequeueTimeout:    dequeueTimeout,
		MaxConcurrentJobs: maxJobs,
		JobTimeout:        jobTimeout,
		StallTimeout:      stallTimeout,
		FrameRate:         frameRate,
		FFmpegPath:        getEnv("FFMPEG_PATH", "ffmpeg"),
		CacheSize:         cacheSize,
		CacheTTL:          cacheTTL,
		NotificationURL:   os.Getenv("NOTIFICATION_URL"),
		CORSOrigins:       splitList(getEnv("CORS_ORIGINS", "*")),
		ShutdownGrace:     shutdownGrace,
		SubmitRateLimit:   submitLimit,
	}, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getDuration(key, defaultValue string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("invalid %s: negative duration %s", key, d)
	}
	return d, nil
}
