package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bnema/framer/config"
	"github.com/bnema/framer/internal/adapter/archive"
	"github.com/bnema/framer/internal/adapter/extractor/ffmpeg"
	HTTPAdapter "github.com/bnema/framer/internal/adapter/http"
	"github.com/bnema/framer/internal/adapter/http/ratelimit"
	"github.com/bnema/framer/internal/adapter/notify"
	"github.com/bnema/framer/internal/adapter/storage/jsonfile"
	pgstore "github.com/bnema/framer/internal/adapter/storage/postgres"
	redisstore "github.com/bnema/framer/internal/adapter/storage/redis"
	sqlitestore "github.com/bnema/framer/internal/adapter/storage/sqlite"
	"github.com/bnema/framer/internal/adapter/uploads"
	"github.com/bnema/framer/internal/infrastructure/logger"
	"github.com/bnema/framer/internal/port"
	"github.com/bnema/framer/internal/service"
	"golang.org/x/sync/errgroup"
)

const purgeInterval = time.Hour

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Error.Printf("failed to load config: %v", err)
		os.Exit(1)
	}
	if err := logger.Setup(cfg.LogLevel, cfg.LogFormat); err != nil {
		logger.Error.Printf("invalid LOG_LEVEL: %v", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		logger.Error.Printf("framer stopped: %v", err)
		os.Exit(1)
	}
}

// backend is the store and queue pair selected by STORE_DRIVER.
type backend struct {
	store port.JobStore
	queue port.JobQueue
	close func()
}

func openBackend(ctx context.Context, cfg *config.Config) (*backend, error) {
	switch cfg.StoreDriver {
	case config.DriverRedis:
		store, err := redisstore.NewStore(cfg.RedisURL, cfg.JobTTL)
		if err != nil {
			return nil, err
		}
		return &backend{store: store, queue: redisstore.NewJobQueue(store), close: func() { _ = store.Close() }}, nil
	case config.DriverPostgres:
		store, err := pgstore.NewStore(ctx, cfg.DatabaseURL, cfg.JobTTL)
		if err != nil {
			return nil, err
		}
		return &backend{store: store, queue: pgstore.NewJobQueue(store), close: store.Close}, nil
	case config.DriverJSONFile:
		store, err := jsonfile.NewStore(cfg.DataDir, cfg.JobTTL)
		if err != nil {
			return nil, err
		}
		return &backend{store: store, queue: store, close: func() {}}, nil
	default:
		store, err := sqlitestore.NewStore(cfg.DataDir, cfg.JobTTL)
		if err != nil {
			return nil, err
		}
		return &backend{store: store, queue: sqlitestore.NewJobQueue(store), close: func() { _ = store.Close() }}, nil
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info.Printf("starting framer on port %d, store=%s, max_concurrent=%d", cfg.Port, cfg.StoreDriver, cfg.MaxConcurrentJobs)

	for _, dir := range []string{cfg.DataDir, cfg.UploadsDir, cfg.TempDir, cfg.OutputDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}

	b, err := openBackend(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s store: %w", cfg.StoreDriver, err)
	}
	defer b.close()

	if err := b.store.Ping(ctx); err != nil {
		logger.Warn.Printf("job store not reachable yet: %v", err)
	}

	extractor := ffmpeg.NewExtractor(cfg.FFmpegPath, cfg.FrameRate)
	if !extractor.Available() {
		logger.Warn.Printf("ffmpeg not found at %q, jobs will fail until it is installed", cfg.FFmpegPath)
	}

	var notifier port.Notifier = notify.NewLogNotifier()
	if cfg.NotificationURL != "" {
		notifier = notify.NewHTTPNotifier(cfg.NotificationURL, nil)
	}

	cache := service.NewActiveJobCache(cfg.CacheSize, cfg.CacheTTL)
	eventBus := service.NewEventBus()
	recorder := service.NewJobRecorder(b.store, cache, eventBus)
	processor := service.NewProcessor(
		uploads.NewLocator(cfg.UploadsDir),
		extractor,
		archive.NewZip(),
		cfg.TempDir,
		cfg.OutputDir,
		cfg.JobTimeout,
	)
	runner := service.NewJobRunner(b.store, b.queue, recorder, processor, notifier)
	scheduler := service.NewScheduler(b.queue, b.store, recorder, runner, service.SchedulerConfig{
		PollInterval:   cfg.PollInterval,
		DequeueTimeout: cfg.DequeueTimeout,
		MaxConcurrent:  cfg.MaxConcurrentJobs,
		StallTimeout:   cfg.StallTimeout,
	})
	jobSvc := service.NewJobService(b.store, b.queue, cache, recorder, runner)

	if n, err := scheduler.RecoverStalled(ctx); err != nil {
		logger.Warn.Printf("stalled job recovery skipped: %v", err)
	} else if n > 0 {
		logger.Info.Printf("recovered %d stalled jobs", n)
	}

	var limiter *ratelimit.Limiter
	if cfg.SubmitRateLimit > 0 {
		limiter = ratelimit.New(cfg.SubmitRateLimit, time.Minute, time.Minute)
	}

	server := HTTPAdapter.NewServer(HTTPAdapter.Dependencies{
		Jobs:     jobSvc,
		Events:   eventBus,
		Store:    b.store,
		FFmpeg:   extractor,
		Workload: scheduler,
	}, HTTPAdapter.ServerConfig{
		OutputDir:      cfg.OutputDir,
		AllowedOrigins: cfg.CORSOrigins,
		SubmitLimiter:  limiter,
	})

	// Request contexts derive from streams so that Shutdown ends open
	// event streams instead of waiting on them.
	streams, endStreams := context.WithCancel(context.Background())
	defer endStreams()

	addr := fmt.Sprintf(":%d", cfg.Port)
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           server,
		BaseContext:       func(net.Listener) context.Context { return streams },
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	httpServer.RegisterOnShutdown(endStreams)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return scheduler.Run(gctx)
	})

	if purger, ok := b.store.(port.ExpiredPurger); ok {
		g.Go(func() error {
			return service.RunPurge(gctx, purger, purgeInterval)
		})
	}

	if limiter != nil {
		g.Go(func() error {
			limiter.Run(gctx, time.Minute)
			return nil
		})
	}

	g.Go(func() error {
		logger.Info.Printf("server listening on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info.Printf("shutting down, grace period %s", cfg.ShutdownGrace)

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownGrace)
		defer cancel()

		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error.Printf("http shutdown error: %v", err)
		}
		if err := scheduler.Shutdown(shutdownCtx); err != nil {
			logger.Warn.Printf("running jobs interrupted: %v", err)
		}
		runner.WaitNotifications()

		logger.Info.Printf("shutdown complete")
		return nil
	})

	return g.Wait()
}
