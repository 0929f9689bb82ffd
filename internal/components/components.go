package components

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"sidewalksafe/internal/adapter/directions"
	"sidewalksafe/internal/adapter/plangen"
	"sidewalksafe/internal/adapter/tts"
	"sidewalksafe/internal/adapter/vision"
	"sidewalksafe/internal/api"
	"sidewalksafe/internal/config"
	"sidewalksafe/internal/observability"
	"sidewalksafe/internal/redis"
	"sidewalksafe/internal/service"
	"sidewalksafe/internal/storage/csvstore"
	"sidewalksafe/internal/storage/images"
	"sidewalksafe/internal/storage/postgres"
	"sidewalksafe/pkg/logger"
)

type Components struct {
	logger     *slog.Logger
	HttpServer *api.Server
	Postgres   *postgres.Postgres // nil for the csv driver
	Redis      *redis.Redis       // nil when notifications are disabled
	Sender     *service.NotifySender
}

func InitComponents(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Components, error) {
	metrics := observability.NewMetrics()

	var (
		repo service.HazardRepository
		pg   *postgres.Postgres
	)
	switch cfg.Storage.Driver {
	case "postgres":
		logger.Info("initializing postgres")
		var err error
		pg, err = postgres.NewPostgres(ctx, cfg, logger)
		if err != nil {
			logger.Error("failed to init postgres", slog.Any("error", err))
			return nil, fmt.Errorf("failed to init postgres: %w", err)
		}
		repo = pg.Hazards
	default:
		logger.Info("initializing csv store", slog.String("path", cfg.Storage.CSVPath))
		repo = csvstore.New(cfg.Storage.CSVPath, logger)
	}

	var (
		redisClient *redis.Redis
		queue       service.ReportEnqueuer
		cache       service.ReportCache
		sender      *service.NotifySender
	)
	if !cfg.Notify.Disabled {
		logger.Info("initializing redis")
		var err error
		redisClient, err = redis.NewRedis(ctx, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to init redis: %w", err)
		}
		reportQueue := redis.NewReportQueue(redisClient.Client, cfg.Notify.QueueKey)
		queue = reportQueue
		cache = redis.NewReportCache(redisClient, 30*time.Second)
		sender = service.NewNotifySender(logger, cfg.Notify, reportQueue)
	}

	var classifier service.ImageClassifier
	if cfg.Vision.URL != "" {
		classifier = vision.NewClient(cfg.Vision.URL, cfg.Vision.Timeout, logger)
	}

	var generator service.PlanGenerator
	if cfg.Plan.APIKey != "" {
		var err error
		generator, err = plangen.NewGeminiGenerator(ctx, cfg.Plan.APIKey, cfg.Plan.Model, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to init plan generator: %w", err)
		}
	} else {
		generator = plangen.Unavailable{}
	}

	var provider directions.Provider = directions.NewClient(cfg.Maps.APIKey, cfg.Maps.BaseURL, cfg.Maps.Timeout, logger)
	if cfg.Maps.CacheSize > 0 {
		provider = directions.NewCachedProvider(provider, cfg.Maps.CacheSize)
	}
	narrator := tts.NewClient(cfg.TTS.BaseURL, cfg.TTS.Lang, cfg.TTS.Timeout, logger)

	imageStore := images.New(cfg.Storage.ImageDir)

	hazardSvc := service.NewHazardService(repo, imageStore, classifier, queue, cache, logger, metrics)
	routeSvc := service.NewRouteService(provider, narrator, logger, metrics)
	planSvc := service.NewPlanService(repo, generator, logger, metrics)

	srv := service.NewService(hazardSvc, routeSvc, planSvc)

	httpServer := api.NewServer(cfg, logger, srv)
	logger.Info("initialized server")

	return &Components{
		logger:     logger,
		HttpServer: httpServer,
		Postgres:   pg,
		Redis:      redisClient,
		Sender:     sender,
	}, nil
}

func SetupLogger(env string) *slog.Logger {
	switch env {
	case "local":
		return logger.SetupPrettySlog()
	case "dev":
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelDebug,
			}),
		)
	default:
		return slog.New(
			slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
				Level: slog.LevelInfo,
			}),
		)
	}
}

func (c *Components) ShutdownAll() {
	start := time.Now()
	c.logger.Info("component shutdown started")

	if c.Postgres != nil {
		c.Postgres.Pool.Close()
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.logger.Error("redis close failed", slog.String("err", err.Error()))
		}
	}

	c.logger.Info("all components stopped", slog.Duration("latency", time.Since(start)))
}
