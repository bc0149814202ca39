// cmd/sync/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"

	"github.com/ammerola/coffeechain-sync/internal/adapters/api"
	"github.com/ammerola/coffeechain-sync/internal/adapters/db"
	redis_a "github.com/ammerola/coffeechain-sync/internal/adapters/redis_adapter"
	"github.com/ammerola/coffeechain-sync/internal/adapters/storage"
	"github.com/ammerola/coffeechain-sync/internal/core/ports"
	"github.com/ammerola/coffeechain-sync/internal/core/services"
	"github.com/ammerola/coffeechain-sync/internal/pkg/config"
	"github.com/ammerola/coffeechain-sync/internal/pkg/logger"
)

const jobName = "inventory-sync"

func main() {
	// Setup logger
	slogger := logger.SetupLogger("info", "json")

	// Load configuration
	cfg, err := config.Load(slogger.Logger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	ctx = logger.WithJob(ctx, jobName)

	err = run(ctx, cfg, slogger.Logger)
	stop()

	if err != nil {
		slogger.ErrorContext(ctx, "inventory sync failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	secrets, err := config.NewSecretsManager(ctx, cfg.Secrets, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize secrets manager: %w", err)
	}
	if err := config.ApplySecrets(ctx, cfg, secrets); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	logger.InfoContext(ctx, "configuration loaded",
		slog.String("environment", cfg.App.Environment),
		slog.Bool("run_lock", cfg.RedisEnabled()),
		slog.Bool("archive", cfg.ArchiveEnabled()))

	// The database is only contacted once a fetch has produced items to write.
	repo := db.NewSessionInventoryRepository(databaseConfig(cfg), cfg.Database.UpsertChunkSize, logger)
	client := api.NewClient(api.Config{
		URL:     cfg.API.URL,
		APIKey:  cfg.API.Key,
		Timeout: cfg.API.Timeout,
	}, logger)

	var state ports.SyncStateStore
	if cfg.RedisEnabled() {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		store := redis_a.NewSyncStateStore(redisClient, logger)
		if err := store.Ping(ctx); err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		logPreviousRun(ctx, store, logger)
		state = store
	}

	var archive ports.PayloadArchive
	if cfg.ArchiveEnabled() {
		s3Archive, err := storage.NewS3Archive(ctx, &storage.S3Config{
			Region:          cfg.Archive.Region,
			Bucket:          cfg.Archive.Bucket,
			AccessKeyID:     cfg.Archive.AccessKeyID,
			SecretAccessKey: cfg.Archive.SecretAccessKey,
			Endpoint:        cfg.Archive.Endpoint,
			UsePathStyle:    cfg.Archive.UsePathStyle,
		}, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize archive: %w", err)
		}
		archive = s3Archive
	}

	syncService := services.NewSyncService(client, repo, state, archive, cfg.Redis.LockTTL, logger)

	_, err = syncService.Run(ctx)
	return err
}

func databaseConfig(cfg *config.Config) *db.Config {
	return &db.Config{
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		User:               cfg.Database.User,
		Password:           cfg.Database.Password,
		Database:           cfg.Database.Name,
		SSLMode:            cfg.Database.SSLMode,
		ConnectTimeout:     cfg.Database.ConnectTimeout,
		EnableQueryLogging: cfg.Database.EnableQueryLogging,
	}
}

func logPreviousRun(ctx context.Context, store *redis_a.SyncStateStore, logger *slog.Logger) {
	report, err := store.LastReport(ctx)
	if err != nil {
		if !errors.Is(err, redis_a.ErrReportNotFound) {
			logger.WarnContext(ctx, "failed to read previous sync report", slog.String("error", err.Error()))
		}
		return
	}

	logger.InfoContext(ctx, "previous sync run",
		slog.String("previous_run_id", report.RunID),
		slog.String("status", string(report.Status)),
		slog.Time("finished_at", report.FinishedAt),
		slog.Int64("upserted", report.Upserted))
}
