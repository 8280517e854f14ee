// Package main is the entry point for the classifieds-service API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"classifieds-service/internal/app/service"
	"classifieds-service/internal/config"
	"classifieds-service/internal/domain"
	"classifieds-service/internal/infra/inventory"
	"classifieds-service/internal/infra/postgres"
	"classifieds-service/internal/infra/postgres/migrations"
	rediscache "classifieds-service/internal/infra/redis"
	"classifieds-service/internal/job"
	"classifieds-service/internal/logger"
	"classifieds-service/internal/transport/httpserver"
	"classifieds-service/internal/validator"
	"classifieds-service/pkg/locker"
)

func main() {
	// Load configuration
	cfg, err := config.Load("")
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	// Initialize logger
	log, err := logger.New(
		logger.Config{
			Level:  cfg.Logger.Level,
			Format: cfg.Logger.Format,
			Output: cfg.Logger.Output,
		},
		logger.SentryConfig{
			Enabled:     cfg.Sentry.Enabled,
			DSN:         cfg.Sentry.DSN,
			Environment: cfg.Sentry.Environment,
			SampleRate:  cfg.Sentry.SampleRate,
		},
	)
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("starting classifieds-service",
		zap.String("env", cfg.App.Env),
		zap.Int("port", cfg.App.Port),
	)

	// Connect to database
	dbCfg := postgres.Config{
		Host:         cfg.Database.Host,
		Port:         cfg.Database.Port,
		Name:         cfg.Database.Name,
		User:         cfg.Database.User,
		Password:     cfg.Database.Password,
		SSLMode:      cfg.Database.SSLMode,
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		MaxLifetime:  cfg.Database.MaxLifetime,
	}
	db, err := dbCfg.NewConnection(log.Logger)
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() { _ = postgres.Close(db) }()

	// Run migrations
	if err := migrations.Run(db); err != nil {
		log.Fatal("failed to run migrations", zap.Error(err))
	}
	log.Info("database migrations completed")

	// Create repository
	repo := postgres.NewRepository(db)

	// Create inventory reference resolver
	resolver := inventory.NewResolver(
		inventory.ClientConfig{
			BaseURL: cfg.Inventory.BaseURL,
			Timeout: cfg.Inventory.Timeout,
			Retry: inventory.RetryConfig{
				MaxAttempts: cfg.Inventory.Retry.MaxAttempts,
				WaitTime:    cfg.Inventory.Retry.WaitTime,
				MaxWaitTime: cfg.Inventory.Retry.MaxWaitTime,
			},
			CB: inventory.CBConfig{
				MaxRequests:  cfg.Inventory.CB.MaxRequests,
				Interval:     cfg.Inventory.CB.Interval,
				Timeout:      cfg.Inventory.CB.Timeout,
				FailureRatio: cfg.Inventory.CB.FailureRatio,
			},
		},
		log.Logger,
	)

	// Connect to Redis
	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Ping Redis to verify connection
	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer func() { _ = redisClient.Close() }()
	log.Info("connected to Redis",
		zap.String("host", cfg.Redis.Host),
		zap.Int("port", cfg.Redis.Port),
	)

	// Create cache implementation (optional, based on config)
	var cache domain.Cache
	if cfg.Cache.Enabled {
		cache = rediscache.NewCache(redisClient, log.Logger, cfg.Cache.KeyPrefix)
		log.Info("cache enabled", zap.String("key_prefix", cfg.Cache.KeyPrefix))
	} else {
		log.Info("cache disabled")
	}
	queryCache := service.NewQueryCache(cache, log.Logger)

	// Create services
	adsSvc := service.NewAdsService(repo, resolver, queryCache, log.Logger)
	consistencySvc := service.NewConsistencyService(repo, log.Logger)

	// Create distributed locker
	distLocker := locker.NewRedisLocker(redisClient, log.Logger)

	// Create validator
	v := validator.New()

	// Create HTTP server
	server := httpserver.NewServer(
		httpserver.ServerConfig{
			Port:      cfg.App.Port,
			BodyLimit: 1024 * 1024, // 1MB
			Debug:     cfg.App.Debug,
		},
		adsSvc,
		consistencySvc,
		db,
		v,
		log.Logger,
	)

	// Start warm-up scheduler with distributed locking
	var scheduler *job.WarmupScheduler
	if cfg.Cache.Enabled && cfg.Warmup.Enabled {
		scheduler = job.NewWarmupScheduler(
			adsSvc,
			job.WarmupConfig{
				Interval:  cfg.Warmup.Interval,
				Timeout:   cfg.Warmup.Timeout,
				OnStartup: cfg.Warmup.OnStartup,
			},
			log.Logger,
			distLocker,
		)
		scheduler.Start(cfg.Warmup.OnStartup)
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Info("shutdown signal received")

		// Stop scheduler
		if scheduler != nil {
			scheduler.Stop()
		}

		// Shutdown server with timeout
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.App.ShutdownWithContext(ctx); err != nil {
			log.Error("server shutdown error", zap.Error(err))
		}
	}()

	// Start server
	if err := server.Start(cfg.App.Port); err != nil {
		log.Fatal("server error", zap.Error(err))
	}
}
