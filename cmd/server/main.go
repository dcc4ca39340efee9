package main

import (
	"context"
	"log"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	apiHandler "github.com/plantcare/backend/api/handler"
	"github.com/plantcare/backend/domain"
	"github.com/plantcare/backend/internal/config"
	"github.com/plantcare/backend/internal/infrastructure/buffer"
	"github.com/plantcare/backend/internal/infrastructure/monitor"
	pgInfra "github.com/plantcare/backend/internal/infrastructure/postgres"
	redisInfra "github.com/plantcare/backend/internal/infrastructure/redis"
	"github.com/plantcare/backend/internal/middleware"
	"github.com/plantcare/backend/internal/router"
	"github.com/plantcare/backend/internal/services"
	"github.com/plantcare/backend/internal/services/lifecycle"
	"github.com/plantcare/backend/pkg/httpcontext"
	"github.com/plantcare/backend/pkg/logger"
	"github.com/plantcare/backend/repository/postgres"
	redisRepo "github.com/plantcare/backend/repository/redis"
	authUC "github.com/plantcare/backend/usecase/auth"
	careUC "github.com/plantcare/backend/usecase/care"
	plantUC "github.com/plantcare/backend/usecase/plant"
	readingUC "github.com/plantcare/backend/usecase/reading"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	zapLogger, err := logger.New(logger.Config{
		Level:    cfg.Logger.Level,
		Encoding: cfg.Logger.Encoding,
	})
	if err != nil {
		log.Fatalf("logger error: %v", err)
	}
	defer zapLogger.Sync()

	appCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	manager := lifecycle.New(cfg.Context.ShutdownTimeout, zapLogger)
	manager.Listen(cancel)

	if err := pgInfra.RunMigrations(cfg, zapLogger); err != nil {
		zapLogger.Fatal("migrations failed", zap.Error(err))
	}

	pool, err := pgInfra.NewPool(appCtx, cfg.Database, zapLogger)
	if err != nil {
		zapLogger.Fatal("postgres connection failed", zap.Error(err))
	}
	manager.Register("postgres", func(ctx context.Context) error {
		pool.Close()
		return nil
	})

	redisClient, err := redisInfra.NewClient(cfg.Redis)
	if err != nil {
		zapLogger.Fatal("redis connection failed", zap.Error(err))
	}
	manager.Register("redis", func(ctx context.Context) error {
		return redisClient.Close()
	})

	bufferStore, err := buffer.Open(cfg.Buffer.Path, "offline")
	if err != nil {
		zapLogger.Fatal("failed to open buffer store", zap.Error(err))
	}
	manager.Register("buffer", func(ctx context.Context) error {
		return bufferStore.Close()
	})

	mon := monitor.New(pool, redisClient, bufferStore, 10*time.Second, zapLogger)
	mon.Start()
	manager.Register("monitor", func(ctx context.Context) error {
		mon.Stop()
		return nil
	})

	userRepo := postgres.NewUserRepository(pool)
	plantRepo := postgres.NewPlantRepository(pool)
	taskRepo := postgres.NewCareTaskRepository(pool)
	readingRepo := postgres.NewReadingRepository(pool)
	sessionRepo := redisRepo.NewSessionRepository(redisClient, 24*time.Hour)

	bufferProcessor := services.NewBufferProcessor(
		bufferStore,
		mon,
		plantRepo,
		readingRepo,
		zapLogger,
		services.ProcessorConfig{
			Interval:   cfg.Buffer.SyncInterval,
			BatchSize:  50,
			MaxRetries: cfg.Buffer.MaxRetry,
		},
	)
	bufferProcessor.Start()
	manager.Register("buffer_processor", func(ctx context.Context) error {
		bufferProcessor.Stop(ctx)
		return nil
	})

	bufferBridge := services.NewBufferBridge(bufferProcessor)

	intervals := domain.CareIntervals{
		WateringDays:    cfg.Care.WateringDays,
		FertilizingDays: cfg.Care.FertilizingDays,
		PruningDays:     cfg.Care.PruningDays,
	}

	authUseCase := authUC.New(userRepo, sessionRepo, zapLogger)
	careUseCase := careUC.New(plantRepo, taskRepo, intervals, zapLogger)
	plantUseCase := plantUC.New(plantRepo, bufferBridge, zapLogger)
	readingUseCase := readingUC.New(readingRepo, plantRepo, bufferBridge, zapLogger)

	if cfg.Sweep.Enabled {
		sweeper := services.NewSweeper(plantRepo, careUseCase, zapLogger, services.SweeperConfig{
			Interval: cfg.Sweep.Interval,
			PageSize: cfg.Sweep.PageSize,
		})
		sweeper.Start()
		manager.Register("sweeper", func(ctx context.Context) error {
			sweeper.Stop(ctx)
			return nil
		})
	}

	ctxAdapter := httpcontext.NewAdapter(cfg.Context.RequestTimeout)

	handlers := router.Handlers{
		Auth:    apiHandler.NewAuthHandler(authUseCase, ctxAdapter, zapLogger, time.Hour),
		Plant:   apiHandler.NewPlantHandler(plantUseCase, ctxAdapter, zapLogger),
		Care:    apiHandler.NewCareHandler(careUseCase, ctxAdapter, zapLogger),
		Reading: apiHandler.NewReadingHandler(readingUseCase, ctxAdapter, zapLogger),
		Health:  apiHandler.NewHealthHandler(mon, ctxAdapter, zapLogger),
	}

	authMiddleware := middleware.JWTAuth(cfg.JWT.Secret, zapLogger)
	r := router.New(handlers, authMiddleware)

	server := &fasthttp.Server{
		Handler:      r.Handler,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
		Name:         cfg.AppName,
	}

	go func() {
		zapLogger.Info("server started", zap.String("address", cfg.Address()))
		if err := server.ListenAndServe(cfg.Address()); err != nil {
			zapLogger.Fatal("server crashed", zap.Error(err))
		}
	}()

	manager.Register("http_server", func(ctx context.Context) error {
		return server.Shutdown()
	})

	<-appCtx.Done()

	if err := manager.Shutdown(context.Background()); err != nil {
		zapLogger.Error("graceful shutdown error", zap.Error(err))
	}
}
