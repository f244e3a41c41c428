package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/smartdoor/biometric-api/internal/api"
	"github.com/smartdoor/biometric-api/internal/core/service"
	"github.com/smartdoor/biometric-api/internal/infrastructure/actuator"
	"github.com/smartdoor/biometric-api/internal/infrastructure/config"
	mongodb "github.com/smartdoor/biometric-api/internal/infrastructure/db/mongo"
	redisdb "github.com/smartdoor/biometric-api/internal/infrastructure/db/redis"
	"github.com/smartdoor/biometric-api/internal/infrastructure/encoder"
	"github.com/smartdoor/biometric-api/internal/infrastructure/queue"
	"github.com/smartdoor/biometric-api/internal/infrastructure/storage"
	"github.com/smartdoor/biometric-api/pkg/logger"
)

func main() {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// --- Stores ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = mongoClient.Disconnect(shutdownCtx)
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	identityRepo := mongodb.NewIdentityRepository(db)
	auditRepo := mongodb.NewAccessLogRepository(db)
	authRepo := mongodb.NewAuthRepository(db)
	for _, ensure := range []func(context.Context) error{
		identityRepo.EnsureIndexes,
		auditRepo.EnsureIndexes,
		authRepo.EnsureIndexes,
	} {
		if err := ensure(ctx); err != nil {
			log.Fatal().Err(err).Msg("index creation failed")
		}
	}

	registry := redisdb.NewRegistryCache(identityRepo, rdb, log)

	// --- Collaborators ---
	faceEncoder := encoder.NewClient(cfg.Encoder.URL)
	photoStore := storage.NewClient(cfg.Photos.URL, cfg.Photos.Bucket, cfg.Photos.Key)

	// --- Unlock pipeline (optional: no DOOR_URL means decisions only) ---
	var unlocker service.UnlockDispatcher
	if cfg.Door.URL != "" {
		dispatcher := queue.NewDispatcher(cfg.Door.Workers, actuator.NewGateway(cfg.Door.URL, cfg.Door.Token), log)
		dispatcher.Start(ctx)
		unlocker = dispatcher
	} else {
		log.Warn().Msg("DOOR_URL not set; unlock commands disabled")
	}

	// --- Services ---
	matcher := service.NewMatcher(cfg.Match.Tolerance, cfg.Match.Strategy)
	svc := api.Services{
		Enrollment:   service.NewEnrollmentService(faceEncoder, photoStore, registry, registry, log),
		Verification: service.NewVerificationService(faceEncoder, registry, auditRepo, matcher, unlocker, log),
		AccessLogs:   service.NewAccessLogService(auditRepo),
		Auth:         service.NewAuthService(authRepo, cfg.JWTSecret, 24*time.Hour),
	}

	e := api.NewRouter(svc, db, rdb, cfg.JWTSecret, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting face access API")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
