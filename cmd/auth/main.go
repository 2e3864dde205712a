package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mesafina/restaurant-backend/internal/auth"
	"github.com/mesafina/restaurant-backend/internal/core/service"
	"github.com/mesafina/restaurant-backend/internal/infrastructure/broker"
	"github.com/mesafina/restaurant-backend/internal/infrastructure/config"
	mongodb "github.com/mesafina/restaurant-backend/internal/infrastructure/db/mongo"
	redisdb "github.com/mesafina/restaurant-backend/internal/infrastructure/db/redis"
	"github.com/mesafina/restaurant-backend/internal/infrastructure/hash"
	"github.com/mesafina/restaurant-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Service: "auth-api",
		Pretty:  cfg.Env == "development",
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer client.Disconnect(ctx) //nolint:errcheck

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	userRepo := mongodb.NewUserRepository(db)
	if err := userRepo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index bootstrap failed")
	}

	hasher := hash.NewBcryptHasher(hash.Cost)
	authService := service.NewAuthService(
		userRepo,
		hasher,
		cfg.JWTSecret,
		cfg.AccessTokenTTL,
		cfg.RefreshTokenTTL,
		log,
	)

	srv := broker.NewServer(rdb, cfg.Broker.Queue, cfg.Broker.Workers, auth.ResolveError(log), log)
	if err := auth.NewDispatcher(authService).Bind(srv); err != nil {
		log.Fatal().Err(err).Msg("pattern binding failed")
	}

	go func() {
		log.Info().Str("queue", cfg.Broker.Queue).Msg("auth service consuming queue")
		srv.Run(ctx)
	}()

	e := auth.NewRouter(authService, log)
	go func() {
		log.Info().Str("port", cfg.AuthPort).Msg("auth api started")
		if err := e.Start(":" + cfg.AuthPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("auth server stopped")
		}
	}()

	waitForShutdown()

	cancel()
	_ = e.Shutdown(context.Background())
}

func waitForShutdown() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	log := logger.Get()
	log.Info().Str("signal", sig.String()).Msg("shutting down")
}
