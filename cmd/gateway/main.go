package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/mesafina/restaurant-backend/internal/api"
	"github.com/mesafina/restaurant-backend/internal/api/handler"
	"github.com/mesafina/restaurant-backend/internal/infrastructure/broker"
	"github.com/mesafina/restaurant-backend/internal/infrastructure/config"
	redisdb "github.com/mesafina/restaurant-backend/internal/infrastructure/db/redis"
	"github.com/mesafina/restaurant-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Service: "api-gateway",
		Pretty:  cfg.Env == "development",
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer rdb.Close()

	authClient := broker.NewClient(rdb, cfg.Broker.Queue, cfg.Broker.RequestTimeout, log)

	services := map[string]handler.ServiceInfo{
		"auth": {
			URL:         cfg.Registry.AuthServiceURL,
			Name:        "Auth Service",
			Description: "Authentication and Authorization",
		},
		"restaurant": {
			URL:         cfg.Registry.RestaurantServiceURL,
			Name:        "Restaurant Service",
			Description: "Restaurant Management API",
		},
	}

	e := api.NewRouter(authClient, services, log)

	go func() {
		log.Info().Str("port", cfg.GatewayPort).Msg("api gateway started")
		if err := e.Start(":" + cfg.GatewayPort); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("gateway server stopped")
		}
	}()

	waitForShutdown()

	_ = e.Shutdown(ctx)
}

func waitForShutdown() {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	log := logger.Get()
	log.Info().Str("signal", sig.String()).Msg("shutting down")
}
