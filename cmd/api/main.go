package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/levelup/levelup-backend/docs"
	"github.com/levelup/levelup-backend/internal/api"
	"github.com/levelup/levelup-backend/internal/core/service"
	"github.com/levelup/levelup-backend/internal/infrastructure/config"
	mongodb "github.com/levelup/levelup-backend/internal/infrastructure/db/mongo"
	redisdb "github.com/levelup/levelup-backend/internal/infrastructure/db/redis"
	"github.com/levelup/levelup-backend/internal/infrastructure/queue"
	"github.com/levelup/levelup-backend/internal/pkg/token"
	"github.com/levelup/levelup-backend/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is required")
	}

	// --- Mongo ---
	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() { _ = client.Disconnect(context.Background()) }()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("mongo index creation failed")
	}

	// --- Redis ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Referral pipeline ---
	statsRepo := mongodb.NewStatsRepository(db)
	referralDedup := redisdb.NewReferralDedup(rdb)
	statsService := service.NewStatsService(statsRepo, referralDedup, log)

	dispatcher := queue.NewDispatcher(cfg.ReferralWorkers, statsService, logger.Component("referral-dispatcher"))
	dispatcher.Start(ctx)

	// --- HTTP ---
	issuer := token.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	e := api.NewRouter(db, rdb, issuer, statsService, dispatcher, log)

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("starting server")
		errCh <- e.Start(":" + cfg.Port)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := e.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("server shutdown error")
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
		}
	}

	log.Info().Msg("server stopped")
}
