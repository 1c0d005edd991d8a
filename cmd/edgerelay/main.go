package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/edgerelay/edgerelay/internal/api"
	"github.com/edgerelay/edgerelay/internal/core/domain"
	"github.com/edgerelay/edgerelay/internal/core/service"
	"github.com/edgerelay/edgerelay/internal/infrastructure/config"
	"github.com/edgerelay/edgerelay/internal/infrastructure/db/postgres"
	redisdb "github.com/edgerelay/edgerelay/internal/infrastructure/db/redis"
	"github.com/edgerelay/edgerelay/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		// Logger is not up yet.
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Service: "edgerelay",
		Level:   cfg.LogLevel,
		Pretty:  cfg.Env == "development",
	})

	// --- Realm databases ---
	adminPool, err := postgres.Connect(ctx, cfg.AdminDB.URL())
	if err != nil {
		log.Fatal().Err(err).Msg("admin database connection failed")
	}
	defer adminPool.Close()

	clientPool, err := postgres.Connect(ctx, cfg.ClientDB.URL())
	if err != nil {
		log.Fatal().Err(err).Msg("client database connection failed")
	}
	defer clientPool.Close()

	// --- Session cache ---
	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	// --- Core services ---
	tokens, err := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.Algorithm, cfg.JWT.TokenTTL)
	if err != nil {
		log.Fatal().Err(err).Msg("token service configuration invalid")
	}
	hasher := service.NewBcryptHasher(0)
	policy := service.NewPasswordPolicy(8)
	sessions := redisdb.NewSessionCache(rdb)

	adminStore := postgres.NewAdminRepository(adminPool)
	clientStore := postgres.NewClientRepository(clientPool)

	adminAuth := service.NewAuthService(domain.RealmAdmin, adminStore, tokens, hasher, sessions, cfg.JWT.TokenTTL, log)
	clientAuth := service.NewAuthService(domain.RealmClient, clientStore, tokens, hasher, sessions, cfg.JWT.TokenTTL, log)
	clients := service.NewClientService(clientStore, hasher, policy, log)

	// --- HTTP ---
	e := api.NewRouter(api.Deps{
		AdminAuth:      adminAuth,
		ClientAuth:     clientAuth,
		Clients:        clients,
		AdminPool:      adminPool,
		ClientPool:     clientPool,
		Redis:          rdb,
		Env:            cfg.Env,
		RequestTimeout: cfg.RequestTimeout,
		Log:            log,
	})

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped unexpectedly")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("server stopped")
}
