package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/thapelomagqazana/accounts-api/internal/api"
	"github.com/thapelomagqazana/accounts-api/internal/api/handler"
	"github.com/thapelomagqazana/accounts-api/internal/core/ports"
	"github.com/thapelomagqazana/accounts-api/internal/core/service"
	"github.com/thapelomagqazana/accounts-api/internal/infrastructure/config"
	mongodb "github.com/thapelomagqazana/accounts-api/internal/infrastructure/db/mongo"
	"github.com/thapelomagqazana/accounts-api/internal/infrastructure/db/postgres"
	"github.com/thapelomagqazana/accounts-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	tokens, err := service.NewTokenService(cfg.JWT.Secret, cfg.JWT.Algorithm, cfg.JWT.TokenTTL())
	if err != nil {
		log.Fatal().Err(err).Msg("failed to build token service")
	}

	repo, ping, closeStorage, err := buildRepository(ctx, cfg)
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.DBType).Msg("failed to connect storage")
	}
	defer closeStorage()

	e := api.NewRouter(repo, tokens, api.RouterConfig{
		CORSOrigin: cfg.CORSOrigin,
		Backend:    cfg.DBType,
		Ping:       ping,
	}, log)

	go func() {
		log.Info().Str("port", cfg.Port).Str("backend", cfg.DBType).Msg("server starting")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
	log.Info().Msg("server stopped")
}

// buildRepository connects the backend selected by DB_TYPE, ensures its
// schema or indexes, and returns the repository together with a readiness
// ping and a close function.
func buildRepository(ctx context.Context, cfg *config.Config) (ports.AccountRepository, handler.PingFunc, func(), error) {
	switch cfg.DBType {
	case config.BackendSQL:
		pool, err := postgres.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return nil, nil, nil, err
		}
		repo := postgres.NewAccountRepository(pool)
		if err := repo.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, nil, err
		}
		return repo, pool.Ping, pool.Close, nil

	case config.BackendNoSQL:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{
			URI:      cfg.Mongo.URI,
			Database: cfg.Mongo.Database,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		repo := mongodb.NewAccountRepository(db)
		if err := repo.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, nil, nil, err
		}
		ping := func(ctx context.Context) error { return client.Ping(ctx, nil) }
		closeFn := func() {
			disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = client.Disconnect(disconnectCtx)
		}
		return repo, ping, closeFn, nil
	}

	// config.Load already rejects unknown values; this is unreachable.
	return nil, nil, nil, fmt.Errorf("unknown DB_TYPE %q", cfg.DBType)
}
