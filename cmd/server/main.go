// Command server runs the gradebook portal HTTP backend.
//
//	@title						Gradebook Portal API
//	@version					1.0
//	@description				Session, login and course selection endpoints of the gradebook portal.
//	@BasePath					/
//	@securityDefinitions.apikey	SessionCookie
//	@in							cookie
//	@name						sessionToken
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

	"github.com/gradebook/portal/internal/api"
	"github.com/gradebook/portal/internal/api/handler"
	"github.com/gradebook/portal/internal/core/service"
	"github.com/gradebook/portal/internal/infrastructure/db/mongo"
	"github.com/gradebook/portal/internal/infrastructure/db/redis"
	"github.com/gradebook/portal/internal/pkg/config"
	"github.com/gradebook/portal/internal/pkg/token"
	"github.com/gradebook/portal/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.Production(),
		Service: "gradebook-portal",
	})
	log.Info().Str("env", cfg.Env).Msg("configuration loaded")

	store, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return fmt.Errorf("connecting to mongodb: %w", err)
	}
	defer func() {
		log.Info().Msg("closing mongodb")
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if closeErr := store.Close(closeCtx); closeErr != nil {
			log.Error().Err(closeErr).Msg("error closing mongodb")
		}
	}()
	log.Info().Str("database", cfg.Mongo.Database).Msg("mongodb connected")

	accounts := mongo.NewAccountRepository(store.DB)
	if err := accounts.EnsureIndexes(ctx); err != nil {
		return fmt.Errorf("creating account indexes: %w", err)
	}
	courses := mongo.NewCourseRepository(store.DB)

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer func() {
		log.Info().Msg("closing redis")
		if closeErr := rdb.Close(); closeErr != nil {
			log.Error().Err(closeErr).Msg("error closing redis")
		}
	}()
	log.Info().Str("addr", cfg.Redis.Addr).Msg("redis connected")

	codec := token.NewCodec(cfg.JWTSecret, cfg.TokenTTL)
	cache := redis.NewCourseCache(rdb, cfg.Redis.CacheTTL)

	e := api.NewRouter(api.Deps{
		Codec:         codec,
		AuthService:   service.NewAuthService(accounts, courses, codec, log),
		CourseService: service.NewCourseService(accounts, courses, cache, codec, log),
		Health: map[string]handler.Pinger{
			"mongodb": store,
			"redis": handler.PingFunc(func(ctx context.Context) error {
				return rdb.Ping(ctx).Err()
			}),
		},
		Cookie: handler.CookieConfig{Secure: cfg.Production()},
		Log:    log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down http server: %w", err)
	}
	log.Info().Msg("server stopped")
	return nil
}
