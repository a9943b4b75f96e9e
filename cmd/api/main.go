// Command api serves the CRM REST API.
//
//	@title						CRM API
//	@version					1.0
//	@description				Customers, leads, tasks, interactions and users with JWT auth, pagination and reporting.
//	@BasePath					/
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	_ "github.com/relaycrm/crm-api/docs"
	"github.com/relaycrm/crm-api/internal/api"
	"github.com/relaycrm/crm-api/internal/api/handler"
	"github.com/relaycrm/crm-api/internal/api/middleware"
	"github.com/relaycrm/crm-api/internal/core/ports"
	"github.com/relaycrm/crm-api/internal/core/service"
	mongodb "github.com/relaycrm/crm-api/internal/infrastructure/db/mongo"
	"github.com/relaycrm/crm-api/internal/infrastructure/db/postgres"
	redisdb "github.com/relaycrm/crm-api/internal/infrastructure/db/redis"
	"github.com/relaycrm/crm-api/internal/pkg/config"
	"github.com/relaycrm/crm-api/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.New(logger.Options{})
		bootLog.Fatal().Err(err).Msg("invalid configuration")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "crm-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	// --- PostgreSQL ---
	db, err := postgres.Open(ctx, postgres.Config{
		URL:             cfg.Postgres.URL,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
	})
	if err != nil {
		return err
	}
	defer db.Close()

	if err := postgres.Migrate(ctx, db); err != nil {
		return err
	}
	log.Info().Msg("database migrated")

	optional := map[string]handler.Pinger{}

	// --- MongoDB activity log (optional) ---
	var activityRepo ports.ActivityRepository
	if cfg.Mongo.URI != "" {
		client, mdb, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() {
			dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			_ = client.Disconnect(dctx)
		}()

		repo := mongodb.NewActivityRepository(mdb)
		if err := repo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("activity indexes not created")
		}
		activityRepo = repo
		optional["mongodb"] = func(ctx context.Context) error { return mongodb.Ping(ctx, client) }
		log.Info().Str("database", cfg.Mongo.Database).Msg("activity log enabled")
	} else {
		log.Warn().Msg("MONGO_URI not set, activity log disabled")
	}

	// --- Redis rate limit store (optional) ---
	var windows middleware.WindowStore = middleware.NewMemoryWindowStore()
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		defer rdb.Close()

		windows = redisdb.NewWindowCounter(rdb)
		optional["redis"] = func(ctx context.Context) error { return redisdb.Ping(ctx, rdb) }
		log.Info().Str("addr", cfg.Redis.Addr).Msg("redis rate limiting enabled")
	} else {
		log.Warn().Msg("REDIS_ADDR not set, using in-memory rate limiting")
	}

	// --- Repositories and services ---
	users := postgres.NewUserRepository(db)
	customers := postgres.NewCustomerRepository(db)
	leads := postgres.NewLeadRepository(db)
	tasks := postgres.NewTaskRepository(db)
	interactions := postgres.NewInteractionRepository(db)
	reports := postgres.NewReportRepository(db)

	recorder := service.NewActivityRecorder(activityRepo, log)

	services := api.Services{
		Auth: service.NewAuthService(users, service.AuthConfig{
			JWTSecret:  cfg.Auth.JWTSecret,
			TokenTTL:   cfg.Auth.TokenTTL,
			BcryptCost: cfg.Auth.BcryptCost,
		}, log),
		Users:        service.NewUserService(users, recorder, log),
		Customers:    service.NewCustomerService(customers, recorder, log),
		Leads:        service.NewLeadService(leads, customers, users, recorder, log),
		Tasks:        service.NewTaskService(tasks, customers, users, recorder, log),
		Interactions: service.NewInteractionService(interactions, customers, recorder, log),
		Reports:      service.NewReportService(reports),
		Activity:     service.NewActivityService(activityRepo),
	}

	e := api.NewRouter(services, api.Options{
		Env:         cfg.Env,
		CORSOrigins: cfg.CORSOrigins,
		TrustProxy:  cfg.TrustProxy,
		RateLimit: middleware.RateLimitConfig{
			Max:    cfg.RateLimit.Max,
			Window: cfg.RateLimit.Window,
			Store:  windows,
		},
		Health: handler.NewHealthHandler(func(ctx context.Context) error { return postgres.Ping(ctx, db) }, optional, cfg.IsDevelopment()),
		Logger: log,
	})

	// --- Serve until signalled ---
	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("http server listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
