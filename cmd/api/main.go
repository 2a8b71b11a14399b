// Copyright (c) 2026 Cinelog. All rights reserved.
// Author: dev@cinelog.app

// Command api is the entry point for the Cinelog HTTP API server.
//
// # Startup Sequence
//
//  1. Initialize structured logger.
//  2. Load configuration from environment variables.
//  3. Connect to PostgreSQL (pgxpool).
//  4. Connect to Redis.
//  5. Run database migrations (idempotent).
//  6. Wire HTTP handlers.
//  7. Start HTTP server with graceful shutdown.
//
// No business logic lives here. All wiring is explicit constructor injection.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cinelogapp/cinelog/internal/api"
	"github.com/cinelogapp/cinelog/internal/comment"
	"github.com/cinelogapp/cinelog/internal/favorite"
	"github.com/cinelogapp/cinelog/internal/ocr"
	"github.com/cinelogapp/cinelog/internal/platform/config"
	"github.com/cinelogapp/cinelog/internal/platform/constants"
	"github.com/cinelogapp/cinelog/internal/platform/migration"
	"github.com/cinelogapp/cinelog/internal/platform/objstore"
	pgstore "github.com/cinelogapp/cinelog/internal/platform/postgres"
	redisstore "github.com/cinelogapp/cinelog/internal/platform/redis"
	"github.com/cinelogapp/cinelog/internal/platform/sec"
	"github.com/cinelogapp/cinelog/internal/ticket"
	"github.com/cinelogapp/cinelog/internal/users/auth"
	"github.com/cinelogapp/cinelog/pkg/timeutil"
)

func main() {
	// ── 1. Logger ──────────────────────────────────────────────────────────
	// Initialize first so that subsequent startup errors are structured JSON.
	rawLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	// Add global context to all log entries.
	log := rawLog.With(slog.String("app", "cinelog"))
	slog.SetDefault(log)

	log.Info("service_initializing",
		slog.String("name", constants.AppName),
		slog.String("version", constants.AppVersion),
	)

	// ── 2. Configuration ──────────────────────────────────────────────────
	cfg, err := config.Load()
	must(log, err, "load configuration")

	if cfg.Debug {
		debugLog := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		}))
		log = debugLog.With(slog.String("app", "cinelog"))
		slog.SetDefault(log)
		log.Debug("debug_logging_enabled")
	}

	log.Info("configuration_loaded",
		slog.String("environment", cfg.Environment),
		slog.String("port", cfg.ServerPort),
	)

	// Root context for startup. Use a 30s deadline so misconfiguration is
	// caught quickly rather than hanging indefinitely.
	startupCtx, startupCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer startupCancel()

	// ── 3. PostgreSQL ─────────────────────────────────────────────────────
	pool, err := pgstore.NewPool(startupCtx, cfg.DatabaseURL, log)
	must(log, err, "connect to postgres")
	defer func() {
		log.Info("closing postgres pool")
		pool.Close()
	}()

	// ── 4. Redis ──────────────────────────────────────────────────────────
	rdb, err := redisstore.NewClient(startupCtx, cfg.RedisURL, log)
	must(log, err, "connect to redis")
	defer func() {
		log.Info("closing redis client")
		if cerr := rdb.Close(); cerr != nil {
			log.Error("redis close error", slog.Any("error", cerr))
		}
	}()

	// ── 5. Object Storage ─────────────────────────────────────────────────
	blobs, err := objstore.New(startupCtx, objstore.Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		Bucket:    cfg.S3Bucket,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		UseSSL:    cfg.IsProduction(),
	}, log)
	must(log, err, "connect to object storage")

	// ── 6. Migrations ─────────────────────────────────────────────────────
	must(log, migration.RunUp(cfg.DatabaseURL, cfg.MigrationPath, log), "run migrations")

	// ── 7. Token Service ──────────────────────────────────────────────────
	jwtSvc, err := sec.NewTokenService(cfg.JWTPrivKeyPath, cfg.JWTPubKeyPath, constants.AuthIssuer)
	must(log, err, "initialize jwt service")

	// ── 8. Health handlers (wired with real dependency checkers) ──────────
	liveness, readiness := api.NewHealthHandlers(api.HealthDependencies{
		CheckDatabase: func() error {
			return pgstore.Ping(context.Background(), pool)
		},
		CheckCache: func() error {
			return redisstore.Ping(context.Background(), rdb)
		},
		CheckBlobStore: func() error {
			return blobs.Ping(context.Background())
		},
	}, log)

	// ── 9. Domain Wiring ──────────────────────────────────────────────────
	clock := timeutil.SystemClock{}

	userRepository := auth.NewUserRepository(pool)
	refreshTokenRepository := auth.NewRefreshTokenRepository(rdb)
	authService := auth.NewService(userRepository, refreshTokenRepository, jwtSvc, cfg.AdminIDs(), clock)
	authHandler := auth.NewHandler(authService)

	commentRepository := comment.NewRepository(pool)
	reactionRepository := comment.NewReactionRepository(pool)
	reportRepository := comment.NewReportRepository(pool)
	commentService := comment.NewService(commentRepository, reactionRepository, reportRepository, authService, clock)
	commentHandler := comment.NewHandler(commentService)

	favoriteRepository := favorite.NewRepository(pool)
	favoriteService := favorite.NewService(favoriteRepository, clock)
	favoriteHandler := favorite.NewHandler(favoriteService)

	ticketRepository := ticket.NewRepository(pool)
	ticketService := ticket.NewService(ticketRepository, blobs, clock)
	ticketHandler := ticket.NewHandler(ticketService)

	ocrUsageRepository := ocr.NewUsageRepository(pool)
	ocrVendor := ocr.NewHTTPClient(cfg.OCRAPIURL, cfg.OCRSecretKey)
	ocrService := ocr.NewService(ocrUsageRepository, ocrVendor, clock, cfg.OCRMonthMaxQuota)
	ocrHandler := ocr.NewHandler(ocrService)

	// ── 10. HTTP Server ───────────────────────────────────────────────────
	handlers := api.Handlers{
		Liveness:  liveness,
		Readiness: readiness,
		Auth:      authHandler,
		Comment:   commentHandler,
		Favorite:  favoriteHandler,
		Ticket:    ticketHandler,
		OCR:       ocrHandler,
	}

	serverCtx, serverCancel := context.WithCancel(context.Background())
	defer serverCancel()

	server := api.NewServer(serverCtx, cfg, log, jwtSvc, handlers)

	// ── 11. Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGTERM, syscall.SIGINT)

	serverErr := make(chan error, 1)
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Block until OS signal or server error.
	select {
	case sig := <-quit:
		log.Info("shutdown signal received", slog.String("signal", sig.String()))
	case err := <-serverErr:
		log.Error("server startup error", slog.Any("error", err))
	}

	// Give in-flight requests enough time to complete.
	shutdownTimeout := constants.ShutdownTimeout
	log.Info("shutting down server", slog.Duration("timeout", shutdownTimeout))

	if err := server.Shutdown(shutdownTimeout); err != nil {
		log.Error("shutdown error", slog.Any("error", err))
		os.Exit(1)
	}

	log.Info("server stopped cleanly")
}

// must logs a structured fatal error and terminates the process if err is non-nil.
//
// It is intentionally limited to startup wiring. After startup, all errors
// must be returned and handled explicitly (never panic).
func must(log *slog.Logger, err error, context string) {
	if err != nil {
		log.Error("startup failure",
			slog.String("context", context),
			slog.Any("error", err),
		)
		os.Exit(1)
	}
}
