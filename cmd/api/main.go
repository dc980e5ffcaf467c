package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"librarycatalog/internal/catalog"
	"librarycatalog/internal/config"
	"librarycatalog/internal/httpx"
	"librarycatalog/internal/platform/logger"
	"librarycatalog/internal/platform/postgres"
)

func main() {
	log := logger.New().Console().MustMake().Logger

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	if level, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		log = log.Level(level)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sink, err := logger.OpenSink(cfg.LogPath)
	if err != nil {
		log.Fatal().Err(err).Str("path", cfg.LogPath).Msg("cannot open notification log")
	}
	defer sink.Close()

	var (
		repo catalog.SnapshotRepository = catalog.NewMemoryRepo()
		pool *pgxpool.Pool
	)
	if cfg.DatabaseDSN != "" {
		pool, err = postgres.Open(ctx, cfg.DatabaseDSN)
		if err != nil {
			log.Fatal().Err(err).Str("dsn", config.RedactDSN(cfg.DatabaseDSN)).Msg("cannot open database")
		}
		defer pool.Close()
		repo = catalog.NewPostgresRepo(pool)
		log.Info().Msg("database connection OK")
	} else {
		log.Warn().Msg("DB_DSN not set, snapshots are kept in memory")
	}

	c := catalog.New()
	c.RegisterObserver(catalog.NewLoggingObserver(sink))
	svc := catalog.NewService(c, repo, log)

	router := http.NewServeMux()
	router.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.HandleFunc("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if pool != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 500*time.Millisecond)
			defer cancel()
			if err := pool.Ping(ctx); err != nil {
				http.Error(w, "db not ready", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	})
	catalog.NewHTTPHandler(svc).Register(router)

	rateLimiter := httpx.NewRateLimitMiddleware(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst)
	rateLimiter.TrustForwardedFor = cfg.TrustProxy
	handler := httpx.Chain(router,
		httpx.RequestIDMiddleware,
		httpx.AccessLogMiddleware(log),
		httpx.RecoveryMiddleware(log),
		httpx.SecurityHeadersMiddleware(cfg.EnableHSTS),
		httpx.CORSMiddleware(cfg.AllowedOrigins),
		rateLimiter.Middleware,
		httpx.RequestSizeLimitMiddleware(1<<20),
	)

	httpServer := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", cfg.Addr).Msg("starting server")
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error().Err(err).Msg("server error")
	}
}
