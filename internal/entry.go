// Package internal provides the main application initialization and runtime logic.
package internal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"regexp"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"golang.org/x/sync/errgroup"

	"github.com/vitaminx-2025/vitaminx-website/internal/api"
	"github.com/vitaminx-2025/vitaminx-website/internal/configwatch"
	"github.com/vitaminx-2025/vitaminx-website/internal/logging"
	"github.com/vitaminx-2025/vitaminx-website/internal/metrics"
	"github.com/vitaminx-2025/vitaminx-website/internal/service"
	"github.com/vitaminx-2025/vitaminx-website/internal/sse"
	"github.com/vitaminx-2025/vitaminx-website/internal/store"
	pkgconfig "github.com/vitaminx-2025/vitaminx-website/pkg/config"
)

// NewLogger builds the JSON logger described by cfg, writing to console and
// the configured log file, and installs it as the slog default. The returned
// LevelVar can be adjusted at runtime.
func NewLogger(cfg *Config, console io.Writer) (*slog.Logger, *slog.LevelVar, io.Closer) {
	level := new(slog.LevelVar)
	level.Set(cfg.App.LogLevel)
	logger, closer := logging.New(console, level, logging.FileOptions{
		Path:       cfg.Log.File,
		MaxSizeMB:  cfg.Log.MaxSizeMB,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAgeDays: cfg.Log.MaxAgeDays,
	})
	slog.SetDefault(logger)
	return logger, level, closer
}

// OpenStore opens the SQLite database at cfg.SQLite.Path, creating its
// parent directory first.
func OpenStore(cfg *Config) (*store.DB, error) {
	if dir := filepath.Dir(cfg.SQLite.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create data dir: %w", err)
		}
	}
	db, err := store.Open(cfg.SQLite.Path)
	if err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}
	return db, nil
}

// Run starts the application with the given options.
func Run(ctx context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	logger, level, logCloser := NewLogger(cfg, os.Stdout)
	defer logCloser.Close()

	logger.Info("Configuration loaded",
		slog.String("http_address", cfg.App.HTTP.Address()),
		slog.String("sqlite_path", cfg.SQLite.Path),
		slog.String("auth_mode", cfg.Auth.Mode),
		slog.String("log_level", cfg.App.LogLevel.String()))

	db, err := OpenStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	broker := sse.NewBroker(cfg.Events.GraphThrottle)
	defer broker.Close()

	svc := service.NewService(db, broker)

	handler, err := newHTTPHandler(cfg, svc, broker, logger)
	if err != nil {
		return err
	}

	httpServer := &http.Server{
		Addr:              cfg.App.HTTP.Address(),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gCtx := errgroup.WithContext(ctx)

	if app.configPath != "" {
		g.Go(func() error {
			err := configwatch.Watch(gCtx, app.configPath, 0, logger, func() {
				reloadLogLevel(app.configPath, level, logger)
			})
			if err != nil {
				logger.Warn("config watcher disabled", slog.String("error", err.Error()))
			}
			return nil
		})
	}

	// Start HTTP server.
	g.Go(func() error {
		logger.Info("Starting HTTP server", slog.String("address", cfg.App.HTTP.Address()))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("HTTP server error: %w", err)
		}
		return nil
	})

	// Handle shutdown signals.
	g.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(quit)

		select {
		case sig := <-quit:
			logger.Info("Received shutdown signal", slog.String("signal", sig.String()))
		case <-gCtx.Done():
			logger.Info("Context cancelled, initiating shutdown")
		}

		logger.Info("Shutting down server...")

		// SSE streams only end when their clients go away or the broker closes.
		broker.Close()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			logger.Error("HTTP server shutdown error", slog.String("error", err.Error()))
		}

		return errShutdown
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errShutdown) {
		logger.Error("Application error", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Server stopped successfully")
	return nil
}

// errShutdown cancels the group once the server has been asked to stop, so
// the config watcher exits too.
var errShutdown = errors.New("shutdown")

// newHTTPHandler builds the root router: middleware, health, metrics and the
// API mounted under /api.
func newHTTPHandler(cfg *Config, svc *service.Service, events http.Handler, logger *slog.Logger) (http.Handler, error) {
	originRe, err := regexp.Compile(cfg.CORS.AllowedOriginPattern)
	if err != nil {
		return nil, fmt.Errorf("cors pattern: %w", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(api.RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowOriginFunc: func(_ *http.Request, origin string) bool {
			return originRe.MatchString(origin)
		},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(metrics.Middleware)

	// Health check endpoints (unauthenticated).
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		// Liveness stays 200; a failing store only degrades the reported status.
		status := "ok"
		if err := svc.Ping(r.Context()); err != nil {
			logger.Error("health check failed", slog.String("error", err.Error()))
			status = "degraded"
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprintf(w, `{"status":%q,"version":%q}`+"\n", status, cfg.App.Version)
	})
	r.Handle("/metrics", metrics.Handler())

	r.Mount("/api", api.NewRouter(svc, api.Options{
		AuthEnabled: cfg.Auth.AuthEnabled(),
		Token:       cfg.Auth.Token,
		Events:      events,
		BodyLimit:   cfg.App.HTTP.BodyLimit,
		RateLimit:   cfg.RateLimit.RPS,
		RateBurst:   cfg.RateLimit.Burst,
	}))

	return r, nil
}

// reloadLogLevel re-reads the config file and applies its log level. Other
// settings need a restart.
func reloadLogLevel(path string, level *slog.LevelVar, logger *slog.Logger) {
	next := NewDefaultConfig()
	if _, err := pkgconfig.LoadIfExists(path, next); err != nil {
		logger.Warn("config reload failed", slog.String("error", err.Error()))
		return
	}
	if level.Level() == next.App.LogLevel {
		return
	}
	level.Set(next.App.LogLevel)
	logger.Info("log level changed", slog.String("log_level", next.App.LogLevel.String()))
}
