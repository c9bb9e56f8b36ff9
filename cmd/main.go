package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/okian/gaji/internal/adapters/artifact"
	"github.com/okian/gaji/internal/adapters/http/api"
	"github.com/okian/gaji/internal/adapters/http/site"
	"github.com/okian/gaji/internal/adapters/http/swagger"
	app "github.com/okian/gaji/internal/app"
	"github.com/okian/gaji/internal/config"
	"github.com/okian/gaji/pkg/logger"
	"github.com/okian/gaji/pkg/metrics"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 10 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	systemMetricsInterval     = 10 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics
	// We collect our own custom system metrics instead
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Initialize logging with defaults until the config is read
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	err := run(ctx)
	stop()
	if err != nil {
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}

// run loads configuration and artifacts, then serves until ctx is done.
// Nothing is served when the artifacts cannot be loaded.
func run(ctx context.Context) error {
	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	loggerInstance := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	arts, err := artifact.Load(ctx,
		artifact.WithModelPath(cfg.ModelPath),
		artifact.WithScalerPath(cfg.ScalerPath),
		artifact.WithLogger(loggerInstance),
	)
	if err != nil {
		return fmt.Errorf("%s: %w", artifactHint(err), err)
	}

	svc, err := app.New(arts,
		app.WithLogger(loggerInstance),
		app.WithStrictCategories(cfg.StrictCategories),
	)
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}

	go startSystemMetricsUpdater(ctx)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newHandler(ctx, cfg, svc),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return serve(ctx, srv)
}

// newHandler builds the routing tree: API and docs routes, the form at the
// root, all behind request-id and CORS middleware.
func newHandler(ctx context.Context, cfg *config.Config, svc *app.Service) http.Handler {
	mux := http.NewServeMux()

	swagger.Register(ctx, mux)

	apiServer := api.NewServer(svc, svc)
	apiServer.Register(ctx, mux)

	site.Register(ctx, mux, svc)

	return api.RequestID(api.CORS(cfg.CORSAllowedOrigins)(mux))
}

func serve(ctx context.Context, srv *http.Server) error {
	loggerInstance := logger.Get()
	errCh := make(chan error, 1)

	go func() {
		loggerInstance.Info(ctx, "starting HTTP server", logger.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("HTTP server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}
	loggerInstance.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		loggerInstance.Error(ctx, "server shutdown failed", logger.Error(err))
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	loggerInstance.Info(ctx, "server stopped")
	return nil
}

// artifactHint turns an artifact load failure into an operator-facing message.
func artifactHint(err error) string {
	switch {
	case errors.Is(err, artifact.ErrMissingArtifact):
		return "model or scaler file not found; place them under ./artifacts in the working directory " +
			"or set GAJI_MODEL_PATH and GAJI_SCALER_PATH"
	case errors.Is(err, artifact.ErrCorruptArtifact):
		return "model or scaler file could not be loaded; re-export the artifacts"
	default:
		return "failed to load artifacts"
	}
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)

	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		// Calculate average GC pause time
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
