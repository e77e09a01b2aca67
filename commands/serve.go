package commands

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/giygas/medlabel-api/config"
	"github.com/giygas/medlabel-api/data"
	"github.com/giygas/medlabel-api/extraction"
	"github.com/giygas/medlabel-api/handlers"
	"github.com/giygas/medlabel-api/health"
	"github.com/giygas/medlabel-api/logging"
	"github.com/giygas/medlabel-api/notify"
	"github.com/giygas/medlabel-api/scheduler"
	"github.com/giygas/medlabel-api/server"
	"github.com/giygas/medlabel-api/validation"
)

// How often idle rate limiter buckets are dropped
const limiterCleanupInterval = 30 * time.Minute

func serveCmd(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := loadEnv(); err != nil {
				return err
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}

			logging.InitLoggerWithOptions(logging.Options{
				Dir:            cfg.LogDir,
				Level:          cfg.LogLevel,
				RetentionWeeks: cfg.LogRetentionWeeks,
				MaxFileSize:    cfg.MaxLogFileSize,
			})
			defer logging.Close()

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return serve(ctx, cfg, opts)
		},
	}
	return cmd
}

// serve wires every component and blocks until ctx is cancelled or the
// listener fails
func serve(ctx context.Context, cfg *config.Config, opts *options) error {
	cat, err := opts.loadCatalog(cfg.CatalogFile)
	if err != nil {
		logging.Error("Failed to load catalog", "error", err)
		return err
	}

	stats := data.NewStatsContainer()
	notifier := notify.NewLogNotifier(logging.Logger())

	extractor := extraction.NewSimulator(cat, notifier,
		extraction.WithLatency(cfg.OCRLatency),
		extraction.WithStats(stats),
	)
	validator := validation.NewMedicineValidator(cat, validation.WithStats(stats))
	checker := health.NewHealthChecker(cat, stats)

	handler := handlers.NewHTTPHandler(cat, extractor, validator, validation.NewInputValidator(), checker,
		handlers.WithOCRTimeout(cfg.OCRTimeout),
	)
	srv := server.NewServer(cfg, handler)

	sched := scheduler.NewScheduler(cat, stats)
	sched.AddMaintenance("rate limiter cleanup", limiterCleanupInterval, func() {
		srv.RateLimiter().Cleanup()
	})
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			logging.Error("Server failed", "error", err)
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return <-errCh
}

// loadEnv reads .env from the working directory, then from the executable's
// directory. A missing file is not an error.
func loadEnv() error {
	err := godotenv.Load()
	if err == nil || !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	ex, err := os.Executable()
	if err != nil {
		return fmt.Errorf("failed to get executable path: %w", err)
	}

	err = godotenv.Load(filepath.Join(filepath.Dir(ex), ".env"))
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return nil
}
