package cli

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/tailkeep-lab/tailkeep/pkg/cli/config"
	httpctrl "github.com/tailkeep-lab/tailkeep/pkg/controller/http"
	"github.com/tailkeep-lab/tailkeep/pkg/service/export"
	"github.com/tailkeep-lab/tailkeep/pkg/service/guideline"
	"github.com/tailkeep-lab/tailkeep/pkg/service/worker"
	"github.com/tailkeep-lab/tailkeep/pkg/usecase"
	"github.com/tailkeep-lab/tailkeep/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdServe(version string) *cli.Command {
	var addr string
	var guidelineFile string
	var exportBucket string
	var reminderInterval time.Duration
	var repoCfg config.Repository
	var reasoningCfg config.Reasoning
	var sentryCfg config.Sentry

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       ":8080",
			Sources:     cli.EnvVars("TAILKEEP_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "guideline-file",
			Usage:       "TOML file overriding built-in care guidelines",
			Sources:     cli.EnvVars("TAILKEEP_GUIDELINE_FILE"),
			Destination: &guidelineFile,
		},
		&cli.StringFlag{
			Name:        "export-bucket",
			Usage:       "Cloud Storage bucket for conversation export on reset (empty disables export)",
			Sources:     cli.EnvVars("TAILKEEP_EXPORT_BUCKET"),
			Destination: &exportBucket,
		},
		&cli.DurationFlag{
			Name:        "reminder-interval",
			Usage:       "Interval between reminder scans (0 disables the worker)",
			Value:       time.Hour,
			Sources:     cli.EnvVars("TAILKEEP_REMINDER_INTERVAL"),
			Destination: &reminderInterval,
		},
	}

	// Add shared config flags
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, reasoningCfg.Flags()...)
	flags = append(flags, sentryCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start HTTP server",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			sentryClose, err := sentryCfg.Configure(version)
			if err != nil {
				return goerr.Wrap(err, "failed to configure sentry")
			}
			defer sentryClose()

			// Initialize repository based on backend type
			repo, err := repoCfg.Configure(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to initialize repository")
			}
			defer func() {
				if err := repo.Close(); err != nil {
					logging.Default().Error("failed to close repository", "error", err.Error())
				}
			}()

			reasoningClient, err := reasoningCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to configure reasoning client")
			}

			guidelines := guideline.NewDefault()
			if guidelineFile != "" {
				guidelines, err = guideline.LoadFile(guidelineFile)
				if err != nil {
					return goerr.Wrap(err, "failed to load guideline file")
				}
				logging.Default().Info("Care guidelines loaded", "path", guidelineFile)
			}

			ucOpts := []usecase.Option{
				usecase.WithGuidelines(guidelines),
			}
			if reasoningClient != nil {
				ucOpts = append(ucOpts, usecase.WithReasoning(reasoningClient))
			}

			if exportBucket != "" {
				exporter, err := export.New(ctx, exportBucket)
				if err != nil {
					return goerr.Wrap(err, "failed to initialize export service")
				}
				defer func() {
					if err := exporter.Close(); err != nil {
						logging.Default().Error("failed to close export service", "error", err.Error())
					}
				}()
				ucOpts = append(ucOpts, usecase.WithExporter(exporter))
				logging.Default().Info("Conversation export enabled", "bucket", exportBucket)
			}

			uc := usecase.New(repo, ucOpts...)

			// Start the reminder worker unless disabled
			var reminderWorker *worker.ReminderWorker
			if reminderInterval > 0 {
				reminderWorker = worker.NewReminderWorker(repo, reminderInterval)
				if err := reminderWorker.Start(ctx); err != nil {
					return goerr.Wrap(err, "failed to start reminder worker")
				}
			}

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc),
				ReadHeaderTimeout: 30 * time.Second,
			}

			// Setup signal handling for graceful shutdown
			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

			// Start server in goroutine
			errCh := make(chan error, 1)
			go func() {
				logging.Default().Info("Starting HTTP server", "addr", addr)
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					errCh <- goerr.Wrap(err, "failed to start server")
				}
			}()

			// Wait for shutdown signal or server error
			select {
			case err := <-errCh:
				return err
			case sig := <-sigCh:
				logging.Default().Info("Received shutdown signal", "signal", sig)

				if reminderWorker != nil {
					reminderWorker.Stop()
				}

				shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.Default().Info("Server shutdown completed")
				return nil
			}
		},
	}
}
