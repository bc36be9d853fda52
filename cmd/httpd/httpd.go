// Package httpd implements the HTTP server command for the tender service.
package httpd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/orchestrarfp/gotender/cmd/common"
	"github.com/orchestrarfp/gotender/internal/api"
	"github.com/orchestrarfp/gotender/internal/logger"
	"github.com/orchestrarfp/gotender/internal/schedule"
)

const (
	signalChannelBufferSize = 1
	errorChannelBufferSize  = 1
	defaultShutdownTimeout  = 30 * time.Second
)

// Command returns the httpd command.
func Command() *cobra.Command {
	return &cobra.Command{
		Use:   "httpd",
		Short: "Start the tender discovery HTTP server",
		Long: `Serve the tender API over HTTP and refresh the cache snapshot on
the configured cron schedule. Runs until interrupted.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return Start()
		},
	}
}

// Start starts the HTTP server and runs until interrupted. It handles
// graceful shutdown on SIGINT or SIGTERM.
func Start() error {
	deps, err := common.NewCommandDeps()
	if err != nil {
		return fmt.Errorf("failed to initialize dependencies: %w", err)
	}

	pipeline := common.NewPipeline(deps)

	scheduler, err := startScheduler(deps, pipeline)
	if err != nil {
		return err
	}

	server, errChan := startHTTPServer(deps, pipeline)

	return runUntilInterrupt(deps.Logger, server, scheduler, errChan)
}

// startScheduler registers and starts the periodic refresh.
func startScheduler(deps *common.CommandDeps, pipeline *common.Pipeline) (*schedule.Scheduler, error) {
	scheduler, err := schedule.NewScheduler(
		deps.Config.Discovery.RefreshSchedule,
		pipeline.Service,
		deps.Logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create refresh scheduler: %w", err)
	}

	scheduler.Start()
	return scheduler, nil
}

// startHTTPServer creates the API server and starts serving in a goroutine.
func startHTTPServer(deps *common.CommandDeps, pipeline *common.Pipeline) (*api.Server, chan error) {
	handlers := api.NewHandlers(
		pipeline.Service,
		deps.Config.Catalog,
		deps.Config.Pricing.BasePrice,
		deps.Logger,
	)
	server := api.NewServer(deps.Config.Server, handlers, deps.Logger)

	errChan := make(chan error, errorChannelBufferSize)
	go func() {
		if serveErr := server.Start(); serveErr != nil {
			errChan <- serveErr
		}
	}()

	return server, errChan
}

// runUntilInterrupt blocks until a shutdown signal or a server error.
func runUntilInterrupt(
	log logger.Interface,
	server *api.Server,
	scheduler *schedule.Scheduler,
	errChan chan error,
) error {
	sigChan := make(chan os.Signal, signalChannelBufferSize)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case serverErr := <-errChan:
		log.Error("Server error", "error", serverErr)
		scheduler.Stop()
		return fmt.Errorf("server error: %w", serverErr)
	case sig := <-sigChan:
		return shutdown(log, server, scheduler, sig)
	}
}

// shutdown stops the scheduler first, then the HTTP server.
func shutdown(log logger.Interface, server *api.Server, scheduler *schedule.Scheduler, sig os.Signal) error {
	log.Info("Shutdown signal received", "signal", sig.String())

	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Failed to stop server", "error", err)
		return fmt.Errorf("failed to stop server: %w", err)
	}

	log.Info("Server stopped successfully")
	return nil
}
