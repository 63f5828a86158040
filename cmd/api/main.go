package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oseiserwaa/kitchen/config"
	"github.com/oseiserwaa/kitchen/internal/app"
	"github.com/oseiserwaa/kitchen/pkg/logger"
)

var (
	osExit       = os.Exit
	signalNotify = signal.Notify
)

// NewAppFunc defines the function signature for creating a new app
type NewAppFunc func(cfg *config.Config, opts ...app.AppOption) app.AppInterface

var newApp NewAppFunc = app.NewApp

const (
	// drainTimeout bounds how long in-flight requests may keep running
	drainTimeout = 30 * time.Second
	// forceGrace is how long a second signal waits for cleanup to finish
	forceGrace = 2 * time.Second
)

var errForcedShutdown = errors.New("forced shutdown")

func runServer(cfg *config.Config, appLogger logger.Logger) error {
	api := newApp(cfg, app.WithLogger(appLogger))
	if err := api.Initialize(); err != nil {
		appLogger.WithField("error", err.Error()).Error("Failed to initialize application")
		return err
	}

	// room for the second signal that forces exit during a drain
	signals := make(chan os.Signal, 2)
	signalNotify(signals, os.Interrupt, syscall.SIGTERM)

	served := make(chan error, 1)
	go func() { served <- api.Start() }()

	select {
	case err := <-served:
		if err != nil {
			appLogger.WithField("error", err.Error()).Error("Server stopped")
		}
		return err
	case sig := <-signals:
		appLogger.WithField("signal", sig.String()).Info("Shutdown signal received, draining requests")
		return drain(api, appLogger, signals)
	}
}

// drain shuts api down, giving up early if another signal arrives
func drain(api app.AppInterface, appLogger logger.Logger, signals <-chan os.Signal) error {
	api.SetShutdownTimeout(drainTimeout)
	ctx, cancel := context.WithTimeout(context.Background(), drainTimeout+5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- api.Shutdown(ctx) }()

	select {
	case err := <-done:
		if err != nil {
			appLogger.WithField("error", err.Error()).Error("Shutdown finished with errors")
			return err
		}
		appLogger.Info("Server shut down gracefully")
		return nil
	case sig := <-signals:
		appLogger.WithField("signal", sig.String()).Warn("Second signal received, forcing shutdown")
		cancel()
		select {
		case <-done:
		case <-time.After(forceGrace):
		}
		return errForcedShutdown
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appLogger := logger.NewLoggerWithLevel(cfg.LogLevel)
	appLogger.WithFields(map[string]interface{}{
		"restaurant": cfg.RestaurantName,
		"storage":    cfg.Storage.Driver,
		"version":    cfg.Version,
	}).Info(fmt.Sprintf("Starting API server on %s:%d", cfg.Server.Host, cfg.Server.Port))

	if err := runServer(cfg, appLogger); err != nil {
		osExit(1)
	}
}
