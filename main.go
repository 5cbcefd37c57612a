package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rxbridge/generics-api/config"
	"github.com/rxbridge/generics-api/data"
	"github.com/rxbridge/generics-api/logging"
	"github.com/rxbridge/generics-api/scheduler"
	"github.com/rxbridge/generics-api/server"
	"github.com/rxbridge/generics-api/validation"
)

func main() {
	// Read the env variables; a missing .env file is fine in production
	if err := godotenv.Load(); err != nil {
		logging.Info("No .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		logging.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.InitLogger("logs", cfg.LogRetentionWeeks)

	container := data.NewContainer()
	container.SetServerStartTime(time.Now())

	// Restore catalogs from the latest snapshot; first boot has none
	if err := container.LoadSnapshot(cfg.SnapshotPath()); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Info("No catalog snapshot found, starting with empty catalogs")
		} else {
			logging.Warn("Failed to load catalog snapshot", "error", err)
		}
	} else {
		logging.Info("Catalog snapshot restored",
			"branded", container.Branded().Len(),
			"generic", container.Generic().Len(),
		)
	}

	sched := scheduler.NewScheduler(container, cfg.SnapshotPath())
	if err := sched.Start(); err != nil {
		logging.Error("Failed to start scheduler", "error", err)
		os.Exit(1)
	}

	srv := server.NewServer(cfg, container, validation.NewInputValidator())

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logging.Error("Server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Block until a signal is received
	<-quit

	sched.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logging.Error("Shutdown error", "error", err)
	}

	// Persist catalogs so the next boot starts where this one left off
	if err := container.SaveSnapshot(cfg.SnapshotPath()); err != nil {
		logging.Error("Failed to save catalog snapshot on shutdown", "error", err)
	}
}
