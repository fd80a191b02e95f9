package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cargo-tracker/internal/core/cache"
	"cargo-tracker/internal/core/config"
	"cargo-tracker/internal/core/logger"
	"cargo-tracker/internal/core/server"
	"cargo-tracker/internal/features/shipments/adapters"
	"cargo-tracker/internal/features/shipments/domain"
	"cargo-tracker/internal/features/shipments/handler"
	"cargo-tracker/internal/features/shipments/service"

	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// @title Cargo Tracker API
// @version 1.0
// @description This API tracks shipments through an ordered list of logistics stages.
// @contact.name API Support
// @contact.email support@cargotracker.example
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	// Stage template is process-wide configuration, injected below.
	template, err := adapters.LoadTemplate(cfg.Stages.TemplatePath)
	if err != nil {
		l.Fatal("Failed to load stage template", zap.Error(err))
	}
	l.Info("Stage template loaded",
		zap.Strings("stages", template.Names()),
		zap.String("path", cfg.Stages.TemplatePath),
	)

	store, err := cache.NewRedisAdapter(cfg.Redis.URL)
	if err != nil {
		l.Fatal("Failed to create Redis client", zap.Error(err))
	}
	defer store.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	err = store.Ping(pingCtx)
	cancel()
	if err != nil {
		l.Fatal("Redis Health Check Failed", zap.Error(err))
	}
	l.Info("Redis connection verified")

	repo := adapters.NewRedisShipmentRepository(store)
	progression := domain.NewProgression(template)
	shipmentService := service.NewShipmentService(repo, progression,
		service.WithBulkConcurrency(cfg.Stages.BulkUpdateConcurrency),
	)
	shipmentHandler := handler.NewShipmentHandler(shipmentService)

	srv := server.New(cfg, store.Ping)
	shipmentHandler.Register(srv.App)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			l.Fatal("Server failed to start", zap.Error(err))
		}
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			l.Error("Graceful shutdown failed", zap.Error(err))
		}
	}
}
