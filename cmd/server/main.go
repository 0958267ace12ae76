package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/photobook/photobook/pkg/photobook"
	"github.com/photobook/photobook/pkg/photobook/api"
	"github.com/photobook/photobook/pkg/photobook/config"
	"github.com/photobook/photobook/pkg/photobook/telemetry"
)

func main() {
	serverConfig, err := config.Load(config.WithEnv())
	if err != nil {
		slog.Error("Failed to load server configuration", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()

	shutdownTelemetry, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName: "photobook",
		Endpoint:    serverConfig.OTLPEndpoint,
		Insecure:    serverConfig.OTLPInsecure,
	})
	if err != nil {
		slog.Error("Failed to initialize telemetry", "error", err)
		os.Exit(1)
	}

	var sink photobook.UsageSink
	if serverConfig.OTLPEndpoint != "" {
		usage, err := telemetry.NewUsage()
		if err != nil {
			slog.Error("Failed to create usage instruments", "error", err)
			os.Exit(1)
		}
		sink = usage
	}

	svc, err := serverConfig.BuildService(sink)
	if err != nil {
		slog.Error("Failed to build service", "error", err)
		os.Exit(1)
	}
	svc = telemetry.NewService(svc)

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%s", serverConfig.Port),
		Handler: routes(svc, serverConfig),
	}

	go func() {
		slog.Info("Photobook server starting",
			"port", serverConfig.Port,
			"environment", serverConfig.Environment,
			"storage", serverConfig.StorageType,
			"database", serverConfig.DatabaseType,
			"vision_enabled", serverConfig.VisionEnabled())

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}
	if err := shutdownTelemetry(shutdownCtx); err != nil {
		slog.Error("Failed to shut down telemetry", "error", err)
	}

	slog.Info("Server exiting")
}

func routes(svc photobook.Service, serverConfig *config.ServerConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(60 * time.Second))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, `{"status": "healthy", "environment": "%s"}`, serverConfig.Environment)
	})

	r.Mount("/photos", api.NewPhotosHandler(svc).Routes())

	return r
}
