package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/voyo-music/canonizer/internal/catalog"
	"github.com/voyo-music/canonizer/internal/ingest"
	"github.com/voyo-music/canonizer/internal/notifications"
	"github.com/voyo-music/canonizer/internal/reports"
	"github.com/voyo-music/canonizer/internal/scheduler"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the canonizer as a scheduled service with an ops HTTP surface",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(ctx)
		},
	}
}

func runServe(ctx *commandContext) error {
	cfg := ctx.cfg

	if err := cfg.RequireSupabase(); err != nil {
		return err
	}

	logrus.Info("Starting VOYO canonizer service")

	timeout := time.Duration(cfg.UpsertTimeoutSeconds) * time.Second
	store, err := catalog.NewSupabaseStore(cfg.SupabaseURL, cfg.SupabaseAnonKey, cfg.MomentsTable, timeout)
	if err != nil {
		return fmt.Errorf("failed to initialize catalog store: %w", err)
	}

	archive, err := reports.NewLocalStore(cfg.ReportsDir)
	if err != nil {
		return fmt.Errorf("failed to initialize report archive: %w", err)
	}

	var notifier notifications.NotificationInterface
	if cfg.WebhookURL != "" || cfg.NotificationEmail != "" {
		notifier = notifications.NewService(cfg)
	}

	ingestService := ingest.NewService(cfg, store, notifier, archive)

	schedulerService := scheduler.NewService(cfg, ingestService)
	if err := schedulerService.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer schedulerService.Stop()

	router := mux.NewRouter()
	router.HandleFunc("/health", healthCheckHandler).Methods("GET")
	router.HandleFunc("/metrics", metricsHandler(ingestService)).Methods("GET")
	router.HandleFunc("/trigger", triggerHandler(ingestService)).Methods("POST")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logrus.Infof("HTTP server starting on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("HTTP server failed: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	logrus.Info("Server exited")
	return nil
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"healthy","timestamp":"` + time.Now().Format(time.RFC3339) + `"}`))
}

func metricsHandler(ingestService *ingest.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		metrics := ingestService.GetMetrics()
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(metrics))
	}
}

func triggerHandler(ingestService *ingest.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		go func() {
			if _, err := ingestService.Run(context.Background(), ingest.Options{}); err != nil {
				logrus.Errorf("Manual canonizer trigger failed: %v", err)
			}
		}()

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"message":"Canonizer run triggered successfully"}`))
	}
}
