package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/username/policyfeed/src/config"
	"github.com/username/policyfeed/src/handlers"
	"github.com/username/policyfeed/src/logger"
	"github.com/username/policyfeed/src/services"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger.L.Info("Policy feed backend starting...")

	store, err := openStore()
	if err != nil {
		return err
	}

	logger.L.Info("Initializing services and handlers...")
	brokerHandler := handlers.NewBrokerHandler(store)
	feedHandler := handlers.NewFeedHandler(newFeedService(store), services.NewExportService())

	logger.L.Info("Configuring routes...")
	router := handlers.NewRouter(handlers.RouterConfig{
		AllowedOrigins: config.Cfg.AllowedOrigins,
		RateLimitRPS:   config.Cfg.RateLimitRPS,
		RateLimitBurst: config.Cfg.RateLimitBurst,
	}, brokerHandler, feedHandler)

	serverAddr := ":" + config.Cfg.Port
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.L.Info("Server starting", "address", serverAddr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.L.Error("Failed to start server", "error", err)
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.L.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.L.Error("Graceful shutdown failed", "error", err)
		return err
	}
	logger.L.Info("Server stopped gracefully.")
	return nil
}
