// Package main is the entry point for the busarrival server.
package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/devanlim/busarrival/internal/api"
	"github.com/devanlim/busarrival/internal/arrivals"
	"github.com/devanlim/busarrival/internal/catalog"
	"github.com/devanlim/busarrival/internal/config"
	"github.com/devanlim/busarrival/internal/favorites"
	"github.com/devanlim/busarrival/internal/metrics"
	"github.com/devanlim/busarrival/internal/proximity"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("configuration error", "error", err)
		os.Exit(1)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	collector := metrics.NewCollector()

	catalogClient := catalog.NewClient(cfg.StopsURL, cfg.ProviderAPIKey, cfg.HTTPTimeout)
	fetcher := catalog.NewFetcher(catalogClient, nil, collector)
	resolver := proximity.NewResolver(fetcher, nil, collector)

	arrivalClient := arrivals.NewClient(cfg.ArrivalsURL, cfg.ProviderAPIKey, cfg.HTTPTimeout)
	arrivalResolver := arrivals.NewResolver(arrivalClient, cfg.ArrivalCacheTTL, collector)
	defer arrivalResolver.Close()

	favoritesStore := favorites.NewStore(cfg.FavoritesPath)

	router := api.NewRouter(cfg, fetcher, resolver, arrivalResolver, favoritesStore, collector)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server starting", "port", cfg.Port, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			cancel()
		}
	}()

	<-ctx.Done()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
	logger.Info("shutdown complete")
}
