package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"tn-weather/api"
	"tn-weather/collector"
	"tn-weather/config"
	"tn-weather/gateway"
	"tn-weather/observability"
	"tn-weather/providers"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
)

func main() {
	// A missing .env is normal outside development.
	envErr := godotenv.Load()

	configFile := flag.String("config", "config.json", "Path to optional JSON configuration file")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()
	clock := clockwork.NewRealClock()

	if envErr != nil {
		logger.Debug("no .env file loaded", "error", envErr)
	}

	vendor, service, err := providers.New(cfg, logger, metrics, clock)
	if err != nil {
		logger.Error("failed to configure vendor", "error", err)
		os.Exit(1)
	}

	gw := gateway.New(gateway.Config{
		APIKey:       cfg.APIKey,
		Service:      service,
		Timeout:      cfg.FetchTimeout,
		ProbeTimeout: cfg.ProbeTimeout,
	}, vendor, logger, metrics, clock)

	if !gw.HasCredential() {
		logger.Warn("WEATHER_API_KEY not set, serving mock data only")
	}

	store := api.NewSnapshotStore()
	refresher := collector.NewRefresher(gw, store, cfg.Cities, cfg.RefreshInterval, clock, logger)
	srv := api.NewServer(cfg.HTTPAddr, gw, store, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var wg sync.WaitGroup

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
			stop()
		}
	}()

	// Start background refresh.
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := refresher.Run(ctx); err != nil {
			logger.Error("refresher error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	wg.Wait()

	logger.Info("shutdown complete")
}
