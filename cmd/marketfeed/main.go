// Command marketfeed is the process entry point: it loads configuration,
// registers the startup hooks, runs them in priority order, and blocks
// until an interrupt or terminate signal arrives.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"marketfeed/bootstrap"
	"marketfeed/config"
	"marketfeed/fixer"
	"marketfeed/logger"
	"marketfeed/metrics"
	"marketfeed/registry"
)

func main() {
	configPath := flag.String("config", "config.json", "path to the JSON configuration file")
	logLevel := flag.String("log-level", "", "override the configured log level (debug, info, warn, error)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "marketfeed: loading config: %v\n", err)
		os.Exit(1)
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}

	bc := bootstrap.NewContext(cfg)
	registerHooks()

	if err := bootstrap.Run(bc); err != nil {
		logger.Log.Fatalf("marketfeed: startup failed: %v", err)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Log.Info("marketfeed: shutdown signal received")
	if v, ok := bc.Get("metricsServer"); ok {
		srv := v.(*http.Server)
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Log.Warnf("marketfeed: metrics server shutdown: %v", err)
		}
	}
	logger.Log.Info("marketfeed: stopped")
}

// registerHooks wires the three priority buckets documented in
// bootstrap.go: logging/config first, the contract-size fixer next, and
// the metrics HTTP listener last.
func registerHooks() {
	bootstrap.Clear()

	bootstrap.Register("logging", bootstrap.PriorityInfrastructure, func(bc *bootstrap.Context) error {
		logger.SetLevel(bc.Config.Log.Level)
		return nil
	})

	bootstrap.Register("contract-size fixer", bootstrap.PriorityCore, func(bc *bootstrap.Context) error {
		fixers := fixer.NewRegistry()
		fixers.InitFixes(context.Background(), fixer.DefaultEndpoints)
		registry.WireFixer(fixers)
		bc.Set("fixerRegistry", fixers)
		return nil
	})

	bootstrap.Register("metrics listener", bootstrap.PriorityBackground, func(bc *bootstrap.Context) error {
		metrics.Init()
		addr := bc.Config.MetricsAddr
		if addr == "" {
			addr = ":9090"
		}
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		srv := &http.Server{Addr: addr, Handler: mux}
		go func() {
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Log.Errorf("marketfeed: metrics server error: %v", err)
			}
		}()
		bc.Set("metricsServer", srv)
		return nil
	}).WithErrorPolicy(bootstrap.WarnOnError)
}
