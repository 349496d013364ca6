package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/me/fleetgate/internal/config"
	"github.com/me/fleetgate/internal/logging"
	"github.com/me/fleetgate/internal/metrics"
	"github.com/me/fleetgate/internal/server"
	"github.com/me/fleetgate/internal/session"
	"github.com/me/fleetgate/internal/store"
	"github.com/me/fleetgate/pkg/rentapi"
)

// cleanupInterval is how often expired sessions are swept from the store.
const cleanupInterval = time.Hour

func main() {
	configFile := flag.String("config", "", "Path to YAML config file")
	addr := flag.String("addr", "", "Listen address (overrides config)")
	apiURL := flag.String("api-url", "", "Rental platform API base URL (overrides config)")
	dbPath := flag.String("db", "", "SQLite database path (overrides config; default ~/.fleetgate/fleetgate.db)")
	debug := flag.Bool("debug", false, "Shorthand for log level debug")
	flag.Parse()

	cfg, err := config.Load(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *apiURL != "" {
		cfg.APIBaseURL = *apiURL
	}
	if *dbPath != "" {
		cfg.DBPath = *dbPath
	}
	if *debug {
		cfg.LogLevel = "debug"
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(logging.ParseLevel(cfg.LogLevel), cfg.LogFormat)

	// Resolve database path.
	db := cfg.DBPath
	if db == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "cannot determine home directory: %v\n", err)
			os.Exit(1)
		}
		dir := filepath.Join(home, ".fleetgate")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			fmt.Fprintf(os.Stderr, "cannot create %s: %v\n", dir, err)
			os.Exit(1)
		}
		db = filepath.Join(dir, "fleetgate.db")
	}

	// Open store and run migrations.
	st, err := store.NewSQLiteStore(db, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open database: %v\n", err)
		os.Exit(1)
	}
	defer st.Close()

	if err := st.Migrate(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "migrate database: %v\n", err)
		os.Exit(1)
	}
	logger.Info("database ready", "path", db)

	// Upstream API client and session manager.
	api := rentapi.NewClient(rentapi.DefaultConfig().WithBaseURL(cfg.APIBaseURL), logger)
	logger.Info("upstream configured", "url", api.BaseURL())

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	collector := metrics.NewCollector(registry)

	sessions := session.NewManager(st, api, logger, collector)

	srv := server.New(cfg, sessions, api, logger, server.WithMetrics(registry, collector))

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Handler(),
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Sweep sessions past their hard ceiling.
	go func() {
		ticker := time.NewTicker(cleanupInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := sessions.CleanupExpired(ctx)
				if err != nil {
					logger.Error("session cleanup failed", "error", err)
					continue
				}
				if n > 0 {
					logger.Info("expired sessions removed", "count", n)
				}
			}
		}
	}()

	go func() {
		logger.Info("server starting", "addr", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "shutdown error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
