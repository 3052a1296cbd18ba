/*
main.go - Application entry point

PURPOSE:
  Initializes and starts the AllyTimeTracking server.
  Handles configuration, dependency injection, and graceful shutdown.

STARTUP SEQUENCE:
  1. Parse command-line flags
  2. Load configuration (.env, optional YAML file, environment)
  3. Build the zap logger
  4. Initialize SQLite store
  5. Seed the initial admin
  6. Start the vacation balance provisioner
  7. Configure HTTP router and start the server

COMMAND-LINE FLAGS:
  -config  Optional YAML configuration file
  -port    HTTP server port (overrides HTTP_PORT)
  -db      SQLite database path (overrides DB_PATH)
           Use ":memory:" for in-memory database

GRACEFUL SHUTDOWN:
  On SIGINT/SIGTERM:
  1. Stop accepting new connections
  2. Wait for active requests to complete (HTTP_SHUTDOWN_TIMEOUT)
  3. Stop the provisioner
  4. Close database connection

EXAMPLES:
  # Run with file database
  ./server -db="./data/timetracking.db"

  # Run with in-memory database and console logs
  LOG_FORMAT=console ./server -db=":memory:"

SEE ALSO:
  - config/config.go: Settings and defaults
  - api/server.go: Router configuration
  - store/sqlite/sqlite.go: Database implementation
*/
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"go.uber.org/zap"

	"github.com/lu-ally/AllyTimeTracking/api"
	"github.com/lu-ally/AllyTimeTracking/config"
	"github.com/lu-ally/AllyTimeTracking/logging"
	"github.com/lu-ally/AllyTimeTracking/report"
	"github.com/lu-ally/AllyTimeTracking/store/sqlite"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Flags
	configPath := flag.String("config", "", "YAML configuration file")
	port := flag.Int("port", 0, "HTTP server port (overrides HTTP_PORT)")
	dbPath := flag.String("db", "", "SQLite database path (overrides DB_PATH)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	if *port != 0 {
		cfg.HTTP.Port = *port
	}
	if *dbPath != "" {
		cfg.Database.Path = *dbPath
	}

	log, err := logging.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	// Initialize store
	if cfg.Database.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
			return fmt.Errorf("create database directory: %w", err)
		}
	}
	st, err := sqlite.New(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("initialize database: %w", err)
	}
	defer st.Close()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	reports := report.New(st,
		report.WithWorkers(cfg.Report.Workers),
		report.WithLocation(loc),
	)

	if cfg.Seed.Enabled {
		seed := api.AdminSeed{
			Email:    cfg.Seed.AdminEmail,
			Name:     cfg.Seed.AdminName,
			Password: cfg.Seed.AdminPassword,
			State:    cfg.State(),
		}
		if _, err := api.SeedAdmin(context.Background(), st, seed, reports.Today(), log); err != nil {
			return fmt.Errorf("seed admin: %w", err)
		}
	}

	provisioner := api.NewBalanceProvisioner(st, log.Named("provisioner"), reports.Today)
	provisioner.Interval = cfg.Provisioner.Interval
	provisioner.Enabled = cfg.Provisioner.Enabled
	provisioner.Start()
	defer provisioner.Stop()

	handler := api.NewHandler(st, reports, log, cfg.State())
	router := api.NewRouter(handler, log.Named("http"), cfg.HTTP.AllowedOrigins)

	server := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	// Start server in goroutine
	serverErr := make(chan error, 1)
	go func() {
		log.Info("server starting",
			zap.String("addr", server.Addr),
			zap.String("env", cfg.Env),
			zap.String("db", cfg.Database.Path),
			zap.String("default_state", string(cfg.State())),
			zap.String("timezone", loc.String()))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	case sig := <-quit:
		log.Info("shutting down server", zap.String("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("server stopped")
	return nil
}
