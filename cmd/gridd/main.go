// Command gridd runs the compute grid daemon: the grid manager, its tick
// loop, and the HTTP management API.
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

	"github.com/me/gogrid/internal/config"
	"github.com/me/gogrid/internal/entity"
	"github.com/me/gogrid/internal/grid"
	"github.com/me/gogrid/internal/logging"
	"github.com/me/gogrid/internal/server"
	"github.com/me/gogrid/internal/snapshot"
	"github.com/me/gogrid/internal/ticker"
)

func main() {
	cfg := config.Default()

	configFile := flag.String("config", "", "Path to YAML config file")
	addr := flag.String("addr", "", "Listen address (overrides config)")
	logLevel := flag.String("log-level", "", "Log level: debug, info, warn, error (overrides config)")
	logFormat := flag.String("log-format", "", "Log format: text, json (overrides config)")
	snapshotPath := flag.String("snapshot", "", "Snapshot file path (overrides config)")
	tickMS := flag.Int("tick-ms", 0, "Tick interval in ms (overrides config)")
	debug := flag.Bool("debug", false, "Shorthand for --log-level=debug")
	flag.Parse()

	if *configFile != "" {
		loaded, err := config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load config: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *logFormat != "" {
		cfg.LogFormat = *logFormat
	}
	if *snapshotPath != "" {
		cfg.SnapshotPath = *snapshotPath
	}
	if *tickMS > 0 {
		cfg.TickIntervalMS = *tickMS
	}
	if *debug {
		cfg.LogLevel = "debug"
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	// Snapshot store is optional; without a path the grid is memory-only.
	var snaps *snapshot.Store
	if cfg.SnapshotPath != "" {
		snaps = snapshot.New(cfg.SnapshotPath, cfg.SnapshotVersioned, logger)
	}

	// Restore from snapshot when one exists; otherwise start cold and
	// register the seed entities from the config file.
	var mgr *grid.Manager
	if snaps != nil && snaps.Exists() {
		m, err := snaps.Load(logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "load snapshot: %v\n", err)
			os.Exit(1)
		}
		mgr = m
	} else {
		mgr = grid.New(logger)
		for _, su := range cfg.SeedUsers {
			mgr.AddUser(entity.NewUser(su.Name, su.Quota))
		}
		for _, sm := range cfg.SeedMachines {
			mgr.AddMachine(entity.NewMachine(sm.Name, sm.MaxJobs, sm.RAM, sm.Disk))
		}
		if len(cfg.SeedUsers)+len(cfg.SeedMachines) > 0 {
			logger.Info("seed entities registered",
				"users", len(cfg.SeedUsers),
				"machines", len(cfg.SeedMachines),
			)
		}
	}

	srv := server.New(mgr, snaps, logger)
	loop := ticker.NewLoop(srv.TickTarget(), cfg.TickInterval(), logger)

	httpServer := &http.Server{
		Addr:    cfg.Addr,
		Handler: srv.Handler(),
	}

	// Graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go loop.Start(ctx)

	go func() {
		logger.Info("server starting", "addr", cfg.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	// Let the tick loop drain before the final save.
	loop.Stop()

	if snaps != nil {
		if err := srv.SaveSnapshot(); err != nil {
			logger.Error("snapshot on shutdown failed", "error", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		fmt.Fprintf(os.Stderr, "shutdown error: %v\n", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}
