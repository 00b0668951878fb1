// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"database/sql"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	_ "modernc.org/sqlite"

	"github.com/danielhkuo/quickdraw/cliparse"
	"github.com/danielhkuo/quickdraw/db"
	"github.com/danielhkuo/quickdraw/engine"
	"github.com/danielhkuo/quickdraw/notify"
	"github.com/danielhkuo/quickdraw/policy"
	"github.com/danielhkuo/quickdraw/router"
	"github.com/danielhkuo/quickdraw/scheduler"
	"github.com/danielhkuo/quickdraw/store"
	"github.com/danielhkuo/quickdraw/venue"
)

func main() {
	// Local development convenience; missing .env is fine
	_ = godotenv.Load()

	// Parse configuration
	cfg, err := cliparse.ParseFlags(os.Args[1:])
	if err != nil {
		slog.Error("Error parsing flags", "error", err)
		os.Exit(1)
	}

	// Connect to the database
	driver := "sqlite"
	if cfg.DatabaseType == "postgres" {
		driver = "postgres"
	}
	dbConn, err := sql.Open(driver, cfg.DatabaseURL)
	if err != nil {
		slog.Error("database connection failed", "error", err)
		os.Exit(1)
	}
	defer dbConn.Close()

	// Verify connection
	if err := dbConn.Ping(); err != nil {
		slog.Error("database ping failed", "error", err)
		os.Exit(1)
	}

	// Create schema (tables)
	if err := db.CreateSchema(dbConn); err != nil {
		slog.Error("schema creation failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Database schema ready")

	// Assemble the lifecycle engine and its collaborators
	st := store.New(dbConn)
	ven := venue.NewSQLVenue(dbConn)
	prov := policy.FromConfig(cfg)
	eng := engine.New(st, ven, ven, notify.LogNotifier{}, prov)

	// Background sweeps: draws every minute, locks every five
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go scheduler.NewDrawSweeper(eng, st, prov, cfg.DrawInterval).Run(ctx)
	go scheduler.NewLockSweeper(eng, st, prov, cfg.LockInterval).Run(ctx)

	// Create router
	mux := router.NewRouter(st, ven, eng, prov, cfg)

	// Create server
	server := http.Server{
		Handler: mux,
		Addr:    ":" + strconv.Itoa(cfg.Port),
	}

	// signal.Notify requires the channel to be buffered
	ctrlc := make(chan os.Signal, 1)
	signal.Notify(ctrlc, os.Interrupt, syscall.SIGTERM)
	go func() {
		// Wait for Ctrl-C signal
		<-ctrlc
		cancel()
		server.Close()
	}()

	// Start server
	slog.Info("Listening", "port", cfg.Port)
	err = server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		slog.Error("Server closed", "error", err)
	} else {
		slog.Info("Server closed", "error", err)
	}
}
