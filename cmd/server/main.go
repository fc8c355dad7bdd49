// Package main implements the entry point for the LLCG catalog API
// server, which stores and serves trading-card data: cards with their
// subtype attributes, hearts, tags, printings, and synonym tables.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"

	"github.com/llcgdb/catalog-api/internal/config"
	"github.com/llcgdb/catalog-api/internal/platform/logger"
)

func main() {
	migrateCmd := flag.String("migrate", "", "run a migration command (up|down|status) and exit")
	flag.Parse()

	cfg, err := initializeApp()
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	if *migrateCmd != "" {
		if err := runMigrations(cfg, *migrateCmd); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
		return
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

// initializeApp loads configuration and sets up logging.
func initializeApp() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if _, err := logger.Setup(cfg.Server); err != nil {
		return nil, fmt.Errorf("failed to set up logger: %w", err)
	}

	slog.Info("Server configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel)

	return cfg, nil
}

// run wires the application and serves until shutdown.
func run(ctx context.Context, cfg *config.Config) error {
	db, err := setupAppDatabase(cfg, slog.Default())
	if err != nil {
		return err
	}

	app, err := newApplication(ctx, cfg, slog.Default(), db)
	if err != nil {
		// The application owns db from here on; on a wiring failure it has
		// not taken ownership yet.
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("Error closing database connection", "error", closeErr)
		}
		return err
	}

	return app.Run(ctx)
}
