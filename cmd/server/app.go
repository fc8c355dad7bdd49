package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/llcgdb/catalog-api/internal/config"
	"github.com/llcgdb/catalog-api/internal/platform/postgres"
	"github.com/llcgdb/catalog-api/internal/service"
	"github.com/llcgdb/catalog-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	config *config.Config
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	cardStore     store.CardStore
	heartStore    store.HeartStore
	tagStore      store.TagStore
	printingStore store.PrintingStore
	nameStore     store.NameStore
	setStore      store.SetStore
	groupStore    store.GroupStore
	unitStore     store.UnitStore
	variantStore  store.VariantStore
	rarityStore   store.RarityStore

	// Services
	resolver       *service.SynonymResolver
	classifier     *service.RarityClassifier
	cardService    service.CardService
	catalogService service.CatalogService
}

// newApplication creates a new application instance with all dependencies
// initialized, and warms the resolver and classifier caches.
func newApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	// Initialize stores
	app.cardStore = postgres.NewPostgresCardStore(db, logger)
	app.heartStore = postgres.NewPostgresHeartStore(db, logger)
	app.tagStore = postgres.NewPostgresTagStore(db, logger)
	app.printingStore = postgres.NewPostgresPrintingStore(db, logger)
	app.nameStore = postgres.NewPostgresNameStore(db, logger)
	app.setStore = postgres.NewPostgresSetStore(db, logger)
	app.groupStore = postgres.NewPostgresGroupStore(db, logger)
	app.unitStore = postgres.NewPostgresUnitStore(db, logger)
	app.variantStore = postgres.NewPostgresVariantStore(db, logger)
	app.rarityStore = postgres.NewPostgresRarityStore(db, logger)

	// Initialize the synonym resolver and load its caches
	var err error
	app.resolver, err = service.NewSynonymResolver(app.variantStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create synonym resolver: %w", err)
	}
	if err := app.resolver.Reload(ctx); err != nil {
		return nil, fmt.Errorf("failed to load synonym caches: %w", err)
	}

	// Initialize the rarity classifier and load its allow-list
	app.classifier, err = service.NewRarityClassifier(app.rarityStore, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create rarity classifier: %w", err)
	}
	if err := app.classifier.Reload(ctx); err != nil {
		return nil, fmt.Errorf("failed to load rarity allow-list: %w", err)
	}

	// Initialize card service
	app.cardService, err = service.NewCardService(service.CardServiceDeps{
		DB:            db,
		CardStore:     app.cardStore,
		HeartStore:    app.heartStore,
		TagStore:      app.tagStore,
		PrintingStore: app.printingStore,
		NameStore:     app.nameStore,
		SetStore:      app.setStore,
		Resolver:      app.resolver,
		Classifier:    app.classifier,
		Logger:        logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create card service: %w", err)
	}

	// Initialize catalog service
	app.catalogService, err = service.NewCatalogService(
		app.setStore,
		app.groupStore,
		app.unitStore,
		app.nameStore,
		app.tagStore,
		logger,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create catalog service: %w", err)
	}

	logger.Info("Application initialized successfully")
	return app, nil
}

// Run starts the application server, handling lifecycle and cleanup.
func (app *application) Run(ctx context.Context) error {
	router := app.setupRouter()

	if err := app.startHTTPServer(ctx, router); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// cleanup handles graceful shutdown of application resources.
func (app *application) cleanup() {
	if app.db != nil {
		if err := app.db.Close(); err != nil {
			app.logger.Error("Error closing database connection", "error", err)
		}
	}

	app.logger.Info("Application shutdown completed")
}
