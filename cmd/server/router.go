package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/llcgdb/catalog-api/internal/api"
	apiMiddleware "github.com/llcgdb/catalog-api/internal/api/middleware"
	"github.com/llcgdb/catalog-api/internal/domain"
)

// setupRouter creates and configures the application router with all
// routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware)

	cardHandler := api.NewCardHandler(app.cardService)
	catalogHandler := api.NewCatalogHandler(app.catalogService)
	rarityHandler := api.NewRarityHandler(app.classifier)
	nameVariantHandler := api.NewVariantHandler(app.resolver, domain.VariantKindName)
	groupVariantHandler := api.NewVariantHandler(app.resolver, domain.VariantKindGroup)

	r.Route("/api", func(r chi.Router) {
		// Card endpoints
		r.Post("/cards", cardHandler.CreateCard)
		r.Post("/cards/bulk", cardHandler.BulkCreateCards)
		r.Get("/cards", cardHandler.ListCards)
		r.Get("/cards/{id}", cardHandler.GetCard)
		r.Put("/cards/{id}", cardHandler.UpdateCard)
		r.Delete("/cards/{id}", cardHandler.DeleteCard)
		r.Post("/cards/{id}/printings", cardHandler.AddPrinting)

		// Catalog admin endpoints
		r.Get("/sets", catalogHandler.ListSets)
		r.Post("/sets", catalogHandler.AddSet)
		r.Delete("/sets/{code}", catalogHandler.DeleteSet)

		r.Get("/groups", catalogHandler.ListGroups)
		r.Post("/groups", catalogHandler.AddGroup)
		r.Delete("/groups/{name}", catalogHandler.DeleteGroup)

		r.Get("/units", catalogHandler.ListUnits)
		r.Post("/units", catalogHandler.AddUnit)
		r.Delete("/units/{name}", catalogHandler.DeleteUnit)

		r.Get("/names", catalogHandler.ListNames)
		r.Delete("/skills/orphans", catalogHandler.SweepOrphanSkills)

		// Rarity allow-list endpoints
		r.Get("/rarities", rarityHandler.ListRarities)
		r.Post("/rarities", rarityHandler.AddRarity)
		r.Get("/rarities/{code}", rarityHandler.GetRarity)
		r.Delete("/rarities/{code}", rarityHandler.DeleteRarity)

		// Synonym variant endpoints
		r.Get("/name-variants", nameVariantHandler.ListVariants)
		r.Post("/name-variants", nameVariantHandler.AddVariant)
		r.Delete("/name-variants/{variant}", nameVariantHandler.DeleteVariant)

		r.Get("/group-variants", groupVariantHandler.ListVariants)
		r.Post("/group-variants", groupVariantHandler.AddVariant)
		r.Delete("/group-variants/{variant}", groupVariantHandler.DeleteVariant)
	})

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	return r
}
