package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/llcgdb/catalog-api/internal/domain"
	"github.com/llcgdb/catalog-api/internal/platform/logger"
	"github.com/llcgdb/catalog-api/internal/store"
)

// RarityClassifier derives a printing's rarity type from its rarity code.
// The rarities table is an allow-list of parallel codes; any code absent
// from it classifies as Regular, so classification never fails on new
// codes the curators have not mapped yet.
type RarityClassifier struct {
	rarityStore store.RarityStore
	logger      *slog.Logger

	mu    sync.RWMutex
	cache map[string]domain.RarityType
}

// NewRarityClassifier creates a new RarityClassifier.
// It returns an error if the rarity store is nil. The cache starts empty;
// call Reload before serving traffic.
func NewRarityClassifier(rarityStore store.RarityStore, logger *slog.Logger) (*RarityClassifier, error) {
	if rarityStore == nil {
		return nil, NewCardServiceError("new_classifier", "rarityStore cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &RarityClassifier{
		rarityStore: rarityStore,
		logger:      logger.With(slog.String("component", "rarity_classifier")),
		cache:       make(map[string]domain.RarityType),
	}, nil
}

// Classify derives the rarity type for a code. Unmapped codes are Regular.
func (c *RarityClassifier) Classify(code string) domain.RarityType {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if rarityType, ok := c.cache[code]; ok {
		return rarityType
	}
	return domain.RarityRegular
}

// Reload replaces the cache with the current table contents.
func (c *RarityClassifier) Reload(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, c.logger)

	mappings, err := c.rarityStore.ListAll(ctx)
	if err != nil {
		log.Error("failed to load rarity mappings", slog.String("error", err.Error()))
		return err
	}

	c.mu.Lock()
	c.cache = mappings
	c.mu.Unlock()

	log.Debug("rarity cache reloaded", slog.Int("mappings", len(mappings)))
	return nil
}

// Add persists a new rarity mapping and updates the cache.
func (c *RarityClassifier) Add(ctx context.Context, code string, rarityType domain.RarityType) error {
	if err := c.rarityStore.Add(ctx, code, rarityType); err != nil {
		return err
	}

	c.mu.Lock()
	c.cache[code] = rarityType
	c.mu.Unlock()
	return nil
}

// Get retrieves the stored mapping for a code.
// Returns store.ErrRarityNotFound if the code is not mapped.
func (c *RarityClassifier) Get(ctx context.Context, code string) (domain.RarityType, error) {
	return c.rarityStore.Get(ctx, code)
}

// Delete removes a rarity mapping and updates the cache.
func (c *RarityClassifier) Delete(ctx context.Context, code string) error {
	if err := c.rarityStore.Delete(ctx, code); err != nil {
		return err
	}

	c.mu.Lock()
	delete(c.cache, code)
	c.mu.Unlock()
	return nil
}

// List retrieves every rarity mapping from the store.
func (c *RarityClassifier) List(ctx context.Context) (map[string]domain.RarityType, error) {
	return c.rarityStore.ListAll(ctx)
}
