package service

import (
	"context"
	"log/slog"
	"sync"

	"github.com/llcgdb/catalog-api/internal/domain"
	"github.com/llcgdb/catalog-api/internal/platform/logger"
	"github.com/llcgdb/catalog-api/internal/store"
)

// SynonymResolver maps alternate spellings of names and group names to
// their canonical forms. Resolution is an exact-match lookup against an
// in-process cache of the variant tables; strings with no mapping resolve
// to themselves, so resolution never fails.
//
// The cache is read on every card write and read, while variant mappings
// change rarely, so it is held in RWMutex-guarded maps and refreshed after
// each variant write.
type SynonymResolver struct {
	variantStore store.VariantStore
	logger       *slog.Logger

	mu     sync.RWMutex
	names  map[string]string
	groups map[string]string
}

// NewSynonymResolver creates a new SynonymResolver.
// It returns an error if the variant store is nil. The caches start empty;
// call Reload before serving traffic.
func NewSynonymResolver(variantStore store.VariantStore, logger *slog.Logger) (*SynonymResolver, error) {
	if variantStore == nil {
		return nil, NewCardServiceError("new_resolver", "variantStore cannot be nil", domain.ErrValidation)
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &SynonymResolver{
		variantStore: variantStore,
		logger:       logger.With(slog.String("component", "synonym_resolver")),
		names:        make(map[string]string),
		groups:       make(map[string]string),
	}, nil
}

// Resolve maps raw to its canonical form for the given kind. Unknown
// strings (and unknown kinds) resolve to themselves.
func (r *SynonymResolver) Resolve(kind domain.VariantKind, raw string) string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var cache map[string]string
	switch kind {
	case domain.VariantKindName:
		cache = r.names
	case domain.VariantKindGroup:
		cache = r.groups
	default:
		return raw
	}

	if canonical, ok := cache[raw]; ok {
		return canonical
	}
	return raw
}

// Reload replaces both caches with the current table contents.
func (r *SynonymResolver) Reload(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, r.logger)

	names, err := r.variantStore.ListAll(ctx, domain.VariantKindName)
	if err != nil {
		log.Error("failed to load name variants", slog.String("error", err.Error()))
		return err
	}
	groups, err := r.variantStore.ListAll(ctx, domain.VariantKindGroup)
	if err != nil {
		log.Error("failed to load group variants", slog.String("error", err.Error()))
		return err
	}

	r.mu.Lock()
	r.names = names
	r.groups = groups
	r.mu.Unlock()

	log.Debug("synonym caches reloaded",
		slog.Int("name_variants", len(names)),
		slog.Int("group_variants", len(groups)))
	return nil
}

// AddVariant persists a new variant mapping and updates the cache.
// Cycle and duplicate rejection happens in the store's write path.
func (r *SynonymResolver) AddVariant(ctx context.Context, variant *domain.Variant) error {
	if err := r.variantStore.Add(ctx, variant); err != nil {
		return err
	}

	r.mu.Lock()
	switch variant.Kind {
	case domain.VariantKindName:
		r.names[variant.Variant] = variant.Canonical
	case domain.VariantKindGroup:
		r.groups[variant.Variant] = variant.Canonical
	}
	r.mu.Unlock()
	return nil
}

// DeleteVariant removes a variant mapping and updates the cache.
func (r *SynonymResolver) DeleteVariant(ctx context.Context, kind domain.VariantKind, variant string) error {
	if err := r.variantStore.Delete(ctx, kind, variant); err != nil {
		return err
	}

	r.mu.Lock()
	switch kind {
	case domain.VariantKindName:
		delete(r.names, variant)
	case domain.VariantKindGroup:
		delete(r.groups, variant)
	}
	r.mu.Unlock()
	return nil
}

// ListVariants retrieves every mapping of the given kind from the store.
func (r *SynonymResolver) ListVariants(ctx context.Context, kind domain.VariantKind) (map[string]string, error) {
	return r.variantStore.ListAll(ctx, kind)
}
