package store

import (
	"context"

	"github.com/llcgdb/catalog-api/internal/domain"
)

// VariantStore defines the interface for synonym variant persistence.
// Name variants and group variants share one shape; the kind selects the
// table.
type VariantStore interface {
	// Add saves a new variant mapping. Beyond uniqueness
	// (ErrDuplicateVariant), the write path enforces the no-chain
	// invariant the schema cannot: it returns ErrVariantCycle if the
	// mapping's canonical target is itself a variant key, or if the new
	// variant string is already the canonical target of other variants.
	Add(ctx context.Context, variant *domain.Variant) error

	// ListAll retrieves every variant mapping of the given kind as a
	// variant -> canonical map, for loading the resolver cache.
	ListAll(ctx context.Context, kind domain.VariantKind) (map[string]string, error)

	// Delete removes a variant mapping by its variant string.
	// Returns ErrVariantNotFound if no such mapping exists.
	Delete(ctx context.Context, kind domain.VariantKind, variant string) error
}

// RarityStore defines the interface for the parallel-rarity allow-list.
type RarityStore interface {
	// Add saves a new rarity code mapping.
	// Returns ErrDuplicateRarity if the code is already mapped.
	Add(ctx context.Context, code string, rarityType domain.RarityType) error

	// Get retrieves the mapping for a single code.
	// Returns ErrRarityNotFound if the code is not in the table. Note
	// that an unmapped code is not an error for classification, only for
	// direct lookup; the classifier defaults unmapped codes to Regular.
	Get(ctx context.Context, code string) (domain.RarityType, error)

	// ListAll retrieves every rarity mapping as a code -> type map, for
	// loading the classifier cache.
	ListAll(ctx context.Context) (map[string]domain.RarityType, error)

	// Delete removes a rarity mapping by its code.
	// Returns ErrRarityNotFound if no such mapping exists.
	Delete(ctx context.Context, code string) error
}
