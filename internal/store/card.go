package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/llcgdb/catalog-api/internal/domain"
)

// CardStore defines the interface for card base + subtype persistence.
//
// A card is one base row plus exactly one extension row matching its type
// discriminant. Every method that writes both MUST run inside a
// transaction; use WithTx together with store.RunInTransaction.
type CardStore interface {
	// Create saves a new card: the base row and its single subtype
	// extension row. The card must be valid according to domain validation
	// rules (including agreement between Type and Attributes).
	// Returns ErrDuplicateCard if the natural key (series code, set code,
	// number in set) is already present.
	Create(ctx context.Context, card *domain.Card) error

	// GetByID retrieves a card by its unique ID, with the subtype
	// extension loaded into Attributes.
	// Returns ErrCardNotFound if the card does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error)

	// List retrieves all card base rows. Attributes are NOT loaded; use
	// GetByID (or the service's assembly path) for the full payload.
	List(ctx context.Context) ([]*domain.Card, error)

	// Update modifies a card's base fields and extension row. The type
	// discriminant is immutable: returns domain.ErrSubtypeImmutable if the
	// stored card has a different type. Returns ErrCardNotFound if the
	// card does not exist, ErrDuplicateCard on a natural key collision.
	Update(ctx context.Context, card *domain.Card) error

	// Delete removes a card and every row it owns: the extension row,
	// heart entries, group/unit/skill links, and printings, then the base
	// row. The schema has no ON DELETE CASCADE, so the cascade is explicit
	// here and must run in one transaction.
	// Returns ErrCardNotFound if the card does not exist.
	// Shared rows (names, groups, units, skills) are left in place.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new CardStore instance that uses the provided transaction.
	// This allows for multiple operations to be executed within a single transaction.
	WithTx(tx *sql.Tx) CardStore
}

// HeartStore defines the interface for a card's heart multiset.
type HeartStore interface {
	// SetHearts replaces the card's full heart set with the given entries
	// (set semantics, not an incremental patch, so stale colors cannot
	// linger). It looks up the card's type discriminant and validates the
	// entries against it in the same transaction: Gray entries are
	// rejected for Character cards, duplicate colors and counts below one
	// are rejected for all cards.
	// Returns ErrCardNotFound if the card does not exist.
	SetHearts(ctx context.Context, cardID uuid.UUID, entries []domain.HeartEntry) error

	// GetHearts retrieves the card's heart multiset keyed by color.
	// A card with no hearts yields an empty map, not an error.
	GetHearts(ctx context.Context, cardID uuid.UUID) (domain.Hearts, error)

	// WithTx returns a new HeartStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) HeartStore
}
