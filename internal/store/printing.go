package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/llcgdb/catalog-api/internal/domain"
)

// PrintingStore defines the interface for printing persistence.
type PrintingStore interface {
	// Add saves a new printing. The printing's RarityType must already be
	// derived via the rarity classifier.
	// Returns ErrDuplicatePrinting if the card already has a printing with
	// the same rarity code, ErrCardNotFound if the card does not exist.
	Add(ctx context.Context, printing *domain.Printing) error

	// ListByCard retrieves all printings of a card ordered by rarity code
	// (lexicographic, so output is reproducible across runs).
	ListByCard(ctx context.Context, cardID uuid.UUID) ([]domain.Printing, error)

	// WithTx returns a new PrintingStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) PrintingStore
}
