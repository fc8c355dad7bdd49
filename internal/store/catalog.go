package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/llcgdb/catalog-api/internal/domain"
)

// NameStore defines the interface for canonical card name persistence.
// Names are append-only: created on first use, never destructively
// mutated, never deleted once referenced.
type NameStore interface {
	// GetOrCreate resolves a canonical name string to its row ID, creating
	// the row if it does not yet exist. Callers must resolve synonym
	// variants to the canonical form before calling this.
	GetOrCreate(ctx context.Context, name string) (uuid.UUID, error)

	// GetByID retrieves the display string for a name ID.
	// Returns ErrNameNotFound if it does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (string, error)

	// List retrieves all distinct canonical names, ordered by name.
	List(ctx context.Context) ([]string, error)

	// WithTx returns a new NameStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) NameStore
}

// SetStore defines the interface for release set persistence.
type SetStore interface {
	// Add saves a new set.
	// Returns ErrDuplicateSet if the set code is already registered.
	Add(ctx context.Context, set *domain.Set) error

	// GetNameByCode retrieves a set's display name by its code. An
	// unregistered code yields an empty string, not an error: the card
	// read path must stay assemblable for cards whose set has not been
	// entered yet.
	GetNameByCode(ctx context.Context, setCode string) (string, error)

	// List retrieves all sets ordered by set code.
	List(ctx context.Context) ([]domain.Set, error)

	// DeleteByCode removes a set by its code.
	// Returns ErrSetNotFound if no such set exists.
	DeleteByCode(ctx context.Context, setCode string) error

	// WithTx returns a new SetStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) SetStore
}

// GroupStore defines the interface for group persistence. Groups are a
// curated, bounded list populated at setup time; card writes only link to
// existing rows.
type GroupStore interface {
	// Add saves a new group.
	// Returns ErrDuplicateGroup if the name is already registered.
	Add(ctx context.Context, group *domain.Group) error

	// List retrieves all group names ordered by name.
	List(ctx context.Context) ([]string, error)

	// DeleteByName removes a group by its name.
	// Returns ErrGroupNotFound if no such group exists, and
	// ErrReferentialConflict if cards still link to it.
	DeleteByName(ctx context.Context, name string) error
}

// UnitStore defines the interface for unit persistence, with the same
// curated-list semantics as GroupStore.
type UnitStore interface {
	// Add saves a new unit.
	// Returns ErrDuplicateUnit if the name is already registered.
	Add(ctx context.Context, unit *domain.Unit) error

	// List retrieves all unit names ordered by name.
	List(ctx context.Context) ([]string, error)

	// DeleteByName removes a unit by its name.
	// Returns ErrUnitNotFound if no such unit exists, and
	// ErrReferentialConflict if cards still link to it.
	DeleteByName(ctx context.Context, name string) error
}
