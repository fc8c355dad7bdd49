package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
)

// TagStore defines the interface for a card's many-to-many tag links:
// groups, units, and skills.
//
// All Set* methods replace the card's full link set (idempotent,
// last-write-wins) and must run inside the caller's transaction.
type TagStore interface {
	// SetGroups replaces the card's group links. Names must already be
	// canonical: callers resolve synonyms through the resolver first.
	// Returns ErrGroupNotFound naming the first unregistered group.
	SetGroups(ctx context.Context, cardID uuid.UUID, groupNames []string) error

	// SetUnits replaces the card's unit links.
	// Returns ErrUnitNotFound naming the first unregistered unit.
	SetUnits(ctx context.Context, cardID uuid.UUID, unitNames []string) error

	// SetSkills replaces the card's skill links. Skill rows are
	// deduplicated by exact text: an existing row with identical text is
	// linked, otherwise a new row is created, so the skills table never
	// holds two rows with the same text.
	SetSkills(ctx context.Context, cardID uuid.UUID, skillTexts []string) error

	// GetGroups retrieves the card's group names, ordered by name.
	GetGroups(ctx context.Context, cardID uuid.UUID) ([]string, error)

	// GetUnits retrieves the card's unit names, ordered by name.
	GetUnits(ctx context.Context, cardID uuid.UUID) ([]string, error)

	// GetSkills retrieves the card's skill texts, ordered by text.
	GetSkills(ctx context.Context, cardID uuid.UUID) ([]string, error)

	// DeleteOrphanSkills removes skill rows no card links to any more and
	// reports how many were removed. Skills are the one shared table that
	// grows with card churn; groups, units, and names are curated and
	// never swept.
	DeleteOrphanSkills(ctx context.Context) (int64, error)

	// WithTx returns a new TagStore instance that uses the provided transaction.
	WithTx(tx *sql.Tx) TagStore
}
