package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/llcgdb/catalog-api/internal/domain"
	"github.com/llcgdb/catalog-api/internal/platform/logger"
	"github.com/llcgdb/catalog-api/internal/store"
)

// PostgresVariantStore implements the store.VariantStore interface
// using a PostgreSQL database as the storage backend.
//
// Name and group variants live in separate tables with one shape; the
// variant kind selects the table. Table names come from a fixed map, never
// from caller input.
type PostgresVariantStore struct {
	db     store.DBTX
	logger *slog.Logger
}

var variantTables = map[domain.VariantKind]string{
	domain.VariantKindName:  "name_variants",
	domain.VariantKindGroup: "group_variants",
}

// NewPostgresVariantStore creates a new PostgreSQL implementation of the VariantStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresVariantStore(db store.DBTX, logger *slog.Logger) *PostgresVariantStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresVariantStore{
		db:     db,
		logger: logger.With(slog.String("component", "variant_store")),
	}
}

// Ensure PostgresVariantStore implements store.VariantStore interface
var _ store.VariantStore = (*PostgresVariantStore)(nil)

// Add implements store.VariantStore.Add
// Beyond uniqueness it enforces the no-chain invariant: a mapping whose
// canonical target is itself a variant key, or whose variant string is
// already a canonical target, would make resolution depend on lookup
// order.
func (s *PostgresVariantStore) Add(ctx context.Context, variant *domain.Variant) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := variant.Validate(); err != nil {
		return err
	}
	table := variantTables[variant.Kind]

	var exists bool
	err := s.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE variant_name = $1)`, table),
		variant.Canonical).Scan(&exists)
	if err != nil {
		return MapError(err)
	}
	if exists {
		log.Warn("rejected variant chain",
			slog.String("variant", variant.Variant),
			slog.String("canonical", variant.Canonical))
		return fmt.Errorf("%w: canonical %q is itself a variant", store.ErrVariantCycle, variant.Canonical)
	}

	err = s.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE canonical_name = $1)`, table),
		variant.Variant).Scan(&exists)
	if err != nil {
		return MapError(err)
	}
	if exists {
		log.Warn("rejected variant chain",
			slog.String("variant", variant.Variant),
			slog.String("canonical", variant.Canonical))
		return fmt.Errorf("%w: variant %q is already a canonical target", store.ErrVariantCycle, variant.Variant)
	}

	_, err = s.db.ExecContext(ctx,
		fmt.Sprintf(`INSERT INTO %s (variant_name, canonical_name) VALUES ($1, $2)`, table),
		variant.Variant, variant.Canonical)
	if err != nil {
		mapped := MapError(err)
		log.Warn("failed to add variant",
			slog.String("error", mapped.Error()),
			slog.String("variant", variant.Variant))
		return mapped
	}
	return nil
}

// ListAll implements store.VariantStore.ListAll
func (s *PostgresVariantStore) ListAll(ctx context.Context, kind domain.VariantKind) (map[string]string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	table, ok := variantTables[kind]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidVariantKind, kind)
	}

	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT variant_name, canonical_name FROM %s`, table))
	if err != nil {
		log.Error("failed to list variants",
			slog.String("error", err.Error()),
			slog.String("kind", string(kind)))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	mappings := make(map[string]string)
	for rows.Next() {
		var variantName, canonicalName string
		if err := rows.Scan(&variantName, &canonicalName); err != nil {
			return nil, MapError(err)
		}
		mappings[variantName] = canonicalName
	}
	return mappings, rows.Err()
}

// Delete implements store.VariantStore.Delete
func (s *PostgresVariantStore) Delete(ctx context.Context, kind domain.VariantKind, variant string) error {
	table, ok := variantTables[kind]
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrInvalidVariantKind, kind)
	}

	result, err := s.db.ExecContext(ctx,
		fmt.Sprintf(`DELETE FROM %s WHERE variant_name = $1`, table), variant)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrVariantNotFound)
}
