package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/llcgdb/catalog-api/internal/domain"
	"github.com/llcgdb/catalog-api/internal/platform/logger"
	"github.com/llcgdb/catalog-api/internal/store"
)

// PostgresRarityStore implements the store.RarityStore interface
// using a PostgreSQL database as the storage backend. The table is the
// parallel-rarity allow-list; codes absent from it classify as Regular.
type PostgresRarityStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresRarityStore creates a new PostgreSQL implementation of the RarityStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresRarityStore(db store.DBTX, logger *slog.Logger) *PostgresRarityStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresRarityStore{
		db:     db,
		logger: logger.With(slog.String("component", "rarity_store")),
	}
}

// Ensure PostgresRarityStore implements store.RarityStore interface
var _ store.RarityStore = (*PostgresRarityStore)(nil)

// Add implements store.RarityStore.Add
func (s *PostgresRarityStore) Add(ctx context.Context, code string, rarityType domain.RarityType) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if code == "" {
		return fmt.Errorf("%w: empty rarity code", domain.ErrValidation)
	}
	if !rarityType.IsValid() {
		return fmt.Errorf("%w: %q", domain.ErrInvalidRarityType, rarityType)
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO rarities (rarity_code, rarity_type) VALUES ($1, $2)`,
		code, rarityType)
	if err != nil {
		mapped := MapError(err)
		log.Warn("failed to add rarity mapping",
			slog.String("error", mapped.Error()),
			slog.String("rarity_code", code))
		return mapped
	}
	return nil
}

// Get implements store.RarityStore.Get
func (s *PostgresRarityStore) Get(ctx context.Context, code string) (domain.RarityType, error) {
	var rarityType domain.RarityType
	err := s.db.QueryRowContext(ctx,
		`SELECT rarity_type FROM rarities WHERE rarity_code = $1`, code).Scan(&rarityType)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", store.ErrRarityNotFound
		}
		return "", MapError(err)
	}
	return rarityType, nil
}

// ListAll implements store.RarityStore.ListAll
func (s *PostgresRarityStore) ListAll(ctx context.Context) (map[string]domain.RarityType, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx,
		`SELECT rarity_code, rarity_type FROM rarities`)
	if err != nil {
		log.Error("failed to list rarity mappings", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	mappings := make(map[string]domain.RarityType)
	for rows.Next() {
		var code string
		var rarityType domain.RarityType
		if err := rows.Scan(&code, &rarityType); err != nil {
			return nil, MapError(err)
		}
		mappings[code] = rarityType
	}
	return mappings, rows.Err()
}

// Delete implements store.RarityStore.Delete
func (s *PostgresRarityStore) Delete(ctx context.Context, code string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM rarities WHERE rarity_code = $1`, code)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrRarityNotFound)
}
