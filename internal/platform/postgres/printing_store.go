package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/llcgdb/catalog-api/internal/domain"
	"github.com/llcgdb/catalog-api/internal/platform/logger"
	"github.com/llcgdb/catalog-api/internal/store"
)

// PostgresPrintingStore implements the store.PrintingStore interface
// using a PostgreSQL database as the storage backend.
type PostgresPrintingStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresPrintingStore creates a new PostgreSQL implementation of the PrintingStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresPrintingStore(db store.DBTX, logger *slog.Logger) *PostgresPrintingStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresPrintingStore{
		db:     db,
		logger: logger.With(slog.String("component", "printing_store")),
	}
}

// Ensure PostgresPrintingStore implements store.PrintingStore interface
var _ store.PrintingStore = (*PostgresPrintingStore)(nil)

// WithTx implements store.PrintingStore.WithTx
func (s *PostgresPrintingStore) WithTx(tx *sql.Tx) store.PrintingStore {
	return &PostgresPrintingStore{
		db:     tx,
		logger: s.logger,
	}
}

// Add implements store.PrintingStore.Add
func (s *PostgresPrintingStore) Add(ctx context.Context, printing *domain.Printing) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := printing.Validate(); err != nil {
		log.Warn("printing validation failed",
			slog.String("error", err.Error()),
			slog.String("card_id", printing.CardID.String()))
		return err
	}

	query := `
		INSERT INTO printings (id, card_id, rarity_code, rarity_type, image_url)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		printing.ID,
		printing.CardID,
		printing.RarityCode,
		printing.RarityType,
		printing.ImageURL,
	)
	if err != nil {
		var mapped error
		// The only foreign key on printings is card_id.
		if IsForeignKeyViolation(err) {
			mapped = store.ErrCardNotFound
		} else {
			mapped = MapError(err)
		}
		log.Error("failed to add printing",
			slog.String("error", mapped.Error()),
			slog.String("card_id", printing.CardID.String()),
			slog.String("rarity_code", printing.RarityCode))
		return mapped
	}

	log.Debug("printing added",
		slog.String("card_id", printing.CardID.String()),
		slog.String("rarity_code", printing.RarityCode))
	return nil
}

// ListByCard implements store.PrintingStore.ListByCard
func (s *PostgresPrintingStore) ListByCard(ctx context.Context, cardID uuid.UUID) ([]domain.Printing, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, card_id, rarity_code, rarity_type, image_url
		FROM printings
		WHERE card_id = $1
		ORDER BY rarity_code
	`
	rows, err := s.db.QueryContext(ctx, query, cardID)
	if err != nil {
		log.Error("failed to list printings",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var printings []domain.Printing
	for rows.Next() {
		var p domain.Printing
		if err := rows.Scan(&p.ID, &p.CardID, &p.RarityCode, &p.RarityType, &p.ImageURL); err != nil {
			return nil, MapError(err)
		}
		printings = append(printings, p)
	}
	return printings, rows.Err()
}
