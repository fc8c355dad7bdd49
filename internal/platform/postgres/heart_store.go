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

// PostgresHeartStore implements the store.HeartStore interface
// using a PostgreSQL database as the storage backend.
//
// Heart validity depends on the owning card's type (Gray is forbidden on
// Character cards), so SetHearts reads the discriminant and validates in
// the same transaction as the write.
type PostgresHeartStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresHeartStore creates a new PostgreSQL implementation of the HeartStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresHeartStore(db store.DBTX, logger *slog.Logger) *PostgresHeartStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresHeartStore{
		db:     db,
		logger: logger.With(slog.String("component", "heart_store")),
	}
}

// Ensure PostgresHeartStore implements store.HeartStore interface
var _ store.HeartStore = (*PostgresHeartStore)(nil)

// WithTx implements store.HeartStore.WithTx
func (s *PostgresHeartStore) WithTx(tx *sql.Tx) store.HeartStore {
	return &PostgresHeartStore{
		db:     tx,
		logger: s.logger,
	}
}

// SetHearts implements store.HeartStore.SetHearts
// It replaces the card's full heart set after validating the entries
// against the card's type discriminant.
func (s *PostgresHeartStore) SetHearts(ctx context.Context, cardID uuid.UUID, entries []domain.HeartEntry) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var cardType domain.CardType
	err := s.db.QueryRowContext(ctx,
		`SELECT card_type FROM cards WHERE id = $1`, cardID).Scan(&cardType)
	if err != nil {
		if err == sql.ErrNoRows {
			return store.ErrCardNotFound
		}
		return MapError(err)
	}

	if err := domain.ValidateHeartEntries(cardType, entries); err != nil {
		log.Warn("heart entries rejected",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()),
			slog.String("card_type", string(cardType)))
		return err
	}

	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM card_hearts WHERE card_id = $1`, cardID); err != nil {
		return MapError(err)
	}
	for _, entry := range entries {
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO card_hearts (card_id, color, count) VALUES ($1, $2, $3)`,
			cardID, entry.Color, entry.Count); err != nil {
			mapped := MapError(err)
			log.Error("failed to insert heart entry",
				slog.String("error", mapped.Error()),
				slog.String("card_id", cardID.String()),
				slog.String("color", string(entry.Color)))
			return mapped
		}
	}

	log.Debug("hearts replaced",
		slog.String("card_id", cardID.String()),
		slog.Int("entries", len(entries)))
	return nil
}

// GetHearts implements store.HeartStore.GetHearts
func (s *PostgresHeartStore) GetHearts(ctx context.Context, cardID uuid.UUID) (domain.Hearts, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx,
		`SELECT color, count FROM card_hearts WHERE card_id = $1`, cardID)
	if err != nil {
		log.Error("failed to get hearts",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	hearts := domain.Hearts{}
	for rows.Next() {
		var color domain.HeartColor
		var count int
		if err := rows.Scan(&color, &count); err != nil {
			return nil, MapError(err)
		}
		hearts[color] = count
	}
	return hearts, rows.Err()
}
