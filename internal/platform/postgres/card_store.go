package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/llcgdb/catalog-api/internal/domain"
	"github.com/llcgdb/catalog-api/internal/platform/logger"
	"github.com/llcgdb/catalog-api/internal/store"
)

// PostgresCardStore implements the store.CardStore interface
// using a PostgreSQL database as the storage backend.
//
// A card is persisted as one row in cards plus exactly one row in the
// extension table matching its type discriminant (character_cards,
// live_cards, or energy_cards). That one-of-three exclusivity cannot be a
// schema constraint, so this store maintains it on every write; callers
// must wrap multi-row operations in a transaction via WithTx.
type PostgresCardStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresCardStore creates a new PostgreSQL implementation of the CardStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresCardStore(db store.DBTX, logger *slog.Logger) *PostgresCardStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresCardStore{
		db:     db,
		logger: logger.With(slog.String("component", "card_store")),
	}
}

// Ensure PostgresCardStore implements store.CardStore interface
var _ store.CardStore = (*PostgresCardStore)(nil)

// WithTx implements store.CardStore.WithTx
func (s *PostgresCardStore) WithTx(tx *sql.Tx) store.CardStore {
	return &PostgresCardStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.CardStore.Create
// It saves the base row and the card's single extension row.
// Returns store.ErrDuplicateCard if the natural key is already present.
func (s *PostgresCardStore) Create(ctx context.Context, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during create",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return err
	}

	query := `
		INSERT INTO cards (id, series_code, set_code, number_in_set, name_id, card_type, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		card.ID,
		card.SeriesCode,
		card.SetCode,
		card.NumberInSet,
		card.NameID,
		card.Type,
		card.CreatedAt,
		card.UpdatedAt,
	)
	if err != nil {
		mapped := MapError(err)
		log.Error("failed to create card",
			slog.String("error", mapped.Error()),
			slog.String("card_id", card.ID.String()))
		return mapped
	}

	if err := s.insertExtension(ctx, card); err != nil {
		log.Error("failed to create card extension row",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()),
			slog.String("card_type", string(card.Type)))
		return err
	}

	log.Debug("card created",
		slog.String("card_id", card.ID.String()),
		slog.String("card_type", string(card.Type)))
	return nil
}

// insertExtension writes the one extension row matching the card's type.
func (s *PostgresCardStore) insertExtension(ctx context.Context, card *domain.Card) error {
	switch attrs := card.Attributes.(type) {
	case *domain.CharacterAttributes:
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO character_cards (card_id, cost, blades, blade_heart) VALUES ($1, $2, $3, $4)`,
			card.ID, attrs.Cost, attrs.Blades, bladeHeartValue(attrs.BladeHeart))
		return MapError(err)
	case *domain.LiveAttributes:
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO live_cards (card_id, score, blade_heart, special_heart) VALUES ($1, $2, $3, $4)`,
			card.ID, attrs.Score, bladeHeartValue(attrs.BladeHeart), specialHeartValue(attrs.SpecialHeart))
		return MapError(err)
	case *domain.EnergyAttributes:
		_, err := s.db.ExecContext(ctx,
			`INSERT INTO energy_cards (card_id) VALUES ($1)`,
			card.ID)
		return MapError(err)
	default:
		return fmt.Errorf("%w: unknown attribute payload %T", domain.ErrInvalidCardType, card.Attributes)
	}
}

// GetByID implements store.CardStore.GetByID
// It retrieves a card with its subtype extension loaded into Attributes.
// Returns store.ErrCardNotFound if the card does not exist.
func (s *PostgresCardStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	card := &domain.Card{}
	query := `
		SELECT id, series_code, set_code, number_in_set, name_id, card_type, created_at, updated_at
		FROM cards
		WHERE id = $1
	`
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&card.ID,
		&card.SeriesCode,
		&card.SetCode,
		&card.NumberInSet,
		&card.NameID,
		&card.Type,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			log.Debug("card not found", slog.String("card_id", id.String()))
			return nil, store.ErrCardNotFound
		}
		log.Error("failed to get card",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()))
		return nil, MapError(err)
	}

	attrs, err := s.fetchAttributes(ctx, card.ID, card.Type)
	if err != nil {
		log.Error("failed to load card extension row",
			slog.String("error", err.Error()),
			slog.String("card_id", id.String()),
			slog.String("card_type", string(card.Type)))
		return nil, err
	}
	card.Attributes = attrs

	return card, nil
}

// fetchAttributes loads the extension row for a card of the given type. A
// missing extension row is reported as an invalid-entity condition: it
// means the one-extension-per-card invariant has been broken.
func (s *PostgresCardStore) fetchAttributes(
	ctx context.Context,
	cardID uuid.UUID,
	cardType domain.CardType,
) (domain.CardAttributes, error) {
	switch cardType {
	case domain.CardTypeCharacter:
		attrs := &domain.CharacterAttributes{}
		var bladeHeart sql.NullString
		err := s.db.QueryRowContext(ctx,
			`SELECT cost, blades, blade_heart FROM character_cards WHERE card_id = $1`,
			cardID).Scan(&attrs.Cost, &attrs.Blades, &bladeHeart)
		if err != nil {
			if err == sql.ErrNoRows {
				return nil, fmt.Errorf("%w: character card %s has no extension row",
					store.ErrInvalidEntity, cardID)
			}
			return nil, MapError(err)
		}
		attrs.BladeHeart = bladeHeartPtr(bladeHeart)
		return attrs, nil

	case domain.CardTypeLive:
		attrs := &domain.LiveAttributes{}
		var bladeHeart, specialHeart sql.NullString
		err := s.db.QueryRowContext(ctx,
			`SELECT score, blade_heart, special_heart FROM live_cards WHERE card_id = $1`,
			cardID).Scan(&attrs.Score, &bladeHeart, &specialHeart)
		if err != nil {
			if err == sql.ErrNoRows {
				return nil, fmt.Errorf("%w: live card %s has no extension row",
					store.ErrInvalidEntity, cardID)
			}
			return nil, MapError(err)
		}
		attrs.BladeHeart = bladeHeartPtr(bladeHeart)
		if specialHeart.Valid {
			sh := domain.SpecialHeart(specialHeart.String)
			attrs.SpecialHeart = &sh
		}
		return attrs, nil

	case domain.CardTypeEnergy:
		var one int
		err := s.db.QueryRowContext(ctx,
			`SELECT 1 FROM energy_cards WHERE card_id = $1`, cardID).Scan(&one)
		if err != nil {
			if err == sql.ErrNoRows {
				return nil, fmt.Errorf("%w: energy card %s has no extension row",
					store.ErrInvalidEntity, cardID)
			}
			return nil, MapError(err)
		}
		return &domain.EnergyAttributes{}, nil

	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidCardType, cardType)
	}
}

// List implements store.CardStore.List
// It retrieves all card base rows without extension payloads, ordered by
// natural key so output is stable.
func (s *PostgresCardStore) List(ctx context.Context) ([]*domain.Card, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, series_code, set_code, number_in_set, name_id, card_type, created_at, updated_at
		FROM cards
		ORDER BY series_code, set_code, number_in_set
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to list cards", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var cards []*domain.Card
	for rows.Next() {
		card := &domain.Card{}
		if err := rows.Scan(
			&card.ID,
			&card.SeriesCode,
			&card.SetCode,
			&card.NumberInSet,
			&card.NameID,
			&card.Type,
			&card.CreatedAt,
			&card.UpdatedAt,
		); err != nil {
			return nil, MapError(err)
		}
		cards = append(cards, card)
	}
	return cards, rows.Err()
}

// Update implements store.CardStore.Update
// The type discriminant is immutable; an update that would change it fails
// with domain.ErrSubtypeImmutable so a card can never pass through a state
// with zero or two extension rows.
func (s *PostgresCardStore) Update(ctx context.Context, card *domain.Card) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := card.Validate(); err != nil {
		log.Warn("card validation failed during update",
			slog.String("error", err.Error()),
			slog.String("card_id", card.ID.String()))
		return err
	}

	var storedType domain.CardType
	err := s.db.QueryRowContext(ctx,
		`SELECT card_type FROM cards WHERE id = $1`, card.ID).Scan(&storedType)
	if err != nil {
		if err == sql.ErrNoRows {
			return store.ErrCardNotFound
		}
		return MapError(err)
	}
	if storedType != card.Type {
		log.Warn("rejected card type change",
			slog.String("card_id", card.ID.String()),
			slog.String("stored_type", string(storedType)),
			slog.String("requested_type", string(card.Type)))
		return fmt.Errorf("%w: stored type is %s", domain.ErrSubtypeImmutable, storedType)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE cards
		SET series_code = $2, set_code = $3, number_in_set = $4, name_id = $5, updated_at = $6
		WHERE id = $1
	`, card.ID, card.SeriesCode, card.SetCode, card.NumberInSet, card.NameID, card.UpdatedAt)
	if err != nil {
		mapped := MapError(err)
		log.Error("failed to update card",
			slog.String("error", mapped.Error()),
			slog.String("card_id", card.ID.String()))
		return mapped
	}
	if err := CheckRowsAffected(result, store.ErrCardNotFound); err != nil {
		return err
	}

	return s.updateExtension(ctx, card)
}

func (s *PostgresCardStore) updateExtension(ctx context.Context, card *domain.Card) error {
	switch attrs := card.Attributes.(type) {
	case *domain.CharacterAttributes:
		result, err := s.db.ExecContext(ctx,
			`UPDATE character_cards SET cost = $2, blades = $3, blade_heart = $4 WHERE card_id = $1`,
			card.ID, attrs.Cost, attrs.Blades, bladeHeartValue(attrs.BladeHeart))
		if err != nil {
			return MapError(err)
		}
		return CheckRowsAffected(result, store.ErrCardNotFound)
	case *domain.LiveAttributes:
		result, err := s.db.ExecContext(ctx,
			`UPDATE live_cards SET score = $2, blade_heart = $3, special_heart = $4 WHERE card_id = $1`,
			card.ID, attrs.Score, bladeHeartValue(attrs.BladeHeart), specialHeartValue(attrs.SpecialHeart))
		if err != nil {
			return MapError(err)
		}
		return CheckRowsAffected(result, store.ErrCardNotFound)
	case *domain.EnergyAttributes:
		// Nothing to update on the extension row.
		return nil
	default:
		return fmt.Errorf("%w: unknown attribute payload %T", domain.ErrInvalidCardType, card.Attributes)
	}
}

// Delete implements store.CardStore.Delete
// It removes every row the card owns before the base row. The schema has
// no ON DELETE CASCADE, so the cascade is explicit; callers must run this
// inside a transaction.
func (s *PostgresCardStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	ownedRows := []string{
		`DELETE FROM card_hearts WHERE card_id = $1`,
		`DELETE FROM card_groups WHERE card_id = $1`,
		`DELETE FROM card_units WHERE card_id = $1`,
		`DELETE FROM card_skills WHERE card_id = $1`,
		`DELETE FROM printings WHERE card_id = $1`,
		`DELETE FROM character_cards WHERE card_id = $1`,
		`DELETE FROM live_cards WHERE card_id = $1`,
		`DELETE FROM energy_cards WHERE card_id = $1`,
	}
	for _, query := range ownedRows {
		if _, err := s.db.ExecContext(ctx, query, id); err != nil {
			mapped := MapError(err)
			log.Error("failed to delete card-owned rows",
				slog.String("error", mapped.Error()),
				slog.String("card_id", id.String()))
			return mapped
		}
	}

	result, err := s.db.ExecContext(ctx, `DELETE FROM cards WHERE id = $1`, id)
	if err != nil {
		mapped := MapError(err)
		log.Error("failed to delete card",
			slog.String("error", mapped.Error()),
			slog.String("card_id", id.String()))
		return mapped
	}
	if err := CheckRowsAffected(result, store.ErrCardNotFound); err != nil {
		return err
	}

	log.Debug("card deleted", slog.String("card_id", id.String()))
	return nil
}

// bladeHeartValue converts an optional blade heart to a driver value.
func bladeHeartValue(b *domain.BladeHeart) interface{} {
	if b == nil {
		return nil
	}
	return string(*b)
}

// specialHeartValue converts an optional special heart to a driver value.
func specialHeartValue(s *domain.SpecialHeart) interface{} {
	if s == nil {
		return nil
	}
	return string(*s)
}

// bladeHeartPtr converts a nullable column back to an optional blade heart.
func bladeHeartPtr(ns sql.NullString) *domain.BladeHeart {
	if !ns.Valid {
		return nil
	}
	b := domain.BladeHeart(ns.String)
	return &b
}
