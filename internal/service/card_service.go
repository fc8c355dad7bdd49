package service

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/llcgdb/catalog-api/internal/domain"
	"github.com/llcgdb/catalog-api/internal/platform/logger"
	"github.com/llcgdb/catalog-api/internal/store"
)

// CardInput carries everything needed to create (or fully replace) one
// card: the natural key, the raw name and tag strings before synonym
// resolution, the subtype attribute block, hearts, and the first printing.
type CardInput struct {
	SeriesCode  string
	SetCode     string
	NumberInSet string
	RarityCode  string
	Name        string
	Attributes  domain.CardAttributes
	Hearts      []domain.HeartEntry
	Groups      []string
	Units       []string
	Skills      []string
	ImageURL    *string
}

// CardService provides the transactional card operations: creation with
// all owned rows, the assembled read path, update, and delete.
type CardService interface {
	// CreateCard creates one card with its extension row, hearts, tag
	// links, and first printing in a single transaction. Name and group
	// strings are resolved to canonical forms first.
	// Returns the new card's ID.
	CreateCard(ctx context.Context, input CardInput) (uuid.UUID, error)

	// CreateCards creates multiple cards in one transaction. One invalid
	// card rolls back all of them.
	CreateCards(ctx context.Context, inputs []CardInput) ([]uuid.UUID, error)

	// GetCard assembles the full denormalized view of a card from a
	// single consistent snapshot.
	GetCard(ctx context.Context, cardID uuid.UUID) (*domain.CardView, error)

	// ListCards retrieves all card base rows, ordered by natural key.
	ListCards(ctx context.Context) ([]*domain.Card, error)

	// UpdateCard replaces a card's base fields, attributes, hearts, and
	// tag links. The type discriminant is immutable; printings are not
	// touched (use AddPrinting).
	UpdateCard(ctx context.Context, cardID uuid.UUID, input CardInput) error

	// DeleteCard removes a card and every row it owns in one transaction.
	// Shared rows (names, groups, units, skills) stay in place.
	DeleteCard(ctx context.Context, cardID uuid.UUID) error

	// AddPrinting registers another printing of an existing card, with
	// the rarity type derived from the code.
	// Returns the new printing's ID.
	AddPrinting(ctx context.Context, cardID uuid.UUID, rarityCode string, imageURL *string) (uuid.UUID, error)
}

// cardServiceImpl implements the CardService interface
type cardServiceImpl struct {
	db            *sql.DB
	cardStore     store.CardStore
	heartStore    store.HeartStore
	tagStore      store.TagStore
	printingStore store.PrintingStore
	nameStore     store.NameStore
	setStore      store.SetStore
	resolver      *SynonymResolver
	classifier    *RarityClassifier
	logger        *slog.Logger
}

// CardServiceDeps bundles the dependencies of NewCardService; every field
// is required.
type CardServiceDeps struct {
	DB            *sql.DB
	CardStore     store.CardStore
	HeartStore    store.HeartStore
	TagStore      store.TagStore
	PrintingStore store.PrintingStore
	NameStore     store.NameStore
	SetStore      store.SetStore
	Resolver      *SynonymResolver
	Classifier    *RarityClassifier
	Logger        *slog.Logger
}

// NewCardService creates a new CardService.
// It returns an error if any of the required dependencies are nil.
func NewCardService(deps CardServiceDeps) (CardService, error) {
	switch {
	case deps.DB == nil:
		return nil, NewCardServiceError("new_card_service", "db cannot be nil", domain.ErrValidation)
	case deps.CardStore == nil:
		return nil, NewCardServiceError("new_card_service", "cardStore cannot be nil", domain.ErrValidation)
	case deps.HeartStore == nil:
		return nil, NewCardServiceError("new_card_service", "heartStore cannot be nil", domain.ErrValidation)
	case deps.TagStore == nil:
		return nil, NewCardServiceError("new_card_service", "tagStore cannot be nil", domain.ErrValidation)
	case deps.PrintingStore == nil:
		return nil, NewCardServiceError("new_card_service", "printingStore cannot be nil", domain.ErrValidation)
	case deps.NameStore == nil:
		return nil, NewCardServiceError("new_card_service", "nameStore cannot be nil", domain.ErrValidation)
	case deps.SetStore == nil:
		return nil, NewCardServiceError("new_card_service", "setStore cannot be nil", domain.ErrValidation)
	case deps.Resolver == nil:
		return nil, NewCardServiceError("new_card_service", "resolver cannot be nil", domain.ErrValidation)
	case deps.Classifier == nil:
		return nil, NewCardServiceError("new_card_service", "classifier cannot be nil", domain.ErrValidation)
	}

	log := deps.Logger
	if log == nil {
		log = slog.Default()
	}

	return &cardServiceImpl{
		db:            deps.DB,
		cardStore:     deps.CardStore,
		heartStore:    deps.HeartStore,
		tagStore:      deps.TagStore,
		printingStore: deps.PrintingStore,
		nameStore:     deps.NameStore,
		setStore:      deps.SetStore,
		resolver:      deps.Resolver,
		classifier:    deps.Classifier,
		logger:        log.With(slog.String("component", "card_service")),
	}, nil
}

// CreateCard implements CardService.CreateCard
func (s *cardServiceImpl) CreateCard(ctx context.Context, input CardInput) (uuid.UUID, error) {
	var cardID uuid.UUID
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		id, err := s.createCardTx(ctx, tx, input)
		if err != nil {
			return err
		}
		cardID = id
		return nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	return cardID, nil
}

// CreateCards implements CardService.CreateCards
// All cards share one transaction: one failure rolls back every card.
func (s *cardServiceImpl) CreateCards(ctx context.Context, inputs []CardInput) ([]uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if len(inputs) == 0 {
		log.Debug("no cards to create")
		return nil, nil
	}

	ids := make([]uuid.UUID, 0, len(inputs))
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		for _, input := range inputs {
			id, err := s.createCardTx(ctx, tx, input)
			if err != nil {
				return err
			}
			ids = append(ids, id)
		}
		log.Info("created cards in transaction", slog.Int("card_count", len(ids)))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// createCardTx runs the full write path for one card inside the caller's
// transaction: resolve synonyms, upsert the name, insert base + extension,
// hearts, tag links, and the first printing.
func (s *cardServiceImpl) createCardTx(ctx context.Context, tx *sql.Tx, input CardInput) (uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	canonicalName := s.resolver.Resolve(domain.VariantKindName, input.Name)
	nameID, err := s.nameStore.WithTx(tx).GetOrCreate(ctx, canonicalName)
	if err != nil {
		return uuid.Nil, NewCardServiceError("create_card", "failed to resolve name", err)
	}

	card, err := domain.NewCard(input.SeriesCode, input.SetCode, input.NumberInSet, nameID, input.Attributes)
	if err != nil {
		return uuid.Nil, NewCardServiceError("create_card", "invalid card", err)
	}

	if err := s.cardStore.WithTx(tx).Create(ctx, card); err != nil {
		log.Error("failed to create card in transaction",
			slog.String("error", err.Error()),
			slog.String("series_code", input.SeriesCode),
			slog.String("set_code", input.SetCode),
			slog.String("number_in_set", input.NumberInSet))
		return uuid.Nil, NewCardServiceError("create_card", "failed to save card", err)
	}

	if err := s.heartStore.WithTx(tx).SetHearts(ctx, card.ID, input.Hearts); err != nil {
		return uuid.Nil, NewCardServiceError("create_card", "failed to save hearts", err)
	}

	if err := s.setTagsTx(ctx, tx, card.ID, input); err != nil {
		return uuid.Nil, err
	}

	printing, err := domain.NewPrinting(card.ID, input.RarityCode, s.classifier.Classify(input.RarityCode), input.ImageURL)
	if err != nil {
		return uuid.Nil, NewCardServiceError("create_card", "invalid printing", err)
	}
	if err := s.printingStore.WithTx(tx).Add(ctx, printing); err != nil {
		return uuid.Nil, NewCardServiceError("create_card", "failed to save printing", err)
	}

	log.Debug("card created",
		slog.String("card_id", card.ID.String()),
		slog.String("card_type", string(card.Type)),
		slog.String("name", canonicalName))
	return card.ID, nil
}

// setTagsTx replaces the card's group, unit, and skill links. Group names
// go through the synonym resolver; unit names and skill texts are taken
// verbatim.
func (s *cardServiceImpl) setTagsTx(ctx context.Context, tx *sql.Tx, cardID uuid.UUID, input CardInput) error {
	groups := make([]string, len(input.Groups))
	for i, raw := range input.Groups {
		groups[i] = s.resolver.Resolve(domain.VariantKindGroup, raw)
	}

	txTagStore := s.tagStore.WithTx(tx)
	if err := txTagStore.SetGroups(ctx, cardID, groups); err != nil {
		return NewCardServiceError("set_tags", "failed to link groups", err)
	}
	if err := txTagStore.SetUnits(ctx, cardID, input.Units); err != nil {
		return NewCardServiceError("set_tags", "failed to link units", err)
	}
	if err := txTagStore.SetSkills(ctx, cardID, input.Skills); err != nil {
		return NewCardServiceError("set_tags", "failed to link skills", err)
	}
	return nil
}

// GetCard implements CardService.GetCard
// Assembly fans out to eight tables; the repeatable-read transaction
// keeps the view a single consistent snapshot even against concurrent
// writes to hearts or links.
func (s *cardServiceImpl) GetCard(ctx context.Context, cardID uuid.UUID) (*domain.CardView, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var view *domain.CardView
	err := store.RunInReadTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		card, err := s.cardStore.WithTx(tx).GetByID(ctx, cardID)
		if err != nil {
			return err
		}

		name, err := s.nameStore.WithTx(tx).GetByID(ctx, card.NameID)
		if err != nil {
			return err
		}
		setName, err := s.setStore.WithTx(tx).GetNameByCode(ctx, card.SetCode)
		if err != nil {
			return err
		}
		hearts, err := s.heartStore.WithTx(tx).GetHearts(ctx, cardID)
		if err != nil {
			return err
		}

		txTagStore := s.tagStore.WithTx(tx)
		groups, err := txTagStore.GetGroups(ctx, cardID)
		if err != nil {
			return err
		}
		units, err := txTagStore.GetUnits(ctx, cardID)
		if err != nil {
			return err
		}
		skills, err := txTagStore.GetSkills(ctx, cardID)
		if err != nil {
			return err
		}

		printings, err := s.printingStore.WithTx(tx).ListByCard(ctx, cardID)
		if err != nil {
			return err
		}

		view = &domain.CardView{
			ID:          card.ID,
			SeriesCode:  card.SeriesCode,
			SetCode:     card.SetCode,
			NumberInSet: card.NumberInSet,
			Name:        name,
			SetName:     setName,
			Type:        card.Type,
			Attributes:  card.Attributes,
			Hearts:      hearts,
			Groups:      groups,
			Units:       units,
			Skills:      skills,
			Printings:   printings,
		}
		return nil
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			log.Debug("card not found", slog.String("card_id", cardID.String()))
			return nil, NewCardServiceError("get_card", "card not found", store.ErrCardNotFound)
		}
		log.Error("failed to assemble card",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return nil, NewCardServiceError("get_card", "failed to assemble card", err)
	}
	return view, nil
}

// ListCards implements CardService.ListCards
func (s *cardServiceImpl) ListCards(ctx context.Context) ([]*domain.Card, error) {
	cards, err := s.cardStore.List(ctx)
	if err != nil {
		return nil, NewCardServiceError("list_cards", "failed to list cards", err)
	}
	return cards, nil
}

// UpdateCard implements CardService.UpdateCard
func (s *cardServiceImpl) UpdateCard(ctx context.Context, cardID uuid.UUID, input CardInput) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		canonicalName := s.resolver.Resolve(domain.VariantKindName, input.Name)
		nameID, err := s.nameStore.WithTx(tx).GetOrCreate(ctx, canonicalName)
		if err != nil {
			return NewCardServiceError("update_card", "failed to resolve name", err)
		}

		card, err := domain.NewCard(input.SeriesCode, input.SetCode, input.NumberInSet, nameID, input.Attributes)
		if err != nil {
			return NewCardServiceError("update_card", "invalid card", err)
		}
		card.ID = cardID

		if err := s.cardStore.WithTx(tx).Update(ctx, card); err != nil {
			return NewCardServiceError("update_card", "failed to update card", err)
		}
		if err := s.heartStore.WithTx(tx).SetHearts(ctx, cardID, input.Hearts); err != nil {
			return NewCardServiceError("update_card", "failed to replace hearts", err)
		}
		return s.setTagsTx(ctx, tx, cardID, input)
	})
	if err != nil {
		log.Error("failed to update card",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return err
	}

	log.Debug("card updated", slog.String("card_id", cardID.String()))
	return nil
}

// DeleteCard implements CardService.DeleteCard
func (s *cardServiceImpl) DeleteCard(ctx context.Context, cardID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		return s.cardStore.WithTx(tx).Delete(ctx, cardID)
	})
	if err != nil {
		if store.IsNotFoundError(err) {
			return NewCardServiceError("delete_card", "card not found", store.ErrCardNotFound)
		}
		log.Error("failed to delete card",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return NewCardServiceError("delete_card", "failed to delete card", err)
	}

	log.Info("card deleted", slog.String("card_id", cardID.String()))
	return nil
}

// AddPrinting implements CardService.AddPrinting
func (s *cardServiceImpl) AddPrinting(ctx context.Context, cardID uuid.UUID, rarityCode string, imageURL *string) (uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	printing, err := domain.NewPrinting(cardID, rarityCode, s.classifier.Classify(rarityCode), imageURL)
	if err != nil {
		return uuid.Nil, NewCardServiceError("add_printing", "invalid printing", err)
	}

	if err := s.printingStore.Add(ctx, printing); err != nil {
		log.Error("failed to add printing",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()),
			slog.String("rarity_code", rarityCode))
		return uuid.Nil, NewCardServiceError("add_printing", "failed to save printing", err)
	}

	log.Debug("printing added",
		slog.String("card_id", cardID.String()),
		slog.String("rarity_code", rarityCode),
		slog.String("rarity_type", string(printing.RarityType)))
	return printing.ID, nil
}
