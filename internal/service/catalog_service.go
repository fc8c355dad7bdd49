package service

import (
	"context"
	"log/slog"

	"github.com/llcgdb/catalog-api/internal/domain"
	"github.com/llcgdb/catalog-api/internal/platform/logger"
	"github.com/llcgdb/catalog-api/internal/store"
)

// CatalogService provides the curated-list admin operations: sets, groups,
// units, the canonical name listing, and the orphan-skill sweep. These are
// single-statement operations; the stores handle their own atomicity.
type CatalogService interface {
	ListSets(ctx context.Context) ([]domain.Set, error)
	AddSet(ctx context.Context, setCode, name string) (*domain.Set, error)
	DeleteSet(ctx context.Context, setCode string) error

	ListGroups(ctx context.Context) ([]string, error)
	AddGroup(ctx context.Context, name string) (*domain.Group, error)
	DeleteGroup(ctx context.Context, name string) error

	ListUnits(ctx context.Context) ([]string, error)
	AddUnit(ctx context.Context, name string) (*domain.Unit, error)
	DeleteUnit(ctx context.Context, name string) error

	ListNames(ctx context.Context) ([]string, error)

	// SweepOrphanSkills removes skill rows no card links to any more and
	// reports how many were removed.
	SweepOrphanSkills(ctx context.Context) (int64, error)
}

type catalogServiceImpl struct {
	setStore   store.SetStore
	groupStore store.GroupStore
	unitStore  store.UnitStore
	nameStore  store.NameStore
	tagStore   store.TagStore
	logger     *slog.Logger
}

// NewCatalogService creates a new CatalogService.
// It returns an error if any of the required stores are nil.
func NewCatalogService(
	setStore store.SetStore,
	groupStore store.GroupStore,
	unitStore store.UnitStore,
	nameStore store.NameStore,
	tagStore store.TagStore,
	log *slog.Logger,
) (CatalogService, error) {
	switch {
	case setStore == nil:
		return nil, NewCardServiceError("new_catalog_service", "setStore cannot be nil", domain.ErrValidation)
	case groupStore == nil:
		return nil, NewCardServiceError("new_catalog_service", "groupStore cannot be nil", domain.ErrValidation)
	case unitStore == nil:
		return nil, NewCardServiceError("new_catalog_service", "unitStore cannot be nil", domain.ErrValidation)
	case nameStore == nil:
		return nil, NewCardServiceError("new_catalog_service", "nameStore cannot be nil", domain.ErrValidation)
	case tagStore == nil:
		return nil, NewCardServiceError("new_catalog_service", "tagStore cannot be nil", domain.ErrValidation)
	}

	if log == nil {
		log = slog.Default()
	}

	return &catalogServiceImpl{
		setStore:   setStore,
		groupStore: groupStore,
		unitStore:  unitStore,
		nameStore:  nameStore,
		tagStore:   tagStore,
		logger:     log.With(slog.String("component", "catalog_service")),
	}, nil
}

func (s *catalogServiceImpl) ListSets(ctx context.Context) ([]domain.Set, error) {
	return s.setStore.List(ctx)
}

func (s *catalogServiceImpl) AddSet(ctx context.Context, setCode, name string) (*domain.Set, error) {
	set, err := domain.NewSet(setCode, name)
	if err != nil {
		return nil, err
	}
	if err := s.setStore.Add(ctx, set); err != nil {
		return nil, err
	}
	return set, nil
}

func (s *catalogServiceImpl) DeleteSet(ctx context.Context, setCode string) error {
	return s.setStore.DeleteByCode(ctx, setCode)
}

func (s *catalogServiceImpl) ListGroups(ctx context.Context) ([]string, error) {
	return s.groupStore.List(ctx)
}

func (s *catalogServiceImpl) AddGroup(ctx context.Context, name string) (*domain.Group, error) {
	group, err := domain.NewGroup(name)
	if err != nil {
		return nil, err
	}
	if err := s.groupStore.Add(ctx, group); err != nil {
		return nil, err
	}
	return group, nil
}

func (s *catalogServiceImpl) DeleteGroup(ctx context.Context, name string) error {
	return s.groupStore.DeleteByName(ctx, name)
}

func (s *catalogServiceImpl) ListUnits(ctx context.Context) ([]string, error) {
	return s.unitStore.List(ctx)
}

func (s *catalogServiceImpl) AddUnit(ctx context.Context, name string) (*domain.Unit, error) {
	unit, err := domain.NewUnit(name)
	if err != nil {
		return nil, err
	}
	if err := s.unitStore.Add(ctx, unit); err != nil {
		return nil, err
	}
	return unit, nil
}

func (s *catalogServiceImpl) DeleteUnit(ctx context.Context, name string) error {
	return s.unitStore.DeleteByName(ctx, name)
}

func (s *catalogServiceImpl) ListNames(ctx context.Context) ([]string, error) {
	return s.nameStore.List(ctx)
}

func (s *catalogServiceImpl) SweepOrphanSkills(ctx context.Context) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	removed, err := s.tagStore.DeleteOrphanSkills(ctx)
	if err != nil {
		log.Error("orphan skill sweep failed", slog.String("error", err.Error()))
		return 0, err
	}
	return removed, nil
}
