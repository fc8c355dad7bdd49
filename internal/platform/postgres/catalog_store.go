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

// PostgresNameStore implements the store.NameStore interface
// using a PostgreSQL database as the storage backend.
type PostgresNameStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresNameStore creates a new PostgreSQL implementation of the NameStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresNameStore(db store.DBTX, logger *slog.Logger) *PostgresNameStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresNameStore{
		db:     db,
		logger: logger.With(slog.String("component", "name_store")),
	}
}

// Ensure PostgresNameStore implements store.NameStore interface
var _ store.NameStore = (*PostgresNameStore)(nil)

// WithTx implements store.NameStore.WithTx
func (s *PostgresNameStore) WithTx(tx *sql.Tx) store.NameStore {
	return &PostgresNameStore{
		db:     tx,
		logger: s.logger,
	}
}

// GetOrCreate implements store.NameStore.GetOrCreate
// The upsert returns the existing row's ID when the name is already
// registered, so concurrent first-use writers converge on one row.
func (s *PostgresNameStore) GetOrCreate(ctx context.Context, name string) (uuid.UUID, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if name == "" {
		return uuid.Nil, domain.ErrNameEmpty
	}

	query := `
		INSERT INTO names (id, name) VALUES ($1, $2)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id
	`
	var id uuid.UUID
	if err := s.db.QueryRowContext(ctx, query, uuid.New(), name).Scan(&id); err != nil {
		mapped := MapError(err)
		log.Error("failed to get or create name",
			slog.String("error", mapped.Error()),
			slog.String("name", name))
		return uuid.Nil, mapped
	}
	return id, nil
}

// GetByID implements store.NameStore.GetByID
func (s *PostgresNameStore) GetByID(ctx context.Context, id uuid.UUID) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx,
		`SELECT name FROM names WHERE id = $1`, id).Scan(&name)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", store.ErrNameNotFound
		}
		return "", MapError(err)
	}
	return name, nil
}

// List implements store.NameStore.List
func (s *PostgresNameStore) List(ctx context.Context) ([]string, error) {
	return listStrings(ctx, s.db, s.logger, `SELECT name FROM names ORDER BY name`)
}

// PostgresSetStore implements the store.SetStore interface
// using a PostgreSQL database as the storage backend.
type PostgresSetStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSetStore creates a new PostgreSQL implementation of the SetStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresSetStore(db store.DBTX, logger *slog.Logger) *PostgresSetStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSetStore{
		db:     db,
		logger: logger.With(slog.String("component", "set_store")),
	}
}

// Ensure PostgresSetStore implements store.SetStore interface
var _ store.SetStore = (*PostgresSetStore)(nil)

// WithTx implements store.SetStore.WithTx
func (s *PostgresSetStore) WithTx(tx *sql.Tx) store.SetStore {
	return &PostgresSetStore{
		db:     tx,
		logger: s.logger,
	}
}

// Add implements store.SetStore.Add
func (s *PostgresSetStore) Add(ctx context.Context, set *domain.Set) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sets (id, set_code, name) VALUES ($1, $2, $3)`,
		set.ID, set.SetCode, set.Name)
	if err != nil {
		mapped := MapError(err)
		log.Warn("failed to add set",
			slog.String("error", mapped.Error()),
			slog.String("set_code", set.SetCode))
		return mapped
	}
	return nil
}

// GetNameByCode implements store.SetStore.GetNameByCode
// An unregistered code yields an empty string so card assembly never
// fails on a set that has not been entered yet.
func (s *PostgresSetStore) GetNameByCode(ctx context.Context, setCode string) (string, error) {
	var name string
	err := s.db.QueryRowContext(ctx,
		`SELECT name FROM sets WHERE set_code = $1`, setCode).Scan(&name)
	if err != nil {
		if err == sql.ErrNoRows {
			return "", nil
		}
		return "", MapError(err)
	}
	return name, nil
}

// List implements store.SetStore.List
func (s *PostgresSetStore) List(ctx context.Context) ([]domain.Set, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, set_code, name FROM sets ORDER BY set_code`)
	if err != nil {
		log.Error("failed to list sets", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var sets []domain.Set
	for rows.Next() {
		var set domain.Set
		if err := rows.Scan(&set.ID, &set.SetCode, &set.Name); err != nil {
			return nil, MapError(err)
		}
		sets = append(sets, set)
	}
	return sets, rows.Err()
}

// DeleteByCode implements store.SetStore.DeleteByCode
func (s *PostgresSetStore) DeleteByCode(ctx context.Context, setCode string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM sets WHERE set_code = $1`, setCode)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrSetNotFound)
}

// PostgresGroupStore implements the store.GroupStore interface
// using a PostgreSQL database as the storage backend.
type PostgresGroupStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresGroupStore creates a new PostgreSQL implementation of the GroupStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresGroupStore(db store.DBTX, logger *slog.Logger) *PostgresGroupStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresGroupStore{
		db:     db,
		logger: logger.With(slog.String("component", "group_store")),
	}
}

// Ensure PostgresGroupStore implements store.GroupStore interface
var _ store.GroupStore = (*PostgresGroupStore)(nil)

// Add implements store.GroupStore.Add
func (s *PostgresGroupStore) Add(ctx context.Context, group *domain.Group) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO groups (id, name) VALUES ($1, $2)`,
		group.ID, group.Name)
	if err != nil {
		mapped := MapError(err)
		log.Warn("failed to add group",
			slog.String("error", mapped.Error()),
			slog.String("group", group.Name))
		return mapped
	}
	return nil
}

// List implements store.GroupStore.List
func (s *PostgresGroupStore) List(ctx context.Context) ([]string, error) {
	return listStrings(ctx, s.db, s.logger, `SELECT name FROM groups ORDER BY name`)
}

// DeleteByName implements store.GroupStore.DeleteByName
// The foreign key from card_groups blocks deleting a group cards still
// link to; that surfaces as ErrReferentialConflict.
func (s *PostgresGroupStore) DeleteByName(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM groups WHERE name = $1`, name)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrGroupNotFound)
}

// PostgresUnitStore implements the store.UnitStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUnitStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUnitStore creates a new PostgreSQL implementation of the UnitStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresUnitStore(db store.DBTX, logger *slog.Logger) *PostgresUnitStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresUnitStore{
		db:     db,
		logger: logger.With(slog.String("component", "unit_store")),
	}
}

// Ensure PostgresUnitStore implements store.UnitStore interface
var _ store.UnitStore = (*PostgresUnitStore)(nil)

// Add implements store.UnitStore.Add
func (s *PostgresUnitStore) Add(ctx context.Context, unit *domain.Unit) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO units (id, name) VALUES ($1, $2)`,
		unit.ID, unit.Name)
	if err != nil {
		mapped := MapError(err)
		log.Warn("failed to add unit",
			slog.String("error", mapped.Error()),
			slog.String("unit", unit.Name))
		return mapped
	}
	return nil
}

// List implements store.UnitStore.List
func (s *PostgresUnitStore) List(ctx context.Context) ([]string, error) {
	return listStrings(ctx, s.db, s.logger, `SELECT name FROM units ORDER BY name`)
}

// DeleteByName implements store.UnitStore.DeleteByName
func (s *PostgresUnitStore) DeleteByName(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM units WHERE name = $1`, name)
	if err != nil {
		return MapError(err)
	}
	return CheckRowsAffected(result, store.ErrUnitNotFound)
}

// listStrings runs a zero-argument single-column query and collects the
// results in order.
func listStrings(ctx context.Context, db store.DBTX, defaultLogger *slog.Logger, query string) ([]string, error) {
	log := logger.FromContextOrDefault(ctx, defaultLogger)

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to run list query", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var values []string
	for rows.Next() {
		var value string
		if err := rows.Scan(&value); err != nil {
			return nil, MapError(err)
		}
		values = append(values, value)
	}
	return values, rows.Err()
}
