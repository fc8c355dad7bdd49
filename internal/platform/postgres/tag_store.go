package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/google/uuid"
	"github.com/llcgdb/catalog-api/internal/platform/logger"
	"github.com/llcgdb/catalog-api/internal/store"
)

// PostgresTagStore implements the store.TagStore interface
// using a PostgreSQL database as the storage backend.
//
// Groups and units are curated lists: a link to an unregistered name is a
// caller error, not an occasion to create rows. Skills are the opposite,
// created on demand and deduplicated by exact text.
type PostgresTagStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresTagStore creates a new PostgreSQL implementation of the TagStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresTagStore(db store.DBTX, logger *slog.Logger) *PostgresTagStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresTagStore{
		db:     db,
		logger: logger.With(slog.String("component", "tag_store")),
	}
}

// Ensure PostgresTagStore implements store.TagStore interface
var _ store.TagStore = (*PostgresTagStore)(nil)

// WithTx implements store.TagStore.WithTx
func (s *PostgresTagStore) WithTx(tx *sql.Tx) store.TagStore {
	return &PostgresTagStore{
		db:     tx,
		logger: s.logger,
	}
}

// SetGroups implements store.TagStore.SetGroups
func (s *PostgresTagStore) SetGroups(ctx context.Context, cardID uuid.UUID, groupNames []string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM card_groups WHERE card_id = $1`, cardID); err != nil {
		return MapError(err)
	}

	for _, name := range groupNames {
		var groupID uuid.UUID
		err := s.db.QueryRowContext(ctx,
			`SELECT id FROM groups WHERE name = $1`, name).Scan(&groupID)
		if err != nil {
			if err == sql.ErrNoRows {
				log.Warn("rejected link to unregistered group",
					slog.String("card_id", cardID.String()),
					slog.String("group", name))
				return &store.TagNotFoundError{Name: name, Err: store.ErrGroupNotFound}
			}
			return MapError(err)
		}
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO card_groups (card_id, group_id) VALUES ($1, $2)`,
			cardID, groupID); err != nil {
			return MapError(err)
		}
	}
	return nil
}

// SetUnits implements store.TagStore.SetUnits
func (s *PostgresTagStore) SetUnits(ctx context.Context, cardID uuid.UUID, unitNames []string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM card_units WHERE card_id = $1`, cardID); err != nil {
		return MapError(err)
	}

	for _, name := range unitNames {
		var unitID uuid.UUID
		err := s.db.QueryRowContext(ctx,
			`SELECT id FROM units WHERE name = $1`, name).Scan(&unitID)
		if err != nil {
			if err == sql.ErrNoRows {
				log.Warn("rejected link to unregistered unit",
					slog.String("card_id", cardID.String()),
					slog.String("unit", name))
				return &store.TagNotFoundError{Name: name, Err: store.ErrUnitNotFound}
			}
			return MapError(err)
		}
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO card_units (card_id, unit_id) VALUES ($1, $2)`,
			cardID, unitID); err != nil {
			return MapError(err)
		}
	}
	return nil
}

// SetSkills implements store.TagStore.SetSkills
// Skill rows are shared by text: the upsert returns the existing row's ID
// when the text is already present, so identical rules text never gets a
// second row.
func (s *PostgresTagStore) SetSkills(ctx context.Context, cardID uuid.UUID, skillTexts []string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx,
		`DELETE FROM card_skills WHERE card_id = $1`, cardID); err != nil {
		return MapError(err)
	}

	upsert := `
		INSERT INTO skills (id, text) VALUES ($1, $2)
		ON CONFLICT (text) DO UPDATE SET text = EXCLUDED.text
		RETURNING id
	`
	for _, text := range skillTexts {
		var skillID uuid.UUID
		if err := s.db.QueryRowContext(ctx, upsert, uuid.New(), text).Scan(&skillID); err != nil {
			mapped := MapError(err)
			log.Error("failed to upsert skill",
				slog.String("error", mapped.Error()),
				slog.String("card_id", cardID.String()))
			return mapped
		}
		if _, err := s.db.ExecContext(ctx,
			`INSERT INTO card_skills (card_id, skill_id) VALUES ($1, $2)`,
			cardID, skillID); err != nil {
			return MapError(err)
		}
	}
	return nil
}

// GetGroups implements store.TagStore.GetGroups
func (s *PostgresTagStore) GetGroups(ctx context.Context, cardID uuid.UUID) ([]string, error) {
	return s.linkedNames(ctx, cardID, `
		SELECT g.name
		FROM groups g
		JOIN card_groups cg ON cg.group_id = g.id
		WHERE cg.card_id = $1
		ORDER BY g.name
	`)
}

// GetUnits implements store.TagStore.GetUnits
func (s *PostgresTagStore) GetUnits(ctx context.Context, cardID uuid.UUID) ([]string, error) {
	return s.linkedNames(ctx, cardID, `
		SELECT u.name
		FROM units u
		JOIN card_units cu ON cu.unit_id = u.id
		WHERE cu.card_id = $1
		ORDER BY u.name
	`)
}

// GetSkills implements store.TagStore.GetSkills
func (s *PostgresTagStore) GetSkills(ctx context.Context, cardID uuid.UUID) ([]string, error) {
	return s.linkedNames(ctx, cardID, `
		SELECT sk.text
		FROM skills sk
		JOIN card_skills cs ON cs.skill_id = sk.id
		WHERE cs.card_id = $1
		ORDER BY sk.text
	`)
}

func (s *PostgresTagStore) linkedNames(ctx context.Context, cardID uuid.UUID, query string) ([]string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, cardID)
	if err != nil {
		log.Error("failed to query card links",
			slog.String("error", err.Error()),
			slog.String("card_id", cardID.String()))
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, MapError(err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// DeleteOrphanSkills implements store.TagStore.DeleteOrphanSkills
func (s *PostgresTagStore) DeleteOrphanSkills(ctx context.Context) (int64, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `
		DELETE FROM skills
		WHERE NOT EXISTS (
			SELECT 1 FROM card_skills WHERE card_skills.skill_id = skills.id
		)
	`)
	if err != nil {
		log.Error("failed to delete orphan skills", slog.String("error", err.Error()))
		return 0, MapError(err)
	}

	removed, err := result.RowsAffected()
	if err != nil {
		return 0, MapError(err)
	}
	if removed > 0 {
		log.Info("orphan skills removed", slog.Int64("count", removed))
	}
	return removed, nil
}
