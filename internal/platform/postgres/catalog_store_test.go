//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/llcgdb/catalog-api/internal/domain"
	"github.com/llcgdb/catalog-api/internal/platform/postgres"
	"github.com/llcgdb/catalog-api/internal/store"
	"github.com/llcgdb/catalog-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresNameStore(t *testing.T) {
	t.Parallel()

	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		nameStore := postgres.NewPostgresNameStore(tx, nil)

		t.Run("get or create is idempotent", func(t *testing.T) {
			first, err := nameStore.GetOrCreate(ctx, "Tang Keke")
			require.NoError(t, err)
			second, err := nameStore.GetOrCreate(ctx, "Tang Keke")
			require.NoError(t, err)
			assert.Equal(t, first, second, "same name should map to one row")
		})

		t.Run("get by id", func(t *testing.T) {
			id, err := nameStore.GetOrCreate(ctx, "Wien Margarete")
			require.NoError(t, err)

			name, err := nameStore.GetByID(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, "Wien Margarete", name)

			_, err = nameStore.GetByID(ctx, uuid.New())
			assert.ErrorIs(t, err, store.ErrNameNotFound)
		})
	})
}

func TestPostgresSetStore(t *testing.T) {
	t.Parallel()

	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		setStore := postgres.NewPostgresSetStore(tx, nil)

		t.Run("add and look up name", func(t *testing.T) {
			set, err := domain.NewSet("bp1", "Booster Pack Vol.1")
			require.NoError(t, err)
			require.NoError(t, setStore.Add(ctx, set))

			name, err := setStore.GetNameByCode(ctx, "bp1")
			require.NoError(t, err)
			assert.Equal(t, "Booster Pack Vol.1", name)
		})

		t.Run("unknown code resolves empty", func(t *testing.T) {
			name, err := setStore.GetNameByCode(ctx, "bp99")
			require.NoError(t, err)
			assert.Empty(t, name)
		})

		t.Run("duplicate code", func(t *testing.T) {
			set, err := domain.NewSet("sd1", "Starter Deck Liella!")
			require.NoError(t, err)
			require.NoError(t, setStore.Add(ctx, set))

			dup, err := domain.NewSet("sd1", "Starter Deck Aqours")
			require.NoError(t, err)
			err = setStore.Add(ctx, dup)
			assert.ErrorIs(t, err, store.ErrDuplicateSet)
		})

		t.Run("delete", func(t *testing.T) {
			set, err := domain.NewSet("sd2", "Starter Deck Vol.2")
			require.NoError(t, err)
			require.NoError(t, setStore.Add(ctx, set))

			require.NoError(t, setStore.DeleteByCode(ctx, "sd2"))
			err = setStore.DeleteByCode(ctx, "sd2")
			assert.ErrorIs(t, err, store.ErrSetNotFound)
		})
	})
}

func TestPostgresGroupAndUnitStores(t *testing.T) {
	t.Parallel()

	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		groupStore := postgres.NewPostgresGroupStore(tx, nil)
		unitStore := postgres.NewPostgresUnitStore(tx, nil)

		t.Run("group add list delete", func(t *testing.T) {
			group, err := domain.NewGroup("Hasunosora Girls' High School Idol Club")
			require.NoError(t, err)
			require.NoError(t, groupStore.Add(ctx, group))

			groups, err := groupStore.List(ctx)
			require.NoError(t, err)
			assert.Contains(t, groups, "Hasunosora Girls' High School Idol Club")

			require.NoError(t, groupStore.DeleteByName(ctx, "Hasunosora Girls' High School Idol Club"))
			err = groupStore.DeleteByName(ctx, "Hasunosora Girls' High School Idol Club")
			assert.ErrorIs(t, err, store.ErrGroupNotFound)
		})

		t.Run("duplicate group name", func(t *testing.T) {
			group, err := domain.NewGroup("Sunny Passion")
			require.NoError(t, err)
			require.NoError(t, groupStore.Add(ctx, group))

			dup, err := domain.NewGroup("Sunny Passion")
			require.NoError(t, err)
			err = groupStore.Add(ctx, dup)
			assert.ErrorIs(t, err, store.ErrDuplicateGroup)
		})

		t.Run("unit add list delete", func(t *testing.T) {
			unit, err := domain.NewUnit("KALEIDOSCORE")
			require.NoError(t, err)
			require.NoError(t, unitStore.Add(ctx, unit))

			units, err := unitStore.List(ctx)
			require.NoError(t, err)
			assert.Contains(t, units, "KALEIDOSCORE")

			require.NoError(t, unitStore.DeleteByName(ctx, "KALEIDOSCORE"))
			err = unitStore.DeleteByName(ctx, "KALEIDOSCORE")
			assert.ErrorIs(t, err, store.ErrUnitNotFound)
		})
	})
}
