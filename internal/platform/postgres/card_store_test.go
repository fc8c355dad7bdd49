//go:build integration

package postgres_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver
	"github.com/llcgdb/catalog-api/internal/domain"
	"github.com/llcgdb/catalog-api/internal/platform/postgres"
	"github.com/llcgdb/catalog-api/internal/store"
	"github.com/llcgdb/catalog-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustCreateName inserts a canonical name and returns its ID.
func mustCreateName(ctx context.Context, t *testing.T, tx *sql.Tx, name string) uuid.UUID {
	t.Helper()
	nameStore := postgres.NewPostgresNameStore(tx, nil)
	id, err := nameStore.GetOrCreate(ctx, name)
	require.NoError(t, err)
	return id
}

// mustCreateCard builds and saves a character card, returning it.
func mustCreateCard(ctx context.Context, t *testing.T, tx *sql.Tx, numberInSet string) *domain.Card {
	t.Helper()
	nameID := mustCreateName(ctx, t, tx, "Shibuya Kanon "+numberInSet)
	card, err := domain.NewCard("PL!S", "bp1", numberInSet, nameID, &domain.CharacterAttributes{
		Cost:   4,
		Blades: 2,
	})
	require.NoError(t, err)
	cardStore := postgres.NewPostgresCardStore(tx, nil)
	require.NoError(t, cardStore.Create(ctx, card))
	return card
}

func TestPostgresCardStore_CreateAndGet(t *testing.T) {
	t.Parallel()

	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		cardStore := postgres.NewPostgresCardStore(tx, nil)

		t.Run("character card round trip", func(t *testing.T) {
			nameID := mustCreateName(ctx, t, tx, "Shibuya Kanon")
			bladeHeart := domain.BladeHeartPink
			card, err := domain.NewCard("PL!S", "bp1", "001", nameID, &domain.CharacterAttributes{
				Cost:       6,
				Blades:     3,
				BladeHeart: &bladeHeart,
			})
			require.NoError(t, err)
			require.NoError(t, cardStore.Create(ctx, card))

			got, err := cardStore.GetByID(ctx, card.ID)
			require.NoError(t, err)
			assert.Equal(t, card.ID, got.ID)
			assert.Equal(t, domain.CardTypeCharacter, got.Type)
			attrs, ok := got.Attributes.(*domain.CharacterAttributes)
			require.True(t, ok, "attributes should be character attributes")
			assert.Equal(t, 6, attrs.Cost)
			assert.Equal(t, 3, attrs.Blades)
			require.NotNil(t, attrs.BladeHeart)
			assert.Equal(t, domain.BladeHeartPink, *attrs.BladeHeart)
		})

		t.Run("live card round trip", func(t *testing.T) {
			nameID := mustCreateName(ctx, t, tx, "Dream Believers")
			specialHeart := domain.SpecialHeartScore
			card, err := domain.NewCard("PL!S", "bp1", "010", nameID, &domain.LiveAttributes{
				Score:        20,
				SpecialHeart: &specialHeart,
			})
			require.NoError(t, err)
			require.NoError(t, cardStore.Create(ctx, card))

			got, err := cardStore.GetByID(ctx, card.ID)
			require.NoError(t, err)
			attrs, ok := got.Attributes.(*domain.LiveAttributes)
			require.True(t, ok, "attributes should be live attributes")
			assert.Equal(t, 20, attrs.Score)
			assert.Nil(t, attrs.BladeHeart)
			require.NotNil(t, attrs.SpecialHeart)
			assert.Equal(t, domain.SpecialHeartScore, *attrs.SpecialHeart)
		})

		t.Run("energy card round trip", func(t *testing.T) {
			nameID := mustCreateName(ctx, t, tx, "Energy")
			card, err := domain.NewCard("PL!S", "bp1", "100", nameID, &domain.EnergyAttributes{})
			require.NoError(t, err)
			require.NoError(t, cardStore.Create(ctx, card))

			got, err := cardStore.GetByID(ctx, card.ID)
			require.NoError(t, err)
			assert.Equal(t, domain.CardTypeEnergy, got.Type)
			_, ok := got.Attributes.(*domain.EnergyAttributes)
			assert.True(t, ok, "attributes should be energy attributes")
		})

		t.Run("duplicate natural key", func(t *testing.T) {
			mustCreateCard(ctx, t, tx, "200")

			nameID := mustCreateName(ctx, t, tx, "Another Name")
			dup, err := domain.NewCard("PL!S", "bp1", "200", nameID, &domain.EnergyAttributes{})
			require.NoError(t, err)

			err = cardStore.Create(ctx, dup)
			assert.ErrorIs(t, err, store.ErrDuplicateCard)
		})

		t.Run("get nonexistent card", func(t *testing.T) {
			_, err := cardStore.GetByID(ctx, uuid.New())
			assert.ErrorIs(t, err, store.ErrCardNotFound)
		})
	})
}

func TestPostgresCardStore_Update(t *testing.T) {
	t.Parallel()

	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		cardStore := postgres.NewPostgresCardStore(tx, nil)

		t.Run("updates base and extension", func(t *testing.T) {
			card := mustCreateCard(ctx, t, tx, "300")

			card.Attributes = &domain.CharacterAttributes{Cost: 9, Blades: 1}
			card.NumberInSet = "301"
			card.UpdatedAt = time.Now().UTC()
			require.NoError(t, cardStore.Update(ctx, card))

			got, err := cardStore.GetByID(ctx, card.ID)
			require.NoError(t, err)
			assert.Equal(t, "301", got.NumberInSet)
			attrs := got.Attributes.(*domain.CharacterAttributes)
			assert.Equal(t, 9, attrs.Cost)
		})

		t.Run("type change rejected", func(t *testing.T) {
			card := mustCreateCard(ctx, t, tx, "310")

			mutated, err := domain.NewCard(card.SeriesCode, card.SetCode, card.NumberInSet, card.NameID,
				&domain.LiveAttributes{Score: 5})
			require.NoError(t, err)
			mutated.ID = card.ID

			err = cardStore.Update(ctx, mutated)
			assert.ErrorIs(t, err, domain.ErrSubtypeImmutable)

			// The stored card is untouched.
			got, err := cardStore.GetByID(ctx, card.ID)
			require.NoError(t, err)
			assert.Equal(t, domain.CardTypeCharacter, got.Type)
		})

		t.Run("update nonexistent card", func(t *testing.T) {
			nameID := mustCreateName(ctx, t, tx, "Ghost")
			card, err := domain.NewCard("PL!S", "bp1", "999", nameID, &domain.EnergyAttributes{})
			require.NoError(t, err)

			err = cardStore.Update(ctx, card)
			assert.ErrorIs(t, err, store.ErrCardNotFound)
		})
	})
}

func TestPostgresCardStore_Delete(t *testing.T) {
	t.Parallel()

	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		cardStore := postgres.NewPostgresCardStore(tx, nil)
		heartStore := postgres.NewPostgresHeartStore(tx, nil)
		printingStore := postgres.NewPostgresPrintingStore(tx, nil)

		card := mustCreateCard(ctx, t, tx, "400")
		require.NoError(t, heartStore.SetHearts(ctx, card.ID, []domain.HeartEntry{
			{Color: domain.HeartPink, Count: 2},
		}))
		printing, err := domain.NewPrinting(card.ID, "R", domain.RarityRegular, nil)
		require.NoError(t, err)
		require.NoError(t, printingStore.Add(ctx, printing))

		require.NoError(t, cardStore.Delete(ctx, card.ID))

		_, err = cardStore.GetByID(ctx, card.ID)
		assert.ErrorIs(t, err, store.ErrCardNotFound)

		// All owned rows are gone.
		for _, table := range []string{"character_cards", "card_hearts", "printings"} {
			var count int
			require.NoError(t, tx.QueryRowContext(ctx,
				`SELECT COUNT(*) FROM `+table+` WHERE card_id = $1`, card.ID).Scan(&count))
			assert.Zero(t, count, "expected no rows left in %s", table)
		}

		// The shared name row stays.
		var nameCount int
		require.NoError(t, tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM names WHERE id = $1`, card.NameID).Scan(&nameCount))
		assert.Equal(t, 1, nameCount)

		err = cardStore.Delete(ctx, card.ID)
		assert.ErrorIs(t, err, store.ErrCardNotFound)
	})
}

func TestPostgresCardStore_List(t *testing.T) {
	t.Parallel()

	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		cardStore := postgres.NewPostgresCardStore(tx, nil)

		mustCreateCard(ctx, t, tx, "502")
		mustCreateCard(ctx, t, tx, "501")

		cards, err := cardStore.List(ctx)
		require.NoError(t, err)
		require.GreaterOrEqual(t, len(cards), 2)

		// Ordered by natural key.
		for i := 1; i < len(cards); i++ {
			prev, cur := cards[i-1], cards[i]
			if prev.SeriesCode == cur.SeriesCode && prev.SetCode == cur.SetCode {
				assert.LessOrEqual(t, prev.NumberInSet, cur.NumberInSet)
			}
		}
	})
}
