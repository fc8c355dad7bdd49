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

func TestPostgresPrintingStore(t *testing.T) {
	t.Parallel()

	db := testdb.GetTestDBWithT(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		printingStore := postgres.NewPostgresPrintingStore(tx, nil)

		t.Run("add and list ordered by rarity code", func(t *testing.T) {
			card := mustCreateCard(ctx, t, tx, "P01")

			imageURL := "https://llofficial-cardgame.com/cards/P01-P.png"
			parallel, err := domain.NewPrinting(card.ID, "P", domain.RarityParallel, &imageURL)
			require.NoError(t, err)
			regular, err := domain.NewPrinting(card.ID, "R", domain.RarityRegular, nil)
			require.NoError(t, err)

			require.NoError(t, printingStore.Add(ctx, regular))
			require.NoError(t, printingStore.Add(ctx, parallel))

			printings, err := printingStore.ListByCard(ctx, card.ID)
			require.NoError(t, err)
			require.Len(t, printings, 2)
			assert.Equal(t, "P", printings[0].RarityCode)
			assert.Equal(t, domain.RarityParallel, printings[0].RarityType)
			require.NotNil(t, printings[0].ImageURL)
			assert.Equal(t, imageURL, *printings[0].ImageURL)
			assert.Equal(t, "R", printings[1].RarityCode)
			assert.Nil(t, printings[1].ImageURL)
		})

		t.Run("duplicate rarity code per card", func(t *testing.T) {
			card := mustCreateCard(ctx, t, tx, "P02")

			first, err := domain.NewPrinting(card.ID, "R", domain.RarityRegular, nil)
			require.NoError(t, err)
			require.NoError(t, printingStore.Add(ctx, first))

			second, err := domain.NewPrinting(card.ID, "R", domain.RarityRegular, nil)
			require.NoError(t, err)
			err = printingStore.Add(ctx, second)
			assert.ErrorIs(t, err, store.ErrDuplicatePrinting)
		})

		t.Run("same rarity code across different cards", func(t *testing.T) {
			first := mustCreateCard(ctx, t, tx, "P04")
			second := mustCreateCard(ctx, t, tx, "P05")

			forFirst, err := domain.NewPrinting(first.ID, "R", domain.RarityRegular, nil)
			require.NoError(t, err)
			require.NoError(t, printingStore.Add(ctx, forFirst))

			// Uniqueness is per card, so another card may reuse the code.
			forSecond, err := domain.NewPrinting(second.ID, "R", domain.RarityRegular, nil)
			require.NoError(t, err)
			require.NoError(t, printingStore.Add(ctx, forSecond))

			printings, err := printingStore.ListByCard(ctx, second.ID)
			require.NoError(t, err)
			require.Len(t, printings, 1)
			assert.Equal(t, "R", printings[0].RarityCode)
		})

		t.Run("unknown card", func(t *testing.T) {
			printing, err := domain.NewPrinting(uuid.New(), "R", domain.RarityRegular, nil)
			require.NoError(t, err)

			err = printingStore.Add(ctx, printing)
			assert.ErrorIs(t, err, store.ErrCardNotFound)
		})

		t.Run("card with no printings", func(t *testing.T) {
			card := mustCreateCard(ctx, t, tx, "P03")

			printings, err := printingStore.ListByCard(ctx, card.ID)
			require.NoError(t, err)
			assert.Empty(t, printings)
		})
	})
}
