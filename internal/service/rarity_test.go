package service_test

import (
	"context"
	"testing"

	"github.com/llcgdb/catalog-api/internal/domain"
	"github.com/llcgdb/catalog-api/internal/service"
	"github.com/llcgdb/catalog-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRarityStore is an in-memory RarityStore for classifier tests.
type fakeRarityStore struct {
	mappings map[string]domain.RarityType
}

func newFakeRarityStore() *fakeRarityStore {
	return &fakeRarityStore{mappings: map[string]domain.RarityType{}}
}

func (f *fakeRarityStore) Add(_ context.Context, code string, rarityType domain.RarityType) error {
	if _, ok := f.mappings[code]; ok {
		return store.ErrDuplicateRarity
	}
	f.mappings[code] = rarityType
	return nil
}

func (f *fakeRarityStore) Get(_ context.Context, code string) (domain.RarityType, error) {
	rarityType, ok := f.mappings[code]
	if !ok {
		return "", store.ErrRarityNotFound
	}
	return rarityType, nil
}

func (f *fakeRarityStore) ListAll(_ context.Context) (map[string]domain.RarityType, error) {
	out := make(map[string]domain.RarityType, len(f.mappings))
	for code, rarityType := range f.mappings {
		out[code] = rarityType
	}
	return out, nil
}

func (f *fakeRarityStore) Delete(_ context.Context, code string) error {
	if _, ok := f.mappings[code]; !ok {
		return store.ErrRarityNotFound
	}
	delete(f.mappings, code)
	return nil
}

func TestRarityClassifier_UnmappedCodesAreRegular(t *testing.T) {
	t.Parallel()

	classifier, err := service.NewRarityClassifier(newFakeRarityStore(), nil)
	require.NoError(t, err)

	assert.Equal(t, domain.RarityRegular, classifier.Classify("R"))
	assert.Equal(t, domain.RarityRegular, classifier.Classify("SR"))
	assert.Equal(t, domain.RarityRegular, classifier.Classify(""))
}

func TestRarityClassifier_AllowListAfterReload(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	rarities := newFakeRarityStore()
	for _, code := range []string{"P", "SP", "SEC", "LLE"} {
		require.NoError(t, rarities.Add(ctx, code, domain.RarityParallel))
	}

	classifier, err := service.NewRarityClassifier(rarities, nil)
	require.NoError(t, err)
	require.NoError(t, classifier.Reload(ctx))

	assert.Equal(t, domain.RarityParallel, classifier.Classify("P"))
	assert.Equal(t, domain.RarityParallel, classifier.Classify("LLE"))
	assert.Equal(t, domain.RarityRegular, classifier.Classify("R"))

	// Codes are case-sensitive; "p" is not on the allow-list.
	assert.Equal(t, domain.RarityRegular, classifier.Classify("p"))
}

func TestRarityClassifier_AddAndDeleteUpdateCache(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	classifier, err := service.NewRarityClassifier(newFakeRarityStore(), nil)
	require.NoError(t, err)
	require.NoError(t, classifier.Reload(ctx))

	require.NoError(t, classifier.Add(ctx, "PR", domain.RarityParallel))
	assert.Equal(t, domain.RarityParallel, classifier.Classify("PR"))

	err = classifier.Add(ctx, "PR", domain.RarityParallel)
	assert.ErrorIs(t, err, store.ErrDuplicateRarity)

	require.NoError(t, classifier.Delete(ctx, "PR"))
	assert.Equal(t, domain.RarityRegular, classifier.Classify("PR"))

	err = classifier.Delete(ctx, "PR")
	assert.ErrorIs(t, err, store.ErrRarityNotFound)
}

func TestRarityClassifier_GetReadsThrough(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	rarities := newFakeRarityStore()
	require.NoError(t, rarities.Add(ctx, "SEC", domain.RarityParallel))

	classifier, err := service.NewRarityClassifier(rarities, nil)
	require.NoError(t, err)

	rarityType, err := classifier.Get(ctx, "SEC")
	require.NoError(t, err)
	assert.Equal(t, domain.RarityParallel, rarityType)

	_, err = classifier.Get(ctx, "R")
	assert.ErrorIs(t, err, store.ErrRarityNotFound)
}

func TestNewRarityClassifier_NilStore(t *testing.T) {
	t.Parallel()

	_, err := service.NewRarityClassifier(nil, nil)
	assert.Error(t, err)
}
