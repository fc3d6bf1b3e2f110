package repository

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recipekeeper/core/internal/domain/entities"
	"github.com/recipekeeper/core/internal/infrastructure/config"
	"github.com/recipekeeper/core/internal/infrastructure/logger"
)

func newTestStore(t *testing.T, atomic bool) (*FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "recipes.json")
	store := NewFileStore(config.StoreConfig{Path: path, AtomicWrites: atomic, FileMode: 0o600}, logger.NewNop())
	return store.(*FileStore), path
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	store, path := newTestStore(t, false)

	recipes, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, recipes)
	assert.Empty(t, recipes)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err), "load must not create the file")
}

func TestLoadInvalidContent(t *testing.T) {
	store, path := newTestStore(t, false)
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	_, err := store.Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse recipes file")
}

func TestLoadEmptyFileIsAnError(t *testing.T) {
	store, path := newTestStore(t, false)
	require.NoError(t, os.WriteFile(path, nil, 0o600))

	_, err := store.Load(context.Background())
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	for _, atomic := range []bool{false, true} {
		name := "plain write"
		if atomic {
			name = "atomic write"
		}
		t.Run(name, func(t *testing.T) {
			store, path := newTestStore(t, atomic)
			ctx := context.Background()

			want := []entities.Recipe{
				{ID: 4, Name: "Tea", Ingredients: []string{"water", "tea leaves"}},
				{ID: 1, Name: "Pancakes", Ingredients: []string{"flour", "egg", "milk"}},
				{ID: 9, Name: "", Ingredients: []string{}},
			}
			require.NoError(t, store.Save(ctx, want))

			got, err := store.Load(ctx)
			require.NoError(t, err)
			assert.Equal(t, want, got)

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

			entries, err := os.ReadDir(filepath.Dir(path))
			require.NoError(t, err)
			assert.Len(t, entries, 1, "no temp files left behind")
		})
	}
}

func TestSaveWritesPlainJSONArray(t *testing.T) {
	store, path := newTestStore(t, false)

	require.NoError(t, store.Save(context.Background(), []entities.Recipe{{ID: 1, Name: "Toast"}}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw []map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &raw))
	require.Len(t, raw, 1)
	assert.EqualValues(t, 1, raw[0]["id"])
	assert.Equal(t, "Toast", raw[0]["name"])
	assert.Equal(t, []interface{}{}, raw[0]["ingredients"])
}

func TestSaveEmptyCollection(t *testing.T) {
	store, path := newTestStore(t, false)

	require.NoError(t, store.Save(context.Background(), nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(data))
}

func TestSaveOverwritesWholeFile(t *testing.T) {
	store, _ := newTestStore(t, false)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, []entities.Recipe{
		{ID: 1, Name: "a long recipe name that makes the file bigger", Ingredients: []string{"a", "b", "c"}},
		{ID: 2, Name: "b", Ingredients: []string{}},
	}))
	require.NoError(t, store.Save(ctx, []entities.Recipe{{ID: 2, Name: "b", Ingredients: []string{}}}))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entities.Recipe{{ID: 2, Name: "b", Ingredients: []string{}}}, got)
}

func TestLoadNullIngredientsNormalized(t *testing.T) {
	store, path := newTestStore(t, false)
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": 1, "name": "x", "ingredients": null}]`), 0o600))

	got, err := store.Load(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []string{}, got[0].Ingredients)
}

func TestInstrumentedStore(t *testing.T) {
	inner, path := newTestStore(t, false)
	reg := prometheus.NewRegistry()
	metrics := NewStoreMetrics(reg)
	store := NewInstrumentedStore(inner, metrics)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, []entities.Recipe{{ID: 1, Name: "a"}, {ID: 2, Name: "b"}}))
	_, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.Recipes))

	require.NoError(t, os.WriteFile(path, []byte("garbage"), 0o600))
	_, err = store.Load(ctx)
	require.Error(t, err)
	assert.Equal(t, float64(2), testutil.ToFloat64(metrics.Recipes), "failed loads keep the last count")

	assert.Equal(t, 3, testutil.CollectAndCount(metrics.OperationDuration))
}
