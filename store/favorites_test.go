package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFavoritesAddIsIdempotent(t *testing.T) {
	f := NewFavorites("fav:test", NewMemoryPersister())

	require.NoError(t, f.Add(FavoriteItem{ProductID: 1, Name: "Evening Gown", Price: 1250}))
	count := f.Count()
	require.NoError(t, f.Add(FavoriteItem{ProductID: 1, Name: "Evening Gown", Price: 1250}))

	assert.Equal(t, count, f.Count())
	assert.True(t, f.IsFavorited(1))
}

func TestFavoritesRemove(t *testing.T) {
	f := NewFavorites("fav:test", NewMemoryPersister())

	require.NoError(t, f.Add(FavoriteItem{ProductID: 1}))
	require.NoError(t, f.Add(FavoriteItem{ProductID: 2}))
	require.NoError(t, f.Remove(1))

	assert.False(t, f.IsFavorited(1))
	assert.True(t, f.IsFavorited(2))
	assert.Equal(t, 1, f.Count())

	// Removing an absent id is a no-op.
	require.NoError(t, f.Remove(42))
	assert.Equal(t, 1, f.Count())
}

func TestFavoritesClear(t *testing.T) {
	f := NewFavorites("fav:test", NewMemoryPersister())
	require.NoError(t, f.Add(FavoriteItem{ProductID: 1}))
	require.NoError(t, f.Clear())
	assert.Equal(t, 0, f.Count())
}

func TestFavoritesSurviveReload(t *testing.T) {
	p := NewMemoryPersister()

	first := NewFavorites("fav:abc", p)
	require.NoError(t, first.Add(FavoriteItem{ProductID: 7, Name: "Handbag", Price: 750, Slug: "designer-handbag"}))

	reloaded := NewFavorites("fav:abc", p)
	assert.True(t, reloaded.IsFavorited(7))
	assert.Equal(t, first.Items(), reloaded.Items())
}
