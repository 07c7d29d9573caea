package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "data", "preferences.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open("")
	assert.Error(t, err)
}

func TestStoreRoundTrip(t *testing.T) {
	store := openTestStore(t)

	_, ok, err := store.Get("preferred-theme")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Set("preferred-theme", "dark"))
	value, ok, err := store.Get("preferred-theme")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "dark", value)

	// Upsert overwrites in place.
	require.NoError(t, store.Set("preferred-theme", "light"))
	value, _, err = store.Get("preferred-theme")
	require.NoError(t, err)
	assert.Equal(t, "light", value)

	require.NoError(t, store.Remove("preferred-theme"))
	_, ok, err = store.Get("preferred-theme")
	require.NoError(t, err)
	assert.False(t, ok)

	// Removing an absent key is not an error.
	require.NoError(t, store.Remove("preferred-theme"))
}

func TestStorePersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preferences.db")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Set("preferred-language", "ru"))
	require.NoError(t, store.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	value, ok, err := reopened.Get("preferred-language")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "ru", value)
}
