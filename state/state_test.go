package state

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore(t *testing.T) {
	store := NewStore(t.TempDir())

	t.Run("missing file is empty", func(t *testing.T) {
		st, err := store.Load()
		require.NoError(t, err)
		assert.Empty(t, st)
	})

	t.Run("set and get", func(t *testing.T) {
		require.NoError(t, store.Set(KeyLastFile, "data.json"))

		got, err := store.GetString(KeyLastFile)
		require.NoError(t, err)
		assert.Equal(t, "data.json", got)
		assert.FileExists(t, store.Path())
	})

	t.Run("scalars convert to strings", func(t *testing.T) {
		require.NoError(t, store.Set("count", 42))
		got, err := store.GetString("count")
		require.NoError(t, err)
		assert.Equal(t, "42", got)
	})

	t.Run("non scalars read as empty", func(t *testing.T) {
		require.NoError(t, store.Set("list", []string{"a"}))
		got, err := store.GetString("list")
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("update sets and deletes", func(t *testing.T) {
		require.NoError(t, store.Update(map[string]string{
			KeyLastQuery: "name",
			KeyLastFile:  "",
		}))

		st, err := store.Load()
		require.NoError(t, err)
		assert.Equal(t, "name", st[KeyLastQuery])
		assert.NotContains(t, st, KeyLastFile)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, store.Delete(KeyLastQuery))
		_, ok, err := store.Get(KeyLastQuery)
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestStoreCorruptFile(t *testing.T) {
	dir := t.TempDir()
	store := NewStore(dir)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".jsonview"), 0o755))
	require.NoError(t, os.WriteFile(store.Path(), []byte("a: [unclosed"), 0o644))

	_, err := store.Load()
	assert.ErrorContains(t, err, "parse state file")
}
