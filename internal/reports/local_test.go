package reports

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocalStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")

	store, err := NewLocalStore(dir)
	require.NoError(t, err)
	require.NotNil(t, store)
	assert.DirExists(t, dir)

	_, err = NewLocalStore("")
	assert.Error(t, err)
}

func TestStoreAndRetrieve(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	payload := []byte(`{"files_scanned": 42}`)
	require.NoError(t, store.Store("canonize-run-20260831.json", payload))

	data, err := store.Retrieve("canonize-run-20260831.json")
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestRetrieveMissing(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Retrieve("nope.json")
	assert.Error(t, err)
}

func TestListByPrefix(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	require.NoError(t, store.Store("canonize-run-1.json", []byte("{}")))
	require.NoError(t, store.Store("canonize-run-2.json", []byte("{}")))
	require.NoError(t, store.Store("other.json", []byte("{}")))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "canonize-run-dir"), 0755))

	names, err := store.List("canonize-run-")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"canonize-run-1.json", "canonize-run-2.json"}, names)
}

func TestDelete(t *testing.T) {
	store, err := NewLocalStore(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Store("gone.json", []byte("{}")))
	require.NoError(t, store.Delete("gone.json"))

	_, err = store.Retrieve("gone.json")
	assert.Error(t, err)

	assert.Error(t, store.Delete("gone.json"))
}
