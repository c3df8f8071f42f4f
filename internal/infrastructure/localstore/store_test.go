package localstore

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

func TestSetGetDelete(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, err)

	require.NoError(t, store.Set("things", "a", record{Name: "first", Count: 1}))

	var got record
	require.NoError(t, store.Get("things", "a", &got))
	assert.Equal(t, "first", got.Name)

	require.NoError(t, store.Delete("things", "a"))
	assert.Equal(t, ErrNotFound, store.Get("things", "a", &got))
}

func TestGetMissingCollection(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, err)

	var got record
	assert.Equal(t, ErrNotFound, store.Get("nope", "a", &got))
}

func TestAllIteratesCollection(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, err)

	require.NoError(t, store.Set("things", "a", record{Name: "first"}))
	require.NoError(t, store.Set("things", "b", record{Name: "second"}))

	seen := map[string]string{}
	err = store.All("things", func(id string, raw json.RawMessage) error {
		var r record
		require.NoError(t, json.Unmarshal(raw, &r))
		seen[id] = r.Name
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "first", "b": "second"}, seen)
}

func TestDataSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")

	store, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, store.Set("things", "a", record{Name: "persisted", Count: 7}))

	reopened, err := Open(path)
	require.NoError(t, err)

	var got record
	require.NoError(t, reopened.Get("things", "a", &got))
	assert.Equal(t, "persisted", got.Name)
	assert.Equal(t, 7, got.Count)
}

func TestOverwriteReplacesRecord(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "data.json"))
	require.NoError(t, err)

	require.NoError(t, store.Set("things", "a", record{Count: 1}))
	require.NoError(t, store.Set("things", "a", record{Count: 2}))

	var got record
	require.NoError(t, store.Get("things", "a", &got))
	assert.Equal(t, 2, got.Count)
}
