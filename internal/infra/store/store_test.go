//go:build unit

package store_test

import (
	"os"
	"path/filepath"
	"testing"

	"cinebook/internal/infra/store"
	"cinebook/internal/pkg/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func newStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.New(config.StoreConfig{Dir: t.TempDir()})
	require.NoError(t, err)
	return s
}

func TestLoad(t *testing.T) {
	t.Run("missing file yields the zero value", func(t *testing.T) {
		s := newStore(t)

		values, err := store.Load[[]sample](s, "missing")
		require.NoError(t, err)
		assert.Nil(t, values)
	})

	t.Run("corrupt file is an error", func(t *testing.T) {
		dir := t.TempDir()
		s, err := store.New(config.StoreConfig{Dir: dir})
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.json"), []byte("{not json"), 0o644))

		_, err = store.Load[[]sample](s, "broken")
		assert.Error(t, err)
	})
}

func TestSave(t *testing.T) {
	t.Run("round trips a collection", func(t *testing.T) {
		s := newStore(t)
		in := []sample{{ID: 1, Name: "first"}, {ID: 2, Name: "second"}}

		require.NoError(t, store.Save(s, "samples", in))

		out, err := store.Load[[]sample](s, "samples")
		require.NoError(t, err)
		assert.Equal(t, in, out)
	})

	t.Run("creates the directory on first save", func(t *testing.T) {
		dir := filepath.Join(t.TempDir(), "nested", "deeper")
		s, err := store.New(config.StoreConfig{Dir: dir})
		require.NoError(t, err)

		require.NoError(t, store.Save(s, "samples", []sample{{ID: 1}}))

		_, err = os.Stat(filepath.Join(dir, "samples.json"))
		assert.NoError(t, err)
	})

	t.Run("overwrites the previous collection wholesale", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, store.Save(s, "samples", []sample{{ID: 1}, {ID: 2}}))
		require.NoError(t, store.Save(s, "samples", []sample{{ID: 3}}))

		out, err := store.Load[[]sample](s, "samples")
		require.NoError(t, err)
		assert.Equal(t, []sample{{ID: 3}}, out)
	})
}
