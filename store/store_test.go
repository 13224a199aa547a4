package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func backends(t *testing.T) map[string]SecretStore {
	t.Helper()
	boltPath := filepath.Join(t.TempDir(), "secrets.db")
	bolt, err := NewBoltStore(boltPath)
	require.NoError(t, err)
	t.Cleanup(func() { bolt.Close() })

	return map[string]SecretStore{
		"memory": NewMemoryStore(),
		"bbolt":  bolt,
	}
}

func TestSecretStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, res, err := s.Get(ctx, []byte("missing"))
			require.NoError(t, err)
			assert.Equal(t, ResultKeyNotFound, res)

			res, err = s.Set(ctx, []byte("k1"), []byte("v1"))
			require.NoError(t, err)
			assert.Equal(t, ResultInserted, res)

			v, res, err := s.Get(ctx, []byte("k1"))
			require.NoError(t, err)
			assert.Equal(t, ResultKeyFound, res)
			assert.Equal(t, []byte("v1"), v)

			res, err = s.Set(ctx, []byte("k1"), []byte("v2"))
			require.NoError(t, err)
			assert.Equal(t, ResultModified, res)

			ok, err := s.Check(ctx, []byte("k1"))
			require.NoError(t, err)
			assert.True(t, ok)

			keys, err := s.List(ctx)
			require.NoError(t, err)
			assert.Len(t, keys, 1)

			res, err = s.Remove(ctx, []byte("k1"))
			require.NoError(t, err)
			assert.Equal(t, ResultDeleted, res)

			res, err = s.Remove(ctx, []byte("k1"))
			require.NoError(t, err)
			assert.Equal(t, ResultKeyNotFound, res)
		})
	}
}

func TestSecretStoreClear(t *testing.T) {
	ctx := context.Background()
	for name, s := range backends(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Set(ctx, []byte("a"), []byte("1"))
			require.NoError(t, err)
			_, err = s.Set(ctx, []byte("b"), []byte("2"))
			require.NoError(t, err)

			require.NoError(t, s.Clear(ctx))

			keys, err := s.List(ctx)
			require.NoError(t, err)
			assert.Empty(t, keys)
		})
	}
}

func TestBoltStoreReloadsMirrorFromDisk(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "secrets.db")

	first, err := NewBoltStore(path)
	require.NoError(t, err)
	_, err = first.Set(ctx, []byte("persisted"), []byte("value"))
	require.NoError(t, err)
	require.NoError(t, first.Close())

	second, err := NewBoltStore(path)
	require.NoError(t, err)
	defer second.Close()

	v, res, err := second.Get(ctx, []byte("persisted"))
	require.NoError(t, err)
	assert.Equal(t, ResultKeyFound, res)
	assert.Equal(t, []byte("value"), v)
}
