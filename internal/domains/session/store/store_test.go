package store_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"tonsor/internal/domains/session/store"
	"tonsor/shared/constant"

	"github.com/alicebob/miniredis/v2"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStores(t *testing.T) map[string]store.Store {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goRedis.NewClient(&goRedis.Options{Addr: mr.Addr()})

	return map[string]store.Store{
		"file":  store.NewFileStore(filepath.Join(t.TempDir(), ".tonsor-session.json")),
		"redis": store.NewRedisStore(client),
	}
}

func TestStore_SetGet(t *testing.T) {
	ctx := context.Background()

	for name, s := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(ctx, constant.StoreKeyToken, "token-123"))

			value, err := s.Get(ctx, constant.StoreKeyToken)
			require.NoError(t, err)
			assert.Equal(t, "token-123", value)
		})
	}
}

func TestStore_GetMissingKey(t *testing.T) {
	ctx := context.Background()

	for name, s := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.Get(ctx, "never-written")
			assert.ErrorIs(t, err, store.ErrNotFound)
		})
	}
}

func TestStore_Delete(t *testing.T) {
	ctx := context.Background()

	for name, s := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(ctx, constant.StoreKeyToken, "token-123"))
			require.NoError(t, s.Set(ctx, constant.StoreKeyRole, "customer"))

			require.NoError(t, s.Delete(ctx, constant.StoreKeyToken, constant.StoreKeyRole))

			_, err := s.Get(ctx, constant.StoreKeyToken)
			assert.ErrorIs(t, err, store.ErrNotFound)
			_, err = s.Get(ctx, constant.StoreKeyRole)
			assert.ErrorIs(t, err, store.ErrNotFound)
		})
	}
}

func TestStore_Clear(t *testing.T) {
	ctx := context.Background()

	for name, s := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, s.Set(ctx, constant.StoreKeyToken, "token-123"))
			require.NoError(t, s.Clear(ctx))

			_, err := s.Get(ctx, constant.StoreKeyToken)
			assert.ErrorIs(t, err, store.ErrNotFound)
		})
	}
}

func TestFileStore_SurvivesRestart(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), ".tonsor-session.json")

	first := store.NewFileStore(path)
	require.NoError(t, first.Set(ctx, constant.StoreKeyToken, "token-123"))

	second := store.NewFileStore(path)
	value, err := second.Get(ctx, constant.StoreKeyToken)
	require.NoError(t, err)
	assert.Equal(t, "token-123", value)
}

func TestFileStore_CorruptFileTreatedAsEmpty(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), ".tonsor-session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	s := store.NewFileStore(path)

	_, err := s.Get(ctx, constant.StoreKeyToken)
	assert.ErrorIs(t, err, store.ErrNotFound)

	require.NoError(t, s.Set(ctx, constant.StoreKeyToken, "token-123"))

	value, err := s.Get(ctx, constant.StoreKeyToken)
	require.NoError(t, err)
	assert.Equal(t, "token-123", value)
}
