package memstore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/hoard/internal/application/port"
	"github.com/bnema/hoard/internal/domain/entity"
)

func TestStore_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	store := New()

	require.NoError(t, store.Put(ctx, &entity.Entity{ID: "a", Data: []byte("data")}))

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), got.Data)

	require.NoError(t, store.Delete(ctx, "a"))
	_, err = store.Get(ctx, "a")
	assert.ErrorIs(t, err, port.ErrNotFound)

	// delete is idempotent
	require.NoError(t, store.Delete(ctx, "a"))
}

func TestStore_PutOverwrites(t *testing.T) {
	ctx := context.Background()
	store := New()

	require.NoError(t, store.Put(ctx, &entity.Entity{ID: "a", Data: []byte("v1")}))
	require.NoError(t, store.Put(ctx, &entity.Entity{ID: "a", Data: []byte("v2")}))

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), got.Data)
	assert.Equal(t, 1, store.Len())
}

func TestStore_DeleteAll(t *testing.T) {
	ctx := context.Background()
	store := New()

	require.NoError(t, store.Put(ctx, &entity.Entity{ID: "a", Data: []byte("1")}))
	require.NoError(t, store.Put(ctx, &entity.Entity{ID: "b", Data: []byte("2")}))

	require.NoError(t, store.DeleteAll(ctx))
	assert.Equal(t, 0, store.Len())
}

func TestStore_RejectsInvalidEntity(t *testing.T) {
	ctx := context.Background()
	store := New()

	assert.Error(t, store.Put(ctx, nil))
	assert.Error(t, store.Put(ctx, &entity.Entity{}))
}

func TestStore_GetReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := New()

	require.NoError(t, store.Put(ctx, &entity.Entity{ID: "a", Data: []byte("data")}))

	got, err := store.Get(ctx, "a")
	require.NoError(t, err)
	got.Data[0] = 'X'

	again, err := store.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, []byte("data"), again.Data)
}
