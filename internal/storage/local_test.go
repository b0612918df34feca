package storage

import (
	"context"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"treinai_backend/internal/config"
)

func newLocal(t *testing.T) *LocalStorage {
	t.Helper()
	store, err := NewLocalStorage(config.StorageConfig{BasePath: t.TempDir()})
	require.NoError(t, err)
	return store
}

func TestLocalStorage_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	store := newLocal(t)

	key := "photos/student-1/before.jpg"
	require.NoError(t, store.Save(ctx, key, strings.NewReader("image-bytes"), "image/jpeg"))

	exists, err := store.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	rc, err := store.Get(ctx, key)
	require.NoError(t, err)
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, "image-bytes", string(data))

	require.NoError(t, store.Delete(ctx, key))
	exists, err = store.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestLocalStorage_DeleteMissingIsNoError(t *testing.T) {
	store := newLocal(t)
	assert.NoError(t, store.Delete(context.Background(), "photos/nope.jpg"))
}

func TestLocalStorage_GetURL(t *testing.T) {
	store := newLocal(t)
	assert.Equal(t, "/files/photos/a.jpg", store.GetURL("photos/a.jpg"))

	withBase, err := NewLocalStorage(config.StorageConfig{
		BasePath: t.TempDir(),
		BaseURL:  "https://cdn.example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/photos/a.jpg", withBase.GetURL("photos/a.jpg"))
}

func TestNew_UnknownTypeFails(t *testing.T) {
	_, err := New(config.StorageConfig{Type: "ftp"})
	assert.Error(t, err)
}
