package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Set(ctx, "Name,Math\nAlice,90"))
	text, ok, err := s.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Name,Math\nAlice,90", text)

	require.NoError(t, s.Set(ctx, "Name,Art\nBob,40"))
	text, _, err = s.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Name,Art\nBob,40", text)

	require.NoError(t, s.Delete(ctx))
	_, ok, err = s.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Delete(ctx), "deleting twice is fine")
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "last.csv")
	s, err := NewFileStore(path, "")
	require.NoError(t, err)

	exerciseStore(t, s)

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestFileStoreDefaultPath(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	s, err := NewFileStore("", "")
	require.NoError(t, err)
	assert.Equal(t, DefaultKey+".csv", filepath.Base(s.Path))
	assert.Equal(t, "studentperf", filepath.Base(filepath.Dir(s.Path)))
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, Config{Backend: BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, s)

	s, err = Open(ctx, Config{Path: filepath.Join(t.TempDir(), "c.csv")})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, s)

	_, err = Open(ctx, Config{Backend: "etcd"})
	assert.ErrorIs(t, err, ErrUnknownBackend)
}
