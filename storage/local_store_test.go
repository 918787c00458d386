package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStoreWritesFile(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	err = store.Store(context.Background(), "abc.png", strings.NewReader("image-bytes"))
	require.NoError(t, err)

	b, err := os.ReadFile(filepath.Join(dir, "abc.png"))
	require.NoError(t, err)
	assert.Equal(t, "image-bytes", string(b))
}

func TestLocalStoreStripsPathComponents(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir)
	require.NoError(t, err)

	err = store.Store(context.Background(), "../escape.png", strings.NewReader("x"))
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, "escape.png"))
	assert.NoError(t, err)
}

func TestNewLocalStoreCreatesDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	_, err := NewLocalStore(dir)
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}
