package extractor

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileCache_ExtractFile(t *testing.T) {
	t.Parallel()

	cache, err := NewFileCache(New(), 16)
	require.NoError(t, err)
	defer cache.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "m.py")
	require.NoError(t, os.WriteFile(path, []byte("def first():\n    pass\n"), 0o644))

	text, ok := cache.ExtractFile(path, false)
	require.True(t, ok)
	assert.Contains(t, text, "def first()")

	// unchanged file: same render again
	again, ok := cache.ExtractFile(path, false)
	require.True(t, ok)
	assert.Equal(t, text, again)
}

func TestFileCache_InvalidatesOnChange(t *testing.T) {
	t.Parallel()

	cache, err := NewFileCache(New(), 16)
	require.NoError(t, err)
	defer cache.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "m.py")
	require.NoError(t, os.WriteFile(path, []byte("def first():\n    pass\n"), 0o644))

	_, ok := cache.ExtractFile(path, false)
	require.True(t, ok)

	// rewrite with a different mtime so the key changes
	require.NoError(t, os.WriteFile(path, []byte("def second():\n    pass\n"), 0o644))
	require.NoError(t, os.Chtimes(path, time.Now(), time.Now().Add(time.Second)))

	text, ok := cache.ExtractFile(path, false)
	require.True(t, ok)
	assert.Contains(t, text, "def second()")
	assert.NotContains(t, text, "def first()")
}

func TestFileCache_VerboseKeyedSeparately(t *testing.T) {
	t.Parallel()

	cache, err := NewFileCache(New(), 16)
	require.NoError(t, err)
	defer cache.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "m.py")
	src := "def f():\n    \"\"\"Head.\n\n    Tail paragraph.\n    \"\"\"\n"
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	compact, ok := cache.ExtractFile(path, false)
	require.True(t, ok)
	assert.NotContains(t, compact, "Tail paragraph.")

	verbose, ok := cache.ExtractFile(path, true)
	require.True(t, ok)
	assert.Contains(t, verbose, "Tail paragraph.")
}

func TestFileCache_MissingFile(t *testing.T) {
	t.Parallel()

	cache, err := NewFileCache(New(), 16)
	require.NoError(t, err)
	defer cache.Close()

	_, ok := cache.ExtractFile(filepath.Join(t.TempDir(), "absent.py"), false)
	assert.False(t, ok)
}

func TestFileCache_UnsupportedFileNotCached(t *testing.T) {
	t.Parallel()

	cache, err := NewFileCache(New(), 16)
	require.NoError(t, err)
	defer cache.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o644))

	_, ok := cache.ExtractFile(path, false)
	assert.False(t, ok)
}
