package extension

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(`{}`), 0o644))
	return path
}

func TestDirScanner_Scan(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "greeter.json")
	writeSource(t, dir, "dice.json")
	writeSource(t, dir, "_draft.json") // reserved prefix
	writeSource(t, dir, "notes.txt")   // wrong suffix
	// Directories are never candidates, even with the suffix.
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.json"), 0o755))

	s := NewDirScanner(dir, ".json")
	snap, err := s.Scan(context.Background())
	require.NoError(t, err)

	assert.Len(t, snap, 2)
	assert.Contains(t, snap, "greeter")
	assert.Contains(t, snap, "dice")
	assert.False(t, snap["greeter"].IsZero())
}

func TestDirScanner_MissingDirIsCreated(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "modules")

	s := NewDirScanner(dir, ".json")
	snap, err := s.Scan(context.Background())
	require.NoError(t, err)
	assert.Empty(t, snap)

	// The location exists afterward so later drops are picked up.
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestDirScanner_Resolve(t *testing.T) {
	dir := t.TempDir()
	path := writeSource(t, dir, "greeter.json")

	s := NewDirScanner(dir, ".json")

	src, err := s.Resolve("greeter")
	require.NoError(t, err)
	assert.Equal(t, "greeter", src.ID)
	assert.Equal(t, path, src.Path)
	assert.False(t, src.ModTime.IsZero())

	_, err = s.Resolve("missing")
	assert.Error(t, err)
}
