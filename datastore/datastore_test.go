package datastore

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenCreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestSetGetDelete(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	defer s.Close()

	s.Set("guild-1", map[string]any{"prefix": "?"})

	v, ok := s.Get("guild-1")
	require.True(t, ok)
	assert.Equal(t, map[string]any{"prefix": "?"}, v)

	s.Delete("guild-1")
	_, ok = s.Get("guild-1")
	assert.False(t, ok)
}

func TestPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	s, err := Open(path)
	require.NoError(t, err)
	s.Set("k", "v")
	require.NoError(t, s.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()

	v, ok := s2.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", v)
}

func TestSaveSkipsWhenUnchanged(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	s, err := OpenWithOptions(Options{Path: path, BackupCount: 1})
	require.NoError(t, err)
	defer s.Close()

	s.Set("k", "v")
	require.NoError(t, s.Save())

	info1, err := os.Stat(path)
	require.NoError(t, err)

	// Same content, second save must not rewrite the file.
	require.NoError(t, s.Save())
	info2, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, info1.ModTime(), info2.ModTime())
}

func TestBackupRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")

	s, err := OpenWithOptions(Options{Path: path, BackupCount: 2})
	require.NoError(t, err)
	defer s.Close()

	s.Set("a", 1)
	require.NoError(t, s.Save())
	s.Set("b", 2)
	require.NoError(t, s.Save())

	_, err = os.Stat(path + ".bak.1")
	assert.NoError(t, err)
}

func TestOpenRejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "store.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := Open(path)
	assert.Error(t, err)
}

func TestKeys(t *testing.T) {
	s, err := Open(filepath.Join(t.TempDir(), "store.json"))
	require.NoError(t, err)
	defer s.Close()

	s.Set("one", 1)
	s.Set("two", 2)
	assert.ElementsMatch(t, []string{"one", "two"}, s.Keys())
}
