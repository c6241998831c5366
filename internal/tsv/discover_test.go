// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package tsv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"c.txt", "a.txt", "b.txt", "skip.csv"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	files, err := Discover(dir, "*.txt")
	require.NoError(t, err)

	want := []string{
		filepath.Join(dir, "a.txt"),
		filepath.Join(dir, "b.txt"),
		filepath.Join(dir, "c.txt"),
	}
	assert.Equal(t, want, files)
}

func TestDiscoverNoMatches(t *testing.T) {
	files, err := Discover(t.TempDir(), "*.txt")
	require.NoError(t, err)
	assert.Empty(t, files)
}

func TestDiscoverBadPattern(t *testing.T) {
	_, err := Discover(t.TempDir(), "[")
	assert.Error(t, err)
}
