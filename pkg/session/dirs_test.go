package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSessionDir(t *testing.T) {
	base := t.TempDir()
	now := time.Date(2026, 8, 30, 14, 5, 0, 0, time.UTC)

	dir, err := createSessionDir(base, now)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "2026-08-30-14-05"), dir)
	assert.DirExists(t, dir)
}

// Two sessions in the same minute must not share a directory; each
// collision appends another suffix character.
func TestCreateSessionDirDisambiguation(t *testing.T) {
	base := t.TempDir()
	now := time.Date(2026, 8, 30, 14, 5, 0, 0, time.UTC)

	first, err := createSessionDir(base, now)
	require.NoError(t, err)
	second, err := createSessionDir(base, now)
	require.NoError(t, err)
	third, err := createSessionDir(base, now)
	require.NoError(t, err)

	assert.Equal(t, first+"a", second)
	assert.Equal(t, first+"aa", third)

	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}
