package video

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"camrig/pkg/device"
)

func TestWriter(t *testing.T) {
	path := filepath.Join(t.TempDir(), "1.avi")
	w, err := NewWriter(path, 2, 2, 15)
	require.NoError(t, err)

	frame := device.Frame{
		Data:   []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12},
		Width:  2,
		Height: 2,
	}
	require.NoError(t, w.Add(frame))
	require.NoError(t, w.Add(frame))
	assert.Equal(t, 2, w.FrameCount())

	require.NoError(t, w.Close())

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}
