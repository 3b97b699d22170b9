package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Serial 831612070394 is camera "2" at grid cell (2,2); 831612071440 is
// camera "8" at (0,0).
func TestPlacementLabMonitor(t *testing.T) {
	l := New(false)
	assert.Equal(t, Size{Width: 640, Height: 360}, l.WindowSize())

	p := l.Placement("831612070394")
	assert.Equal(t, "Camera 2", p.Title)
	assert.True(t, p.Positioned)
	assert.Equal(t, 1280, p.X)
	assert.Equal(t, 720, p.Y)

	p = l.Placement("831612071440")
	assert.Equal(t, "Camera 8", p.Title)
	assert.True(t, p.Positioned)
	assert.Equal(t, 0, p.X)
	assert.Equal(t, 0, p.Y)
}

func TestPlacementControlRoom(t *testing.T) {
	l := New(true)
	assert.Equal(t, Size{Width: 384, Height: 216}, l.WindowSize())

	p := l.Placement("831612070394")
	assert.True(t, p.Positioned)
	assert.Equal(t, 768, p.X)
	assert.Equal(t, 432, p.Y)

	p = l.Placement("831612071440")
	assert.True(t, p.Positioned)
	assert.Equal(t, 0, p.X)
	assert.Equal(t, 0, p.Y)
}

func TestPlacementUnknownSerial(t *testing.T) {
	l := New(false)

	p := l.Placement("999999999999")
	assert.Equal(t, "Camera 999999999999", p.Title)
	assert.False(t, p.Positioned)
	assert.Equal(t, Size{Width: 640, Height: 360}, p.Size)
}

// Camera X is named but has no grid cell; it gets a title and no
// position.
func TestPlacementNamedWithoutCell(t *testing.T) {
	l := New(false)

	p := l.Placement("831612071526")
	assert.Equal(t, "Camera X", p.Title)
	assert.False(t, p.Positioned)
}
