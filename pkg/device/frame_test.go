package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// A 2x2 frame with distinct pixels A B / C D flips to D C / B A, the
// 180-degree rotation.
func TestFlip(t *testing.T) {
	a := []byte{1, 2, 3}
	b := []byte{4, 5, 6}
	c := []byte{7, 8, 9}
	d := []byte{10, 11, 12}

	in := Frame{Width: 2, Height: 2}
	in.Data = append(append(append(append([]byte{}, a...), b...), c...), d...)
	want := append(append(append(append([]byte{}, d...), c...), b...), a...)

	out := in.Flip()
	assert.Equal(t, want, out.Data)
	assert.Equal(t, 2, out.Width)
	assert.Equal(t, 2, out.Height)
}

func TestFlipLeavesInputUntouched(t *testing.T) {
	in := Frame{Data: []byte{1, 2, 3, 4, 5, 6}, Width: 2, Height: 1}
	orig := append([]byte{}, in.Data...)

	_ = in.Flip()
	assert.Equal(t, orig, in.Data)
}

func TestFlipTwiceIsIdentity(t *testing.T) {
	in := Frame{Data: []byte{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}, Width: 2, Height: 2}

	out := in.Flip().Flip()
	require.Equal(t, in.Data, out.Data)
}
