package display

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// Window rendering expects BGR byte order, so a pure red RGB pixel must
// come out with the red value in the last channel.
func TestBGRSwapsChannels(t *testing.T) {
	// red pixel, green pixel, blue pixel
	in := []byte{255, 0, 0, 0, 255, 0, 0, 0, 255}
	want := []byte{0, 0, 255, 0, 255, 0, 255, 0, 0}

	out := bgr(in)
	assert.Equal(t, want, out)
	// input untouched
	assert.Equal(t, []byte{255, 0, 0, 0, 255, 0, 0, 0, 255}, in)
}

func TestBGRTwiceIsIdentity(t *testing.T) {
	in := []byte{1, 2, 3, 4, 5, 6}

	assert.Equal(t, in, bgr(bgr(in)))
}
