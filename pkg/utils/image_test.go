package utils

import (
	"bytes"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRGB(t *testing.T) {
	// 2x1: red pixel, green pixel
	data := []byte{255, 0, 0, 0, 255, 0}

	img := DecodeRGB(data, 2, 1)
	require.Equal(t, 2, img.Bounds().Dx())
	require.Equal(t, 1, img.Bounds().Dy())

	r, g, b, a := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Equal(t, uint32(0), g)
	assert.Equal(t, uint32(0), b)
	assert.Equal(t, uint32(0xffff), a)

	r, g, _, _ = img.At(1, 0).RGBA()
	assert.Equal(t, uint32(0), r)
	assert.Equal(t, uint32(0xffff), g)
}

func TestEncodeJPEG(t *testing.T) {
	img := DecodeRGB(bytes.Repeat([]byte{128}, 4*4*3), 4, 4)

	var buf bytes.Buffer
	require.NoError(t, EncodeJPEG(img, &buf, DefaultJPEGQuality))

	decoded, err := jpeg.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 4, decoded.Bounds().Dx())
	assert.Equal(t, 4, decoded.Bounds().Dy())
}
