package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIntrinsics(t *testing.T) {
	dump := "[ 1280x720 p[639.50 359.50] f[925.00 926.50] Brown Conrady [0.1 0.2 0.3 0.4 0.5] ]"

	in, err := ParseIntrinsics(dump)
	require.NoError(t, err)

	assert.Equal(t, "925.00", in.Fx)
	assert.Equal(t, "926.50", in.Fy)
	assert.Equal(t, "639.50", in.Cx)
	assert.Equal(t, "359.50", in.Cy)
	assert.Equal(t, "0.1", in.D1)
	assert.Equal(t, "0.2", in.D2)
	assert.Equal(t, "0.3", in.D3)
	assert.Equal(t, "0.4", in.D4)
	assert.Equal(t, "0.5", in.D5)
}

func TestParseIntrinsicsRoundTrip(t *testing.T) {
	dump := FormatIntrinsicsDump(1280, 720, 639.5, 359.5, 1280, 1280)

	in, err := ParseIntrinsics(dump)
	require.NoError(t, err)
	assert.Equal(t, "1280.00", in.Fx)
	assert.Equal(t, "639.50", in.Cx)
	assert.Equal(t, "0", in.D1)
}

func TestParseIntrinsicsErrors(t *testing.T) {
	tests := []struct {
		name string
		dump string
	}{
		{name: "empty", dump: ""},
		{name: "no p separator", dump: "[640x480]"},
		{name: "too few bracket groups", dump: "p[1 2] f[3 4]"},
		{name: "short distortion field", dump: "p[1 2] [3 4] [0 0 0]"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseIntrinsics(tt.dump)
			assert.Error(t, err)
		})
	}
}
