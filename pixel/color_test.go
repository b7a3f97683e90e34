package pixel

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		in      string
		want    RGB
		wantErr bool
	}{
		{"#ffffff", RGB{255, 255, 255}, false},
		{"000000", RGB{0, 0, 0}, false},
		{"#1a2b3c", RGB{0x1a, 0x2b, 0x3c}, false},
		{"#fff", RGB{255, 255, 255}, false},
		{"#f00", RGB{255, 0, 0}, false},
		{"", RGB{}, true},
		{"#12345", RGB{}, true},
		{"#gggggg", RGB{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	c := RGB{R: 0x12, G: 0xab, B: 0xef}
	got, err := ParseHex(c.Hex())
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestToHSL(t *testing.T) {
	tests := []struct {
		name string
		in   RGB
		want HSL
	}{
		{"red", RGB{255, 0, 0}, HSL{H: 0, S: 1, L: 0.5}},
		{"green", RGB{0, 255, 0}, HSL{H: 120, S: 1, L: 0.5}},
		{"blue", RGB{0, 0, 255}, HSL{H: 240, S: 1, L: 0.5}},
		{"white", RGB{255, 255, 255}, HSL{H: 0, S: 0, L: 1}},
		{"grey", RGB{128, 128, 128}, HSL{H: 0, S: 0, L: 128.0 / 255}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.in.ToHSL()
			assert.InDelta(t, tt.want.H, got.H, 0.01)
			assert.InDelta(t, tt.want.S, got.S, 0.01)
			assert.InDelta(t, tt.want.L, got.L, 0.01)
		})
	}
}

func TestHueDistance(t *testing.T) {
	assert.InDelta(t, 20, HueDistance(10, 350), 1e-9)
	assert.InDelta(t, 180, HueDistance(0, 180), 1e-9)
	assert.InDelta(t, 0, HueDistance(42, 42), 1e-9)
	assert.InDelta(t, 10, HueDistance(355, 5), 1e-9)
}

func TestDistance(t *testing.T) {
	assert.InDelta(t, 0, RGB{1, 2, 3}.Distance(RGB{1, 2, 3}), 1e-9)
	assert.InDelta(t, math.Sqrt(3)*255, RGB{0, 0, 0}.Distance(RGB{255, 255, 255}), 1e-9)
	assert.InDelta(t, 5, RGB{3, 4, 0}.Distance(RGB{0, 0, 0}), 1e-9)
}

func TestWithinChannelTolerance(t *testing.T) {
	base := RGB{100, 100, 100}
	assert.True(t, base.WithinChannelTolerance(RGB{110, 95, 100}, 10))
	assert.False(t, base.WithinChannelTolerance(RGB{111, 100, 100}, 10))
	assert.True(t, base.WithinChannelTolerance(base, 0))
}
