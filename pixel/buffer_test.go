package pixel

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBuffer(t *testing.T) {
	b := NewBuffer(3, 2)
	require.NoError(t, b.Validate())
	assert.Equal(t, 3, b.Width)
	assert.Equal(t, 2, b.Height)
	assert.Len(t, b.Pix, 3*2*4)
}

func TestBufferValidate(t *testing.T) {
	tests := []struct {
		name    string
		buf     *Buffer
		wantErr bool
	}{
		{"ok", NewBuffer(2, 2), false},
		{"nil", nil, true},
		{"zero width", &Buffer{Width: 0, Height: 2}, true},
		{"negative height", &Buffer{Width: 2, Height: -1}, true},
		{"short pix", &Buffer{Width: 2, Height: 2, Pix: make([]uint8, 4)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.buf.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidBuffer)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBufferPixelAccess(t *testing.T) {
	b := NewBuffer(4, 4)
	b.SetRGBA(2, 1, 10, 20, 30, 40)

	r, g, bl, a := b.RGBAAt(2, 1)
	assert.Equal(t, uint8(10), r)
	assert.Equal(t, uint8(20), g)
	assert.Equal(t, uint8(30), bl)
	assert.Equal(t, uint8(40), a)

	b.SetAlpha(2, 1, 0)
	assert.Equal(t, uint8(0), b.AlphaAt(2, 1))

	assert.True(t, b.In(0, 0))
	assert.True(t, b.In(3, 3))
	assert.False(t, b.In(4, 0))
	assert.False(t, b.In(0, -1))
}

func TestFromImageRoundTrip(t *testing.T) {
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{R: 255, A: 255})
	img.SetNRGBA(1, 1, color.NRGBA{G: 128, A: 64})

	b := FromImage(img)
	require.NoError(t, b.Validate())

	r, _, _, a := b.RGBAAt(0, 0)
	assert.Equal(t, uint8(255), r)
	assert.Equal(t, uint8(255), a)

	out := b.ToImage()
	assert.Equal(t, img.Pix, out.Pix)
}

func TestBufferClone(t *testing.T) {
	b := NewBuffer(2, 2)
	b.Fill(RGB{R: 9, G: 9, B: 9})

	c := b.Clone()
	c.SetAlpha(0, 0, 0)

	assert.Equal(t, uint8(255), b.AlphaAt(0, 0))
	assert.Equal(t, uint8(0), c.AlphaAt(0, 0))
}
