package pixel

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
)

var ErrInvalidBuffer = errors.New("invalid pixel buffer")

// Buffer is a width*height RGBA pixel buffer, 4 bytes per pixel, row-major,
// origin top-left. All operations mutate Pix in place; the buffer is owned
// exclusively by the caller for the duration of a call.
type Buffer struct {
	Width  int
	Height int
	Pix    []uint8
}

// NewBuffer allocates a zeroed (fully transparent) buffer.
func NewBuffer(width, height int) *Buffer {
	return &Buffer{
		Width:  width,
		Height: height,
		Pix:    make([]uint8, width*height*4),
	}
}

// Validate reports whether the buffer dimensions and backing slice agree.
func (b *Buffer) Validate() error {
	if b == nil {
		return fmt.Errorf("%w: nil buffer", ErrInvalidBuffer)
	}
	if b.Width <= 0 || b.Height <= 0 {
		return fmt.Errorf("%w: dimensions %dx%d", ErrInvalidBuffer, b.Width, b.Height)
	}
	if len(b.Pix) != b.Width*b.Height*4 {
		return fmt.Errorf("%w: pix length %d, want %d", ErrInvalidBuffer, len(b.Pix), b.Width*b.Height*4)
	}
	return nil
}

// In reports whether (x, y) lies inside the buffer.
func (b *Buffer) In(x, y int) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// Offset returns the index of the red sample of pixel (x, y).
func (b *Buffer) Offset(x, y int) int {
	return (y*b.Width + x) * 4
}

// RGBAAt returns the four samples of pixel (x, y).
func (b *Buffer) RGBAAt(x, y int) (r, g, bl, a uint8) {
	i := b.Offset(x, y)
	return b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]
}

// SetRGBA overwrites all four samples of pixel (x, y).
func (b *Buffer) SetRGBA(x, y int, r, g, bl, a uint8) {
	i := b.Offset(x, y)
	b.Pix[i] = r
	b.Pix[i+1] = g
	b.Pix[i+2] = bl
	b.Pix[i+3] = a
}

// AlphaAt returns the alpha sample of pixel (x, y).
func (b *Buffer) AlphaAt(x, y int) uint8 {
	return b.Pix[b.Offset(x, y)+3]
}

// SetAlpha overwrites the alpha sample of pixel (x, y).
func (b *Buffer) SetAlpha(x, y int, a uint8) {
	b.Pix[b.Offset(x, y)+3] = a
}

// Clone returns a deep copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	pix := make([]uint8, len(b.Pix))
	copy(pix, b.Pix)
	return &Buffer{Width: b.Width, Height: b.Height, Pix: pix}
}

// Fill sets every pixel to the given color with full opacity.
func (b *Buffer) Fill(c RGB) {
	for i := 0; i < len(b.Pix); i += 4 {
		b.Pix[i] = c.R
		b.Pix[i+1] = c.G
		b.Pix[i+2] = c.B
		b.Pix[i+3] = 255
	}
}

// FromImage copies a decoded image into a fresh buffer.
func FromImage(img image.Image) *Buffer {
	bounds := img.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return &Buffer{Width: bounds.Dx(), Height: bounds.Dy(), Pix: dst.Pix}
}

// ToImage wraps the buffer in an image.NRGBA sharing the same backing slice.
func (b *Buffer) ToImage() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.Pix,
		Stride: b.Width * 4,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}
