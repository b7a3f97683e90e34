package pixel

import (
	"errors"
	"image"
	"image/draw"

	"github.com/nfnt/resize"
	xdraw "golang.org/x/image/draw"
)

var ErrNoForeground = errors.New("no foreground pixels above alpha threshold")

// HasUsefulAlpha reports whether the buffer carries any transparency at all.
// A single non-opaque sample counts: the image already has a cut-out.
func (b *Buffer) HasUsefulAlpha() bool {
	for i := 3; i < len(b.Pix); i += 4 {
		if b.Pix[i] != 255 {
			return true
		}
	}
	return false
}

// ResizeWithinMax scales the buffer down so its longest side is at most
// maxSize, preserving aspect ratio. Buffers already within the limit are
// returned unchanged.
func (b *Buffer) ResizeWithinMax(maxSize int) *Buffer {
	longest := b.Width
	if b.Height > longest {
		longest = b.Height
	}
	if longest <= maxSize {
		return b
	}

	scale := float64(maxSize) / float64(longest)
	newW := int(float64(b.Width) * scale)
	newH := int(float64(b.Height) * scale)

	resized := resize.Resize(uint(newW), uint(newH), b.ToImage(), resize.Lanczos3)
	return FromImage(resized)
}

// ScaleTo resamples the buffer to exactly width x height.
func (b *Buffer) ScaleTo(width, height int) *Buffer {
	dst := image.NewNRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), b.ToImage(), b.ToImage().Bounds(), xdraw.Src, nil)
	return &Buffer{Width: width, Height: height, Pix: dst.Pix}
}

// AlphaBBox returns the bounding box of all pixels whose alpha exceeds
// threshold*255. Returns ErrNoForeground when nothing qualifies.
func (b *Buffer) AlphaBBox(threshold float64) (image.Rectangle, error) {
	th := uint8(threshold * 255)
	minX, minY := b.Width, b.Height
	maxX, maxY := 0, 0
	found := false

	for y := 0; y < b.Height; y++ {
		row := y * b.Width * 4
		for x := 0; x < b.Width; x++ {
			if b.Pix[row+x*4+3] > th {
				found = true
				if x < minX {
					minX = x
				}
				if y < minY {
					minY = y
				}
				if x > maxX {
					maxX = x
				}
				if y > maxY {
					maxY = y
				}
			}
		}
	}

	if !found {
		return image.Rectangle{}, ErrNoForeground
	}
	return image.Rect(minX, minY, maxX+1, maxY+1), nil
}

// CropToForeground trims the buffer to the alpha bounding box. An all
// transparent buffer is returned unchanged.
func (b *Buffer) CropToForeground(threshold float64) *Buffer {
	bbox, err := b.AlphaBBox(threshold)
	if err != nil {
		return b
	}

	dst := image.NewNRGBA(image.Rect(0, 0, bbox.Dx(), bbox.Dy()))
	draw.Draw(dst, dst.Bounds(), b.ToImage(), bbox.Min, draw.Src)
	return &Buffer{Width: bbox.Dx(), Height: bbox.Dy(), Pix: dst.Pix}
}
