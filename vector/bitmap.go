// Package vector converts an RGBA pixel buffer into closed vector contours
// and emits them as SVG path geometry. The pipeline is strictly sequential:
// binarize, trace, filter, smooth, emit. Every stage is deterministic for a
// fixed input and option set.
package vector

import "github.com/ThatsRight-ItsTJ/convec-api/pixel"

// Bitmap is a width*height foreground mask, one byte per cell, 1 = ink.
// Stored flat, indexed y*Width+x.
type Bitmap struct {
	Width  int
	Height int
	Bits   []uint8
}

// Get reports whether (x, y) is a foreground cell. Out-of-bounds reads are
// background.
func (bm *Bitmap) Get(x, y int) bool {
	if x < 0 || x >= bm.Width || y < 0 || y >= bm.Height {
		return false
	}
	return bm.Bits[y*bm.Width+x] == 1
}

// Set marks (x, y) as foreground.
func (bm *Bitmap) Set(x, y int) {
	bm.Bits[y*bm.Width+x] = 1
}

// Binarize thresholds the buffer into a foreground mask. A pixel is
// foreground when it is mostly opaque (alpha >= 128) and its luminance
// (0.299R + 0.587G + 0.114B) is at or below threshold. Transparent pixels
// are always background regardless of color.
func Binarize(buf *pixel.Buffer, threshold uint8) *Bitmap {
	bm := &Bitmap{
		Width:  buf.Width,
		Height: buf.Height,
		Bits:   make([]uint8, buf.Width*buf.Height),
	}

	for i, j := 0, 0; i < len(buf.Pix); i, j = i+4, j+1 {
		if buf.Pix[i+3] < 128 {
			continue
		}
		lum := 0.299*float64(buf.Pix[i]) + 0.587*float64(buf.Pix[i+1]) + 0.114*float64(buf.Pix[i+2])
		if lum <= float64(threshold) {
			bm.Bits[j] = 1
		}
	}
	return bm
}
