// Package render rasterizes text strings into pixel buffers, for callers
// that want a quick label or watermark without a full font pipeline.
package render

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"strings"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/ThatsRight-ItsTJ/convec-api/pixel"
)

var ErrBadOption = errors.New("invalid render option")

// Options configures text rasterization.
type Options struct {
	// Size is an integer scale factor applied to the 7x13 base face.
	Size int
	// Foreground is the glyph color.
	Foreground pixel.RGB
	// Background fills the buffer when set; nil leaves it transparent.
	Background *pixel.RGB
	// Padding is the margin around the text in base-face pixels.
	Padding int
}

// DefaultOptions returns black text at 2x on a transparent background.
func DefaultOptions() Options {
	return Options{Size: 2, Padding: 4}
}

// Validate checks option ranges.
func (o Options) Validate() error {
	if o.Size < 1 || o.Size > 16 {
		return fmt.Errorf("%w: size %d", ErrBadOption, o.Size)
	}
	if o.Padding < 0 {
		return fmt.Errorf("%w: padding %d", ErrBadOption, o.Padding)
	}
	return nil
}

// Measure returns the unscaled pixel dimensions of the text, one line per
// newline, without rasterizing it.
func Measure(text string) (w, h int) {
	face := basicfont.Face7x13
	lineHeight := face.Metrics().Height.Ceil()
	for _, line := range strings.Split(text, "\n") {
		lw := font.MeasureString(face, line).Ceil()
		if lw > w {
			w = lw
		}
		h += lineHeight
	}
	return w, h
}

// Text rasterizes the string into a fresh buffer. Lines are split on
// newlines and drawn top to bottom.
func Text(text string, opts Options) (*pixel.Buffer, error) {
	if text == "" {
		return nil, fmt.Errorf("%w: empty text", ErrBadOption)
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	face := basicfont.Face7x13
	metrics := face.Metrics()
	lineHeight := metrics.Height.Ceil()

	tw, th := Measure(text)
	w := tw + 2*opts.Padding
	h := th + 2*opts.Padding

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if opts.Background != nil {
		bg := *opts.Background
		for i := 0; i < len(dst.Pix); i += 4 {
			dst.Pix[i] = bg.R
			dst.Pix[i+1] = bg.G
			dst.Pix[i+2] = bg.B
			dst.Pix[i+3] = 255
		}
	}

	fg := image.NewUniform(color.NRGBA{
		R: opts.Foreground.R,
		G: opts.Foreground.G,
		B: opts.Foreground.B,
		A: 255,
	})
	d := font.Drawer{Dst: dst, Src: fg, Face: face}
	for i, line := range strings.Split(text, "\n") {
		d.Dot = fixed.P(opts.Padding, opts.Padding+metrics.Ascent.Ceil()+i*lineHeight)
		d.DrawString(line)
	}

	if opts.Size == 1 {
		return &pixel.Buffer{Width: w, Height: h, Pix: dst.Pix}, nil
	}

	scaled := image.NewNRGBA(image.Rect(0, 0, w*opts.Size, h*opts.Size))
	draw.NearestNeighbor.Scale(scaled, scaled.Bounds(), dst, dst.Bounds(), draw.Src, nil)
	return &pixel.Buffer{Width: w * opts.Size, Height: h * opts.Size, Pix: scaled.Pix}, nil
}
