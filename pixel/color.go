package pixel

import (
	"fmt"
	"math"
	"strings"
)

// RGB is an 8-bit color triple derived from a buffer sample.
type RGB struct {
	R, G, B uint8
}

// HSL holds hue in [0,360), saturation and lightness in [0,1].
type HSL struct {
	H, S, L float64
}

// ParseHex parses "#rgb" or "#rrggbb" (leading '#' optional).
func ParseHex(s string) (RGB, error) {
	s = strings.TrimPrefix(s, "#")
	var c RGB
	switch len(s) {
	case 3:
		_, err := fmt.Sscanf(s, "%1x%1x%1x", &c.R, &c.G, &c.B)
		if err != nil {
			return RGB{}, fmt.Errorf("parse hex color %q: %w", s, err)
		}
		c.R *= 17
		c.G *= 17
		c.B *= 17
	case 6:
		_, err := fmt.Sscanf(s, "%02x%02x%02x", &c.R, &c.G, &c.B)
		if err != nil {
			return RGB{}, fmt.Errorf("parse hex color %q: %w", s, err)
		}
	default:
		return RGB{}, fmt.Errorf("parse hex color %q: want 3 or 6 digits", s)
	}
	return c, nil
}

// Hex returns the "#rrggbb" form.
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// Distance returns the Euclidean distance to q in RGB space.
func (c RGB) Distance(q RGB) float64 {
	dr := float64(c.R) - float64(q.R)
	dg := float64(c.G) - float64(q.G)
	db := float64(c.B) - float64(q.B)
	return math.Sqrt(dr*dr + dg*dg + db*db)
}

// WithinChannelTolerance reports whether every channel of q differs from c
// by at most tol.
func (c RGB) WithinChannelTolerance(q RGB, tol float64) bool {
	return math.Abs(float64(c.R)-float64(q.R)) <= tol &&
		math.Abs(float64(c.G)-float64(q.G)) <= tol &&
		math.Abs(float64(c.B)-float64(q.B)) <= tol
}

// ToHSL converts to hue/saturation/lightness.
func (c RGB) ToHSL() HSL {
	r := float64(c.R) / 255
	g := float64(c.G) / 255
	b := float64(c.B) / 255

	maxc := math.Max(r, math.Max(g, b))
	minc := math.Min(r, math.Min(g, b))
	l := (maxc + minc) / 2

	if maxc == minc {
		return HSL{H: 0, S: 0, L: l}
	}

	d := maxc - minc
	var s float64
	if l > 0.5 {
		s = d / (2 - maxc - minc)
	} else {
		s = d / (maxc + minc)
	}

	var h float64
	switch maxc {
	case r:
		h = (g - b) / d
		if g < b {
			h += 6
		}
	case g:
		h = (b-r)/d + 2
	default:
		h = (r-g)/d + 4
	}
	h *= 60

	return HSL{H: h, S: s, L: l}
}

// HueDistance returns the circular distance between two hues in degrees,
// always in [0,180].
func HueDistance(a, b float64) float64 {
	d := math.Mod(math.Abs(a-b), 360)
	if d > 180 {
		d = 360 - d
	}
	return d
}
