package vector

import (
	"errors"
	"fmt"

	"github.com/ThatsRight-ItsTJ/convec-api/pixel"
)

var ErrBadOption = errors.New("invalid vectorization option")

// Options configures one vectorization call.
type Options struct {
	// Threshold is the maximum luminance of a foreground pixel.
	Threshold uint8
	// TurdSize is the minimum point count for a contour to survive the
	// speckle filter.
	TurdSize int
	// OptCurve enables centroid smoothing of sharp turns.
	OptCurve bool
	// OptTolerance is the smoothing angular tolerance in radians.
	OptTolerance float64
	// Scale multiplies every emitted coordinate and the output dimensions.
	Scale float64
	// FillColor is the path fill for full SVG output, "#rrggbb".
	FillColor string
}

// DefaultOptions returns the documented defaults: threshold 128, turdsize 5,
// smoothing on with tolerance 1, scale 1, solid black fill.
func DefaultOptions() Options {
	return Options{
		Threshold:    128,
		TurdSize:     5,
		OptCurve:     true,
		OptTolerance: 1,
		Scale:        1,
		FillColor:    "#000000",
	}
}

// Validate checks option ranges and the fill color syntax.
func (o Options) Validate() error {
	if o.TurdSize < 0 {
		return fmt.Errorf("%w: turdsize %d", ErrBadOption, o.TurdSize)
	}
	if o.OptTolerance < 0 {
		return fmt.Errorf("%w: opttolerance %v", ErrBadOption, o.OptTolerance)
	}
	if o.Scale <= 0 {
		return fmt.Errorf("%w: scale %v", ErrBadOption, o.Scale)
	}
	if _, err := pixel.ParseHex(o.FillColor); err != nil {
		return fmt.Errorf("%w: %v", ErrBadOption, err)
	}
	return nil
}
