// Package removal classifies background pixels in an RGBA buffer and encodes
// the decision in the alpha channel. Every operation mutates the buffer in
// place and returns the same reference; validation happens before the first
// write so a failed call never leaves a half-mutated buffer.
package removal

import (
	"errors"
	"fmt"

	"github.com/ThatsRight-ItsTJ/convec-api/pixel"
)

// Recognized method names for Apply.
const (
	MethodColor  = "color"
	MethodFuzzy  = "fuzzy"
	MethodChroma = "chroma"
	MethodFlood  = "flood"
	MethodEdges  = "edges"
)

var (
	ErrUnknownMethod = errors.New("unknown removal method")
	ErrBadOption     = errors.New("invalid removal option")
)

// Options configures one removal call. Zero values are filled in by
// DefaultOptions; the algorithms treat the record as read-only.
type Options struct {
	Method      string
	TargetColor pixel.RGB
	// Tolerance is a per-channel bound for color/edges and an Euclidean
	// radius for fuzzy/flood.
	Tolerance     float64
	TargetHue     float64
	HueTolerance  float64
	SaturationMin float64
	StartX        int
	StartY        int
}

// DefaultOptions returns the option set used when a caller supplies nothing:
// exact white removal with a small tolerance.
func DefaultOptions() Options {
	return Options{
		Method:        MethodColor,
		TargetColor:   pixel.RGB{R: 255, G: 255, B: 255},
		Tolerance:     30,
		TargetHue:     120,
		HueTolerance:  30,
		SaturationMin: 0.3,
	}
}

// Validate checks option ranges. Seed coordinates are deliberately not
// checked here: an out-of-bounds flood seed is a tolerated no-op.
func (o Options) Validate() error {
	switch o.Method {
	case MethodColor, MethodFuzzy, MethodChroma, MethodFlood, MethodEdges:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownMethod, o.Method)
	}
	if o.Tolerance < 0 {
		return fmt.Errorf("%w: tolerance %v", ErrBadOption, o.Tolerance)
	}
	if o.TargetHue < 0 || o.TargetHue >= 360 {
		return fmt.Errorf("%w: target hue %v", ErrBadOption, o.TargetHue)
	}
	if o.HueTolerance < 0 || o.HueTolerance > 180 {
		return fmt.Errorf("%w: hue tolerance %v", ErrBadOption, o.HueTolerance)
	}
	if o.SaturationMin < 0 || o.SaturationMin > 1 {
		return fmt.Errorf("%w: saturation min %v", ErrBadOption, o.SaturationMin)
	}
	return nil
}

// Apply dispatches to the algorithm named by opts.Method. The buffer is
// mutated in place and returned.
func Apply(buf *pixel.Buffer, opts Options) (*pixel.Buffer, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	switch opts.Method {
	case MethodColor:
		return RemoveColor(buf, opts.TargetColor, opts.Tolerance), nil
	case MethodFuzzy:
		return RemoveFuzzy(buf, opts.TargetColor, opts.Tolerance), nil
	case MethodChroma:
		return RemoveChroma(buf, opts.TargetHue, opts.HueTolerance, opts.SaturationMin), nil
	case MethodFlood:
		return FloodFill(buf, opts.StartX, opts.StartY, opts.Tolerance), nil
	case MethodEdges:
		return RemoveEdges(buf, opts.TargetColor, opts.Tolerance), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownMethod, opts.Method)
}
