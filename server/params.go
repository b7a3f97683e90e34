package server

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ThatsRight-ItsTJ/convec-api/pixel"
	"github.com/ThatsRight-ItsTJ/convec-api/removal"
	"github.com/ThatsRight-ItsTJ/convec-api/vector"
)

var errBadParam = errors.New("bad parameter")

// param reads a form field, falling back to the query string.
func param(c *gin.Context, name string) string {
	if v := c.PostForm(name); v != "" {
		return v
	}
	return c.Query(name)
}

func floatParam(c *gin.Context, name string, def float64) (float64, error) {
	v := param(c, name)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("%w %s: %v", errBadParam, name, err)
	}
	return f, nil
}

func intParam(c *gin.Context, name string, def int) (int, error) {
	v := param(c, name)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w %s: %v", errBadParam, name, err)
	}
	return n, nil
}

func boolParam(c *gin.Context, name string, def bool) (bool, error) {
	v := param(c, name)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%w %s: %v", errBadParam, name, err)
	}
	return b, nil
}

func colorParam(c *gin.Context, name string, def pixel.RGB) (pixel.RGB, error) {
	v := param(c, name)
	if v == "" {
		return def, nil
	}
	rgb, err := pixel.ParseHex(v)
	if err != nil {
		return pixel.RGB{}, fmt.Errorf("%w %s: %v", errBadParam, name, err)
	}
	return rgb, nil
}

// removalOptions assembles removal.Options from the request, starting from
// the documented defaults.
func removalOptions(c *gin.Context) (removal.Options, error) {
	opts := removal.DefaultOptions()
	if m := param(c, "method"); m != "" {
		opts.Method = m
	}

	var err error
	if opts.TargetColor, err = colorParam(c, "targetColor", opts.TargetColor); err != nil {
		return opts, err
	}
	if opts.Tolerance, err = floatParam(c, "tolerance", opts.Tolerance); err != nil {
		return opts, err
	}
	if opts.TargetHue, err = floatParam(c, "targetHue", opts.TargetHue); err != nil {
		return opts, err
	}
	if opts.HueTolerance, err = floatParam(c, "hueTolerance", opts.HueTolerance); err != nil {
		return opts, err
	}
	if opts.SaturationMin, err = floatParam(c, "saturationMin", opts.SaturationMin); err != nil {
		return opts, err
	}
	if opts.StartX, err = intParam(c, "startX", 0); err != nil {
		return opts, err
	}
	if opts.StartY, err = intParam(c, "startY", 0); err != nil {
		return opts, err
	}
	return opts, opts.Validate()
}

// vectorOptions assembles vector.Options from the request.
func vectorOptions(c *gin.Context) (vector.Options, error) {
	opts := vector.DefaultOptions()

	threshold, err := intParam(c, "threshold", int(opts.Threshold))
	if err != nil {
		return opts, err
	}
	if threshold < 0 || threshold > 255 {
		return opts, fmt.Errorf("%w: threshold %d", vector.ErrBadOption, threshold)
	}
	opts.Threshold = uint8(threshold)

	if opts.TurdSize, err = intParam(c, "turdsize", opts.TurdSize); err != nil {
		return opts, err
	}
	if opts.OptCurve, err = boolParam(c, "optcurve", opts.OptCurve); err != nil {
		return opts, err
	}
	if opts.OptTolerance, err = floatParam(c, "opttolerance", opts.OptTolerance); err != nil {
		return opts, err
	}
	if opts.Scale, err = floatParam(c, "scale", opts.Scale); err != nil {
		return opts, err
	}
	if f := param(c, "fillColor"); f != "" {
		opts.FillColor = f
	}
	return opts, opts.Validate()
}
