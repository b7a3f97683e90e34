package vector

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/ThatsRight-ItsTJ/convec-api/pixel"
)

// PathResult is the bare path-data form of a vectorization, for embedding in
// an existing document.
type PathResult struct {
	Paths    string  `json:"paths"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Contours int     `json:"contours"`
}

// Vectorize runs the full pipeline and returns one scaled point list per
// surviving contour, in scan order. A buffer with no foreground pixels
// yields an empty slice, not an error.
func Vectorize(buf *pixel.Buffer, opts Options) ([][]FPoint, error) {
	if err := buf.Validate(); err != nil {
		return nil, err
	}
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	bm := Binarize(buf, opts.Threshold)
	var paths [][]FPoint
	for _, c := range Trace(bm) {
		if len(c) < opts.TurdSize {
			continue
		}
		var pts []FPoint
		if opts.OptCurve {
			pts = Smooth(c, opts.OptTolerance)
		} else {
			pts = make([]FPoint, len(c))
			for i, p := range c {
				pts[i] = FPoint{X: float64(p.X), Y: float64(p.Y)}
			}
		}
		if opts.Scale != 1 {
			for i := range pts {
				pts[i].X *= opts.Scale
				pts[i].Y *= opts.Scale
			}
		}
		paths = append(paths, pts)
	}
	return paths, nil
}

// ToSVG returns a complete SVG document with one path element per contour,
// sized to the scaled bitmap dimensions and filled with the configured color
// under the even-odd rule.
func ToSVG(buf *pixel.Buffer, opts Options) (string, error) {
	paths, err := Vectorize(buf, opts)
	if err != nil {
		return "", err
	}

	w := int(math.Round(float64(buf.Width) * opts.Scale))
	h := int(math.Round(float64(buf.Height) * opts.Scale))

	var out bytes.Buffer
	canvas := svg.New(&out)
	canvas.Startview(w, h, 0, 0, w, h)
	style := fmt.Sprintf(`fill="%s" fill-rule="evenodd"`, opts.FillColor)
	for _, pts := range paths {
		canvas.Path(pathData(pts), style)
	}
	canvas.End()
	return out.String(), nil
}

// ToPathData returns the contours as bare M/L/Z path text, one segment per
// contour joined by spaces, together with the scaled dimensions.
func ToPathData(buf *pixel.Buffer, opts Options) (*PathResult, error) {
	paths, err := Vectorize(buf, opts)
	if err != nil {
		return nil, err
	}

	segments := make([]string, len(paths))
	for i, pts := range paths {
		segments[i] = pathData(pts)
	}
	return &PathResult{
		Paths:    strings.Join(segments, " "),
		Width:    float64(buf.Width) * opts.Scale,
		Height:   float64(buf.Height) * opts.Scale,
		Contours: len(paths),
	}, nil
}

// pathData serializes one contour as "M x y L x y ... Z".
func pathData(pts []FPoint) string {
	var sb strings.Builder
	for i, p := range pts {
		if i == 0 {
			sb.WriteString("M ")
		} else {
			sb.WriteString(" L ")
		}
		sb.WriteString(fmtCoord(p.X))
		sb.WriteByte(' ')
		sb.WriteString(fmtCoord(p.Y))
	}
	sb.WriteString(" Z")
	return sb.String()
}

func fmtCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
