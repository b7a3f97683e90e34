package vector

import "math"

// FPoint is a contour vertex after smoothing and scaling.
type FPoint struct {
	X, Y float64
}

// Smooth applies 3-point centroid averaging to interior vertices whose turn
// is sharper than the angular tolerance: when the angle between the incoming
// and outgoing edges falls below pi-tolerance, the vertex is replaced by the
// centroid of itself and its two neighbors. Endpoints are kept, no vertex is
// ever removed or reordered. This is a jaggedness reducer, not a curve fit.
func Smooth(c Contour, tolerance float64) []FPoint {
	out := make([]FPoint, len(c))
	for i, p := range c {
		out[i] = FPoint{X: float64(p.X), Y: float64(p.Y)}
	}
	if len(c) < 3 {
		return out
	}

	limit := math.Pi - tolerance
	for i := 1; i < len(c)-1; i++ {
		prev, cur, next := c[i-1], c[i], c[i+1]

		ax := float64(prev.X - cur.X)
		ay := float64(prev.Y - cur.Y)
		bx := float64(next.X - cur.X)
		by := float64(next.Y - cur.Y)

		la := math.Hypot(ax, ay)
		lb := math.Hypot(bx, by)
		if la == 0 || lb == 0 {
			continue
		}

		cos := (ax*bx + ay*by) / (la * lb)
		cos = math.Max(-1, math.Min(1, cos))
		if math.Acos(cos) >= limit {
			continue
		}

		out[i] = FPoint{
			X: float64(prev.X+cur.X+next.X) / 3,
			Y: float64(prev.Y+cur.Y+next.Y) / 3,
		}
	}
	return out
}
