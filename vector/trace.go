package vector

import "github.com/ThatsRight-ItsTJ/convec-api/pixel"

// Contour is one traced closed boundary of a connected foreground region.
// The first point is the start pixel; closure back to it is implicit.
type Contour []pixel.Point

// Cardinal step offsets: right, down, left, up. The tracer rotates through
// these starting from its current heading.
var (
	stepX = [4]int{1, 0, -1, 0}
	stepY = [4]int{0, 1, 0, -1}
)

// Trace scans the bitmap row-major and extracts one boundary contour per
// connected foreground region, in the order their start pixels are first
// encountered. Traces of 2 or fewer points are discarded as degenerate.
func Trace(bm *Bitmap) []Contour {
	visited := make([]uint8, bm.Width*bm.Height)
	var contours []Contour

	for y := 0; y < bm.Height; y++ {
		for x := 0; x < bm.Width; x++ {
			if bm.Bits[y*bm.Width+x] != 1 || visited[y*bm.Width+x] != 0 {
				continue
			}
			c := traceBoundary(bm, x, y, visited)
			// Mark the whole region so interior pixels do not restart
			// the trace on the next scan rows.
			markRegion(bm, x, y, visited)
			if len(c) > 2 {
				contours = append(contours, c)
			}
		}
	}
	return contours
}

// traceBoundary walks the region boundary starting at (sx, sy), heading
// rightward. At each step it tries the four cardinal directions in rotation
// order from the current heading and advances to the first in-bounds
// foreground neighbor. The walk ends back at the start, when no neighbor is
// foreground, or after width*height steps (cycle safety).
func traceBoundary(bm *Bitmap, sx, sy int, visited []uint8) Contour {
	contour := Contour{pixel.Pt(sx, sy)}
	visited[sy*bm.Width+sx] = 1

	x, y := sx, sy
	dir := 0
	maxSteps := bm.Width * bm.Height

	for step := 0; step < maxSteps; step++ {
		advanced := false
		for i := 0; i < 4; i++ {
			d := (dir + i) % 4
			nx, ny := x+stepX[d], y+stepY[d]
			if bm.Get(nx, ny) {
				x, y, dir = nx, ny, d
				advanced = true
				break
			}
		}
		if !advanced {
			break
		}
		if x == sx && y == sy {
			break
		}
		contour = append(contour, pixel.Pt(x, y))
		visited[y*bm.Width+x] = 1
	}
	return contour
}

// markRegion flood-marks the 4-connected foreground region containing
// (sx, sy) as visited.
func markRegion(bm *Bitmap, sx, sy int, visited []uint8) {
	stack := []pixel.Point{pixel.Pt(sx, sy)}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !bm.Get(p.X, p.Y) {
			continue
		}
		idx := p.Y*bm.Width + p.X
		if visited[idx] == 2 {
			continue
		}
		visited[idx] = 2

		stack = append(stack,
			pixel.Pt(p.X+1, p.Y),
			pixel.Pt(p.X-1, p.Y),
			pixel.Pt(p.X, p.Y+1),
			pixel.Pt(p.X, p.Y-1),
		)
	}
}
