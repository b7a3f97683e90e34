package removal

import (
	"fmt"

	"github.com/ThatsRight-ItsTJ/convec-api/pixel"
)

// RemoveColor makes every pixel transparent whose channels all lie within
// tol of target. O(pixels), deterministic.
func RemoveColor(buf *pixel.Buffer, target pixel.RGB, tol float64) *pixel.Buffer {
	for i := 0; i < len(buf.Pix); i += 4 {
		c := pixel.RGB{R: buf.Pix[i], G: buf.Pix[i+1], B: buf.Pix[i+2]}
		if c.WithinChannelTolerance(target, tol) {
			buf.Pix[i+3] = 0
		}
	}
	return buf
}

// RemoveFuzzy fades pixels out in proportion to their Euclidean distance from
// target: a pixel at distance d < tol gets alpha 255*d/tol, so pixels closer
// to the target fade out more. Pixels at or beyond the tolerance radius are
// left untouched.
func RemoveFuzzy(buf *pixel.Buffer, target pixel.RGB, tol float64) *pixel.Buffer {
	if tol <= 0 {
		return buf
	}
	for i := 0; i < len(buf.Pix); i += 4 {
		c := pixel.RGB{R: buf.Pix[i], G: buf.Pix[i+1], B: buf.Pix[i+2]}
		d := c.Distance(target)
		if d >= tol {
			continue
		}
		buf.Pix[i+3] = uint8(255 * d / tol)
	}
	return buf
}

// RemoveChroma makes every pixel transparent whose hue lies within hueTol
// degrees (circular) of targetHue and whose saturation is at least satMin.
// Low-saturation pixels never match, so greys survive a green screen pull.
func RemoveChroma(buf *pixel.Buffer, targetHue, hueTol, satMin float64) *pixel.Buffer {
	for i := 0; i < len(buf.Pix); i += 4 {
		c := pixel.RGB{R: buf.Pix[i], G: buf.Pix[i+1], B: buf.Pix[i+2]}
		hsl := c.ToHSL()
		if pixel.HueDistance(hsl.H, targetHue) <= hueTol && hsl.S >= satMin {
			buf.Pix[i+3] = 0
		}
	}
	return buf
}

// FloodFill clears the alpha of the 4-connected region around the seed whose
// colors lie within tol (Euclidean) of the seed's own color. An out-of-bounds
// seed is a no-op. The visited array bounds the walk to one pass per pixel.
func FloodFill(buf *pixel.Buffer, startX, startY int, tol float64) *pixel.Buffer {
	if !buf.In(startX, startY) {
		return buf
	}

	r, g, b, _ := buf.RGBAAt(startX, startY)
	seed := pixel.RGB{R: r, G: g, B: b}

	visited := make([]bool, buf.Width*buf.Height)
	stack := []pixel.Point{pixel.Pt(startX, startY)}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !buf.In(p.X, p.Y) {
			continue
		}
		idx := p.Y*buf.Width + p.X
		if visited[idx] {
			continue
		}
		visited[idx] = true

		r, g, b, _ := buf.RGBAAt(p.X, p.Y)
		if (pixel.RGB{R: r, G: g, B: b}).Distance(seed) > tol {
			continue
		}
		buf.SetAlpha(p.X, p.Y, 0)

		stack = append(stack,
			pixel.Pt(p.X+1, p.Y),
			pixel.Pt(p.X-1, p.Y),
			pixel.Pt(p.X, p.Y+1),
			pixel.Pt(p.X, p.Y-1),
		)
	}
	return buf
}

// RemoveEdges is a two-pass removal that fades region edges instead of
// cutting hard. Pass 1 flags every pixel within tol of target as a
// candidate; pass 2 scales each candidate's alpha by how many of its 8
// neighbors are not candidates, so pixels deep inside the background vanish
// while edge pixels keep partial opacity. Border rows and columns are
// skipped.
func RemoveEdges(buf *pixel.Buffer, target pixel.RGB, tol float64) *pixel.Buffer {
	w, h := buf.Width, buf.Height
	candidate := make([]bool, w*h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := buf.RGBAAt(x, y)
			c := pixel.RGB{R: r, G: g, B: b}
			candidate[y*w+x] = c.WithinChannelTolerance(target, tol)
		}
	}

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			if !candidate[y*w+x] {
				continue
			}
			n := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					if candidate[(y+dy)*w+x+dx] {
						n++
					}
				}
			}
			a := buf.AlphaAt(x, y)
			buf.SetAlpha(x, y, uint8(float64(a)*float64(8-n)/8))
		}
	}
	return buf
}

// ReplaceColor composites the buffer over a solid background. The result is
// fully opaque.
func ReplaceColor(buf *pixel.Buffer, bg pixel.RGB) *pixel.Buffer {
	for i := 0; i < len(buf.Pix); i += 4 {
		a := float64(buf.Pix[i+3]) / 255
		buf.Pix[i] = uint8(float64(buf.Pix[i])*a + float64(bg.R)*(1-a))
		buf.Pix[i+1] = uint8(float64(buf.Pix[i+1])*a + float64(bg.G)*(1-a))
		buf.Pix[i+2] = uint8(float64(buf.Pix[i+2])*a + float64(bg.B)*(1-a))
		buf.Pix[i+3] = 255
	}
	return buf
}

// ReplaceImage composites the buffer over a background buffer of identical
// dimensions.
func ReplaceImage(buf, bg *pixel.Buffer) (*pixel.Buffer, error) {
	if err := bg.Validate(); err != nil {
		return nil, fmt.Errorf("background: %w", err)
	}
	if bg.Width != buf.Width || bg.Height != buf.Height {
		return nil, fmt.Errorf("%w: background %dx%d does not match %dx%d",
			ErrBadOption, bg.Width, bg.Height, buf.Width, buf.Height)
	}

	for i := 0; i < len(buf.Pix); i += 4 {
		a := float64(buf.Pix[i+3]) / 255
		buf.Pix[i] = uint8(float64(buf.Pix[i])*a + float64(bg.Pix[i])*(1-a))
		buf.Pix[i+1] = uint8(float64(buf.Pix[i+1])*a + float64(bg.Pix[i+1])*(1-a))
		buf.Pix[i+2] = uint8(float64(buf.Pix[i+2])*a + float64(bg.Pix[i+2])*(1-a))
		buf.Pix[i+3] = 255
	}
	return buf, nil
}
