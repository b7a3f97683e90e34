package pixel

// Point is an integer pixel coordinate, 0-indexed, origin top-left.
type Point struct {
	X, Y int
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}
