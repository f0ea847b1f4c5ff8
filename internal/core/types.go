package core

// Size describes the dimensions of a grid.
type Size struct {
	W int
	H int
}

// Contains reports whether (x, y) lies inside [0, W) x [0, H).
func (s Size) Contains(x, y int) bool {
	return x >= 0 && x < s.W && y >= 0 && y < s.H
}

// Area returns the number of cells.
func (s Size) Area() int { return s.W * s.H }

// Point is an integer grid coordinate.
type Point struct {
	X int
	Y int
}
