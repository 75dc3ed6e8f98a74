package board

import "math"

// Viewport is the size of the board surface in cells.
type Viewport struct {
	Width  int
	Height int
}

// Box is the on-screen rectangle of a rendered note.
type Box struct {
	Top    float64
	Left   float64
	Width  float64
	Height float64
}

// Contains reports whether the point lies inside the box. The right and
// bottom edges are exclusive.
func (b Box) Contains(x, y float64) bool {
	return x >= b.Left && x < b.Left+b.Width && y >= b.Top && y < b.Top+b.Height
}

// Offset is the distance from a note's top-left corner to the grab point.
type Offset struct {
	X float64
	Y float64
}

// placement returns a random coordinate in [0, span-size], or 0 when the
// note does not fit.
func placement(r float64, span, size int) float64 {
	room := float64(span - size)
	if room <= 0 {
		return 0
	}
	return math.Min(r*room, room)
}
