package math

// Rect is an axis-aligned rectangle in window pixels with a top-left origin
// and Y growing downward.
type Rect struct {
	X, Y, W, H float32
}

// RectFromMinMax builds a rectangle from two corners.
func RectFromMinMax(minX, minY, maxX, maxY float32) Rect {
	return Rect{minX, minY, maxX - minX, maxY - minY}
}

// Contains checks if a point is inside the rectangle.
func (r Rect) Contains(x, y float32) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Degenerate reports whether the rectangle has no drawable area.
func (r Rect) Degenerate() bool {
	return r.W <= 0 || r.H <= 0
}

// Aspect returns W/H. Callers must check Degenerate first.
func (r Rect) Aspect() float32 {
	return r.W / r.H
}

// MaxX returns the right edge.
func (r Rect) MaxX() float32 { return r.X + r.W }

// MaxY returns the bottom edge.
func (r Rect) MaxY() float32 { return r.Y + r.H }

// Intersect returns the overlap of r and other (zero-sized when disjoint).
func (r Rect) Intersect(other Rect) Rect {
	minX := max(r.X, other.X)
	minY := max(r.Y, other.Y)
	maxX := min(r.MaxX(), other.MaxX())
	maxY := min(r.MaxY(), other.MaxY())
	if maxX < minX {
		maxX = minX
	}
	if maxY < minY {
		maxY = minY
	}
	return RectFromMinMax(minX, minY, maxX, maxY)
}
