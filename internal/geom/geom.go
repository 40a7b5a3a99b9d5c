// Package geom holds the small amount of axis-aligned geometry the game needs.
package geom

import "golang.org/x/exp/constraints"

// Number is any integer or floating point type.
type Number interface {
	constraints.Integer | constraints.Float
}

// Rect is an axis-aligned box with its origin at the top-left corner.
type Rect[T Number] struct {
	X, Y T
	W, H T
}

// NewRect creates a rectangle from position and size.
func NewRect[T Number](x, y, w, h T) Rect[T] {
	return Rect[T]{X: x, Y: y, W: w, H: h}
}

// Right returns the x-coordinate of the right edge.
func (r Rect[T]) Right() T {
	return r.X + r.W
}

// Bottom returns the y-coordinate of the bottom edge.
func (r Rect[T]) Bottom() T {
	return r.Y + r.H
}

// Overlaps reports whether r and other share any point. Boxes that only
// touch along an edge count as overlapping.
func (r Rect[T]) Overlaps(other Rect[T]) bool {
	return !(r.Y > other.Bottom() ||
		other.Y > r.Bottom() ||
		r.Right() < other.X ||
		other.Right() < r.X)
}

// Clamp restricts v to [lo, hi].
func Clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
