// Package geometry provides the rectangle primitives shared by the 2D
// packing algorithms: overlap tests, containment, and orientation
// enumeration. All coordinates are integers in millimeter units, so a
// bottom-left-fill scan can use plain integer arithmetic.
package geometry

// Rect is an axis-aligned rectangle with integer millimeter coordinates.
type Rect struct {
	X, Y, W, H int
}

// Right returns the x-coordinate of the rectangle's right edge.
func (r Rect) Right() int { return r.X + r.W }

// Top returns the y-coordinate of the rectangle's top edge (y grows
// upward, matching sheet coordinates where (0,0) is the bottom-left corner).
func (r Rect) Top() int { return r.Y + r.H }

// Area returns the rectangle's area.
func (r Rect) Area() int { return r.W * r.H }

// Contains reports whether r fully contains other.
func (r Rect) Contains(other Rect) bool {
	return r.X <= other.X && r.Y <= other.Y &&
		r.Right() >= other.Right() && r.Top() >= other.Top()
}

// Overlaps reports whether r and other intersect after each is inflated
// by kerf on every side. kerf == 0 means plain rectangle intersection.
func Overlaps(r, other Rect, kerf int) bool {
	ax0, ay0 := r.X-kerf, r.Y-kerf
	ax1, ay1 := r.Right()+kerf, r.Top()+kerf
	bx0, by0 := other.X-kerf, other.Y-kerf
	bx1, by1 := other.Right()+kerf, other.Top()+kerf
	return ax0 < bx1 && ax1 > bx0 && ay0 < by1 && ay1 > by0
}

// FitsWithin reports whether a w x h rectangle placed at (x, y) stays
// within the bounds of a sheet/bin of size (boundW, boundH).
func FitsWithin(x, y, w, h, boundW, boundH int) bool {
	return x >= 0 && y >= 0 && x+w <= boundW && y+h <= boundH
}

// Orientation is one candidate (width, height) pairing for a piece.
type Orientation struct {
	W, H    int
	Rotated bool
}

// Orientations enumerates the natural orientation, and — when rotation
// is allowed and the piece is not square — the 90-degree rotation.
func Orientations(w, h int, canRotate, allowRotation bool) []Orientation {
	orientations := []Orientation{{W: w, H: h, Rotated: false}}
	if allowRotation && canRotate && w != h {
		orientations = append(orientations, Orientation{W: h, H: w, Rotated: true})
	}
	return orientations
}
