package draft

import "strconv"

// ObjectID identifies a geometric object. It is unique across the whole
// drawing, not per layer.
type ObjectID int64

// String returns the decimal form of the id.
func (id ObjectID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// ClosedEpsilon is the world distance under which the first and last
// vertex of a path are considered coincident.
const ClosedEpsilon = 1e-6

// Object is the capability set every geometric object provides.
//
// Vertices returns the ordered vertex sequence; callers must not modify it.
type Object interface {
	ID() ObjectID
	Kind() string
	Vertices() []Point
	IsClosed() bool
	BoundingBox() Rect
	// Segments returns the consecutive vertex pairs that make up the
	// outline, in order. Single-vertex objects have none.
	Segments() []Line
	Clone() Object
}

// BoundsOf returns the bounding box of pts. It returns the zero Rect and
// false when pts is empty.
func BoundsOf(pts []Point) (Rect, bool) {
	if len(pts) == 0 {
		return Rect{}, false
	}
	r := Rect{Min: pts[0], Max: pts[0]}
	for _, p := range pts[1:] {
		r.Min.X = min(r.Min.X, p.X)
		r.Min.Y = min(r.Min.Y, p.Y)
		r.Max.X = max(r.Max.X, p.X)
		r.Max.Y = max(r.Max.Y, p.Y)
	}
	return r, true
}
