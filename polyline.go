package draft

import "slices"

// KindPolyline is the Object.Kind of *Polyline.
const KindPolyline = "polyline"

// Polyline is an open or closed path through an ordered vertex sequence.
// A closed polyline is a polygon.
//
// Polyline is not safe for concurrent mutation.
type Polyline struct {
	id       ObjectID
	vertices []Point
	closed   bool

	bounds      Rect
	boundsValid bool
}

var _ Object = (*Polyline)(nil)

// NewPolyline creates a polyline from a copy of vertices. closed marks the
// path closed even when its ends do not coincide. At least one vertex is
// required.
func NewPolyline(id ObjectID, vertices []Point, closed bool) (*Polyline, error) {
	if len(vertices) == 0 {
		return nil, &DegenerateGeometryError{Kind: KindPolyline, Vertices: 0, Min: 1}
	}
	return &Polyline{
		id:       id,
		vertices: slices.Clone(vertices),
		closed:   closed,
	}, nil
}

// ID returns the object id.
func (p *Polyline) ID() ObjectID { return p.id }

// Kind returns KindPolyline.
func (p *Polyline) Kind() string { return KindPolyline }

// Vertices returns the vertex sequence. The slice is owned by p.
func (p *Polyline) Vertices() []Point { return p.vertices }

// Len returns the number of vertices.
func (p *Polyline) Len() int { return len(p.vertices) }

// ExplicitlyClosed reports whether the closed flag was set at construction.
func (p *Polyline) ExplicitlyClosed() bool { return p.closed }

// IsClosed reports whether the path returns to its start: either the closed
// flag is set or the last vertex lies within ClosedEpsilon of the first.
func (p *Polyline) IsClosed() bool {
	if p.closed {
		return true
	}
	n := len(p.vertices)
	return n > 1 && p.vertices[0].NearlyEqual(p.vertices[n-1], ClosedEpsilon)
}

// BoundingBox returns the axis-aligned bounds of all vertices. The result
// is cached until the next mutation.
func (p *Polyline) BoundingBox() Rect {
	if !p.boundsValid {
		p.bounds, _ = BoundsOf(p.vertices)
		p.boundsValid = true
	}
	return p.bounds
}

// Segments returns consecutive vertex pairs. An explicitly closed polyline
// also yields the closing edge from the last vertex back to the first,
// unless those already coincide.
func (p *Polyline) Segments() []Line {
	n := len(p.vertices)
	if n < 2 {
		return nil
	}
	segs := make([]Line, 0, n)
	for i := 1; i < n; i++ {
		segs = append(segs, Line{P0: p.vertices[i-1], P1: p.vertices[i]})
	}
	if p.closed && !p.vertices[0].NearlyEqual(p.vertices[n-1], ClosedEpsilon) {
		segs = append(segs, Line{P0: p.vertices[n-1], P1: p.vertices[0]})
	}
	return segs
}

// Length returns the total length of all segments.
func (p *Polyline) Length() float64 {
	var total float64
	for _, s := range p.Segments() {
		total += s.Length()
	}
	return total
}

// Area returns the enclosed area of a closed polyline using the shoelace
// formula, or 0 for an open one. The sign is dropped.
func (p *Polyline) Area() float64 {
	if !p.IsClosed() || len(p.vertices) < 3 {
		return 0
	}
	var sum float64
	n := len(p.vertices)
	for i := range n {
		sum += p.vertices[i].Cross(p.vertices[(i+1)%n])
	}
	if sum < 0 {
		sum = -sum
	}
	return sum / 2
}

// AppendVertex adds v at the end of the path.
func (p *Polyline) AppendVertex(v Point) {
	p.vertices = append(p.vertices, v)
	p.boundsValid = false
}

// RemoveVertex deletes the vertex at index i. Removing the only remaining
// vertex fails with a DegenerateGeometryError and leaves p unchanged.
func (p *Polyline) RemoveVertex(i int) error {
	if i < 0 || i >= len(p.vertices) {
		return &IndexError{Index: i, Len: len(p.vertices)}
	}
	if len(p.vertices) == 1 {
		return &DegenerateGeometryError{Kind: KindPolyline, Vertices: 0, Min: 1}
	}
	p.vertices = slices.Delete(p.vertices, i, i+1)
	p.boundsValid = false
	return nil
}

// MoveVertex replaces the vertex at index i with v.
func (p *Polyline) MoveVertex(i int, v Point) error {
	if i < 0 || i >= len(p.vertices) {
		return &IndexError{Index: i, Len: len(p.vertices)}
	}
	p.vertices[i] = v
	p.boundsValid = false
	return nil
}

// Clone returns a deep copy of p with its bounds already computed, so
// concurrent readers of the copy never write the cache.
func (p *Polyline) Clone() Object {
	c := &Polyline{
		id:       p.id,
		vertices: slices.Clone(p.vertices),
		closed:   p.closed,
	}
	c.bounds, _ = BoundsOf(c.vertices)
	c.boundsValid = true
	return c
}
