package tool

import (
	"github.com/gogpu/draft"
)

// Builder turns the vertices collected by a session into an object. A
// builder describes one tool variant; the state machine is the same for
// every shape.
type Builder interface {
	// Name is the registry name of the tool.
	Name() string
	// MinVertices is the fewest committed vertices a finish accepts.
	MinVertices(closed bool) int
	// MaxVertices is the vertex count at which the session finishes on its
	// own, or 0 for no limit.
	MaxVertices() int
	// Validate reports whether vertices can build an object, before an
	// object id is allocated.
	Validate(vertices []draft.Point, closed bool) error
	// Build creates the object. vertices is owned by the caller.
	Build(id draft.ObjectID, vertices []draft.Point, closed bool) (draft.Object, error)
}

// Polyline builds open polylines (two or more vertices) and closed
// polygons (three or more).
type Polyline struct{}

// Name returns "polyline".
func (Polyline) Name() string { return "polyline" }

// MinVertices returns 3 for a closed polygon and 2 otherwise.
func (Polyline) MinVertices(closed bool) int {
	if closed {
		return 3
	}
	return 2
}

// MaxVertices returns 0; polylines take any number of vertices.
func (Polyline) MaxVertices() int { return 0 }

// Validate checks the vertex count.
func (b Polyline) Validate(vertices []draft.Point, closed bool) error {
	if need := b.MinVertices(closed); len(vertices) < need {
		return &draft.DegenerateGeometryError{Kind: b.Name(), Vertices: len(vertices), Min: need}
	}
	return nil
}

// Build returns a *draft.Polyline.
func (b Polyline) Build(id draft.ObjectID, vertices []draft.Point, closed bool) (draft.Object, error) {
	if err := b.Validate(vertices, closed); err != nil {
		return nil, err
	}
	return draft.NewPolyline(id, vertices, closed)
}

// Rectangle builds an axis-aligned closed rectangle from two opposite
// corners. The session finishes by itself on the second corner.
type Rectangle struct{}

// Name returns "rectangle".
func (Rectangle) Name() string { return "rectangle" }

// MinVertices returns 2.
func (Rectangle) MinVertices(bool) int { return 2 }

// MaxVertices returns 2.
func (Rectangle) MaxVertices() int { return 2 }

// Validate requires two corners that span a non-zero area.
func (b Rectangle) Validate(vertices []draft.Point, _ bool) error {
	if len(vertices) != 2 {
		return &draft.DegenerateGeometryError{Kind: b.Name(), Vertices: len(vertices), Min: 2}
	}
	r := draft.NewRect(vertices[0], vertices[1])
	if r.Width() < draft.ClosedEpsilon || r.Height() < draft.ClosedEpsilon {
		return &draft.DegenerateGeometryError{
			Kind: b.Name(), Vertices: 2, Min: 2, Reason: "zero width or height",
		}
	}
	return nil
}

// Build returns a closed four-vertex *draft.Polyline. Corners that share
// an x or y coordinate span no area and are rejected.
func (b Rectangle) Build(id draft.ObjectID, vertices []draft.Point, closed bool) (draft.Object, error) {
	if err := b.Validate(vertices, closed); err != nil {
		return nil, err
	}
	a, c := vertices[0], vertices[1]
	return draft.NewPolyline(id, []draft.Point{
		a, draft.Pt(c.X, a.Y), c, draft.Pt(a.X, c.Y),
	}, true)
}
