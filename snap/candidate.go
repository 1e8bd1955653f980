package snap

import (
	"github.com/gogpu/draft"
	"github.com/gogpu/draft/layer"
)

// Kind tags what a candidate snapped to.
type Kind uint8

// Candidate kinds, from lowest to highest priority.
const (
	// None means no snap; the candidate is the raw world point.
	None Kind = iota
	// Grid is the nearest grid intersection.
	Grid
	// Edge is the clamped perpendicular foot on an object segment.
	Edge
	// Vertex is an object vertex.
	Vertex
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Grid:
		return "grid"
	case Edge:
		return "edge"
	case Vertex:
		return "vertex"
	default:
		return "unknown"
	}
}

// Candidate is the result of one snap query. It is a plain value and is
// never cached between queries.
type Candidate struct {
	// Point is the resolved position in world coordinates.
	Point draft.Point
	// Device is Point in device coordinates.
	Device draft.Point
	Kind   Kind
	// Object, Layer and Index identify the source for Vertex and Edge
	// candidates. Index is the vertex or segment index, -1 otherwise.
	Object draft.ObjectID
	Layer  layer.ID
	Index  int
	// Distance is the device distance from the query point, in pixels.
	Distance float64
}

// better reports whether c should replace best among candidates of the
// same kind: nearer wins, then lower object id, then lower index.
func (c Candidate) better(best Candidate) bool {
	if c.Distance != best.Distance {
		return c.Distance < best.Distance
	}
	if c.Object != best.Object {
		return c.Object < best.Object
	}
	return c.Index < best.Index
}
