package draft

import (
	"errors"
	"fmt"
)

// Sentinel errors for the drafting core. Every typed error below unwraps to
// one of these, so callers may test with errors.Is and extract details with
// errors.As.
var (
	// ErrDuplicateName is returned when a layer name is already taken.
	ErrDuplicateName = errors.New("draft: duplicate name")

	// ErrNotFound is returned when a layer or object does not exist.
	ErrNotFound = errors.New("draft: not found")

	// ErrNonEmptyLayer is returned when deleting a layer that still owns objects.
	ErrNonEmptyLayer = errors.New("draft: layer is not empty")

	// ErrInvalidOrder is returned when a layer order is not a permutation
	// of the existing layers.
	ErrInvalidOrder = errors.New("draft: invalid layer order")

	// ErrDegenerateGeometry is returned when an object would have fewer
	// vertices than its kind requires.
	ErrDegenerateGeometry = errors.New("draft: degenerate geometry")

	// ErrDuplicateObject is returned when inserting an object whose id is
	// already stored.
	ErrDuplicateObject = errors.New("draft: duplicate object id")

	// ErrInvalidName is returned for empty layer names.
	ErrInvalidName = errors.New("draft: invalid name")
)

// DuplicateNameError is returned when a layer name collides with an
// existing layer.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("draft: layer name %q already exists", e.Name)
}

func (e *DuplicateNameError) Unwrap() error { return ErrDuplicateName }

// NotFoundError is returned when a layer or object id is unknown.
// Kind is "layer" or "object".
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("draft: %s %s not found", e.Kind, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NonEmptyLayerError is returned by layer deletion while objects remain.
type NonEmptyLayerError struct {
	Name    string
	Objects int
}

func (e *NonEmptyLayerError) Error() string {
	return fmt.Sprintf("draft: layer %q still owns %d object(s)", e.Name, e.Objects)
}

func (e *NonEmptyLayerError) Unwrap() error { return ErrNonEmptyLayer }

// InvalidOrderError describes why a layer order was rejected.
type InvalidOrderError struct {
	Reason string
}

func (e *InvalidOrderError) Error() string {
	return "draft: invalid layer order: " + e.Reason
}

func (e *InvalidOrderError) Unwrap() error { return ErrInvalidOrder }

// DegenerateGeometryError reports how many vertices were supplied and how
// many the object kind needs. Reason is set when the count is sufficient
// but the shape is still empty.
type DegenerateGeometryError struct {
	Kind     string
	Vertices int
	Min      int
	Reason   string
}

func (e *DegenerateGeometryError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("draft: %s is degenerate: %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("draft: %s needs at least %d vertices, got %d", e.Kind, e.Min, e.Vertices)
}

func (e *DegenerateGeometryError) Unwrap() error { return ErrDegenerateGeometry }

// IndexError is returned by vertex mutations with an out-of-range index.
type IndexError struct {
	Index int
	Len   int
}

func (e *IndexError) Error() string {
	return fmt.Sprintf("draft: vertex index %d out of range [0, %d)", e.Index, e.Len)
}
