// Package draft is the interactive drafting core of a 2D CAD application.
//
// # Overview
//
// draft keeps a layered collection of geometric objects, translates between
// real-world drawing units and the viewport, and drives precision input
// through a snapping engine and multi-click construction tools. It does not
// render pixels or persist files; it hands geometry and cursor state to an
// external drawing surface and consumes configuration from the host
// application.
//
// # Architecture
//
// The library is organized into:
//   - draft: Point, Rect, Line, ViewTransform, units and grid spacing,
//     the Object interface with its Polyline variant, and the error taxonomy
//   - layer: the layer repository, the single owner of all objects
//   - snap: the snapping engine (vertex, edge, grid, none)
//   - tool: the construction tool state machine and its builder registry
//   - view: the view sync facade that recomputes grid and tolerance on pan/zoom
//   - editor: composition of the data flow from device input to repository
//   - preview: a reference drawing surface that rasterizes a snapshot
//   - config: configuration loading
//
// # Coordinate System
//
// World coordinates use the drawing's unit (inches or millimetres) with
// Y increasing upward. Device coordinates are viewport pixels with the
// origin at top-left and Y increasing downward. A ViewTransform holds the
// pan (device position of the world origin) and the zoom (pixels per world
// unit).
//
// # Concurrency
//
// All mutation happens on the host's input loop. Repository, objects and
// tool sessions are not safe for concurrent use; readers on other
// goroutines should work on layer.Repository.Snapshot.
package draft
