// Package snap resolves raw input positions against existing geometry and
// the grid.
//
// Candidates are searched in priority order: object vertices, object edges,
// grid intersections. A lower-priority kind is only considered when no
// higher-priority candidate lies within tolerance. Within one kind the
// nearest candidate wins; exact distance ties go to the lower object id and
// then the lower vertex or edge index, so results are deterministic.
package snap

import (
	"github.com/gogpu/draft"
	"github.com/gogpu/draft/layer"
)

// Source is the object set the engine searches. *layer.Repository
// implements it.
type Source interface {
	// Layers returns the layers back-to-front.
	Layers() []*layer.Layer
	Object(id draft.ObjectID) (draft.Object, bool)
}

// Option configures an Engine.
type Option func(*Engine)

// WithUnits sets the unit system used for grid intersections.
func WithUnits(u draft.UnitSystem) Option {
	return func(e *Engine) { e.units = u }
}

// WithGridVisible enables or suppresses grid candidates.
func WithGridVisible(visible bool) Option {
	return func(e *Engine) { e.gridVisible = visible }
}

// WithActiveLayer sets the layer used when a query restricts itself to
// the active layer.
func WithActiveLayer(id layer.ID) Option {
	return func(e *Engine) { e.active = id }
}

// Engine proposes snap candidates for device-space query points.
type Engine struct {
	src         Source
	units       draft.UnitSystem
	gridVisible bool
	active      layer.ID
}

// New creates an engine over src. By default the grid is visible and uses
// decimal inches.
func New(src Source, opts ...Option) *Engine {
	e := &Engine{
		src:         src,
		units:       draft.NewUnitSystem(draft.UnitDecimalInch),
		gridVisible: true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetUnits replaces the unit system.
func (e *Engine) SetUnits(u draft.UnitSystem) { e.units = u }

// SetGridVisible enables or suppresses grid candidates.
func (e *Engine) SetGridVisible(visible bool) { e.gridVisible = visible }

// SetActiveLayer sets the active layer.
func (e *Engine) SetActiveLayer(id layer.ID) { e.active = id }

// ActiveLayer returns the active layer.
func (e *Engine) ActiveLayer() layer.ID { return e.active }

// Resolve returns the best candidate for query, given in device
// coordinates. Only visible, unlocked layers are searched, and only the
// active layer when activeLayerOnly is set. tolerancePx is the search
// radius in device pixels. Resolve always succeeds; when nothing is in
// range the result has Kind None.
func (e *Engine) Resolve(query draft.Point, view draft.ViewTransform, activeLayerOnly bool, tolerancePx float64) Candidate {
	view.Zoom = draft.ClampZoom(view.Zoom)
	world := draft.DeviceToWorld(query, view)
	tol := max(tolerancePx, 0)

	objects := e.eligible(world, view.WorldLength(tol), activeLayerOnly)

	if c, ok := nearestVertex(query, view, objects, tol); ok {
		return c
	}
	if c, ok := nearestEdge(query, world, view, objects, tol); ok {
		return c
	}
	if e.gridVisible {
		if c, ok := e.nearestGrid(query, world, view, tol); ok {
			return c
		}
	}
	return Candidate{Point: world, Device: query, Kind: None, Index: -1}
}

type entry struct {
	layer layer.ID
	obj   draft.Object
}

// eligible collects objects on searchable layers whose bounds, grown by
// the world tolerance, contain the query point.
func (e *Engine) eligible(world draft.Point, tolWorld float64, activeOnly bool) []entry {
	var out []entry
	for _, l := range e.src.Layers() {
		if !l.Editable() || (activeOnly && l.ID() != e.active) {
			continue
		}
		for _, id := range l.Objects() {
			obj, ok := e.src.Object(id)
			if !ok {
				continue
			}
			if !obj.BoundingBox().Inset(tolWorld).Contains(world) {
				continue
			}
			out = append(out, entry{layer: l.ID(), obj: obj})
		}
	}
	return out
}

func nearestVertex(query draft.Point, view draft.ViewTransform, objects []entry, tol float64) (Candidate, bool) {
	var best Candidate
	found := false
	for _, en := range objects {
		for i, v := range en.obj.Vertices() {
			d := draft.WorldToDevice(v, view)
			dist := d.Distance(query)
			if dist > tol {
				continue
			}
			c := Candidate{
				Point: v, Device: d, Kind: Vertex,
				Object: en.obj.ID(), Layer: en.layer, Index: i, Distance: dist,
			}
			if !found || c.better(best) {
				best, found = c, true
			}
		}
	}
	return best, found
}

func nearestEdge(query, world draft.Point, view draft.ViewTransform, objects []entry, tol float64) (Candidate, bool) {
	var best Candidate
	found := false
	for _, en := range objects {
		for i, seg := range en.obj.Segments() {
			foot := seg.NearestPoint(world)
			d := draft.WorldToDevice(foot, view)
			dist := d.Distance(query)
			if dist > tol {
				continue
			}
			c := Candidate{
				Point: foot, Device: d, Kind: Edge,
				Object: en.obj.ID(), Layer: en.layer, Index: i, Distance: dist,
			}
			if !found || c.better(best) {
				best, found = c, true
			}
		}
	}
	return best, found
}

func (e *Engine) nearestGrid(query, world draft.Point, view draft.ViewTransform, tol float64) (Candidate, bool) {
	step := e.units.GridSpacing(view.Zoom)
	p := draft.NearestGridPoint(world, step)
	d := draft.WorldToDevice(p, view)
	dist := d.Distance(query)
	if dist > tol {
		return Candidate{}, false
	}
	return Candidate{Point: p, Device: d, Kind: Grid, Index: -1, Distance: dist}, true
}
