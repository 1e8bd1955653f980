// Package editor composes the drafting core into one input pipeline.
//
// Device input flows through the view transform into the snap engine, the
// refined point drives the construction tool, and finished objects land
// in the layer repository:
//
//	device point -> view.Sync -> snap.Engine -> tool.Machine -> layer.Repository
//
// An Editor is single-threaded like its parts. Renderers take a
// layer.Snapshot and the view.State between inputs.
package editor

import (
	"fmt"

	"github.com/gogpu/draft"
	"github.com/gogpu/draft/config"
	"github.com/gogpu/draft/layer"
	"github.com/gogpu/draft/snap"
	"github.com/gogpu/draft/tool"
	"github.com/gogpu/draft/view"
)

// DefaultLayerName is the layer created for an empty repository.
const DefaultLayerName = "Layer 1"

type options struct {
	repo          *layer.Repository
	rulers        view.RulerSink
	width, height int
}

// Option configures an Editor.
type Option func(*options)

// WithRepository edits an existing repository instead of a new one.
func WithRepository(r *layer.Repository) Option {
	return func(o *options) { o.repo = r }
}

// WithRulers attaches a ruler sink to the view.
func WithRulers(sink view.RulerSink) Option {
	return func(o *options) { o.rulers = sink }
}

// WithViewport sets the initial viewport size in device pixels.
func WithViewport(width, height int) Option {
	return func(o *options) { o.width, o.height = width, height }
}

// Editor wires the view, snap engine, tool machine and repository
// together.
type Editor struct {
	cfg    config.Config
	repo   *layer.Repository
	view   *view.Sync
	snap   *snap.Engine
	tool   *tool.Machine
	active layer.ID
}

// New creates an editor from cfg. An empty repository gets one layer
// named DefaultLayerName so tools always have a target.
func New(cfg config.Config, opts ...Option) (*Editor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("editor: %w", err)
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.repo == nil {
		o.repo = layer.New()
	}
	if o.repo.Len() == 0 {
		if _, err := o.repo.CreateLayer(DefaultLayerName); err != nil {
			return nil, err
		}
	}

	vopts := []view.Option{
		view.WithUnits(cfg.UnitSystem()),
		view.WithTolerancePx(cfg.SnapTolerancePx),
		view.WithLanguage(cfg.LanguageTag()),
		view.WithViewport(o.width, o.height),
	}
	if o.rulers != nil {
		vopts = append(vopts, view.WithRulers(o.rulers))
	}

	e := &Editor{
		repo: o.repo,
		view: view.New(vopts...),
		snap: snap.New(o.repo),
	}
	e.tool = tool.New(o.repo, e)
	e.repo.Subscribe(e.onRepositoryEvent)

	if err := e.ApplyConfig(cfg); err != nil {
		return nil, err
	}
	return e, nil
}

// ApplyConfig validates cfg and pushes it to every component. On error
// nothing changes.
func (e *Editor) ApplyConfig(cfg config.Config) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("editor: %w", err)
	}
	active, err := e.resolveActive(cfg.ActiveLayer)
	if err != nil {
		return fmt.Errorf("editor: active layer: %w", err)
	}

	e.cfg = cfg
	e.snap.SetUnits(cfg.UnitSystem())
	e.snap.SetGridVisible(cfg.GridVisible)
	e.view.SetUnits(cfg.UnitSystem())
	e.view.SetTolerancePx(cfg.SnapTolerancePx)
	e.view.SetLanguage(cfg.LanguageTag())
	e.setActive(active)

	draft.Logger().Debug("editor configured",
		"units", cfg.Units, "tolerance_px", cfg.SnapTolerancePx,
		"grid", cfg.GridVisible, "active_only", cfg.ActiveLayerOnly)
	return nil
}

// resolveActive picks the layer ApplyConfig activates. An empty ref keeps
// the current active layer while it exists.
func (e *Editor) resolveActive(ref string) (layer.ID, error) {
	if ref == "" && !e.active.IsNil() {
		if _, err := e.repo.Layer(e.active); err == nil {
			return e.active, nil
		}
	}
	return e.lookupLayer(ref)
}

// lookupLayer resolves a layer id or name. Empty selects the first layer.
func (e *Editor) lookupLayer(ref string) (layer.ID, error) {
	if ref == "" {
		ls := e.repo.Layers()
		if len(ls) == 0 {
			return layer.Nil, &draft.NotFoundError{Kind: "layer", ID: `""`}
		}
		return ls[0].ID(), nil
	}
	if id, err := layer.ParseID(ref); err == nil {
		if _, err := e.repo.Layer(id); err == nil {
			return id, nil
		}
	}
	l, err := e.repo.LayerByName(ref)
	if err != nil {
		return layer.Nil, err
	}
	return l.ID(), nil
}

// SetActiveLayer selects the layer that receives new objects and that
// active-layer-only snapping searches.
func (e *Editor) SetActiveLayer(id layer.ID) error {
	if _, err := e.repo.Layer(id); err != nil {
		return err
	}
	e.setActive(id)
	return nil
}

func (e *Editor) setActive(id layer.ID) {
	e.active = id
	e.cfg.ActiveLayer = ""
	if !id.IsNil() {
		e.cfg.ActiveLayer = id.String()
	}
	e.snap.SetActiveLayer(id)
	e.tool.SetTargetLayer(id)
}

// ActiveLayer returns the active layer.
func (e *Editor) ActiveLayer() layer.ID { return e.active }

func (e *Editor) onRepositoryEvent(ev layer.Event) {
	if ev.Kind != layer.LayerDeleted || ev.Layer != e.active {
		return
	}
	next := layer.Nil
	if ls := e.repo.Layers(); len(ls) > 0 {
		next = ls[0].ID()
	}
	draft.Logger().Info("active layer deleted", "layer", ev.Layer, "next", next)
	e.setActive(next)
}

// SetView applies a new pan/zoom.
func (e *Editor) SetView(t draft.ViewTransform) { e.view.SetTransform(t) }

// SetViewport applies a new viewport size in device pixels.
func (e *Editor) SetViewport(width, height int) { e.view.SetViewport(width, height) }

// Resolve snaps a device point with the current view and configuration.
// Vertices already committed by the session in progress take part in
// vertex snapping, so a shape can be closed on its own first vertex.
// Editor implements tool.Resolver.
func (e *Editor) Resolve(device draft.Point) snap.Candidate {
	st := e.view.State()
	c := e.snap.Resolve(device, st.Transform, e.cfg.ActiveLayerOnly, st.TolerancePx)
	if sc, ok := e.sessionVertex(device, st); ok && (c.Kind != snap.Vertex || sc.Distance < c.Distance) {
		return sc
	}
	return c
}

func (e *Editor) sessionVertex(device draft.Point, st view.State) (snap.Candidate, bool) {
	s, ok := e.tool.Session()
	if !ok {
		return snap.Candidate{}, false
	}
	var best snap.Candidate
	found := false
	for i, v := range s.Vertices() {
		d := draft.WorldToDevice(v, st.Transform)
		dist := d.Distance(device)
		if dist > st.TolerancePx || (found && dist >= best.Distance) {
			continue
		}
		best = snap.Candidate{
			Point: v, Device: d, Kind: snap.Vertex,
			Layer: e.tool.TargetLayer(), Index: i, Distance: dist,
		}
		found = true
	}
	return best, found
}

// Handle feeds one input to the construction tool.
func (e *Editor) Handle(in tool.Input) (tool.Outcome, error) {
	return e.tool.Handle(in)
}

// SelectTool switches to a registered tool by name, cancelling any
// session in progress.
func (e *Editor) SelectTool(name string) error {
	b, err := tool.Lookup(name)
	if err != nil {
		return err
	}
	e.tool.SetBuilder(b)
	return nil
}

// Config returns the applied configuration. ActiveLayer holds the id of
// the active layer.
func (e *Editor) Config() config.Config { return e.cfg }

// Repository returns the edited repository.
func (e *Editor) Repository() *layer.Repository { return e.repo }

// View returns the view facade.
func (e *Editor) View() *view.Sync { return e.view }

// Snap returns the snap engine.
func (e *Editor) Snap() *snap.Engine { return e.snap }

// Tool returns the construction tool machine.
func (e *Editor) Tool() *tool.Machine { return e.tool }
