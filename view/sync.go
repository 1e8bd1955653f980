// Package view keeps grid, ruler and snap tolerance in step with the
// viewport.
//
// A Sync owns the current pan/zoom transform and viewport size. Each
// change recomputes the grid step from the unit system and converts the
// snap tolerance from device pixels into world units, then pushes the
// result to the ruler sink and to subscribers. Nothing here draws; the
// drawing surface consumes State and Tick values.
package view

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/draft"
)

// DefaultTolerancePx is the snap radius used until SetTolerancePx is called.
const DefaultTolerancePx = 8

// State is the derived view state after a change.
type State struct {
	Transform draft.ViewTransform
	Units     draft.UnitSystem

	// Width and Height are the viewport size in device pixels.
	Width, Height int

	// GridStep is the grid spacing in world units.
	GridStep float64

	// TolerancePx is the snap radius in device pixels and ToleranceWorld
	// the same radius in world units at the current zoom.
	TolerancePx    float64
	ToleranceWorld float64

	// Visible is the world rectangle covered by the viewport.
	Visible draft.Rect
}

// RulerSink receives recomputed ruler ticks. It is optional and fixed at
// construction.
type RulerSink interface {
	UpdateRulers(horizontal, vertical []Tick)
}

// Listener receives the state after every change.
type Listener func(State)

// Option configures a Sync.
type Option func(*Sync)

// WithRulers attaches a ruler sink.
func WithRulers(sink RulerSink) Option {
	return func(s *Sync) { s.rulers = sink }
}

// WithLanguage selects the locale for ruler labels. The default is
// English.
func WithLanguage(tag language.Tag) Option {
	return func(s *Sync) { s.printer = message.NewPrinter(tag) }
}

// WithUnits sets the initial unit system.
func WithUnits(u draft.UnitSystem) Option {
	return func(s *Sync) { s.state.Units = u }
}

// WithViewport sets the initial viewport size in device pixels.
func WithViewport(width, height int) Option {
	return func(s *Sync) { s.state.Width, s.state.Height = width, height }
}

// WithTolerancePx sets the initial snap radius in device pixels.
func WithTolerancePx(px float64) Option {
	return func(s *Sync) { s.state.TolerancePx = max(px, 0) }
}

// Sync is the view synchronization facade. It is not safe for concurrent
// use.
type Sync struct {
	state   State
	rulers  RulerSink
	printer *message.Printer

	subs    []subscription
	nextSub int
}

type subscription struct {
	id int
	fn Listener
}

// New creates a Sync at zoom 1 with no pan. The initial state is computed
// immediately and delivered to the ruler sink.
func New(opts ...Option) *Sync {
	s := &Sync{
		state: State{
			Transform:   draft.NewViewTransform(draft.Point{}, 1),
			Units:       draft.NewUnitSystem(draft.UnitDecimalInch),
			TolerancePx: DefaultTolerancePx,
		},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.printer == nil {
		s.printer = message.NewPrinter(language.English)
	}
	s.recompute()
	return s
}

// State returns the current derived state.
func (s *Sync) State() State { return s.state }

// SetTransform applies a new pan/zoom. Zoom is clamped.
func (s *Sync) SetTransform(t draft.ViewTransform) {
	t.Zoom = draft.ClampZoom(t.Zoom)
	s.state.Transform = t
	s.changed()
}

// SetViewport applies a new viewport size in device pixels.
func (s *Sync) SetViewport(width, height int) {
	s.state.Width, s.state.Height = max(width, 0), max(height, 0)
	s.changed()
}

// SetUnits switches the unit system.
func (s *Sync) SetUnits(u draft.UnitSystem) {
	s.state.Units = u
	s.changed()
}

// SetTolerancePx changes the snap radius. Negative values are treated
// as zero.
func (s *Sync) SetTolerancePx(px float64) {
	s.state.TolerancePx = max(px, 0)
	s.changed()
}

// SetLanguage changes the locale of ruler labels.
func (s *Sync) SetLanguage(tag language.Tag) {
	s.printer = message.NewPrinter(tag)
	s.changed()
}

// DeviceToWorld maps a device point through the current transform.
func (s *Sync) DeviceToWorld(p draft.Point) draft.Point {
	return draft.DeviceToWorld(p, s.state.Transform)
}

// WorldToDevice maps a world point through the current transform.
func (s *Sync) WorldToDevice(p draft.Point) draft.Point {
	return draft.WorldToDevice(p, s.state.Transform)
}

// Subscribe registers fn and returns a function that removes it.
func (s *Sync) Subscribe(fn Listener) (cancel func()) {
	s.nextSub++
	id := s.nextSub
	s.subs = append(s.subs, subscription{id: id, fn: fn})
	return func() {
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i:i], s.subs[i+1:]...)
				return
			}
		}
	}
}

func (s *Sync) changed() {
	s.recompute()
	draft.Logger().Debug("view changed",
		"zoom", s.state.Transform.Zoom,
		"grid", s.state.GridStep,
		"tolerance", s.state.ToleranceWorld)
	for _, sub := range s.subs {
		sub.fn(s.state)
	}
}

func (s *Sync) recompute() {
	st := &s.state
	st.GridStep = st.Units.GridSpacing(st.Transform.Zoom)
	st.ToleranceWorld = st.Transform.WorldLength(st.TolerancePx)
	st.Visible = draft.NewRect(
		s.DeviceToWorld(draft.Point{}),
		s.DeviceToWorld(draft.Pt(float64(st.Width), float64(st.Height))),
	)
	if s.rulers != nil {
		s.rulers.UpdateRulers(s.Ruler(Horizontal), s.Ruler(Vertical))
	}
}
