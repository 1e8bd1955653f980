// Package tool drives multi-click construction of geometric objects.
//
// A Machine moves through Idle, Collecting and Finishing:
//
//	Idle --Press--> Collecting --Press/Move--> Collecting
//	Collecting --DoublePress/Close/Finish--> Finishing --> Idle
//	Collecting --Cancel--> Idle
//
// Every positional input is resolved through a Resolver (normally the snap
// engine) before it is used. Movement only updates the preview; vertices
// are committed strictly in the order of confirming inputs. Finishing
// validates the vertices through the active Builder and, on success,
// inserts the new object into the target layer. A failed finish or a
// cancel discards the session without touching the repository.
package tool

import (
	"github.com/gogpu/draft"
	"github.com/gogpu/draft/layer"
	"github.com/gogpu/draft/snap"
)

// State is the lifecycle state of a Machine.
type State uint8

// Machine states.
const (
	Idle State = iota
	Collecting
	Finishing
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case Collecting:
		return "Collecting"
	case Finishing:
		return "Finishing"
	default:
		return "Unknown"
	}
}

// InputKind classifies user input.
type InputKind uint8

// Input kinds.
const (
	// Press confirms a point: it begins a session or commits a vertex.
	Press InputKind = iota
	// Move updates the preview only.
	Move
	// DoublePress commits the point unless it repeats the last vertex,
	// then finishes an open shape.
	DoublePress
	// Close finishes a closed shape. The point is committed first unless
	// it coincides with the first vertex.
	Close
	// Finish finishes an open shape with the vertices committed so far.
	Finish
	// Cancel discards the session.
	Cancel
)

// String returns a human-readable name for the input kind.
func (k InputKind) String() string {
	switch k {
	case Press:
		return "Press"
	case Move:
		return "Move"
	case DoublePress:
		return "DoublePress"
	case Close:
		return "Close"
	case Finish:
		return "Finish"
	case Cancel:
		return "Cancel"
	default:
		return "Unknown"
	}
}

// Input is one user action. At is in device coordinates and is ignored
// by Finish and Cancel.
type Input struct {
	Kind InputKind
	At   draft.Point
}

// Resolver refines a device point into a snapped candidate.
type Resolver interface {
	Resolve(device draft.Point) snap.Candidate
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(device draft.Point) snap.Candidate

// Resolve calls f(device).
func (f ResolverFunc) Resolve(device draft.Point) snap.Candidate { return f(device) }

// Sink receives finished objects. *layer.Repository implements it.
type Sink interface {
	NextObjectID() draft.ObjectID
	Insert(layerID layer.ID, obj draft.Object) error
}

// Outcome reports what one input did.
type Outcome struct {
	// State is the machine state after the input.
	State State
	// Candidate is the resolved position of a positional input.
	Candidate snap.Candidate
	// Object is the id of the object created by a successful finish.
	Object draft.ObjectID
	// Finished is set when a session completed successfully.
	Finished bool
}

// Option configures a Machine.
type Option func(*Machine)

// WithBuilder selects the initial tool. The default is Polyline.
func WithBuilder(b Builder) Option {
	return func(m *Machine) { m.builder = b }
}

// WithTargetLayer sets the layer that receives finished objects.
func WithTargetLayer(id layer.ID) Option {
	return func(m *Machine) { m.target = id }
}

// Machine is the construction tool state machine. It is not safe for
// concurrent use.
type Machine struct {
	sink     Sink
	resolver Resolver
	builder  Builder
	target   layer.ID

	state   State
	session *Session

	subs    []subscription
	nextSub int
}

// New creates an idle machine.
func New(sink Sink, resolver Resolver, opts ...Option) *Machine {
	m := &Machine{
		sink:     sink,
		resolver: resolver,
		builder:  Polyline{},
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// State returns the current state.
func (m *Machine) State() State { return m.state }

// Session returns the session in progress, if any.
func (m *Machine) Session() (*Session, bool) {
	return m.session, m.session != nil
}

// Builder returns the active tool.
func (m *Machine) Builder() Builder { return m.builder }

// SetBuilder switches tools. A session in progress is cancelled first.
func (m *Machine) SetBuilder(b Builder) {
	if m.state != Idle {
		m.cancel()
	}
	m.builder = b
}

// TargetLayer returns the layer that receives finished objects.
func (m *Machine) TargetLayer() layer.ID { return m.target }

// SetTargetLayer changes the layer that receives finished objects. It
// takes effect at the next finish.
func (m *Machine) SetTargetLayer(id layer.ID) { m.target = id }

// Handle processes one input. The only error is a rejected finish, which
// is a *draft.DegenerateGeometryError for too few vertices or the error
// of the repository insert; in both cases the machine is Idle afterwards
// and nothing was inserted. Inputs that do not apply to the current state
// are ignored.
func (m *Machine) Handle(in Input) (Outcome, error) {
	switch in.Kind {
	case Cancel:
		m.cancel()
		return m.outcome(snap.Candidate{}), nil
	case Finish:
		if m.state != Collecting {
			return m.outcome(snap.Candidate{}), nil
		}
		return m.finish(snap.Candidate{}, false)
	}

	c := m.resolver.Resolve(in.At)
	switch in.Kind {
	case Press:
		if m.state == Idle {
			return m.begin(c)
		}
		m.commit(c.Point)
		if m.atLimit() {
			return m.finish(c, false)
		}
	case Move:
		if m.state == Collecting {
			m.session.preview, m.session.hasPreview = c, true
			m.emit(Event{Kind: PreviewUpdated, Session: m.session.id, Tool: m.session.Tool(), Preview: c})
		}
	case DoublePress:
		if m.state == Idle {
			return m.begin(c)
		}
		if !c.Point.NearlyEqual(m.session.last(), draft.ClosedEpsilon) {
			m.commit(c.Point)
		}
		return m.finish(c, false)
	case Close:
		if m.state != Collecting {
			break
		}
		if !c.Point.NearlyEqual(m.session.first(), draft.ClosedEpsilon) {
			m.commit(c.Point)
		}
		return m.finish(c, true)
	}
	return m.outcome(c), nil
}

func (m *Machine) begin(c snap.Candidate) (Outcome, error) {
	m.session = newSession(m.builder)
	m.state = Collecting
	draft.Logger().Debug("tool session begun", "tool", m.builder.Name(), "session", m.session.id)
	m.emit(Event{Kind: SessionBegun, Session: m.session.id, Tool: m.builder.Name()})
	m.commit(c.Point)
	if m.atLimit() {
		return m.finish(c, false)
	}
	return m.outcome(c), nil
}

func (m *Machine) commit(p draft.Point) {
	s := m.session
	s.vertices = append(s.vertices, p)
	s.hasPreview = false
	m.emit(Event{
		Kind: VertexCommitted, Session: s.id, Tool: s.Tool(),
		Vertex: p, Index: len(s.vertices) - 1,
	})
}

func (m *Machine) atLimit() bool {
	limit := m.session.builder.MaxVertices()
	return limit > 0 && len(m.session.vertices) >= limit
}

func (m *Machine) finish(c snap.Candidate, closed bool) (Outcome, error) {
	m.state = Finishing
	s := m.session
	log := draft.Logger()

	obj, err := m.build(s, closed)
	if err == nil {
		err = m.sink.Insert(m.target, obj)
	}
	m.session = nil
	m.state = Idle

	if err != nil {
		log.Warn("construction rejected", "tool", s.Tool(), "vertices", len(s.vertices), "err", err)
		m.emit(Event{Kind: SessionFailed, Session: s.id, Tool: s.Tool(), Err: err})
		return m.outcome(c), err
	}

	log.Info("object constructed", "tool", s.Tool(), "object", obj.ID(), "vertices", len(obj.Vertices()))
	m.emit(Event{Kind: SessionFinished, Session: s.id, Tool: s.Tool(), Object: obj.ID()})
	out := m.outcome(c)
	out.Object, out.Finished = obj.ID(), true
	return out, nil
}

func (m *Machine) build(s *Session, closed bool) (draft.Object, error) {
	if need := s.builder.MinVertices(closed); len(s.vertices) < need {
		return nil, &draft.DegenerateGeometryError{Kind: s.Tool(), Vertices: len(s.vertices), Min: need}
	}
	if err := s.builder.Validate(s.vertices, closed); err != nil {
		return nil, err
	}
	return s.builder.Build(m.sink.NextObjectID(), s.vertices, closed)
}

func (m *Machine) cancel() {
	if m.session == nil {
		return
	}
	s := m.session
	m.session = nil
	m.state = Idle
	draft.Logger().Debug("tool session cancelled", "tool", s.Tool(), "session", s.id)
	m.emit(Event{Kind: SessionCancelled, Session: s.id, Tool: s.Tool()})
}

func (m *Machine) outcome(c snap.Candidate) Outcome {
	return Outcome{State: m.state, Candidate: c}
}
