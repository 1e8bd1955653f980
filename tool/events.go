package tool

import (
	"github.com/google/uuid"

	"github.com/gogpu/draft"
	"github.com/gogpu/draft/snap"
)

// EventKind identifies a tool event.
type EventKind uint8

// Tool event kinds.
const (
	SessionBegun EventKind = iota
	VertexCommitted
	PreviewUpdated
	SessionFinished
	SessionCancelled
	// SessionFailed reports a finish rejected by validation; Err is set.
	SessionFailed
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case SessionBegun:
		return "SessionBegun"
	case VertexCommitted:
		return "VertexCommitted"
	case PreviewUpdated:
		return "PreviewUpdated"
	case SessionFinished:
		return "SessionFinished"
	case SessionCancelled:
		return "SessionCancelled"
	case SessionFailed:
		return "SessionFailed"
	default:
		return "Unknown"
	}
}

// Event is delivered to listeners synchronously.
type Event struct {
	Kind    EventKind
	Session uuid.UUID
	Tool    string
	// Vertex and Index are set for VertexCommitted.
	Vertex draft.Point
	Index  int
	// Preview is set for PreviewUpdated.
	Preview snap.Candidate
	// Object is set for SessionFinished.
	Object draft.ObjectID
	// Err is set for SessionFailed.
	Err error
}

// Listener receives tool events.
type Listener func(Event)

type subscription struct {
	id int
	fn Listener
}

// Subscribe registers fn and returns a function that removes it.
func (m *Machine) Subscribe(fn Listener) (cancel func()) {
	m.nextSub++
	id := m.nextSub
	m.subs = append(m.subs, subscription{id: id, fn: fn})
	return func() {
		for i, s := range m.subs {
			if s.id == id {
				m.subs = append(m.subs[:i:i], m.subs[i+1:]...)
				return
			}
		}
	}
}

func (m *Machine) emit(ev Event) {
	for _, s := range m.subs {
		s.fn(ev)
	}
}
