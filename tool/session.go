package tool

import (
	"slices"

	"github.com/google/uuid"

	"github.com/gogpu/draft"
	"github.com/gogpu/draft/snap"
)

// Session is the transient state of one construction in progress. It is
// discarded on finish or cancel and never persisted.
type Session struct {
	id         uuid.UUID
	builder    Builder
	vertices   []draft.Point
	preview    snap.Candidate
	hasPreview bool
}

func newSession(b Builder) *Session {
	return &Session{id: uuid.New(), builder: b}
}

// ID returns the session identity carried by every tool event.
func (s *Session) ID() uuid.UUID { return s.id }

// Tool returns the builder name.
func (s *Session) Tool() string { return s.builder.Name() }

// Vertices returns a copy of the committed vertices in input order.
func (s *Session) Vertices() []draft.Point { return slices.Clone(s.vertices) }

// Len returns the number of committed vertices.
func (s *Session) Len() int { return len(s.vertices) }

// Preview returns the candidate next vertex from the latest movement, if
// any. It is never part of Vertices.
func (s *Session) Preview() (snap.Candidate, bool) { return s.preview, s.hasPreview }

func (s *Session) first() draft.Point { return s.vertices[0] }

func (s *Session) last() draft.Point { return s.vertices[len(s.vertices)-1] }
