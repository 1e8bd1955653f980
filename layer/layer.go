// Package layer implements the layer repository: the ordered set of layers
// and the flat store of every geometric object in a drawing.
//
// Layers are handles compared by identity. Two layers with identical fields
// are still distinct; each carries an opaque ID. Objects live in a flat
// store keyed by draft.ObjectID and each layer holds only an ordered id list,
// so there are no back-references between layers and objects.
//
// # Ordering
//
// Repository.Layers returns layers back-to-front: index 0 is drawn first and
// sits at the bottom of the stack. A layer's object ids are in insertion
// order, which is also the z-order within that layer.
package layer

import (
	"slices"

	"github.com/google/uuid"

	"github.com/gogpu/draft"
)

// ID is the opaque identity of a layer.
type ID uuid.UUID

// Nil is the zero ID; no layer ever has it.
var Nil ID

// NewID returns a fresh random ID.
func NewID() ID {
	return ID(uuid.New())
}

// ParseID parses the canonical string form of an ID.
func ParseID(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return Nil, err
	}
	return ID(u), nil
}

// String returns the canonical UUID form.
func (id ID) String() string {
	return uuid.UUID(id).String()
}

// IsNil reports whether id is the zero ID.
func (id ID) IsNil() bool {
	return id == Nil
}

// Fabrication is the optional cutting-plan metadata of a layer.
type Fabrication struct {
	// ToolIndex selects the cutter in the machine's tool table.
	ToolIndex int
	// CutDepth is the depth of cut in world units.
	CutDepth float64
}

// Layer is a named, ordered group of objects with display attributes.
// Its fields change only through the owning Repository.
type Layer struct {
	id      ID
	name    string
	visible bool
	locked  bool
	color   draft.RGBA
	fab     *Fabrication
	objects []draft.ObjectID
}

// ID returns the layer identity.
func (l *Layer) ID() ID { return l.id }

// Name returns the layer name.
func (l *Layer) Name() string { return l.name }

// Visible reports whether the layer is shown.
func (l *Layer) Visible() bool { return l.visible }

// Locked reports whether the layer rejects interaction such as snapping.
func (l *Layer) Locked() bool { return l.locked }

// Editable reports whether the layer is visible and unlocked.
func (l *Layer) Editable() bool { return l.visible && !l.locked }

// Color returns the display color.
func (l *Layer) Color() draft.RGBA { return l.color }

// Fabrication returns the cutting metadata, if any.
func (l *Layer) Fabrication() (Fabrication, bool) {
	if l.fab == nil {
		return Fabrication{}, false
	}
	return *l.fab, true
}

// Objects returns a copy of the owned object ids in z-order.
func (l *Layer) Objects() []draft.ObjectID {
	return slices.Clone(l.objects)
}

// Len returns the number of owned objects.
func (l *Layer) Len() int { return len(l.objects) }

func (l *Layer) indexOf(id draft.ObjectID) int {
	return slices.Index(l.objects, id)
}

func (l *Layer) snapshot() LayerSnapshot {
	s := LayerSnapshot{
		ID:      l.id,
		Name:    l.name,
		Visible: l.visible,
		Locked:  l.locked,
		Color:   l.color,
		Objects: slices.Clone(l.objects),
	}
	if l.fab != nil {
		f := *l.fab
		s.Fabrication = &f
	}
	return s
}
