package layer

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/gogpu/draft"
)

var errNilObject = errors.New("layer: nil object")

// Repository owns every layer and every object of a drawing.
//
// All operations fail closed: when an error is returned nothing changed.
// Repository is not safe for concurrent use; see Snapshot.
type Repository struct {
	layers  []*Layer
	byID    map[ID]*Layer
	objects map[draft.ObjectID]draft.Object
	owner   map[draft.ObjectID]*Layer
	lastID  draft.ObjectID

	subs    []subscription
	nextSub int
}

// New creates an empty repository.
func New() *Repository {
	return &Repository{
		byID:    make(map[ID]*Layer),
		objects: make(map[draft.ObjectID]draft.Object),
		owner:   make(map[draft.ObjectID]*Layer),
	}
}

// CreateLayer appends a new visible, unlocked, black layer at the top of
// the stack and returns its ID.
func (r *Repository) CreateLayer(name string) (ID, error) {
	if err := r.checkName(name, nil); err != nil {
		return Nil, err
	}
	l := &Layer{
		id:      NewID(),
		name:    name,
		visible: true,
		color:   draft.Black,
	}
	r.layers = append(r.layers, l)
	r.byID[l.id] = l

	draft.Logger().Debug("layer created", "layer", name, "id", l.id)
	r.emit(Event{Kind: LayerCreated, Layer: l.id})
	return l.id, nil
}

// DeleteLayer removes an empty layer. Objects are never deleted implicitly:
// the caller must remove or reassign them first, otherwise a
// NonEmptyLayerError is returned.
func (r *Repository) DeleteLayer(id ID) error {
	l, err := r.Layer(id)
	if err != nil {
		return err
	}
	if len(l.objects) > 0 {
		return &draft.NonEmptyLayerError{Name: l.name, Objects: len(l.objects)}
	}
	r.layers = slices.DeleteFunc(r.layers, func(x *Layer) bool { return x == l })
	delete(r.byID, id)

	draft.Logger().Debug("layer deleted", "layer", l.name, "id", id)
	r.emit(Event{Kind: LayerDeleted, Layer: id})
	return nil
}

// Layer returns the layer with the given ID.
func (r *Repository) Layer(id ID) (*Layer, error) {
	l, ok := r.byID[id]
	if !ok {
		return nil, &draft.NotFoundError{Kind: "layer", ID: id.String()}
	}
	return l, nil
}

// LayerByName returns the layer with the given name.
func (r *Repository) LayerByName(name string) (*Layer, error) {
	for _, l := range r.layers {
		if l.name == name {
			return l, nil
		}
	}
	return nil, &draft.NotFoundError{Kind: "layer", ID: fmt.Sprintf("%q", name)}
}

// Layers returns the layers back-to-front. The slice is a copy; the layers
// are the live handles.
func (r *Repository) Layers() []*Layer {
	return slices.Clone(r.layers)
}

// Len returns the number of layers.
func (r *Repository) Len() int {
	return len(r.layers)
}

// ReorderLayers replaces the display order. newOrder must list every
// existing layer exactly once.
func (r *Repository) ReorderLayers(newOrder []ID) error {
	if len(newOrder) != len(r.layers) {
		return &draft.InvalidOrderError{
			Reason: fmt.Sprintf("got %d layers, want %d", len(newOrder), len(r.layers)),
		}
	}
	seen := make(map[ID]bool, len(newOrder))
	ordered := make([]*Layer, 0, len(newOrder))
	for _, id := range newOrder {
		l, ok := r.byID[id]
		if !ok {
			return &draft.InvalidOrderError{Reason: "unknown layer " + id.String()}
		}
		if seen[id] {
			return &draft.InvalidOrderError{Reason: "layer " + l.name + " listed twice"}
		}
		seen[id] = true
		ordered = append(ordered, l)
	}
	r.layers = ordered

	draft.Logger().Debug("layers reordered", "count", len(ordered))
	r.emit(Event{Kind: LayersReordered})
	return nil
}

// Rename changes a layer name, keeping names unique.
func (r *Repository) Rename(id ID, name string) error {
	l, err := r.Layer(id)
	if err != nil {
		return err
	}
	if err := r.checkName(name, l); err != nil {
		return err
	}
	l.name = name
	r.emit(Event{Kind: LayerUpdated, Layer: id})
	return nil
}

// SetVisible shows or hides a layer.
func (r *Repository) SetVisible(id ID, visible bool) error {
	return r.update(id, func(l *Layer) { l.visible = visible })
}

// SetLocked locks or unlocks a layer.
func (r *Repository) SetLocked(id ID, locked bool) error {
	return r.update(id, func(l *Layer) { l.locked = locked })
}

// SetColor sets the display color of a layer.
func (r *Repository) SetColor(id ID, c draft.RGBA) error {
	return r.update(id, func(l *Layer) { l.color = c })
}

// SetFabrication attaches cutting metadata to a layer; nil clears it.
func (r *Repository) SetFabrication(id ID, f *Fabrication) error {
	return r.update(id, func(l *Layer) {
		if f == nil {
			l.fab = nil
			return
		}
		c := *f
		l.fab = &c
	})
}

func (r *Repository) update(id ID, fn func(*Layer)) error {
	l, err := r.Layer(id)
	if err != nil {
		return err
	}
	fn(l)
	r.emit(Event{Kind: LayerUpdated, Layer: id})
	return nil
}

// checkName validates name for layer self (nil for a new layer).
func (r *Repository) checkName(name string, self *Layer) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: empty layer name", draft.ErrInvalidName)
	}
	for _, l := range r.layers {
		if l != self && l.name == name {
			return &draft.DuplicateNameError{Name: name}
		}
	}
	return nil
}

// NextObjectID allocates a drawing-wide unique object id.
func (r *Repository) NextObjectID() draft.ObjectID {
	r.lastID++
	for r.objects[r.lastID] != nil {
		r.lastID++
	}
	return r.lastID
}

// Insert stores obj and appends it to a layer.
func (r *Repository) Insert(layerID ID, obj draft.Object) error {
	if obj == nil {
		return errNilObject
	}
	l, err := r.Layer(layerID)
	if err != nil {
		return err
	}
	id := obj.ID()
	if _, exists := r.objects[id]; exists {
		return fmt.Errorf("%w: %s", draft.ErrDuplicateObject, id)
	}
	r.objects[id] = obj
	r.lastID = max(r.lastID, id)
	r.attach(l, id)

	draft.Logger().Debug("object inserted", "object", id, "kind", obj.Kind(), "layer", l.name)
	r.emit(Event{Kind: ObjectAdded, Layer: layerID, Object: id})
	return nil
}

// AddObject appends a stored object to a layer. The id is first removed
// from whichever other layer owns it, so an object is never on two layers.
// Adding an object to the layer that already owns it does nothing.
func (r *Repository) AddObject(layerID ID, objectID draft.ObjectID) error {
	l, err := r.Layer(layerID)
	if err != nil {
		return err
	}
	if _, ok := r.objects[objectID]; !ok {
		return &draft.NotFoundError{Kind: "object", ID: objectID.String()}
	}
	prev := r.owner[objectID]
	if prev == l {
		return nil
	}
	if prev != nil {
		r.detach(prev, objectID)
	}
	r.attach(l, objectID)

	if prev != nil {
		r.emit(Event{Kind: ObjectMoved, Layer: layerID, From: prev.id, Object: objectID})
	} else {
		r.emit(Event{Kind: ObjectAdded, Layer: layerID, Object: objectID})
	}
	return nil
}

// MoveObject transfers an owned object to another layer in one step.
func (r *Repository) MoveObject(objectID draft.ObjectID, to ID) error {
	if _, ok := r.owner[objectID]; !ok {
		return &draft.NotFoundError{Kind: "object", ID: objectID.String()}
	}
	return r.AddObject(to, objectID)
}

// RemoveObject detaches an object from a layer. The object stays in the
// store, unowned, until it is added to a layer again or deleted.
func (r *Repository) RemoveObject(layerID ID, objectID draft.ObjectID) error {
	l, err := r.Layer(layerID)
	if err != nil {
		return err
	}
	if r.owner[objectID] != l {
		return &draft.NotFoundError{Kind: "object", ID: objectID.String()}
	}
	r.detach(l, objectID)
	r.emit(Event{Kind: ObjectRemoved, Layer: layerID, Object: objectID})
	return nil
}

// DeleteObject drops an object from the store and from its layer, and
// returns it so an undo collaborator can re-insert it.
func (r *Repository) DeleteObject(objectID draft.ObjectID) (draft.Object, error) {
	obj, ok := r.objects[objectID]
	if !ok {
		return nil, &draft.NotFoundError{Kind: "object", ID: objectID.String()}
	}
	l := r.owner[objectID]
	if l != nil {
		r.detach(l, objectID)
	}
	delete(r.objects, objectID)

	if l != nil {
		r.emit(Event{Kind: ObjectRemoved, Layer: l.id, Object: objectID})
	}
	return obj, nil
}

// Object returns a stored object.
func (r *Repository) Object(id draft.ObjectID) (draft.Object, bool) {
	obj, ok := r.objects[id]
	return obj, ok
}

// Owner returns the layer that owns an object.
func (r *Repository) Owner(id draft.ObjectID) (ID, bool) {
	l, ok := r.owner[id]
	if !ok {
		return Nil, false
	}
	return l.id, true
}

// ObjectCount returns the number of stored objects, owned or not.
func (r *Repository) ObjectCount() int {
	return len(r.objects)
}

func (r *Repository) attach(l *Layer, id draft.ObjectID) {
	l.objects = append(l.objects, id)
	r.owner[id] = l
}

func (r *Repository) detach(l *Layer, id draft.ObjectID) {
	if i := l.indexOf(id); i >= 0 {
		l.objects = slices.Delete(l.objects, i, i+1)
	}
	delete(r.owner, id)
}
