package layer

import "github.com/gogpu/draft"

// LayerSnapshot is a value copy of a layer.
type LayerSnapshot struct {
	ID          ID
	Name        string
	Visible     bool
	Locked      bool
	Color       draft.RGBA
	Fabrication *Fabrication
	Objects     []draft.ObjectID
}

// Snapshot is a deep copy of a repository, safe to read on other
// goroutines while the input loop keeps mutating the original. Readers
// must not mutate the copied objects.
type Snapshot struct {
	// Layers are back-to-front.
	Layers  []LayerSnapshot
	Objects map[draft.ObjectID]draft.Object
}

// Snapshot copies the current layers and owned objects.
func (r *Repository) Snapshot() Snapshot {
	s := Snapshot{
		Layers:  make([]LayerSnapshot, 0, len(r.layers)),
		Objects: make(map[draft.ObjectID]draft.Object, len(r.owner)),
	}
	for _, l := range r.layers {
		s.Layers = append(s.Layers, l.snapshot())
		for _, id := range l.objects {
			s.Objects[id] = r.objects[id].Clone()
		}
	}
	return s
}
