package layer

import "github.com/gogpu/draft"

// EventKind identifies a repository change.
type EventKind uint8

// Repository event kinds.
const (
	LayerCreated EventKind = iota
	LayerDeleted
	LayersReordered
	// LayerUpdated covers rename, visibility, lock, color and fabrication changes.
	LayerUpdated
	ObjectAdded
	ObjectRemoved
	// ObjectMoved is an object changing owner; From is the previous layer.
	ObjectMoved
)

// String returns a human-readable name for the event kind.
func (k EventKind) String() string {
	switch k {
	case LayerCreated:
		return "LayerCreated"
	case LayerDeleted:
		return "LayerDeleted"
	case LayersReordered:
		return "LayersReordered"
	case LayerUpdated:
		return "LayerUpdated"
	case ObjectAdded:
		return "ObjectAdded"
	case ObjectRemoved:
		return "ObjectRemoved"
	case ObjectMoved:
		return "ObjectMoved"
	default:
		return "Unknown"
	}
}

// Event describes one completed mutation. Listeners run after the
// repository is consistent again.
type Event struct {
	Kind   EventKind
	Layer  ID
	From   ID
	Object draft.ObjectID
}

// Listener receives repository events synchronously on the mutating
// goroutine. Listeners must not mutate the repository.
type Listener func(Event)

type subscription struct {
	id int
	fn Listener
}

// Subscribe registers fn for all subsequent events and returns a function
// that removes it. Calling the cancel function more than once is harmless.
func (r *Repository) Subscribe(fn Listener) (cancel func()) {
	r.nextSub++
	id := r.nextSub
	r.subs = append(r.subs, subscription{id: id, fn: fn})
	return func() {
		for i, s := range r.subs {
			if s.id == id {
				r.subs = append(r.subs[:i:i], r.subs[i+1:]...)
				return
			}
		}
	}
}

func (r *Repository) emit(ev Event) {
	for _, s := range r.subs {
		s.fn(ev)
	}
}
