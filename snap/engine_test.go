package snap

import (
	"testing"

	"github.com/gogpu/draft"
	"github.com/gogpu/draft/layer"
)

// view maps world (0,0) to device (0,500) at 10 px per unit. The decimal
// grid step at this zoom is 5 units (50 px).
var view = draft.NewViewTransform(draft.Pt(0, 500), 10)

func dev(x, y float64) draft.Point {
	return draft.WorldToDevice(draft.Pt(x, y), view)
}

type fixture struct {
	repo *layer.Repository
	l1   layer.ID
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	r := layer.New()
	id, err := r.CreateLayer("L1")
	if err != nil {
		t.Fatal(err)
	}
	return &fixture{repo: r, l1: id}
}

func (f *fixture) add(t *testing.T, l layer.ID, id draft.ObjectID, closed bool, pts ...draft.Point) {
	t.Helper()
	p, err := draft.NewPolyline(id, pts, closed)
	if err != nil {
		t.Fatal(err)
	}
	if err := f.repo.Insert(l, p); err != nil {
		t.Fatal(err)
	}
}

func square(x, y, s float64) []draft.Point {
	return []draft.Point{draft.Pt(x, y), draft.Pt(x+s, y), draft.Pt(x+s, y+s), draft.Pt(x, y+s)}
}

func TestVertexBeatsGrid(t *testing.T) {
	f := newFixture(t)
	f.add(t, f.l1, 1, true, square(0, 0, 10)...)
	e := New(f.repo)

	// (10,0) is both a vertex and a grid intersection.
	c := e.Resolve(dev(10, 0), view, false, 5)
	if c.Kind != Vertex || c.Object != 1 || c.Index != 1 {
		t.Fatalf("Resolve on vertex = %+v, want vertex 1 of object 1", c)
	}
	if c.Point != draft.Pt(10, 0) || c.Distance != 0 || c.Layer != f.l1 {
		t.Errorf("candidate = %+v", c)
	}
}

func TestEdgeBeatsGrid(t *testing.T) {
	f := newFixture(t)
	f.add(t, f.l1, 1, true, square(0, 0, 10)...)
	e := New(f.repo)

	c := e.Resolve(dev(5, 0.2), view, false, 5)
	if c.Kind != Edge || c.Object != 1 || c.Index != 0 {
		t.Fatalf("Resolve near edge = %+v, want edge 0", c)
	}
	if !c.Point.NearlyEqual(draft.Pt(5, 0), 1e-9) {
		t.Errorf("edge foot = %v, want (5,0)", c.Point)
	}
	if d := c.Distance; d < 1.999 || d > 2.001 {
		t.Errorf("distance = %g px, want 2", d)
	}
}

func TestClosingEdgeOfExplicitlyClosedPolygon(t *testing.T) {
	f := newFixture(t)
	f.add(t, f.l1, 1, true, square(0, 0, 10)...)
	e := New(f.repo, WithGridVisible(false))

	c := e.Resolve(dev(0.1, 6), view, false, 5)
	if c.Kind != Edge || c.Index != 3 {
		t.Fatalf("Resolve near closing edge = %+v, want edge 3", c)
	}
}

func TestEdgeProjectionNeverExtrapolates(t *testing.T) {
	f := newFixture(t)
	f.add(t, f.l1, 1, false, draft.Pt(0, 0), draft.Pt(10, 0))
	e := New(f.repo, WithGridVisible(false))

	// On the segment's supporting line, but 10 units past its end.
	c := e.Resolve(dev(20, 0), view, false, 5)
	if c.Kind != None {
		t.Errorf("Resolve beyond segment end = %+v, want none", c)
	}
}

func TestGridSnap(t *testing.T) {
	f := newFixture(t)
	e := New(f.repo)

	c := e.Resolve(dev(5.2, 9.8), view, false, 5)
	if c.Kind != Grid || !c.Point.NearlyEqual(draft.Pt(5, 10), 1e-9) {
		t.Errorf("Resolve near grid = %+v, want grid (5,10)", c)
	}

	e.SetGridVisible(false)
	c = e.Resolve(dev(5.2, 9.8), view, false, 5)
	if c.Kind != None {
		t.Errorf("grid hidden: kind = %v, want none", c.Kind)
	}
	if !c.Point.NearlyEqual(draft.Pt(5.2, 9.8), 1e-9) || c.Index != -1 {
		t.Errorf("none candidate = %+v, want raw world point", c)
	}
}

func TestNoSnapOutsideTolerance(t *testing.T) {
	f := newFixture(t)
	f.add(t, f.l1, 1, false, square(0, 0, 10)...)
	e := New(f.repo)

	c := e.Resolve(dev(2.5, 2.5), view, false, 5)
	if c.Kind != None {
		t.Errorf("Resolve far from everything = %+v, want none", c)
	}
}

func TestTieBreakByObjectIDThenIndex(t *testing.T) {
	f := newFixture(t)
	// Inserted in descending id order so iteration order alone would pick 3.
	f.add(t, f.l1, 3, false, draft.Pt(20, 20), draft.Pt(30, 20))
	f.add(t, f.l1, 2, false, draft.Pt(40, 40), draft.Pt(20, 20))
	e := New(f.repo)

	c := e.Resolve(dev(20, 20), view, false, 5)
	if c.Kind != Vertex || c.Object != 2 || c.Index != 1 {
		t.Errorf("coincident vertices: got object %d index %d, want object 2 index 1", c.Object, c.Index)
	}

	f2 := newFixture(t)
	f2.add(t, f2.l1, 7, false, draft.Pt(1, 1), draft.Pt(3, 3), draft.Pt(1, 1))
	c = New(f2.repo).Resolve(dev(1, 1), view, false, 5)
	if c.Object != 7 || c.Index != 0 {
		t.Errorf("repeated vertex: got index %d, want 0", c.Index)
	}
}

func TestNearestVertexWins(t *testing.T) {
	f := newFixture(t)
	f.add(t, f.l1, 1, false, draft.Pt(0, 0), draft.Pt(0.3, 0))
	e := New(f.repo, WithGridVisible(false))

	c := e.Resolve(dev(0.25, 0), view, false, 5)
	if c.Kind != Vertex || c.Index != 1 {
		t.Errorf("got %v index %d, want vertex 1", c.Kind, c.Index)
	}
}

func TestSingleVertexObjectHasNoEdges(t *testing.T) {
	f := newFixture(t)
	f.add(t, f.l1, 1, true, draft.Pt(7, 7))
	e := New(f.repo, WithGridVisible(false))

	if c := e.Resolve(dev(7.2, 7), view, false, 5); c.Kind != Vertex {
		t.Errorf("near single vertex: kind = %v, want vertex", c.Kind)
	}
	if c := e.Resolve(dev(7.8, 7), view, false, 5); c.Kind != None {
		t.Errorf("away from single vertex: kind = %v, want none", c.Kind)
	}
}

func TestIneligibleLayersAreSkipped(t *testing.T) {
	f := newFixture(t)
	l2, _ := f.repo.CreateLayer("L2")
	f.add(t, f.l1, 1, false, draft.Pt(1, 1), draft.Pt(2, 1))
	f.add(t, l2, 2, false, draft.Pt(3, 3), draft.Pt(4, 3))
	e := New(f.repo, WithGridVisible(false), WithActiveLayer(l2))

	tests := []struct {
		name       string
		setup      func()
		query      draft.Point
		activeOnly bool
		want       Kind
	}{
		{"visible unlocked", func() {}, dev(1, 1), false, Vertex},
		{"active only skips other layer", func() {}, dev(1, 1), true, None},
		{"active only finds active layer", func() {}, dev(3, 3), true, Vertex},
		{"locked layer", func() { _ = f.repo.SetLocked(f.l1, true) }, dev(1, 1), false, None},
		{"hidden layer", func() { _ = f.repo.SetLocked(f.l1, false); _ = f.repo.SetVisible(f.l1, false) }, dev(1, 1), false, None},
		{"shown again", func() { _ = f.repo.SetVisible(f.l1, true) }, dev(1, 1), false, Vertex},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			if c := e.Resolve(tt.query, view, tt.activeOnly, 5); c.Kind != tt.want {
				t.Errorf("kind = %v, want %v", c.Kind, tt.want)
			}
		})
	}
}

func TestToleranceIsMeasuredInDevicePixels(t *testing.T) {
	f := newFixture(t)
	f.add(t, f.l1, 1, false, draft.Pt(0, 0))
	e := New(f.repo, WithGridVisible(false))

	// 1 world unit away: 10 px at zoom 10, 1 px at zoom 1.
	zoomed := draft.NewViewTransform(draft.Pt(0, 500), 1)
	if c := e.Resolve(dev(1, 0), view, false, 5); c.Kind != None {
		t.Errorf("zoom 10: kind = %v, want none", c.Kind)
	}
	q := draft.WorldToDevice(draft.Pt(1, 0), zoomed)
	if c := e.Resolve(q, zoomed, false, 5); c.Kind != Vertex {
		t.Errorf("zoom 1: kind = %v, want vertex", c.Kind)
	}
}
