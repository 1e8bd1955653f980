package editor

import (
	"errors"
	"testing"

	"github.com/gogpu/draft"
	"github.com/gogpu/draft/config"
	"github.com/gogpu/draft/layer"
	"github.com/gogpu/draft/snap"
	"github.com/gogpu/draft/tool"
)

// newTestEditor shows world (0,0)-(80,60) in an 800x600 viewport with a
// 5 unit grid and an 8 px snap radius.
func newTestEditor(t *testing.T, cfg config.Config) *Editor {
	t.Helper()
	e, err := New(cfg, WithViewport(800, 600))
	if err != nil {
		t.Fatal(err)
	}
	e.SetView(draft.NewViewTransform(draft.Pt(0, 600), 10))
	return e
}

func press(t *testing.T, e *Editor, kind tool.InputKind, x, y float64) tool.Outcome {
	t.Helper()
	out, err := e.Handle(tool.Input{Kind: kind, At: draft.Pt(x, y)})
	if err != nil {
		t.Fatalf("%v at (%g,%g): %v", kind, x, y, err)
	}
	return out
}

func TestNewCreatesDefaultLayer(t *testing.T) {
	e := newTestEditor(t, config.Default())
	ls := e.Repository().Layers()
	if len(ls) != 1 || ls[0].Name() != DefaultLayerName {
		t.Fatalf("layers = %v", ls)
	}
	if e.ActiveLayer() != ls[0].ID() || e.Tool().TargetLayer() != ls[0].ID() {
		t.Error("default layer is not active")
	}
	if e.View().State().GridStep != 5 {
		t.Errorf("GridStep = %g, want 5", e.View().State().GridStep)
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := config.Default()
	cfg.SnapTolerancePx = -1
	if _, err := New(cfg); err == nil {
		t.Error("New accepted a negative tolerance")
	}
}

func TestDrawSnappedSquare(t *testing.T) {
	e := newTestEditor(t, config.Default())

	// Each press lands a few pixels off a grid intersection.
	press(t, e, tool.Press, 2, 598)
	press(t, e, tool.Press, 101, 601)
	press(t, e, tool.Press, 99, 502)
	press(t, e, tool.Press, 1, 499)
	// Closing near the first vertex snaps onto the session's own vertex.
	out := press(t, e, tool.Close, 3, 597)

	if out.Candidate.Kind != snap.Vertex || out.Candidate.Index != 0 {
		t.Errorf("close candidate = %+v, want session vertex 0", out.Candidate)
	}
	if !out.Finished {
		t.Fatal("square not finished")
	}
	obj, _ := e.Repository().Object(out.Object)
	want := []draft.Point{draft.Pt(0, 0), draft.Pt(10, 0), draft.Pt(10, 10), draft.Pt(0, 10)}
	got := obj.Vertices()
	if len(got) != len(want) {
		t.Fatalf("vertices = %v, want %v", got, want)
	}
	for i := range want {
		if !got[i].NearlyEqual(want[i], 1e-9) {
			t.Errorf("vertex %d = %v, want %v", i, got[i], want[i])
		}
	}
	if !obj.IsClosed() {
		t.Error("square is not closed")
	}
	if owner, _ := e.Repository().Owner(obj.ID()); owner != e.ActiveLayer() {
		t.Error("square not on the active layer")
	}

	// The finished square now attracts vertex snaps ahead of the grid.
	c := e.Resolve(draft.Pt(103, 503))
	if c.Kind != snap.Vertex || c.Object != obj.ID() || c.Index != 2 {
		t.Errorf("Resolve near corner = %+v, want vertex 2 of %v", c, obj.ID())
	}

	// Locked layers never snap.
	if err := e.Repository().SetLocked(e.ActiveLayer(), true); err != nil {
		t.Fatal(err)
	}
	if c := e.Resolve(draft.Pt(103, 503)); c.Kind != snap.Grid {
		t.Errorf("Resolve on locked layer = %v, want grid", c.Kind)
	}
}

func TestGridHiddenConfig(t *testing.T) {
	cfg := config.Default()
	cfg.GridVisible = false
	e := newTestEditor(t, cfg)
	c := e.Resolve(draft.Pt(2, 598))
	if c.Kind != snap.None {
		t.Errorf("Kind = %v, want none", c.Kind)
	}
	if !c.Point.NearlyEqual(draft.Pt(0.2, 0.2), 1e-9) {
		t.Errorf("raw point = %v, want (0.2, 0.2)", c.Point)
	}
}

func TestApplyConfigActiveLayer(t *testing.T) {
	e := newTestEditor(t, config.Default())
	first := e.ActiveLayer()
	cut, err := e.Repository().CreateLayer("Cut")
	if err != nil {
		t.Fatal(err)
	}

	cfg := e.Config()
	cfg.ActiveLayer = "Cut"
	if err := e.ApplyConfig(cfg); err != nil {
		t.Fatal(err)
	}
	if e.ActiveLayer() != cut {
		t.Error("active layer not selected by name")
	}

	cfg.ActiveLayer = first.String()
	if err := e.ApplyConfig(cfg); err != nil {
		t.Fatal(err)
	}
	if e.ActiveLayer() != first {
		t.Error("active layer not selected by id")
	}

	cfg.ActiveLayer = "Missing"
	cfg.Units = draft.UnitMetric
	if err := e.ApplyConfig(cfg); !errors.Is(err, draft.ErrNotFound) {
		t.Errorf("ApplyConfig(missing layer) = %v, want ErrNotFound", err)
	}
	if e.Config().Units != draft.UnitDecimalInch || e.ActiveLayer() != first {
		t.Error("failed ApplyConfig changed the editor")
	}
}

func TestApplyConfigKeepsActiveLayer(t *testing.T) {
	e := newTestEditor(t, config.Default())
	cut, err := e.Repository().CreateLayer("Cut")
	if err != nil {
		t.Fatal(err)
	}
	if err := e.SetActiveLayer(cut); err != nil {
		t.Fatal(err)
	}
	if got := e.Config().ActiveLayer; got != cut.String() {
		t.Errorf("Config().ActiveLayer = %q, want %q", got, cut)
	}

	cfg := e.Config()
	cfg.SnapTolerancePx = 12
	if err := e.ApplyConfig(cfg); err != nil {
		t.Fatal(err)
	}
	if e.ActiveLayer() != cut || e.Tool().TargetLayer() != cut || e.Snap().ActiveLayer() != cut {
		t.Errorf("tolerance change moved active layer to %v, want %v", e.ActiveLayer(), cut)
	}

	cfg = config.Default()
	cfg.Units = draft.UnitMetric
	if err := e.ApplyConfig(cfg); err != nil {
		t.Fatal(err)
	}
	if e.ActiveLayer() != cut {
		t.Errorf("empty ActiveLayer moved active layer to %v, want %v", e.ActiveLayer(), cut)
	}
}

func TestActiveLayerDeleted(t *testing.T) {
	e := newTestEditor(t, config.Default())
	first := e.ActiveLayer()
	cut, _ := e.Repository().CreateLayer("Cut")
	if err := e.SetActiveLayer(cut); err != nil {
		t.Fatal(err)
	}
	if err := e.Repository().DeleteLayer(cut); err != nil {
		t.Fatal(err)
	}
	if e.ActiveLayer() != first || e.Tool().TargetLayer() != first {
		t.Error("active layer did not fall back after delete")
	}
	if err := e.SetActiveLayer(layer.NewID()); !errors.Is(err, draft.ErrNotFound) {
		t.Errorf("SetActiveLayer(unknown) = %v", err)
	}
}

func TestActiveLayerOnlySnapping(t *testing.T) {
	cfg := config.Default()
	cfg.GridVisible = false
	e := newTestEditor(t, cfg)
	press(t, e, tool.Press, 100, 500)
	press(t, e, tool.DoublePress, 200, 500)

	other, _ := e.Repository().CreateLayer("Other")
	cfg.ActiveLayer = "Other"
	cfg.ActiveLayerOnly = true
	if err := e.ApplyConfig(cfg); err != nil {
		t.Fatal(err)
	}
	if e.ActiveLayer() != other {
		t.Fatal("Other is not active")
	}
	if c := e.Resolve(draft.Pt(101, 501)); c.Kind != snap.None {
		t.Errorf("snapped to a non-active layer: %v", c.Kind)
	}

	cfg.ActiveLayerOnly = false
	if err := e.ApplyConfig(cfg); err != nil {
		t.Fatal(err)
	}
	if c := e.Resolve(draft.Pt(101, 501)); c.Kind != snap.Vertex {
		t.Errorf("Kind = %v, want vertex", c.Kind)
	}
}

func TestSelectTool(t *testing.T) {
	e := newTestEditor(t, config.Default())
	if err := e.SelectTool("rectangle"); err != nil {
		t.Fatal(err)
	}
	press(t, e, tool.Press, 0, 600)
	out := press(t, e, tool.Press, 200, 400)
	obj, ok := e.Repository().Object(out.Object)
	if !ok || len(obj.Vertices()) != 4 || !obj.IsClosed() {
		t.Fatalf("rectangle = %v", obj)
	}
	if want := draft.NewRect(draft.Pt(0, 0), draft.Pt(20, 20)); obj.BoundingBox() != want {
		t.Errorf("BoundingBox() = %+v, want %+v", obj.BoundingBox(), want)
	}
	if err := e.SelectTool("spline"); err == nil {
		t.Error("SelectTool(unknown) succeeded")
	}
}
