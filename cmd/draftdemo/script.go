package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/gogpu/draft"
	"github.com/gogpu/draft/config"
	"github.com/gogpu/draft/editor"
	"github.com/gogpu/draft/layer"
	"github.com/gogpu/draft/snap"
	"github.com/gogpu/draft/tool"
)

// Script is a replayable construction session.
//
//	viewport: {width: 800, height: 600}
//	view: {pan: [0, 600], zoom: 10}
//	layers:
//	  - {name: Cut, color: "#d03030ff", fabrication: {tool: 2, depth: 0.125}}
//	active: Cut
//	steps:
//	  - press: [2, 598]
//	  - move: [60, 580]
//	  - double: [101, 601]
type Script struct {
	Viewport ViewportSpec `yaml:"viewport"`
	View     ViewSpec     `yaml:"view"`
	Layers   []LayerSpec  `yaml:"layers"`
	Active   string       `yaml:"active"`
	Steps    []Step       `yaml:"steps"`
}

// ViewportSpec is the image size in pixels.
type ViewportSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// ViewSpec is a pan/zoom transform.
type ViewSpec struct {
	Pan  XY      `yaml:"pan"`
	Zoom float64 `yaml:"zoom"`
}

// LayerSpec creates one layer.
type LayerSpec struct {
	Name        string           `yaml:"name"`
	Color       *draft.RGBA      `yaml:"color"`
	Hidden      bool             `yaml:"hidden"`
	Locked      bool             `yaml:"locked"`
	Fabrication *FabricationSpec `yaml:"fabrication"`
}

// FabricationSpec is layer machining metadata.
type FabricationSpec struct {
	Tool  int     `yaml:"tool"`
	Depth float64 `yaml:"depth"`
}

// XY is a device position written as [x, y].
type XY [2]float64

// Point converts xy to a draft.Point.
func (xy XY) Point() draft.Point { return draft.Pt(xy[0], xy[1]) }

// Step is one script entry. Tool, Layer and View apply before the input;
// at most one input field may be set.
type Step struct {
	Tool  string    `yaml:"tool"`
	Layer string    `yaml:"layer"`
	View  *ViewSpec `yaml:"view"`

	Press  *XY  `yaml:"press"`
	Move   *XY  `yaml:"move"`
	Double *XY  `yaml:"double"`
	Close  *XY  `yaml:"close"`
	Finish bool `yaml:"finish"`
	Cancel bool `yaml:"cancel"`
}

func (s Step) input() (tool.Input, bool, error) {
	var ins []tool.Input
	add := func(k tool.InputKind, at *XY) {
		if at != nil {
			ins = append(ins, tool.Input{Kind: k, At: at.Point()})
		}
	}
	add(tool.Press, s.Press)
	add(tool.Move, s.Move)
	add(tool.DoublePress, s.Double)
	add(tool.Close, s.Close)
	if s.Finish {
		ins = append(ins, tool.Input{Kind: tool.Finish})
	}
	if s.Cancel {
		ins = append(ins, tool.Input{Kind: tool.Cancel})
	}
	switch len(ins) {
	case 0:
		return tool.Input{}, false, nil
	case 1:
		return ins[0], true, nil
	default:
		return tool.Input{}, false, errors.New("more than one input in a step")
	}
}

// LoadScript reads a script file.
func LoadScript(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s := &Script{}
	if err := yaml.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("script %s: %w", path, err)
	}
	return s, nil
}

// session is the outcome of a replayed script.
type session struct {
	editor   *editor.Editor
	cursor   *snap.Candidate
	finished int
	rejected int
}

// run replays s with cfg and reports constructed objects to out.
func (s *Script) run(cfg config.Config, out io.Writer) (*session, error) {
	repo := layer.New()
	for _, ls := range s.Layers {
		if err := createLayer(repo, ls); err != nil {
			return nil, err
		}
	}
	if s.Active != "" {
		cfg.ActiveLayer = s.Active
	}

	w, h := s.Viewport.Width, s.Viewport.Height
	if w <= 0 || h <= 0 {
		w, h = 800, 600
	}
	ed, err := editor.New(cfg, editor.WithRepository(repo), editor.WithViewport(w, h))
	if err != nil {
		return nil, err
	}
	ed.SetView(s.View.transform(h))

	res := &session{editor: ed}
	ed.Tool().Subscribe(func(ev tool.Event) {
		switch ev.Kind {
		case tool.SessionFinished:
			res.finished++
			describe(out, repo, ev.Object, cfg.Units)
		case tool.SessionFailed:
			res.rejected++
			fmt.Fprintf(out, "rejected %s: %v\n", ev.Tool, ev.Err)
		}
	})

	for i, st := range s.Steps {
		if err := res.apply(st); err != nil {
			return res, fmt.Errorf("step %d: %w", i+1, err)
		}
	}
	return res, nil
}

func (r *session) apply(st Step) error {
	ed := r.editor
	if st.Tool != "" {
		if err := ed.SelectTool(st.Tool); err != nil {
			return err
		}
	}
	if st.Layer != "" {
		l, err := ed.Repository().LayerByName(st.Layer)
		if err != nil {
			return err
		}
		if err := ed.SetActiveLayer(l.ID()); err != nil {
			return err
		}
	}
	if st.View != nil {
		ed.SetView(st.View.transform(ed.View().State().Height))
	}

	in, ok, err := st.input()
	if err != nil || !ok {
		return err
	}
	outcome, err := ed.Handle(in)
	if in.Kind != tool.Finish && in.Kind != tool.Cancel {
		c := outcome.Candidate
		r.cursor = &c
	}
	// Rejected constructions are reported through SessionFailed and the
	// script carries on.
	if err != nil && !errors.Is(err, draft.ErrDegenerateGeometry) {
		return err
	}
	return nil
}

// transform returns the view, defaulting to zoom 10 with the world origin
// at the bottom-left corner.
func (v ViewSpec) transform(height int) draft.ViewTransform {
	if v.Zoom == 0 {
		return draft.NewViewTransform(draft.Pt(0, float64(height)), 10)
	}
	return draft.NewViewTransform(v.Pan.Point(), v.Zoom)
}

func createLayer(repo *layer.Repository, ls LayerSpec) error {
	id, err := repo.CreateLayer(ls.Name)
	if err != nil {
		return err
	}
	if ls.Color != nil {
		if err := repo.SetColor(id, *ls.Color); err != nil {
			return err
		}
	}
	if err := repo.SetVisible(id, !ls.Hidden); err != nil {
		return err
	}
	if err := repo.SetLocked(id, ls.Locked); err != nil {
		return err
	}
	if f := ls.Fabrication; f != nil {
		return repo.SetFabrication(id, &layer.Fabrication{ToolIndex: f.Tool, CutDepth: f.Depth})
	}
	return nil
}

func describe(w io.Writer, repo *layer.Repository, id draft.ObjectID, u draft.UnitFamily) {
	obj, ok := repo.Object(id)
	if !ok {
		return
	}
	name := "?"
	if lid, ok := repo.Owner(id); ok {
		if l, err := repo.Layer(lid); err == nil {
			name = l.Name()
		}
	}
	fmt.Fprintf(w, "object %v on %q: %s, %d vertices", id, name, obj.Kind(), len(obj.Vertices()))
	if pl, ok := obj.(*draft.Polyline); ok {
		fmt.Fprintf(w, ", length %s", draft.FormatLength(pl.Length(), u))
		if pl.IsClosed() {
			fmt.Fprintf(w, ", closed, area %.4g sq %s", pl.Area(), areaUnit(u))
		}
	}
	fmt.Fprintln(w)
}

func areaUnit(u draft.UnitFamily) string {
	if u == draft.UnitMetric {
		return "mm"
	}
	return "in"
}
