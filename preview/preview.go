// Package preview rasterizes a drawing for inspection.
//
// The drafting core never draws; preview is a small reference drawing
// surface used by the demo CLI and by tests. It consumes exactly what a
// real surface would: a layer snapshot, the view state, ruler ticks and
// the cursor and session state of the construction tool.
//
// # Example
//
//	r := preview.NewRenderer()
//	img := r.Render(preview.Frame{
//	    Snapshot: repo.Snapshot(),
//	    View:     sync.State(),
//	})
//	preview.SavePNG("drawing.png", img)
package preview

import (
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/gogpu/draft"
	"github.com/gogpu/draft/layer"
	"github.com/gogpu/draft/snap"
	"github.com/gogpu/draft/view"
)

// minGridPx is the closest grid line spacing that is still drawn.
const minGridPx = 2

// Frame is everything needed to draw one image.
type Frame struct {
	Snapshot layer.Snapshot
	View     view.State
	// GridVisible draws the grid at View.GridStep.
	GridVisible bool
	// Horizontal and Vertical are ruler ticks; rulers are drawn when
	// either is non-empty.
	Horizontal, Vertical []view.Tick
	// Session holds the committed vertices of a construction in progress.
	Session []draft.Point
	// Cursor is the latest resolved input position, if any.
	Cursor *snap.Candidate
}

// Style sets colors and sizes in device pixels.
type Style struct {
	Background draft.RGBA
	Grid       draft.RGBA
	RulerBand  draft.RGBA
	RulerInk   draft.RGBA
	Session    draft.RGBA
	Cursor     draft.RGBA

	StrokeWidth float64
	VertexSize  float64
	RulerSize   float64
}

// DefaultStyle returns a light theme.
func DefaultStyle() Style {
	return Style{
		Background:  draft.White,
		Grid:        draft.RGB(0.85, 0.88, 0.92),
		RulerBand:   draft.RGB(0.95, 0.95, 0.95),
		RulerInk:    draft.RGB(0.25, 0.25, 0.25),
		Session:     draft.RGB(0.1, 0.45, 0.9),
		Cursor:      draft.RGB(0.9, 0.3, 0.1),
		StrokeWidth: 2,
		VertexSize:  5,
		RulerSize:   18,
	}
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithStyle replaces the default style.
func WithStyle(s Style) Option {
	return func(r *Renderer) { r.style = s }
}

// Renderer draws frames. A Renderer reuses its rasterizer and is not safe
// for concurrent use.
type Renderer struct {
	style Style
	ras   *vector.Rasterizer
	dst   *image.RGBA
}

// NewRenderer creates a renderer.
func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{
		style: DefaultStyle(),
		ras:   &vector.Rasterizer{},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render draws f into a new image the size of the viewport.
func (r *Renderer) Render(f Frame) *image.RGBA {
	w, h := f.View.Width, f.View.Height
	r.dst = image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(r.dst, r.dst.Bounds(), image.NewUniform(r.style.Background.Color()), image.Point{}, draw.Src)
	if w == 0 || h == 0 {
		return r.dst
	}

	t := f.View.Transform
	if f.GridVisible {
		r.grid(f.View)
	}
	for _, ls := range f.Snapshot.Layers {
		if !ls.Visible {
			continue
		}
		r.begin()
		for _, id := range ls.Objects {
			obj, ok := f.Snapshot.Objects[id]
			if !ok {
				continue
			}
			r.object(obj, t)
		}
		r.fill(ls.Color)
	}
	if len(f.Session) > 0 {
		r.session(f.Session, f.Cursor, t)
	}
	if f.Cursor != nil {
		r.begin()
		r.marker(f.Cursor.Device, r.style.VertexSize+2)
		r.fill(r.style.Cursor)
	}
	if len(f.Horizontal) > 0 || len(f.Vertical) > 0 {
		r.rulers(f.Horizontal, f.Vertical)
	}

	draft.Logger().Debug("preview rendered", "width", w, "height", h, "layers", len(f.Snapshot.Layers))
	return r.dst
}

func (r *Renderer) object(obj draft.Object, t draft.ViewTransform) {
	for _, seg := range obj.Segments() {
		r.segment(draft.WorldToDevice(seg.P0, t), draft.WorldToDevice(seg.P1, t), r.style.StrokeWidth)
	}
	for _, v := range obj.Vertices() {
		r.marker(draft.WorldToDevice(v, t), r.style.VertexSize)
	}
}

func (r *Renderer) session(vs []draft.Point, cursor *snap.Candidate, t draft.ViewTransform) {
	r.begin()
	prev := draft.WorldToDevice(vs[0], t)
	r.marker(prev, r.style.VertexSize)
	for _, v := range vs[1:] {
		d := draft.WorldToDevice(v, t)
		r.segment(prev, d, r.style.StrokeWidth)
		r.marker(d, r.style.VertexSize)
		prev = d
	}
	if cursor != nil {
		r.segment(prev, cursor.Device, r.style.StrokeWidth/2)
	}
	r.fill(r.style.Session)
}

func (r *Renderer) grid(st view.State) {
	t := st.Transform
	step := st.GridStep
	if !(step*t.Zoom >= minGridPx) {
		return
	}
	r.begin()
	for x := math.Ceil(st.Visible.Min.X/step) * step; x <= st.Visible.Max.X; x += step {
		dx := x*t.Zoom + t.Pan.X
		r.rect(dx-0.5, 0, dx+0.5, float64(st.Height))
	}
	for y := math.Ceil(st.Visible.Min.Y/step) * step; y <= st.Visible.Max.Y; y += step {
		dy := t.Pan.Y - y*t.Zoom
		r.rect(0, dy-0.5, float64(st.Width), dy+0.5)
	}
	r.fill(r.style.Grid)
}

func (r *Renderer) rulers(horizontal, vertical []view.Tick) {
	w, h := float64(r.dst.Bounds().Dx()), float64(r.dst.Bounds().Dy())
	size := r.style.RulerSize

	r.begin()
	r.rect(0, 0, w, size)
	r.rect(0, size, size, h)
	r.fill(r.style.RulerBand)

	r.begin()
	for _, tk := range horizontal {
		r.rect(tk.Device-0.5, size-tickLength(tk, size), tk.Device+0.5, size)
	}
	for _, tk := range vertical {
		r.rect(size-tickLength(tk, size), tk.Device-0.5, size, tk.Device+0.5)
	}
	r.fill(r.style.RulerInk)

	d := &font.Drawer{
		Dst:  r.dst,
		Src:  image.NewUniform(r.style.RulerInk.Color()),
		Face: basicfont.Face7x13,
	}
	for _, tk := range horizontal {
		if tk.Label == "" {
			continue
		}
		d.Dot = fixed.P(int(tk.Device)+2, 11)
		d.DrawString(tk.Label)
	}
	for _, tk := range vertical {
		if tk.Label == "" {
			continue
		}
		d.Dot = fixed.P(1, int(tk.Device)+12)
		d.DrawString(tk.Label)
	}
}

func tickLength(tk view.Tick, size float64) float64 {
	if tk.Major {
		return size
	}
	return size / 3
}

// begin starts a new coverage mask covering the whole image.
func (r *Renderer) begin() {
	b := r.dst.Bounds()
	r.ras.Reset(b.Dx(), b.Dy())
}

// fill composites the accumulated coverage in color c.
func (r *Renderer) fill(c draft.RGBA) {
	r.ras.Draw(r.dst, r.dst.Bounds(), image.NewUniform(c.Color()), image.Point{})
}

// segment adds a stroke of the given width from a to b. Quads wind like
// rect so overlapping shapes in one pass never cancel.
func (r *Renderer) segment(a, b draft.Point, width float64) {
	d := b.Sub(a)
	l := d.Length()
	if l == 0 {
		return
	}
	n := draft.Pt(d.Y, -d.X).Mul(width / 2 / l)
	r.polygon(a.Add(n), b.Add(n), b.Sub(n), a.Sub(n))
}

func (r *Renderer) marker(p draft.Point, size float64) {
	h := size / 2
	r.rect(p.X-h, p.Y-h, p.X+h, p.Y+h)
}

func (r *Renderer) rect(x0, y0, x1, y1 float64) {
	r.polygon(draft.Pt(x0, y0), draft.Pt(x1, y0), draft.Pt(x1, y1), draft.Pt(x0, y1))
}

func (r *Renderer) polygon(pts ...draft.Point) {
	r.ras.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		r.ras.LineTo(float32(p.X), float32(p.Y))
	}
	r.ras.ClosePath()
}

// WritePNG encodes img as PNG.
func WritePNG(w io.Writer, img image.Image) error {
	return png.Encode(w, img)
}

// SavePNG writes img to path as PNG.
func SavePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
