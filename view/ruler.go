package view

import (
	"math"
	"slices"

	"golang.org/x/text/number"

	"github.com/gogpu/draft"
)

// Axis selects a ruler.
type Axis uint8

// Ruler axes.
const (
	Horizontal Axis = iota
	Vertical
)

// String returns "horizontal" or "vertical".
func (a Axis) String() string {
	if a == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// maxTicks bounds a single ruler.
const maxTicks = 4096

// Tick is one ruler graduation.
type Tick struct {
	// Device is the position along the ruler in device pixels.
	Device float64
	// World is the coordinate the tick marks.
	World float64
	Major bool
	// Label is set on major ticks only.
	Label string
}

// MajorEvery returns how many grid steps lie between labelled ticks for
// a unit family.
func MajorEvery(f draft.UnitFamily) int {
	if f == draft.UnitFractionalInch {
		return 4
	}
	return 5
}

// Ruler returns the ticks on one axis at every grid step across the
// viewport, ordered by increasing device position.
func (s *Sync) Ruler(axis Axis) []Tick {
	st := s.state
	step := st.GridStep
	if !(step > 0) || st.Width == 0 || st.Height == 0 {
		return nil
	}

	lo, hi := st.Visible.Min.X, st.Visible.Max.X
	if axis == Vertical {
		lo, hi = st.Visible.Min.Y, st.Visible.Max.Y
	}
	first := int64(math.Ceil(lo/step - 1e-9))
	last := int64(math.Floor(hi/step + 1e-9))
	if last < first || last-first >= maxTicks {
		return nil
	}

	every := int64(MajorEvery(st.Units.Family))
	digits := fractionDigits(step)
	ticks := make([]Tick, 0, last-first+1)
	for n := first; n <= last; n++ {
		v := float64(n) * step
		t := Tick{World: v, Major: n%every == 0}
		if axis == Vertical {
			t.Device = st.Transform.Pan.Y - v*st.Transform.Zoom
		} else {
			t.Device = v*st.Transform.Zoom + st.Transform.Pan.X
		}
		if t.Major {
			t.Label = s.label(v, digits)
		}
		ticks = append(ticks, t)
	}
	if axis == Vertical {
		// World Y grows upward, device Y downward.
		slices.Reverse(ticks)
	}
	return ticks
}

func (s *Sync) label(v float64, digits int) string {
	if s.state.Units.Family == draft.UnitFractionalInch {
		return draft.FormatLength(v, draft.UnitFractionalInch)
	}
	return s.printer.Sprint(number.Decimal(v, number.MaxFractionDigits(digits)))
}

// fractionDigits is the number of decimals needed to print multiples of
// a {1,2,5}·10^k step exactly.
func fractionDigits(step float64) int {
	if !(step > 0) {
		return 0
	}
	d := -int(math.Floor(math.Log10(step) + 1e-9))
	return min(max(d, 0), 6)
}
