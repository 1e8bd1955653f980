package draft

import (
	"fmt"
	"math"
)

// LegibilityBand bounds the on-screen distance between adjacent grid lines,
// in device pixels.
type LegibilityBand struct {
	MinPx float64
	MaxPx float64
}

// DefaultBand keeps grid lines between 8 and 80 pixels apart.
var DefaultBand = LegibilityBand{MinPx: 8, MaxPx: 80}

// Validate reports whether the band is usable.
func (b LegibilityBand) Validate() error {
	if !(b.MinPx > 0) || b.MaxPx < b.MinPx {
		return fmt.Errorf("draft: invalid legibility band [%g, %g]", b.MinPx, b.MaxPx)
	}
	return nil
}

// UnitSystem is the grid/unit descriptor of a drawing: a unit family plus
// the legibility band used to pick grid steps.
type UnitSystem struct {
	Family UnitFamily
	Band   LegibilityBand
}

// NewUnitSystem returns a unit system using DefaultBand.
func NewUnitSystem(f UnitFamily) UnitSystem {
	return UnitSystem{Family: f, Band: DefaultBand}
}

// GridSpacing returns the grid step for zoom using DefaultBand.
// See UnitSystem.GridSpacing.
func GridSpacing(zoom float64, f UnitFamily) float64 {
	return NewUnitSystem(f).GridSpacing(zoom)
}

// GridSpacing returns the largest natural step whose rendered spacing at
// zoom lies inside the band. When no step fits, it returns the smallest
// step at or above the band floor, and the coarsest step when even that
// does not exist. The result never grows as zoom increases.
func (u UnitSystem) GridSpacing(zoom float64) float64 {
	band := u.Band
	if band.Validate() != nil {
		band = DefaultBand
	}
	zoom = ClampZoom(zoom)
	steps := u.Family.Steps()
	lo, hi := band.MinPx/zoom, band.MaxPx/zoom

	for i := len(steps) - 1; i >= 0; i-- {
		if steps[i] <= hi {
			if steps[i] >= lo {
				return steps[i]
			}
			break
		}
	}
	for _, s := range steps {
		if s >= lo {
			return s
		}
	}
	return steps[len(steps)-1]
}

// NearestGridPoint returns the grid intersection nearest to p for a square
// grid of the given step anchored at the world origin.
func NearestGridPoint(p Point, step float64) Point {
	if !(step > 0) {
		return p
	}
	return Point{
		X: math.Round(p.X/step) * step,
		Y: math.Round(p.Y/step) * step,
	}
}
