package draft

import (
	"fmt"
	"math"
	"strings"
)

// UnitFamily selects the measurement system of a drawing and with it the
// table of "nice" grid steps. Inch families use inches as the world unit,
// the metric family uses millimetres.
type UnitFamily uint8

// Unit family constants.
const (
	// UnitDecimalInch measures in inches with 1/2/5 decimal grid steps.
	UnitDecimalInch UnitFamily = iota

	// UnitFractionalInch measures in inches with binary fraction grid steps.
	UnitFractionalInch

	// UnitMetric measures in millimetres with 1/2/5 decimal grid steps.
	UnitMetric
)

// MillimetresPerInch is the exact inch to millimetre ratio.
const MillimetresPerInch = 25.4

// String returns the configuration name of the unit family.
func (u UnitFamily) String() string {
	switch u {
	case UnitDecimalInch:
		return "decimal-inch"
	case UnitFractionalInch:
		return "fractional-inch"
	case UnitMetric:
		return "metric"
	default:
		return unknownStr
	}
}

// Valid reports whether u is one of the defined families.
func (u UnitFamily) Valid() bool { return u <= UnitMetric }

// Symbol returns the short unit suffix used in labels.
func (u UnitFamily) Symbol() string {
	if u == UnitMetric {
		return "mm"
	}
	return `"`
}

// ParseUnitFamily parses a unit family name as written in configuration.
func ParseUnitFamily(s string) (UnitFamily, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "decimal-inch", "decimal", "inch", "in":
		return UnitDecimalInch, nil
	case "fractional-inch", "fractional", "fraction":
		return UnitFractionalInch, nil
	case "metric", "mm", "millimetre", "millimeter":
		return UnitMetric, nil
	}
	return 0, fmt.Errorf("draft: unknown unit family %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (u UnitFamily) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *UnitFamily) UnmarshalText(text []byte) error {
	f, err := ParseUnitFamily(string(text))
	if err != nil {
		return err
	}
	*u = f
	return nil
}

// Steps returns the ascending table of natural grid steps for the family,
// in world units. The returned slice must not be modified.
func (u UnitFamily) Steps() []float64 {
	switch u {
	case UnitFractionalInch:
		return fractionalSteps
	default:
		return decimalSteps
	}
}

// Convert converts a length between the world units of two families.
func Convert(v float64, from, to UnitFamily) float64 {
	fromMetric, toMetric := from == UnitMetric, to == UnitMetric
	switch {
	case fromMetric && !toMetric:
		return v / MillimetresPerInch
	case !fromMetric && toMetric:
		return v * MillimetresPerInch
	}
	return v
}

// FormatLength renders a world length for a status line, e.g. `1.250"`,
// `1 1/4"` or `12.5 mm`. Fractional output is rounded to 1/64 inch.
func FormatLength(v float64, u UnitFamily) string {
	switch u {
	case UnitFractionalInch:
		return formatFraction(v)
	case UnitMetric:
		return fmt.Sprintf("%.4g mm", v)
	default:
		return fmt.Sprintf(`%.3f"`, v)
	}
}

func formatFraction(v float64) string {
	n := int64(math.Round(math.Abs(v) * 64))
	sign := ""
	if v < 0 && n != 0 {
		sign = "-"
	}
	whole, num, den := n/64, n%64, int64(64)
	for num != 0 && num%2 == 0 {
		num /= 2
		den /= 2
	}
	switch {
	case num == 0:
		return fmt.Sprintf(`%s%d"`, sign, whole)
	case whole == 0:
		return fmt.Sprintf(`%s%d/%d"`, sign, num, den)
	default:
		return fmt.Sprintf(`%s%d %d/%d"`, sign, whole, num, den)
	}
}

const unknownStr = "Unknown"

var (
	decimalSteps    = buildDecimalSteps(-6, 6)
	fractionalSteps = buildFractionalSteps()
)

// buildDecimalSteps returns 1, 2, 5 times every power of ten in [lo, hi].
func buildDecimalSteps(lo, hi int) []float64 {
	steps := make([]float64, 0, 3*(hi-lo+1))
	for e := lo; e <= hi; e++ {
		p := math.Pow10(e)
		steps = append(steps, p, 2*p, 5*p)
	}
	return steps
}

// buildFractionalSteps returns 1/64 .. 1/2 inch, then 1, 2 and 6 inches,
// then whole feet in 1/2/5 decades.
func buildFractionalSteps() []float64 {
	steps := make([]float64, 0, 32)
	for d := 64.0; d >= 2; d /= 2 {
		steps = append(steps, 1/d)
	}
	steps = append(steps, 1, 2, 6)
	for e := 0; e <= 4; e++ {
		p := 12 * math.Pow10(e)
		steps = append(steps, p, 2*p, 5*p)
	}
	return steps
}
