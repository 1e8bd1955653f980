package draft

import (
	"fmt"
	"image/color"
	"math"
)

// RGBA is a layer display color. Each component is in the range [0, 1].
type RGBA struct {
	R, G, B, A float64
}

// Default layer colors.
var (
	Black = RGB(0, 0, 0)
	White = RGB(1, 1, 1)
)

// Color converts RGBA to the standard color.Color interface.
func (c RGBA) Color() color.Color {
	return color.NRGBA{
		R: uint8(clamp255(c.R * 255)),
		G: uint8(clamp255(c.G * 255)),
		B: uint8(clamp255(c.B * 255)),
		A: uint8(clamp255(c.A * 255)),
	}
}

// RGB creates an opaque color from RGB components.
func RGB(r, g, b float64) RGBA {
	return RGBA{R: r, G: g, B: b, A: 1.0}
}

// String returns the color as "#rrggbbaa".
func (c RGBA) String() string {
	n := c.Color().(color.NRGBA)
	return fmt.Sprintf("#%02x%02x%02x%02x", n.R, n.G, n.B, n.A)
}

// ParseHex creates a color from a hex string with an optional leading '#'.
// Supports formats: "RGB", "RGBA", "RRGGBB", "RRGGBBAA".
func ParseHex(hex string) (RGBA, error) {
	s := hex
	if s != "" && s[0] == '#' {
		s = s[1:]
	}
	var digits [8]uint32
	for i := 0; i < len(s) && i < len(digits); i++ {
		d, ok := hexDigit(s[i])
		if !ok {
			return RGBA{}, fmt.Errorf("draft: invalid hex color %q", hex)
		}
		digits[i] = d
	}

	var r, g, b, a uint32
	switch len(s) {
	case 3:
		r, g, b, a = digits[0]*17, digits[1]*17, digits[2]*17, 255
	case 4:
		r, g, b, a = digits[0]*17, digits[1]*17, digits[2]*17, digits[3]*17
	case 6:
		r, g, b, a = digits[0]<<4|digits[1], digits[2]<<4|digits[3], digits[4]<<4|digits[5], 255
	case 8:
		r, g, b, a = digits[0]<<4|digits[1], digits[2]<<4|digits[3], digits[4]<<4|digits[5], digits[6]<<4|digits[7]
	default:
		return RGBA{}, fmt.Errorf("draft: invalid hex color %q", hex)
	}
	return RGBA{
		R: float64(r) / 255,
		G: float64(g) / 255,
		B: float64(b) / 255,
		A: float64(a) / 255,
	}, nil
}

// MarshalText implements encoding.TextMarshaler.
func (c RGBA) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *RGBA) UnmarshalText(text []byte) error {
	v, err := ParseHex(string(text))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func hexDigit(c byte) (uint32, bool) {
	switch {
	case '0' <= c && c <= '9':
		return uint32(c - '0'), true
	case 'a' <= c && c <= 'f':
		return uint32(c - 'a' + 10), true
	case 'A' <= c && c <= 'F':
		return uint32(c - 'A' + 10), true
	}
	return 0, false
}

func clamp255(x float64) float64 {
	return math.Round(math.Max(0, math.Min(255, x)))
}
