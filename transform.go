package draft

import "math"

// Supported zoom range, in device pixels per world unit.
const (
	MinZoom = 1e-4
	MaxZoom = 1e4
)

// ViewTransform maps world coordinates onto the viewport.
//
// World Y points up and device Y points down, so
//
//	device.X = world.X*Zoom + Pan.X
//	device.Y = Pan.Y - world.Y*Zoom
//
// Pan is the device position of the world origin.
type ViewTransform struct {
	Pan  Point
	Zoom float64
}

// NewViewTransform returns a transform with the given pan and a zoom
// clamped to [MinZoom, MaxZoom].
func NewViewTransform(pan Point, zoom float64) ViewTransform {
	return ViewTransform{Pan: pan, Zoom: ClampZoom(zoom)}
}

// ClampZoom limits z to the supported zoom range. NaN and non-positive
// values map to MinZoom.
func ClampZoom(z float64) float64 {
	if math.IsNaN(z) || z < MinZoom {
		return MinZoom
	}
	return math.Min(z, MaxZoom)
}

// PanBy returns the transform shifted by a device-space drag.
func (t ViewTransform) PanBy(delta Point) ViewTransform {
	t.Pan = t.Pan.Add(delta)
	return t
}

// ZoomAt returns the transform scaled by factor while keeping the world
// point under the device position anchor fixed on screen.
func (t ViewTransform) ZoomAt(anchor Point, factor float64) ViewTransform {
	w := DeviceToWorld(anchor, t)
	zoom := ClampZoom(t.Zoom * factor)
	return ViewTransform{
		Pan:  Point{X: anchor.X - w.X*zoom, Y: anchor.Y + w.Y*zoom},
		Zoom: zoom,
	}
}

// WorldToDevice converts a world point into device coordinates.
func WorldToDevice(p Point, t ViewTransform) Point {
	return Point{
		X: p.X*t.Zoom + t.Pan.X,
		Y: t.Pan.Y - p.Y*t.Zoom,
	}
}

// DeviceToWorld converts a device point into world coordinates. It is the
// exact inverse of WorldToDevice up to floating-point rounding.
func DeviceToWorld(p Point, t ViewTransform) Point {
	return Point{
		X: (p.X - t.Pan.X) / t.Zoom,
		Y: (t.Pan.Y - p.Y) / t.Zoom,
	}
}

// WorldLength converts a device-space distance into world units.
func (t ViewTransform) WorldLength(px float64) float64 {
	return px / t.Zoom
}
