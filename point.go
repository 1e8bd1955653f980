package draft

import (
	"math"
	"strconv"
)

// Point is a position or displacement in the plane. The type does not
// record whether it holds world or device coordinates; every API that
// takes one says which it expects.
type Point struct {
	X, Y float64
}

// Pt returns Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

func (p Point) Add(q Point) Point     { return Point{X: p.X + q.X, Y: p.Y + q.Y} }
func (p Point) Sub(q Point) Point     { return Point{X: p.X - q.X, Y: p.Y - q.Y} }
func (p Point) Mul(s float64) Point   { return Point{X: p.X * s, Y: p.Y * s} }
func (p Point) Dot(q Point) float64   { return p.X*q.X + p.Y*q.Y }
func (p Point) Cross(q Point) float64 { return p.X*q.Y - p.Y*q.X }

// Length is the Euclidean norm of p taken as a vector.
func (p Point) Length() float64 { return math.Hypot(p.X, p.Y) }

// LengthSquared avoids the square root when only comparisons are needed.
func (p Point) LengthSquared() float64 { return p.Dot(p) }

// Distance is the Euclidean distance between p and q.
func (p Point) Distance(q Point) float64 { return p.Sub(q).Length() }

// NearlyEqual reports whether p and q differ by at most eps on each axis.
func (p Point) NearlyEqual(q Point, eps float64) bool {
	return math.Abs(p.X-q.X) <= eps && math.Abs(p.Y-q.Y) <= eps
}

// Lerp moves from p toward q by the fraction t.
func (p Point) Lerp(q Point, t float64) Point {
	return p.Add(q.Sub(p).Mul(t))
}

// String formats p as "(x, y)" for logs and status lines.
func (p Point) String() string {
	return "(" + strconv.FormatFloat(p.X, 'g', -1, 64) + ", " + strconv.FormatFloat(p.Y, 'g', -1, 64) + ")"
}
