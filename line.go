package curve3

import "github.com/golang/geo/r3"

// Line represents a line segment between two points.
type Line struct {
	// The line's start point.
	P0 r3.Vector
	// The line's end point.
	P1 r3.Vector
}

// Length returns the length of the line.
func (l Line) Length() float64 {
	return l.P1.Sub(l.P0).Norm()
}

// Eval linearly interpolates between the line's end points. t isn't
// restricted to [0, 1].
func (l Line) Eval(t float64) r3.Vector {
	return lerp(l.P0, l.P1, t)
}

// Nearest returns the parameter in [0, 1] of the point on the line closest to
// pt, and the squared distance to it.
func (l Line) Nearest(pt r3.Vector) (distSq, t float64) {
	d := l.P1.Sub(l.P0)
	dotp := d.Dot(pt.Sub(l.P0))
	dSquared := d.Norm2()
	if dotp <= 0.0 {
		return pt.Sub(l.P0).Norm2(), 0.0
	} else if dotp >= dSquared {
		return pt.Sub(l.P1).Norm2(), 1.0
	} else {
		t := dotp / dSquared
		return pt.Sub(l.Eval(t)).Norm2(), t
	}
}
