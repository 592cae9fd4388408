package curve3

import (
	"math"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// maxNearestDepth bounds the subdivision in [CubicBez.Nearest] for tolerances
// that float64 can't resolve.
const maxNearestDepth = 200

// CubicBez is a cubic Bézier segment in 3D space. P0 and P3 are on the curve,
// P1 and P2 are the handles that shape the tangents at P0 and P3.
type CubicBez struct {
	P0 r3.Vector
	P1 r3.Vector
	P2 r3.Vector
	P3 r3.Vector
}

// cubicAt returns the segment formed by the first four points of pts.
func cubicAt(pts []r3.Vector) CubicBez {
	_ = pts[3]
	return CubicBez{pts[0], pts[1], pts[2], pts[3]}
}

func checkParam(t float64) error {
	if !(t >= 0 && t <= 1) {
		return errors.Wrapf(ErrParamDomain, "t = %g, want [0, 1]", t)
	}
	return nil
}

func (c CubicBez) IsInf() bool {
	return isInf(c.P0) || isInf(c.P1) || isInf(c.P2) || isInf(c.P3)
}

func (c CubicBez) IsNaN() bool {
	return isNaN(c.P0) || isNaN(c.P1) || isNaN(c.P2) || isNaN(c.P3)
}

func (c CubicBez) Start() r3.Vector {
	return c.P0
}

func (c CubicBez) End() r3.Vector {
	return c.P3
}

// Eval evaluates the segment at t, which must be in [0, 1]. It returns an error
// wrapping [ErrParamDomain] otherwise.
//
// Eval(0) is exactly P0 and Eval(1) is exactly P3.
func (c CubicBez) Eval(t float64) (r3.Vector, error) {
	if err := checkParam(t); err != nil {
		return r3.Vector{}, err
	}
	return c.eval(t), nil
}

func (c CubicBez) eval(t float64) r3.Vector {
	mt := 1 - t
	a := c.P0.Mul(mt * mt * mt)
	b := c.P1.Mul(3 * t * mt * mt)
	d := c.P2.Mul(3 * t * t * mt)
	e := c.P3.Mul(t * t * t)
	return a.Add(b).Add(d).Add(e)
}

// Tangent returns the tangent of the segment at t, which must be in [0, 1].
//
// The tangent is not normalized. It is a third of the derivative, so its
// magnitude reflects the spacing of the control points around t: at t = 0 it
// is P1-P0, at t = 1 it is P3-P2.
func (c CubicBez) Tangent(t float64) (r3.Vector, error) {
	if err := checkParam(t); err != nil {
		return r3.Vector{}, err
	}
	return c.tangent(t), nil
}

func (c CubicBez) tangent(t float64) r3.Vector {
	// Two rounds of de Casteljau, then the difference of the remaining pair.
	q0 := lerp(c.P0, c.P1, t)
	q1 := lerp(c.P1, c.P2, t)
	q2 := lerp(c.P2, c.P3, t)
	r0 := lerp(q0, q1, t)
	r1 := lerp(q1, q2, t)
	return r1.Sub(r0)
}

// Nearest finds the parameter of the point on the segment closest to pt,
// accurate to tolerance in parameter space. It also returns the squared
// distance between pt and the curve at that parameter.
//
// The search shrinks [0, 1] by sampling both quarter points and discarding the
// outer quarter next to the farther sample. This assumes that the distance
// has a single minimum on the segment. For segments that curve back towards pt
// it may settle on a local minimum.
//
// A tolerance that isn't positive is replaced by [DefaultAccuracy].
func (c CubicBez) Nearest(pt r3.Vector, tolerance float64) (distSq, t float64) {
	if !(tolerance > 0) {
		tolerance = DefaultAccuracy
	}
	t = c.nearest(pt, 0, 1, tolerance, 0)
	return c.eval(t).Sub(pt).Norm2(), t
}

func (c CubicBez) nearest(pt r3.Vector, lo, hi, tolerance float64, depth int) float64 {
	if hi-lo < tolerance || depth >= maxNearestDepth {
		return (lo + hi) / 2
	}
	q := (hi - lo) / 4
	d1 := c.eval(lo + q).Sub(pt).Norm2()
	d3 := c.eval(hi - q).Sub(pt).Norm2()
	if d1 < d3 {
		return c.nearest(pt, lo, hi-q, tolerance, depth+1)
	}
	return c.nearest(pt, lo+q, hi, tolerance, depth+1)
}

// Subdivide subdivides the cubic into halves, using de Casteljau.
func (c CubicBez) Subdivide() (CubicBez, CubicBez) {
	pm := c.eval(0.5)
	return CubicBez{
			c.P0,
			midpoint(c.P0, c.P1),
			c.P0.Add(c.P1.Mul(2.0)).Add(c.P2).Mul(0.25),
			pm,
		},
		CubicBez{
			pm,
			c.P1.Add(c.P2.Mul(2.0)).Add(c.P3).Mul(0.25),
			midpoint(c.P2, c.P3),
			c.P3,
		}
}

// Arclen returns the arclength of the segment.
//
// This is an adaptive subdivision approach using Legendre-Gauss quadrature.
func (c CubicBez) Arclen(accuracy float64) float64 {
	return c.arclen(accuracy, 0)
}

func (c CubicBez) arclen(accuracy float64, depth int) float64 {
	d01 := c.P1.Sub(c.P0)
	d12 := c.P2.Sub(c.P1)
	d23 := c.P3.Sub(c.P2)
	// Control polygon length minus chord length bounds the error.
	lplc := d01.Norm() + d12.Norm() + d23.Norm() - Line{c.P0, c.P3}.Length()
	dd1 := d12.Sub(d01)
	dd2 := d23.Sub(d12)
	// The following values don't have the factor of 3 for first deriv
	dm := d01.Add(d23).Mul(0.25).Add(d12.Mul(0.5)) // first derivative at midpoint
	dm1 := dd2.Add(dd1).Mul(0.5)                   // second derivative at midpoint
	dm2 := dd2.Sub(dd1).Mul(0.25)                  // 0.5 * (third derivative at midpoint)

	var est float64
	for _, coeff := range gaussLegendreCoeffs8 {
		wi, xi := coeff[0], coeff[1]
		dNorm2 := dm.Add(dm1.Mul(xi)).Add(dm2.Mul(xi * xi)).Norm2()
		ddNorm2 := dm1.Add(dm2.Mul(2.0 * xi)).Norm2()
		est += wi * (ddNorm2 / dNorm2)
	}
	if math.IsNaN(est) {
		// dNorm2 will be 0 as c approaches a singularity
		est = 0
	}

	estGauss8Error := min(math.Pow(est, 3)*2.5e-6, 3e-2) * lplc
	if estGauss8Error < accuracy {
		return arclenQuadratureCore(gaussLegendreCoeffs8Half[:], dm, dm1, dm2)
	}
	estGauss16Error := min(math.Pow(est, 6)*1.5e-11, 9e-3) * lplc
	if estGauss16Error < accuracy {
		return arclenQuadratureCore(gaussLegendreCoeffs16Half[:], dm, dm1, dm2)
	}
	estGauss24Error := min(math.Pow(est, 9)*3.5e-16, 3.5e-3) * lplc
	if estGauss24Error < accuracy || depth >= 20 {
		return arclenQuadratureCore(gaussLegendreCoeffs24Half[:], dm, dm1, dm2)
	}
	c0, c1 := c.Subdivide()
	return c0.arclen(accuracy*0.5, depth+1) + c1.arclen(accuracy*0.5, depth+1)
}

func arclenQuadratureCore(coeffs [][2]float64, dm, dm1, dm2 r3.Vector) float64 {
	var sum float64
	for _, coeff := range coeffs {
		wi, xi := coeff[0], coeff[1]
		d := dm.Add(dm2.Mul(xi * xi))
		dpx := d.Add(dm1.Mul(xi)).Norm()
		dmx := d.Sub(dm1.Mul(xi)).Norm()
		sum += math.Sqrt(2.25) * wi * (dpx + dmx)
	}
	return sum
}
