package curve3

import (
	"math"
	"testing"

	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pkg/errors"
)

func TestCubicBezEndpoints(t *testing.T) {
	c := CubicBez{vec(0.1, -3, 7), vec(2, 2, 2), vec(-5, 0.3, 1), vec(9, 9, -9)}
	p0, err := c.Eval(0)
	if err != nil {
		t.Fatal(err)
	}
	p3, err := c.Eval(1)
	if err != nil {
		t.Fatal(err)
	}
	diff(t, c.P0, p0)
	diff(t, c.P3, p3)
}

func TestCubicBezParamDomain(t *testing.T) {
	c := CubicBez{vec(0, 0, 0), vec(1, 0, 0), vec(2, 0, 0), vec(3, 0, 0)}
	for _, ts := range []float64{-0.1, 1.1, -1e-12, math.NaN(), math.Inf(1)} {
		if _, err := c.Eval(ts); !errors.Is(err, ErrParamDomain) {
			t.Errorf("Eval(%v): got error %v, want ErrParamDomain", ts, err)
		}
		if _, err := c.Tangent(ts); !errors.Is(err, ErrParamDomain) {
			t.Errorf("Tangent(%v): got error %v, want ErrParamDomain", ts, err)
		}
	}
}

func TestCubicBezStraight(t *testing.T) {
	// Evenly spaced control points move at constant speed.
	c := CubicBez{vec(0, 0, 0), vec(1, 1, 1), vec(2, 2, 2), vec(3, 3, 3)}
	for i := range 11 {
		ts := float64(i) / 10
		got, err := c.Eval(ts)
		if err != nil {
			t.Fatal(err)
		}
		diff(t, vec(3*ts, 3*ts, 3*ts), got, vecComparer)
	}
}

func TestCubicBezTangentDeriv(t *testing.T) {
	c := CubicBez{vec(0, 0, 0), vec(1, 3, -1), vec(4, -2, 2), vec(5, 1, 0)}

	const n = 10
	const delta = 1e-6
	for i := range n {
		ts := float64(i) / float64(n)
		p := c.eval(ts)
		p1 := c.eval(ts + delta)
		dApprox := p1.Sub(p).Mul(1.0 / delta)
		tan, err := c.Tangent(ts)
		if err != nil {
			t.Fatal(err)
		}
		// The tangent is a third of the derivative.
		if l := tan.Mul(3).Sub(dApprox).Norm(); l >= 1e-4 {
			t.Errorf("t=%v: got difference of %g, want at most %g", ts, l, 1e-4)
		}
	}
}

func TestCubicBezTangentEnds(t *testing.T) {
	c := CubicBez{vec(0, 0, 0), vec(1, 3, -1), vec(4, -2, 2), vec(5, 1, 0)}
	t0, _ := c.Tangent(0)
	t1, _ := c.Tangent(1)
	diff(t, c.P1.Sub(c.P0), t0, vecComparer)
	diff(t, c.P3.Sub(c.P2), t1, vecComparer)
}

func TestCubicNearest(t *testing.T) {
	verify := func(c CubicBez, pt r3.Vector, want float64) {
		t.Helper()
		_, got := c.Nearest(pt, 1e-6)
		if math.Abs(got-want) > 1e-6 {
			t.Errorf("got %v, want %v", got, want)
		}
	}

	// y = x^3
	c := CubicBez{vec(0.0, 0.0, 0), vec(1.0/3.0, 0.0, 0), vec(2.0/3.0, 0.0, 0), vec(1.0, 1.0, 0)}
	verify(c, vec(0.1, 0.001, 0), 0.1)
	verify(c, vec(0.2, 0.008, 0), 0.2)
	verify(c, vec(0.3, 0.027, 0), 0.3)
	verify(c, vec(0.4, 0.064, 0), 0.4)
	verify(c, vec(0.5, 0.125, 0), 0.5)
	verify(c, vec(0.6, 0.216, 0), 0.6)
	verify(c, vec(0.7, 0.343, 0), 0.7)
	verify(c, vec(0.8, 0.512, 0), 0.8)
	verify(c, vec(0.9, 0.729, 0), 0.9)
	verify(c, vec(1.0, 1.0, 0), 1.0)
	verify(c, vec(1.1, 1.1, 0), 1.0)
	verify(c, vec(-0.1, 0.0, 0), 0.0)
	// Moving the point off the curve along z keeps the parameter.
	verify(c, vec(0.5, 0.125, 2), 0.5)
}

func TestCubicNearestDistance(t *testing.T) {
	c := CubicBez{vec(0, 0, 0), vec(1, 0, 0), vec(2, 0, 0), vec(3, 0, 0)}
	distSq, ts := c.Nearest(vec(1.5, 0, 4), 1e-9)
	diff(t, 16.0, distSq, cmpopts.EquateApprox(0, 1e-9))
	diff(t, 0.5, ts, cmpopts.EquateApprox(0, 1e-9))
}

func TestCubicNearestBadTolerance(t *testing.T) {
	c := CubicBez{vec(0, 0, 0), vec(1, 0, 0), vec(2, 0, 0), vec(3, 0, 0)}
	for _, tol := range []float64{0, -1, math.NaN(), 1e-300} {
		_, ts := c.Nearest(vec(1, 1, 0), tol)
		if math.Abs(ts-1.0/3.0) > 1e-5 {
			t.Errorf("tolerance %v: got %v, want %v", tol, ts, 1.0/3.0)
		}
	}
}

func TestCubicBezSubdivide(t *testing.T) {
	c := CubicBez{vec(0, 0, 0), vec(1, 3, -1), vec(4, -2, 2), vec(5, 1, 0)}
	left, right := c.Subdivide()
	diff(t, c.P0, left.P0)
	diff(t, c.P3, right.P3)
	diff(t, left.P3, right.P0)
	for i := range 5 {
		ts := float64(i) / 4
		diff(t, c.eval(ts/2), left.eval(ts), vecComparer)
		diff(t, c.eval(0.5+ts/2), right.eval(ts), vecComparer)
	}
}

func TestCubicBezArclen(t *testing.T) {
	c := CubicBez{vec(0, 0, 0), vec(1, 0, 0), vec(2, 0, 0), vec(3, 0, 0)}
	diff(t, 3.0, c.Arclen(1e-9), cmpopts.EquateApprox(0, 1e-9))

	// Compare a curved segment against a finely flattened version of itself.
	c = CubicBez{vec(0, 0, 0), vec(1, 3, -1), vec(4, -2, 2), vec(5, 1, 0)}
	const n = 20000
	var flat float64
	prev := c.P0
	for i := 1; i <= n; i++ {
		p := c.eval(float64(i) / n)
		flat += p.Distance(prev)
		prev = p
	}
	diff(t, flat, c.Arclen(1e-9), cmpopts.EquateApprox(1e-6, 1e-6))
}

func TestCubicBezNaN(t *testing.T) {
	c := CubicBez{vec(0, 0, 0), vec(1, 3, -1), vec(4, -2, 2), vec(5, 1, 0)}
	if c.IsNaN() || c.IsInf() {
		t.Fatal("finite segment reported as NaN or Inf")
	}
	c.P2.Y = math.NaN()
	if !c.IsNaN() {
		t.Error("got IsNaN() == false, want true")
	}
	c.P2.Y = math.Inf(-1)
	if !c.IsInf() {
		t.Error("got IsInf() == false, want true")
	}
}
