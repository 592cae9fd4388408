package curve3

import (
	"fmt"
	"iter"
	"math"
	"slices"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
)

// Topology describes whether a path's parameter domain clamps at its ends or
// wraps around.
type Topology int

const (
	// Open paths start at the first knot and end at the last one. Parameters
	// outside of the path's domain are clamped.
	Open Topology = iota
	// Closed paths loop back from the last knot to the first one. Parameters
	// outside of the path's domain wrap around.
	Closed
)

func (top Topology) String() string {
	switch top {
	case Open:
		return "open"
	case Closed:
		return "closed"
	default:
		return fmt.Sprintf("Topology(%d)", int(top))
	}
}

func (top Topology) valid() bool {
	return top == Open || top == Closed
}

// Path is a sequence of cubic Bézier segments joined end to end. Segment i is
// formed by control points 3i to 3i+3, so neighbouring segments share their
// end points. The control points at indices 3n lie on the path; all others are
// handles.
//
// A closed path stores its first point a second time at the end, so that the
// last segment can be addressed like all others.
//
// The zero value is an empty path. It isn't valid until it has been built with
// [Path.Interpolate] or [Path.SetControlPoints].
//
// Path has no internal locking. Queries may run concurrently with each other,
// but not with Interpolate, SetControlPoints or Clear.
type Path struct {
	topology Topology
	segments int
	points   []r3.Vector
}

// Interpolate returns a new path through knots. See [Path.Interpolate].
func Interpolate(knots []r3.Vector, topology Topology) (*Path, error) {
	p := new(Path)
	if err := p.Interpolate(knots, topology); err != nil {
		return nil, err
	}
	return p, nil
}

// Interpolate replaces the path with one that passes through all knots, in
// order. The handles are derived from the knots so that the tangent direction
// is continuous at every knot shared by two segments.
//
// An open path through k knots has k-1 segments and 3k-2 control points. A
// closed path has k segments and 3k+1 control points, the last of which is the
// first knot.
//
// The two handles around a knot lie on a line through the knot, oriented along
// the difference of the unit directions to the next and the previous knot and
// spaced by an eighth of the two adjacent spans' combined length. The outer
// handles of an open path point a quarter of the way towards their
// neighbouring knot. A knot next to a span of zero length gets both handles
// placed on the knot itself, which results in a corner.
//
// It returns an error wrapping [ErrTooFewKnots] if there are fewer than two
// knots and one wrapping [ErrInvalidTopology] for unknown topologies. The path
// is left untouched in either case.
func (p *Path) Interpolate(knots []r3.Vector, topology Topology) error {
	if len(knots) < 2 {
		return errors.Wrapf(ErrTooFewKnots, "got %d", len(knots))
	}
	if !topology.valid() {
		return errors.Wrapf(ErrInvalidTopology, "%s", topology)
	}

	p.Clear()
	n := len(knots)
	if topology == Closed {
		p.segments = n
	} else {
		p.segments = n - 1
	}
	p.topology = topology
	p.points = make([]r3.Vector, 3*p.segments+1)
	for i, k := range knots {
		p.points[3*i] = k
	}

	if topology == Closed {
		p.points[3*n] = knots[0]
		for i := range n {
			prev := knots[(i+n-1)%n]
			next := knots[(i+1)%n]
			d, ok := handleOffset(prev, knots[i], next)
			if !ok {
				Logger().Debug("collapsed handles onto knot", "knot", i)
			}
			// The incoming handle of the first knot belongs to the last
			// segment.
			in := 3*i - 1
			if i == 0 {
				in = 3*n - 1
			}
			p.points[in] = knots[i].Sub(d)
			p.points[3*i+1] = knots[i].Add(d)
		}
	} else {
		last := n - 1
		p.points[1] = lerp(knots[0], knots[1], 0.25)
		p.points[3*last-1] = lerp(knots[last], knots[last-1], 0.25)
		for i := 1; i < last; i++ {
			d, ok := handleOffset(knots[i-1], knots[i], knots[i+1])
			if !ok {
				Logger().Debug("collapsed handles onto knot", "knot", i)
			}
			p.points[3*i-1] = knots[i].Sub(d)
			p.points[3*i+1] = knots[i].Add(d)
		}
	}

	Logger().Debug("interpolated path",
		"knots", n,
		"topology", topology.String(),
		"segments", p.segments)
	return nil
}

// handleOffset returns the vector from knot to its outgoing handle. The
// incoming handle is at knot minus the offset. It reports false if one of the
// adjacent spans has zero length, in which case the offset is zero.
func handleOffset(prev, knot, next r3.Vector) (r3.Vector, bool) {
	a := prev.Sub(knot)
	b := next.Sub(knot)
	la := a.Norm()
	lb := b.Norm()
	if la == 0 || lb == 0 {
		return r3.Vector{}, false
	}
	// Normalize maps the zero vector to itself, so a path that doubles back on
	// itself gets a zero offset, too.
	dir := b.Mul(1 / lb).Sub(a.Mul(1 / la)).Normalize()
	return dir.Mul((la + lb) / 8), true
}

// SetControlPoints replaces the path's control points with a copy of points.
// Unlike [Path.Interpolate] nothing is derived; the caller is responsible for
// placing the handles.
//
// The number of points must be 3n+1 for n segments, with at least one segment
// for open paths and at least two for closed ones. Otherwise an error wrapping
// [ErrControlPointCount] is returned and the path is left untouched.
func (p *Path) SetControlPoints(points []r3.Vector, topology Topology) error {
	if !topology.valid() {
		return errors.Wrapf(ErrInvalidTopology, "%s", topology)
	}
	minPoints := 4
	if topology == Closed {
		minPoints = 7
	}
	if n := len(points); n < minPoints || (n-1)%3 != 0 {
		return errors.Wrapf(ErrControlPointCount, "got %d for %s path, want 3n+1 and at least %d", n, topology, minPoints)
	}

	p.Clear()
	p.topology = topology
	p.points = slices.Clone(points)
	p.segments = (len(points) - 1) / 3
	Logger().Debug("set control points",
		"points", len(points),
		"topology", topology.String(),
		"segments", p.segments)
	return nil
}

// Clear resets the path to the empty, invalid state.
func (p *Path) Clear() {
	p.topology = Open
	p.segments = 0
	p.points = nil
}

// IsValid reports whether the path has at least one segment.
func (p *Path) IsValid() bool {
	return p.segments > 0
}

// IsClosed reports whether the path loops.
func (p *Path) IsClosed() bool {
	return p.topology == Closed
}

// Topology returns whether the path is [Open] or [Closed].
func (p *Path) Topology() Topology {
	return p.topology
}

// NumSegments returns the number of cubic segments, which is also the length
// of the parameter domain of [Path.Eval].
func (p *Path) NumSegments() int {
	return p.segments
}

// NumControlPoints returns the number of control points, 3*NumSegments()+1.
// For closed paths this counts the first knot twice, as it is repeated at the
// end.
func (p *Path) NumControlPoints() int {
	return len(p.points)
}

// ControlPoints returns a copy of the path's control points.
func (p *Path) ControlPoints() []r3.Vector {
	return slices.Clone(p.points)
}

// Knots returns the points the path passes through, in order. For closed paths
// the first knot isn't repeated at the end.
func (p *Path) Knots() []r3.Vector {
	if !p.IsValid() {
		return nil
	}
	n := p.segments + 1
	if p.topology == Closed {
		n = p.segments
	}
	out := make([]r3.Vector, n)
	for i := range out {
		out[i] = p.points[3*i]
	}
	return out
}

// Segment returns the i-th segment. It panics if i isn't in [0,
// NumSegments()).
func (p *Path) Segment(i int) CubicBez {
	if i < 0 || i >= p.segments {
		panic(fmt.Sprintf("segment index %d out of range [0, %d)", i, p.segments))
	}
	return cubicAt(p.points[3*i:])
}

// Segments returns an iterator over the path's segments and their indices.
func (p *Path) Segments() iter.Seq2[int, CubicBez] {
	return func(yield func(int, CubicBez) bool) {
		for i := 0; i < p.segments; i++ {
			if !yield(i, cubicAt(p.points[3*i:])) {
				return
			}
		}
	}
}

// locate maps a path parameter to a segment index and the parameter within
// that segment. Closed paths wrap t into [0, NumSegments()), open paths clamp
// it to [0, NumSegments()]. NaN, and infinities on closed paths, map to 0.
func (p *Path) locate(t float64) (int, float64) {
	n := float64(p.segments)
	if p.topology == Closed {
		t = math.Mod(t, n)
		if t < 0 {
			t += n
		}
	} else {
		t = min(max(t, 0), n)
	}
	if math.IsNaN(t) {
		t = 0
	}
	// The end of the domain belongs to the last segment.
	seg := min(int(t), p.segments-1)
	return seg, min(t-float64(seg), 1)
}

// Eval returns the point at t, where each segment spans a unit of t. Segment i
// covers [i, i+1].
//
// Open paths clamp t to [0, NumSegments()], closed paths wrap it around, so
// that Eval(t) and Eval(t+NumSegments()) are the same point. An invalid path
// evaluates to the zero vector.
func (p *Path) Eval(t float64) r3.Vector {
	if !p.IsValid() {
		return r3.Vector{}
	}
	seg, lt := p.locate(t)
	return cubicAt(p.points[3*seg:]).eval(lt)
}

// Tangent returns the tangent at t, with t handled like in [Path.Eval]. The
// tangent isn't normalized; see [CubicBez.Tangent].
func (p *Path) Tangent(t float64) r3.Vector {
	if !p.IsValid() {
		return r3.Vector{}
	}
	seg, lt := p.locate(t)
	return cubicAt(p.points[3*seg:]).tangent(lt)
}

// EvalNorm is like [Path.Eval] but the whole path spans [0, 1].
func (p *Path) EvalNorm(t float64) r3.Vector {
	return p.Eval(t * float64(p.segments))
}

// TangentNorm is like [Path.Tangent] but the whole path spans [0, 1].
func (p *Path) TangentNorm(t float64) r3.Vector {
	return p.Tangent(t * float64(p.segments))
}

// ApproxLength returns the length of the polyline through the path's knots.
// This is a lower bound of the path's arc length. It is 0 for invalid paths.
func (p *Path) ApproxLength() float64 {
	var l float64
	for i := 0; i < p.segments; i++ {
		l += Line{p.points[3*i], p.points[3*i+3]}.Length()
	}
	return l
}

// ApproxParamPerUnitLength returns how much t advances per unit of distance,
// based on [Path.ApproxLength].
//
// The path must be valid and have non-zero length; otherwise the result is
// NaN or infinite.
func (p *Path) ApproxParamPerUnitLength() float64 {
	return float64(p.segments) / p.ApproxLength()
}

// ApproxNormParamPerUnitLength is like [Path.ApproxParamPerUnitLength] but for
// the normalized parameter used by [Path.EvalNorm].
func (p *Path) ApproxNormParamPerUnitLength() float64 {
	return 1 / p.ApproxLength()
}

// Arclen returns the arc length of the path, the sum of its segments' arc
// lengths.
func (p *Path) Arclen(accuracy float64) float64 {
	if p.segments == 0 {
		return 0
	}
	var l float64
	segAccuracy := accuracy / float64(p.segments)
	for _, c := range p.Segments() {
		l += c.Arclen(segAccuracy)
	}
	return l
}

// Nearest returns the parameter of the point on the path closest to pt, and
// the squared distance to it. Every segment is searched with
// [CubicBez.Nearest] and tolerance, so the same caveat about local minima
// applies within a segment.
//
// The parameter is in the domain of [Path.Eval]. For invalid paths, Nearest
// returns (+Inf, 0).
func (p *Path) Nearest(pt r3.Vector, tolerance float64) (distSq, t float64) {
	var best option[float64]
	for i, c := range p.Segments() {
		d, lt := c.Nearest(pt, tolerance)
		if !best.isSet || d < best.value {
			best.set(d)
			t = float64(i) + lt
		}
	}
	if !best.isSet {
		return math.Inf(1), 0
	}
	return best.value, t
}

// NearestNorm searches like [Path.Nearest] with the tolerance given in the
// normalized domain of [Path.EvalNorm], that is, scaled by the number of
// segments.
//
// The returned parameter is NOT normalized; it is in the domain of
// [Path.Eval], so the segment it lies in stays visible to the caller. Divide it
// by [Path.NumSegments] to use it with [Path.EvalNorm].
func (p *Path) NearestNorm(pt r3.Vector, tolerance float64) (distSq, t float64) {
	return p.Nearest(pt, tolerance*float64(p.segments))
}
