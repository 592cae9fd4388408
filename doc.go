// Package curve3 computes smooth paths through a sequence of points in 3D
// space and answers position, tangent, and nearest-point queries along them.
// It is meant for animation, camera rigs, and procedural geometry: callers
// supply the points a path must pass through and never deal with Bézier
// handles themselves.
//
// # Knots, segments, and paths
//
// A [Path] consists of cubic Bézier segments ([CubicBez]) joined end to end.
// The points the path passes through are called knots. [Path.Interpolate]
// derives the two handles around every knot so that the segments meeting there
// leave and enter the knot in the same direction. The magnitudes of the
// tangents may differ, so the path is G1 but not necessarily C1 continuous.
//
// Paths are either [Open] or [Closed]. An open path starts at the first knot
// and ends at the last one; a closed path continues from the last knot back to
// the first.
//
// Control points can also be set directly with [Path.SetControlPoints], in
// which case the caller is responsible for continuity.
//
// # Parameters
//
// Path methods accept two kinds of parameters. In the segment domain, used by
// [Path.Eval], [Path.Tangent], and [Path.Nearest], segment i spans [i, i+1]
// and the path spans [0, NumSegments()]. In the normalized domain, used by
// [Path.EvalNorm] and [Path.TangentNorm], the whole path spans [0, 1]
// regardless of the number of segments.
//
// Out of range parameters are clamped for open paths and wrapped around for
// closed paths. Only the segment-level [CubicBez.Eval] and [CubicBez.Tangent]
// reject parameters outside of [0, 1], with [ErrParamDomain].
//
// # Lengths
//
// [Path.ApproxLength] is the length of the polyline through the knots. It is
// cheap but only a lower bound. [Path.Arclen] integrates the actual arc length
// to a given accuracy.
//
// # Vectors
//
// Points and vectors are [r3.Vector] values from github.com/golang/geo.
package curve3
