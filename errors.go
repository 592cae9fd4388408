package curve3

import "github.com/pkg/errors"

var (
	// ErrTooFewKnots is returned when interpolating fewer than two knots.
	ErrTooFewKnots = errors.New("curve3: need at least two knots")

	// ErrControlPointCount is returned when raw control points don't form a
	// whole number of cubic segments, or too few of them for the topology.
	ErrControlPointCount = errors.New("curve3: invalid number of control points")

	// ErrInvalidTopology is returned for topologies other than [Open] and
	// [Closed].
	ErrInvalidTopology = errors.New("curve3: invalid topology")

	// ErrParamDomain is returned by [CubicBez.Eval] and [CubicBez.Tangent] for
	// parameters outside of [0, 1]. Path methods reduce their parameter first
	// and never return it.
	ErrParamDomain = errors.New("curve3: parameter out of domain")
)
