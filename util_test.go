package curve3

import (
	"testing"

	"github.com/golang/geo/r3"
	"github.com/google/go-cmp/cmp"
)

func diff(t *testing.T, want, got any, opts ...cmp.Option) {
	t.Helper()
	if d := cmp.Diff(want, got, opts...); d != "" {
		t.Error(d)
	}
}

func vec(x, y, z float64) r3.Vector {
	return r3.Vector{X: x, Y: y, Z: z}
}

// vecApprox treats vectors as equal if they're at most eps apart.
func vecApprox(eps float64) cmp.Option {
	return cmp.Comparer(func(v1, v2 r3.Vector) bool {
		return v1.Distance(v2) <= eps
	})
}

var vecComparer = vecApprox(1e-9)
