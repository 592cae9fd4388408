package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// vecValue is a flag holding a point written as x,y,z.
type vecValue struct {
	v   r3.Vector
	set bool
}

var _ pflag.Value = (*vecValue)(nil)

func (f *vecValue) String() string {
	if !f.set {
		return ""
	}
	return fmt.Sprintf("%g,%g,%g", f.v.X, f.v.Y, f.v.Z)
}

func (f *vecValue) Set(s string) error {
	v, err := parseVec(s)
	if err != nil {
		return err
	}
	f.v, f.set = v, true
	return nil
}

func (f *vecValue) Type() string {
	return "x,y,z"
}

func parseVec(s string) (r3.Vector, error) {
	fields := strings.Split(s, ",")
	if len(fields) != 3 {
		return r3.Vector{}, errors.Errorf("%q: want three comma-separated coordinates", s)
	}
	var c [3]float64
	for i, f := range fields {
		x, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return r3.Vector{}, errors.Wrapf(err, "%q", s)
		}
		c[i] = x
	}
	return r3.Vector{X: c[0], Y: c[1], Z: c[2]}, nil
}
