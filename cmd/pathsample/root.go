package main

import (
	"io"
	"log/slog"
	"math"
	"os"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
	"honnef.co/go/curve3"
)

func newRootCmd() *cobra.Command {
	conf := viper.New()
	cmd := &cobra.Command{
		Use:          "pathsample --knots FILE",
		Short:        "Sample a smooth path through a list of knots",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg := conf.GetString("config"); cfg != "" {
				conf.SetConfigFile(cfg)
				if err := conf.ReadInConfig(); err != nil {
					return errors.Wrapf(err, "reading config %s", cfg)
				}
			}
			return run(conf, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	flag := cmd.Flags()
	flag.String("knots", "", "YAML file with the knots to interpolate")
	flag.Int("samples", 16, "Number of samples along the whole path")
	flag.Bool("tangents", false, "Include the tangent at every sample")
	flag.Var(new(vecValue), "nearest", "Report the point on the path closest to x,y,z")
	flag.Float64("tolerance", curve3.DefaultAccuracy, "Tolerance of the nearest point search, relative to the whole path")
	flag.Bool("polyline", false, "With --nearest, also report the closest point on the straight lines between knots")
	flag.Float64("accuracy", curve3.DefaultAccuracy, "Accuracy of the arc length")
	flag.Bool("closed", false, "Close the path, regardless of the knot file's topology")
	flag.BoolP("verbose", "v", false, "Log debug output to stderr")
	flag.String("config", "", "Config file providing defaults for the other flags")

	conf.SetEnvPrefix("PATHSAMPLE")
	conf.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	conf.AutomaticEnv()
	if err := conf.BindPFlags(flag); err != nil {
		panic(err)
	}
	return cmd
}

// knotFile is the input document.
type knotFile struct {
	Topology string       `yaml:"topology"`
	Knots    [][3]float64 `yaml:"knots"`
}

type report struct {
	Topology     string   `yaml:"topology"`
	Segments     int      `yaml:"segments"`
	ApproxLength float64  `yaml:"approx_length"`
	Arclen       float64  `yaml:"arclen"`
	Samples      []sample `yaml:"samples"`
	Nearest      *nearest `yaml:"nearest,omitempty"`
}

type sample struct {
	// Param is in the normalized domain.
	Param   float64    `yaml:"param"`
	Point   [3]float64 `yaml:"point,flow"`
	Tangent []float64  `yaml:"tangent,omitempty,flow"`
}

type nearest struct {
	Query     [3]float64 `yaml:"query,flow"`
	Param     float64    `yaml:"param"`
	NormParam float64    `yaml:"norm_param"`
	Point     [3]float64 `yaml:"point,flow"`
	Distance  float64    `yaml:"distance"`
	Polyline  *chord     `yaml:"polyline,omitempty"`
}

// chord is the closest point on the polyline through the knots. Param is in
// the segment domain: chord i spans [i, i+1].
type chord struct {
	Param    float64    `yaml:"param"`
	Point    [3]float64 `yaml:"point,flow"`
	Distance float64    `yaml:"distance"`
}

func coords(v r3.Vector) [3]float64 {
	return [3]float64{v.X, v.Y, v.Z}
}

func parseTopology(s string) (curve3.Topology, error) {
	switch strings.ToLower(s) {
	case "", "open":
		return curve3.Open, nil
	case "closed":
		return curve3.Closed, nil
	default:
		return 0, errors.Wrapf(curve3.ErrInvalidTopology, "%q", s)
	}
}

func loadKnots(path string) ([]r3.Vector, curve3.Topology, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, errors.Wrap(err, "reading knots")
	}
	var kf knotFile
	if err := yaml.Unmarshal(b, &kf); err != nil {
		return nil, 0, errors.Wrapf(err, "parsing %s", path)
	}
	top, err := parseTopology(kf.Topology)
	if err != nil {
		return nil, 0, errors.Wrapf(err, "parsing %s", path)
	}
	knots := make([]r3.Vector, len(kf.Knots))
	for i, k := range kf.Knots {
		knots[i] = r3.Vector{X: k[0], Y: k[1], Z: k[2]}
	}
	return knots, top, nil
}

// polylineNearest finds the point closest to pt on the straight lines between
// consecutive knots of p, including the closing line of closed paths.
func polylineNearest(p *curve3.Path, pt r3.Vector) chord {
	knots := p.Knots()
	if p.IsClosed() {
		knots = append(knots, knots[0])
	}
	best := chord{Distance: math.Inf(1)}
	for i := 0; i+1 < len(knots); i++ {
		l := curve3.Line{P0: knots[i], P1: knots[i+1]}
		distSq, t := l.Nearest(pt)
		if d := math.Sqrt(distSq); d < best.Distance {
			best = chord{Param: float64(i) + t, Point: coords(l.Eval(t)), Distance: d}
		}
	}
	return best
}

func run(conf *viper.Viper, stdout, stderr io.Writer) error {
	if conf.GetBool("verbose") {
		curve3.SetLogger(slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
		defer curve3.SetLogger(nil)
	}
	log := curve3.Logger()

	knotsPath := conf.GetString("knots")
	if knotsPath == "" {
		return errors.New("--knots is required")
	}
	samples := conf.GetInt("samples")
	if samples < 1 {
		return errors.Errorf("--samples must be at least 1, got %d", samples)
	}

	knots, top, err := loadKnots(knotsPath)
	if err != nil {
		return err
	}
	if conf.GetBool("closed") {
		top = curve3.Closed
	}
	log.Debug("loaded knots", "file", knotsPath, "knots", len(knots), "topology", top.String())

	p, err := curve3.Interpolate(knots, top)
	if err != nil {
		return errors.Wrapf(err, "interpolating %s", knotsPath)
	}

	rep := report{
		Topology:     top.String(),
		Segments:     p.NumSegments(),
		ApproxLength: p.ApproxLength(),
		Arclen:       p.Arclen(conf.GetFloat64("accuracy")),
		Samples:      make([]sample, samples),
	}
	// Open paths include both ends. On closed paths the end is the start again.
	div := float64(samples - 1)
	if p.IsClosed() || samples == 1 {
		div = float64(samples)
	}
	withTangents := conf.GetBool("tangents")
	for i := range rep.Samples {
		u := float64(i) / div
		s := sample{Param: u, Point: coords(p.EvalNorm(u))}
		if withTangents {
			tan := coords(p.TangentNorm(u))
			s.Tangent = tan[:]
		}
		rep.Samples[i] = s
	}

	if q := conf.GetString("nearest"); q != "" {
		pt, err := parseVec(q)
		if err != nil {
			return errors.Wrap(err, "--nearest")
		}
		// NearestNorm takes the tolerance relative to the whole path but
		// answers in the segment domain.
		distSq, t := p.NearestNorm(pt, conf.GetFloat64("tolerance"))
		rep.Nearest = &nearest{
			Query:     coords(pt),
			Param:     t,
			NormParam: t / float64(p.NumSegments()),
			Point:     coords(p.Eval(t)),
			Distance:  math.Sqrt(distSq),
		}
		if conf.GetBool("polyline") {
			c := polylineNearest(p, pt)
			rep.Nearest.Polyline = &c
		}
	}

	enc := yaml.NewEncoder(stdout)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return errors.Wrap(err, "writing report")
	}
	return enc.Close()
}
