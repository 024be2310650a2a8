// Public domain.

// Package lightcurve computes the light curve of a star with orbiting
// bodies: body positions over a time grid and the visible fraction of the
// star at each time.
package lightcurve

import (
	"errors"
	"fmt"
	"time"

	xrand "golang.org/x/exp/rand"

	"github.com/soniakeys/transit/internal/disk"
	"github.com/soniakeys/transit/internal/eclipse"
	"github.com/soniakeys/transit/internal/metrics"
	"github.com/soniakeys/transit/orbit"
	"github.com/soniakeys/transit/scale"
)

// ErrTimes is returned for sample times that do not strictly increase.
var ErrTimes = errors.New("sample times must be strictly increasing")

// Method selects how flux fractions are computed.
type Method int

const (
	// Auto uses Exact for at most one body, MonteCarlo otherwise.
	Auto Method = iota
	// Exact uses pairwise inclusion-exclusion of exact overlap areas,
	// deferring to Monte Carlo only for samples it cannot resolve.
	Exact
	// MonteCarlo estimates every sample from a point cloud.
	MonteCarlo
)

var methodName = [...]string{"auto", "exact", "montecarlo"}

func (m Method) String() string {
	if m < Auto || m > MonteCarlo {
		return fmt.Sprintf("Method(%d)", int(m))
	}
	return methodName[m]
}

// Body is a named orbiting body.
type Body struct {
	Name     string
	Elements *orbit.Elements
}

// Options configure a Solver.  The zero value is usable.
type Options struct {
	Method  Method
	Samples int // Monte Carlo point cloud size, 0 for the default

	// With Repeatable the point cloud is drawn from a generator seeded
	// with Seed.  Otherwise the seed comes from the clock.
	Repeatable bool
	Seed       uint64

	Geometry disk.Geometry
	Kepler   orbit.Solver
}

// Solver computes light curves for one star and its bodies.
//
// A Solver holds a Monte Carlo point cloud between calls to Solve and is
// not safe for concurrent use.
type Solver struct {
	star   orbit.Primary
	bodies []Body
	opt    Options
	est    *eclipse.Estimator
}

// New returns a Solver for bodies orbiting star.
//
// Each body's elements must have been constructed for star.
func New(star orbit.Primary, bodies []Body, opt Options) (*Solver, error) {
	if opt.Method < Auto || opt.Method > MonteCarlo {
		return nil, fmt.Errorf("invalid method %v", opt.Method)
	}
	for _, b := range bodies {
		if b.Elements == nil {
			return nil, fmt.Errorf("body %s: no elements", b.Name)
		}
		if b.Elements.Primary() != star {
			return nil, fmt.Errorf("body %s: elements are for a different star", b.Name)
		}
	}
	rnd := xrand.New(&xrand.PCGSource{})
	if opt.Repeatable {
		rnd.Seed(opt.Seed)
	} else {
		rnd.Seed(uint64(time.Now().UnixNano()))
	}
	return &Solver{
		star:   star,
		bodies: append([]Body{}, bodies...),
		opt:    opt,
		est:    eclipse.NewEstimator(opt.Samples, rnd),
	}, nil
}

// Method returns the method Solve uses, with Auto resolved.
func (s *Solver) Method() Method {
	if s.opt.Method != Auto {
		return s.opt.Method
	}
	if len(s.bodies) <= 1 {
		return Exact
	}
	return MonteCarlo
}

// MaxPeriod returns the longest orbital period of the bodies, days, or
// zero if there are none.
func (s *Solver) MaxPeriod() float64 {
	var p float64
	for _, b := range s.bodies {
		if bp := b.Elements.Params().Period; bp > p {
			p = bp
		}
	}
	return p
}

// BodySummary describes one body's orbit and its transits alone against
// the star.
type BodySummary struct {
	Name      string
	Periapsis float64 // AU
	Apoapsis  float64 // AU
	Depth     float64 // maximum fraction of the star covered
	Duration  int     // samples in transit
}

// Curve is the result of Solve.  All series are aligned with Times.
type Curve struct {
	Times     []float64       // seconds
	Star      *orbit.Series   // all zero
	Positions []*orbit.Series // one per body, in Solver order
	Flux      []float64       // visible fraction of the star

	Method    Method // method used, never Auto
	Depth     float64
	Duration  int   // samples with the star partly covered
	Delegated []int // samples Exact passed to Monte Carlo

	Bodies []BodySummary
}

// Solve computes the light curve at times, in seconds.
func (s *Solver) Solve(times []float64) (*Curve, error) {
	for i := 1; i < len(times); i++ {
		if !(times[i] > times[i-1]) {
			return nil, fmt.Errorf("sample %d: %w", i, ErrTimes)
		}
	}
	start := time.Now()
	n := len(times)
	c := &Curve{
		Times:     times,
		Star:      orbit.Static(n),
		Positions: make([]*orbit.Series, len(s.bodies)),
		Method:    s.Method(),
		Bodies:    make([]BodySummary, len(s.bodies)),
	}
	star := disk.New("star", s.star.Radius, c.Star)
	disks := make([]*disk.Disk, len(s.bodies))
	for i, b := range s.bodies {
		pos, err := s.opt.Kepler.Propagate(b.Elements, times)
		if err != nil {
			metrics.IncSolverFailure(metrics.Kepler)
			return nil, fmt.Errorf("body %s: %w", b.Name, err)
		}
		c.Positions[i] = pos
		disks[i] = disk.New(b.Name, b.Elements.Params().Radius, pos)
	}

	switch c.Method {
	case MonteCarlo:
		c.Flux = s.est.Flux(star, disks)
	default:
		r, err := eclipse.Compositor{
			Geometry: s.opt.Geometry,
			Fallback: s.est,
		}.Flux(star, disks)
		if err != nil {
			return nil, err
		}
		c.Flux = r.Flux
		c.Delegated = r.Delegated
	}
	c.Depth, c.Duration = summarize(c.Flux)

	// each body alone.  a single shadow is always resolved exactly.
	for i, d := range disks {
		el := s.bodies[i].Elements
		bs := &c.Bodies[i]
		bs.Name = s.bodies[i].Name
		bs.Periapsis = el.Periapsis()
		bs.Apoapsis = el.Apoapsis()
		r, err := eclipse.Compositor{Geometry: s.opt.Geometry}.
			Flux(star, []*disk.Disk{d})
		if err != nil {
			return nil, err
		}
		bs.Depth, bs.Duration = summarize(r.Flux)
	}
	metrics.RecordCurve(c.Method.String(), time.Since(start))
	return c, nil
}

// summarize returns the maximum covered fraction and the number of
// samples with any coverage.
func summarize(flux []float64) (depth float64, duration int) {
	for _, f := range flux {
		if f < 1 {
			duration++
			if 1-f > depth {
				depth = 1 - f
			}
		}
	}
	return
}

// TimeGrid returns n evenly spaced times in seconds, spanning orbits
// periods of maxPeriod days from zero.
func TimeGrid(orbits, maxPeriod float64, n int) []float64 {
	if n <= 0 {
		return nil
	}
	t := make([]float64, n)
	if n == 1 {
		return t
	}
	span := orbits * maxPeriod * scale.DaySec
	for i := range t {
		t[i] = span * float64(i) / float64(n-1)
	}
	return t
}
