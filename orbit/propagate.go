// Public domain.

package orbit

import (
	"fmt"

	"github.com/soniakeys/coord"
	"github.com/soniakeys/meeus/v3/kepler"
	"github.com/soniakeys/unit"
)

// Series holds sampled positions in AU, aligned with a time array.
//
// X is the line-of-sight coordinate, Y and Z the sky-plane coordinates.
// A Series is not modified after it is returned.
type Series struct {
	X, Y, Z []float64
}

// Static returns an all-zero series of n samples, for a body fixed at
// the origin.
func Static(n int) *Series {
	return &Series{
		X: make([]float64, n),
		Y: make([]float64, n),
		Z: make([]float64, n),
	}
}

// Len returns the number of samples.
func (s *Series) Len() int { return len(s.X) }

// At returns the position at sample i.
func (s *Series) At(i int) coord.Cart {
	return coord.Cart{X: s.X[i], Y: s.Y[i], Z: s.Z[i]}
}

// Propagate samples the orbit of el at times, given in seconds.
//
// The mean anomaly is zero at t = 0.  An error from the Kepler solver
// is wrapped with the offending sample and no series is returned.
func (s Solver) Propagate(el *Elements, times []float64) (*Series, error) {
	p := el.p
	n := el.MeanMotion()
	sΩ, cΩ := p.Node.Sincos()
	si, ci := p.Inc.Sincos()
	// semi-latus rectum
	sl := el.a * (1 - p.Ecc*p.Ecc)

	ser := &Series{
		X: make([]float64, len(times)),
		Y: make([]float64, len(times)),
		Z: make([]float64, len(times)),
	}
	var pos coord.Cart
	for i, t := range times {
		E, err := s.Eccentric(unit.Angle(n*t), p.Ecc)
		if err != nil {
			return nil, fmt.Errorf("sample %d, t = %g s: %w", i, t, err)
		}
		ν := kepler.True(E, p.Ecc).Mod1() + p.Phase
		r := sl / (1 + p.Ecc*ν.Cos())

		// position in the orbital plane, measured from the node
		su, cu := (ν + p.ArgPeri).Sincos()
		pos = coord.Cart{X: r * cu, Y: r * su}

		// rotate by inclination, then by longitude of the node
		ser.X[i] = cΩ*pos.X*ci - sΩ*pos.Y
		ser.Y[i] = sΩ*pos.X*ci + cΩ*pos.Y
		ser.Z[i] = -pos.X * si
	}
	return ser, nil
}

// Propagate samples an orbit using DefaultSolver.
func Propagate(el *Elements, times []float64) (*Series, error) {
	return DefaultSolver.Propagate(el, times)
}
