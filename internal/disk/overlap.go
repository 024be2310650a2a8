// Public domain.

package disk

import (
	"errors"
	"fmt"
	"math"

	"github.com/soniakeys/transit/internal/bisect"
)

// ErrBracket is returned when the overlap angle function cannot be made
// defined at the lower end of the search bracket.
var ErrBracket = errors.New("overlap angle bracket could not be repaired")

// Geometry holds settings for the overlap angle solver.
//
// Tol and MaxIter control bisection on the half-angle β.  Step and
// MaxRepair control the walk that moves the lower end of the bracket out
// of the interval where the arc-cosine argument leaves [-1, 1].
// Zero values select the defaults of DefaultGeometry.
type Geometry struct {
	Tol       float64
	MaxIter   int
	Step      float64
	MaxRepair int
}

// DefaultGeometry is used by the package level functions.
var DefaultGeometry = Geometry{Tol: 1e-3, MaxIter: 100, Step: .01, MaxRepair: 1000}

func (g Geometry) withDefaults() Geometry {
	if !(g.Tol > 0) {
		g.Tol = DefaultGeometry.Tol
	}
	if g.MaxIter <= 0 {
		g.MaxIter = DefaultGeometry.MaxIter
	}
	if !(g.Step > 0) {
		g.Step = DefaultGeometry.Step
	}
	if g.MaxRepair <= 0 {
		g.MaxRepair = DefaultGeometry.MaxRepair
	}
	return g
}

// near-zero horizontal offset, as a fraction of the foreground radius
const nearZero = 1e-3

// edge refinement halvings after the repair walk finds a defined point
const edgeHalvings = 50

// Overlap returns the area of intersection of a reference disk of radius
// rs and a foreground disk of radius rp whose center is offset (dy, dz)
// from the reference center.
//
// Disjoint disks give zero and contained disks give the area of the
// smaller.  Otherwise the lens is the sum of two circular segments with
// half-angles found by bisection.
func (g Geometry) Overlap(rs, rp, dy, dz float64) (float64, error) {
	d := math.Hypot(dy, dz)
	switch {
	case d >= rs+rp:
		return 0, nil
	case d+rp <= rs:
		return math.Pi * rp * rp, nil
	case d+rs <= rp:
		return math.Pi * rs * rs, nil
	}
	// the lens is symmetric.  the half-angle relation below needs the
	// larger disk as reference.
	if rp > rs {
		rs, rp = rp, rs
	}
	g = g.withDefaults()
	β, err := g.beta(rs, rp, dy, dz)
	if err != nil {
		return 0, err
	}
	return lens(rs, rp, β, alpha(rs, rp, β)), nil
}

// Overlap computes overlap area with DefaultGeometry.
func Overlap(rs, rp, dy, dz float64) (float64, error) {
	return DefaultGeometry.Overlap(rs, rp, dy, dz)
}

// OverlapAt returns the area of intersection of the silhouettes of
// reference disk s and foreground disk p at sample i.
func (g Geometry) OverlapAt(s, p *Disk, i int) (float64, error) {
	dy, dz := p.Offset(s, i)
	a, err := g.Overlap(s.R, p.R, dy, dz)
	if err != nil {
		return 0, fmt.Errorf("%s over %s, sample %d: %w", p.Name, s.Name, i, err)
	}
	return a, nil
}

// alpha is the half-angle subtended at the reference center by the chord
// common to both boundaries, given the foreground half-angle β.
func alpha(rs, rp, β float64) float64 {
	return math.Asin(rp * math.Sin(math.Pi-β) / rs)
}

// lens is the sum of the two circular segments on either side of the
// common chord.
func lens(rs, rp, β, α float64) float64 {
	return segment(rp, β) + segment(rs, α)
}

// segment is the area of a circular segment of radius r and half-angle h.
func segment(r, h float64) float64 {
	s, c := math.Sincos(h)
	return r * r * (h - s*c)
}

// beta solves for the half-angle at the foreground center of the part of
// the foreground disk that lies inside the reference disk.
func (g Geometry) beta(rs, rp, dy, dz float64) (float64, error) {
	dy = math.Abs(dy)
	φ := math.Atan2(dz, dy)
	// d by the component with the better conditioned trig function
	var d float64
	if dy > nearZero*rp {
		d = dy / math.Cos(φ)
	} else {
		d = dz / math.Sin(φ)
	}
	// f is zero at the supplement of β.  its arc-cosine argument is
	// smallest at π/2 and may fall below -1 over an interval about π/2.
	f := func(b float64) float64 {
		return b - math.Acos((rs*math.Cos(alpha(rs, rp, b))-d)/rp)
	}
	lo := 0.
	if mid := math.Pi / 2; math.IsNaN(f(mid)) {
		var err error
		if lo, err = g.repair(f, mid); err != nil {
			return 0, err
		}
	}
	b, err := bisect.Root(f, lo, math.Pi, g.Tol, g.MaxIter)
	if err != nil {
		return 0, fmt.Errorf("overlap angle: %w", err)
	}
	return math.Pi - b, nil
}

// repair walks up from an undefined point of f in increments of g.Step
// until f is defined, then narrows the last increment to the edge of the
// defined interval.  The root of f lies above that edge.
func (g Geometry) repair(f func(float64) float64, from float64) (float64, error) {
	prev := from
	for i := 0; i < g.MaxRepair; i++ {
		b := math.Min(prev+g.Step, math.Pi)
		if !math.IsNaN(f(b)) {
			for j := 0; j < edgeHalvings; j++ {
				m := (prev + b) * .5
				if math.IsNaN(f(m)) {
					prev = m
				} else {
					b = m
				}
			}
			return b, nil
		}
		if b == math.Pi {
			break
		}
		prev = b
	}
	return 0, ErrBracket
}
