// Public domain.

package orbit

import (
	"math"

	"github.com/soniakeys/transit/internal/bisect"
	"github.com/soniakeys/unit"
)

// ErrNoConverge is returned when a Kepler solution is not found within
// the iteration limit.
var ErrNoConverge = bisect.ErrNoConverge

// Solver holds settings for solving Kepler's equation.
//
// Tol bounds the residual |E - e sin E - M|, radians.  Zero values select
// the defaults of DefaultSolver.
type Solver struct {
	Tol     float64
	MaxIter int
}

// DefaultSolver is used by the package level functions.
var DefaultSolver = Solver{Tol: 1e-3, MaxIter: 100}

func (s Solver) withDefaults() Solver {
	if !(s.Tol > 0) {
		s.Tol = DefaultSolver.Tol
	}
	if s.MaxIter <= 0 {
		s.MaxIter = DefaultSolver.MaxIter
	}
	return s
}

// Eccentric solves Kepler's equation E - e sin E = M for eccentric
// anomaly E, by bisection over [0, 2π].
//
// M is reduced to [0, 2π) first.  For e < 1 the function is monotonic
// and a root always lies in the bracket.  An error wrapping ErrNoConverge
// is returned if the iteration limit is reached.
func (s Solver) Eccentric(m unit.Angle, e float64) (unit.Angle, error) {
	s = s.withDefaults()
	mr := m.Mod1().Rad()
	f := func(E float64) float64 { return E - e*math.Sin(E) - mr }
	// the derivative is at most 1+e, so a bracket half-width of
	// tol/(1+e) bounds the residual at the midpoint by tol.
	E, err := bisect.Root(f, 0, 2*math.Pi, s.Tol/(1+e), s.MaxIter)
	return unit.Angle(E), err
}

// Eccentric solves Kepler's equation with DefaultSolver.
func Eccentric(m unit.Angle, e float64) (unit.Angle, error) {
	return DefaultSolver.Eccentric(m, e)
}
