// Public domain.

// Package bisect finds roots of continuous functions by bisection.
package bisect

import "errors"

// ErrNoConverge is returned when the iteration limit is reached before
// the bracket narrows to tolerance.
var ErrNoConverge = errors.New("bisection did not converge")

// Root finds a root of f in [a, b].
//
// f(a) and f(b) should differ in sign.  a is returned directly if f(a)
// is zero.  Otherwise iteration stops when the bracket half-width is below
// tol or f evaluates to exactly zero.  The midpoint of the final bracket is
// returned.  If the bracket has not narrowed to tol
// after maxIter halvings, Root returns ErrNoConverge rather than a guess.
func Root(f func(float64) float64, a, b, tol float64, maxIter int) (float64, error) {
	fa := f(a)
	if fa == 0 {
		return a, nil
	}
	for i := 0; i < maxIter; i++ {
		c := (a + b) * .5
		fc := f(c)
		if fc == 0 {
			return c, nil
		}
		if fc*fa < 0 {
			b = c
		} else {
			a = c
			fa = fc
		}
		if (b-a)*.5 < tol {
			return (a + b) * .5, nil
		}
	}
	return 0, ErrNoConverge
}
