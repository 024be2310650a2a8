// Public domain.

package orbit

import "fmt"

// DistanceError reports an orbit that would bring the body into the star.
//
// Rmin is the periapsis distance, StarRadius the stellar radius, both AU.
type DistanceError struct {
	Rmin, BodyRadius, StarRadius float64
}

func (e *DistanceError) Error() string {
	return fmt.Sprintf("star-body distance %.4f AU less body radius %.4f AU "+
		"is below stellar radius %.4f AU", e.Rmin, e.BodyRadius, e.StarRadius)
}

// DimensionError reports a body too large or too heavy for its star.
type DimensionError struct {
	Msg string
}

func (e *DimensionError) Error() string { return e.Msg }

// RangeError reports an orbital parameter outside its allowed interval.
// Angles are reported in degrees.
type RangeError struct {
	Param           string
	Value, Min, Max float64
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s %g must be between %g and %g",
		e.Param, e.Value, e.Min, e.Max)
}
