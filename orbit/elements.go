// Public domain.

// Package orbit propagates Keplerian orbits of bodies around a star and
// projects them onto the sky of a distant observer.
//
// The observer looks along the X axis; X is the line-of-sight coordinate,
// increasing toward the observer.  Y and Z span the sky plane.
package orbit

import (
	"math"

	"github.com/soniakeys/transit/scale"
	"github.com/soniakeys/unit"
)

// Primary is the star a body orbits.
type Primary struct {
	Mass   float64 // solar masses
	Radius float64 // AU
}

// Params are the free parameters of a body and its orbit.
type Params struct {
	Period  float64    // days
	Ecc     float64    // eccentricity, [0, 1]
	Inc     unit.Angle // inclination, [-90°, 90°]
	ArgPeri unit.Angle // argument of periapsis, [0, π]
	Node    unit.Angle // longitude of ascending node, [0, 2π)
	Phase   unit.Angle // initial phase, added to true anomaly
	Mass    float64    // solar masses
	Radius  float64    // AU
}

// Elements is a validated, immutable set of orbital elements.
//
// Semi-major and semi-minor axes and periapsis and apoapsis distances are
// derived at construction and always agree with the stored parameters.
// To change a parameter, construct a new Elements with With or WithPrimary.
type Elements struct {
	star Primary
	p    Params

	a, b, rmin, rmax float64
}

// New validates parameters and derives the dependent orbit quantities.
//
// Errors are *RangeError for parameters out of range, *DimensionError for
// a body heavier or larger than the star, and *DistanceError for an orbit
// that would intersect the star.  No Elements is returned with an error.
func New(star Primary, p Params) (*Elements, error) {
	if err := checkParams(star, p); err != nil {
		return nil, err
	}
	el := &Elements{star: star, p: p}
	el.a = scale.SemiMajorAxis(star.Mass, p.Mass, p.Period)
	el.b = el.a * math.Sqrt(1-p.Ecc*p.Ecc)
	el.rmin = el.a * (1 - p.Ecc)
	el.rmax = el.a * (1 + p.Ecc)
	// use ! >= so a NaN distance is rejected as well
	if !(el.rmin-p.Radius >= star.Radius) {
		return nil, &DistanceError{el.rmin, p.Radius, star.Radius}
	}
	return el, nil
}

func checkParams(star Primary, p Params) error {
	switch {
	case !(star.Mass > 0):
		return &RangeError{"star mass", star.Mass, 0, math.Inf(1)}
	case !(star.Radius > 0):
		return &RangeError{"star radius", star.Radius, 0, math.Inf(1)}
	case !(p.Period > 0):
		return &RangeError{"period", p.Period, 0, math.Inf(1)}
	case !(p.Mass >= 0):
		return &RangeError{"mass", p.Mass, 0, star.Mass}
	case !(p.Radius >= 0):
		return &RangeError{"radius", p.Radius, 0, star.Radius}
	case p.Mass > star.Mass:
		return &DimensionError{"body cannot be heavier than host star"}
	case p.Radius > star.Radius:
		return &DimensionError{"body cannot be larger than host star"}
	}
	if d := p.Inc.Deg(); !(d >= -90 && d <= 90) {
		return &RangeError{"inclination", d, -90, 90}
	}
	if !(p.Ecc >= 0 && p.Ecc <= 1) {
		return &RangeError{"eccentricity", p.Ecc, 0, 1}
	}
	if r := p.ArgPeri.Rad(); !(r >= 0 && r <= math.Pi) {
		return &RangeError{"argument of periapsis", p.ArgPeri.Deg(), 0, 180}
	}
	if r := p.Node.Rad(); !(r >= 0 && r < 2*math.Pi) {
		return &RangeError{"longitude of ascending node", p.Node.Deg(), 0, 360}
	}
	if math.IsNaN(p.Phase.Rad()) || math.IsInf(p.Phase.Rad(), 0) {
		return &RangeError{"phase", p.Phase.Deg(), math.Inf(-1), math.Inf(1)}
	}
	return nil
}

// With returns new Elements for the same star with parameters p.
// The receiver is unchanged whether or not an error is returned.
func (el *Elements) With(p Params) (*Elements, error) {
	return New(el.star, p)
}

// WithPrimary returns new Elements for the same body orbiting star.
func (el *Elements) WithPrimary(star Primary) (*Elements, error) {
	return New(star, el.p)
}

// Primary returns the star the body orbits.
func (el *Elements) Primary() Primary { return el.star }

// Params returns the body and orbit parameters.
func (el *Elements) Params() Params { return el.p }

// A returns the semi-major axis, AU.
func (el *Elements) A() float64 { return el.a }

// B returns the semi-minor axis, AU.
func (el *Elements) B() float64 { return el.b }

// Periapsis returns the closest distance to the star, AU.
func (el *Elements) Periapsis() float64 { return el.rmin }

// Apoapsis returns the farthest distance from the star, AU.
func (el *Elements) Apoapsis() float64 { return el.rmax }

// MeanMotion returns the mean angular velocity in radians per second.
func (el *Elements) MeanMotion() float64 {
	return 2 * math.Pi / (el.p.Period * scale.DaySec)
}
