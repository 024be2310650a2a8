// Public domain.

// Package scale, unit systems and Kepler's third law.
//
// Lengths are AU, masses are solar masses, orbital periods are days.
// Time samples fed to propagation are seconds; DaySec converts.
package scale

import (
	"fmt"
	"math"

	"github.com/soniakeys/astro"
)

// Physical constants, SI.
const (
	AUMeters       = 1.495978707e11
	SunMassKg      = 1.989e30
	SunRadiusM     = 6.957e8
	JupiterMassKg  = 1.898e27
	JupiterRadiusM = 7.1492e7
	EarthMassKg    = 5.9722e24
	EarthRadiusM   = 6.378137e6

	DaySec = 24 * 3600
)

// System is a unit system for body masses and radii.
//
// Mass is the unit mass in solar masses, Radius is the unit radius in AU.
type System struct {
	Name   string
	Mass   float64
	Radius float64
	Symbol string
}

// The unit systems offered for body dimensions.
var (
	Solar   = System{"solar", 1, SunRadiusM / AUMeters, "☉"}
	Jupiter = System{"jupiter", JupiterMassKg / SunMassKg, JupiterRadiusM / AUMeters, "J"}
	Earth   = System{"earth", EarthMassKg / SunMassKg, EarthRadiusM / AUMeters, "⊕"}
)

// Systems lists the unit systems by name.
var Systems = []System{Solar, Jupiter, Earth}

// ByName looks up a unit system.
func ByName(name string) (System, error) {
	for _, s := range Systems {
		if s.Name == name {
			return s, nil
		}
	}
	return System{}, fmt.Errorf("invalid units %q, valid units are solar, jupiter, earth", name)
}

// MassOf converts a mass in units of s to solar masses.
func (s System) MassOf(m float64) float64 { return m * s.Mass }

// RadiusOf converts a radius in units of s to AU.
func (s System) RadiusOf(r float64) float64 { return r * s.Radius }

// SemiMajorAxis solves Kepler's third law, returning the semi-major axis
// in AU of an orbit with period p in days about masses m1 and m2 in solar
// masses.
func SemiMajorAxis(m1, m2, p float64) float64 {
	// a^3 = k^2 (m1+m2) P^2 / 4pi^2, k the Gaussian gravitational constant.
	return math.Cbrt(astro.U * (m1 + m2) * p * p / (4 * math.Pi * math.Pi))
}

// Period inverts Kepler's third law, returning the period in days of an
// orbit with semi-major axis a in AU.
func Period(m1, m2, a float64) float64 {
	return 2 * math.Pi * math.Sqrt(a*a*a/(astro.U*(m1+m2)))
}
