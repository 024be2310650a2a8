// Public domain.

package orbit_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/soniakeys/meeus/v3/kepler"
	"github.com/soniakeys/transit/orbit"
	"github.com/soniakeys/transit/scale"
	"github.com/soniakeys/unit"
)

var sun = orbit.Primary{Mass: 1, Radius: scale.Solar.Radius}

// the body of the single-transit scenario: 0.001 solar masses,
// 0.1 solar radii, 10 day period, edge on.
func hotJupiter() orbit.Params {
	return orbit.Params{
		Period: 10,
		Inc:    unit.AngleFromDeg(90),
		Node:   unit.AngleFromDeg(90),
		Mass:   .001,
		Radius: scale.Solar.RadiusOf(.1),
	}
}

func ExampleNew() {
	el, err := orbit.New(sun, hotJupiter())
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("a = %.4f AU, periapsis %.4f AU, apoapsis %.4f AU\n",
		el.A(), el.Periapsis(), el.Apoapsis())
	// Output:
	// a = 0.0909 AU, periapsis 0.0909 AU, apoapsis 0.0909 AU
}

func TestEccentricResidual(t *testing.T) {
	s := orbit.DefaultSolver
	for e := 0.; e <= .9; e += .1 {
		for m := 0.; m < 2*math.Pi; m += .05 {
			E, err := s.Eccentric(unit.Angle(m), e)
			if err != nil {
				t.Fatalf("e %.1f M %.2f: %v", e, m, err)
			}
			Er := E.Rad()
			if res := math.Abs(Er - e*math.Sin(Er) - m); res >= s.Tol {
				t.Fatalf("e %.1f M %.2f: residual %g", e, m, res)
			}
		}
	}
}

func TestEccentricMeeus(t *testing.T) {
	s := orbit.Solver{Tol: 1e-10}
	for _, e := range []float64{0, .1, .5, .9, .99} {
		for _, m := range []float64{.1, 1, 2, 3, 4, 5, 6} {
			E, err := s.Eccentric(unit.Angle(m), e)
			if err != nil {
				t.Fatal(err)
			}
			want := kepler.Kepler3(e, unit.Angle(m))
			d := math.Remainder(E.Rad()-want.Rad(), 2*math.Pi)
			if math.Abs(d) > 1e-8 {
				t.Errorf("e %g M %g: E = %v, Kepler3 %v", e, m, E, want)
			}
		}
	}
}

func TestEccentricNoConverge(t *testing.T) {
	s := orbit.Solver{Tol: 1e-12, MaxIter: 3}
	_, err := s.Eccentric(unit.Angle(1), .3)
	if !errors.Is(err, orbit.ErrNoConverge) {
		t.Fatal("expected ErrNoConverge, got", err)
	}
}

func TestNewErrors(t *testing.T) {
	var (
		de *orbit.DistanceError
		me *orbit.DimensionError
		re *orbit.RangeError
	)
	p := hotJupiter()
	p.Mass = 2
	if _, err := orbit.New(sun, p); !errors.As(err, &me) {
		t.Error("heavy body:", err)
	}
	p = hotJupiter()
	p.Radius = 2 * sun.Radius
	if _, err := orbit.New(sun, p); !errors.As(err, &me) {
		t.Error("large body:", err)
	}
	p = hotJupiter()
	p.Inc = unit.AngleFromDeg(95)
	if _, err := orbit.New(sun, p); !errors.As(err, &re) || re.Param != "inclination" {
		t.Error("inclination:", err)
	}
	p = hotJupiter()
	p.Ecc = 1.1
	if _, err := orbit.New(sun, p); !errors.As(err, &re) || re.Param != "eccentricity" {
		t.Error("eccentricity:", err)
	}
	p = hotJupiter()
	p.ArgPeri = unit.AngleFromDeg(200)
	if _, err := orbit.New(sun, p); !errors.As(err, &re) {
		t.Error("argument of periapsis:", err)
	}
	p = hotJupiter()
	p.Node = unit.AngleFromDeg(400)
	if _, err := orbit.New(sun, p); !errors.As(err, &re) {
		t.Error("node:", err)
	}
	// a one hour orbit is well inside the Sun
	p = hotJupiter()
	p.Period = 1. / 24
	_, err := orbit.New(sun, p)
	if !errors.As(err, &de) {
		t.Fatal("short period:", err)
	}
	if de.StarRadius != sun.Radius || de.Rmin >= sun.Radius {
		t.Fatalf("%+v", de)
	}
	t.Log(err)
	// e = 1 collapses periapsis to zero
	p = hotJupiter()
	p.Ecc = 1
	if _, err := orbit.New(sun, p); !errors.As(err, &de) {
		t.Error("e = 1:", err)
	}
}

func TestWith(t *testing.T) {
	el, err := orbit.New(sun, hotJupiter())
	if err != nil {
		t.Fatal(err)
	}
	a := el.A()
	p := el.Params()
	p.Ecc = .99
	if _, err := el.With(p); err == nil {
		t.Fatal("expected distance error")
	}
	if el.A() != a || el.Params().Ecc != 0 {
		t.Fatal("receiver modified")
	}
	p.Ecc = .5
	el2, err := el.With(p)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(el2.Periapsis()-a*.5) > 1e-15 ||
		math.Abs(el2.Apoapsis()-a*1.5) > 1e-15 ||
		math.Abs(el2.B()-a*math.Sqrt(.75)) > 1e-15 {
		t.Fatal("derived values inconsistent")
	}
	// a heavier star widens the orbit
	el3, err := el.WithPrimary(orbit.Primary{Mass: 2, Radius: sun.Radius})
	if err != nil {
		t.Fatal(err)
	}
	if el3.A() <= a {
		t.Fatal("a did not grow with star mass")
	}
	if _, err := el.WithPrimary(orbit.Primary{Mass: 1, Radius: .2}); err == nil {
		t.Fatal("expected error for star swallowing orbit")
	}
}

func TestPropagateCircular(t *testing.T) {
	p := hotJupiter()
	p.Inc = unit.AngleFromDeg(30)
	p.Node = unit.AngleFromDeg(45)
	p.Phase = unit.AngleFromDeg(10)
	el, err := orbit.New(sun, p)
	if err != nil {
		t.Fatal(err)
	}
	times := make([]float64, 50)
	for i := range times {
		times[i] = float64(i) * 3600 * 5
	}
	s, err := orbit.Propagate(el, times)
	if err != nil {
		t.Fatal(err)
	}
	if s.Len() != len(times) {
		t.Fatal("len", s.Len())
	}
	for i := range times {
		c := s.At(i)
		if r := math.Sqrt(c.Square()); math.Abs(r-el.A()) > 1e-12 {
			t.Fatalf("sample %d: r = %v, a = %v", i, r, el.A())
		}
	}
}

func TestPropagateEccentric(t *testing.T) {
	p := hotJupiter()
	p.Ecc = .4
	p.Inc = unit.AngleFromDeg(20)
	el, err := orbit.New(sun, p)
	if err != nil {
		t.Fatal(err)
	}
	period := p.Period * scale.DaySec
	// periapsis at t = 0, apoapsis half an orbit later
	s, err := orbit.Solver{Tol: 1e-12}.Propagate(el, []float64{0, period / 2, period})
	if err != nil {
		t.Fatal(err)
	}
	r := func(i int) float64 { c := s.At(i); return math.Sqrt(c.Square()) }
	if math.Abs(r(0)-el.Periapsis()) > 1e-9 || math.Abs(r(2)-el.Periapsis()) > 1e-9 {
		t.Fatal("periapsis", r(0), r(2), el.Periapsis())
	}
	if math.Abs(r(1)-el.Apoapsis()) > 1e-9 {
		t.Fatal("apoapsis", r(1), el.Apoapsis())
	}
}

func TestPropagateEdgeOn(t *testing.T) {
	el, err := orbit.New(sun, hotJupiter())
	if err != nil {
		t.Fatal(err)
	}
	times := make([]float64, 100)
	for i := range times {
		times[i] = float64(i) * 7919
	}
	s, err := orbit.Propagate(el, times)
	if err != nil {
		t.Fatal(err)
	}
	// i = 90°, node 90°: the orbit lies in the X-Z plane
	for i := range times {
		if math.Abs(s.Y[i]) > 1e-15 {
			t.Fatalf("sample %d: Y = %g", i, s.Y[i])
		}
	}
}

func TestPropagateNoConverge(t *testing.T) {
	el, err := orbit.New(sun, hotJupiter())
	if err != nil {
		t.Fatal(err)
	}
	_, err = orbit.Solver{Tol: 1e-15, MaxIter: 2}.Propagate(el, []float64{1000})
	if !errors.Is(err, orbit.ErrNoConverge) {
		t.Fatal("expected ErrNoConverge, got", err)
	}
}

func TestStatic(t *testing.T) {
	s := orbit.Static(7)
	if s.Len() != 7 {
		t.Fatal(s.Len())
	}
	for i := 0; i < 7; i++ {
		if c := s.At(i); c.Square() != 0 {
			t.Fatal("nonzero position", c)
		}
	}
}
