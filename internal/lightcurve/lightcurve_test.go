// Public domain.

package lightcurve_test

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/soniakeys/transit/internal/lightcurve"
	"github.com/soniakeys/transit/orbit"
	"github.com/soniakeys/transit/scale"
	"github.com/soniakeys/unit"
)

var sun = orbit.Primary{Mass: 1, Radius: scale.Solar.Radius}

// edge-on body, transiting three quarters of an orbit after t = 0.
func edgeOn(period, mass, radius float64) orbit.Params {
	return orbit.Params{
		Period: period,
		Inc:    unit.AngleFromDeg(90),
		Node:   unit.AngleFromDeg(90),
		Mass:   mass,
		Radius: scale.Solar.RadiusOf(radius),
	}
}

func mustBody(t testing.TB, name string, p orbit.Params) lightcurve.Body {
	el, err := orbit.New(sun, p)
	if err != nil {
		t.Fatal(err)
	}
	return lightcurve.Body{Name: name, Elements: el}
}

func ExampleSolver_Solve() {
	el, err := orbit.New(sun, orbit.Params{
		Period: 10,
		Inc:    unit.AngleFromDeg(90),
		Node:   unit.AngleFromDeg(90),
		Mass:   .001,
		Radius: scale.Solar.RadiusOf(.1),
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	s, err := lightcurve.New(sun, []lightcurve.Body{{Name: "b", Elements: el}}, lightcurve.Options{})
	if err != nil {
		fmt.Println(err)
		return
	}
	c, err := s.Solve(lightcurve.TimeGrid(2, s.MaxPeriod(), 4001))
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Printf("%s, depth %.4f\n", c.Method, c.Depth)
	// Output:
	// exact, depth 0.0100
}

func TestSingleTransit(t *testing.T) {
	b := mustBody(t, "b", edgeOn(10, .001, .1))
	s, err := lightcurve.New(sun, []lightcurve.Body{b}, lightcurve.Options{})
	if err != nil {
		t.Fatal(err)
	}
	times := lightcurve.TimeGrid(2, 10, 4001)
	c, err := s.Solve(times)
	if err != nil {
		t.Fatal(err)
	}
	if c.Method != lightcurve.Exact {
		t.Fatal("method", c.Method)
	}
	if math.Abs(c.Depth-.01) > 1e-12 {
		t.Fatal("depth", c.Depth)
	}
	// mid-transit at 7.5 and 17.5 days
	for _, i := range []int{1500, 3500} {
		if math.Abs(c.Flux[i]-.99) > 1e-12 {
			t.Errorf("t = %g days: flux %g", times[i]/scale.DaySec, c.Flux[i])
		}
	}
	// two transits of under a quarter day each
	if c.Duration < 40 || c.Duration > 2*50 {
		t.Error("duration", c.Duration)
	}
	for i, f := range c.Flux {
		if f != 1 && math.Abs(times[i]/scale.DaySec-7.5) > .2 &&
			math.Abs(times[i]/scale.DaySec-17.5) > .2 {
			t.Fatalf("t = %g days: flux %g outside transit",
				times[i]/scale.DaySec, f)
		}
	}
	bs := c.Bodies[0]
	if bs.Name != "b" || bs.Depth != c.Depth || bs.Duration != c.Duration {
		t.Errorf("body summary %+v", bs)
	}
	if bs.Periapsis != b.Elements.Periapsis() || bs.Apoapsis != b.Elements.Apoapsis() {
		t.Errorf("body summary %+v", bs)
	}
	if len(c.Positions) != 1 || c.Positions[0].Len() != len(times) ||
		c.Star.Len() != len(times) {
		t.Error("series lengths")
	}
}

func TestNoTransit(t *testing.T) {
	// node 0 with 90° inclination puts the orbit in the sky plane
	p := edgeOn(10, .001, .1)
	p.Node = 0
	s, err := lightcurve.New(sun, []lightcurve.Body{mustBody(t, "b", p)}, lightcurve.Options{})
	if err != nil {
		t.Fatal(err)
	}
	c, err := s.Solve(lightcurve.TimeGrid(3, 10, 1000))
	if err != nil {
		t.Fatal(err)
	}
	for i, f := range c.Flux {
		if f != 1 {
			t.Fatalf("sample %d: flux %g", i, f)
		}
	}
	if c.Depth != 0 || c.Duration != 0 {
		t.Fatal("depth", c.Depth, "duration", c.Duration)
	}
}

func TestMethods(t *testing.T) {
	b1 := mustBody(t, "b1", edgeOn(10, .001, .1))
	b2 := mustBody(t, "b2", edgeOn(30, .0001, .05))
	bodies := []lightcurve.Body{b1, b2}
	times := lightcurve.TimeGrid(2, 30, 6001)

	auto, err := lightcurve.New(sun, bodies, lightcurve.Options{
		Samples:    20000,
		Repeatable: true,
		Seed:       3,
	})
	if err != nil {
		t.Fatal(err)
	}
	if auto.Method() != lightcurve.MonteCarlo || auto.MaxPeriod() != 30 {
		t.Fatal(auto.Method(), auto.MaxPeriod())
	}
	mc, err := auto.Solve(times)
	if err != nil {
		t.Fatal(err)
	}
	exact, err := lightcurve.New(sun, bodies, lightcurve.Options{Method: lightcurve.Exact})
	if err != nil {
		t.Fatal(err)
	}
	ex, err := exact.Solve(times)
	if err != nil {
		t.Fatal(err)
	}
	if ex.Method != lightcurve.Exact || len(ex.Delegated) != 0 {
		t.Fatal(ex.Method, ex.Delegated)
	}
	for i := range times {
		if math.Abs(ex.Flux[i]-mc.Flux[i]) > .005 {
			t.Fatalf("sample %d: exact %g, Monte Carlo %g", i, ex.Flux[i], mc.Flux[i])
		}
	}
	if math.Abs(ex.Bodies[1].Depth-.0025) > 1e-12 {
		t.Error("b2 depth", ex.Bodies[1].Depth)
	}
	// summaries of each body alone are exact whatever the method
	if mc.Bodies[0].Depth != ex.Bodies[0].Depth ||
		mc.Bodies[1].Duration != ex.Bodies[1].Duration {
		t.Error("body summaries differ between methods")
	}
	if ex.Duration != ex.Bodies[0].Duration+ex.Bodies[1].Duration {
		t.Error("combined duration", ex.Duration)
	}
}

func TestRepeatable(t *testing.T) {
	bodies := []lightcurve.Body{
		mustBody(t, "b1", edgeOn(10, .001, .1)),
		mustBody(t, "b2", edgeOn(30, .0001, .05)),
	}
	opt := lightcurve.Options{Samples: 5000, Repeatable: true, Seed: 11}
	times := lightcurve.TimeGrid(1, 30, 3001)
	var flux [2][]float64
	for i := range flux {
		s, err := lightcurve.New(sun, bodies, opt)
		if err != nil {
			t.Fatal(err)
		}
		c, err := s.Solve(times)
		if err != nil {
			t.Fatal(err)
		}
		flux[i] = c.Flux
	}
	for i := range times {
		if flux[0][i] != flux[1][i] {
			t.Fatalf("sample %d: %g != %g", i, flux[0][i], flux[1][i])
		}
	}
}

func TestErrors(t *testing.T) {
	b := mustBody(t, "b", edgeOn(10, .001, .1))
	s, err := lightcurve.New(sun, []lightcurve.Body{b}, lightcurve.Options{})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Solve([]float64{0, 10, 10}); !errors.Is(err, lightcurve.ErrTimes) {
		t.Error("expected ErrTimes, got", err)
	}
	other := orbit.Primary{Mass: 1.2, Radius: sun.Radius}
	if _, err := lightcurve.New(other, []lightcurve.Body{b}, lightcurve.Options{}); err == nil {
		t.Error("expected error for elements of another star")
	}
	if _, err := lightcurve.New(sun, []lightcurve.Body{{Name: "x"}}, lightcurve.Options{}); err == nil {
		t.Error("expected error for missing elements")
	}
	s, err = lightcurve.New(sun, []lightcurve.Body{b}, lightcurve.Options{
		Kepler: orbit.Solver{Tol: 1e-15, MaxIter: 2},
	})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := s.Solve([]float64{0, 1000}); !errors.Is(err, orbit.ErrNoConverge) {
		t.Error("expected ErrNoConverge, got", err)
	}
}

func TestTimeGrid(t *testing.T) {
	g := lightcurve.TimeGrid(2, 10, 5)
	want := []float64{0, 5, 10, 15, 20}
	for i := range want {
		if g[i] != want[i]*scale.DaySec {
			t.Fatalf("%v", g)
		}
	}
	if g := lightcurve.TimeGrid(2, 10, 1); len(g) != 1 || g[0] != 0 {
		t.Fatal(g)
	}
	if g := lightcurve.TimeGrid(2, 10, 0); g != nil {
		t.Fatal(g)
	}
}

func TestInvalidMethod(t *testing.T) {
	b := mustBody(t, "b", edgeOn(10, .001, .1))
	for _, m := range []lightcurve.Method{-1, lightcurve.MonteCarlo + 1} {
		if _, err := lightcurve.New(sun, []lightcurve.Body{b}, lightcurve.Options{Method: m}); err == nil {
			t.Errorf("method %d accepted", int(m))
		} else {
			t.Log(err)
		}
	}
	if s := lightcurve.Method(7).String(); s != "Method(7)" {
		t.Error(s)
	}
	if s := lightcurve.MonteCarlo.String(); s != "montecarlo" {
		t.Error(s)
	}
}
