// Public domain.

package eclipse

import (
	"math"
	"time"

	xrand "golang.org/x/exp/rand"

	"github.com/soniakeys/transit/internal/disk"
	"github.com/soniakeys/transit/internal/metrics"
)

// Rand is the source of uniform deviates in [0, 1) for the point cloud.
// A *rand.Rand from golang.org/x/exp/rand satisfies it.
type Rand interface {
	Float64() float64
}

// DefaultSamples is the point cloud size used when none is given.
const DefaultSamples = 100000

// Estimator estimates flux fractions by counting points of a cloud drawn
// uniformly over the star's disk that fall in no shadow.
//
// The cloud is drawn once and reused until the sample count or the star
// radius changes.  An Estimator is not safe for concurrent use.
type Estimator struct {
	rnd Rand
	n   int

	// cloud, relative to the star center
	r     float64
	y, z  []float64
	draws int
}

// NewEstimator returns an Estimator drawing n points from rnd.
//
// n <= 0 selects DefaultSamples.  A nil rnd selects a PCG generator
// seeded from the clock.
func NewEstimator(n int, rnd Rand) *Estimator {
	if rnd == nil {
		r := xrand.New(&xrand.PCGSource{})
		r.Seed(uint64(time.Now().UnixNano()))
		rnd = r
	}
	e := &Estimator{rnd: rnd}
	e.SetSamples(n)
	return e
}

// SetSamples sets the point cloud size.  A change invalidates the cloud.
func (e *Estimator) SetSamples(n int) {
	if n <= 0 {
		n = DefaultSamples
	}
	e.n = n
}

// Samples returns the point cloud size.
func (e *Estimator) Samples() int { return e.n }

// Draws returns the number of times a point cloud has been drawn.
func (e *Estimator) Draws() int { return e.draws }

// cloud draws points uniformly by area within radius r, unless the
// current cloud already matches.
func (e *Estimator) cloud(r float64) {
	if len(e.y) == e.n && e.r == r {
		return
	}
	e.r = r
	e.y = make([]float64, e.n)
	e.z = make([]float64, e.n)
	for k := range e.y {
		ρ := math.Sqrt(e.rnd.Float64()) * r
		s, c := math.Sincos(2 * math.Pi * e.rnd.Float64())
		e.y[k] = ρ * c
		e.z[k] = ρ * s
	}
	e.draws++
	metrics.AddPointsDrawn(e.n)
}

// FluxAt estimates the visible flux fraction of star at sample i.
//
// Only bodies in front of the star and near enough to reach its disk are
// tested.  A point counts as covered when it lies inside any of them.
func (e *Estimator) FluxAt(star *disk.Disk, bodies []*disk.Disk, i int) float64 {
	type target struct{ dy, dz, r2 float64 }
	var near []target
	for _, b := range bodies {
		if !b.InFront(star, i) || b.Separation(star, i)-b.R > star.R {
			continue
		}
		dy, dz := b.Offset(star, i)
		near = append(near, target{dy, dz, b.R * b.R})
	}
	if len(near) == 0 {
		return 1
	}
	e.cloud(star.R)
	covered := 0
	for k, y := range e.y {
		z := e.z[k]
		for _, s := range near {
			if dy, dz := y-s.dy, z-s.dz; dy*dy+dz*dz < s.r2 {
				covered++
				break
			}
		}
	}
	return 1 - float64(covered)/float64(e.n)
}

// Flux estimates the visible flux fraction of star at every sample.
func (e *Estimator) Flux(star *disk.Disk, bodies []*disk.Disk) []float64 {
	f := make([]float64, star.Len())
	for i := range f {
		f[i] = e.FluxAt(star, bodies, i)
	}
	return f
}
