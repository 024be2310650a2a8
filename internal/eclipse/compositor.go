// Public domain.

// Package eclipse combines the shadows of several bodies on a star into a
// visible flux fraction.
//
// Compositor is exact for samples where no three shadows on the star
// meet.  Estimator samples the star's disk and handles any number of
// overlapping shadows, with statistical error.
package eclipse

import (
	"errors"
	"fmt"
	"sort"

	"github.com/soniakeys/transit/internal/disk"
	"github.com/soniakeys/transit/internal/metrics"
)

// ErrUnresolved is returned for a sample that needs the area common to
// three circles when the Compositor has no Fallback.
var ErrUnresolved = errors.New("shadow overlap not resolvable by pairwise correction")

// Fallback computes the flux fraction at a single sample.
// *Estimator satisfies Fallback.
type Fallback interface {
	FluxAt(star *disk.Disk, bodies []*disk.Disk, i int) float64
}

// Compositor computes flux fractions by pairwise inclusion-exclusion.
//
// Samples where the pairwise correction is not exact are passed to
// Fallback.  These are samples where three or more shadows on the star
// mutually overlap, and samples where two shadows overlap each other
// while both lie across the limb of the star.
type Compositor struct {
	Geometry disk.Geometry
	Fallback Fallback
}

// Result is the output of Compositor.Flux.
type Result struct {
	Flux     []float64 // visible fraction of the star, [0, 1]
	Occluded []float64 // occluded area, AU²
	// sample indices resolved by Fallback, ascending
	Delegated []int
}

// Flux computes the visible flux fraction of star at each sample, with
// bodies in front of the star casting shadows.
//
// All disks must have the same number of samples.  The order of bodies
// does not matter.
func (c Compositor) Flux(star *disk.Disk, bodies []*disk.Disk) (*Result, error) {
	n := star.Len()
	for _, b := range bodies {
		if b.Len() != n {
			return nil, fmt.Errorf("%s: %d samples, star has %d", b.Name, b.Len(), n)
		}
	}
	// largest first, so each body is corrected only against bodies at
	// least its size.
	sorted := append([]*disk.Disk{}, bodies...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].R > sorted[j].R
	})
	f := &fold{
		g:          c.Geometry,
		star:       star,
		occ:        make([]float64, n),
		count:      make([]int, n),
		unresolved: make([]bool, n),
	}
	for _, b := range sorted {
		if err := f.add(b); err != nil {
			metrics.IncSolverFailure(metrics.Overlap)
			return nil, err
		}
	}
	f.markTriples()

	r := &Result{Flux: make([]float64, n), Occluded: f.occ}
	sa := star.Area()
	for i, a := range f.occ {
		r.Flux[i] = clamp(1 - a/sa)
	}
	for i, u := range f.unresolved {
		if !u {
			continue
		}
		if c.Fallback == nil {
			return nil, fmt.Errorf("sample %d: %w", i, ErrUnresolved)
		}
		r.Flux[i] = clamp(c.Fallback.FluxAt(star, bodies, i))
		r.Occluded[i] = (1 - r.Flux[i]) * sa
		r.Delegated = append(r.Delegated, i)
	}
	metrics.AddDelegated(len(r.Delegated))
	return r, nil
}

func clamp(x float64) float64 {
	switch {
	case x < 0:
		return 0
	case x > 1:
		return 1
	}
	return x
}

// shadow is a body already folded in, with its state and occluded area
// against the star at each sample.
type shadow struct {
	d     *disk.Disk
	state []disk.State
	area  []float64
}

// fold carries the running occluded area over the radius-sorted bodies.
type fold struct {
	g          disk.Geometry
	star       *disk.Disk
	occ        []float64
	count      []int // bodies occluding the star
	unresolved []bool
	done       []shadow
}

// add adds the star occlusion of b and removes its overlap with each
// larger body already added.
func (f *fold) add(b *disk.Disk) error {
	s := shadow{
		d:     b,
		state: disk.Classify(b, f.star, true),
		area:  make([]float64, b.Len()),
	}
	for i, st := range s.state {
		switch st {
		case disk.Full:
			s.area[i] = b.Area()
		case disk.Partial:
			a, err := f.g.OverlapAt(f.star, b, i)
			if err != nil {
				return err
			}
			s.area[i] = a
		default:
			continue
		}
		f.occ[i] += s.area[i]
		f.count[i]++
	}
	for _, p := range f.done {
		if err := f.correct(p, s); err != nil {
			return err
		}
	}
	f.done = append(f.done, s)
	return nil
}

// correct subtracts the area counted twice where shadows s and the
// larger p overlap on the star.
func (f *fold) correct(p, s shadow) error {
	for i, st := range s.state {
		if !st.Occludes() || !p.state[i].Occludes() {
			continue
		}
		switch disk.ClassifyAt(s.d, p.d, i, false) {
		case disk.Full:
			// s inside p: all of s on the star was counted twice
			f.occ[i] -= s.area[i]
		case disk.Partial:
			if st != disk.Full && p.state[i] != disk.Full {
				// star ∩ s ∩ p is bounded by three arcs
				f.unresolved[i] = true
				continue
			}
			a, err := f.g.OverlapAt(p.d, s.d, i)
			if err != nil {
				return err
			}
			f.occ[i] -= a
		}
	}
	return nil
}

// markTriples marks samples where three shadows on the star pairwise
// overlap.  Pairwise correction is exact only when no point of the star
// is under three shadows.
func (f *fold) markTriples() {
	var on []*disk.Disk
	for i, c := range f.count {
		if c < 3 || f.unresolved[i] {
			continue
		}
		on = on[:0]
		for _, s := range f.done {
			if s.state[i].Occludes() {
				on = append(on, s.d)
			}
		}
		f.unresolved[i] = hasTriangle(on, i)
	}
}

// hasTriangle reports whether any three of ds pairwise overlap at sample
// i.  ds must be sorted by radius, descending.
func hasTriangle(ds []*disk.Disk, i int) bool {
	ov := func(j, k int) bool { // j < k
		return disk.ClassifyAt(ds[k], ds[j], i, false).Occludes()
	}
	for a := 0; a < len(ds); a++ {
		for b := a + 1; b < len(ds); b++ {
			if !ov(a, b) {
				continue
			}
			for c := b + 1; c < len(ds); c++ {
				if ov(a, c) && ov(b, c) {
					return true
				}
			}
		}
	}
	return false
}
