// Public domain.

// Package disk reduces bodies to circular silhouettes on the sky and
// computes how those silhouettes overlap.
package disk

import (
	"math"

	"github.com/soniakeys/transit/orbit"
)

// Disk is a body reduced to a radius and a position series.
type Disk struct {
	Name string
	R    float64 // AU
	Pos  *orbit.Series
}

// New constructs a Disk.
func New(name string, r float64, pos *orbit.Series) *Disk {
	return &Disk{Name: name, R: r, Pos: pos}
}

// Static constructs a Disk fixed at the origin for n samples.
func Static(name string, r float64, n int) *Disk {
	return &Disk{Name: name, R: r, Pos: orbit.Static(n)}
}

// Area returns the area of the silhouette.
func (d *Disk) Area() float64 { return math.Pi * d.R * d.R }

// Len returns the number of position samples.
func (d *Disk) Len() int { return d.Pos.Len() }

// Offset returns the sky-plane offset of d from o at sample i.
func (d *Disk) Offset(o *Disk, i int) (dy, dz float64) {
	p := d.Pos.At(i)
	q := o.Pos.At(i)
	p.Sub(&p, &q)
	return p.Y, p.Z
}

// Separation returns the projected distance between the centers of d and
// o at sample i.
func (d *Disk) Separation(o *Disk, i int) float64 {
	return math.Hypot(d.Offset(o, i))
}

// InFront reports whether d is closer to the observer than o at sample i.
func (d *Disk) InFront(o *Disk, i int) bool {
	return d.Pos.X[i] > o.Pos.X[i]
}
