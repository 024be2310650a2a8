// Public domain.

package disk

import (
	"fmt"
	"math"
)

// State tags how one disk covers another at a sample.
type State int8

const (
	None    State = iota // no overlap
	Partial              // silhouettes cross
	Full                 // occluding disk entirely inside the other
)

var stateName = [...]string{"none", "partial", "full"}

func (s State) String() string {
	if s < None || s > Full {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateName[s]
}

// Occludes reports whether s is Partial or Full.
func (s State) Occludes() bool { return s != None }

// StateOf classifies a disk of radius rx over a disk of radius ry with
// centers separated by d.
func StateOf(d, rx, ry float64) State {
	switch {
	case d+rx <= ry:
		return Full
	case math.Abs(ry-rx) < d && d < ry+rx:
		return Partial
	}
	return None
}

// ClassifyAt classifies x over y at sample i.
//
// With inFront true, x must also be closer to the observer than y.
func ClassifyAt(x, y *Disk, i int, inFront bool) State {
	if inFront && !x.InFront(y, i) {
		return None
	}
	return StateOf(x.Separation(y, i), x.R, y.R)
}

// Classify classifies x over y at every sample.
//
// Use inFront for a body against the star.  Two foreground bodies are
// compared with inFront false; their depth order does not matter for
// silhouette overlap.
func Classify(x, y *Disk, inFront bool) []State {
	s := make([]State, x.Len())
	for i := range s {
		s[i] = ClassifyAt(x, y, i, inFront)
	}
	return s
}
