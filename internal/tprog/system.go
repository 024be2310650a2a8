// Public domain.

package tprog

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/soniakeys/transit/internal/lightcurve"
	"github.com/soniakeys/transit/orbit"
	"github.com/soniakeys/transit/scale"
	"github.com/soniakeys/unit"
)

// system is a star and its bodies as read from a system file.
type system struct {
	name   string
	star   orbit.Primary
	bodies []lightcurve.Body
}

// defaults for optional body fields
var defaultNode = unit.AngleFromDeg(90)

// readSystem parses a system file.
//
//	star <mass> <radius>
//	body <name> <mass> <radius> <period> [inc [e [argperi [node [phase]]]]]
//
// Star mass and radius are solar units.  Body mass and radius are in
// units u.  Period is days, angles are degrees, phase is a fraction of
// one orbit.  Blank lines and lines starting with # are ignored.
func readSystem(name string, r io.Reader, u scale.System) (*system, error) {
	sys := &system{name: name}
	var (
		haveStar bool
		params   []orbit.Params
		names    []string
	)
	sc := bufio.NewScanner(r)
	for ln := 1; sc.Scan(); ln++ {
		f := strings.Fields(sc.Text())
		if len(f) == 0 || strings.HasPrefix(f[0], "#") {
			continue
		}
		switch f[0] {
		case "star":
			if haveStar {
				return nil, fmt.Errorf("%s line %d: second star", name, ln)
			}
			p, err := parseStar(f[1:])
			if err != nil {
				return nil, fmt.Errorf("%s line %d: %w", name, ln, err)
			}
			sys.star = p
			haveStar = true
		case "body":
			if len(f) < 2 {
				return nil, fmt.Errorf("%s line %d: body name missing", name, ln)
			}
			p, err := parseBody(f[2:], u)
			if err != nil {
				return nil, fmt.Errorf("%s line %d, body %s: %w", name, ln, f[1], err)
			}
			names = append(names, f[1])
			params = append(params, p)
		default:
			return nil, fmt.Errorf("%s line %d: unrecognized line: %s", name, ln, sc.Text())
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	if !haveStar {
		return nil, fmt.Errorf("%s: no star", name)
	}
	for i, p := range params {
		el, err := orbit.New(sys.star, p)
		if err != nil {
			return nil, fmt.Errorf("%s, body %s: %w", name, names[i], err)
		}
		sys.bodies = append(sys.bodies, lightcurve.Body{Name: names[i], Elements: el})
	}
	return sys, nil
}

func parseStar(f []string) (orbit.Primary, error) {
	if len(f) != 2 {
		return orbit.Primary{}, errors.New("star needs mass and radius")
	}
	v, err := parseFloats(f)
	if err != nil {
		return orbit.Primary{}, err
	}
	return orbit.Primary{
		Mass:   scale.Solar.MassOf(v[0]),
		Radius: scale.Solar.RadiusOf(v[1]),
	}, nil
}

func parseBody(f []string, u scale.System) (p orbit.Params, err error) {
	if len(f) < 3 || len(f) > 8 {
		return p, errors.New("body needs mass, radius, period and at most five orbit angles")
	}
	v, err := parseFloats(f)
	if err != nil {
		return p, err
	}
	p.Mass = u.MassOf(v[0])
	p.Radius = u.RadiusOf(v[1])
	p.Period = v[2]
	p.Node = defaultNode
	// optional fields in order
	for i, x := range v[3:] {
		switch i {
		case 0:
			p.Inc = unit.AngleFromDeg(x)
		case 1:
			p.Ecc = x
		case 2:
			p.ArgPeri = unit.AngleFromDeg(x)
		case 3:
			p.Node = unit.AngleFromDeg(x)
		case 4:
			p.Phase = unit.Angle(2 * math.Pi * x)
		}
	}
	return p, nil
}

func parseFloats(f []string) ([]float64, error) {
	v := make([]float64, len(f))
	for i, s := range f {
		x, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, err
		}
		v[i] = x
	}
	return v, nil
}
