// Public domain.

package tprog

import (
	"fmt"
	"strings"

	sexa "github.com/soniakeys/sexagesimal"

	"github.com/soniakeys/transit/internal/lightcurve"
	"github.com/soniakeys/transit/scale"
)

// format renders a solved system as text.
func format(sys *system, c *lightcurve.Curve, opt outputOptions, u scale.System) string {
	var b strings.Builder
	if opt.summary {
		formatSummary(&b, sys, c, u)
	}
	if opt.headings {
		b.WriteString("     Time(d)       Flux")
		if opt.positions {
			for _, bd := range sys.bodies {
				for _, ax := range []string{"x", "y", "z"} {
					fmt.Fprintf(&b, " %12s", bd.Name+"."+ax)
				}
			}
		}
		b.WriteByte('\n')
	}
	for i, t := range c.Times {
		fmt.Fprintf(&b, "%12.5f %10.7f", t/scale.DaySec, c.Flux[i])
		if opt.positions {
			for _, p := range c.Positions {
				fmt.Fprintf(&b, " %12.8f %12.8f %12.8f", p.X[i], p.Y[i], p.Z[i])
			}
		}
		b.WriteByte('\n')
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func formatSummary(b *strings.Builder, sys *system, c *lightcurve.Curve, u scale.System) {
	fmt.Fprintf(b, "# %s\n", sys.name)
	fmt.Fprintf(b, "# star  mass %g M☉  radius %.6f AU\n", sys.star.Mass, sys.star.Radius)
	for i, bd := range sys.bodies {
		p := bd.Elements.Params()
		s := c.Bodies[i]
		fmt.Fprintf(b, "# body %s  mass %.6g M%s  radius %.6g R%s  period %g d\n",
			bd.Name, p.Mass/u.Mass, u.Symbol, p.Radius/u.Radius, u.Symbol, p.Period)
		fmt.Fprintf(b, "#   a %.6f AU  e %g  periapsis %.6f AU  apoapsis %.6f AU\n",
			bd.Elements.A(), p.Ecc, s.Periapsis, s.Apoapsis)
		fmt.Fprintf(b, "#   i %.1s  ω %.1s  Ω %.1s\n",
			sexa.FmtAngle(p.Inc), sexa.FmtAngle(p.ArgPeri), sexa.FmtAngle(p.Node))
		fmt.Fprintf(b, "#   depth %.6f  duration %d samples\n", s.Depth, s.Duration)
	}
	fmt.Fprintf(b, "# method %s  depth %.6f  duration %d samples", c.Method, c.Depth, c.Duration)
	if n := len(c.Delegated); n > 0 {
		fmt.Fprintf(b, "  (%d by Monte Carlo)", n)
	}
	b.WriteByte('\n')
}
