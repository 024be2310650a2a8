// Public domain.

package tprog

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"

	"github.com/soniakeys/exit"
	"github.com/soniakeys/transit/internal/lightcurve"
	"github.com/soniakeys/transit/scale"
)

// defaults
const (
	defaultOrbits     = 2
	defaultDatapoints = 1000
	defaultSeed       = 3
)

type outputOptions struct {
	headings, positions, summary bool
}

// config is everything read from the config file.
type config struct {
	opt        outputOptions
	method     lightcurve.Method
	samples    int
	repeatable bool
	seed       uint64
	orbits     float64
	datapoints int
	units      scale.System
}

func defaultConfig() *config {
	return &config{
		opt:        outputOptions{headings: true, summary: true},
		seed:       defaultSeed,
		orbits:     defaultOrbits,
		datapoints: defaultDatapoints,
		units:      scale.Solar,
	}
}

// solverOptions returns lightcurve options for the configuration.
func (c *config) solverOptions() lightcurve.Options {
	return lightcurve.Options{
		Method:     c.method,
		Samples:    c.samples,
		Repeatable: c.repeatable,
		Seed:       c.seed,
	}
}

// readConfig reads the config file named on the command line, or returns
// the default configuration if none was named.  Errors are fatal.
func readConfig(cl *commandLine) *config {
	if cl.dc == "" {
		return defaultConfig()
	}
	f, err := os.Open(cl.dc)
	if err != nil {
		exit.Log(err)
	}
	defer f.Close()
	c, err := parseConfig(f)
	if err != nil {
		exit.Log(fmt.Sprintf("%v\nConfig file: %s", err, cl.dc))
	}
	return c
}

var rxSetting = regexp.MustCompile(`^[ \t]*(\w+)[ \t]*=[ \t]*(.+?)[ \t]*$`)

// parseConfig parses config file keywords, one per line.
// Blank lines and lines starting with # are ignored.
func parseConfig(r io.Reader) (*config, error) {
	c := defaultConfig()
	for lr := bufio.NewReader(r); ; {
		l, isPre, err := lr.ReadLine()
		switch {
		case err == io.EOF:
			return c, nil
		case err != nil:
			return nil, err
		case isPre:
			return nil, fmt.Errorf("unexpected long line in config file")
		case len(l) == 0:
			continue
		case l[0] == '#':
			continue
		}
		ls := string(l)
		switch ls {
		case "headings":
			c.opt.headings = true
			continue
		case "noheadings":
			c.opt.headings = false
			continue
		case "positions":
			c.opt.positions = true
			continue
		case "nopositions":
			c.opt.positions = false
			continue
		case "summary":
			c.opt.summary = true
			continue
		case "nosummary":
			c.opt.summary = false
			continue
		case "auto":
			c.method = lightcurve.Auto
			continue
		case "exact":
			c.method = lightcurve.Exact
			continue
		case "montecarlo":
			c.method = lightcurve.MonteCarlo
			continue
		case "repeatable":
			c.repeatable = true
			continue
		case "random":
			c.repeatable = false
			continue
		}
		ss := rxSetting.FindStringSubmatch(ls)
		if ss == nil {
			return nil, fmt.Errorf("unrecognized line in config file: %s", ls)
		}
		if err := c.set(ss[1], ss[2]); err != nil {
			return nil, fmt.Errorf("%v\nConfig file line: %s", err, ls)
		}
	}
}

// set applies a keyword = value setting.
func (c *config) set(key, val string) error {
	switch key {
	case "samples":
		n, err := strconv.Atoi(val)
		if err != nil {
			return err
		}
		if n < 1 {
			return fmt.Errorf("samples must be positive")
		}
		c.samples = n
	case "seed":
		s, err := strconv.ParseUint(val, 10, 64)
		if err != nil {
			return err
		}
		c.seed = s
		c.repeatable = true
	case "orbits":
		o, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return err
		}
		if !(o > 0) {
			return fmt.Errorf("orbits must be positive")
		}
		c.orbits = o
	case "datapoints":
		n, err := strconv.Atoi(val)
		if err != nil {
			return err
		}
		if n < 2 {
			return fmt.Errorf("at least 2 datapoints required")
		}
		c.datapoints = n
	case "units":
		u, err := scale.ByName(val)
		if err != nil {
			return err
		}
		c.units = u
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return nil
}
