// Public domain.

// Package tprog implements the transit command.
package tprog

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"

	"github.com/soniakeys/exit"
	"github.com/soniakeys/transit/internal/lightcurve"
	"github.com/soniakeys/transit/internal/metrics"
	"github.com/soniakeys/transit/scale"
)

const versionString = "transit version 0.1 Go source."
const copyrightString = "Public domain."

func Main() {
	defer exit.Handler()

	// these functions terminate on error
	cl := parseCommandLine()
	cfg := readConfig(cl)

	failed := run(cl.files, cfg, os.Stdout, log.Default())
	if cl.m {
		if err := metrics.Write(os.Stdout); err != nil {
			exit.Log(err)
		}
	}
	if failed {
		os.Exit(1)
	}
}

// run solves the system files concurrently and writes results to w in
// file order.  Systems that fail are reported on lg in the same order.
// run returns true if any system failed.
func run(files []string, cfg *config, w io.Writer, lg *log.Logger) (failed bool) {
	// sysCh supplies parsed system files, in order.  a file that fails
	// to parse is still sent, carrying its error, so the error is
	// reported in order.
	sysCh := make(chan job)
	go loader(files, cfg.units, sysCh)

	// prCh keeps results in submission order.  it is buffered so a fast
	// worker can drop off a result without waiting for workers ahead of it.
	maxWorkers := runtime.GOMAXPROCS(0)
	prCh := make(chan chan result, maxWorkers*2)
	sysChSeq := make(chan *jobSeq)

	// dispatcher.  attach a return channel to each system as a ticket
	// for picking up the result, queue the system for solving and drop
	// the ticket in the queue for printing.
	go func() {
		for j := range sysCh {
			rch := make(chan result, 1)
			sysChSeq <- &jobSeq{j, rch}
			prCh <- rch
		}
		close(sysChSeq)
		close(prCh)
	}()

	// start workers as the dispatcher calls for them, up to maxWorkers.
	go func() {
		for n := 0; n < maxWorkers; n++ {
			j, ok := <-sysChSeq
			if !ok {
				return
			}
			go solve(cfg, j, sysChSeq)
		}
	}()

	if cfg.opt.headings {
		fmt.Fprintln(w, "#", versionString)
	}
	// print results as they become available, in order.
	first := true
	for rch := range prCh {
		r := <-rch
		if r.err != nil {
			lg.Println(r.err)
			failed = true
			continue
		}
		if !first {
			fmt.Fprintln(w)
		}
		first = false
		fmt.Fprintln(w, r.out)
	}
	return failed
}

// job is one system file, parsed or failed.
type job struct {
	sys *system
	err error
}

type jobSeq struct {
	j   job
	rch chan result
}

type result struct {
	out string
	err error
}

// loader reads and parses system files in order.
func loader(files []string, u scale.System, ch chan job) {
	for _, fn := range files {
		sys, err := loadSystem(fn, u)
		ch <- job{sys, err}
	}
	close(ch)
}

func loadSystem(fn string, u scale.System) (*system, error) {
	if fn == "-" {
		return readSystem("input stream", os.Stdin, u)
	}
	f, err := os.Open(fn)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return readSystem(fn, f, u)
}

// worker process, solves systems.
// the first system to solve is passed as j.  additional systems are
// received on ch.
func solve(cfg *config, j *jobSeq, ch chan *jobSeq) {
	// runs until the dispatcher closes ch.
	for ok := true; ok; j, ok = <-ch {
		j.rch <- solveSystem(cfg, j.j) // buffered.  drop off and continue
	}
}

func solveSystem(cfg *config, j job) result {
	if j.err != nil {
		return result{err: j.err}
	}
	sys := j.sys
	s, err := lightcurve.New(sys.star, sys.bodies, cfg.solverOptions())
	if err != nil {
		return result{err: fmt.Errorf("%s: %w", sys.name, err)}
	}
	maxP := s.MaxPeriod()
	if maxP == 0 {
		// a lone star.  its light curve is flat over any span.
		maxP = 1
	}
	c, err := s.Solve(lightcurve.TimeGrid(cfg.orbits, maxP, cfg.datapoints))
	if err != nil {
		return result{err: fmt.Errorf("%s: %w", sys.name, err)}
	}
	return result{out: format(sys, c, cfg.opt, cfg.units)}
}

type commandLine struct {
	dc    string   // config file
	m     bool     // -m option
	files []string // system files
}

func parseCommandLine() *commandLine {
	var cl commandLine
	dh := flag.Bool("h", false, "")
	dv := flag.Bool("v", false, "")
	flag.BoolVar(&cl.m, "m", false, "")
	flag.StringVar(&cl.dc, "c", "", "")
	flag.Usage = func() {
		os.Stderr.WriteString(`
Usage: transit [options] <sysfile> ...    light curves of systems in files
       transit [options] -                light curve of system from stdin
       transit -h                         display help and quick reference
       transit -v                         display version and copyright

Options:
       -c <config-file>
       -m                  print computation metrics after results
`)
	}
	flag.Parse()
	switch {
	case *dh:
		printHelp()
		os.Exit(0)
	case *dv:
		fmt.Println(versionString)
		fmt.Println(copyrightString)
		os.Exit(0)
	case flag.NArg() == 0:
		flag.Usage()
		os.Exit(1)
	}
	cl.files = flag.Args()
	return &cl
}

func printHelp() {
	fmt.Println(`
Transit computes light curves of stars with orbiting bodies: the fraction
of the star's light reaching a distant observer as bodies pass in front
of it.  Input is one or more system files.  Output is a table of time and
visible flux fraction, optionally with body positions.

System file lines:
   star <mass> <radius>
   body <name> <mass> <radius> <period> [inc [e [argperi [node [phase]]]]]

Config file keywords:
   headings
   noheadings
   positions
   nopositions
   summary
   nosummary
   auto
   exact
   montecarlo
   repeatable
   random
   samples = <n>
   seed = <n>
   orbits = <n>
   datapoints = <n>
   units = solar | jupiter | earth

For full documentation:
   go doc github.com/soniakeys/transit`)
}
