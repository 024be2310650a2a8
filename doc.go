/*
Command transit computes transit light curves: the fraction of a star's
light reaching a distant observer as orbiting bodies pass in front of it.

Version 0.1

# Program overview

Input is one or more system files, each describing a star and the bodies
orbiting it.  Output for each system is a summary of each body's orbit and
transits, followed by a table of time in days and visible flux fraction.
Positions of each body may be added to the table.

Sample run:

A file hj.sys describing a hot Jupiter seen edge on,

	star 1 1
	body b 0.001 0.1 10 90

gives, with "transit hj.sys", output beginning

	# transit version 0.1 Go source.
	# hj.sys
	# star  mass 1 M☉  radius 0.004650 AU
	# body b  mass 0.001 M☉  radius 0.1 R☉  period 10 d
	#   a 0.090868 AU  e 0  periapsis 0.090868 AU  apoapsis 0.090868 AU
	...
	# method exact  depth 0.010000  duration 18 samples
	     Time(d)       Flux
	     0.00000  1.0000000
	     0.02002  1.0000000

The body covers one percent of the star's disk at mid transit, so the
depth is 0.01.  Duration is the number of samples with any part of the
star covered.

# Command line usage

Invoking the program without command line arguments (or with invalid
arguments) shows this usage prompt.

	Usage: transit [options] <sysfile> ...    light curves of systems in files
	       transit [options] -                light curve of system from stdin
	       transit -h                         display help and quick reference
	       transit -v                         display version and copyright

	Options:
	       -c <config-file>
	       -m                  print computation metrics after results

Systems named on the command line are computed concurrently and printed in
command line order.  A system that fails to parse or violates a physical
constraint is reported on stderr and skipped; the exit status is then 1.

With -m, counters of light curves computed, solver failures, samples
resolved by Monte Carlo and point cloud draws are printed after the
results in the Prometheus text format.

# File formats

System files are text.  Empty lines and lines beginning with # are ignored.
There must be exactly one star line,

	star <mass> <radius>

with mass and radius in solar units, and any number of body lines,

	body <name> <mass> <radius> <period> [inc [e [argperi [node [phase]]]]]

with mass and radius in the units selected by the configuration file,
period in days and angles in degrees.  Optional fields default to
inclination 0, eccentricity 0, argument of periapsis 0, longitude of the
ascending node 90 and phase 0.  Phase is a fraction of one orbit.

A body must be lighter and smaller than its star, and its orbit must keep
it clear of the star at periapsis.  Inclination must be within ±90,
eccentricity within 0 to 1, argument of periapsis within 0 to 180 and
node within 0 to 360.

The configuration file, optional and named with -c, is a text file with
a simple format.  Empty lines and lines beginning with # are ignored.
Other lines contain a keyword or a keyword = value setting.

Allowable keywords:

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

Allowable settings:

	samples = <n>
	seed = <n>
	orbits = <n>
	datapoints = <n>
	units = solar | jupiter | earth

Headings and summaries are on by default, positions off.  Positions add
columns x, y, z in AU for each body, x toward the observer.

The time grid has datapoints samples spanning orbits periods of the longest
period body.  Defaults are 1000 datapoints over 2 orbits.

Auto, the default method, computes one body exactly and more than one by
Monte Carlo.  Exact forces the exact method, which still falls back to
Monte Carlo at samples where three shadows meet on the star or two meet on
its limb.  Montecarlo forces Monte Carlo.  Samples sets the point cloud
size, default 100000.

Random, the default, seeds point clouds from the clock.  Repeatable seeds
them the same for every system, with 3 unless a seed is set.  Setting a
seed implies repeatable.

# Algorithm outline

Each body's orbit is propagated by solving Kepler's equation by bisection
for each sample time, then rotated into the observer's frame by the
argument of periapsis, inclination and node.

Each body is then reduced to a disk on the sky.  A body covers the star
fully, partially or not at all at each sample, and only when it is in front
of the star.  The area of a partial cover is the lens common to two
circles, the sum of two circular segments whose half-angles are found by
bisection.

The exact method adds the areas covered by each body, largest first, and
subtracts the area counted twice wherever two shadows on the star overlap.
This is exact unless three shadows meet or two meet across the limb of
the star, where the common area is bounded by three arcs.  Those samples
are counted by the Monte Carlo method instead.

The Monte Carlo method draws a cloud of points uniformly over the star's
disk and counts points covered by any shadow.  The cloud is reused across
samples while the star radius and sample count are unchanged.
Error is proportional to the inverse square root of the sample count.
*/
package main
