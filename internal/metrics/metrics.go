// Public domain.

// Package metrics holds Prometheus collectors for light curve computation.
//
// Collectors register with the default registry at init.  Computation
// packages record through the functions here; the command gathers and
// prints them on request.
package metrics

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

var (
	curvesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transit_lightcurves_total",
			Help: "Total number of light curves computed.",
		},
		[]string{"method"},
	)

	solverFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "transit_solver_failures_total",
			Help: "Bisection solves that failed to converge or bracket.",
		},
		[]string{"solver"},
	)

	delegatedSamples = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "transit_delegated_samples_total",
			Help: "Samples the exact compositor passed to the Monte Carlo estimator.",
		},
	)

	pointsDrawn = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "transit_montecarlo_points_drawn_total",
			Help: "Points drawn for Monte Carlo point clouds.",
		},
	)

	solveDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "transit_solve_duration_seconds",
			Help:    "Light curve computation time in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)
)

func init() {
	prometheus.MustRegister(curvesTotal)
	prometheus.MustRegister(solverFailures)
	prometheus.MustRegister(delegatedSamples)
	prometheus.MustRegister(pointsDrawn)
	prometheus.MustRegister(solveDuration)
}

// Solver labels for IncSolverFailure.
const (
	Kepler  = "kepler"
	Overlap = "overlap"
)

// RecordCurve counts a completed light curve and its computation time.
func RecordCurve(method string, d time.Duration) {
	curvesTotal.WithLabelValues(method).Inc()
	solveDuration.WithLabelValues(method).Observe(d.Seconds())
}

// IncSolverFailure counts a failed bisection solve.
func IncSolverFailure(solver string) {
	solverFailures.WithLabelValues(solver).Inc()
}

// AddDelegated counts samples resolved by the Monte Carlo fallback.
func AddDelegated(n int) {
	delegatedSamples.Add(float64(n))
}

// AddPointsDrawn counts points drawn for a Monte Carlo point cloud.
func AddPointsDrawn(n int) {
	pointsDrawn.Add(float64(n))
}

// Write gathers the transit collectors from the default registry and
// writes them to w in the Prometheus text format.
func Write(w io.Writer) error {
	mfs, err := prometheus.DefaultGatherer.Gather()
	if err != nil {
		return err
	}
	for _, mf := range mfs {
		if !strings.HasPrefix(mf.GetName(), "transit_") {
			continue
		}
		if _, err := expfmt.MetricFamilyToText(w, mf); err != nil {
			return fmt.Errorf("metric %s: %w", mf.GetName(), err)
		}
	}
	return nil
}
