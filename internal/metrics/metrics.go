// Package metrics records per-solve Prometheus metrics on a private
// registry. A CLI run has no scrape endpoint, so the registry is written
// out as a node-exporter textfile when requested.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/katalvlaran/tagcover/ilp"
)

// Recorder owns a registry and the tagcover collectors registered on it.
type Recorder struct {
	reg *prometheus.Registry

	Solves      *prometheus.CounterVec
	Duration    *prometheus.HistogramVec
	Nodes       prometheus.Counter
	Variables   prometheus.Gauge
	Constraints prometheus.Gauge
	Covered     *prometheus.GaugeVec
}

// New returns a Recorder on a fresh registry.
func New() *Recorder {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Recorder{
		reg: reg,
		Solves: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "tagcover_solves_total",
				Help: "Completed solves by mode and final status",
			},
			[]string{"mode", "status"},
		),
		Duration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "tagcover_solve_duration_seconds",
				Help:    "Engine wall time per solve",
				Buckets: prometheus.ExponentialBuckets(0.001, 4, 10), // 1ms .. ~4.4min
			},
			[]string{"mode"},
		),
		Nodes: f.NewCounter(prometheus.CounterOpts{
			Name: "tagcover_nodes_explored_total",
			Help: "Branch-and-bound nodes explored across all solves",
		}),
		Variables: f.NewGauge(prometheus.GaugeOpts{
			Name: "tagcover_model_variables",
			Help: "Variables of the most recently synthesized model",
		}),
		Constraints: f.NewGauge(prometheus.GaugeOpts{
			Name: "tagcover_model_constraints",
			Help: "Constraints of the most recently synthesized model",
		}),
		Covered: f.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "tagcover_items_covered",
				Help: "Items covered by the last optimal solve, by mode",
			},
			[]string{"mode"},
		),
	}
}

// Registry exposes the underlying registry (tests, custom exporters).
func (r *Recorder) Registry() *prometheus.Registry { return r.reg }

// ObserveModel records the size of a synthesized model.
func (r *Recorder) ObserveModel(s ilp.Stats) {
	r.Variables.Set(float64(s.Vars))
	r.Constraints.Set(float64(s.Constraints))
}

// ObserveSolve records the outcome of one engine call.
func (r *Recorder) ObserveSolve(mode string, status ilp.Status, nodes int64, elapsed time.Duration) {
	r.Solves.WithLabelValues(mode, status.String()).Inc()
	r.Duration.WithLabelValues(mode).Observe(elapsed.Seconds())
	r.Nodes.Add(float64(nodes))
}

// ObserveCoverage records the covered item count of an optimal solve.
func (r *Recorder) ObserveCoverage(mode string, covered int) {
	r.Covered.WithLabelValues(mode).Set(float64(covered))
}

// WriteTextfile writes the registry in text exposition format to path.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.reg)
}
