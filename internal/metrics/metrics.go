// Package metrics collects per-run export counters and writes them in the
// Prometheus text exposition format for the node-exporter textfile collector.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels a per-document result.
type Outcome string

const (
	OutcomeExported Outcome = "exported"
	OutcomeSkipped  Outcome = "skipped"
	OutcomeFailed   Outcome = "failed"
)

// Recorder owns a private registry so that repeated runs in one process do
// not collide on the default registerer.
type Recorder struct {
	registry  *prometheus.Registry
	documents *prometheus.CounterVec
	duration  *prometheus.GaugeVec
	lastRun   *prometheus.GaugeVec
}

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		documents: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "genesetdocs",
			Name:      "documents_total",
			Help:      "Gene set documents processed, by outcome.",
		}, []string{"species", "source", "outcome"}),
		duration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "genesetdocs",
			Name:      "run_duration_seconds",
			Help:      "Wall time of the last run per species.",
		}, []string{"species", "source"}),
		lastRun: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: "genesetdocs",
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run per species finished.",
		}, []string{"species", "source"}),
	}
	r.registry.MustRegister(r.documents, r.duration, r.lastRun)
	return r
}

// Registry exposes the underlying registry, mainly for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

func (r *Recorder) Inc(species, source string, outcome Outcome) {
	r.documents.WithLabelValues(species, source, string(outcome)).Inc()
}

// Finish records the run duration and completion time for one species.
func (r *Recorder) Finish(species, source string, elapsed time.Duration, at time.Time) {
	r.duration.WithLabelValues(species, source).Set(elapsed.Seconds())
	r.lastRun.WithLabelValues(species, source).Set(float64(at.Unix()))
}

// WriteTextfile writes every collected metric to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
