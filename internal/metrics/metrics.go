// Package metrics collects per-run profiling metrics and writes them in the
// Prometheus text format for node_exporter's textfile collector.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/asteroid-belt/subprofiler/internal/profiler"
)

// Outcome and bucket label values.
const (
	OutcomeOK     = "ok"
	OutcomeFailed = "failed"

	BucketHigh    = "high"
	BucketLow     = "low"
	BucketSkipped = "skipped"
)

// Recorder holds the metrics of a single run on a private registry.
type Recorder struct {
	groupsTotal  *prometheus.CounterVec
	labelsTotal  *prometheus.CounterVec
	rulesWritten prometheus.Counter
	runDuration  prometheus.Gauge

	registry *prometheus.Registry
}

// NewRecorder creates a recorder with every series registered.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()

	r := &Recorder{
		groupsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "subprofiler_groups_total",
				Help: "Domain groups profiled by outcome",
			},
			[]string{"outcome"},
		),
		labelsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "subprofiler_labels_total",
				Help: "Leading labels classified by entropy bucket",
			},
			[]string{"bucket"},
		),
		rulesWritten: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "subprofiler_rules_written_total",
			Help: "Rules persisted by the run",
		}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "subprofiler_run_duration_seconds",
			Help: "Wall time of the last profiling run",
		}),
		registry: registry,
	}

	registry.MustRegister(r.groupsTotal, r.labelsTotal, r.rulesWritten, r.runDuration)

	// Pre-create label combinations so a clean run still exports zeros.
	for _, o := range []string{OutcomeOK, OutcomeFailed} {
		r.groupsTotal.WithLabelValues(o)
	}
	for _, b := range []string{BucketHigh, BucketLow, BucketSkipped} {
		r.labelsTotal.WithLabelValues(b)
	}

	return r
}

// ObserveResult counts one group's outcome and its label buckets.
func (r *Recorder) ObserveResult(res profiler.Result) {
	outcome := OutcomeOK
	if !res.OK() {
		outcome = OutcomeFailed
	}
	r.groupsTotal.WithLabelValues(outcome).Inc()

	if p := res.Profile; p != nil {
		r.labelsTotal.WithLabelValues(BucketHigh).Add(float64(len(p.HighEntropy)))
		r.labelsTotal.WithLabelValues(BucketLow).Add(float64(len(p.LowEntropy)))
		r.labelsTotal.WithLabelValues(BucketSkipped).Add(float64(p.Skipped))
	}
}

// ObserveRulesWritten adds n persisted rules.
func (r *Recorder) ObserveRulesWritten(n int) {
	r.rulesWritten.Add(float64(n))
}

// ObserveDuration sets the run duration.
func (r *Recorder) ObserveDuration(d time.Duration) {
	r.runDuration.Set(d.Seconds())
}

// Registry exposes the underlying registry.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteTextfile writes all series to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
