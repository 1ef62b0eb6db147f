// Package metrics records run metrics for a single etlprov invocation and
// writes them in the node_exporter textfile format.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "etlprov"

// Recorder owns a private registry, so nothing is exported through a global.
type Recorder struct {
	registry *prometheus.Registry

	runSuccess     prometheus.Gauge
	lastRun        prometheus.Gauge
	exitCode       prometheus.Gauge
	phaseDuration  *prometheus.GaugeVec
	verifyDuration *prometheus.GaugeVec
}

// NewRecorder creates a Recorder with all metrics registered.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		runSuccess: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_success",
			Help:      "Whether the last run succeeded (1) or not (0)",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished",
		}),
		exitCode: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_exit_code",
			Help:      "Exit code of the last run",
		}),
		phaseDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "phase_duration_seconds",
			Help:      "Duration of each provisioning phase in the last run",
		}, []string{"phase"}),
		verifyDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "verify_duration_seconds",
			Help:      "Duration of the connectivity check per store in the last run",
		}, []string{"kind"}),
	}

	r.registry.MustRegister(r.runSuccess, r.lastRun, r.exitCode, r.phaseDuration, r.verifyDuration)
	return r
}

// Registry exposes the registry for tests and custom exporters.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// RecordPhase records how long a phase took.
func (r *Recorder) RecordPhase(phase string, d time.Duration) {
	r.phaseDuration.WithLabelValues(phase).Set(d.Seconds())
}

// RecordVerify records how long a connectivity check took.
func (r *Recorder) RecordVerify(kind string, d time.Duration) {
	r.verifyDuration.WithLabelValues(kind).Set(d.Seconds())
}

// RecordRun records the outcome of the run.
func (r *Recorder) RecordRun(exitCode int, finished time.Time) {
	if exitCode == 0 {
		r.runSuccess.Set(1)
	} else {
		r.runSuccess.Set(0)
	}
	r.exitCode.Set(float64(exitCode))
	r.lastRun.Set(float64(finished.Unix()))
}

// WriteTextfile writes all metrics to path atomically. An empty path is a no-op.
func (r *Recorder) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, r.registry)
}
