// Package metrics records run metrics in the Prometheus text format.
//
// A CI step is too short-lived to be scraped, so metrics are written once at
// the end of a run to a file that a node exporter textfile collector, or a
// later pipeline step, can pick up.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "iapssh"

// Recorder holds the metrics of one run.
type Recorder struct {
	registry *prometheus.Registry

	duration    prometheus.Gauge
	exitCode    prometheus.Gauge
	success     prometheus.Gauge
	sdkInstalls *prometheus.CounterVec
}

// NewRecorder creates a Recorder with its own registry.
func NewRecorder(instance, zone string) *Recorder {
	labels := prometheus.Labels{"instance": instance, "zone": zone}

	r := &Recorder{
		registry: prometheus.NewRegistry(),
		duration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "run_duration_seconds",
			Help:        "Wall-clock duration of the remote command.",
			ConstLabels: labels,
		}),
		exitCode: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "command_exit_code",
			Help:        "Exit code of the gcloud compute ssh invocation.",
			ConstLabels: labels,
		}),
		success: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace:   namespace,
			Name:        "run_success",
			Help:        "1 if the run succeeded, 0 otherwise.",
			ConstLabels: labels,
		}),
		sdkInstalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sdk_installs_total",
			Help:      "Cloud SDK installations performed by this run.",
		}, []string{"version"}),
	}

	r.registry.MustRegister(r.duration, r.exitCode, r.success, r.sdkInstalls)
	return r
}

// ObserveCommand records the outcome of the remote command.
func (r *Recorder) ObserveCommand(exitCode int, seconds float64) {
	r.exitCode.Set(float64(exitCode))
	r.duration.Set(seconds)
}

// ObserveSDKInstall counts an SDK installation.
func (r *Recorder) ObserveSDKInstall(version string) {
	r.sdkInstalls.WithLabelValues(version).Inc()
}

// SetSuccess records the final run status.
func (r *Recorder) SetSuccess(ok bool) {
	if ok {
		r.success.Set(1)
		return
	}
	r.success.Set(0)
}

// Registry exposes the underlying registry, mainly for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// WriteFile writes all metrics to path atomically.
func (r *Recorder) WriteFile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("failed to write metrics file: %w", err)
	}
	return nil
}
