package provisioning

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

const (
	stepSucceeded = "success"
	stepFailed    = "error"

	webhookCreated  = "created"
	webhookExisting = "existing"
	webhookDropped  = "dropped"
)

var (
	stepsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "launcher",
			Subsystem: "provisioning",
			Name:      "steps_total",
			Help:      "Total number of provisioning steps by result",
		},
		[]string{"step", "result"},
	)

	stepDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "launcher",
			Subsystem: "provisioning",
			Name:      "step_duration_seconds",
			Help:      "Duration of provisioning steps in seconds",
			Buckets:   prometheus.ExponentialBuckets(0.1, 2, 10), // 100ms to ~51s
		},
		[]string{"step"},
	)

	webhooksTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "launcher",
			Subsystem: "github",
			Name:      "webhooks_total",
			Help:      "Total number of webhook registrations by result",
		},
		[]string{"result"},
	)
)

func init() {
	metrics.Registry.MustRegister(
		stepsTotal,
		stepDuration,
		webhooksTotal,
	)
}

func recordStep(step StatusEventType, result string, duration time.Duration) {
	stepsTotal.WithLabelValues(string(step), result).Inc()
	stepDuration.WithLabelValues(string(step)).Observe(duration.Seconds())
}

func recordWebhook(result string) {
	webhooksTotal.WithLabelValues(result).Inc()
}

// WriteMetrics writes the registered metrics to path in the text format read
// by the node exporter textfile collector.
func WriteMetrics(path string) error {
	return prometheus.WriteToTextfile(path, metrics.Registry)
}
