package observability

import (
	"strconv"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Check results recorded by RecordHeaderCheck.
const (
	ResultValid       = "valid"
	ResultInvalid     = "invalid"
	ResultUnsupported = "unsupported"
	ResultIO          = "io"
)

var (
	registerOnce sync.Once

	headerChecks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "datumctl",
			Subsystem: "header",
			Name:      "checks_total",
			Help:      "Datum header checks by source and result.",
		},
		[]string{"source", "result"},
	)
	ruleFailures = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "datumctl",
			Subsystem: "header",
			Name:      "rule_failures_total",
			Help:      "Recognized datum headers rejected by validation rule.",
		},
		[]string{"rule"},
	)
	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "datumctl",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total HTTP requests.",
		},
		[]string{"node", "method", "path", "status"},
	)
	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "datumctl",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"node", "method", "path", "status"},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(headerChecks, ruleFailures, httpRequests, httpDuration)
	})
}

// RecordHeaderCheck counts one header check. rule is empty unless result is
// ResultInvalid.
func RecordHeaderCheck(source, result, rule string) {
	RegisterMetrics()
	headerChecks.WithLabelValues(source, result).Inc()
	if result == ResultInvalid && rule != "" {
		ruleFailures.WithLabelValues(rule).Inc()
	}
}

func RecordHTTPRequest(node, method, path string, status int, duration time.Duration) {
	RegisterMetrics()
	statusLabel := strconv.Itoa(status)
	httpRequests.WithLabelValues(node, method, path, statusLabel).Inc()
	httpDuration.WithLabelValues(node, method, path, statusLabel).Observe(duration.Seconds())
}

// WriteTextfile writes the default registry in the text exposition format,
// for node_exporter's textfile collector.
func WriteTextfile(path string) error {
	RegisterMetrics()
	return prometheus.WriteToTextfile(path, prometheus.DefaultGatherer)
}
