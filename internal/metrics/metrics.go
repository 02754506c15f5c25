// Package metrics exposes Prometheus counters for bot commands and the
// HTTP endpoints.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"gym-buddy-bot/internal/apperrors"
)

var (
	// Command metrics
	commandsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymbuddy_commands_total",
			Help: "Total number of handled commands by screen command",
		},
		[]string{"command"},
	)

	commandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "gymbuddy_command_duration_seconds",
			Help:    "Command handling duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"command"},
	)

	// Error metrics
	errorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymbuddy_errors_total",
			Help: "Total number of failed commands by error kind",
		},
		[]string{"kind"},
	)

	activeDevices = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "gymbuddy_devices_active",
			Help: "Number of chats with screen state in memory",
		},
	)

	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gymbuddy_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)
)

// ObserveCommand records one handled command and, when err is non-nil, its
// error kind.
func ObserveCommand(command string, took time.Duration, err error) {
	commandsTotal.WithLabelValues(command).Inc()
	commandDuration.WithLabelValues(command).Observe(took.Seconds())
	if err != nil {
		errorsTotal.WithLabelValues(string(apperrors.KindOf(err))).Inc()
	}
}

func SetActiveDevices(n int) {
	activeDevices.Set(float64(n))
}

func ObserveHTTP(method, path, status string) {
	httpRequestsTotal.WithLabelValues(method, path, status).Inc()
}
