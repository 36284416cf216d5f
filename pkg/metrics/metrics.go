package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/khoahotran/profile-directory/pkg/apperror"
)

var (
	// outcome is apperror.Kind of the returned error, "success" on nil
	operations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_operations_total",
			Help: "Total number of profile operations by outcome",
		},
		[]string{"operation", "outcome"},
	)

	operationDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "profile_operation_duration_seconds",
			Help:    "Time spent processing profile operations",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	eventsConsumed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_events_consumed_total",
			Help: "Total number of profile events handled by the worker",
		},
		[]string{"status"},
	)
)

// ObserveOperation is meant to be deferred with the named error result.
func ObserveOperation(operation string, start time.Time, err error) {
	operations.WithLabelValues(operation, apperror.Kind(err)).Inc()
	operationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

func EventConsumed(err error) {
	status := "success"
	if err != nil {
		status = "failure"
	}
	eventsConsumed.WithLabelValues(status).Inc()
}

func Handler() http.Handler {
	return promhttp.Handler()
}
