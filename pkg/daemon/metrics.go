package daemon

import (
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/charlie0129/ftracker/pkg/training"
)

var (
	trainingsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ftracker",
		Name:      "trainings_total",
		Help:      "Number of trainings summarized, by training type.",
	}, []string{"type"})
	trainingFailuresTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ftracker",
		Name:      "training_failures_total",
		Help:      "Number of packages that could not be summarized, by reason.",
	}, []string{"reason"})
	lastSummaryGauge = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "ftracker",
		Name:      "last_summary_timestamp_seconds",
		Help:      "Unix timestamp of the most recent training summary.",
	})
)

func init() {
	prometheus.MustRegister(trainingsTotal, trainingFailuresTotal, lastSummaryGauge)
}

func metricsHandler() http.Handler {
	return promhttp.Handler()
}

// failureReason is the metric label for a processing error.
func failureReason(err error) string {
	switch {
	case errors.Is(err, training.ErrSensorFault):
		return "sensor_fault"
	case errors.Is(err, training.ErrUnknownTraining):
		return "unknown_type"
	default:
		return "invalid_params"
	}
}

func recordSummary(info training.InfoMessage, ts time.Time) {
	trainingsTotal.WithLabelValues(info.TrainingType).Inc()
	lastSummaryGauge.Set(float64(ts.Unix()))
}

func recordFailure(err error) {
	trainingFailuresTotal.WithLabelValues(failureReason(err)).Inc()
}
