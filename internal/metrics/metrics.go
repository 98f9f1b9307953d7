// Package metrics records workout-form activity as Prometheus metrics.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Recorder implements workout.Recorder with Prometheus collectors.
type Recorder struct {
	lookupsTotal       *prometheus.CounterVec
	lookupDuration     *prometheus.HistogramVec
	submissionsTotal   *prometheus.CounterVec
	submissionDuration *prometheus.HistogramVec
}

// NewRecorder registers the collectors with reg.
func NewRecorder(reg prometheus.Registerer) *Recorder {
	f := promauto.With(reg)
	return &Recorder{
		lookupsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "treino_exercise_lookups_total",
				Help: "Exercise lookups by outcome (ok, status, transport, stale)",
			},
			[]string{"outcome"},
		),
		lookupDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "treino_exercise_lookup_duration_seconds",
				Help:    "Duration of exercise lookups against the workouts API",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"outcome"},
		),
		submissionsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "treino_workout_submissions_total",
				Help: "Create-workout attempts by status (success, invalid, rejected, error)",
			},
			[]string{"status"},
		),
		submissionDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "treino_workout_submission_duration_seconds",
				Help:    "Duration of create-workout attempts including validation",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"status"},
		),
	}
}

// ObserveLookup records one finished lookup.
func (r *Recorder) ObserveLookup(outcome string, d time.Duration) {
	r.lookupsTotal.WithLabelValues(outcome).Inc()
	r.lookupDuration.WithLabelValues(outcome).Observe(d.Seconds())
}

// ObserveSubmission records one submit attempt.
func (r *Recorder) ObserveSubmission(status string, d time.Duration) {
	r.submissionsTotal.WithLabelValues(status).Inc()
	r.submissionDuration.WithLabelValues(status).Observe(d.Seconds())
}
