// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ScansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_scans_total",
			Help: "Total number of eligibility scans, by result",
		},
		[]string{"result"},
	)

	OrdersDispatched = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "order_jobs_dispatched_total",
			Help: "Total number of submission jobs dispatched by the scanner",
		},
	)

	SubmissionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_submissions_total",
			Help: "Total number of order submissions, by outcome",
		},
		[]string{"outcome"},
	)

	SubmissionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "order_submission_duration_seconds",
			Help: "Duration of a single order submission in seconds",
		},
	)

	JobsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "order_jobs_active",
			Help: "Number of submission jobs currently in flight",
		},
	)
)
