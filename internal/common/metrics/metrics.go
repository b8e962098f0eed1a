// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	WorkerJobsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_completed_total",
			Help: "Total number of jobs completed by worker",
		},
		[]string{"task_type"},
	)

	WorkerJobsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "worker_jobs_failed_total",
			Help: "Total number of jobs failed by worker",
		},
		[]string{"task_type", "error_code"},
	)

	WorkerJobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "worker_job_duration_seconds",
			Help: "Duration of job processing in seconds",
		},
		[]string{"task_type"},
	)

	VendorsDiscovered = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "discovery_vendors_matched",
			Help:    "Number of vendors surviving discovery filters per invocation",
			Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100, 250},
		},
		[]string{"event_type"},
	)

	InquiriesDispatched = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inquiries_dispatched_total",
			Help: "Total vendor inquiries dispatched, by outcome",
		},
		[]string{"outcome"},
	)
)
