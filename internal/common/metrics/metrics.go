// internal/common/metrics/metrics.go
package metrics

import (
	"time"

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

	AssistantMessages = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "assistant_messages_total",
			Help: "Chat messages answered, by classified intent",
		},
		[]string{"intent"},
	)

	AssistantInventoryLookupFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "assistant_inventory_lookup_failures_total",
			Help: "Inventory lookups that failed and degraded to the apology reply",
		},
	)

	AssistantTurnDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "assistant_turn_duration_seconds",
			Help:    "Time to produce one assistant reply",
			Buckets: []float64{.001, .005, .01, .05, .1, .25, .5, 1, 2.5},
		},
		[]string{"intent"},
	)

	AmortizationCalculations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "amortization_calculations_total",
			Help: "Monthly payment calculations, by result",
		},
		[]string{"result"},
	)
)

// JobCompleted records a successful job and its duration.
func JobCompleted(taskType string, started time.Time) {
	WorkerJobsCompleted.WithLabelValues(taskType).Inc()
	WorkerJobDuration.WithLabelValues(taskType).Observe(time.Since(started).Seconds())
}

// JobFailed records a failed job and its duration.
func JobFailed(taskType, errorCode string, started time.Time) {
	WorkerJobsFailed.WithLabelValues(taskType, errorCode).Inc()
	WorkerJobDuration.WithLabelValues(taskType).Observe(time.Since(started).Seconds())
}

// AssistantRecorder reports conversation turns to the assistant_* collectors.
type AssistantRecorder struct{}

func (AssistantRecorder) TurnCompleted(intent string, elapsed time.Duration) {
	AssistantMessages.WithLabelValues(intent).Inc()
	AssistantTurnDuration.WithLabelValues(intent).Observe(elapsed.Seconds())
}

func (AssistantRecorder) LookupFailed() {
	AssistantInventoryLookupFailures.Inc()
}
