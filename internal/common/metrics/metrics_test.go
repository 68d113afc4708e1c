package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestAssistantRecorder(t *testing.T) {
	rec := AssistantRecorder{}

	before := testutil.ToFloat64(AssistantMessages.WithLabelValues("Greeting"))
	rec.TurnCompleted("Greeting", 3*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(AssistantMessages.WithLabelValues("Greeting")))

	failures := testutil.ToFloat64(AssistantInventoryLookupFailures)
	rec.LookupFailed()
	assert.Equal(t, failures+1, testutil.ToFloat64(AssistantInventoryLookupFailures))
}

func TestJobCounters(t *testing.T) {
	completed := testutil.ToFloat64(WorkerJobsCompleted.WithLabelValues("calculate-payment"))
	failed := testutil.ToFloat64(WorkerJobsFailed.WithLabelValues("calculate-payment", "VALIDATION_ERROR"))

	JobCompleted("calculate-payment", time.Now())
	JobFailed("calculate-payment", "VALIDATION_ERROR", time.Now())

	assert.Equal(t, completed+1, testutil.ToFloat64(WorkerJobsCompleted.WithLabelValues("calculate-payment")))
	assert.Equal(t, failed+1, testutil.ToFloat64(WorkerJobsFailed.WithLabelValues("calculate-payment", "VALIDATION_ERROR")))
}
