package observability

import (
	"context"
	"testing"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInstrument_CallsWrappedHandler(t *testing.T) {
	obs, err := New("dealer-assistant-test")
	require.NoError(t, err)
	defer obs.Shutdown(context.Background())

	var seen []int64
	handler := obs.Instrument("calculate-payment", func(_ worker.JobClient, job entities.Job) {
		seen = append(seen, job.Key)
	})

	handler(nil, entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 42}})
	handler(nil, entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 43}})

	assert.Equal(t, []int64{42, 43}, seen)
}

func TestInstrument_ZeroValueIsSafe(t *testing.T) {
	var obs Observability
	called := false
	handler := obs.Instrument("handle-chat-message", func(worker.JobClient, entities.Job) { called = true })

	assert.NotPanics(t, func() { handler(nil, entities.Job{ActivatedJob: &pb.ActivatedJob{}}) })
	assert.True(t, called)
	assert.NoError(t, obs.Shutdown(context.Background()))
}
