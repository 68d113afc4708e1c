package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFinancingStatus_Lifecycle(t *testing.T) {
	tests := []struct {
		from, to FinancingStatus
		allowed  bool
	}{
		{FinancingPending, FinancingUnderReview, true},
		{FinancingPending, FinancingApproved, true},
		{FinancingPending, FinancingRejected, true},
		{FinancingUnderReview, FinancingApproved, true},
		{FinancingUnderReview, FinancingRejected, true},
		{FinancingUnderReview, FinancingPending, false},
		{FinancingApproved, FinancingRejected, false},
		{FinancingRejected, FinancingApproved, false},
		{FinancingPending, FinancingPending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestFinancingStatus_ValidAndTerminal(t *testing.T) {
	assert.True(t, FinancingUnderReview.Valid())
	assert.False(t, FinancingStatus("cancelled").Valid())
	assert.True(t, FinancingApproved.Terminal())
	assert.True(t, FinancingRejected.Terminal())
	assert.False(t, FinancingPending.Terminal())
}
