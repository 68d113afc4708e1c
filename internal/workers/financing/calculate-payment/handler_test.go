// internal/workers/financing/calculate-payment/handler_test.go
package calculatepayment

import (
	"context"
	"errors"
	"testing"
	"time"

	commonerrors "dealer-assistant/internal/common/errors"
	"dealer-assistant/internal/common/logger"
	"dealer-assistant/internal/common/metrics"
	"dealer-assistant/internal/financing/amortization"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		Enabled:       true,
		MaxJobsActive: 5,
		Timeout:       5 * time.Second,
		MinTermMonths: 12,
		MaxTermMonths: 84,
	}
}

func newTestHandler(t *testing.T) *Handler {
	h, err := NewHandler(createTestConfig(), logger.NewTestLogger(t))
	require.NoError(t, err)
	return h
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_Success(t *testing.T) {
	tests := []struct {
		name      string
		input     *Input
		principal float64
		monthly   float64
		total     float64
		interest  float64
	}{
		{
			name:      "one million over a year at ten percent",
			input:     &Input{LoanAmount: 1_000_000, InterestRate: 10, LoanTerm: 12},
			principal: 1_000_000,
			monthly:   87915.89,
			total:     1054990.65,
			interest:  54990.65,
		},
		{
			name:      "down payment reduces principal",
			input:     &Input{LoanAmount: 2_500_000, DownPayment: 500_000, InterestRate: 12, LoanTerm: 48},
			principal: 2_000_000,
			monthly:   52667.67,
			total:     2528048.20,
			interest:  528048.20,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t)
			out, err := h.Execute(context.Background(), tt.input)
			require.NoError(t, err)

			assert.Equal(t, tt.principal, out.Principal)
			assert.InDelta(t, tt.monthly, out.MonthlyPayment, 0.01)
			assert.InDelta(t, tt.total, out.TotalPayment, 0.5)
			assert.InDelta(t, tt.interest, out.TotalInterest, 0.5)
			assert.Equal(t, tt.input.DownPayment, out.DownPayment)
		})
	}
}

func TestHandler_Execute_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input *Input
	}{
		{name: "term below bound", input: &Input{LoanAmount: 1_000_000, InterestRate: 10, LoanTerm: 6}},
		{name: "term above bound", input: &Input{LoanAmount: 1_000_000, InterestRate: 10, LoanTerm: 120}},
		{name: "zero rate", input: &Input{LoanAmount: 1_000_000, InterestRate: 0, LoanTerm: 12}},
		{name: "down payment covers loan", input: &Input{LoanAmount: 800_000, DownPayment: 800_000, InterestRate: 10, LoanTerm: 12}},
		{name: "negative down payment", input: &Input{LoanAmount: 800_000, DownPayment: -1, InterestRate: 10, LoanTerm: 12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(t)
			before := testutil.ToFloat64(metrics.AmortizationCalculations.WithLabelValues(ResultInvalid))

			_, err := h.Execute(context.Background(), tt.input)

			require.Error(t, err)
			assert.True(t, errors.Is(err, amortization.ErrInvalidInput))
			assert.True(t, commonerrors.HasCode(err, commonerrors.ErrCodeValidation))

			bpmnErr := commonerrors.ConvertToBPMNError(commonerrors.Normalize(err))
			assert.Equal(t, "VALIDATION_ERROR", bpmnErr.Code)
			assert.Equal(t, 0, bpmnErr.Retries)

			after := testutil.ToFloat64(metrics.AmortizationCalculations.WithLabelValues(ResultInvalid))
			assert.Equal(t, before+1, after)
		})
	}
}

func TestNewHandler_RejectsBadConfig(t *testing.T) {
	cfg := createTestConfig()
	cfg.MinTermMonths = 100

	_, err := NewHandler(cfg, logger.NewNoOpLogger())
	assert.Error(t, err)
}

// ==========================
// Input Parsing Tests
// ==========================

func TestParseInput(t *testing.T) {
	tests := []struct {
		name      string
		variables string
		wantErr   bool
	}{
		{name: "complete", variables: `{"loanAmount": 1500000, "downPayment": 300000, "interestRate": 13.5, "loanTerm": 36}`},
		{name: "down payment optional", variables: `{"loanAmount": 1500000, "interestRate": 13.5, "loanTerm": 36}`},
		{name: "missing rate", variables: `{"loanAmount": 1500000, "loanTerm": 36}`, wantErr: true},
		{name: "fractional term", variables: `{"loanAmount": 1500000, "interestRate": 13.5, "loanTerm": 36.5}`, wantErr: true},
		{name: "string amount", variables: `{"loanAmount": "1.5M", "interestRate": 13.5, "loanTerm": 36}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, err := parseInput(tt.variables)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, commonerrors.HasCode(err, commonerrors.ErrCodeValidation))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 1_500_000.0, in.LoanAmount)
			assert.Equal(t, 36, in.LoanTerm)
		})
	}
}
