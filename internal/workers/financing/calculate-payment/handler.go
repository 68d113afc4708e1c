// internal/workers/financing/calculate-payment/handler.go
package calculatepayment

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	commonerrors "dealer-assistant/internal/common/errors"
	"dealer-assistant/internal/common/logger"
	"dealer-assistant/internal/common/metrics"
	"dealer-assistant/internal/financing/amortization"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "calculate-payment"
)

type Handler struct {
	config       *Config
	logger       logger.Logger
	errorHandler *commonerrors.ErrorHandler
}

func NewHandler(config *Config, log logger.Logger) (*Handler, error) {
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration for %s: %w", TaskType, err)
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		logger:       log,
		errorHandler: commonerrors.NewErrorHandler(log),
	}, nil
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	started := time.Now()
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	input, err := parseInput(job.Variables)
	if err != nil {
		h.failJob(ctx, client, job, err, started)
		return
	}

	output, err := h.Execute(ctx, input)
	if err != nil {
		h.failJob(ctx, client, job, err, started)
		return
	}

	h.completeJob(ctx, client, job, output)
	metrics.JobCompleted(TaskType, started)
}

// Execute computes the monthly payment for the financed part of the loan.
func (h *Handler) Execute(_ context.Context, input *Input) (*Output, error) {
	if input.LoanTerm < h.config.MinTermMonths || input.LoanTerm > h.config.MaxTermMonths {
		metrics.AmortizationCalculations.WithLabelValues(ResultInvalid).Inc()
		return nil, commonerrors.NewValidationError(
			fmt.Sprintf("loan term must be between %d and %d months, got %d",
				h.config.MinTermMonths, h.config.MaxTermMonths, input.LoanTerm),
			amortization.ErrInvalidInput)
	}

	res, err := amortization.Quote{
		LoanAmount:  input.LoanAmount,
		DownPayment: input.DownPayment,
		AnnualRate:  input.InterestRate,
		TermMonths:  input.LoanTerm,
	}.Calculate()
	if err != nil {
		metrics.AmortizationCalculations.WithLabelValues(ResultInvalid).Inc()
		return nil, err
	}
	metrics.AmortizationCalculations.WithLabelValues(ResultOK).Inc()

	h.logger.Info("payment calculated", map[string]interface{}{
		"principal":      res.Principal,
		"loanTerm":       input.LoanTerm,
		"monthlyPayment": res.MonthlyPayment,
	})

	return &Output{
		Principal:      res.Principal,
		MonthlyPayment: res.MonthlyPayment,
		TotalPayment:   res.TotalPayment,
		TotalInterest:  res.TotalInterest,
		DownPayment:    res.DownPayment,
	}, nil
}

func parseInput(variables string) (*Input, error) {
	result, err := inputSchema.ValidateJSON(variables)
	if err != nil {
		return nil, commonerrors.NewValidationError("job variables are not valid JSON", err)
	}
	if !result.Valid {
		return nil, commonerrors.NewValidationError(result.Summary(), nil)
	}

	var input Input
	if err := json.Unmarshal([]byte(variables), &input); err != nil {
		return nil, commonerrors.NewValidationError("parse input", err)
	}
	return &input, nil
}

func (h *Handler) completeJob(ctx context.Context, client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(ctx); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
	}
}

func (h *Handler) failJob(ctx context.Context, client worker.JobClient, job entities.Job, err error, started time.Time) {
	metrics.JobFailed(TaskType, string(commonerrors.Normalize(err).Code), started)
	h.errorHandler.HandleJobError(ctx, client, job, err)
}
