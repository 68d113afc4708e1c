// Package amortization computes fixed-rate annuity loan payments.
package amortization

import (
	"errors"
	"fmt"
	"math"

	commonerrors "dealer-assistant/internal/common/errors"
)

// ErrInvalidInput is wrapped by every rejection so callers can test with errors.Is.
var ErrInvalidInput = errors.New("INVALID_INPUT")

// Result is rounded to two decimals.
type Result struct {
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalPayment   float64 `json:"totalPayment"`
	TotalInterest  float64 `json:"totalInterest"`
}

// Calculate returns the payment schedule totals for principal borrowed at annualRatePercent
// over termMonths. Non-positive or non-finite inputs are rejected before any arithmetic.
func Calculate(principal, annualRatePercent float64, termMonths int) (*Result, error) {
	if !finite(principal) || !finite(annualRatePercent) {
		return nil, invalid("principal and interest rate must be finite numbers")
	}
	if principal <= 0 {
		return nil, invalid(fmt.Sprintf("principal must be positive, got %v", principal))
	}
	r := annualRatePercent / 100 / 12
	if r <= 0 {
		return nil, invalid(fmt.Sprintf("interest rate must be positive, got %v", annualRatePercent))
	}
	if termMonths <= 0 {
		return nil, invalid(fmt.Sprintf("term must be a positive number of months, got %d", termMonths))
	}

	n := float64(termMonths)
	growth := math.Pow(1+r, n)
	if growth-1 == 0 || !finite(growth) {
		return nil, invalid("interest rate and term are outside the computable range")
	}

	monthly := principal * r * growth / (growth - 1)
	total := monthly * n

	res := &Result{
		MonthlyPayment: round2(monthly),
		TotalPayment:   round2(total),
		TotalInterest:  round2(total - principal),
	}
	if !finite(res.MonthlyPayment) || !finite(res.TotalPayment) || !finite(res.TotalInterest) {
		return nil, invalid("principal is outside the computable range")
	}
	return res, nil
}

// Quote describes a loan request as an applicant states it: the vehicle price financed, minus
// whatever is paid up front.
type Quote struct {
	LoanAmount  float64
	DownPayment float64
	AnnualRate  float64
	TermMonths  int
}

// QuoteResult carries the computed principal alongside the payment totals.
type QuoteResult struct {
	Result
	Principal   float64 `json:"principal"`
	DownPayment float64 `json:"downPayment"`
}

// Principal is LoanAmount less DownPayment.
func (q Quote) Principal() float64 {
	return q.LoanAmount - q.DownPayment
}

func (q Quote) Calculate() (*QuoteResult, error) {
	if q.DownPayment < 0 {
		return nil, invalid(fmt.Sprintf("down payment must not be negative, got %v", q.DownPayment))
	}
	res, err := Calculate(q.Principal(), q.AnnualRate, q.TermMonths)
	if err != nil {
		return nil, err
	}
	return &QuoteResult{
		Result:      *res,
		Principal:   round2(q.Principal()),
		DownPayment: q.DownPayment,
	}, nil
}

func invalid(details string) error {
	return commonerrors.NewValidationError(details, ErrInvalidInput)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// round2 rounds half away from zero.
func round2(f float64) float64 {
	return math.Round(f*100) / 100
}
