// internal/models/financing.go
package models

import "time"

// FinancingStatus is the review state of a financing application.
type FinancingStatus string

const (
	FinancingPending     FinancingStatus = "pending"
	FinancingUnderReview FinancingStatus = "under-review"
	FinancingApproved    FinancingStatus = "approved"
	FinancingRejected    FinancingStatus = "rejected"
)

var financingTransitions = map[FinancingStatus][]FinancingStatus{
	FinancingPending:     {FinancingUnderReview, FinancingApproved, FinancingRejected},
	FinancingUnderReview: {FinancingApproved, FinancingRejected},
}

// Valid reports whether s is one of the known statuses.
func (s FinancingStatus) Valid() bool {
	switch s {
	case FinancingPending, FinancingUnderReview, FinancingApproved, FinancingRejected:
		return true
	}
	return false
}

// Terminal reports whether no further transition is possible.
func (s FinancingStatus) Terminal() bool {
	return s == FinancingApproved || s == FinancingRejected
}

// CanTransitionTo reports whether the lifecycle allows moving from s to next.
func (s FinancingStatus) CanTransitionTo(next FinancingStatus) bool {
	for _, allowed := range financingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// FinancingApplication mirrors a financing_applications row joined with its applicant.
type FinancingApplication struct {
	ID             string          `json:"id" db:"id"`
	VehicleID      string          `json:"vehicleId" db:"vehicle_id"`
	LoanAmount     float64         `json:"loanAmount" db:"loan_amount"`
	DownPayment    float64         `json:"downPayment" db:"down_payment"`
	LoanTerm       int             `json:"loanTerm" db:"loan_term"`
	Status         FinancingStatus `json:"status" db:"status"`
	ApprovedAmount *float64        `json:"approvedAmount,omitempty" db:"approved_amount"`
	InterestRate   *float64        `json:"interestRate,omitempty" db:"interest_rate"`
	MonthlyPayment *float64        `json:"monthlyPayment,omitempty" db:"monthly_payment"`
	Remarks        string          `json:"remarks,omitempty" db:"remarks"`
	ApplicantName  string          `json:"applicantName" db:"applicant_name"`
	ApplicantEmail string          `json:"applicantEmail" db:"applicant_email"`
	ApplicantPhone string          `json:"applicantPhone,omitempty" db:"applicant_phone"`
	UpdatedAt      time.Time       `json:"updatedAt" db:"updated_at"`
}
