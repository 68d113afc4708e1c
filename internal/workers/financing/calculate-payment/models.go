// internal/workers/financing/calculate-payment/models.go
package calculatepayment

import "dealer-assistant/internal/common/validation"

type Input struct {
	LoanAmount   float64 `json:"loanAmount"`
	DownPayment  float64 `json:"downPayment"`
	InterestRate float64 `json:"interestRate"` // annual percentage
	LoanTerm     int     `json:"loanTerm"`     // months
}

type Output struct {
	Principal      float64 `json:"principal"`
	MonthlyPayment float64 `json:"monthlyPayment"`
	TotalPayment   float64 `json:"totalPayment"`
	TotalInterest  float64 `json:"totalInterest"`
	DownPayment    float64 `json:"downPayment"`
}

// Calculation results for amortization_calculations_total.
const (
	ResultOK      = "ok"
	ResultInvalid = "invalid"
)

var inputSchema = validation.MustCompile(`{
	"type": "object",
	"required": ["loanAmount", "interestRate", "loanTerm"],
	"properties": {
		"loanAmount":   {"type": "number"},
		"downPayment":  {"type": "number"},
		"interestRate": {"type": "number"},
		"loanTerm":     {"type": "integer"}
	}
}`)
