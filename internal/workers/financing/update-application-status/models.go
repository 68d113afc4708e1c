// internal/workers/financing/update-application-status/models.go
package updateapplicationstatus

import (
	"dealer-assistant/internal/common/validation"
	"dealer-assistant/internal/models"
)

type Input struct {
	ApplicationID  string                 `json:"applicationId"`
	Status         models.FinancingStatus `json:"status"`
	ApprovedAmount *float64               `json:"approvedAmount,omitempty"`
	InterestRate   *float64               `json:"interestRate,omitempty"`
	Remarks        string                 `json:"remarks,omitempty"`
}

type Output struct {
	ApplicationID  string                `json:"applicationId"`
	PreviousStatus string                `json:"previousStatus"`
	Status         string                `json:"status"`
	MonthlyPayment *float64              `json:"monthlyPayment,omitempty"`
	Notifications  []models.Notification `json:"notifications"`
	UpdatedAt      string                `json:"updatedAt"` // ISO 8601
}

// Notification types and channels
const (
	TypeStatusUpdate = "financing_status_update"
	TypeApproved     = "financing_approved"

	ChannelEmail = "email"
	ChannelSMS   = "sms"
)

// Notification statuses
const (
	StatusSent     = "sent"
	StatusFailed   = "failed"
	StatusDisabled = "disabled"
)

var inputSchema = validation.MustCompile(`{
	"type": "object",
	"required": ["applicationId", "status"],
	"properties": {
		"applicationId":  {"type": "string", "minLength": 1},
		"status":         {"type": "string", "enum": ["pending", "under-review", "approved", "rejected"]},
		"approvedAmount": {"type": "number", "exclusiveMinimum": 0},
		"interestRate":   {"type": "number", "exclusiveMinimum": 0},
		"remarks":        {"type": "string", "maxLength": 1000}
	}
}`)
