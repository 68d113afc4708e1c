// internal/models/notification.go
package models

// Notification records one outbound message about a financing application.
type Notification struct {
	ID            string                 `json:"id"`
	ApplicationID string                 `json:"applicationId"`
	Type          string                 `json:"type"`    // "financing_status_update", "financing_approved"
	Channel       string                 `json:"channel"` // "email", "sms"
	Status        string                 `json:"status"`  // "sent", "failed", "disabled"
	Payload       map[string]interface{} `json:"payload,omitempty"`
	SentAt        string                 `json:"sentAt,omitempty"`
}
