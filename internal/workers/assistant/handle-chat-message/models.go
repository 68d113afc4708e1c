// internal/workers/assistant/handle-chat-message/models.go
package handlechatmessage

import "dealer-assistant/internal/common/validation"

type Input struct {
	Message   string `json:"message"`
	SessionID string `json:"sessionId,omitempty"`
}

type Output struct {
	Reply     string `json:"reply"`
	Intent    string `json:"intent"`
	SessionID string `json:"sessionId"`
}

var inputSchema = validation.MustCompile(`{
	"type": "object",
	"required": ["message"],
	"properties": {
		"message":   {"type": "string", "minLength": 1, "maxLength": 2000},
		"sessionId": {"type": "string", "maxLength": 128}
	}
}`)
