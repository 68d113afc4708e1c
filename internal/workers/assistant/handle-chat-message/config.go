// internal/workers/assistant/handle-chat-message/config.go
package handlechatmessage

import (
	"time"

	"dealer-assistant/internal/common/config"
)

type Config struct {
	Enabled       bool
	MaxJobsActive int
	Timeout       time.Duration
}

// NewConfig derives the worker settings from its entry under workers.handle-chat-message.
func NewConfig(w config.WorkerConfig) *Config {
	return &Config{
		Enabled:       w.Enabled,
		MaxJobsActive: w.MaxJobsActive,
		Timeout:       config.GetDuration(w.Timeout),
	}
}
