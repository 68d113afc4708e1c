// internal/workers/financing/update-application-status/config.go
package updateapplicationstatus

import (
	"time"

	"dealer-assistant/internal/common/config"
)

type Config struct {
	Enabled       bool
	MaxJobsActive int
	Timeout       time.Duration
	EmailEnabled  bool
	SMSEnabled    bool
}

func NewConfig(w config.WorkerConfig, n config.NotificationConfig) *Config {
	return &Config{
		Enabled:       w.Enabled,
		MaxJobsActive: w.MaxJobsActive,
		Timeout:       config.GetDuration(w.Timeout),
		EmailEnabled:  n.Email.Enabled,
		SMSEnabled:    n.SMS.Enabled,
	}
}
