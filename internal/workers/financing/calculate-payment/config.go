// internal/workers/financing/calculate-payment/config.go
package calculatepayment

import (
	"fmt"
	"time"

	"dealer-assistant/internal/common/config"
)

type Config struct {
	Enabled       bool
	MaxJobsActive int
	Timeout       time.Duration
	MinTermMonths int
	MaxTermMonths int
}

func NewConfig(w config.WorkerConfig, f config.FinancingConfig) *Config {
	return &Config{
		Enabled:       w.Enabled,
		MaxJobsActive: w.MaxJobsActive,
		Timeout:       config.GetDuration(w.Timeout),
		MinTermMonths: f.MinTermMonths,
		MaxTermMonths: f.MaxTermMonths,
	}
}

func (c *Config) Validate() error {
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	if c.MinTermMonths <= 0 || c.MinTermMonths > c.MaxTermMonths {
		return fmt.Errorf("invalid term bounds %d..%d", c.MinTermMonths, c.MaxTermMonths)
	}
	return nil
}
