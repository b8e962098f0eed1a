// internal/workers/budget/evaluate-budget-health/config.go
package evaluatebudgethealth

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
