// internal/workers/lifecycle/update-vendor-status/config.go
package updatevendorstatus

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 5 * time.Second,
	}
}
