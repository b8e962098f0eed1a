// internal/workers/matching/check-readiness-score/config.go
package checkreadinessscore

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 10 * time.Second,
	}
}
