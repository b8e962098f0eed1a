// internal/workers/outreach/send-bulk-inquiries/config.go
package sendbulkinquiries

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: 30 * time.Second,
	}
}
