package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds the tunable timing values.
type Timeouts struct {
	PollInterval   time.Duration // Delay between validation poll fetches
	PollIterations int           // Maximum number of validation poll fetches
	HTTPTimeout    time.Duration // Per-request timeout on the management API
}

// LoadTimeouts loads timing configuration from environment variables.
// If a variable is not set or invalid, the default is used.
//
// Environment Variables:
//   - MIQ_POLL_INTERVAL (default: 5s)
//   - MIQ_POLL_ITERATIONS (default: 10)
//   - MIQ_HTTP_TIMEOUT (default: 30s)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		PollInterval:   parseDuration("MIQ_POLL_INTERVAL", 5*time.Second),
		PollIterations: parseInt("MIQ_POLL_ITERATIONS", 10),
		HTTPTimeout:    parseDuration("MIQ_HTTP_TIMEOUT", 30*time.Second),
	}
}

func parseDuration(envVar string, defaultVal time.Duration) time.Duration {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(val)
	if err != nil {
		return defaultVal
	}
	return d
}

func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
