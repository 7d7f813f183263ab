package config

import "fmt"

// DelivererConfig configures the outbound webhook transport.
type DelivererConfig struct {
	// Timeout bounds a single delivery, in milliseconds. A timed-out
	// delivery is recorded as a failed attempt.
	Timeout int64 `yaml:"timeout" json:"timeout" default:"30000"`
}

func (cfg DelivererConfig) Validate() error {
	if cfg.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive")
	}
	return nil
}
