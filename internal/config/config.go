package config

import "time"

// Config holds server configuration values.
type Config struct {
	Addr                 string        `mapstructure:"addr" yaml:"addr"`
	ReadHeaderTimeout    time.Duration `mapstructure:"read_header_timeout" yaml:"read_header_timeout"`
	ShutdownTimeout      time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`
	DeliveryConfirmDelay time.Duration `mapstructure:"delivery_confirm_delay" yaml:"delivery_confirm_delay"`
	LogLevel             string        `mapstructure:"log_level" yaml:"log_level"`
}

// Default returns configuration with reasonable starter defaults. The
// delivery confirmation delay simulates relay-to-recipient latency before a
// message is marked delivered.
func Default() Config {
	return Config{
		Addr:                 ":3005",
		ReadHeaderTimeout:    5 * time.Second,
		ShutdownTimeout:      5 * time.Second,
		DeliveryConfirmDelay: time.Second,
		LogLevel:             "info",
	}
}
