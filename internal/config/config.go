// Package config resolves the calculator's runtime settings from defaults,
// an optional YAML file and the environment. Command-line flags are applied
// on top by the cli package.
package config

import (
	"fmt"
	"net"
	"strings"
)

// Default values for Config.
const (
	DefaultLogLevel = "warn"
	DefaultBanner   = true
)

// Environment variables read by ApplyEnv.
const (
	EnvLogLevel   = "CALC_LOG_LEVEL"
	EnvBanner     = "CALC_BANNER"
	EnvTelemetry  = "CALC_TELEMETRY"
	EnvStatusAddr = "CALC_STATUS_ADDR"
)

// Config holds everything the calculator command needs to start a session.
type Config struct {
	LogLevel   string `yaml:"log_level"`
	Banner     bool   `yaml:"banner"`
	Telemetry  bool   `yaml:"telemetry"`
	StatusAddr string `yaml:"status_addr"`
	Input      string `yaml:"input"`
}

// DefaultConfig returns a Config with sensible default values.
func DefaultConfig() Config {
	return Config{
		LogLevel: DefaultLogLevel,
		Banner:   DefaultBanner,
	}
}

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s: %s", e.Field, e.Message)
}

var validLogLevels = map[string]struct{}{
	"debug": {},
	"info":  {},
	"warn":  {},
	"error": {},
}

// Validate checks that all config values are usable.
func (c *Config) Validate() error {
	if _, ok := validLogLevels[strings.ToLower(c.LogLevel)]; !ok {
		return ValidationError{Field: "log_level", Message: "must be one of debug, info, warn, error"}
	}

	if c.StatusAddr != "" {
		if _, _, err := net.SplitHostPort(c.StatusAddr); err != nil {
			return ValidationError{Field: "status_addr", Message: "must be host:port"}
		}
	}

	return nil
}
