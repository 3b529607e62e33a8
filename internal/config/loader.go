package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// LoadFile reads a YAML config file on top of the defaults. An empty path
// returns the defaults.
func LoadFile(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)

	return cfg, nil
}

// LoadDotEnv loads environment variables from path when present.
// Existing process environment variables are not overridden.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if err == nil {
		return nil
	}

	if errors.Is(err, os.ErrNotExist) {
		return nil
	}

	return fmt.Errorf("load %s: %w", path, err)
}

// ApplyEnv overrides cfg with any CALC_* variables set in the environment,
// looked up through getenv.
func ApplyEnv(cfg *Config, getenv func(string) string) error {
	if v := getenv(EnvLogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	if v := getenv(EnvBanner); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return ValidationError{Field: EnvBanner, Message: "must be a boolean"}
		}
		cfg.Banner = b
	}

	if v := getenv(EnvTelemetry); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return ValidationError{Field: EnvTelemetry, Message: "must be a boolean"}
		}
		cfg.Telemetry = b
	}

	if v := getenv(EnvStatusAddr); v != "" {
		cfg.StatusAddr = v
	}

	return nil
}

// Load resolves the configuration from defaults, the optional YAML file at
// path, the .env file in the working directory and the process environment,
// in increasing order of precedence, and validates the result.
func Load(path string) (Config, error) {
	cfg, err := LoadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := LoadDotEnv(".env"); err != nil {
		return cfg, err
	}

	if err := ApplyEnv(&cfg, os.Getenv); err != nil {
		return cfg, err
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}
