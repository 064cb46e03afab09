package config

import (
	"fmt"
	"strconv"
)

// Environment variables that override file and default values.
const (
	EnvBaseURL       = "SMOKETEST_BASE_URL"
	EnvTimeout       = "SMOKETEST_TIMEOUT"
	EnvPassThreshold = "SMOKETEST_PASS_THRESHOLD"
)

// ApplyEnv overrides options from the environment. getenv is usually os.Getenv.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvBaseURL); v != "" {
		c.BaseURL = v
	}

	if v := getenv(EnvTimeout); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return fmt.Errorf("%s: expected positive seconds, got %q", EnvTimeout, v)
		}
		c.TimeoutSeconds = n
	}

	if v := getenv(EnvPassThreshold); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("%s: expected a non-negative count, got %q", EnvPassThreshold, v)
		}
		c.PassThreshold = n
	}
	return nil
}
