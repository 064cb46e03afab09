// Package config defines smoke-test suites and the options that tune them.
//
// A configuration comes from built-in defaults, optionally merged with a
// .smoketest.yaml file, then overridden by SMOKETEST_* environment variables
// and finally by command-line flags.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// Check kinds.
const (
	KindHTTP = "http"
	KindCmd  = "cmd"
	KindFile = "file"
	KindTCP  = "tcp"
)

// Suite policies.
const (
	PolicyStrict    = "strict"
	PolicyThreshold = "threshold"
)

// Config holds the recognized options and the suite definitions.
type Config struct {
	BaseURL        string        `yaml:"base_url"`
	TimeoutSeconds int           `yaml:"timeout_seconds"`
	PassThreshold  int           `yaml:"pass_threshold"`
	Default        []string      `yaml:"default"`
	Suites         []SuiteConfig `yaml:"suites"`
}

// SuiteConfig defines one ordered suite.
type SuiteConfig struct {
	Name      string        `yaml:"name"`
	Policy    string        `yaml:"policy"`    // strict (default) or threshold
	Threshold int           `yaml:"threshold"` // 0 means Config.PassThreshold
	Parallel  bool          `yaml:"parallel"`
	Checks    []CheckConfig `yaml:"checks"`
}

// CheckConfig defines one check. Which fields apply depends on Kind.
type CheckConfig struct {
	Name     string `yaml:"name"`
	Kind     string `yaml:"kind"`
	Optional bool   `yaml:"optional"`

	// http
	URL      string            `yaml:"url"`  // absolute URL, wins over Path
	Path     string            `yaml:"path"` // joined to BaseURL
	Accept   []int             `yaml:"accept"`
	Contains string            `yaml:"contains"`
	Match    string            `yaml:"match"`
	Headers  map[string]string `yaml:"headers"`
	JSONPath string            `yaml:"json_path"`

	// cmd
	Run               []string `yaml:"run"`
	Dir               string   `yaml:"dir"`
	VersionConstraint string   `yaml:"version_constraint"`
	TimeoutSeconds    int      `yaml:"timeout_seconds"` // 0 means the kind's default

	// file
	File     string `yaml:"file"`
	MinLines int    `yaml:"min_lines"`

	// tcp
	Address string `yaml:"address"`
}

// Timeout returns the per-probe timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ThresholdFor returns the pass threshold that applies to s.
func (c *Config) ThresholdFor(s SuiteConfig) int {
	if s.Threshold > 0 {
		return s.Threshold
	}
	return c.PassThreshold
}

// URLFor resolves the target URL of an http check.
func (c *Config) URLFor(ch CheckConfig) string {
	if ch.URL != "" {
		return ch.URL
	}
	base := strings.TrimRight(c.BaseURL, "/")
	if ch.Path == "" {
		return base
	}
	return base + "/" + strings.TrimLeft(ch.Path, "/")
}

// Suite returns the suite with the given name.
func (c *Config) Suite(name string) (SuiteConfig, bool) {
	for _, s := range c.Suites {
		if s.Name == name {
			return s, true
		}
	}
	return SuiteConfig{}, false
}

// Load reads the YAML file at path and merges it over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-chosen config file
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse merges YAML data over the defaults. Suites in data replace built-in
// suites of the same name; others are appended.
func Parse(data []byte) (*Config, error) {
	var file Config
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg := Defaults()
	cfg.merge(&file)
	return cfg, nil
}

func (c *Config) merge(o *Config) {
	if o.BaseURL != "" {
		c.BaseURL = o.BaseURL
	}
	if o.TimeoutSeconds != 0 {
		c.TimeoutSeconds = o.TimeoutSeconds
	}
	if o.PassThreshold != 0 {
		c.PassThreshold = o.PassThreshold
	}
	if len(o.Default) > 0 {
		c.Default = o.Default
	}
	for _, s := range o.Suites {
		replaced := false
		for i := range c.Suites {
			if c.Suites[i].Name == s.Name {
				c.Suites[i] = s
				replaced = true
				break
			}
		}
		if !replaced {
			c.Suites = append(c.Suites, s)
		}
	}
}

// Validate reports every problem in the configuration at once.
func (c *Config) Validate() error {
	var err error

	if u, perr := url.Parse(c.BaseURL); perr != nil || u.Scheme == "" || u.Host == "" {
		err = multierr.Append(err, fmt.Errorf("base_url %q is not an absolute URL", c.BaseURL))
	}
	if c.TimeoutSeconds <= 0 {
		err = multierr.Append(err, fmt.Errorf("timeout_seconds must be positive, got %d", c.TimeoutSeconds))
	}
	if c.PassThreshold < 0 {
		err = multierr.Append(err, fmt.Errorf("pass_threshold must not be negative, got %d", c.PassThreshold))
	}

	seen := make(map[string]bool)
	for _, s := range c.Suites {
		if s.Name == "" {
			err = multierr.Append(err, fmt.Errorf("suite without a name"))
			continue
		}
		if seen[s.Name] {
			err = multierr.Append(err, fmt.Errorf("suite %q defined twice", s.Name))
		}
		seen[s.Name] = true
		err = multierr.Append(err, c.validateSuite(s))
	}

	for _, name := range c.Default {
		if !seen[name] {
			err = multierr.Append(err, fmt.Errorf("default suite %q is not defined", name))
		}
	}
	return err
}

func (c *Config) validateSuite(s SuiteConfig) error {
	var err error
	switch s.Policy {
	case "", PolicyStrict:
	case PolicyThreshold:
		if t := c.ThresholdFor(s); t > len(s.Checks) {
			err = multierr.Append(err, fmt.Errorf("suite %q: threshold %d exceeds its %d checks", s.Name, t, len(s.Checks)))
		}
	default:
		err = multierr.Append(err, fmt.Errorf("suite %q: unknown policy %q", s.Name, s.Policy))
	}

	for i, ch := range s.Checks {
		if ch.Name == "" {
			err = multierr.Append(err, fmt.Errorf("suite %q: check #%d has no name", s.Name, i+1))
		}
		if cerr := validateCheck(ch); cerr != nil {
			err = multierr.Append(err, fmt.Errorf("suite %q: check %q: %w", s.Name, ch.Name, cerr))
		}
	}
	return err
}

func validateCheck(ch CheckConfig) error {
	switch ch.Kind {
	case KindHTTP:
		if ch.URL != "" {
			if u, err := url.Parse(ch.URL); err != nil || u.Scheme == "" || u.Host == "" {
				return fmt.Errorf("url %q is not absolute", ch.URL)
			}
		}
	case KindCmd:
		if len(ch.Run) == 0 {
			return fmt.Errorf("run is required")
		}
	case KindFile:
		if ch.File == "" {
			return fmt.Errorf("file is required")
		}
	case KindTCP:
		if ch.Address == "" {
			return fmt.Errorf("address is required")
		}
	default:
		return fmt.Errorf("unknown kind %q", ch.Kind)
	}
	return nil
}
