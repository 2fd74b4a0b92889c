package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Supported provider backends.
const (
	ProviderAWS    = "aws"
	ProviderHCloud = "hcloud"
)

// HCloudTokenEnv is read when the file does not carry a Hetzner Cloud token.
const HCloudTokenEnv = "HCLOUD_TOKEN"

// Config is the optional cloudwait configuration file.
type Config struct {
	Provider string `yaml:"provider"`
	Region   string `yaml:"region"`
	// Profile selects a shared AWS config profile.
	Profile string `yaml:"profile,omitempty"`
	// Endpoint overrides the provider API endpoint, e.g. for a local emulator.
	Endpoint    string `yaml:"endpoint,omitempty"`
	HCloudToken string `yaml:"hcloud_token,omitempty"`
	MetricsFile string `yaml:"metrics_file,omitempty"`

	Timeouts Overrides `yaml:"timeouts"`
}

// Overrides replace individual Timeouts values. Zero values leave the
// environment or default value in place.
type Overrides struct {
	Instance      Wait  `yaml:"instance"`
	Snapshot      Wait  `yaml:"snapshot"`
	Scaling       Wait  `yaml:"scaling"`
	SecurityGroup Wait  `yaml:"security_group"`
	Retry         Retry `yaml:"retry"`
}

// Wait overrides the poll interval and budget of one operation kind.
type Wait struct {
	Interval    time.Duration `yaml:"interval"`
	Timeout     time.Duration `yaml:"timeout"`
	MaxAttempts int           `yaml:"max_attempts,omitempty"`
}

// Retry overrides the retry policy of mutating calls.
type Retry struct {
	MaxAttempts  int           `yaml:"max_attempts"`
	InitialDelay time.Duration `yaml:"initial_delay"`
	MaxDelay     time.Duration `yaml:"max_delay"`
	Multiplier   float64       `yaml:"multiplier"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// LoadFile reads and parses the configuration from a YAML file.
func LoadFile(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes, defaults and validates a YAML document. Unknown keys are
// rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Provider == "" {
		c.Provider = ProviderAWS
	}
	if c.HCloudToken == "" {
		c.HCloudToken = os.Getenv(HCloudTokenEnv)
	}
}

// Apply writes the non-zero overrides into t.
func (o Overrides) Apply(t *Timeouts) {
	o.Instance.apply(&t.InstanceInterval, &t.InstanceTimeout, &t.InstanceMaxAttempts)
	o.Snapshot.apply(&t.SnapshotInterval, &t.SnapshotTimeout, &t.SnapshotMaxAttempts)
	o.Scaling.apply(&t.ScalingInterval, &t.ScalingTimeout, &t.ScalingMaxAttempts)
	o.SecurityGroup.apply(&t.SecurityGroupInterval, &t.SecurityGroupTimeout, &t.SecurityGroupMaxAttempts)

	if o.Retry.MaxAttempts > 0 {
		t.RetryMaxAttempts = o.Retry.MaxAttempts
	}
	if o.Retry.InitialDelay > 0 {
		t.RetryInitialDelay = o.Retry.InitialDelay
	}
	if o.Retry.MaxDelay > 0 {
		t.RetryMaxDelay = o.Retry.MaxDelay
	}
	if o.Retry.Multiplier > 0 {
		t.RetryMultiplier = o.Retry.Multiplier
	}
}

func (w Wait) apply(interval, timeout *time.Duration, maxAttempts *int) {
	if w.Interval > 0 {
		*interval = w.Interval
	}
	if w.Timeout > 0 {
		*timeout = w.Timeout
	}
	if w.MaxAttempts > 0 {
		*maxAttempts = w.MaxAttempts
	}
}
