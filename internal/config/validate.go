package config

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ValidProviders contains the provider backends cloudwait can drive.
var ValidProviders = map[string]bool{
	ProviderAWS:    true,
	ProviderHCloud: true,
}

// Validate checks the configuration for common errors and returns a detailed error if validation fails.
func (c *Config) Validate() error {
	if !ValidProviders[c.Provider] {
		return fmt.Errorf("invalid provider %q (must be %q or %q)", c.Provider, ProviderAWS, ProviderHCloud)
	}
	if c.Provider == ProviderHCloud && c.HCloudToken == "" {
		return fmt.Errorf("hcloud_token is required for provider %q (or set %s)", ProviderHCloud, HCloudTokenEnv)
	}

	if err := c.Timeouts.validate(); err != nil {
		return fmt.Errorf("timeouts validation failed: %w", err)
	}
	return nil
}

func (o Overrides) validate() error {
	waits := []struct {
		name string
		w    Wait
	}{
		{"instance", o.Instance},
		{"snapshot", o.Snapshot},
		{"scaling", o.Scaling},
		{"security_group", o.SecurityGroup},
	}

	var errs []error
	for _, entry := range waits {
		if err := entry.w.validate(); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", entry.name, err))
		}
	}
	if o.Retry.MaxAttempts < 0 {
		errs = append(errs, fmt.Errorf("retry: max_attempts must not be negative, got %d", o.Retry.MaxAttempts))
	}
	if o.Retry.Multiplier != 0 && !(o.Retry.Multiplier >= 1) {
		errs = append(errs, fmt.Errorf("retry: multiplier must be at least 1, got %g", o.Retry.Multiplier))
	}
	if o.Retry.InitialDelay < 0 || o.Retry.MaxDelay < 0 {
		errs = append(errs, errors.New("retry: delays must not be negative"))
	}
	return errors.Join(errs...)
}

func (w Wait) validate() error {
	if w.Interval < 0 || w.Timeout < 0 {
		return errors.New("interval and timeout must not be negative")
	}
	if w.Interval > 0 && w.Timeout > 0 && w.Timeout < w.Interval {
		return fmt.Errorf("timeout %s is shorter than interval %s", w.Timeout, w.Interval)
	}
	if w.MaxAttempts < 0 {
		return fmt.Errorf("max_attempts must not be negative, got %d", w.MaxAttempts)
	}
	return nil
}

// Validate checks that every poll kind has a usable interval and budget.
func (t *Timeouts) Validate() error {
	pairs := []struct {
		name              string
		interval, timeout time.Duration
		maxAttempts       int
	}{
		{"instance", t.InstanceInterval, t.InstanceTimeout, t.InstanceMaxAttempts},
		{"snapshot", t.SnapshotInterval, t.SnapshotTimeout, t.SnapshotMaxAttempts},
		{"scaling", t.ScalingInterval, t.ScalingTimeout, t.ScalingMaxAttempts},
		{"security group", t.SecurityGroupInterval, t.SecurityGroupTimeout, t.SecurityGroupMaxAttempts},
	}
	for _, p := range pairs {
		if p.interval <= 0 {
			return fmt.Errorf("%s interval must be positive", p.name)
		}
		if p.timeout < p.interval {
			return fmt.Errorf("%s timeout must be at least the interval", p.name)
		}
		if p.maxAttempts < 0 {
			return fmt.Errorf("%s max attempts must not be negative, got %d", p.name, p.maxAttempts)
		}
	}
	if t.RetryMaxAttempts < 1 {
		return fmt.Errorf("retry max attempts must be at least 1, got %d", t.RetryMaxAttempts)
	}
	// NaN fails every comparison, so test for the valid range.
	if !(t.RetryMultiplier >= 1) || math.IsInf(t.RetryMultiplier, 1) {
		return fmt.Errorf("retry multiplier must be at least 1, got %g", t.RetryMultiplier)
	}
	if t.RetryInitialDelay < 0 || t.RetryMaxDelay < 0 {
		return errors.New("retry delays must not be negative")
	}
	return nil
}
