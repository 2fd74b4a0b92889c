package config

import (
	"os"
	"strconv"
	"time"
)

// Timeouts holds all configurable poll and retry values.
// These values can be customized via environment variables.
type Timeouts struct {
	InstanceInterval    time.Duration // Poll interval while waiting for an instance to run
	InstanceTimeout     time.Duration // Budget for an instance to reach running
	InstanceMaxAttempts int           // Fetch ceiling for instance polling, 0 means none

	SnapshotInterval    time.Duration // Poll interval while a snapshot progresses
	SnapshotTimeout     time.Duration // Budget for a snapshot to reach 100%
	SnapshotMaxAttempts int           // Fetch ceiling for snapshot polling

	ScalingInterval    time.Duration // Poll interval for scaling group membership
	ScalingTimeout     time.Duration // Budget for scaling group attach/remove
	ScalingMaxAttempts int           // Fetch ceiling for scaling polling, 0 means none

	SecurityGroupInterval    time.Duration // Poll interval for security group membership
	SecurityGroupTimeout     time.Duration // Budget for security group join/leave
	SecurityGroupMaxAttempts int           // Fetch ceiling for security group polling, 0 means none

	RetryMaxAttempts  int           // Maximum attempts of a mutating call
	RetryInitialDelay time.Duration // Delay before the second attempt
	RetryMaxDelay     time.Duration // Backoff cap, 0 means uncapped
	RetryMultiplier   float64       // Backoff growth factor
}

// LoadTimeouts loads timeout configuration from environment variables.
// If an environment variable is not set or invalid, a default value is used.
//
// Environment Variables:
//   - CLOUDWAIT_INTERVAL_INSTANCE (default: 30s)
//   - CLOUDWAIT_TIMEOUT_INSTANCE (default: 10m)
//   - CLOUDWAIT_INSTANCE_MAX_ATTEMPTS (default: 0, no cap)
//   - CLOUDWAIT_INTERVAL_SNAPSHOT (default: 60s)
//   - CLOUDWAIT_TIMEOUT_SNAPSHOT (default: 20m)
//   - CLOUDWAIT_SNAPSHOT_MAX_ATTEMPTS (default: 20)
//   - CLOUDWAIT_INTERVAL_SCALING (default: 5s)
//   - CLOUDWAIT_TIMEOUT_SCALING (default: 5m)
//   - CLOUDWAIT_SCALING_MAX_ATTEMPTS (default: 0, no cap)
//   - CLOUDWAIT_INTERVAL_SECURITY_GROUP (default: 5s)
//   - CLOUDWAIT_TIMEOUT_SECURITY_GROUP (default: 2m)
//   - CLOUDWAIT_SECURITY_GROUP_MAX_ATTEMPTS (default: 0, no cap)
//   - CLOUDWAIT_RETRY_MAX_ATTEMPTS (default: 3)
//   - CLOUDWAIT_RETRY_INITIAL_DELAY (default: 1s)
//   - CLOUDWAIT_RETRY_MAX_DELAY (default: 30s)
//   - CLOUDWAIT_RETRY_MULTIPLIER (default: 2)
func LoadTimeouts() *Timeouts {
	return &Timeouts{
		InstanceInterval:         parseDuration("CLOUDWAIT_INTERVAL_INSTANCE", 30*time.Second),
		InstanceTimeout:          parseDuration("CLOUDWAIT_TIMEOUT_INSTANCE", 10*time.Minute),
		InstanceMaxAttempts:      parseInt("CLOUDWAIT_INSTANCE_MAX_ATTEMPTS", 0),
		SnapshotInterval:         parseDuration("CLOUDWAIT_INTERVAL_SNAPSHOT", 60*time.Second),
		SnapshotTimeout:          parseDuration("CLOUDWAIT_TIMEOUT_SNAPSHOT", 20*time.Minute),
		SnapshotMaxAttempts:      parseInt("CLOUDWAIT_SNAPSHOT_MAX_ATTEMPTS", 20),
		ScalingInterval:          parseDuration("CLOUDWAIT_INTERVAL_SCALING", 5*time.Second),
		ScalingTimeout:           parseDuration("CLOUDWAIT_TIMEOUT_SCALING", 5*time.Minute),
		ScalingMaxAttempts:       parseInt("CLOUDWAIT_SCALING_MAX_ATTEMPTS", 0),
		SecurityGroupInterval:    parseDuration("CLOUDWAIT_INTERVAL_SECURITY_GROUP", 5*time.Second),
		SecurityGroupTimeout:     parseDuration("CLOUDWAIT_TIMEOUT_SECURITY_GROUP", 2*time.Minute),
		SecurityGroupMaxAttempts: parseInt("CLOUDWAIT_SECURITY_GROUP_MAX_ATTEMPTS", 0),
		RetryMaxAttempts:         parseInt("CLOUDWAIT_RETRY_MAX_ATTEMPTS", 3),
		RetryInitialDelay:        parseDuration("CLOUDWAIT_RETRY_INITIAL_DELAY", 1*time.Second),
		RetryMaxDelay:            parseDuration("CLOUDWAIT_RETRY_MAX_DELAY", 30*time.Second),
		RetryMultiplier:          parseFloat("CLOUDWAIT_RETRY_MULTIPLIER", 2),
	}
}

// TestTimeouts returns short timeouts suitable for tests that run against
// the real clock.
func TestTimeouts() *Timeouts {
	return &Timeouts{
		InstanceInterval:      10 * time.Millisecond,
		InstanceTimeout:       100 * time.Millisecond,
		SnapshotInterval:      10 * time.Millisecond,
		SnapshotTimeout:       100 * time.Millisecond,
		SnapshotMaxAttempts:   20,
		ScalingInterval:       10 * time.Millisecond,
		ScalingTimeout:        100 * time.Millisecond,
		SecurityGroupInterval: 10 * time.Millisecond,
		SecurityGroupTimeout:  100 * time.Millisecond,
		RetryMaxAttempts:      2,
		RetryInitialDelay:     10 * time.Millisecond,
		RetryMaxDelay:         50 * time.Millisecond,
		RetryMultiplier:       2,
	}
}

// parseDuration parses a duration from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
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

// parseInt parses an integer from an environment variable.
// If the variable is not set or parsing fails, the default value is returned.
func parseInt(envVar string, defaultVal int) int {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}

	return i
}

func parseFloat(envVar string, defaultVal float64) float64 {
	val := os.Getenv(envVar)
	if val == "" {
		return defaultVal
	}

	f, err := strconv.ParseFloat(val, 64)
	if err != nil {
		return defaultVal
	}

	return f
}
