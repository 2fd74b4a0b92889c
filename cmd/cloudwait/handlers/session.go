package handlers

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-logr/logr"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/imamik/cloudwait/internal/config"
	"github.com/imamik/cloudwait/internal/metrics"
	"github.com/imamik/cloudwait/internal/platform/aws"
	"github.com/imamik/cloudwait/internal/platform/hcloud"
	"github.com/imamik/cloudwait/internal/provider"
	"github.com/imamik/cloudwait/internal/tracker"
)

// Options holds the global flags shared by every command.
type Options struct {
	ConfigPath  string
	Provider    string
	Region      string
	Interval    time.Duration
	Timeout     time.Duration
	JSON        bool
	MetricsFile string
	Verbosity   int
	// Concurrency limits parallel waits for multiple IDs. Zero is unlimited.
	Concurrency int
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfigFile loads config from file.
	loadConfigFile = config.LoadFile

	// loadTimeouts reads timeouts from the environment.
	loadTimeouts = config.LoadTimeouts

	// newAWSClient creates an AWS backend.
	newAWSClient = func(ctx context.Context, cfg *config.Config) (provider.Client, error) {
		return aws.NewClient(ctx, aws.Options{
			Region:   cfg.Region,
			Profile:  cfg.Profile,
			Endpoint: cfg.Endpoint,
		})
	}

	// newHCloudClient creates a Hetzner Cloud backend.
	newHCloudClient = func(cfg *config.Config) provider.Client {
		var opts []hcloud.ClientOption
		if cfg.Endpoint != "" {
			opts = append(opts, hcloud.WithEndpoint(cfg.Endpoint))
		}
		opts = append(opts, hcloud.WithApplication("cloudwait", version))
		return hcloud.NewClient(cfg.HCloudToken, opts...)
	}

	// stdout and stderr are the output streams.
	stdout io.Writer = os.Stdout
	stderr io.Writer = os.Stderr

	// version is reported to the provider as the application version.
	version = "dev"
)

// SetVersion sets the version reported to provider APIs.
func SetVersion(v string) {
	version = v
}

// session is everything a handler needs to run tracker operations.
type session struct {
	opts     Options
	cfg      *config.Config
	tracker  *tracker.Tracker
	registry *prometheus.Registry
	log      logr.Logger
}

// newSession loads configuration, applies flag overrides and builds the
// provider client and tracker.
func newSession(ctx context.Context, opts Options) (*session, error) {
	cfg, err := loadConfig(opts)
	if err != nil {
		return nil, err
	}

	timeouts := loadTimeouts()
	cfg.Timeouts.Apply(timeouts)
	applyFlagTimeouts(timeouts, opts)
	if err := timeouts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid timeouts: %w", err)
	}

	client, err := newProviderClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	registry := prometheus.NewRegistry()
	recorder, err := metrics.New(registry)
	if err != nil {
		return nil, fmt.Errorf("failed to register metrics: %w", err)
	}

	return &session{
		opts:     opts,
		cfg:      cfg,
		tracker:  tracker.New(client, timeouts, tracker.WithMetrics(recorder)),
		registry: registry,
		log:      newLogger(stderr, opts.Verbosity).WithValues("provider", cfg.Provider),
	}, nil
}

// loadConfig reads the config file if one is given and applies the provider
// and region flags.
func loadConfig(opts Options) (*config.Config, error) {
	cfg := config.Default()
	if opts.ConfigPath != "" {
		loaded, err := loadConfigFile(opts.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if opts.Provider != "" {
		cfg.Provider = opts.Provider
	}
	if opts.Region != "" {
		cfg.Region = opts.Region
	}
	if opts.MetricsFile != "" {
		cfg.MetricsFile = opts.MetricsFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// applyFlagTimeouts replaces the interval and budget of every operation kind
// when the flags are set.
func applyFlagTimeouts(t *config.Timeouts, opts Options) {
	if opts.Interval > 0 {
		t.InstanceInterval = opts.Interval
		t.SnapshotInterval = opts.Interval
		t.ScalingInterval = opts.Interval
		t.SecurityGroupInterval = opts.Interval
	}
	if opts.Timeout > 0 {
		t.InstanceTimeout = opts.Timeout
		t.SnapshotTimeout = opts.Timeout
		t.ScalingTimeout = opts.Timeout
		t.SecurityGroupTimeout = opts.Timeout
	}
}

func newProviderClient(ctx context.Context, cfg *config.Config) (provider.Client, error) {
	switch cfg.Provider {
	case config.ProviderAWS:
		client, err := newAWSClient(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to create AWS client: %w", err)
		}
		return client, nil
	case config.ProviderHCloud:
		return newHCloudClient(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported provider %q", cfg.Provider)
	}
}

// context attaches the session logger to ctx.
func (s *session) context(ctx context.Context) context.Context {
	return logr.NewContext(ctx, s.log)
}

// finish renders the results, writes the metrics textfile if configured and
// returns an error when any result did not converge. cause carries the
// errors of the failed results and is wrapped into the returned error.
func (s *session) finish(results []result, cause error) error {
	if err := render(stdout, results, s.opts.JSON, isInteractiveTTY()); err != nil {
		return err
	}

	if s.cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(s.registry, s.cfg.MetricsFile); err != nil {
			return err
		}
	}

	return summarize(results, cause)
}
