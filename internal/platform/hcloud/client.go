package hcloud

import (
	"strconv"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/cloudwait/internal/provider"
)

// Client implements provider.Client using the Hetzner Cloud API.
type Client struct {
	client *hcloud.Client
}

var _ provider.Client = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*clientSettings)

type clientSettings struct {
	client   *hcloud.Client
	endpoint string
	app      string
	version  string
}

// WithHCloudClient sets a custom hcloud client (useful for testing).
func WithHCloudClient(hc *hcloud.Client) ClientOption {
	return func(s *clientSettings) {
		s.client = hc
	}
}

// WithEndpoint overrides the API endpoint.
func WithEndpoint(endpoint string) ClientOption {
	return func(s *clientSettings) {
		s.endpoint = endpoint
	}
}

// WithApplication sets the application name and version sent in the
// User-Agent header.
func WithApplication(name, version string) ClientOption {
	return func(s *clientSettings) {
		s.app = name
		s.version = version
	}
}

// NewClient creates a new Client with optional configuration.
func NewClient(token string, opts ...ClientOption) *Client {
	var s clientSettings
	for _, opt := range opts {
		opt(&s)
	}
	if s.client == nil {
		hopts := []hcloud.ClientOption{hcloud.WithToken(token)}
		if s.endpoint != "" {
			hopts = append(hopts, hcloud.WithEndpoint(s.endpoint))
		}
		if s.app != "" {
			hopts = append(hopts, hcloud.WithApplication(s.app, s.version))
		}
		s.client = hcloud.NewClient(hopts...)
	}
	return &Client{client: s.client}
}

// HCloudClient returns the underlying hcloud.Client for advanced operations.
func (c *Client) HCloudClient() *hcloud.Client {
	return c.client
}

// parseID converts a provider ID into a Hetzner Cloud numeric ID.
func parseID(kind, id string) (int64, error) {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil || n <= 0 {
		return 0, &provider.APIError{
			Code:    "InvalidParameter",
			Message: "invalid " + kind + " id: " + id,
			Class:   provider.ClassTerminal,
		}
	}
	return n, nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
