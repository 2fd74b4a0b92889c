// Package hcloud implements provider.Client on the Hetzner Cloud API.
//
// Hetzner Cloud has no autoscaling service, so the provider concepts map as
// follows:
//
//   - instances: servers (numeric IDs, status "running")
//   - snapshots: snapshot images created from a server; an available image
//     reports progress "100%", any other status "0%"
//   - security groups: firewalls applied to a server's public interface
//   - scaling groups: placement groups; a member server is "InService" while
//     running and "Pending" otherwise
//
// Every hcloud.Error is translated into a classified *provider.APIError
// (see errors.go). IDs are decimal strings on the provider side.
package hcloud
