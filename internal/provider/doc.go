// Package provider defines the boundary between the completion tracker and a
// cloud provider's control-plane API.
//
// It holds the plain records the tracker polls (instances, snapshots, scaling
// group members), the classified error type every backend returns, and the
// narrow interfaces consumed by the convergence policies. Concrete backends
// live under internal/platform.
package provider
