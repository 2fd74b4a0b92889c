// Package handlers implements the cloudwait commands.
//
// Each handler builds a session from the global options (configuration,
// provider client, logger, metrics), runs the tracker operations and renders
// the outcomes. Handlers return an error whenever an operation did not
// converge, so the process exits non-zero.
package handlers
