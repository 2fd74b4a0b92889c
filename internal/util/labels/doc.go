// Package labels provides consistent labels for resources cloudwait creates.
//
// All keys use the cloudwait.io domain prefix. The same label set is written
// as Hetzner Cloud image labels and as AWS snapshot tags.
package labels
