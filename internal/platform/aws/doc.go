// Package aws implements provider.Client on Amazon EC2 and EC2 Auto Scaling.
//
// Instances, EBS snapshots and VPC security groups come from EC2; scaling
// group membership comes from Auto Scaling. Every SDK error is translated
// into a classified *provider.APIError so the tracker can tell throttling
// from a missing resource.
package aws
