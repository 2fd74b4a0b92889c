// Package config holds the tunables of the completion tracker.
//
// [Timeouts] carries the poll interval and budget of every operation kind plus
// the retry policy for mutating calls; it is read from CLOUDWAIT_* environment
// variables by [LoadTimeouts]. [Config] is the optional YAML file selecting
// the provider backend and overriding those values.
package config
