// Package async provides utilities for parallel task execution with
// error collection.
//
// The [Run] function executes multiple operations concurrently and
// returns all errors. The CLI uses it to wait on several independent
// resources at once.
package async
