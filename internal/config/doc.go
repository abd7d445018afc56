// Package config defines the run configuration of an iapssh invocation.
//
// The [Config] struct holds the step inputs: the target
// instance, the secret private key, exactly one of a command or a script, and
// the Cloud SDK selection. It is loaded from the CI input environment with
// [Load], overridden by command-line flags, and checked with [Config.Validate]
// before any file or network side effect happens.
package config
