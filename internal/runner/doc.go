// Package runner executes external tools and captures their output.
//
// Standard output and standard error are collected into separate buffers and
// never streamed to the CI log. A non-zero exit status is a normal result, not
// an error: callers inspect [Result] and turn it into a failure with
// [Result.Err]. Only a process that cannot be started at all makes [Runner.Run]
// return an error.
//
// The runner imposes no timeout of its own; cancellation comes from the
// caller's context.
package runner
