// Package naming provides consistent names for the files and directories a
// run creates.
//
// Key files use the names the Cloud SDK looks for by default so an operator
// can reuse a pinned keys directory with a manual gcloud invocation. Ephemeral
// directories carry a random suffix so concurrent runs on one host never share
// a path.
package naming
