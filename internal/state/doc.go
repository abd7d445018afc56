// Package state persists the handoff record between the main phase and the
// cleanup phase of a run.
//
// Each main phase appends its ephemeral keys directory before creating it, so
// several runs in one job share a single record. The cleanup phase, usually a
// separate process started by the CI post step, loads the record, removes
// every directory and clears the record. The record
// is a small YAML file; its absence is the normal "nothing to clean" state.
package state
