package handlers

import (
	"os"

	"github.com/imamik/iapssh/internal/util/naming"
)

// StateFileEnv overrides the default state file location.
const StateFileEnv = "IAPSSH_STATE_FILE"

// runnerTempDir returns the per-job temp directory of the CI runner, falling
// back to the system temp directory.
func runnerTempDir() string {
	if dir := os.Getenv("RUNNER_TEMP"); dir != "" {
		return dir
	}
	return os.TempDir()
}

// DefaultStateFile returns the state file path used when none is given.
func DefaultStateFile() string {
	if path := os.Getenv(StateFileEnv); path != "" {
		return path
	}
	return naming.StateFile(runnerTempDir())
}

func resolveStateFile(path string) string {
	if path != "" {
		return path
	}
	return DefaultStateFile()
}
