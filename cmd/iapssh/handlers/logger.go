package handlers

import (
	"os"

	"github.com/go-logr/logr"

	"github.com/imamik/iapssh/internal/logging"
)

// RunnerDebugEnv is set to 1 by CI runners when step debug logging is on.
const RunnerDebugEnv = "RUNNER_DEBUG"

// NewLogger builds the command logger. Runner debug mode raises the
// verbosity to at least 1.
func NewLogger(verbosity int, format string) (logr.Logger, func(), error) {
	if os.Getenv(RunnerDebugEnv) == "1" && verbosity < 1 {
		verbosity = 1
	}
	return logging.New(logging.Options{
		Verbosity: verbosity,
		Format:    logging.Format(format),
	})
}
