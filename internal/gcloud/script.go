package gcloud

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/imamik/iapssh/internal/config"
	"github.com/imamik/iapssh/internal/util/fault"
)

// ReadScript returns the full text of the script file at path.
func ReadScript(path string) (string, error) {
	// #nosec G304 - the script path is an explicit step input
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fault.IO(fmt.Errorf("script file %s not found: %w", path, err))
		}
		return "", fault.IO(fmt.Errorf("failed to read script file %s: %w", path, err))
	}
	return string(data), nil
}

// WrapScript turns script text into a single bash invocation. The text is
// kept verbatim, newlines included. Double quotes inside the script are not
// escaped, so scripts must not contain them unbalanced.
func WrapScript(text string) string {
	return `bash -c "` + text + `"`
}

// EffectiveCommand returns the remote command for cfg: the command input, or
// the wrapped content of the script file.
func EffectiveCommand(cfg *config.Config) (string, error) {
	if !cfg.UsesScript() {
		return cfg.Command, nil
	}
	text, err := ReadScript(cfg.Script)
	if err != nil {
		return "", err
	}
	return WrapScript(text), nil
}
