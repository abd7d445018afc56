package gcloud

import (
	"os"
	"strings"

	"github.com/imamik/iapssh/internal/config"
)

// Installation is a usable SDK in the tool cache.
type Installation struct {
	Version    string
	Root       string
	BinDir     string
	Executable string
	Component  config.Component
	// Installed is true when this call downloaded the SDK rather than
	// finding it in the cache.
	Installed bool
}

// Args returns args with the component channel prepended when one is set.
func (i *Installation) Args(args ...string) []string {
	if !i.Component.IsSet() {
		return args
	}
	return append([]string{string(i.Component)}, args...)
}

// Env returns base with BinDir prepended to PATH, for child processes.
func (i *Installation) Env(base []string) []string {
	const key = "PATH="

	env := make([]string, 0, len(base)+1)
	found := false
	for _, kv := range base {
		if strings.HasPrefix(kv, key) {
			found = true
			current := strings.TrimPrefix(kv, key)
			if current == "" {
				kv = key + i.BinDir
			} else {
				kv = key + i.BinDir + string(os.PathListSeparator) + current
			}
		}
		env = append(env, kv)
	}
	if !found {
		env = append(env, key+i.BinDir)
	}
	return env
}
