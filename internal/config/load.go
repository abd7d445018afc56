package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"

	"github.com/imamik/iapssh/internal/util/fault"
)

// Load reads the step inputs from the environment (INPUT_<NAME>).
// The result is not validated; callers apply flag overrides first and then
// call Validate.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fault.Configuration(fmt.Errorf("failed to load inputs: %w", err))
	}
	return &cfg, nil
}
