package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/imamik/iapssh/internal/util/fault"
	"github.com/imamik/iapssh/internal/util/flagsplit"
)

// Validate checks the configuration and returns the first problem found as a
// configuration error. It performs no I/O.
func (c *Config) Validate() error {
	if err := c.validate(); err != nil {
		return fault.Configuration(err)
	}
	return nil
}

func (c *Config) validate() error {
	// Required fields
	if strings.TrimSpace(c.InstanceName) == "" {
		return errors.New("instance_name is required")
	}
	if strings.TrimSpace(c.Zone) == "" {
		return errors.New("zone is required")
	}
	if strings.TrimSpace(c.SSHPrivateKey) == "" {
		return errors.New("ssh_private_key is required")
	}

	if err := c.validateCommand(); err != nil {
		return err
	}

	if _, err := ParseComponent(string(c.GcloudComponent)); err != nil {
		return err
	}

	if err := c.validateSDKVersion(); err != nil {
		return err
	}

	if _, err := flagsplit.Split(c.Flags); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	return nil
}

// validateCommand enforces that exactly one of command and script is set.
func (c *Config) validateCommand() error {
	hasCommand := c.Command != ""
	hasScript := c.Script != ""

	switch {
	case hasCommand && hasScript:
		return errors.New("only one of command or script may be set")
	case !hasCommand && !hasScript:
		return errors.New("one of command or script is required")
	}
	return nil
}

func (c *Config) validateSDKVersion() error {
	if c.WantsLatestSDK() {
		return nil
	}
	if _, err := semver.StrictNewVersion(c.GcloudVersion); err != nil {
		return fmt.Errorf("invalid gcloud_version %q: must be %q or a version like 470.0.0: %w",
			c.GcloudVersion, LatestVersion, err)
	}
	return nil
}
