package gcloud

import (
	"fmt"

	"github.com/imamik/iapssh/internal/config"
	"github.com/imamik/iapssh/internal/util/fault"
	"github.com/imamik/iapssh/internal/util/flagsplit"
)

// Target returns the ssh destination: user@instance, or just the instance.
func Target(user, instance string) string {
	if user == "" {
		return instance
	}
	return user + "@" + instance
}

// BuildSSHArgs assembles the `gcloud compute ssh` arguments.
//
// command is the effective remote command (see EffectiveCommand). Every user
// supplied value is its own list element so nothing is re-split by a shell.
// The component channel prefix is not included; Installation.Args adds it.
func BuildSSHArgs(cfg *config.Config, keyPath, command string) ([]string, error) {
	args := []string{
		"compute", "ssh", Target(cfg.User, cfg.InstanceName),
		"--zone", cfg.Zone,
		"--ssh-key-file", keyPath,
		"--quiet",
		"--tunnel-through-iap",
	}

	if cfg.Container != "" {
		args = append(args, "--container", cfg.Container)
	}
	if cfg.ProjectID != "" {
		args = append(args, "--project", cfg.ProjectID)
	}

	flags, err := flagsplit.Split(cfg.Flags)
	if err != nil {
		return nil, fault.Configuration(fmt.Errorf("invalid flags: %w", err))
	}
	args = append(args, flags...)

	args = append(args, "--command", command)

	if cfg.SSHArgs != "" {
		args = append(args, "--", cfg.SSHArgs)
	}

	return args, nil
}
