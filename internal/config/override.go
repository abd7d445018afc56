package config

import (
	"fmt"
	"sort"
)

// InputNames lists the input names accepted by Set, in a stable order.
func InputNames() []string {
	names := make([]string, 0, len(setters))
	for name := range setters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var setters = map[string]func(*Config, string) error{
	"instance_name":    func(c *Config, v string) error { c.InstanceName = v; return nil },
	"zone":             func(c *Config, v string) error { c.Zone = v; return nil },
	"user":             func(c *Config, v string) error { c.User = v; return nil },
	"ssh_private_key":  func(c *Config, v string) error { c.SSHPrivateKey = v; return nil },
	"ssh_keys_dir":     func(c *Config, v string) error { c.SSHKeysDir = v; return nil },
	"container":        func(c *Config, v string) error { c.Container = v; return nil },
	"ssh_args":         func(c *Config, v string) error { c.SSHArgs = v; return nil },
	"command":          func(c *Config, v string) error { c.Command = v; return nil },
	"script":           func(c *Config, v string) error { c.Script = v; return nil },
	"project_id":       func(c *Config, v string) error { c.ProjectID = v; return nil },
	"gcloud_version":   func(c *Config, v string) error { c.GcloudVersion = v; return nil },
	"gcloud_component": func(c *Config, v string) error { return c.GcloudComponent.UnmarshalText([]byte(v)) },
	"flags":            func(c *Config, v string) error { c.Flags = v; return nil },
}

// Set assigns the input called name, using the same names as the
// INPUT_<NAME> environment variables in lower case.
func (c *Config) Set(name, value string) error {
	set, ok := setters[name]
	if !ok {
		return fmt.Errorf("unknown input %q", name)
	}
	if err := set(c, value); err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	return nil
}
