package config

// EnvPrefix is the prefix CI runners put in front of step input names.
const EnvPrefix = "INPUT"

// LatestVersion is the SDK version selector that resolves to the newest release.
const LatestVersion = "latest"

// Config holds the inputs of one run.
//
// Field names map to INPUT_<NAME> variables through split_words, for example
// SSHPrivateKey reads INPUT_SSH_PRIVATE_KEY. There are no explicit envconfig
// names: those make envconfig fall back to the unprefixed variable, and
// runners always set variables such as USER.
//
// SSHPrivateKey is secret: it must never be logged or placed in an error
// message. Use LogValues for structured logging.
type Config struct {
	InstanceName string `split_words:"true"`
	Zone         string
	User         string

	SSHPrivateKey string `split_words:"true"`
	// SSHKeysDir pins the directory the key material is written to.
	// Empty means a fresh random directory under the runner temp dir.
	SSHKeysDir string `split_words:"true"`

	Container string
	// SSHArgs is passed to the ssh client after a `--` separator, unsplit.
	SSHArgs string `split_words:"true"`

	// Exactly one of Command and Script must be set.
	Command string
	Script  string

	ProjectID       string    `split_words:"true"`
	GcloudVersion   string    `split_words:"true" default:"latest"`
	GcloudComponent Component `split_words:"true"`
	// Flags holds extra gcloud flags, split with quote awareness.
	Flags string
}

// UsesScript reports whether the remote command comes from a script file.
func (c *Config) UsesScript() bool {
	return c.Script != ""
}

// WantsLatestSDK reports whether the SDK version must be resolved remotely.
func (c *Config) WantsLatestSDK() bool {
	return c.GcloudVersion == "" || c.GcloudVersion == LatestVersion
}

// LogValues returns key/value pairs describing the configuration without
// any secret material.
func (c *Config) LogValues() []any {
	return []any{
		"instance", c.InstanceName,
		"zone", c.Zone,
		"user", c.User,
		"project", c.ProjectID,
		"container", c.Container,
		"script", c.Script,
		"sdkVersion", c.GcloudVersion,
		"component", c.GcloudComponent.String(),
		"privateKeyProvided", c.SSHPrivateKey != "",
	}
}
