package commands

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/imamik/iapssh/cmd/iapssh/handlers"
)

// inputFlags are the run inputs that may also be given as flags. The private
// key is deliberately absent: it is read from the environment or a file so it
// never shows up in a process listing.
var inputFlags = []struct {
	input string
	usage string
}{
	{"instance_name", "Name of the target instance"},
	{"zone", "Zone of the target instance"},
	{"user", "Remote user name"},
	{"ssh_keys_dir", "Directory for the key material (default: a new directory under RUNNER_TEMP)"},
	{"container", "Container on a Container-Optimized OS instance to run the command in"},
	{"ssh_args", "Arguments passed unchanged to the ssh client after --"},
	{"command", "Command to run on the instance"},
	{"script", "Local script file whose content is run with bash on the instance"},
	{"project_id", "Google Cloud project of the instance"},
	{"gcloud_version", "Cloud SDK version, or latest"},
	{"gcloud_component", "Release channel to run gcloud with: alpha or beta"},
	{"flags", "Additional gcloud flags; double quotes group words"},
}

func flagName(input string) string {
	return strings.ReplaceAll(input, "_", "-")
}

// Run returns the run command.
//
// Inputs are read from INPUT_* environment variables. Flags that are set
// explicitly take precedence.
func Run() *cobra.Command {
	var opts handlers.RunOptions
	values := make(map[string]*string, len(inputFlags))

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a command on an instance through IAP",
		Long: `Run connects to a Compute Engine instance with gcloud compute ssh
through Identity-Aware Proxy and runs a command or a local script on it.

The private key is taken from INPUT_SSH_PRIVATE_KEY or --ssh-private-key-file
and written to a temporary directory. Its location is recorded in a state
file so that "iapssh cleanup" can remove it in a later step.

Exactly one of --command and --script must be given.

Example:
  INPUT_SSH_PRIVATE_KEY="$KEY" iapssh run \
    --instance-name web-1 --zone europe-west1-b --command "uptime"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			opts.Inputs = make(map[string]string)
			for input, value := range values {
				if cmd.Flags().Changed(flagName(input)) {
					opts.Inputs[input] = *value
				}
			}
			return handlers.Run(cmd.Context(), opts)
		},
	}

	for _, f := range inputFlags {
		values[f.input] = cmd.Flags().String(flagName(f.input), "", f.usage)
	}

	cmd.Flags().StringVar(&opts.PrivateKeyFile, "ssh-private-key-file", "", "Read the private key from this file")
	cmd.Flags().StringVar(&opts.KeyComment, "key-comment", "", "Comment appended to the derived public key")
	cmd.Flags().StringVar(&opts.StateFile, "state-file", "", "Path of the state file (default: $IAPSSH_STATE_FILE or RUNNER_TEMP/iapssh-state.yaml)")
	cmd.Flags().StringVar(&opts.MetricsFile, "metrics-file", "", "Write Prometheus metrics to this file")
	cmd.Flags().BoolVar(&opts.Cleanup, "cleanup", false, "Remove the key material when the command finishes")

	return cmd
}
